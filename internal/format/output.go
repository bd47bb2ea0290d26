package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Texter is implemented by payloads that have a plain-text rendering.
type Texter interface {
	Text() string
}

// Envelope wraps CLI payloads as {"data": ...}.
type Envelope struct {
	Data any `json:"data"`
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - edn
// - text (payloads implementing Texter, possibly inside an Envelope)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s (want json|edn|text)", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

func WriteText(w io.Writer, v any) error {
	if env, ok := v.(Envelope); ok {
		v = env.Data
	}
	t, ok := v.(Texter)
	if !ok {
		return fmt.Errorf("text format is not available for this output")
	}
	s := strings.TrimRight(t.Text(), "\n")
	_, err := fmt.Fprintln(w, s)
	return err
}
