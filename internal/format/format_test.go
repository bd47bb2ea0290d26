package format

import (
	"bytes"
	"strings"
	"testing"
)

type textPayload struct {
	Name string `json:"name"`
}

func (p textPayload) Text() string { return "name: " + p.Name + "\n" }

func TestWrite_JSONEnvelope(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, Envelope{Data: map[string]any{"order": []string{"1", "3"}}}, "json", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, want := buf.String(), `{"data":{"order":["1","3"]}}`+"\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestWrite_EDN(t *testing.T) {
	t.Parallel()

	v := map[string]any{
		"lists":       map[string]any{"1": []any{}, "10": []any{"x"}},
		"list_number": 12,
		"ok":          true,
		"none":        nil,
	}
	var buf bytes.Buffer
	if err := Write(&buf, v, "edn", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := `{:list-number 12 :lists {:list-1 [] :list-10 ["x"]} :none nil :ok true}` + "\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

func TestWrite_EDNPretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"a": []any{1, 2}}, true); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "{\n  :a [\n    1\n    2\n  ]\n}\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

func TestWrite_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, Envelope{Data: textPayload{Name: "x"}}, "text", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "name: x\n" {
		t.Fatalf("got %q", buf.String())
	}

	if err := Write(&buf, map[string]any{}, "text", false); err == nil {
		t.Fatalf("expected error for non-text payload")
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Write(&bytes.Buffer{}, nil, "xml", false)
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected unknown format error; got %v", err)
	}
}
