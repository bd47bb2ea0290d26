package fetch

import (
	"fmt"
	"net/http"
)

// Error is returned for every failed load: transport errors, non-2xx responses, and
// bodies that do not contain a valid items array. Callers show no partial data.
type Error struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("fetch %s: %d %s: %v", e.Endpoint, e.Status, http.StatusText(e.Status), e.Err)
	case e.Status != 0:
		return fmt.Sprintf("fetch %s: %d %s", e.Endpoint, e.Status, http.StatusText(e.Status))
	case e.Err != nil:
		return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
	default:
		return fmt.Sprintf("fetch %s: failed", e.Endpoint)
	}
}

func (e *Error) Unwrap() error { return e.Err }
