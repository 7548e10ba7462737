package graphql

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoData is returned when a response has neither data nor errors.
var ErrNoData = errors.New("graphql: response carried no data")

// HTTPError is a non-200 reply from the endpoint.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("graphql: endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("graphql: endpoint returned status %d: %s", e.StatusCode, body)
}

// Location points into the query document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is one entry of a response's "errors" array.
type Error struct {
	Message   string     `json:"message"`
	Path      []any      `json:"path,omitempty"`
	Locations []Location `json:"locations,omitempty"`
}

func (e Error) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	parts := make([]string, len(e.Path))
	for i, p := range e.Path {
		parts[i] = fmt.Sprint(p)
	}
	return e.Message + " (at " + strings.Join(parts, ".") + ")"
}

// Errors is the full "errors" array of a response.
type Errors []Error

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "graphql: " + strings.Join(msgs, "; ")
}
