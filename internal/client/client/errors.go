package client

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable wraps transport failures: DNS, refused connections,
	// timeouts.
	ErrUnavailable = errors.New("server unavailable")
	ErrNotFound    = errors.New("not found")
)

// ServerError is a non-2xx answer from the API.
type ServerError struct {
	Status int
	// Detail is the message extracted from the response body, if any.
	Detail string
}

func (e *ServerError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
}

func (e *ServerError) Is(target error) bool {
	return target == ErrNotFound && e.Status == 404
}

// Detail returns the server-provided error detail when err carries one, and
// the plain error message otherwise.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var se *ServerError
	if errors.As(err, &se) && se.Detail != "" {
		return se.Detail
	}
	return err.Error()
}

// detailFromBody pulls a message out of an error body. JSON bodies are
// searched for message/error/detail; anything else is used verbatim.
func detailFromBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return text
	}
	for _, key := range []string{"message", "error", "detail"} {
		switch v := fields[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if msg, ok := v["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return text
}
