package hover

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrEmptyArgument is returned before any request is made when a required
	// identifier or value is empty.
	ErrEmptyArgument = errors.New("hover: empty argument")

	// ErrMalformedResponse is returned when a response body is not a JSON object.
	ErrMalformedResponse = errors.New("hover: malformed response")
)

// APIError is a failure reported by the Hover API, either through an HTTP
// status of 400 or above or through "succeeded": false in the body.
// Body holds the response exactly as the provider sent it.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("hover: request failed with status %d", e.StatusCode)
	}
	return string(e.Body)
}

// Message returns the provider's "error" field when the body carries one,
// and the raw body otherwise.
func (e *APIError) Message() string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return e.Error()
}

type arg struct {
	name  string
	value string
}

func requireArgs(args ...arg) error {
	for _, a := range args {
		if a.value == "" {
			return fmt.Errorf("%w: %s", ErrEmptyArgument, a.name)
		}
	}
	return nil
}
