package silvertalent

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidSlug is returned for a slug that is not a single path segment
var ErrInvalidSlug = errors.New("silvertalent: invalid slug")

// HTTPError is a non-2xx response from the backend
type HTTPError struct {
	Status  int
	Label   string // endpoint label used for the fallback message
	Message string // server supplied message, empty when the body had none
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("silvertalent: %s: HTTP %d: %s", e.Label, e.Status, e.UserMessage())
}

// UserMessage is the message from the error body, or "<label>: <status>"
// when the body was absent or not JSON
func (e *HTTPError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	text := http.StatusText(e.Status)
	if text == "" {
		text = fmt.Sprint(e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Label, text)
}

// NetworkError means the request never produced a response
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("silvertalent: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
