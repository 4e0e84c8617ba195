package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/honeycarbs/silver-talent/pkg/silvertalent"
)

// User facing fallbacks
const (
	NetworkMessage = "Failed to load. Please check your connection and try again."
	GenericMessage = "Something went wrong. Please try again."
)

// ValidationError is a local, field-level form error. It is never sent to the backend.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors collects every failing field of one form
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// Field returns the reason attached to field, if any
func (v ValidationErrors) Field(field string) (string, bool) {
	for _, e := range v {
		if e.Field == field {
			return e.Reason, true
		}
	}
	return "", false
}

// Err returns nil when v is empty so callers can return it directly
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// MessageOf converts any error into the message shown to the user.
// fallback replaces GenericMessage for errors outside the taxonomy.
func MessageOf(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if fallback == "" {
		fallback = GenericMessage
	}

	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Error()
	}

	var verr ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}

	var httpErr *silvertalent.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.UserMessage()
	}

	// An expired request timeout is reported like any other transport failure
	var netErr *silvertalent.NetworkError
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return NetworkMessage
	}

	return fallback
}

// IsCanceled reports an error caused by a superseded request being aborted
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
