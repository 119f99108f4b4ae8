package models

import (
	"errors"
	"fmt"
)

// ErrEmptyCorpus is returned when the classifier is initialized with no
// labeled training messages. This is fatal at process start.
var ErrEmptyCorpus = errors.New("training corpus is empty")

// InputError describes a rejected form field. The assessment is not
// computed; callers surface the reason as a validation message.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Reason)
}

// NewInputError creates an InputError for the given field
func NewInputError(field, reason string) *InputError {
	return &InputError{Field: field, Reason: reason}
}

// IsInputError reports whether err is (or wraps) an InputError
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
