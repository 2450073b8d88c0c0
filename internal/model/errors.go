package model

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrorCode identifies which validation rule a FieldError violated.
type ErrorCode string

const (
	CodeRequired      ErrorCode = "required"
	CodeInvalid       ErrorCode = "invalid"
	CodeInvalidChoice ErrorCode = "invalid_choice"
	CodeExists        ErrorCode = "exists"

	CodeMissingParty     ErrorCode = "missing_party"
	CodeUnknownParty     ErrorCode = "unknown_party"
	CodeSelfBooking      ErrorCode = "self_booking"
	CodeDuplicateBooking ErrorCode = "duplicate_booking"

	CodeNoBooking           ErrorCode = "no_booking"
	CodePastDate            ErrorCode = "past_date"
	CodeNonPositiveDuration ErrorCode = "non_positive_duration"
	CodeOverlappingSession  ErrorCode = "overlapping_session"
	CodeDuplicateDateTime   ErrorCode = "duplicate_datetime"
)

// FieldError is a validation failure tied to a single input field.
// Field is empty for record-level failures.
type FieldError struct {
	Field   string    `json:"field,omitempty"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func NewFieldError(field string, code ErrorCode, message string) *FieldError {
	return &FieldError{Field: field, Code: code, Message: message}
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// AsFieldError reports whether err wraps a FieldError.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
