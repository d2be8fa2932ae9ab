package apperr

import "fmt"

// Error is the application error carried across layers: an HTTP status,
// a stable numeric code and a machine-readable reason, plus a human
// message. The numeric codes are part of the public API and must not be
// renumbered.
type Error struct {
	HTTPCode int
	Code     int
	Reason   string
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Reason, e.Code, e.Message)
}

func New(httpCode, code int, reason, message string) *Error {
	return &Error{HTTPCode: httpCode, Code: code, Reason: reason, Message: message}
}
