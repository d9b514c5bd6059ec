package errors

import (
	"fmt"

	burn "github.com/burnshell/burn"
)

// DriverError is satisfied by every sentinel in this package and by the
// values its builder methods return, so call sites can keep chaining
// WithMessage/Wrap without caring whether they're holding the original
// sentinel or an already-decorated one. Beyond the plain error contract, a
// DriverError knows which subsystem raised it (Code) and can render itself
// as a burn.Event at whatever severity the caller judges appropriate, so a
// call site need not hand-assemble a burn.Event{Code: "..."} literal from
// an error's message text (media/drive.go and mmc/write.go still build
// their WRITE events that way).
type DriverError interface {
	error
	WithMessage(message string) DriverError
	Wrap(err error) DriverError
	Code() string
	Event(severity burn.Severity) burn.Event
}

// -----------------------------------------------------------------------------

type customDriverError struct {
	message       string
	code          string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customDriverError) Error() string {
	return e.message
}

// Code reports the subsystem that raised the error, inherited from whichever
// sentinel started the WithMessage/Wrap chain.
func (e customDriverError) Code() string {
	return e.code
}

// Event renders the error as a burn.Event at severity, for handlers that
// want to raise it on a burn.ProblemTracker without re-deriving a Code by
// hand.
func (e customDriverError) Event(severity burn.Severity) burn.Event {
	return burn.Event{Severity: severity, Code: e.code, Message: e.message}
}

func (e customDriverError) WithMessage(message string) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		code:          e.code,
		originalError: e,
	}
}

func (e customDriverError) Wrap(err error) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		code:          e.code,
		originalError: err,
	}
}

func (e customDriverError) Unwrap() error {
	return e.originalError
}
