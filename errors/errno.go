// Package errors defines the sentinel error values used throughout burn's
// packages, along with a small builder interface for attaching context
// without losing errors.Is/errors.As compatibility.
//
// A BurnError describes *what* went wrong at the call site (bad argument,
// short read, drive not acquired); a burn.Severity is the interpreter's
// classification of *how bad* an event is for the purposes of -abort_on /
// -return_with (see root package burn.go). Every sentinel here carries a
// subsystem Code and can render itself as a burn.Event at a caller-chosen
// severity, so a handler that already has a DriverError doesn't need to
// re-derive a Code by hand to raise it on a burn.ProblemTracker.
package errors

import (
	"fmt"

	burn "github.com/burnshell/burn"
)

type BurnError string

const ErrAlreadyInProgress = BurnError("operation already in progress")
const ErrArgumentOutOfRange = BurnError("numerical argument out of domain")
const ErrDriveNotAcquired = BurnError("drive not acquired")
const ErrDriveBusy = BurnError("drive or resource busy")
const ErrCancelled = BurnError("operation cancelled on this drive")
const ErrLBAOutOfRange = BurnError("logical block address out of range")
const ErrMediaLBALimitExceeded = BurnError("write start at or beyond media LBA limit")
const ErrBufferTooSmall = BurnError("buffer too small for requested transfer")
const ErrUnsupportedProfile = BurnError("operation not supported for this media profile")
const ErrUnsupportedRole = BurnError("operation not supported for this drive role")
const ErrNotBlank = BurnError("media is not blank")
const ErrNotAppendable = BurnError("media is not appendable")
const ErrSCSIFailed = BurnError("SCSI command failed")
const ErrShortWrite = BurnError("short write to track source")
const ErrPrematureEOI = BurnError("premature end of input on non-open-ended track")
const ErrInvalidArgument = BurnError("invalid argument")
const ErrNotFound = BurnError("no such file or directory")
const ErrNotImplemented = BurnError("function not implemented")
const ErrNotSupported = BurnError("operation not supported")
const ErrExists = BurnError("already exists")
const ErrTooManyMatches = BurnError("pattern expansion exceeded memory budget")
const ErrEmptyExpansion = BurnError("pattern expansion produced no matches")
const ErrUnderflow = BurnError("path underflows working directory")
const ErrUnbalancedExpression = BurnError("unbalanced find expression")
const ErrUnexpectedEOF = BurnError("unexpected end of file or stream")

// subsystemCodes maps each sentinel to the short Code a burn.Event raised
// from it should carry (§7's event vocabulary), grouped by which component
// of the design owns the failure rather than by message text.
var subsystemCodes = map[BurnError]string{
	ErrAlreadyInProgress:     "DRIVE",
	ErrDriveNotAcquired:      "DRIVE",
	ErrDriveBusy:             "DRIVE",
	ErrCancelled:             "DRIVE",
	ErrArgumentOutOfRange:    "ARG",
	ErrLBAOutOfRange:         "ARG",
	ErrMediaLBALimitExceeded: "ARG",
	ErrBufferTooSmall:        "ARG",
	ErrInvalidArgument:       "ARG",
	ErrUnsupportedProfile:    "MEDIA",
	ErrUnsupportedRole:       "MEDIA",
	ErrNotBlank:              "MEDIA",
	ErrNotAppendable:         "MEDIA",
	ErrSCSIFailed:            "SCSI",
	ErrShortWrite:            "WRITE",
	ErrPrematureEOI:          "WRITE",
	ErrNotFound:              "TREE",
	ErrNotImplemented:        "TREE",
	ErrNotSupported:          "TREE",
	ErrExists:                "TREE",
	ErrTooManyMatches:        "PATTERN",
	ErrEmptyExpansion:        "PATTERN",
	ErrUnderflow:             "PATTERN",
	ErrUnbalancedExpression:  "FIND",
	ErrUnexpectedEOF:         "IO",
}

func (e BurnError) Error() string {
	return string(e)
}

// Code reports the subsystem that owns this sentinel, falling back to
// "GENERAL" for one that subsystemCodes doesn't name.
func (e BurnError) Code() string {
	if code, ok := subsystemCodes[e]; ok {
		return code
	}
	return "GENERAL"
}

// Event renders the sentinel as a burn.Event at severity.
func (e BurnError) Event(severity burn.Severity) burn.Event {
	return burn.Event{Severity: severity, Code: e.Code(), Message: string(e)}
}

func (e BurnError) WithMessage(message string) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", string(e), message),
		code:          e.Code(),
		originalError: e,
	}
}

func (e BurnError) Wrap(err error) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", string(e), err.Error()),
		code:          e.Code(),
		originalError: err,
	}
}
