package errors

import (
	stderrors "errors"
	"testing"

	burn "github.com/burnshell/burn"
	"github.com/stretchr/testify/assert"
)

func TestBurnErrorError(t *testing.T) {
	assert.Equal(t, "drive not acquired", ErrDriveNotAcquired.Error())
}

func TestWithMessageAppends(t *testing.T) {
	wrapped := ErrLBAOutOfRange.WithMessage("lba=-1")
	assert.Equal(t, "logical block address out of range: lba=-1", wrapped.Error())
}

func TestWrapPreservesUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	wrapped := ErrShortWrite.Wrap(cause)

	assert.Equal(t, "short write to track source: disk full", wrapped.Error())
	assert.Same(t, cause, stderrors.Unwrap(wrapped))
}

func TestWithMessageChains(t *testing.T) {
	wrapped := ErrInvalidArgument.WithMessage("first").WithMessage("second")
	assert.Equal(t, "invalid argument: first: second", wrapped.Error())
}

func TestSentinelsAreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrNotFound.Error(), ErrExists.Error())
}

func TestCodeReportsSubsystem(t *testing.T) {
	assert.Equal(t, "SCSI", ErrSCSIFailed.Code())
	assert.Equal(t, "TREE", ErrNotFound.Code())
	assert.Equal(t, "ARG", ErrInvalidArgument.Code())
}

func TestCodeFallsBackToGeneralForUnlistedSentinel(t *testing.T) {
	assert.Equal(t, "GENERAL", BurnError("made up for this test").Code())
}

func TestWithMessageAndWrapPreserveCode(t *testing.T) {
	assert.Equal(t, "ARG", ErrInvalidArgument.WithMessage("x").Code())
	assert.Equal(t, "SCSI", ErrSCSIFailed.Wrap(stderrors.New("boom")).Code())
}

func TestEventCarriesCodeAndMessage(t *testing.T) {
	ev := ErrDriveBusy.Event(burn.WARNING)
	assert.Equal(t, burn.WARNING, ev.Severity)
	assert.Equal(t, "DRIVE", ev.Code)
	assert.Equal(t, "drive or resource busy", ev.Message)
}

func TestWrappedErrorEventUsesDecoratedMessage(t *testing.T) {
	wrapped := ErrShortWrite.Wrap(stderrors.New("disk full"))
	ev := wrapped.Event(burn.FATAL)
	assert.Equal(t, "WRITE", ev.Code)
	assert.Equal(t, "short write to track source: disk full", ev.Message)
}
