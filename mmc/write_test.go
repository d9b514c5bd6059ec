package mmc

import (
	"testing"

	burn "github.com/burnshell/burn"
	"github.com/burnshell/burn/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRejectsAtMediaLBALimit(t *testing.T) {
	d := newFakeDrive(newFakeIssuer())
	d.MediaLBALimit = 100
	tracker := burn.NewProblemTracker()
	buf := transport.NewBufferSize(2048, 2048)
	require.NoError(t, buf.SetUsed(2048))

	err := Write(d, tracker, 100, buf)
	assert.Error(t, err)
	assert.True(t, d.Cancel)
}

func TestWriteSucceedsAndMarksBufferUsed(t *testing.T) {
	issuer := newFakeIssuer()
	d := newFakeDrive(issuer)
	d.Pacing.PessimisticBufferFree = 10_000

	buf := transport.NewBufferSize(2048, 2048)
	require.NoError(t, buf.SetUsed(2048))

	err := Write(d, burn.NewProblemTracker(), 0, buf)
	require.NoError(t, err)
	assert.Equal(t, int64(10_000-2048), d.Pacing.PessimisticBufferFree)
	assert.Contains(t, issuer.calls, byte(opWrite10))
}

func TestWriteStreamingUsesWrite12(t *testing.T) {
	issuer := newFakeIssuer()
	d := newFakeDrive(issuer)
	d.DoStreamRecording = true
	d.StreamRecordingStart = 0

	buf := transport.NewBufferSize(2048, 2048)
	require.NoError(t, buf.SetUsed(2048))

	err := Write(d, burn.NewProblemTracker(), 5, buf)
	require.NoError(t, err)
	assert.Contains(t, issuer.calls, byte(opWrite12))
}

func TestWriteFailurePropagatesAndCancels(t *testing.T) {
	issuer := newFakeIssuer()
	issuer.fail[opWrite10] = true
	d := newFakeDrive(issuer)

	buf := transport.NewBufferSize(2048, 2048)
	require.NoError(t, buf.SetUsed(2048))

	tracker := burn.NewProblemTracker()
	err := Write(d, tracker, 0, buf)
	assert.Error(t, err)
	assert.True(t, d.Cancel)
	assert.Equal(t, burn.FATAL, tracker.Current())
}

func TestCloseTrackSessionEncodesCloseFunc(t *testing.T) {
	issuer := newFakeIssuer()
	d := newFakeDrive(issuer)

	err := CloseTrackSession(d, 1, 2, true)
	require.NoError(t, err)
	assert.False(t, d.NeedsCloseSession)
}

func TestSynchronizeCacheClearsFlag(t *testing.T) {
	issuer := newFakeIssuer()
	d := newFakeDrive(issuer)
	d.NeedsSyncCache = true

	err := SynchronizeCache(d)
	require.NoError(t, err)
	assert.False(t, d.NeedsSyncCache)
}
