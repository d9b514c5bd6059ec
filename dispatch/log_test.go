package dispatch

import (
	"bytes"
	"testing"
	"time"

	burn "github.com/burnshell/burn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLogRecordWritesLine(t *testing.T) {
	var buf bytes.Buffer
	log := NewSessionLog(&buf)
	ts := time.Unix(1700000000, 0)

	require.NoError(t, log.Record(ts, 16, 2048, "MYVOL"))
	require.NoError(t, log.Flush())

	assert.Equal(t, "1700000000 16 2048 MYVOL\n", buf.String())
}

func TestErrorLogRecordWithoutPath(t *testing.T) {
	var buf bytes.Buffer
	log := NewErrorLog(&buf)

	ev := burn.Event{Severity: burn.FAILURE, Code: "SCSI", Message: "read error"}
	require.NoError(t, log.Record(ev, ""))
	require.NoError(t, log.Flush())

	assert.Equal(t, "FAILURE SCSI read error\n", buf.String())
}

func TestErrorLogRecordWithPathAddsErrfile(t *testing.T) {
	var buf bytes.Buffer
	log := NewErrorLog(&buf)

	ev := burn.Event{Severity: burn.WARNING, Code: "FIND", Message: "skipped"}
	require.NoError(t, log.Record(ev, "/foo/bar"))
	require.NoError(t, log.Flush())

	assert.Equal(t, "WARNING FIND skipped ERRFILE /foo/bar\n", buf.String())
}

func TestErrorLogRecordQuotesPathWithWhitespace(t *testing.T) {
	var buf bytes.Buffer
	log := NewErrorLog(&buf)

	ev := burn.Event{Severity: burn.SORRY, Code: "FIND", Message: "skipped"}
	require.NoError(t, log.Record(ev, "/foo bar/baz"))
	require.NoError(t, log.Flush())

	assert.Contains(t, buf.String(), `"/foo bar/baz"`)
}

func TestShellQuoteLeavesPlainPathAlone(t *testing.T) {
	assert.Equal(t, "/foo/bar", shellQuote("/foo/bar"))
}

func TestShellQuoteQuotesPathWithQuoteCharacter(t *testing.T) {
	assert.NotEqual(t, `/foo"bar`, shellQuote(`/foo"bar`))
}
