package dispatch

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	burn "github.com/burnshell/burn"
)

// SessionLog appends one line per successful write: timestamp, start LBA,
// size, volume ID (§6.2), grounded on xorriso's -session_log option.
type SessionLog struct {
	w *bufio.Writer
}

// NewSessionLog wraps w for buffered line appends. Lines stay in the buffer
// until Flush is called; nothing flushes them automatically, not even
// process exit.
func NewSessionLog(w io.Writer) *SessionLog {
	return &SessionLog{w: bufio.NewWriter(w)}
}

// Record appends one session-log line.
func (s *SessionLog) Record(ts time.Time, startLBA, size int64, volID string) error {
	_, err := fmt.Fprintf(s.w, "%d %d %d %s\n", ts.Unix(), startLBA, size, volID)
	return err
}

func (s *SessionLog) Flush() error { return s.w.Flush() }

// ErrorLog appends one line per event, optionally marked with ERRFILE and a
// shell-safe path (§6.2), grounded on xorriso's -error_behavior logfile
// option.
type ErrorLog struct {
	w *bufio.Writer
}

func NewErrorLog(w io.Writer) *ErrorLog {
	return &ErrorLog{w: bufio.NewWriter(w)}
}

// Record appends one error-log line for ev, optionally tagging path as the
// ERRFILE (shell-quoted if it contains whitespace or quotes).
func (e *ErrorLog) Record(ev burn.Event, path string) error {
	if path == "" {
		_, err := fmt.Fprintf(e.w, "%s %s %s\n", ev.Severity, ev.Code, ev.Message)
		return err
	}
	_, err := fmt.Fprintf(e.w, "%s %s %s ERRFILE %s\n", ev.Severity, ev.Code, ev.Message, shellQuote(path))
	return err
}

func (e *ErrorLog) Flush() error { return e.w.Flush() }

func shellQuote(path string) string {
	if !strings.ContainsAny(path, " \t\n'\"\\") {
		return path
	}
	return strconv.Quote(path)
}
