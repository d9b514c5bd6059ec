package burn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "WARNING", WARNING.String())
	assert.Equal(t, "Severity(99)", Severity(99).String())
}

func TestParseSeverity(t *testing.T) {
	sev, ok := ParseSeverity("FAILURE")
	assert.True(t, ok)
	assert.Equal(t, FAILURE, sev)

	_, ok = ParseSeverity("nonsense")
	assert.False(t, ok)
}

func TestEventString(t *testing.T) {
	ev := Event{Severity: SORRY, Code: "PATTERN", Message: "no match"}
	assert.Equal(t, "PATTERN : SORRY : no match", ev.String())
}

func TestProblemTrackerRaiseAndReset(t *testing.T) {
	tr := NewProblemTracker()
	tr.Raise(Event{Severity: NOTE, Code: "A", Message: "a"})
	tr.Raise(Event{Severity: FAILURE, Code: "B", Message: "b"})

	assert.Equal(t, FAILURE, tr.Current())
	assert.Equal(t, FAILURE, tr.Eternal())
	assert.Len(t, tr.History(), 2)

	tr.ResetCurrent()
	assert.Equal(t, DEBUG, tr.Current())
	assert.Equal(t, FAILURE, tr.Eternal())
}

func TestProblemTrackerShouldAbort(t *testing.T) {
	tr := NewProblemTracker()
	tr.Raise(Event{Severity: WARNING, Code: "A", Message: "a"})

	assert.False(t, tr.ShouldAbort(FAILURE))
	assert.True(t, tr.ShouldAbort(WARNING))
}

func TestProblemTrackerReturnCode(t *testing.T) {
	tr := NewProblemTracker()
	tr.Raise(Event{Severity: FATAL, Code: "A", Message: "a"})

	table := map[Severity]int{
		WARNING: 32,
		SORRY:   33,
		FAILURE: 34,
		FATAL:   35,
		ABORT:   36,
	}
	assert.Equal(t, 35, tr.ReturnCode(table))

	emptyTracker := NewProblemTracker()
	assert.Equal(t, 0, emptyTracker.ReturnCode(table))
}
