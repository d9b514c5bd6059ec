package dispatch

import (
	"testing"

	burn "github.com/burnshell/burn"
	"github.com/stretchr/testify/assert"
)

func TestDefaultExitCodeTableMapsKnownSeverities(t *testing.T) {
	table := DefaultExitCodeTable()
	assert.Equal(t, 0, table[burn.DEBUG])
	assert.Equal(t, 32, table[burn.WARNING])
	assert.Equal(t, 36, table[burn.ABORT])
}

func TestRunnerRunExecutesAllCommandsInOrder(t *testing.T) {
	tracker := burn.NewProblemTracker()
	var executed []string
	runner := &Runner{
		Tracker: tracker,
		AbortOn: burn.ABORT,
		Handlers: map[string]Handler{
			"dev": func(cmd Command, tr *burn.ProblemTracker) Outcome {
				executed = append(executed, cmd.Name)
				return OutcomeOK
			},
			"commit": func(cmd Command, tr *burn.ProblemTracker) Outcome {
				executed = append(executed, cmd.Name)
				return OutcomeOK
			},
		},
	}
	result := runner.Run([]Command{{Name: "dev"}, {Name: "commit"}})
	assert.False(t, result.Aborted)
	assert.Equal(t, []string{"dev", "commit"}, executed)
}

func TestRunnerRunRecordsUnhandledCommands(t *testing.T) {
	tracker := burn.NewProblemTracker()
	runner := &Runner{Tracker: tracker, AbortOn: burn.ABORT, Handlers: map[string]Handler{}}
	result := runner.Run([]Command{{Name: "mystery"}})
	assert.Equal(t, []string{"mystery"}, result.Unhandled)
	assert.Equal(t, burn.NOTE, tracker.Eternal())
}

func TestRunnerRunStopsOnEndProgram(t *testing.T) {
	tracker := burn.NewProblemTracker()
	runner := &Runner{
		Tracker: tracker,
		AbortOn: burn.ABORT,
		Handlers: map[string]Handler{
			"end":    func(cmd Command, tr *burn.ProblemTracker) Outcome { return OutcomeEndProgram },
			"commit": func(cmd Command, tr *burn.ProblemTracker) Outcome { return OutcomeOK },
		},
	}
	result := runner.Run([]Command{{Name: "end"}, {Name: "commit"}})
	assert.True(t, result.Aborted)
	assert.Equal(t, "end", result.AbortedAt)
}

func TestRunnerRunAbortsWhenSeverityMeetsThreshold(t *testing.T) {
	tracker := burn.NewProblemTracker()
	runner := &Runner{
		Tracker: tracker,
		AbortOn: burn.FAILURE,
		Handlers: map[string]Handler{
			"rm": func(cmd Command, tr *burn.ProblemTracker) Outcome {
				tr.Raise(burn.Event{Severity: burn.FAILURE, Code: "RM", Message: "path not found"})
				return OutcomeError
			},
			"commit": func(cmd Command, tr *burn.ProblemTracker) Outcome { return OutcomeOK },
		},
	}
	result := runner.Run([]Command{{Name: "rm"}, {Name: "commit"}})
	assert.True(t, result.Aborted)
	assert.Equal(t, "rm", result.AbortedAt)
}

func TestRunnerRunPardonedErrorContinues(t *testing.T) {
	tracker := burn.NewProblemTracker()
	runner := &Runner{
		Tracker: tracker,
		AbortOn: burn.ABORT,
		Handlers: map[string]Handler{
			"rm":     func(cmd Command, tr *burn.ProblemTracker) Outcome { return OutcomePardonedError },
			"commit": func(cmd Command, tr *burn.ProblemTracker) Outcome { return OutcomeOK },
		},
	}
	result := runner.Run([]Command{{Name: "rm"}, {Name: "commit"}})
	assert.False(t, result.Aborted)

	var sawPardon bool
	for _, ev := range tracker.History() {
		if ev.Message == "error pardoned" {
			sawPardon = true
		}
	}
	assert.True(t, sawPardon)
}
