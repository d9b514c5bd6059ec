package dispatch

import (
	burn "github.com/burnshell/burn"
)

// ExitCodeTable maps a Severity to the process exit code -return_with
// selects for it (§6.5: 0 clean, 32-63 configured by -return_with).
type ExitCodeTable map[burn.Severity]int

// DefaultExitCodeTable is a representative mapping. With a caller-supplied
// table, burn.ProblemTracker.ReturnCode uses the listed severity closest at
// or below the run's eternal severity, so a missing severity gets the code of
// the next lower one listed, and 0 only when none at or below it is listed.
func DefaultExitCodeTable() ExitCodeTable {
	return ExitCodeTable{
		burn.DEBUG:   0,
		burn.UPDATE:  0,
		burn.NOTE:    0,
		burn.WARNING: 32,
		burn.SORRY:   33,
		burn.FAILURE: 34,
		burn.FATAL:   35,
		burn.ABORT:   36,
	}
}

// Outcome is what a command handler reports back to the dispatcher
// (§4.9 step 5).
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeError
	OutcomePardonedError
	OutcomeEndProgram
)

// Handler executes one Command's argument slice against whatever state it
// closes over, raising events on tracker as needed, and reports its
// outcome.
type Handler func(cmd Command, tracker *burn.ProblemTracker) Outcome

// Runner executes a sorted command list against a registered handler set,
// evaluating problem status after each command per §4.9 step 6: below
// abortOn tolerates (and logs a NOTE), at-or-above aborts.
type Runner struct {
	Handlers map[string]Handler
	Tracker  *burn.ProblemTracker
	AbortOn  burn.Severity
}

// RunResult is what Run reports once the command list is exhausted or
// aborted.
type RunResult struct {
	Aborted    bool
	AbortedAt  string
	Unhandled  []string
}

// Run executes commands in order, stopping early if a handler reports
// OutcomeEndProgram or a command's severity meets AbortOn.
func (r *Runner) Run(commands []Command) RunResult {
	var result RunResult
	for _, cmd := range commands {
		r.Tracker.ResetCurrent()

		handler, ok := r.Handlers[cmd.Name]
		if !ok {
			result.Unhandled = append(result.Unhandled, cmd.Name)
			r.Tracker.Raise(burn.Event{Severity: burn.NOTE, Code: cmd.Name, Message: "no handler registered; skipped"})
			continue
		}

		outcome := handler(cmd, r.Tracker)
		if outcome == OutcomeEndProgram {
			result.Aborted = true
			result.AbortedAt = cmd.Name
			return result
		}
		if outcome == OutcomePardonedError {
			r.Tracker.Raise(burn.Event{Severity: burn.NOTE, Code: cmd.Name, Message: "error pardoned"})
		}

		if r.Tracker.ShouldAbort(r.AbortOn) {
			result.Aborted = true
			result.AbortedAt = cmd.Name
			return result
		}
		if r.Tracker.Current() >= burn.NOTE {
			r.Tracker.Raise(burn.Event{Severity: burn.NOTE, Code: cmd.Name, Message: "tolerated problem event"})
		}
	}
	return result
}
