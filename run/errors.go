package run

import "fmt"

var (
	// ErrRunActive is returned by StartRun when the previous run has not been
	// ended yet. Runs are strictly sequential per coordinator.
	ErrRunActive = fmt.Errorf("run already active")

	// ErrNoActiveRun is returned when Observer or EndRun is called outside a
	// StartRun / EndRun window.
	ErrNoActiveRun = fmt.Errorf("no active run")
)
