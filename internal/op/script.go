package op

import "time"

// Step is one unit of an operation's script. Run blocks until the step is
// finished and reports success. A step that observes a failed send on the
// sender must return immediately; the worker detects the closed feed and
// stops without emitting further messages.
type Step interface {
	Title() string
	Run(rc RunContext) bool
}

// RunContext is handed to each step by the worker.
type RunContext struct {
	Sender Sender
	// Timeout is the default wall-clock limit for external commands. Zero
	// means no limit. It is independent of the cancellation token: a step
	// that has started always runs to completion.
	Timeout time.Duration
}

// Sender is the step-facing side of the progress feed. Every method reports
// whether the owner still exists.
type Sender interface {
	Log(text string) bool
	StderrLog(text string) bool
	Error(text string) bool
	Stats(stats Stats) bool
}

// Script is the fixed, ordered list of steps for one operation kind.
type Script struct {
	Kind  string
	Title string
	// FailFast aborts the script on the first failed step. Best-effort
	// scripts (FailFast false) run every step and report Failed at the end
	// if any step failed.
	FailFast bool
	Steps    []Step
}
