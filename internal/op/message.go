package op

// Message is one progress item sent from a worker to its owner. The concrete
// types below are the only implementations; the owner switches on them when
// draining a handle.
type Message interface {
	isMessage()
}

// LogMsg is a human-readable line to append to the operation log. Stderr marks
// lines captured from a command's error stream so the UI can color them.
type LogMsg struct {
	Text   string
	Stderr bool
}

// StateMsg reports a lifecycle transition.
type StateMsg struct {
	State State
}

// StatsMsg carries a full counters snapshot.
type StatsMsg struct {
	Stats Stats
}

// ErrorMsg describes a recoverable failure. It does not by itself terminate
// the operation.
type ErrorMsg struct {
	Text string
}

// DoneMsg is the terminal sentinel. Exactly one is sent per operation, always
// last; observing it means the handle can be closed without blocking.
type DoneMsg struct{}

func (LogMsg) isMessage()   {}
func (StateMsg) isMessage() {}
func (StatsMsg) isMessage() {}
func (ErrorMsg) isMessage() {}
func (DoneMsg) isMessage()  {}
