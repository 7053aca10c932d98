package op

// State describes where an operation is in its lifecycle. Transitions are
// monotonic: Idle -> Starting -> Running -> Completed or Failed.
type State int

const (
	StateIdle State = iota
	StateStarting
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further state changes can follow.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}
