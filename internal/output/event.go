package output

import "time"

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type EventName string

const (
	EventOperationStarted  EventName = "operation_started"
	EventOperationLog      EventName = "operation_log"
	EventOperationStats    EventName = "operation_stats"
	EventOperationError    EventName = "operation_error"
	EventOperationFinished EventName = "operation_finished"
)

type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Event     EventName      `json:"event"`
	Kind      string         `json:"kind,omitempty"`
	RunID     string         `json:"run_id,omitempty"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}
