package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestJSONEmitterSerializesEvent(t *testing.T) {
	buf := &bytes.Buffer{}
	emitter := NewJSONEmitter(buf)

	event := Event{
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:     LevelInfo,
		Event:     EventOperationStarted,
		Kind:      "repair",
		RunID:     "ab12cd34",
		Message:   "operation started",
		Details: map[string]any{
			"steps": 2,
		},
	}

	if err := emitter.Emit(event); err != nil {
		t.Fatalf("emit: %v", err)
	}

	line := strings.TrimSpace(buf.String())
	var decoded map[string]any
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}

	if decoded["event"] != string(EventOperationStarted) {
		t.Fatalf("unexpected event name: %v", decoded["event"])
	}
	if decoded["kind"] != "repair" {
		t.Fatalf("unexpected kind: %v", decoded["kind"])
	}
	if decoded["run_id"] != "ab12cd34" {
		t.Fatalf("unexpected run id: %v", decoded["run_id"])
	}
}

func TestHumanEmitterRoutesErrorsToStderr(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	emitter := NewHumanEmitter(stdout, stderr, false)

	if err := emitter.Emit(Event{Level: LevelInfo, Event: EventOperationLog, Message: "a log line"}); err != nil {
		t.Fatalf("emit info: %v", err)
	}
	if err := emitter.Emit(Event{Level: LevelError, Event: EventOperationError, Message: "broke"}); err != nil {
		t.Fatalf("emit error: %v", err)
	}

	if !strings.Contains(stdout.String(), "a log line") {
		t.Fatalf("expected info on stdout, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "ERROR: broke") {
		t.Fatalf("expected error on stderr, got %q", stderr.String())
	}
}

func TestHumanEmitterQuietKeepsFinalEvent(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	emitter := NewHumanEmitter(stdout, stderr, true)

	if err := emitter.Emit(Event{Level: LevelInfo, Event: EventOperationLog, Message: "noise"}); err != nil {
		t.Fatalf("emit log: %v", err)
	}
	if err := emitter.Emit(Event{Level: LevelInfo, Event: EventOperationFinished, Message: "operation completed"}); err != nil {
		t.Fatalf("emit finished: %v", err)
	}

	out := stdout.String()
	if strings.Contains(out, "noise") {
		t.Fatalf("expected quiet mode to drop log lines, got %q", out)
	}
	if !strings.Contains(out, "operation completed") {
		t.Fatalf("expected final event in quiet mode, got %q", out)
	}
}
