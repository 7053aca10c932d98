package op

import (
	"sync/atomic"
	"testing"
	"time"
)

type funcStep struct {
	name string
	fn   func(rc RunContext) bool
}

func (s funcStep) Title() string { return s.name }

func (s funcStep) Run(rc RunContext) bool { return s.fn(rc) }

// collectMessages drains h without blocking receives until the terminal
// sentinel arrives, mirroring how the UI consumer behaves.
func collectMessages(t *testing.T, h *Handle) []Message {
	t.Helper()
	deadline := time.After(5 * time.Second)
	var msgs []Message
	for {
		msg, ok := h.TryNext()
		if !ok {
			select {
			case <-deadline:
				t.Fatalf("timed out waiting for DoneMsg; collected %d message(s)", len(msgs))
			case <-time.After(2 * time.Millisecond):
			}
			continue
		}
		msgs = append(msgs, msg)
		if _, done := msg.(DoneMsg); done {
			return msgs
		}
	}
}

func finalState(t *testing.T, msgs []Message) State {
	t.Helper()
	state := StateIdle
	for _, msg := range msgs {
		if sm, ok := msg.(StateMsg); ok {
			state = sm.State
		}
	}
	return state
}

func TestWorkerEmitsMessagesInSendOrder(t *testing.T) {
	script := Script{
		Kind:  "demo",
		Title: "Demo",
		Steps: []Step{
			funcStep{name: "chatty", fn: func(rc RunContext) bool {
				for _, line := range []string{"one", "two", "three"} {
					if !rc.Sender.Log(line) {
						return false
					}
				}
				return true
			}},
		},
	}

	h := Start(script, Options{})
	defer h.Close()
	msgs := collectMessages(t, h)

	if len(msgs) < 5 {
		t.Fatalf("expected at least 5 messages, got %d", len(msgs))
	}
	first, ok := msgs[0].(StateMsg)
	if !ok || first.State != StateStarting {
		t.Fatalf("expected first message to be StateMsg(starting), got %#v", msgs[0])
	}
	second, ok := msgs[1].(StateMsg)
	if !ok || second.State != StateRunning {
		t.Fatalf("expected second message to be StateMsg(running), got %#v", msgs[1])
	}

	var logs []string
	for _, msg := range msgs {
		if lm, ok := msg.(LogMsg); ok {
			logs = append(logs, lm.Text)
		}
	}
	wantOrder := []string{"one", "two", "three"}
	found := 0
	for _, line := range logs {
		if found < len(wantOrder) && line == wantOrder[found] {
			found++
		}
	}
	if found != len(wantOrder) {
		t.Fatalf("step log lines out of order or missing, got %v", logs)
	}

	if finalState(t, msgs) != StateCompleted {
		t.Fatalf("expected terminal state completed, got %v", finalState(t, msgs))
	}
}

func TestWorkerEmitsExactlyOneDoneAndAlwaysLast(t *testing.T) {
	script := Script{
		Kind:  "demo",
		Title: "Demo",
		Steps: []Step{
			funcStep{name: "noop", fn: func(rc RunContext) bool { return true }},
		},
	}

	h := Start(script, Options{})
	defer h.Close()
	msgs := collectMessages(t, h)

	doneCount := 0
	for i, msg := range msgs {
		if _, ok := msg.(DoneMsg); ok {
			doneCount++
			if i != len(msgs)-1 {
				t.Fatalf("DoneMsg observed at position %d of %d", i, len(msgs))
			}
		}
	}
	if doneCount != 1 {
		t.Fatalf("expected exactly one DoneMsg, got %d", doneCount)
	}

	// The feed must be empty afterwards; an empty drain mutates nothing.
	if msg, ok := h.TryNext(); ok {
		t.Fatalf("expected empty feed after DoneMsg, got %#v", msg)
	}
}

func TestWorkerContinueOnFailureRunsAllStepsAndFails(t *testing.T) {
	var ran []string
	step := func(name string, ok bool) Step {
		return funcStep{name: name, fn: func(rc RunContext) bool {
			ran = append(ran, name)
			rc.Sender.Log(name + " output")
			return ok
		}}
	}

	script := Script{
		Kind:     "demo",
		Title:    "Demo",
		FailFast: false,
		Steps:    []Step{step("stepA", true), step("stepB", false)},
	}

	h := Start(script, Options{})
	defer h.Close()
	msgs := collectMessages(t, h)

	if len(ran) != 2 || ran[0] != "stepA" || ran[1] != "stepB" {
		t.Fatalf("expected both steps to run in order, got %v", ran)
	}
	if finalState(t, msgs) != StateFailed {
		t.Fatalf("expected terminal state failed, got %v", finalState(t, msgs))
	}

	sawA, sawB := false, false
	for _, msg := range msgs {
		if lm, ok := msg.(LogMsg); ok {
			if lm.Text == "stepA output" {
				sawA = true
			}
			if lm.Text == "stepB output" {
				sawB = true
			}
		}
	}
	if !sawA || !sawB {
		t.Fatalf("expected output from both steps (A=%v B=%v)", sawA, sawB)
	}
}

func TestWorkerFailFastStopsAfterFirstFailure(t *testing.T) {
	var secondRan atomic.Bool
	script := Script{
		Kind:     "demo",
		Title:    "Demo",
		FailFast: true,
		Steps: []Step{
			funcStep{name: "bad", fn: func(rc RunContext) bool { return false }},
			funcStep{name: "never", fn: func(rc RunContext) bool {
				secondRan.Store(true)
				return true
			}},
		},
	}

	h := Start(script, Options{})
	defer h.Close()
	msgs := collectMessages(t, h)

	if secondRan.Load() {
		t.Fatalf("expected fail-fast script to skip remaining steps")
	}
	if finalState(t, msgs) != StateFailed {
		t.Fatalf("expected terminal state failed, got %v", finalState(t, msgs))
	}
}

func TestWorkerCancelledBeforeFirstStepRunsNothing(t *testing.T) {
	var stepRan atomic.Bool
	script := Script{
		Kind:  "demo",
		Title: "Demo",
		Steps: []Step{
			funcStep{name: "never", fn: func(rc RunContext) bool {
				stepRan.Store(true)
				return true
			}},
		},
	}

	// Build the handle by hand so cancellation is guaranteed to land before
	// the goroutine reaches its first between-step check.
	h := &Handle{feed: newFeed(), token: NewCancelToken(), done: make(chan struct{})}
	h.token.Cancel()
	go h.run(script, Options{})
	defer h.Close()

	msgs := collectMessages(t, h)

	if stepRan.Load() {
		t.Fatalf("expected zero step invocations after early cancellation")
	}
	if finalState(t, msgs) != StateFailed {
		t.Fatalf("expected cancelled operation to end failed, got %v", finalState(t, msgs))
	}

	sawCancelLog := false
	for _, msg := range msgs {
		if lm, ok := msg.(LogMsg); ok && lm.Text == "operation cancelled" {
			sawCancelLog = true
		}
	}
	if !sawCancelLog {
		t.Fatalf("expected a cancellation log line")
	}
}

func TestWorkerCancelBetweenStepsSkipsRemainder(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var secondRan atomic.Bool

	script := Script{
		Kind:  "demo",
		Title: "Demo",
		Steps: []Step{
			funcStep{name: "gate", fn: func(rc RunContext) bool {
				close(entered)
				<-release
				return true
			}},
			funcStep{name: "never", fn: func(rc RunContext) bool {
				secondRan.Store(true)
				return true
			}},
		},
	}

	h := Start(script, Options{})
	defer h.Close()

	<-entered
	h.Cancel()
	close(release)

	msgs := collectMessages(t, h)

	if secondRan.Load() {
		t.Fatalf("expected cancellation between steps to skip the second step")
	}
	if finalState(t, msgs) != StateFailed {
		t.Fatalf("expected terminal state failed after cancellation, got %v", finalState(t, msgs))
	}
}

func TestHandleCloseJoinsBlockedWorker(t *testing.T) {
	// The step floods the feed past its buffer so the worker ends up blocked
	// on a send with nobody draining. Close must unblock it and join.
	script := Script{
		Kind:  "demo",
		Title: "Demo",
		Steps: []Step{
			funcStep{name: "flood", fn: func(rc RunContext) bool {
				for i := 0; i < feedCapacity*2; i++ {
					if !rc.Sender.Log("line") {
						return false
					}
				}
				return true
			}},
		},
	}

	h := Start(script, Options{})

	closed := make(chan struct{})
	go func() {
		h.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatalf("Close did not join the worker goroutine")
	}

	select {
	case <-h.done:
	default:
		t.Fatalf("worker goroutine still running after Close returned")
	}
}

func TestWorkerContainsStepPanic(t *testing.T) {
	script := Script{
		Kind:  "demo",
		Title: "Demo",
		Steps: []Step{
			funcStep{name: "boom", fn: func(rc RunContext) bool {
				panic("step blew up")
			}},
		},
	}

	h := Start(script, Options{})
	defer h.Close()
	msgs := collectMessages(t, h)

	sawError := false
	for _, msg := range msgs {
		if _, ok := msg.(ErrorMsg); ok {
			sawError = true
		}
	}
	if !sawError {
		t.Fatalf("expected ErrorMsg describing the panic")
	}
	if finalState(t, msgs) != StateFailed {
		t.Fatalf("expected panicking step to end failed, got %v", finalState(t, msgs))
	}
	if _, ok := msgs[len(msgs)-1].(DoneMsg); !ok {
		t.Fatalf("expected DoneMsg last even after a panic")
	}
}
