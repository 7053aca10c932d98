package op

import (
	"fmt"
	"sync"
	"time"
)

// Options tunes a launched worker.
type Options struct {
	// Timeout is the default per-command wall-clock limit. Zero disables it.
	Timeout time.Duration
}

// Handle is the owner-side object for one running operation: the receiving
// end of the progress feed, the cancellation token, and the join point for
// the background goroutine.
type Handle struct {
	feed      *feed
	token     *CancelToken
	done      chan struct{}
	closeOnce sync.Once
}

// Start launches script on a new goroutine and returns its handle. At most
// one handle should be live at a time; enforcing that is the caller's slot
// (the UI rejects launches while an operation is active).
func Start(script Script, opts Options) *Handle {
	h := &Handle{
		feed:  newFeed(),
		token: NewCancelToken(),
		done:  make(chan struct{}),
	}
	go h.run(script, opts)
	return h
}

// TryNext performs a non-blocking receive of the next progress message.
func (h *Handle) TryNext() (Message, bool) {
	return h.feed.tryRecv()
}

// Cancel requests cooperative cancellation. The worker observes it between
// steps; a step already running is never interrupted.
func (h *Handle) Cancel() {
	h.token.Cancel()
}

// Close tears the operation down: it requests cancellation, releases the
// feed so the worker cannot block on a send, and then waits for the
// goroutine to exit. It must be called exactly this way round so no
// goroutine outlives a handle that has been discarded. Idempotent.
func (h *Handle) Close() {
	h.closeOnce.Do(func() {
		h.token.Cancel()
		h.feed.close()
		<-h.done
	})
}

func (h *Handle) run(script Script, opts Options) {
	defer close(h.done)
	defer func() {
		if r := recover(); r != nil {
			// A misbehaving step must never take the owner down; surface
			// the failure as data and terminate the protocol properly.
			h.feed.send(ErrorMsg{Text: fmt.Sprintf("unexpected failure in %s: %v", script.Kind, r)})
			h.feed.send(StateMsg{State: StateFailed})
			h.feed.send(DoneMsg{})
		}
	}()

	if !h.feed.send(StateMsg{State: StateStarting}) {
		return
	}
	if !h.feed.send(StateMsg{State: StateRunning}) {
		return
	}
	if !h.feed.send(LogMsg{Text: fmt.Sprintf("=== %s ===", script.Title)}) {
		return
	}

	rc := RunContext{
		Sender:  feedSender{f: h.feed},
		Timeout: opts.Timeout,
	}

	allOK := true
	for i, step := range script.Steps {
		if h.token.Cancelled() {
			h.feed.send(LogMsg{Text: "operation cancelled"})
			h.feed.send(StateMsg{State: StateFailed})
			h.feed.send(DoneMsg{})
			return
		}

		if len(script.Steps) > 1 {
			if !h.feed.send(LogMsg{Text: fmt.Sprintf("step %d/%d: %s", i+1, len(script.Steps), step.Title())}) {
				return
			}
		}

		ok := step.Run(rc)
		if h.feed.isClosed() {
			return
		}
		if !ok {
			allOK = false
			if script.FailFast {
				break
			}
			if i < len(script.Steps)-1 {
				if !h.feed.send(ErrorMsg{Text: fmt.Sprintf("%s failed, continuing with remaining steps", step.Title())}) {
					return
				}
			}
		}
	}

	if allOK {
		h.feed.send(LogMsg{Text: fmt.Sprintf("=== %s completed ===", script.Title)})
		h.feed.send(StateMsg{State: StateCompleted})
	} else {
		h.feed.send(ErrorMsg{Text: fmt.Sprintf("%s finished with errors", script.Title)})
		h.feed.send(StateMsg{State: StateFailed})
	}
	h.feed.send(DoneMsg{})
}

// feedSender adapts the feed to the step-facing Sender interface.
type feedSender struct {
	f *feed
}

func (s feedSender) Log(text string) bool {
	return s.f.send(LogMsg{Text: text})
}

func (s feedSender) StderrLog(text string) bool {
	return s.f.send(LogMsg{Text: text, Stderr: true})
}

func (s feedSender) Error(text string) bool {
	return s.f.send(ErrorMsg{Text: text})
}

func (s feedSender) Stats(stats Stats) bool {
	return s.f.send(StatsMsg{Stats: stats})
}
