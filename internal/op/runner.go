package op

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// captureLimit bounds how much of each output stream is kept. Maintenance
// commands like a full integrity scan can print megabytes; only the tail is
// interesting when the buffer overflows.
const captureLimit = 256 * 1024

// CommandStep runs one external command to completion and forwards each
// non-empty output line as a log message. Error-stream lines are tagged so
// the UI can color them distinctly. Cancellation is never checked mid-run:
// interrupting a partially applied repair could leave the machine worse off
// than letting the command finish.
type CommandStep struct {
	Name string
	Bin  string
	Args []string
	// Timeout overrides RunContext.Timeout for this step when non-zero.
	Timeout time.Duration
}

func (s CommandStep) Title() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Bin
}

func (s CommandStep) Run(rc RunContext) bool {
	if s.Bin == "" {
		rc.Sender.Error("step has no command configured")
		return false
	}
	if !rc.Sender.Log(fmt.Sprintf("running: %s %s", s.Bin, strings.Join(s.Args, " "))) {
		return false
	}

	ctx := context.Background()
	cancel := func() {}
	timeout := s.Timeout
	if timeout == 0 {
		timeout = rc.Timeout
	}
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	stdout := newTailBuffer(captureLimit)
	stderr := newTailBuffer(captureLimit)

	cmd := exec.CommandContext(ctx, s.Bin, s.Args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	// Orphaned grandchildren can keep the output pipes open after a timeout
	// kill; stop copying shortly after the context expires instead of
	// waiting on them.
	cmd.WaitDelay = time.Second

	runErr := cmd.Run()

	if !forwardLines(rc.Sender, stdout.String(), false) {
		return false
	}
	if !forwardLines(rc.Sender, stderr.String(), true) {
		return false
	}

	if runErr == nil {
		rc.Sender.Log(fmt.Sprintf("%s finished successfully", s.Title()))
		return true
	}

	if ctx.Err() == context.DeadlineExceeded {
		rc.Sender.Error(fmt.Sprintf("%s timed out after %s", s.Title(), timeout))
		return false
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		rc.Sender.Log(fmt.Sprintf("%s exited with code %d", s.Title(), exitErr.ExitCode()))
		return false
	}

	// The command never started (not found, permission denied, ...).
	rc.Sender.Error(fmt.Sprintf("failed to launch %s: %v", s.Bin, runErr))
	return false
}

// forwardLines splits captured output into lines and sends each non-empty one.
// Returns false as soon as a send fails.
func forwardLines(sender Sender, text string, isStderr bool) bool {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), captureLimit)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if isStderr {
			if !sender.StderrLog(line) {
				return false
			}
			continue
		}
		if !sender.Log(line) {
			return false
		}
	}
	return true
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	buf []byte
	max int
}

func newTailBuffer(max int) *tailBuffer {
	if max <= 0 {
		max = 64 * 1024
	}
	return &tailBuffer{
		buf: make([]byte, 0, max),
		max: max,
	}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(p) >= t.max {
		t.buf = append(t.buf[:0], p[len(p)-t.max:]...)
		return len(p), nil
	}
	overflow := len(t.buf) + len(p) - t.max
	if overflow > 0 {
		t.buf = append(t.buf[:0], t.buf[overflow:]...)
	}
	t.buf = append(t.buf, p...)
	return len(p), nil
}

func (t *tailBuffer) String() string {
	return string(t.buf)
}
