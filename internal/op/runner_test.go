package op

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// recordingSender captures everything a step emits.
type recordingSender struct {
	msgs   []Message
	closed bool
}

func (s *recordingSender) Log(text string) bool {
	s.msgs = append(s.msgs, LogMsg{Text: text})
	return !s.closed
}

func (s *recordingSender) StderrLog(text string) bool {
	s.msgs = append(s.msgs, LogMsg{Text: text, Stderr: true})
	return !s.closed
}

func (s *recordingSender) Error(text string) bool {
	s.msgs = append(s.msgs, ErrorMsg{Text: text})
	return !s.closed
}

func (s *recordingSender) Stats(stats Stats) bool {
	s.msgs = append(s.msgs, StatsMsg{Stats: stats})
	return !s.closed
}

func (s *recordingSender) logLines() []string {
	var lines []string
	for _, msg := range s.msgs {
		if lm, ok := msg.(LogMsg); ok {
			lines = append(lines, lm.Text)
		}
	}
	return lines
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "step.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestCommandStepForwardsOutputLines(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell test is POSIX-specific")
	}

	script := writeScript(t, "echo first\necho\necho second\necho warning >&2\n")
	sender := &recordingSender{}
	ok := CommandStep{Name: "echo-test", Bin: script}.Run(RunContext{Sender: sender})
	if !ok {
		t.Fatalf("expected successful step, messages: %#v", sender.msgs)
	}

	var stdout, stderr []string
	for _, msg := range sender.msgs {
		lm, isLog := msg.(LogMsg)
		if !isLog {
			continue
		}
		if lm.Stderr {
			stderr = append(stderr, lm.Text)
		} else {
			stdout = append(stdout, lm.Text)
		}
	}

	joined := strings.Join(stdout, "\n")
	if !strings.Contains(joined, "first") || !strings.Contains(joined, "second") {
		t.Fatalf("expected stdout lines forwarded, got %v", stdout)
	}
	if strings.Contains(joined, "\n\n") {
		t.Fatalf("expected empty lines to be dropped, got %v", stdout)
	}
	if len(stderr) != 1 || stderr[0] != "warning" {
		t.Fatalf("expected one tagged stderr line, got %v", stderr)
	}

	firstIdx := strings.Index(joined, "first")
	secondIdx := strings.Index(joined, "second")
	if firstIdx > secondIdx {
		t.Fatalf("stdout lines out of order: %v", stdout)
	}
}

func TestCommandStepReportsNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell test is POSIX-specific")
	}

	script := writeScript(t, "echo partial\nexit 3\n")
	sender := &recordingSender{}
	ok := CommandStep{Name: "fails", Bin: script}.Run(RunContext{Sender: sender})
	if ok {
		t.Fatalf("expected step to report failure")
	}

	lines := strings.Join(sender.logLines(), "\n")
	if !strings.Contains(lines, "partial") {
		t.Fatalf("expected partial output to be preserved, got %q", lines)
	}
	if !strings.Contains(lines, "exited with code 3") {
		t.Fatalf("expected exit-code log line, got %q", lines)
	}
}

func TestCommandStepLaunchFailureEmitsError(t *testing.T) {
	sender := &recordingSender{}
	ok := CommandStep{Name: "ghost", Bin: "tuneup-test-no-such-binary"}.Run(RunContext{Sender: sender})
	if ok {
		t.Fatalf("expected launch failure to report failure")
	}

	sawError := false
	for _, msg := range sender.msgs {
		if em, isErr := msg.(ErrorMsg); isErr {
			sawError = true
			if !strings.Contains(em.Text, "failed to launch") {
				t.Fatalf("unexpected error text %q", em.Text)
			}
		}
	}
	if !sawError {
		t.Fatalf("expected an ErrorMsg for the launch failure")
	}
}

func TestCommandStepTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell test is POSIX-specific")
	}

	script := writeScript(t, "sleep 5\n")
	sender := &recordingSender{}
	start := time.Now()
	ok := CommandStep{Name: "slow", Bin: script, Timeout: 100 * time.Millisecond}.Run(RunContext{Sender: sender})
	if ok {
		t.Fatalf("expected timed-out step to fail")
	}
	if elapsed := time.Since(start); elapsed > 4*time.Second {
		t.Fatalf("timeout took too long: %s", elapsed)
	}

	sawTimeout := false
	for _, msg := range sender.msgs {
		if em, isErr := msg.(ErrorMsg); isErr && strings.Contains(em.Text, "timed out") {
			sawTimeout = true
		}
	}
	if !sawTimeout {
		t.Fatalf("expected a timeout ErrorMsg, got %#v", sender.msgs)
	}
}

func TestTailBufferKeepsOnlyTail(t *testing.T) {
	buf := newTailBuffer(8)
	if _, err := buf.Write([]byte("0123456789")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := buf.String(); got != "23456789" {
		t.Fatalf("expected tail %q, got %q", "23456789", got)
	}

	buf = newTailBuffer(8)
	buf.Write([]byte("abcd"))
	buf.Write([]byte("efgh"))
	buf.Write([]byte("ij"))
	if got := buf.String(); got != "cdefghij" {
		t.Fatalf("expected rolling tail %q, got %q", "cdefghij", got)
	}
}
