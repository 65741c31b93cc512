package backend

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/modoterra/sugar/pkg/core"
)

func TestRunSuccess(t *testing.T) {
	r := &ExecRunner{}
	if err := r.Run(context.Background(), "true", nil); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	r := &ExecRunner{}
	err := r.Run(context.Background(), "sh", []string{"-c", "exit 3"})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	var se *core.Error
	if !errors.As(err, &se) || se.Kind != core.ErrBackendCommand {
		t.Fatalf("expected backend-command error, got %v", err)
	}
	if !strings.Contains(se.Message, "status 3") {
		t.Errorf("message should include exit status: %q", se.Message)
	}
}

func TestRunInterrupt(t *testing.T) {
	interrupts := make(chan os.Signal, 1)
	r := &ExecRunner{Interrupts: interrupts}

	done := make(chan error, 1)
	go func() {
		done <- r.Run(context.Background(), "sleep", []string{"10"})
	}()

	// Give the child a moment to start, then deliver the interrupt.
	time.Sleep(100 * time.Millisecond)
	interrupts <- os.Interrupt

	select {
	case err := <-done:
		var se *core.Error
		if !errors.As(err, &se) || se.Kind != core.ErrInterrupted {
			t.Fatalf("expected interrupted error, got %v", err)
		}
		if !strings.Contains(se.Message, "killed") {
			t.Errorf("message: %q", se.Message)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("interrupt did not stop the child process")
	}
}

func TestRunDryRunSkipsExecution(t *testing.T) {
	r := &ExecRunner{DryRun: true}
	// A dry run of a command that would fail must still succeed.
	if err := r.Run(context.Background(), "sh", []string{"-c", "exit 1"}); err != nil {
		t.Fatalf("dry run: %v", err)
	}
}

func TestCapture(t *testing.T) {
	r := &ExecRunner{}
	out, err := r.Capture(context.Background(), "sh", []string{"-c", "echo hello"})
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("stdout: got %q", out)
	}
}

func TestCaptureFailureIncludesStderr(t *testing.T) {
	r := &ExecRunner{}
	_, err := r.Capture(context.Background(), "sh", []string{"-c", "echo boom >&2; exit 1"})
	if err == nil {
		t.Fatal("expected error")
	}
	var se *core.Error
	if !errors.As(err, &se) || se.Kind != core.ErrBackendCommand {
		t.Fatalf("expected backend-command error, got %v", err)
	}
	if !strings.Contains(se.Message, "boom") {
		t.Errorf("stderr not included: %q", se.Message)
	}
}
