package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"

	"github.com/modoterra/sugar/pkg/console"
	"github.com/modoterra/sugar/pkg/core"
)

// Runner executes backend commands.
type Runner interface {
	// Run launches the command with inherited stdio and waits for it.
	Run(ctx context.Context, exe string, args []string) error
	// Capture runs the command and returns its stdout.
	Capture(ctx context.Context, exe string, args []string) (string, error)
}

// ExecRunner runs backend commands as child processes.
type ExecRunner struct {
	Verbose bool
	DryRun  bool
	Logger  *slog.Logger

	// Interrupts overrides the signal source for tests. When nil the
	// runner subscribes to os.Interrupt itself.
	Interrupts <-chan os.Signal
}

// Run launches exe with the current process's stdin/stdout/stderr and waits
// for completion. An operator interrupt while waiting kills the child and is
// reported as an interrupted error naming the pid.
func (r *ExecRunner) Run(ctx context.Context, exe string, args []string) error {
	if r.Verbose || r.DryRun {
		console.Info(fmt.Sprintf(">>> %s %s", exe, strings.Join(args, " ")))
		console.Info(strings.Repeat("-", 80))
	}
	if r.DryRun {
		console.Warning("running in dry-run mode, the command was skipped")
		return nil
	}
	if r.Logger != nil {
		r.Logger.Debug("invoking backend", "exe", exe, "args", args)
	}

	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return core.NewError(core.ErrBackendCommand, "cannot start %s: %v", exe, err)
	}

	interrupts := r.Interrupts
	if interrupts == nil {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		defer signal.Stop(ch)
		interrupts = ch
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return mapWaitError(exe, err)
	case <-interrupts:
		pid := cmd.Process.Pid
		_ = cmd.Process.Kill()
		<-done
		return core.NewError(core.ErrInterrupted, "process %d killed", pid)
	}
}

// Capture runs exe and returns its stdout. Stderr is collected and included
// in the error on failure.
func (r *ExecRunner) Capture(ctx context.Context, exe string, args []string) (string, error) {
	if r.Logger != nil {
		r.Logger.Debug("capturing backend output", "exe", exe, "args", args)
	}
	cmd := exec.CommandContext(ctx, exe, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", core.NewError(core.ErrBackendCommand, "%s failed: %s", exe, detail)
	}
	return stdout.String(), nil
}

func mapWaitError(exe string, err error) error {
	if err == nil {
		return nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return core.NewError(core.ErrBackendCommand,
			"%s exited with status %d", exe, ee.ExitCode())
	}
	return core.NewError(core.ErrBackendCommand, "%s failed: %v", exe, err)
}
