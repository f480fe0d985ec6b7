// Package runner supervises one external command invocation: launch,
// feed stdin, capture both output streams, and enforce an optional
// wall-clock deadline. It knows nothing about what the command means;
// callers classify the outcome from the returned status.
package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// Status is the single completion classification for one run. Exactly
// one applies per invocation.
type Status int

const (
	// StatusExited means the process ran to completion and reported an
	// exit code. A non-zero code is not an error at this layer.
	StatusExited Status = iota
	// StatusTimedOut means the process was killed at the deadline.
	// Partial output is discarded.
	StatusTimedOut
	// StatusLaunchFailed means the process never started (missing
	// executable, permission error).
	StatusLaunchFailed
)

// Spec describes one command invocation.
type Spec struct {
	Command string
	Args    []string
	Stdin   string
	Timeout time.Duration // 0 means no deadline
}

// Result is the outcome of one invocation. Stdout and Stderr are only
// populated for StatusExited; Limit only for StatusTimedOut; LaunchErr
// only for StatusLaunchFailed.
type Result struct {
	Stdout    string
	Stderr    string
	Status    Status
	ExitCode  int
	Limit     time.Duration
	LaunchErr string
}

// waitDelay bounds how long Wait blocks on the output pipes after the
// process is killed, in case an escaped descendant still holds them.
const waitDelay = 3 * time.Second

// Runner launches subprocesses. It holds no state; every Run call is
// independent and safe to make concurrently.
type Runner struct{}

func New() *Runner {
	return &Runner{}
}

// Run executes spec and blocks until the process exits, the deadline
// fires, or launching fails.
func (r *Runner) Run(ctx context.Context, spec Spec) Result {
	var stdin io.Reader
	if spec.Stdin != "" {
		stdin = strings.NewReader(spec.Stdin)
	}
	return r.run(ctx, spec, stdin)
}

func (r *Runner) run(ctx context.Context, spec Spec, stdin io.Reader) Result {
	runCtx := ctx
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, spec.Command, spec.Args...)

	// Run the child in its own process group so a timeout kill reaches
	// whatever it spawned, not just the direct child.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = waitDelay

	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return Result{Status: StatusLaunchFailed, LaunchErr: err.Error()}
	}

	err := cmd.Wait()

	if timedOut(runCtx.Err(), err) {
		if errors.Is(err, exec.ErrWaitDelay) {
			// Something in the process tree survived the group kill and
			// kept the pipes open. It is on its own now.
			log.Printf("Warning: process group %d escaped termination after timeout", cmd.Process.Pid)
		}
		return Result{Status: StatusTimedOut, Limit: spec.Timeout}
	}

	exitCode := 0
	if err != nil {
		var ee *exec.ExitError
		switch {
		case errors.As(err, &ee):
			exitCode = ee.ExitCode()
		case errors.Is(err, exec.ErrWaitDelay):
			log.Printf("Warning: descendants of pid %d still hold output pipes", cmd.Process.Pid)
			exitCode = cmd.ProcessState.ExitCode()
		default:
			// The process launched and exited; the fault was in moving
			// its streams (a stdin copy error, usually). Keep the exit
			// code and whatever output made it across.
			log.Printf("Warning: i/o error supervising pid %d: %v", cmd.Process.Pid, err)
			exitCode = cmd.ProcessState.ExitCode()
		}
	}

	return Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Status:   StatusExited,
		ExitCode: exitCode,
	}
}

// timedOut reports whether a run should be classified as a deadline
// kill. Wait returning nil means the process completed before the kill
// reached it; that result stands even when the clock ran out during
// classification.
func timedOut(ctxErr, waitErr error) bool {
	return ctxErr == context.DeadlineExceeded && waitErr != nil
}
