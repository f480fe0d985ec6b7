// Package executor orchestrates one code submission end to end: stage
// the source in a workspace, execute it under a deadline, lint it, and
// fold every outcome into a single report. Nothing escapes this
// package as an error; the report always comes back.
package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/michaelbrown/crucible/internal/lint"
	"github.com/michaelbrown/crucible/internal/runner"
	"github.com/michaelbrown/crucible/internal/workspace"
)

// Runner launches one supervised subprocess. Satisfied by
// *runner.Runner; a test double goes here too.
type Runner interface {
	Run(ctx context.Context, spec runner.Spec) runner.Result
}

// Config is the static configuration one Coordinator holds. There is no
// mutable state beyond it, so a single Coordinator serves concurrent
// submissions without locking.
type Config struct {
	PythonBin     string
	Flake8Bin     string
	Timeout       time.Duration // execution deadline
	LintTimeout   time.Duration // 0 leaves the lint pass unbounded
	MaxConcurrent int           // 0 disables admission control
}

// Report is the response for one submission. All fields are
// whitespace-trimmed.
type Report struct {
	Output       string `json:"output"`
	Error        string `json:"error"`
	LintFeedback string `json:"lint_feedback"`
}

// Coordinator runs submissions.
type Coordinator struct {
	cfg        Config
	runner     Runner
	workspaces *workspace.Manager
	slots      *semaphore.Weighted
}

func New(cfg Config, r Runner, ws *workspace.Manager) *Coordinator {
	c := &Coordinator{
		cfg:        cfg,
		runner:     r,
		workspaces: ws,
	}
	if cfg.MaxConcurrent > 0 {
		c.slots = semaphore.NewWeighted(int64(cfg.MaxConcurrent))
	}
	return c
}

// Execute runs one submission and returns its report. It never fails
// outward: execution outcomes, tool failures, and unexpected faults all
// land in the report's text fields.
func (c *Coordinator) Execute(ctx context.Context, source string) (report Report) {
	defer func() {
		if r := recover(); r != nil {
			report.Error = appendSection(report.Error, fmt.Sprintf("Server Error during processing: %v", r))
		}
		report.Output = strings.TrimSpace(report.Output)
		report.Error = strings.TrimSpace(report.Error)
		report.LintFeedback = strings.TrimSpace(report.LintFeedback)
	}()

	if c.slots != nil {
		if err := c.slots.Acquire(ctx, 1); err != nil {
			report.Error = fmt.Sprintf("Server Error during processing: %v", err)
			return report
		}
		defer c.slots.Release(1)
	}

	ws, err := c.workspaces.Acquire(source, ".py")
	if err != nil {
		report.Error = fmt.Sprintf("Server Error during processing: %v", err)
		return report
	}
	defer ws.Release()

	report.Output, report.Error = c.execute(ctx, ws.Path())
	report.LintFeedback = c.lintPass(ctx, ws.Path())
	return report
}

// execute runs the staged source under the configured deadline and maps
// the runner's status onto the report's output and error texts.
func (c *Coordinator) execute(ctx context.Context, path string) (output, errText string) {
	res := c.runner.Run(ctx, runner.Spec{
		Command: c.cfg.PythonBin,
		Args:    []string{path},
		Timeout: c.cfg.Timeout,
	})

	switch res.Status {
	case runner.StatusTimedOut:
		// Partial output was discarded at the runner, so the message
		// stands alone.
		return "", fmt.Sprintf("Timeout Error: Execution exceeded %g seconds.", res.Limit.Seconds())

	case runner.StatusLaunchFailed:
		return "", fmt.Sprintf("Execution Error: Failed to run subprocess. %s", res.LaunchErr)

	default:
		if res.ExitCode == 0 {
			return res.Stdout, res.Stderr
		}
		msg := fmt.Sprintf("Process exited with status code %d.", res.ExitCode)
		if strings.Contains(res.Stderr, msg) {
			// stderr already says it; don't repeat ourselves.
			return res.Stdout, res.Stderr
		}
		return res.Stdout, strings.TrimSpace(msg + " " + res.Stderr)
	}
}

// lintPass runs flake8 over the staged source. A non-zero exit is the
// linter's normal way of saying "issues found"; only a failed launch or
// text on its error stream counts as a tool failure.
func (c *Coordinator) lintPass(ctx context.Context, path string) string {
	res := c.runner.Run(ctx, runner.Spec{
		Command: c.cfg.Flake8Bin,
		Args:    []string{path},
		Timeout: c.cfg.LintTimeout,
	})

	if res.Status == runner.StatusTimedOut {
		return fmt.Sprintf("--- Flake8 Error ---\nlint pass exceeded %g seconds", res.Limit.Seconds())
	}
	if res.Status == runner.StatusLaunchFailed {
		return "--- Flake8 Error ---\n" + res.LaunchErr
	}

	feedback := lint.Feedback(lint.Format(res.Stdout))
	if res.Stderr != "" {
		feedback = appendSection(feedback, "--- Flake8 Error ---\n"+strings.TrimSpace(res.Stderr))
	}
	return feedback
}

func appendSection(existing, section string) string {
	if existing == "" {
		return section
	}
	return existing + "\n" + section
}
