// Package testrunner runs a project's test command in a subprocess and
// reports whether it passed.
package testrunner

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// ErrNoCommand is returned when the runner has no command configured.
var ErrNoCommand = errors.New("no test command configured")

// DefaultPassMarker is looked for in the output of a passing run.
const DefaultPassMarker = "ok"

// waitDelay bounds how long a cancelled run may keep its output pipes open.
const waitDelay = 5 * time.Second

// DefaultCommand runs the module's own test suite.
var DefaultCommand = []string{"go", "test", "./..."}

// Result is the outcome of one test run.
type Result struct {
	Passed   bool
	Output   string
	Duration time.Duration
	// Err is set when the command could not be run or exited non-zero.
	Err error
}

// Runner executes the test command. Runs are serialised.
type Runner struct {
	mu         sync.Mutex
	Command    []string
	Dir        string
	PassMarker string
	// Timeout bounds a run. Zero means the run is bound only by the
	// caller's context.
	Timeout time.Duration
}

// New returns a Runner for command run in dir.
func New(command []string, dir, passMarker string, timeout time.Duration) *Runner {
	if len(command) == 0 {
		command = DefaultCommand
	}
	if passMarker == "" {
		passMarker = DefaultPassMarker
	}
	return &Runner{
		Command:    command,
		Dir:        dir,
		PassMarker: passMarker,
		Timeout:    timeout,
	}
}

// Run executes the command and captures its combined output. A run passes
// when the command exits cleanly and its output contains the pass marker.
// Failures are reported in the Result, never returned.
func (r *Runner) Run(ctx context.Context) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Command) == 0 {
		return Result{Err: ErrNoCommand}
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, r.Command[0], r.Command[1:]...)
	cmd.Dir = r.Dir
	cmd.WaitDelay = waitDelay
	out, err := cmd.CombinedOutput()
	res := Result{
		Output:   string(out),
		Duration: time.Since(start),
		Err:      err,
	}
	if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
		res.Err = ctxErr
	}
	res.Passed = err == nil && strings.Contains(res.Output, r.PassMarker)
	return res
}
