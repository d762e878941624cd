// Package gitexec executes git (and related) subcommands against a
// repository path, capturing exit status and output without interpreting it.
package gitexec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultLocalTimeout bounds captured local git operations. Network
// operations (fetch) run without an extra timeout, see Passthrough.
const DefaultLocalTimeout = 10 * time.Second

// Result is the outcome of one subprocess invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Ok reports whether the command exited with status zero.
func (r Result) Ok() bool {
	return r.ExitCode == 0
}

// Combined returns stdout and stderr concatenated, for keyword scans
// over tools that split diagnostics across both streams.
func (r Result) Combined() string {
	return r.Stdout + r.Stderr
}

// Runner executes subcommands with a bounded timeout for local operations.
type Runner struct {
	// Timeout applies to captured local commands. Zero disables it.
	Timeout time.Duration
	// Verbose echoes each command line to stderr before running it.
	Verbose bool
}

// New returns a Runner with the default local timeout.
func New() *Runner {
	return &Runner{Timeout: DefaultLocalTimeout}
}

// Git runs a captured git command in dir and returns its result.
// Spawn-level failures (git missing, timeout) are reported as exit code
// -1 with the error text in Stderr so callers can fold them into
// phase outcomes instead of aborting.
func (r *Runner) Git(dir string, args ...string) Result {
	return r.Command(dir, "git", args...)
}

// Command runs an arbitrary captured command in dir.
func (r *Runner) Command(dir, name string, args ...string) Result {
	ctx := context.Background()
	cancel := func() {}
	if r.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
	}
	defer cancel()

	r.echo(name, args)

	var stdout, stderr strings.Builder
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	switch {
	case err == nil:
		res.ExitCode = 0
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.ExitCode = -1
		res.Stderr = appendLine(res.Stderr, fmt.Sprintf("%s timed out after %s", name, r.Timeout))
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			// Spawn failure: tool not found, permission denied.
			res.ExitCode = -1
			res.Stderr = appendLine(res.Stderr, err.Error())
		}
	}
	return res
}

// GitPassthrough runs git in dir with stdout discarded and stderr/stdin
// connected to the terminal. Fetch credential negotiation (ssh prompts,
// askpass) happens on those streams; capturing them can silently break
// authentication, so only the progress stream is suppressed. No timeout
// is imposed beyond the transport's own.
func (r *Runner) GitPassthrough(dir string, args ...string) int {
	r.echo("git", args)

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Stdout = nil
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	err := cmd.Run()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func (r *Runner) echo(name string, args []string) {
	if r.Verbose {
		fmt.Fprintf(os.Stderr, "  $ %s %s\n", name, strings.Join(args, " "))
	}
}

func appendLine(s, line string) string {
	if s == "" {
		return line + "\n"
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s + line + "\n"
}
