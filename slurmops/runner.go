package slurmops

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
)

// Result holds the outcome of an executed external command.
type Result struct {
	// Stdout is the captured standard output, trailing whitespace trimmed
	Stdout string
	// Stderr is the captured standard error, trailing whitespace trimmed
	Stderr string
	// ExitCode is the command's exit status
	ExitCode int
}

// Runner executes external commands on behalf of the managers. The error
// return is reserved for invocation failures (binary missing, context
// canceled); a command that runs and exits non-zero yields a nil error and
// a Result with the exit code and captured output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
	RunWithInput(ctx context.Context, input, name string, args ...string) (Result, error)
}

// ExecRunner is the Runner used against the real host. Executed commands
// are logged at debug level.
type ExecRunner struct {
	// Logger receives debug records for each invocation. Nil uses
	// slog.Default().
	Logger *slog.Logger
}

var _ Runner = (*ExecRunner)(nil)

// Run executes name with args, capturing output
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return r.RunWithInput(ctx, "", name, args...)
}

// RunWithInput executes name with args, piping input to stdin
func (r *ExecRunner) RunWithInput(ctx context.Context, input, name string, args ...string) (Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running command", "cmd", name, "args", args)

	err := cmd.Run()
	res := Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			// The command never ran.
			return res, err
		}
		res.ExitCode = exitErr.ExitCode()
	}

	logger.Debug("command completed",
		"cmd", name, "exit", res.ExitCode, "stderr", res.Stderr)
	return res, nil
}

// runOK executes a command through r and converts a non-zero exit into a
// *CommandError.
func runOK(ctx context.Context, r Runner, name string, args ...string) (Result, error) {
	return runInputOK(ctx, r, "", name, args...)
}

func runInputOK(ctx context.Context, r Runner, input, name string, args ...string) (Result, error) {
	res, err := r.RunWithInput(ctx, input, name, args...)
	if err != nil {
		return res, err
	}
	if res.ExitCode != 0 {
		return res, &CommandError{
			Cmd:      strings.Join(append([]string{name}, args...), " "),
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
		}
	}
	return res, nil
}
