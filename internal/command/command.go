// Package command runs external programs and classifies how they failed.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"time"
)

var (
	// ErrNotFound is wrapped by Run when the program does not exist or is
	// not on PATH.
	ErrNotFound = errors.New("command not found")

	// ErrUnexpectedOutput is wrapped by callers that parse a program's
	// output and cannot make sense of it.
	ErrUnexpectedOutput = errors.New("unexpected command output")
)

// ExitError reports a program that ran and exited with a non-zero status.
type ExitError struct {
	Name   string
	Code   int
	Output []byte
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
}

// Result is what a program printed and how it exited.
type Result struct {
	Output   []byte
	ExitCode int
}

// Runner runs a program to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs programs with os/exec, capturing stdout and stderr
// together. A zero Timeout means no timeout beyond ctx.
type ExecRunner struct {
	Timeout time.Duration
}

// Run starts name with args and waits for it. On a non-zero exit the
// returned Result still carries the output and exit code, and the error is
// an *ExitError. A program killed because ctx ended (or Timeout elapsed)
// yields ctx.Err() wrapped, not an *ExitError.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	res := Result{Output: out.Bytes()}
	if err == nil {
		return res, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("%s: %w", name, ctxErr)
	}

	var exitErr *exec.ExitError
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return res, fmt.Errorf("%s: %w", name, ErrNotFound)
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		return res, &ExitError{Name: name, Code: res.ExitCode, Output: res.Output}
	default:
		return res, fmt.Errorf("run %s: %w", name, err)
	}
}
