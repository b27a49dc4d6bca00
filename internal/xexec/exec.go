// Package xexec contains extended os/exec utilities.
package xexec

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/xerrors"
)

// Command describes an external tool invocation.
type Command struct {
	// Action identifies what the command is for, e.g. "install_dev".
	Action string
	Name   string
	Args   []string
	Dir    string
	// Env is appended to the current environment.
	Env []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// ExitError is returned when a command runs but exits non-zero.
// Code becomes the exit status of sltools.
type ExitError struct {
	Cmd  Command
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("`%v` exited with status %d", e.Cmd, e.Code)
}

// Runner runs commands to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands as child processes. Nil streams are attached
// to the process's own.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var _ Runner = ExecRunner{}

func (r ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	Attach(cmd)
	if r.Stdin != nil {
		cmd.Stdin = r.Stdin
	}
	if r.Stdout != nil {
		cmd.Stdout = r.Stdout
	}
	if r.Stderr != nil {
		cmd.Stderr = r.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if xerrors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		// Killed by a signal.
		if code < 0 {
			code = 1
		}
		return &ExitError{Cmd: c, Code: code}
	}
	return xerrors.Errorf("failed to run `%v`: %w", c, err)
}

func Attach(cmd *exec.Cmd) {
	cmd.Stderr = os.Stderr
	cmd.Stdout = os.Stdout
	cmd.Stdin = os.Stdin
}
