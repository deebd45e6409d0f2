// Package proc resolves executables and runs them as blocking subprocesses.
//
// cargo, the engine and the debugger are all started through Runner;
// package proctest records calls instead.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/execabs"

	"github.com/sanpii/cargo-godot/internal/report"
)

// Runner runs a program to completion with its standard streams attached to
// the console.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// Outputter runs a program to completion and returns what it printed on
// stdout.
type Outputter interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NotFoundError reports a program that could not be resolved to a file.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unable to find executable: %s", e.Name)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// SpawnError reports a program that was found but could not be started.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("unable to start '%s': %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError reports a program that ran and exited unsuccessfully.
// Code is -1 when the process was terminated by a signal.
type ExitError struct {
	Name string
	Code int
}

func (e *ExitError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("exec '%s' failed: terminated by signal", e.Name)
	}
	return fmt.Sprintf("exec '%s' failed with exit code %d", e.Name, e.Code)
}

// Exec is the Runner backed by real processes.
type Exec struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Report *report.Reporter
}

var (
	_ Runner    = (*Exec)(nil)
	_ Outputter = (*Exec)(nil)
)

// New returns an Exec wired to the process' own standard streams.
func New(r *report.Reporter) *Exec {
	if r == nil {
		r = report.Discard()
	}
	return &Exec{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Report: r,
	}
}

// Resolve maps a program name to the file that would be executed.
//
// A name containing a path separator is used literally and only checked for
// existence. A bare name is looked up in PATH; results relative to the
// current directory are rejected.
func Resolve(name string) (string, error) {
	if name == "" {
		return "", &NotFoundError{Name: name, Err: errors.New("empty program name")}
	}
	if strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		fi, err := os.Stat(name)
		if err != nil {
			return "", &NotFoundError{Name: name, Err: err}
		}
		if fi.IsDir() {
			return "", &NotFoundError{Name: name, Err: fmt.Errorf("%s is a directory", name)}
		}
		return name, nil
	}
	path, err := execabs.LookPath(name)
	if err != nil {
		return "", &NotFoundError{Name: name, Err: err}
	}
	return path, nil
}

func (e *Exec) Run(ctx context.Context, name string, args ...string) error {
	cmd, err := e.command(ctx, name, args)
	if err != nil {
		return err
	}
	cmd.Stdout = e.Stdout
	return wait(name, cmd)
}

func (e *Exec) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd, err := e.command(ctx, name, args)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := wait(name, cmd); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (e *Exec) command(ctx context.Context, name string, args []string) (*exec.Cmd, error) {
	path, err := Resolve(name)
	if err != nil {
		return nil, err
	}
	if e.Report != nil {
		e.Report.Command(name, args)
	}
	cmd := execabs.CommandContext(ctx, path, args...)
	cmd.Stdin = e.Stdin
	cmd.Stderr = e.Stderr
	return cmd, nil
}

func wait(name string, cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return &SpawnError{Name: name, Err: err}
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Name: name, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("waiting for '%s': %w", name, err)
	}
	return nil
}
