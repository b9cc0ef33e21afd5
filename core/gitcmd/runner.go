package gitcmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ToolError reports a non-zero exit from an external tool invocation.
// It captures enough context (command, directory, stderr) for the publish
// boundary to produce a useful failure report.
type ToolError struct {
	Cmd    []string
	Dir    string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("command %q failed in %s: %v", strings.Join(e.Cmd, " "), e.Dir, e.Err)
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.Err }

// IsToolError reports whether err is (or wraps) a ToolError.
func IsToolError(err error) bool {
	var te *ToolError
	return errors.As(err, &te)
}

// Runner executes external commands in an explicit working directory with an
// explicit environment. Every operation is synchronous and blocking; callers
// impose cancellation through the context. A zero Env inherits the process
// environment.
type Runner struct {
	Dir string
	Env []string
}

// In returns a copy of the runner rooted at dir.
func (r Runner) In(dir string) Runner {
	return Runner{Dir: dir, Env: r.Env}
}

// Output runs the command and returns its stdout. A non-zero exit is
// reported as a *ToolError with captured stderr.
func (r Runner) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Env = r.Env
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &ToolError{
			Cmd:    append([]string{name}, args...),
			Dir:    r.Dir,
			Stderr: stderr.String(),
			Err:    err,
		}
	}
	return stdout.String(), nil
}

// Run runs the command discarding stdout.
func (r Runner) Run(ctx context.Context, name string, args ...string) error {
	_, err := r.Output(ctx, name, args...)
	return err
}

// OutputToFile runs the command and writes its stdout verbatim to path.
func (r Runner) OutputToFile(ctx context.Context, path string, name string, args ...string) error {
	out, err := r.Output(ctx, name, args...)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(out), 0o644)
}
