// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gitcmd runs git plumbing commands and hands back their raw standard output.
package gitcmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Runner invokes git with an argument vector and returns raw stdout bytes.
// A non-zero exit is reported as a *ToolInvocationError.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecRunner runs a resolved git executable inside a repository directory.
type ExecRunner struct {
	gitPath string
	dir     string
}

// NewExecRunner creates a runner for the given executable path and working directory.
// An empty dir runs git in the current process directory.
func NewExecRunner(gitPath, dir string) *ExecRunner {
	return &ExecRunner{
		gitPath: gitPath,
		dir:     dir,
	}
}

// Dir returns the working directory commands run in.
func (r *ExecRunner) Dir() string { return r.dir }

// Run executes git and returns its stdout.
func (r *ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.gitPath, args...)
	cmd.Dir = r.dir

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.WithField("args", strings.Join(args, " ")).Debug("running git")

	if err := cmd.Run(); err != nil {
		return nil, newToolInvocationError(args, stderr.String(), err)
	}
	return stdout.Bytes(), nil
}

// LookPath resolves the git executable once. A configured path wins over PATH lookup.
func LookPath(configured string) (string, error) {
	if strings.TrimSpace(configured) != "" {
		return configured, nil
	}
	path, err := exec.LookPath("git")
	if err != nil {
		return "", fmt.Errorf("resolving git executable: %w", err)
	}
	return path, nil
}

// ToolInvocationError reports a git command that exited non-zero or could not be started.
type ToolInvocationError struct {
	Args []string
	// ExitCode is -1 when the process never ran.
	ExitCode int
	Stderr   string
	Err      error
}

func newToolInvocationError(args []string, stderr string, cause error) *ToolInvocationError {
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(cause, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return &ToolInvocationError{
		Args:     append([]string(nil), args...),
		ExitCode: exitCode,
		Stderr:   strings.TrimSpace(stderr),
		Err:      cause,
	}
}

func (e *ToolInvocationError) Error() string {
	msg := e.Stderr
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = fmt.Sprintf("exit status %d", e.ExitCode)
	}
	return fmt.Sprintf("git %s: %s", strings.Join(e.Args, " "), msg)
}

// Unwrap enables errors.Is/As to reach the underlying exec error.
func (e *ToolInvocationError) Unwrap() error { return e.Err }
