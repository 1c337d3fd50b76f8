// SPDX-License-Identifier: AGPL-3.0-or-later

// Package clierr carries the process exit code of a failed githooks command.
// git only looks at zero versus non-zero when deciding whether to accept a
// push; the distinct codes are for operators reading hook logs.
package clierr

import (
	"errors"
	"fmt"
)

const (
	// ExitCheckFailed: a check rejected the pushed commits.
	ExitCheckFailed = 1
	// ExitUsage: the hook was called with bad arguments.
	ExitUsage = 2
	// ExitRepository: git could not be run or could not answer.
	ExitRepository = 3
	// ExitConfig: the configuration is unreadable or names unknown checks.
	ExitConfig = 4
)

// ExitError pairs a message and an optional cause with an exit code.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *ExitError) ExitCode() int { return e.code }

func (e *ExitError) Unwrap() error { return e.cause }

// Wrap attaches code and a short description of the failed step to cause.
func Wrap(code int, msg string, cause error) error {
	return &ExitError{code: atLeastOne(code), msg: msg, cause: cause}
}

// Newf reports a failure that has no underlying error, such as a bad argument.
func Newf(code int, format string, args ...any) error {
	return &ExitError{code: atLeastOne(code), msg: fmt.Sprintf(format, args...)}
}

// ExitCodeOf maps the error a command returned to the hook's exit status:
// 0 for nil, the carried code for an ExitError anywhere in the chain, and
// ExitCheckFailed for anything else, so an unexpected error still rejects the push.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return ExitCheckFailed
}

// atLeastOne keeps a failure from being reported as success.
func atLeastOne(code int) int {
	return max(code, 1)
}
