// SPDX-License-Identifier: AGPL-3.0-or-later

// Package fakegit provides a scripted gitcmd.Runner for tests.
package fakegit

import (
	"context"
	"strings"
	"sync"

	"github.com/mxtadmin/githooks/internal/gitcmd"
)

type response struct {
	out []byte
	err error
}

// Runner replays canned output keyed by the exact argument vector and
// counts every invocation.
type Runner struct {
	mu        sync.Mutex
	responses map[string]response
	calls     map[string]int
	total     int
}

// New returns an empty scripted runner.
func New() *Runner {
	return &Runner{
		responses: map[string]response{},
		calls:     map[string]int{},
	}
}

func key(args []string) string {
	return strings.Join(args, "\x00")
}

// On registers stdout for an argument vector.
func (r *Runner) On(out string, args ...string) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[key(args)] = response{out: []byte(out)}
	return r
}

// Fail registers a failure for an argument vector.
func (r *Runner) Fail(err error, args ...string) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[key(args)] = response{err: err}
	return r
}

// Missing registers the failure git reports for an unknown object or path.
func (r *Runner) Missing(args ...string) *Runner {
	return r.Fail(&gitcmd.ToolInvocationError{
		Args:     args,
		ExitCode: 128,
		Stderr:   "fatal: Not a valid object name " + args[len(args)-1],
	}, args...)
}

// Run implements gitcmd.Runner. Unscripted commands fail like git does on a bad invocation.
func (r *Runner) Run(_ context.Context, args ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(args)
	r.calls[k]++
	r.total++

	resp, ok := r.responses[k]
	if !ok {
		return nil, &gitcmd.ToolInvocationError{
			Args:     append([]string(nil), args...),
			ExitCode: 129,
			Stderr:   "fatal: unscripted command: git " + strings.Join(args, " "),
		}
	}
	if resp.err != nil {
		return nil, resp.err
	}
	return append([]byte(nil), resp.out...), nil
}

// Calls reports how often an argument vector was run.
func (r *Runner) Calls(args ...string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[key(args)]
}

// Total reports the number of invocations across all argument vectors.
func (r *Runner) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}
