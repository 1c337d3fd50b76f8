// SPDX-License-Identifier: AGPL-3.0-or-later

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/mxtadmin/githooks/internal/git"
)

// ErrUnknownCheck is returned by RunList for an id the runner does not hold.
var ErrUnknownCheck = errors.New("check not found")

// Runner manages the execution of checks.
type Runner struct {
	checks []Check
	store  *StateStore
	deps   *Deps
	out    io.Writer
}

// NewRunner creates a new runner with the given checks and dependencies.
// Progress is written to out.
func NewRunner(checks []Check, store *StateStore, deps *Deps, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		checks: checks,
		store:  store,
		deps:   deps,
		out:    out,
	}
}

// RunAll executes all checks in order against the commit list.
// It continues execution even if a check fails, accumulating failures.
// Returns an error if ANY check failed.
func (r *Runner) RunAll(ctx context.Context, commits *git.CommitList, tip string) error {
	return r.executeSequence(ctx, r.checks, commits, tip)
}

// RunList executes a specific list of check IDs, in the order given.
// Unknown ids fail before any check runs.
func (r *Runner) RunList(ctx context.Context, checkIDs []string, commits *git.CommitList, tip string) error {
	toRun, err := r.selectChecks(checkIDs)
	if err != nil {
		return err
	}
	return r.executeSequence(ctx, toRun, commits, tip)
}

// Resume re-runs the checks that failed in the last run against the same tip.
func (r *Runner) Resume(ctx context.Context) error {
	last, err := r.store.ReadLastRun()
	if err != nil {
		return fmt.Errorf("loading last run: %w", err)
	}
	if last == nil || len(last.Failed) == 0 {
		return nil
	}

	tip := r.deps.Repo.Commit(last.Tip)
	commits, err := tip.NewCommitList(ctx, last.Branch)
	if err != nil {
		return err
	}
	commits.RefPath = last.Ref

	var toRun []Check
	for _, id := range last.Failed {
		if c := r.findCheck(id); c != nil {
			toRun = append(toRun, c)
		}
	}
	return r.executeSequence(ctx, toRun, commits, last.Tip)
}

func (r *Runner) selectChecks(ids []string) ([]Check, error) {
	var toRun []Check
	for _, id := range ids {
		c := r.findCheck(id)
		if c == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCheck, id)
		}
		toRun = append(toRun, c)
	}
	return toRun, nil
}

func (r *Runner) findCheck(id string) Check {
	for _, c := range r.checks {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

// executeSequence runs a sequence of checks, updating state.
// It returns error if ANY check failed.
func (r *Runner) executeSequence(ctx context.Context, checks []Check, commits *git.CommitList, tip string) error {
	var failed []string
	var checkNames []string

	for _, check := range checks {
		id := check.ID()
		checkNames = append(checkNames, id)

		res := check.Run(ctx, r.deps, commits)
		log.WithFields(log.Fields{"check": id, "status": res.Status, "findings": len(res.Findings)}).Debug("check finished")

		if err := r.store.WriteCheckResult(res); err != nil {
			return fmt.Errorf("writing result for %s: %w", id, err)
		}

		switch res.Status {
		case StatusSkip:
			_, _ = fmt.Fprintf(r.out, "SKIP: %s\n", id)
		case StatusPass:
			_, _ = fmt.Fprintf(r.out, "PASS: %s\n", id)
		case StatusWarn:
			_, _ = fmt.Fprintf(r.out, "WARN: %s\n", id)
		default:
			failed = append(failed, id)
			_, _ = fmt.Fprintf(r.out, "FAIL: %s (exit %d)\n", id, res.ExitCode)
		}
		if res.Note != "" {
			_, _ = fmt.Fprintf(r.out, "  %s\n", res.Note)
		}
		for _, f := range res.Findings {
			_, _ = fmt.Fprintf(r.out, "  %s\n", f)
		}
	}

	lastRun := LastRun{
		Status: "pass",
		Ref:    commits.RefPath,
		Branch: commits.BranchName,
		Tip:    tip,
		Range:  commits.String(),
		Checks: checkNames,
		Failed: failed,
	}
	if len(failed) > 0 {
		lastRun.Status = "fail"
	}

	if err := r.store.WriteLastRun(lastRun); err != nil {
		return fmt.Errorf("writing last run: %w", err)
	}

	if len(failed) > 0 {
		return fmt.Errorf("checks failed: %v", failed)
	}
	return nil
}
