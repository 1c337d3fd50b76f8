// SPDX-License-Identifier: AGPL-3.0-or-later

// Package checks holds the built-in rules run over the commits of a push.
package checks

import (
	"context"
	"fmt"

	"github.com/mxtadmin/githooks/internal/git"
	"github.com/mxtadmin/githooks/internal/runner"
)

// commitFunc reports findings for one commit.
type commitFunc func(ctx context.Context, c *git.Commit) ([]runner.Finding, error)

// perCommit runs fn over every commit and turns the findings into a result.
// Findings on commits whose summary carries an escape tag are waived.
// A git failure aborts the check with exit code 3.
func perCommit(ctx context.Context, id string, commits *git.CommitList, fn commitFunc) runner.CheckResult {
	var findings []runner.Finding
	for _, c := range commits.Commits() {
		found, err := fn(ctx, c)
		if err != nil {
			return runner.CheckResult{
				Check:    id,
				Status:   runner.StatusFail,
				ExitCode: 3,
				Note:     fmt.Sprintf("inspecting %s: %v", c, err),
			}
		}
		if len(found) == 0 {
			continue
		}

		canFail, err := c.ContentCanFail(ctx)
		if err != nil {
			// An unreadable summary cannot carry an escape tag.
			canFail = true
		}
		for _, f := range found {
			f.Waived = !canFail
			findings = append(findings, f)
		}
	}
	return resultOf(id, findings)
}

func resultOf(id string, findings []runner.Finding) runner.CheckResult {
	res := runner.CheckResult{
		Check:    id,
		Status:   runner.StatusPass,
		Findings: findings,
	}
	if len(findings) == 0 {
		return res
	}
	res.Status = runner.StatusWarn
	for _, f := range findings {
		if !f.Waived {
			res.Status = runner.StatusFail
			res.ExitCode = 1
			break
		}
	}
	return res
}

func skip(id, note string) runner.CheckResult {
	return runner.CheckResult{
		Check:  id,
		Status: runner.StatusSkip,
		Note:   note,
	}
}

func finding(c *git.Commit, path, format string, args ...any) runner.Finding {
	return runner.Finding{
		Commit:  c.ID(),
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
}
