// SPDX-License-Identifier: AGPL-3.0-or-later

package checks

import (
	"context"
	"errors"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/mxtadmin/githooks/internal/git"
	"github.com/mxtadmin/githooks/internal/runner"
)

// CommitSummary validates the first line of every commit message.
type CommitSummary struct{}

func (s *CommitSummary) ID() string { return "commit:summary" }

func (s *CommitSummary) Run(ctx context.Context, deps *runner.Deps, commits *git.CommitList) runner.CheckResult {
	maxLen := deps.Checks.MaxSummaryLength
	return perCommit(ctx, s.ID(), commits, func(ctx context.Context, c *git.Commit) ([]runner.Finding, error) {
		summary, err := c.Summary(ctx)
		if errors.Is(err, git.ErrMalformed) {
			return []runner.Finding{finding(c, "", "commit message is empty")}, nil
		}
		if err != nil {
			return nil, err
		}

		var found []runner.Finding
		tags, rest := git.SplitTags(summary)
		if slices.Contains(tags, "") {
			found = append(found, finding(c, "", "summary has an empty [] tag"))
		}
		if strings.TrimSpace(rest) == "" {
			found = append(found, finding(c, "", "summary has no text besides tags"))
		}
		if maxLen > 0 && utf8.RuneCountInString(summary) > maxLen {
			found = append(found, finding(c, "", "summary is longer than %d characters", maxLen))
		}
		return found, nil
	})
}

// EmailDomain requires author and committer emails from the configured domains.
type EmailDomain struct{}

func (s *EmailDomain) ID() string { return "commit:email-domain" }

func (s *EmailDomain) Run(ctx context.Context, deps *runner.Deps, commits *git.CommitList) runner.CheckResult {
	domains := deps.Checks.EmailDomains
	if len(domains) == 0 {
		return skip(s.ID(), "no email domains configured")
	}
	return perCommit(ctx, s.ID(), commits, func(ctx context.Context, c *git.Commit) ([]runner.Finding, error) {
		contributors, err := c.Contributors(ctx)
		if err != nil {
			return nil, err
		}
		var found []runner.Finding
		for i, who := range contributors {
			role := "author"
			if i == 1 {
				role = "committer"
			}
			domain := who.EmailDomain()
			allowed := slices.ContainsFunc(domains, func(d string) bool { return strings.EqualFold(d, domain) })
			if !allowed {
				found = append(found, finding(c, "", "%s email %s is not from an allowed domain", role, who.Email))
			}
		}
		return found, nil
	})
}
