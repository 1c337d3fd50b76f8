// SPDX-License-Identifier: AGPL-3.0-or-later

package runner

import (
	"context"

	"github.com/mxtadmin/githooks/internal/config"
	"github.com/mxtadmin/githooks/internal/git"
)

// Deps contains dependencies injected into checks.
type Deps struct {
	Repo   *git.Repository
	Checks config.Checks
}

// Check is a rule evaluated over the commits a push introduces.
type Check interface {
	// ID returns the unique identifier (e.g. "file:shebang").
	ID() string

	// Run evaluates the check. It only reads the commits.
	Run(ctx context.Context, deps *Deps, commits *git.CommitList) CheckResult
}
