// SPDX-License-Identifier: AGPL-3.0-or-later

package checks

import (
	"context"
	"errors"
	"slices"

	"github.com/mxtadmin/githooks/internal/git"
	"github.com/mxtadmin/githooks/internal/runner"
)

// BinarySize limits the size of binary files entering the repository.
type BinarySize struct{}

func (s *BinarySize) ID() string { return "file:binary-size" }

func (s *BinarySize) Run(ctx context.Context, deps *runner.Deps, commits *git.CommitList) runner.CheckResult {
	limit := deps.Checks.MaxBinarySize
	if limit <= 0 {
		return skip(s.ID(), "no binary size limit configured")
	}
	return perCommit(ctx, s.ID(), commits, func(ctx context.Context, c *git.Commit) ([]runner.Finding, error) {
		binary, err := c.BinaryFiles(ctx)
		if err != nil || len(binary) == 0 {
			return nil, err
		}
		files, err := c.ChangedFiles(ctx)
		if err != nil {
			return nil, err
		}

		var found []runner.Finding
		for _, f := range files {
			if !slices.Contains(binary, f.Path()) || f.InFramework() {
				continue
			}
			// Unknown sizes (-1) pass.
			if size := f.Size(ctx); size > limit {
				found = append(found, finding(c, f.Path(), "binary file is %d bytes, limit is %d", size, limit))
			}
		}
		return found, nil
	})
}

// Shebang checks scripts: a shebang needs the executable bit and, when
// configured, an allowed interpreter.
type Shebang struct{}

func (s *Shebang) ID() string { return "file:shebang" }

func (s *Shebang) Run(ctx context.Context, deps *runner.Deps, commits *git.CommitList) runner.CheckResult {
	allowed := deps.Checks.AllowedInterpreters
	return perCommit(ctx, s.ID(), commits, func(ctx context.Context, c *git.Commit) ([]runner.Finding, error) {
		files, err := c.ChangedFiles(ctx)
		if err != nil {
			return nil, err
		}

		var found []runner.Finding
		for _, f := range files {
			if !f.Regular() {
				continue
			}
			exe, err := f.ShebangExe(ctx)
			if errors.Is(err, git.ErrMalformed) {
				found = append(found, finding(c, f.Path(), "shebang line names no interpreter"))
				continue
			}
			if err != nil {
				return nil, err
			}
			if exe == "" {
				continue
			}
			if !f.OwnerCanExecute() {
				found = append(found, finding(c, f.Path(), "has a shebang but is not executable"))
			}
			if len(allowed) > 0 && !slices.Contains(allowed, exe) {
				found = append(found, finding(c, f.Path(), "interpreter %s is not allowed", exe))
			}
		}
		return found, nil
	})
}

// Symlink requires symbolic links to point at a file inside the repository.
type Symlink struct{}

func (s *Symlink) ID() string { return "file:symlink" }

func (s *Symlink) Run(ctx context.Context, deps *runner.Deps, commits *git.CommitList) runner.CheckResult {
	return perCommit(ctx, s.ID(), commits, func(ctx context.Context, c *git.Commit) ([]runner.Finding, error) {
		files, err := c.ChangedFiles(ctx)
		if err != nil {
			return nil, err
		}

		var found []runner.Finding
		for _, f := range files {
			if !f.Symlink() {
				continue
			}
			target, err := f.SymlinkTarget(ctx)
			if err != nil {
				return nil, err
			}
			if target == nil {
				found = append(found, finding(c, f.Path(), "symlink points outside the repository"))
				continue
			}
			exists, err := target.Exists(ctx)
			if err != nil {
				return nil, err
			}
			if !exists {
				found = append(found, finding(c, f.Path(), "symlink target %s does not exist", target.Path()))
			}
		}
		return found, nil
	})
}
