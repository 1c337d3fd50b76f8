// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mxtadmin/githooks/cmd/githooks/internal/clierr"
	"github.com/mxtadmin/githooks/internal/checks"
	"github.com/mxtadmin/githooks/internal/config"
	"github.com/mxtadmin/githooks/internal/git"
	"github.com/mxtadmin/githooks/internal/runner"
)

// NewUpdateCommand returns the `githooks update` command, meant to be called
// from the server-side update hook with the hook's three arguments.
func NewUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <ref> <old-id> <new-id>",
		Short: "Run checks over the commits an update of ref introduces",
		Long: `Enumerates the commits that updating ref from old-id to new-id introduces and
runs the enabled checks over them. Exits non-zero when a check fails, which
makes git reject the update.`,
		Args: cobra.ExactArgs(3),
		RunE: runUpdate,
	}

	cmd.Flags().StringSlice("check", nil, "run only these of the enabled checks, in the given order")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ref, oldID, newID := args[0], args[1], args[2]
	for _, id := range []string{oldID, newID} {
		if !git.ValidCommitID(id) {
			return clierr.Newf(clierr.ExitUsage, "invalid commit id %q", id)
		}
	}

	cfg, repo, err := openRepository(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	logger := log.WithFields(log.Fields{"ref": ref, "old": oldID, "new": newID})

	tip := repo.CommitOrNil(newID)
	if tip == nil {
		logger.Info("ref deleted, nothing to check")
		return nil
	}

	commits, err := tip.NewCommitList(ctx, branchName(ref))
	if err != nil {
		return clierr.Wrap(clierr.ExitRepository, "listing new commits", err)
	}
	commits.RefPath = ref
	if commits.Empty() {
		logger.Info("no new commits")
		return nil
	}
	logger.WithField("range", commits.String()).Debugf("checking %d commits", commits.Len())

	r, err := newCheckRunner(cmd, cfg, repo)
	if err != nil {
		return err
	}
	if ids, _ := cmd.Flags().GetStringSlice("check"); len(ids) > 0 {
		err = r.RunList(ctx, ids, commits, newID)
	} else {
		err = r.RunAll(ctx, commits, newID)
	}
	if errors.Is(err, runner.ErrUnknownCheck) {
		return clierr.Wrap(clierr.ExitConfig, "selecting checks", err)
	}
	if err != nil {
		_, _ = fmt.Fprintf(out, "push of %s rejected\n", commits.String())
		return clierr.Wrap(clierr.ExitCheckFailed, "checks failed", err)
	}
	return nil
}

// NewResumeCommand returns the `githooks resume` command.
func NewResumeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Re-run the checks that failed in the last run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, repo, err := openRepository(cmd)
			if err != nil {
				return err
			}
			r, err := newCheckRunner(cmd, cfg, repo)
			if err != nil {
				return err
			}
			if err := r.Resume(cmd.Context()); err != nil {
				return clierr.Wrap(clierr.ExitCheckFailed, "resume failed", err)
			}
			return nil
		},
	}
}

// newCheckRunner holds the checks enabled by the configuration.
func newCheckRunner(cmd *cobra.Command, cfg *config.Config, repo *git.Repository) (*runner.Runner, error) {
	enabled, err := checks.Enabled(cfg.Checks.Enabled)
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitConfig, "selecting checks", err)
	}

	deps := &runner.Deps{
		Repo:   repo,
		Checks: cfg.Checks,
	}
	store := runner.NewStateStore(cfg.StatePath())
	return runner.NewRunner(enabled, store, deps, cmd.OutOrStdout()), nil
}

// branchName shortens a full ref to the name users know it by.
func branchName(ref string) string {
	for _, prefix := range []string{"refs/heads/", "refs/tags/"} {
		if name, ok := strings.CutPrefix(ref, prefix); ok {
			return name
		}
	}
	return ref
}
