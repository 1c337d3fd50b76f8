// SPDX-License-Identifier: AGPL-3.0-or-later

/*
githooks - read-only commit introspection and push checks for git server hooks.

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mxtadmin/githooks/cmd/githooks/internal/clierr"
	"github.com/mxtadmin/githooks/internal/config"
	"github.com/mxtadmin/githooks/internal/git"
)

// repositoryFor builds the repository a command works on. Tests replace it.
var repositoryFor = func(cfg *config.Config) (*git.Repository, error) {
	return cfg.Repository()
}

// NewRootCmd constructs the githooks root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("GITHOOKS_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "githooks",
		Short:         "githooks - commit introspection for git server hooks",
		Long:          "githooks enumerates the commits a push introduces, inspects their files and runs checks over them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			configureLogger(cmd, verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().String("config", config.DefaultPath, "path to the YAML configuration")
	cmd.PersistentFlags().String("repo", "", "repository directory (overrides repo_dir)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of githooks",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "githooks version %s\n", version)
		},
	})

	cmd.AddCommand(NewInspectCommand())
	cmd.AddCommand(NewUpdateCommand())
	cmd.AddCommand(NewResumeCommand())
	cmd.AddCommand(NewReportCommand())
	cmd.AddCommand(NewResetCommand())

	return cmd
}

func configureLogger(cmd *cobra.Command, verbose bool) {
	log.SetOutput(cmd.ErrOrStderr())
	_, debug := os.LookupEnv("DEBUG")

	if debug || verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig reads the configuration named by the global flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitConfig, "loading configuration", err)
	}
	if repo, _ := cmd.Flags().GetString("repo"); repo != "" {
		cfg.RepoDir = repo
	}
	return cfg, nil
}

// openRepository loads the configuration and the repository it points at.
func openRepository(cmd *cobra.Command) (*config.Config, *git.Repository, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	repo, err := repositoryFor(cfg)
	if err != nil {
		return nil, nil, clierr.Wrap(clierr.ExitRepository, "opening repository", err)
	}
	return cfg, repo, nil
}
