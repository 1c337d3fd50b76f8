// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mxtadmin/githooks/cmd/githooks/internal/clierr"
	"github.com/mxtadmin/githooks/internal/runner"
)

// NewReportCommand returns the `githooks report` command.
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show last run status",
		Args:  cobra.NoArgs,
		RunE:  runReport,
	}
	cmd.Flags().Bool("json", false, "output JSON")
	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store := runner.NewStateStore(cfg.StatePath())
	last, err := store.ReadLastRun()
	if err != nil {
		return clierr.Wrap(clierr.ExitConfig, "reading run state", err)
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(last)
	}

	if last == nil {
		_, _ = fmt.Fprintln(out, "No run state found.")
		return nil
	}

	_, _ = fmt.Fprintf(out, "Status: %s\n", last.Status)
	_, _ = fmt.Fprintf(out, "Ref: %s\n", orNone(last.Ref))
	_, _ = fmt.Fprintf(out, "Range: %s\n", orNone(last.Range))
	if len(last.Failed) == 0 {
		_, _ = fmt.Fprintln(out, "All passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "Failed:")
	for _, id := range last.Failed {
		_, _ = fmt.Fprintf(out, "  - %s\n", id)
		res, err := store.ReadCheck(id)
		if err != nil || res == nil {
			continue
		}
		for _, f := range res.Findings {
			_, _ = fmt.Fprintf(out, "      %s\n", f)
		}
	}
	return nil
}

// NewResetCommand returns the `githooks reset` command.
func NewResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear run state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runner.NewStateStore(cfg.StatePath()).Reset()
		},
	}
}
