// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mxtadmin/githooks/cmd/githooks/internal/clierr"
	"github.com/mxtadmin/githooks/internal/git"
)

// NewInspectCommand returns the `githooks inspect` command.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <revision>",
		Short: "Show the commits a push of the revision would introduce",
		Long:  "Lists the commits reachable from the revision but from no existing ref, with their authors, tags, changed files and binary files.",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	cmd.Flags().String("branch", "", "branch name to label the commit list with")
	cmd.Flags().Bool("json", false, "output JSON")

	return cmd
}

type inspectReport struct {
	Branch  string          `json:"branch"`
	Range   string          `json:"range"`
	Project string          `json:"project,omitempty"`
	Commits []commitSummary `json:"commits"`
}

type commitSummary struct {
	ID             string        `json:"id"`
	Parents        []string      `json:"parents"`
	Author         string        `json:"author"`
	Committer      string        `json:"committer"`
	Summary        string        `json:"summary"`
	Tags           []string      `json:"tags"`
	ContentCanFail bool          `json:"content_can_fail"`
	ChangedFiles   []fileSummary `json:"changed_files"`
	BinaryFiles    []string      `json:"binary_files"`
}

type fileSummary struct {
	Path     string `json:"path"`
	Mode     string `json:"mode"`
	ObjectID string `json:"object_id"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	_, repo, err := openRepository(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	tip, err := repo.ResolveCommit(ctx, args[0])
	if err != nil {
		return clierr.Wrap(clierr.ExitRepository, "resolving revision", err)
	}

	branch, _ := cmd.Flags().GetString("branch")
	list, err := tip.NewCommitList(ctx, branch)
	if err != nil {
		return clierr.Wrap(clierr.ExitRepository, "listing new commits", err)
	}

	report, err := buildInspectReport(ctx, repo, list)
	if err != nil {
		return clierr.Wrap(clierr.ExitRepository, "inspecting commits", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return writeInspectText(cmd.OutOrStdout(), report)
}

func buildInspectReport(ctx context.Context, repo *git.Repository, list *git.CommitList) (*inspectReport, error) {
	project, err := repo.Project(ctx)
	if err != nil {
		return nil, err
	}

	report := &inspectReport{
		Branch:  list.BranchName,
		Range:   list.String(),
		Project: project,
		Commits: []commitSummary{},
	}

	for _, c := range list.Commits() {
		parents, err := c.Parents(ctx)
		if err != nil {
			return nil, err
		}
		author, err := c.Author(ctx)
		if err != nil {
			return nil, err
		}
		committer, err := c.Committer(ctx)
		if err != nil {
			return nil, err
		}
		summary, err := c.Summary(ctx)
		if err != nil {
			return nil, err
		}
		tags, _ := git.SplitTags(summary)
		canFail, err := c.ContentCanFail(ctx)
		if err != nil {
			return nil, err
		}
		files, err := c.ChangedFiles(ctx)
		if err != nil {
			return nil, err
		}
		binary, err := c.BinaryFiles(ctx)
		if err != nil {
			return nil, err
		}

		s := commitSummary{
			ID:             c.ID(),
			Parents:        []string{},
			Author:         author.String(),
			Committer:      committer.String(),
			Summary:        summary,
			Tags:           tags,
			ContentCanFail: canFail,
			ChangedFiles:   []fileSummary{},
			BinaryFiles:    binary,
		}
		for _, p := range parents {
			s.Parents = append(s.Parents, p.ID())
		}
		for _, f := range files {
			s.ChangedFiles = append(s.ChangedFiles, fileSummary{Path: f.Path(), Mode: f.Mode(), ObjectID: f.ObjectID()})
		}
		report.Commits = append(report.Commits, s)
	}
	return report, nil
}

func writeInspectText(w io.Writer, report *inspectReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Branch: %s\n", orNone(report.Branch))
	fmt.Fprintf(&b, "Range: %s\n", orNone(report.Range))
	fmt.Fprintf(&b, "Project: %s\n", orNone(report.Project))
	fmt.Fprintf(&b, "Commits: %d\n", len(report.Commits))

	for _, c := range report.Commits {
		fmt.Fprintf(&b, "\ncommit %s\n", c.ID)
		fmt.Fprintf(&b, "Parents: %s\n", orNone(strings.Join(c.Parents, " ")))
		fmt.Fprintf(&b, "Author: %s\n", c.Author)
		fmt.Fprintf(&b, "Committer: %s\n", c.Committer)
		fmt.Fprintf(&b, "Summary: %s\n", c.Summary)
		fmt.Fprintf(&b, "Tags: %s\n", orNone(strings.Join(c.Tags, " ")))
		fmt.Fprintf(&b, "Content can fail: %t\n", c.ContentCanFail)
		b.WriteString("Changed files:\n")
		for _, f := range c.ChangedFiles {
			fmt.Fprintf(&b, "  %s %s %s\n", f.Mode, f.ObjectID, f.Path)
		}
		b.WriteString("Binary files:\n")
		for _, p := range c.BinaryFiles {
			fmt.Fprintf(&b, "  %s\n", p)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
