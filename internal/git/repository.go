// SPDX-License-Identifier: AGPL-3.0-or-later

// Package git models the commit graph of a repository as lazily resolved,
// read-only entities backed by git plumbing commands.
//
// Entities are cheap to construct; every attribute that needs repository data
// is fetched on first access and cached for the lifetime of the value. The
// repository is assumed not to change while entities are in use.
package git

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/mxtadmin/githooks/internal/gitcmd"
)

// NullCommitID is the all-zero id git uses for a ref that does not exist yet
// or was just deleted.
const NullCommitID = "0000000000000000000000000000000000000000"

// DefaultEscapeTags are the summary tags that let a commit waive content failures.
var DefaultEscapeTags = []string{"HOTFIX", "MESS", "TEMP", "WIP"}

var commitIDPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// Repository gives access to commits through a command runner.
type Repository struct {
	runner     gitcmd.Runner
	escapeTags []string

	project lazy[string]
}

// Option configures a Repository.
type Option func(*Repository)

// WithEscapeTags replaces the default escape tags.
func WithEscapeTags(tags ...string) Option {
	return func(r *Repository) {
		r.escapeTags = append([]string(nil), tags...)
	}
}

// NewRepository wraps a runner whose commands execute inside the repository.
func NewRepository(runner gitcmd.Runner, opts ...Option) *Repository {
	r := &Repository{
		runner:     runner,
		escapeTags: append([]string(nil), DefaultEscapeTags...),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EscapeTags returns the tags that make ContentCanFail report false.
func (r *Repository) EscapeTags() []string {
	return append([]string(nil), r.escapeTags...)
}

func (r *Repository) run(ctx context.Context, args ...string) ([]byte, error) {
	return r.runner.Run(ctx, args...)
}

// Commit returns the commit with the given id. Nothing is fetched yet.
func (r *Repository) Commit(id string) *Commit {
	return &Commit{repo: r, id: id}
}

// CommitOrNil is like Commit but maps the null id to nil, the way hook
// arguments describe a ref that does not exist on one side of an update.
func (r *Repository) CommitOrNil(id string) *Commit {
	if id == NullCommitID {
		return nil
	}
	return r.Commit(id)
}

// ValidCommitID reports whether id is a full lowercase hex object id.
func ValidCommitID(id string) bool {
	return commitIDPattern.MatchString(id)
}

// ResolveCommit resolves a revision such as "HEAD" or a short id to a commit.
func (r *Repository) ResolveCommit(ctx context.Context, rev string) (*Commit, error) {
	if ValidCommitID(rev) {
		return r.Commit(rev), nil
	}
	out, err := r.run(ctx, ResolveArgs(rev)...)
	if err != nil {
		// --quiet makes rev-parse exit 1 without a message for unknown revisions.
		var toolErr *gitcmd.ToolInvocationError
		if errors.As(err, &toolErr) && toolErr.ExitCode == 1 {
			return nil, fmt.Errorf("resolving %q: %w: %w", rev, ErrNotFound, err)
		}
		return nil, wrapToolError(fmt.Sprintf("resolving %q", rev), err)
	}
	id := strings.TrimSpace(string(out))
	if !ValidCommitID(id) {
		return nil, fmt.Errorf("resolving %q: %w", rev, ErrNotFound)
	}
	return r.Commit(id), nil
}

// Project returns the short name of the project the push remote points at,
// e.g. "service" for "git@example.com:team/service.git". It is empty when no
// push remote is configured. The result is shared by every entity of the repository.
func (r *Repository) Project(ctx context.Context) (string, error) {
	return r.project.get(ctx, r.fetchProject)
}

func (r *Repository) fetchProject(ctx context.Context) (string, error) {
	out, err := r.run(ctx, RemoteArgs()...)
	if err != nil {
		return "", wrapToolError("listing remotes", err)
	}

	var pushURLs []string
	for _, line := range splitLines(out) {
		text := decodeText(line)
		if !strings.Contains(text, "push") {
			continue
		}
		fields := strings.Split(strings.ReplaceAll(text, " ", "\t"), "\t")
		if len(fields) < 2 {
			continue
		}
		pushURLs = append(pushURLs, fields[1])
	}

	if len(pushURLs) == 0 {
		return "", nil
	}
	if len(pushURLs) > 1 {
		log.WithField("remotes", pushURLs).Warn("several push remotes configured, attributing to the first")
	}
	return projectName(pushURLs[0]), nil
}

// projectName takes the last segment of a remote URL and strips its extension.
func projectName(url string) string {
	url = strings.TrimRight(url, "/")
	if i := strings.LastIndexAny(url, "/:"); i >= 0 {
		url = url[i+1:]
	}
	if i := strings.LastIndex(url, "."); i > 0 {
		url = url[:i]
	}
	return url
}
