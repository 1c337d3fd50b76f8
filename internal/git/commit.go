// SPDX-License-Identifier: AGPL-3.0-or-later

package git

import (
	"bytes"
	"context"
	"slices"
	"strings"
)

// Commit is one commit of the repository, identified by its id.
type Commit struct {
	repo *Repository
	id   string
	list *CommitList

	content lazy[commitContent]
	changed lazy[[]*CommittedFile]
	binary  lazy[[]string]
}

type commitContent struct {
	parents   []*Commit
	author    Contributor
	committer Contributor
	message   []string
}

// ID returns the full commit id.
func (c *Commit) ID() string { return c.id }

// List returns the commit list this commit was enumerated into, if any.
func (c *Commit) List() *CommitList { return c.list }

// Repository returns the repository the commit belongs to.
func (c *Commit) Repository() *Repository { return c.repo }

func (c *Commit) String() string {
	if len(c.id) > 8 {
		return c.id[:8]
	}
	return c.id
}

// IsNull reports whether c is absent or carries the null commit id.
func (c *Commit) IsNull() bool {
	return c == nil || c.id == NullCommitID
}

// Equal reports whether both commits have the same id.
func (c *Commit) Equal(other *Commit) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.id == other.id
}

// NewCommitList enumerates the commits reachable from c that no existing ref
// reaches, oldest first. These are the commits a push of c would introduce.
func (c *Commit) NewCommitList(ctx context.Context, branchName string) (*CommitList, error) {
	out, err := c.repo.run(ctx, NewCommitsArgs(c.id)...)
	if err != nil {
		return nil, wrapToolError("listing new commits of "+c.String(), err)
	}

	list := &CommitList{BranchName: branchName}
	for _, line := range splitLines(out) {
		id := strings.TrimSpace(string(line))
		if id == "" {
			continue
		}
		commit := c.repo.Commit(id)
		commit.list = list
		list.commits = append(list.commits, commit)
	}
	return list, nil
}

func (c *Commit) fetchContent(ctx context.Context) (commitContent, error) {
	return c.content.get(ctx, func(ctx context.Context) (commitContent, error) {
		out, err := c.repo.run(ctx, CommitBodyArgs(c.id)...)
		if err != nil {
			return commitContent{}, wrapToolError("commit "+c.id, err)
		}
		return c.parseContent(out)
	})
}

// parseContent reads header lines up to the first blank line, then the message.
func (c *Commit) parseContent(raw []byte) (commitContent, error) {
	var (
		content      commitContent
		hasAuthor    bool
		hasCommitter bool
	)

	lines := splitLines(raw)
	i := 0
	for ; i < len(lines); i++ {
		line := lines[i]
		if len(line) == 0 {
			i++
			break
		}
		switch {
		case bytes.HasPrefix(line, []byte("parent ")):
			id := strings.TrimSpace(string(line[len("parent "):]))
			content.parents = append(content.parents, c.repo.Commit(id))
		case bytes.HasPrefix(line, []byte("author ")):
			author, err := ParseContributor(line[len("author "):])
			if err != nil {
				return commitContent{}, err
			}
			content.author, hasAuthor = author, true
		case bytes.HasPrefix(line, []byte("committer ")):
			committer, err := ParseContributor(line[len("committer "):])
			if err != nil {
				return commitContent{}, err
			}
			content.committer, hasCommitter = committer, true
		}
	}

	if !hasAuthor {
		return commitContent{}, malformed("commit %s: no author header", c.id)
	}
	if !hasCommitter {
		return commitContent{}, malformed("commit %s: no committer header", c.id)
	}

	content.message = make([]string, 0, len(lines)-i)
	for ; i < len(lines); i++ {
		content.message = append(content.message, decodeText(lines[i]))
	}
	return content, nil
}

// Parents returns the parent commits in recorded order. Root commits have none.
func (c *Commit) Parents(ctx context.Context) ([]*Commit, error) {
	content, err := c.fetchContent(ctx)
	if err != nil {
		return nil, err
	}
	return content.parents, nil
}

// Author returns the commit author.
func (c *Commit) Author(ctx context.Context) (Contributor, error) {
	content, err := c.fetchContent(ctx)
	if err != nil {
		return Contributor{}, err
	}
	return content.author, nil
}

// Committer returns the commit committer.
func (c *Commit) Committer(ctx context.Context) (Contributor, error) {
	content, err := c.fetchContent(ctx)
	if err != nil {
		return Contributor{}, err
	}
	return content.committer, nil
}

// Contributors returns the author followed by the committer.
func (c *Commit) Contributors(ctx context.Context) ([]Contributor, error) {
	content, err := c.fetchContent(ctx)
	if err != nil {
		return nil, err
	}
	return []Contributor{content.author, content.committer}, nil
}

// MessageLines returns the commit message split into lines.
func (c *Commit) MessageLines(ctx context.Context) ([]string, error) {
	content, err := c.fetchContent(ctx)
	if err != nil {
		return nil, err
	}
	return content.message, nil
}

// Summary returns the first line of the message.
func (c *Commit) Summary(ctx context.Context) (string, error) {
	lines, err := c.MessageLines(ctx)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", malformed("commit %s: empty message", c.id)
	}
	return lines[0], nil
}

// ParseTags splits the leading "[TAG]" prefixes off the summary.
func (c *Commit) ParseTags(ctx context.Context) ([]string, string, error) {
	summary, err := c.Summary(ctx)
	if err != nil {
		return nil, "", err
	}
	tags, rest := SplitTags(summary)
	return tags, rest, nil
}

// SplitTags repeatedly strips a leading bracketed tag while the remainder
// starts with "[" and still contains a "]".
func SplitTags(summary string) ([]string, string) {
	tags := []string{}
	rest := summary
	for strings.HasPrefix(rest, "[") {
		end := strings.Index(rest, "]")
		if end < 0 {
			break
		}
		tags = append(tags, rest[1:end])
		rest = rest[end+1:]
	}
	return tags, rest
}

// ContentCanFail is false when the summary carries one of the repository's
// escape tags. Matching is exact and case-sensitive.
func (c *Commit) ContentCanFail(ctx context.Context) (bool, error) {
	tags, _, err := c.ParseTags(ctx)
	if err != nil {
		return false, err
	}
	for _, tag := range tags {
		if slices.Contains(c.repo.escapeTags, tag) {
			return false, nil
		}
	}
	return true, nil
}

// Projects returns the short project name of the repository's push remote.
func (c *Commit) Projects(ctx context.Context) (string, error) {
	return c.repo.Project(ctx)
}

// File returns the file at path as it exists in this commit. Mode and object
// id are unknown for files not taken from a diff record.
func (c *Commit) File(path string) *CommittedFile {
	return &CommittedFile{path: path, commit: c}
}
