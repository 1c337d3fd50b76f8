// SPDX-License-Identifier: AGPL-3.0-or-later

package git

import (
	"context"
	"strings"
)

// ChangedFiles returns the files the commit adds or modifies. Renames and
// rewrites count as additions of the new path; deletions are not reported.
// Root commits are compared against the empty tree.
func (c *Commit) ChangedFiles(ctx context.Context) ([]*CommittedFile, error) {
	return c.changed.get(ctx, func(ctx context.Context) ([]*CommittedFile, error) {
		out, err := c.repo.run(ctx, ChangedFilesArgs(c.id)...)
		if err != nil {
			return nil, wrapToolError("changed files of "+c.String(), err)
		}
		return parseDiffTree(c, decodeText(out))
	})
}

// parseDiffTree reads raw diff-tree records of the form
//
//	:100644 100755 <old id> <new id> M<TAB>path
//
// which must split into exactly six fields.
func parseDiffTree(c *Commit, output string) ([]*CommittedFile, error) {
	files := []*CommittedFile{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		meta, path, ok := strings.Cut(line, "\t")
		fields := strings.Fields(meta)
		if !ok || path == "" || len(fields) != 5 {
			return nil, malformed("diff record %q: want 6 fields", line)
		}
		if !strings.HasPrefix(fields[0], ":") {
			return nil, malformed("diff record %q: missing ':' marker", line)
		}
		mode, objectID := fields[1], fields[3]
		if len(mode) != 6 {
			return nil, malformed("diff record %q: bad mode %q", line, mode)
		}
		path, err := unquotePath(path)
		if err != nil {
			return nil, malformed("diff record %q: bad quoted path", line)
		}
		files = append(files, &CommittedFile{
			path:     path,
			commit:   c,
			mode:     mode,
			objectID: objectID,
		})
	}
	return files, nil
}

// BinaryFiles returns the paths the commit adds or modifies for which git
// cannot produce a line diff.
func (c *Commit) BinaryFiles(ctx context.Context) ([]string, error) {
	return c.binary.get(ctx, func(ctx context.Context) ([]string, error) {
		out, err := c.repo.run(ctx, BinaryFilesArgs(c.id)...)
		if err != nil {
			return nil, wrapToolError("binary files of "+c.String(), err)
		}
		return parseNumstat(decodeText(out)), nil
	})
}

// parseNumstat picks the "-<TAB>-<TAB>path" records out of numstat output.
// Lines without exactly three tab separated fields, such as the pretty
// format header, are skipped. A quoted path that does not decode is kept as printed.
func parseNumstat(output string) []string {
	paths := []string{}
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Split(strings.TrimSuffix(line, "\r"), "\t")
		if len(fields) != 3 {
			continue
		}
		if fields[0] != "-" || fields[1] != "-" {
			continue
		}
		path, err := unquotePath(fields[2])
		if err != nil {
			path = fields[2]
		}
		paths = append(paths, path)
	}
	return paths
}
