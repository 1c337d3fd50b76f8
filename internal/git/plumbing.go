// SPDX-License-Identifier: AGPL-3.0-or-later

package git

// Argument vectors of every plumbing command the introspection layer runs.
// Their output formats are what the parsers in this package consume, so the
// flags must not drift.

// NewCommitsArgs lists commits reachable from tip and from no existing ref, oldest first.
func NewCommitsArgs(tip string) []string {
	return []string{"rev-list", tip, "--not", "--all", "--reverse"}
}

// CommitBodyArgs prints the raw commit object.
func CommitBodyArgs(id string) []string {
	return []string{"cat-file", "-p", id}
}

// RemoteArgs lists configured remotes with their URLs and directions.
func RemoteArgs() []string {
	return []string{"remote", "-v"}
}

// ChangedFilesArgs prints the raw tree diff of one commit: renames and rewrites
// as additions, only additions and modifications, root commits against the empty tree.
func ChangedFilesArgs(id string) []string {
	return []string{
		"diff-tree",
		"-r",
		"--root",
		"--no-commit-id",
		"--break-rewrites",
		"--no-renames",
		"--diff-filter=AM",
		id,
	}
}

// BinaryFilesArgs prints numstat records for exactly one commit.
func BinaryFilesArgs(id string) []string {
	return []string{
		"log",
		"--pretty=format:%H -M100%",
		"--numstat",
		"--no-commit-id",
		"--break-rewrites",
		"--no-renames",
		"--diff-filter=AM",
		id + "^!",
	}
}

// LsTreeArgs lists the path within the commit's tree.
func LsTreeArgs(id, path string) []string {
	return []string{"ls-tree", "--name-only", "-r", id, path}
}

// BlobSizeArgs prints the size of an object.
func BlobSizeArgs(objectID string) []string {
	return []string{"cat-file", "-s", objectID}
}

// BlobContentArgs prints the content of path as recorded at the commit.
func BlobContentArgs(id, path string) []string {
	return []string{"show", id + ":" + path}
}

// ResolveArgs resolves a revision expression to a full commit id.
func ResolveArgs(rev string) []string {
	return []string{"rev-parse", "--verify", "--quiet", rev + "^{commit}"}
}
