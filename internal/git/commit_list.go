// SPDX-License-Identifier: AGPL-3.0-or-later

package git

// CommitList is the ordered set of commits a push introduces on one ref,
// oldest first.
type CommitList struct {
	BranchName string
	// RefPath is the full ref, e.g. "refs/heads/main". When set the branch
	// name is part of the list's display name.
	RefPath string

	commits []*Commit
}

// Commits returns the commits in enumeration order.
func (l *CommitList) Commits() []*Commit {
	return l.commits
}

// Len returns the number of commits.
func (l *CommitList) Len() int {
	return len(l.commits)
}

// Empty reports whether the push introduces no commits.
func (l *CommitList) Empty() bool {
	return len(l.commits) == 0
}

// String names the range by its first and last commit, e.g. "1a2b3c4d..5e6f7a8b (main)".
func (l *CommitList) String() string {
	if len(l.commits) == 0 {
		return ""
	}
	name := l.commits[0].String() + ".." + l.commits[len(l.commits)-1].String()
	if l.RefPath != "" {
		name += " (" + l.BranchName + ")"
	}
	return name
}
