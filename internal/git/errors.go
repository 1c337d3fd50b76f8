// SPDX-License-Identifier: AGPL-3.0-or-later

package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mxtadmin/githooks/internal/gitcmd"
)

var (
	// ErrNotFound marks a commit, path or blob that does not exist where it was asked for.
	ErrNotFound = errors.New("not found")

	// ErrMalformed marks plumbing output that does not have the expected shape.
	ErrMalformed = errors.New("malformed git output")
)

// Fragments git prints on stderr when an object or path cannot be resolved.
var missingMarkers = []string{
	"not a valid object name",
	"invalid object name",
	"bad object",
	"bad revision",
	"unknown revision",
	"does not exist",
	"exists on disk, but not in",
}

// wrapToolError annotates err with what was being fetched and adds ErrNotFound
// when git reported a missing object.
func wrapToolError(what string, err error) error {
	var toolErr *gitcmd.ToolInvocationError
	if errors.As(err, &toolErr) && isMissing(toolErr.Stderr) {
		return fmt.Errorf("%s: %w: %w", what, ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func isMissing(stderr string) bool {
	lower := strings.ToLower(stderr)
	for _, m := range missingMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
