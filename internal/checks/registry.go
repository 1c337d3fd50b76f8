// SPDX-License-Identifier: AGPL-3.0-or-later

package checks

import (
	"fmt"

	"github.com/mxtadmin/githooks/internal/runner"
)

// Registry defines the canonical order of checks.
var Registry = []runner.Check{
	&CommitSummary{},
	&EmailDomain{},
	&BinarySize{},
	&Shebang{},
	&Symlink{},
}

// Enabled returns the registered checks named in ids, in registry order.
// An empty list enables every check.
func Enabled(ids []string) ([]runner.Check, error) {
	if len(ids) == 0 {
		return Registry, nil
	}
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}

	var enabled []runner.Check
	for _, c := range Registry {
		if want[c.ID()] {
			enabled = append(enabled, c)
			delete(want, c.ID())
		}
	}
	for _, id := range ids {
		if want[id] {
			return nil, fmt.Errorf("unknown check: %s", id)
		}
	}
	return enabled, nil
}
