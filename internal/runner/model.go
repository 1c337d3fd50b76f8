// SPDX-License-Identifier: AGPL-3.0-or-later

package runner

// CheckStatus represents the outcome of a check execution.
type CheckStatus string

const (
	StatusPass CheckStatus = "pass"
	StatusFail CheckStatus = "fail"
	StatusSkip CheckStatus = "skip"
	// StatusWarn means every finding was waived by an escape tag.
	StatusWarn CheckStatus = "warn"
)

// Finding is one problem a check reported on a commit or file.
type Finding struct {
	Commit  string `json:"commit"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	// Waived findings belong to commits whose summary carries an escape tag.
	Waived bool `json:"waived,omitempty"`
}

func (f Finding) String() string {
	short := f.Commit
	if len(short) > 8 {
		short = short[:8]
	}
	s := short
	if f.Path != "" {
		s += " " + f.Path
	}
	s += ": " + f.Message
	if f.Waived {
		s += " (waived)"
	}
	return s
}

// CheckResult represents the result of a single check execution.
// Matches <state dir>/checks/<check>.json.
type CheckResult struct {
	Check    string      `json:"check"`
	Status   CheckStatus `json:"status"`
	ExitCode int         `json:"exit_code"`
	Note     string      `json:"note,omitempty"`
	Findings []Finding   `json:"findings,omitempty"`
}

// LastRun represents the summary of the last execution.
// Matches <state dir>/last-run.json.
type LastRun struct {
	Status string   `json:"status"` // "pass" or "fail"
	Ref    string   `json:"ref,omitempty"`
	Branch string   `json:"branch"`
	Tip    string   `json:"tip"`
	Range  string   `json:"range"`
	Checks []string `json:"checks"` // Ordered list of checks run
	Failed []string `json:"failed"` // List of failed checks
}
