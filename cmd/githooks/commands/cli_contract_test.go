// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestCLIContract(t *testing.T) {
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("root command failed: %v", err)
	}

	out := b.String()

	// Hook scripts call these by name
	requiredCommands := []string{
		"completion",
		"help",
		"inspect",
		"report",
		"reset",
		"resume",
		"update",
		"version",
	}

	for _, c := range requiredCommands {
		if !strings.Contains(out, c) {
			t.Errorf("expected top-level command %q in root help", c)
		}
	}
}

func TestCLICommandUpdateHelp(t *testing.T) {
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"update", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("update command failed: %v", err)
	}

	out := b.String()
	if !strings.Contains(out, "Usage:") {
		t.Errorf("expected usage info in update help")
	}
	if !strings.Contains(out, "--check") {
		t.Errorf("expected --check flag in update help")
	}
}
