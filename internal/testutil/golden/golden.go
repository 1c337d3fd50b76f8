// SPDX-License-Identifier: AGPL-3.0-or-later

// Package golden compares command output with files under a testdata directory.
// Run the tests with -update to rewrite them.
package golden

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var Update = flag.Bool("update", false, "update golden files")

// TestdataDir returns the testdata directory next to the calling test file.
func TestdataDir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(1)
	if !ok {
		t.Fatalf("runtime.Caller failed")
	}
	return filepath.Join(filepath.Dir(filename), "testdata")
}

// Assert compares got with <dir>/<name>.golden, or rewrites the file under -update.
func Assert(t *testing.T, dir, name, got string) {
	t.Helper()
	if *Update {
		write(t, dir, name, got)
		return
	}
	assert.Equal(t, read(t, dir, name), got, "golden %s", name)
}

func read(t *testing.T, dir, name string) string {
	t.Helper()
	safeName(t, name)

	path := filepath.Join(dir, name+".golden")
	data, err := os.ReadFile(path) //nolint:gosec // testdata path controlled by test
	if err != nil {
		t.Fatalf("read golden %s: %v", path, err)
	}
	return string(data)
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	safeName(t, name)

	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("mkdir testdata: %v", err)
	}
	path := filepath.Join(dir, name+".golden")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write golden %s: %v", path, err)
	}
}

func safeName(t *testing.T, name string) {
	t.Helper()
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		t.Fatalf("invalid golden name %q", name)
	}
}
