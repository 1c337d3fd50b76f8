// SPDX-License-Identifier: AGPL-3.0-or-later

package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StateStore handles reading and writing runner state.
type StateStore struct {
	baseDir string
}

// NewStateStore creates a store at the given base directory (e.g. .githooks/run).
func NewStateStore(baseDir string) *StateStore {
	return &StateStore{baseDir: baseDir}
}

func (s *StateStore) lastRunPath() string {
	return filepath.Join(s.baseDir, "last-run.json")
}

func (s *StateStore) checkPath(checkID string) string {
	return filepath.Join(s.baseDir, "checks", strings.ReplaceAll(checkID, ":", "_")+".json")
}

// ReadLastRun loads the last execution summary.
func (s *StateStore) ReadLastRun() (*LastRun, error) {
	var last LastRun
	found, err := readJSON(s.lastRunPath(), &last)
	if err != nil {
		return nil, fmt.Errorf("reading last run: %w", err)
	}
	if !found {
		return nil, nil // Not found is clean state
	}
	return &last, nil
}

// ReadCheck loads the stored result of one check.
func (s *StateStore) ReadCheck(checkID string) (*CheckResult, error) {
	var res CheckResult
	found, err := readJSON(s.checkPath(checkID), &res)
	if err != nil || !found {
		return nil, err
	}
	return &res, nil
}

// WriteLastRun saves the execution summary.
func (s *StateStore) WriteLastRun(last LastRun) error {
	return writeJSON(s.lastRunPath(), last)
}

// WriteCheckResult saves a check's result.
func (s *StateStore) WriteCheckResult(res CheckResult) error {
	return writeJSON(s.checkPath(res.Check), res)
}

// Reset clears the state directory.
func (s *StateStore) Reset() error {
	return os.RemoveAll(s.baseDir)
}

func readJSON(path string, v any) (bool, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is built from the state dir
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", path, err)
	}
	return true, nil
}

func writeJSON(path string, v any) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path) //nolint:gosec // G304: path is built from the state dir
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
