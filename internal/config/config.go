// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the githooks YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mxtadmin/githooks/internal/git"
	"github.com/mxtadmin/githooks/internal/gitcmd"
)

// DefaultPath is where the configuration is looked up when no path is given.
const DefaultPath = ".githooks.yaml"

// Config is the top-level configuration.
type Config struct {
	GitPath    string   `yaml:"git_path"`
	RepoDir    string   `yaml:"repo_dir"`
	StateDir   string   `yaml:"state_dir"`
	EscapeTags []string `yaml:"escape_tags"`
	Checks     Checks   `yaml:"checks"`
}

// Checks configures the built-in checks. Zero values disable the limit they describe.
type Checks struct {
	Enabled             []string `yaml:"enabled"`
	EmailDomains        []string `yaml:"email_domains"`
	MaxBinarySize       int64    `yaml:"max_binary_size"`
	AllowedInterpreters []string `yaml:"allowed_interpreters"`
	MaxSummaryLength    int      `yaml:"max_summary_length"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		RepoDir:    ".",
		StateDir:   filepath.Join(".githooks", "run"),
		EscapeTags: append([]string(nil), git.DefaultEscapeTags...),
	}
}

// Load reads the file at path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the operator
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Checks.MaxBinarySize < 0 {
		return fmt.Errorf("checks.max_binary_size must not be negative")
	}
	if c.Checks.MaxSummaryLength < 0 {
		return fmt.Errorf("checks.max_summary_length must not be negative")
	}
	if c.RepoDir == "" {
		c.RepoDir = "."
	}
	return nil
}

// ResolveGitPath resolves the git executable once and stores it in GitPath.
func (c *Config) ResolveGitPath() (string, error) {
	path, err := gitcmd.LookPath(c.GitPath)
	if err != nil {
		return "", err
	}
	c.GitPath = path
	return path, nil
}

// Repository builds the repository the configuration points at.
func (c *Config) Repository() (*git.Repository, error) {
	gitPath, err := c.ResolveGitPath()
	if err != nil {
		return nil, err
	}
	runner := gitcmd.NewExecRunner(gitPath, c.RepoDir)
	return git.NewRepository(runner, git.WithEscapeTags(c.EscapeTags...)), nil
}

// StatePath returns the state directory, anchored at the repository directory when relative.
func (c *Config) StatePath() string {
	if filepath.IsAbs(c.StateDir) {
		return c.StateDir
	}
	return filepath.Join(c.RepoDir, c.StateDir)
}
