// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, []string{"HOTFIX", "MESS", "TEMP", "WIP"}, cfg.EscapeTags)
	assert.Equal(t, filepath.Join(".githooks", "run"), cfg.StateDir)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "githooks.yaml")
	content := `git_path: /usr/local/bin/git
repo_dir: /srv/repos/app.git
escape_tags: [WIP]
checks:
  enabled: [commit:summary, file:binary-size]
  email_domains: [example.com]
  max_binary_size: 1048576
  allowed_interpreters: [bash, python3]
  max_summary_length: 72
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/git", cfg.GitPath)
	assert.Equal(t, "/srv/repos/app.git", cfg.RepoDir)
	assert.Equal(t, []string{"WIP"}, cfg.EscapeTags)
	assert.Equal(t, []string{"commit:summary", "file:binary-size"}, cfg.Checks.Enabled)
	assert.Equal(t, []string{"example.com"}, cfg.Checks.EmailDomains)
	assert.Equal(t, int64(1048576), cfg.Checks.MaxBinarySize)
	assert.Equal(t, []string{"bash", "python3"}, cfg.Checks.AllowedInterpreters)
	assert.Equal(t, 72, cfg.Checks.MaxSummaryLength)
	assert.Equal(t, filepath.Join("/srv/repos/app.git", ".githooks", "run"), cfg.StatePath())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{name: "empty document", yaml: ""},
		{name: "unknown key", yaml: "gitpath: git\n", wantErr: true},
		{name: "invalid yaml", yaml: "checks: [\n", wantErr: true},
		{name: "negative size", yaml: "checks:\n  max_binary_size: -1\n", wantErr: true},
		{name: "blank repo dir falls back", yaml: "repo_dir: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ".", cfg.RepoDir)
		})
	}
}

func TestStatePath_Absolute(t *testing.T) {
	cfg := Default()
	cfg.StateDir = "/var/lib/githooks"
	assert.Equal(t, "/var/lib/githooks", cfg.StatePath())
}

func TestResolveGitPath_Configured(t *testing.T) {
	cfg := Default()
	cfg.GitPath = "/opt/git/bin/git"
	path, err := cfg.ResolveGitPath()
	require.NoError(t, err)
	assert.Equal(t, "/opt/git/bin/git", path)
}
