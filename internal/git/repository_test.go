// SPDX-License-Identifier: AGPL-3.0-or-later

package git

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxtadmin/githooks/internal/testutil/fakegit"
)

func TestRepository_Project(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		remotes string
		want    string
	}{
		{
			name: "https",
			remotes: "origin\thttps://git.example.com/team/service.git (fetch)\n" +
				"origin\thttps://git.example.com/team/service.git (push)\n",
			want: "service",
		},
		{
			name:    "scp-like without slash",
			remotes: "origin\tgit@example.com:service.git (push)\n",
			want:    "service",
		},
		{
			name:    "dotted name keeps all but the extension",
			remotes: "origin\tgit@example.com:team/my.service.git (push)\n",
			want:    "my.service",
		},
		{
			name:    "no extension",
			remotes: "origin\t/srv/git/tools (push)\n",
			want:    "tools",
		},
		{
			name: "first push remote wins",
			remotes: "backup\thttps://example.com/b/first.git (push)\n" +
				"origin\thttps://example.com/a/second.git (push)\n",
			want: "first",
		},
		{
			name:    "fetch only",
			remotes: "origin\thttps://example.com/a/repo.git (fetch)\n",
			want:    "",
		},
		{
			name:    "no remotes",
			remotes: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := fakegit.New().On(tt.remotes, RemoteArgs()...)
			repo := NewRepository(runner)

			got, err := repo.Project(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepository_ProjectSharedAcrossEntities(t *testing.T) {
	ctx := context.Background()
	runner := fakegit.New().On("origin\tgit@example.com:team/hooks.git (push)\n", RemoteArgs()...)
	repo := NewRepository(runner)

	p1, err := repo.Commit(idA).Projects(ctx)
	require.NoError(t, err)
	p2, err := repo.Commit(idB).File("x").Projects(ctx)
	require.NoError(t, err)

	assert.Equal(t, "hooks", p1)
	assert.Equal(t, p1, p2)
	assert.Equal(t, 1, runner.Calls(RemoteArgs()...))
}

func TestRepository_EscapeTags(t *testing.T) {
	assert.Equal(t, DefaultEscapeTags, NewRepository(fakegit.New()).EscapeTags())
	assert.Equal(t, []string{"SKIP"}, NewRepository(fakegit.New(), WithEscapeTags("SKIP")).EscapeTags())
}
