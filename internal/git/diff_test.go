// SPDX-License-Identifier: AGPL-3.0-or-later

package git

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxtadmin/githooks/internal/testutil/fakegit"
)

var (
	blobX = strings.Repeat("1", 40)
	blobY = strings.Repeat("2", 40)
)

func TestCommit_ChangedFiles(t *testing.T) {
	ctx := context.Background()
	out := ":000000 100644 " + NullCommitID + " " + blobX + " A\tdocs/read me.md\n" +
		":100644 100755 " + blobX + " " + blobY + " M\tbin/run.sh\n" +
		":000000 120000 " + NullCommitID + " " + blobY + " A\tlink\n"

	runner := fakegit.New().On(out, ChangedFilesArgs(idA)...)
	c := NewRepository(runner).Commit(idA)

	files, err := c.ChangedFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 3)

	assert.Equal(t, "docs/read me.md", files[0].Path())
	assert.Equal(t, "100644", files[0].Mode())
	assert.Equal(t, blobX, files[0].ObjectID())
	assert.True(t, files[0].Regular())
	assert.False(t, files[0].OwnerCanExecute())

	assert.Equal(t, "bin/run.sh", files[1].Path())
	assert.Equal(t, "100755", files[1].Mode())
	assert.Equal(t, blobY, files[1].ObjectID())
	assert.True(t, files[1].OwnerCanExecute())

	assert.True(t, files[2].Symlink())
	assert.False(t, files[2].Regular())
	assert.Same(t, c, files[2].Commit())

	again, err := c.ChangedFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, files, again)
	assert.Equal(t, 1, runner.Calls(ChangedFilesArgs(idA)...))
}

func TestCommit_ChangedFiles_EmptyIsCached(t *testing.T) {
	ctx := context.Background()
	runner := fakegit.New().On("", ChangedFilesArgs(idA)...)
	c := NewRepository(runner).Commit(idA)

	files, err := c.ChangedFiles(ctx)
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)

	_, err = c.ChangedFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, runner.Total())
}

func TestCommit_ChangedFiles_QuotedPaths(t *testing.T) {
	out := ":000000 100755 " + NullCommitID + " " + blobX + " A\t\"caf\\303\\251.sh\"\n" +
		":000000 100644 " + NullCommitID + " " + blobY + " A\t\"tab\\there \\\"q\\\".txt\"\n"

	runner := fakegit.New().On(out, ChangedFilesArgs(idA)...)
	files, err := NewRepository(runner).Commit(idA).ChangedFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "café.sh", files[0].Path())
	assert.Equal(t, "tab\there \"q\".txt", files[1].Path())
}

func TestParseDiffTree_Malformed(t *testing.T) {
	repo := NewRepository(fakegit.New())
	tests := []string{
		"100644 100644 " + blobX + " " + blobY + " M\tmissing-colon",
		":100644 100644 " + blobX + " M\ttoo-few-fields",
		":100644 100644 " + blobX + " " + blobY + " M no-tab",
		":100644 10064 " + blobX + " " + blobY + " M\tshort-mode",
		":100644 100644 " + blobX + " " + blobY + " M\t\"unterminated",
	}
	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			_, err := parseDiffTree(repo.Commit(idA), line+"\n")
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestCommit_BinaryFiles(t *testing.T) {
	ctx := context.Background()
	out := idA + " -M100%\n" +
		"-\t-\timage.png\n" +
		"3\t1\tcode.py\n" +
		"-\t-\tassets/font.ttf\n" +
		"0\t-\todd.txt\n" +
		"-\t-\t\"logo-\\303\\251.png\"\n"

	runner := fakegit.New().On(out, BinaryFilesArgs(idA)...)
	c := NewRepository(runner).Commit(idA)

	paths, err := c.BinaryFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"image.png", "assets/font.ttf", "logo-é.png"}, paths)

	_, err = c.BinaryFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, runner.Total())
}

func TestPlumbingArgs(t *testing.T) {
	assert.Equal(t, []string{"rev-list", idA, "--not", "--all", "--reverse"}, NewCommitsArgs(idA))
	assert.Equal(t, []string{"cat-file", "-p", idA}, CommitBodyArgs(idA))
	assert.Equal(t, idA+"^!", BinaryFilesArgs(idA)[len(BinaryFilesArgs(idA))-1])
	assert.Contains(t, ChangedFilesArgs(idA), "--root")
	assert.Contains(t, ChangedFilesArgs(idA), "--diff-filter=AM")
	assert.Equal(t, []string{"show", idA + ":a/b.txt"}, BlobContentArgs(idA, "a/b.txt"))
}
