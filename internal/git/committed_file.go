// SPDX-License-Identifier: AGPL-3.0-or-later

package git

import (
	"bytes"
	"context"
	"path"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// CommittedFile is one path as it exists at one commit.
type CommittedFile struct {
	path   string
	commit *Commit
	// mode and objectID come from the diff record; empty for synthesized files.
	mode     string
	objectID string

	content lazy[[]byte]
	size    lazy[int64]
}

// Path returns the repository-relative, slash-separated path.
func (f *CommittedFile) Path() string { return f.path }

// Commit returns the commit the file is looked at in.
func (f *CommittedFile) Commit() *Commit { return f.commit }

// Mode returns the six digit octal mode, or "" when unknown.
func (f *CommittedFile) Mode() string { return f.mode }

// ObjectID returns the blob id, or "" when unknown.
func (f *CommittedFile) ObjectID() string { return f.objectID }

func (f *CommittedFile) String() string {
	return "file " + f.path + " at commit " + f.commit.String()
}

// Equal reports whether both values name the same path at the same commit.
// Mode, object id and content do not take part.
func (f *CommittedFile) Equal(other *CommittedFile) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.path == other.path && f.commit.Equal(other.commit)
}

// Regular reports a regular file mode (100644, 100755).
func (f *CommittedFile) Regular() bool {
	return strings.HasPrefix(f.mode, "10")
}

// Symlink reports a symbolic link mode (120000).
func (f *CommittedFile) Symlink() bool {
	return strings.HasPrefix(f.mode, "12")
}

// OwnerCanExecute reports the owner execute bit.
func (f *CommittedFile) OwnerCanExecute() bool {
	if len(f.mode) < 3 {
		return false
	}
	owner, err := strconv.Atoi(f.mode[len(f.mode)-3 : len(f.mode)-2])
	if err != nil {
		return false
	}
	return owner&1 == 1
}

// Filename returns the last path segment.
func (f *CommittedFile) Filename() string {
	return path.Base(f.path)
}

// Extension returns the text after the last dot of the filename, or "".
func (f *CommittedFile) Extension() string {
	name := f.Filename()
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return name[i+1:]
}

// InFramework reports whether the file lives inside a ".framework" bundle.
func (f *CommittedFile) InFramework() bool {
	return strings.Contains(f.path, ".framework")
}

// Projects returns the short project name of the repository's push remote.
func (f *CommittedFile) Projects(ctx context.Context) (string, error) {
	return f.commit.repo.Project(ctx)
}

// Exists reports whether the path is in the commit's tree.
func (f *CommittedFile) Exists(ctx context.Context) (bool, error) {
	out, err := f.commit.repo.run(ctx, LsTreeArgs(f.commit.id, f.path)...)
	if err != nil {
		return false, wrapToolError("listing "+f.path+" at "+f.commit.String(), err)
	}
	return len(bytes.TrimSpace(out)) > 0, nil
}

// Changed reports whether the file is among its commit's changed files.
func (f *CommittedFile) Changed(ctx context.Context) (bool, error) {
	files, err := f.commit.ChangedFiles(ctx)
	if err != nil {
		return false, err
	}
	for _, other := range files {
		if f.Equal(other) {
			return true, nil
		}
	}
	return false, nil
}

// Content returns the raw bytes recorded for the path at the commit.
func (f *CommittedFile) Content(ctx context.Context) ([]byte, error) {
	return f.content.get(ctx, func(ctx context.Context) ([]byte, error) {
		out, err := f.commit.repo.run(ctx, BlobContentArgs(f.commit.id, f.path)...)
		if err != nil {
			return nil, wrapToolError(f.String(), err)
		}
		return out, nil
	})
}

// Size returns the blob size in bytes, or -1 when it cannot be determined.
// The size is advisory, so failures are logged and not returned.
func (f *CommittedFile) Size(ctx context.Context) int64 {
	size, err := f.size.get(ctx, func(ctx context.Context) (int64, error) {
		if f.objectID == "" {
			return -1, nil
		}
		out, err := f.commit.repo.run(ctx, BlobSizeArgs(f.objectID)...)
		if err != nil {
			log.WithError(err).WithField("path", f.path).Info("cannot determine file size")
			return -1, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
		if err != nil {
			log.WithError(err).WithField("path", f.path).Info("cannot determine file size")
			return -1, err
		}
		return n, nil
	})
	if err != nil {
		return -1
	}
	return size
}

// shebangFields returns the whitespace separated words of a "#!" first line,
// or nil when the file is not a regular file starting with "#!".
func (f *CommittedFile) shebangFields(ctx context.Context) ([]string, error) {
	if !f.Regular() {
		return nil, nil
	}
	content, err := f.Content(ctx)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(content, []byte("#!")) {
		return nil, nil
	}
	first, _, _ := bytes.Cut(content[len("#!"):], []byte("\n"))
	fields := strings.Fields(decodeText(first))
	if len(fields) == 0 {
		return nil, malformed("%s: empty shebang line", f)
	}
	return fields, nil
}

// Shebang returns the interpreter path of the "#!" line, or "" when the file
// has none.
func (f *CommittedFile) Shebang(ctx context.Context) (string, error) {
	fields, err := f.shebangFields(ctx)
	if err != nil || fields == nil {
		return "", err
	}
	return fields[0], nil
}

// ShebangExe returns the name of the executable the shebang runs: the
// program /usr/bin/env is asked to find, otherwise the last segment of the
// interpreter path. It is "" when the file has no shebang.
func (f *CommittedFile) ShebangExe(ctx context.Context) (string, error) {
	fields, err := f.shebangFields(ctx)
	if err != nil || fields == nil {
		return "", err
	}
	if fields[0] == "/usr/bin/env" {
		for _, arg := range fields[1:] {
			// env options and VAR=value assignments precede the program.
			if strings.HasPrefix(arg, "-") || strings.Contains(arg, "=") {
				continue
			}
			return arg, nil
		}
	}
	return path.Base(fields[0]), nil
}

// SymlinkTarget reads the content as a link target relative to the file's
// directory and returns the file it points at in the same commit. It returns
// nil when the target is absolute or leaves the repository.
func (f *CommittedFile) SymlinkTarget(ctx context.Context) (*CommittedFile, error) {
	content, err := f.Content(ctx)
	if err != nil {
		return nil, err
	}
	target := decodeText(content)
	if path.IsAbs(target) {
		return nil, nil
	}
	resolved := path.Join(path.Dir(f.path), target)
	if resolved == "." || resolved == ".." || strings.HasPrefix(resolved, "../") {
		return nil, nil
	}
	return f.commit.File(resolved), nil
}
