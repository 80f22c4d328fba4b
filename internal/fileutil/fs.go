package fileutil

import (
	"fmt"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// Resolver turns a #include operand into a concrete path on an
// afero.Fs. Arma addons are conventionally mounted under a virtual
// "P:" drive; a backslash-prefixed include is an absolute path that
// should resolve against that drive. Since a real deployment has no
// such drive letter, Resolver emulates it with two roots: the topmost
// directory of the path of the file currently being processed, which
// stands in for that file's drive (tried first, so a self-contained
// addon resolves its own absolute includes without external
// configuration), and a configured root (the WithIncludeRoot option),
// tried second.
type Resolver struct {
	fs   afero.Fs
	root string // the "P:" drive; "" disables the fallback
}

// NewResolver builds a Resolver. root may be empty if the caller
// never needs absolute, drive-rooted includes to resolve.
func NewResolver(fs afero.Fs, root string) *Resolver {
	return &Resolver{fs: fs, root: root}
}

// Resolve finds the file that fromDir's #include operand refers to.
// fromDir is the directory of the file containing the directive.
// Relative operands (the common case) resolve under fromDir.
// Backslash-prefixed operands are absolute: Resolve tries fromDir's
// own filesystem root first, then the configured include root.
func (r *Resolver) Resolve(fromDir, operand string) (string, error) {
	clean := strings.ReplaceAll(operand, "\\", "/")
	clean = strings.TrimPrefix(clean, "/")

	if !strings.HasPrefix(operand, "\\") && !strings.HasPrefix(operand, "/") {
		return r.findUnder(fromDir, clean)
	}

	localRoot := localDriveRoot(fromDir)
	if p, err := r.findUnder(localRoot, clean); err == nil {
		return p, nil
	}

	if r.root == "" {
		return "", fmt.Errorf("cannot resolve absolute include %q: no include root configured and not found under %s", operand, localRoot)
	}
	p, err := r.findUnder(r.root, clean)
	if err != nil {
		return "", fmt.Errorf("cannot resolve absolute include %q under local root %s or include root %s: %w", operand, localRoot, r.root, err)
	}
	return p, nil
}

// findUnder walks clean's directory components under base,
// resolving each one case-insensitively, and returns the full path
// to the final file.
func (r *Resolver) findUnder(base, clean string) (string, error) {
	dir := base
	parts := strings.Split(clean, "/")
	for i, part := range parts {
		if part == "" {
			continue
		}
		actual, err := FindCaseInsensitive(r.fs, dir, part)
		if err != nil {
			if i == len(parts)-1 {
				return "", err
			}
			// Directory component missing; afero.ReadDir on a
			// nonexistent dir already produced a descriptive error.
			return "", err
		}
		dir = path.Join(dir, actual)
	}
	return dir, nil
}

// localDriveRoot approximates the "drive" that dir belongs to: the
// topmost directory component, i.e. dir with everything below its
// first path segment stripped ("/addon/sub" yields "/addon"). An empty
// dir or "/" itself yields "/".
func localDriveRoot(dir string) string {
	dir = strings.TrimPrefix(dir, "/")
	if dir == "" {
		return "/"
	}
	parts := strings.SplitN(dir, "/", 2)
	return "/" + parts[0]
}

// ReadFile reads path through fs.
func (r *Resolver) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(r.fs, path)
}

// Dir returns the directory portion of path, afero/forward-slash style.
func Dir(p string) string {
	d := path.Dir(p)
	if d == "." {
		return "/"
	}
	return d
}
