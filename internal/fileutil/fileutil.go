// Package fileutil resolves #include paths against an afero.Fs and
// decodes the files found there. Arma config files are addressed
// case-insensitively and sometimes carry a Windows-1252 byte or two
// left over from authoring tools that never agreed on an encoding, so
// both concerns live together here rather than in the preprocessor.
package fileutil

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// FindCaseInsensitive searches dir for an entry matching name ignoring
// case, returning the entry's actual on-disk name. It matches both
// files and directories, since an include path's intermediate
// components need the same case-insensitive treatment as its final
// file name. Ties (more than one case-variant present) resolve to the
// lexicographically first match so the result is deterministic.
func FindCaseInsensitive(fsys afero.Fs, dir, name string) (string, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return "", fmt.Errorf("read dir %s: %w", dir, err)
	}

	want := strings.ToLower(name)
	var matches []string
	for _, e := range entries {
		if strings.ToLower(e.Name()) == want {
			matches = append(matches, e.Name())
		}
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("file not found: %s (searched in %s)", name, dir)
	}
	sort.Strings(matches)
	return matches[0], nil
}
