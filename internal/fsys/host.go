// Package fsys abstracts the file system a project reads from and saves to.
package fsys

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// ErrNotExist is returned for a missing file by every host.
var ErrNotExist = fs.ErrNotExist

// Host is the file system seen by a project. Every blocking method honours
// ctx cancellation before it starts.
type Host interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
	WriteFile(ctx context.Context, name string, data []byte) error
	Mkdir(ctx context.Context, dir string) error
	FileExists(ctx context.Context, name string) bool
	DirectoryExists(ctx context.Context, dir string) bool
	CurrentDirectory() string
	// Glob returns the files matching any of the patterns, sorted. A pattern
	// may use "**" to cross directories.
	Glob(ctx context.Context, patterns ...string) ([]string, error)
}

// Abs resolves name against the host's current directory.
func Abs(h Host, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(h.CurrentDirectory(), name)
}

// Match reports whether name matches pattern. Both use forward slashes;
// "**" matches zero or more path elements.
func Match(pattern, name string) bool {
	return matchParts(strings.Split(pattern, "/"), strings.Split(name, "/"))
}

func matchParts(pat, parts []string) bool {
	for len(pat) > 0 {
		if pat[0] == "**" {
			for i := 0; i <= len(parts); i++ {
				if matchParts(pat[1:], parts[i:]) {
					return true
				}
			}
			return false
		}
		if len(parts) == 0 {
			return false
		}
		if ok, err := path.Match(pat[0], parts[0]); err != nil || !ok {
			return false
		}
		pat, parts = pat[1:], parts[1:]
	}
	return len(parts) == 0
}

// globFiles filters files by patterns relative to cwd.
func globFiles(cwd string, files []string, patterns []string) []string {
	var out []string
	for _, f := range files {
		rel, err := filepath.Rel(cwd, f)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		for _, p := range patterns {
			p = filepath.ToSlash(p)
			if filepath.IsAbs(p) {
				if Match(p, filepath.ToSlash(f)) {
					out = append(out, f)
					break
				}
				continue
			}
			if Match(strings.TrimPrefix(p, "./"), rel) {
				out = append(out, f)
				break
			}
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// IsNotExist reports a missing file from any host.
func IsNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }
