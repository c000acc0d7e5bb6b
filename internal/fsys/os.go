package fsys

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
)

// OSHost is the real file system.
type OSHost struct {
	cwd string
}

// NewOSHost roots relative paths at dir, or at the process working
// directory when dir is empty.
func NewOSHost(dir string) (*OSHost, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &OSHost{cwd: abs}, nil
}

func (h *OSHost) CurrentDirectory() string { return h.cwd }

func (h *OSHost) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(Abs(h, name))
}

// WriteFile writes through a temporary file and a rename so readers never
// see a partial file.
func (h *OSHost) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target := Abs(h, name)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), ".morph-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (h *OSHost) Mkdir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.MkdirAll(Abs(h, dir), 0o755)
}

func (h *OSHost) FileExists(ctx context.Context, name string) bool {
	if ctx.Err() != nil {
		return false
	}
	st, err := os.Stat(Abs(h, name))
	return err == nil && st.Mode().IsRegular()
}

func (h *OSHost) DirectoryExists(ctx context.Context, dir string) bool {
	if ctx.Err() != nil {
		return false
	}
	st, err := os.Stat(Abs(h, dir))
	return err == nil && st.IsDir()
}

// Glob walks the current directory. Hidden directories are skipped.
func (h *OSHost) Glob(ctx context.Context, patterns ...string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(h.cwd, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != h.cwd && len(d.Name()) > 1 && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return globFiles(h.cwd, files, patterns), nil
}
