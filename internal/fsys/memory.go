package fsys

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

// MemoryHost keeps files in memory. It is safe for concurrent use.
type MemoryHost struct {
	mu    sync.RWMutex
	cwd   string
	files map[string][]byte
	dirs  map[string]bool
}

// NewMemoryHost creates an empty file system whose current directory is
// "/".
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{cwd: "/", files: make(map[string][]byte), dirs: map[string]bool{"/": true}}
}

func (h *MemoryHost) CurrentDirectory() string { return h.cwd }

func (h *MemoryHost) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	data, ok := h.files[Abs(h, name)]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (h *MemoryHost) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	p := Abs(h, name)
	h.files[p] = append([]byte(nil), data...)
	h.mkdirLocked(filepath.Dir(p))
	return nil
}

func (h *MemoryHost) Mkdir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mkdirLocked(Abs(h, dir))
	return nil
}

func (h *MemoryHost) mkdirLocked(dir string) {
	for {
		h.dirs[dir] = true
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func (h *MemoryHost) FileExists(ctx context.Context, name string) bool {
	if ctx.Err() != nil {
		return false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.files[Abs(h, name)]
	return ok
}

func (h *MemoryHost) DirectoryExists(ctx context.Context, dir string) bool {
	if ctx.Err() != nil {
		return false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dirs[Abs(h, dir)]
}

func (h *MemoryHost) Glob(ctx context.Context, patterns ...string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h.mu.RLock()
	files := make([]string, 0, len(h.files))
	for p := range h.files {
		if strings.HasPrefix(p, h.cwd) {
			files = append(files, p)
		}
	}
	h.mu.RUnlock()
	return globFiles(h.cwd, files, patterns), nil
}
