package source

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// FileSet hands out FileIDs and maps paths to the latest of them. Add may
// be called from several goroutines.
type FileSet struct {
	mu    sync.RWMutex
	files []*File
	index map[string]FileID
}

func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// Add registers content under path, dropping a leading UTF-8 BOM. A path
// that is already present gets a new id.
func (fs *FileSet) Add(path string, content []byte) FileID {
	trimmed, hadBOM := bytes.CutPrefix(content, bom)
	path = NormalizePath(path)

	fs.mu.Lock()
	defer fs.mu.Unlock()
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(n)
	fs.files = append(fs.files, &File{ID: id, Path: path, Buffer: NewBuffer(id, trimmed), HadBOM: hadBOM})
	fs.index[path] = id
	return id
}

// Encode turns text back into file content, restoring the BOM the file
// was read with.
func (f *File) Encode(text string) []byte {
	if !f.HadBOM {
		return []byte(text)
	}
	out := make([]byte, 0, len(bom)+len(text))
	return append(append(out, bom...), text...)
}

// Get returns the file with id, or nil.
func (fs *FileSet) Get(id FileID) *File {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if int(id) >= len(fs.files) {
		return nil
	}
	return fs.files[id]
}

// Lookup returns the latest id registered for path.
func (fs *FileSet) Lookup(path string) (FileID, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	id, ok := fs.index[NormalizePath(path)]
	return id, ok
}

// Forget drops path from the index. Its id stays reserved.
func (fs *FileSet) Forget(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.index, NormalizePath(path))
}

// Resolve converts both ends of span to line and column.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.Buffer.Resolve(span.Start), f.Buffer.Resolve(span.End)
}

// NormalizePath cleans p and uses forward slashes.
func NormalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
