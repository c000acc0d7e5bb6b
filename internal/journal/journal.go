// Package journal records committed edits and stores them as msgpack.
package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"morph/internal/manip"
	"morph/internal/source"
)

// SchemaVersion is bumped whenever the layout of File changes.
const SchemaVersion uint16 = 1

// ErrSchema is returned by Read for a journal written by another version.
var ErrSchema = errors.New("journal: unsupported schema")

// File is the on-disk form of a journal.
type File struct {
	Schema  uint16
	Created time.Time
	Entries []Entry
}

// Entry is one committed operation.
type Entry struct {
	Op         string
	Path       string
	Generation uint64
	Edits      []Edit
	Retained   int
	Forgotten  int
}

type Edit struct {
	Start uint32
	End   uint32
	Text  string
}

// Journal collects entries as documents commit. It implements
// manip.Recorder and is safe for concurrent use.
type Journal struct {
	mu      sync.Mutex
	paths   func(source.FileID) string
	created time.Time
	entries []Entry
}

var _ manip.Recorder = (*Journal)(nil)

// New returns an empty journal. paths names the file of each record; when
// nil, entries carry the numeric file id.
func New(paths func(source.FileID) string) *Journal {
	return &Journal{paths: paths, created: time.Now().UTC()}
}

func (j *Journal) Record(a manip.Applied) {
	e := Entry{
		Op:         a.Operation,
		Generation: uint64(a.Generation),
		Retained:   a.Retained,
		Forgotten:  a.Forgotten,
		Edits:      make([]Edit, len(a.Edits)),
	}
	if j.paths != nil {
		e.Path = j.paths(a.File)
	}
	if e.Path == "" {
		e.Path = fmt.Sprintf("#%d", a.File)
	}
	for i, ed := range a.Edits {
		e.Edits[i] = Edit{Start: ed.Start, End: ed.End, Text: ed.Text}
	}
	j.mu.Lock()
	j.entries = append(j.entries, e)
	j.mu.Unlock()
}

func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}

// Snapshot returns the journal as it would be written.
func (j *Journal) Snapshot() *File {
	j.mu.Lock()
	defer j.mu.Unlock()
	entries := make([]Entry, len(j.entries))
	copy(entries, j.entries)
	return &File{Schema: SchemaVersion, Created: j.created, Entries: entries}
}

// WriteFile stores the journal at path. The file is replaced atomically.
func (j *Journal) WriteFile(path string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "journal-*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if err = msgpack.NewEncoder(f).Encode(j.Snapshot()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode journal: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Read decodes the journal at path.
func Read(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out File
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if out.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w %d in %s", ErrSchema, out.Schema, path)
	}
	return &out, nil
}
