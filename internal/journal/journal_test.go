package journal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"morph/internal/manip"
	"morph/internal/source"
)

func TestRecordAndRead(t *testing.T) {
	j := New(func(id source.FileID) string {
		if id == 1 {
			return "/a.ts"
		}
		return ""
	})
	j.Record(manip.Applied{
		Operation:  "replace-text",
		File:       1,
		Generation: 2,
		Edits:      []source.Edit{{Start: 4, End: 5, Text: "b"}},
		Retained:   7,
	})
	j.Record(manip.Applied{Operation: "insert", File: 9, Generation: 1})
	if j.Len() != 2 {
		t.Fatalf("Len = %d", j.Len())
	}

	path := filepath.Join(t.TempDir(), "out", "edits.mp")
	if err := j.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("entries = %d", len(got.Entries))
	}
	e := got.Entries[0]
	if e.Op != "replace-text" || e.Path != "/a.ts" || e.Generation != 2 || e.Retained != 7 {
		t.Errorf("entry = %+v", e)
	}
	if len(e.Edits) != 1 || e.Edits[0] != (Edit{Start: 4, End: 5, Text: "b"}) {
		t.Errorf("edits = %+v", e.Edits)
	}
	if got.Entries[1].Path != "#9" {
		t.Errorf("unnamed file path = %q", got.Entries[1].Path)
	}

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "journal-*"))
	if err != nil || len(matches) != 0 {
		t.Errorf("temporary files left behind: %v", matches)
	}
}

func TestReadRejectsOtherSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.mp")
	data, err := msgpack.Marshal(&File{Schema: SchemaVersion + 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); !errors.Is(err, ErrSchema) {
		t.Fatalf("Read = %v, want ErrSchema", err)
	}
}
