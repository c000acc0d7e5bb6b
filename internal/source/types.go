package source

// FileID identifies a file within a FileSet. Ids are never reused, so a
// removed and re-added path gets a fresh one.
type FileID uint32

// File is one registered text. The text itself lives in Buffer and changes
// with every committed edit.
type File struct {
	ID     FileID
	Path   string
	Buffer *Buffer
	HadBOM bool
}

// LineCol is a 1-based line and byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}
