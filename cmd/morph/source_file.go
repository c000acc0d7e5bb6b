package main

import (
	"fmt"
	"os"

	"morph/internal/source"
)

// readSource loads path into a fresh file set.
func readSource(path string) (*source.FileSet, source.FileID, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	fs := source.NewFileSet()
	id := fs.Add(path, data)
	return fs, id, fs.Get(id).Buffer.Bytes(), nil
}
