package compiler

import (
	"context"
	"fmt"
	"path/filepath"

	"morph/internal/ast"
	"morph/internal/manip"
	"morph/internal/registry"
	"morph/internal/source"
	"morph/internal/trace"
)

// SourceFile is the wrapper of a file's root node. It owns the document and
// the registry every other wrapper of the file lives in.
type SourceFile struct {
	*Node
	StatementedNode

	project   *Project
	fileID    source.FileID
	path      string
	doc       *manip.Document
	reg       *registry.Registry[Wrapper]
	tracer    trace.Tracer
	savedText string
	onDisk    bool
}

func newSourceFile(p *Project, id source.FileID, path string, text []byte, onDisk bool) (*SourceFile, error) {
	sf := &SourceFile{project: p, fileID: id, path: path, tracer: p.tracer, onDisk: onDisk}
	doc, err := manip.NewDocument(id, text, manip.Options{
		Name:       path,
		Settings:   p.opts.Settings,
		Validators: p.validators,
		Recorder:   p.opts.Recorder,
		Tracer:     p.tracer,
		Timer:      p.opts.Timer,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sf.doc = doc
	sf.reg = registry.New(doc.Tree(), sf.compose, p.tracer)
	doc.Attach(sf.reg)
	sf.wrap(doc.Tree().Root)
	if onDisk {
		sf.savedText = doc.Text()
	}
	return sf, nil
}

func (sf *SourceFile) wrap(id ast.NodeID) Wrapper {
	w, ok := sf.reg.Wrapper(id)
	if !ok {
		return nil
	}
	return w
}

// wrapOrNil returns an untyped nil for NoNodeID so that callers can compare
// the result with nil.
func (sf *SourceFile) wrapOrNil(id ast.NodeID) Wrapper {
	if !id.IsValid() {
		return nil
	}
	return sf.wrap(id)
}

func (sf *SourceFile) wrapAll(ids []ast.NodeID) []Wrapper {
	out := make([]Wrapper, 0, len(ids))
	for _, id := range ids {
		if w := sf.wrap(id); w != nil {
			out = append(out, w)
		}
	}
	return out
}

func (sf *SourceFile) baseOrNil(id ast.NodeID) *Node {
	if w := sf.wrapOrNil(id); w != nil {
		return w.Base()
	}
	return nil
}

// Wrap returns the wrapper of a node of the file's current tree.
func (sf *SourceFile) Wrap(id ast.NodeID) (Wrapper, bool) { return sf.reg.Wrapper(id) }

func (sf *SourceFile) FilePath() string { return sf.path }

func (sf *SourceFile) BaseName() string { return filepath.Base(sf.path) }

func (sf *SourceFile) FileID() source.FileID { return sf.fileID }

func (sf *SourceFile) Project() *Project { return sf.project }

// Document exposes the text buffer and current tree.
func (sf *SourceFile) Document() *manip.Document { return sf.doc }

// Position converts an offset in the current text to a line and column,
// both 1-based. Columns count bytes.
func (sf *SourceFile) Position(off uint32) source.LineCol { return sf.doc.Position(off) }

// Tree is the current generation of the file.
func (sf *SourceFile) Tree() *ast.Tree { return sf.doc.Tree() }

func (sf *SourceFile) Generation() ast.Generation { return sf.doc.Generation() }

// WrapperCount is the number of live wrappers of the file.
func (sf *SourceFile) WrapperCount() int { return sf.reg.Len() }

// IsSaved reports whether the text equals what was last read or written.
func (sf *SourceFile) IsSaved() bool { return sf.onDisk && sf.savedText == sf.doc.Text() }

// Save writes the text through the project's host.
func (sf *SourceFile) Save(ctx context.Context) error {
	ctx, span := trace.Start(ctx, sf.tracer, trace.ScopeFile, "save")
	span.WithFile(sf.path).WithGeneration(uint64(sf.Generation()))
	if sf.IsSaved() {
		span.End("unchanged")
		return nil
	}
	text := sf.doc.Text()
	data := []byte(text)
	if f := sf.project.fset.Get(sf.fileID); f != nil {
		data = f.Encode(text)
	}
	if err := sf.project.host.WriteFile(ctx, sf.path, data); err != nil {
		span.EndErr(err)
		return fmt.Errorf("save %s: %w", sf.path, err)
	}
	span.End("")
	sf.savedText, sf.onDisk = text, true
	return nil
}
