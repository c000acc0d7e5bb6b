package compiler

import (
	"context"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"morph/internal/ast"
	"morph/internal/errs"
	"morph/internal/langsvc"
	"morph/internal/manip"
	"morph/internal/source"
	"morph/internal/trace"
)

// LanguageService resolves symbols over the current trees of a project.
// Results are mapped to wrappers of the generation current when the call
// returns.
type LanguageService struct {
	project *Project
	svc     *langsvc.Service
}

type projectProgram struct{ p *Project }

func (pp projectProgram) Files() []langsvc.File {
	out := make([]langsvc.File, 0, len(pp.p.order))
	for _, sf := range pp.p.order {
		out = append(out, langsvc.File{ID: sf.fileID, Path: sf.path, Tree: sf.doc.Tree()})
	}
	return out
}

func newLanguageService(p *Project) *LanguageService {
	return &LanguageService{project: p, svc: langsvc.New(projectProgram{p}, p.tracer)}
}

type DefinitionInfo struct {
	Kind          string
	Name          string
	ContainerName string
	Display       string
	TextSpan      source.Span
	SourceFile    *SourceFile
	Node          Wrapper
}

type ReferenceEntry struct {
	TextSpan      source.Span
	IsDefinition  bool
	IsWriteAccess bool
	IsInString    bool
	SourceFile    *SourceFile
	Node          Wrapper
}

// ReferencedSymbol is a symbol together with every place it occurs.
type ReferencedSymbol struct {
	definition DefinitionInfo
	references []ReferenceEntry
}

func (r *ReferencedSymbol) Definition() DefinitionInfo { return r.definition }

func (r *ReferencedSymbol) References() []ReferenceEntry { return r.references }

type ImplementationLocation struct {
	Kind       string
	Display    string
	TextSpan   source.Span
	SourceFile *SourceFile
	Node       Wrapper
}

// nodeAt wraps the deepest node spanning exactly sp.
func (ls *LanguageService) nodeAt(id source.FileID, sp source.Span) (*SourceFile, Wrapper) {
	sf := ls.project.SourceFileByID(id)
	if sf == nil {
		return nil, nil
	}
	return sf, sf.wrapOrNil(sf.doc.Tree().NodeAt(sp))
}

func position(node Wrapper) (*SourceFile, uint32, error) {
	if node == nil {
		return nil, 0, errs.InvalidOperation("no node given")
	}
	n := node.Base()
	start, err := n.Start()
	if err != nil {
		return nil, 0, err
	}
	if n.sf.project == nil {
		return nil, 0, errs.InvalidOperation("%s is not part of a project", n.sf.path)
	}
	return n.sf, start, nil
}

func (ls *LanguageService) FindReferences(ctx context.Context, node Wrapper) ([]*ReferencedSymbol, error) {
	sf, pos, err := position(node)
	if err != nil {
		return nil, err
	}
	found, err := ls.svc.FindReferences(ctx, sf.fileID, pos)
	if err != nil {
		return nil, err
	}
	out := make([]*ReferencedSymbol, 0, len(found))
	for _, f := range found {
		rs := &ReferencedSymbol{definition: ls.definition(f.Definition)}
		for _, r := range f.References {
			file, w := ls.nodeAt(r.File, r.Span)
			rs.references = append(rs.references, ReferenceEntry{
				TextSpan:      r.Span,
				IsDefinition:  r.IsDefinition,
				IsWriteAccess: r.IsWriteAccess,
				SourceFile:    file,
				Node:          w,
			})
		}
		out = append(out, rs)
	}
	return out, nil
}

// FindReferencesAsNodes flattens FindReferences to the referencing nodes.
func (ls *LanguageService) FindReferencesAsNodes(ctx context.Context, node Wrapper) ([]Wrapper, error) {
	found, err := ls.FindReferences(ctx, node)
	if err != nil {
		return nil, err
	}
	var out []Wrapper
	for _, rs := range found {
		for _, r := range rs.references {
			if r.Node != nil {
				out = append(out, r.Node)
			}
		}
	}
	return out, nil
}

func (ls *LanguageService) definition(d langsvc.DefinitionInfo) DefinitionInfo {
	file, w := ls.nodeAt(d.File, d.Span)
	return DefinitionInfo{
		Kind:          string(d.Kind),
		Name:          d.Name,
		ContainerName: d.ContainerName,
		Display:       d.Display,
		TextSpan:      d.Span,
		SourceFile:    file,
		Node:          w,
	}
}

func (ls *LanguageService) Definitions(ctx context.Context, node Wrapper) ([]DefinitionInfo, error) {
	sf, pos, err := position(node)
	if err != nil {
		return nil, err
	}
	found, err := ls.svc.Definitions(ctx, sf.fileID, pos)
	if err != nil {
		return nil, err
	}
	out := make([]DefinitionInfo, 0, len(found))
	for _, d := range found {
		out = append(out, ls.definition(d))
	}
	return out, nil
}

func (ls *LanguageService) Implementations(ctx context.Context, node Wrapper) ([]ImplementationLocation, error) {
	sf, pos, err := position(node)
	if err != nil {
		return nil, err
	}
	found, err := ls.svc.Implementations(ctx, sf.fileID, pos)
	if err != nil {
		return nil, err
	}
	out := make([]ImplementationLocation, 0, len(found))
	for _, l := range found {
		file, w := ls.nodeAt(l.File, l.Span)
		out = append(out, ImplementationLocation{
			Kind:       string(l.Kind),
			Display:    l.Display,
			TextSpan:   l.Span,
			SourceFile: file,
			Node:       w,
		})
	}
	return out, nil
}

func (ident *Identifier) FindReferences() ([]*ReferencedSymbol, error) {
	return ident.sf.project.LanguageService().FindReferences(context.Background(), ident)
}

func (ident *Identifier) Definitions() ([]DefinitionInfo, error) {
	return ident.sf.project.LanguageService().Definitions(context.Background(), ident)
}

func (ident *Identifier) Implementations() ([]ImplementationLocation, error) {
	return ident.sf.project.LanguageService().Implementations(context.Background(), ident)
}

// Rename replaces the identifier and every reference to its symbol. Each
// touched file gets one new generation, and no file changes unless all of
// them parse. An unresolved identifier is renamed alone.
func (ident *Identifier) Rename(name string) error {
	if err := errs.CheckNotWhitespace(name, "name"); err != nil {
		return err
	}
	current, err := ident.Text()
	if err != nil {
		return err
	}
	if norm.NFC.String(current) == norm.NFC.String(name) {
		return nil
	}
	found, err := ident.FindReferences()
	if err != nil {
		return err
	}

	span := trace.Begin(ident.sf.tracer, trace.ScopeProject, "rename", 0).WithExtra("name", name)
	defer span.End("")

	type fileEdits struct {
		sf  *SourceFile
		ops []manip.EditOperation
	}
	var files []*fileEdits
	byFile := make(map[*SourceFile]*fileEdits)
	add := func(sf *SourceFile, node ast.NodeID, sp source.Span) {
		fe := byFile[sf]
		if fe == nil {
			fe = &fileEdits{sf: sf}
			byFile[sf] = fe
			files = append(files, fe)
		}
		fe.ops = append(fe.ops, manip.EditOperation{InsertPos: sp.Start, Removed: sp, Text: name, Parent: node})
	}

	for _, rs := range found {
		for _, r := range rs.references {
			if r.Node == nil || r.SourceFile == nil {
				continue
			}
			node, err := r.Node.Base().id()
			if err != nil {
				return err
			}
			add(r.SourceFile, node, r.TextSpan)
		}
	}
	if len(files) == 0 {
		self, err := ident.id()
		if err != nil {
			return err
		}
		sp, _ := ident.Span()
		add(ident.sf, self, sp)
	}

	// Every file is checked before any is committed.
	pending := make([]*manip.Pending, 0, len(files))
	for _, fe := range files {
		p, err := manip.PrepareReplaceText(fe.sf.doc, fe.ops)
		if err != nil {
			for _, q := range pending {
				q.Discard()
			}
			return fmt.Errorf("rename in %s: %w", fe.sf.path, err)
		}
		pending = append(pending, p)
	}
	for i, p := range pending {
		if _, err := p.Commit(); err != nil {
			return fmt.Errorf("rename in %s: %w", files[i].sf.path, err)
		}
	}
	return nil
}
