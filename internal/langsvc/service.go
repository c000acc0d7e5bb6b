package langsvc

import (
	"context"
	"runtime"
	"slices"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"morph/internal/ast"
	"morph/internal/source"
	"morph/internal/trace"
)

// Program is the set of files the service answers queries over.
type Program interface {
	Files() []File
}

// ReferenceEntry is one occurrence of a symbol.
type ReferenceEntry struct {
	Location
	Node          ast.NodeID
	IsDefinition  bool
	IsWriteAccess bool
}

// DefinitionInfo describes one declaration of a symbol.
type DefinitionInfo struct {
	Location
	Node          ast.NodeID
	Name          string
	Kind          SymbolKind
	ContainerName string
	Display       string
}

// ReferencedSymbol groups the references of one symbol under its first
// declaration.
type ReferencedSymbol struct {
	Definition DefinitionInfo
	References []ReferenceEntry
}

// ImplementationLocation is a concrete declaration implementing the
// queried entity.
type ImplementationLocation struct {
	Location
	Node    ast.NodeID
	Kind    SymbolKind
	Display string
}

// Service answers symbol queries. The index is rebuilt lazily when a file
// of the program changes generation.
type Service struct {
	prog   Program
	tracer trace.Tracer

	mu    sync.Mutex
	trees []*ast.Tree
	idx   *index
}

func New(prog Program, tracer trace.Tracer) *Service {
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Service{prog: prog, tracer: tracer}
}

type index struct {
	order   map[source.FileID]int
	files   map[source.FileID]*fileBinding
	results map[source.FileID]*fileRefs
	refs    map[*Symbol][]Reference
	derived map[*Symbol][]*Symbol
}

func (s *Service) index(ctx context.Context) (*index, error) {
	files := s.prog.Files()
	trees := make([]*ast.Tree, len(files))
	for i, f := range files {
		trees[i] = f.Tree
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idx != nil && slices.Equal(trees, s.trees) {
		return s.idx, nil
	}

	span := trace.Begin(s.tracer, trace.ScopeProject, "langsvc.index", 0).
		WithExtra("files", strconv.Itoa(len(files)))
	defer span.End("")

	b := newBinder()
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b.bindFile(f)
	}

	results := make([]*fileRefs, len(b.files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, fb := range b.files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = resolveFile(fb)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx := &index{
		order:   make(map[source.FileID]int, len(files)),
		files:   make(map[source.FileID]*fileBinding, len(files)),
		results: make(map[source.FileID]*fileRefs, len(files)),
		refs:    make(map[*Symbol][]Reference),
		derived: make(map[*Symbol][]*Symbol),
	}
	for i, fb := range b.files {
		id := fb.file.ID
		idx.order[id] = i
		idx.files[id] = fb
		idx.results[id] = results[i]
		for sym, refs := range results[i].refs {
			idx.refs[sym] = append(idx.refs[sym], refs...)
		}
		for _, e := range results[i].heritage {
			if !slices.Contains(idx.derived[e.base], e.derived) {
				idx.derived[e.base] = append(idx.derived[e.base], e.derived)
			}
		}
	}
	for sym, refs := range idx.refs {
		idx.sortRefs(refs)
		idx.refs[sym] = refs
	}
	s.trees, s.idx = trees, idx
	return idx, nil
}

func (idx *index) less(a, b Location) int {
	if d := idx.order[a.File] - idx.order[b.File]; d != 0 {
		return d
	}
	return int(a.Span.Start) - int(b.Span.Start)
}

func (idx *index) sortRefs(refs []Reference) {
	slices.SortStableFunc(refs, func(a, b Reference) int { return idx.less(a.Location, b.Location) })
}

// symbolAt returns the symbol of the identifier at pos. A position just
// past the end of an identifier also selects it.
func (idx *index) symbolAt(file source.FileID, pos uint32) *Symbol {
	fb := idx.files[file]
	res := idx.results[file]
	if fb == nil || res == nil {
		return nil
	}
	tree := fb.tree()
	tok := tree.TokenAt(pos)
	if tree.Kind(tok) != ast.KindIdentifier && pos > 0 {
		tok = tree.TokenAt(pos - 1)
	}
	if tree.Kind(tok) != ast.KindIdentifier {
		return nil
	}
	return res.at[tok]
}

func (s *Service) lookup(ctx context.Context, file source.FileID, pos uint32) (*index, *Symbol, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	idx, err := s.index(ctx)
	if err != nil {
		return nil, nil, err
	}
	return idx, idx.symbolAt(file, pos), nil
}

// FindReferences returns every declaration and reference of the symbol at
// pos, or nil when pos names nothing.
func (s *Service) FindReferences(ctx context.Context, file source.FileID, pos uint32) ([]ReferencedSymbol, error) {
	idx, sym, err := s.lookup(ctx, file, pos)
	if err != nil || sym == nil {
		return nil, err
	}
	var entries []ReferenceEntry
	for _, d := range sym.Decls {
		entries = append(entries, ReferenceEntry{Location: d.Location, Node: d.Node, IsDefinition: true, IsWriteAccess: d.Write})
	}
	for _, r := range idx.refs[sym] {
		entries = append(entries, ReferenceEntry{Location: r.Location, Node: r.Node, IsWriteAccess: r.Write})
	}
	slices.SortStableFunc(entries, func(a, b ReferenceEntry) int { return idx.less(a.Location, b.Location) })
	defs := definitions(sym)
	if len(defs) == 0 {
		return nil, nil
	}
	return []ReferencedSymbol{{Definition: defs[0], References: entries}}, nil
}

// Definitions returns the declarations of the symbol at pos.
func (s *Service) Definitions(ctx context.Context, file source.FileID, pos uint32) ([]DefinitionInfo, error) {
	_, sym, err := s.lookup(ctx, file, pos)
	if err != nil || sym == nil {
		return nil, err
	}
	return definitions(sym), nil
}

func definitions(sym *Symbol) []DefinitionInfo {
	out := make([]DefinitionInfo, 0, len(sym.Decls))
	for _, d := range sym.Decls {
		info := DefinitionInfo{
			Location: d.Location,
			Node:     d.Node,
			Name:     sym.Name,
			Kind:     sym.Kind,
			Display:  display(sym),
		}
		if sym.Parent != nil {
			info.ContainerName = sym.Parent.Name
		}
		out = append(out, info)
	}
	return out
}

func display(sym *Symbol) string {
	if sym.Display != "" {
		return sym.Display
	}
	name := sym.Name
	if sym.Parent != nil {
		name = sym.Parent.Name + "." + name
	}
	return string(sym.Kind) + " " + name
}

// Implementations returns the concrete declarations behind the symbol at
// pos. Interfaces resolve to the classes implementing them, classes to
// themselves and their subclasses, and members to the bodies declared for
// them along those classes.
func (s *Service) Implementations(ctx context.Context, file source.FileID, pos uint32) ([]ImplementationLocation, error) {
	idx, sym, err := s.lookup(ctx, file, pos)
	if err != nil || sym == nil {
		return nil, err
	}
	var out []ImplementationLocation
	add := func(sym *Symbol) {
		for _, d := range sym.Decls {
			if d.Write {
				out = append(out, ImplementationLocation{Location: d.Location, Node: d.Node, Kind: sym.Kind, Display: display(sym)})
			}
		}
	}
	switch {
	case sym.Kind == KindClass || sym.Kind == KindInterface:
		add(sym)
		for _, d := range idx.subtypes(sym) {
			if d.Kind == KindClass {
				add(d)
			}
		}
	case sym.Parent != nil && (sym.Parent.Kind == KindClass || sym.Parent.Kind == KindInterface):
		add(sym)
		for _, d := range idx.subtypes(sym.Parent) {
			if m := d.member(sym.Name); m != nil && m != sym {
				add(m)
			}
		}
	default:
		add(sym)
	}
	slices.SortStableFunc(out, func(a, b ImplementationLocation) int { return idx.less(a.Location, b.Location) })
	return out, nil
}

// subtypes returns every class or interface deriving from sym, directly or
// not, breadth first.
func (idx *index) subtypes(sym *Symbol) []*Symbol {
	seen := map[*Symbol]bool{sym: true}
	var out []*Symbol
	queue := []*Symbol{sym}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range idx.derived[cur] {
			if !seen[d] {
				seen[d] = true
				out = append(out, d)
				queue = append(queue, d)
			}
		}
	}
	return out
}
