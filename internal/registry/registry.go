// Package registry keeps exactly one wrapper per live syntax node across
// reparses. Nodes are addressed by arena index within one generation; after
// an edit Reconcile maps old indexes to new ones and every wrapper that has
// no counterpart is forgotten.
package registry

import (
	"strconv"

	"morph/internal/ast"
	"morph/internal/errs"
	"morph/internal/source"
	"morph/internal/trace"
)

// Entry is the mutable identity behind a wrapper. It is retargeted in place
// on every reconciliation so that a caller's wrapper keeps working.
type Entry struct {
	node      ast.NodeID
	gen       ast.Generation
	kind      ast.Kind
	span      source.Span
	forgotten bool
}

// Node returns the current node index or a StaleNodeError.
func (e *Entry) Node() (ast.NodeID, error) {
	if e.forgotten {
		return ast.NoNodeID, e.Stale()
	}
	return e.node, nil
}

// Stale builds the error reported for a forgotten entry.
func (e *Entry) Stale() error {
	return &errs.StaleNodeError{Kind: e.kind.String(), Span: e.span}
}

// Kind is the kind the node had when the wrapper was created. Kinds never
// change across reconciliation.
func (e *Entry) Kind() ast.Kind { return e.kind }

// Span is the last known span.
func (e *Entry) Span() source.Span { return e.span }

func (e *Entry) Generation() ast.Generation { return e.gen }

func (e *Entry) Forgotten() bool { return e.forgotten }

type slot[W any] struct {
	entry   *Entry
	wrapper W
}

// Stats reports the outcome of one reconciliation.
type Stats struct {
	Retained  int
	Forgotten int
}

// Registry maps live nodes of the current tree to wrappers of type W.
type Registry[W any] struct {
	tree    *ast.Tree
	byNode  map[ast.NodeID]*slot[W]
	factory func(*Entry) W
	tracer  trace.Tracer
}

// New creates a registry over tree. factory builds the wrapper for a node on
// first use.
func New[W any](tree *ast.Tree, factory func(*Entry) W, tracer trace.Tracer) *Registry[W] {
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Registry[W]{
		tree:    tree,
		byNode:  make(map[ast.NodeID]*slot[W]),
		factory: factory,
		tracer:  tracer,
	}
}

// Tree returns the generation the registry currently indexes.
func (r *Registry[W]) Tree() *ast.Tree { return r.tree }

// Len is the number of live wrappers.
func (r *Registry[W]) Len() int { return len(r.byNode) }

// Wrapper returns the unique wrapper for id, creating it on first use. ok is
// false when id does not address a node of the current tree.
func (r *Registry[W]) Wrapper(id ast.NodeID) (W, bool) {
	if s, found := r.byNode[id]; found {
		return s.wrapper, true
	}
	n := r.tree.Node(id)
	if n == nil {
		var zero W
		return zero, false
	}
	e := &Entry{node: id, gen: r.tree.Gen, kind: n.Kind, span: n.Span}
	s := &slot[W]{entry: e}
	// Stored before the factory runs so that a factory asking for its own
	// wrapper cannot create a second one.
	r.byNode[id] = s
	s.wrapper = r.factory(e)
	trace.Point(r.tracer, trace.ScopeNode, "wrap", n.Kind.String(), map[string]string{"node": strconv.FormatUint(uint64(id), 10)})
	return s.wrapper, true
}

// Lookup returns the wrapper for id only if one already exists.
func (r *Registry[W]) Lookup(id ast.NodeID) (W, bool) {
	if s, ok := r.byNode[id]; ok {
		return s.wrapper, true
	}
	var zero W
	return zero, false
}

// Entries lists the live entries in no particular order.
func (r *Registry[W]) Entries() []*Entry {
	out := make([]*Entry, 0, len(r.byNode))
	for _, s := range r.byNode {
		out = append(out, s.entry)
	}
	return out
}

// ForgetSubtree forgets the wrappers of id and every descendant and returns
// how many there were.
func (r *Registry[W]) ForgetSubtree(id ast.NodeID) int {
	if r.tree.Node(id) == nil {
		return 0
	}
	n := 0
	r.tree.Walk(id, func(d ast.NodeID) bool {
		if s, ok := r.byNode[d]; ok {
			s.entry.forgotten = true
			delete(r.byNode, d)
			n++
		}
		return true
	})
	if n > 0 {
		trace.Point(r.tracer, trace.ScopeNode, "forget", r.tree.Kind(id).String(), map[string]string{"count": strconv.Itoa(n)})
	}
	return n
}

// Rebase moves the registry to next using the mapping Reconcile computes for
// ch. Entries without a counterpart are forgotten.
func (r *Registry[W]) Rebase(next *ast.Tree, ch Change) Stats {
	pairs := Reconcile(r.tree, next, ch)
	return r.Apply(next, pairs)
}

// Apply retargets entries through pairs and switches to next.
func (r *Registry[W]) Apply(next *ast.Tree, pairs Mapping) Stats {
	var st Stats
	byNode := make(map[ast.NodeID]*slot[W], len(r.byNode))
	for id, s := range r.byNode {
		nid, ok := pairs[id]
		if !ok {
			s.entry.forgotten = true
			st.Forgotten++
			continue
		}
		s.entry.node = nid
		s.entry.gen = next.Gen
		s.entry.span = next.Span(nid)
		byNode[nid] = s
		st.Retained++
	}
	r.tree = next
	r.byNode = byNode
	return st
}

// ForgetAll forgets every wrapper, e.g. when the file leaves its project.
func (r *Registry[W]) ForgetAll() int {
	n := len(r.byNode)
	for _, s := range r.byNode {
		s.entry.forgotten = true
	}
	r.byNode = make(map[ast.NodeID]*slot[W])
	return n
}
