package registry

import (
	"morph/internal/ast"
)

// Mapping pairs old-generation nodes with their new-generation counterparts.
type Mapping map[ast.NodeID]ast.NodeID

// Reconcile pairs the nodes of old with the nodes of next after the edit
// described by ch. Roots are always paired. Inside a paired container each
// old child, in sibling order, takes the first unpaired new child with the
// expected kind and span:
//
//   - containers of an edit (ch.Parents and their ancestors) keep their kind
//     and are expected at their stretched span;
//   - nodes wholly inside one segment are expected at their shifted span with
//     the same number of children;
//   - anything else overlaps an edit and stays unpaired.
//
// Unpaired old nodes lose their whole subtree.
func Reconcile(old, next *ast.Tree, ch Change) Mapping {
	r := reconciler{
		old:   old,
		next:  next,
		ch:    ch,
		path:  make(map[ast.NodeID]bool),
		pairs: make(Mapping, old.Len()),
	}
	for _, p := range ch.Parents {
		if !p.IsValid() {
			p = old.Root
		}
		r.path[p] = true
		for _, a := range old.Ancestors(p) {
			r.path[a] = true
		}
	}
	r.pair(old.Root, next.Root)
	return r.pairs
}

type reconciler struct {
	old, next *ast.Tree
	ch        Change
	path      map[ast.NodeID]bool
	pairs     Mapping
}

func (r *reconciler) pair(o, n ast.NodeID) {
	r.pairs[o] = n
	newKids := r.next.Children(n)
	used := make([]bool, len(newKids))
	for _, oc := range r.old.Children(o) {
		on := r.old.Node(oc)
		isPath := r.path[oc]
		var ok bool
		want := on.Span
		if isPath {
			want, ok = r.ch.stretched(on.Span)
		} else {
			want, ok = r.ch.shifted(on.Span)
		}
		if !ok {
			continue
		}
		for j, nc := range newKids {
			if used[j] {
				continue
			}
			nn := r.next.Node(nc)
			if nn.Kind != on.Kind || nn.Span.Start != want.Start || nn.Span.End != want.End {
				continue
			}
			if !isPath && len(nn.Children) != len(on.Children) {
				continue
			}
			used[j] = true
			r.pair(oc, nc)
			break
		}
	}
}
