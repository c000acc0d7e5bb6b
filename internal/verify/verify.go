// Package verify checks edited text with the tree-sitter TypeScript grammar
// before a document commits it.
package verify

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"morph/internal/manip"
)

// ErrSyntax is wrapped by every rejection.
var ErrSyntax = errors.New("tree-sitter reports a syntax error")

// Validator is a manip.Validator backed by tree-sitter. A new parser is
// created for every call, so one Validator may be shared across files.
type Validator struct{}

var _ manip.Validator = Validator{}

func (Validator) Validate(src []byte) error {
	return Check(context.Background(), src)
}

// Check parses src and reports the first error or missing node.
func Check(ctx context.Context, src []byte) error {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return fmt.Errorf("%w: no root node", ErrSyntax)
	}
	if !root.HasError() {
		return nil
	}
	if bad := firstError(root); bad != nil {
		p := bad.StartPoint()
		what := "unexpected " + bad.Type()
		if bad.IsMissing() {
			what = "missing " + bad.Type()
		}
		return fmt.Errorf("%w at %d:%d: %s", ErrSyntax, p.Row+1, p.Column+1, what)
	}
	return ErrSyntax
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || !(c.HasError() || c.IsMissing()) {
			continue
		}
		if bad := firstError(c); bad != nil {
			return bad
		}
	}
	return nil
}
