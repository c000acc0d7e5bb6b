package compiler

import (
	"strings"

	"morph/internal/ast"
	"morph/internal/errs"
	"morph/internal/manip"
	"morph/internal/source"
)

// StatementedNode gives a source file or namespace its statement queries.
type StatementedNode struct{ n *Node }

func (s StatementedNode) statementList() (*ast.Tree, ast.NodeID, error) {
	tree, id, err := s.n.live()
	if err != nil {
		return nil, ast.NoNodeID, err
	}
	if tree.Kind(id) == ast.KindNamespaceDeclaration {
		id = tree.FirstChildOfKind(id, ast.KindModuleBlock)
	}
	list := tree.FirstChildOfKind(id, ast.KindSyntaxList)
	if !list.IsValid() {
		return nil, ast.NoNodeID, errs.InvalidOperation("%s has no statement list", tree.Kind(id))
	}
	return tree, list, nil
}

func (s StatementedNode) Statements() ([]Wrapper, error) {
	tree, list, err := s.statementList()
	if err != nil {
		return nil, err
	}
	return s.n.sf.wrapAll(tree.Children(list)), nil
}

func statementsOf[T Wrapper](s StatementedNode) ([]T, error) {
	stmts, err := s.Statements()
	if err != nil {
		return nil, err
	}
	return wrapAs[T](stmts), nil
}

func (s StatementedNode) Functions() ([]*FunctionDeclaration, error) {
	return statementsOf[*FunctionDeclaration](s)
}

func (s StatementedNode) Classes() ([]*ClassDeclaration, error) {
	return statementsOf[*ClassDeclaration](s)
}

func (s StatementedNode) Interfaces() ([]*InterfaceDeclaration, error) {
	return statementsOf[*InterfaceDeclaration](s)
}

func (s StatementedNode) Enums() ([]*EnumDeclaration, error) {
	return statementsOf[*EnumDeclaration](s)
}

func (s StatementedNode) Namespaces() ([]*NamespaceDeclaration, error) {
	return statementsOf[*NamespaceDeclaration](s)
}

func (s StatementedNode) TypeAliases() ([]*TypeAliasDeclaration, error) {
	return statementsOf[*TypeAliasDeclaration](s)
}

func (s StatementedNode) VariableStatements() ([]*VariableStatement, error) {
	return statementsOf[*VariableStatement](s)
}

// VariableDeclarations lists the declarations of every variable statement.
func (s StatementedNode) VariableDeclarations() ([]*VariableDeclaration, error) {
	stmts, err := s.VariableStatements()
	if err != nil {
		return nil, err
	}
	var out []*VariableDeclaration
	for _, st := range stmts {
		decls, err := st.Declarations()
		if err != nil {
			return nil, err
		}
		out = append(out, decls...)
	}
	return out, nil
}

// VariableDeclaration returns nil when no variable has that name.
func (s StatementedNode) VariableDeclaration(name string) (*VariableDeclaration, error) {
	decls, err := s.VariableDeclarations()
	if err != nil {
		return nil, err
	}
	return named(decls, name)
}

func (s StatementedNode) Function(name string) (*FunctionDeclaration, error) {
	fns, err := s.Functions()
	if err != nil {
		return nil, err
	}
	return named(fns, name)
}

func (s StatementedNode) Class(name string) (*ClassDeclaration, error) {
	cs, err := s.Classes()
	if err != nil {
		return nil, err
	}
	return named(cs, name)
}

func (s StatementedNode) Interface(name string) (*InterfaceDeclaration, error) {
	is, err := s.Interfaces()
	if err != nil {
		return nil, err
	}
	return named(is, name)
}

func (s StatementedNode) Enum(name string) (*EnumDeclaration, error) {
	es, err := s.Enums()
	if err != nil {
		return nil, err
	}
	return named(es, name)
}

func (s StatementedNode) Namespace(name string) (*NamespaceDeclaration, error) {
	ns, err := s.Namespaces()
	if err != nil {
		return nil, err
	}
	return named(ns, name)
}

func (s StatementedNode) TypeAlias(name string) (*TypeAliasDeclaration, error) {
	ts, err := s.TypeAliases()
	if err != nil {
		return nil, err
	}
	return named(ts, name)
}

// InsertStatements inserts text as statements at index and returns the new
// statements.
func (s StatementedNode) InsertStatements(index int, text string) ([]Wrapper, error) {
	if err := errs.CheckNotWhitespace(text, "text"); err != nil {
		return nil, err
	}
	tree, list, err := s.statementList()
	if err != nil {
		return nil, err
	}
	kids := tree.Children(list)
	if err := errs.CheckInRange(index, 0, len(kids), "index"); err != nil {
		return nil, err
	}
	doc := s.n.doc()
	nl := doc.Newline()
	block := tree.Parent(list)
	inner, outer := "", ""
	if tree.Kind(block) == ast.KindModuleBlock {
		outer = doc.IndentationOf(tree.Span(tree.Parent(block)).Start)
		inner = outer + doc.Indent()
	}
	body := indentLines(strings.TrimSpace(text), inner, nl)

	switch {
	case len(kids) == 0 && tree.Kind(block) == ast.KindModuleBlock:
		open := tree.FirstChildOfKind(block, ast.KindOpenBraceToken)
		closeBrace := tree.FirstChildOfKind(block, ast.KindCloseBraceToken)
		removed := source.Span{File: tree.File, Start: tree.Span(open).End, End: tree.Span(closeBrace).Start}
		_, err = manip.ReplaceText(doc, []manip.EditOperation{{
			InsertPos: removed.Start,
			Removed:   removed,
			Text:      nl + inner + body + nl + outer,
			Parent:    block,
		}})
	case len(kids) == 0:
		// The empty list has no extent to stretch, so the file is the parent.
		at := tree.Span(list).Start
		prefix := ""
		if src := doc.Bytes(); at > 0 && src[at-1] != '\n' {
			prefix = nl
		}
		_, err = manip.InsertIntoParent(doc, manip.InsertIntoParentOptions{
			Parent:     block,
			InsertPos:  at,
			Text:       prefix + body + nl,
			ChildIndex: tree.ChildIndex(list),
		})
	case index < len(kids):
		_, err = manip.InsertIntoParent(doc, manip.InsertIntoParentOptions{
			Parent:     list,
			InsertPos:  tree.Span(kids[index]).Start,
			Text:       body + nl + inner,
			ChildIndex: index,
		})
	default:
		_, err = manip.InsertIntoParent(doc, manip.InsertIntoParentOptions{
			Parent:     list,
			InsertPos:  tree.Span(kids[len(kids)-1]).End,
			Text:       nl + inner + body,
			ChildIndex: index,
		})
	}
	if err != nil {
		return nil, err
	}

	stmts, err := s.Statements()
	if err != nil {
		return nil, err
	}
	added := len(stmts) - len(kids)
	return stmts[index : index+added], nil
}

// AddStatements appends text as statements.
func (s StatementedNode) AddStatements(text string) ([]Wrapper, error) {
	tree, list, err := s.statementList()
	if err != nil {
		return nil, err
	}
	return s.InsertStatements(len(tree.Children(list)), text)
}

// indentLines prefixes every line after the first with indent; blank lines
// stay empty.
func indentLines(text, indent, nl string) string {
	lines := lineBreak.Split(text, -1)
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			lines[i] = indent + lines[i]
		} else {
			lines[i] = ""
		}
	}
	return strings.Join(lines, nl)
}
