// Package langsvc resolves identifiers to symbols across the files of a
// program: references, definitions and implementations.
package langsvc

import (
	"golang.org/x/text/unicode/norm"

	"morph/internal/ast"
	"morph/internal/source"
)

// SymbolKind names what a declaration declares.
type SymbolKind string

const (
	KindVar           SymbolKind = "var"
	KindLet           SymbolKind = "let"
	KindConst         SymbolKind = "const"
	KindFunction      SymbolKind = "function"
	KindClass         SymbolKind = "class"
	KindInterface     SymbolKind = "interface"
	KindEnum          SymbolKind = "enum"
	KindEnumMember    SymbolKind = "enum member"
	KindNamespace     SymbolKind = "namespace"
	KindTypeAlias     SymbolKind = "type"
	KindTypeParameter SymbolKind = "type parameter"
	KindProperty      SymbolKind = "property"
	KindMethod        SymbolKind = "method"
	KindAccessor      SymbolKind = "accessor"
	KindParameter     SymbolKind = "parameter"
)

// Location is a span in one file.
type Location struct {
	File source.FileID
	Span source.Span
}

// Decl is one declaration of a symbol, addressed by its name node.
type Decl struct {
	Location
	Node  ast.NodeID
	Write bool // the declaration has an initializer or a body
}

// Symbol is a named entity. Declarations that merge (namespaces,
// interfaces, get/set pairs) share one symbol.
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Decls   []Decl
	Members map[string]*Symbol
	Parent  *Symbol
	Display string
}

func key(name string) string { return norm.NFC.String(name) }

func (s *Symbol) member(name string) *Symbol {
	if s == nil || s.Members == nil {
		return nil
	}
	return s.Members[key(name)]
}

func (s *Symbol) addMember(m *Symbol) *Symbol {
	if s.Members == nil {
		s.Members = make(map[string]*Symbol)
	}
	if old, ok := s.Members[key(m.Name)]; ok {
		old.Decls = append(old.Decls, m.Decls...)
		return old
	}
	m.Parent = s
	s.Members[key(m.Name)] = m
	return m
}

// scope is one lexical scope. container is the namespace whose exported
// members are visible unqualified; this is the class of a member body.
type scope struct {
	parent    *scope
	names     map[string]*Symbol
	container *Symbol
	this      *Symbol
}

func newScope(parent *scope) *scope {
	s := &scope{parent: parent, names: make(map[string]*Symbol)}
	if parent != nil {
		s.this = parent.this
	}
	return s
}

func (s *scope) declare(sym *Symbol) *Symbol {
	k := key(sym.Name)
	if old, ok := s.names[k]; ok {
		old.Decls = append(old.Decls, sym.Decls...)
		if sym.Members != nil {
			for _, m := range sym.Members {
				old.addMember(m)
			}
		}
		return old
	}
	s.names[k] = sym
	return sym
}

func (s *scope) lookup(name string) *Symbol {
	k := key(name)
	for sc := s; sc != nil; sc = sc.parent {
		if sym, ok := sc.names[k]; ok {
			return sym
		}
		if sym := sc.container.member(name); sym != nil {
			return sym
		}
	}
	return nil
}
