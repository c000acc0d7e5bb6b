package structure

// Scope is the accessibility of a class member or parameter property. The
// empty scope means no keyword.
type Scope string

const (
	ScopeNone      Scope = ""
	ScopePublic    Scope = "public"
	ScopeProtected Scope = "protected"
	ScopePrivate   Scope = "private"
)

// Valid reports whether s is one of the known scopes.
func (s Scope) Valid() bool {
	switch s {
	case ScopeNone, ScopePublic, ScopeProtected, ScopePrivate:
		return true
	}
	return false
}

// Each fragment below describes what one capability can fill. The accessor
// methods let the filler find a fragment inside any composed structure.

type Named struct {
	Name Field[string]
}

func (s *Named) NamedPart() *Named { return s }

type Exportable struct {
	IsExported      Field[bool]
	IsDefaultExport Field[bool]
}

func (s *Exportable) ExportablePart() *Exportable { return s }

type Ambientable struct {
	HasDeclareKeyword Field[bool]
}

func (s *Ambientable) AmbientablePart() *Ambientable { return s }

type Scoped struct {
	Scope Field[Scope]
}

func (s *Scoped) ScopedPart() *Scoped { return s }

type Staticable struct {
	IsStatic Field[bool]
}

func (s *Staticable) StaticablePart() *Staticable { return s }

type Abstractable struct {
	IsAbstract Field[bool]
}

func (s *Abstractable) AbstractablePart() *Abstractable { return s }

type Readonlyable struct {
	IsReadonly Field[bool]
}

func (s *Readonlyable) ReadonlyablePart() *Readonlyable { return s }

type Asyncable struct {
	IsAsync Field[bool]
}

func (s *Asyncable) AsyncablePart() *Asyncable { return s }

type QuestionTokenable struct {
	HasQuestionToken Field[bool]
}

func (s *QuestionTokenable) QuestionTokenablePart() *QuestionTokenable { return s }

type Typed struct {
	Type Field[string]
}

func (s *Typed) TypedPart() *Typed { return s }

type ReturnTyped struct {
	ReturnType Field[string]
}

func (s *ReturnTyped) ReturnTypedPart() *ReturnTyped { return s }

type InitializerExpressionable struct {
	Initializer Field[string]
}

func (s *InitializerExpressionable) InitializerPart() *InitializerExpressionable { return s }

// Documented holds the descriptions of the doc comments, one per block.
type Documented struct {
	Docs Field[[]string]
}

func (s *Documented) DocumentedPart() *Documented { return s }

type Bodied struct {
	BodyText Field[string]
}

func (s *Bodied) BodiedPart() *Bodied { return s }
