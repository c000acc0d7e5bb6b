package structure

// DeclarationKind is the keyword of a variable statement.
type DeclarationKind string

const (
	DeclarationVar   DeclarationKind = "var"
	DeclarationLet   DeclarationKind = "let"
	DeclarationConst DeclarationKind = "const"
)

type PropertySignature struct {
	Named
	Readonlyable
	QuestionTokenable
	Typed
	InitializerExpressionable
	Documented
}

type PropertyDeclaration struct {
	Named
	Scoped
	Staticable
	Abstractable
	Readonlyable
	QuestionTokenable
	Typed
	InitializerExpressionable
	Documented
}

type MethodDeclaration struct {
	Named
	Scoped
	Staticable
	Abstractable
	Asyncable
	ReturnTyped
	Documented
	Bodied
}

type AccessorDeclaration struct {
	Named
	Scoped
	Staticable
	Abstractable
	ReturnTyped
	Bodied
}

type ConstructorDeclaration struct {
	Scoped
	Bodied
}

type ClassDeclaration struct {
	Named
	Exportable
	Ambientable
	Abstractable
	Documented
}

type InterfaceDeclaration struct {
	Named
	Exportable
	Ambientable
	Documented
}

type MethodSignature struct {
	Named
	QuestionTokenable
	ReturnTyped
	Documented
}

type FunctionDeclaration struct {
	Named
	Exportable
	Ambientable
	Asyncable
	ReturnTyped
	Documented
	Bodied
}

type EnumDeclaration struct {
	Named
	Exportable
	Ambientable
	Documented
}

type EnumMember struct {
	Named
	InitializerExpressionable
	Documented
}

type NamespaceDeclaration struct {
	Named
	Exportable
	Ambientable
	Documented
	Bodied
}

type TypeAliasDeclaration struct {
	Named
	Exportable
	Ambientable
	Typed
	Documented
}

type VariableStatement struct {
	Exportable
	Ambientable
	Documented
	DeclarationKind Field[DeclarationKind]
}

type VariableDeclaration struct {
	Named
	Typed
	InitializerExpressionable
}

type Parameter struct {
	Named
	Scoped
	Readonlyable
	QuestionTokenable
	Typed
	InitializerExpressionable
}
