package ast

// Kind is the closed set of syntax kinds. Adding a kind requires extending
// kindNames and every table indexed by Kind; the compile-time length checks
// next to those tables fail otherwise.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindSourceFile
	KindSyntaxList
	KindEndOfFileToken

	// tokens
	KindIdentifier
	KindNumericLiteral
	KindStringLiteral
	KindTemplateLiteral
	KindKeyword // structural keyword (class, function, let, get, extends, ...)
	KindExportKeyword
	KindDefaultKeyword
	KindDeclareKeyword
	KindAbstractKeyword
	KindPublicKeyword
	KindProtectedKeyword
	KindPrivateKeyword
	KindStaticKeyword
	KindReadonlyKeyword
	KindAsyncKeyword
	KindConstKeyword
	KindOpenBraceToken
	KindCloseBraceToken
	KindOpenParenToken
	KindCloseParenToken
	KindOpenBracketToken
	KindCloseBracketToken
	KindSemicolonToken
	KindCommaToken
	KindDotToken
	KindDotDotDotToken
	KindColonToken
	KindQuestionToken
	KindEqualsToken
	KindAtToken
	KindLessThanToken
	KindGreaterThanToken
	KindEqualsGreaterThanToken
	KindOperatorToken

	// declarations
	KindVariableStatement
	KindVariableDeclarationList
	KindVariableDeclaration
	KindFunctionDeclaration
	KindClassDeclaration
	KindInterfaceDeclaration
	KindEnumDeclaration
	KindEnumMember
	KindNamespaceDeclaration
	KindModuleBlock
	KindTypeAliasDeclaration
	KindPropertyDeclaration
	KindMethodDeclaration
	KindConstructor
	KindGetAccessor
	KindSetAccessor
	KindPropertySignature
	KindMethodSignature
	KindParameter
	KindTypeParameter
	KindDecorator
	KindHeritageClause
	KindExpressionWithTypeArguments
	KindJSDoc
	KindJSDocTag

	// statements
	KindBlock
	KindExpressionStatement
	KindReturnStatement
	KindIfStatement
	KindEmptyStatement

	// types
	KindTypeReference
	KindQualifiedName
	KindKeywordType
	KindArrayType
	KindUnionType
	KindParenthesizedType
	KindTypeLiteral
	KindFunctionType
	KindLiteralType

	// expressions
	KindPropertyAccessExpression
	KindElementAccessExpression
	KindCallExpression
	KindNewExpression
	KindBinaryExpression
	KindPrefixUnaryExpression
	KindPostfixUnaryExpression
	KindConditionalExpression
	KindParenthesizedExpression
	KindArrayLiteralExpression
	KindObjectLiteralExpression
	KindPropertyAssignment
	KindShorthandPropertyAssignment
	KindSpreadAssignment
	KindSpreadElement
	KindArrowFunction
	KindAsExpression
	KindComputedPropertyName

	KindCount
)

var kindNames = [...]string{
	KindUnknown:                     "Unknown",
	KindSourceFile:                  "SourceFile",
	KindSyntaxList:                  "SyntaxList",
	KindEndOfFileToken:              "EndOfFileToken",
	KindIdentifier:                  "Identifier",
	KindNumericLiteral:              "NumericLiteral",
	KindStringLiteral:               "StringLiteral",
	KindTemplateLiteral:             "TemplateLiteral",
	KindKeyword:                     "Keyword",
	KindExportKeyword:               "ExportKeyword",
	KindDefaultKeyword:              "DefaultKeyword",
	KindDeclareKeyword:              "DeclareKeyword",
	KindAbstractKeyword:             "AbstractKeyword",
	KindPublicKeyword:               "PublicKeyword",
	KindProtectedKeyword:            "ProtectedKeyword",
	KindPrivateKeyword:              "PrivateKeyword",
	KindStaticKeyword:               "StaticKeyword",
	KindReadonlyKeyword:             "ReadonlyKeyword",
	KindAsyncKeyword:                "AsyncKeyword",
	KindConstKeyword:                "ConstKeyword",
	KindOpenBraceToken:              "OpenBraceToken",
	KindCloseBraceToken:             "CloseBraceToken",
	KindOpenParenToken:              "OpenParenToken",
	KindCloseParenToken:             "CloseParenToken",
	KindOpenBracketToken:            "OpenBracketToken",
	KindCloseBracketToken:           "CloseBracketToken",
	KindSemicolonToken:              "SemicolonToken",
	KindCommaToken:                  "CommaToken",
	KindDotToken:                    "DotToken",
	KindDotDotDotToken:              "DotDotDotToken",
	KindColonToken:                  "ColonToken",
	KindQuestionToken:               "QuestionToken",
	KindEqualsToken:                 "EqualsToken",
	KindAtToken:                     "AtToken",
	KindLessThanToken:               "LessThanToken",
	KindGreaterThanToken:            "GreaterThanToken",
	KindEqualsGreaterThanToken:      "EqualsGreaterThanToken",
	KindOperatorToken:               "OperatorToken",
	KindVariableStatement:           "VariableStatement",
	KindVariableDeclarationList:     "VariableDeclarationList",
	KindVariableDeclaration:         "VariableDeclaration",
	KindFunctionDeclaration:         "FunctionDeclaration",
	KindClassDeclaration:            "ClassDeclaration",
	KindInterfaceDeclaration:        "InterfaceDeclaration",
	KindEnumDeclaration:             "EnumDeclaration",
	KindEnumMember:                  "EnumMember",
	KindNamespaceDeclaration:        "NamespaceDeclaration",
	KindModuleBlock:                 "ModuleBlock",
	KindTypeAliasDeclaration:        "TypeAliasDeclaration",
	KindPropertyDeclaration:         "PropertyDeclaration",
	KindMethodDeclaration:           "MethodDeclaration",
	KindConstructor:                 "Constructor",
	KindGetAccessor:                 "GetAccessor",
	KindSetAccessor:                 "SetAccessor",
	KindPropertySignature:           "PropertySignature",
	KindMethodSignature:             "MethodSignature",
	KindParameter:                   "Parameter",
	KindTypeParameter:               "TypeParameter",
	KindDecorator:                   "Decorator",
	KindHeritageClause:              "HeritageClause",
	KindExpressionWithTypeArguments: "ExpressionWithTypeArguments",
	KindJSDoc:                       "JSDoc",
	KindJSDocTag:                    "JSDocTag",
	KindBlock:                       "Block",
	KindExpressionStatement:         "ExpressionStatement",
	KindReturnStatement:             "ReturnStatement",
	KindIfStatement:                 "IfStatement",
	KindEmptyStatement:              "EmptyStatement",
	KindTypeReference:               "TypeReference",
	KindQualifiedName:               "QualifiedName",
	KindKeywordType:                 "KeywordType",
	KindArrayType:                   "ArrayType",
	KindUnionType:                   "UnionType",
	KindParenthesizedType:           "ParenthesizedType",
	KindTypeLiteral:                 "TypeLiteral",
	KindFunctionType:                "FunctionType",
	KindLiteralType:                 "LiteralType",
	KindPropertyAccessExpression:    "PropertyAccessExpression",
	KindElementAccessExpression:     "ElementAccessExpression",
	KindCallExpression:              "CallExpression",
	KindNewExpression:               "NewExpression",
	KindBinaryExpression:            "BinaryExpression",
	KindPrefixUnaryExpression:       "PrefixUnaryExpression",
	KindPostfixUnaryExpression:      "PostfixUnaryExpression",
	KindConditionalExpression:       "ConditionalExpression",
	KindParenthesizedExpression:     "ParenthesizedExpression",
	KindArrayLiteralExpression:      "ArrayLiteralExpression",
	KindObjectLiteralExpression:     "ObjectLiteralExpression",
	KindPropertyAssignment:          "PropertyAssignment",
	KindShorthandPropertyAssignment: "ShorthandPropertyAssignment",
	KindSpreadAssignment:            "SpreadAssignment",
	KindSpreadElement:               "SpreadElement",
	KindArrowFunction:               "ArrowFunction",
	KindAsExpression:                "AsExpression",
	KindComputedPropertyName:        "ComputedPropertyName",
}

// An "invalid array index" compiler error here means kindNames is out of
// sync with the Kind constants.
var _ = [1]struct{}{}[len(kindNames)-int(KindCount)]

func (k Kind) String() string {
	if k < KindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsToken reports whether nodes of kind k are leaves created from one token.
func (k Kind) IsToken() bool {
	return k >= KindIdentifier && k <= KindOperatorToken
}

// IsModifier reports whether k is one of the modifier keywords.
func (k Kind) IsModifier() bool {
	return k >= KindExportKeyword && k <= KindConstKeyword
}

// IsScopeModifier reports whether k is public, protected or private.
func (k Kind) IsScopeModifier() bool {
	return k == KindPublicKeyword || k == KindProtectedKeyword || k == KindPrivateKeyword
}

// IsStatement reports whether k may appear in a statement list.
func (k Kind) IsStatement() bool {
	switch k {
	case KindVariableStatement, KindFunctionDeclaration, KindClassDeclaration, KindInterfaceDeclaration,
		KindEnumDeclaration, KindNamespaceDeclaration, KindTypeAliasDeclaration, KindBlock,
		KindExpressionStatement, KindReturnStatement, KindIfStatement, KindEmptyStatement:
		return true
	default:
		return false
	}
}

// IsClassMember reports whether k may appear in a class body.
func (k Kind) IsClassMember() bool {
	switch k {
	case KindPropertyDeclaration, KindMethodDeclaration, KindConstructor, KindGetAccessor, KindSetAccessor:
		return true
	default:
		return false
	}
}

// IsTypeNode reports whether k is a type annotation node.
func (k Kind) IsTypeNode() bool {
	return k >= KindTypeReference && k <= KindLiteralType
}

// IsExpression reports whether k can stand in expression position.
func (k Kind) IsExpression() bool {
	switch k {
	case KindIdentifier, KindNumericLiteral, KindStringLiteral, KindTemplateLiteral, KindKeyword:
		return true
	}
	return k >= KindPropertyAccessExpression && k <= KindAsExpression
}

var modifierTexts = map[string]Kind{
	"export":    KindExportKeyword,
	"default":   KindDefaultKeyword,
	"declare":   KindDeclareKeyword,
	"abstract":  KindAbstractKeyword,
	"public":    KindPublicKeyword,
	"protected": KindProtectedKeyword,
	"private":   KindPrivateKeyword,
	"static":    KindStaticKeyword,
	"readonly":  KindReadonlyKeyword,
	"async":     KindAsyncKeyword,
	"const":     KindConstKeyword,
}

// ModifierKind maps a modifier text to its kind.
func ModifierKind(text string) (Kind, bool) {
	k, ok := modifierTexts[text]
	return k, ok
}

// ModifierText maps a modifier kind back to its text.
func ModifierText(k Kind) (string, bool) {
	for text, kind := range modifierTexts {
		if kind == k {
			return text, true
		}
	}
	return "", false
}
