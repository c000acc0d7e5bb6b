package compiler

import (
	"morph/internal/ast"
	"morph/internal/errs"
	"morph/internal/registry"
	"morph/internal/trace"
)

// composer builds the wrapper of one kind around its base node.
type composer func(n *Node) Wrapper

func base(n *Node) Wrapper { return n }

func scopedMember(n *Node) ScopedNode { return ScopedNode{n: n, implicitPublic: true} }

func newAccessor(n *Node) accessorBase {
	return accessorBase{
		Node: n, ChildOrderableNode: ChildOrderableNode{n}, DecoratableNode: DecoratableNode{n},
		AbstractableNode: AbstractableNode{n}, ScopedNode: scopedMember(n), StaticableNode: StaticableNode{n},
		BodiedNode: BodiedNode{n}, ReturnTypedNode: ReturnTypedNode{n}, ParameteredNode: ParameteredNode{n},
		PropertyNamedNode: PropertyNamedNode{n}, ModifierableNode: ModifierableNode{n},
	}
}

// composers maps every kind to its wrapper constructor.
var composers = [...]composer{
	ast.KindUnknown:        base,
	ast.KindSourceFile:     func(n *Node) Wrapper { n.sf.Node, n.sf.StatementedNode = n, StatementedNode{n}; return n.sf },
	ast.KindSyntaxList:     base,
	ast.KindEndOfFileToken: base,

	ast.KindIdentifier:       func(n *Node) Wrapper { return &Identifier{n} },
	ast.KindNumericLiteral:   func(n *Node) Wrapper { return &NumericLiteral{n} },
	ast.KindStringLiteral:    func(n *Node) Wrapper { return &StringLiteral{n} },
	ast.KindTemplateLiteral:  base,
	ast.KindKeyword:          base,
	ast.KindExportKeyword:    base,
	ast.KindDefaultKeyword:   base,
	ast.KindDeclareKeyword:   base,
	ast.KindAbstractKeyword:  base,
	ast.KindPublicKeyword:    base,
	ast.KindProtectedKeyword: base,
	ast.KindPrivateKeyword:   base,
	ast.KindStaticKeyword:    base,
	ast.KindReadonlyKeyword:  base,
	ast.KindAsyncKeyword:     base,
	ast.KindConstKeyword:     base,

	ast.KindOpenBraceToken:         base,
	ast.KindCloseBraceToken:        base,
	ast.KindOpenParenToken:         base,
	ast.KindCloseParenToken:        base,
	ast.KindOpenBracketToken:       base,
	ast.KindCloseBracketToken:      base,
	ast.KindSemicolonToken:         base,
	ast.KindCommaToken:             base,
	ast.KindDotToken:               base,
	ast.KindDotDotDotToken:         base,
	ast.KindColonToken:             base,
	ast.KindQuestionToken:          base,
	ast.KindEqualsToken:            base,
	ast.KindAtToken:                base,
	ast.KindLessThanToken:          base,
	ast.KindGreaterThanToken:       base,
	ast.KindEqualsGreaterThanToken: base,
	ast.KindOperatorToken:          base,

	ast.KindVariableStatement: func(n *Node) Wrapper {
		return &VariableStatement{
			Node: n, ChildOrderableNode: ChildOrderableNode{n}, ExportableNode: ExportableNode{n},
			AmbientableNode: AmbientableNode{n}, DocumentationableNode: DocumentationableNode{n},
			ModifierableNode: ModifierableNode{n},
		}
	},
	ast.KindVariableDeclarationList: base,
	ast.KindVariableDeclaration: func(n *Node) Wrapper {
		return &VariableDeclaration{
			Node: n, InitializerExpressionableNode: InitializerExpressionableNode{n},
			TypedNode: TypedNode{n}, BindingNamedNode: BindingNamedNode{n},
		}
	},
	ast.KindFunctionDeclaration: func(n *Node) Wrapper {
		return &FunctionDeclaration{
			Node: n, ChildOrderableNode: ChildOrderableNode{n}, ExportableNode: ExportableNode{n},
			AmbientableNode: AmbientableNode{n}, AsyncableNode: AsyncableNode{n},
			DocumentationableNode: DocumentationableNode{n}, BodiedNode: BodiedNode{n},
			ReturnTypedNode: ReturnTypedNode{n}, ParameteredNode: ParameteredNode{n},
			NamedNode: NamedNode{n}, ModifierableNode: ModifierableNode{n},
		}
	},
	ast.KindClassDeclaration: func(n *Node) Wrapper {
		return &ClassDeclaration{
			Node: n, ChildOrderableNode: ChildOrderableNode{n}, ExportableNode: ExportableNode{n},
			AmbientableNode: AmbientableNode{n}, AbstractableNode: AbstractableNode{n},
			DecoratableNode: DecoratableNode{n}, DocumentationableNode: DocumentationableNode{n},
			NamedNode: NamedNode{n}, ModifierableNode: ModifierableNode{n},
		}
	},
	ast.KindInterfaceDeclaration: func(n *Node) Wrapper {
		return &InterfaceDeclaration{
			Node: n, ChildOrderableNode: ChildOrderableNode{n}, ExportableNode: ExportableNode{n},
			AmbientableNode: AmbientableNode{n}, DocumentationableNode: DocumentationableNode{n},
			NamedNode: NamedNode{n}, ModifierableNode: ModifierableNode{n},
		}
	},
	ast.KindEnumDeclaration: func(n *Node) Wrapper {
		return &EnumDeclaration{
			Node: n, ChildOrderableNode: ChildOrderableNode{n}, ExportableNode: ExportableNode{n},
			AmbientableNode: AmbientableNode{n}, DocumentationableNode: DocumentationableNode{n},
			NamedNode: NamedNode{n}, ModifierableNode: ModifierableNode{n},
		}
	},
	ast.KindEnumMember: func(n *Node) Wrapper {
		return &EnumMember{
			Node: n, DocumentationableNode: DocumentationableNode{n},
			InitializerExpressionableNode: InitializerExpressionableNode{n}, PropertyNamedNode: PropertyNamedNode{n},
		}
	},
	ast.KindNamespaceDeclaration: func(n *Node) Wrapper {
		return &NamespaceDeclaration{
			Node: n, ChildOrderableNode: ChildOrderableNode{n}, ExportableNode: ExportableNode{n},
			AmbientableNode: AmbientableNode{n}, DocumentationableNode: DocumentationableNode{n},
			BodiedNode: BodiedNode{n}, NamedNode: NamedNode{n}, ModifierableNode: ModifierableNode{n},
			StatementedNode: StatementedNode{n},
		}
	},
	ast.KindModuleBlock: base,
	ast.KindTypeAliasDeclaration: func(n *Node) Wrapper {
		return &TypeAliasDeclaration{
			Node: n, ChildOrderableNode: ChildOrderableNode{n}, ExportableNode: ExportableNode{n},
			AmbientableNode: AmbientableNode{n}, DocumentationableNode: DocumentationableNode{n},
			TypedNode: TypedNode{n}, NamedNode: NamedNode{n}, ModifierableNode: ModifierableNode{n},
		}
	},
	ast.KindPropertyDeclaration: func(n *Node) Wrapper {
		return &PropertyDeclaration{
			Node: n, ChildOrderableNode: ChildOrderableNode{n}, DecoratableNode: DecoratableNode{n},
			AbstractableNode: AbstractableNode{n}, ScopedNode: scopedMember(n), StaticableNode: StaticableNode{n},
			ReadonlyableNode: ReadonlyableNode{n}, DocumentationableNode: DocumentationableNode{n},
			QuestionTokenableNode: QuestionTokenableNode{n}, InitializerExpressionableNode: InitializerExpressionableNode{n},
			TypedNode: TypedNode{n}, PropertyNamedNode: PropertyNamedNode{n}, ModifierableNode: ModifierableNode{n},
		}
	},
	ast.KindMethodDeclaration: func(n *Node) Wrapper {
		return &MethodDeclaration{
			Node: n, ChildOrderableNode: ChildOrderableNode{n}, DecoratableNode: DecoratableNode{n},
			AbstractableNode: AbstractableNode{n}, ScopedNode: scopedMember(n), StaticableNode: StaticableNode{n},
			AsyncableNode: AsyncableNode{n}, DocumentationableNode: DocumentationableNode{n},
			BodiedNode: BodiedNode{n}, ReturnTypedNode: ReturnTypedNode{n}, ParameteredNode: ParameteredNode{n},
			PropertyNamedNode: PropertyNamedNode{n}, ModifierableNode: ModifierableNode{n},
		}
	},
	ast.KindConstructor: func(n *Node) Wrapper {
		return &ConstructorDeclaration{
			Node: n, ChildOrderableNode: ChildOrderableNode{n}, ScopedNode: scopedMember(n),
			BodiedNode: BodiedNode{n}, ParameteredNode: ParameteredNode{n}, ModifierableNode: ModifierableNode{n},
		}
	},
	ast.KindGetAccessor: func(n *Node) Wrapper { return &GetAccessorDeclaration{newAccessor(n)} },
	ast.KindSetAccessor: func(n *Node) Wrapper { return &SetAccessorDeclaration{newAccessor(n)} },
	ast.KindPropertySignature: func(n *Node) Wrapper {
		return &PropertySignature{
			Node: n, ChildOrderableNode: ChildOrderableNode{n}, DocumentationableNode: DocumentationableNode{n},
			ReadonlyableNode: ReadonlyableNode{n}, QuestionTokenableNode: QuestionTokenableNode{n},
			InitializerExpressionableNode: InitializerExpressionableNode{n}, TypedNode: TypedNode{n},
			PropertyNamedNode: PropertyNamedNode{n}, ModifierableNode: ModifierableNode{n},
		}
	},
	ast.KindMethodSignature: func(n *Node) Wrapper {
		return &MethodSignature{
			Node: n, ChildOrderableNode: ChildOrderableNode{n}, DocumentationableNode: DocumentationableNode{n},
			QuestionTokenableNode: QuestionTokenableNode{n}, ReturnTypedNode: ReturnTypedNode{n},
			ParameteredNode: ParameteredNode{n}, PropertyNamedNode: PropertyNamedNode{n},
		}
	},
	ast.KindParameter: func(n *Node) Wrapper {
		return &Parameter{
			Node: n, DecoratableNode: DecoratableNode{n}, ScopedNode: ScopedNode{n: n},
			ReadonlyableNode: ReadonlyableNode{n}, QuestionTokenableNode: QuestionTokenableNode{n},
			InitializerExpressionableNode: InitializerExpressionableNode{n}, TypedNode: TypedNode{n},
			BindingNamedNode: BindingNamedNode{n}, ModifierableNode: ModifierableNode{n},
		}
	},
	ast.KindTypeParameter:               base,
	ast.KindDecorator:                   func(n *Node) Wrapper { return &Decorator{n} },
	ast.KindHeritageClause:              base,
	ast.KindExpressionWithTypeArguments: base,
	ast.KindJSDoc:                       func(n *Node) Wrapper { return &JSDoc{n} },
	ast.KindJSDocTag:                    func(n *Node) Wrapper { return &JSDocTag{n} },

	ast.KindBlock:               base,
	ast.KindExpressionStatement: base,
	ast.KindReturnStatement:     base,
	ast.KindIfStatement:         base,
	ast.KindEmptyStatement:      base,

	ast.KindTypeReference:     func(n *Node) Wrapper { return &TypeReference{n} },
	ast.KindQualifiedName:     func(n *Node) Wrapper { return &QualifiedName{n} },
	ast.KindKeywordType:       base,
	ast.KindArrayType:         base,
	ast.KindUnionType:         base,
	ast.KindParenthesizedType: base,
	ast.KindTypeLiteral:       base,
	ast.KindFunctionType:      base,
	ast.KindLiteralType:       base,

	ast.KindPropertyAccessExpression:    func(n *Node) Wrapper { return &PropertyAccessExpression{n} },
	ast.KindElementAccessExpression:     base,
	ast.KindCallExpression:              base,
	ast.KindNewExpression:               base,
	ast.KindBinaryExpression:            base,
	ast.KindPrefixUnaryExpression:       base,
	ast.KindPostfixUnaryExpression:      base,
	ast.KindConditionalExpression:       base,
	ast.KindParenthesizedExpression:     base,
	ast.KindArrayLiteralExpression:      base,
	ast.KindObjectLiteralExpression:     func(n *Node) Wrapper { return &ObjectLiteralExpression{n} },
	ast.KindPropertyAssignment:          func(n *Node) Wrapper { return &PropertyAssignment{n, PropertyNamedNode{n}} },
	ast.KindShorthandPropertyAssignment: func(n *Node) Wrapper { return &ShorthandPropertyAssignment{n} },
	ast.KindSpreadAssignment:            func(n *Node) Wrapper { return &SpreadAssignment{n} },
	ast.KindSpreadElement:               base,
	ast.KindArrowFunction:               base,
	ast.KindAsExpression:                base,
	ast.KindComputedPropertyName:        func(n *Node) Wrapper { return &ComputedPropertyName{n} },
}

var _ = [1]struct{}{}[len(composers)-int(ast.KindCount)]

// compose builds the wrapper for a registry entry. A kind without a
// composer gets the base node.
func (sf *SourceFile) compose(e *registry.Entry) Wrapper {
	n := &Node{sf: sf, entry: e}
	c, err := composerFor(e.Kind())
	if err != nil {
		trace.Point(sf.tracer, trace.ScopeNode, "compose", err.Error(), nil)
		return n
	}
	return c(n)
}

func composerFor(k ast.Kind) (composer, error) {
	if int(k) >= len(composers) || composers[k] == nil {
		return nil, errs.NotImplementedForKind(k)
	}
	return composers[k], nil
}
