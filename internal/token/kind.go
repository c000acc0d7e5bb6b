package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	NumberLit
	StringLit
	TemplateLit

	// reserved words
	KwBreak
	KwClass
	KwConst
	KwContinue
	KwDefault
	KwElse
	KwEnum
	KwExport
	KwExtends
	KwFalse
	KwFunction
	KwIf
	KwImplements
	KwImport
	KwInterface
	KwLet
	KwNew
	KwNull
	KwReturn
	KwThis
	KwTrue
	KwTypeof
	KwVar
	KwVoid
	KwWhile

	// punctuation and operators
	LBrace
	RBrace
	LParen
	RParen
	LBracket
	RBracket
	Semicolon
	Comma
	Dot
	DotDotDot
	Colon
	Question
	QuestionDot
	QuestionQuestion
	At
	Assign
	FatArrow
	Lt
	Gt
	LtEq
	GtEq
	EqEq
	EqEqEq
	BangEq
	BangEqEq
	Plus
	Minus
	Star
	StarStar
	Slash
	Percent
	Bang
	Tilde
	Amp
	Pipe
	Caret
	AndAnd
	OrOr
	PlusPlus
	MinusMinus
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign

	kindCount
)

var kindNames = [...]string{
	Invalid:          "Invalid",
	EOF:              "EOF",
	Ident:            "Ident",
	NumberLit:        "NumberLit",
	StringLit:        "StringLit",
	TemplateLit:      "TemplateLit",
	KwBreak:          "break",
	KwClass:          "class",
	KwConst:          "const",
	KwContinue:       "continue",
	KwDefault:        "default",
	KwElse:           "else",
	KwEnum:           "enum",
	KwExport:         "export",
	KwExtends:        "extends",
	KwFalse:          "false",
	KwFunction:       "function",
	KwIf:             "if",
	KwImplements:     "implements",
	KwImport:         "import",
	KwInterface:      "interface",
	KwLet:            "let",
	KwNew:            "new",
	KwNull:           "null",
	KwReturn:         "return",
	KwThis:           "this",
	KwTrue:           "true",
	KwTypeof:         "typeof",
	KwVar:            "var",
	KwVoid:           "void",
	KwWhile:          "while",
	LBrace:           "{",
	RBrace:           "}",
	LParen:           "(",
	RParen:           ")",
	LBracket:         "[",
	RBracket:         "]",
	Semicolon:        ";",
	Comma:            ",",
	Dot:              ".",
	DotDotDot:        "...",
	Colon:            ":",
	Question:         "?",
	QuestionDot:      "?.",
	QuestionQuestion: "??",
	At:               "@",
	Assign:           "=",
	FatArrow:         "=>",
	Lt:               "<",
	Gt:               ">",
	LtEq:             "<=",
	GtEq:             ">=",
	EqEq:             "==",
	EqEqEq:           "===",
	BangEq:           "!=",
	BangEqEq:         "!==",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	StarStar:         "**",
	Slash:            "/",
	Percent:          "%",
	Bang:             "!",
	Tilde:            "~",
	Amp:              "&",
	Pipe:             "|",
	Caret:            "^",
	AndAnd:           "&&",
	OrOr:             "||",
	PlusPlus:         "++",
	MinusMinus:       "--",
	PlusAssign:       "+=",
	MinusAssign:      "-=",
	StarAssign:       "*=",
	SlashAssign:      "/=",
	PercentAssign:    "%=",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwBreak && k <= KwWhile
}

// IsAssignment reports whether k is "=" or a compound assignment.
func (k Kind) IsAssignment() bool {
	switch k {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign:
		return true
	default:
		return false
	}
}
