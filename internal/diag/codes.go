package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedTemplate     Code = 1005

	// syntax
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynUnclosedParen        Code = 2002
	SynUnclosedBrace        Code = 2003
	SynUnclosedBracket      Code = 2004
	SynExpectSemicolon      Code = 2005
	SynExpectIdentifier     Code = 2006
	SynExpectExpression     Code = 2007
	SynExpectType           Code = 2008
	SynModifierNotAllowed   Code = 2009
	SynDecoratorNotAllowed  Code = 2010
	SynExpectMember         Code = 2011
	SynUnexpectedTopLevel   Code = 2012
	SynDeclarationListEmpty Code = 2013
	SynTooManyErrors        Code = 2099

	// manipulation
	ManipInfo               Code = 3000
	ManipRejectedParse      Code = 3001
	ManipVerificationFailed Code = 3002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	LexUnterminatedTemplate:     "Unterminated template literal",

	SynInfo:                 "Syntax information",
	SynUnexpectedToken:      "Unexpected token",
	SynUnclosedParen:        "Unclosed parenthesis",
	SynUnclosedBrace:        "Unclosed brace",
	SynUnclosedBracket:      "Unclosed bracket",
	SynExpectSemicolon:      "Expected semicolon",
	SynExpectIdentifier:     "Expected identifier",
	SynExpectExpression:     "Expected expression",
	SynExpectType:           "Expected type",
	SynModifierNotAllowed:   "Modifier not allowed here",
	SynDecoratorNotAllowed:  "Decorator not allowed here",
	SynExpectMember:         "Expected member declaration",
	SynUnexpectedTopLevel:   "Unexpected top-level statement",
	SynDeclarationListEmpty: "Variable declaration list cannot be empty",
	SynTooManyErrors:        "Too many errors",

	ManipInfo:               "Manipulation information",
	ManipRejectedParse:      "Manipulation produced invalid syntax",
	ManipVerificationFailed: "Manipulation rejected by verifier",
}

func (c Code) ID() string {
	ic := int(c)
	switch {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("MAN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
