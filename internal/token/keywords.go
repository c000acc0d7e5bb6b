package token

var keywords = map[string]Kind{
	"break":      KwBreak,
	"class":      KwClass,
	"const":      KwConst,
	"continue":   KwContinue,
	"default":    KwDefault,
	"else":       KwElse,
	"enum":       KwEnum,
	"export":     KwExport,
	"extends":    KwExtends,
	"false":      KwFalse,
	"function":   KwFunction,
	"if":         KwIf,
	"implements": KwImplements,
	"import":     KwImport,
	"interface":  KwInterface,
	"let":        KwLet,
	"new":        KwNew,
	"null":       KwNull,
	"return":     KwReturn,
	"this":       KwThis,
	"true":       KwTrue,
	"typeof":     KwTypeof,
	"var":        KwVar,
	"void":       KwVoid,
	"while":      KwWhile,
}

// LookupKeyword reports the keyword kind for ident. Keywords are case sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// modifierWords are the contextual words that may act as declaration
// modifiers. export, default and const are reserved and appear here too.
var modifierWords = map[string]struct{}{
	"export":    {},
	"default":   {},
	"declare":   {},
	"abstract":  {},
	"public":    {},
	"protected": {},
	"private":   {},
	"static":    {},
	"readonly":  {},
	"async":     {},
	"const":     {},
}

// IsModifierWord reports whether text can be a declaration modifier.
func IsModifierWord(text string) bool {
	_, ok := modifierWords[text]
	return ok
}
