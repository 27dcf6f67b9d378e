// Package token defines the lexical token kinds of Python source and
// the token value passed from the lexer to the parser.
package token

import (
	"fmt"

	"github.com/pythia-lang/pythia/internal/source"
)

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	EOF Kind = iota
	Unknown

	// Structural tokens emitted by the indentation tracker.
	Newline
	NonLogicalNewline
	Indent
	Dedent
	Comment

	// Literals and names. Lit carries the raw source text.
	Name
	Int
	Float
	Complex
	String
	FStringStart
	FStringMiddle
	FStringEnd

	// Interactive-mode escape command (%magic, !shell, ?help and friends).
	EscapeCommand
	Question
	Exclamation

	// Keywords.
	KwFalse
	KwNone
	KwTrue
	KwAnd
	KwAs
	KwAssert
	KwAsync
	KwAwait
	KwBreak
	KwClass
	KwContinue
	KwDef
	KwDel
	KwElif
	KwElse
	KwExcept
	KwFinally
	KwFor
	KwFrom
	KwGlobal
	KwIf
	KwImport
	KwIn
	KwIs
	KwLambda
	KwNonlocal
	KwNot
	KwOr
	KwPass
	KwRaise
	KwReturn
	KwTry
	KwWhile
	KwWith
	KwYield

	// Soft keywords: lexed as keywords, treated as names unless the
	// statement-level lookahead confirms the construct.
	KwMatch
	KwCase
	KwType

	// Delimiters.
	Lpar
	Rpar
	Lsqb
	Rsqb
	Lbrace
	Rbrace
	Comma
	Colon
	Semi
	Dot
	Rarrow
	At
	Ellipsis

	// Operators.
	Plus
	Minus
	Star
	DoubleStar
	Slash
	DoubleSlash
	Percent
	Amper
	Vbar
	Circumflex
	Tilde
	LeftShift
	RightShift
	Less
	Greater
	EqEqual
	NotEqual
	LessEqual
	GreaterEqual
	Equal
	ColonEqual

	// Augmented assignment operators.
	PlusEqual
	MinusEqual
	StarEqual
	DoubleStarEqual
	SlashEqual
	DoubleSlashEqual
	PercentEqual
	AmperEqual
	VbarEqual
	CircumflexEqual
	LeftShiftEqual
	RightShiftEqual
	AtEqual

	kindCount
)

var kindNames = [...]string{
	EOF:               "end of file",
	Unknown:           "unknown",
	Newline:           "newline",
	NonLogicalNewline: "newline",
	Indent:            "indent",
	Dedent:            "dedent",
	Comment:           "comment",
	Name:              "name",
	Int:               "integer literal",
	Float:             "float literal",
	Complex:           "complex literal",
	String:            "string literal",
	FStringStart:      "f-string start",
	FStringMiddle:     "f-string literal",
	FStringEnd:        "f-string end",
	EscapeCommand:     "escape command",
	Question:          "'?'",
	Exclamation:       "'!'",
	KwFalse:           "'False'",
	KwNone:            "'None'",
	KwTrue:            "'True'",
	KwAnd:             "'and'",
	KwAs:              "'as'",
	KwAssert:          "'assert'",
	KwAsync:           "'async'",
	KwAwait:           "'await'",
	KwBreak:           "'break'",
	KwClass:           "'class'",
	KwContinue:        "'continue'",
	KwDef:             "'def'",
	KwDel:             "'del'",
	KwElif:            "'elif'",
	KwElse:            "'else'",
	KwExcept:          "'except'",
	KwFinally:         "'finally'",
	KwFor:             "'for'",
	KwFrom:            "'from'",
	KwGlobal:          "'global'",
	KwIf:              "'if'",
	KwImport:          "'import'",
	KwIn:              "'in'",
	KwIs:              "'is'",
	KwLambda:          "'lambda'",
	KwNonlocal:        "'nonlocal'",
	KwNot:             "'not'",
	KwOr:              "'or'",
	KwPass:            "'pass'",
	KwRaise:           "'raise'",
	KwReturn:          "'return'",
	KwTry:             "'try'",
	KwWhile:           "'while'",
	KwWith:            "'with'",
	KwYield:           "'yield'",
	KwMatch:           "'match'",
	KwCase:            "'case'",
	KwType:            "'type'",
	Lpar:              "'('",
	Rpar:              "')'",
	Lsqb:              "'['",
	Rsqb:              "']'",
	Lbrace:            "'{'",
	Rbrace:            "'}'",
	Comma:             "','",
	Colon:             "':'",
	Semi:              "';'",
	Dot:               "'.'",
	Rarrow:            "'->'",
	At:                "'@'",
	Ellipsis:          "'...'",
	Plus:              "'+'",
	Minus:             "'-'",
	Star:              "'*'",
	DoubleStar:        "'**'",
	Slash:             "'/'",
	DoubleSlash:       "'//'",
	Percent:           "'%'",
	Amper:             "'&'",
	Vbar:              "'|'",
	Circumflex:        "'^'",
	Tilde:             "'~'",
	LeftShift:         "'<<'",
	RightShift:        "'>>'",
	Less:              "'<'",
	Greater:           "'>'",
	EqEqual:           "'=='",
	NotEqual:          "'!='",
	LessEqual:         "'<='",
	GreaterEqual:      "'>='",
	Equal:             "'='",
	ColonEqual:        "':='",
	PlusEqual:         "'+='",
	MinusEqual:        "'-='",
	StarEqual:         "'*='",
	DoubleStarEqual:   "'**='",
	SlashEqual:        "'/='",
	DoubleSlashEqual:  "'//='",
	PercentEqual:      "'%='",
	AmperEqual:        "'&='",
	VbarEqual:         "'|='",
	CircumflexEqual:   "'^='",
	LeftShiftEqual:    "'<<='",
	RightShiftEqual:   "'>>='",
	AtEqual:           "'@='",
}

// String returns a human-readable description of the kind, suitable
// for embedding in diagnostics ("expected ':'").
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var keywords = map[string]Kind{
	"False":    KwFalse,
	"None":     KwNone,
	"True":     KwTrue,
	"and":      KwAnd,
	"as":       KwAs,
	"assert":   KwAssert,
	"async":    KwAsync,
	"await":    KwAwait,
	"break":    KwBreak,
	"class":    KwClass,
	"continue": KwContinue,
	"def":      KwDef,
	"del":      KwDel,
	"elif":     KwElif,
	"else":     KwElse,
	"except":   KwExcept,
	"finally":  KwFinally,
	"for":      KwFor,
	"from":     KwFrom,
	"global":   KwGlobal,
	"if":       KwIf,
	"import":   KwImport,
	"in":       KwIn,
	"is":       KwIs,
	"lambda":   KwLambda,
	"nonlocal": KwNonlocal,
	"not":      KwNot,
	"or":       KwOr,
	"pass":     KwPass,
	"raise":    KwRaise,
	"return":   KwReturn,
	"try":      KwTry,
	"while":    KwWhile,
	"with":     KwWith,
	"yield":    KwYield,
	"match":    KwMatch,
	"case":     KwCase,
	"type":     KwType,
}

// LookupIdent maps an identifier to its keyword kind, or Name.
func LookupIdent(ident string) Kind {
	if kw, ok := keywords[ident]; ok {
		return kw
	}
	return Name
}

// IsKeyword reports whether the kind is a reserved or soft keyword.
func (k Kind) IsKeyword() bool {
	return k >= KwFalse && k <= KwType
}

// IsSoftKeyword reports whether the kind is a soft keyword, valid as a
// plain name outside its statement form.
func (k Kind) IsSoftKeyword() bool {
	return k == KwMatch || k == KwCase || k == KwType
}

// Token is a single lexical token. Lit holds the raw source text for
// kinds that carry a payload (names, literals, escape commands) and is
// empty for punctuation and keywords.
type Token struct {
	Kind  Kind
	Range source.Range
	Lit   string
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Lit != "" {
		return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lit, t.Range)
	}
	return fmt.Sprintf("%s@%s", t.Kind, t.Range)
}
