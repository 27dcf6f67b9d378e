package ast

// ExprContext records whether an expression is read, written or
// deleted. Targets of assignments, loops and del statements are
// rewritten to Store or Del after parsing.
type ExprContext uint8

const (
	Load ExprContext = iota
	Store
	Del
)

func (c ExprContext) String() string {
	switch c {
	case Store:
		return "Store"
	case Del:
		return "Del"
	default:
		return "Load"
	}
}

// BoolOpKind is the operator of a boolean chain.
type BoolOpKind uint8

const (
	BoolAnd BoolOpKind = iota
	BoolOr
)

func (op BoolOpKind) String() string {
	if op == BoolAnd {
		return "and"
	}
	return "or"
}

// Operator is a binary arithmetic or bitwise operator, shared between
// binary expressions and augmented assignments.
type Operator uint8

const (
	OpAdd Operator = iota
	OpSub
	OpMult
	OpMatMult
	OpDiv
	OpMod
	OpPow
	OpLShift
	OpRShift
	OpBitOr
	OpBitXor
	OpBitAnd
	OpFloorDiv
)

var operatorNames = [...]string{
	OpAdd:      "+",
	OpSub:      "-",
	OpMult:     "*",
	OpMatMult:  "@",
	OpDiv:      "/",
	OpMod:      "%",
	OpPow:      "**",
	OpLShift:   "<<",
	OpRShift:   ">>",
	OpBitOr:    "|",
	OpBitXor:   "^",
	OpBitAnd:   "&",
	OpFloorDiv: "//",
}

func (op Operator) String() string { return operatorNames[op] }

// UnaryOpKind is a unary operator.
type UnaryOpKind uint8

const (
	UnaryInvert UnaryOpKind = iota
	UnaryNot
	UnaryPlus
	UnaryMinus
)

var unaryOpNames = [...]string{
	UnaryInvert: "~",
	UnaryNot:    "not",
	UnaryPlus:   "+",
	UnaryMinus:  "-",
}

func (op UnaryOpKind) String() string { return unaryOpNames[op] }

// CmpOp is a comparison operator.
type CmpOp uint8

const (
	CmpEq CmpOp = iota
	CmpNotEq
	CmpLt
	CmpLtE
	CmpGt
	CmpGtE
	CmpIs
	CmpIsNot
	CmpIn
	CmpNotIn
)

var cmpOpNames = [...]string{
	CmpEq:    "==",
	CmpNotEq: "!=",
	CmpLt:    "<",
	CmpLtE:   "<=",
	CmpGt:    ">",
	CmpGtE:   ">=",
	CmpIs:    "is",
	CmpIsNot: "is not",
	CmpIn:    "in",
	CmpNotIn: "not in",
}

func (op CmpOp) String() string { return cmpOpNames[op] }

// ConversionFlag is the `!s`/`!r`/`!a` conversion of a replacement
// field; ConvNone when absent.
type ConversionFlag uint8

const (
	ConvNone ConversionFlag = iota
	ConvStr
	ConvRepr
	ConvAscii
)

func (c ConversionFlag) String() string {
	switch c {
	case ConvStr:
		return "!s"
	case ConvRepr:
		return "!r"
	case ConvAscii:
		return "!a"
	default:
		return ""
	}
}

// Singleton is the constant matched by a singleton pattern.
type Singleton uint8

const (
	SingletonNone Singleton = iota
	SingletonTrue
	SingletonFalse
)

func (s Singleton) String() string {
	switch s {
	case SingletonTrue:
		return "True"
	case SingletonFalse:
		return "False"
	default:
		return "None"
	}
}

// EscapeKind classifies an interactive escape command by its prefix.
type EscapeKind uint8

const (
	EscapeMagic   EscapeKind = iota // %
	EscapeMagic2                    // %%
	EscapeShell                     // !
	EscapeShell2                    // !!
	EscapeHelp                      // ?
	EscapeHelp2                     // ??
	EscapeParen                     // /
	EscapeQuote                     // ,
	EscapeQuote2                    // ;
)

var escapeKindNames = [...]string{
	EscapeMagic:  "%",
	EscapeMagic2: "%%",
	EscapeShell:  "!",
	EscapeShell2: "!!",
	EscapeHelp:   "?",
	EscapeHelp2:  "??",
	EscapeParen:  "/",
	EscapeQuote:  ",",
	EscapeQuote2: ";",
}

func (k EscapeKind) String() string { return escapeKindNames[k] }
