// Package ast defines the syntax tree produced by the parser. Every
// node carries the half-open byte range of the source text it covers.
package ast

import (
	"github.com/pythia-lang/pythia/internal/source"
)

// Node is implemented by every syntax tree node.
type Node interface {
	NodeRange() source.Range
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Pattern is implemented by all match-statement pattern nodes.
type Pattern interface {
	Node
	patternNode()
}

// Mod is the root of a parse: a module body or a single expression.
type Mod interface {
	Node
	modNode()
}

// Identifier is a resolved name with its range. It is not itself an
// expression; names in expression position use the Name node.
type Identifier struct {
	Range source.Range
	Name  string
}

func (n *Identifier) NodeRange() source.Range { return n.Range }

// ----------------------------------------------------------------------------
// Roots

// Module is a sequence of statements: a source file or an interactive
// input block.
type Module struct {
	Range source.Range
	Body  []Stmt
}

// Expression is the root produced by expression parse mode.
type Expression struct {
	Range source.Range
	Body  Expr
}

func (n *Module) NodeRange() source.Range     { return n.Range }
func (n *Expression) NodeRange() source.Range { return n.Range }
func (n *Module) modNode()                    {}
func (n *Expression) modNode()                {}

// ----------------------------------------------------------------------------
// Statements

// ExprStmt is an expression evaluated for effect.
type ExprStmt struct {
	Range source.Range
	Value Expr
}

// Assign is `a = b = value`.
type Assign struct {
	Range   source.Range
	Targets []Expr
	Value   Expr
}

// AnnAssign is `target: annotation` or `target: annotation = value`.
// Simple is true when the target is a plain unparenthesized name.
type AnnAssign struct {
	Range      source.Range
	Target     Expr
	Annotation Expr
	Value      Expr
	Simple     bool
}

// AugAssign is `target op= value`.
type AugAssign struct {
	Range  source.Range
	Target Expr
	Op     Operator
	Value  Expr
}

// Return is `return` with an optional value.
type Return struct {
	Range source.Range
	Value Expr
}

// Pass is the `pass` statement.
type Pass struct {
	Range source.Range
}

// Break is the `break` statement.
type Break struct {
	Range source.Range
}

// Continue is the `continue` statement.
type Continue struct {
	Range source.Range
}

// Delete is `del target, ...`.
type Delete struct {
	Range   source.Range
	Targets []Expr
}

// Raise is `raise`, `raise exc` or `raise exc from cause`.
type Raise struct {
	Range source.Range
	Exc   Expr
	Cause Expr
}

// Assert is `assert test` with an optional message.
type Assert struct {
	Range source.Range
	Test  Expr
	Msg   Expr
}

// Global is `global name, ...`.
type Global struct {
	Range source.Range
	Names []*Identifier
}

// Nonlocal is `nonlocal name, ...`.
type Nonlocal struct {
	Range source.Range
	Names []*Identifier
}

// Alias is a single `name as asname` clause of an import.
type Alias struct {
	Range  source.Range
	Name   *Identifier
	AsName *Identifier
}

// Import is `import name as alias, ...`.
type Import struct {
	Range source.Range
	Names []*Alias
}

// ImportFrom is `from module import names`. Level counts the leading
// dots of a relative import; Module is nil for `from . import x`.
type ImportFrom struct {
	Range  source.Range
	Module *Identifier
	Names  []*Alias
	Level  int
}

// ElifElseClause is one `elif test:` or `else:` arm of an if
// statement; Test is nil for the else arm.
type ElifElseClause struct {
	Range source.Range
	Test  Expr
	Body  []Stmt
}

// If is an `if` statement with its elif/else clauses kept flat.
type If struct {
	Range       source.Range
	Test        Expr
	Body        []Stmt
	ElifClauses []*ElifElseClause
}

// While is a `while` loop with an optional else suite.
type While struct {
	Range  source.Range
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

// For is a `for` or `async for` loop with an optional else suite.
type For struct {
	Range   source.Range
	IsAsync bool
	Target  Expr
	Iter    Expr
	Body    []Stmt
	Orelse  []Stmt
}

// WithItem is one `expr as target` clause of a with statement.
type WithItem struct {
	Range    source.Range
	ContextE Expr
	Optional Expr
}

func (n *WithItem) NodeRange() source.Range { return n.Range }

// With is a `with` or `async with` statement.
type With struct {
	Range   source.Range
	IsAsync bool
	Items   []*WithItem
	Body    []Stmt
}

// ExceptHandler is one `except` clause; Type and Name may be nil.
type ExceptHandler struct {
	Range source.Range
	Type  Expr
	Name  *Identifier
	Body  []Stmt
}

func (n *ExceptHandler) NodeRange() source.Range { return n.Range }

// Try is a `try` statement. IsStar marks `except*` handlers.
type Try struct {
	Range     source.Range
	Body      []Stmt
	Handlers  []*ExceptHandler
	Orelse    []Stmt
	FinalBody []Stmt
	IsStar    bool
}

// Decorator is one `@expr` line preceding a definition.
type Decorator struct {
	Range source.Range
	Expr  Expr
}

func (n *Decorator) NodeRange() source.Range { return n.Range }

// Parameter is a single parameter with an optional annotation.
type Parameter struct {
	Range      source.Range
	Name       *Identifier
	Annotation Expr
}

func (n *Parameter) NodeRange() source.Range { return n.Range }

// ParameterWithDefault pairs a parameter with its optional default.
type ParameterWithDefault struct {
	Range   source.Range
	Param   *Parameter
	Default Expr
}

func (n *ParameterWithDefault) NodeRange() source.Range { return n.Range }

// Parameters is the full parameter list of a function or lambda.
// VarArg is nil when a bare `*` introduced the keyword-only section;
// KwArg is the `**kwargs` parameter.
type Parameters struct {
	Range   source.Range
	PosOnly []*ParameterWithDefault
	Args    []*ParameterWithDefault
	VarArg  *Parameter
	KwOnly  []*ParameterWithDefault
	KwArg   *Parameter
}

func (n *Parameters) NodeRange() source.Range { return n.Range }

// IsEmpty reports whether no parameters of any kind are present.
func (n *Parameters) IsEmpty() bool {
	return len(n.PosOnly) == 0 && len(n.Args) == 0 && n.VarArg == nil &&
		len(n.KwOnly) == 0 && n.KwArg == nil
}

// TypeParams is the `[T, ...]` clause of a generic definition.
type TypeParams struct {
	Range  source.Range
	Params []TypeParam
}

func (n *TypeParams) NodeRange() source.Range { return n.Range }

// TypeParam is one PEP 695 type parameter.
type TypeParam interface {
	Node
	typeParamNode()
}

// TypeVar is `T`, `T: bound` or `T = default`.
type TypeVar struct {
	Range   source.Range
	Name    *Identifier
	Bound   Expr
	Default Expr
}

// TypeVarTuple is `*Ts` with an optional default.
type TypeVarTuple struct {
	Range   source.Range
	Name    *Identifier
	Default Expr
}

// ParamSpec is `**P` with an optional default.
type ParamSpec struct {
	Range   source.Range
	Name    *Identifier
	Default Expr
}

func (n *TypeVar) NodeRange() source.Range      { return n.Range }
func (n *TypeVarTuple) NodeRange() source.Range { return n.Range }
func (n *ParamSpec) NodeRange() source.Range    { return n.Range }
func (n *TypeVar) typeParamNode()               {}
func (n *TypeVarTuple) typeParamNode()          {}
func (n *ParamSpec) typeParamNode()             {}

// FunctionDef is a `def` or `async def` statement.
type FunctionDef struct {
	Range      source.Range
	IsAsync    bool
	Decorators []*Decorator
	Name       *Identifier
	TypeParams *TypeParams
	Params     *Parameters
	Returns    Expr
	Body       []Stmt
}

// ClassDef is a `class` statement; Arguments is nil when the class has
// no parenthesized base list.
type ClassDef struct {
	Range      source.Range
	Decorators []*Decorator
	Name       *Identifier
	TypeParams *TypeParams
	Arguments  *Arguments
	Body       []Stmt
}

// MatchCase is one `case pattern [if guard]:` arm.
type MatchCase struct {
	Range   source.Range
	Pattern Pattern
	Guard   Expr
	Body    []Stmt
}

func (n *MatchCase) NodeRange() source.Range { return n.Range }

// Match is a `match` statement.
type Match struct {
	Range   source.Range
	Subject Expr
	Cases   []*MatchCase
}

// TypeAlias is a `type Name[params] = value` statement.
type TypeAlias struct {
	Range      source.Range
	Name       Expr
	TypeParams *TypeParams
	Value      Expr
}

// EscapeCommand is an interactive-mode line command such as `%magic`
// or `!shell`. Value holds the command text after the escape prefix.
type EscapeCommand struct {
	Range source.Range
	Kind  EscapeKind
	Value string
}

func (n *ExprStmt) NodeRange() source.Range       { return n.Range }
func (n *Assign) NodeRange() source.Range         { return n.Range }
func (n *AnnAssign) NodeRange() source.Range      { return n.Range }
func (n *AugAssign) NodeRange() source.Range      { return n.Range }
func (n *Return) NodeRange() source.Range         { return n.Range }
func (n *Pass) NodeRange() source.Range           { return n.Range }
func (n *Break) NodeRange() source.Range          { return n.Range }
func (n *Continue) NodeRange() source.Range       { return n.Range }
func (n *Delete) NodeRange() source.Range         { return n.Range }
func (n *Raise) NodeRange() source.Range          { return n.Range }
func (n *Assert) NodeRange() source.Range         { return n.Range }
func (n *Global) NodeRange() source.Range         { return n.Range }
func (n *Nonlocal) NodeRange() source.Range       { return n.Range }
func (n *Alias) NodeRange() source.Range          { return n.Range }
func (n *Import) NodeRange() source.Range         { return n.Range }
func (n *ImportFrom) NodeRange() source.Range     { return n.Range }
func (n *ElifElseClause) NodeRange() source.Range { return n.Range }
func (n *If) NodeRange() source.Range             { return n.Range }
func (n *While) NodeRange() source.Range          { return n.Range }
func (n *For) NodeRange() source.Range            { return n.Range }
func (n *With) NodeRange() source.Range           { return n.Range }
func (n *Try) NodeRange() source.Range            { return n.Range }
func (n *FunctionDef) NodeRange() source.Range    { return n.Range }
func (n *ClassDef) NodeRange() source.Range       { return n.Range }
func (n *Match) NodeRange() source.Range          { return n.Range }
func (n *TypeAlias) NodeRange() source.Range      { return n.Range }
func (n *EscapeCommand) NodeRange() source.Range  { return n.Range }

func (n *ExprStmt) stmtNode()      {}
func (n *Assign) stmtNode()        {}
func (n *AnnAssign) stmtNode()     {}
func (n *AugAssign) stmtNode()     {}
func (n *Return) stmtNode()        {}
func (n *Pass) stmtNode()          {}
func (n *Break) stmtNode()         {}
func (n *Continue) stmtNode()      {}
func (n *Delete) stmtNode()        {}
func (n *Raise) stmtNode()         {}
func (n *Assert) stmtNode()        {}
func (n *Global) stmtNode()        {}
func (n *Nonlocal) stmtNode()      {}
func (n *Import) stmtNode()        {}
func (n *ImportFrom) stmtNode()    {}
func (n *If) stmtNode()            {}
func (n *While) stmtNode()         {}
func (n *For) stmtNode()           {}
func (n *With) stmtNode()          {}
func (n *Try) stmtNode()           {}
func (n *FunctionDef) stmtNode()   {}
func (n *ClassDef) stmtNode()      {}
func (n *Match) stmtNode()         {}
func (n *TypeAlias) stmtNode()     {}
func (n *EscapeCommand) stmtNode() {}

// ----------------------------------------------------------------------------
// Expressions

// Name is an identifier in expression position.
type Name struct {
	Range source.Range
	ID    string
	Ctx   ExprContext
}

// IntLiteral keeps its digits as written so arbitrary-precision
// values survive round trips.
type IntLiteral struct {
	Range source.Range
	Value string
}

// FloatLiteral is a decoded floating point literal.
type FloatLiteral struct {
	Range source.Range
	Value float64
}

// ComplexLiteral is an imaginary literal. The real part is zero at the
// lexical level; complex pattern literals fold `real +/- imag` pairs.
type ComplexLiteral struct {
	Range source.Range
	Real  float64
	Imag  float64
}

// StringLiteral is a decoded string, with implicitly concatenated
// adjacent literals already joined.
type StringLiteral struct {
	Range source.Range
	Value string
}

// BytesLiteral is a decoded bytes literal.
type BytesLiteral struct {
	Range source.Range
	Value []byte
}

// FStringText is a literal text run inside an f-string.
type FStringText struct {
	Range source.Range
	Value string
}

// FormattedValue is a `{expr!conv:spec}` replacement field.
type FormattedValue struct {
	Range      source.Range
	Value      Expr
	Conversion ConversionFlag
	FormatSpec *FString
}

// FStringElement is a text run or replacement field of an f-string.
type FStringElement interface {
	Node
	fstringElement()
}

func (n *FStringText) NodeRange() source.Range    { return n.Range }
func (n *FormattedValue) NodeRange() source.Range { return n.Range }
func (n *FStringText) fstringElement()            {}
func (n *FormattedValue) fstringElement()         {}

// FString is an f-string literal, with implicitly concatenated
// neighbouring string and f-string parts merged into one element run.
type FString struct {
	Range    source.Range
	Elements []FStringElement
}

// BooleanLiteral is `True` or `False`.
type BooleanLiteral struct {
	Range source.Range
	Value bool
}

// NoneLiteral is `None`.
type NoneLiteral struct {
	Range source.Range
}

// EllipsisLiteral is `...`.
type EllipsisLiteral struct {
	Range source.Range
}

// Tuple is a tuple display or an unparenthesized expression list.
type Tuple struct {
	Range         source.Range
	Elts          []Expr
	Ctx           ExprContext
	Parenthesized bool
}

// List is a `[...]` display.
type List struct {
	Range source.Range
	Elts  []Expr
	Ctx   ExprContext
}

// SetExpr is a `{a, b}` display.
type SetExpr struct {
	Range source.Range
	Elts  []Expr
}

// DictItem is one `key: value` or `**value` entry; Key is nil for the
// double-star form.
type DictItem struct {
	Key   Expr
	Value Expr
}

// Dict is a `{...}` display of keyed items.
type Dict struct {
	Range source.Range
	Items []DictItem
}

// Comprehension is one `for target in iter [if cond]*` clause.
type Comprehension struct {
	Range   source.Range
	Target  Expr
	Iter    Expr
	Ifs     []Expr
	IsAsync bool
}

func (n *Comprehension) NodeRange() source.Range { return n.Range }

// ListComp is `[elt for ...]`.
type ListComp struct {
	Range      source.Range
	Elt        Expr
	Generators []*Comprehension
}

// SetComp is `{elt for ...}`.
type SetComp struct {
	Range      source.Range
	Elt        Expr
	Generators []*Comprehension
}

// DictComp is `{key: value for ...}`.
type DictComp struct {
	Range      source.Range
	Key        Expr
	Value      Expr
	Generators []*Comprehension
}

// GeneratorExpr is `(elt for ...)`; Parenthesized is false when a
// sole-argument call supplied the parentheses.
type GeneratorExpr struct {
	Range         source.Range
	Elt           Expr
	Generators    []*Comprehension
	Parenthesized bool
}

// BoolOp is an `and`/`or` chain flattened into one node.
type BoolOp struct {
	Range  source.Range
	Op     BoolOpKind
	Values []Expr
}

// BinOp is a binary arithmetic or bitwise operation.
type BinOp struct {
	Range source.Range
	Left  Expr
	Op    Operator
	Right Expr
}

// UnaryExpr is a unary operation.
type UnaryExpr struct {
	Range   source.Range
	Op      UnaryOpKind
	Operand Expr
}

// Compare is a comparison chain flattened into one node: Left followed
// by parallel Ops and Comparators.
type Compare struct {
	Range       source.Range
	Left        Expr
	Ops         []CmpOp
	Comparators []Expr
}

// Keyword is a `name=value` or `**value` call argument; Arg is nil for
// the double-star form.
type Keyword struct {
	Range source.Range
	Arg   *Identifier
	Value Expr
}

func (n *Keyword) NodeRange() source.Range { return n.Range }

// Arguments is a parenthesized argument list, including the parens.
type Arguments struct {
	Range    source.Range
	Args     []Expr
	Keywords []*Keyword
}

func (n *Arguments) NodeRange() source.Range { return n.Range }

// IsEmpty reports whether the list has no arguments of either kind.
func (n *Arguments) IsEmpty() bool {
	return len(n.Args) == 0 && len(n.Keywords) == 0
}

// Call is `func(arguments)`.
type Call struct {
	Range source.Range
	Func  Expr
	Args  *Arguments
}

// Attribute is `value.attr`.
type Attribute struct {
	Range source.Range
	Value Expr
	Attr  *Identifier
	Ctx   ExprContext
}

// Subscript is `value[slice]`.
type Subscript struct {
	Range source.Range
	Value Expr
	Slice Expr
	Ctx   ExprContext
}

// SliceExpr is `lower:upper:step` inside a subscript; all three parts
// are optional.
type SliceExpr struct {
	Range source.Range
	Lower Expr
	Upper Expr
	Step  Expr
}

// Starred is `*value`.
type Starred struct {
	Range source.Range
	Value Expr
	Ctx   ExprContext
}

// Lambda is `lambda params: body`; Params is nil when empty.
type Lambda struct {
	Range  source.Range
	Params *Parameters
	Body   Expr
}

// IfExpr is the ternary `body if test else orelse`.
type IfExpr struct {
	Range  source.Range
	Test   Expr
	Body   Expr
	Orelse Expr
}

// Named is the walrus `target := value`.
type Named struct {
	Range  source.Range
	Target Expr
	Value  Expr
}

// Await is `await value`.
type Await struct {
	Range source.Range
	Value Expr
}

// Yield is `yield` with an optional value.
type Yield struct {
	Range source.Range
	Value Expr
}

// YieldFrom is `yield from value`.
type YieldFrom struct {
	Range source.Range
	Value Expr
}

// Invalid stands in for source text that could not be parsed; Text
// preserves the skipped characters.
type Invalid struct {
	Range source.Range
	Text  string
}

func (n *Name) NodeRange() source.Range            { return n.Range }
func (n *IntLiteral) NodeRange() source.Range      { return n.Range }
func (n *FloatLiteral) NodeRange() source.Range    { return n.Range }
func (n *ComplexLiteral) NodeRange() source.Range  { return n.Range }
func (n *StringLiteral) NodeRange() source.Range   { return n.Range }
func (n *BytesLiteral) NodeRange() source.Range    { return n.Range }
func (n *FString) NodeRange() source.Range         { return n.Range }
func (n *BooleanLiteral) NodeRange() source.Range  { return n.Range }
func (n *NoneLiteral) NodeRange() source.Range     { return n.Range }
func (n *EllipsisLiteral) NodeRange() source.Range { return n.Range }
func (n *Tuple) NodeRange() source.Range           { return n.Range }
func (n *List) NodeRange() source.Range            { return n.Range }
func (n *SetExpr) NodeRange() source.Range         { return n.Range }
func (n *Dict) NodeRange() source.Range            { return n.Range }
func (n *ListComp) NodeRange() source.Range        { return n.Range }
func (n *SetComp) NodeRange() source.Range         { return n.Range }
func (n *DictComp) NodeRange() source.Range        { return n.Range }
func (n *GeneratorExpr) NodeRange() source.Range   { return n.Range }
func (n *BoolOp) NodeRange() source.Range          { return n.Range }
func (n *BinOp) NodeRange() source.Range           { return n.Range }
func (n *UnaryExpr) NodeRange() source.Range       { return n.Range }
func (n *Compare) NodeRange() source.Range         { return n.Range }
func (n *Call) NodeRange() source.Range            { return n.Range }
func (n *Attribute) NodeRange() source.Range       { return n.Range }
func (n *Subscript) NodeRange() source.Range       { return n.Range }
func (n *SliceExpr) NodeRange() source.Range       { return n.Range }
func (n *Starred) NodeRange() source.Range         { return n.Range }
func (n *Lambda) NodeRange() source.Range          { return n.Range }
func (n *IfExpr) NodeRange() source.Range          { return n.Range }
func (n *Named) NodeRange() source.Range           { return n.Range }
func (n *Await) NodeRange() source.Range           { return n.Range }
func (n *Yield) NodeRange() source.Range           { return n.Range }
func (n *YieldFrom) NodeRange() source.Range       { return n.Range }
func (n *Invalid) NodeRange() source.Range         { return n.Range }

func (n *Name) exprNode()            {}
func (n *IntLiteral) exprNode()      {}
func (n *FloatLiteral) exprNode()    {}
func (n *ComplexLiteral) exprNode()  {}
func (n *StringLiteral) exprNode()   {}
func (n *BytesLiteral) exprNode()    {}
func (n *FString) exprNode()         {}
func (n *BooleanLiteral) exprNode()  {}
func (n *NoneLiteral) exprNode()     {}
func (n *EllipsisLiteral) exprNode() {}
func (n *Tuple) exprNode()           {}
func (n *List) exprNode()            {}
func (n *SetExpr) exprNode()         {}
func (n *Dict) exprNode()            {}
func (n *ListComp) exprNode()        {}
func (n *SetComp) exprNode()         {}
func (n *DictComp) exprNode()        {}
func (n *GeneratorExpr) exprNode()   {}
func (n *BoolOp) exprNode()          {}
func (n *BinOp) exprNode()           {}
func (n *UnaryExpr) exprNode()       {}
func (n *Compare) exprNode()         {}
func (n *Call) exprNode()            {}
func (n *Attribute) exprNode()       {}
func (n *Subscript) exprNode()       {}
func (n *SliceExpr) exprNode()       {}
func (n *Starred) exprNode()         {}
func (n *Lambda) exprNode()          {}
func (n *IfExpr) exprNode()          {}
func (n *Named) exprNode()           {}
func (n *Await) exprNode()           {}
func (n *Yield) exprNode()           {}
func (n *YieldFrom) exprNode()       {}
func (n *Invalid) exprNode()         {}

// ----------------------------------------------------------------------------
// Patterns

// MatchValue matches against the value of an expression (a literal or
// a dotted name).
type MatchValue struct {
	Range source.Range
	Value Expr
}

// MatchSingleton matches `None`, `True` or `False` by identity.
type MatchSingleton struct {
	Range source.Range
	Value Singleton
}

// MatchSequence matches a fixed or starred-variadic sequence.
type MatchSequence struct {
	Range    source.Range
	Patterns []Pattern
}

// MatchMapping matches mapping keys; Rest captures the remainder.
type MatchMapping struct {
	Range    source.Range
	Keys     []Expr
	Patterns []Pattern
	Rest     *Identifier
}

// MatchKeyword is one `name=pattern` argument of a class pattern.
type MatchKeyword struct {
	Range   source.Range
	Attr    *Identifier
	Pattern Pattern
}

func (n *MatchKeyword) NodeRange() source.Range { return n.Range }

// MatchClass matches an instance of Cls with positional and keyword
// sub-patterns.
type MatchClass struct {
	Range    source.Range
	Cls      Expr
	Patterns []Pattern
	Keywords []*MatchKeyword
}

// MatchStar is `*name` or `*_` inside a sequence pattern.
type MatchStar struct {
	Range source.Range
	Name  *Identifier
}

// MatchAs is a capture (`name`), wildcard (`_`), or `pattern as name`.
type MatchAs struct {
	Range   source.Range
	Pattern Pattern
	Name    *Identifier
}

// MatchOr is `p1 | p2 | ...`.
type MatchOr struct {
	Range    source.Range
	Patterns []Pattern
}

func (n *MatchValue) NodeRange() source.Range     { return n.Range }
func (n *MatchSingleton) NodeRange() source.Range { return n.Range }
func (n *MatchSequence) NodeRange() source.Range  { return n.Range }
func (n *MatchMapping) NodeRange() source.Range   { return n.Range }
func (n *MatchClass) NodeRange() source.Range     { return n.Range }
func (n *MatchStar) NodeRange() source.Range      { return n.Range }
func (n *MatchAs) NodeRange() source.Range        { return n.Range }
func (n *MatchOr) NodeRange() source.Range        { return n.Range }

func (n *MatchValue) patternNode()     {}
func (n *MatchSingleton) patternNode() {}
func (n *MatchSequence) patternNode()  {}
func (n *MatchMapping) patternNode()   {}
func (n *MatchClass) patternNode()     {}
func (n *MatchStar) patternNode()      {}
func (n *MatchAs) patternNode()        {}
func (n *MatchOr) patternNode()        {}
