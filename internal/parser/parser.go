// Package parser implements a tolerant recursive-descent parser for
// Python source. Statements are parsed by dedicated methods,
// expressions by an operator-precedence climber, and errors never
// abort the parse: the result is always a complete tree plus a
// position-ordered diagnostic list.
package parser

import (
	"fmt"
	"sort"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/lexer"
	"github.com/pythia-lang/pythia/internal/source"
	"github.com/pythia-lang/pythia/internal/token"
)

// Mode selects what the input represents.
type Mode uint8

const (
	// ModuleMode parses a complete source file.
	ModuleMode Mode = iota
	// ExpressionMode parses a single expression.
	ExpressionMode
	// InteractiveMode parses REPL input: escape commands and trailing
	// `?` help are allowed.
	InteractiveMode
)

// maxNestingDepth bounds parser recursion. Crossing it produces a
// diagnostic and an Invalid node instead of exhausting the stack.
const maxNestingDepth = 200

// ctxFlags records which syntactic context the parser is inside.
type ctxFlags uint8

const (
	ctxParenthesized ctxFlags = 1 << iota
	ctxArguments
	ctxForTarget
)

// Program is the result of a parse.
type Program struct {
	Mode   Mode
	Source string
	Syntax ast.Mod
	Errors []*ParseError
}

// Valid reports whether the parse produced no diagnostics.
func (p *Program) Valid() bool { return len(p.Errors) == 0 }

// Module returns the root as a module, or nil in expression mode.
func (p *Program) Module() *ast.Module {
	if m, ok := p.Syntax.(*ast.Module); ok {
		return m
	}
	return nil
}

// Parser holds the cursor and recovery state for one parse.
type Parser struct {
	src    string
	tokens *lexer.TokenSource
	mode   Mode

	errors []*ParseError

	ctx      ctxFlags
	ctxStack []ctxFlags
	lastCtx  ctxFlags

	// End offset of the last consumed token that can end a node;
	// Newline, Semi and Dedent are bookkeeping and excluded.
	lastTokenEnd int

	// Range of tokens skipped by recovery, spliced into the enclosing
	// statement list as an Invalid expression statement.
	deferredInvalid *source.Range

	depth int
}

// Parse runs a full parse of src in the given mode.
func Parse(src string, mode Mode) *Program {
	ts := lexer.NewTokenSource(src, mode == InteractiveMode)
	p := &Parser{src: src, tokens: ts, mode: mode}

	var root ast.Mod
	if mode == ExpressionMode {
		root = p.parseExpressionMode()
	} else {
		root = p.parseModuleMode()
	}
	p.finish()

	return &Program{
		Mode:   mode,
		Source: src,
		Syntax: root,
		Errors: mergeErrors(p.errors, ts.Errors()),
	}
}

// ParseModule parses a source file.
func ParseModule(src string) *Program { return Parse(src, ModuleMode) }

// ParseExpression parses a single expression.
func ParseExpression(src string) *Program { return Parse(src, ExpressionMode) }

// ParseInteractive parses REPL input.
func ParseInteractive(src string) *Program { return Parse(src, InteractiveMode) }

func (p *Parser) parseModuleMode() *ast.Module {
	body := p.parseStatements(token.Set{})
	if !p.at(token.EOF) {
		r := source.NewRange(p.nodeStart(), len(p.src))
		p.addErrorAt(ErrExpectedStatement, r, "unexpected tokens after module body")
		p.skipUntil(token.NewSet(token.EOF))
	}
	return &ast.Module{Range: source.NewRange(0, len(p.src)), Body: body}
}

func (p *Parser) parseExpressionMode() *ast.Expression {
	start := p.nodeStart()
	parsed := p.parseExprList(false)
	// Only trailing trivia may follow.
	for p.eat(token.Newline) {
	}
	if !p.at(token.EOF) {
		p.addError(ErrExpectedToken, "unexpected tokens after expression")
		p.skipUntil(token.NewSet(token.EOF))
	}
	return &ast.Expression{Range: p.nodeRange(start), Body: parsed.expr}
}

// finish checks the parser's internal invariants once the parse is
// complete.
func (p *Parser) finish() {
	if len(p.ctxStack) != 0 || p.ctx != 0 {
		panic(fmt.Sprintf("parser context not empty at end of parse: %08b (stack %d)", p.ctx, len(p.ctxStack)))
	}
	if !p.tokens.Exhausted() {
		panic("token stream not exhausted at end of parse")
	}
}

// ----------------------------------------------------------------------------
// Cursor

func (p *Parser) current() token.Token      { return p.tokens.Current() }
func (p *Parser) currentKind() token.Kind   { return p.tokens.Current().Kind }
func (p *Parser) currentRange() source.Range { return p.tokens.Current().Range }

// peekNth looks n tokens past the current one.
func (p *Parser) peekNth(n int) token.Token { return p.tokens.PeekNth(n) }
func (p *Parser) peek() token.Token         { return p.tokens.PeekNth(1) }

// nodeStart is the offset where a node beginning at the current token
// starts.
func (p *Parser) nodeStart() int { return p.current().Range.Start }

// nodeRange closes a node opened at start. Trailing Newline, Semi and
// Dedent tokens never extend a node, so the end is the last meaningful
// token end.
func (p *Parser) nodeRange(start int) source.Range {
	if p.lastTokenEnd <= start {
		return source.EmptyRange(start)
	}
	return source.NewRange(start, p.lastTokenEnd)
}

// advance consumes the current token.
func (p *Parser) advance() token.Token {
	t := p.tokens.Bump()
	switch t.Kind {
	case token.Newline, token.Semi, token.Dedent, token.EOF:
		// excluded from node ranges
	default:
		p.lastTokenEnd = t.Range.End
	}
	return t
}

// bump consumes the current token, asserting its kind.
func (p *Parser) bump(kind token.Kind) token.Token {
	if p.currentKind() != kind {
		panic(fmt.Sprintf("bump: expected %s, at %s", kind, p.current()))
	}
	return p.advance()
}

func (p *Parser) at(kind token.Kind) bool { return p.currentKind() == kind }

func (p *Parser) atSet(set token.Set) bool { return set.Contains(p.currentKind()) }

// eat consumes the current token if it has the given kind.
func (p *Parser) eat(kind token.Kind) bool {
	if p.at(kind) {
		p.advance()
		return true
	}
	return false
}

// expect eats the expected kind or records a diagnostic at the current
// token without consuming it.
func (p *Parser) expect(kind token.Kind) bool {
	if p.eat(kind) {
		return true
	}
	p.addError(ErrExpectedToken, "%s", expectedTokenMsg(kind, p.current()))
	return false
}

// expectAndRecover is expect with token-level recovery: on a mismatch
// it skips forward to the recovery set (always extended with the
// expected kind, Newline and EOF) and records the skipped text as a
// deferred Invalid node for the enclosing statement list.
func (p *Parser) expectAndRecover(kind token.Kind, recovery token.Set) bool {
	if p.eat(kind) {
		return true
	}
	p.addError(ErrExpectedToken, "%s", expectedTokenMsg(kind, p.current()))

	stop := recovery.Add(kind, token.Newline, token.EOF)
	skipped := p.skipUntil(stop)
	if !skipped.IsEmpty() {
		p.deferInvalidNode(skipped)
	}
	return p.eat(kind)
}

// skipUntil advances past tokens not in the stop set and returns the
// range covered by the skipped tokens.
func (p *Parser) skipUntil(stop token.Set) source.Range {
	start := p.nodeStart()
	skipped := source.EmptyRange(start)
	for !p.at(token.EOF) && !p.atSet(stop) {
		t := p.advance()
		skipped = skipped.Cover(t.Range)
	}
	return skipped
}

// deferInvalidNode records a range of skipped tokens; the statement
// loop turns it into an Invalid expression statement so that no source
// text silently disappears from the tree.
func (p *Parser) deferInvalidNode(r source.Range) {
	if p.deferredInvalid == nil {
		p.deferredInvalid = &r
	} else {
		merged := p.deferredInvalid.Cover(r)
		p.deferredInvalid = &merged
	}
}

func (p *Parser) takeDeferredInvalid() ast.Stmt {
	if p.deferredInvalid == nil {
		return nil
	}
	r := *p.deferredInvalid
	p.deferredInvalid = nil
	return &ast.ExprStmt{Range: r, Value: &ast.Invalid{Range: r, Text: p.text(r)}}
}

func (p *Parser) text(r source.Range) string {
	if r.Start < 0 || r.End > len(p.src) || r.Start >= r.End {
		return ""
	}
	return p.src[r.Start:r.End]
}

// ----------------------------------------------------------------------------
// Context flags

// enterCtx installs flags for the duration of a nested construct; the
// matching leaveCtx restores the previous flags and asserts balance.
func (p *Parser) enterCtx(flags ctxFlags) {
	p.ctxStack = append(p.ctxStack, p.ctx)
	p.ctx |= flags
}

func (p *Parser) leaveCtx(flags ctxFlags) {
	if p.ctx&flags != flags {
		panic(fmt.Sprintf("leaveCtx: flags %08b not set in %08b", flags, p.ctx))
	}
	p.lastCtx = p.ctx
	p.ctx = p.ctxStack[len(p.ctxStack)-1]
	p.ctxStack = p.ctxStack[:len(p.ctxStack)-1]
}

// replaceCtx swaps the entire flag set for a construct that resets
// context, such as an expression nested in fresh parentheses.
func (p *Parser) replaceCtx(flags ctxFlags) {
	p.ctxStack = append(p.ctxStack, p.ctx)
	p.ctx = flags
}

func (p *Parser) hasCtx(flags ctxFlags) bool { return p.ctx&flags == flags }

// ----------------------------------------------------------------------------
// Recursion depth guard

func (p *Parser) enterDepth() bool {
	p.depth++
	if p.depth > maxNestingDepth {
		p.addError(ErrTooDeeplyNested, "expression is too deeply nested")
		return false
	}
	return true
}

func (p *Parser) leaveDepth() { p.depth-- }

// ----------------------------------------------------------------------------
// Error merging

// mergeErrors interleaves syntax and lexical diagnostics into one list
// ordered by ascending start offset. At equal offsets the syntax
// diagnostic comes first.
func mergeErrors(parseErrors []*ParseError, lexErrors []*lexer.Error) []*ParseError {
	sorted := make([]*ParseError, len(parseErrors))
	copy(sorted, parseErrors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Range.Start < sorted[j].Range.Start
	})

	merged := make([]*ParseError, 0, len(sorted)+len(lexErrors))
	li := 0
	for _, pe := range sorted {
		for li < len(lexErrors) && lexErrors[li].Range.Start < pe.Range.Start {
			merged = append(merged, &ParseError{
				Kind:  ErrLexical,
				Msg:   lexErrors[li].Msg,
				Range: lexErrors[li].Range,
			})
			li++
		}
		merged = append(merged, pe)
	}
	for ; li < len(lexErrors); li++ {
		merged = append(merged, &ParseError{
			Kind:  ErrLexical,
			Msg:   lexErrors[li].Msg,
			Range: lexErrors[li].Range,
		})
	}
	return merged
}
