package parser

import (
	"strings"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/pylit"
	"github.com/pythia-lang/pythia/internal/source"
	"github.com/pythia-lang/pythia/internal/token"
)

// parsedExpr pairs an expression with whether its outermost form was
// written in parentheses. Several statement rules change behavior on
// that distinction (annotations, with items, named expressions).
type parsedExpr struct {
	expr          ast.Expr
	parenthesized bool
}

func (pe parsedExpr) rng() source.Range { return pe.expr.NodeRange() }

func (p *Parser) invalidHere() parsedExpr {
	return parsedExpr{expr: &ast.Invalid{Range: source.EmptyRange(p.nodeStart())}}
}

// ----------------------------------------------------------------------------
// Expression lists and the precedence ladder

// parseExprList parses `expr (',' expr)*`, producing a Tuple when a
// comma appears. allowStar permits `*expr` elements.
func (p *Parser) parseExprList(allowStar bool) parsedExpr {
	start := p.nodeStart()
	first := p.parseStarOrExpr(allowStar)
	if !p.at(token.Comma) {
		return first
	}
	elts := []ast.Expr{first.expr}
	for p.eat(token.Comma) {
		if !p.atExprStart(allowStar) {
			break
		}
		elts = append(elts, p.parseStarOrExpr(allowStar).expr)
	}
	return parsedExpr{expr: &ast.Tuple{
		Range: p.nodeRange(start),
		Elts:  elts,
		Ctx:   ast.Load,
	}}
}

func (p *Parser) atExprStart(allowStar bool) bool {
	if p.atSet(expressionFirstSet) {
		return true
	}
	return allowStar && p.at(token.Star)
}

func (p *Parser) parseStarOrExpr(allowStar bool) parsedExpr {
	if p.at(token.Star) {
		starred := p.parseStarredExpr()
		if !allowStar {
			p.addErrorAt(ErrStarredExpressionUsage, starred.rng(),
				"starred expression is not allowed here")
		}
		return starred
	}
	return p.parseExpr()
}

func (p *Parser) parseStarredExpr() parsedExpr {
	start := p.nodeStart()
	p.bump(token.Star)
	value := p.parseSimpleExpr(bpBitOr)
	return parsedExpr{expr: &ast.Starred{
		Range: p.nodeRange(start),
		Value: value.expr,
		Ctx:   ast.Load,
	}}
}

// parseNamedExprOrHigher additionally accepts the walrus form, which
// is only legal in parenthesized positions, conditions, and arguments.
func (p *Parser) parseNamedExprOrHigher() parsedExpr {
	parsed := p.parseExpr()
	if !p.at(token.ColonEqual) {
		return parsed
	}
	return p.parseNamedExprRest(parsed)
}

func (p *Parser) parseNamedExprRest(target parsedExpr) parsedExpr {
	start := target.rng().Start
	p.bump(token.ColonEqual)
	if _, ok := target.expr.(*ast.Name); !ok {
		p.addErrorAt(ErrInvalidNamedTarget, target.rng(),
			"assignment expression target must be a name, not %s", targetKindName(target.expr))
	}
	setExprCtx(target.expr, ast.Store)
	value := p.parseExpr()
	return parsedExpr{expr: &ast.Named{
		Range:  p.nodeRange(start),
		Target: target.expr,
		Value:  value.expr,
	}}
}

// parseExpr parses a conditional expression or anything binding
// tighter. No commas, no walrus.
func (p *Parser) parseExpr() parsedExpr {
	start := p.nodeStart()
	body := p.parseSimpleExpr(1)
	if !p.at(token.KwIf) {
		return body
	}
	return p.parseTernary(body, start)
}

func (p *Parser) parseTernary(body parsedExpr, start int) parsedExpr {
	p.bump(token.KwIf)
	test := p.parseSimpleExpr(1)
	p.expect(token.KwElse)
	orelse := p.parseExpr()
	return parsedExpr{expr: &ast.IfExpr{
		Range:  p.nodeRange(start),
		Test:   test.expr,
		Body:   body.expr,
		Orelse: orelse.expr,
	}}
}

// parseSimpleExpr is the precedence climber: it parses a prefix
// expression and folds infix operators with binding power at least
// minBp. Boolean chains and comparison chains flatten into single
// nodes instead of nesting.
func (p *Parser) parseSimpleExpr(minBp uint8) parsedExpr {
	if !p.enterDepth() {
		p.leaveDepth()
		return p.invalidHere()
	}
	defer p.leaveDepth()

	start := p.nodeStart()
	lhs := p.parseLhsExpr()

	for {
		kind := p.currentKind()
		if kind == token.KwIn && p.hasCtx(ctxForTarget) {
			// the `in` belongs to the enclosing for clause
			break
		}
		bp, rightAssoc, ok := binaryBindingPower(kind)
		if !ok || bp < minBp {
			break
		}
		switch {
		case bp == bpComparison:
			lhs = p.parseComparisonChain(lhs, start)
		case kind == token.KwOr || kind == token.KwAnd:
			lhs = p.parseBoolChain(lhs, start, kind, bp)
		default:
			op, _ := tokenToOperator(kind)
			p.advance()
			next := bp + 1
			if rightAssoc {
				next = bp
			}
			rhs := p.parseSimpleExpr(next)
			lhs = parsedExpr{expr: &ast.BinOp{
				Range: p.nodeRange(start),
				Left:  lhs.expr,
				Op:    op,
				Right: rhs.expr,
			}}
		}
	}
	return lhs
}

// parseComparisonChain folds `a < b <= c ...` into one Compare node
// with parallel operator and comparator lists.
func (p *Parser) parseComparisonChain(lhs parsedExpr, start int) parsedExpr {
	var ops []ast.CmpOp
	var comparators []ast.Expr
	for p.atSet(comparisonOpSet) {
		if p.at(token.KwIn) && p.hasCtx(ctxForTarget) {
			break
		}
		op := p.parseCmpOp()
		rhs := p.parseSimpleExpr(bpComparison + 1)
		ops = append(ops, op)
		comparators = append(comparators, rhs.expr)
	}
	if len(ops) == 0 {
		return lhs
	}
	return parsedExpr{expr: &ast.Compare{
		Range:       p.nodeRange(start),
		Left:        lhs.expr,
		Ops:         ops,
		Comparators: comparators,
	}}
}

// parseCmpOp consumes one comparison operator, including the
// two-token `is not` and `not in` forms.
func (p *Parser) parseCmpOp() ast.CmpOp {
	switch p.currentKind() {
	case token.Less:
		p.advance()
		return ast.CmpLt
	case token.Greater:
		p.advance()
		return ast.CmpGt
	case token.LessEqual:
		p.advance()
		return ast.CmpLtE
	case token.GreaterEqual:
		p.advance()
		return ast.CmpGtE
	case token.EqEqual:
		p.advance()
		return ast.CmpEq
	case token.NotEqual:
		p.advance()
		return ast.CmpNotEq
	case token.KwIn:
		p.advance()
		return ast.CmpIn
	case token.KwIs:
		p.advance()
		if p.eat(token.KwNot) {
			return ast.CmpIsNot
		}
		return ast.CmpIs
	case token.KwNot:
		p.advance()
		p.expect(token.KwIn)
		return ast.CmpNotIn
	}
	panic("parseCmpOp: not at a comparison operator")
}

// parseBoolChain folds `a and b and c` into one BoolOp node.
func (p *Parser) parseBoolChain(lhs parsedExpr, start int, kind token.Kind, bp uint8) parsedExpr {
	op := ast.BoolOr
	if kind == token.KwAnd {
		op = ast.BoolAnd
	}
	values := []ast.Expr{lhs.expr}
	for p.at(kind) {
		p.advance()
		rhs := p.parseSimpleExpr(bp + 1)
		values = append(values, rhs.expr)
	}
	return parsedExpr{expr: &ast.BoolOp{
		Range:  p.nodeRange(start),
		Op:     op,
		Values: values,
	}}
}

// parseLhsExpr parses a prefix expression: unary operators, await,
// lambda, yield, starred, or an atom with its postfix operators.
func (p *Parser) parseLhsExpr() parsedExpr {
	start := p.nodeStart()
	switch p.currentKind() {
	case token.Plus, token.Minus, token.Tilde:
		var op ast.UnaryOpKind
		switch p.currentKind() {
		case token.Plus:
			op = ast.UnaryPlus
		case token.Minus:
			op = ast.UnaryMinus
		default:
			op = ast.UnaryInvert
		}
		p.advance()
		operand := p.parseSimpleExpr(bpUnary)
		return parsedExpr{expr: &ast.UnaryExpr{
			Range:   p.nodeRange(start),
			Op:      op,
			Operand: operand.expr,
		}}
	case token.KwNot:
		p.advance()
		operand := p.parseSimpleExpr(bpNot)
		return parsedExpr{expr: &ast.UnaryExpr{
			Range:   p.nodeRange(start),
			Op:      ast.UnaryNot,
			Operand: operand.expr,
		}}
	case token.KwAwait:
		p.advance()
		value := p.parseSimpleExpr(bpAwait)
		return parsedExpr{expr: &ast.Await{
			Range: p.nodeRange(start),
			Value: value.expr,
		}}
	case token.KwLambda:
		return p.parseLambda()
	case token.KwYield:
		return p.parseYieldExpr()
	case token.Star:
		return p.parseStarredExpr()
	default:
		lhs := p.parseAtom()
		return p.parsePostfix(lhs, start)
	}
}

// parseAtom parses a primary expression. On a token that cannot start
// one it records a diagnostic and returns an Invalid node without
// consuming, leaving recovery to the caller.
func (p *Parser) parseAtom() parsedExpr {
	start := p.nodeStart()
	tok := p.current()
	switch tok.Kind {
	case token.Name:
		p.advance()
		return parsedExpr{expr: &ast.Name{Range: tok.Range, ID: tok.Lit, Ctx: ast.Load}}
	case token.KwMatch, token.KwCase, token.KwType:
		// soft keyword in expression position
		p.advance()
		return parsedExpr{expr: &ast.Name{Range: tok.Range, ID: p.text(tok.Range), Ctx: ast.Load}}
	case token.Int:
		p.advance()
		return parsedExpr{expr: &ast.IntLiteral{Range: tok.Range, Value: pylit.NormalizeInt(tok.Lit)}}
	case token.Float:
		p.advance()
		value, err := pylit.ParseFloat(tok.Lit)
		if err != nil {
			p.addErrorAt(ErrOtherError, tok.Range, "invalid float literal")
		}
		return parsedExpr{expr: &ast.FloatLiteral{Range: tok.Range, Value: value}}
	case token.Complex:
		p.advance()
		imag, err := pylit.ParseImaginary(tok.Lit)
		if err != nil {
			p.addErrorAt(ErrOtherError, tok.Range, "invalid imaginary literal")
		}
		return parsedExpr{expr: &ast.ComplexLiteral{Range: tok.Range, Imag: imag}}
	case token.String, token.FStringStart:
		return p.parseStringGroup()
	case token.KwTrue:
		p.advance()
		return parsedExpr{expr: &ast.BooleanLiteral{Range: tok.Range, Value: true}}
	case token.KwFalse:
		p.advance()
		return parsedExpr{expr: &ast.BooleanLiteral{Range: tok.Range}}
	case token.KwNone:
		p.advance()
		return parsedExpr{expr: &ast.NoneLiteral{Range: tok.Range}}
	case token.Ellipsis:
		p.advance()
		return parsedExpr{expr: &ast.EllipsisLiteral{Range: tok.Range}}
	case token.Lpar:
		return p.parseParenExpr()
	case token.Lsqb:
		return p.parseListExpr()
	case token.Lbrace:
		return p.parseBraceExpr()
	default:
		p.addError(ErrExpectedExpression, "expected an expression, found %s", tok.Kind)
		return parsedExpr{expr: &ast.Invalid{Range: source.EmptyRange(start)}}
	}
}

// parsePostfix folds call, subscript and attribute suffixes.
func (p *Parser) parsePostfix(lhs parsedExpr, start int) parsedExpr {
	for {
		switch p.currentKind() {
		case token.Lpar:
			args := p.parseCallArguments()
			lhs = parsedExpr{expr: &ast.Call{
				Range: p.nodeRange(start),
				Func:  lhs.expr,
				Args:  args,
			}}
		case token.Lsqb:
			lhs = parsedExpr{expr: p.parseSubscript(lhs.expr, start)}
		case token.Dot:
			p.advance()
			attr := p.parseIdentifier()
			lhs = parsedExpr{expr: &ast.Attribute{
				Range: p.nodeRange(start),
				Value: lhs.expr,
				Attr:  attr,
				Ctx:   ast.Load,
			}}
		default:
			return lhs
		}
	}
}

// parseIdentifier consumes a name (soft keywords allowed) or records a
// diagnostic and returns an empty identifier at the current position.
func (p *Parser) parseIdentifier() *ast.Identifier {
	tok := p.current()
	if tok.Kind == token.Name {
		p.advance()
		return &ast.Identifier{Range: tok.Range, Name: tok.Lit}
	}
	if tok.Kind.IsSoftKeyword() {
		p.advance()
		return &ast.Identifier{Range: tok.Range, Name: p.text(tok.Range)}
	}
	p.addError(ErrExpectedToken, "%s", expectedTokenMsg(token.Name, tok))
	return &ast.Identifier{Range: source.EmptyRange(tok.Range.Start)}
}

// ----------------------------------------------------------------------------
// Calls and subscripts

// parseCallArguments parses a parenthesized argument list, validating
// argument order and duplicate keywords.
func (p *Parser) parseCallArguments() *ast.Arguments {
	start := p.nodeStart()
	p.bump(token.Lpar)
	p.replaceCtx(ctxParenthesized | ctxArguments)
	defer p.leaveCtx(ctxParenthesized | ctxArguments)

	var args []ast.Expr
	var keywords []*ast.Keyword
	seenKeyword := false
	seenNames := map[string]bool{}

	p.parseSeparated(func() {
		switch {
		case p.at(token.DoubleStar):
			kwStart := p.nodeStart()
			p.advance()
			value := p.parseExpr()
			keywords = append(keywords, &ast.Keyword{
				Range: p.nodeRange(kwStart),
				Value: value.expr,
			})
			seenKeyword = true
		case p.at(token.Star):
			starred := p.parseStarredExpr()
			if seenKeyword {
				p.addErrorAt(ErrUnpackedArgumentError, starred.rng(),
					"iterable argument unpacking follows keyword argument unpacking")
			}
			args = append(args, starred.expr)
		case (p.at(token.Name) || p.currentKind().IsSoftKeyword()) && p.peek().Kind == token.Equal:
			kwStart := p.nodeStart()
			id := p.parseIdentifier()
			p.bump(token.Equal)
			value := p.parseExpr()
			if seenNames[id.Name] {
				p.addErrorAt(ErrDuplicateKeywordArgument, id.Range,
					"duplicate keyword argument %q", id.Name)
			}
			seenNames[id.Name] = true
			keywords = append(keywords, &ast.Keyword{
				Range: p.nodeRange(kwStart),
				Arg:   id,
				Value: value.expr,
			})
			seenKeyword = true
		default:
			argStart := p.nodeStart()
			arg := p.parseNamedExprOrHigher()
			if p.at(token.KwFor) || (p.at(token.KwAsync) && p.peek().Kind == token.KwFor) {
				// sole-argument generator: f(x for x in xs)
				gens := p.parseComprehensions()
				arg = parsedExpr{expr: &ast.GeneratorExpr{
					Range:      p.nodeRange(argStart),
					Elt:        arg.expr,
					Generators: gens,
				}}
			}
			if seenKeyword {
				p.addErrorAt(ErrPositionalAfterKeywordArgument, arg.rng(),
					"positional argument follows keyword argument")
			}
			args = append(args, arg.expr)
		}
	}, token.Comma, token.NewSet(token.Rpar), true)

	p.expectAndRecover(token.Rpar, token.NewSet(token.Colon))
	return &ast.Arguments{Range: p.nodeRange(start), Args: args, Keywords: keywords}
}

// parseSubscript parses `value[...]` with full slice syntax.
func (p *Parser) parseSubscript(value ast.Expr, start int) ast.Expr {
	p.bump(token.Lsqb)
	p.replaceCtx(ctxParenthesized)
	defer p.leaveCtx(ctxParenthesized)

	if p.at(token.Rsqb) {
		p.addError(ErrEmptySubscript, "expected index or slice expression")
		slice := &ast.Invalid{Range: source.EmptyRange(p.nodeStart())}
		p.advance()
		return &ast.Subscript{Range: p.nodeRange(start), Value: value, Slice: slice, Ctx: ast.Load}
	}

	sliceStart := p.nodeStart()
	first := p.parseSliceElement()
	slice := first
	if p.at(token.Comma) {
		elts := []ast.Expr{first}
		for p.eat(token.Comma) {
			if p.at(token.Rsqb) {
				break
			}
			elts = append(elts, p.parseSliceElement())
		}
		slice = &ast.Tuple{Range: p.nodeRange(sliceStart), Elts: elts, Ctx: ast.Load}
	}
	p.expectAndRecover(token.Rsqb, token.NewSet(token.Colon))
	return &ast.Subscript{Range: p.nodeRange(start), Value: value, Slice: slice, Ctx: ast.Load}
}

func (p *Parser) parseSliceElement() ast.Expr {
	if p.at(token.Star) {
		return p.parseStarredExpr().expr
	}
	return p.parseSlice()
}

// parseSlice parses one subscript element: a plain index or a
// `lower:upper:step` slice with every part optional.
func (p *Parser) parseSlice() ast.Expr {
	start := p.nodeStart()
	var lower ast.Expr
	if !p.at(token.Colon) {
		pe := p.parseNamedExprOrHigher()
		if !p.at(token.Colon) {
			return pe.expr
		}
		lower = pe.expr
	}
	p.bump(token.Colon)
	var upper, step ast.Expr
	if !p.atSet(sliceUpperEndSet) {
		upper = p.parseExpr().expr
	}
	if p.eat(token.Colon) {
		if !p.atSet(sliceStepEndSet) {
			step = p.parseExpr().expr
		}
	}
	return &ast.SliceExpr{Range: p.nodeRange(start), Lower: lower, Upper: upper, Step: step}
}

// ----------------------------------------------------------------------------
// Parenthesized forms, displays, comprehensions

func (p *Parser) parseParenExpr() parsedExpr {
	start := p.nodeStart()
	p.bump(token.Lpar)
	p.replaceCtx(ctxParenthesized)
	defer p.leaveCtx(ctxParenthesized)

	if p.eat(token.Rpar) {
		return parsedExpr{
			expr:          &ast.Tuple{Range: p.nodeRange(start), Ctx: ast.Load, Parenthesized: true},
			parenthesized: true,
		}
	}
	if p.at(token.KwYield) {
		y := p.parseYieldExpr()
		p.expectAndRecover(token.Rpar, token.NewSet(token.Colon))
		return parsedExpr{expr: y.expr, parenthesized: true}
	}

	var first parsedExpr
	if p.at(token.Star) {
		first = p.parseStarredExpr()
	} else {
		first = p.parseNamedExprOrHigher()
	}

	switch {
	case p.at(token.KwFor) || (p.at(token.KwAsync) && p.peek().Kind == token.KwFor):
		if _, ok := first.expr.(*ast.Starred); ok {
			p.addErrorAt(ErrIterableUnpackingInComprehension, first.rng(),
				"iterable unpacking cannot be used in a comprehension")
		}
		gens := p.parseComprehensions()
		p.expectAndRecover(token.Rpar, token.NewSet(token.Colon))
		return parsedExpr{
			expr: &ast.GeneratorExpr{
				Range:         p.nodeRange(start),
				Elt:           first.expr,
				Generators:    gens,
				Parenthesized: true,
			},
			parenthesized: true,
		}
	case p.at(token.Comma):
		elts := []ast.Expr{first.expr}
		for p.eat(token.Comma) {
			if p.at(token.Rpar) {
				break
			}
			if p.at(token.Star) {
				elts = append(elts, p.parseStarredExpr().expr)
			} else {
				elts = append(elts, p.parseNamedExprOrHigher().expr)
			}
		}
		p.expectAndRecover(token.Rpar, token.NewSet(token.Colon))
		return parsedExpr{
			expr: &ast.Tuple{
				Range:         p.nodeRange(start),
				Elts:          elts,
				Ctx:           ast.Load,
				Parenthesized: true,
			},
			parenthesized: true,
		}
	default:
		if _, ok := first.expr.(*ast.Starred); ok {
			p.addErrorAt(ErrStarredExpressionUsage, first.rng(),
				"starred expression cannot be used here")
		}
		p.expectAndRecover(token.Rpar, token.NewSet(token.Colon))
		return parsedExpr{expr: first.expr, parenthesized: true}
	}
}

func (p *Parser) parseListExpr() parsedExpr {
	start := p.nodeStart()
	p.bump(token.Lsqb)
	p.replaceCtx(ctxParenthesized)
	defer p.leaveCtx(ctxParenthesized)

	if p.eat(token.Rsqb) {
		return parsedExpr{expr: &ast.List{Range: p.nodeRange(start), Ctx: ast.Load}}
	}

	var first parsedExpr
	if p.at(token.Star) {
		first = p.parseStarredExpr()
	} else {
		first = p.parseNamedExprOrHigher()
	}

	if p.at(token.KwFor) || (p.at(token.KwAsync) && p.peek().Kind == token.KwFor) {
		if _, ok := first.expr.(*ast.Starred); ok {
			p.addErrorAt(ErrIterableUnpackingInComprehension, first.rng(),
				"iterable unpacking cannot be used in a comprehension")
		}
		gens := p.parseComprehensions()
		p.expectAndRecover(token.Rsqb, token.NewSet(token.Colon))
		return parsedExpr{expr: &ast.ListComp{
			Range:      p.nodeRange(start),
			Elt:        first.expr,
			Generators: gens,
		}}
	}

	elts := []ast.Expr{first.expr}
	if p.eat(token.Comma) {
		p.parseSeparated(func() {
			if p.at(token.Star) {
				elts = append(elts, p.parseStarredExpr().expr)
			} else {
				elts = append(elts, p.parseNamedExprOrHigher().expr)
			}
		}, token.Comma, token.NewSet(token.Rsqb), true)
	}
	p.expectAndRecover(token.Rsqb, token.NewSet(token.Colon))
	return parsedExpr{expr: &ast.List{Range: p.nodeRange(start), Elts: elts, Ctx: ast.Load}}
}

func (p *Parser) parseBraceExpr() parsedExpr {
	start := p.nodeStart()
	p.bump(token.Lbrace)
	p.replaceCtx(ctxParenthesized)
	defer p.leaveCtx(ctxParenthesized)

	if p.eat(token.Rbrace) {
		return parsedExpr{expr: &ast.Dict{Range: p.nodeRange(start)}}
	}

	if p.at(token.DoubleStar) {
		return parsedExpr{expr: p.parseDictRest(start, nil, nil)}
	}

	var first parsedExpr
	if p.at(token.Star) {
		first = p.parseStarredExpr()
	} else {
		first = p.parseNamedExprOrHigher()
	}

	if p.at(token.Colon) {
		p.bump(token.Colon)
		value := p.parseExpr()
		if p.at(token.KwFor) || (p.at(token.KwAsync) && p.peek().Kind == token.KwFor) {
			gens := p.parseComprehensions()
			p.expectAndRecover(token.Rbrace, token.NewSet(token.Colon))
			return parsedExpr{expr: &ast.DictComp{
				Range:      p.nodeRange(start),
				Key:        first.expr,
				Value:      value.expr,
				Generators: gens,
			}}
		}
		return parsedExpr{expr: p.parseDictRest(start, first.expr, value.expr)}
	}

	if p.at(token.KwFor) || (p.at(token.KwAsync) && p.peek().Kind == token.KwFor) {
		if _, ok := first.expr.(*ast.Starred); ok {
			p.addErrorAt(ErrIterableUnpackingInComprehension, first.rng(),
				"iterable unpacking cannot be used in a comprehension")
		}
		gens := p.parseComprehensions()
		p.expectAndRecover(token.Rbrace, token.NewSet(token.Colon))
		return parsedExpr{expr: &ast.SetComp{
			Range:      p.nodeRange(start),
			Elt:        first.expr,
			Generators: gens,
		}}
	}

	// set display
	elts := []ast.Expr{first.expr}
	if p.eat(token.Comma) {
		p.parseSeparated(func() {
			if p.at(token.Star) {
				elts = append(elts, p.parseStarredExpr().expr)
			} else {
				elts = append(elts, p.parseNamedExprOrHigher().expr)
			}
		}, token.Comma, token.NewSet(token.Rbrace), true)
	}
	p.expectAndRecover(token.Rbrace, token.NewSet(token.Colon))
	return parsedExpr{expr: &ast.SetExpr{Range: p.nodeRange(start), Elts: elts}}
}

// parseDictRest finishes a dict display after its first entry (or from
// the start when the display opens with `**`).
func (p *Parser) parseDictRest(start int, firstKey, firstValue ast.Expr) ast.Expr {
	var items []ast.DictItem
	if firstValue != nil {
		items = append(items, ast.DictItem{Key: firstKey, Value: firstValue})
		if !p.eat(token.Comma) {
			p.expectAndRecover(token.Rbrace, token.NewSet(token.Colon))
			return &ast.Dict{Range: p.nodeRange(start), Items: items}
		}
	}
	p.parseSeparated(func() {
		if p.at(token.DoubleStar) {
			p.advance()
			value := p.parseSimpleExpr(bpBitOr)
			items = append(items, ast.DictItem{Value: value.expr})
			return
		}
		key := p.parseExpr()
		p.expect(token.Colon)
		value := p.parseExpr()
		items = append(items, ast.DictItem{Key: key.expr, Value: value.expr})
	}, token.Comma, token.NewSet(token.Rbrace), true)
	p.expectAndRecover(token.Rbrace, token.NewSet(token.Colon))
	return &ast.Dict{Range: p.nodeRange(start), Items: items}
}

// parseComprehensions parses one or more `for ... in ... [if ...]*`
// clauses.
func (p *Parser) parseComprehensions() []*ast.Comprehension {
	var gens []*ast.Comprehension
	for {
		start := p.nodeStart()
		isAsync := false
		if p.at(token.KwAsync) && p.peek().Kind == token.KwFor {
			p.advance()
			isAsync = true
		}
		if !p.at(token.KwFor) {
			break
		}
		p.bump(token.KwFor)

		p.enterCtx(ctxForTarget)
		target := p.parseExprList(true)
		p.leaveCtx(ctxForTarget)
		setExprCtx(target.expr, ast.Store)
		if !isValidAssignTarget(target.expr) {
			p.addErrorAt(ErrInvalidForTarget, target.rng(),
				"invalid comprehension target: %s", targetKindName(target.expr))
		}

		p.expect(token.KwIn)
		iter := p.parseSimpleExpr(1)
		var ifs []ast.Expr
		for p.eat(token.KwIf) {
			ifs = append(ifs, p.parseSimpleExpr(1).expr)
		}
		gens = append(gens, &ast.Comprehension{
			Range:   p.nodeRange(start),
			Target:  target.expr,
			Iter:    iter.expr,
			Ifs:     ifs,
			IsAsync: isAsync,
		})
		if !p.at(token.KwFor) && !(p.at(token.KwAsync) && p.peek().Kind == token.KwFor) {
			break
		}
	}
	return gens
}

// ----------------------------------------------------------------------------
// Lambda, yield

func (p *Parser) parseLambda() parsedExpr {
	start := p.nodeStart()
	p.bump(token.KwLambda)
	var params *ast.Parameters
	if !p.at(token.Colon) {
		params = p.parseParameters(true)
	}
	p.expect(token.Colon)
	switch p.currentKind() {
	case token.KwYield:
		p.addError(ErrOtherError, "'yield' not allowed in a lambda expression")
	case token.Star:
		p.addError(ErrOtherError, "starred expression not allowed in a lambda expression")
	case token.DoubleStar:
		p.addError(ErrOtherError, "double starred expression not allowed in a lambda expression")
	}
	body := p.parseExpr()
	return parsedExpr{expr: &ast.Lambda{
		Range:  p.nodeRange(start),
		Params: params,
		Body:   body.expr,
	}}
}

func (p *Parser) parseYieldExpr() parsedExpr {
	start := p.nodeStart()
	p.bump(token.KwYield)
	if p.eat(token.KwFrom) {
		value := p.parseExpr()
		return parsedExpr{expr: &ast.YieldFrom{
			Range: p.nodeRange(start),
			Value: value.expr,
		}}
	}
	var value ast.Expr
	if p.atExprStart(true) {
		value = p.parseExprList(true).expr
	}
	return parsedExpr{expr: &ast.Yield{Range: p.nodeRange(start), Value: value}}
}

// ----------------------------------------------------------------------------
// String literals and f-strings

// parseStringGroup parses a run of adjacent string and f-string
// literals, applying implicit concatenation.
func (p *Parser) parseStringGroup() parsedExpr {
	start := p.nodeStart()
	var strParts []string
	var bytesParts [][]byte
	var fElements []ast.FStringElement
	hasStr, hasBytes, hasF := false, false, false

	for {
		switch p.currentKind() {
		case token.String:
			tok := p.advance()
			value, isBytes, err := pylit.DecodeString(tok.Lit)
			if err != nil {
				p.addErrorAt(ErrOtherError, tok.Range, "invalid string literal: %v", err)
			}
			if isBytes {
				hasBytes = true
				bytesParts = append(bytesParts, []byte(value))
			} else {
				hasStr = true
				strParts = append(strParts, value)
				fElements = append(fElements, &ast.FStringText{Range: tok.Range, Value: value})
			}
			continue
		case token.FStringStart:
			hasF = true
			fElements = append(fElements, p.parseFStringRest()...)
			continue
		}
		break
	}

	r := p.nodeRange(start)
	switch {
	case hasBytes && (hasStr || hasF):
		p.addErrorAt(ErrOtherError, r, "cannot mix bytes and nonbytes literals")
		return parsedExpr{expr: &ast.BytesLiteral{Range: r, Value: joinBytes(bytesParts)}}
	case hasF:
		return parsedExpr{expr: &ast.FString{Range: r, Elements: fElements}}
	case hasBytes:
		return parsedExpr{expr: &ast.BytesLiteral{Range: r, Value: joinBytes(bytesParts)}}
	default:
		return parsedExpr{expr: &ast.StringLiteral{Range: r, Value: strings.Join(strParts, "")}}
	}
}

func joinBytes(parts [][]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// parseFStringRest parses the elements of one f-string literal, from
// its start token through its end token.
func (p *Parser) parseFStringRest() []ast.FStringElement {
	startTok := p.bump(token.FStringStart)
	raw := strings.ContainsAny(startTok.Lit, "rR")

	var elements []ast.FStringElement
	for {
		switch p.currentKind() {
		case token.FStringMiddle:
			tok := p.advance()
			value, err := pylit.DecodeFStringText(tok.Lit, raw)
			if err != nil {
				p.addErrorAt(ErrOtherError, tok.Range, "invalid f-string text: %v", err)
			}
			elements = append(elements, &ast.FStringText{Range: tok.Range, Value: value})
		case token.Lbrace:
			elements = append(elements, p.parseFStringInterpolation(raw))
		case token.FStringEnd:
			p.advance()
			return elements
		default:
			p.addError(ErrExpectedToken, "unterminated f-string replacement field")
			return elements
		}
	}
}

// parseFStringInterpolation parses one `{...}` replacement field.
func (p *Parser) parseFStringInterpolation(raw bool) *ast.FormattedValue {
	start := p.nodeStart()
	p.bump(token.Lbrace)
	if p.at(token.KwLambda) {
		p.addErrorAt(ErrUnparenthesizedLambdaInFString, p.current().Range,
			"lambda expressions are not allowed without parentheses")
	}
	p.replaceCtx(ctxParenthesized)
	value := p.parseExprList(true)
	p.leaveCtx(ctxParenthesized)

	// `{expr=}` self-documenting form; the text rendering is a
	// formatting concern, the tree keeps just the value.
	p.eat(token.Equal)

	conv := ast.ConvNone
	if p.eat(token.Exclamation) {
		tok := p.current()
		if tok.Kind == token.Name {
			switch tok.Lit {
			case "s":
				conv = ast.ConvStr
			case "r":
				conv = ast.ConvRepr
			case "a":
				conv = ast.ConvAscii
			default:
				p.addErrorAt(ErrOtherError, tok.Range,
					"f-string conversion must be 's', 'r' or 'a', not %q", tok.Lit)
			}
			p.advance()
		} else {
			p.addError(ErrOtherError, "expected f-string conversion after '!'")
		}
	}

	var spec *ast.FString
	if p.at(token.Colon) {
		specStart := p.nodeStart()
		p.bump(token.Colon)
		var els []ast.FStringElement
	specLoop:
		for {
			switch p.currentKind() {
			case token.FStringMiddle:
				tok := p.advance()
				text, err := pylit.DecodeFStringText(tok.Lit, raw)
				if err != nil {
					p.addErrorAt(ErrOtherError, tok.Range, "invalid format spec: %v", err)
				}
				els = append(els, &ast.FStringText{Range: tok.Range, Value: text})
			case token.Lbrace:
				els = append(els, p.parseFStringInterpolation(raw))
			default:
				break specLoop
			}
		}
		spec = &ast.FString{Range: p.nodeRange(specStart), Elements: els}
	}

	p.expectAndRecover(token.Rbrace, token.NewSet(token.FStringEnd, token.FStringMiddle))
	return &ast.FormattedValue{
		Range:      p.nodeRange(start),
		Value:      value.expr,
		Conversion: conv,
		FormatSpec: spec,
	}
}

// parseExprListWithRecovery is the statement-level entry: when the
// current token cannot start an expression it skips the rest of the
// logical line into an Invalid node.
func (p *Parser) parseExprListWithRecovery(allowStar bool) parsedExpr {
	if p.atExprStart(allowStar) || p.at(token.KwYield) {
		return p.parseExprList(allowStar)
	}
	p.addError(ErrExpectedExpression, "expected an expression, found %s", p.currentKind())
	skipped := p.skipUntil(newlineEofSet)
	return parsedExpr{expr: &ast.Invalid{Range: skipped, Text: p.text(skipped)}}
}
