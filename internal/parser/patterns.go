package parser

import (
	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/token"
)

// parseMatchPatterns parses the patterns of a `case` clause. A
// top-level comma makes an open sequence pattern ending at the colon.
func (p *Parser) parseMatchPatterns() ast.Pattern {
	start := p.nodeStart()
	pattern := p.parseMatchPattern()
	if p.at(token.Comma) {
		return p.parseSequenceMatchPattern(pattern, start, token.Colon)
	}
	return pattern
}

// parseMatchPattern parses one pattern including `|` alternatives and
// an `as` capture.
func (p *Parser) parseMatchPattern() ast.Pattern {
	start := p.nodeStart()
	lhs := p.parseMatchPatternLhs()

	if p.at(token.Vbar) {
		patterns := []ast.Pattern{lhs}
		for p.eat(token.Vbar) {
			patterns = append(patterns, p.parseMatchPatternLhs())
		}
		lhs = &ast.MatchOr{Range: p.nodeRange(start), Patterns: patterns}
	}

	if p.eat(token.KwAs) {
		name := p.parseIdentifier()
		lhs = &ast.MatchAs{Range: p.nodeRange(start), Pattern: lhs, Name: name}
	}
	return lhs
}

func (p *Parser) parseMatchPatternLhs() ast.Pattern {
	start := p.nodeStart()
	var lhs ast.Pattern
	switch p.currentKind() {
	case token.Lbrace:
		lhs = p.parseMatchPatternMapping()
	case token.Star:
		lhs = p.parseMatchPatternStar()
	case token.Lpar, token.Lsqb:
		lhs = p.parseDelimitedMatchPattern()
	default:
		lhs = p.parseMatchPatternLiteral()
	}

	if p.at(token.Lpar) {
		lhs = p.parseMatchPatternClass(lhs, start)
	}

	// `3 + 4j`: a complex literal written as a sum
	if p.at(token.Plus) || p.at(token.Minus) {
		opTok := p.advance()
		op := ast.OpAdd
		if opTok.Kind == token.Minus {
			op = ast.OpSub
		}
		left := p.patternValueExpr(lhs, false)
		rhs := p.parseMatchPatternLhs()
		right := p.patternValueExpr(rhs, true)
		if un, ok := right.(*ast.UnaryExpr); ok && un.Op == ast.UnaryMinus {
			p.addErrorAt(ErrInvalidMatchPatternLiteral, un.Range,
				"'-' not allowed on the right of a match value pattern")
		}
		rng := p.nodeRange(start)
		return &ast.MatchValue{
			Range: rng,
			Value: &ast.BinOp{Range: rng, Left: left, Op: op, Right: right},
		}
	}
	return lhs
}

// patternValueExpr extracts the expression of a value pattern for use
// as an operand of a complex-literal pattern.
func (p *Parser) patternValueExpr(pat ast.Pattern, requireLiteral bool) ast.Expr {
	if mv, ok := pat.(*ast.MatchValue); ok {
		if !isLiteralPatternExpr(mv.Value, !requireLiteral) {
			p.addErrorAt(ErrInvalidMatchPatternLiteral, mv.Range,
				"invalid operand for match value pattern: %s", p.text(mv.Range))
		}
		return mv.Value
	}
	r := pat.NodeRange()
	p.addErrorAt(ErrInvalidMatchPatternLiteral, r,
		"invalid operand for match value pattern")
	return &ast.Invalid{Range: r, Text: p.text(r)}
}

// isLiteralPatternExpr reports whether e is a literal usable in a
// complex-literal pattern; allowUnary admits an already-negated
// operand on the left.
func isLiteralPatternExpr(e ast.Expr, allowUnary bool) bool {
	switch e.(type) {
	case *ast.IntLiteral, *ast.FloatLiteral, *ast.ComplexLiteral,
		*ast.StringLiteral, *ast.BytesLiteral, *ast.BooleanLiteral,
		*ast.NoneLiteral, *ast.EllipsisLiteral, *ast.Invalid:
		return true
	case *ast.UnaryExpr:
		return allowUnary
	}
	return false
}

func (p *Parser) parseMatchPatternLiteral() ast.Pattern {
	start := p.nodeStart()
	switch kind := p.currentKind(); {
	case kind == token.KwNone:
		tok := p.advance()
		return &ast.MatchSingleton{Range: tok.Range, Value: ast.SingletonNone}
	case kind == token.KwTrue:
		tok := p.advance()
		return &ast.MatchSingleton{Range: tok.Range, Value: ast.SingletonTrue}
	case kind == token.KwFalse:
		tok := p.advance()
		return &ast.MatchSingleton{Range: tok.Range, Value: ast.SingletonFalse}
	case kind == token.String || kind == token.FStringStart:
		value := p.parseStringGroup()
		return &ast.MatchValue{Range: p.nodeRange(start), Value: value.expr}
	case kind == token.Int || kind == token.Float || kind == token.Complex:
		atom := p.parseAtom()
		return &ast.MatchValue{Range: p.nodeRange(start), Value: atom.expr}
	case kind == token.Name || kind.IsSoftKeyword():
		if p.peek().Kind == token.Dot {
			return &ast.MatchValue{
				Range: p.nodeRange(start),
				Value: p.parseDottedValue(start),
			}
		}
		id := p.parseIdentifier()
		if id.Name == "_" {
			return &ast.MatchAs{Range: id.Range}
		}
		return &ast.MatchAs{Range: id.Range, Name: id}
	case kind == token.Minus &&
		(p.peek().Kind == token.Int || p.peek().Kind == token.Float || p.peek().Kind == token.Complex):
		p.advance()
		operand := p.parseLhsExpr()
		rng := p.nodeRange(start)
		return &ast.MatchValue{
			Range: rng,
			Value: &ast.UnaryExpr{Range: rng, Op: ast.UnaryMinus, Operand: operand.expr},
		}
	default:
		tok := p.current()
		p.addErrorAt(ErrInvalidMatchPatternLiteral, tok.Range,
			"invalid match pattern: unexpected %s", tok.Kind)
		p.advance()
		p.skipUntil(token.NewSet(token.Colon).Union(newlineEofSet))
		return &ast.MatchValue{
			Range: p.nodeRange(start),
			Value: &ast.Invalid{Range: tok.Range, Text: p.text(tok.Range)},
		}
	}
}

// parseDottedValue parses `module.attr...` for a value pattern; the
// first name is already current.
func (p *Parser) parseDottedValue(start int) ast.Expr {
	id := p.parseIdentifier()
	var expr ast.Expr = &ast.Name{Range: id.Range, ID: id.Name, Ctx: ast.Load}
	for p.eat(token.Dot) {
		attr := p.parseIdentifier()
		expr = &ast.Attribute{
			Range: p.nodeRange(start),
			Value: expr,
			Attr:  attr,
			Ctx:   ast.Load,
		}
	}
	return expr
}

// parseDelimitedMatchPattern parses `(...)` or `[...]`: a group, or a
// sequence pattern. Brackets always make a sequence; parentheses only
// with a comma.
func (p *Parser) parseDelimitedMatchPattern() ast.Pattern {
	start := p.nodeStart()
	isParen := p.at(token.Lpar)
	closing := token.Rsqb
	if isParen {
		p.bump(token.Lpar)
		closing = token.Rpar
	} else {
		p.bump(token.Lsqb)
	}

	if p.at(token.Newline) || p.at(token.Colon) {
		p.addError(ErrExpectedToken, "missing %s in pattern", closing)
	}

	if p.eat(closing) {
		return &ast.MatchSequence{Range: p.nodeRange(start)}
	}

	first := p.parseMatchPattern()
	var pattern ast.Pattern = first
	if !isParen || p.at(token.Comma) {
		pattern = p.parseSequenceMatchPattern(first, start, closing)
	}
	p.expectAndRecover(closing, token.Set{})
	if seq, ok := pattern.(*ast.MatchSequence); ok {
		// include the delimiters in the sequence range
		seq.Range = p.nodeRange(start)
	}
	return pattern
}

func (p *Parser) parseSequenceMatchPattern(first ast.Pattern, start int, ending token.Kind) ast.Pattern {
	p.eat(token.Comma)
	patterns := []ast.Pattern{first}
	p.parseSeparated(func() {
		patterns = append(patterns, p.parseMatchPattern())
	}, token.Comma, token.NewSet(ending), true)
	return &ast.MatchSequence{Range: p.nodeRange(start), Patterns: patterns}
}

func (p *Parser) parseMatchPatternStar() ast.Pattern {
	start := p.nodeStart()
	p.bump(token.Star)
	id := p.parseIdentifier()
	var name *ast.Identifier
	if id.Name != "_" {
		name = id
	}
	return &ast.MatchStar{Range: p.nodeRange(start), Name: name}
}

// parseMatchPatternClass parses the argument list of a class pattern;
// cls is the already-parsed pattern naming the class.
func (p *Parser) parseMatchPatternClass(cls ast.Pattern, start int) ast.Pattern {
	var patterns []ast.Pattern
	var keywords []*ast.MatchKeyword
	seenKeyword := false

	p.parseDelimited(token.Lpar, token.Rpar, token.Comma, func() {
		pat := p.parseMatchPattern()
		patRange := pat.NodeRange()
		if p.eat(token.Equal) {
			seenKeyword = true
			if as, ok := pat.(*ast.MatchAs); ok && as.Pattern == nil && as.Name != nil {
				value := p.parseMatchPattern()
				keywords = append(keywords, &ast.MatchKeyword{
					Range:   as.Range.Cover(value.NodeRange()),
					Attr:    as.Name,
					Pattern: value,
				})
			} else {
				p.addErrorAt(ErrExpectedMatchPattern, patRange,
					"%q is not a valid keyword pattern", p.text(patRange))
				p.skipUntil(token.NewSet(token.Comma, token.Rpar).Union(newlineEofSet))
			}
			return
		}
		patterns = append(patterns, pat)
		if seenKeyword {
			p.addErrorAt(ErrExpectedMatchPattern, patRange,
				"positional pattern not allowed after keyword pattern")
		}
	})

	var clsExpr ast.Expr
	switch c := cls.(type) {
	case *ast.MatchAs:
		if c.Pattern == nil && c.Name != nil {
			clsExpr = &ast.Name{Range: c.Name.Range, ID: c.Name.Name, Ctx: ast.Load}
		}
	case *ast.MatchValue:
		if _, ok := c.Value.(*ast.Attribute); ok {
			clsExpr = c.Value
		}
	}
	if clsExpr == nil {
		r := cls.NodeRange()
		p.addErrorAt(ErrInvalidMatchPatternTarget, r,
			"invalid class for a class pattern: %s", p.text(r))
		clsExpr = &ast.Invalid{Range: r, Text: p.text(r)}
	}
	return &ast.MatchClass{
		Range:    p.nodeRange(start),
		Cls:      clsExpr,
		Patterns: patterns,
		Keywords: keywords,
	}
}

func (p *Parser) parseMatchPatternMapping() ast.Pattern {
	start := p.nodeStart()
	var keys []ast.Expr
	var patterns []ast.Pattern
	var rest *ast.Identifier

	p.parseDelimited(token.Lbrace, token.Rbrace, token.Comma, func() {
		if p.eat(token.DoubleStar) {
			rest = p.parseIdentifier()
			return
		}
		keyPat := p.parseMatchPatternLhs()
		var key ast.Expr
		switch kp := keyPat.(type) {
		case *ast.MatchValue:
			key = kp.Value
		case *ast.MatchSingleton:
			switch kp.Value {
			case ast.SingletonNone:
				key = &ast.NoneLiteral{Range: kp.Range}
			case ast.SingletonTrue:
				key = &ast.BooleanLiteral{Range: kp.Range, Value: true}
			default:
				key = &ast.BooleanLiteral{Range: kp.Range}
			}
		default:
			r := keyPat.NodeRange()
			p.addErrorAt(ErrInvalidMatchPatternLiteral, r,
				"invalid mapping pattern key: %s", p.text(r))
			key = &ast.Invalid{Range: r, Text: p.text(r)}
		}
		keys = append(keys, key)
		p.expectAndRecover(token.Colon, token.Set{})
		patterns = append(patterns, p.parseMatchPattern())
	})

	return &ast.MatchMapping{
		Range:    p.nodeRange(start),
		Keys:     keys,
		Patterns: patterns,
		Rest:     rest,
	}
}
