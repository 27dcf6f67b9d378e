package parser

import (
	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/token"
)

// parseParameters parses a function or lambda parameter list up to
// (not including) the closing `)` or the lambda body colon.
func (p *Parser) parseParameters(isLambda bool) *ast.Parameters {
	start := p.nodeStart()
	params := &ast.Parameters{}

	ending := token.Rpar
	if isLambda {
		ending = token.Colon
	}
	endSet := token.NewSet(ending, token.Rarrow).Union(compoundStmtFirstSet)

	seenStar := false
	seenKwArg := false
	seenDefault := false

	p.parseSeparated(func() {
		// nothing may follow **kwargs
		if seenKwArg {
			p.addError(ErrParamAfterVarKeywordParam,
				"parameter cannot follow var-keyword parameter")
		}
		switch {
		case p.eat(token.Star):
			if seenStar {
				p.addError(ErrOtherError, "only one '*' separator allowed")
			}
			seenStar = true
			if p.at(token.Comma) || p.at(ending) {
				// bare star: keyword-only parameters follow
				seenDefault = false
			} else if p.at(token.Name) || p.currentKind().IsSoftKeyword() {
				params.VarArg = p.parseParameter(isLambda, true)
			}
		case p.eat(token.DoubleStar):
			seenKwArg = true
			params.KwArg = p.parseParameter(isLambda, false)
		case p.at(token.Slash):
			slashRange := p.currentRange()
			p.advance()
			if seenStar {
				p.addErrorAt(ErrOtherError, slashRange, "'/' must be ahead of '*'")
			} else if len(params.PosOnly) > 0 {
				p.addErrorAt(ErrOtherError, slashRange, "only one '/' separator allowed")
			}
			params.PosOnly, params.Args = params.Args, params.PosOnly
		case p.at(token.Name) || p.currentKind().IsSoftKeyword():
			param := p.parseParameterWithDefault(isLambda)
			// a parameter without a default may not follow one with a
			// default, unless a '*' separator intervened
			if param.Default == nil && seenDefault && !seenStar {
				p.addErrorAt(ErrNonDefaultAfterDefault, param.Range,
					"parameter without a default follows parameter with a default")
			}
			seenDefault = param.Default != nil
			if seenStar {
				params.KwOnly = append(params.KwOnly, param)
			} else {
				params.Args = append(params.Args, param)
			}
		default:
			if p.atSet(simpleStmtFirstSet) {
				return
			}
			errRange := p.currentRange()
			skipped := p.skipUntil(endSet.Add(token.Comma, token.Colon))
			p.addErrorAt(ErrExpectedToken, errRange.Cover(skipped),
				"expected parameter, found %s", p.currentKind())
		}
	}, token.Comma, endSet, true)

	if seenStar && params.VarArg == nil && len(params.KwOnly) == 0 && params.KwArg == nil {
		p.addError(ErrExpectedKeywordParam,
			"expected one or more keyword-only parameters after '*'")
	}
	params.Range = p.nodeRange(start)
	p.validateParameters(params)
	return params
}

// parseParameter parses a single parameter name with an optional
// annotation. A colon in a lambda is always the body separator, never
// an annotation. A vararg annotation may be starred (`*args: *Ts`).
func (p *Parser) parseParameter(isLambda, allowStarAnnotation bool) *ast.Parameter {
	start := p.nodeStart()
	name := p.parseIdentifier()
	var annotation ast.Expr
	if !isLambda && p.eat(token.Colon) {
		if allowStarAnnotation && p.at(token.Star) {
			annotation = p.parseStarredExpr().expr
		} else {
			annotation = p.parseExpr().expr
		}
	}
	return &ast.Parameter{Range: p.nodeRange(start), Name: name, Annotation: annotation}
}

func (p *Parser) parseParameterWithDefault(isLambda bool) *ast.ParameterWithDefault {
	start := p.nodeStart()
	param := p.parseParameter(isLambda, false)
	var def ast.Expr
	if p.eat(token.Equal) {
		def = p.parseExpr().expr
	}
	return &ast.ParameterWithDefault{
		Range:   p.nodeRange(start),
		Param:   param,
		Default: def,
	}
}

// validateParameters rejects duplicate parameter names.
func (p *Parser) validateParameters(params *ast.Parameters) {
	seen := make(map[string]bool)
	check := func(param *ast.Parameter) {
		if param == nil || param.Name == nil || param.Name.Name == "" {
			return
		}
		if seen[param.Name.Name] {
			p.addErrorAt(ErrOtherError, param.Range,
				"duplicate parameter %q", param.Name.Name)
			return
		}
		seen[param.Name.Name] = true
	}
	for _, pd := range params.PosOnly {
		check(pd.Param)
	}
	for _, pd := range params.Args {
		check(pd.Param)
	}
	check(params.VarArg)
	for _, pd := range params.KwOnly {
		check(pd.Param)
	}
	check(params.KwArg)
}

// ----------------------------------------------------------------------------
// Type parameters (PEP 695)

// parseTypeParams parses the bracketed type parameter list of a
// function, class or type alias definition.
func (p *Parser) parseTypeParams() *ast.TypeParams {
	start := p.nodeStart()
	p.bump(token.Lsqb)
	var typeParams []ast.TypeParam
	p.parseSeparated(func() {
		typeParams = append(typeParams, p.parseTypeParam())
	}, token.Comma, token.NewSet(token.Rsqb), true)
	if len(typeParams) == 0 {
		p.addError(ErrEmptyTypeParams, "type parameter list cannot be empty")
	}
	p.expectAndRecover(token.Rsqb, token.NewSet(token.Lpar, token.Colon, token.Equal))
	return &ast.TypeParams{Range: p.nodeRange(start), Params: typeParams}
}

func (p *Parser) parseTypeParam() ast.TypeParam {
	start := p.nodeStart()
	switch {
	case p.eat(token.Star):
		name := p.parseIdentifier()
		var def ast.Expr
		if p.eat(token.Equal) {
			def = p.parseExpr().expr
		}
		return &ast.TypeVarTuple{Range: p.nodeRange(start), Name: name, Default: def}
	case p.eat(token.DoubleStar):
		name := p.parseIdentifier()
		var def ast.Expr
		if p.eat(token.Equal) {
			def = p.parseExpr().expr
		}
		return &ast.ParamSpec{Range: p.nodeRange(start), Name: name, Default: def}
	default:
		name := p.parseIdentifier()
		var bound ast.Expr
		if p.eat(token.Colon) {
			bound = p.parseExpr().expr
		}
		var def ast.Expr
		if p.eat(token.Equal) {
			def = p.parseExpr().expr
		}
		return &ast.TypeVar{Range: p.nodeRange(start), Name: name, Bound: bound, Default: def}
	}
}
