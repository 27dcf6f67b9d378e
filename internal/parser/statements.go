package parser

import (
	"strings"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/source"
	"github.com/pythia-lang/pythia/internal/token"
)

// parseStatements parses statements until EOF or a token in end,
// splicing any deferred Invalid node after the statement whose
// recovery produced it.
func (p *Parser) parseStatements(end token.Set) []ast.Stmt {
	var body []ast.Stmt
	stop := end.Add(token.EOF)
	for !p.atSet(stop) {
		switch p.currentKind() {
		case token.Newline:
			p.advance()
			continue
		case token.Indent:
			p.addError(ErrUnexpectedIndentation, "unexpected indentation")
			p.advance()
			continue
		case token.Dedent:
			// stray dedent outside a block
			p.advance()
			continue
		}
		body = append(body, p.parseStatement()...)
		if inv := p.takeDeferredInvalid(); inv != nil {
			body = append(body, inv)
		}
	}
	return body
}

// parseStatement parses one logical line: a compound statement or a
// run of semicolon-separated simple statements.
func (p *Parser) parseStatement() []ast.Stmt {
	if p.atSet(compoundStmtFirstSet) {
		if p.at(token.KwMatch) && !p.isMatchStatement() {
			return p.parseSimpleStatements()
		}
		if stmt := p.parseCompoundStatement(); stmt != nil {
			return []ast.Stmt{stmt}
		}
		return nil
	}
	return p.parseSimpleStatements()
}

func (p *Parser) parseCompoundStatement() ast.Stmt {
	start := p.nodeStart()
	switch p.currentKind() {
	case token.KwIf:
		return p.parseIfStatement()
	case token.KwWhile:
		return p.parseWhileStatement()
	case token.KwFor:
		return p.parseForStatement(start, false)
	case token.KwTry:
		return p.parseTryStatement()
	case token.KwWith:
		return p.parseWithStatement(start, false)
	case token.KwDef:
		return p.parseFunctionDef(start, nil, false)
	case token.KwClass:
		return p.parseClassDef(start, nil)
	case token.At:
		return p.parseDecorated()
	case token.KwAsync:
		return p.parseAsyncStatement()
	case token.KwMatch:
		return p.parseMatchStatement()
	}
	panic("parseCompoundStatement: not at a compound statement")
}

// parseBody parses the suite after a clause colon: an indented block
// on the next line, or simple statements on the same line.
func (p *Parser) parseBody() []ast.Stmt {
	if p.eat(token.Newline) {
		if p.at(token.Indent) {
			return p.parseBlock()
		}
		p.addError(ErrExpectedIndentedBlock, "expected an indented block")
		return nil
	}
	if p.atSet(simpleStmtFirstSet) {
		return p.parseSimpleStatements()
	}
	p.addError(ErrExpectedIndentedBlock, "expected a statement after ':'")
	skipped := p.skipUntil(newlineEofSet)
	if !skipped.IsEmpty() {
		p.deferInvalidNode(skipped)
	}
	p.eat(token.Newline)
	return nil
}

func (p *Parser) parseBlock() []ast.Stmt {
	p.bump(token.Indent)
	body := p.parseStatements(token.NewSet(token.Dedent))
	p.eat(token.Dedent)
	return body
}

func (p *Parser) parseClauseColon() {
	p.expectAndRecover(token.Colon, token.Set{})
}

// ----------------------------------------------------------------------------
// Compound statements

func (p *Parser) parseIfStatement() ast.Stmt {
	start := p.nodeStart()
	p.bump(token.KwIf)
	test := p.parseNamedExprOrHigher()
	p.parseClauseColon()
	body := p.parseBody()

	var clauses []*ast.ElifElseClause
	for p.at(token.KwElif) {
		cStart := p.nodeStart()
		p.bump(token.KwElif)
		cTest := p.parseNamedExprOrHigher()
		p.parseClauseColon()
		cBody := p.parseBody()
		clauses = append(clauses, &ast.ElifElseClause{
			Range: p.nodeRange(cStart),
			Test:  cTest.expr,
			Body:  cBody,
		})
	}
	if p.at(token.KwElse) {
		cStart := p.nodeStart()
		p.bump(token.KwElse)
		p.parseClauseColon()
		cBody := p.parseBody()
		clauses = append(clauses, &ast.ElifElseClause{Range: p.nodeRange(cStart), Body: cBody})
	}
	return &ast.If{
		Range:       p.nodeRange(start),
		Test:        test.expr,
		Body:        body,
		ElifClauses: clauses,
	}
}

func (p *Parser) parseWhileStatement() ast.Stmt {
	start := p.nodeStart()
	p.bump(token.KwWhile)
	test := p.parseNamedExprOrHigher()
	p.parseClauseColon()
	body := p.parseBody()
	var orelse []ast.Stmt
	if p.at(token.KwElse) {
		orelse = p.parseElseBody()
	}
	return &ast.While{Range: p.nodeRange(start), Test: test.expr, Body: body, Orelse: orelse}
}

func (p *Parser) parseElseBody() []ast.Stmt {
	p.bump(token.KwElse)
	p.parseClauseColon()
	return p.parseBody()
}

func (p *Parser) parseForStatement(start int, isAsync bool) ast.Stmt {
	p.bump(token.KwFor)

	// The target list ends at `in`; the context flag keeps the
	// comparison operator from swallowing it.
	p.enterCtx(ctxForTarget)
	target := p.parseExprList(true)
	p.leaveCtx(ctxForTarget)
	setExprCtx(target.expr, ast.Store)
	if !isValidAssignTarget(target.expr) {
		p.addErrorAt(ErrInvalidForTarget, target.rng(),
			"invalid 'for' loop target: %s", targetKindName(target.expr))
	}

	p.expect(token.KwIn)
	iter := p.parseExprListWithRecovery(true)
	p.parseClauseColon()
	body := p.parseBody()
	var orelse []ast.Stmt
	if p.at(token.KwElse) {
		orelse = p.parseElseBody()
	}
	return &ast.For{
		Range:   p.nodeRange(start),
		IsAsync: isAsync,
		Target:  target.expr,
		Iter:    iter.expr,
		Body:    body,
		Orelse:  orelse,
	}
}

func (p *Parser) parseAsyncStatement() ast.Stmt {
	start := p.nodeStart()
	p.bump(token.KwAsync)
	switch p.currentKind() {
	case token.KwDef:
		return p.parseFunctionDef(start, nil, true)
	case token.KwFor:
		return p.parseForStatement(start, true)
	case token.KwWith:
		return p.parseWithStatement(start, true)
	}
	p.addError(ErrAsyncNotAllowed, "expected 'def', 'for' or 'with' after 'async'")
	stmts := p.parseStatement()
	if len(stmts) > 0 {
		return stmts[0]
	}
	return nil
}

// ----------------------------------------------------------------------------
// with

func (p *Parser) parseWithStatement(start int, isAsync bool) ast.Stmt {
	p.bump(token.KwWith)
	items := p.parseWithItems()
	p.parseClauseColon()
	body := p.parseBody()
	return &ast.With{Range: p.nodeRange(start), IsAsync: isAsync, Items: items, Body: body}
}

func (p *Parser) parseWithItems() []*ast.WithItem {
	var items []*ast.WithItem
	hasLpar := p.at(token.Lpar)
	if hasLpar && p.withItemsAreParenthesized() {
		p.bump(token.Lpar)
		p.replaceCtx(ctxParenthesized)
		p.parseSeparated(func() {
			items = append(items, p.parseWithItem())
		}, token.Comma, token.NewSet(token.Rpar), true)
		p.leaveCtx(ctxParenthesized)
		p.expectAndRecover(token.Rpar, token.NewSet(token.Colon))
		return items
	}
	p.parseSeparated(func() {
		items = append(items, p.parseWithItem())
	}, token.Comma, token.NewSet(token.Colon), false)
	if len(items) == 0 {
		p.addError(ErrExpectedExpression, "expected expression after 'with'")
	}

	// A lone parenthesized item parsed as an expression, such as
	// `with (a := 0):` or `with (*a):`, reports its range without the
	// outer parentheses; those belong to the statement. The empty
	// tuple `()` keeps them.
	if hasLpar && len(items) == 1 {
		item := items[0]
		_, isTuple := item.ContextE.(*ast.Tuple)
		if item.Optional == nil && p.lastCtx&ctxParenthesized != 0 && !isTuple {
			item.Range = item.Range.AddStart(1).SubEnd(1)
		}
	}
	return items
}

// withItemsAreParenthesized decides whether an opening parenthesis
// after `with` wraps a list of with items or begins an ordinary
// expression. It scans forward tracking bracket nesting:
//
//   - `as` directly inside the parens means parenthesized items
//   - `:=` or a bare `*` directly inside means an expression (a
//     parenthesized walrus or a starred tuple element)
//   - after the matching close paren, a colon means the parens held
//     the item list; anything else (an `as`, a comma) means the parens
//     wrapped a single item's expression
//   - `()` is always the empty tuple
func (p *Parser) withItemsAreParenthesized() bool {
	if p.peek().Kind == token.Rpar {
		return false
	}
	depth := 1
	prev := token.Lpar
	for i := 1; i < 10000; i++ {
		t := p.peekNth(i)
		switch t.Kind {
		case token.Lpar, token.Lsqb, token.Lbrace:
			depth++
		case token.Rsqb, token.Rbrace:
			depth--
		case token.Rpar:
			depth--
			if depth == 0 {
				return p.peekNth(i+1).Kind == token.Colon
			}
		case token.KwAs:
			if depth == 1 {
				return true
			}
		case token.ColonEqual:
			if depth == 1 {
				return false
			}
		case token.Star:
			if depth == 1 && (prev == token.Lpar || prev == token.Comma) {
				return false
			}
		case token.Newline, token.EOF:
			return false
		}
		prev = t.Kind
	}
	return false
}

func (p *Parser) parseWithItem() *ast.WithItem {
	start := p.nodeStart()
	ctxExpr := p.parseExpr()
	var optional ast.Expr
	if p.eat(token.KwAs) {
		target := p.parseExpr()
		setExprCtx(target.expr, ast.Store)
		if !isValidAssignTarget(target.expr) {
			p.addErrorAt(ErrInvalidAssignmentTarget, target.rng(),
				"invalid 'with' item target: %s", targetKindName(target.expr))
		}
		optional = target.expr
	}
	return &ast.WithItem{Range: p.nodeRange(start), ContextE: ctxExpr.expr, Optional: optional}
}

// ----------------------------------------------------------------------------
// try

func (p *Parser) parseTryStatement() ast.Stmt {
	start := p.nodeStart()
	p.bump(token.KwTry)
	p.parseClauseColon()
	body := p.parseBody()

	var handlers []*ast.ExceptHandler
	isStar := false
	sawDefault := false
	for p.at(token.KwExcept) {
		hStart := p.nodeStart()
		p.bump(token.KwExcept)
		star := p.eat(token.Star)
		if len(handlers) == 0 {
			isStar = star
		} else if star != isStar {
			p.addErrorAt(ErrExceptStarMixedWithExcept, p.nodeRange(hStart),
				"cannot mix 'except' and 'except*' handlers")
		}
		if sawDefault {
			p.addErrorAt(ErrDefaultExceptNotLast, p.nodeRange(hStart),
				"default 'except' clause must be last")
		}

		var typ ast.Expr
		var name *ast.Identifier
		if !p.at(token.Colon) {
			first := p.parseExpr()
			if p.at(token.Comma) && !p.hasCtx(ctxParenthesized) {
				tupleStart := first.rng().Start
				p.addError(ErrOtherError, "multiple exception types must be parenthesized")
				elts := []ast.Expr{first.expr}
				for p.eat(token.Comma) {
					if p.at(token.Colon) || p.at(token.KwAs) || p.atSet(newlineEofSet) {
						break
					}
					elts = append(elts, p.parseExpr().expr)
				}
				first = parsedExpr{expr: &ast.Tuple{
					Range: p.nodeRange(tupleStart),
					Elts:  elts,
					Ctx:   ast.Load,
				}}
			}
			typ = first.expr
			if p.eat(token.KwAs) {
				name = p.parseIdentifier()
			}
		} else if star {
			p.addError(ErrOtherError, "expected exception type after 'except*'")
		}
		if typ == nil {
			sawDefault = true
		}

		p.parseClauseColon()
		hBody := p.parseBody()
		handlers = append(handlers, &ast.ExceptHandler{
			Range: p.nodeRange(hStart),
			Type:  typ,
			Name:  name,
			Body:  hBody,
		})
	}

	var orelse, finalBody []ast.Stmt
	if p.at(token.KwElse) {
		orelse = p.parseElseBody()
		if len(handlers) == 0 {
			p.addError(ErrExpectedExceptClause, "'else' clause requires an 'except' clause")
		}
	}
	if p.at(token.KwFinally) {
		p.bump(token.KwFinally)
		p.parseClauseColon()
		finalBody = p.parseBody()
	}
	if len(handlers) == 0 && finalBody == nil {
		p.addError(ErrExpectedExceptClause, "expected 'except' or 'finally' after 'try' block")
	}
	return &ast.Try{
		Range:     p.nodeRange(start),
		Body:      body,
		Handlers:  handlers,
		Orelse:    orelse,
		FinalBody: finalBody,
		IsStar:    isStar,
	}
}

// ----------------------------------------------------------------------------
// Definitions

func (p *Parser) parseDecorated() ast.Stmt {
	start := p.nodeStart()
	var decorators []*ast.Decorator
	for p.at(token.At) {
		dStart := p.nodeStart()
		p.bump(token.At)
		expr := p.parseNamedExprOrHigher()
		decorators = append(decorators, &ast.Decorator{
			Range: p.nodeRange(dStart),
			Expr:  expr.expr,
		})
		p.expect(token.Newline)
	}
	switch p.currentKind() {
	case token.KwDef:
		return p.parseFunctionDef(start, decorators, false)
	case token.KwClass:
		return p.parseClassDef(start, decorators)
	case token.KwAsync:
		p.bump(token.KwAsync)
		if p.at(token.KwDef) {
			return p.parseFunctionDef(start, decorators, true)
		}
		p.addError(ErrAsyncNotAllowed, "expected 'def' after 'async'")
		return nil
	default:
		p.addError(ErrExpectedStatement,
			"expected class or function definition after decorator, found %s", p.currentKind())
		return nil
	}
}

func (p *Parser) parseFunctionDef(start int, decorators []*ast.Decorator, isAsync bool) ast.Stmt {
	p.bump(token.KwDef)
	name := p.parseIdentifier()
	var typeParams *ast.TypeParams
	if p.at(token.Lsqb) {
		typeParams = p.parseTypeParams()
	}

	params := &ast.Parameters{Range: source.EmptyRange(p.nodeStart())}
	if p.expectAndRecover(token.Lpar, token.NewSet(token.Colon, token.Rarrow)) {
		pStart := p.nodeStart()
		params = p.parseParameters(false)
		params.Range = p.nodeRange(pStart)
		p.expectAndRecover(token.Rpar, token.NewSet(token.Colon, token.Rarrow))
	}

	var returns ast.Expr
	if p.eat(token.Rarrow) {
		returns = p.parseExpr().expr
	}
	p.parseClauseColon()
	body := p.parseBody()
	return &ast.FunctionDef{
		Range:      p.nodeRange(start),
		IsAsync:    isAsync,
		Decorators: decorators,
		Name:       name,
		TypeParams: typeParams,
		Params:     params,
		Returns:    returns,
		Body:       body,
	}
}

func (p *Parser) parseClassDef(start int, decorators []*ast.Decorator) ast.Stmt {
	p.bump(token.KwClass)
	name := p.parseIdentifier()
	var typeParams *ast.TypeParams
	if p.at(token.Lsqb) {
		typeParams = p.parseTypeParams()
	}
	var arguments *ast.Arguments
	if p.at(token.Lpar) {
		arguments = p.parseCallArguments()
	}
	p.parseClauseColon()
	body := p.parseBody()
	return &ast.ClassDef{
		Range:      p.nodeRange(start),
		Decorators: decorators,
		Name:       name,
		TypeParams: typeParams,
		Arguments:  arguments,
		Body:       body,
	}
}

// ----------------------------------------------------------------------------
// match

// isMatchStatement resolves the soft keyword: `match` opens a match
// statement only when its logical line ends in a top-level colon.
func (p *Parser) isMatchStatement() bool {
	next := p.peek().Kind
	if !expressionFirstSet.Contains(next) && next != token.Star {
		return false
	}
	depth := 0
	for i := 1; i < 10000; i++ {
		t := p.peekNth(i)
		switch t.Kind {
		case token.Lpar, token.Lsqb, token.Lbrace:
			depth++
		case token.Rpar, token.Rsqb, token.Rbrace:
			depth--
		case token.Colon:
			if depth == 0 {
				return true
			}
		case token.Equal, token.ColonEqual, token.Semi, token.Dot:
			if depth == 0 {
				return false
			}
		case token.Newline, token.EOF:
			return false
		default:
			if depth == 0 && augAssignSet.Contains(t.Kind) {
				return false
			}
		}
	}
	return false
}

func (p *Parser) parseMatchStatement() ast.Stmt {
	start := p.nodeStart()
	p.bump(token.KwMatch)
	subject := p.parseExprListWithRecovery(true)
	p.parseClauseColon()

	var cases []*ast.MatchCase
	if p.eat(token.Newline) {
		if p.at(token.Indent) {
			p.bump(token.Indent)
			for p.at(token.KwCase) {
				cases = append(cases, p.parseMatchCase())
			}
			if len(cases) == 0 {
				p.addError(ErrExpectedMatchPattern, "expected at least one 'case' block")
			}
			if !p.at(token.Dedent) && !p.at(token.EOF) {
				p.addError(ErrExpectedStatement, "expected 'case' block, found %s", p.currentKind())
				skipped := p.skipUntil(token.NewSet(token.Dedent))
				if !skipped.IsEmpty() {
					p.deferInvalidNode(skipped)
				}
			}
			p.eat(token.Dedent)
		} else {
			p.addError(ErrExpectedIndentedBlock, "expected an indented block of 'case' statements")
		}
	} else {
		p.addError(ErrExpectedIndentedBlock, "expected newline after 'match' subject")
	}
	return &ast.Match{Range: p.nodeRange(start), Subject: subject.expr, Cases: cases}
}

func (p *Parser) parseMatchCase() *ast.MatchCase {
	start := p.nodeStart()
	p.bump(token.KwCase)
	pattern := p.parseMatchPatterns()
	var guard ast.Expr
	if p.eat(token.KwIf) {
		guard = p.parseNamedExprOrHigher().expr
	}
	p.parseClauseColon()
	body := p.parseBody()
	return &ast.MatchCase{Range: p.nodeRange(start), Pattern: pattern, Guard: guard, Body: body}
}

// ----------------------------------------------------------------------------
// Simple statements

func (p *Parser) parseSimpleStatements() []ast.Stmt {
	var stmts []ast.Stmt
	for {
		if stmt := p.parseSimpleStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.eat(token.Semi) {
			if p.at(token.Newline) || p.at(token.EOF) || p.at(token.Dedent) {
				break
			}
			continue
		}
		if p.at(token.Newline) || p.at(token.EOF) || p.at(token.Dedent) {
			break
		}
		p.addError(ErrSimpleStatementsOnSameLine,
			"simple statements must be separated by newlines or semicolons")
		if !p.atSet(simpleStmtFirstSet) {
			skipped := p.skipUntil(newlineEofSet)
			if !skipped.IsEmpty() {
				p.deferInvalidNode(skipped)
			}
			break
		}
	}
	p.eat(token.Newline)
	return stmts
}

func (p *Parser) parseSimpleStatement() ast.Stmt {
	start := p.nodeStart()
	switch p.currentKind() {
	case token.KwPass:
		p.advance()
		return &ast.Pass{Range: p.nodeRange(start)}
	case token.KwBreak:
		p.advance()
		return &ast.Break{Range: p.nodeRange(start)}
	case token.KwContinue:
		p.advance()
		return &ast.Continue{Range: p.nodeRange(start)}
	case token.KwReturn:
		return p.parseReturnStatement()
	case token.KwRaise:
		return p.parseRaiseStatement()
	case token.KwDel:
		return p.parseDeleteStatement()
	case token.KwAssert:
		return p.parseAssertStatement()
	case token.KwGlobal:
		return p.parseGlobalStatement()
	case token.KwNonlocal:
		return p.parseNonlocalStatement()
	case token.KwImport:
		return p.parseImportStatement()
	case token.KwFrom:
		return p.parseImportFromStatement()
	case token.EscapeCommand:
		return p.parseEscapeCommand()
	case token.KwType:
		if p.isTypeAliasStatement() {
			return p.parseTypeAliasStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseReturnStatement() ast.Stmt {
	start := p.nodeStart()
	p.bump(token.KwReturn)
	var value ast.Expr
	if p.atExprStart(true) {
		value = p.parseExprList(true).expr
	}
	return &ast.Return{Range: p.nodeRange(start), Value: value}
}

func (p *Parser) parseRaiseStatement() ast.Stmt {
	start := p.nodeStart()
	p.bump(token.KwRaise)
	var exc, cause ast.Expr
	if p.atExprStart(false) {
		first := p.parseExpr()
		if p.at(token.Comma) {
			// legacy `raise A, B` form
			tupleStart := first.rng().Start
			p.addError(ErrOtherError, "multiple exception values must be parenthesized")
			elts := []ast.Expr{first.expr}
			for p.eat(token.Comma) {
				if !p.atExprStart(false) {
					break
				}
				elts = append(elts, p.parseExpr().expr)
			}
			first = parsedExpr{expr: &ast.Tuple{
				Range: p.nodeRange(tupleStart),
				Elts:  elts,
				Ctx:   ast.Load,
			}}
		}
		exc = first.expr
		if p.eat(token.KwFrom) {
			cause = p.parseExpr().expr
		}
	}
	return &ast.Raise{Range: p.nodeRange(start), Exc: exc, Cause: cause}
}

func (p *Parser) parseDeleteStatement() ast.Stmt {
	start := p.nodeStart()
	p.bump(token.KwDel)
	var targets []ast.Expr
	p.parseSeparated(func() {
		target := p.parseExpr()
		setExprCtx(target.expr, ast.Del)
		if !isValidDeleteTarget(target.expr) {
			p.addErrorAt(ErrInvalidDeleteTarget, target.rng(),
				"cannot delete %s", targetKindName(target.expr))
		}
		targets = append(targets, target.expr)
	}, token.Comma, token.NewSet(token.Semi), true)
	if len(targets) == 0 {
		p.addError(ErrExpectedExpression, "expected expression after 'del'")
	}
	return &ast.Delete{Range: p.nodeRange(start), Targets: targets}
}

func (p *Parser) parseAssertStatement() ast.Stmt {
	start := p.nodeStart()
	p.bump(token.KwAssert)
	test := p.parseExpr()
	var msg ast.Expr
	if p.eat(token.Comma) {
		msg = p.parseExpr().expr
	}
	return &ast.Assert{Range: p.nodeRange(start), Test: test.expr, Msg: msg}
}

func (p *Parser) parseGlobalStatement() ast.Stmt {
	start := p.nodeStart()
	p.bump(token.KwGlobal)
	names := p.parseNameList()
	return &ast.Global{Range: p.nodeRange(start), Names: names}
}

func (p *Parser) parseNonlocalStatement() ast.Stmt {
	start := p.nodeStart()
	p.bump(token.KwNonlocal)
	names := p.parseNameList()
	return &ast.Nonlocal{Range: p.nodeRange(start), Names: names}
}

func (p *Parser) parseNameList() []*ast.Identifier {
	var names []*ast.Identifier
	p.parseSeparated(func() {
		names = append(names, p.parseIdentifier())
	}, token.Comma, token.NewSet(token.Semi), false)
	if len(names) == 0 {
		p.addError(ErrExpectedToken, "expected at least one name")
	}
	return names
}

// ----------------------------------------------------------------------------
// Imports

func (p *Parser) parseImportStatement() ast.Stmt {
	start := p.nodeStart()
	p.bump(token.KwImport)
	var names []*ast.Alias
	p.parseSeparated(func() {
		names = append(names, p.parseImportAlias(true))
	}, token.Comma, token.NewSet(token.Semi), false)
	if len(names) == 0 {
		p.addError(ErrExpectedToken, "expected module name after 'import'")
	}
	return &ast.Import{Range: p.nodeRange(start), Names: names}
}

func (p *Parser) parseImportFromStatement() ast.Stmt {
	start := p.nodeStart()
	p.bump(token.KwFrom)

	level := 0
	for {
		if p.eat(token.Dot) {
			level++
			continue
		}
		if p.eat(token.Ellipsis) {
			level += 3
			continue
		}
		break
	}

	var module *ast.Identifier
	if p.at(token.Name) || p.currentKind().IsSoftKeyword() {
		module = p.parseDottedName()
	} else if level == 0 {
		p.addError(ErrRelativeImportLevel, "expected module name after 'from'")
	}

	p.expect(token.KwImport)

	var names []*ast.Alias
	switch {
	case p.at(token.Star):
		starTok := p.advance()
		names = append(names, &ast.Alias{
			Range: starTok.Range,
			Name:  &ast.Identifier{Range: starTok.Range, Name: "*"},
		})
	case p.at(token.Lpar):
		p.parseDelimited(token.Lpar, token.Rpar, token.Comma, func() {
			names = append(names, p.parseImportAlias(false))
		})
	default:
		p.parseSeparated(func() {
			names = append(names, p.parseImportAlias(false))
		}, token.Comma, token.NewSet(token.Semi), false)
		if len(names) == 0 {
			p.addError(ErrExpectedToken, "expected one or more import names")
		}
	}
	return &ast.ImportFrom{
		Range:  p.nodeRange(start),
		Module: module,
		Names:  names,
		Level:  level,
	}
}

func (p *Parser) parseImportAlias(dotted bool) *ast.Alias {
	start := p.nodeStart()
	var name *ast.Identifier
	if dotted {
		name = p.parseDottedName()
	} else {
		name = p.parseIdentifier()
	}
	var asName *ast.Identifier
	if p.eat(token.KwAs) {
		asName = p.parseIdentifier()
	}
	return &ast.Alias{Range: p.nodeRange(start), Name: name, AsName: asName}
}

func (p *Parser) parseDottedName() *ast.Identifier {
	first := p.parseIdentifier()
	name := first.Name
	r := first.Range
	for p.at(token.Dot) && (p.peek().Kind == token.Name || p.peek().Kind.IsSoftKeyword()) {
		p.bump(token.Dot)
		next := p.parseIdentifier()
		name += "." + next.Name
		r = r.Cover(next.Range)
	}
	return &ast.Identifier{Range: r, Name: name}
}

// ----------------------------------------------------------------------------
// Type alias statement

// isTypeAliasStatement resolves the `type` soft keyword: a type alias
// needs a name followed by `=` or a type parameter list.
func (p *Parser) isTypeAliasStatement() bool {
	next := p.peek()
	if next.Kind != token.Name && !next.Kind.IsSoftKeyword() {
		return false
	}
	switch p.peekNth(2).Kind {
	case token.Equal, token.Lsqb:
		return true
	}
	return false
}

func (p *Parser) parseTypeAliasStatement() ast.Stmt {
	start := p.nodeStart()
	p.bump(token.KwType)
	nameTok := p.current()
	var name ast.Expr
	if p.at(token.Name) || p.currentKind().IsSoftKeyword() {
		id := p.parseIdentifier()
		name = &ast.Name{Range: id.Range, ID: id.Name, Ctx: ast.Store}
	} else {
		p.addError(ErrExpectedToken, "%s", expectedTokenMsg(token.Name, nameTok))
		name = &ast.Invalid{Range: source.EmptyRange(nameTok.Range.Start)}
	}
	var typeParams *ast.TypeParams
	if p.at(token.Lsqb) {
		typeParams = p.parseTypeParams()
	}
	p.expect(token.Equal)
	value := p.parseExpr()
	return &ast.TypeAlias{
		Range:      p.nodeRange(start),
		Name:       name,
		TypeParams: typeParams,
		Value:      value.expr,
	}
}

// ----------------------------------------------------------------------------
// Escape commands and expression statements

func (p *Parser) parseEscapeCommand() ast.Stmt {
	tok := p.bump(token.EscapeCommand)
	kind, value := classifyEscapeCommand(tok.Lit)
	return &ast.EscapeCommand{Range: tok.Range, Kind: kind, Value: value}
}

func classifyEscapeCommand(line string) (ast.EscapeKind, string) {
	switch {
	case strings.HasPrefix(line, "%%"):
		return ast.EscapeMagic2, line[2:]
	case strings.HasPrefix(line, "%"):
		return ast.EscapeMagic, line[1:]
	case strings.HasPrefix(line, "!!"):
		return ast.EscapeShell2, line[2:]
	case strings.HasPrefix(line, "!"):
		return ast.EscapeShell, line[1:]
	case strings.HasPrefix(line, "??"):
		return ast.EscapeHelp2, line[2:]
	case strings.HasPrefix(line, "?"):
		return ast.EscapeHelp, line[1:]
	case strings.HasPrefix(line, "/"):
		return ast.EscapeParen, line[1:]
	case strings.HasPrefix(line, ","):
		return ast.EscapeQuote, line[1:]
	case strings.HasPrefix(line, ";"):
		return ast.EscapeQuote2, line[1:]
	}
	return ast.EscapeMagic, line
}

func (p *Parser) parseExpressionStatement() ast.Stmt {
	start := p.nodeStart()
	parsed := p.parseExprListWithRecovery(true)

	switch {
	case p.at(token.Equal):
		return p.parseAssignRest(start, parsed)
	case p.at(token.Colon):
		return p.parseAnnAssignRest(start, parsed)
	case p.atSet(augAssignSet):
		return p.parseAugAssignRest(start, parsed)
	case p.at(token.ColonEqual):
		p.addError(ErrUnparenthesizedNamedExpr,
			"unparenthesized assignment expression not allowed at statement level")
		named := p.parseNamedExprRest(parsed)
		return &ast.ExprStmt{Range: p.nodeRange(start), Value: named.expr}
	}

	if p.mode == InteractiveMode && p.at(token.Question) {
		kind := ast.EscapeHelp
		p.advance()
		if p.at(token.Question) {
			kind = ast.EscapeHelp2
			p.advance()
		}
		return &ast.EscapeCommand{
			Range: p.nodeRange(start),
			Kind:  kind,
			Value: p.text(parsed.rng()),
		}
	}
	return &ast.ExprStmt{Range: p.nodeRange(start), Value: parsed.expr}
}

func (p *Parser) parseAssignRest(start int, first parsedExpr) ast.Stmt {
	var targets []ast.Expr
	current := first
	for p.eat(token.Equal) {
		setExprCtx(current.expr, ast.Store)
		if !isValidAssignTarget(current.expr) {
			p.addErrorAt(ErrInvalidAssignmentTarget, current.rng(),
				"invalid assignment target: %s", targetKindName(current.expr))
		}
		targets = append(targets, current.expr)
		current = p.parseExprListWithRecovery(true)
	}
	return &ast.Assign{Range: p.nodeRange(start), Targets: targets, Value: current.expr}
}

func (p *Parser) parseAnnAssignRest(start int, target parsedExpr) ast.Stmt {
	p.bump(token.Colon)

	simple := false
	if _, ok := target.expr.(*ast.Name); ok && !target.parenthesized {
		simple = true
	}
	setExprCtx(target.expr, ast.Store)
	switch target.expr.(type) {
	case *ast.Name, *ast.Attribute, *ast.Subscript, *ast.Invalid:
		// ok
	case *ast.Tuple, *ast.List:
		p.addErrorAt(ErrInvalidAnnotatedAssignmentTarget, target.rng(),
			"only single targets can be annotated")
	default:
		p.addErrorAt(ErrInvalidAnnotatedAssignmentTarget, target.rng(),
			"invalid annotated assignment target: %s", targetKindName(target.expr))
	}

	annotation := p.parseExpr()
	var value ast.Expr
	if p.eat(token.Equal) {
		value = p.parseExprListWithRecovery(true).expr
	}
	return &ast.AnnAssign{
		Range:      p.nodeRange(start),
		Target:     target.expr,
		Annotation: annotation.expr,
		Value:      value,
		Simple:     simple,
	}
}

func (p *Parser) parseAugAssignRest(start int, target parsedExpr) ast.Stmt {
	op, _ := augAssignOperator(p.currentKind())
	p.advance()
	setExprCtx(target.expr, ast.Store)
	if !isValidAugAssignTarget(target.expr) {
		p.addErrorAt(ErrInvalidAugmentedAssignmentTarget, target.rng(),
			"invalid augmented assignment target: %s", targetKindName(target.expr))
	}
	value := p.parseExprListWithRecovery(true)
	return &ast.AugAssign{
		Range:  p.nodeRange(start),
		Target: target.expr,
		Op:     op,
		Value:  value.expr,
	}
}
