package parser

import (
	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/token"
)

// First and recovery sets. Building them once keeps the hot paths to
// two-word bitset tests.
var (
	newlineEofSet = token.NewSet(token.Newline, token.EOF)

	// Tokens that can begin an expression. Soft keywords are included:
	// in expression position they are plain names.
	expressionFirstSet = token.NewSet(
		token.Name, token.Int, token.Float, token.Complex, token.String,
		token.FStringStart, token.KwNone, token.KwTrue, token.KwFalse,
		token.Ellipsis, token.Lpar, token.Lsqb, token.Lbrace,
		token.Plus, token.Minus, token.Tilde, token.KwNot, token.KwAwait,
		token.KwLambda, token.KwMatch, token.KwCase, token.KwType,
	)

	simpleStmtFirstSet = expressionFirstSet.Add(
		token.KwPass, token.KwBreak, token.KwContinue, token.KwReturn,
		token.KwRaise, token.KwDel, token.KwAssert, token.KwGlobal,
		token.KwNonlocal, token.KwImport, token.KwFrom, token.KwYield,
		token.Star, token.EscapeCommand,
	)

	compoundStmtFirstSet = token.NewSet(
		token.KwIf, token.KwWhile, token.KwFor, token.KwTry, token.KwWith,
		token.KwDef, token.KwClass, token.At, token.KwAsync, token.KwMatch,
	)

	statementFirstSet = simpleStmtFirstSet.Union(compoundStmtFirstSet)

	comparisonOpSet = token.NewSet(
		token.Less, token.Greater, token.LessEqual, token.GreaterEqual,
		token.EqEqual, token.NotEqual, token.KwIn, token.KwIs, token.KwNot,
	)

	augAssignSet = token.NewSet(
		token.PlusEqual, token.MinusEqual, token.StarEqual,
		token.DoubleStarEqual, token.SlashEqual, token.DoubleSlashEqual,
		token.PercentEqual, token.AmperEqual, token.VbarEqual,
		token.CircumflexEqual, token.LeftShiftEqual, token.RightShiftEqual,
		token.AtEqual,
	)

	// Tokens that terminate the optional upper bound of a slice.
	sliceUpperEndSet = token.NewSet(
		token.Comma, token.Colon, token.Rsqb, token.Newline, token.EOF,
	)
	// Tokens that terminate the optional step of a slice.
	sliceStepEndSet = token.NewSet(
		token.Comma, token.Rsqb, token.Newline, token.EOF,
	)
)

// Binding powers of the expression operators. Higher binds tighter.
const (
	bpTernary    = 2
	bpOr         = 4
	bpAnd        = 5
	bpNot        = 6
	bpComparison = 7
	bpBitOr      = 8
	bpBitXor     = 9
	bpBitAnd     = 10
	bpShift      = 11
	bpArith      = 12
	bpTerm       = 14
	bpUnary      = 17
	bpPower      = 18
	bpAwait      = 19
)

// binaryBindingPower classifies an infix token. rightAssoc operators
// recurse at the same power, left-associative ones at power+1.
func binaryBindingPower(kind token.Kind) (bp uint8, rightAssoc bool, ok bool) {
	switch kind {
	case token.KwOr:
		return bpOr, false, true
	case token.KwAnd:
		return bpAnd, false, true
	case token.Less, token.Greater, token.LessEqual, token.GreaterEqual,
		token.EqEqual, token.NotEqual, token.KwIn, token.KwIs, token.KwNot:
		return bpComparison, false, true
	case token.Vbar:
		return bpBitOr, false, true
	case token.Circumflex:
		return bpBitXor, false, true
	case token.Amper:
		return bpBitAnd, false, true
	case token.LeftShift, token.RightShift:
		return bpShift, false, true
	case token.Plus, token.Minus:
		return bpArith, false, true
	case token.Star, token.Slash, token.DoubleSlash, token.Percent, token.At:
		return bpTerm, false, true
	case token.DoubleStar:
		return bpPower, true, true
	}
	return 0, false, false
}

func tokenToOperator(kind token.Kind) (ast.Operator, bool) {
	switch kind {
	case token.Plus:
		return ast.OpAdd, true
	case token.Minus:
		return ast.OpSub, true
	case token.Star:
		return ast.OpMult, true
	case token.At:
		return ast.OpMatMult, true
	case token.Slash:
		return ast.OpDiv, true
	case token.Percent:
		return ast.OpMod, true
	case token.DoubleStar:
		return ast.OpPow, true
	case token.LeftShift:
		return ast.OpLShift, true
	case token.RightShift:
		return ast.OpRShift, true
	case token.Vbar:
		return ast.OpBitOr, true
	case token.Circumflex:
		return ast.OpBitXor, true
	case token.Amper:
		return ast.OpBitAnd, true
	case token.DoubleSlash:
		return ast.OpFloorDiv, true
	}
	return 0, false
}

func augAssignOperator(kind token.Kind) (ast.Operator, bool) {
	switch kind {
	case token.PlusEqual:
		return ast.OpAdd, true
	case token.MinusEqual:
		return ast.OpSub, true
	case token.StarEqual:
		return ast.OpMult, true
	case token.AtEqual:
		return ast.OpMatMult, true
	case token.SlashEqual:
		return ast.OpDiv, true
	case token.PercentEqual:
		return ast.OpMod, true
	case token.DoubleStarEqual:
		return ast.OpPow, true
	case token.LeftShiftEqual:
		return ast.OpLShift, true
	case token.RightShiftEqual:
		return ast.OpRShift, true
	case token.VbarEqual:
		return ast.OpBitOr, true
	case token.CircumflexEqual:
		return ast.OpBitXor, true
	case token.AmperEqual:
		return ast.OpBitAnd, true
	case token.DoubleSlashEqual:
		return ast.OpFloorDiv, true
	}
	return 0, false
}

// setExprCtx rewrites the load/store/delete context of a target
// expression after the fact, descending through the container forms
// that distribute assignment.
func setExprCtx(e ast.Expr, ctx ast.ExprContext) {
	switch n := e.(type) {
	case *ast.Name:
		n.Ctx = ctx
	case *ast.Attribute:
		n.Ctx = ctx
	case *ast.Subscript:
		n.Ctx = ctx
	case *ast.Starred:
		n.Ctx = ctx
		setExprCtx(n.Value, ctx)
	case *ast.Tuple:
		n.Ctx = ctx
		for _, elt := range n.Elts {
			setExprCtx(elt, ctx)
		}
	case *ast.List:
		n.Ctx = ctx
		for _, elt := range n.Elts {
			setExprCtx(elt, ctx)
		}
	}
}

// isValidAssignTarget reports whether e may appear on the left of `=`.
func isValidAssignTarget(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.Name, *ast.Attribute, *ast.Subscript:
		return true
	case *ast.Starred:
		return isValidAssignTarget(n.Value)
	case *ast.Tuple:
		for _, elt := range n.Elts {
			if !isValidAssignTarget(elt) {
				return false
			}
		}
		return true
	case *ast.List:
		for _, elt := range n.Elts {
			if !isValidAssignTarget(elt) {
				return false
			}
		}
		return true
	case *ast.Invalid:
		// already diagnosed
		return true
	}
	return false
}

// isValidAugAssignTarget reports whether e may appear on the left of
// an augmented assignment; containers do not distribute here.
func isValidAugAssignTarget(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Name, *ast.Attribute, *ast.Subscript, *ast.Invalid:
		return true
	}
	return false
}

// isValidDeleteTarget reports whether e may follow `del`.
func isValidDeleteTarget(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.Name, *ast.Attribute, *ast.Subscript, *ast.Invalid:
		return true
	case *ast.Tuple:
		for _, elt := range n.Elts {
			if !isValidDeleteTarget(elt) {
				return false
			}
		}
		return true
	case *ast.List:
		for _, elt := range n.Elts {
			if !isValidDeleteTarget(elt) {
				return false
			}
		}
		return true
	}
	return false
}

// targetKindName names an expression form for target diagnostics.
func targetKindName(e ast.Expr) string {
	switch e.(type) {
	case *ast.BoolOp:
		return "boolean expression"
	case *ast.BinOp, *ast.UnaryExpr:
		return "arithmetic expression"
	case *ast.Compare:
		return "comparison"
	case *ast.Call:
		return "function call"
	case *ast.Lambda:
		return "lambda"
	case *ast.IfExpr:
		return "conditional expression"
	case *ast.Named:
		return "named expression"
	case *ast.Dict:
		return "dict literal"
	case *ast.SetExpr:
		return "set literal"
	case *ast.ListComp, *ast.SetComp, *ast.DictComp, *ast.GeneratorExpr:
		return "comprehension"
	case *ast.Yield, *ast.YieldFrom:
		return "yield expression"
	case *ast.Await:
		return "await expression"
	case *ast.Starred:
		return "starred expression"
	case *ast.StringLiteral, *ast.BytesLiteral, *ast.FString,
		*ast.IntLiteral, *ast.FloatLiteral, *ast.ComplexLiteral,
		*ast.BooleanLiteral, *ast.NoneLiteral, *ast.EllipsisLiteral:
		return "literal"
	}
	return "expression"
}

// parseSeparated parses a comma-separated (or otherwise delimited)
// list until a token in end appears. Unexpected tokens between
// elements are skipped with a single diagnostic each, so a malformed
// element cannot stall the loop.
func (p *Parser) parseSeparated(parse func(), sep token.Kind, end token.Set, allowTrailing bool) {
	stop := end.Add(token.Newline, token.EOF)
	for {
		if p.atSet(stop) {
			return
		}
		before := p.tokens.Checkpoint()
		parse()
		if p.eat(sep) {
			if p.atSet(stop) {
				if !allowTrailing {
					p.addError(ErrExpectedExpression, "trailing %s not allowed here", sep)
				}
				return
			}
			continue
		}
		if p.atSet(stop) {
			return
		}
		p.addError(ErrExpectedToken, "%s", expectedTokenMsg(sep, p.current()))
		skipped := p.skipUntil(stop.Add(sep))
		if !skipped.IsEmpty() {
			p.deferInvalidNode(skipped)
		}
		if p.eat(sep) {
			continue
		}
		if p.tokens.Checkpoint() == before {
			// no progress; bail out to the caller's recovery
			return
		}
	}
}

// parseDelimited parses an open token, a separated list, and a close
// token, recovering if the closer is missing.
func (p *Parser) parseDelimited(open, close, sep token.Kind, parse func()) {
	p.bump(open)
	p.parseSeparated(parse, sep, token.NewSet(close), true)
	p.expectAndRecover(close, token.NewSet())
}
