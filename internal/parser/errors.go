package parser

import (
	"fmt"

	"github.com/pythia-lang/pythia/internal/source"
	"github.com/pythia-lang/pythia/internal/token"
)

// ErrorKind is the closed classification of syntax diagnostics.
type ErrorKind uint8

const (
	// ErrLexical wraps a diagnostic produced during tokenization.
	ErrLexical ErrorKind = iota
	ErrExpectedToken
	ErrExpectedExpression
	ErrExpectedStatement
	ErrInvalidAssignmentTarget
	ErrInvalidAnnotatedAssignmentTarget
	ErrInvalidAugmentedAssignmentTarget
	ErrInvalidDeleteTarget
	ErrInvalidForTarget
	ErrInvalidNamedTarget
	ErrUnparenthesizedNamedExpr
	ErrStarredExpressionUsage
	ErrIterableUnpackingInComprehension
	ErrDuplicateKeywordArgument
	ErrPositionalAfterKeywordArgument
	ErrUnpackedArgumentError
	ErrNonDefaultAfterDefault
	ErrParamAfterVarKeywordParam
	ErrExpectedKeywordParam
	ErrLambdaWithAnnotation
	ErrUnparenthesizedLambdaInFString
	ErrEmptySubscript
	ErrSimpleStatementsOnSameLine
	ErrStatementOnSameLineAsClause
	ErrInvalidMatchPatternLiteral
	ErrExpectedMatchPattern
	ErrInvalidMatchPatternTarget
	ErrExceptStarMixedWithExcept
	ErrExpectedExceptClause
	ErrDefaultExceptNotLast
	ErrAsyncNotAllowed
	ErrYieldOutsideContext
	ErrRelativeImportLevel
	ErrEmptyTypeParams
	ErrTooDeeplyNested
	ErrUnexpectedIndentation
	ErrExpectedIndentedBlock
	ErrEscapeCommandOutsideInteractive
	ErrOtherError
)

// ParseError is one syntax diagnostic with the source range it covers.
type ParseError struct {
	Kind  ErrorKind
	Msg   string
	Range source.Range
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Msg, e.Range)
}

func (p *Parser) addErrorAt(kind ErrorKind, r source.Range, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{
		Kind:  kind,
		Msg:   fmt.Sprintf(format, args...),
		Range: r,
	})
}

// addError reports a diagnostic covering the current token.
func (p *Parser) addError(kind ErrorKind, format string, args ...any) {
	p.addErrorAt(kind, p.currentRange(), format, args...)
}

func expectedTokenMsg(expected token.Kind, found token.Token) string {
	if found.Kind == token.EOF {
		return fmt.Sprintf("expected %s, found end of file", expected)
	}
	return fmt.Sprintf("expected %s, found %s", expected, found.Kind)
}
