package lexer

import (
	"github.com/pythia-lang/pythia/internal/source"
	"github.com/pythia-lang/pythia/internal/token"
)

// TokenSource drives a lexer to completion and serves the resulting
// stream to the parser with trivia (comments, non-logical newlines)
// filtered out. Speculative scans never move the cursor; they use
// PeekNth into the filtered stream.
type TokenSource struct {
	tokens []token.Token
	pos    int
	errors []*Error
}

// NewTokenSource lexes src completely and returns a cursor positioned
// at the first token.
func NewTokenSource(src string, interactive bool) *TokenSource {
	lx := New(src, interactive)
	var tokens []token.Token
	for i := 0; ; i++ {
		t := lx.Next()
		if t.Kind == token.Comment || t.Kind == token.NonLogicalNewline {
			continue
		}
		tokens = append(tokens, t)
		if t.Kind == token.EOF {
			break
		}
		// Defends against a lexer bug looping without progress.
		if i > 4*len(src)+1024 {
			tokens = append(tokens, token.Token{Kind: token.EOF, Range: source.EmptyRange(len(src))})
			break
		}
	}
	return &TokenSource{tokens: tokens, errors: lx.Errors()}
}

// Errors returns the lexical diagnostics, in source order.
func (ts *TokenSource) Errors() []*Error { return ts.errors }

// Current returns the token at the cursor without consuming it.
func (ts *TokenSource) Current() token.Token {
	return ts.tokens[ts.pos]
}

// PeekNth returns the token n positions past the cursor; n == 0 is the
// current token. Past the end it returns the trailing EOF.
func (ts *TokenSource) PeekNth(n int) token.Token {
	if ts.pos+n >= len(ts.tokens) {
		return ts.tokens[len(ts.tokens)-1]
	}
	return ts.tokens[ts.pos+n]
}

// Bump consumes the current token and returns it. The cursor never
// moves past EOF.
func (ts *TokenSource) Bump() token.Token {
	t := ts.tokens[ts.pos]
	if ts.pos < len(ts.tokens)-1 {
		ts.pos++
	}
	return t
}

// Checkpoint returns the cursor position; the parser compares two
// checkpoints to prove a recovery loop made progress.
func (ts *TokenSource) Checkpoint() int { return ts.pos }

// Exhausted reports whether the cursor sits on the trailing EOF.
func (ts *TokenSource) Exhausted() bool {
	return ts.Current().Kind == token.EOF
}
