// Package lexer turns Python source text into an indentation-aware
// token stream. It tracks the indent stack, implicit line joining
// inside brackets, string prefixes and f-string nesting, and collects
// its own position-ordered error list instead of failing.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pythia-lang/pythia/internal/source"
	"github.com/pythia-lang/pythia/internal/token"
)

// Error is a lexical diagnostic with the range of the offending text.
type Error struct {
	Msg   string
	Range source.Range
}

func (e *Error) Error() string { return e.Msg }

// fstringCtx tracks one level of f-string nesting.
type fstringCtx struct {
	quote           byte
	triple          bool
	raw             bool
	inInterpolation bool
	inFormatSpec    bool
	// specReturn remembers that the open interpolation was nested in a
	// format spec, so closing it resumes spec-text scanning.
	specReturn   bool
	bracketDepth int
}

// Lexer scans one source buffer. Interactive enables escape-command
// lines and bare `?` tokens.
type Lexer struct {
	src         string
	pos         int
	interactive bool

	indents        []int
	pendingDedents int
	atLineStart    bool
	lineContent    bool
	nesting        int
	fstrings       []*fstringCtx
	reachedEOF     bool
	finalNewline   bool

	errors []*Error
}

// New creates a lexer over src.
func New(src string, interactive bool) *Lexer {
	return &Lexer{
		src:         src,
		interactive: interactive,
		indents:     []int{0},
		atLineStart: true,
	}
}

// Errors returns the lexical diagnostics collected so far, in source
// order.
func (l *Lexer) Errors() []*Error { return l.errors }

func (l *Lexer) errorf(r source.Range, msg string) {
	l.errors = append(l.errors, &Error{Msg: msg, Range: r})
}

func (l *Lexer) at(off int) byte {
	if off < len(l.src) {
		return l.src[off]
	}
	return 0
}

func (l *Lexer) peek() byte  { return l.at(l.pos) }
func (l *Lexer) peek2() byte { return l.at(l.pos + 1) }

func (l *Lexer) tok(kind token.Kind, start int) token.Token {
	return token.Token{Kind: kind, Range: source.NewRange(start, l.pos)}
}

func (l *Lexer) litTok(kind token.Kind, start int) token.Token {
	return token.Token{Kind: kind, Range: source.NewRange(start, l.pos), Lit: l.src[start:l.pos]}
}

// Next returns the next token. After EOF it keeps returning EOF.
func (l *Lexer) Next() token.Token {
	if l.pendingDedents > 0 {
		l.pendingDedents--
		return l.tok(token.Dedent, l.pos)
	}
	if ctx := l.currentFString(); ctx != nil && !ctx.inInterpolation {
		return l.lexFStringMiddle(ctx)
	}
	if l.atLineStart && l.nesting == 0 {
		if t, ok := l.lexLineStart(); ok {
			return t
		}
		if l.pendingDedents > 0 {
			l.pendingDedents--
			return l.tok(token.Dedent, l.pos)
		}
	}

	l.skipSpace()

	start := l.pos
	if l.pos >= len(l.src) {
		return l.lexEOF(start)
	}

	c := l.peek()
	if c != '#' && c != '\n' && c != '\r' &&
		!(c == '\\' && (l.peek2() == '\n' || l.peek2() == '\r')) {
		l.lineContent = true
	}
	switch {
	case c == '#':
		for l.pos < len(l.src) && l.peek() != '\n' {
			l.pos++
		}
		return l.litTok(token.Comment, start)
	case c == '\n' || c == '\r':
		l.consumeNewline()
		if l.nesting > 0 {
			return l.tok(token.NonLogicalNewline, start)
		}
		l.atLineStart = true
		if !l.lineContent {
			return l.tok(token.NonLogicalNewline, start)
		}
		l.lineContent = false
		return l.tok(token.Newline, start)
	case c == '\\':
		if l.peek2() == '\n' || l.peek2() == '\r' {
			l.pos++
			l.consumeNewline()
			return l.Next()
		}
		l.pos++
		l.errorf(source.NewRange(start, l.pos), "unexpected character after line continuation character")
		return l.tok(token.Unknown, start)
	case isIdentStart(rune(c)) || c >= utf8.RuneSelf:
		return l.lexIdentOrString(start)
	case c >= '0' && c <= '9':
		return l.lexNumber(start)
	case c == '\'' || c == '"':
		return l.lexString(start, 0)
	case c == '.' && isDigit(l.peek2()):
		return l.lexNumber(start)
	}
	return l.lexOperator(start)
}

func (l *Lexer) currentFString() *fstringCtx {
	if len(l.fstrings) == 0 {
		return nil
	}
	return l.fstrings[len(l.fstrings)-1]
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.peek()
		if c == ' ' || c == '\t' || c == '\f' {
			l.pos++
			continue
		}
		break
	}
}

func (l *Lexer) consumeNewline() {
	if l.peek() == '\r' {
		l.pos++
	}
	if l.peek() == '\n' {
		l.pos++
	}
}

// lexLineStart measures indentation at the start of a logical line
// and queues Indent/Dedent tokens. It returns a token only when one is
// due immediately; blank and comment-only lines fall through.
func (l *Lexer) lexLineStart() (token.Token, bool) {
	l.atLineStart = false

	start := l.pos
	width := 0
	for l.pos < len(l.src) {
		switch l.peek() {
		case ' ':
			width++
			l.pos++
			continue
		case '\t':
			width = (width/8 + 1) * 8
			l.pos++
			continue
		case '\f':
			width = 0
			l.pos++
			continue
		}
		break
	}

	// Blank or comment-only lines do not affect indentation.
	if l.pos >= len(l.src) {
		return token.Token{}, false
	}
	c := l.peek()
	if c == '\n' || c == '\r' || c == '#' {
		return token.Token{}, false
	}
	if c == '\\' && (l.peek2() == '\n' || l.peek2() == '\r') {
		return token.Token{}, false
	}

	if l.interactive && width == 0 && l.isEscapeCommandStart() {
		return l.lexEscapeCommand(), true
	}

	top := l.indents[len(l.indents)-1]
	switch {
	case width > top:
		l.indents = append(l.indents, width)
		return token.Token{Kind: token.Indent, Range: source.NewRange(start, l.pos)}, true
	case width < top:
		for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
			l.indents = l.indents[:len(l.indents)-1]
			l.pendingDedents++
		}
		if l.indents[len(l.indents)-1] != width {
			l.errorf(source.NewRange(start, l.pos), "unindent does not match any outer indentation level")
			l.indents[len(l.indents)-1] = width
		}
	}
	return token.Token{}, false
}

func (l *Lexer) lexEOF(start int) token.Token {
	if !l.reachedEOF {
		l.reachedEOF = true
		if len(l.fstrings) > 0 {
			l.errorf(source.EmptyRange(start), "unterminated f-string")
			l.fstrings = nil
		}
		// A final logical line without a trailing newline still ends
		// in a Newline token.
		if l.lineContent && !l.finalNewline {
			l.finalNewline = true
			return l.tok(token.Newline, start)
		}
	}
	if len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		return l.tok(token.Dedent, start)
	}
	return l.tok(token.EOF, start)
}

// ----------------------------------------------------------------------------
// Identifiers, keywords, string prefixes

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentCont(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *Lexer) lexIdentOrString(start int) token.Token {
	// A short run of prefix letters directly followed by a quote is a
	// string literal.
	prefixEnd := l.pos
	for prefixEnd < len(l.src) && prefixEnd-start < 3 && isPrefixLetter(l.src[prefixEnd]) {
		prefixEnd++
	}
	if prefixEnd > start && prefixEnd < len(l.src) &&
		(l.src[prefixEnd] == '\'' || l.src[prefixEnd] == '"') &&
		validStringPrefix(l.src[start:prefixEnd]) {
		return l.lexString(start, prefixEnd-start)
	}

	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentCont(r) {
			break
		}
		l.pos += size
	}
	if l.pos == start {
		_, size := utf8.DecodeRuneInString(l.src[l.pos:])
		l.pos += size
		l.errorf(source.NewRange(start, l.pos), "unexpected character in identifier")
		return l.tok(token.Unknown, start)
	}
	text := l.src[start:l.pos]
	kind := token.LookupIdent(text)
	if kind == token.Name {
		return token.Token{Kind: token.Name, Range: source.NewRange(start, l.pos), Lit: text}
	}
	return l.tok(kind, start)
}

func isPrefixLetter(c byte) bool {
	switch c {
	case 'r', 'R', 'b', 'B', 'f', 'F', 'u', 'U':
		return true
	}
	return false
}

func validStringPrefix(p string) bool {
	lower := strings.ToLower(p)
	switch lower {
	case "r", "b", "f", "u", "rb", "br", "rf", "fr":
		return true
	}
	return false
}

// ----------------------------------------------------------------------------
// Strings and f-strings

func (l *Lexer) lexString(start, prefixLen int) token.Token {
	prefix := strings.ToLower(l.src[start : start+prefixLen])
	isF := strings.Contains(prefix, "f")
	isRaw := strings.Contains(prefix, "r")
	l.pos = start + prefixLen

	quote := l.peek()
	l.pos++
	triple := false
	if l.peek() == quote && l.peek2() == quote {
		triple = true
		l.pos += 2
	}

	if isF {
		l.fstrings = append(l.fstrings, &fstringCtx{quote: quote, triple: triple, raw: isRaw})
		return l.litTok(token.FStringStart, start)
	}

	for l.pos < len(l.src) {
		c := l.peek()
		if c == '\\' && l.pos+1 < len(l.src) {
			l.pos += 2
			continue
		}
		if c == quote {
			if !triple {
				l.pos++
				return l.litTok(token.String, start)
			}
			if l.peek2() == quote && l.at(l.pos+2) == quote {
				l.pos += 3
				return l.litTok(token.String, start)
			}
			l.pos++
			continue
		}
		if (c == '\n' || c == '\r') && !triple {
			l.errorf(source.NewRange(start, l.pos), "unterminated string literal")
			return l.litTok(token.String, start)
		}
		l.pos++
	}
	l.errorf(source.NewRange(start, l.pos), "unterminated string literal; missing closing quote")
	return l.litTok(token.String, start)
}

// lexFStringMiddle scans literal f-string text up to the next
// replacement field or the closing quote.
func (l *Lexer) lexFStringMiddle(ctx *fstringCtx) token.Token {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.peek()
		switch {
		case c == '\\' && !ctx.raw && l.pos+1 < len(l.src):
			l.pos += 2
			continue
		case c == '{':
			if l.peek2() == '{' && !ctx.inFormatSpec {
				l.pos += 2
				continue
			}
			if l.pos > start {
				return l.litTok(token.FStringMiddle, start)
			}
			l.pos++
			ctx.specReturn = ctx.inFormatSpec
			ctx.inInterpolation = true
			ctx.inFormatSpec = false
			return l.tok(token.Lbrace, start)
		case c == '}':
			if l.peek2() == '}' && !ctx.inFormatSpec {
				l.pos += 2
				continue
			}
			if ctx.inFormatSpec {
				if l.pos > start {
					return l.litTok(token.FStringMiddle, start)
				}
				l.pos++
				ctx.inFormatSpec = false
				return l.tok(token.Rbrace, start)
			}
			l.errorf(source.NewRange(l.pos, l.pos+1), "single '}' is not allowed in f-string")
			l.pos++
			continue
		case c == ctx.quote:
			if ctx.inFormatSpec {
				// The closing quote also terminates an unclosed spec.
				ctx.inFormatSpec = false
			}
			if !ctx.triple {
				if l.pos > start {
					return l.litTok(token.FStringMiddle, start)
				}
				l.pos++
				l.popFString()
				return l.tok(token.FStringEnd, start)
			}
			if l.peek2() == ctx.quote && l.at(l.pos+2) == ctx.quote {
				if l.pos > start {
					return l.litTok(token.FStringMiddle, start)
				}
				l.pos += 3
				l.popFString()
				return l.tok(token.FStringEnd, start)
			}
			l.pos++
			continue
		case (c == '\n' || c == '\r') && !ctx.triple:
			if l.pos > start {
				return l.litTok(token.FStringMiddle, start)
			}
			l.errorf(source.NewRange(start, l.pos), "unterminated f-string literal")
			l.popFString()
			return l.tok(token.FStringEnd, start)
		default:
			l.pos++
		}
	}
	if l.pos > start {
		return l.litTok(token.FStringMiddle, start)
	}
	l.errorf(source.EmptyRange(l.pos), "unterminated f-string literal; missing closing quote")
	l.popFString()
	return l.tok(token.FStringEnd, start)
}

func (l *Lexer) popFString() {
	l.fstrings = l.fstrings[:len(l.fstrings)-1]
}

// ----------------------------------------------------------------------------
// Numbers

func (l *Lexer) lexNumber(start int) token.Token {
	if l.peek() == '0' && (l.peek2() == 'x' || l.peek2() == 'X' ||
		l.peek2() == 'o' || l.peek2() == 'O' ||
		l.peek2() == 'b' || l.peek2() == 'B') {
		base := l.peek2()
		l.pos += 2
		valid := func(c byte) bool {
			switch base {
			case 'x', 'X':
				return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
			case 'o', 'O':
				return c >= '0' && c <= '7'
			default:
				return c == '0' || c == '1'
			}
		}
		digits := 0
		for l.pos < len(l.src) && (valid(l.peek()) || l.peek() == '_') {
			if l.peek() != '_' {
				digits++
			}
			l.pos++
		}
		if digits == 0 {
			l.errorf(source.NewRange(start, l.pos), "invalid digit in numeric literal")
		}
		return l.litTok(token.Int, start)
	}

	isFloat := false
	l.scanDigits()
	if l.peek() == '.' {
		isFloat = true
		l.pos++
		l.scanDigits()
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		save := l.pos
		l.pos++
		if l.peek() == '+' || l.peek() == '-' {
			l.pos++
		}
		if isDigit(l.peek()) {
			isFloat = true
			l.scanDigits()
		} else {
			l.pos = save
		}
	}
	if l.peek() == 'j' || l.peek() == 'J' {
		l.pos++
		return l.litTok(token.Complex, start)
	}
	if isFloat {
		return l.litTok(token.Float, start)
	}
	return l.litTok(token.Int, start)
}

func (l *Lexer) scanDigits() {
	for l.pos < len(l.src) && (isDigit(l.peek()) || l.peek() == '_') {
		l.pos++
	}
}

// ----------------------------------------------------------------------------
// Operators and delimiters

func (l *Lexer) lexOperator(start int) token.Token {
	ctx := l.currentFString()
	c := l.peek()
	l.pos++
	two := func(next byte, with, without token.Kind) token.Kind {
		if l.peek() == next {
			l.pos++
			return with
		}
		return without
	}

	switch c {
	case '(':
		l.nesting++
		if ctx != nil && ctx.inInterpolation {
			ctx.bracketDepth++
		}
		return l.tok(token.Lpar, start)
	case ')':
		if l.nesting > 0 {
			l.nesting--
		}
		if ctx != nil && ctx.inInterpolation && ctx.bracketDepth > 0 {
			ctx.bracketDepth--
		}
		return l.tok(token.Rpar, start)
	case '[':
		l.nesting++
		if ctx != nil && ctx.inInterpolation {
			ctx.bracketDepth++
		}
		return l.tok(token.Lsqb, start)
	case ']':
		if l.nesting > 0 {
			l.nesting--
		}
		if ctx != nil && ctx.inInterpolation && ctx.bracketDepth > 0 {
			ctx.bracketDepth--
		}
		return l.tok(token.Rsqb, start)
	case '{':
		l.nesting++
		if ctx != nil && ctx.inInterpolation {
			ctx.bracketDepth++
		}
		return l.tok(token.Lbrace, start)
	case '}':
		if ctx != nil && ctx.inInterpolation && ctx.bracketDepth == 0 {
			ctx.inInterpolation = false
			ctx.inFormatSpec = ctx.specReturn
			ctx.specReturn = false
			return l.tok(token.Rbrace, start)
		}
		if l.nesting > 0 {
			l.nesting--
		}
		if ctx != nil && ctx.inInterpolation && ctx.bracketDepth > 0 {
			ctx.bracketDepth--
		}
		return l.tok(token.Rbrace, start)
	case ',':
		return l.tok(token.Comma, start)
	case ':':
		// A top-level colon inside a replacement field begins the
		// format spec; colons nested in brackets belong to slices,
		// dicts and lambdas.
		if ctx != nil && ctx.inInterpolation && ctx.bracketDepth == 0 {
			ctx.inInterpolation = false
			ctx.inFormatSpec = true
			return l.tok(token.Colon, start)
		}
		return l.tok(two('=', token.ColonEqual, token.Colon), start)
	case ';':
		return l.tok(token.Semi, start)
	case '.':
		if l.peek() == '.' && l.peek2() == '.' {
			l.pos += 2
			return l.tok(token.Ellipsis, start)
		}
		return l.tok(token.Dot, start)
	case '@':
		return l.tok(two('=', token.AtEqual, token.At), start)
	case '+':
		return l.tok(two('=', token.PlusEqual, token.Plus), start)
	case '-':
		if l.peek() == '>' {
			l.pos++
			return l.tok(token.Rarrow, start)
		}
		return l.tok(two('=', token.MinusEqual, token.Minus), start)
	case '*':
		if l.peek() == '*' {
			l.pos++
			return l.tok(two('=', token.DoubleStarEqual, token.DoubleStar), start)
		}
		return l.tok(two('=', token.StarEqual, token.Star), start)
	case '/':
		if l.peek() == '/' {
			l.pos++
			return l.tok(two('=', token.DoubleSlashEqual, token.DoubleSlash), start)
		}
		return l.tok(two('=', token.SlashEqual, token.Slash), start)
	case '%':
		return l.tok(two('=', token.PercentEqual, token.Percent), start)
	case '&':
		return l.tok(two('=', token.AmperEqual, token.Amper), start)
	case '|':
		return l.tok(two('=', token.VbarEqual, token.Vbar), start)
	case '^':
		return l.tok(two('=', token.CircumflexEqual, token.Circumflex), start)
	case '~':
		return l.tok(token.Tilde, start)
	case '<':
		if l.peek() == '<' {
			l.pos++
			return l.tok(two('=', token.LeftShiftEqual, token.LeftShift), start)
		}
		return l.tok(two('=', token.LessEqual, token.Less), start)
	case '>':
		if l.peek() == '>' {
			l.pos++
			return l.tok(two('=', token.RightShiftEqual, token.RightShift), start)
		}
		return l.tok(two('=', token.GreaterEqual, token.Greater), start)
	case '=':
		return l.tok(two('=', token.EqEqual, token.Equal), start)
	case '!':
		if l.peek() == '=' {
			l.pos++
			return l.tok(token.NotEqual, start)
		}
		if ctx != nil && ctx.inInterpolation {
			return l.tok(token.Exclamation, start)
		}
		if l.interactive {
			return l.tok(token.Exclamation, start)
		}
		l.errorf(source.NewRange(start, l.pos), "unexpected character '!'")
		return l.tok(token.Unknown, start)
	case '?':
		if l.interactive {
			return l.tok(token.Question, start)
		}
		l.errorf(source.NewRange(start, l.pos), "unexpected character '?'")
		return l.tok(token.Unknown, start)
	default:
		l.errorf(source.NewRange(start, l.pos), "unexpected character "+quoteByte(c))
		return l.tok(token.Unknown, start)
	}
}

func quoteByte(c byte) string {
	return "'" + string(rune(c)) + "'"
}

// ----------------------------------------------------------------------------
// Interactive escape commands

func (l *Lexer) isEscapeCommandStart() bool {
	switch l.peek() {
	case '%', '!', '?', '/', ';', ',':
		return true
	}
	return false
}

// lexEscapeCommand consumes a whole escape-command line, prefix
// included, as a single token.
func (l *Lexer) lexEscapeCommand() token.Token {
	start := l.pos
	for l.pos < len(l.src) && l.peek() != '\n' && l.peek() != '\r' {
		l.pos++
	}
	l.lineContent = true
	return l.litTok(token.EscapeCommand, start)
}
