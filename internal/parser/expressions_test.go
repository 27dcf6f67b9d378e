package parser

import (
	"testing"

	"github.com/pythia-lang/pythia/internal/ast"
)

// exprString parses src in expression mode and renders the result in
// the fully parenthesized debug form.
func exprString(t *testing.T, src string) string {
	t.Helper()
	program := ParseExpression(src)
	for _, err := range program.Errors {
		t.Errorf("ParseExpression(%q) error: %v", src, err)
	}
	expr, ok := program.Syntax.(*ast.Expression)
	if !ok {
		t.Fatalf("ParseExpression(%q) root = %T, want *ast.Expression", src, program.Syntax)
	}
	return ast.ExprString(expr.Body)
}

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"-2 ** 2", "(-(2 ** 2))"},
		{"1 + 2 - 3", "((1 + 2) - 3)"},
		{"8 // 3 % 2", "((8 // 3) % 2)"},
		{"a @ b @ c", "((a @ b) @ c)"},
		{"1 << 2 | 3 & 4 ^ 5", "((1 << 2) | ((3 & 4) ^ 5))"},
		{"~x + 1", "((~x) + 1)"},
		{"a or b and c", "(a or (b and c))"},
		{"not a or b", "((not a) or b)"},
		{"not a == b", "(not (a == b))"},
		{"a or b or c", "(a or b or c)"},
		{"a and b and c", "(a and b and c)"},
		{"a < b < c", "(a < b < c)"},
		{"a is not b", "(a is not b)"},
		{"x not in xs", "(x not in xs)"},
		{"a == b != c", "(a == b != c)"},
		{"await x ** 2", "((await x) ** 2)"},
		{"a if b else c", "(a if b else c)"},
		{"a if b else c if d else e", "(a if b else (c if d else e))"},
		{"lambda: 1", "(lambda: 1)"},
		{"lambda x, y=1: x + y", "(lambda x, y=1: (x + y))"},
		{"(x := 5)", "(x := 5)"},
		{"1, 2, 3", "(1, 2, 3)"},
		{"1,", "(1)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := exprString(t, tt.input); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestExpressionPostfix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a.b.c", "a.b.c"},
		{"f(x)", "f(x)"},
		{"f(x, *a, y=1, **k)", "f(x, *a, y=1, **k)"},
		{"f(x for x in xs)", "f((x for x in xs))"},
		{"obj.method(1)[2]", "obj.method(1)[2]"},
		{"a[1]", "a[1]"},
		{"a[1:2]", "a[1:2]"},
		{"a[::2]", "a[::2]"},
		{"a[1:2, ::3]", "a[(1:2, ::3)]"},
		{"a[b, c]", "a[(b, c)]"},
		{"match.group(1)", "match.group(1)"},
		{"type(x)", "type(x)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := exprString(t, tt.input); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestExpressionDisplays(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"[]", "[]"},
		{"[1, 2]", "[1, 2]"},
		{"[1, *rest]", "[1, *rest]"},
		{"()", "()"},
		{"(1,)", "(1)"},
		{"{1, 2}", "{1, 2}"},
		{`{"a": 1, **extra}`, `{"a": 1, **extra}`},
		{"{}", "{}"},
		{"[x for x in xs if x]", "[x for x in xs if x]"},
		{"[y := f(x) for x in xs]", "[(y := f(x)) for x in xs]"},
		{"{k: v for k, v in items}", "{k: v for (k, v) in items}"},
		{"{x for x in xs}", "{x for x in xs}"},
		{"(x async for x in aiter())", "(x async for x in aiter())"},
		{"[x for x in xs for y in x]", "[x for x in xs for y in x]"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := exprString(t, tt.input); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestExpressionLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0x_FF", "0xFF"},
		{"1_000_000", "1000000"},
		{"1.5e2", "150"},
		{"2j", "2j"},
		{"True", "True"},
		{"None", "None"},
		{"...", "..."},
		{`"a" "b"`, `"ab"`},
		{`b"ab" b"cd"`, `b"abcd"`},
		{`r"\n"`, `"\\n"`},
		{`"é"`, `"é"`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := exprString(t, tt.input); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestFStringExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`f"x={x}"`, `f"x={x}"`},
		{`f"{x!r}"`, `f"{x!r}"`},
		{`f"{x:>10}"`, `f"{x:>10}"`},
		{`f"{x:{width}}"`, `f"{x:{width}}"`},
		{`f"{a + b}"`, `f"{(a + b)}"`},
		{`f"{d['k']}"`, `f"{d["k"]}"`},
		{`"pre" f"{x}"`, `f"pre{x}"`},
		{`f"{(lambda x: x)}"`, `f"{(lambda x: x)}"`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := exprString(t, tt.input); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestSoftKeywordsAsNames(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"match", "match"},
		{"case", "case"},
		{"type", "type"},
		{"match.group", "match.group"},
		{"match + case", "(match + case)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := exprString(t, tt.input); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
	}{
		{"walrus target", "(a.b := 1)", ErrInvalidNamedTarget},
		{"starred at top level", "*x", ErrStarredExpressionUsage},
		{"starred in parens", "(*x)", ErrStarredExpressionUsage},
		{"duplicate keyword", "f(a=1, a=2)", ErrDuplicateKeywordArgument},
		{"positional after keyword", "f(a=1, b)", ErrPositionalAfterKeywordArgument},
		{"star after double star", "f(**a, *b)", ErrUnpackedArgumentError},
		{"empty subscript", "a[]", ErrEmptySubscript},
		{"unpacking in comprehension", "[*x for x in xs]", ErrIterableUnpackingInComprehension},
		{"lambda in f-string", `f"{lambda x: x}"`, ErrUnparenthesizedLambdaInFString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program := ParseExpression(tt.input)
			if program.Valid() {
				t.Fatalf("ParseExpression(%q) reported no errors", tt.input)
			}
			found := false
			for _, err := range program.Errors {
				if err.Kind == tt.kind {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("errors = %v, want kind %d", program.Errors, tt.kind)
			}
		})
	}
}
