package parser

import (
	"fmt"
	"testing"

	"github.com/pythia-lang/pythia/internal/ast"
)

// casePattern parses a one-case match statement and renders its
// pattern.
func casePattern(t *testing.T, pattern string) string {
	t.Helper()
	src := fmt.Sprintf("match subject:\n    case %s:\n        pass\n", pattern)
	program := ParseModule(src)
	for _, err := range program.Errors {
		t.Errorf("ParseModule(%q) error: %v", src, err)
	}
	match, ok := program.Module().Body[0].(*ast.Match)
	if !ok {
		t.Fatalf("body[0] = %T, want *ast.Match", program.Module().Body[0])
	}
	return ast.PatternString(match.Cases[0].Pattern)
}

func TestMatchPatterns(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1", "1"},
		{"-1", "(-1)"},
		{"1.5", "1.5"},
		{"2j", "2j"},
		{"3 + 4j", "(3 + 4j)"},
		{"3 - 4j", "(3 - 4j)"},
		{"-1 + 2j", "((-1) + 2j)"},
		{`"text"`, `"text"`},
		{"None", "None"},
		{"True", "True"},
		{"False", "False"},
		{"x", "x"},
		{"_", "_"},
		{"Color.RED", "Color.RED"},
		{"mod.sub.NAME", "mod.sub.NAME"},
		{"1 | 2 | 3", "(1 | 2 | 3)"},
		{"x as y", "(x as y)"},
		{"[x] as y", "([x] as y)"},
		{"1 | 2 as n", "((1 | 2) as n)"},
		{"[]", "[]"},
		{"[1, 2]", "[1, 2]"},
		{"[1, *rest]", "[1, *rest]"},
		{"[_, *_]", "[_, *_]"},
		{"(1, 2)", "[1, 2]"},
		{"(1,)", "[1]"},
		{"()", "[]"},
		{"(x)", "x"},
		{"1, 2", "[1, 2]"},
		{"x, *rest", "[x, *rest]"},
		{"{}", "{}"},
		{`{"k": v}`, `{"k": v}`},
		{"{1: x, **rest}", "{1: x, **rest}"},
		{"{None: x}", "{None: x}"},
		{"Point()", "Point()"},
		{"Point(1, 2)", "Point(1, 2)"},
		{"Point(x=0, y=0)", "Point(x=0, y=0)"},
		{"Point(1, y=2)", "Point(1, y=2)"},
		{"geom.Point(1)", "geom.Point(1)"},
		{"[Point(0, 0), Point(x, y)]", "[Point(0, 0), Point(x, y)]"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := casePattern(t, tt.input); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestMatchCaseGuard(t *testing.T) {
	src := "match x:\n    case n if n > 0:\n        pass\n    case _:\n        pass\n"
	module := parseValidModule(t, src)
	match := module.Body[0].(*ast.Match)
	if len(match.Cases) != 2 {
		t.Fatalf("cases = %d, want 2", len(match.Cases))
	}
	if match.Cases[0].Guard == nil {
		t.Error("guard missing")
	}
	if match.Cases[1].Guard != nil {
		t.Error("wildcard case has a guard")
	}
}

func TestMatchPatternErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
	}{
		{"operator literal", "case +1:\n        pass", ErrInvalidMatchPatternLiteral},
		{"positional after keyword", "case Point(x=1, 2):\n        pass", ErrExpectedMatchPattern},
		{"sequence as class", "case [1]():\n        pass", ErrInvalidMatchPatternTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "match x:\n    " + tt.input + "\n"
			program := ParseModule(src)
			if program.Valid() {
				t.Fatal("expected diagnostics")
			}
			if !hasErrorKind(program, tt.kind) {
				t.Errorf("errors = %v, want kind %d", program.Errors, tt.kind)
			}
		})
	}
	t.Run("no cases", func(t *testing.T) {
		program := ParseModule("match x:\n    pass\n")
		if !hasErrorKind(program, ErrExpectedMatchPattern) {
			t.Errorf("errors = %v, want missing-case diagnostic", program.Errors)
		}
	})
}
