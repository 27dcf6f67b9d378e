package parser

import (
	"sort"
	"strings"
	"testing"

	"github.com/pythia-lang/pythia/internal/ast"
)

func TestRecoveryKeepsParsing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
		// number of top-level statements expected despite the error
		stmts int
	}{
		{"missing colon", "if x\n    pass\ny = 1\n", ErrExpectedToken, 2},
		{"missing expression", "x = \ny = 1\n", ErrExpectedExpression, 2},
		{"bad target", "1 = x\ny = 2\n", ErrInvalidAssignmentTarget, 2},
		{"bad aug target", "a + b += 1\nok = 1\n", ErrInvalidAugmentedAssignmentTarget, 2},
		{"bad delete", "del f()\nok = 1\n", ErrInvalidDeleteTarget, 2},
		{"bad for target", "for f(): pass\nok = 1\n", ErrInvalidForTarget, 2},
		{"statement walrus", "x := 1\nok = 1\n", ErrUnparenthesizedNamedExpr, 2},
		{"missing block", "if x:\ny = 1\n", ErrExpectedIndentedBlock, 2},
		{"stray indent", "x = 1\n    y = 2\nz = 3\n", ErrUnexpectedIndentation, 3},
		{"missing separator", "x = 1 y = 2\nz = 3\n", ErrSimpleStatementsOnSameLine, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program := ParseModule(tt.input)
			if program.Valid() {
				t.Fatalf("ParseModule(%q) reported no errors", tt.input)
			}
			if !hasErrorKind(program, tt.kind) {
				t.Errorf("errors = %v, want kind %d", program.Errors, tt.kind)
			}
			module := program.Module()
			count := 0
			for _, stmt := range module.Body {
				if expr, ok := stmt.(*ast.ExprStmt); ok {
					if _, invalid := expr.Value.(*ast.Invalid); invalid {
						continue
					}
				}
				count++
			}
			if count < tt.stmts {
				t.Errorf("recovered statements = %d, want at least %d", count, tt.stmts)
			}
		})
	}
}

func TestDeepNestingGuard(t *testing.T) {
	src := strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300) + "\n"
	program := ParseModule(src)
	if !hasErrorKind(program, ErrTooDeeplyNested) {
		t.Error("missing nesting-depth diagnostic")
	}
	if program.Module() == nil {
		t.Error("no tree produced")
	}
}

func TestErrorsSortedByPosition(t *testing.T) {
	inputs := []string{
		"x = $\ny = (\n",
		"def f(:\n    pass\n",
		"a = ] b = [\n",
		"f'{x\nz = $\n",
		"1 +\n* 2\n",
	}
	for _, src := range inputs {
		t.Run(src, func(t *testing.T) {
			program := ParseModule(src)
			if program.Valid() {
				t.Fatalf("ParseModule(%q) reported no errors", src)
			}
			sorted := sort.SliceIsSorted(program.Errors, func(i, j int) bool {
				return program.Errors[i].Range.Start < program.Errors[j].Range.Start
			})
			if !sorted {
				t.Errorf("errors not ordered by start offset: %v", program.Errors)
			}
		})
	}
}

func TestLexicalErrorsSurface(t *testing.T) {
	program := ParseModule("x = 1 $ 2\n")
	found := false
	for _, err := range program.Errors {
		if err.Kind == ErrLexical {
			found = true
		}
	}
	if !found {
		t.Errorf("errors = %v, want a lexical diagnostic", program.Errors)
	}
}

func TestSkippedTextBecomesInvalidNode(t *testing.T) {
	program := ParseModule("if x ] junk:\n    pass\n")
	if program.Valid() {
		t.Fatal("expected diagnostics")
	}
	found := false
	ast.Inspect(program.Syntax, func(n ast.Node) bool {
		if _, ok := n.(*ast.Invalid); ok {
			found = true
		}
		return true
	})
	if !found {
		t.Error("skipped tokens did not surface as an Invalid node")
	}
}

func TestNodeRangesWithinSource(t *testing.T) {
	srcs := []string{
		"def f(a, b=1):\n    return a + b\n",
		"class C:\n    x: int = 0\n\n    def m(self):\n        for i in range(3):\n            yield i\n",
		"with open(p) as f:\n    data = f.read()\n",
		"match x:\n    case [1, *rest] if rest:\n        pass\n    case _:\n        pass\n",
	}
	for _, src := range srcs {
		program := ParseModule(src)
		if !program.Valid() {
			t.Fatalf("ParseModule(%q) errors: %v", src, program.Errors)
		}
		ast.Inspect(program.Syntax, func(n ast.Node) bool {
			if n == nil {
				return true
			}
			r := n.NodeRange()
			if r.Start < 0 || r.End > len(src) || r.Start > r.End {
				t.Errorf("node %T has range %s outside source of length %d", n, r, len(src))
			}
			return true
		})
	}
}

func TestStatementRangeExcludesTrailingTrivia(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"x = 1\n", "x = 1"},
		{"x = 1  \n", "x = 1"},
		{"x = 1;\n", "x = 1"},
		{"if a:\n    pass\n\n\n", "if a:\n    pass"},
		{"def f():\n    pass\n# trailing comment\n", "def f():\n    pass"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			module := parseValidModule(t, tt.input)
			r := module.Body[0].NodeRange()
			if got := tt.input[r.Start:r.End]; got != tt.text {
				t.Errorf("statement text = %q, want %q", got, tt.text)
			}
		})
	}
}
