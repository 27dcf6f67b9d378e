package parser

import (
	"testing"

	"github.com/pythia-lang/pythia/internal/ast"
)

func TestParseModes(t *testing.T) {
	t.Run("module", func(t *testing.T) {
		program := ParseModule("x = 1\ny = 2\n")
		if !program.Valid() {
			t.Fatalf("errors: %v", program.Errors)
		}
		if program.Mode != ModuleMode {
			t.Errorf("mode = %v", program.Mode)
		}
		if len(program.Module().Body) != 2 {
			t.Errorf("body = %d statements, want 2", len(program.Module().Body))
		}
	})
	t.Run("module range covers source", func(t *testing.T) {
		src := "x = 1\n"
		program := ParseModule(src)
		r := program.Module().Range
		if r.Start != 0 || r.End != len(src) {
			t.Errorf("module range = %s, want 0..%d", r, len(src))
		}
	})
	t.Run("empty module", func(t *testing.T) {
		program := ParseModule("")
		if !program.Valid() {
			t.Fatalf("errors: %v", program.Errors)
		}
		if len(program.Module().Body) != 0 {
			t.Error("empty source produced statements")
		}
	})
	t.Run("comments only", func(t *testing.T) {
		program := ParseModule("# a comment\n# another\n")
		if !program.Valid() {
			t.Fatalf("errors: %v", program.Errors)
		}
		if len(program.Module().Body) != 0 {
			t.Error("comment-only source produced statements")
		}
	})
	t.Run("no trailing newline", func(t *testing.T) {
		program := ParseModule("x = 1")
		if !program.Valid() {
			t.Fatalf("errors: %v", program.Errors)
		}
	})
	t.Run("expression", func(t *testing.T) {
		program := ParseExpression("1 + 2")
		expr, ok := program.Syntax.(*ast.Expression)
		if !ok {
			t.Fatalf("root = %T", program.Syntax)
		}
		if _, ok := expr.Body.(*ast.BinOp); !ok {
			t.Errorf("body = %T, want *ast.BinOp", expr.Body)
		}
		if program.Module() != nil {
			t.Error("Module() should be nil in expression mode")
		}
	})
	t.Run("expression rejects statements", func(t *testing.T) {
		program := ParseExpression("1 + 2\nx = 1")
		if program.Valid() {
			t.Error("trailing statement accepted in expression mode")
		}
	})
}

func TestInteractiveMode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ast.EscapeKind
		value string
	}{
		{"magic", "%timeit f()\n", ast.EscapeMagic, "timeit f()"},
		{"cell magic", "%%bash\n", ast.EscapeMagic2, "bash"},
		{"shell", "!ls -la\n", ast.EscapeShell, "ls -la"},
		{"shell capture", "!!ls\n", ast.EscapeShell2, "ls"},
		{"help prefix", "?print\n", ast.EscapeHelp, "print"},
		{"trailing help", "obj.attr?\n", ast.EscapeHelp, "obj.attr"},
		{"trailing verbose help", "obj??\n", ast.EscapeHelp2, "obj"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program := ParseInteractive(tt.input)
			if !program.Valid() {
				t.Fatalf("errors: %v", program.Errors)
			}
			module := program.Module()
			if len(module.Body) != 1 {
				t.Fatalf("body = %d statements, want 1", len(module.Body))
			}
			cmd, ok := module.Body[0].(*ast.EscapeCommand)
			if !ok {
				t.Fatalf("body[0] = %T, want *ast.EscapeCommand", module.Body[0])
			}
			if cmd.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", cmd.Kind, tt.kind)
			}
			if cmd.Value != tt.value {
				t.Errorf("value = %q, want %q", cmd.Value, tt.value)
			}
		})
	}

	t.Run("ordinary statements still parse", func(t *testing.T) {
		program := ParseInteractive("x = 1\n")
		if !program.Valid() {
			t.Fatalf("errors: %v", program.Errors)
		}
		if _, ok := program.Module().Body[0].(*ast.Assign); !ok {
			t.Errorf("body[0] = %T, want *ast.Assign", program.Module().Body[0])
		}
	})
	t.Run("question operator outside interactive", func(t *testing.T) {
		program := ParseModule("x?\n")
		if program.Valid() {
			t.Error("module mode accepted interactive help syntax")
		}
	})
}

func TestProgramValid(t *testing.T) {
	if !ParseModule("pass\n").Valid() {
		t.Error("valid program reported errors")
	}
	if ParseModule("def :\n").Valid() {
		t.Error("invalid program reported no errors")
	}
}
