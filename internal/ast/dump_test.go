package ast

import (
	"strings"
	"testing"

	"github.com/pythia-lang/pythia/internal/source"
)

func sampleModule() *Module {
	// x = 1 + y
	return &Module{
		Range: source.NewRange(0, 9),
		Body: []Stmt{
			&Assign{
				Range:   source.NewRange(0, 9),
				Targets: []Expr{&Name{Range: source.NewRange(0, 1), ID: "x", Ctx: Store}},
				Value: &BinOp{
					Range: source.NewRange(4, 9),
					Left:  &IntLiteral{Range: source.NewRange(4, 5), Value: "1"},
					Op:    OpAdd,
					Right: &Name{Range: source.NewRange(8, 9), ID: "y", Ctx: Load},
				},
			},
		},
	}
}

func TestDump(t *testing.T) {
	out := Dump(sampleModule())
	for _, want := range []string{"Module", "Assign", "BinOp +", "Name x", "IntLiteral 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if !strings.HasPrefix(lines[1], "  ") {
		t.Errorf("children not indented:\n%s", out)
	}
}

func TestInspectPrunes(t *testing.T) {
	Inspect(sampleModule(), func(n Node) bool {
		if _, ok := n.(*IntLiteral); ok {
			t.Error("pruned subtree was still visited")
		}
		_, isBinOp := n.(*BinOp)
		return !isBinOp
	})
}
