package ast

import (
	"fmt"
	"strings"
)

type dumper struct {
	b     strings.Builder
	depth int
}

func (d *dumper) Visit(node Node) Visitor {
	if node == nil {
		d.depth--
		return nil
	}
	name := fmt.Sprintf("%T", node)
	name = strings.TrimPrefix(name, "*ast.")
	d.b.WriteString(strings.Repeat("  ", d.depth))
	d.b.WriteString(name)
	switch n := node.(type) {
	case *Name:
		fmt.Fprintf(&d.b, " %s", n.ID)
	case *Identifier:
		fmt.Fprintf(&d.b, " %s", n.Name)
	case *IntLiteral:
		fmt.Fprintf(&d.b, " %s", n.Value)
	case *FloatLiteral:
		fmt.Fprintf(&d.b, " %g", n.Value)
	case *StringLiteral:
		fmt.Fprintf(&d.b, " %q", n.Value)
	case *BoolOp:
		fmt.Fprintf(&d.b, " %s", n.Op)
	case *BinOp:
		fmt.Fprintf(&d.b, " %s", n.Op)
	case *UnaryExpr:
		fmt.Fprintf(&d.b, " %s", n.Op)
	case *AugAssign:
		fmt.Fprintf(&d.b, " %s=", n.Op)
	case *Invalid:
		fmt.Fprintf(&d.b, " %q", n.Text)
	}
	fmt.Fprintf(&d.b, " [%s]\n", node.NodeRange())
	d.depth++
	return d
}

// Dump renders the tree as an indented listing of node names and
// ranges, one node per line.
func Dump(node Node) string {
	d := &dumper{}
	Walk(d, node)
	return d.b.String()
}
