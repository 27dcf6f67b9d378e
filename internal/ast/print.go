package ast

import (
	"fmt"
	"strings"
)

// ExprString renders an expression in a fully parenthesized form that
// makes grouping and chain flattening visible. Used by the tree dump
// and by precedence tests.
func ExprString(e Expr) string {
	switch n := e.(type) {
	case *Name:
		return n.ID
	case *IntLiteral:
		return n.Value
	case *FloatLiteral:
		return fmt.Sprintf("%g", n.Value)
	case *ComplexLiteral:
		if n.Real != 0 {
			return fmt.Sprintf("(%g+%gj)", n.Real, n.Imag)
		}
		return fmt.Sprintf("%gj", n.Imag)
	case *StringLiteral:
		return fmt.Sprintf("%q", n.Value)
	case *BytesLiteral:
		return fmt.Sprintf("b%q", string(n.Value))
	case *FString:
		var b strings.Builder
		b.WriteString("f\"")
		for _, el := range n.Elements {
			switch el := el.(type) {
			case *FStringText:
				b.WriteString(el.Value)
			case *FormattedValue:
				b.WriteByte('{')
				b.WriteString(ExprString(el.Value))
				b.WriteString(el.Conversion.String())
				if el.FormatSpec != nil {
					b.WriteByte(':')
					b.WriteString(strings.Trim(ExprString(el.FormatSpec), "f\""))
				}
				b.WriteByte('}')
			}
		}
		b.WriteByte('"')
		return b.String()
	case *BooleanLiteral:
		if n.Value {
			return "True"
		}
		return "False"
	case *NoneLiteral:
		return "None"
	case *EllipsisLiteral:
		return "..."
	case *Tuple:
		return "(" + joinExprs(n.Elts) + ")"
	case *List:
		return "[" + joinExprs(n.Elts) + "]"
	case *SetExpr:
		return "{" + joinExprs(n.Elts) + "}"
	case *Dict:
		parts := make([]string, len(n.Items))
		for i, item := range n.Items {
			if item.Key == nil {
				parts[i] = "**" + ExprString(item.Value)
			} else {
				parts[i] = ExprString(item.Key) + ": " + ExprString(item.Value)
			}
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *ListComp:
		return "[" + ExprString(n.Elt) + comprehensionsString(n.Generators) + "]"
	case *SetComp:
		return "{" + ExprString(n.Elt) + comprehensionsString(n.Generators) + "}"
	case *DictComp:
		return "{" + ExprString(n.Key) + ": " + ExprString(n.Value) +
			comprehensionsString(n.Generators) + "}"
	case *GeneratorExpr:
		return "(" + ExprString(n.Elt) + comprehensionsString(n.Generators) + ")"
	case *BoolOp:
		parts := make([]string, len(n.Values))
		for i, v := range n.Values {
			parts[i] = ExprString(v)
		}
		return "(" + strings.Join(parts, " "+n.Op.String()+" ") + ")"
	case *BinOp:
		return "(" + ExprString(n.Left) + " " + n.Op.String() + " " + ExprString(n.Right) + ")"
	case *UnaryExpr:
		if n.Op == UnaryNot {
			return "(not " + ExprString(n.Operand) + ")"
		}
		return "(" + n.Op.String() + ExprString(n.Operand) + ")"
	case *Compare:
		var b strings.Builder
		b.WriteByte('(')
		b.WriteString(ExprString(n.Left))
		for i, op := range n.Ops {
			b.WriteString(" " + op.String() + " ")
			b.WriteString(ExprString(n.Comparators[i]))
		}
		b.WriteByte(')')
		return b.String()
	case *Call:
		parts := make([]string, 0, len(n.Args.Args)+len(n.Args.Keywords))
		for _, a := range n.Args.Args {
			parts = append(parts, ExprString(a))
		}
		for _, kw := range n.Args.Keywords {
			if kw.Arg == nil {
				parts = append(parts, "**"+ExprString(kw.Value))
			} else {
				parts = append(parts, kw.Arg.Name+"="+ExprString(kw.Value))
			}
		}
		return ExprString(n.Func) + "(" + strings.Join(parts, ", ") + ")"
	case *Attribute:
		return ExprString(n.Value) + "." + n.Attr.Name
	case *Subscript:
		return ExprString(n.Value) + "[" + ExprString(n.Slice) + "]"
	case *SliceExpr:
		var b strings.Builder
		if n.Lower != nil {
			b.WriteString(ExprString(n.Lower))
		}
		b.WriteByte(':')
		if n.Upper != nil {
			b.WriteString(ExprString(n.Upper))
		}
		if n.Step != nil {
			b.WriteByte(':')
			b.WriteString(ExprString(n.Step))
		}
		return b.String()
	case *Starred:
		return "*" + ExprString(n.Value)
	case *Lambda:
		if n.Params == nil || n.Params.IsEmpty() {
			return "(lambda: " + ExprString(n.Body) + ")"
		}
		return "(lambda " + paramsString(n.Params) + ": " + ExprString(n.Body) + ")"
	case *IfExpr:
		return "(" + ExprString(n.Body) + " if " + ExprString(n.Test) +
			" else " + ExprString(n.Orelse) + ")"
	case *Named:
		return "(" + ExprString(n.Target) + " := " + ExprString(n.Value) + ")"
	case *Await:
		return "(await " + ExprString(n.Value) + ")"
	case *Yield:
		if n.Value == nil {
			return "(yield)"
		}
		return "(yield " + ExprString(n.Value) + ")"
	case *YieldFrom:
		return "(yield from " + ExprString(n.Value) + ")"
	case *Invalid:
		return "<invalid>"
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func joinExprs(elts []Expr) string {
	parts := make([]string, len(elts))
	for i, e := range elts {
		parts[i] = ExprString(e)
	}
	return strings.Join(parts, ", ")
}

func comprehensionsString(gens []*Comprehension) string {
	var b strings.Builder
	for _, g := range gens {
		if g.IsAsync {
			b.WriteString(" async")
		}
		b.WriteString(" for " + ExprString(g.Target) + " in " + ExprString(g.Iter))
		for _, cond := range g.Ifs {
			b.WriteString(" if " + ExprString(cond))
		}
	}
	return b.String()
}

func paramsString(p *Parameters) string {
	var parts []string
	withDefault := func(pd *ParameterWithDefault) string {
		s := pd.Param.Name.Name
		if pd.Default != nil {
			s += "=" + ExprString(pd.Default)
		}
		return s
	}
	for _, pd := range p.PosOnly {
		parts = append(parts, withDefault(pd))
	}
	if len(p.PosOnly) > 0 {
		parts = append(parts, "/")
	}
	for _, pd := range p.Args {
		parts = append(parts, withDefault(pd))
	}
	if p.VarArg != nil {
		parts = append(parts, "*"+p.VarArg.Name.Name)
	} else if len(p.KwOnly) > 0 {
		parts = append(parts, "*")
	}
	for _, pd := range p.KwOnly {
		parts = append(parts, withDefault(pd))
	}
	if p.KwArg != nil {
		parts = append(parts, "**"+p.KwArg.Name.Name)
	}
	return strings.Join(parts, ", ")
}

// PatternString renders a pattern in a compact single-line form.
func PatternString(p Pattern) string {
	switch n := p.(type) {
	case *MatchValue:
		return ExprString(n.Value)
	case *MatchSingleton:
		return n.Value.String()
	case *MatchSequence:
		parts := make([]string, len(n.Patterns))
		for i, sub := range n.Patterns {
			parts[i] = PatternString(sub)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *MatchMapping:
		parts := make([]string, 0, len(n.Keys)+1)
		for i := range n.Keys {
			parts = append(parts, ExprString(n.Keys[i])+": "+PatternString(n.Patterns[i]))
		}
		if n.Rest != nil {
			parts = append(parts, "**"+n.Rest.Name)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *MatchClass:
		parts := make([]string, 0, len(n.Patterns)+len(n.Keywords))
		for _, sub := range n.Patterns {
			parts = append(parts, PatternString(sub))
		}
		for _, kw := range n.Keywords {
			parts = append(parts, kw.Attr.Name+"="+PatternString(kw.Pattern))
		}
		return ExprString(n.Cls) + "(" + strings.Join(parts, ", ") + ")"
	case *MatchStar:
		if n.Name == nil {
			return "*_"
		}
		return "*" + n.Name.Name
	case *MatchAs:
		name := "_"
		if n.Name != nil {
			name = n.Name.Name
		}
		if n.Pattern == nil {
			return name
		}
		return "(" + PatternString(n.Pattern) + " as " + name + ")"
	case *MatchOr:
		parts := make([]string, len(n.Patterns))
		for i, sub := range n.Patterns {
			parts[i] = PatternString(sub)
		}
		return "(" + strings.Join(parts, " | ") + ")"
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("<%T>", p)
	}
}
