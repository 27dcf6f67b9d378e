package ast

// Visitor has its Visit method invoked for each node encountered by
// Walk. If the returned visitor is non-nil, Walk descends into the
// node's children with it, followed by a Visit(nil) call.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

func walkStmts(v Visitor, list []Stmt) {
	for _, s := range list {
		Walk(v, s)
	}
}

func walkExprs(v Visitor, list []Expr) {
	for _, e := range list {
		Walk(v, e)
	}
}

func walkExprOpt(v Visitor, e Expr) {
	if e != nil {
		Walk(v, e)
	}
}

func walkComprehensions(v Visitor, list []*Comprehension) {
	for _, c := range list {
		Walk(v, c)
	}
}

// Walk traverses the tree rooted at node in depth-first order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Module:
		walkStmts(v, n.Body)
	case *Expression:
		Walk(v, n.Body)

	case *ExprStmt:
		Walk(v, n.Value)
	case *Assign:
		walkExprs(v, n.Targets)
		Walk(v, n.Value)
	case *AnnAssign:
		Walk(v, n.Target)
		Walk(v, n.Annotation)
		walkExprOpt(v, n.Value)
	case *AugAssign:
		Walk(v, n.Target)
		Walk(v, n.Value)
	case *Return:
		walkExprOpt(v, n.Value)
	case *Pass, *Break, *Continue, *EscapeCommand:
		// no children
	case *Delete:
		walkExprs(v, n.Targets)
	case *Raise:
		walkExprOpt(v, n.Exc)
		walkExprOpt(v, n.Cause)
	case *Assert:
		Walk(v, n.Test)
		walkExprOpt(v, n.Msg)
	case *Global:
		for _, name := range n.Names {
			Walk(v, name)
		}
	case *Nonlocal:
		for _, name := range n.Names {
			Walk(v, name)
		}
	case *Import:
		for _, alias := range n.Names {
			Walk(v, alias)
		}
	case *ImportFrom:
		if n.Module != nil {
			Walk(v, n.Module)
		}
		for _, alias := range n.Names {
			Walk(v, alias)
		}
	case *Alias:
		Walk(v, n.Name)
		if n.AsName != nil {
			Walk(v, n.AsName)
		}
	case *If:
		Walk(v, n.Test)
		walkStmts(v, n.Body)
		for _, clause := range n.ElifClauses {
			Walk(v, clause)
		}
	case *ElifElseClause:
		walkExprOpt(v, n.Test)
		walkStmts(v, n.Body)
	case *While:
		Walk(v, n.Test)
		walkStmts(v, n.Body)
		walkStmts(v, n.Orelse)
	case *For:
		Walk(v, n.Target)
		Walk(v, n.Iter)
		walkStmts(v, n.Body)
		walkStmts(v, n.Orelse)
	case *With:
		for _, item := range n.Items {
			Walk(v, item)
		}
		walkStmts(v, n.Body)
	case *WithItem:
		Walk(v, n.ContextE)
		walkExprOpt(v, n.Optional)
	case *Try:
		walkStmts(v, n.Body)
		for _, h := range n.Handlers {
			Walk(v, h)
		}
		walkStmts(v, n.Orelse)
		walkStmts(v, n.FinalBody)
	case *ExceptHandler:
		walkExprOpt(v, n.Type)
		if n.Name != nil {
			Walk(v, n.Name)
		}
		walkStmts(v, n.Body)
	case *FunctionDef:
		for _, d := range n.Decorators {
			Walk(v, d)
		}
		Walk(v, n.Name)
		if n.TypeParams != nil {
			Walk(v, n.TypeParams)
		}
		if n.Params != nil {
			Walk(v, n.Params)
		}
		walkExprOpt(v, n.Returns)
		walkStmts(v, n.Body)
	case *ClassDef:
		for _, d := range n.Decorators {
			Walk(v, d)
		}
		Walk(v, n.Name)
		if n.TypeParams != nil {
			Walk(v, n.TypeParams)
		}
		if n.Arguments != nil {
			Walk(v, n.Arguments)
		}
		walkStmts(v, n.Body)
	case *Decorator:
		Walk(v, n.Expr)
	case *Match:
		Walk(v, n.Subject)
		for _, c := range n.Cases {
			Walk(v, c)
		}
	case *MatchCase:
		Walk(v, n.Pattern)
		walkExprOpt(v, n.Guard)
		walkStmts(v, n.Body)
	case *TypeAlias:
		Walk(v, n.Name)
		if n.TypeParams != nil {
			Walk(v, n.TypeParams)
		}
		Walk(v, n.Value)

	case *Parameters:
		for _, p := range n.PosOnly {
			Walk(v, p)
		}
		for _, p := range n.Args {
			Walk(v, p)
		}
		if n.VarArg != nil {
			Walk(v, n.VarArg)
		}
		for _, p := range n.KwOnly {
			Walk(v, p)
		}
		if n.KwArg != nil {
			Walk(v, n.KwArg)
		}
	case *ParameterWithDefault:
		Walk(v, n.Param)
		walkExprOpt(v, n.Default)
	case *Parameter:
		Walk(v, n.Name)
		walkExprOpt(v, n.Annotation)
	case *TypeParams:
		for _, p := range n.Params {
			Walk(v, p)
		}
	case *TypeVar:
		Walk(v, n.Name)
		walkExprOpt(v, n.Bound)
		walkExprOpt(v, n.Default)
	case *TypeVarTuple:
		Walk(v, n.Name)
		walkExprOpt(v, n.Default)
	case *ParamSpec:
		Walk(v, n.Name)
		walkExprOpt(v, n.Default)

	case *Name, *IntLiteral, *FloatLiteral, *ComplexLiteral,
		*StringLiteral, *BytesLiteral, *BooleanLiteral, *NoneLiteral,
		*EllipsisLiteral, *Invalid, *Identifier:
		// no children
	case *FString:
		for _, el := range n.Elements {
			Walk(v, el)
		}
	case *FStringText:
		// no children
	case *FormattedValue:
		Walk(v, n.Value)
		if n.FormatSpec != nil {
			Walk(v, n.FormatSpec)
		}
	case *Tuple:
		walkExprs(v, n.Elts)
	case *List:
		walkExprs(v, n.Elts)
	case *SetExpr:
		walkExprs(v, n.Elts)
	case *Dict:
		for _, item := range n.Items {
			walkExprOpt(v, item.Key)
			Walk(v, item.Value)
		}
	case *ListComp:
		Walk(v, n.Elt)
		walkComprehensions(v, n.Generators)
	case *SetComp:
		Walk(v, n.Elt)
		walkComprehensions(v, n.Generators)
	case *DictComp:
		Walk(v, n.Key)
		Walk(v, n.Value)
		walkComprehensions(v, n.Generators)
	case *GeneratorExpr:
		Walk(v, n.Elt)
		walkComprehensions(v, n.Generators)
	case *Comprehension:
		Walk(v, n.Target)
		Walk(v, n.Iter)
		walkExprs(v, n.Ifs)
	case *BoolOp:
		walkExprs(v, n.Values)
	case *BinOp:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *UnaryExpr:
		Walk(v, n.Operand)
	case *Compare:
		Walk(v, n.Left)
		walkExprs(v, n.Comparators)
	case *Call:
		Walk(v, n.Func)
		Walk(v, n.Args)
	case *Arguments:
		walkExprs(v, n.Args)
		for _, kw := range n.Keywords {
			Walk(v, kw)
		}
	case *Keyword:
		if n.Arg != nil {
			Walk(v, n.Arg)
		}
		Walk(v, n.Value)
	case *Attribute:
		Walk(v, n.Value)
		Walk(v, n.Attr)
	case *Subscript:
		Walk(v, n.Value)
		Walk(v, n.Slice)
	case *SliceExpr:
		walkExprOpt(v, n.Lower)
		walkExprOpt(v, n.Upper)
		walkExprOpt(v, n.Step)
	case *Starred:
		Walk(v, n.Value)
	case *Lambda:
		if n.Params != nil {
			Walk(v, n.Params)
		}
		Walk(v, n.Body)
	case *IfExpr:
		Walk(v, n.Body)
		Walk(v, n.Test)
		Walk(v, n.Orelse)
	case *Named:
		Walk(v, n.Target)
		Walk(v, n.Value)
	case *Await:
		Walk(v, n.Value)
	case *Yield:
		walkExprOpt(v, n.Value)
	case *YieldFrom:
		Walk(v, n.Value)

	case *MatchValue:
		Walk(v, n.Value)
	case *MatchSingleton:
		// no children
	case *MatchSequence:
		for _, p := range n.Patterns {
			Walk(v, p)
		}
	case *MatchMapping:
		for i := range n.Keys {
			Walk(v, n.Keys[i])
			Walk(v, n.Patterns[i])
		}
		if n.Rest != nil {
			Walk(v, n.Rest)
		}
	case *MatchClass:
		Walk(v, n.Cls)
		for _, p := range n.Patterns {
			Walk(v, p)
		}
		for _, kw := range n.Keywords {
			Walk(v, kw)
		}
	case *MatchKeyword:
		Walk(v, n.Attr)
		Walk(v, n.Pattern)
	case *MatchStar:
		if n.Name != nil {
			Walk(v, n.Name)
		}
	case *MatchAs:
		if n.Pattern != nil {
			Walk(v, n.Pattern)
		}
		if n.Name != nil {
			Walk(v, n.Name)
		}
	case *MatchOr:
		for _, p := range n.Patterns {
			Walk(v, p)
		}
	}

	v.Visit(nil)
}

// inspector adapts a bool-returning function to the Visitor interface.
type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if node != nil && f(node) {
		return f
	}
	return nil
}

// Inspect traverses the tree, calling f for each node. If f returns
// false, the node's children are skipped.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
