package parser

import (
	"testing"

	"github.com/pythia-lang/pythia/internal/ast"
)

// parseValidModule parses src in module mode and fails the test on any
// diagnostic.
func parseValidModule(t *testing.T, src string) *ast.Module {
	t.Helper()
	program := ParseModule(src)
	for _, err := range program.Errors {
		t.Errorf("ParseModule(%q) error: %v", src, err)
	}
	module := program.Module()
	if module == nil {
		t.Fatalf("ParseModule(%q) root = %T, want *ast.Module", src, program.Syntax)
	}
	return module
}

func TestSimpleStatements(t *testing.T) {
	module := parseValidModule(t, "x = 1; y = 2\npass\nz += 3\n")
	if len(module.Body) != 4 {
		t.Fatalf("len(body) = %d, want 4", len(module.Body))
	}
	if _, ok := module.Body[0].(*ast.Assign); !ok {
		t.Errorf("body[0] = %T, want *ast.Assign", module.Body[0])
	}
	if _, ok := module.Body[2].(*ast.Pass); !ok {
		t.Errorf("body[2] = %T, want *ast.Pass", module.Body[2])
	}
	aug, ok := module.Body[3].(*ast.AugAssign)
	if !ok {
		t.Fatalf("body[3] = %T, want *ast.AugAssign", module.Body[3])
	}
	if aug.Op != ast.OpAdd {
		t.Errorf("aug op = %s, want +", aug.Op)
	}
}

func TestAssignmentForms(t *testing.T) {
	t.Run("chained", func(t *testing.T) {
		module := parseValidModule(t, "a = b = c\n")
		assign := module.Body[0].(*ast.Assign)
		if len(assign.Targets) != 2 {
			t.Fatalf("targets = %d, want 2", len(assign.Targets))
		}
		for _, target := range assign.Targets {
			if name, ok := target.(*ast.Name); !ok || name.Ctx != ast.Store {
				t.Errorf("target %s has ctx %v, want Store", ast.ExprString(target), name.Ctx)
			}
		}
	})
	t.Run("tuple target", func(t *testing.T) {
		module := parseValidModule(t, "a, b = b, a\n")
		assign := module.Body[0].(*ast.Assign)
		target := assign.Targets[0].(*ast.Tuple)
		if target.Ctx != ast.Store {
			t.Errorf("tuple ctx = %v, want Store", target.Ctx)
		}
		if elt := target.Elts[0].(*ast.Name); elt.Ctx != ast.Store {
			t.Errorf("element ctx = %v, want Store", elt.Ctx)
		}
	})
	t.Run("annotated simple", func(t *testing.T) {
		module := parseValidModule(t, "x: int = 1\n")
		ann := module.Body[0].(*ast.AnnAssign)
		if !ann.Simple {
			t.Error("Simple = false, want true")
		}
		if ann.Value == nil {
			t.Error("Value = nil")
		}
	})
	t.Run("annotated parenthesized target", func(t *testing.T) {
		module := parseValidModule(t, "(x): int\n")
		ann := module.Body[0].(*ast.AnnAssign)
		if ann.Simple {
			t.Error("Simple = true, want false for parenthesized target")
		}
	})
	t.Run("starred unpacking", func(t *testing.T) {
		module := parseValidModule(t, "a, *rest = xs\n")
		assign := module.Body[0].(*ast.Assign)
		target := assign.Targets[0].(*ast.Tuple)
		starred := target.Elts[1].(*ast.Starred)
		if starred.Ctx != ast.Store {
			t.Errorf("starred ctx = %v, want Store", starred.Ctx)
		}
	})
	t.Run("yield value", func(t *testing.T) {
		module := parseValidModule(t, "x = yield f()\n")
		assign := module.Body[0].(*ast.Assign)
		if _, ok := assign.Value.(*ast.Yield); !ok {
			t.Errorf("value = %T, want *ast.Yield", assign.Value)
		}
	})
}

func TestIfStatement(t *testing.T) {
	src := "if a:\n    x = 1\nelif b:\n    x = 2\nelif c:\n    x = 3\nelse:\n    x = 4\n"
	module := parseValidModule(t, src)
	ifStmt := module.Body[0].(*ast.If)
	if len(ifStmt.ElifClauses) != 3 {
		t.Fatalf("clauses = %d, want 3", len(ifStmt.ElifClauses))
	}
	if ifStmt.ElifClauses[2].Test != nil {
		t.Error("else clause has a test")
	}
	if ifStmt.ElifClauses[1].Test == nil {
		t.Error("second elif clause lost its test")
	}
	if len(ifStmt.Body) != 1 {
		t.Errorf("body length = %d, want 1", len(ifStmt.Body))
	}
}

func TestLoopStatements(t *testing.T) {
	t.Run("while else", func(t *testing.T) {
		module := parseValidModule(t, "while x:\n    pass\nelse:\n    done()\n")
		while := module.Body[0].(*ast.While)
		if len(while.Orelse) != 1 {
			t.Errorf("orelse = %d, want 1", len(while.Orelse))
		}
	})
	t.Run("for", func(t *testing.T) {
		module := parseValidModule(t, "for i, v in enumerate(xs):\n    print(i)\n")
		forStmt := module.Body[0].(*ast.For)
		target := forStmt.Target.(*ast.Tuple)
		if target.Ctx != ast.Store {
			t.Errorf("target ctx = %v, want Store", target.Ctx)
		}
		if forStmt.IsAsync {
			t.Error("IsAsync = true")
		}
	})
	t.Run("async for", func(t *testing.T) {
		module := parseValidModule(t, "async for item in aiter():\n    pass\n")
		forStmt := module.Body[0].(*ast.For)
		if !forStmt.IsAsync {
			t.Error("IsAsync = false")
		}
	})
	t.Run("for in comparison iter", func(t *testing.T) {
		// the `in` after the target list belongs to the loop, the one in
		// the iterable is a comparison
		module := parseValidModule(t, "for x in a in b:\n    pass\n")
		forStmt := module.Body[0].(*ast.For)
		if _, ok := forStmt.Iter.(*ast.Compare); !ok {
			t.Errorf("iter = %T, want *ast.Compare", forStmt.Iter)
		}
	})
}

func TestWithStatement(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		items     int
		itemText  string
		optionals int
	}{
		{"single", "with open(p) as f:\n    pass\n", 1, "open(p) as f", 1},
		{"multiple", "with a as x, b as y:\n    pass\n", 2, "a as x", 2},
		{"parenthesized items", "with (a as x, b as y):\n    pass\n", 2, "a as x", 2},
		{"parenthesized single", "with (a):\n    pass\n", 1, "a", 0},
		{"parenthesized tuple", "with (a, b):\n    pass\n", 2, "a", 0},
		{"empty tuple", "with ():\n    pass\n", 1, "()", 0},
		{"walrus item", "with (x := open(p)):\n    pass\n", 1, "x := open(p)", 0},
		{"walrus item with target", "with (x := open(p)) as f:\n    pass\n", 1, "(x := open(p)) as f", 1},
		{"starred tuple", "with (*a,):\n    pass\n", 1, "(*a,)", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module := parseValidModule(t, tt.input)
			with := module.Body[0].(*ast.With)
			if len(with.Items) != tt.items {
				t.Fatalf("items = %d, want %d", len(with.Items), tt.items)
			}
			r := with.Items[0].Range
			if got := tt.input[r.Start:r.End]; got != tt.itemText {
				t.Errorf("item text = %q, want %q", got, tt.itemText)
			}
			optionals := 0
			for _, item := range with.Items {
				if item.Optional != nil {
					optionals++
				}
			}
			if optionals != tt.optionals {
				t.Errorf("optionals = %d, want %d", optionals, tt.optionals)
			}
		})
	}

	// `with (*a):` is diagnosed (a lone starred expression is not a
	// context manager) but the item range still sheds the parens.
	t.Run("parenthesized starred", func(t *testing.T) {
		src := "with (*a):\n    pass\n"
		program := ParseModule(src)
		with, ok := program.Module().Body[0].(*ast.With)
		if !ok {
			t.Fatalf("body[0] = %T, want *ast.With", program.Module().Body[0])
		}
		if len(with.Items) != 1 {
			t.Fatalf("items = %d, want 1", len(with.Items))
		}
		r := with.Items[0].Range
		if got := src[r.Start:r.End]; got != "*a" {
			t.Errorf("item text = %q, want %q", got, "*a")
		}
	})
}

func TestTryStatement(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		src := "try:\n    f()\nexcept ValueError as e:\n    a()\nexcept Exception:\n    b()\nelse:\n    c()\nfinally:\n    d()\n"
		module := parseValidModule(t, src)
		try := module.Body[0].(*ast.Try)
		if len(try.Handlers) != 2 {
			t.Fatalf("handlers = %d, want 2", len(try.Handlers))
		}
		if try.Handlers[0].Name == nil || try.Handlers[0].Name.Name != "e" {
			t.Error("first handler lost its name binding")
		}
		if try.Handlers[1].Name != nil {
			t.Error("second handler has an unexpected name")
		}
		if len(try.Orelse) != 1 || len(try.FinalBody) != 1 {
			t.Error("else or finally body missing")
		}
		if try.IsStar {
			t.Error("IsStar = true for plain except")
		}
	})
	t.Run("except star", func(t *testing.T) {
		src := "try:\n    f()\nexcept* ValueError:\n    pass\nexcept* KeyError:\n    pass\n"
		module := parseValidModule(t, src)
		try := module.Body[0].(*ast.Try)
		if !try.IsStar {
			t.Error("IsStar = false")
		}
	})
	t.Run("mixed star handlers", func(t *testing.T) {
		src := "try:\n    f()\nexcept ValueError:\n    pass\nexcept* KeyError:\n    pass\n"
		program := ParseModule(src)
		if !hasErrorKind(program, ErrExceptStarMixedWithExcept) {
			t.Errorf("errors = %v, want mixed except diagnostic", program.Errors)
		}
	})
	t.Run("default except not last", func(t *testing.T) {
		src := "try:\n    f()\nexcept:\n    pass\nexcept ValueError:\n    pass\n"
		program := ParseModule(src)
		if !hasErrorKind(program, ErrDefaultExceptNotLast) {
			t.Errorf("errors = %v, want default-except diagnostic", program.Errors)
		}
	})
	t.Run("missing handler", func(t *testing.T) {
		program := ParseModule("try:\n    f()\n")
		if !hasErrorKind(program, ErrExpectedExceptClause) {
			t.Errorf("errors = %v, want missing-except diagnostic", program.Errors)
		}
	})
}

func TestFunctionDef(t *testing.T) {
	t.Run("parameter sections", func(t *testing.T) {
		src := "def f(a, b, /, c=1, *args, d, e=2, **kw) -> int:\n    return a\n"
		module := parseValidModule(t, src)
		fn := module.Body[0].(*ast.FunctionDef)
		params := fn.Params
		if len(params.PosOnly) != 2 || len(params.Args) != 1 {
			t.Errorf("posonly = %d args = %d, want 2 and 1", len(params.PosOnly), len(params.Args))
		}
		if params.VarArg == nil || params.VarArg.Name.Name != "args" {
			t.Error("vararg missing")
		}
		if len(params.KwOnly) != 2 {
			t.Errorf("kwonly = %d, want 2", len(params.KwOnly))
		}
		if params.KwArg == nil || params.KwArg.Name.Name != "kw" {
			t.Error("kwarg missing")
		}
		if fn.Returns == nil {
			t.Error("return annotation missing")
		}
	})
	t.Run("bare star", func(t *testing.T) {
		module := parseValidModule(t, "def f(a, *, b):\n    pass\n")
		params := module.Body[0].(*ast.FunctionDef).Params
		if params.VarArg != nil {
			t.Error("vararg set for bare star")
		}
		if len(params.KwOnly) != 1 {
			t.Errorf("kwonly = %d, want 1", len(params.KwOnly))
		}
	})
	t.Run("decorated async", func(t *testing.T) {
		src := "@app.route(\"/\")\n@cached\nasync def handler(req):\n    return req\n"
		module := parseValidModule(t, src)
		fn := module.Body[0].(*ast.FunctionDef)
		if !fn.IsAsync {
			t.Error("IsAsync = false")
		}
		if len(fn.Decorators) != 2 {
			t.Errorf("decorators = %d, want 2", len(fn.Decorators))
		}
	})
	t.Run("type params", func(t *testing.T) {
		module := parseValidModule(t, "def first[T](xs: list[T]) -> T:\n    return xs[0]\n")
		fn := module.Body[0].(*ast.FunctionDef)
		if fn.TypeParams == nil || len(fn.TypeParams.Params) != 1 {
			t.Fatal("type params missing")
		}
		if _, ok := fn.TypeParams.Params[0].(*ast.TypeVar); !ok {
			t.Errorf("param = %T, want *ast.TypeVar", fn.TypeParams.Params[0])
		}
	})
	t.Run("parameter errors", func(t *testing.T) {
		tests := []struct {
			name  string
			input string
			kind  ErrorKind
		}{
			{"non-default after default", "def f(a=1, b):\n    pass\n", ErrNonDefaultAfterDefault},
			{"param after kwargs", "def f(**kw, a):\n    pass\n", ErrParamAfterVarKeywordParam},
			{"bare star without kwonly", "def f(a, *):\n    pass\n", ErrExpectedKeywordParam},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				program := ParseModule(tt.input)
				if !hasErrorKind(program, tt.kind) {
					t.Errorf("errors = %v, want kind %d", program.Errors, tt.kind)
				}
			})
		}
	})
}

func TestClassDef(t *testing.T) {
	src := "class Vec(Base, metaclass=Meta):\n    x: int\n    def norm(self):\n        return 0\n"
	module := parseValidModule(t, src)
	class := module.Body[0].(*ast.ClassDef)
	if class.Name.Name != "Vec" {
		t.Errorf("name = %q", class.Name.Name)
	}
	if class.Arguments == nil || len(class.Arguments.Args) != 1 || len(class.Arguments.Keywords) != 1 {
		t.Error("base list not parsed")
	}
	if len(class.Body) != 2 {
		t.Errorf("body = %d statements, want 2", len(class.Body))
	}
}

func TestImports(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		module := parseValidModule(t, "import os.path as p, sys\n")
		imp := module.Body[0].(*ast.Import)
		if len(imp.Names) != 2 {
			t.Fatalf("names = %d, want 2", len(imp.Names))
		}
		if imp.Names[0].Name.Name != "os.path" || imp.Names[0].AsName.Name != "p" {
			t.Errorf("first alias = %q as %q", imp.Names[0].Name.Name, imp.Names[0].AsName.Name)
		}
	})
	t.Run("from relative", func(t *testing.T) {
		module := parseValidModule(t, "from ...pkg.mod import (a, b as c)\n")
		imp := module.Body[0].(*ast.ImportFrom)
		if imp.Level != 3 {
			t.Errorf("level = %d, want 3", imp.Level)
		}
		if imp.Module.Name != "pkg.mod" {
			t.Errorf("module = %q", imp.Module.Name)
		}
		if len(imp.Names) != 2 || imp.Names[1].AsName.Name != "c" {
			t.Error("alias list not parsed")
		}
	})
	t.Run("from star", func(t *testing.T) {
		module := parseValidModule(t, "from mod import *\n")
		imp := module.Body[0].(*ast.ImportFrom)
		if len(imp.Names) != 1 || imp.Names[0].Name.Name != "*" {
			t.Error("star import not parsed")
		}
	})
	t.Run("bare relative", func(t *testing.T) {
		module := parseValidModule(t, "from . import sibling\n")
		imp := module.Body[0].(*ast.ImportFrom)
		if imp.Level != 1 || imp.Module != nil {
			t.Errorf("level = %d module = %v", imp.Level, imp.Module)
		}
	})
}

func TestScopeAndFlowStatements(t *testing.T) {
	src := "def f():\n    global a, b\n    nonlocal_marker = 0\n    del xs[0], y\n    assert x, \"msg\"\n    raise ValueError(x) from err\n"
	module := parseValidModule(t, src)
	body := module.Body[0].(*ast.FunctionDef).Body
	global := body[0].(*ast.Global)
	if len(global.Names) != 2 {
		t.Errorf("global names = %d, want 2", len(global.Names))
	}
	del := body[2].(*ast.Delete)
	if len(del.Targets) != 2 {
		t.Errorf("delete targets = %d, want 2", len(del.Targets))
	}
	if sub, ok := del.Targets[0].(*ast.Subscript); !ok || sub.Ctx != ast.Del {
		t.Error("subscript delete target lost Del context")
	}
	assert := body[3].(*ast.Assert)
	if assert.Msg == nil {
		t.Error("assert message missing")
	}
	raise := body[4].(*ast.Raise)
	if raise.Exc == nil || raise.Cause == nil {
		t.Error("raise from not parsed")
	}
}

func TestTypeAliasStatement(t *testing.T) {
	t.Run("alias", func(t *testing.T) {
		module := parseValidModule(t, "type Vector[T] = list[T]\n")
		alias := module.Body[0].(*ast.TypeAlias)
		name := alias.Name.(*ast.Name)
		if name.ID != "Vector" || name.Ctx != ast.Store {
			t.Errorf("name = %s ctx %v", name.ID, name.Ctx)
		}
		if alias.TypeParams == nil {
			t.Error("type params missing")
		}
	})
	t.Run("type as a name", func(t *testing.T) {
		module := parseValidModule(t, "type = 1\n")
		assign, ok := module.Body[0].(*ast.Assign)
		if !ok {
			t.Fatalf("body[0] = %T, want *ast.Assign", module.Body[0])
		}
		if name := assign.Targets[0].(*ast.Name); name.ID != "type" {
			t.Errorf("target = %q", name.ID)
		}
	})
	t.Run("type call", func(t *testing.T) {
		module := parseValidModule(t, "t = type(x)\n")
		if _, ok := module.Body[0].(*ast.Assign); !ok {
			t.Fatalf("body[0] = %T, want *ast.Assign", module.Body[0])
		}
	})
}

func TestMatchSoftKeyword(t *testing.T) {
	t.Run("statement", func(t *testing.T) {
		src := "match command:\n    case \"go\":\n        pass\n"
		module := parseValidModule(t, src)
		if _, ok := module.Body[0].(*ast.Match); !ok {
			t.Fatalf("body[0] = %T, want *ast.Match", module.Body[0])
		}
	})
	t.Run("assignment", func(t *testing.T) {
		module := parseValidModule(t, "match = re.match(p, s)\n")
		if _, ok := module.Body[0].(*ast.Assign); !ok {
			t.Fatalf("body[0] = %T, want *ast.Assign", module.Body[0])
		}
	})
	t.Run("call statement", func(t *testing.T) {
		module := parseValidModule(t, "match(x)\n")
		stmt := module.Body[0].(*ast.ExprStmt)
		if _, ok := stmt.Value.(*ast.Call); !ok {
			t.Errorf("value = %T, want *ast.Call", stmt.Value)
		}
	})
	t.Run("annotated", func(t *testing.T) {
		module := parseValidModule(t, "match: int = 1\n")
		if _, ok := module.Body[0].(*ast.AnnAssign); !ok {
			t.Fatalf("body[0] = %T, want *ast.AnnAssign", module.Body[0])
		}
	})
	t.Run("subscript statement", func(t *testing.T) {
		// `match [x]:` opens a match on a list subject, not a subscript
		src := "match [x]:\n    case _:\n        pass\n"
		module := parseValidModule(t, src)
		match := module.Body[0].(*ast.Match)
		if _, ok := match.Subject.(*ast.List); !ok {
			t.Errorf("subject = %T, want *ast.List", match.Subject)
		}
	})
}

func hasErrorKind(program *Program, kind ErrorKind) bool {
	for _, err := range program.Errors {
		if err.Kind == kind {
			return true
		}
	}
	return false
}
