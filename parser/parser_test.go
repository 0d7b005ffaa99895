package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/lsc/ast"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseString(src)
	if err != nil {
		t.Fatalf("unexpected error for %q: %v", src, err)
	}
	return prog
}

func TestExpressionPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.parser")
	defer teardown()
	//
	var tests = []struct {
		input    string
		expected string
	}{
		{"2 + 3 * 4", "(+ 2 (* 3 4))"},
		{"(2 + 3) * 4", "(* (+ 2 3) 4)"},
		{"2 ** 3 ** 2", "(** 2 (** 3 2))"},
		{"-x ** 2", "(** (- x) 2)"},
		{"a or b and c", "(or a (and b c))"},
		{"a || b && !c", "(or a (and b (not c)))"},
		{"a == b < c", "(== a (< b c))"},
		{"1 | 2 ^ 3 & 4 << 5", "(| 1 (^ 2 (& 3 (<< 4 5))))"},
		{"x in arr", "(in x arr)"},
		{"c ? a : b ? d : e", "(? c a (? b d e))"},
		{"a.b(1, 2)[0]", "([] (call (. a b) 1 2) 0)"},
		{"[1, 2,]", "(array 1 2)"},
		{`{"a": 1, b: 2,}`, `(dict (: "a" 1) (: b 2))`},
		{"10 - 4 - 3", "(- (- 10 4) 3)"},
		{"1.5", "1.5"},
		{"$Player/Sprite", `$"Player/Sprite"`},
		{`$"../UI"`, `$"../UI"`},
		{"$A / b", `(/ $"A" b)`},
	}
	for _, test := range tests {
		prog := parse(t, test.input)
		if len(prog.Statements) != 1 {
			t.Fatalf("expected 1 statement for %q, have %d", test.input, len(prog.Statements))
		}
		if got := prog.Statements[0].String(); got != test.expected {
			t.Errorf("%q: expected %s, got %s", test.input, test.expected, got)
		}
	}
}

func TestStatements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.parser")
	defer teardown()
	//
	src := `extends Node2D

signal hit(damage, source)
enum State { IDLE, RUN, }
const SPEED = 200
var velocity: Vector2 = Vector2(0, 0)

static func helper(a, b := 2) -> int:
    return a + b

func _ready():
    if x > 1:
        x -= 1
    elif x < 0: pass
    else:
        x = 0
    while x < 10:
        x += 1
        if x == 5:
            break
    do:
        x *= 2
    while x < 100
    for i in range(3):
        continue
`
	prog := parse(t, src)
	if prog.Extends != "Node2D" {
		t.Errorf("expected extends Node2D, have %q", prog.Extends)
	}
	if len(prog.Statements) != 7 {
		t.Fatalf("expected 7 top-level statements, have %d", len(prog.Statements))
	}
	if s, ok := prog.Statements[1].(*ast.SignalDecl); !ok || len(s.Params) != 2 {
		t.Errorf("expected signal with 2 params, have %v", prog.Statements[1])
	}
	if e, ok := prog.Statements[2].(*ast.EnumDecl); !ok || e.Name != "State" || len(e.Values) != 2 {
		t.Errorf("expected enum State, have %v", prog.Statements[2])
	}
	helper := prog.Statements[5].(*ast.FuncDef)
	if !helper.Static || helper.ReturnType != "int" || helper.Params[1].Default == nil {
		t.Errorf("unexpected helper definition: %v", helper)
	}
	ready := prog.Statements[6].(*ast.FuncDef)
	if ready.Name != "_ready" || len(ready.Body) != 4 {
		t.Fatalf("expected _ready with 4 statements, have %v", ready)
	}
	ifs := ready.Body[0].(*ast.If)
	if len(ifs.Elifs) != 1 || len(ifs.Else) != 1 {
		t.Errorf("expected if/elif/else, have %v", ifs)
	}
	if _, ok := ready.Body[2].(*ast.DoWhile); !ok {
		t.Errorf("expected do-while, have %v", ready.Body[2])
	}
}

func TestClassesAndExports(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.parser")
	defer teardown()
	//
	src := `tool class Enemy extends KinematicBody2D:
    export_group("Stats", "stat_")
    export(range, 0, 100, 5) var health = 100
    export(enum, "Easy,Hard") var difficulty = "Easy"
    export var label: String = "x"
`
	prog := parse(t, src)
	c := prog.Statements[0].(*ast.ClassDef)
	if !c.Tool || c.Base != "KinematicBody2D" || len(c.Body) != 4 {
		t.Fatalf("unexpected class: %v", c)
	}
	if prog.Extends != "" {
		t.Errorf("inner class must not set program extends, have %q", prog.Extends)
	}
	ex := c.Body[1].(*ast.ExportDecl)
	if ex.ExportType != "range" || ex.Hint != "0,100,5" || ex.Var.Name != "health" {
		t.Errorf("unexpected export: %+v", ex)
	}
	ex = c.Body[2].(*ast.ExportDecl)
	if ex.ExportType != "enum" || ex.Hint != "Easy,Hard" {
		t.Errorf("unexpected enum export: %+v", ex)
	}
	ex = c.Body[3].(*ast.ExportDecl)
	if ex.ExportType != "" || ex.Var.TypeHint != "String" {
		t.Errorf("unexpected plain export: %+v", ex)
	}
}

func TestErrorRecovery(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.parser")
	defer teardown()
	//
	src := "var a = \nvar b = 2\nfunc f(:\n    pass\nvar c = 3\n"
	prog, err := ParseString(src)
	if err == nil {
		t.Fatal("expected syntax errors")
	}
	var perrs ParseErrors
	if !errors.As(err, &perrs) {
		t.Fatalf("expected ParseErrors, have %T", err)
	}
	if len(perrs) != 2 {
		t.Errorf("expected 2 errors, have %d: %v", len(perrs), perrs)
	}
	if perrs[0].Pos.Line != 1 {
		t.Errorf("expected first error in line 1, have %d", perrs[0].Pos.Line)
	}
	names := []string{}
	for _, s := range prog.Statements {
		if v, ok := s.(*ast.VarDecl); ok {
			names = append(names, v.Name)
		}
	}
	if len(names) != 2 || names[0] != "b" || names[1] != "c" {
		t.Errorf("expected declarations b and c to survive, have %v", names)
	}
}

func TestInvalidAssignment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.parser")
	defer teardown()
	//
	_, err := ParseString("f() = 3")
	if err == nil {
		t.Error("expected error for assignment to call")
	}
}

func TestInspect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.parser")
	defer teardown()
	//
	prog := parse(t, "func f(x):\n    return x + g(1)\n")
	calls := 0
	ast.Inspect(prog, func(n ast.Node) bool {
		if _, ok := n.(*ast.Call); ok {
			calls++
		}
		return true
	})
	if calls != 1 {
		t.Errorf("expected 1 call node, found %d", calls)
	}
}

func TestErrorAtEndOfInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.parser")
	defer teardown()
	//
	_, err := ParseString("var x = (1 +")
	var perrs ParseErrors
	if !errors.As(err, &perrs) || len(perrs) == 0 {
		t.Fatalf("expected ParseErrors, have %v", err)
	}
	pe := perrs[0]
	if pe.Pos.Line != 1 || pe.Pos.Column != 13 {
		t.Errorf("expected error at 1:13, is at %s", pe.Pos)
	}
	if !strings.HasSuffix(pe.Msg, "(at end of input)") {
		t.Errorf("expected error to mention end of input, is %q", pe.Msg)
	}
}
