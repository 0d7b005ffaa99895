package runtime

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestNewSymTab(t *testing.T) {
	symtab := NewSymbolTable()
	if symtab == nil || symtab.Size() != 0 {
		t.Error("no empty symbol table created")
	}
}

func TestDefineTag(t *testing.T) {
	symtab := NewSymbolTable()
	sym, _ := symtab.DefineTag("new-sym")
	if sym == nil {
		t.Fatal("no symbol created for table")
	}
	if s := symtab.ResolveTag("new-sym"); s != sym {
		t.Error("cannot find stored symbol in table")
	}
	if _, old := symtab.DefineTag("new-sym"); old != sym {
		t.Error("symbol should have been replaced")
	}
}

func TestScopeUpsearch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	parent := NewScope("parent", nil)
	scope := NewScope("current", parent)
	parent.Define("x", int64(1))
	if tag, sc := scope.ResolveTag("x"); tag == nil || sc != parent {
		t.Fatalf("expected to find x in parent scope")
	}
	scope.Define("x", "shadow")
	if v, _ := scope.Lookup("x"); v != "shadow" {
		t.Errorf("expected inner x to shadow outer x, have %v", v)
	}
	if v, _ := parent.Lookup("x"); v != int64(1) {
		t.Errorf("expected outer x to be untouched, have %v", v)
	}
}

func TestScopeAssign(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	parent := NewScope("parent", nil)
	scope := NewScope("current", parent)
	parent.Define("count", int64(0))
	if err := scope.Assign("count", int64(5)); err != nil {
		t.Fatal(err)
	}
	if v, _ := parent.Lookup("count"); v != int64(5) {
		t.Errorf("expected assignment to update defining scope, have %v", v)
	}
	if err := scope.Assign("fresh", true); err != nil || !scope.Has("fresh") || parent.Has("fresh") {
		t.Errorf("expected undeclared name to be defined in innermost scope")
	}
	parent.DefineConst("LIMIT", int64(3))
	if err := scope.Assign("LIMIT", int64(4)); err == nil {
		t.Errorf("expected error assigning to constant")
	}
	if _, err := scope.Get("nowhere"); err == nil {
		t.Errorf("expected error for undefined name")
	}
}

func TestFrameStack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	rt := New(WithOutput(&strings.Builder{}))
	if rt.Frames.Depth() != 1 || rt.CurrentScope() != rt.Globals() {
		t.Fatalf("expected a single global frame")
	}
	sc := rt.PushScope("f")
	rt.PushScope("g")
	if rt.Frames.Depth() != 3 {
		t.Errorf("expected depth 3, have %d", rt.Frames.Depth())
	}
	dump := rt.Frames.Dump()
	if !strings.HasPrefix(strings.TrimSpace(dump), "#0 g") {
		t.Errorf("expected innermost frame first in dump, have\n%s", dump)
	}
	rt.PopScope()
	if rt.CurrentScope() != sc {
		t.Errorf("expected scope of f to be current")
	}
	rt.PopScope()
	rt.PopScope() // global frame stays
	if rt.Frames.Depth() != 1 {
		t.Errorf("expected global frame to survive, depth is %d", rt.Frames.Depth())
	}
}
