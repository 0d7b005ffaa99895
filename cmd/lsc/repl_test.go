package main

import (
	"testing"
	"testing/fstest"

	"github.com/npillmayer/lsc/inherit"
	"github.com/npillmayer/lsc/interp"
	"github.com/npillmayer/lsc/parser"
	"github.com/npillmayer/lsc/runtime"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pterm/pterm"
)

func session() *Intp {
	host := runtime.NewMockHost()
	rt := runtime.New(runtime.WithHost(host))
	intp := interp.New(rt)
	project := fstest.MapFS{
		"nodes/base/Greeter.lsc": {Data: []byte("extends Node\nfunc greet():\n    return \"hi\"\n")},
	}
	classes := inherit.NewResolver(rt, intp, project).Install()
	return &Intp{rt: rt, intp: intp, host: host, classes: classes}
}

func TestNeedsMore(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.cli")
	defer teardown()
	//
	var tests = []struct {
		lines []string
		more  bool
	}{
		{[]string{"var x = 1"}, false},
		{[]string{"func f():"}, true},
		{[]string{"func f():", "    return 1"}, true},
		{[]string{"func f():", "    return 1", ""}, false},
	}
	for _, tt := range tests {
		if needsMore(tt.lines) != tt.more {
			t.Errorf("%q: expected needsMore = %v", tt.lines, tt.more)
		}
	}
}

func TestEvalAndCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.cli")
	defer teardown()
	//
	cli := session()
	if v, err := cli.Eval("var x = 20\nx + 22"); err != nil || v != int64(42) {
		t.Errorf("expected 42, have %v, %v", v, err)
	}
	if _, err := cli.Eval("var = 1"); err == nil {
		t.Errorf("expected syntax error to be reported")
	}
	inst, err := cli.rt.CreateInstance("Greeter", nil)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := inst.CallMethod("greet"); v != "hi" {
		t.Errorf("expected greeting from class script, have %v", v)
	}
	if cli.Command(":tick 0.5") {
		t.Errorf(":tick should not quit")
	}
	if cli.host.Time() != 0.5 {
		t.Errorf("expected host clock to advance to 0.5, is %v", cli.host.Time())
	}
	for _, cmd := range []string{":ast", ":scope", ":exports", ":classes", ":help", ":nonsense"} {
		if cli.Command(cmd) {
			t.Errorf("%s should not quit", cmd)
		}
	}
	if !cli.Command(":quit") {
		t.Errorf("expected :quit to quit")
	}
}

func TestASTTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.cli")
	defer teardown()
	//
	prog, err := parser.ParseString("func add(a, b):\n    return a + b\n")
	if err != nil {
		t.Fatal(err)
	}
	ll := leveledNode(prog, pterm.LeveledList{}, 0)
	if len(ll) < 4 {
		t.Fatalf("expected at least 4 tree items, have %d", len(ll))
	}
	if ll[1].Text != "FuncDef add(a, b)" || ll[1].Level != 1 {
		t.Errorf("unexpected item for function: %v", ll[1])
	}
	found := false
	for _, item := range ll {
		if item.Text == "Identifier b" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected identifier b in tree")
	}
}
