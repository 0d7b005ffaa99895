package runtime

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type fakeClock struct {
	now, delta float64
}

func (c *fakeClock) Time() float64  { return c.now }
func (c *fakeClock) Delta() float64 { return c.delta }

func call(t *testing.T, rt *Runtime, name string, args ...Value) Value {
	t.Helper()
	fn, err := rt.Globals().Get(name)
	if err != nil {
		t.Fatal(err)
	}
	v, err := Call(fn, args...)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return v
}

func TestBuiltinMath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	rt := New()
	if v := call(t, rt, "abs", int64(-3)); v != int64(3) {
		t.Errorf("abs(-3) = %v", v)
	}
	if v := call(t, rt, "max", int64(1), 7.5, int64(3)); v != 7.5 {
		t.Errorf("max = %v", v)
	}
	if v := call(t, rt, "min", NewArray(int64(4), int64(2))); v != int64(2) {
		t.Errorf("min of array = %v", v)
	}
	if v := call(t, rt, "clamp", int64(12), int64(0), int64(10)); v != int64(10) {
		t.Errorf("clamp = %v", v)
	}
	if v := call(t, rt, "move_toward", 0.0, 10.0, 3.0); v != 3.0 {
		t.Errorf("move_toward = %v", v)
	}
	if v := call(t, rt, "move_toward", 9.0, 10.0, 3.0); v != 10.0 {
		t.Errorf("move_toward should snap to target, is %v", v)
	}
	if v := call(t, rt, "smoothstep", 0.0, 1.0, 0.5); v != 0.5 {
		t.Errorf("smoothstep = %v", v)
	}
	if v := call(t, rt, "floor", -1.5); v != int64(-2) {
		t.Errorf("floor = %v", v)
	}
	if v := call(t, rt, "pow", int64(2), int64(3)); v != int64(8) {
		t.Errorf("pow = %v", v)
	}
	sqrt, _ := rt.Globals().Lookup("sqrt")
	if _, err := Call(sqrt, int64(-1)); err == nil {
		t.Errorf("expected domain error for sqrt(-1)")
	}
	abs, _ := rt.Globals().Lookup("abs")
	if _, err := Call(abs); err == nil || !strings.Contains(err.Error(), "takes 1 argument") {
		t.Errorf("expected arity error, have %v", err)
	}
}

func TestBuiltinStrings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	rt := New()
	if v := call(t, rt, "substr", "hello world", int64(6)); v != "world" {
		t.Errorf("substr = %v", v)
	}
	if v := call(t, rt, "substr", "hello", int64(1), int64(3)); v != "ell" {
		t.Errorf("substr = %v", v)
	}
	if v := call(t, rt, "find", "süße", "e"); v != int64(3) {
		t.Errorf("find should count characters, is %v", v)
	}
	parts := call(t, rt, "split", "a,b,c", ",").(*Array)
	if parts.Len() != 3 {
		t.Errorf("split = %v", parts)
	}
	if v := call(t, rt, "join", parts, "-"); v != "a-b-c" {
		t.Errorf("join = %v", v)
	}
	if v := call(t, rt, "str", "x=", int64(1), 2.0); v != "x=12.0" {
		t.Errorf("str = %v", v)
	}
	if v := call(t, rt, "int", "42"); v != int64(42) {
		t.Errorf("int = %v", v)
	}
	if v := call(t, rt, "len", "süß"); v != int64(3) {
		t.Errorf("len = %v", v)
	}
	if r := call(t, rt, "range", int64(5), int64(0), int64(-2)).(*Array); Str(r) != "[5, 3, 1]" {
		t.Errorf("range = %v", r)
	}
	if v := call(t, rt, "typeof", NewDict()); v != "Dictionary" {
		t.Errorf("typeof = %v", v)
	}
}

func TestPrint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	out := &strings.Builder{}
	rt := New(WithOutput(out))
	call(t, rt, "print", "pos", NewVector2(1, 2), int64(3))
	call(t, rt, "print_error", "boom")
	if out.String() != "pos (1.0, 2.0) 3\n[ERROR] boom\n" {
		t.Errorf("unexpected output %q", out.String())
	}
	assert, _ := rt.Globals().Lookup("assert")
	if _, err := Call(assert, false, "must hold"); err == nil || !strings.Contains(err.Error(), "must hold") {
		t.Errorf("expected assertion error, have %v", err)
	}
}

func TestRandomSeed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	rt1, rt2 := New(WithSeed(7)), New(WithSeed(7))
	for i := 0; i < 10; i++ {
		a := call(t, rt1, "rand_int", int64(1), int64(6)).(int64)
		b := call(t, rt2, "rand_int", int64(1), int64(6)).(int64)
		if a != b || a < 1 || a > 6 {
			t.Fatalf("expected equal seeded dice in [1,6], have %d and %d", a, b)
		}
	}
}

func TestSignals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	rt := New()
	var got []string
	handler := func(tag string) *BuiltinFunc {
		return NewBuiltin(tag, func(args []Value) (Value, error) {
			got = append(got, tag+":"+Str(args[0]))
			return nil, nil
		})
	}
	rt.Globals().Define("on_hit", handler("global"))
	obj := &MockNode{Name: "n", Props: NewDict()}
	obj.Props.Put("on_hit", handler("node"))
	if !rt.Signals.Connect("hit", nil, "on_hit") {
		t.Fatal("expected first connection to succeed")
	}
	if rt.Signals.Connect("hit", nil, "on_hit") {
		t.Errorf("expected duplicate connection to be suppressed")
	}
	rt.Signals.Connect("hit", obj, "on_hit")
	n, err := rt.Signals.Emit("hit", int64(5))
	if err != nil || n != 2 {
		t.Fatalf("expected 2 handlers, have %d, %v", n, err)
	}
	if strings.Join(got, " ") != "global:5 node:5" {
		t.Errorf("expected connection order, have %v", got)
	}
	if !rt.Signals.Disconnect("hit", nil, "on_hit") || rt.Signals.IsConnected("hit", nil, "on_hit") {
		t.Errorf("disconnect failed")
	}
	if rt.Signals.Disconnect("hit", nil, "on_hit") {
		t.Errorf("expected second disconnect to fail")
	}
	if n, _ := rt.Signals.Emit("hit", int64(1)); n != 1 {
		t.Errorf("expected 1 remaining handler, have %d", n)
	}
}

func TestSignalDisconnectDuringEmit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	rt := New()
	calls := 0
	var second *BuiltinFunc
	first := NewBuiltin("first", func([]Value) (Value, error) {
		calls++
		rt.Signals.Disconnect("tick", second, "")
		return nil, nil
	})
	second = NewBuiltin("second", func([]Value) (Value, error) {
		calls++
		return nil, errors.New("second failed")
	})
	rt.Signals.Connect("tick", first, "")
	rt.Signals.Connect("tick", second, "")
	n, err := rt.Signals.Emit("tick")
	if n != 2 || calls != 2 || err == nil {
		t.Errorf("expected snapshot emission with error, have n=%d calls=%d err=%v", n, calls, err)
	}
	if n, _ = rt.Signals.Emit("tick"); n != 1 {
		t.Errorf("expected disconnect to affect next emission, have %d", n)
	}
}

func TestTimers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	clock := &fakeClock{}
	rt := New(WithClock(clock))
	var order []string
	cb := func(name string) *BuiltinFunc {
		return NewBuiltin(name, func([]Value) (Value, error) {
			order = append(order, name)
			return nil, nil
		})
	}
	rt.CreateTimer(2, cb("late"))
	rt.CreateTimer(1, cb("early"))
	stopped := rt.CreateTimer(0.5, cb("stopped"))
	stop, _ := stopped.GetMember("stop")
	Call(stop)
	if rt.UpdateTimers() != 0 {
		t.Errorf("no timer should fire at t=0")
	}
	clock.now = 1.5
	if n := rt.UpdateTimers(); n != 1 || order[0] != "early" {
		t.Errorf("expected early timer only, have %d %v", n, order)
	}
	clock.now = 5
	rt.UpdateTimers()
	if len(order) != 2 || order[1] != "late" || rt.PendingTimers() != 0 {
		t.Errorf("expected all timers fired, have %v", order)
	}
}

func TestWait(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	var slept float64
	rt := New(WithSleep(func(d time.Duration) { slept = d.Seconds() }))
	call(t, rt, "wait", 0.25)
	if slept != 0.25 {
		t.Errorf("expected to sleep 0.25s, slept %v", slept)
	}
}

func TestResources(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	fsys := fstest.MapFS{
		"data/level.txt": &fstest.MapFile{Data: []byte("level 1")},
	}
	host := NewMockHost()
	rt := New(WithFS(fsys), WithHost(host))
	v := call(t, rt, "load", "res://data/level.txt")
	if v != "level 1" || !rt.Resources.Cached("res://data/level.txt") {
		t.Errorf("expected text resource to be loaded and cached, have %v", v)
	}
	tex := call(t, rt, "preload", "icons/hero.png")
	if tx, ok := tex.(*Texture); !ok || tx.Path != "icons/hero.png" {
		t.Errorf("expected texture, have %v", tex)
	}
	if _, err := rt.Resources.Load("missing.txt"); err == nil {
		t.Errorf("expected error for missing resource")
	}
	call(t, rt, "save", int64(99), "user://score")
	if v, ok := host.Saved("user://score"); !ok || v != int64(99) {
		t.Errorf("expected host to persist resource, have %v", v)
	}
	rt.Resources.Evict("user://score")
	if rt.Resources.Cached("user://score") {
		t.Errorf("evict failed")
	}
}
