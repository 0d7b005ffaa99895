package runtime

import (
	"math"
	"testing"
	"time"

	"github.com/npillmayer/lsc"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestArith(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	cases := []struct {
		op   lsc.TokType
		a, b Value
		want Value
	}{
		{lsc.PLUS, int64(2), int64(3), int64(5)},
		{lsc.PLUS, int64(2), 0.5, 2.5},
		{lsc.SLASH, int64(6), int64(3), int64(2)},
		{lsc.SLASH, int64(7), int64(2), 3.5},
		{lsc.PERCENT, int64(-7), int64(3), int64(2)},
		{lsc.PERCENT, int64(7), int64(-3), int64(-2)},
		{lsc.POWER, int64(2), int64(10), int64(1024)},
		{lsc.POWER, int64(2), int64(-1), 0.5},
		{lsc.PIPE, int64(5), int64(2), int64(7)},
		{lsc.SHL, int64(1), int64(4), int64(16)},
		{lsc.PLUS, "a", int64(1), "a1"},
		{lsc.STAR, "ab", int64(3), "ababab"},
	}
	for _, c := range cases {
		r, err := Arith(c.op, c.a, c.b)
		if err != nil {
			t.Errorf("%v %s %v: unexpected error %v", c.a, c.op, c.b, err)
			continue
		}
		if r != c.want {
			t.Errorf("%v %s %v: expected %v (%T), have %v (%T)", c.a, c.op, c.b, c.want, c.want, r, r)
		}
	}
	if _, err := Arith(lsc.SLASH, int64(1), int64(0)); err == nil {
		t.Errorf("expected division by zero error")
	}
	if _, err := Arith(lsc.PERCENT, 1.0, 0.0); err == nil {
		t.Errorf("expected modulo by zero error")
	}
	if _, err := Arith(lsc.AMP, 1.0, int64(1)); err == nil {
		t.Errorf("expected error for bitwise op on float")
	}
}

func TestLargeOperands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	if _, err := Arith(lsc.STAR, "ab", int64(math.MaxInt64)); err == nil {
		t.Errorf("expected error for overlong string repetition")
	}
	if r, err := Arith(lsc.STAR, int64(-2), "ab"); err != nil || r != "" {
		t.Errorf("expected empty string for negative repetition, have %q, %v", r, err)
	}
	done := make(chan Value, 1)
	go func() {
		r, _ := Arith(lsc.POWER, int64(2), int64(3000000000))
		done <- r
	}()
	select {
	case r := <-done:
		if f, ok := r.(float64); !ok || !math.IsInf(f, 1) {
			t.Errorf("expected 2 ** 3000000000 to overflow to +Inf, have %v", r)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("2 ** 3000000000 did not finish")
	}
	if r, _ := Arith(lsc.POWER, int64(3), int64(39)); r != int64(4052555153018976267) {
		t.Errorf("expected 3 ** 39 to stay an integer, have %v", r)
	}
	if r, _ := Arith(lsc.POWER, int64(-1), int64(1000000001)); r != int64(-1) {
		t.Errorf("expected -1 ** odd to be -1, have %v", r)
	}
	if r, _ := Arith(lsc.POWER, int64(10), int64(19)); r != 1e19 {
		t.Errorf("expected 10 ** 19 to be promoted to float, have %v (%T)", r, r)
	}
}

func TestSuperProxy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	sc := NewScope("base", nil)
	sc.Define("speak", NewBuiltin("speak", func([]Value) (Value, error) { return "hi", nil }))
	sc.Define("health", int64(3))
	sup := NewSuper("Dog", sc)
	sc.Define("speak", NoOp)
	if !sup.Has("speak") || sup.Has("health") {
		t.Errorf("expected super to snapshot callables only")
	}
	m, _ := sup.GetMember("speak")
	if v, _ := m.(Callable).Call(nil); v != "hi" {
		t.Errorf("expected inherited method, have %v", v)
	}
	if m, ok := sup.GetMember("jump"); !ok || m != NoOp {
		t.Errorf("expected no-op for missing method, have %v", m)
	}
	if sup.SetMember("x", int64(1)) {
		t.Errorf("super should be read-only")
	}
	if TypeName(sup) != "Super" {
		t.Errorf("unexpected type name %s", TypeName(sup))
	}
}

func TestVectorArith(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	r, err := Arith(lsc.PLUS, NewVector2(1, 2), NewVector2(3, 4))
	if err != nil || !r.(*Vector2).Equals(NewVector2(4, 6)) {
		t.Errorf("expected (4, 6), have %v, %v", r, err)
	}
	r, err = Arith(lsc.STAR, int64(2), NewVector2(1, 2))
	if err != nil || !r.(*Vector2).Equals(NewVector2(2, 4)) {
		t.Errorf("expected (2, 4), have %v, %v", r, err)
	}
	r, err = Arith(lsc.SLASH, &Color{1, 1, 1, 1}, 2.0)
	if err != nil || r.(*Color).A != 0.5 {
		t.Errorf("expected halved color, have %v, %v", r, err)
	}
	if _, err = Arith(lsc.MINUS, int64(1), NewVector2(1, 1)); err == nil {
		t.Errorf("expected error for scalar - vector")
	}
}

func TestTruthyAndEqual(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	falsy := []Value{nil, false, int64(0), 0.0, "", NewArray(), NewDict()}
	for _, v := range falsy {
		if Truthy(v) {
			t.Errorf("expected %s to be falsy", Repr(v))
		}
	}
	if !Truthy(NewArray(int64(0))) || !Truthy(NewVector2(0, 0)) {
		t.Errorf("expected non-empty array and vector to be truthy")
	}
	if !Equal(int64(1), 1.0) || Equal(int64(1), "1") {
		t.Errorf("number equality broken")
	}
	if !Equal(NewVector2(1, 2), NewVector2(1, 2)) {
		t.Errorf("expected structural equality for vectors")
	}
	a, b := NewArray(int64(1)), NewArray(int64(1))
	if Equal(a, b) || !Equal(a, a) || Identical(a, b) {
		t.Errorf("expected identity semantics for arrays")
	}
}

func TestStr(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	cases := map[string]Value{
		"3":                    int64(3),
		"2.0":                  2.0,
		"0.25":                 0.25,
		"inf":                  math.Inf(1),
		"null":                 nil,
		"(1.0, 2.5)":           NewVector2(1, 2.5),
		"(0.0, 0.0, 2.0, 3.0)": &Rect2{W: 2, H: 3},
		"(1.0, 0.0, 0.0, 1.0)": &Color{1, 0, 0, 1},
		`[1, "a", [true]]`:     NewArray(int64(1), "a", NewArray(true)),
	}
	for want, v := range cases {
		if s := Str(v); s != want {
			t.Errorf("expected %s, have %s", want, s)
		}
	}
}

func TestArray(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	a := NewArray(int64(3), "b", int64(1), 2.5, "a")
	a.Sort()
	if Str(a) != `[1, 2.5, 3, "a", "b"]` {
		t.Errorf("unexpected sort order %s", Str(a))
	}
	if v, _ := a.Get(-1); v != "b" {
		t.Errorf("expected negative index to count from end, have %v", v)
	}
	if _, err := a.Get(5); err == nil {
		t.Errorf("expected out of range error")
	}
	v, err := a.Pop(-1)
	if err != nil || v != "b" || a.Len() != 4 {
		t.Errorf("pop failed: %v, %v", v, err)
	}
	push, _ := a.GetMember("push_back")
	if _, err := Call(push, "z"); err != nil || a.Find("z") != 4 {
		t.Errorf("push_back member failed: %v", err)
	}
}

func TestDict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	d := NewDict()
	d.Put("b", int64(1))
	d.Put("a", int64(2))
	d.Put(int64(1), "one")
	if v, ok := d.Get(1.0); !ok || v != "one" {
		t.Errorf("expected 1.0 to find key 1, have %v", v)
	}
	if Str(d) != `{"b": 1, "a": 2, 1: "one"}` {
		t.Errorf("expected insertion order, have %s", Str(d))
	}
	if err := d.Put([]float64{1}, 1); err == nil {
		t.Errorf("expected error for unhashable key")
	}
	get, _ := d.GetMember("get")
	if v, _ := Call(get, "zz", "dflt"); v != "dflt" {
		t.Errorf("expected default from get, have %v", v)
	}
}

func TestVector2Members(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	v := NewVector2(3, 4)
	length, _ := v.GetMember("length")
	if l, _ := Call(length); l != 5.0 {
		t.Errorf("expected length 5, have %v", l)
	}
	reflect, _ := v.GetMember("reflect")
	r, err := Call(reflect, NewVector2(0, 1))
	if err != nil || !r.(*Vector2).Equals(NewVector2(3, -4)) {
		t.Errorf("expected (3, -4), have %v, %v", r, err)
	}
	up, _ := vector2Class{}.GetMember("UP")
	if !up.(*Vector2).Equals(NewVector2(0, 1)) {
		t.Errorf("expected UP to be (0, 1)")
	}
	if !v.SetMember("x", int64(1)) || v.X != 1 {
		t.Errorf("expected x to be settable")
	}
}
