package inherit

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/npillmayer/lsc/interp"
	"github.com/npillmayer/lsc/runtime"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var project = fstest.MapFS{
	"nodes/base/Entity.lsc": {Data: []byte(`extends Node2D
var health = 10
func describe():
    return "entity"
func hurt(n):
    health -= n
    return health
`)},
	"nodes/node2d/Enemy.lsc": {Data: []byte(`extends Entity
export var speed: float = 2.5
func describe():
    return "enemy/" + super.describe()
func parent():
    return super
`)},
	"nodes/prefabs/Boss.lsc": {Data: []byte(`extends Enemy
func describe():
    return "boss/" + super.describe()
func quiet():
    return super.no_such_method(1, 2)
`)},
	"nodes/base/A.lsc":  {Data: []byte("extends B\nvar a = 1\n")},
	"nodes/ui/B.lsc":    {Data: []byte("extends A\nvar b = 2\n")},
	"nodes/ui/Self.lsc": {Data: []byte("extends Self\n")},
}

func newResolver() (*runtime.Runtime, *Resolver) {
	rt := runtime.New()
	r := NewResolver(rt, interp.New(rt), project).Install()
	return rt, r
}

func TestBuiltinClasses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.inherit")
	defer teardown()
	//
	_, r := newResolver()
	rec, err := r.ResolveClass("KinematicBody2D")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(rec.ChainNames(), ",") != "Node,Node2D,KinematicBody2D" {
		t.Errorf("unexpected chain %v", rec.ChainNames())
	}
	if !rec.Builtin || !rec.IsA("Node") || rec.IsA("Control") {
		t.Errorf("unexpected class record %v", rec)
	}
	if !r.IsClass("Sprite") || !r.IsClass("Enemy") || r.IsClass("Ghost") {
		t.Errorf("IsClass does not report classes correctly")
	}
}

func TestResolveChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.inherit")
	defer teardown()
	//
	_, r := newResolver()
	rec, err := r.ResolveClass("Boss")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(rec.ChainNames(), ",") != "Node,Node2D,Entity,Enemy,Boss" {
		t.Errorf("unexpected chain %v", rec.ChainNames())
	}
	if rec.ScriptPath != "nodes/prefabs/Boss.lsc" {
		t.Errorf("unexpected script path %q", rec.ScriptPath)
	}
	if _, ok := rec.Methods["hurt"]; ok {
		t.Errorf("inherited methods should not be recorded as own methods")
	}
	if _, ok := rec.Method("hurt"); !ok {
		t.Errorf("expected inherited method hurt to be found")
	}
	if len(rec.AllMethods()) != 4 {
		t.Errorf("expected 4 methods in chain, have %d", len(rec.AllMethods()))
	}
	if v, ok := rec.Property("speed"); !ok || v != 2.5 {
		t.Errorf("expected property speed = 2.5, have %v", v)
	}
	again, _ := r.ResolveClass("Boss")
	if again != rec {
		t.Errorf("expected resolved classes to be cached")
	}
	if len(r.ScriptCache()) != 3 {
		t.Errorf("expected 3 cached scripts, have %d", len(r.ScriptCache()))
	}
}

func TestInstanceWithSuper(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.inherit")
	defer teardown()
	//
	rt, _ := newResolver()
	inst, err := rt.CreateInstance("Boss", nil)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := inst.CallMethod("describe"); v != "boss/enemy/entity" {
		t.Errorf("unexpected super chain result %v", v)
	}
	if v, err := inst.CallMethod("quiet"); v != nil || err != nil {
		t.Errorf("expected unknown super method to be a no-op, have %v, %v", v, err)
	}
	if v, _ := inst.CallMethod("hurt", int64(3)); v != int64(7) {
		t.Errorf("expected health 7, have %v", v)
	}
	if v, _ := inst.GetMember("health"); v != int64(7) {
		t.Errorf("expected instance variable to be updated, have %v", v)
	}
	if v, _ := inst.GetExportVariable("speed"); v != 2.5 {
		t.Errorf("expected exported speed 2.5, have %v", v)
	}
	if !inst.IsA("Entity") || !inst.IsA("Node2D") {
		t.Errorf("unexpected class chain %v", inst.Chain)
	}
	self, _ := inst.Scope.Lookup("self")
	if self != inst {
		t.Errorf("expected self to be bound to the instance")
	}
	v, _ := inst.CallMethod("parent")
	sup, ok := v.(*runtime.Super)
	if !ok || sup.Class != "Enemy" || !sup.Has("describe") {
		t.Errorf("expected super proxy of Enemy, have %v", v)
	}
}

func TestCircularInheritance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.inherit")
	defer teardown()
	//
	_, r := newResolver()
	_, err := r.ResolveClass("A")
	var cerr *CircularInheritanceError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected circular inheritance error, have %v", err)
	}
	if strings.Join(cerr.Chain, ",") != "A,B,A" {
		t.Errorf("unexpected cycle %v", cerr.Chain)
	}
	for _, name := range r.Known() {
		if name == "A" || name == "B" {
			t.Errorf("class %s of a cycle should not be cached", name)
		}
	}
	if _, err := r.ResolveClass("Self"); !errors.As(err, &cerr) {
		t.Errorf("expected class extending itself to be circular, have %v", err)
	}
	if _, err := r.CreateInstanceScope("B"); !errors.As(err, &cerr) {
		t.Errorf("expected circular inheritance error for instance scope, have %v", err)
	}
}

func TestClassNotFound(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.inherit")
	defer teardown()
	//
	_, r := newResolver()
	_, err := r.ResolveClass("Ghost")
	var nferr *ClassNotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected class not found error, have %v", err)
	}
	if len(nferr.Searched) != len(DefaultSearchDirs) {
		t.Errorf("expected all search dirs to be searched, have %v", nferr.Searched)
	}
	r = NewResolver(runtime.New(), nil, project, SearchDirs("nodes/ui"))
	if r.IsClass("Enemy") {
		t.Errorf("expected Enemy to be outside of search dirs")
	}
}

func TestScriptClassExtendsFileClass(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.inherit")
	defer teardown()
	//
	rt := runtime.New()
	intp := interp.New(rt)
	NewResolver(rt, intp, project).Install()
	src := `
class Minion extends Enemy:
    func describe():
        return "minion/" + super.describe()
var m = Minion.new()
m.describe()
`
	v, err := intp.Run(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v != "minion/enemy/entity" {
		t.Errorf("unexpected result %v", v)
	}
}

func TestSuperFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.inherit")
	defer teardown()
	//
	sup := runtime.NewSuper("Node", runtime.NewScope("empty", nil))
	m, ok := sup.GetMember("_ready")
	if !ok || m != runtime.NoOp {
		t.Errorf("expected no-op for missing method, have %v", m)
	}
	if sup.SetMember("x", 1) {
		t.Errorf("super should be read-only")
	}
}
