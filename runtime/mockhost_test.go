package runtime

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestMockHostTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	host := NewMockHost()
	player := host.AddNode("/root/Level/Player", map[string]Value{"type": "KinematicBody2D"})
	host.AddNode("/root/Level/Enemy", nil)
	rt := New(WithHost(host))
	if n := call(t, rt, "get_node", "Level/Player"); n != player {
		t.Fatalf("expected relative path to resolve below /root, have %v", n)
	}
	if player.Path() != "/root/Level/Player" || player.TypeName() != "KinematicBody2D" {
		t.Errorf("unexpected node %v of type %s", player, player.TypeName())
	}
	if n := call(t, rt, "get_node", "/root/Nowhere"); n != nil {
		t.Errorf("expected nil for missing node, have %v", n)
	}
	level := call(t, rt, "get_parent", player)
	kids := call(t, rt, "get_children", level).(*Array)
	if kids.Len() != 2 {
		t.Errorf("expected 2 children of Level, have %v", kids)
	}
	enemy := call(t, rt, "find_node", "Enemy")
	if p := call(t, rt, "get_path_to", player, enemy); p != "../Enemy" {
		t.Errorf("get_path_to = %v", p)
	}
	call(t, rt, "queue_free", enemy)
	if call(t, rt, "is_inside_tree", enemy) != false {
		t.Errorf("expected freed node to leave the tree")
	}
	if call(t, rt, "get_children", level).(*Array).Len() != 1 {
		t.Errorf("expected freed node to be detached")
	}
}

func TestMockHostScenesAndInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	host := NewMockHost()
	rt := New(WithHost(host))
	call(t, rt, "change_scene", "res://levels/2.tscn")
	if host.CurrentScene() != "res://levels/2.tscn" {
		t.Errorf("change_scene not delegated, scene is %q", host.CurrentScene())
	}
	change, _ := rt.Globals().Lookup("change_scene")
	if _, err := Call(change, ""); err == nil {
		t.Errorf("expected error for empty scene path")
	}
	host.SetInputState("action_jump", true)
	host.SetInputState("key_A", true)
	host.SetMousePosition(10, 20)
	if call(t, rt, "is_action_pressed", "jump") != true {
		t.Errorf("expected jump to be pressed")
	}
	if call(t, rt, "is_action_just_pressed", "jump") != false {
		t.Errorf("jump has not just been pressed")
	}
	if call(t, rt, "get_action_strength", "jump") != 1.0 {
		t.Errorf("expected full strength for pressed action")
	}
	if call(t, rt, "is_key_pressed", "A") != true {
		t.Errorf("expected key A to be pressed")
	}
	if m := call(t, rt, "get_mouse_position"); Str(m) != "(10.0, 20.0)" {
		t.Errorf("mouse position = %v", m)
	}
	host.ClearInput()
	if call(t, rt, "is_action_pressed", "jump") != false {
		t.Errorf("expected input to be cleared")
	}
}

func TestMoveAndSlide(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	host := NewMockHost()
	node := host.AddNode("/root/Player", map[string]Value{"position": NewVector2(0, 0)})
	rt := New(WithHost(host))
	rt.PushScope("player")
	defer rt.PopScope()
	rt.CurrentScope().Define("node", node)
	call(t, rt, "move_and_slide", NewVector2(60, -120))
	pos, _ := node.GetMember("position")
	if Str(pos) != "(1.0, -2.0)" {
		t.Errorf("expected position to advance by one frame, is %v", pos)
	}
}

func TestHostClock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	host := NewMockHost()
	rt := New(WithHost(host))
	fired := false
	rt.CreateTimer(0.1, NewBuiltin("cb", func([]Value) (Value, error) {
		fired = true
		return nil, nil
	}))
	host.Advance(0.05)
	rt.UpdateTimers()
	if fired {
		t.Fatalf("timer fired too early")
	}
	host.Advance(0.05)
	rt.UpdateTimers()
	if !fired {
		t.Errorf("expected timer to fire after 0.1s of host time")
	}
	if fps := rt.FPS(); fps < 19.9 || fps > 20.1 {
		t.Errorf("expected 20 fps, have %g", fps)
	}
}

func TestInstanceExports(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	host := NewMockHost()
	owner := host.AddNode("/root/Player", nil)
	rt := New(WithHost(host))
	scope := NewScope("Player", rt.Globals())
	inst := NewInstance(rt, "Player", scope, owner)
	inst.Exports.AddVariable("speed", "int", int64(100), "range", "0,500")
	inst.Exports.AddVariable("tint", "Color", []float64{1, 0, 0}, "", "")
	scope.Define("speed", int64(100))
	scope.Define("tint", nil)
	if err := inst.SetExportVariable("speed", "250"); err != nil {
		t.Fatal(err)
	}
	if v, _ := inst.GetMember("speed"); v != int64(250) {
		t.Errorf("expected coerced export value 250, have %v", v)
	}
	if err := inst.SetExportVariable("speed", int64(900)); err == nil {
		t.Errorf("expected range violation")
	}
	if err := inst.SetExportVariable("tint", []float64{0, 1, 0}); err != nil {
		t.Fatal(err)
	}
	if v, _ := inst.GetExportVariable("tint"); TypeName(v) != "Color" {
		t.Errorf("expected color, have %s", TypeName(v))
	}
	if !inst.SetMember("name", "Hero") || owner.Name != "Hero" {
		t.Errorf("expected owner member to be set")
	}
	all := inst.GetAllExportVariables()
	if all.Len() != 2 || all.Keys()[0] != "speed" {
		t.Errorf("unexpected export variables %v", all)
	}
}

func TestInstanceLifecycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.runtime")
	defer teardown()
	//
	rt := New()
	scope := NewScope("Counter", rt.Globals())
	readies, frames := 0, 0
	scope.Define("_ready", NewBuiltin("_ready", func([]Value) (Value, error) {
		readies++
		return nil, nil
	}))
	scope.Define("_process", NewBuiltin("_process", func(args []Value) (Value, error) {
		frames++
		panic("bad frame")
	}))
	inst := NewInstance(rt, "Counter", scope, nil)
	inst.Ready()
	inst.Ready()
	if readies != 1 {
		t.Errorf("expected _ready to be called once, was called %d times", readies)
	}
	if err := inst.Process(0.016); err == nil {
		t.Errorf("expected panic to be converted into an error")
	}
	inst.Enabled = false
	inst.Process(0.016)
	if frames != 1 {
		t.Errorf("expected disabled instance to skip _process, frames = %d", frames)
	}
	if err := inst.Draw(); err != nil {
		t.Errorf("missing methods should be ignored, have %v", err)
	}
}
