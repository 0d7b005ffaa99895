package exports

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestRegistryGroups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.exports")
	defer teardown()
	//
	r := NewRegistry()
	r.AddVariable("name", "String", "hero", "", "")
	r.AddGroup("Movement", "move_")
	r.AddVariable("speed", "float", 200.0, "range", "0,500,10")
	r.AddVariable("jump", "float", 5.0, "", "")
	if r.Len() != 3 {
		t.Fatalf("expected 3 variables, have %d", r.Len())
	}
	if len(r.Ungrouped()) != 1 || r.Ungrouped()[0].Name != "name" {
		t.Errorf("expected 'name' to be ungrouped, have %v", r.Ungrouped())
	}
	if vars := r.InGroup("Movement"); len(vars) != 2 || vars[1].Name != "jump" {
		t.Errorf("expected group Movement to hold speed and jump, have %v", vars)
	}
	if !r.RemoveVariable("speed") || len(r.InGroup("Movement")) != 1 {
		t.Errorf("expected speed to be removed from its group")
	}
	if !r.RemoveGroup("Movement") || r.Len() != 1 {
		t.Errorf("expected group removal to remove its variables, have %d", r.Len())
	}
	if r.CurrentGroup() != "" {
		t.Errorf("expected current group to be reset")
	}
}

func TestHints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.exports")
	defer teardown()
	//
	r := NewRegistry()
	v := r.AddVariable("speed", "float", 1.0, "RANGE", "0, 10, 0.5")
	if v.Type != Range || v.Min == nil || *v.Min != 0 || *v.Max != 10 || *v.Step != 0.5 {
		t.Errorf("range hint not parsed: %+v", v)
	}
	v = r.AddVariable("state", "String", "Idle", "enum", "Idle, Walk ,Run")
	if len(v.EnumValues) != 3 || v.EnumValues[1] != "Walk" {
		t.Errorf("enum hint not parsed: %v", v.EnumValues)
	}
	v = r.AddVariable("icon", "String", "", "file_path", "*.png,*.jpg")
	if len(v.FileExtensions) != 2 || v.FileExtensions[1] != "*.jpg" {
		t.Errorf("file hint not parsed: %v", v.FileExtensions)
	}
	v = r.AddVariable("label", "String", "", "placeholder", "Enter name")
	if v.Placeholder != "Enter name" {
		t.Errorf("placeholder hint not parsed: %q", v.Placeholder)
	}
	v = r.AddVariable("odd", "int", int64(0), "wobbly", "")
	if v.Type != NoType {
		t.Errorf("expected unknown export type to be ignored, have %q", v.Type)
	}
}

func TestValidate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.exports")
	defer teardown()
	//
	r := NewRegistry()
	r.AddVariable("speed", "float", 1.0, "range", "0,10")
	r.AddVariable("lives", "int", int64(3), "", "")
	r.AddVariable("god", "bool", false, "", "")
	r.AddVariable("state", "String", "Idle", "enum", "Idle,Walk")
	r.AddVariable("tint", "Color", nil, "", "")
	//
	if v, err := r.Validate("speed", int64(4)); err != nil || v != 4.0 {
		t.Errorf("expected 4 to be coerced to 4.0, have %v, %v", v, err)
	}
	if _, err := r.Validate("speed", 11.0); err == nil || !strings.Contains(err.Error(), "<=") {
		t.Errorf("expected range error, have %v", err)
	}
	if v, err := r.Validate("lives", "7"); err != nil || v != int64(7) {
		t.Errorf("expected \"7\" to be coerced to 7, have %v, %v", v, err)
	}
	if _, err := r.Validate("lives", "many"); err == nil {
		t.Errorf("expected error for non-integer")
	}
	if v, _ := r.Validate("god", "yes"); v != true {
		t.Errorf("expected 'yes' to be true, have %v", v)
	}
	if _, err := r.Validate("state", "Fly"); err == nil {
		t.Errorf("expected enum error")
	}
	v, err := r.Validate("tint", []interface{}{int64(1), 0.5, 0.0})
	if err != nil {
		t.Fatal(err)
	}
	if c := v.([]float64); len(c) != 4 || c[3] != 1 {
		t.Errorf("expected color with alpha 1, have %v", c)
	}
	if _, err := r.Validate("nothing", 1); err == nil {
		t.Errorf("expected error for unknown variable")
	}
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.exports")
	defer teardown()
	//
	r := NewRegistry()
	r.AddVariable("speed", "float", 1.0, "", "")
	f1 := r.Fingerprint()
	if f1 == "" {
		t.Fatal("expected fingerprint")
	}
	if r.Fingerprint() != f1 {
		t.Errorf("fingerprint not stable")
	}
	r.Update("speed", 2.0)
	if r.Fingerprint() == f1 {
		t.Errorf("fingerprint should change with value")
	}
}

func TestInspectorData(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.exports")
	defer teardown()
	//
	r := NewRegistry()
	r.AddVariable("a", "int", int64(1), "", "")
	r.AddGroup("G", "")
	r.AddVariable("b", "float", 2.0, "range", "0,5")
	data := r.InspectorData()
	if len(data.Ungrouped) != 1 || len(data.Groups) != 1 {
		t.Fatalf("unexpected inspector data %+v", data)
	}
	b := data.Groups[0].Variables[0]
	if b.Value != "2.0" || b.ExportType != "range" || *b.Max != 5 {
		t.Errorf("unexpected variable data %+v", b)
	}
}

const scanSource = `extends Node2D

export var title: String = "Hero"
export_group("Movement", "move_")
export(range, "0,500,10") var speed: float = 200.0
export var offset: Vector2 = Vector2(1, -2)
export var tint: Color = Color(1, 0, 0)
export var target: Vector2 = compute()
export var depth: int = -3

func compute():
    return Vector2(0, 0)
`

func TestScan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.exports")
	defer teardown()
	//
	groups, ungrouped, err := Scan(scanSource)
	if err != nil {
		t.Fatal(err)
	}
	if len(ungrouped) != 1 || ungrouped[0].Value != "Hero" {
		t.Errorf("expected ungrouped title, have %v", ungrouped)
	}
	if len(groups) != 1 || len(groups[0].Variables) != 5 {
		t.Fatalf("expected 1 group with 5 variables, have %v", groups)
	}
	vars := groups[0].Variables
	if vars[0].Value != 200.0 || *vars[0].Max != 500 {
		t.Errorf("unexpected speed %v", vars[0])
	}
	if off := vars[1].Value.([]float64); off[0] != 1 || off[1] != -2 {
		t.Errorf("unexpected offset %v", off)
	}
	if tint := vars[2].Value.([]float64); len(tint) != 4 || tint[3] != 1 {
		t.Errorf("unexpected tint %v", tint)
	}
	if tgt := vars[3].Value.([]float64); len(tgt) != 2 || tgt[0] != 0 {
		t.Errorf("expected type default for non-constant value, have %v", tgt)
	}
	if vars[4].Value != int64(-3) {
		t.Errorf("expected -3, have %v", vars[4].Value)
	}
}

func TestScanWithErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.exports")
	defer teardown()
	//
	_, ungrouped, err := Scan("export var a: int = 1\nvar = \nexport var b: int = 2\n")
	if err == nil {
		t.Errorf("expected parse error")
	}
	if len(ungrouped) != 2 {
		t.Errorf("expected both exports to survive, have %v", ungrouped)
	}
}
