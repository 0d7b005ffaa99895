/*
Package exports manages the export variables of LSC scripts.

Scripts mark variables with `export` to make them editable in a host's
inspector:

	export_group("Movement", "move_")
	export(range, "0,500,10") var speed: float = 200.0
	export(enum, "Idle,Walk,Run") var state: String = "Idle"

A Registry collects the variables and groups of a script instance, in
declaration order. It parses export hints, validates values set by the
inspector and renders the data an inspector needs.

Values handled by this package are plain Go values as used by package
runtime (int64, float64, bool, string, …). Math types are recognized by
their Components method.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package exports

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lsc.exports'.
func tracer() tracing.Trace {
	return tracing.Select("lsc.exports")
}

// ExportType is the inspector type of an export variable.
type ExportType string

// Export types recognized in `export(type, …)`.
const (
	NoType      ExportType = ""
	Int         ExportType = "int"
	Float       ExportType = "float"
	String      ExportType = "string"
	Bool        ExportType = "bool"
	Color       ExportType = "color"
	Vector2     ExportType = "vector2"
	Vector3     ExportType = "vector3"
	NodePath    ExportType = "node_path"
	FilePath    ExportType = "file_path"
	Texture     ExportType = "texture"
	Audio       ExportType = "audio"
	Scene       ExportType = "scene"
	Script      ExportType = "script"
	Enum        ExportType = "enum"
	Range       ExportType = "range"
	Multiline   ExportType = "multiline"
	Placeholder ExportType = "placeholder"
)

var exportTypes = map[ExportType]bool{
	Int: true, Float: true, String: true, Bool: true, Color: true,
	Vector2: true, Vector3: true, NodePath: true, FilePath: true,
	Texture: true, Audio: true, Scene: true, Script: true, Enum: true,
	Range: true, Multiline: true, Placeholder: true,
}

// ParseExportType converts a type name, case-insensitively. Unknown names
// yield NoType.
func ParseExportType(s string) ExportType {
	t := ExportType(strings.ToLower(strings.TrimSpace(s)))
	if exportTypes[t] {
		return t
	}
	return NoType
}

// Variable describes an export variable.
type Variable struct {
	Name           string
	TypeHint       string // declared type, e.g. "float" or "Vector2"
	Value          interface{}
	Type           ExportType
	Hint           string // raw hint string
	Group          string
	Description    string
	Min, Max, Step *float64
	EnumValues     []string
	FileExtensions []string
	Placeholder    string
}

func (v *Variable) String() string {
	return fmt.Sprintf("export %s: %s = %v", v.Name, v.TypeHint, v.Value)
}

// Group is a named group of export variables. Group names are unique
// within a registry.
type Group struct {
	Name      string
	Prefix    string
	Variables []*Variable
}

func (g *Group) remove(v *Variable) {
	for i, x := range g.Variables {
		if x == v {
			g.Variables = append(g.Variables[:i], g.Variables[i+1:]...)
			return
		}
	}
}

// Registry holds the export variables and groups of a script, in insertion
// order. A registry is not safe for concurrent use.
type Registry struct {
	vars    *linkedhashmap.Map // name → *Variable
	groups  *linkedhashmap.Map // name → *Group
	current string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		vars:   linkedhashmap.New(),
		groups: linkedhashmap.New(),
	}
}

// AddGroup adds a group and makes it the current group for subsequent
// variables. Re-adding an existing group re-opens it.
func (r *Registry) AddGroup(name, prefix string) *Group {
	if g, ok := r.groups.Get(name); ok {
		r.current = name
		return g.(*Group)
	}
	g := &Group{Name: name, Prefix: prefix}
	r.groups.Put(name, g)
	r.current = name
	tracer().Debugf("export group %q", name)
	return g
}

// CurrentGroup returns the name of the group new variables are put into.
func (r *Registry) CurrentGroup() string {
	return r.current
}

// AddVariable adds (or replaces) an export variable. The export type is
// parsed leniently; the hint is interpreted according to it.
func (r *Registry) AddVariable(name, typeHint string, value interface{}, exportType, hint string) *Variable {
	if old, ok := r.Get(name); ok {
		r.RemoveVariable(old.Name)
	}
	v := &Variable{
		Name:     name,
		TypeHint: typeHint,
		Value:    value,
		Type:     ParseExportType(exportType),
		Hint:     hint,
		Group:    r.current,
	}
	if exportType != "" && v.Type == NoType {
		tracer().Infof("export %s: unknown export type %q", name, exportType)
	}
	parseHint(v)
	r.vars.Put(name, v)
	if g, ok := r.GetGroup(r.current); ok {
		g.Variables = append(g.Variables, v)
	}
	return v
}

// Get returns an export variable.
func (r *Registry) Get(name string) (*Variable, bool) {
	if v, ok := r.vars.Get(name); ok {
		return v.(*Variable), true
	}
	return nil, false
}

// GetGroup returns a group.
func (r *Registry) GetGroup(name string) (*Group, bool) {
	if name == "" {
		return nil, false
	}
	if g, ok := r.groups.Get(name); ok {
		return g.(*Group), true
	}
	return nil, false
}

// Len returns the number of export variables.
func (r *Registry) Len() int {
	return r.vars.Size()
}

// All returns all variables in declaration order.
func (r *Registry) All() []*Variable {
	vars := make([]*Variable, 0, r.vars.Size())
	for _, v := range r.vars.Values() {
		vars = append(vars, v.(*Variable))
	}
	return vars
}

// Groups returns all groups in declaration order.
func (r *Registry) Groups() []*Group {
	groups := make([]*Group, 0, r.groups.Size())
	for _, g := range r.groups.Values() {
		groups = append(groups, g.(*Group))
	}
	return groups
}

// InGroup returns the variables of a group.
func (r *Registry) InGroup(name string) []*Variable {
	if g, ok := r.GetGroup(name); ok {
		return g.Variables
	}
	return nil
}

// Ungrouped returns the variables which are not in any group.
func (r *Registry) Ungrouped() []*Variable {
	var vars []*Variable
	for _, v := range r.All() {
		if v.Group == "" {
			vars = append(vars, v)
		}
	}
	return vars
}

// Update sets the value of a variable without validation.
func (r *Registry) Update(name string, value interface{}) bool {
	v, ok := r.Get(name)
	if !ok {
		return false
	}
	v.Value = value
	return true
}

// Clear removes all variables and groups.
func (r *Registry) Clear() {
	r.vars.Clear()
	r.groups.Clear()
	r.current = ""
}

// RemoveVariable removes a variable, including its group membership.
func (r *Registry) RemoveVariable(name string) bool {
	v, ok := r.Get(name)
	if !ok {
		return false
	}
	if g, ok := r.GetGroup(v.Group); ok {
		g.remove(v)
	}
	r.vars.Remove(name)
	return true
}

// RemoveGroup removes a group and all of its variables.
func (r *Registry) RemoveGroup(name string) bool {
	g, ok := r.GetGroup(name)
	if !ok {
		return false
	}
	for _, v := range append([]*Variable(nil), g.Variables...) {
		r.RemoveVariable(v.Name)
	}
	r.groups.Remove(name)
	if r.current == name {
		r.current = ""
	}
	return true
}

// --- Inspector data --------------------------------------------------------

// InspectorData is the data a host inspector renders.
type InspectorData struct {
	Groups    []GroupData
	Ungrouped []VariableData
}

// GroupData describes a group for the inspector.
type GroupData struct {
	Name      string
	Prefix    string
	Variables []VariableData
}

// VariableData describes a variable for the inspector. Optional fields are
// zero if not applicable.
type VariableData struct {
	Name           string
	Type           string
	Value          string
	Description    string
	ExportType     string
	ExportHint     string
	Min, Max, Step *float64
	EnumValues     []string
	FileExtensions []string
	Placeholder    string
}

// InspectorData returns the inspector view of the registry.
func (r *Registry) InspectorData() InspectorData {
	data := InspectorData{}
	for _, g := range r.Groups() {
		gd := GroupData{Name: g.Name, Prefix: g.Prefix}
		for _, v := range g.Variables {
			gd.Variables = append(gd.Variables, variableData(v))
		}
		data.Groups = append(data.Groups, gd)
	}
	for _, v := range r.Ungrouped() {
		data.Ungrouped = append(data.Ungrouped, variableData(v))
	}
	return data
}

func variableData(v *Variable) VariableData {
	return VariableData{
		Name:           v.Name,
		Type:           v.TypeHint,
		Value:          format(v.Value),
		Description:    v.Description,
		ExportType:     string(v.Type),
		ExportHint:     v.Hint,
		Min:            v.Min,
		Max:            v.Max,
		Step:           v.Step,
		EnumValues:     v.EnumValues,
		FileExtensions: v.FileExtensions,
		Placeholder:    v.Placeholder,
	}
}

// Fingerprint returns a digest of the inspector data. It changes whenever a
// variable or group is added, removed or changes its value or descriptor.
func (r *Registry) Fingerprint() string {
	h, err := structhash.Hash(r.InspectorData(), 1)
	if err != nil {
		tracer().Errorf("cannot fingerprint export registry: %v", err)
		return ""
	}
	return h
}
