package runtime

import (
	"github.com/npillmayer/lsc/exports"
)

// Instance is a script instance: the namespace of a class, attached to a
// host node (the owner).
type Instance struct {
	ClassName   string
	Chain       []string // class chain, base first
	Scope       *Scope
	Owner       Value
	Exports     *exports.Registry
	Enabled     bool
	ReadyCalled bool
	rt          *Runtime
}

var _ Object = (*Instance)(nil)

// NewInstance creates an enabled script instance for a scope.
func NewInstance(rt *Runtime, className string, scope *Scope, owner Value) *Instance {
	return &Instance{
		ClassName: className,
		Chain:     []string{className},
		Scope:     scope,
		Owner:     owner,
		Exports:   exports.NewRegistry(),
		Enabled:   true,
		rt:        rt,
	}
}

func (inst *Instance) String() string {
	return "<" + inst.ClassName + " instance>"
}

// HasMethod checks if the script namespace holds a callable of a name.
func (inst *Instance) HasMethod(name string) bool {
	v, ok := inst.Scope.Lookup(name)
	if !ok {
		return false
	}
	_, ok = v.(Callable)
	return ok
}

// CallMethod calls a method of the instance. A disabled instance or a
// missing method yields nil without an error. Panics are converted to
// errors.
func (inst *Instance) CallMethod(name string, args ...Value) (v Value, err error) {
	if !inst.Enabled {
		return nil, nil
	}
	fn, ok := inst.Scope.Lookup(name)
	if !ok {
		return nil, nil
	}
	c, ok := fn.(Callable)
	if !ok {
		return nil, Errorf("%s.%s is not callable", inst.ClassName, name)
	}
	defer func() {
		if r := recover(); r != nil {
			err = Recovered(r)
			tracer().Errorf("%s.%s: %v", inst.ClassName, name, err)
		}
	}()
	return c.Call(args)
}

// Ready calls `_ready` once.
func (inst *Instance) Ready() error {
	if inst.ReadyCalled {
		return nil
	}
	inst.ReadyCalled = true
	_, err := inst.CallMethod("_ready")
	return err
}

// Process calls `_process(delta)`.
func (inst *Instance) Process(delta float64) error {
	_, err := inst.CallMethod("_process", delta)
	return err
}

// PhysicsProcess calls `_physics_process(delta)`.
func (inst *Instance) PhysicsProcess(delta float64) error {
	_, err := inst.CallMethod("_physics_process", delta)
	return err
}

// Input calls `_input(event)`.
func (inst *Instance) Input(event Value) error {
	_, err := inst.CallMethod("_input", event)
	return err
}

// Draw calls `_draw`.
func (inst *Instance) Draw() error {
	_, err := inst.CallMethod("_draw")
	return err
}

// IsA checks if the instance's class chain contains a class.
func (inst *Instance) IsA(className string) bool {
	for _, c := range inst.Chain {
		if c == className {
			return true
		}
	}
	return false
}

// GetMember is part of interface Object. Members are looked up at the owner
// node first, then in the export variables, then in the script namespace.
func (inst *Instance) GetMember(name string) (Value, bool) {
	if obj, ok := inst.Owner.(Object); ok {
		if v, ok := obj.GetMember(name); ok {
			return v, true
		}
	}
	if v, ok := inst.GetExportVariable(name); ok {
		return v, true
	}
	return inst.Scope.Lookup(name)
}

// SetMember is part of interface Object.
func (inst *Instance) SetMember(name string, v Value) bool {
	if _, ok := inst.Exports.Get(name); ok {
		return inst.SetExportVariable(name, v) == nil
	}
	if obj, ok := inst.Owner.(Object); ok {
		if _, ok := obj.GetMember(name); ok {
			return obj.SetMember(name, v)
		}
	}
	return inst.Scope.Assign(name, v) == nil
}

// GetExportVariable returns the current value of an export variable.
func (inst *Instance) GetExportVariable(name string) (Value, bool) {
	if _, ok := inst.Exports.Get(name); !ok {
		return nil, false
	}
	return inst.Scope.Lookup(name)
}

// SetExportVariable validates a value and assigns it to an export
// variable. Component slices are converted to math types.
func (inst *Instance) SetExportVariable(name string, v Value) error {
	coerced, err := inst.Exports.Validate(name, v)
	if err != nil {
		return &RuntimeError{Msg: err.Error(), Cause: err}
	}
	coerced = FromComponents(coerced)
	inst.Exports.Update(name, coerced)
	if err := inst.Scope.Assign(name, coerced); err != nil {
		return err
	}
	tracer().Debugf("%s: export %s = %s", inst.ClassName, name, Repr(coerced))
	return nil
}

// GetAllExportVariables returns the current values of all export
// variables, in declaration order.
func (inst *Instance) GetAllExportVariables() *Dict {
	d := NewDict()
	for _, v := range inst.Exports.All() {
		val, _ := inst.Scope.Lookup(v.Name)
		d.Put(v.Name, val)
	}
	return d
}

// FromComponents converts plain component slices, as used for export
// defaults, into math values.
func FromComponents(v Value) Value {
	c, ok := v.([]float64)
	if !ok {
		return v
	}
	switch len(c) {
	case 2:
		return NewVector2(c[0], c[1])
	case 3:
		return NewVector3(c[0], c[1], c[2])
	case 4:
		return &Color{R: c[0], G: c[1], B: c[2], A: c[3]}
	}
	return v
}
