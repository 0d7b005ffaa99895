package interp

import (
	"fmt"

	"github.com/npillmayer/lsc/ast"
	"github.com/npillmayer/lsc/runtime"
)

// Function is a script function, closing over the scope it is defined in.
type Function struct {
	Def     *ast.FuncDef
	closure *runtime.Scope
	ctx     ExecContext // context of the definition
	intp    *Interpreter
}

var _ runtime.Callable = (*Function)(nil)

func (intp *Interpreter) newFunction(def *ast.FuncDef, sc *runtime.Scope, ctx ExecContext) *Function {
	return &Function{Def: def, closure: sc, ctx: ctx, intp: intp}
}

// Name is part of interface runtime.Callable.
func (f *Function) Name() string {
	return f.Def.Name
}

func (f *Function) String() string {
	return fmt.Sprintf("<func %s/%d>", f.Def.Name, len(f.Def.Params))
}

// TypeName is used by `typeof`.
func (f *Function) TypeName() string {
	return "Function"
}

// Call is part of interface runtime.Callable. Arguments are bound
// positionally; defaults of missing arguments are evaluated in the scope of
// the call.
func (f *Function) Call(args []runtime.Value) (runtime.Value, error) {
	params := f.Def.Params
	if len(args) > len(params) {
		return nil, errorAt(f.Def, "%s() takes %d argument(s), %d given", f.Def.Name, len(params), len(args))
	}
	rt := f.intp.rt
	if rt.Frames.Depth() >= f.intp.maxDepth {
		return nil, errorAt(f.Def, "maximum call depth %d exceeded in %s()", f.intp.maxDepth, f.Def.Name)
	}
	sc := runtime.NewScope(f.Def.Name, f.closure)
	rt.Frames.PushFrame(f.Def.Name, sc)
	defer rt.Frames.PopFrame()
	if f.ctx.Super != nil {
		sc.Define("super", f.ctx.Super)
	}
	for i, p := range params {
		if i < len(args) {
			sc.Define(p.Name, runtime.Copy(args[i]))
			continue
		}
		if p.Default == nil {
			return nil, errorAt(f.Def, "%s(): missing argument for parameter '%s'", f.Def.Name, p.Name)
		}
		v, err := f.intp.eval(p.Default, sc)
		if err != nil {
			return nil, err
		}
		sc.Define(p.Name, v)
	}
	_, err := f.intp.execBlock(f.Def.Body, sc, f.ctx)
	if r, ok := err.(*returnSignal); ok {
		return r.value, nil
	}
	return nil, escaped(err)
}

// --- Classes ---------------------------------------------------------------

// ScriptClass is a class defined within a script. Calling it, or calling
// its `new` member, creates an instance.
type ScriptClass struct {
	Def     *ast.ClassDef
	closure *runtime.Scope
	intp    *Interpreter
}

var _ runtime.Callable = (*ScriptClass)(nil)
var _ runtime.Object = (*ScriptClass)(nil)

// Name is part of interface runtime.Callable.
func (c *ScriptClass) Name() string {
	return c.Def.Name
}

func (c *ScriptClass) String() string {
	return "<class " + c.Def.Name + ">"
}

// TypeName is used by `typeof`.
func (c *ScriptClass) TypeName() string {
	return "Class"
}

// Call is part of interface runtime.Callable.
func (c *ScriptClass) Call(args []runtime.Value) (runtime.Value, error) {
	return c.instantiate(args)
}

// GetMember is part of interface runtime.Object.
func (c *ScriptClass) GetMember(name string) (runtime.Value, bool) {
	switch name {
	case "new":
		return runtime.NewBuiltin(c.Def.Name+".new", c.instantiate), true
	case "name":
		return c.Def.Name, true
	case "base":
		return c.Def.Base, true
	}
	return nil, false
}

// SetMember is part of interface runtime.Object.
func (c *ScriptClass) SetMember(string, runtime.Value) bool {
	return false
}

// New creates an instance. The base chain is replayed first, then the
// class body; `self` is bound to the instance, and `_init` is called with
// the arguments, if present.
func (c *ScriptClass) New(args ...runtime.Value) (*runtime.Instance, error) {
	inst := runtime.NewInstance(c.intp.rt, c.Def.Name, nil, nil)
	scope, chain, err := c.replay(inst)
	if err != nil {
		return nil, err
	}
	inst.Scope = scope
	inst.Chain = chain
	if inst.HasMethod("_init") {
		if _, err := inst.CallMethod("_init", args...); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("created instance of %s", c.Def.Name)
	return inst, nil
}

func (c *ScriptClass) instantiate(args []runtime.Value) (runtime.Value, error) {
	inst, err := c.New(args...)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// replay executes the class bodies of the inheritance chain, base first, into
// one scope.
func (c *ScriptClass) replay(inst *runtime.Instance) (*runtime.Scope, []string, error) {
	var scope *runtime.Scope
	var chain []string
	var err error
	rt := c.intp.rt
	if c.Def.Base == "" {
		scope = runtime.NewScope(c.Def.Name, c.closure)
	} else if base, ok := c.localBase(); ok {
		if scope, chain, err = base.replay(inst); err != nil {
			return nil, nil, err
		}
	} else if rt.Classes() != nil && rt.Classes().IsClass(c.Def.Base) {
		if scope, err = rt.Classes().CreateInstanceScope(c.Def.Base); err != nil {
			return nil, nil, err
		}
		chain = []string{c.Def.Base}
	} else {
		return nil, nil, errorAt(c.Def, "class %s: unknown base class %s", c.Def.Name, c.Def.Base)
	}
	inst.Scope = scope
	scope.Define("self", inst)
	ctx := ExecContext{Super: runtime.NewSuper(c.Def.Name, scope), Exports: inst.Exports}
	prog := &ast.Program{Statements: c.Def.Body, Extends: c.Def.Base}
	if err := c.intp.ExecuteWith(prog, scope, ctx); err != nil {
		return nil, nil, err
	}
	return scope, append(chain, c.Def.Name), nil
}

func (c *ScriptClass) localBase() (*ScriptClass, bool) {
	v, ok := c.closure.Lookup(c.Def.Base)
	if !ok {
		return nil, false
	}
	base, ok := v.(*ScriptClass)
	return base, ok && base != c
}
