package interp

import (
	"github.com/npillmayer/lsc"
	"github.com/npillmayer/lsc/ast"
	"github.com/npillmayer/lsc/runtime"
)

// eval evaluates an expression in a scope.
func (intp *Interpreter) eval(expr ast.Expression, sc *runtime.Scope) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil
	case *ast.Identifier:
		return intp.identifier(e, sc)
	case *ast.BinaryOp:
		return intp.binary(e, sc)
	case *ast.UnaryOp:
		return intp.unary(e, sc)
	case *ast.TernaryOp:
		cond, err := intp.eval(e.Cond, sc)
		if err != nil {
			return nil, err
		}
		if runtime.Truthy(cond) {
			return intp.eval(e.Then, sc)
		}
		return intp.eval(e.Else, sc)
	case *ast.Call:
		return intp.call(e, sc)
	case *ast.MemberAccess:
		obj, err := intp.eval(e.Object, sc)
		if err != nil {
			return nil, err
		}
		return intp.member(obj, e.Member, e)
	case *ast.IndexAccess:
		obj, err := intp.eval(e.Object, sc)
		if err != nil {
			return nil, err
		}
		index, err := intp.eval(e.Index, sc)
		if err != nil {
			return nil, err
		}
		return intp.index(obj, index, e)
	case *ast.ArrayLiteral:
		values, err := intp.evalList(e.Elements, sc)
		if err != nil {
			return nil, err
		}
		return runtime.NewArray(values...), nil
	case *ast.DictLiteral:
		d := runtime.NewDict()
		for _, pair := range e.Pairs {
			k, err := intp.eval(pair.Key, sc)
			if err != nil {
				return nil, err
			}
			v, err := intp.eval(pair.Value, sc)
			if err != nil {
				return nil, err
			}
			if err := d.Put(k, v); err != nil {
				return nil, located(err, pair.Key)
			}
		}
		return d, nil
	case *ast.NodePath:
		n := intp.rt.Host.GetNode(e.Path)
		if n == nil {
			tracer().Infof("%s: node not found: $%s", where(e), e.Path)
		}
		return n, nil
	}
	return nil, errorAt(expr, "cannot evaluate expression %s", expr)
}

func (intp *Interpreter) evalList(exprs []ast.Expression, sc *runtime.Scope) ([]runtime.Value, error) {
	values := make([]runtime.Value, len(exprs))
	for i, x := range exprs {
		v, err := intp.eval(x, sc)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// identifier resolves a name. Undefined names fall back to the table of
// default values, unless identifiers are strict.
func (intp *Interpreter) identifier(id *ast.Identifier, sc *runtime.Scope) (runtime.Value, error) {
	if v, ok := sc.Lookup(id.Name); ok {
		return v, nil
	}
	if intp.strict {
		return nil, errorAt(id, "undefined variable '%s'", id.Name)
	}
	if d, ok := Default(id.Name); ok {
		tracer().Infof("%s: using default value %s for undefined variable '%s'",
			where(id), runtime.Repr(d), id.Name)
		sc.Define(id.Name, d)
		return d, nil
	}
	tracer().Errorf("%s: undefined variable '%s'", where(id), id.Name)
	return nil, nil
}

func (intp *Interpreter) binary(e *ast.BinaryOp, sc *runtime.Scope) (runtime.Value, error) {
	left, err := intp.eval(e.Left, sc)
	if err != nil {
		return nil, err
	}
	switch e.Op { // short circuit
	case lsc.AND:
		if !runtime.Truthy(left) {
			return left, nil
		}
		return intp.eval(e.Right, sc)
	case lsc.OR:
		if runtime.Truthy(left) {
			return left, nil
		}
		return intp.eval(e.Right, sc)
	}
	right, err := intp.eval(e.Right, sc)
	if err != nil {
		return nil, err
	}
	var v runtime.Value
	switch e.Op {
	case lsc.EQ:
		return runtime.Equal(left, right), nil
	case lsc.NEQ:
		return !runtime.Equal(left, right), nil
	case lsc.LT, lsc.LE, lsc.GT, lsc.GE:
		v, err = runtime.Compare(e.Op, left, right)
	case lsc.IN:
		v, err = runtime.Contains(right, left)
	case lsc.IS:
		return runtime.Identical(left, right), nil
	default:
		v, err = runtime.Arith(e.Op, left, right)
	}
	if err != nil {
		return nil, located(err, e)
	}
	return v, nil
}

func (intp *Interpreter) unary(e *ast.UnaryOp, sc *runtime.Scope) (runtime.Value, error) {
	v, err := intp.eval(e.Operand, sc)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case lsc.NOT:
		return !runtime.Truthy(v), nil
	case lsc.MINUS:
		v, err = runtime.Negate(v)
	case lsc.TILDE:
		v, err = runtime.BitNot(v)
	case lsc.PLUS:
		if !runtime.IsNumber(v) {
			err = runtime.Errorf("bad operand type for unary +: %s", runtime.TypeName(v))
		}
	default:
		err = runtime.Errorf("unknown unary operator %s", e.Op)
	}
	if err != nil {
		return nil, located(err, e)
	}
	return v, nil
}

// call evaluates a call. Calling null or a non-callable value is logged and
// yields null, without evaluating the arguments. Errors raised by the callee are logged at the call site and
// yield null, so that a failing handler does not stop a running game.
func (intp *Interpreter) call(e *ast.Call, sc *runtime.Scope) (runtime.Value, error) {
	fn, err := intp.eval(e.Callee, sc)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		tracer().Infof("%s: attempt to call undefined function %s", where(e), e.Callee)
		return nil, nil
	}
	c, ok := fn.(runtime.Callable)
	if !ok {
		tracer().Infof("%s: %s is not callable", where(e), runtime.TypeName(fn))
		return nil, nil
	}
	args, err := intp.evalList(e.Args, sc)
	if err != nil {
		return nil, err
	}
	v, err := safeCall(c, args)
	if err != nil {
		tracer().Errorf("%s: error calling %s: %v", where(e), c.Name(), err)
		return nil, nil
	}
	return v, nil
}

func safeCall(c runtime.Callable, args []runtime.Value) (v runtime.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = runtime.Recovered(r)
		}
	}()
	return c.Call(args)
}

// --- Members and indexing --------------------------------------------------

// member looks up `obj.name`. Dictionary entries with string keys are
// members, too, which makes `State.IDLE` work for enums.
func (intp *Interpreter) member(obj runtime.Value, name string, at ast.Node) (runtime.Value, error) {
	switch x := obj.(type) {
	case runtime.Object:
		if v, ok := x.GetMember(name); ok {
			return v, nil
		}
		if d, ok := x.(*runtime.Dict); ok {
			if v, ok := d.Get(name); ok {
				return v, nil
			}
		}
	case string:
		if v, ok := stringMember(x, name); ok {
			return v, nil
		}
	case nil:
		return nil, errorAt(at, "cannot access member '%s' of null", name)
	}
	return nil, errorAt(at, "'%s' object has no attribute '%s'", runtime.TypeName(obj), name)
}

func (intp *Interpreter) setMember(obj runtime.Value, name string, v runtime.Value, at ast.Node) error {
	if d, ok := obj.(*runtime.Dict); ok {
		return located(d.Put(name, v), at)
	}
	if x, ok := obj.(runtime.Object); ok {
		if x.SetMember(name, v) {
			return nil
		}
	}
	return errorAt(at, "cannot set attribute '%s' of '%s' object", name, runtime.TypeName(obj))
}

func (intp *Interpreter) index(obj, index runtime.Value, at ast.Node) (runtime.Value, error) {
	switch x := obj.(type) {
	case *runtime.Array:
		i, ok := index.(int64)
		if !ok {
			return nil, errorAt(at, "array index must be an integer, not %s", runtime.TypeName(index))
		}
		v, err := x.Get(i)
		if err != nil {
			return nil, located(err, at)
		}
		return v, nil
	case *runtime.Dict:
		if v, ok := x.Get(index); ok {
			return v, nil
		}
		return nil, errorAt(at, "key %s not found in dictionary", runtime.Repr(index))
	case string:
		i, ok := index.(int64)
		if !ok {
			return nil, errorAt(at, "string index must be an integer, not %s", runtime.TypeName(index))
		}
		chars := []rune(x)
		if i < 0 {
			i += int64(len(chars))
		}
		if i < 0 || i >= int64(len(chars)) {
			return nil, errorAt(at, "string index %d out of range", i)
		}
		return string(chars[i]), nil
	}
	i, ok := index.(int64)
	if !ok {
		return nil, errorAt(at, "'%s' object is not indexable by %s", runtime.TypeName(obj), runtime.TypeName(index))
	}
	v, err := runtime.Component(obj, i)
	if err != nil {
		return nil, located(err, at)
	}
	return v, nil
}

var componentNames = map[string][]string{
	"Vector2": {"x", "y"},
	"Vector3": {"x", "y", "z"},
	"Color":   {"r", "g", "b", "a"},
}

func (intp *Interpreter) setIndex(obj, index, v runtime.Value, at ast.Node) error {
	switch x := obj.(type) {
	case *runtime.Array:
		i, ok := index.(int64)
		if !ok {
			return errorAt(at, "array index must be an integer, not %s", runtime.TypeName(index))
		}
		if err := x.Set(i, v); err != nil {
			return located(err, at)
		}
		return nil
	case *runtime.Dict:
		if err := x.Put(index, v); err != nil {
			return located(err, at)
		}
		return nil
	}
	if names, ok := componentNames[runtime.TypeName(obj)]; ok {
		if i, ok := index.(int64); ok && i >= 0 && i < int64(len(names)) {
			return intp.setMember(obj, names[i], v, at)
		}
		return errorAt(at, "%s index %s out of range", runtime.TypeName(obj), runtime.Repr(index))
	}
	return errorAt(at, "'%s' object does not support item assignment", runtime.TypeName(obj))
}
