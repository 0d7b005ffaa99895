package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is any LSC value. The dynamic types used are
//
//	nil, bool, int64, float64, string,
//	*Array, *Dict, *Vector2, *Vector3, *Rect2, *Color, *Texture,
//	Callable, Object (host nodes, instances, …)
type Value = interface{}

// Callable is implemented by all values which may be called: builtins,
// script functions, signal emitters and bound methods.
type Callable interface {
	Name() string
	Call(args []Value) (Value, error)
}

// Object is implemented by values with members, accessed with `obj.member`.
type Object interface {
	GetMember(name string) (Value, bool)
	SetMember(name string, v Value) bool
}

// BuiltinFunc is a callable implemented in Go.
type BuiltinFunc struct {
	name string
	fn   func(args []Value) (Value, error)
}

// NewBuiltin wraps a Go function as a callable.
func NewBuiltin(name string, fn func(args []Value) (Value, error)) *BuiltinFunc {
	return &BuiltinFunc{name: name, fn: fn}
}

// Name is part of interface Callable.
func (b *BuiltinFunc) Name() string {
	return b.name
}

// Call is part of interface Callable.
func (b *BuiltinFunc) Call(args []Value) (Value, error) {
	return b.fn(args)
}

func (b *BuiltinFunc) String() string {
	return "<builtin " + b.name + ">"
}

// NoOp is a callable which accepts any arguments and returns nil.
var NoOp = NewBuiltin("noop", func([]Value) (Value, error) { return nil, nil })

// Call calls a value, which has to be callable.
func Call(fn Value, args ...Value) (Value, error) {
	c, ok := fn.(Callable)
	if !ok {
		return nil, Errorf("%s is not callable", TypeName(fn))
	}
	return c.Call(args)
}

// --- Type inspection -------------------------------------------------------

// TypeName returns the LSC type name of a value, as reported by `typeof`.
func TypeName(v Value) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int64:
		return "int"
	case float64:
		return "float"
	case string:
		return "String"
	case *Array:
		return "Array"
	case *Dict:
		return "Dictionary"
	case *Vector2:
		return "Vector2"
	case *Vector3:
		return "Vector3"
	case *Rect2:
		return "Rect2"
	case *Color:
		return "Color"
	case *Texture:
		return "Texture"
	case *Instance:
		return x.ClassName
	case interface{ TypeName() string }:
		return x.TypeName()
	case Callable:
		return "Function"
	case Object:
		return "Object"
	}
	return fmt.Sprintf("%T", v)
}

// Truthy decides the truth value of a value. nil, false, zero numbers, empty
// strings, empty arrays and empty dictionaries are false.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case int64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != ""
	case *Array:
		return x.Len() > 0
	case *Dict:
		return x.Len() > 0
	}
	return true
}

// IsNumber is true for int64 and float64 values.
func IsNumber(v Value) bool {
	switch v.(type) {
	case int64, float64:
		return true
	}
	return false
}

// ToFloat converts numbers (and booleans) to float64.
func ToFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// ToInt converts numbers (and booleans) to int64, truncating floats.
func ToInt(v Value) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case float64:
		return int64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Equal compares two values. Numbers compare by value across int and float,
// math types compare component-wise, everything else by identity.
func Equal(a, b Value) bool {
	if IsNumber(a) && IsNumber(b) {
		x, _ := ToFloat(a)
		y, _ := ToFloat(b)
		return x == y
	}
	switch x := a.(type) {
	case nil:
		return b == nil
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case *Vector2:
		y, ok := b.(*Vector2)
		return ok && x.Equals(y)
	case *Vector3:
		y, ok := b.(*Vector3)
		return ok && x.Equals(y)
	case *Color:
		y, ok := b.(*Color)
		return ok && *x == *y
	case *Rect2:
		y, ok := b.(*Rect2)
		return ok && *x == *y
	case *Texture:
		y, ok := b.(*Texture)
		return ok && x.Path == y.Path
	}
	return isSame(a, b)
}

// isSame compares by identity, without panicking on incomparable values.
func isSame(a, b Value) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// Identical is the identity comparison of operator `is`.
func Identical(a, b Value) bool {
	switch a.(type) {
	case nil, bool, int64, float64, string:
		return Equal(a, b)
	}
	return isSame(a, b)
}

// Copy returns a shallow copy of value types (math types) and the value
// itself for everything else.
func Copy(v Value) Value {
	switch x := v.(type) {
	case *Vector2:
		c := *x
		return &c
	case *Vector3:
		c := *x
		return &c
	case *Rect2:
		c := *x
		return &c
	case *Color:
		c := *x
		return &c
	}
	return v
}

// --- Formatting ------------------------------------------------------------

// Str formats a value for `print` and `str`. Strings are not quoted.
func Str(v Value) string {
	if s, ok := v.(string); ok {
		return s
	}
	return Repr(v)
}

// Repr formats a value, quoting strings.
func Repr(v Value) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return formatFloat(x)
	case string:
		return strconv.Quote(x)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprintf("<%s>", TypeName(v))
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
