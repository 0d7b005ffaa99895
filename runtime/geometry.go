package runtime

import (
	"fmt"
	"math"
)

const epsilon = 1e-6

// method is a helper for building bound methods of math types.
func method(typ, name string, min, max int, fn func(args []Value) (Value, error)) Value {
	return NewBuiltin(typ+"."+name, func(args []Value) (Value, error) {
		if err := arity(name, args, min, max); err != nil {
			return nil, err
		}
		return fn(args)
	})
}

// --- Vector2 ---------------------------------------------------------------

// Vector2 is a 2D vector of floats.
type Vector2 struct {
	X, Y float64
}

var _ Object = (*Vector2)(nil)

// NewVector2 creates a 2D vector.
func NewVector2(x, y float64) *Vector2 {
	return &Vector2{X: x, Y: y}
}

// Components returns the coordinates as a slice.
func (v *Vector2) Components() []float64 {
	return []float64{v.X, v.Y}
}

// Equals compares with a tolerance of 1e-6.
func (v *Vector2) Equals(w *Vector2) bool {
	return math.Abs(v.X-w.X) < epsilon && math.Abs(v.Y-w.Y) < epsilon
}

func (v *Vector2) Add(w *Vector2) *Vector2       { return NewVector2(v.X+w.X, v.Y+w.Y) }
func (v *Vector2) Sub(w *Vector2) *Vector2       { return NewVector2(v.X-w.X, v.Y-w.Y) }
func (v *Vector2) Mul(w *Vector2) *Vector2       { return NewVector2(v.X*w.X, v.Y*w.Y) }
func (v *Vector2) Scale(f float64) *Vector2      { return NewVector2(v.X*f, v.Y*f) }
func (v *Vector2) Dot(w *Vector2) float64        { return v.X*w.X + v.Y*w.Y }
func (v *Vector2) Cross(w *Vector2) float64      { return v.X*w.Y - v.Y*w.X }
func (v *Vector2) LengthSquared() float64        { return v.X*v.X + v.Y*v.Y }
func (v *Vector2) Length() float64               { return math.Sqrt(v.LengthSquared()) }
func (v *Vector2) DistanceTo(w *Vector2) float64 { return v.Sub(w).Length() }

// Normalized returns a unit vector, or the zero vector for zero length.
func (v *Vector2) Normalized() *Vector2 {
	l := v.Length()
	if l == 0 {
		return NewVector2(0, 0)
	}
	return NewVector2(v.X/l, v.Y/l)
}

// MoveToward moves v toward a target by at most delta.
func (v *Vector2) MoveToward(to *Vector2, delta float64) *Vector2 {
	diff := to.Sub(v)
	d := diff.Length()
	if d <= delta || d < epsilon {
		return NewVector2(to.X, to.Y)
	}
	return v.Add(diff.Scale(delta / d))
}

// Rotated rotates v by an angle in radians.
func (v *Vector2) Rotated(phi float64) *Vector2 {
	sin, cos := math.Sincos(phi)
	return NewVector2(v.X*cos-v.Y*sin, v.X*sin+v.Y*cos)
}

func (v *Vector2) String() string {
	return fmt.Sprintf("(%s, %s)", formatFloat(v.X), formatFloat(v.Y))
}

// toVec2 accepts a Vector2 or an array of two numbers.
func toVec2(x Value) (*Vector2, bool) {
	switch v := x.(type) {
	case *Vector2:
		return v, true
	case *Array:
		if v.Len() == 2 {
			vals := v.Values()
			a, ok1 := ToFloat(vals[0])
			b, ok2 := ToFloat(vals[1])
			return NewVector2(a, b), ok1 && ok2
		}
	}
	return nil, false
}

func vec2Arg(fname string, args []Value, i int) (*Vector2, error) {
	v, ok := toVec2(args[i])
	if !ok {
		return nil, Errorf("%s: argument %d must be a Vector2, is %s", fname, i+1, TypeName(args[i]))
	}
	return v, nil
}

func signOf(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}

// GetMember is part of interface Object.
func (v *Vector2) GetMember(name string) (Value, bool) {
	switch name {
	case "x":
		return v.X, true
	case "y":
		return v.Y, true
	}
	unary := func(f func() Value) (Value, bool) {
		return method("Vector2", name, 0, 0, func([]Value) (Value, error) { return f(), nil }), true
	}
	binary := func(f func(w *Vector2) Value) (Value, bool) {
		return method("Vector2", name, 1, 1, func(args []Value) (Value, error) {
			w, err := vec2Arg(name, args, 0)
			if err != nil {
				return nil, err
			}
			return f(w), nil
		}), true
	}
	switch name {
	case "length":
		return unary(func() Value { return v.Length() })
	case "length_squared":
		return unary(func() Value { return v.LengthSquared() })
	case "normalized", "normalize":
		return unary(func() Value { return v.Normalized() })
	case "angle":
		return unary(func() Value { return math.Atan2(v.Y, v.X) })
	case "abs":
		return unary(func() Value { return NewVector2(math.Abs(v.X), math.Abs(v.Y)) })
	case "sign":
		return unary(func() Value { return NewVector2(signOf(v.X), signOf(v.Y)) })
	case "floor":
		return unary(func() Value { return NewVector2(math.Floor(v.X), math.Floor(v.Y)) })
	case "ceil":
		return unary(func() Value { return NewVector2(math.Ceil(v.X), math.Ceil(v.Y)) })
	case "round":
		return unary(func() Value { return NewVector2(math.Round(v.X), math.Round(v.Y)) })
	case "distance_to":
		return binary(func(w *Vector2) Value { return v.DistanceTo(w) })
	case "distance_squared_to":
		return binary(func(w *Vector2) Value { return v.Sub(w).LengthSquared() })
	case "dot":
		return binary(func(w *Vector2) Value { return v.Dot(w) })
	case "cross":
		return binary(func(w *Vector2) Value { return v.Cross(w) })
	case "angle_to":
		return binary(func(w *Vector2) Value { return math.Atan2(v.Cross(w), v.Dot(w)) })
	case "angle_to_point":
		return binary(func(w *Vector2) Value { return math.Atan2(w.Y-v.Y, w.X-v.X) })
	case "slide":
		return binary(func(n *Vector2) Value { return v.Sub(n.Scale(v.Dot(n))) })
	case "reflect":
		return binary(func(n *Vector2) Value { return v.Sub(n.Scale(2 * v.Dot(n))) })
	case "rotated":
		return method("Vector2", name, 1, 1, func(args []Value) (Value, error) {
			phi, err := floatArg(name, args, 0)
			if err != nil {
				return nil, err
			}
			return v.Rotated(phi), nil
		}), true
	case "lerp", "move_toward":
		return method("Vector2", name, 2, 2, func(args []Value) (Value, error) {
			w, err := vec2Arg(name, args, 0)
			if err != nil {
				return nil, err
			}
			t, err := floatArg(name, args, 1)
			if err != nil {
				return nil, err
			}
			if name == "lerp" {
				return v.Add(w.Sub(v).Scale(t)), nil
			}
			return v.MoveToward(w, t), nil
		}), true
	}
	return nil, false
}

// SetMember is part of interface Object.
func (v *Vector2) SetMember(name string, x Value) bool {
	f, ok := ToFloat(x)
	if !ok {
		return false
	}
	switch name {
	case "x":
		v.X = f
	case "y":
		v.Y = f
	default:
		return false
	}
	return true
}

// vector2Class is the value of the global name `Vector2`: a constructor,
// which carries the constants ZERO, ONE, UP, DOWN, LEFT and RIGHT.
type vector2Class struct{}

func (vector2Class) Name() string     { return "Vector2" }
func (vector2Class) TypeName() string { return "Vector2Class" }
func (vector2Class) String() string   { return "<class Vector2>" }

func (vector2Class) Call(args []Value) (Value, error) {
	if err := arity("Vector2", args, 0, 2); err != nil {
		return nil, err
	}
	xy := [2]float64{}
	for i := range args {
		f, err := floatArg("Vector2", args, i)
		if err != nil {
			return nil, err
		}
		xy[i] = f
	}
	return NewVector2(xy[0], xy[1]), nil
}

func (vector2Class) GetMember(name string) (Value, bool) {
	switch name {
	case "ZERO":
		return NewVector2(0, 0), true
	case "ONE":
		return NewVector2(1, 1), true
	case "UP": // y grows upwards
		return NewVector2(0, 1), true
	case "DOWN":
		return NewVector2(0, -1), true
	case "LEFT":
		return NewVector2(-1, 0), true
	case "RIGHT":
		return NewVector2(1, 0), true
	}
	return nil, false
}

func (vector2Class) SetMember(string, Value) bool { return false }

// --- Vector3 ---------------------------------------------------------------

// Vector3 is a 3D vector of floats.
type Vector3 struct {
	X, Y, Z float64
}

var _ Object = (*Vector3)(nil)

// NewVector3 creates a 3D vector.
func NewVector3(x, y, z float64) *Vector3 {
	return &Vector3{X: x, Y: y, Z: z}
}

// Components returns the coordinates as a slice.
func (v *Vector3) Components() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// Equals compares with a tolerance of 1e-6.
func (v *Vector3) Equals(w *Vector3) bool {
	return math.Abs(v.X-w.X) < epsilon && math.Abs(v.Y-w.Y) < epsilon && math.Abs(v.Z-w.Z) < epsilon
}

func (v *Vector3) Sub(w *Vector3) *Vector3 { return NewVector3(v.X-w.X, v.Y-w.Y, v.Z-w.Z) }
func (v *Vector3) Dot(w *Vector3) float64  { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }
func (v *Vector3) Length() float64         { return math.Sqrt(v.Dot(v)) }

// Cross is the cross product v × w.
func (v *Vector3) Cross(w *Vector3) *Vector3 {
	return NewVector3(v.Y*w.Z-v.Z*w.Y, v.Z*w.X-v.X*w.Z, v.X*w.Y-v.Y*w.X)
}

// Normalized returns a unit vector, or the zero vector for zero length.
func (v *Vector3) Normalized() *Vector3 {
	l := v.Length()
	if l == 0 {
		return NewVector3(0, 0, 0)
	}
	return NewVector3(v.X/l, v.Y/l, v.Z/l)
}

func (v *Vector3) String() string {
	return fmt.Sprintf("(%s, %s, %s)", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
}

func toVec3(x Value) (*Vector3, bool) {
	switch v := x.(type) {
	case *Vector3:
		return v, true
	case *Array:
		if v.Len() == 3 {
			vals := v.Values()
			a, ok1 := ToFloat(vals[0])
			b, ok2 := ToFloat(vals[1])
			c, ok3 := ToFloat(vals[2])
			return NewVector3(a, b, c), ok1 && ok2 && ok3
		}
	}
	return nil, false
}

// GetMember is part of interface Object.
func (v *Vector3) GetMember(name string) (Value, bool) {
	switch name {
	case "x":
		return v.X, true
	case "y":
		return v.Y, true
	case "z":
		return v.Z, true
	case "length":
		return method("Vector3", name, 0, 0, func([]Value) (Value, error) { return v.Length(), nil }), true
	case "normalized":
		return method("Vector3", name, 0, 0, func([]Value) (Value, error) { return v.Normalized(), nil }), true
	case "dot", "cross", "distance_to":
		return method("Vector3", name, 1, 1, func(args []Value) (Value, error) {
			w, ok := toVec3(args[0])
			if !ok {
				return nil, Errorf("%s: argument must be a Vector3", name)
			}
			switch name {
			case "dot":
				return v.Dot(w), nil
			case "cross":
				return v.Cross(w), nil
			}
			return v.Sub(w).Length(), nil
		}), true
	}
	return nil, false
}

// SetMember is part of interface Object.
func (v *Vector3) SetMember(name string, x Value) bool {
	f, ok := ToFloat(x)
	if !ok {
		return false
	}
	switch name {
	case "x":
		v.X = f
	case "y":
		v.Y = f
	case "z":
		v.Z = f
	default:
		return false
	}
	return true
}

// --- Rect2 -----------------------------------------------------------------

// Rect2 is an axis-aligned rectangle.
type Rect2 struct {
	X, Y, W, H float64
}

var _ Object = (*Rect2)(nil)

// HasPoint checks if a point lies inside the rectangle, borders included.
func (r *Rect2) HasPoint(p *Vector2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Intersects checks if two rectangles overlap.
func (r *Rect2) Intersects(o *Rect2) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

func (r *Rect2) String() string {
	return fmt.Sprintf("(%s, %s, %s, %s)", formatFloat(r.X), formatFloat(r.Y), formatFloat(r.W), formatFloat(r.H))
}

// GetMember is part of interface Object.
func (r *Rect2) GetMember(name string) (Value, bool) {
	switch name {
	case "position":
		return NewVector2(r.X, r.Y), true
	case "size":
		return NewVector2(r.W, r.H), true
	case "end":
		return NewVector2(r.X+r.W, r.Y+r.H), true
	case "x":
		return r.X, true
	case "y":
		return r.Y, true
	case "width":
		return r.W, true
	case "height":
		return r.H, true
	case "get_area":
		return method("Rect2", name, 0, 0, func([]Value) (Value, error) { return r.W * r.H, nil }), true
	case "has_point":
		return method("Rect2", name, 1, 1, func(args []Value) (Value, error) {
			p, err := vec2Arg(name, args, 0)
			if err != nil {
				return nil, err
			}
			return r.HasPoint(p), nil
		}), true
	case "intersects":
		return method("Rect2", name, 1, 1, func(args []Value) (Value, error) {
			o, ok := args[0].(*Rect2)
			if !ok {
				return nil, Errorf("intersects: argument must be a Rect2")
			}
			return r.Intersects(o), nil
		}), true
	}
	return nil, false
}

// SetMember is part of interface Object.
func (r *Rect2) SetMember(name string, x Value) bool {
	if v, ok := toVec2(x); ok {
		switch name {
		case "position":
			r.X, r.Y = v.X, v.Y
			return true
		case "size":
			r.W, r.H = v.X, v.Y
			return true
		}
		return false
	}
	f, ok := ToFloat(x)
	if !ok {
		return false
	}
	switch name {
	case "x":
		r.X = f
	case "y":
		r.Y = f
	case "width":
		r.W = f
	case "height":
		r.H = f
	default:
		return false
	}
	return true
}

// --- Color -----------------------------------------------------------------

// Color is an RGBA color with float components in [0…1].
type Color struct {
	R, G, B, A float64
}

var _ Object = (*Color)(nil)

// Components returns the components as a slice.
func (c *Color) Components() []float64 {
	return []float64{c.R, c.G, c.B, c.A}
}

// Lerp interpolates between two colors, component-wise.
func (c *Color) Lerp(o *Color, t float64) *Color {
	return &Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

func (c *Color) String() string {
	return fmt.Sprintf("(%s, %s, %s, %s)", formatFloat(c.R), formatFloat(c.G), formatFloat(c.B), formatFloat(c.A))
}

// GetMember is part of interface Object.
func (c *Color) GetMember(name string) (Value, bool) {
	switch name {
	case "r":
		return c.R, true
	case "g":
		return c.G, true
	case "b":
		return c.B, true
	case "a":
		return c.A, true
	case "lerp":
		return method("Color", name, 2, 2, func(args []Value) (Value, error) {
			o, ok := args[0].(*Color)
			if !ok {
				return nil, Errorf("lerp: argument must be a Color")
			}
			t, err := floatArg(name, args, 1)
			if err != nil {
				return nil, err
			}
			return c.Lerp(o, t), nil
		}), true
	}
	return nil, false
}

// SetMember is part of interface Object.
func (c *Color) SetMember(name string, x Value) bool {
	f, ok := ToFloat(x)
	if !ok {
		return false
	}
	switch name {
	case "r":
		c.R = f
	case "g":
		c.G = f
	case "b":
		c.B = f
	case "a":
		c.A = f
	default:
		return false
	}
	return true
}

// --- Texture ---------------------------------------------------------------

// Texture is a handle for an image resource.
type Texture struct {
	Path string
}

var _ Object = (*Texture)(nil)

func (t *Texture) String() string {
	return fmt.Sprintf("Texture(%q)", t.Path)
}

// GetMember is part of interface Object.
func (t *Texture) GetMember(name string) (Value, bool) {
	switch name {
	case "path":
		return t.Path, true
	case "get_size":
		return method("Texture", name, 0, 0, func([]Value) (Value, error) { return NewVector2(64, 64), nil }), true
	}
	return nil, false
}

// SetMember is part of interface Object.
func (t *Texture) SetMember(string, Value) bool {
	return false
}

// --- Component access ------------------------------------------------------

// Component indexes into vectors and colors, as in `v[0]`.
func Component(x Value, i int64) (Value, error) {
	var comps []float64
	switch v := x.(type) {
	case *Vector2:
		comps = v.Components()
	case *Vector3:
		comps = v.Components()
	case *Color:
		comps = v.Components()
	default:
		return nil, Errorf("%s is not indexable", TypeName(x))
	}
	if i < 0 || i >= int64(len(comps)) {
		return nil, Errorf("%s index %d out of range", TypeName(x), i)
	}
	return comps[i], nil
}
