package runtime

import (
	"math"
)

func (rt *Runtime) geometryBuiltins() {
	rt.globals.Define("Vector2", vector2Class{})
	rt.define("vec2", 0, 2, vector2Class{}.Call)
	rt.define("Vector3", 0, 3, func(args []Value) (Value, error) {
		c, err := optFloats("Vector3", args, 0, 0, 0)
		if err != nil {
			return nil, err
		}
		return NewVector3(c[0], c[1], c[2]), nil
	})
	rt.define("Rect2", 0, 4, func(args []Value) (Value, error) {
		if len(args) == 2 {
			pos, ok1 := toVec2(args[0])
			size, ok2 := toVec2(args[1])
			if ok1 && ok2 {
				return &Rect2{X: pos.X, Y: pos.Y, W: size.X, H: size.Y}, nil
			}
		}
		c, err := optFloats("Rect2", args, 0, 0, 0, 0)
		if err != nil {
			return nil, err
		}
		return &Rect2{X: c[0], Y: c[1], W: c[2], H: c[3]}, nil
	})
	rt.define("Color", 0, 4, func(args []Value) (Value, error) {
		c, err := optFloats("Color", args, 1, 1, 1, 1)
		if err != nil {
			return nil, err
		}
		return &Color{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
	})
	rt.define("Texture", 0, 1, func(args []Value) (Value, error) {
		t := &Texture{}
		if len(args) > 0 {
			p, err := stringArg("Texture", args, 0)
			if err != nil {
				return nil, err
			}
			t.Path = p
		}
		return t, nil
	})
	rt.define("distance", 2, 2, func(args []Value) (Value, error) {
		a, b, err := vectorPair("distance", args)
		if err != nil {
			return nil, err
		}
		sum := 0.0
		for i := range a {
			sum += (a[i] - b[i]) * (a[i] - b[i])
		}
		return math.Sqrt(sum), nil
	})
	rt.define("dot_product", 2, 2, func(args []Value) (Value, error) {
		a, b, err := vectorPair("dot_product", args)
		if err != nil {
			return nil, err
		}
		sum := 0.0
		for i := range a {
			sum += a[i] * b[i]
		}
		return sum, nil
	})
	rt.define("cross_product", 2, 2, func(args []Value) (Value, error) {
		if a, ok := toVec3(args[0]); ok {
			b, ok := toVec3(args[1])
			if !ok {
				return nil, Errorf("cross_product(): arguments must be of equal dimension")
			}
			return a.Cross(b), nil
		}
		a, err := vec2Arg("cross_product", args, 0)
		if err != nil {
			return nil, err
		}
		b, err := vec2Arg("cross_product", args, 1)
		if err != nil {
			return nil, err
		}
		return a.Cross(b), nil
	})
	rt.define("normalize", 1, 1, func(args []Value) (Value, error) {
		if v, ok := toVec2(args[0]); ok {
			return v.Normalized(), nil
		}
		if v, ok := toVec3(args[0]); ok {
			return v.Normalized(), nil
		}
		return nil, Errorf("normalize(): argument must be a vector, is %s", TypeName(args[0]))
	})
	rt.define("color_lerp", 3, 3, func(args []Value) (Value, error) {
		a, ok1 := args[0].(*Color)
		b, ok2 := args[1].(*Color)
		if !ok1 || !ok2 {
			return nil, Errorf("color_lerp(): arguments must be colors")
		}
		t, err := floatArg("color_lerp", args, 2)
		if err != nil {
			return nil, err
		}
		return a.Lerp(b, t), nil
	})
}

// optFloats converts optional numeric arguments, using defaults for missing ones.
func optFloats(name string, args []Value, defaults ...float64) ([]float64, error) {
	c := append([]float64(nil), defaults...)
	for i := range args {
		f, err := floatArg(name, args, i)
		if err != nil {
			return nil, err
		}
		c[i] = f
	}
	return c, nil
}

// vectorPair extracts the components of two vectors of equal dimension.
func vectorPair(name string, args []Value) ([]float64, []float64, error) {
	a, ok1 := vectorComponents(args[0])
	b, ok2 := vectorComponents(args[1])
	if !ok1 || !ok2 {
		return nil, nil, Errorf("%s(): arguments must be vectors", name)
	}
	if len(a) != len(b) {
		return nil, nil, Errorf("%s(): vectors must be of equal dimension", name)
	}
	return a, b, nil
}

func vectorComponents(v Value) ([]float64, bool) {
	switch x := v.(type) {
	case *Vector2:
		return x.Components(), true
	case *Vector3:
		return x.Components(), true
	case *Array:
		c := make([]float64, 0, x.Len())
		for _, e := range x.Values() {
			f, ok := ToFloat(e)
			if !ok {
				return nil, false
			}
			c = append(c, f)
		}
		return c, true
	}
	return nil, false
}
