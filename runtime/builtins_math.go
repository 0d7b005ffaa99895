package runtime

import (
	"math"

	"github.com/npillmayer/lsc"
)

func (rt *Runtime) mathBuiltins() {
	rt.define("abs", 1, 1, func(args []Value) (Value, error) {
		switch x := args[0].(type) {
		case int64:
			if x < 0 {
				return -x, nil
			}
			return x, nil
		case *Vector2:
			return NewVector2(math.Abs(x.X), math.Abs(x.Y)), nil
		}
		f, err := floatArg("abs", args, 0)
		return math.Abs(f), err
	})
	rt.define("min", 1, variadic, func(args []Value) (Value, error) {
		return extremum("min", args, lsc.LT)
	})
	rt.define("max", 1, variadic, func(args []Value) (Value, error) {
		return extremum("max", args, lsc.GT)
	})
	rt.define("round", 1, 2, func(args []Value) (Value, error) {
		f, err := floatArg("round", args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) == 2 {
			digits, err := intArg("round", args, 1)
			if err != nil {
				return nil, err
			}
			p := math.Pow(10, float64(digits))
			return math.Round(f*p) / p, nil
		}
		return int64(math.Round(f)), nil
	})
	rt.define("floor", 1, 1, func(args []Value) (Value, error) {
		if n, ok := args[0].(int64); ok {
			return n, nil
		}
		f, err := floatArg("floor", args, 0)
		return int64(math.Floor(f)), err
	})
	rt.define("ceil", 1, 1, func(args []Value) (Value, error) {
		if n, ok := args[0].(int64); ok {
			return n, nil
		}
		f, err := floatArg("ceil", args, 0)
		return int64(math.Ceil(f)), err
	})
	rt.define("sqrt", 1, 1, func(args []Value) (Value, error) {
		f, err := floatArg("sqrt", args, 0)
		if err != nil {
			return nil, err
		}
		if f < 0 {
			return nil, Errorf("sqrt(): math domain error for %s", Repr(args[0]))
		}
		return math.Sqrt(f), nil
	})
	rt.define("pow", 2, 2, func(args []Value) (Value, error) {
		if !IsNumber(args[0]) || !IsNumber(args[1]) {
			return nil, Errorf("pow(): arguments must be numbers")
		}
		return Arith(lsc.POWER, args[0], args[1])
	})
	unary := func(name string, fn func(float64) float64, domain func(float64) bool) {
		rt.define(name, 1, 1, func(args []Value) (Value, error) {
			f, err := floatArg(name, args, 0)
			if err != nil {
				return nil, err
			}
			if domain != nil && !domain(f) {
				return nil, Errorf("%s(): math domain error for %s", name, Repr(args[0]))
			}
			return fn(f), nil
		})
	}
	unit := func(f float64) bool { return f >= -1 && f <= 1 }
	unary("sin", math.Sin, nil)
	unary("cos", math.Cos, nil)
	unary("tan", math.Tan, nil)
	unary("asin", math.Asin, unit)
	unary("acos", math.Acos, unit)
	unary("atan", math.Atan, nil)
	unary("deg2rad", func(d float64) float64 { return d * math.Pi / 180 }, nil)
	unary("rad2deg", func(r float64) float64 { return r * 180 / math.Pi }, nil)
	rt.define("atan2", 2, 2, func(args []Value) (Value, error) {
		yx, err := floats("atan2", args)
		if err != nil {
			return nil, err
		}
		return math.Atan2(yx[0], yx[1]), nil
	})
	rt.define("lerp", 3, 3, func(args []Value) (Value, error) {
		t, err := floatArg("lerp", args, 2)
		if err != nil {
			return nil, err
		}
		if a, ok := args[0].(*Vector2); ok {
			b, err := vec2Arg("lerp", args, 1)
			if err != nil {
				return nil, err
			}
			return a.Add(b.Sub(a).Scale(t)), nil
		}
		if a, ok := args[0].(*Color); ok {
			b, ok := args[1].(*Color)
			if !ok {
				return nil, Errorf("lerp(): argument 2 must be a Color")
			}
			return a.Lerp(b, t), nil
		}
		ab, err := floats("lerp", args[:2])
		if err != nil {
			return nil, err
		}
		return ab[0] + (ab[1]-ab[0])*t, nil
	})
	rt.define("clamp", 3, 3, func(args []Value) (Value, error) {
		if allInts(args...) {
			v, lo, hi := args[0].(int64), args[1].(int64), args[2].(int64)
			if v > hi {
				v = hi
			}
			if v < lo {
				v = lo
			}
			return v, nil
		}
		f, err := floats("clamp", args)
		if err != nil {
			return nil, err
		}
		return math.Max(f[1], math.Min(f[2], f[0])), nil
	})
	rt.define("sign", 1, 1, func(args []Value) (Value, error) {
		f, err := floatArg("sign", args, 0)
		return int64(signOf(f)), err
	})
	rt.define("move_toward", 3, 3, func(args []Value) (Value, error) {
		if from, ok := args[0].(*Vector2); ok {
			to, err := vec2Arg("move_toward", args, 1)
			if err != nil {
				return nil, err
			}
			d, err := floatArg("move_toward", args, 2)
			if err != nil {
				return nil, err
			}
			return from.MoveToward(to, d), nil
		}
		f, err := floats("move_toward", args)
		if err != nil {
			return nil, err
		}
		return moveToward(f[0], f[1], f[2]), nil
	})
	rt.define("smoothstep", 3, 3, func(args []Value) (Value, error) {
		f, err := floats("smoothstep", args)
		if err != nil {
			return nil, err
		}
		return smoothstep(f[0], f[1], f[2]), nil
	})
}

func moveToward(current, target, delta float64) float64 {
	if math.Abs(target-current) <= delta {
		return target
	}
	return current + math.Copysign(delta, target-current)
}

func smoothstep(from, to, x float64) float64 {
	if from == to {
		if x < from {
			return 0
		}
		return 1
	}
	t := math.Max(0, math.Min(1, (x-from)/(to-from)))
	return t * t * (3 - 2*t)
}

// extremum implements min and max. A single array argument is searched
// for its extremum.
func extremum(name string, args []Value, op lsc.TokType) (Value, error) {
	if len(args) == 1 {
		if a, ok := args[0].(*Array); ok {
			args = a.Values()
		}
	}
	if len(args) == 0 {
		return nil, Errorf("%s(): empty sequence", name)
	}
	best := args[0]
	for _, x := range args[1:] {
		better, err := Compare(op, x, best)
		if err != nil {
			return nil, err
		}
		if better {
			best = x
		}
	}
	return best, nil
}
