package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func joinArgs(args []Value, sep string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Str(a)
	}
	return strings.Join(parts, sep)
}

func (rt *Runtime) outputBuiltins() {
	rt.define("print", 0, variadic, func(args []Value) (Value, error) {
		fmt.Fprintln(rt.out, joinArgs(args, " "))
		return nil, nil
	})
	rt.define("print_debug", 0, variadic, func(args []Value) (Value, error) {
		msg := joinArgs(args, " ")
		tracer().Debugf("script: %s", msg)
		fmt.Fprintln(rt.out, "[DEBUG] "+msg)
		return nil, nil
	})
	rt.define("print_error", 0, variadic, func(args []Value) (Value, error) {
		msg := joinArgs(args, " ")
		tracer().Errorf("script: %s", msg)
		fmt.Fprintln(rt.out, "[ERROR] "+msg)
		return nil, nil
	})
	rt.define("print_stack", 0, 0, func(args []Value) (Value, error) {
		fmt.Fprint(rt.out, rt.Frames.Dump())
		return nil, nil
	})
	rt.define("assert", 1, 2, func(args []Value) (Value, error) {
		if Truthy(args[0]) {
			return nil, nil
		}
		msg := "Assertion failed"
		if len(args) > 1 {
			msg = Str(args[1])
		}
		return nil, Errorf("%s", msg)
	})
}

func (rt *Runtime) conversionBuiltins() {
	rt.define("bool", 0, 1, func(args []Value) (Value, error) {
		if len(args) == 0 {
			return false, nil
		}
		return Truthy(args[0]), nil
	})
	rt.define("int", 0, 1, func(args []Value) (Value, error) {
		if len(args) == 0 {
			return int64(0), nil
		}
		return toInt(args[0])
	})
	rt.define("float", 0, 1, func(args []Value) (Value, error) {
		if len(args) == 0 {
			return 0.0, nil
		}
		return toFloat(args[0])
	})
	rt.define("str", 0, variadic, func(args []Value) (Value, error) {
		return joinArgs(args, ""), nil
	})
}

func toInt(v Value) (Value, error) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int64(f), nil
		}
		return nil, Errorf("int(): invalid literal %q", s)
	}
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil, Errorf("int(): cannot convert %s", formatFloat(f))
	}
	if n, ok := ToInt(v); ok {
		return n, nil
	}
	return nil, Errorf("int(): cannot convert %s", TypeName(v))
}

func toFloat(v Value) (Value, error) {
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, Errorf("float(): invalid literal %q", s)
		}
		return f, nil
	}
	if f, ok := ToFloat(v); ok {
		return f, nil
	}
	return nil, Errorf("float(): cannot convert %s", TypeName(v))
}

func (rt *Runtime) randomBuiltins() {
	rt.define("rand_range", 2, 2, func(args []Value) (Value, error) {
		f, err := floats("rand_range", args)
		if err != nil {
			return nil, err
		}
		return f[0] + rt.rnd.Float64()*(f[1]-f[0]), nil
	})
	rt.define("rand_int", 2, 2, func(args []Value) (Value, error) {
		lo, err := intArg("rand_int", args, 0)
		if err != nil {
			return nil, err
		}
		hi, err := intArg("rand_int", args, 1)
		if err != nil {
			return nil, err
		}
		if hi < lo {
			return nil, Errorf("rand_int(): empty range [%d, %d]", lo, hi)
		}
		return lo + rt.rnd.Int63n(hi-lo+1), nil
	})
	rt.define("randf", 0, 0, func(args []Value) (Value, error) {
		return rt.rnd.Float64(), nil
	})
	rt.define("randi", 0, 0, func(args []Value) (Value, error) {
		return rt.rnd.Int63n(1 << 31), nil
	})
	rt.define("rand_seed", 1, 1, func(args []Value) (Value, error) {
		seed, err := intArg("rand_seed", args, 0)
		if err != nil {
			return nil, err
		}
		rt.rnd.Seed(seed)
		return nil, nil
	})
}
