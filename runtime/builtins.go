package runtime

import (
	"math"
)

// Builtin functions are defined in the global scope of every runtime.
// Families live in files builtins_<family>.go, each contributing a
// table-building function.

// variadic as maximum argument count.
const variadic = -1

// define defines a builtin function with an argument count check.
func (rt *Runtime) define(name string, min, max int, fn func(args []Value) (Value, error)) {
	rt.globals.Define(name, NewBuiltin(name, func(args []Value) (Value, error) {
		if err := arity(name, args, min, max); err != nil {
			return nil, err
		}
		return fn(args)
	}))
}

func (rt *Runtime) defineBuiltins() {
	rt.globals.DefineConst("PI", math.Pi)
	rt.globals.DefineConst("TAU", 2*math.Pi)
	rt.globals.DefineConst("E", math.E)
	rt.globals.DefineConst("INF", math.Inf(1))
	rt.globals.DefineConst("NAN", math.NaN())
	rt.globals.DefineConst("WHITE", &Color{1, 1, 1, 1})
	rt.globals.DefineConst("BLACK", &Color{0, 0, 0, 1})
	rt.globals.DefineConst("RED", &Color{1, 0, 0, 1})
	rt.globals.DefineConst("GREEN", &Color{0, 1, 0, 1})
	rt.globals.DefineConst("BLUE", &Color{0, 0, 1, 1})
	rt.globals.DefineConst("TRANSPARENT", &Color{0, 0, 0, 0})
	rt.mathBuiltins()
	rt.outputBuiltins()
	rt.conversionBuiltins()
	rt.randomBuiltins()
	rt.stringBuiltins()
	rt.collectionBuiltins()
	rt.nodeBuiltins()
	rt.timeBuiltins()
	rt.geometryBuiltins()
}

// --- Argument helpers ------------------------------------------------------

// arity checks the number of arguments. max < 0 means no upper limit.
func arity(name string, args []Value, min, max int) error {
	n := len(args)
	switch {
	case n < min && min == max:
		return Errorf("%s() takes %d argument(s), %d given", name, min, n)
	case n < min:
		return Errorf("%s() takes at least %d argument(s), %d given", name, min, n)
	case max >= 0 && n > max && min == max:
		return Errorf("%s() takes %d argument(s), %d given", name, max, n)
	case max >= 0 && n > max:
		return Errorf("%s() takes at most %d argument(s), %d given", name, max, n)
	}
	return nil
}

func floatArg(name string, args []Value, i int) (float64, error) {
	f, ok := ToFloat(args[i])
	if !ok {
		return 0, Errorf("%s(): argument %d must be a number, is %s", name, i+1, TypeName(args[i]))
	}
	return f, nil
}

func intArg(name string, args []Value, i int) (int64, error) {
	n, ok := ToInt(args[i])
	if !ok {
		return 0, Errorf("%s(): argument %d must be an integer, is %s", name, i+1, TypeName(args[i]))
	}
	return n, nil
}

func stringArg(name string, args []Value, i int) (string, error) {
	s, ok := args[i].(string)
	if !ok {
		return "", Errorf("%s(): argument %d must be a string, is %s", name, i+1, TypeName(args[i]))
	}
	return s, nil
}

func arrayArg(name string, args []Value, i int) (*Array, error) {
	a, ok := args[i].(*Array)
	if !ok {
		return nil, Errorf("%s(): argument %d must be an array, is %s", name, i+1, TypeName(args[i]))
	}
	return a, nil
}

// floats converts all arguments to floats.
func floats(name string, args []Value) ([]float64, error) {
	fs := make([]float64, len(args))
	for i := range args {
		f, err := floatArg(name, args, i)
		if err != nil {
			return nil, err
		}
		fs[i] = f
	}
	return fs, nil
}

func allInts(args ...Value) bool {
	for _, a := range args {
		if _, ok := a.(int64); !ok {
			return false
		}
	}
	return true
}
