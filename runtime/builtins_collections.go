package runtime

import (
	"strings"
	"unicode/utf8"
)

func (rt *Runtime) stringBuiltins() {
	rt.define("len", 1, 1, func(args []Value) (Value, error) {
		return length("len", args[0])
	})
	rt.define("substr", 2, 3, func(args []Value) (Value, error) {
		s, err := stringArg("substr", args, 0)
		if err != nil {
			return nil, err
		}
		start, err := intArg("substr", args, 1)
		if err != nil {
			return nil, err
		}
		n := int64(-1)
		if len(args) > 2 {
			if n, err = intArg("substr", args, 2); err != nil {
				return nil, err
			}
		}
		return Substr(s, start, n), nil
	})
	rt.define("find", 2, 2, func(args []Value) (Value, error) {
		s, err := stringArg("find", args, 0)
		if err != nil {
			return nil, err
		}
		sub, err := stringArg("find", args, 1)
		if err != nil {
			return nil, err
		}
		return runeIndex(s, sub), nil
	})
	rt.define("replace", 3, 3, func(args []Value) (Value, error) {
		for i := range args {
			if _, err := stringArg("replace", args, i); err != nil {
				return nil, err
			}
		}
		return strings.ReplaceAll(args[0].(string), args[1].(string), args[2].(string)), nil
	})
	rt.define("split", 1, 2, func(args []Value) (Value, error) {
		s, err := stringArg("split", args, 0)
		if err != nil {
			return nil, err
		}
		delim := " "
		if len(args) > 1 {
			if delim, err = stringArg("split", args, 1); err != nil {
				return nil, err
			}
		}
		arr := NewArray()
		for _, part := range strings.Split(s, delim) {
			arr.Append(part)
		}
		return arr, nil
	})
	rt.define("join", 1, 2, func(args []Value) (Value, error) {
		arr, err := arrayArg("join", args, 0)
		if err != nil {
			return nil, err
		}
		delim := ""
		if len(args) > 1 {
			if delim, err = stringArg("join", args, 1); err != nil {
				return nil, err
			}
		}
		return joinArgs(arr.Values(), delim), nil
	})
	strfn := func(name string, fn func(string) string) {
		rt.define(name, 1, 1, func(args []Value) (Value, error) {
			s, err := stringArg(name, args, 0)
			if err != nil {
				return nil, err
			}
			return fn(s), nil
		})
	}
	strfn("to_upper", strings.ToUpper)
	strfn("to_lower", strings.ToLower)
	strfn("strip", strings.TrimSpace)
}

// length is the length of strings (in characters), arrays and dicts.
func length(name string, v Value) (Value, error) {
	switch x := v.(type) {
	case string:
		return int64(utf8.RuneCountInString(x)), nil
	case *Array:
		return int64(x.Len()), nil
	case *Dict:
		return int64(x.Len()), nil
	}
	return nil, Errorf("%s(): %s has no length", name, TypeName(v))
}

// substr extracts n characters from start. n < 0 extracts to the end.
// Positions are clipped to the string.
// Substr returns n characters of s, starting at character start. A negative
// start counts from the end, a negative n means up to the end.
func Substr(s string, start, n int64) string {
	r := []rune(s)
	l := int64(len(r))
	if start < 0 {
		start += l
		if start < 0 {
			start = 0
		}
	}
	if start >= l {
		return ""
	}
	end := l
	if n >= 0 && start+n < l {
		end = start + n
	}
	return string(r[start:end])
}

func runeIndex(s, sub string) int64 {
	i := strings.Index(s, sub)
	if i < 0 {
		return -1
	}
	return int64(utf8.RuneCountInString(s[:i]))
}

func (rt *Runtime) collectionBuiltins() {
	rt.define("append", 2, 2, func(args []Value) (Value, error) {
		arr, err := arrayArg("append", args, 0)
		if err != nil {
			return nil, err
		}
		arr.Append(args[1])
		return nil, nil
	})
	rt.define("insert", 3, 3, func(args []Value) (Value, error) {
		arr, err := arrayArg("insert", args, 0)
		if err != nil {
			return nil, err
		}
		i, err := intArg("insert", args, 1)
		if err != nil {
			return nil, err
		}
		return nil, arr.Insert(i, args[2])
	})
	rt.define("remove", 2, 2, func(args []Value) (Value, error) {
		switch c := args[0].(type) {
		case *Array:
			c.Remove(args[1])
		case *Dict:
			c.Erase(args[1])
		default:
			return nil, Errorf("remove(): cannot remove from %s", TypeName(args[0]))
		}
		return nil, nil
	})
	rt.define("pop", 1, 2, func(args []Value) (Value, error) {
		arr, err := arrayArg("pop", args, 0)
		if err != nil {
			return nil, err
		}
		i := int64(-1)
		if len(args) > 1 {
			if i, err = intArg("pop", args, 1); err != nil {
				return nil, err
			}
		}
		return arr.Pop(i)
	})
	rt.define("size", 1, 1, func(args []Value) (Value, error) {
		return length("size", args[0])
	})
	rt.define("empty", 1, 1, func(args []Value) (Value, error) {
		n, err := length("empty", args[0])
		if err != nil {
			return nil, err
		}
		return n.(int64) == 0, nil
	})
	rt.define("has", 2, 2, func(args []Value) (Value, error) {
		return Contains(args[0], args[1])
	})
	rt.define("find_index", 2, 2, func(args []Value) (Value, error) {
		arr, err := arrayArg("find_index", args, 0)
		if err != nil {
			return nil, err
		}
		return int64(arr.Find(args[1])), nil
	})
	rt.define("sort", 1, 1, func(args []Value) (Value, error) {
		arr, err := arrayArg("sort", args, 0)
		if err != nil {
			return nil, err
		}
		arr.Sort()
		return nil, nil
	})
	rt.define("reverse", 1, 1, func(args []Value) (Value, error) {
		arr, err := arrayArg("reverse", args, 0)
		if err != nil {
			return nil, err
		}
		arr.Reverse()
		return nil, nil
	})
	rt.define("keys", 1, 1, func(args []Value) (Value, error) {
		d, ok := args[0].(*Dict)
		if !ok {
			return nil, Errorf("keys(): argument must be a dictionary, is %s", TypeName(args[0]))
		}
		return NewArray(d.Keys()...), nil
	})
	rt.define("values", 1, 1, func(args []Value) (Value, error) {
		d, ok := args[0].(*Dict)
		if !ok {
			return nil, Errorf("values(): argument must be a dictionary, is %s", TypeName(args[0]))
		}
		return NewArray(d.Values()...), nil
	})
	rt.define("range", 1, 3, func(args []Value) (Value, error) {
		bounds := make([]int64, len(args))
		for i := range args {
			n, err := intArg("range", args, i)
			if err != nil {
				return nil, err
			}
			bounds[i] = n
		}
		return Range(bounds...)
	})
}

// Range creates an array of integers, as `range(end)`, `range(start, end)`
// or `range(start, end, step)`.
func Range(bounds ...int64) (*Array, error) {
	start, end, step := int64(0), int64(0), int64(1)
	switch len(bounds) {
	case 1:
		end = bounds[0]
	case 2:
		start, end = bounds[0], bounds[1]
	case 3:
		start, end, step = bounds[0], bounds[1], bounds[2]
	default:
		return nil, Errorf("range() takes 1 to 3 arguments")
	}
	if step == 0 {
		return nil, Errorf("range(): step must not be zero")
	}
	arr := NewArray()
	for i := start; (step > 0 && i < end) || (step < 0 && i > end); i += step {
		arr.Append(i)
	}
	return arr, nil
}
