package interp

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/lsc/runtime"
)

// stringMember returns the method members of strings, bound to a string.
func stringMember(s string, name string) (runtime.Value, bool) {
	m := func(min, max int, fn func(args []runtime.Value) (runtime.Value, error)) (runtime.Value, bool) {
		return runtime.NewBuiltin("String."+name, func(args []runtime.Value) (runtime.Value, error) {
			if len(args) < min || len(args) > max {
				return nil, runtime.Errorf("String.%s() takes %d to %d argument(s), %d given",
					name, min, max, len(args))
			}
			return fn(args)
		}), true
	}
	str := func(args []runtime.Value, i int) string {
		return runtime.Str(args[i])
	}
	switch name {
	case "length", "size":
		return m(0, 0, func([]runtime.Value) (runtime.Value, error) {
			return int64(utf8.RuneCountInString(s)), nil
		})
	case "empty":
		return m(0, 0, func([]runtime.Value) (runtime.Value, error) { return s == "", nil })
	case "to_upper":
		return m(0, 0, func([]runtime.Value) (runtime.Value, error) { return strings.ToUpper(s), nil })
	case "to_lower":
		return m(0, 0, func([]runtime.Value) (runtime.Value, error) { return strings.ToLower(s), nil })
	case "strip_edges", "strip":
		return m(0, 0, func([]runtime.Value) (runtime.Value, error) { return strings.TrimSpace(s), nil })
	case "begins_with", "starts_with":
		return m(1, 1, func(args []runtime.Value) (runtime.Value, error) {
			return strings.HasPrefix(s, str(args, 0)), nil
		})
	case "ends_with":
		return m(1, 1, func(args []runtime.Value) (runtime.Value, error) {
			return strings.HasSuffix(s, str(args, 0)), nil
		})
	case "find":
		return m(1, 1, func(args []runtime.Value) (runtime.Value, error) {
			i := strings.Index(s, str(args, 0))
			if i < 0 {
				return int64(-1), nil
			}
			return int64(utf8.RuneCountInString(s[:i])), nil
		})
	case "replace":
		return m(2, 2, func(args []runtime.Value) (runtime.Value, error) {
			return strings.ReplaceAll(s, str(args, 0), str(args, 1)), nil
		})
	case "split":
		return m(0, 1, func(args []runtime.Value) (runtime.Value, error) {
			sep := " "
			if len(args) > 0 {
				sep = str(args, 0)
			}
			a := runtime.NewArray()
			for _, part := range strings.Split(s, sep) {
				a.Append(part)
			}
			return a, nil
		})
	case "substr":
		return m(1, 2, func(args []runtime.Value) (runtime.Value, error) {
			from, ok := runtime.ToInt(args[0])
			if !ok {
				return nil, runtime.Errorf("String.substr(): start must be an integer, is %s", runtime.TypeName(args[0]))
			}
			n := int64(-1)
			if len(args) > 1 {
				if n, ok = runtime.ToInt(args[1]); !ok {
					return nil, runtime.Errorf("String.substr(): length must be an integer, is %s", runtime.TypeName(args[1]))
				}
			}
			return runtime.Substr(s, from, n), nil
		})
	case "has", "contains":
		return m(1, 1, func(args []runtime.Value) (runtime.Value, error) {
			return strings.Contains(s, str(args, 0)), nil
		})
	case "capitalize":
		return m(0, 0, func([]runtime.Value) (runtime.Value, error) {
			if s == "" {
				return s, nil
			}
			r, size := utf8.DecodeRuneInString(s)
			return strings.ToUpper(string(r)) + strings.ToLower(s[size:]), nil
		})
	case "is_valid_integer":
		return m(0, 0, func([]runtime.Value) (runtime.Value, error) {
			return isInteger(s), nil
		})
	}
	return nil, false
}

func isInteger(s string) bool {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
