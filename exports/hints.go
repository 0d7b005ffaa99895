package exports

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseHint interprets the hint string of a variable according to its
// export type.
//
//	range         "min,max[,step]"
//	enum          "A,B,C"
//	file_path     "*.png,*.jpg"
//	placeholder   the placeholder text
func parseHint(v *Variable) {
	if v.Hint == "" {
		return
	}
	switch v.Type {
	case Range:
		parts := splitList(v.Hint)
		if len(parts) < 2 {
			tracer().Infof("export %s: range hint needs min and max: %q", v.Name, v.Hint)
			return
		}
		nums := make([]float64, 0, 3)
		for _, p := range parts[:min(len(parts), 3)] {
			f, err := strconv.ParseFloat(p, 64)
			if err != nil {
				tracer().Infof("export %s: malformed range hint %q", v.Name, v.Hint)
				return
			}
			nums = append(nums, f)
		}
		v.Min, v.Max = &nums[0], &nums[1]
		if len(nums) > 2 {
			v.Step = &nums[2]
		}
	case Enum:
		v.EnumValues = splitList(v.Hint)
	case FilePath:
		v.FileExtensions = splitList(v.Hint)
	case Placeholder:
		v.Placeholder = v.Hint
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// kind returns the value kind of a variable: the declared type hint, or
// the export type if no type hint has been given.
func (v *Variable) kind() string {
	k := strings.ToLower(v.TypeHint)
	switch k {
	case "integer":
		return "int"
	case "real":
		return "float"
	case "str":
		return "string"
	case "boolean":
		return "bool"
	case "":
		switch v.Type {
		case Int, Float, String, Bool, Vector2, Vector3, Color:
			return string(v.Type)
		case Range:
			return "float"
		case Multiline, Placeholder, FilePath, NodePath:
			return "string"
		}
	}
	return k
}

// Validate checks a value for a variable and returns it coerced to the
// variable's type. The registry is not changed.
func (r *Registry) Validate(name string, value interface{}) (interface{}, error) {
	v, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("export variable %s not found", name)
	}
	value, err := coerce(v.kind(), value)
	if err != nil {
		return nil, fmt.Errorf("export variable %s: %w", name, err)
	}
	if v.Type == Range {
		f, ok := toFloat(value)
		if !ok {
			return nil, fmt.Errorf("export variable %s: value must be a number", name)
		}
		if v.Min != nil && f < *v.Min {
			return nil, fmt.Errorf("export variable %s: value must be >= %s", name, format(*v.Min))
		}
		if v.Max != nil && f > *v.Max {
			return nil, fmt.Errorf("export variable %s: value must be <= %s", name, format(*v.Max))
		}
	}
	if v.Type == Enum && len(v.EnumValues) > 0 {
		s := format(value)
		found := false
		for _, e := range v.EnumValues {
			if e == s {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("export variable %s: value must be one of: %s",
				name, strings.Join(v.EnumValues, ", "))
		}
	}
	return value, nil
}

// components is implemented by math values (vectors, colors).
type components interface {
	Components() []float64
}

func coerce(kind string, value interface{}) (interface{}, error) {
	switch kind {
	case "int":
		switch x := value.(type) {
		case int64:
			return x, nil
		case float64:
			return int64(x), nil
		case bool:
			if x {
				return int64(1), nil
			}
			return int64(0), nil
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
			if err == nil {
				return n, nil
			}
		}
		return nil, fmt.Errorf("value must be an integer")
	case "float":
		if s, ok := value.(string); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("value must be a number")
			}
			return f, nil
		}
		if f, ok := toFloat(value); ok {
			return f, nil
		}
		return nil, fmt.Errorf("value must be a number")
	case "string":
		if s, ok := value.(string); ok {
			return s, nil
		}
		return format(value), nil
	case "bool":
		switch x := value.(type) {
		case bool:
			return x, nil
		case string:
			switch strings.ToLower(x) {
			case "true", "1", "yes", "on":
				return true, nil
			}
			return false, nil
		case nil:
			return false, nil
		}
		f, ok := toFloat(value)
		return !ok || f != 0, nil
	case "vector2":
		return coerceVector(value, 2, 2)
	case "vector3":
		return coerceVector(value, 3, 3)
	case "color":
		return coerceVector(value, 3, 4)
	}
	return value, nil
}

// coerceVector accepts math values with n components (min ≤ n ≤ max), or
// slices of numbers of such a length. Slices are returned as []float64.
func coerceVector(value interface{}, minN, maxN int) (interface{}, error) {
	if c, ok := value.(components); ok {
		if n := len(c.Components()); n >= minN && n <= maxN {
			return value, nil
		}
		return nil, fmt.Errorf("value has wrong number of components")
	}
	var comps []float64
	switch x := value.(type) {
	case []float64:
		comps = x
	case []interface{}:
		for _, e := range x {
			f, ok := toFloat(e)
			if !ok {
				return nil, fmt.Errorf("components must be numbers")
			}
			comps = append(comps, f)
		}
	default:
		return nil, fmt.Errorf("value must be a vector")
	}
	if len(comps) < minN || len(comps) > maxN {
		return nil, fmt.Errorf("value must have %d components", maxN)
	}
	if maxN == 4 && len(comps) == 3 { // color without alpha
		comps = append(comps, 1)
	}
	return comps, nil
}

func toFloat(value interface{}) (float64, bool) {
	switch x := value.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case int:
		return float64(x), true
	}
	return 0, false
}

// format renders a value for the inspector.
func format(value interface{}) string {
	switch x := value.(type) {
	case nil:
		return "null"
	case string:
		return x
	case float64:
		if math.Trunc(x) == x && !math.IsInf(x, 0) {
			return strconv.FormatFloat(x, 'f', 1, 64)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case []float64:
		parts := make([]string, len(x))
		for i, f := range x {
			parts[i] = format(f)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(value)
}

// TypeDefault returns the default value for a declared type.
func TypeDefault(typeHint string) interface{} {
	switch strings.ToLower(typeHint) {
	case "int", "integer":
		return int64(0)
	case "float", "real":
		return 0.0
	case "bool", "boolean":
		return false
	case "string", "str", "nodepath":
		return ""
	case "vector2":
		return []float64{0, 0}
	case "vector3":
		return []float64{0, 0, 0}
	case "color":
		return []float64{1, 1, 1, 1}
	}
	return nil
}
