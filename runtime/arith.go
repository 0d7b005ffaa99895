package runtime

import (
	"math"
	"strings"

	"github.com/npillmayer/lsc"
)

// Arith applies a binary arithmetic or bitwise operator.
func Arith(op lsc.TokType, a, b Value) (Value, error) {
	if IsNumber(a) && IsNumber(b) {
		return numArith(op, a, b)
	}
	switch op {
	case lsc.PLUS:
		if sa, ok := a.(string); ok {
			return sa + Str(b), nil
		}
		if sb, ok := b.(string); ok {
			return Str(a) + sb, nil
		}
		if x, ok := a.(*Array); ok {
			if y, ok := b.(*Array); ok {
				return x.Concat(y), nil
			}
		}
	case lsc.STAR:
		if s, ok := a.(string); ok {
			if n, ok := b.(int64); ok {
				return repeat(s, n)
			}
		}
		if n, ok := a.(int64); ok {
			if s, ok := b.(string); ok {
				return repeat(s, n)
			}
		}
	}
	if r, ok, err := vectorArith(op, a, b); ok {
		return r, err
	}
	return nil, Errorf("unsupported operand types for %s: %s and %s", op, TypeName(a), TypeName(b))
}

// MaxStringLen limits the length of strings created by repetition.
const MaxStringLen = 1 << 26

func repeat(s string, n int64) (Value, error) {
	if n <= 0 || s == "" {
		return "", nil
	}
	if int64(len(s)) > MaxStringLen/n {
		return nil, Errorf("string repetition too long: %d × %d characters", n, len(s))
	}
	return strings.Repeat(s, int(n)), nil
}

func numArith(op lsc.TokType, a, b Value) (Value, error) {
	x, aint := a.(int64)
	y, bint := b.(int64)
	if aint && bint {
		return intArith(op, x, y)
	}
	switch op {
	case lsc.AMP, lsc.PIPE, lsc.CARET, lsc.SHL, lsc.SHR:
		return nil, Errorf("operator %s requires integer operands", op)
	}
	f, _ := ToFloat(a)
	g, _ := ToFloat(b)
	return floatArith(op, f, g)
}

func intArith(op lsc.TokType, x, y int64) (Value, error) {
	switch op {
	case lsc.PLUS:
		return x + y, nil
	case lsc.MINUS:
		return x - y, nil
	case lsc.STAR:
		return x * y, nil
	case lsc.SLASH:
		if y == 0 {
			return nil, Errorf("division by zero")
		}
		if x%y == 0 {
			return x / y, nil
		}
		return float64(x) / float64(y), nil
	case lsc.PERCENT:
		if y == 0 {
			return nil, Errorf("modulo by zero")
		}
		m := x % y
		if m != 0 && (m < 0) != (y < 0) { // result takes the sign of the divisor
			m += y
		}
		return m, nil
	case lsc.POWER:
		if y < 0 {
			return math.Pow(float64(x), float64(y)), nil
		}
		if r, ok := intPow(x, y); ok {
			return r, nil
		}
		return math.Pow(float64(x), float64(y)), nil
	case lsc.AMP:
		return x & y, nil
	case lsc.PIPE:
		return x | y, nil
	case lsc.CARET:
		return x ^ y, nil
	case lsc.SHL:
		if y < 0 {
			return nil, Errorf("negative shift count")
		}
		return x << uint64(y), nil
	case lsc.SHR:
		if y < 0 {
			return nil, Errorf("negative shift count")
		}
		return x >> uint64(y), nil
	}
	return nil, Errorf("unknown arithmetic operator %s", op)
}

func floatArith(op lsc.TokType, x, y float64) (Value, error) {
	switch op {
	case lsc.PLUS:
		return x + y, nil
	case lsc.MINUS:
		return x - y, nil
	case lsc.STAR:
		return x * y, nil
	case lsc.SLASH:
		if y == 0 {
			return nil, Errorf("division by zero")
		}
		return x / y, nil
	case lsc.PERCENT:
		if y == 0 {
			return nil, Errorf("modulo by zero")
		}
		m := math.Mod(x, y)
		if m != 0 && (m < 0) != (y < 0) {
			m += y
		}
		return m, nil
	case lsc.POWER:
		return math.Pow(x, y), nil
	}
	return nil, Errorf("unknown arithmetic operator %s", op)
}

// vectorArith handles vectors and colors, with vector or scalar operands.
func vectorArith(op lsc.TokType, a, b Value) (Value, bool, error) {
	ca, wrapA := components(a)
	cb, wrapB := components(b)
	switch {
	case wrapA == nil && wrapB == nil:
		return nil, false, nil
	case wrapA != nil && wrapB != nil:
		if len(ca) != len(cb) || TypeName(a) != TypeName(b) {
			return nil, false, nil
		}
	case wrapA == nil: // scalar op vector
		f, ok := ToFloat(a)
		if !ok || (op != lsc.STAR) {
			return nil, false, nil
		}
		ca, wrapA = broadcast(f, len(cb)), wrapB
	default: // vector op scalar
		f, ok := ToFloat(b)
		if !ok {
			return nil, false, nil
		}
		cb = broadcast(f, len(ca))
	}
	r := make([]float64, len(ca))
	for i := range ca {
		switch op {
		case lsc.PLUS:
			r[i] = ca[i] + cb[i]
		case lsc.MINUS:
			r[i] = ca[i] - cb[i]
		case lsc.STAR:
			r[i] = ca[i] * cb[i]
		case lsc.SLASH:
			if cb[i] == 0 {
				return nil, true, Errorf("division by zero")
			}
			r[i] = ca[i] / cb[i]
		default:
			return nil, false, nil
		}
	}
	return wrapA(r), true, nil
}

func components(v Value) ([]float64, func([]float64) Value) {
	switch x := v.(type) {
	case *Vector2:
		return x.Components(), func(c []float64) Value { return NewVector2(c[0], c[1]) }
	case *Vector3:
		return x.Components(), func(c []float64) Value { return NewVector3(c[0], c[1], c[2]) }
	case *Color:
		return x.Components(), func(c []float64) Value { return &Color{c[0], c[1], c[2], c[3]} }
	}
	return nil, nil
}

func broadcast(f float64, n int) []float64 {
	c := make([]float64, n)
	for i := range c {
		c[i] = f
	}
	return c
}

// Compare applies a relational operator to numbers or strings.
func Compare(op lsc.TokType, a, b Value) (bool, error) {
	var c int
	if IsNumber(a) && IsNumber(b) {
		x, _ := ToFloat(a)
		y, _ := ToFloat(b)
		switch {
		case x < y:
			c = -1
		case x > y:
			c = 1
		}
	} else if x, ok := a.(string); ok {
		y, ok := b.(string)
		if !ok {
			return false, Errorf("cannot compare %s and %s", TypeName(a), TypeName(b))
		}
		c = strings.Compare(x, y)
	} else {
		return false, Errorf("cannot compare %s and %s", TypeName(a), TypeName(b))
	}
	switch op {
	case lsc.LT:
		return c < 0, nil
	case lsc.LE:
		return c <= 0, nil
	case lsc.GT:
		return c > 0, nil
	case lsc.GE:
		return c >= 0, nil
	}
	return false, Errorf("unknown comparison operator %s", op)
}

// Contains implements operator `in`: array membership, dictionary keys and
// substrings.
func Contains(container, item Value) (bool, error) {
	switch c := container.(type) {
	case *Array:
		return c.Contains(item), nil
	case *Dict:
		return c.Has(item), nil
	case string:
		s, ok := item.(string)
		if !ok {
			return false, Errorf("'in <string>' requires string as left operand, not %s", TypeName(item))
		}
		return strings.Contains(c, s), nil
	}
	return false, Errorf("argument of type %s is not a container", TypeName(container))
}

// Negate implements unary minus.
func Negate(v Value) (Value, error) {
	switch x := v.(type) {
	case int64:
		return -x, nil
	case float64:
		return -x, nil
	case *Vector2:
		return NewVector2(-x.X, -x.Y), nil
	case *Vector3:
		return NewVector3(-x.X, -x.Y, -x.Z), nil
	}
	return nil, Errorf("bad operand type for unary -: %s", TypeName(v))
}

// BitNot implements unary `~`.
func BitNot(v Value) (Value, error) {
	if x, ok := v.(int64); ok {
		return ^x, nil
	}
	return nil, Errorf("bad operand type for unary ~: %s", TypeName(v))
}

// intPow computes x**y for y >= 0 by repeated squaring. It reports false if
// the result does not fit into an int64.
func intPow(x, y int64) (int64, bool) {
	r := int64(1)
	var ok bool
	for y > 0 {
		if y&1 == 1 {
			if r, ok = mulInt(r, x); !ok {
				return 0, false
			}
		}
		y >>= 1
		if y > 0 {
			if x, ok = mulInt(x, x); !ok {
				return 0, false
			}
		}
	}
	return r, true
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || c/b != a {
		return 0, false
	}
	return c, true
}
