package runtime

import (
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/utils"
)

// --- Arrays ----------------------------------------------------------------

// Array is the LSC array type. Arrays have reference semantics.
type Array struct {
	list *arraylist.List
}

var _ Object = (*Array)(nil)

// NewArray creates an array from values.
func NewArray(values ...Value) *Array {
	return &Array{list: arraylist.New(values...)}
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return a.list.Size()
}

// index normalizes a (possibly negative) index.
func (a *Array) index(i int64) (int, bool) {
	n := int64(a.list.Size())
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return int(i), true
}

// Get returns the element at an index. Negative indices count from the end.
func (a *Array) Get(i int64) (Value, error) {
	j, ok := a.index(i)
	if !ok {
		return nil, Errorf("array index %d out of range (size %d)", i, a.Len())
	}
	v, _ := a.list.Get(j)
	return v, nil
}

// Set replaces the element at an index.
func (a *Array) Set(i int64, v Value) error {
	j, ok := a.index(i)
	if !ok {
		return Errorf("array index %d out of range (size %d)", i, a.Len())
	}
	a.list.Set(j, v)
	return nil
}

// Append adds values at the end.
func (a *Array) Append(values ...Value) {
	a.list.Add(values...)
}

// Insert inserts a value before an index. An index of Len() appends.
func (a *Array) Insert(i int64, v Value) error {
	if i == int64(a.Len()) {
		a.list.Add(v)
		return nil
	}
	j, ok := a.index(i)
	if !ok {
		return Errorf("insert position %d out of range (size %d)", i, a.Len())
	}
	a.list.Insert(j, v)
	return nil
}

// Find returns the index of the first element equal to v, or -1.
func (a *Array) Find(v Value) int {
	for i, x := range a.list.Values() {
		if Equal(x, v) {
			return i
		}
	}
	return -1
}

// Contains checks if an element equal to v is present.
func (a *Array) Contains(v Value) bool {
	return a.Find(v) >= 0
}

// Remove removes the first element equal to v. It does nothing if v is not present.
func (a *Array) Remove(v Value) bool {
	if i := a.Find(v); i >= 0 {
		a.list.Remove(i)
		return true
	}
	return false
}

// Pop removes and returns the element at an index; -1 is the last element.
func (a *Array) Pop(i int64) (Value, error) {
	if a.Len() == 0 {
		return nil, Errorf("pop from empty array")
	}
	j, ok := a.index(i)
	if !ok {
		return nil, Errorf("pop index %d out of range (size %d)", i, a.Len())
	}
	v, _ := a.list.Get(j)
	a.list.Remove(j)
	return v, nil
}

// Values returns a copy of the elements.
func (a *Array) Values() []Value {
	return a.list.Values()
}

// Clear removes all elements.
func (a *Array) Clear() {
	a.list.Clear()
}

// Sort sorts the array in ascending order. Numbers sort before strings,
// other values keep their relative order at the end.
func (a *Array) Sort() {
	a.list.Sort(compareValues)
}

// Reverse reverses the array in place.
func (a *Array) Reverse() {
	for i, j := 0, a.Len()-1; i < j; i, j = i+1, j-1 {
		a.list.Swap(i, j)
	}
}

// Concat returns a new array with the elements of a and b.
func (a *Array) Concat(b *Array) *Array {
	c := NewArray(a.Values()...)
	c.Append(b.Values()...)
	return c
}

func (a *Array) String() string {
	parts := make([]string, a.Len())
	for i, v := range a.list.Values() {
		parts[i] = Repr(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

var _ utils.Comparator = compareValues

// compareValues orders numbers < strings < everything else.
func compareValues(x, y interface{}) int {
	rank := func(v interface{}) int {
		switch v.(type) {
		case int64, float64:
			return 0
		case string:
			return 1
		}
		return 2
	}
	rx, ry := rank(x), rank(y)
	if rx != ry {
		return rx - ry
	}
	switch rx {
	case 0:
		fx, _ := ToFloat(x)
		fy, _ := ToFloat(y)
		return utils.Float64Comparator(fx, fy)
	case 1:
		return utils.StringComparator(x, y)
	}
	return 0
}

// GetMember is part of interface Object. Arrays expose methods only.
func (a *Array) GetMember(name string) (Value, bool) {
	m := func(fn func(args []Value) (Value, error)) (Value, bool) {
		return NewBuiltin("Array."+name, fn), true
	}
	switch name {
	case "size":
		return m(func([]Value) (Value, error) { return int64(a.Len()), nil })
	case "empty":
		return m(func([]Value) (Value, error) { return a.Len() == 0, nil })
	case "append", "push_back":
		return m(func(args []Value) (Value, error) {
			a.Append(args...)
			return nil, nil
		})
	case "pop", "pop_back":
		return m(func(args []Value) (Value, error) {
			idx := int64(-1)
			if len(args) > 0 {
				var err error
				if idx, err = intArg("Array.pop", args, 0); err != nil {
					return nil, err
				}
			}
			return a.Pop(idx)
		})
	case "insert":
		return m(func(args []Value) (Value, error) {
			if err := arity("insert", args, 2, 2); err != nil {
				return nil, err
			}
			i, err := intArg("Array.insert", args, 0)
			if err != nil {
				return nil, err
			}
			return nil, a.Insert(i, args[1])
		})
	case "remove", "erase":
		return m(func(args []Value) (Value, error) {
			if err := arity(name, args, 1, 1); err != nil {
				return nil, err
			}
			return a.Remove(args[0]), nil
		})
	case "has":
		return m(func(args []Value) (Value, error) {
			if err := arity("has", args, 1, 1); err != nil {
				return nil, err
			}
			return a.Contains(args[0]), nil
		})
	case "find":
		return m(func(args []Value) (Value, error) {
			if err := arity("find", args, 1, 1); err != nil {
				return nil, err
			}
			return int64(a.Find(args[0])), nil
		})
	case "clear":
		return m(func([]Value) (Value, error) {
			a.Clear()
			return nil, nil
		})
	case "sort":
		return m(func([]Value) (Value, error) {
			a.Sort()
			return nil, nil
		})
	case "reverse", "invert":
		return m(func([]Value) (Value, error) {
			a.Reverse()
			return nil, nil
		})
	}
	return nil, false
}

// SetMember is part of interface Object. Arrays do not have settable members.
func (a *Array) SetMember(string, Value) bool {
	return false
}

// --- Dictionaries ----------------------------------------------------------

// Dict is the LSC dictionary type. Entries keep their insertion order.
type Dict struct {
	m *linkedhashmap.Map
}

var _ Object = (*Dict)(nil)

// NewDict creates an empty dictionary.
func NewDict() *Dict {
	return &Dict{m: linkedhashmap.New()}
}

// dictKey normalizes integral floats to ints, so that d[1] and d[1.0] agree.
func dictKey(k Value) Value {
	if f, ok := k.(float64); ok && f == float64(int64(f)) {
		return int64(f)
	}
	return k
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	return d.m.Size()
}

// Get returns the value for a key.
func (d *Dict) Get(k Value) (Value, bool) {
	return d.m.Get(dictKey(k))
}

// Put sets the value for a key.
func (d *Dict) Put(k, v Value) error {
	if !hashable(k) {
		return Errorf("invalid dictionary key of type %s", TypeName(k))
	}
	d.m.Put(dictKey(k), v)
	return nil
}

// Has checks for a key.
func (d *Dict) Has(k Value) bool {
	_, ok := d.m.Get(dictKey(k))
	return ok
}

// Erase removes a key.
func (d *Dict) Erase(k Value) bool {
	if !d.Has(k) {
		return false
	}
	d.m.Remove(dictKey(k))
	return true
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []Value {
	return d.m.Keys()
}

// Values returns the values in insertion order.
func (d *Dict) Values() []Value {
	return d.m.Values()
}

// Clear removes all entries.
func (d *Dict) Clear() {
	d.m.Clear()
}

func (d *Dict) String() string {
	parts := make([]string, 0, d.Len())
	for _, k := range d.m.Keys() {
		v, _ := d.m.Get(k)
		parts = append(parts, Repr(k)+": "+Repr(v))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func hashable(k Value) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	_ = map[interface{}]bool{k: true}
	return true
}

// GetMember is part of interface Object. Dictionaries expose methods only;
// entries are accessed with indexing.
func (d *Dict) GetMember(name string) (Value, bool) {
	m := func(fn func(args []Value) (Value, error)) (Value, bool) {
		return NewBuiltin("Dictionary."+name, fn), true
	}
	switch name {
	case "size":
		return m(func([]Value) (Value, error) { return int64(d.Len()), nil })
	case "empty":
		return m(func([]Value) (Value, error) { return d.Len() == 0, nil })
	case "has":
		return m(func(args []Value) (Value, error) {
			if err := arity("has", args, 1, 1); err != nil {
				return nil, err
			}
			return d.Has(args[0]), nil
		})
	case "keys":
		return m(func([]Value) (Value, error) { return NewArray(d.Keys()...), nil })
	case "values":
		return m(func([]Value) (Value, error) { return NewArray(d.Values()...), nil })
	case "erase":
		return m(func(args []Value) (Value, error) {
			if err := arity("erase", args, 1, 1); err != nil {
				return nil, err
			}
			return d.Erase(args[0]), nil
		})
	case "get":
		return m(func(args []Value) (Value, error) {
			if err := arity("get", args, 1, 2); err != nil {
				return nil, err
			}
			if v, ok := d.Get(args[0]); ok {
				return v, nil
			}
			if len(args) == 2 {
				return args[1], nil
			}
			return nil, nil
		})
	case "clear":
		return m(func([]Value) (Value, error) {
			d.Clear()
			return nil, nil
		})
	}
	return nil, false
}

// SetMember is part of interface Object.
func (d *Dict) SetMember(string, Value) bool {
	return false
}
