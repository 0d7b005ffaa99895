package runtime

// Super is bound to `super` while the body of a class executes. It forwards
// method lookups to the nearest ancestor defining a method, and yields a
// no-op for methods no ancestor defines.
type Super struct {
	Class   string // the class whose ancestors are represented
	methods map[string]Callable
}

var _ Object = (*Super)(nil)

// NewSuper snapshots the callables of an instance scope, before the body of
// class executes in it.
func NewSuper(class string, sc *Scope) *Super {
	sup := &Super{Class: class, methods: make(map[string]Callable)}
	if sc == nil {
		return sup
	}
	sc.Tags().Each(func(name string, tag *Tag) {
		if m, ok := tag.Value.(Callable); ok {
			sup.methods[name] = m
		}
	})
	return sup
}

func (sup *Super) String() string {
	return "<super of " + sup.Class + ">"
}

// TypeName is used by `typeof`.
func (sup *Super) TypeName() string {
	return "Super"
}

// Has checks if an ancestor defines a method.
func (sup *Super) Has(name string) bool {
	_, ok := sup.methods[name]
	return ok
}

// GetMember is part of interface Object.
func (sup *Super) GetMember(name string) (Value, bool) {
	if m, ok := sup.methods[name]; ok {
		return m, true
	}
	tracer().Debugf("super of %s has no method %s", sup.Class, name)
	return NoOp, true
}

// SetMember is part of interface Object. `super` is read-only.
func (sup *Super) SetMember(string, Value) bool {
	return false
}
