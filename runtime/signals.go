package runtime

import (
	"sync"

	"github.com/emirpasic/gods/sets/linkedhashset"
)

// connection is a (target, method) pair. A nil target refers to a global
// function; a callable target with an empty method is called directly.
type connection struct {
	target Value
	method string
}

// SignalTable holds the connections of all signals. Every signal keeps its
// connections in connection order, without duplicates.
type SignalTable struct {
	mu       sync.Mutex
	signals  map[string]*linkedhashset.Set
	declared map[string]bool
	rt       *Runtime
}

func newSignalTable() *SignalTable {
	return &SignalTable{
		signals:  make(map[string]*linkedhashset.Set),
		declared: make(map[string]bool),
	}
}

// Declare registers a signal name.
func (st *SignalTable) Declare(name string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.declared[name] = true
}

// HasSignal is true for declared signals and for signals with connections.
func (st *SignalTable) HasSignal(name string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.declared[name] || st.signals[name] != nil
}

// Connect connects a signal to a target's method. Returns false if the
// connection already exists.
func (st *SignalTable) Connect(name string, target Value, method string) bool {
	c := connection{target: target, method: method}
	if !hashable(c) {
		tracer().Errorf("cannot connect signal %s to value of type %s", name, TypeName(target))
		return false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	set := st.signals[name]
	if set == nil {
		set = linkedhashset.New()
		st.signals[name] = set
	}
	if set.Contains(c) {
		return false
	}
	set.Add(c)
	tracer().Debugf("connected signal %s to %s", name, method)
	return true
}

// Disconnect removes a connection. Returns false if it did not exist.
func (st *SignalTable) Disconnect(name string, target Value, method string) bool {
	c := connection{target: target, method: method}
	if !hashable(c) {
		return false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	set := st.signals[name]
	if set == nil || !set.Contains(c) {
		return false
	}
	set.Remove(c)
	return true
}

// IsConnected checks for a connection.
func (st *SignalTable) IsConnected(name string, target Value, method string) bool {
	c := connection{target: target, method: method}
	if !hashable(c) {
		return false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	set := st.signals[name]
	return set != nil && set.Contains(c)
}

// Connections returns the number of connections of a signal.
func (st *SignalTable) Connections(name string) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	if set := st.signals[name]; set != nil {
		return set.Size()
	}
	return 0
}

// Emit invokes all connections of a signal, in connection order, with the
// given arguments. Handlers may connect or disconnect while the signal is
// emitted; this affects later emissions only. Emit returns the number of
// handlers invoked and the first error a handler raised.
func (st *SignalTable) Emit(name string, args ...Value) (n int, err error) {
	st.mu.Lock()
	var snapshot []interface{}
	if set := st.signals[name]; set != nil {
		snapshot = set.Values()
	}
	st.mu.Unlock()
	for _, x := range snapshot {
		c := x.(connection)
		fn, ferr := st.resolve(c)
		if ferr != nil {
			tracer().Errorf("signal %s: %v", name, ferr)
			if err == nil {
				err = ferr
			}
			continue
		}
		n++
		if _, cerr := st.call(fn, args); cerr != nil {
			tracer().Errorf("signal %s: handler %s failed: %v", name, c.method, cerr)
			if err == nil {
				err = cerr
			}
		}
	}
	return n, err
}

func (st *SignalTable) call(fn Callable, args []Value) (v Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Recovered(r)
		}
	}()
	return fn.Call(args)
}

// resolve finds the callable for a connection.
func (st *SignalTable) resolve(c connection) (Callable, error) {
	if c.target == nil {
		if st.rt == nil {
			return nil, Errorf("no global scope for handler %s", c.method)
		}
		v, ok := st.rt.Globals().Lookup(c.method)
		if !ok {
			return nil, Errorf("handler %s not found", c.method)
		}
		if fn, ok := v.(Callable); ok {
			return fn, nil
		}
		return nil, Errorf("handler %s is not callable", c.method)
	}
	if obj, ok := c.target.(Object); ok && c.method != "" {
		if v, ok := obj.GetMember(c.method); ok {
			if fn, ok := v.(Callable); ok {
				return fn, nil
			}
		}
		return nil, Errorf("target %s has no method %s", TypeName(c.target), c.method)
	}
	if fn, ok := c.target.(Callable); ok {
		return fn, nil
	}
	return nil, Errorf("cannot invoke handler %s on %s", c.method, TypeName(c.target))
}

// Emitter returns a callable which emits a signal, as defined by a `signal`
// declaration.
func (st *SignalTable) Emitter(name string) Callable {
	return NewBuiltin(name, func(args []Value) (Value, error) {
		_, err := st.Emit(name, args...)
		return nil, err
	})
}
