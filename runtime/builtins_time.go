package runtime

// Time, signal and resource builtins.

func (rt *Runtime) timeBuiltins() {
	now := func(args []Value) (Value, error) { return rt.Time(), nil }
	rt.define("get_time", 0, 0, now)
	rt.define("get_runtime_time", 0, 0, now)
	rt.define("get_delta", 0, 0, func(args []Value) (Value, error) {
		return rt.Delta(), nil
	})
	rt.define("get_fps", 0, 0, func(args []Value) (Value, error) {
		return rt.FPS(), nil
	})
	rt.define("get_process_delta_time", 0, 0, func(args []Value) (Value, error) {
		if d := rt.Delta(); d > 0 {
			return d, nil
		}
		return 0.016, nil
	})
	rt.define("wait", 1, 1, func(args []Value) (Value, error) {
		secs, err := floatArg("wait", args, 0)
		if err != nil {
			return nil, err
		}
		rt.Wait(secs)
		return nil, nil
	})
	rt.define("create_timer", 1, 2, func(args []Value) (Value, error) {
		secs, err := floatArg("create_timer", args, 0)
		if err != nil {
			return nil, err
		}
		var callback Value
		if len(args) > 1 {
			if _, ok := args[1].(Callable); !ok && args[1] != nil {
				return nil, Errorf("create_timer(): callback must be callable, is %s", TypeName(args[1]))
			}
			callback = args[1]
		}
		return rt.CreateTimer(secs, callback), nil
	})
	rt.define("update_timers", 0, 0, func(args []Value) (Value, error) {
		return int64(rt.UpdateTimers()), nil
	})
	// signals
	rt.define("connect", 2, 3, func(args []Value) (Value, error) {
		name, target, method, err := connectionArgs("connect", args)
		if err != nil {
			return nil, err
		}
		return rt.Signals.Connect(name, target, method), nil
	})
	rt.define("disconnect", 2, 3, func(args []Value) (Value, error) {
		name, target, method, err := connectionArgs("disconnect", args)
		if err != nil {
			return nil, err
		}
		return rt.Signals.Disconnect(name, target, method), nil
	})
	rt.define("is_connected", 2, 3, func(args []Value) (Value, error) {
		name, target, method, err := connectionArgs("is_connected", args)
		if err != nil {
			return nil, err
		}
		return rt.Signals.IsConnected(name, target, method), nil
	})
	rt.define("emit_signal", 1, variadic, func(args []Value) (Value, error) {
		name, err := stringArg("emit_signal", args, 0)
		if err != nil {
			return nil, err
		}
		n, err := rt.Signals.Emit(name, args[1:]...)
		return int64(n), err
	})
	// resources
	rt.define("load", 1, 1, func(args []Value) (Value, error) {
		p, err := stringArg("load", args, 0)
		if err != nil {
			return nil, err
		}
		return rt.Resources.Load(p)
	})
	rt.define("preload", 1, 1, func(args []Value) (Value, error) {
		p, err := stringArg("preload", args, 0)
		if err != nil {
			return nil, err
		}
		return rt.Resources.Preload(p)
	})
	rt.define("save", 2, 2, func(args []Value) (Value, error) {
		p, err := stringArg("save", args, 1)
		if err != nil {
			return nil, err
		}
		return nil, rt.Resources.Save(args[0], p)
	})
}

// connectionArgs decodes (signal, target, method). With two arguments the
// second is either a callable or the name of a global function.
func connectionArgs(fname string, args []Value) (string, Value, string, error) {
	name, err := stringArg(fname, args, 0)
	if err != nil {
		return "", nil, "", err
	}
	if len(args) == 2 {
		if m, ok := args[1].(string); ok {
			return name, nil, m, nil
		}
		if _, ok := args[1].(Callable); ok {
			return name, args[1], "", nil
		}
		return "", nil, "", Errorf("%s(): handler must be a callable or a function name", fname)
	}
	method, err := stringArg(fname, args, 2)
	if err != nil {
		return "", nil, "", err
	}
	return name, args[1], method, nil
}
