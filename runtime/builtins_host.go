package runtime

// Builtins delegating to the host engine, plus introspection.

// selfNode finds the node a script is running for: `node` or `self` in the
// current scope. For script instances the owner node is used.
func (rt *Runtime) selfNode() Value {
	sc := rt.CurrentScope()
	for _, name := range []string{"node", "self"} {
		if v, ok := sc.Lookup(name); ok && v != nil {
			if inst, ok := v.(*Instance); ok && inst.Owner != nil {
				return inst.Owner
			}
			return v
		}
	}
	return nil
}

func (rt *Runtime) nodeBuiltins() {
	h := func() Host { return rt.Host }
	rt.define("get_node", 1, 1, func(args []Value) (Value, error) {
		p, err := stringArg("get_node", args, 0)
		if err != nil {
			return nil, err
		}
		n := h().GetNode(p)
		if n == nil {
			tracer().Infof("get_node: node not found: %s", p)
		}
		return n, nil
	})
	rt.define("get_node_or_null", 1, 1, func(args []Value) (Value, error) {
		p, err := stringArg("get_node_or_null", args, 0)
		if err != nil {
			return nil, err
		}
		return h().GetNode(p), nil
	})
	rt.define("find_node", 1, 1, func(args []Value) (Value, error) {
		name, err := stringArg("find_node", args, 0)
		if err != nil {
			return nil, err
		}
		return h().FindNode(name), nil
	})
	rt.define("get_parent", 0, 1, func(args []Value) (Value, error) {
		return h().GetParent(rt.nodeArg(args, 0)), nil
	})
	rt.define("get_children", 0, 1, func(args []Value) (Value, error) {
		return NewArray(h().GetChildren(rt.nodeArg(args, 0))...), nil
	})
	rt.define("add_child", 1, 2, func(args []Value) (Value, error) {
		if len(args) == 1 {
			h().AddChild(rt.selfNode(), args[0])
		} else {
			h().AddChild(args[0], args[1])
		}
		return nil, nil
	})
	rt.define("remove_child", 1, 2, func(args []Value) (Value, error) {
		if len(args) == 1 {
			h().RemoveChild(rt.selfNode(), args[0])
		} else {
			h().RemoveChild(args[0], args[1])
		}
		return nil, nil
	})
	rt.define("queue_free", 0, 1, func(args []Value) (Value, error) {
		h().QueueFree(rt.nodeArg(args, 0))
		return nil, nil
	})
	rt.define("duplicate", 0, 1, func(args []Value) (Value, error) {
		return h().Duplicate(rt.nodeArg(args, 0)), nil
	})
	rt.define("is_inside_tree", 0, 1, func(args []Value) (Value, error) {
		return h().IsInsideTree(rt.nodeArg(args, 0)), nil
	})
	rt.define("get_tree", 0, 0, func(args []Value) (Value, error) {
		return h().GetTree(), nil
	})
	rt.define("get_path_to", 1, 2, func(args []Value) (Value, error) {
		if len(args) == 1 {
			return h().GetPathTo(rt.selfNode(), args[0]), nil
		}
		return h().GetPathTo(args[0], args[1]), nil
	})
	// scenes
	rt.define("change_scene", 1, 1, func(args []Value) (Value, error) {
		p, err := stringArg("change_scene", args, 0)
		if err != nil {
			return nil, err
		}
		return nil, h().ChangeScene(p)
	})
	rt.define("reload_scene", 0, 0, func(args []Value) (Value, error) {
		return nil, h().ReloadScene()
	})
	rt.define("get_scene", 0, 0, func(args []Value) (Value, error) {
		return h().GetScene(), nil
	})
	// input
	action := func(name string, fn func(Host, string) Value) {
		rt.define(name, 1, 1, func(args []Value) (Value, error) {
			a, err := stringArg(name, args, 0)
			if err != nil {
				return nil, err
			}
			return fn(h(), a), nil
		})
	}
	action("is_action_pressed", func(h Host, a string) Value { return h.IsActionPressed(a) })
	action("is_action_just_pressed", func(h Host, a string) Value { return h.IsActionJustPressed(a) })
	action("is_action_just_released", func(h Host, a string) Value { return h.IsActionJustReleased(a) })
	action("get_action_strength", func(h Host, a string) Value { return h.GetActionStrength(a) })
	action("is_key_pressed", func(h Host, k string) Value { return h.IsKeyPressed(k) })
	rt.define("is_mouse_button_pressed", 1, 1, func(args []Value) (Value, error) {
		b, err := intArg("is_mouse_button_pressed", args, 0)
		if err != nil {
			return nil, err
		}
		return h().IsMouseButtonPressed(b), nil
	})
	rt.define("get_mouse_position", 0, 0, func(args []Value) (Value, error) {
		return NewVector2(h().MousePosition()), nil
	})
	rt.define("get_global_mouse_position", 0, 0, func(args []Value) (Value, error) {
		return NewVector2(h().GlobalMousePosition()), nil
	})
	rt.introspectionBuiltins()
}

// nodeArg returns argument i, or the script's own node if it is missing.
func (rt *Runtime) nodeArg(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return rt.selfNode()
}

func (rt *Runtime) introspectionBuiltins() {
	rt.define("typeof", 1, 1, func(args []Value) (Value, error) {
		return TypeName(args[0]), nil
	})
	rt.define("is_instance", 2, 2, func(args []Value) (Value, error) {
		return IsInstance(args[0], args[1]), nil
	})
	rt.define("has_method", 2, 2, func(args []Value) (Value, error) {
		name, err := stringArg("has_method", args, 1)
		if err != nil {
			return nil, err
		}
		if inst, ok := args[0].(*Instance); ok && inst.HasMethod(name) {
			return true, nil
		}
		m, ok := member(args[0], name)
		if !ok {
			return false, nil
		}
		_, ok = m.(Callable)
		return ok, nil
	})
	hasProp := func(name string) {
		rt.define(name, 2, 2, func(args []Value) (Value, error) {
			prop, err := stringArg(name, args, 1)
			if err != nil {
				return nil, err
			}
			_, ok := member(args[0], prop)
			return ok, nil
		})
	}
	hasProp("has_property")
	hasProp("hasattr")
	rt.define("has_signal", 1, 2, func(args []Value) (Value, error) {
		name, err := stringArg("has_signal", args, len(args)-1)
		if err != nil {
			return nil, err
		}
		return rt.Signals.HasSignal(name), nil
	})
	rt.define("get_viewport_rect", 0, 0, func(args []Value) (Value, error) {
		if vh, ok := rt.Host.(ViewportHost); ok {
			x, y, w, h := vh.ViewportRect()
			return &Rect2{X: x, Y: y, W: w, H: h}, nil
		}
		return &Rect2{W: 1280, H: 720}, nil
	})
	rt.define("is_on_floor", 0, 0, func(args []Value) (Value, error) {
		return false, nil
	})
	rt.define("move_and_slide", 1, 2, func(args []Value) (Value, error) {
		vel, err := vec2Arg("move_and_slide", args, 0)
		if err != nil {
			return nil, err
		}
		node, ok := rt.selfNode().(Object)
		if !ok {
			tracer().Infof("move_and_slide: no node in scope")
			return vel, nil
		}
		pos := NewVector2(0, 0)
		if p, ok := node.GetMember("position"); ok {
			if v, ok := toVec2(p); ok {
				pos = v
			}
		}
		node.SetMember("position", pos.Add(vel.Scale(1.0/60)))
		return vel, nil
	})
}

// member looks up a member of an object, without raising an error.
func member(v Value, name string) (Value, bool) {
	if obj, ok := v.(Object); ok {
		return obj.GetMember(name)
	}
	return nil, false
}

// IsInstance checks a value against a type, given by name or by a class
// value (a callable, as `Vector2`).
func IsInstance(v Value, typ Value) bool {
	var name string
	switch t := typ.(type) {
	case string:
		name = t
	case Callable:
		name = t.Name()
	default:
		return false
	}
	if inst, ok := v.(*Instance); ok {
		return inst.IsA(name)
	}
	tn := TypeName(v)
	return tn == name || (name == "Object" && isObject(v))
}

func isObject(v Value) bool {
	_, ok := v.(Object)
	return ok
}
