package interp

import "github.com/npillmayer/lsc/runtime"

// DefaultsVersion identifies the table of default values for undefined
// identifiers. It changes whenever an entry is added, removed or changed.
const DefaultsVersion = 1

// defaults holds constructors, so every hit gets a fresh value.
var defaults = map[string]func() runtime.Value{
	"current":           func() runtime.Value { return false },
	"collision_mask":    func() runtime.Value { return int64(1) },
	"collision_layer":   func() runtime.Value { return int64(1) },
	"enable_animations": func() runtime.Value { return true },
	"texture":           func() runtime.Value { return nil },
	"null":              func() runtime.Value { return nil },
	"position":          func() runtime.Value { return runtime.NewVector2(0, 0) },
	"global_position":   func() runtime.Value { return runtime.NewVector2(0, 0) },
	"velocity":          func() runtime.Value { return runtime.NewVector2(0, 0) },
	"scale":             func() runtime.Value { return runtime.NewVector2(1, 1) },
	"rotation":          func() runtime.Value { return 0.0 },
	"visible":           func() runtime.Value { return true },
	"modulate":          func() runtime.Value { return &runtime.Color{R: 1, G: 1, B: 1, A: 1} },
	"z_index":           func() runtime.Value { return int64(0) },
	"safe_margin":       func() runtime.Value { return 0.08 },
	"enabled":           func() runtime.Value { return true },
	"max_stamina":       func() runtime.Value { return 100.0 },
	"hframes":           func() runtime.Value { return int64(1) },
	"vframes":           func() runtime.Value { return int64(1) },
	"frame":             func() runtime.Value { return int64(0) },
	"frame_x":           func() runtime.Value { return int64(0) },
	"frame_y":           func() runtime.Value { return int64(0) },
	"centered":          func() runtime.Value { return true },
	"offset":            func() runtime.Value { return runtime.NewVector2(0, 0) },
	"flip_h":            func() runtime.Value { return false },
	"flip_v":            func() runtime.Value { return false },
	"region_enabled":    func() runtime.Value { return false },
	"region_rect":       func() runtime.Value { return &runtime.Rect2{} },
}

// Default returns a fresh copy of the default value for an undefined
// identifier. A default of null counts as a hit.
func Default(name string) (runtime.Value, bool) {
	mk, ok := defaults[name]
	if !ok {
		return nil, false
	}
	return mk(), true
}
