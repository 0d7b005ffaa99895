package runtime

// NodeHost gives access to the scene tree of a host engine. Nodes are opaque
// values to the runtime; usually they implement Object.
type NodeHost interface {
	GetNode(path string) Value
	FindNode(name string) Value
	GetParent(node Value) Value
	GetChildren(node Value) []Value
	AddChild(parent, child Value)
	RemoveChild(parent, child Value)
	QueueFree(node Value)
	Duplicate(node Value) Value
	IsInsideTree(node Value) bool
	GetPathTo(from, to Value) string
}

// SceneHost manages scenes.
type SceneHost interface {
	GetTree() Value
	ChangeScene(path string) error
	ReloadScene() error
	GetScene() Value
}

// InputHost reports the input state of the current frame.
type InputHost interface {
	IsActionPressed(action string) bool
	IsActionJustPressed(action string) bool
	IsActionJustReleased(action string) bool
	GetActionStrength(action string) float64
	IsKeyPressed(key string) bool
	IsMouseButtonPressed(button int64) bool
	MousePosition() (x, y float64)
	GlobalMousePosition() (x, y float64)
}

// Host is the capability interface of a host engine.
type Host interface {
	NodeHost
	SceneHost
	InputHost
}

// ViewportHost is implemented by hosts which know their viewport.
type ViewportHost interface {
	ViewportRect() (x, y, w, h float64)
}

// NullHost is a host without any nodes, scenes or input.
type NullHost struct{}

var _ Host = NullHost{}

func (NullHost) GetNode(string) Value                    { return nil }
func (NullHost) FindNode(string) Value                   { return nil }
func (NullHost) GetParent(Value) Value                   { return nil }
func (NullHost) GetChildren(Value) []Value               { return nil }
func (NullHost) AddChild(Value, Value)                   {}
func (NullHost) RemoveChild(Value, Value)                {}
func (NullHost) QueueFree(Value)                         {}
func (NullHost) Duplicate(node Value) Value              { return node }
func (NullHost) IsInsideTree(Value) bool                 { return false }
func (NullHost) GetPathTo(Value, Value) string           { return "" }
func (NullHost) GetTree() Value                          { return nil }
func (NullHost) ChangeScene(string) error                { return nil }
func (NullHost) ReloadScene() error                      { return nil }
func (NullHost) GetScene() Value                         { return nil }
func (NullHost) IsActionPressed(string) bool             { return false }
func (NullHost) IsActionJustPressed(string) bool         { return false }
func (NullHost) IsActionJustReleased(string) bool        { return false }
func (NullHost) GetActionStrength(string) float64        { return 0 }
func (NullHost) IsKeyPressed(string) bool                { return false }
func (NullHost) IsMouseButtonPressed(int64) bool         { return false }
func (NullHost) MousePosition() (float64, float64)       { return 0, 0 }
func (NullHost) GlobalMousePosition() (float64, float64) { return 0, 0 }
