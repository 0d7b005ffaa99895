package runtime

import (
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// MockNode is a node of a MockHost scene tree. Properties are held in a
// dictionary and are accessible as members.
type MockNode struct {
	Name     string
	Parent   *MockNode
	Children []*MockNode
	Props    *Dict
	freed    bool
	host     *MockHost
}

var _ Object = (*MockNode)(nil)

// Path returns the absolute path of the node.
func (n *MockNode) Path() string {
	if n.Parent == nil {
		return "/" + n.Name
	}
	return n.Parent.Path() + "/" + n.Name
}

func (n *MockNode) String() string {
	return "<node " + n.Path() + ">"
}

// TypeName is used by `typeof`.
func (n *MockNode) TypeName() string {
	if t, ok := n.Props.Get("type"); ok {
		return Str(t)
	}
	return "Node"
}

// GetMember is part of interface Object.
func (n *MockNode) GetMember(name string) (Value, bool) {
	switch name {
	case "name":
		return n.Name, true
	case "get_node":
		return method("Node", name, 1, 1, func(args []Value) (Value, error) {
			return n.host.GetNode(path.Join(n.Path(), Str(args[0]))), nil
		}), true
	}
	return n.Props.Get(name)
}

// SetMember is part of interface Object.
func (n *MockNode) SetMember(name string, v Value) bool {
	if name == "name" {
		n.Name = Str(v)
		return true
	}
	return n.Props.Put(name, v) == nil
}

// MockHost is an in-memory host, used for testing scripts and by the REPL.
// Input state is set with SetInputState, using keys
//
//	action_<A>                  → pressed
//	action_<A>_just_pressed
//	action_<A>_just_released
//	action_<A>_strength         → float
//	key_<K>
//	mouse_<B>
type MockHost struct {
	mu       sync.Mutex
	nodes    *linkedhashmap.Map // path → *MockNode
	input    map[string]Value
	mouseX   float64
	mouseY   float64
	scene    string
	reloads  int
	saved    map[string]Value
	time     float64
	delta    float64
	viewport [4]float64
}

var _ Host = (*MockHost)(nil)
var _ Clock = (*MockHost)(nil)

// NewMockHost creates a host with an empty scene tree and a viewport of 1280×720.
func NewMockHost() *MockHost {
	return &MockHost{
		nodes:    linkedhashmap.New(),
		input:    make(map[string]Value),
		saved:    make(map[string]Value),
		viewport: [4]float64{0, 0, 1280, 720},
	}
}

// AddNode adds a node at an absolute path like "/root/Player". Missing
// ancestors are created.
func (h *MockHost) AddNode(p string, props map[string]Value) *MockNode {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.addNode(p, props)
}

func (h *MockHost) addNode(p string, props map[string]Value) *MockNode {
	p = path.Clean("/" + p)
	if n, ok := h.nodes.Get(p); ok {
		return n.(*MockNode)
	}
	dir, name := path.Split(p)
	node := &MockNode{Name: name, Props: NewDict(), host: h}
	for k, v := range props {
		node.Props.Put(k, v)
	}
	if dir != "/" {
		parent := h.addNode(strings.TrimSuffix(dir, "/"), nil)
		node.Parent = parent
		parent.Children = append(parent.Children, node)
	}
	h.nodes.Put(p, node)
	return node
}

// SetInputState sets an input state key, see type MockHost.
func (h *MockHost) SetInputState(key string, v Value) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.input[key] = v
}

// ClearInput resets all input state.
func (h *MockHost) ClearInput() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.input = make(map[string]Value)
}

// SetMousePosition sets the mouse position.
func (h *MockHost) SetMousePosition(x, y float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mouseX, h.mouseY = x, y
}

// Advance moves the host clock forward by a frame of dt seconds.
func (h *MockHost) Advance(dt float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.time += dt
	h.delta = dt
}

// Time is part of interface Clock.
func (h *MockHost) Time() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.time
}

// Delta is part of interface Clock.
func (h *MockHost) Delta() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.delta
}

// CurrentScene returns the path of the current scene.
func (h *MockHost) CurrentScene() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.scene
}

// Saved returns a resource saved with `save`.
func (h *MockHost) Saved(p string) (Value, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.saved[p]
	return v, ok
}

func (h *MockHost) inputBool(key string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Truthy(h.input[key])
}

func (h *MockHost) node(v Value) (*MockNode, bool) {
	n, ok := v.(*MockNode)
	return n, ok && n != nil
}

// --- Host interface --------------------------------------------------------

func (h *MockHost) GetNode(p string) Value {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !strings.HasPrefix(p, "/") {
		p = "/root/" + p
	}
	if n, ok := h.nodes.Get(path.Clean(p)); ok {
		return n
	}
	return nil
}

func (h *MockHost) FindNode(name string) Value {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, n := range h.nodes.Values() {
		if n.(*MockNode).Name == name {
			return n
		}
	}
	return nil
}

func (h *MockHost) GetParent(v Value) Value {
	if n, ok := h.node(v); ok && n.Parent != nil {
		return n.Parent
	}
	return nil
}

func (h *MockHost) GetChildren(v Value) []Value {
	n, ok := h.node(v)
	if !ok {
		return nil
	}
	children := make([]Value, len(n.Children))
	for i, c := range n.Children {
		children[i] = c
	}
	return children
}

func (h *MockHost) AddChild(parent, child Value) {
	p, ok1 := h.node(parent)
	c, ok2 := h.node(child)
	if !ok1 || !ok2 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	c.Parent = p
	p.Children = append(p.Children, c)
	h.nodes.Put(c.Path(), c)
}

func (h *MockHost) RemoveChild(parent, child Value) {
	p, ok1 := h.node(parent)
	c, ok2 := h.node(child)
	if !ok1 || !ok2 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detach(p, c)
}

func (h *MockHost) detach(p, c *MockNode) {
	for i, x := range p.Children {
		if x == c {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	h.nodes.Remove(c.Path())
	c.Parent = nil
}

func (h *MockHost) QueueFree(v Value) {
	n, ok := h.node(v)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	n.freed = true
	if n.Parent != nil {
		h.detach(n.Parent, n)
	} else {
		h.nodes.Remove(n.Path())
	}
}

func (h *MockHost) Duplicate(v Value) Value {
	n, ok := h.node(v)
	if !ok {
		return nil
	}
	dup := &MockNode{Name: n.Name, Props: NewDict(), host: h}
	for _, k := range n.Props.Keys() {
		val, _ := n.Props.Get(k)
		dup.Props.Put(k, Copy(val))
	}
	return dup
}

func (h *MockHost) IsInsideTree(v Value) bool {
	n, ok := h.node(v)
	if !ok || n.freed {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, found := h.nodes.Get(n.Path())
	return found
}

func (h *MockHost) GetPathTo(from, to Value) string {
	f, ok1 := h.node(from)
	t, ok2 := h.node(to)
	if !ok1 || !ok2 {
		return ""
	}
	rel := relPath(f.Path(), t.Path())
	return rel
}

// relPath computes a relative node path, using ".." for ancestors.
func relPath(from, to string) string {
	fs := strings.Split(strings.Trim(from, "/"), "/")
	ts := strings.Split(strings.Trim(to, "/"), "/")
	i := 0
	for i < len(fs) && i < len(ts) && fs[i] == ts[i] {
		i++
	}
	var parts []string
	for j := i; j < len(fs); j++ {
		parts = append(parts, "..")
	}
	parts = append(parts, ts[i:]...)
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

func (h *MockHost) GetTree() Value {
	return h.GetNode("/root")
}

func (h *MockHost) ChangeScene(p string) error {
	if p == "" {
		return fmt.Errorf("empty scene path")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.scene = p
	return nil
}

func (h *MockHost) ReloadScene() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reloads++
	return nil
}

func (h *MockHost) GetScene() Value {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.scene == "" {
		return nil
	}
	return h.scene
}

func (h *MockHost) IsActionPressed(a string) bool {
	return h.inputBool("action_" + a)
}

func (h *MockHost) IsActionJustPressed(a string) bool {
	return h.inputBool("action_" + a + "_just_pressed")
}

func (h *MockHost) IsActionJustReleased(a string) bool {
	return h.inputBool("action_" + a + "_just_released")
}

func (h *MockHost) GetActionStrength(a string) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.input["action_"+a+"_strength"]; ok {
		f, _ := ToFloat(v)
		return f
	}
	if Truthy(h.input["action_"+a]) {
		return 1
	}
	return 0
}

func (h *MockHost) IsKeyPressed(k string) bool {
	return h.inputBool("key_" + k)
}

func (h *MockHost) IsMouseButtonPressed(b int64) bool {
	return h.inputBool(fmt.Sprintf("mouse_%d", b))
}

func (h *MockHost) MousePosition() (float64, float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mouseX, h.mouseY
}

func (h *MockHost) GlobalMousePosition() (float64, float64) {
	return h.MousePosition()
}

// ViewportRect is part of interface ViewportHost.
func (h *MockHost) ViewportRect() (x, y, w, hh float64) {
	return h.viewport[0], h.viewport[1], h.viewport[2], h.viewport[3]
}

// SaveResource is part of interface ResourceSaver.
func (h *MockHost) SaveResource(p string, v Value) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.saved[p] = v
	return nil
}
