package runtime

import (
	"fmt"
	"strings"
)

// This module implements a stack of call frames.
// Call frames are pushed by the interpreter for every function call
// and refer to the scope the function body executes in.

// CallFrame is a call frame, representing an active function call.
type CallFrame struct {
	Name   string
	Scope  *Scope
	Parent *CallFrame
}

func (cf *CallFrame) String() string {
	return fmt.Sprintf("<frame %s -> %v>", cf.Name, cf.Scope)
}

// IsRoot is a predicate: Is this a root frame?
func (cf *CallFrame) IsRoot() bool {
	return (cf.Parent == nil)
}

// ---------------------------------------------------------------------------

// FrameStack is a (call-)stack of frames.
type FrameStack struct {
	base  *CallFrame
	tos   *CallFrame
	depth int
}

// Current gets the current frame (TOS).
func (fs *FrameStack) Current() *CallFrame {
	if fs.tos == nil {
		panic("attempt to access frame from empty stack")
	}
	return fs.tos
}

// Globals gets the outermost frame, containing global symbols.
func (fs *FrameStack) Globals() *CallFrame {
	if fs.base == nil {
		panic("attempt to access global frame from empty stack")
	}
	return fs.base
}

// Depth returns the number of frames on the stack.
func (fs *FrameStack) Depth() int {
	return fs.depth
}

// PushFrame pushes a new frame for a scope.
func (fs *FrameStack) PushFrame(name string, scope *Scope) *CallFrame {
	cf := &CallFrame{Name: name, Scope: scope, Parent: fs.tos}
	if fs.tos == nil {
		fs.base = cf
	}
	fs.tos = cf
	fs.depth++
	T().P("frame", name).Debugf("pushing call frame")
	return cf
}

// PopFrame pops the top-most (recent) frame.
func (fs *FrameStack) PopFrame() *CallFrame {
	if fs.tos == nil {
		panic("attempt to pop frame from empty stack")
	}
	cf := fs.tos
	T().Debugf("popping call frame [%s]", cf.Name)
	fs.tos = fs.tos.Parent
	fs.depth--
	return cf
}

// Dump returns a stack trace, innermost frame first.
func (fs *FrameStack) Dump() string {
	var b strings.Builder
	i := 0
	for cf := fs.tos; cf != nil; cf = cf.Parent {
		fmt.Fprintf(&b, "  #%d %s\n", i, cf.Name)
		i++
	}
	return b.String()
}
