/*
Package runtime implements the runtime environment for LSC scripts,
consisting of scopes, call frames, values, builtins, signals, timers,
resources and the interface to a host engine.

Symbol Table and Scopes

Variables live in scopes. Every scope holds a symbol table of tags and links
back to a parent scope, forming a chain which ends at the global scope. The
global scope is pre-populated with the builtin functions and constants.

Call Frames

A stack of call frames records active function calls. It is used for
limiting the call depth, for stack dumps and for builtins which need to know
the caller's scope.

Host Interface

Scripts reach the engine (scene tree, input, scenes) through the Host
interface. NullHost is a host without any nodes; MockHost is an in-memory
host for tests and the REPL.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-22, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software or the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package runtime

import (
	"io"
	"io/fs"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global scripting tracer.
func T() tracing.Trace {
	return gtrace.ScriptingTracer
}

// tracer traces with key 'lsc.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("lsc.runtime")
}

// Runtime is a type implementing a runtime environment for the LSC interpreter.
type Runtime struct {
	Frames    *FrameStack    // runtime stack of call frames
	Signals   *SignalTable   // signal connections
	Resources *ResourceCache // loaded resources
	Host      Host           // the engine
	UData     interface{}    // extension point
	globals   *Scope
	timers    *timerQueue
	clock     Clock
	classes   ClassResolver
	out       io.Writer
	fsys      fs.FS
	sleep     func(time.Duration)
	rnd       *rand.Rand
	start     time.Time
	now       func() time.Time
	mu        sync.Mutex // guards time keeping
	delta     float64
	frame     int64
}

// Option configures a runtime.
type Option func(*Runtime)

// WithHost sets the host engine. If the host implements Clock, it will be used
// as the runtime's clock as well.
func WithHost(h Host) Option {
	return func(rt *Runtime) {
		rt.Host = h
		if c, ok := h.(Clock); ok && rt.clock == nil {
			rt.clock = c
		}
	}
}

// WithClock sets a clock which overrides the runtime's wall clock.
func WithClock(c Clock) Option {
	return func(rt *Runtime) {
		rt.clock = c
	}
}

// WithOutput redirects the output of `print` and friends.
func WithOutput(w io.Writer) Option {
	return func(rt *Runtime) {
		rt.out = w
	}
}

// WithFS sets the file system resources are loaded from.
func WithFS(fsys fs.FS) Option {
	return func(rt *Runtime) {
		rt.fsys = fsys
	}
}

// WithLoader replaces the default resource loader.
func WithLoader(l Loader) Option {
	return func(rt *Runtime) {
		rt.Resources.loader = l
	}
}

// WithSleep replaces time.Sleep for `wait`.
func WithSleep(sleep func(time.Duration)) Option {
	return func(rt *Runtime) {
		rt.sleep = sleep
	}
}

// WithSeed seeds the random number generator of a runtime.
func WithSeed(seed int64) Option {
	return func(rt *Runtime) {
		rt.rnd = rand.New(rand.NewSource(seed))
	}
}

// New constructs a new runtime environment, initialized with builtins and
// constants in the global scope.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		Host:    NullHost{},
		out:     os.Stdout,
		fsys:    os.DirFS("."),
		sleep:   time.Sleep,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
		timers:  newTimerQueue(),
		Signals: newSignalTable(),
	}
	rt.start = rt.now()
	rt.Resources = newResourceCache(rt)
	for _, opt := range opts {
		opt(rt)
	}
	rt.globals = NewScope("globals", nil)
	rt.Frames = new(FrameStack)
	rt.Frames.PushFrame("global", rt.globals) // connect the global frame with the global scope
	rt.Signals.rt = rt
	rt.defineBuiltins()
	tracer().Debugf("runtime initialized with %d globals", rt.globals.Tags().Size())
	return rt
}

// Globals returns the global scope.
func (rt *Runtime) Globals() *Scope {
	return rt.globals
}

// CurrentScope returns the scope of the innermost call frame.
func (rt *Runtime) CurrentScope() *Scope {
	return rt.Frames.Current().Scope
}

// PushScope pushes a new scope, child of the current scope, within a new call frame.
func (rt *Runtime) PushScope(name string) *Scope {
	sc := NewScope(name, rt.CurrentScope())
	rt.Frames.PushFrame(name, sc)
	return sc
}

// PopScope pops the innermost call frame. The global frame is never popped.
func (rt *Runtime) PopScope() *Scope {
	if rt.Frames.Depth() <= 1 {
		return rt.globals
	}
	return rt.Frames.PopFrame().Scope
}

// Output returns the writer for script output.
func (rt *Runtime) Output() io.Writer {
	return rt.out
}

// FS returns the file system of the runtime.
func (rt *Runtime) FS() fs.FS {
	return rt.fsys
}

// --- Time keeping ----------------------------------------------------------

// Clock is a time source, usually provided by a host engine.
type Clock interface {
	Time() float64  // seconds since start
	Delta() float64 // duration of the last frame
}

// UpdateTime advances the frame counter and records the frame delta.
func (rt *Runtime) UpdateTime(delta float64) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.delta = delta
	rt.frame++
}

// Time returns the seconds since the runtime was started.
func (rt *Runtime) Time() float64 {
	if rt.clock != nil {
		return rt.clock.Time()
	}
	return rt.now().Sub(rt.start).Seconds()
}

// Delta returns the duration of the last frame in seconds.
func (rt *Runtime) Delta() float64 {
	if rt.clock != nil {
		return rt.clock.Delta()
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.delta
}

// FPS returns 1/delta, or 0 if no frame has been recorded.
func (rt *Runtime) FPS() float64 {
	d := rt.Delta()
	if d <= 0 {
		return 0
	}
	return 1 / d
}

// FrameCount returns the number of frames recorded with UpdateTime.
func (rt *Runtime) FrameCount() int64 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.frame
}

// Wait blocks the calling goroutine.
func (rt *Runtime) Wait(seconds float64) {
	if seconds <= 0 {
		return
	}
	rt.sleep(time.Duration(seconds * float64(time.Second)))
}

// --- Classes ---------------------------------------------------------------

// ClassResolver creates script instances for class names. It is installed by
// an inheritance resolver.
type ClassResolver interface {
	CreateInstance(className string, owner Value) (*Instance, error)
	CreateInstanceScope(className string) (*Scope, error)
	IsClass(name string) bool
}

// SetClassResolver installs a class resolver.
func (rt *Runtime) SetClassResolver(r ClassResolver) {
	rt.classes = r
}

// Classes returns the installed class resolver, or nil.
func (rt *Runtime) Classes() ClassResolver {
	return rt.classes
}

// CreateInstance creates a script instance for a class, attached to a host
// node (owner may be nil).
func (rt *Runtime) CreateInstance(className string, owner Value) (*Instance, error) {
	if rt.classes == nil {
		return nil, Errorf("cannot create instance of %s: no class resolver installed", className)
	}
	return rt.classes.CreateInstance(className, owner)
}
