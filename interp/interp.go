/*
Package interp implements a tree-walking interpreter for LSC programs.

Programs and blocks are executed in two passes: declarations of functions,
classes, signals and enums run first, so they may be referenced before the
place they are defined at. All other statements run in a second pass, in
source order.

Undefined identifiers are a soft failure by default: a small table of
well-known engine properties provides default values, everything else
evaluates to null with an error message in the trace. Setting the
configuration key `lsc.strict-identifiers` turns undefined identifiers into
runtime errors.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package interp

import (
	"errors"
	"fmt"

	"github.com/npillmayer/lsc/ast"
	"github.com/npillmayer/lsc/exports"
	"github.com/npillmayer/lsc/parser"
	"github.com/npillmayer/lsc/runtime"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lsc.interp'.
func tracer() tracing.Trace {
	return tracing.Select("lsc.interp")
}

// DefaultMaxCallDepth is used if no call depth limit is configured.
const DefaultMaxCallDepth = 256

// Interpreter executes LSC programs within a runtime environment.
type Interpreter struct {
	rt       *runtime.Runtime
	strict   bool
	maxDepth int
	exports  *exports.Registry // used if an ExecContext does not carry a registry
}

// ExecContext carries the per-class state of an execution: the `super`
// proxy for functions defined while executing, and the registry export
// declarations go to.
type ExecContext struct {
	Super   runtime.Value
	Exports *exports.Registry
}

// Option configures an interpreter.
type Option func(*Interpreter)

// StrictIdentifiers overrides configuration key `lsc.strict-identifiers`.
func StrictIdentifiers(strict bool) Option {
	return func(intp *Interpreter) {
		intp.strict = strict
	}
}

// MaxCallDepth overrides configuration key `lsc.max-call-depth`.
func MaxCallDepth(depth int) Option {
	return func(intp *Interpreter) {
		if depth > 0 {
			intp.maxDepth = depth
		}
	}
}

// New creates an interpreter for a runtime environment.
func New(rt *runtime.Runtime, opts ...Option) *Interpreter {
	intp := &Interpreter{
		rt:       rt,
		strict:   gconf.GetBool("lsc.strict-identifiers"),
		maxDepth: gconf.GetInt("lsc.max-call-depth"),
		exports:  exports.NewRegistry(),
	}
	if intp.maxDepth <= 0 {
		intp.maxDepth = DefaultMaxCallDepth
	}
	for _, opt := range opts {
		opt(intp)
	}
	return intp
}

// Runtime returns the runtime environment of the interpreter.
func (intp *Interpreter) Runtime() *runtime.Runtime {
	return intp.rt
}

// Exports returns the registry export declarations go to, if no other
// registry has been given with ExecuteWith.
func (intp *Interpreter) Exports() *exports.Registry {
	return intp.exports
}

func (intp *Interpreter) registry(ctx ExecContext) *exports.Registry {
	if ctx.Exports != nil {
		return ctx.Exports
	}
	return intp.exports
}

// --- Control flow ----------------------------------------------------------

var (
	errBreak    = errors.New("'break' outside loop")
	errContinue = errors.New("'continue' outside loop")
)

// returnSignal unwinds the Go stack up to the function call frame.
type returnSignal struct {
	value runtime.Value
}

func (r *returnSignal) Error() string {
	return "'return' outside function"
}

// escaped converts control flow signals which escaped their construct into
// runtime errors.
func escaped(err error) error {
	if errors.Is(err, errBreak) || errors.Is(err, errContinue) {
		return &runtime.RuntimeError{Msg: err.Error(), Cause: err}
	}
	return err
}

// --- Entry points ----------------------------------------------------------

// SourceError reports the syntax errors of a script, together with the error
// which stopped the execution of the statements that parsed, if any.
type SourceError struct {
	Syntax parser.ParseErrors
	Exec   error
}

func (e *SourceError) Error() string {
	if e.Exec == nil {
		return e.Syntax.Error()
	}
	return fmt.Sprintf("%v; %v", e.Syntax, e.Exec)
}

// Unwrap gives access to the syntax errors.
func (e *SourceError) Unwrap() error {
	return e.Syntax
}

// Execute runs a program in a scope. A nil scope denotes the global scope.
func (intp *Interpreter) Execute(prog *ast.Program, scope *runtime.Scope) error {
	_, err := intp.run(prog, scope, ExecContext{})
	return err
}

// ExecuteWith runs a program in a scope, with a given `super` proxy and
// export registry. If ctx.Super is set, it is bound to `super` in the scope.
func (intp *Interpreter) ExecuteWith(prog *ast.Program, scope *runtime.Scope, ctx ExecContext) error {
	if scope != nil && ctx.Super != nil {
		scope.Define("super", ctx.Super)
	}
	_, err := intp.run(prog, scope, ctx)
	return err
}

// Run parses and executes source code in a scope and returns the value of
// the last expression statement. Statements with syntax errors are skipped,
// everything else runs; syntax errors are reported as a *SourceError.
func (intp *Interpreter) Run(source string, scope *runtime.Scope) (runtime.Value, error) {
	prog, err := parser.ParseString(source)
	var perrs parser.ParseErrors
	if err != nil {
		tracer().Errorf("%v", err)
		if !errors.As(err, &perrs) || prog == nil {
			return nil, err
		}
	}
	v, err := intp.run(prog, scope, ExecContext{})
	if len(perrs) > 0 {
		return v, &SourceError{Syntax: perrs, Exec: err}
	}
	return v, err
}

// run executes the statements of a program. Panics are converted into
// runtime errors.
func (intp *Interpreter) run(prog *ast.Program, scope *runtime.Scope, ctx ExecContext) (v runtime.Value, err error) {
	if prog == nil {
		return nil, nil
	}
	if scope == nil {
		scope = intp.rt.Globals()
	}
	if scope != intp.rt.CurrentScope() {
		intp.rt.Frames.PushFrame(scope.Name, scope)
		defer intp.rt.Frames.PopFrame()
	}
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, runtime.Recovered(r)
			tracer().Errorf("%v", err)
		}
	}()
	v, err = intp.execBlock(prog.Statements, scope, ctx)
	if r, ok := err.(*returnSignal); ok {
		return r.value, nil
	}
	return v, escaped(err)
}

// ExecuteSource parses and runs source code in the global scope of a
// runtime.
func ExecuteSource(source string, rt *runtime.Runtime) error {
	_, err := New(rt).Run(source, nil)
	return err
}

// --- Helpers ---------------------------------------------------------------

func errorAt(node ast.Node, format string, args ...interface{}) *runtime.RuntimeError {
	return runtime.ErrorAt(node.Pos(), format, args...)
}

// located attaches a source position to runtime errors without one.
func located(err error, node ast.Node) error {
	var rterr *runtime.RuntimeError
	if errors.As(err, &rterr) {
		rterr.WithPos(node.Pos())
	}
	return err
}

func where(node ast.Node) string {
	pos := node.Pos()
	return fmt.Sprintf("line %d", pos.Line)
}
