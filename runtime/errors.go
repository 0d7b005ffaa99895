package runtime

import (
	"fmt"

	"github.com/npillmayer/lsc"
)

// RuntimeError is an error raised during script execution.
type RuntimeError struct {
	Msg   string
	Pos   lsc.Position
	Cause error
}

// Errorf creates a runtime error without position.
func Errorf(format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...)}
}

// ErrorAt creates a runtime error at a source position.
func ErrorAt(pos lsc.Position, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...), Pos: pos}
}

func (e *RuntimeError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("runtime error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
	}
	return "runtime error: " + e.Msg
}

func (e *RuntimeError) Unwrap() error {
	return e.Cause
}

// WithPos sets the position of an error, if it does not have one yet.
func (e *RuntimeError) WithPos(pos lsc.Position) *RuntimeError {
	if !e.Pos.IsValid() {
		e.Pos = pos
	}
	return e
}

// Recovered converts a recovered panic value into an error.
func Recovered(r interface{}) error {
	switch x := r.(type) {
	case *RuntimeError:
		return x
	case error:
		return &RuntimeError{Msg: x.Error(), Cause: x}
	}
	return Errorf("%v", r)
}
