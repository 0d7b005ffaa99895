/*
Package inherit resolves script classes and their inheritance chains.

A class is either built-in (Node, Node2D, …) or backed by a script file
named after the class, found in one of a fixed set of project directories.
A script names its base class with a top-level `extends` clause. Resolving
a class resolves its base first, then executes the script into a scope
chained under the base's instance scope and records the definitions of the
script in a class record.

Instances are created by replaying the scripts of a class chain, base
first, into one shared scope. Derived definitions thereby shadow base
definitions. While a script is replayed, `super` denotes a proxy for the
methods the class inherits.

	rt := runtime.New()
	r := inherit.NewResolver(rt, interp.New(rt), os.DirFS(projectRoot))
	r.Install()
	player, err := rt.CreateInstance("Player", node)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package inherit

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lsc/runtime"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lsc.inherit'.
func tracer() tracing.Trace {
	return tracing.Select("lsc.inherit")
}

// CircularInheritanceError is returned if a class is its own ancestor.
// Chain lists the classes of the cycle, starting and ending with the same
// class.
type CircularInheritanceError struct {
	Chain []string
}

func (e *CircularInheritanceError) Error() string {
	return "circular inheritance: " + strings.Join(e.Chain, " -> ")
}

// ClassNotFoundError is returned for a class which is neither built-in nor
// backed by a script.
type ClassNotFoundError struct {
	Name     string
	Searched []string
}

func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("class %s not found (searched %s)", e.Name, strings.Join(e.Searched, ", "))
}

// ClassRecord describes a resolved class. Methods and Properties hold the
// definitions of the class's own script, not those of its ancestors.
type ClassRecord struct {
	Name       string
	Base       *ClassRecord
	Methods    map[string]runtime.Callable
	Properties map[string]runtime.Value
	ScriptPath string         // empty for built-in classes
	Scope      *runtime.Scope // scope the class's own script ran in
	Builtin    bool
}

func newRecord(name string, base *ClassRecord) *ClassRecord {
	return &ClassRecord{
		Name:       name,
		Base:       base,
		Methods:    make(map[string]runtime.Callable),
		Properties: make(map[string]runtime.Value),
	}
}

func (c *ClassRecord) String() string {
	return "<class " + strings.Join(c.ChainNames(), " < ") + ">"
}

// Method finds a method in the class or its nearest ancestor defining it.
func (c *ClassRecord) Method(name string) (runtime.Callable, bool) {
	for cls := c; cls != nil; cls = cls.Base {
		if m, ok := cls.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// Property finds a property in the class or its nearest ancestor defining it.
func (c *ClassRecord) Property(name string) (runtime.Value, bool) {
	for cls := c; cls != nil; cls = cls.Base {
		if v, ok := cls.Properties[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// AllMethods collects the methods of the whole chain. Derived methods
// shadow base methods.
func (c *ClassRecord) AllMethods() map[string]runtime.Callable {
	all := make(map[string]runtime.Callable)
	for _, cls := range c.Chain() {
		for name, m := range cls.Methods {
			all[name] = m
		}
	}
	return all
}

// Chain returns the class records of the inheritance chain, base first.
func (c *ClassRecord) Chain() []*ClassRecord {
	var chain []*ClassRecord
	for cls := c; cls != nil; cls = cls.Base {
		chain = append(chain, cls)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// ChainNames returns the class names of the inheritance chain, base first.
func (c *ClassRecord) ChainNames() []string {
	chain := c.Chain()
	names := make([]string, len(chain))
	for i, cls := range chain {
		names[i] = cls.Name
	}
	return names
}

// IsA checks if a class is the record's class or one of its ancestors.
func (c *ClassRecord) IsA(name string) bool {
	for cls := c; cls != nil; cls = cls.Base {
		if cls.Name == name {
			return true
		}
	}
	return false
}
