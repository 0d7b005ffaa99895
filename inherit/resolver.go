package inherit

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"

	"github.com/npillmayer/lsc/ast"
	"github.com/npillmayer/lsc/exports"
	"github.com/npillmayer/lsc/interp"
	"github.com/npillmayer/lsc/parser"
	"github.com/npillmayer/lsc/runtime"
)

// DefaultSearchDirs are the project directories searched for class scripts.
var DefaultSearchDirs = []string{
	"nodes/base",
	"nodes/node2d",
	"nodes/ui",
	"nodes/audio",
	"nodes/prefabs",
}

// ScriptExt is the file extension of class scripts.
const ScriptExt = ".lsc"

// builtinClasses lists the engine classes with their base class. Bases
// precede the classes extending them.
var builtinClasses = []struct{ name, base string }{
	{"Node", ""},
	{"Node2D", "Node"},
	{"Control", "Node"},
	{"KinematicBody2D", "Node2D"},
	{"RigidBody2D", "Node2D"},
	{"StaticBody2D", "Node2D"},
	{"Area2D", "Node2D"},
	{"Sprite", "Node2D"},
	{"AnimatedSprite", "Node2D"},
	{"Camera2D", "Node2D"},
}

var extendsPattern = regexp.MustCompile(`(?m)^\s*extends\s+(\w+)`)

// Resolver resolves class names to class records and creates script
// instances. It implements runtime.ClassResolver.
type Resolver struct {
	rt       *runtime.Runtime
	intp     *interp.Interpreter
	fsys     fs.FS
	dirs     []string
	classes  map[string]*ClassRecord
	sources  map[string]string       // script path -> source text
	programs map[string]*ast.Program // script path -> parsed script
}

var _ runtime.ClassResolver = (*Resolver)(nil)

// Option configures a resolver.
type Option func(*Resolver)

// SearchDirs replaces the default search directories for class scripts.
func SearchDirs(dirs ...string) Option {
	return func(r *Resolver) {
		r.dirs = dirs
	}
}

// NewResolver creates a resolver for a runtime. Scripts are executed by intp
// and read from fsys, which is usually rooted at the project directory. fsys
// may be nil, leaving only the built-in classes.
func NewResolver(rt *runtime.Runtime, intp *interp.Interpreter, fsys fs.FS, opts ...Option) *Resolver {
	r := &Resolver{
		rt:       rt,
		intp:     intp,
		fsys:     fsys,
		dirs:     DefaultSearchDirs,
		classes:  make(map[string]*ClassRecord),
		sources:  make(map[string]string),
		programs: make(map[string]*ast.Program),
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, b := range builtinClasses {
		rec := newRecord(b.name, r.classes[b.base])
		rec.Builtin = true
		r.classes[b.name] = rec
	}
	return r
}

// Install registers the resolver as the class resolver of its runtime.
func (r *Resolver) Install() *Resolver {
	r.rt.SetClassResolver(r)
	return r
}

// IsClass is part of interface runtime.ClassResolver.
func (r *Resolver) IsClass(name string) bool {
	if _, ok := r.classes[name]; ok {
		return true
	}
	p, _ := r.findScript(name)
	return p != ""
}

// Known returns the names of all classes resolved so far, sorted.
func (r *Resolver) Known() []string {
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ScriptCache returns a copy of the cache of script sources, keyed by path.
func (r *Resolver) ScriptCache() map[string]string {
	cache := make(map[string]string, len(r.sources))
	for p, src := range r.sources {
		cache[p] = src
	}
	return cache
}

// ResolveClass resolves a class and its ancestors. Resolved classes are
// cached. A circular chain of `extends` yields a *CircularInheritanceError.
func (r *Resolver) ResolveClass(name string) (rec *ClassRecord, err error) {
	defer func() {
		if x := recover(); x != nil {
			rec, err = nil, runtime.Recovered(x)
			tracer().Errorf("resolving class %s: %v", name, err)
		}
	}()
	return r.resolve(name, nil)
}

// resolve is called with the chain of classes being resolved, derived
// first.
func (r *Resolver) resolve(name string, visiting []string) (*ClassRecord, error) {
	for i, n := range visiting {
		if n == name {
			chain := append(append([]string{}, visiting[i:]...), name)
			err := &CircularInheritanceError{Chain: chain}
			tracer().Errorf("%v", err)
			return nil, err
		}
	}
	if rec, ok := r.classes[name]; ok {
		return rec, nil
	}
	scriptPath, searched := r.findScript(name)
	if scriptPath == "" {
		err := &ClassNotFoundError{Name: name, Searched: searched}
		tracer().Infof("%v", err)
		return nil, err
	}
	prog, err := r.load(scriptPath)
	if err != nil {
		return nil, err
	}
	var base *ClassRecord
	if baseName := r.baseOf(scriptPath); baseName != "" {
		tracer().Debugf("class %s extends %s", name, baseName)
		if base, err = r.resolve(baseName, append(visiting, name)); err != nil {
			return nil, fmt.Errorf("class %s: %w", name, err)
		}
	}
	rec := newRecord(name, base)
	rec.ScriptPath = scriptPath
	if err := r.harvest(rec, prog); err != nil {
		return nil, err
	}
	r.classes[name] = rec
	tracer().Infof("resolved class %v", rec)
	return rec, nil
}

// harvest executes the script of a class into a scope chained under an
// instance scope of its base, and records the script's definitions.
func (r *Resolver) harvest(rec *ClassRecord, prog *ast.Program) error {
	baseScope := runtime.NewScope(rec.Name+".base", r.rt.Globals())
	if rec.Base != nil {
		if err := r.replay(rec.Base, baseScope, exports.NewRegistry()); err != nil {
			return err
		}
	}
	sc := runtime.NewScope(rec.Name, baseScope)
	ctx := interp.ExecContext{Super: runtime.NewSuper(rec.Name, baseScope), Exports: exports.NewRegistry()}
	if err := r.intp.ExecuteWith(prog, sc, ctx); err != nil {
		return fmt.Errorf("class %s: %w", rec.Name, err)
	}
	rec.Scope = sc
	sc.Tags().Each(func(name string, tag *runtime.Tag) {
		if name == "super" || name == "self" {
			return
		}
		if m, ok := tag.Value.(runtime.Callable); ok {
			rec.Methods[name] = m
		} else {
			rec.Properties[name] = tag.Value
		}
	})
	return nil
}

// CreateInstanceScope is part of interface runtime.ClassResolver. It replays
// the scripts of the class chain, base first, into a new scope.
func (r *Resolver) CreateInstanceScope(name string) (sc *runtime.Scope, err error) {
	defer func() {
		if x := recover(); x != nil {
			sc, err = nil, runtime.Recovered(x)
			tracer().Errorf("creating scope for class %s: %v", name, err)
		}
	}()
	rec, err := r.resolve(name, nil)
	if err != nil {
		return nil, err
	}
	sc = runtime.NewScope(name, r.rt.Globals())
	if err := r.replay(rec, sc, exports.NewRegistry()); err != nil {
		return nil, err
	}
	return sc, nil
}

// CreateInstance is part of interface runtime.ClassResolver. `self` is bound
// to the new instance before any script of the chain runs.
func (r *Resolver) CreateInstance(name string, owner runtime.Value) (inst *runtime.Instance, err error) {
	defer func() {
		if x := recover(); x != nil {
			inst, err = nil, runtime.Recovered(x)
			tracer().Errorf("creating instance of %s: %v", name, err)
		}
	}()
	rec, err := r.resolve(name, nil)
	if err != nil {
		return nil, err
	}
	sc := runtime.NewScope(name, r.rt.Globals())
	inst = runtime.NewInstance(r.rt, name, sc, owner)
	inst.Chain = rec.ChainNames()
	sc.Define("self", inst)
	if err := r.replay(rec, sc, inst.Exports); err != nil {
		return nil, err
	}
	tracer().Debugf("created instance of %v", rec)
	return inst, nil
}

func (r *Resolver) replay(rec *ClassRecord, sc *runtime.Scope, reg *exports.Registry) error {
	for _, cls := range rec.Chain() {
		if cls.Builtin {
			continue
		}
		prog, err := r.load(cls.ScriptPath)
		if err != nil {
			return err
		}
		ctx := interp.ExecContext{Super: runtime.NewSuper(cls.Name, sc), Exports: reg}
		if err := r.intp.ExecuteWith(prog, sc, ctx); err != nil {
			return fmt.Errorf("class %s: %w", cls.Name, err)
		}
	}
	return nil
}

// --- Scripts ---------------------------------------------------------------

func (r *Resolver) findScript(name string) (string, []string) {
	if r.fsys == nil {
		return "", nil
	}
	searched := make([]string, 0, len(r.dirs))
	for _, dir := range r.dirs {
		p := path.Join(dir, name+ScriptExt)
		searched = append(searched, p)
		if !fs.ValidPath(p) {
			continue
		}
		if fi, err := fs.Stat(r.fsys, p); err == nil && !fi.IsDir() {
			return p, searched
		}
	}
	return "", searched
}

// load reads and parses a script, using the caches. Syntax errors are
// logged; the statements which could be parsed are kept.
func (r *Resolver) load(scriptPath string) (*ast.Program, error) {
	if prog, ok := r.programs[scriptPath]; ok {
		return prog, nil
	}
	src, ok := r.sources[scriptPath]
	if !ok {
		b, err := fs.ReadFile(r.fsys, scriptPath)
		if err != nil {
			return nil, fmt.Errorf("loading class script: %w", err)
		}
		src = string(b)
		r.sources[scriptPath] = src
	}
	prog, err := parser.ParseString(src)
	if prog == nil {
		return nil, fmt.Errorf("%s: %w", scriptPath, err)
	}
	if err != nil {
		tracer().Errorf("%s: %v", scriptPath, err)
	}
	r.programs[scriptPath] = prog
	return prog, nil
}

// baseOf returns the base class named by a script. The top-level `extends`
// clause is authoritative; for scripts where it could not be parsed, the
// source text is searched.
func (r *Resolver) baseOf(scriptPath string) string {
	if prog := r.programs[scriptPath]; prog != nil && prog.Extends != "" {
		return prog.Extends
	}
	if m := extendsPattern.FindStringSubmatch(r.sources[scriptPath]); m != nil {
		return m[1]
	}
	return ""
}
