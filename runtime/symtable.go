package runtime

import (
	"fmt"
	"sort"
)

// Symbol table for variables. Symbol tables are attached to scopes.
// Scopes are chained by parent links, ending in the global scope.

// --- Tags -------------------------------------------------------

// Tag is the type of variables stored into symbol tables. Tags are allocated
// once per definition; re-defining a name in the same scope replaces the tag.
type Tag struct {
	name  string
	Value Value
	Const bool
}

// NewTag creates a new tag.
func NewTag(nm string) *Tag {
	return &Tag{name: nm}
}

// WithValue sets the initial value of a tag. Use as
//
//	tag := NewTag("myTag").WithValue(int64(7))
func (t *Tag) WithValue(v Value) *Tag {
	t.Value = v
	return t
}

// String is a debug Stringer for tags.
func (t *Tag) String() string {
	return fmt.Sprintf("<tag '%s'=%s>", t.name, Repr(t.Value))
}

// Name gets the tag's name.
func (t *Tag) Name() string {
	return t.name
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store tags (map-like semantics).
type SymbolTable struct {
	Table map[string]*Tag
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{Table: make(map[string]*Tag)}
}

// ResolveTag checks for a tag in the symbol table.
// Returns a tag or nil.
func (t *SymbolTable) ResolveTag(tagname string) *Tag {
	return t.Table[tagname]
}

// DefineTag creates a new tag to store into the symbol table.
// Overwrites existing tag with this name, if any.
// Returns the new tag and the previously stored tag (or nil).
func (t *SymbolTable) DefineTag(tagname string) (*Tag, *Tag) {
	if len(tagname) == 0 {
		return nil, nil
	}
	tag := NewTag(tagname)
	old := t.InsertTag(tag)
	return tag, old
}

// InsertTag inserts a pre-created tag.
func (t *SymbolTable) InsertTag(tag *Tag) *Tag {
	old := t.ResolveTag(tag.name)
	t.Table[tag.name] = tag
	return old
}

// Size counts the tags in a symbol table.
func (t *SymbolTable) Size() int {
	return len(t.Table)
}

// Names returns the names of all tags, sorted.
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.Table))
	for k := range t.Table {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Each iterates over each tag in the table, in name order.
func (t *SymbolTable) Each(mapper func(string, *Tag)) {
	for _, k := range t.Names() {
		mapper(k, t.Table[k])
	}
}

// === Scopes ================================================================

// Scope is a named scope, which may contain symbol definitions. Scopes link back to a
// parent scope, forming a chain.
type Scope struct {
	Name   string
	Parent *Scope
	symtab *SymbolTable
}

// NewScope creates a new scope.
func NewScope(nm string, parent *Scope) *Scope {
	sc := &Scope{
		Name:   nm,
		Parent: parent,
		symtab: NewSymbolTable(),
	}
	return sc
}

// Prettyfied Stringer.
func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s>", s.Name)
}

// Tags returns the symbol table of a scope.
func (s *Scope) Tags() *SymbolTable {
	return s.symtab
}

// Define defines a variable in the scope, shadowing outer definitions of
// the same name. Returns the new tag.
func (s *Scope) Define(name string, v Value) *Tag {
	tag, _ := s.symtab.DefineTag(name)
	tag.Value = v
	return tag
}

// DefineConst defines a constant in the scope.
func (s *Scope) DefineConst(name string, v Value) *Tag {
	tag := s.Define(name, v)
	tag.Const = true
	return tag
}

// Has checks if a name is defined in this scope, without looking at parents.
func (s *Scope) Has(name string) bool {
	return s.symtab.ResolveTag(name) != nil
}

// ResolveTag finds a tag. Returns the tag (or nil) and a scope. The scope is
// the scope (of the scope chain) the tag was found in.
func (s *Scope) ResolveTag(tagname string) (*Tag, *Scope) {
	for sc := s; sc != nil; sc = sc.Parent {
		if tag := sc.symtab.ResolveTag(tagname); tag != nil {
			return tag, sc
		}
	}
	return nil, nil
}

// Lookup finds the value of a name along the scope chain.
func (s *Scope) Lookup(name string) (Value, bool) {
	tag, _ := s.ResolveTag(name)
	if tag == nil {
		return nil, false
	}
	return tag.Value, true
}

// Get finds the value of a name along the scope chain and fails for undefined names.
func (s *Scope) Get(name string) (Value, error) {
	if v, ok := s.Lookup(name); ok {
		return v, nil
	}
	return nil, Errorf("undefined variable '%s'", name)
}

// Assign sets the value of a name in the scope where it is defined. If it is
// not defined anywhere along the chain, it is defined in this scope.
// Assigning to a constant is an error.
func (s *Scope) Assign(name string, v Value) error {
	tag, _ := s.ResolveTag(name)
	if tag == nil {
		s.Define(name, v)
		return nil
	}
	if tag.Const {
		return Errorf("cannot assign to constant '%s'", name)
	}
	tag.Value = v
	return nil
}
