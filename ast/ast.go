/*
Package ast defines the abstract syntax tree of LSC.

Expression and statement nodes form closed sets: every node type implements
either Expression or Statement, and consumers type-switch over them. Every
node carries the source position of its first token.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package ast

import "github.com/npillmayer/lsc"

// Node is the common interface of all AST nodes.
type Node interface {
	Pos() lsc.Position
	String() string
}

// Expression is a node producing a value.
type Expression interface {
	Node
	exprNode()
}

// Statement is a node executed for its effect.
type Statement interface {
	Node
	stmtNode()
}

// Loc is embedded into every node.
type Loc struct {
	At lsc.Position
}

// Pos returns the source position of a node.
func (l Loc) Pos() lsc.Position { return l.At }

// At creates a Loc for a position.
func At(pos lsc.Position) Loc {
	return Loc{At: pos}
}

// --- Expressions -----------------------------------------------------------

// Literal is a number, string, boolean or null literal. Value is one of int64,
// float64, string, bool or nil.
type Literal struct {
	Loc
	Value interface{}
}

// Identifier references a name.
type Identifier struct {
	Loc
	Name string
}

// BinaryOp is an infix operation. `&&` and `||` are stored as AND and OR.
type BinaryOp struct {
	Loc
	Op          lsc.TokType
	Left, Right Expression
}

// UnaryOp is a prefix operation. `!` is stored as NOT.
type UnaryOp struct {
	Loc
	Op      lsc.TokType
	Operand Expression
}

// TernaryOp is `cond ? a : b`.
type TernaryOp struct {
	Loc
	Cond, Then, Else Expression
}

// Call is a function or method call.
type Call struct {
	Loc
	Callee Expression
	Args   []Expression
}

// MemberAccess is `object.member`.
type MemberAccess struct {
	Loc
	Object Expression
	Member string
}

// IndexAccess is `object[index]`.
type IndexAccess struct {
	Loc
	Object, Index Expression
}

// ArrayLiteral is `[a, b, …]`.
type ArrayLiteral struct {
	Loc
	Elements []Expression
}

// DictPair is a key/value entry of a dictionary literal.
type DictPair struct {
	Key, Value Expression
}

// DictLiteral is `{k: v, …}`, with entries in source order.
type DictLiteral struct {
	Loc
	Pairs []DictPair
}

// NodePath is `$Name`, `$A/B` or `$"path"`.
type NodePath struct {
	Loc
	Path string
}

func (*Literal) exprNode()      {}
func (*Identifier) exprNode()   {}
func (*BinaryOp) exprNode()     {}
func (*UnaryOp) exprNode()      {}
func (*TernaryOp) exprNode()    {}
func (*Call) exprNode()         {}
func (*MemberAccess) exprNode() {}
func (*IndexAccess) exprNode()  {}
func (*ArrayLiteral) exprNode() {}
func (*DictLiteral) exprNode()  {}
func (*NodePath) exprNode()     {}

// --- Statements ------------------------------------------------------------

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	Loc
	Expr Expression
}

// VarDecl is `var name[: Type] [= value]` or `const …`.
type VarDecl struct {
	Loc
	Name     string
	TypeHint string
	Value    Expression // may be nil
	Const    bool
}

// Assign is `target op value`, where op is one of `= += -= *= /= %= **=`.
// Target is an Identifier, MemberAccess or IndexAccess.
type Assign struct {
	Loc
	Target Expression
	Op     lsc.TokType
	Value  Expression
}

// ElifClause is one `elif cond: body` branch.
type ElifClause struct {
	Cond Expression
	Body []Statement
}

// If is `if/elif/else`.
type If struct {
	Loc
	Cond  Expression
	Then  []Statement
	Elifs []ElifClause
	Else  []Statement
}

// While is `while cond: body`.
type While struct {
	Loc
	Cond Expression
	Body []Statement
}

// DoWhile is `do: body while cond`. The body runs at least once.
type DoWhile struct {
	Loc
	Body []Statement
	Cond Expression
}

// For is `for var in iterable: body`.
type For struct {
	Loc
	Var      string
	Iterable Expression
	Body     []Statement
}

// Break leaves the innermost loop.
type Break struct{ Loc }

// Continue starts the next iteration of the innermost loop.
type Continue struct{ Loc }

// Pass does nothing.
type Pass struct{ Loc }

// Return leaves a function, with an optional value.
type Return struct {
	Loc
	Value Expression // may be nil
}

// Param is a function parameter.
type Param struct {
	Name     string
	TypeHint string
	Default  Expression // may be nil
}

// FuncDef is a function or method definition.
type FuncDef struct {
	Loc
	Name       string
	Params     []Param
	ReturnType string
	Body       []Statement
	Static     bool
}

// ClassDef is `[tool] class Name [extends Base]: body`.
type ClassDef struct {
	Loc
	Name string
	Base string
	Body []Statement
	Tool bool
}

// ExportDecl is `export[(type[, "hint"])] var …`.
type ExportDecl struct {
	Loc
	Var        *VarDecl
	ExportType string
	Hint       string
}

// ExportGroup is `export_group("name"[, "prefix"])`.
type ExportGroup struct {
	Loc
	Name   string
	Prefix string
}

// SignalDecl is `signal name[(params)]`.
type SignalDecl struct {
	Loc
	Name   string
	Params []string
}

// EnumDecl is `enum Name {A, B, …}`.
type EnumDecl struct {
	Loc
	Name   string
	Values []string
}

// Extends is a top-level `extends Base`.
type Extends struct {
	Loc
	Base string
}

func (*ExprStmt) stmtNode()    {}
func (*VarDecl) stmtNode()     {}
func (*Assign) stmtNode()      {}
func (*If) stmtNode()          {}
func (*While) stmtNode()       {}
func (*DoWhile) stmtNode()     {}
func (*For) stmtNode()         {}
func (*Break) stmtNode()       {}
func (*Continue) stmtNode()    {}
func (*Pass) stmtNode()        {}
func (*Return) stmtNode()      {}
func (*FuncDef) stmtNode()     {}
func (*ClassDef) stmtNode()    {}
func (*ExportDecl) stmtNode()  {}
func (*ExportGroup) stmtNode() {}
func (*SignalDecl) stmtNode()  {}
func (*EnumDecl) stmtNode()    {}
func (*Extends) stmtNode()     {}

// IsDeclaration is true for statements which are executed in the first pass
// of a block: functions, classes, signals, enums and extends.
func IsDeclaration(s Statement) bool {
	switch s.(type) {
	case *FuncDef, *ClassDef, *SignalDecl, *EnumDecl, *Extends:
		return true
	}
	return false
}

// --- Program ---------------------------------------------------------------

// Program is the root of a parsed script.
type Program struct {
	Statements []Statement
	Extends    string // base class of a top-level `extends`, if any
}

// Pos returns the position of the first statement.
func (p *Program) Pos() lsc.Position {
	if len(p.Statements) == 0 {
		return lsc.Position{Line: 1, Column: 1}
	}
	return p.Statements[0].Pos()
}
