package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lsc/ast"
	"github.com/npillmayer/lsc/exports"
	"github.com/npillmayer/lsc/runtime"
	"github.com/pterm/pterm"
)

// astTree creates a tree for displaying a program on a terminal.
func astTree(prog *ast.Program) pterm.TreeNode {
	ll := leveledNode(prog, pterm.LeveledList{}, 0)
	tracer().Debugf("|ll| = %d", len(ll))
	return pterm.NewTreeFromLeveledList(ll)
}

func leveledNode(n ast.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	ll = append(ll, pterm.LeveledListItem{
		Level: level,
		Text:  nodeLabel(n),
	})
	for _, child := range ast.Children(n) {
		ll = leveledNode(child, ll, level+1)
	}
	return ll
}

func nodeLabel(n ast.Node) string {
	kind := strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
	switch x := n.(type) {
	case *ast.Literal:
		return kind + " " + ast.FormatValue(x.Value)
	case *ast.Identifier:
		return kind + " " + x.Name
	case *ast.NodePath:
		return kind + " $" + x.Path
	case *ast.BinaryOp:
		return fmt.Sprintf("%s %v", kind, x.Op)
	case *ast.UnaryOp:
		return fmt.Sprintf("%s %v", kind, x.Op)
	case *ast.Assign:
		return fmt.Sprintf("%s %v", kind, x.Op)
	case *ast.MemberAccess:
		return kind + " ." + x.Member
	case *ast.VarDecl:
		if x.Const {
			return "Const " + x.Name
		}
		return kind + " " + x.Name
	case *ast.For:
		return kind + " " + x.Var
	case *ast.FuncDef:
		params := make([]string, len(x.Params))
		for i, p := range x.Params {
			params[i] = p.Name
		}
		return fmt.Sprintf("%s %s(%s)", kind, x.Name, strings.Join(params, ", "))
	case *ast.ClassDef:
		if x.Base != "" {
			return kind + " " + x.Name + " extends " + x.Base
		}
		return kind + " " + x.Name
	case *ast.SignalDecl:
		return kind + " " + x.Name
	case *ast.EnumDecl:
		return fmt.Sprintf("%s %s {%s}", kind, x.Name, strings.Join(x.Values, ", "))
	case *ast.ExportGroup:
		return kind + " " + x.Name
	case *ast.Extends:
		return kind + " " + x.Base
	case *ast.Program:
		if x.Extends != "" {
			return kind + " extends " + x.Extends
		}
	}
	return kind
}

// scopeTree lists the variables of a scope, sorted by name.
func scopeTree(sc *runtime.Scope) pterm.TreeNode {
	ll := pterm.LeveledList{{Level: 0, Text: sc.Name}}
	for _, name := range sc.Tags().Names() {
		v, _ := sc.Lookup(name)
		ll = append(ll, pterm.LeveledListItem{
			Level: 1,
			Text:  fmt.Sprintf("%s = %s", name, runtime.Repr(v)),
		})
	}
	return pterm.NewTreeFromLeveledList(ll)
}

// exportsTree lists export variables by group. Ungrouped variables come
// first.
func exportsTree(reg *exports.Registry) pterm.TreeNode {
	ll := pterm.LeveledList{{Level: 0, Text: fmt.Sprintf("exports [%s]", reg.Fingerprint())}}
	for _, v := range reg.Ungrouped() {
		ll = append(ll, exportItem(v, 1))
	}
	for _, g := range reg.Groups() {
		ll = append(ll, pterm.LeveledListItem{Level: 1, Text: "group " + g.Name})
		for _, v := range g.Variables {
			ll = append(ll, exportItem(v, 2))
		}
	}
	return pterm.NewTreeFromLeveledList(ll)
}

func exportItem(v *exports.Variable, level int) pterm.LeveledListItem {
	text := fmt.Sprintf("%s: %s = %s", v.Name, v.Type, runtime.Repr(runtime.FromComponents(v.Value)))
	if v.Hint != "" {
		text += fmt.Sprintf(" (%s)", v.Hint)
	}
	return pterm.LeveledListItem{Level: level, Text: text}
}
