package exports

import (
	"github.com/npillmayer/lsc"
	"github.com/npillmayer/lsc/ast"
	"github.com/npillmayer/lsc/parser"
)

// Scan extracts the export groups and variables of a script without
// executing it. Variables inside a group are returned with their group;
// the second result holds the ungrouped variables. Default values are
// evaluated only if they are constant (literals, negated numbers and math
// type constructors with constant arguments); otherwise the type default is
// used.
//
// Scan returns a parse error together with whatever has been found.
func Scan(source string) ([]*Group, []*Variable, error) {
	prog, err := parser.ParseString(source)
	if prog == nil {
		return nil, nil, err
	}
	reg := NewRegistry()
	collect(reg, prog.Statements)
	var ungrouped []*Variable
	for _, v := range reg.All() {
		if v.Group == "" {
			ungrouped = append(ungrouped, v)
		}
	}
	tracer().Debugf("scanned %d export variables in %d groups", reg.Len(), len(reg.Groups()))
	return reg.Groups(), ungrouped, err
}

func collect(reg *Registry, stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ExportGroup:
			reg.AddGroup(s.Name, s.Prefix)
		case *ast.ExportDecl:
			value, ok := constValue(s.Var.Value)
			if !ok {
				value = TypeDefault(s.Var.TypeHint)
			}
			reg.AddVariable(s.Var.Name, s.Var.TypeHint, value, s.ExportType, s.Hint)
		case *ast.ClassDef:
			collect(reg, s.Body)
		}
	}
}

// constValue evaluates constant default expressions. Math constructors
// yield []float64.
func constValue(expr ast.Expression) (interface{}, bool) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, true
	case *ast.UnaryOp:
		if e.Op != lsc.MINUS {
			return nil, false
		}
		switch x := literal(e.Operand).(type) {
		case int64:
			return -x, true
		case float64:
			return -x, true
		}
	case *ast.ArrayLiteral:
		return numbers(e.Elements)
	case *ast.Call:
		id, ok := e.Callee.(*ast.Identifier)
		if !ok {
			return nil, false
		}
		comps, ok := numbers(e.Args)
		if !ok {
			return nil, false
		}
		switch {
		case (id.Name == "Vector2" || id.Name == "vec2") && len(comps) == 2,
			id.Name == "Vector3" && len(comps) == 3,
			id.Name == "Color" && len(comps) == 4:
			return comps, true
		case id.Name == "Color" && len(comps) == 3:
			return append(comps, 1), true
		}
	}
	return nil, false
}

func literal(expr ast.Expression) interface{} {
	if l, ok := expr.(*ast.Literal); ok {
		return l.Value
	}
	return nil
}

func numbers(exprs []ast.Expression) ([]float64, bool) {
	comps := make([]float64, 0, len(exprs))
	for _, x := range exprs {
		v, ok := constValue(x)
		if !ok {
			return nil, false
		}
		f, ok := toFloat(v)
		if !ok {
			return nil, false
		}
		comps = append(comps, f)
	}
	return comps, true
}
