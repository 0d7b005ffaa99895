package ast

import (
	"strconv"
	"strings"
)

// Nodes print themselves as S-expressions, e.g. `(+ 2 (* 3 4))`.

func sexpr(head string, parts ...string) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(head)
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(p)
	}
	b.WriteByte(')')
	return b.String()
}

func exprs(list []Expression) []string {
	s := make([]string, len(list))
	for i, e := range list {
		s[i] = str(e)
	}
	return s
}

func str(n Node) string {
	if n == nil {
		return "nil"
	}
	return n.String()
}

func block(stmts []Statement) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = s.String()
	}
	return sexpr("block", parts...)
}

// FormatValue formats a literal value the way it would appear in source.
func FormatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		s := strconv.FormatFloat(x, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0"
		}
		return s
	}
	return "?"
}

func (l *Literal) String() string    { return FormatValue(l.Value) }
func (i *Identifier) String() string { return i.Name }
func (n *NodePath) String() string   { return "$" + strconv.Quote(n.Path) }

func (b *BinaryOp) String() string {
	return sexpr(b.Op.String(), str(b.Left), str(b.Right))
}

func (u *UnaryOp) String() string {
	return sexpr(u.Op.String(), str(u.Operand))
}

func (t *TernaryOp) String() string {
	return sexpr("?", str(t.Cond), str(t.Then), str(t.Else))
}

func (c *Call) String() string {
	return sexpr("call", append([]string{str(c.Callee)}, exprs(c.Args)...)...)
}

func (m *MemberAccess) String() string {
	return sexpr(".", str(m.Object), m.Member)
}

func (x *IndexAccess) String() string {
	return sexpr("[]", str(x.Object), str(x.Index))
}

func (a *ArrayLiteral) String() string {
	return sexpr("array", exprs(a.Elements)...)
}

func (d *DictLiteral) String() string {
	parts := make([]string, len(d.Pairs))
	for i, p := range d.Pairs {
		parts[i] = sexpr(":", str(p.Key), str(p.Value))
	}
	return sexpr("dict", parts...)
}

func (s *ExprStmt) String() string { return str(s.Expr) }

func (v *VarDecl) String() string {
	head := "var"
	if v.Const {
		head = "const"
	}
	var val string
	if v.Value != nil {
		val = str(v.Value)
	}
	return sexpr(head, v.Name, v.TypeHint, val)
}

func (a *Assign) String() string {
	return sexpr(a.Op.String(), str(a.Target), str(a.Value))
}

func (s *If) String() string {
	parts := []string{str(s.Cond), block(s.Then)}
	for _, elif := range s.Elifs {
		parts = append(parts, sexpr("elif", str(elif.Cond), block(elif.Body)))
	}
	if s.Else != nil {
		parts = append(parts, sexpr("else", block(s.Else)))
	}
	return sexpr("if", parts...)
}

func (w *While) String() string   { return sexpr("while", str(w.Cond), block(w.Body)) }
func (d *DoWhile) String() string { return sexpr("do", block(d.Body), str(d.Cond)) }
func (f *For) String() string     { return sexpr("for", f.Var, str(f.Iterable), block(f.Body)) }
func (*Break) String() string     { return "(break)" }
func (*Continue) String() string  { return "(continue)" }
func (*Pass) String() string      { return "(pass)" }

func (r *Return) String() string {
	if r.Value == nil {
		return "(return)"
	}
	return sexpr("return", str(r.Value))
}

func (f *FuncDef) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		if p.Default != nil {
			params[i] = sexpr("=", p.Name, str(p.Default))
		} else {
			params[i] = p.Name
		}
	}
	head := "func"
	if f.Static {
		head = "static-func"
	}
	return sexpr(head, f.Name, sexpr("params", params...), block(f.Body))
}

func (c *ClassDef) String() string {
	var base string
	if c.Base != "" {
		base = sexpr("extends", c.Base)
	}
	return sexpr("class", c.Name, base, block(c.Body))
}

func (e *ExportDecl) String() string {
	var typ string
	if e.ExportType != "" {
		typ = sexpr("type", e.ExportType, strconv.Quote(e.Hint))
	}
	return sexpr("export", typ, str(e.Var))
}

func (g *ExportGroup) String() string {
	return sexpr("export_group", strconv.Quote(g.Name), strconv.Quote(g.Prefix))
}

func (s *SignalDecl) String() string {
	return sexpr("signal", append([]string{s.Name}, s.Params...)...)
}

func (e *EnumDecl) String() string {
	return sexpr("enum", append([]string{e.Name}, e.Values...)...)
}

func (e *Extends) String() string { return sexpr("extends", e.Base) }

func (p *Program) String() string {
	return block(p.Statements)
}
