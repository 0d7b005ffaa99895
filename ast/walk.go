package ast

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// of node with the visitor w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range Children(node) {
		Walk(v, child)
	}
	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses an AST in depth-first order, calling f for every node.
// If f returns true, Inspect descends into the children of the node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Children returns the direct child nodes of a node, in source order.
func Children(node Node) []Node {
	var c []Node
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if n != nil {
				c = append(c, n)
			}
		}
	}
	addStmts := func(stmts []Statement) {
		for _, s := range stmts {
			c = append(c, s)
		}
	}
	addExprs := func(list []Expression) {
		for _, e := range list {
			add(e)
		}
	}
	switch n := node.(type) {
	case *Program:
		addStmts(n.Statements)
	case *BinaryOp:
		add(n.Left, n.Right)
	case *UnaryOp:
		add(n.Operand)
	case *TernaryOp:
		add(n.Cond, n.Then, n.Else)
	case *Call:
		add(n.Callee)
		addExprs(n.Args)
	case *MemberAccess:
		add(n.Object)
	case *IndexAccess:
		add(n.Object, n.Index)
	case *ArrayLiteral:
		addExprs(n.Elements)
	case *DictLiteral:
		for _, p := range n.Pairs {
			add(p.Key, p.Value)
		}
	case *ExprStmt:
		add(n.Expr)
	case *VarDecl:
		add(n.Value)
	case *Assign:
		add(n.Target, n.Value)
	case *If:
		add(n.Cond)
		addStmts(n.Then)
		for _, elif := range n.Elifs {
			add(elif.Cond)
			addStmts(elif.Body)
		}
		addStmts(n.Else)
	case *While:
		add(n.Cond)
		addStmts(n.Body)
	case *DoWhile:
		addStmts(n.Body)
		add(n.Cond)
	case *For:
		add(n.Iterable)
		addStmts(n.Body)
	case *Return:
		add(n.Value)
	case *FuncDef:
		for _, p := range n.Params {
			add(p.Default)
		}
		addStmts(n.Body)
	case *ClassDef:
		addStmts(n.Body)
	case *ExportDecl:
		if n.Var != nil {
			add(n.Var)
		}
	}
	return c
}
