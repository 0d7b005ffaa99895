package interp

import (
	"github.com/npillmayer/lsc"
	"github.com/npillmayer/lsc/ast"
	"github.com/npillmayer/lsc/exports"
	"github.com/npillmayer/lsc/runtime"
)

// execBlock executes statements in two passes and returns the value of the
// last expression statement.
func (intp *Interpreter) execBlock(stmts []ast.Statement, sc *runtime.Scope, ctx ExecContext) (runtime.Value, error) {
	for _, s := range stmts {
		if ast.IsDeclaration(s) {
			if _, err := intp.exec(s, sc, ctx); err != nil {
				return nil, err
			}
		}
	}
	var last runtime.Value
	for _, s := range stmts {
		if ast.IsDeclaration(s) {
			continue
		}
		v, err := intp.exec(s, sc, ctx)
		if err != nil {
			return nil, err
		}
		if _, ok := s.(*ast.ExprStmt); ok {
			last = v
		}
	}
	return last, nil
}

// exec executes a single statement. Expression statements return their value.
func (intp *Interpreter) exec(stmt ast.Statement, sc *runtime.Scope, ctx ExecContext) (v runtime.Value, err error) {
	defer func() {
		if err != nil {
			err = located(err, stmt)
		}
	}()
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		return intp.eval(s.Expr, sc)
	case *ast.VarDecl:
		return nil, intp.execVarDecl(s, sc)
	case *ast.Assign:
		return nil, intp.execAssign(s, sc)
	case *ast.If:
		return nil, intp.execIf(s, sc, ctx)
	case *ast.While:
		return nil, intp.execWhile(s, sc, ctx)
	case *ast.DoWhile:
		return nil, intp.execDoWhile(s, sc, ctx)
	case *ast.For:
		return nil, intp.execFor(s, sc, ctx)
	case *ast.Break:
		return nil, errBreak
	case *ast.Continue:
		return nil, errContinue
	case *ast.Pass:
		return nil, nil
	case *ast.Return:
		var val runtime.Value
		if s.Value != nil {
			if val, err = intp.eval(s.Value, sc); err != nil {
				return nil, err
			}
		}
		return nil, &returnSignal{value: val}
	case *ast.FuncDef:
		sc.Define(s.Name, intp.newFunction(s, sc, ctx))
		return nil, nil
	case *ast.ClassDef:
		sc.Define(s.Name, &ScriptClass{Def: s, closure: sc, intp: intp})
		tracer().Debugf("defined class %s", s.Name)
		return nil, nil
	case *ast.ExportDecl:
		return nil, intp.execExport(s, sc, ctx)
	case *ast.ExportGroup:
		intp.registry(ctx).AddGroup(s.Name, s.Prefix)
		return nil, nil
	case *ast.SignalDecl:
		intp.rt.Signals.Declare(s.Name)
		sc.Define(s.Name, intp.rt.Signals.Emitter(s.Name))
		return nil, nil
	case *ast.EnumDecl:
		intp.execEnum(s, sc)
		return nil, nil
	case *ast.Extends:
		tracer().Debugf("script extends %s", s.Base)
		return nil, nil
	}
	return nil, errorAt(stmt, "cannot execute statement %s", stmt)
}

func (intp *Interpreter) execVarDecl(s *ast.VarDecl, sc *runtime.Scope) error {
	var v runtime.Value
	if s.Value != nil {
		var err error
		if v, err = intp.eval(s.Value, sc); err != nil {
			return err
		}
	}
	v = runtime.Copy(v)
	if s.Const {
		sc.DefineConst(s.Name, v)
	} else {
		sc.Define(s.Name, v)
	}
	return nil
}

// execExport declares the variable, then registers it with the active export
// registry. Typed exports without a value get the default of their type.
func (intp *Interpreter) execExport(s *ast.ExportDecl, sc *runtime.Scope, ctx ExecContext) error {
	if err := intp.execVarDecl(s.Var, sc); err != nil {
		return err
	}
	v, _ := sc.Lookup(s.Var.Name)
	if v == nil && s.Var.Value == nil {
		if d := exports.TypeDefault(s.Var.TypeHint); d != nil {
			v = runtime.FromComponents(d)
			sc.Define(s.Var.Name, v)
		}
	}
	hint := s.Var.TypeHint
	if hint == "" {
		hint = "auto"
	}
	intp.registry(ctx).AddVariable(s.Var.Name, hint, v, s.ExportType, s.Hint)
	return nil
}

// execEnum defines an ordered dictionary mapping the enum values to their
// index. Anonymous enums define their values as constants.
func (intp *Interpreter) execEnum(s *ast.EnumDecl, sc *runtime.Scope) {
	if s.Name == "" {
		for i, name := range s.Values {
			sc.DefineConst(name, int64(i))
		}
		return
	}
	d := runtime.NewDict()
	for i, name := range s.Values {
		d.Put(name, int64(i))
	}
	sc.Define(s.Name, d)
}

var compoundOps = map[lsc.TokType]lsc.TokType{
	lsc.PLUS_ASSIGN:  lsc.PLUS,
	lsc.MINUS_ASSIGN: lsc.MINUS,
	lsc.MUL_ASSIGN:   lsc.STAR,
	lsc.DIV_ASSIGN:   lsc.SLASH,
	lsc.MOD_ASSIGN:   lsc.PERCENT,
	lsc.POWER_ASSIGN: lsc.POWER,
}

func (intp *Interpreter) execAssign(s *ast.Assign, sc *runtime.Scope) error {
	value, err := intp.eval(s.Value, sc)
	if err != nil {
		return err
	}
	switch t := s.Target.(type) {
	case *ast.Identifier:
		if s.Op != lsc.ASSIGN {
			cur, err := intp.identifier(t, sc)
			if err != nil {
				return err
			}
			if value, err = runtime.Arith(compoundOps[s.Op], cur, value); err != nil {
				return err
			}
		}
		return sc.Assign(t.Name, runtime.Copy(value))
	case *ast.MemberAccess:
		obj, err := intp.eval(t.Object, sc)
		if err != nil {
			return err
		}
		if s.Op != lsc.ASSIGN {
			cur, err := intp.member(obj, t.Member, t)
			if err != nil {
				return err
			}
			if value, err = runtime.Arith(compoundOps[s.Op], cur, value); err != nil {
				return err
			}
		}
		return intp.setMember(obj, t.Member, runtime.Copy(value), t)
	case *ast.IndexAccess:
		obj, err := intp.eval(t.Object, sc)
		if err != nil {
			return err
		}
		index, err := intp.eval(t.Index, sc)
		if err != nil {
			return err
		}
		if s.Op != lsc.ASSIGN {
			cur, err := intp.index(obj, index, t)
			if err != nil {
				return err
			}
			if value, err = runtime.Arith(compoundOps[s.Op], cur, value); err != nil {
				return err
			}
		}
		return intp.setIndex(obj, index, runtime.Copy(value), t)
	}
	return errorAt(s, "invalid assignment target %s", s.Target)
}

func (intp *Interpreter) execIf(s *ast.If, sc *runtime.Scope, ctx ExecContext) error {
	cond, err := intp.eval(s.Cond, sc)
	if err != nil {
		return err
	}
	if runtime.Truthy(cond) {
		_, err = intp.execBlock(s.Then, sc, ctx)
		return err
	}
	for _, elif := range s.Elifs {
		cond, err := intp.eval(elif.Cond, sc)
		if err != nil {
			return err
		}
		if runtime.Truthy(cond) {
			_, err = intp.execBlock(elif.Body, sc, ctx)
			return err
		}
	}
	if s.Else != nil {
		_, err = intp.execBlock(s.Else, sc, ctx)
	}
	return err
}

// loopBody runs a loop body. It reports whether the loop has to stop, either
// because of `break` or because of an error.
func (intp *Interpreter) loopBody(body []ast.Statement, sc *runtime.Scope, ctx ExecContext) (bool, error) {
	_, err := intp.execBlock(body, sc, ctx)
	switch err {
	case nil, errContinue:
		return false, nil
	case errBreak:
		return true, nil
	}
	return true, err
}

func (intp *Interpreter) execWhile(s *ast.While, sc *runtime.Scope, ctx ExecContext) error {
	for {
		cond, err := intp.eval(s.Cond, sc)
		if err != nil {
			return err
		}
		if !runtime.Truthy(cond) {
			return nil
		}
		if stop, err := intp.loopBody(s.Body, sc, ctx); stop {
			return err
		}
	}
}

func (intp *Interpreter) execDoWhile(s *ast.DoWhile, sc *runtime.Scope, ctx ExecContext) error {
	for {
		if stop, err := intp.loopBody(s.Body, sc, ctx); stop {
			return err
		}
		cond, err := intp.eval(s.Cond, sc)
		if err != nil {
			return err
		}
		if !runtime.Truthy(cond) {
			return nil
		}
	}
}

func (intp *Interpreter) execFor(s *ast.For, sc *runtime.Scope, ctx ExecContext) error {
	iterable, err := intp.eval(s.Iterable, sc)
	if err != nil {
		return err
	}
	items, err := iterate(iterable)
	if err != nil {
		return located(err, s.Iterable)
	}
	for _, item := range items {
		sc.Define(s.Var, item)
		if stop, err := intp.loopBody(s.Body, sc, ctx); stop {
			return err
		}
	}
	return nil
}

// iterate returns the items a `for` loop visits: array elements (a snapshot),
// dictionary keys, the characters of a string, or 0…n-1 for an integer n.
func iterate(v runtime.Value) ([]runtime.Value, error) {
	switch x := v.(type) {
	case *runtime.Array:
		return x.Values(), nil
	case *runtime.Dict:
		return x.Keys(), nil
	case string:
		items := make([]runtime.Value, 0, len(x))
		for _, r := range x {
			items = append(items, string(r))
		}
		return items, nil
	case int64:
		r, err := runtime.Range(x)
		if err != nil {
			return nil, err
		}
		return r.Values(), nil
	}
	return nil, runtime.Errorf("'%s' object is not iterable", runtime.TypeName(v))
}
