package parser

import (
	"strings"

	"github.com/npillmayer/lsc"
	"github.com/npillmayer/lsc/ast"
)

func (p *Parser) statement() ast.Statement {
	tok := p.peek()
	switch tok.Kind {
	case lsc.TOOL:
		p.advance()
		if !p.check(lsc.CLASS) {
			p.fail("expected 'class' after 'tool'")
		}
		c := p.classDef()
		c.Loc = ast.At(tok.Pos)
		c.Tool = true
		return c
	case lsc.CLASS:
		return p.classDef()
	case lsc.STATIC:
		p.advance()
		if !p.check(lsc.FUNC) {
			p.fail("expected 'func' after 'static'")
		}
		f := p.funcDef()
		f.Loc = ast.At(tok.Pos)
		f.Static = true
		return f
	case lsc.FUNC:
		return p.funcDef()
	case lsc.EXPORT:
		return p.exportDecl()
	case lsc.EXPORT_GROUP:
		return p.exportGroup()
	case lsc.SIGNAL:
		return p.signalDecl()
	case lsc.ENUM:
		return p.enumDecl()
	case lsc.VAR, lsc.CONST:
		return p.varDecl()
	case lsc.IF:
		return p.ifStmt()
	case lsc.WHILE:
		return p.whileStmt()
	case lsc.DO:
		return p.doWhileStmt()
	case lsc.FOR:
		return p.forStmt()
	case lsc.EXTENDS:
		return p.extendsStmt()
	case lsc.BREAK:
		p.advance()
		p.endStatement()
		return &ast.Break{Loc: ast.At(tok.Pos)}
	case lsc.CONTINUE:
		p.advance()
		p.endStatement()
		return &ast.Continue{Loc: ast.At(tok.Pos)}
	case lsc.PASS:
		p.advance()
		p.endStatement()
		return &ast.Pass{Loc: ast.At(tok.Pos)}
	case lsc.RETURN:
		p.advance()
		ret := &ast.Return{Loc: ast.At(tok.Pos)}
		if !p.atStatementEnd() {
			ret.Value = p.expression()
		}
		p.endStatement()
		return ret
	}
	return p.simpleStatement()
}

// atStatementEnd is true if the current token terminates a simple statement.
func (p *Parser) atStatementEnd() bool {
	switch p.peek().Kind {
	case lsc.NEWLINE, lsc.SEMICOLON, lsc.DEDENT, lsc.EOF:
		return true
	}
	return false
}

// endStatement consumes the terminator of a simple statement. A DEDENT or EOF
// terminates a statement as well, but is left for the enclosing block.
func (p *Parser) endStatement() {
	if p.match(lsc.NEWLINE, lsc.SEMICOLON) {
		return
	}
	if p.check(lsc.DEDENT) || p.atEnd() {
		return
	}
	p.fail("expected end of statement")
}

var assignOps = map[lsc.TokType]bool{
	lsc.ASSIGN: true, lsc.PLUS_ASSIGN: true, lsc.MINUS_ASSIGN: true, lsc.MUL_ASSIGN: true,
	lsc.DIV_ASSIGN: true, lsc.MOD_ASSIGN: true, lsc.POWER_ASSIGN: true,
}

// simpleStatement is an expression statement or an assignment.
func (p *Parser) simpleStatement() ast.Statement {
	pos := p.peek().Pos
	expr := p.expression()
	if assignOps[p.peek().Kind] {
		op := p.advance()
		switch expr.(type) {
		case *ast.Identifier, *ast.MemberAccess, *ast.IndexAccess:
		default:
			panic(p.errorAt(op, "invalid assignment target"))
		}
		value := p.expression()
		p.endStatement()
		return &ast.Assign{Loc: ast.At(pos), Target: expr, Op: op.Kind, Value: value}
	}
	p.endStatement()
	return &ast.ExprStmt{Loc: ast.At(pos), Expr: expr}
}

// block parses the body of a compound statement, after the colon. A body is
// either an indented block or a single simple statement on the same line.
func (p *Parser) block() []ast.Statement {
	if !p.match(lsc.NEWLINE) {
		if p.atEnd() {
			p.fail("expected block")
		}
		return []ast.Statement{p.statement()}
	}
	p.expect(lsc.INDENT, "expected indented block")
	stmts := []ast.Statement{}
	for !p.check(lsc.DEDENT) && !p.atEnd() {
		if p.match(lsc.NEWLINE, lsc.SEMICOLON) {
			continue
		}
		if stmt := p.safeStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.match(lsc.DEDENT)
	return stmts
}

// optType parses an optional `: Type` annotation.
func (p *Parser) optType() string {
	if p.check(lsc.COLON) && p.peekAt(1).Kind != lsc.ASSIGN {
		p.advance()
		return p.expectWord("expected type name after ':'")
	}
	p.match(lsc.COLON) // `var x := 1`
	return ""
}

func (p *Parser) varDecl() *ast.VarDecl {
	tok := p.advance()
	decl := &ast.VarDecl{Loc: ast.At(tok.Pos), Const: tok.Kind == lsc.CONST}
	decl.Name = p.expectName("expected variable name")
	decl.TypeHint = p.optType()
	if p.match(lsc.ASSIGN) {
		decl.Value = p.expression()
	} else if decl.Const {
		p.fail("constant requires a value")
	}
	p.endStatement()
	return decl
}

func (p *Parser) funcDef() *ast.FuncDef {
	tok := p.expect(lsc.FUNC, "expected 'func'")
	f := &ast.FuncDef{Loc: ast.At(tok.Pos)}
	f.Name = p.expectName("expected function name")
	p.expect(lsc.LPAREN, "expected '(' after function name")
	for !p.check(lsc.RPAREN) {
		param := ast.Param{Name: p.expectName("expected parameter name")}
		param.TypeHint = p.optType()
		if p.match(lsc.ASSIGN) {
			param.Default = p.expression()
		}
		f.Params = append(f.Params, param)
		if !p.match(lsc.COMMA) {
			break
		}
	}
	p.expect(lsc.RPAREN, "expected ')' after parameters")
	if p.match(lsc.ARROW) {
		f.ReturnType = p.expectWord("expected return type after '->'")
	}
	p.expect(lsc.COLON, "expected ':' after function signature")
	f.Body = p.block()
	return f
}

func (p *Parser) classDef() *ast.ClassDef {
	tok := p.expect(lsc.CLASS, "expected 'class'")
	c := &ast.ClassDef{Loc: ast.At(tok.Pos)}
	c.Name = p.expectName("expected class name")
	if p.match(lsc.EXTENDS) {
		c.Base = p.expectName("expected base class name")
	}
	p.expect(lsc.COLON, "expected ':' after class header")
	p.classes++
	defer func() { p.classes-- }()
	c.Body = p.block()
	return c
}

func (p *Parser) extendsStmt() *ast.Extends {
	tok := p.advance()
	ext := &ast.Extends{Loc: ast.At(tok.Pos)}
	if p.check(lsc.STRING) {
		ext.Base = p.advance().Value.(string)
	} else {
		ext.Base = p.expectName("expected base class after 'extends'")
	}
	p.endStatement()
	if p.classes == 0 && p.extends == "" {
		p.extends = ext.Base
	}
	return ext
}

// exportDecl parses `export[(type[, hint…])] var …`. Hint arguments may be
// a single string or a list of numbers and strings, which are joined with commas.
func (p *Parser) exportDecl() *ast.ExportDecl {
	tok := p.advance()
	decl := &ast.ExportDecl{Loc: ast.At(tok.Pos)}
	if p.match(lsc.LPAREN) {
		decl.ExportType = p.expectWord("expected export type")
		var hints []string
		for p.match(lsc.COMMA) {
			switch t := p.peek(); {
			case t.Kind == lsc.STRING:
				hints = append(hints, p.advance().Value.(string))
			case t.Kind == lsc.NUMBER:
				hints = append(hints, p.advance().Lexeme)
			case t.Kind == lsc.MINUS && p.peekAt(1).Kind == lsc.NUMBER:
				p.advance()
				hints = append(hints, "-"+p.advance().Lexeme)
			default:
				p.fail("expected export hint")
			}
		}
		decl.Hint = strings.Join(hints, ",")
		p.expect(lsc.RPAREN, "expected ')' after export type")
	}
	if !p.check(lsc.VAR) {
		p.fail("expected 'var' after 'export'")
	}
	decl.Var = p.varDecl()
	return decl
}

func (p *Parser) exportGroup() *ast.ExportGroup {
	tok := p.advance()
	g := &ast.ExportGroup{Loc: ast.At(tok.Pos)}
	p.expect(lsc.LPAREN, "expected '(' after 'export_group'")
	g.Name = p.expect(lsc.STRING, "expected group name").Value.(string)
	if p.match(lsc.COMMA) {
		g.Prefix = p.expect(lsc.STRING, "expected group prefix").Value.(string)
	}
	p.expect(lsc.RPAREN, "expected ')' after export group")
	p.endStatement()
	return g
}

func (p *Parser) signalDecl() *ast.SignalDecl {
	tok := p.advance()
	s := &ast.SignalDecl{Loc: ast.At(tok.Pos)}
	s.Name = p.expectName("expected signal name")
	if p.match(lsc.LPAREN) {
		for !p.check(lsc.RPAREN) {
			s.Params = append(s.Params, p.expectName("expected signal parameter"))
			p.optType()
			if !p.match(lsc.COMMA) {
				break
			}
		}
		p.expect(lsc.RPAREN, "expected ')' after signal parameters")
	}
	p.endStatement()
	return s
}

// enumDecl parses `enum [Name] {A, B, …}`. An anonymous enum defines its
// values as constants.
func (p *Parser) enumDecl() *ast.EnumDecl {
	tok := p.advance()
	e := &ast.EnumDecl{Loc: ast.At(tok.Pos)}
	if isName(p.peek()) {
		e.Name = p.advance().Lexeme
	}
	p.expect(lsc.LBRACE, "expected '{' in enum declaration")
	for !p.check(lsc.RBRACE) {
		e.Values = append(e.Values, p.expectName("expected enum value"))
		if !p.match(lsc.COMMA) {
			break
		}
	}
	p.expect(lsc.RBRACE, "expected '}' after enum values")
	p.endStatement()
	return e
}

func (p *Parser) ifStmt() *ast.If {
	tok := p.advance()
	s := &ast.If{Loc: ast.At(tok.Pos)}
	s.Cond = p.expression()
	p.expect(lsc.COLON, "expected ':' after if condition")
	s.Then = p.block()
	for p.match(lsc.ELIF) {
		clause := ast.ElifClause{Cond: p.expression()}
		p.expect(lsc.COLON, "expected ':' after elif condition")
		clause.Body = p.block()
		s.Elifs = append(s.Elifs, clause)
	}
	if p.match(lsc.ELSE) {
		p.expect(lsc.COLON, "expected ':' after else")
		s.Else = p.block()
	}
	return s
}

func (p *Parser) whileStmt() *ast.While {
	tok := p.advance()
	s := &ast.While{Loc: ast.At(tok.Pos)}
	s.Cond = p.expression()
	p.expect(lsc.COLON, "expected ':' after while condition")
	s.Body = p.block()
	return s
}

func (p *Parser) doWhileStmt() *ast.DoWhile {
	tok := p.advance()
	s := &ast.DoWhile{Loc: ast.At(tok.Pos)}
	p.expect(lsc.COLON, "expected ':' after 'do'")
	s.Body = p.block()
	p.expect(lsc.WHILE, "expected 'while' after do-block")
	s.Cond = p.expression()
	p.endStatement()
	return s
}

func (p *Parser) forStmt() *ast.For {
	tok := p.advance()
	s := &ast.For{Loc: ast.At(tok.Pos)}
	s.Var = p.expectName("expected loop variable")
	p.expect(lsc.IN, "expected 'in' after loop variable")
	s.Iterable = p.expression()
	p.expect(lsc.COLON, "expected ':' after for clause")
	s.Body = p.block()
	return s
}
