package parser

import (
	"github.com/npillmayer/lsc"
	"github.com/npillmayer/lsc/ast"
)

// expression is the entry point for expressions.
func (p *Parser) expression() ast.Expression {
	return p.ternary()
}

func (p *Parser) ternary() ast.Expression {
	cond := p.or()
	if p.check(lsc.QUESTION) {
		tok := p.advance()
		then := p.expression()
		p.expect(lsc.COLON, "expected ':' in conditional expression")
		els := p.ternary()
		return &ast.TernaryOp{Loc: ast.At(tok.Pos), Cond: cond, Then: then, Else: els}
	}
	return cond
}

// binaryLevel parses a left-associative level of binary operators. Operators
// are normalized with an optional alias table.
func (p *Parser) binaryLevel(next func() ast.Expression, aliases map[lsc.TokType]lsc.TokType, ops ...lsc.TokType) ast.Expression {
	left := next()
	for {
		op, ok := p.matchOp(ops)
		if !ok {
			return left
		}
		right := next()
		kind := op.Kind
		if alias, ok := aliases[kind]; ok {
			kind = alias
		}
		left = &ast.BinaryOp{Loc: ast.At(op.Pos), Op: kind, Left: left, Right: right}
	}
}

func (p *Parser) matchOp(ops []lsc.TokType) (lsc.Token, bool) {
	for _, k := range ops {
		if p.check(k) {
			return p.advance(), true
		}
	}
	return lsc.Token{}, false
}

var (
	orAlias  = map[lsc.TokType]lsc.TokType{lsc.LOR: lsc.OR}
	andAlias = map[lsc.TokType]lsc.TokType{lsc.LAND: lsc.AND}
)

func (p *Parser) or() ast.Expression {
	return p.binaryLevel(p.and, orAlias, lsc.OR, lsc.LOR)
}

func (p *Parser) and() ast.Expression {
	return p.binaryLevel(p.equality, andAlias, lsc.AND, lsc.LAND)
}

func (p *Parser) equality() ast.Expression {
	return p.binaryLevel(p.comparison, nil, lsc.EQ, lsc.NEQ)
}

func (p *Parser) comparison() ast.Expression {
	return p.binaryLevel(p.bitOr, nil, lsc.LT, lsc.LE, lsc.GT, lsc.GE, lsc.IN, lsc.IS)
}

func (p *Parser) bitOr() ast.Expression {
	return p.binaryLevel(p.bitXor, nil, lsc.PIPE)
}

func (p *Parser) bitXor() ast.Expression {
	return p.binaryLevel(p.bitAnd, nil, lsc.CARET)
}

func (p *Parser) bitAnd() ast.Expression {
	return p.binaryLevel(p.shift, nil, lsc.AMP)
}

func (p *Parser) shift() ast.Expression {
	return p.binaryLevel(p.additive, nil, lsc.SHL, lsc.SHR)
}

func (p *Parser) additive() ast.Expression {
	return p.binaryLevel(p.term, nil, lsc.PLUS, lsc.MINUS)
}

func (p *Parser) term() ast.Expression {
	return p.binaryLevel(p.power, nil, lsc.STAR, lsc.SLASH, lsc.PERCENT)
}

// power is right-associative: 2 ** 3 ** 2 = 2 ** 9.
func (p *Parser) power() ast.Expression {
	base := p.unary()
	if p.check(lsc.POWER) {
		op := p.advance()
		exp := p.power()
		return &ast.BinaryOp{Loc: ast.At(op.Pos), Op: lsc.POWER, Left: base, Right: exp}
	}
	return base
}

func (p *Parser) unary() ast.Expression {
	switch p.peek().Kind {
	case lsc.MINUS, lsc.PLUS, lsc.NOT, lsc.BANG, lsc.TILDE:
		op := p.advance()
		kind := op.Kind
		if kind == lsc.BANG {
			kind = lsc.NOT
		}
		operand := p.unary()
		return &ast.UnaryOp{Loc: ast.At(op.Pos), Op: kind, Operand: operand}
	}
	return p.postfix()
}

// postfix parses calls, member access and indexing.
func (p *Parser) postfix() ast.Expression {
	expr := p.primary()
	for {
		switch {
		case p.check(lsc.LPAREN):
			tok := p.advance()
			call := &ast.Call{Loc: ast.At(tok.Pos), Callee: expr}
			call.Args = p.exprList(lsc.RPAREN, "expected ')' after arguments")
			expr = call
		case p.check(lsc.DOT):
			tok := p.advance()
			member := p.expectWord("expected member name after '.'")
			expr = &ast.MemberAccess{Loc: ast.At(tok.Pos), Object: expr, Member: member}
		case p.check(lsc.LBRACKET):
			tok := p.advance()
			index := p.expression()
			p.expect(lsc.RBRACKET, "expected ']' after index")
			expr = &ast.IndexAccess{Loc: ast.At(tok.Pos), Object: expr, Index: index}
		default:
			return expr
		}
	}
}

// exprList parses a comma-separated list up to a closing token. A trailing
// comma is allowed.
func (p *Parser) exprList(closing lsc.TokType, msg string) []ast.Expression {
	list := []ast.Expression{}
	for !p.check(closing) {
		list = append(list, p.expression())
		if !p.match(lsc.COMMA) {
			break
		}
	}
	p.expect(closing, msg)
	return list
}

func (p *Parser) primary() ast.Expression {
	tok := p.peek()
	switch {
	case tok.Kind == lsc.NUMBER, tok.Kind == lsc.STRING, tok.Kind == lsc.BOOLEAN, tok.Kind == lsc.NULL:
		p.advance()
		return &ast.Literal{Loc: ast.At(tok.Pos), Value: tok.Value}
	case isName(tok):
		p.advance()
		return &ast.Identifier{Loc: ast.At(tok.Pos), Name: tok.Lexeme}
	case tok.Kind == lsc.DOLLAR:
		return p.nodePath()
	case tok.Kind == lsc.LBRACKET:
		p.advance()
		elems := p.exprList(lsc.RBRACKET, "expected ']' after array elements")
		return &ast.ArrayLiteral{Loc: ast.At(tok.Pos), Elements: elems}
	case tok.Kind == lsc.LBRACE:
		return p.dictLiteral()
	case tok.Kind == lsc.LPAREN:
		p.advance()
		expr := p.expression()
		p.expect(lsc.RPAREN, "expected ')' after expression")
		return expr
	}
	p.fail("expected expression")
	return nil
}

func (p *Parser) dictLiteral() ast.Expression {
	tok := p.advance()
	dict := &ast.DictLiteral{Loc: ast.At(tok.Pos)}
	for !p.check(lsc.RBRACE) {
		key := p.expression()
		p.expect(lsc.COLON, "expected ':' after dictionary key")
		value := p.expression()
		dict.Pairs = append(dict.Pairs, ast.DictPair{Key: key, Value: value})
		if !p.match(lsc.COMMA) {
			break
		}
	}
	p.expect(lsc.RBRACE, "expected '}' after dictionary entries")
	return dict
}

// nodePath parses `$"path"` or `$Name/Child/…`. Segments of the unquoted form
// must not be separated by whitespace, otherwise `$A / b` would be ambiguous.
func (p *Parser) nodePath() ast.Expression {
	dollar := p.advance()
	np := &ast.NodePath{Loc: ast.At(dollar.Pos)}
	if p.check(lsc.STRING) {
		np.Path = p.advance().Value.(string)
		return np
	}
	tok := p.peek()
	if !isName(tok) && !tok.Kind.IsKeyword() {
		p.fail("expected node name or string after '$'")
	}
	p.advance()
	path := tok.Lexeme
	end := tok.Span
	for p.check(lsc.SLASH) && end.Adjacent(p.peek().Span) {
		seg := p.peekAt(1)
		if !(isName(seg) || seg.Kind.IsKeyword()) || !p.peek().Span.Adjacent(seg.Span) {
			break
		}
		p.advance()
		p.advance()
		path += "/" + seg.Lexeme
		end = seg.Span
	}
	np.Path = path
	return np
}
