/*
Package parser implements a recursive-descent parser for LSC.

The parser consumes the token sequence of package scanner and produces an
*ast.Program. Syntax errors do not stop the parser: every error is recorded,
the parser re-synchronizes at the next statement boundary and continues.
Parse will therefore always return a program, possibly together with a list
of errors.

Expression precedence, from lowest to highest:

	?:                    ternary
	or ||
	and &&
	== !=
	< <= > >= in is
	|
	^
	&
	<< >>
	+ -
	* / %
	**                    right-associative
	- + not ! ~           unary
	() . []               call, member, index

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package parser

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lsc"
	"github.com/npillmayer/lsc/ast"
	"github.com/npillmayer/lsc/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lsc.parser'.
func tracer() tracing.Trace {
	return tracing.Select("lsc.parser")
}

// ParseError is a syntax error at a source position.
type ParseError struct {
	Msg   string
	Pos   lsc.Position
	Token lsc.Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// ParseErrors is the list of errors collected during a parse.
type ParseErrors []*ParseError

func (pe ParseErrors) Error() string {
	if len(pe) == 1 {
		return pe[0].Error()
	}
	msgs := make([]string, len(pe))
	for i, e := range pe {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d syntax errors:\n%s", len(pe), strings.Join(msgs, "\n"))
}

// Parser is a recursive-descent parser for LSC. A parser is used for a single
// token sequence only.
type Parser struct {
	tokens  []lsc.Token
	current int
	errors  ParseErrors
	classes int // nesting depth of class bodies
	extends string
}

// NewParser creates a parser for a token sequence. If the sequence does not
// end with EOF, an EOF token is appended.
func NewParser(tokens []lsc.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != lsc.EOF {
		var pos lsc.Position
		if len(tokens) > 0 {
			pos = tokens[len(tokens)-1].Pos
		}
		tokens = append(tokens, lsc.Token{Kind: lsc.EOF, Pos: pos})
	}
	return &Parser{tokens: tokens}
}

// Parse parses a token sequence into a program. It always returns a program;
// if syntax errors occured, they are returned as ParseErrors.
func Parse(tokens []lsc.Token) (*ast.Program, error) {
	p := NewParser(tokens)
	prog := p.Program()
	if len(p.errors) > 0 {
		tracer().Errorf("parser found %d syntax error(s)", len(p.errors))
		return prog, p.errors
	}
	return prog, nil
}

// ParseString scans and parses a source text. A lexical error is returned as
// *scanner.LexError, together with a nil program.
func ParseString(source string) (*ast.Program, error) {
	tokens, err := scanner.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Errors returns the syntax errors collected so far.
func (p *Parser) Errors() ParseErrors {
	return p.errors
}

// Program parses a complete program.
func (p *Parser) Program() *ast.Program {
	prog := &ast.Program{}
	for !p.atEnd() {
		if p.match(lsc.NEWLINE, lsc.SEMICOLON) {
			continue
		}
		if p.check(lsc.INDENT) || p.check(lsc.DEDENT) {
			p.errorAt(p.peek(), "unexpected indentation")
			p.advance()
			continue
		}
		if stmt := p.safeStatement(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	prog.Extends = p.extends
	return prog
}

// --- Token handling --------------------------------------------------------

func (p *Parser) peek() lsc.Token {
	return p.tokens[p.current]
}

func (p *Parser) peekAt(n int) lsc.Token {
	if p.current+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+n]
}

func (p *Parser) previous() lsc.Token {
	if p.current == 0 {
		return lsc.Token{}
	}
	return p.tokens[p.current-1]
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == lsc.EOF
}

func (p *Parser) advance() lsc.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind lsc.TokType) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...lsc.TokType) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a token of the given kind or fails.
func (p *Parser) expect(kind lsc.TokType, msg string) lsc.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.fail(msg)
	return lsc.Token{}
}

// isName is true for tokens usable as a name: identifiers and lifecycle names.
func isName(tok lsc.Token) bool {
	return tok.Kind == lsc.IDENTIFIER || tok.Kind.IsLifecycle()
}

// expectName consumes a name token and returns its lexeme.
func (p *Parser) expectName(msg string) string {
	if isName(p.peek()) {
		return p.advance().Lexeme
	}
	p.fail(msg)
	return ""
}

// expectWord consumes an identifier or any keyword, e.g. for member names
// and type names.
func (p *Parser) expectWord(msg string) string {
	tok := p.peek()
	if tok.Kind == lsc.IDENTIFIER || tok.Kind.IsKeyword() || tok.Kind == lsc.NULL || tok.Kind == lsc.BOOLEAN {
		return p.advance().Lexeme
	}
	p.fail(msg)
	return ""
}

// --- Errors and recovery ---------------------------------------------------

func (p *Parser) errorAt(tok lsc.Token, msg string) *ParseError {
	if tok.Kind == lsc.EOF || (tok.Kind == lsc.NEWLINE && tok.Lexeme == "") {
		msg += " (at end of input)"
	} else if tok.Lexeme != "" && tok.Kind != lsc.NEWLINE {
		msg = fmt.Sprintf("%s (at %q)", msg, tok.Lexeme)
	}
	err := &ParseError{Msg: msg, Pos: tok.Pos, Token: tok}
	p.errors = append(p.errors, err)
	tracer().Debugf("syntax error: %v", err)
	return err
}

// fail records an error at the current token and unwinds to the enclosing
// statement.
func (p *Parser) fail(msg string) {
	panic(p.errorAt(p.peek(), msg))
}

// safeStatement parses a statement and recovers from syntax errors.
func (p *Parser) safeStatement() (stmt ast.Statement) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*ParseError); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()
	return p.statement()
}

// synchronize skips tokens until a likely statement boundary: after a NEWLINE
// or before a keyword starting a statement. Indented blocks entered while
// skipping are skipped as a whole. An enclosing block's DEDENT is never consumed.
func (p *Parser) synchronize() {
	nested := 0
	if !p.atEnd() && !p.check(lsc.DEDENT) {
		if p.advance().Kind == lsc.INDENT {
			nested++
		}
	}
	for !p.atEnd() {
		if nested == 0 && p.previous().Kind == lsc.NEWLINE && !p.check(lsc.INDENT) {
			return
		}
		switch p.peek().Kind {
		case lsc.CLASS, lsc.FUNC, lsc.VAR, lsc.FOR, lsc.IF, lsc.WHILE, lsc.RETURN:
			if nested == 0 {
				return
			}
		case lsc.INDENT:
			nested++
		case lsc.DEDENT:
			if nested == 0 {
				return
			}
			nested--
		}
		p.advance()
	}
}
