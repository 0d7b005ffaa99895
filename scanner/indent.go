package scanner

import (
	"github.com/npillmayer/lsc"
)

// Scanner is the LSC tokenizer. It wraps a raw lexmachine scanner and adds
// NEWLINE, INDENT and DEDENT tokens.
type Scanner struct {
	raw        *LMScanner
	queue      []lsc.Token
	indents    []int // stack of indentation widths
	lineStart  bool  // next significant token starts a line
	lineIndent int   // indentation of the current line
	nlPos      lsc.Position
	nlSpan     lsc.Span
	depth      int // bracket nesting
	last       lsc.TokType
	emitted    bool // at least one significant token was emitted
	done       bool
}

// NewScanner creates a scanner for an LSC source text.
func NewScanner(source string) (*Scanner, error) {
	lm, err := lexer()
	if err != nil {
		return nil, err
	}
	raw, err := lm.Scanner(source)
	if err != nil {
		return nil, err
	}
	sc := &Scanner{
		raw:        raw,
		lineStart:  true,
		lineIndent: leadingIndent(source),
	}
	return sc, nil
}

// SetErrorHandler sets an error handler for the scanner. The default handler
// logs errors and skips the offending character.
func (sc *Scanner) SetErrorHandler(h func(error)) {
	if h == nil {
		sc.raw.Error = logError
		return
	}
	sc.raw.Error = h
}

// NextToken is part of the Tokenizer interface. After the end of input has
// been reached, NextToken returns EOF tokens.
func (sc *Scanner) NextToken() lsc.Token {
	for len(sc.queue) == 0 {
		sc.fill()
	}
	tok := sc.queue[0]
	sc.queue = sc.queue[1:]
	if tok.Kind == lsc.EOF {
		sc.queue = append(sc.queue, tok)
	}
	return tok
}

// fill reads raw tokens until at least one token has been queued.
func (sc *Scanner) fill() {
	if sc.done {
		sc.push(lsc.Token{Kind: lsc.EOF, Pos: sc.nlPos})
		return
	}
	for len(sc.queue) == 0 {
		t, eof := sc.raw.next()
		if eof {
			sc.finish()
			return
		}
		if t.Type == rawNewline {
			if sc.depth > 0 {
				continue
			}
			if !sc.lineStart {
				sc.nlPos = sc.raw.position(t.TC)
				sc.nlSpan = lsc.Span{uint64(t.TC), uint64(t.TC + 1)}
			}
			sc.lineStart = true
			sc.lineIndent = t.Value.(int)
			continue
		}
		tok := sc.raw.token(t)
		if sc.lineStart {
			sc.lineStart = false
			sc.newline()
			sc.indent(tok)
		}
		switch tok.Kind {
		case lsc.LPAREN, lsc.LBRACKET, lsc.LBRACE:
			sc.depth++
		case lsc.RPAREN, lsc.RBRACKET, lsc.RBRACE:
			if sc.depth > 0 {
				sc.depth--
			}
		}
		sc.push(tok)
	}
}

func (sc *Scanner) push(tok lsc.Token) {
	sc.queue = append(sc.queue, tok)
	if tok.Kind != lsc.INDENT && tok.Kind != lsc.DEDENT {
		sc.last = tok.Kind
	}
	if tok.Kind != lsc.EOF {
		sc.emitted = true
	}
}

// newline queues a NEWLINE token, unless the previous token already was one.
func (sc *Scanner) newline() {
	if sc.emitted && sc.last != lsc.NEWLINE {
		sc.push(lsc.Token{Kind: lsc.NEWLINE, Lexeme: "\n", Pos: sc.nlPos, Span: sc.nlSpan})
	}
}

// indent compares the indentation of a new line with the stack of open
// levels and queues INDENT or DEDENT tokens.
func (sc *Scanner) indent(at lsc.Token) {
	if len(sc.indents) == 0 { // first line defines the base level
		sc.indents = append(sc.indents, sc.lineIndent)
		return
	}
	top := sc.indents[len(sc.indents)-1]
	if sc.lineIndent > top {
		sc.indents = append(sc.indents, sc.lineIndent)
		sc.push(lsc.Token{Kind: lsc.INDENT, Pos: at.Pos, Span: lsc.Span{at.Span[0], at.Span[0]}})
		return
	}
	for len(sc.indents) > 1 && sc.lineIndent < sc.indents[len(sc.indents)-1] {
		sc.indents = sc.indents[:len(sc.indents)-1]
		sc.push(lsc.Token{Kind: lsc.DEDENT, Pos: at.Pos, Span: lsc.Span{at.Span[0], at.Span[0]}})
	}
	if sc.indents[len(sc.indents)-1] != sc.lineIndent {
		tracer().Infof("inconsistent indentation at line %d", at.Pos.Line)
	}
}

// finish queues the tokens at end of input. If the input does not end with
// a newline, the closing NEWLINE has an empty lexeme and is located at the
// end of input.
func (sc *Scanner) finish() {
	sc.done = true
	if !sc.lineStart || !sc.nlPos.IsValid() {
		end := len(sc.raw.input)
		sc.nlPos = sc.raw.position(end)
		sc.nlSpan = lsc.Span{uint64(end), uint64(end)}
		if sc.emitted && sc.last != lsc.NEWLINE {
			sc.push(lsc.Token{Kind: lsc.NEWLINE, Pos: sc.nlPos, Span: sc.nlSpan})
		}
	}
	sc.newline()
	for len(sc.indents) > 1 {
		sc.indents = sc.indents[:len(sc.indents)-1]
		sc.push(lsc.Token{Kind: lsc.DEDENT, Pos: sc.nlPos})
	}
	sc.push(lsc.Token{Kind: lsc.EOF, Pos: sc.nlPos})
}

func leadingIndent(source string) int {
	i := 0
	for i < len(source) && (source[i] == ' ' || source[i] == '\t' || source[i] == '\r') {
		i++
	}
	return indentWidth([]byte(source[:i]))
}
