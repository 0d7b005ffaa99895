package scanner

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/lsc"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// rawNewline is the token id for a line break, together with the indentation
// of the following line. It never leaves the package.
const rawNewline = -1

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives an init function
// for adding patterns and a map of literals ('[', "**=", …) to their token
// categories.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals map[string]lsc.TokType) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	lits := make([]string, 0, len(literals))
	for lit := range literals {
		lits = append(lits, lit)
	}
	sort.Strings(lits)
	for _, lit := range lits {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(literals[lit]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a raw scanner for a given input.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	text := []byte(input)
	s, err := lm.Lexer.Scanner(text)
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, input: text, lines: lineStarts(text), Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners. It produces raw tokens,
// i.e. without any indentation handling.
type LMScanner struct {
	scanner *lexmachine.Scanner
	input   []byte
	lines   []int // byte offsets of line starts
	Error   func(error)
}

// next returns the next raw token or eof=true.
func (lms *LMScanner) next() (*lexmachine.Token, bool) {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		ui, is := err.(*machines.UnconsumedInput)
		if !is {
			lms.Error(err)
			return nil, true
		}
		r, size := utf8.DecodeRune(lms.input[ui.StartTC:])
		if size < 1 {
			size = 1
		}
		lms.Error(&LexError{Char: r, Pos: lms.position(ui.StartTC)})
		lms.scanner.TC = ui.StartTC + size
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return nil, true
	}
	return tok.(*lexmachine.Token), false
}

// position converts a byte offset into a line/column position.
func (lms *LMScanner) position(tc int) lsc.Position {
	i := sort.Search(len(lms.lines), func(i int) bool { return lms.lines[i] > tc }) - 1
	if i < 0 {
		i = 0
	}
	return lsc.Position{Line: i + 1, Column: tc - lms.lines[i] + 1}
}

// token wraps a lexmachine token into an LSC token.
func (lms *LMScanner) token(t *lexmachine.Token) lsc.Token {
	return lsc.Token{
		Kind:   lsc.TokType(t.Type),
		Lexeme: string(t.Lexeme),
		Value:  t.Value,
		Pos:    lms.position(t.TC),
		Span:   lsc.Span{uint64(t.TC), uint64(t.TC + len(t.Lexeme))},
	}
}

func lineStarts(text []byte) []int {
	lines := []int{0}
	for i, b := range text {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}
	return lines
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(kind lsc.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(kind), string(m.Bytes), m), nil
	}
}

func makeNewline(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return s.Token(rawNewline, indentWidth(m.Bytes[1:]), m), nil
}

func makeIdentifier(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	word := string(m.Bytes)
	switch word {
	case "true", "false":
		return s.Token(int(lsc.BOOLEAN), word == "true", m), nil
	case "null":
		return s.Token(int(lsc.NULL), nil, m), nil
	}
	if kw, ok := lsc.Keywords[word]; ok {
		return s.Token(int(kw), word, m), nil
	}
	return s.Token(int(lsc.IDENTIFIER), word, m), nil
}

func makeNumber(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	lexeme := string(m.Bytes)
	if !strings.ContainsRune(lexeme, '.') {
		if n, err := strconv.ParseInt(lexeme, 10, 64); err == nil {
			return s.Token(int(lsc.NUMBER), n, m), nil
		}
	}
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return nil, err
	}
	return s.Token(int(lsc.NUMBER), f, m), nil
}

func makeString(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return s.Token(int(lsc.STRING), unescape(string(m.Bytes)), m), nil
}

// unescape strips the quotes off a string lexeme and replaces escape sequences.
// A missing closing quote is tolerated.
func unescape(lexeme string) string {
	quote := lexeme[0]
	var b strings.Builder
	for i := 1; i < len(lexeme); i++ {
		c := lexeme[i]
		if c == quote {
			break
		}
		if c == '\\' {
			if i+1 == len(lexeme) {
				break
			}
			i++
			switch lexeme[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(lexeme[i])
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// indentWidth measures leading whitespace. Tabs count as 4 columns.
func indentWidth(ws []byte) int {
	w := 0
	for _, b := range ws {
		switch b {
		case ' ':
			w++
		case '\t':
			w += 4
		}
	}
	return w
}

// --- The LSC lexer ---------------------------------------------------------

var lscLexer struct {
	once    sync.Once
	adapter *LMAdapter
	err     error
}

func initLSCPatterns(lexer *lexmachine.Lexer) {
	lexer.Add([]byte(`\n[ \t\r]*`), makeNewline)
	lexer.Add([]byte(`[ \t\r]+`), Skip)
	lexer.Add([]byte(`#[^\n]*`), Skip)
	lexer.Add([]byte(`\"([^"\\]|\\\\|\\\"|\\[^"\\])*(\\)?\"?`), makeString)
	lexer.Add([]byte(`\'([^'\\]|\\\\|\\\'|\\[^'\\])*(\\)?\'?`), makeString)
	lexer.Add([]byte(`[0-9]+(\.[0-9]*)?`), makeNumber)
	lexer.Add([]byte(`[a-zA-Z_][a-zA-Z0-9_]*`), makeIdentifier)
}

// lexer returns the (lazily compiled) DFA for LSC.
func lexer() (*LMAdapter, error) {
	lscLexer.once.Do(func() {
		literals := make(map[string]lsc.TokType, len(lsc.Operators)+len(lsc.Punctuation))
		for lit, t := range lsc.Operators {
			literals[lit] = t
		}
		for lit, t := range lsc.Punctuation {
			literals[lit] = t
		}
		lscLexer.adapter, lscLexer.err = NewLMAdapter(initLSCPatterns, literals)
	})
	return lscLexer.adapter, lscLexer.err
}
