package scanner

import (
	"errors"
	"testing"

	"github.com/npillmayer/lsc"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"1",
	"1+12",
	"x = 'mystring' # commented",
	"a **= 2",
	"$Player/Sprite",
	"",
}

var tokenCounts = []int{1, 3, 3, 3, 4, 0}

func TestTokenCounts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		tokens, err := Tokenize(input)
		if err != nil {
			t.Fatal(err)
		}
		count := 0
		for _, token := range tokens {
			if token.Kind == lsc.EOF || token.Kind == lsc.NEWLINE {
				continue
			}
			t.Logf(" %12s | %15s | @%5d", token.Kind, token.Lexeme, token.Span.From())
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func kinds(tokens []lsc.Token) []lsc.TokType {
	k := make([]lsc.TokType, len(tokens))
	for i, tok := range tokens {
		k[i] = tok.Kind
	}
	return k
}

func expectKinds(t *testing.T, tokens []lsc.Token, expected ...lsc.TokType) {
	t.Helper()
	got := kinds(tokens)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(got), got)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("token #%d: expected %s, got %s (%v)", i, expected[i], got[i], got)
		}
	}
}

func TestIndentation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.scanner")
	defer teardown()
	//
	src := "if a:\n    b\n\n    # comment only\n\tc\nd\n"
	tokens, err := Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	expectKinds(t, tokens,
		lsc.IF, lsc.IDENTIFIER, lsc.COLON, lsc.NEWLINE,
		lsc.INDENT, lsc.IDENTIFIER, lsc.NEWLINE,
		lsc.IDENTIFIER, lsc.NEWLINE,
		lsc.DEDENT, lsc.IDENTIFIER, lsc.NEWLINE,
		lsc.EOF)
}

func TestTrailingDedents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.scanner")
	defer teardown()
	//
	src := "func f():\n  if x:\n    return 1"
	tokens, err := Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	n := len(tokens)
	expectKinds(t, tokens[n-4:], lsc.NEWLINE, lsc.DEDENT, lsc.DEDENT, lsc.EOF)
	indents, dedents := 0, 0
	for _, tok := range tokens {
		switch tok.Kind {
		case lsc.INDENT:
			indents++
		case lsc.DEDENT:
			dedents++
		}
	}
	if indents != dedents {
		t.Errorf("expected balanced INDENT/DEDENT, have %d/%d", indents, dedents)
	}
}

func TestBracketsJoinLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.scanner")
	defer teardown()
	//
	src := "var a = [1,\n        2,\n]\nb"
	tokens, err := Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	expectKinds(t, tokens,
		lsc.VAR, lsc.IDENTIFIER, lsc.ASSIGN, lsc.LBRACKET, lsc.NUMBER, lsc.COMMA,
		lsc.NUMBER, lsc.COMMA, lsc.RBRACKET, lsc.NEWLINE,
		lsc.IDENTIFIER, lsc.NEWLINE, lsc.EOF)
}

func TestLiteralValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.scanner")
	defer teardown()
	//
	tokens, err := Tokenize(`42 3.5 7. "a\tb\"c" 'it\'s' true null "open`)
	if err != nil {
		t.Fatal(err)
	}
	values := []interface{}{int64(42), 3.5, 7.0, "a\tb\"c", "it's", true, nil, "open"}
	for i, v := range values {
		if tokens[i].Value != v {
			t.Errorf("token #%d: expected value %#v, got %#v", i, v, tokens[i].Value)
		}
	}
}

func TestLongestOperator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.scanner")
	defer teardown()
	//
	tokens, err := Tokenize("a**=b**c*d->e!=f")
	if err != nil {
		t.Fatal(err)
	}
	expectKinds(t, tokens,
		lsc.IDENTIFIER, lsc.POWER_ASSIGN, lsc.IDENTIFIER, lsc.POWER, lsc.IDENTIFIER,
		lsc.STAR, lsc.IDENTIFIER, lsc.ARROW, lsc.IDENTIFIER, lsc.NEQ, lsc.IDENTIFIER,
		lsc.NEWLINE, lsc.EOF)
}

func TestKeywordsAndLifecycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.scanner")
	defer teardown()
	//
	tokens, err := Tokenize("func _ready(): pass")
	if err != nil {
		t.Fatal(err)
	}
	if tokens[0].Kind != lsc.FUNC || !tokens[1].Kind.IsLifecycle() {
		t.Errorf("expected func + lifecycle name, have %v", kinds(tokens))
	}
	if tokens[1].Lexeme != "_ready" {
		t.Errorf("expected lexeme _ready, have %q", tokens[1].Lexeme)
	}
}

func TestLexError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.scanner")
	defer teardown()
	//
	_, err := Tokenize("a = 1\nb = `x`")
	if err == nil {
		t.Fatal("expected lex error for backtick")
	}
	var lexerr *LexError
	if !errors.As(err, &lexerr) {
		t.Fatalf("expected *LexError, have %T", err)
	}
	if lexerr.Char != '`' || lexerr.Pos.Line != 2 || lexerr.Pos.Column != 5 {
		t.Errorf("unexpected error details: %v", lexerr)
	}
}

func TestPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.scanner")
	defer teardown()
	//
	tokens, err := Tokenize("var x\n  = 5")
	if err != nil {
		t.Fatal(err)
	}
	for _, tok := range tokens {
		if tok.Kind == lsc.NUMBER && (tok.Pos.Line != 2 || tok.Pos.Column != 5) {
			t.Errorf("expected 5 at 2:5, is at %s", tok.Pos)
		}
	}
}

func TestEndOfInputPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lsc.scanner")
	defer teardown()
	//
	tokens, err := Tokenize("if x:\n    y = (1 +")
	if err != nil {
		t.Fatal(err)
	}
	for _, tok := range tokens[len(tokens)-3:] {
		switch tok.Kind {
		case lsc.NEWLINE, lsc.DEDENT, lsc.EOF:
			if tok.Pos.Line != 2 || tok.Pos.Column != 15 {
				t.Errorf("expected %s at 2:15, is at %s", tok.Kind, tok.Pos)
			}
		default:
			t.Errorf("unexpected token %s at end of input", tok.Kind)
		}
	}
	if nl := tokens[len(tokens)-3]; nl.Kind != lsc.NEWLINE || nl.Lexeme != "" {
		t.Errorf("expected closing NEWLINE without lexeme, have %s %q", nl.Kind, nl.Lexeme)
	}
}
