package lsc

import "fmt"

// --- Token categories ------------------------------------------------------

// TokType is a category type for a Token.
type TokType int

// Token categories of LSC. Keywords and operators have a category each, so
// the parser never has to compare lexemes.
const (
	ILLEGAL TokType = iota
	EOF
	NEWLINE
	INDENT
	DEDENT

	// literals
	NUMBER
	STRING
	BOOLEAN
	NULL
	IDENTIFIER

	keywordsStart
	CLASS
	EXTENDS
	FUNC
	VAR
	CONST
	EXPORT
	EXPORT_GROUP
	IF
	ELIF
	ELSE
	FOR
	WHILE
	DO
	BREAK
	CONTINUE
	RETURN
	PASS
	AND
	OR
	NOT
	IN
	IS
	AS
	MATCH
	WHEN
	SIGNAL
	ENUM
	STATIC
	TOOL
	// lifecycle names
	READY
	PROCESS
	INPUT
	PHYSICS_PROCESS
	DRAW
	keywordsEnd

	operatorsStart
	POWER_ASSIGN // **=
	PLUS_ASSIGN  // +=
	MINUS_ASSIGN // -=
	MUL_ASSIGN   // *=
	DIV_ASSIGN   // /=
	MOD_ASSIGN   // %=
	EQ           // ==
	NEQ          // !=
	LE           // <=
	GE           // >=
	SHL          // <<
	SHR          // >>
	ARROW        // ->
	LAND         // &&
	LOR          // ||
	POWER        // **
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	ASSIGN
	LT
	GT
	AMP
	PIPE
	CARET
	TILDE
	BANG
	QUESTION
	operatorsEnd

	DOT
	COMMA
	COLON
	SEMICOLON
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE
	DOLLAR
)

var tokTypeNames = map[TokType]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", NEWLINE: "NEWLINE", INDENT: "INDENT", DEDENT: "DEDENT",
	NUMBER: "NUMBER", STRING: "STRING", BOOLEAN: "BOOLEAN", NULL: "NULL", IDENTIFIER: "IDENTIFIER",
	DOT: ".", COMMA: ",", COLON: ":", SEMICOLON: ";", LPAREN: "(", RPAREN: ")",
	LBRACKET: "[", RBRACKET: "]", LBRACE: "{", RBRACE: "}", DOLLAR: "$",
}

func init() {
	for lexeme, t := range Keywords {
		tokTypeNames[t] = lexeme
	}
	for lexeme, t := range Operators {
		tokTypeNames[t] = lexeme
	}
}

func (t TokType) String() string {
	if s, ok := tokTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokType(%d)", int(t))
}

// IsKeyword is true for keywords, including the lifecycle names.
func (t TokType) IsKeyword() bool {
	return t > keywordsStart && t < keywordsEnd
}

// IsLifecycle is true for the names of lifecycle callbacks, like `_ready`.
func (t TokType) IsLifecycle() bool {
	return t >= READY && t <= DRAW
}

// IsOperator is true for operator tokens.
func (t TokType) IsOperator() bool {
	return t > operatorsStart && t < operatorsEnd
}

// Keywords maps reserved words to their token category. `true`, `false` and `null`
// are literals and map to BOOLEAN and NULL.
var Keywords = map[string]TokType{
	"class": CLASS, "extends": EXTENDS, "func": FUNC, "var": VAR, "const": CONST,
	"export": EXPORT, "export_group": EXPORT_GROUP, "if": IF, "elif": ELIF, "else": ELSE,
	"for": FOR, "while": WHILE, "do": DO, "break": BREAK, "continue": CONTINUE,
	"return": RETURN, "pass": PASS, "and": AND, "or": OR, "not": NOT, "in": IN, "is": IS,
	"as": AS, "match": MATCH, "when": WHEN, "signal": SIGNAL, "enum": ENUM,
	"static": STATIC, "tool": TOOL,
	"_ready": READY, "_process": PROCESS, "_input": INPUT,
	"_physics_process": PHYSICS_PROCESS, "_draw": DRAW,
}

// Operators maps operator lexemes to their token category.
var Operators = map[string]TokType{
	"**=": POWER_ASSIGN, "+=": PLUS_ASSIGN, "-=": MINUS_ASSIGN, "*=": MUL_ASSIGN,
	"/=": DIV_ASSIGN, "%=": MOD_ASSIGN, "==": EQ, "!=": NEQ, "<=": LE, ">=": GE,
	"<<": SHL, ">>": SHR, "->": ARROW, "&&": LAND, "||": LOR, "**": POWER,
	"+": PLUS, "-": MINUS, "*": STAR, "/": SLASH, "%": PERCENT, "=": ASSIGN,
	"<": LT, ">": GT, "&": AMP, "|": PIPE, "^": CARET, "~": TILDE, "!": BANG,
	"?": QUESTION,
}

// Punctuation maps punctuation lexemes to their token category.
var Punctuation = map[string]TokType{
	".": DOT, ",": COMMA, ":": COLON, ";": SEMICOLON, "(": LPAREN, ")": RPAREN,
	"[": LBRACKET, "]": RBRACKET, "{": LBRACE, "}": RBRACE, "$": DOLLAR,
}

// --- Tokens ----------------------------------------------------------------

// Token is a terminal of LSC, as produced by the scanner.
//
// An example would be a token for a floating point numer:
//
//	Kind   = NUMBER      // category
//	Lexeme = "3.1416"    // lexeme how it appreared in the input stream
//	Value  = 3.1416      // is a float64 value
//	Span   = 67…73       // occured from byte position 67 in the input stream
//
// Numbers carry an int64 or float64 value, strings carry their unescaped text
// and booleans a bool.
type Token struct {
	Kind   TokType
	Lexeme string
	Value  interface{}
	Pos    Position
	Span   Span
}

func (t Token) String() string {
	switch t.Kind {
	case IDENTIFIER, NUMBER, STRING, BOOLEAN:
		return fmt.Sprintf("%s(%s)@%s", t.Kind, t.Lexeme, t.Pos)
	}
	return fmt.Sprintf("%s@%s", t.Kind, t.Pos)
}

// Is is a shortcut for checking a token's category.
func (t Token) Is(k TokType) bool {
	return t.Kind == k
}

// Position is a 1-based line/column location in a source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid is false for the zero position.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input bytes. A span denotes a
// start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Adjacent is true if other starts exactly where s ends.
func (s Span) Adjacent(other Span) bool {
	return s[1] == other[0]
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
