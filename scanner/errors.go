package scanner

import (
	"fmt"

	"github.com/npillmayer/lsc"
)

// LexError is reported for characters which do not start any token.
type LexError struct {
	Char rune
	Pos  lsc.Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character %q at line %d, column %d", e.Char, e.Pos.Line, e.Pos.Column)
}
