/*
Package scanner turns LSC source text into a sequence of tokens.

Lexing is done by a DFA generated with lexmachine. On top of the DFA sits an
indentation layer, which derives INDENT and DEDENT tokens from the leading
whitespace of lines (a tab counts as 4 columns). Line breaks inside of
brackets are insignificant.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package scanner

import (
	"github.com/npillmayer/lsc"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lsc.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lsc.scanner")
}

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() lsc.Token
	SetErrorHandler(func(error))
}

var _ Tokenizer = (*Scanner)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// Tokenize scans a complete source text. The token sequence is always terminated
// by an EOF token, preceded by DEDENT tokens for every open indentation level.
//
// Tokenize stops at the first character it cannot make sense of and returns
// a *LexError, together with the tokens scanned so far.
func Tokenize(source string) ([]lsc.Token, error) {
	sc, err := NewScanner(source)
	if err != nil {
		return nil, err
	}
	var lexerr error
	sc.SetErrorHandler(func(e error) {
		if lexerr == nil {
			lexerr = e
		}
	})
	tokens := make([]lsc.Token, 0, len(source)/4+1)
	for {
		tok := sc.NextToken()
		if lexerr != nil {
			return tokens, lexerr
		}
		tokens = append(tokens, tok)
		if tok.Kind == lsc.EOF {
			break
		}
	}
	tracer().Debugf("scanned %d tokens", len(tokens))
	return tokens, nil
}
