/*
Package scanner defines an interface for scanners and provides a tokenizer driven
by a DFA.

DFAScanner wraps an automaton, as produced by the DFA construction stage of a
lexer generator, minimizes it and creates tokenizers for concrete inputs. A
tokenizer finds the longest match from the start state of the current start
condition; of several accept actions of a state the first one whose right context
holds wins. An adapter for lexmachine lives in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/lexgen"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexgen.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lexgen.scanner")
}

// EOF is the token type signalling the end of input. It is identical to
// text/scanner.EOF.
const EOF lexgen.TokType = -1

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() lexgen.Token
	SetErrorHandler(func(error))
}

// LogError is the default error handler of tokenizers. It logs e.
func LogError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used by the DFA tokenizer
// as well as the LexMachine scanner.
type DefaultToken struct {
	kind   lexgen.TokType
	lexeme string
	Val    interface{}
	span   lexgen.Span
}

var _ lexgen.Token = DefaultToken{}

// MakeDefaultToken creates a token without a value.
func MakeDefaultToken(typ lexgen.TokType, lexeme string, span lexgen.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() lexgen.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() lexgen.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("<%d|%q@%v>", t.kind, t.lexeme, t.span)
}
