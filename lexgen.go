package lexgen

import "fmt"

// --- Token categories ------------------------------------------------------

// TokType is a category type for a Token. Accept actions of an automaton carry a
// TokType to tell which kind of token has been recognized. We do not define any
// constants here, as it is up to applications to define them.
type TokType int

// TokTypeStringer is a type to be provided by clients to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Token represents a lexeme recognized by a scanner.
//
// An example would be a token for an identifier:
//
//    TokType = Ident       // identifier for this kind of tokens (application specific)
//    Lexeme  = "foo"       // lexeme how it appeared in the input stream
//    Span    = 12…15       // occured from position 12 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span captures a run of input bytes. A span denotes a start position and the
// position just behind the end.
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

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
