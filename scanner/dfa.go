package scanner

import (
	"errors"
	"fmt"

	"github.com/npillmayer/lexgen"
	"github.com/npillmayer/lexgen/dfa"
	"github.com/npillmayer/lexgen/dfa/minimize"
)

// ErrNoMatch is reported (wrapped) to the error handler of a tokenizer for input
// no token matches. The tokenizer skips a single byte and continues.
var ErrNoMatch = errors.New("no token matches input")

// DFAScanner creates tokenizers driven by a minimized automaton.
type DFAScanner struct {
	automaton *dfa.DFA
	opts      []Option
}

// NewDFAScanner minimizes d and returns a scanner for it. Options given here
// apply to every tokenizer created by Scanner.
//
// NewDFAScanner will return an error if d is inconsistent.
func NewDFAScanner(d *dfa.DFA, opts ...Option) (*DFAScanner, error) {
	var st minimize.Stats
	m, err := minimize.Minimize(d, minimize.ValidateInput(true), minimize.WithStats(&st))
	if err != nil {
		tracer().Errorf("cannot create scanner: %v", err)
		return nil, err
	}
	tracer().Debugf("scanner automaton has %d states (from %d, %d splits)", st.MinStates, st.States, st.Splits)
	return &DFAScanner{automaton: m, opts: opts}, nil
}

// Automaton returns the minimized automaton of the scanner.
func (ds *DFAScanner) Automaton() *dfa.DFA {
	return ds.automaton
}

// Scanner creates a tokenizer for a given input.
func (ds *DFAScanner) Scanner(input string, opts ...Option) *DFATokenizer {
	t := &DFATokenizer{
		automaton: ds.automaton,
		input:     input,
		symbols:   dfa.Symbols(input),
		Error:     LogError,
		skip:      make(map[lexgen.TokType]bool),
		actions:   make(map[string]Action),
	}
	for _, opt := range ds.opts {
		opt(t)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// DFATokenizer is a longest-match tokenizer over an automaton. Create one with
// DFAScanner.Scanner.
type DFATokenizer struct {
	automaton *dfa.DFA
	input     string
	symbols   []dfa.Symbol
	pos       int
	startcond int
	Error     func(error) // error handler
	skip      map[lexgen.TokType]bool
	actions   map[string]Action
	pred      dfa.Predicate
}

var _ Tokenizer = (*DFATokenizer)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (t *DFATokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = LogError
		return
	}
	t.Error = h
}

// Begin switches to start condition sc. It panics if sc is out of range.
func (t *DFATokenizer) Begin(sc int) {
	if sc < 0 || sc >= len(t.automaton.Starts) {
		panic(fmt.Sprintf("scanner: start condition %d out of range", sc))
	}
	tracer().Debugf("switching to start condition %d", sc)
	t.startcond = sc
}

// StartCondition returns the current start condition.
func (t *DFATokenizer) StartCondition() int {
	return t.startcond
}

// NextToken is part of the Tokenizer interface. At the end of input it returns
// tokens of type EOF.
//
// Right-context predicates see the input starting at the current token.
func (t *DFATokenizer) NextToken() lexgen.Token {
	for t.pos < len(t.symbols) {
		m := t.automaton.Match(t.startcond, t.symbols[t.pos:], t.pred)
		if !m.OK || m.Length == 0 {
			t.Error(fmt.Errorf("%w at position %d: %q", ErrNoMatch, t.pos, t.input[t.pos]))
			t.pos++
			continue
		}
		from := t.pos
		t.pos += m.Length
		token := MakeDefaultToken(m.Accept.Token, t.input[from:t.pos],
			lexgen.Span{uint64(from), uint64(t.pos)})
		if m.Accept.Action != "" {
			if a, ok := t.actions[m.Accept.Action]; ok && !a(t, &token) {
				continue
			}
		}
		if t.skip[token.kind] {
			continue
		}
		tracer().Debugf("token %v", token)
		return token
	}
	tracer().Debugf("DFATokenizer reached end of input")
	return MakeDefaultToken(EOF, "", lexgen.Span{uint64(t.pos), uint64(t.pos)})
}

// --- Tokenizer options -----------------------------------------------------

// Option configures a DFA tokenizer.
type Option func(t *DFATokenizer)

// Action is called for tokens whose accept action carries a name it has been
// registered for. It may change the token, switch start conditions with Begin,
// and returns false if the token should be dropped.
type Action func(t *DFATokenizer, token *DefaultToken) bool

// Skip drops tokens of the given types.
func Skip(types ...lexgen.TokType) Option {
	return func(t *DFATokenizer) {
		for _, typ := range types {
			t.skip[typ] = true
		}
	}
}

// WithAction registers an action for accept actions named name.
func WithAction(name string, a Action) Option {
	return func(t *DFATokenizer) {
		t.actions[name] = a
	}
}

// WithPredicate sets the predicate deciding right contexts of kind
// dfa.RightContextCode. Without one, these contexts always hold.
func WithPredicate(p dfa.Predicate) Option {
	return func(t *DFATokenizer) {
		t.pred = p
	}
}

// InitialStartCondition sets the start condition a tokenizer starts in.
func InitialStartCondition(sc int) Option {
	return func(t *DFATokenizer) {
		t.Begin(sc)
	}
}
