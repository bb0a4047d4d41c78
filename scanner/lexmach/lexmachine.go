package lexmach

import (
	"strings"

	"github.com/npillmayer/lexgen"
	"github.com/npillmayer/lexgen/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'lexgen.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lexgen.scanner")
}

// Rule binds a lexmachine regular expression to a token type. Rules added
// earlier win over later ones for matches of equal length.
type Rule struct {
	Pattern string
	Token   lexgen.TokType
}

// Literal creates a rule matching lit verbatim. Every character is escaped.
func Literal(lit string, t lexgen.TokType) Rule {
	if lit == "" {
		return Rule{Token: t}
	}
	return Rule{Pattern: "\\" + strings.Join(strings.Split(lit, ""), "\\"), Token: t}
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter compiles rules into a lexmachine DFA. Matches of a token type
// listed in skip are consumed without producing a token, as with
// scanner.Skip for DFA tokenizers.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(rules []Rule, skip ...lexgen.TokType) (*LMAdapter, error) {
	skipped := make(map[lexgen.TokType]bool, len(skip))
	for _, t := range skip {
		skipped[t] = true
	}
	adapter := &LMAdapter{Lexer: lexmachine.NewLexer()}
	for _, r := range rules {
		if skipped[r.Token] {
			adapter.Lexer.Add([]byte(r.Pattern), Skip)
			continue
		}
		adapter.Lexer.Add([]byte(r.Pattern), MakeToken(r.Token))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("lexmachine failed to compile %d rules: %v", len(rules), err)
		return nil, err
	}
	tracer().Debugf("lexmachine compiled %d rules", len(rules))
	return adapter, nil
}

// Scanner creates a tokenizer for input.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &LMScanner{scanner: s, Error: scanner.LogError}, nil
}

// LMScanner drives a lexmachine scanner and delivers lexgen tokens.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner. nil restores the
// default, which logs errors.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = scanner.LogError
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface. Input lexmachine cannot match
// is reported to the error handler and skipped.
//
// Spans are derived from lexmachine's column information and are meaningful for
// single-line input only.
func (lms *LMScanner) NextToken() lexgen.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return scanner.MakeDefaultToken(scanner.EOF, "", lexgen.Span{})
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("lexmachine token %d %q", token.Type, token.Lexeme)
	return scanner.MakeDefaultToken(
		lexgen.TokType(token.Type),
		string(token.Lexeme),
		lexgen.Span{uint64(token.StartColumn - 1), uint64(token.EndColumn)},
	)
}

// ---------------------------------------------------------------------------

// Skip is a lexmachine action which drops the match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken creates a lexmachine action which turns a match into a token of
// type typ.
func MakeToken(typ lexgen.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(typ), string(m.Bytes), m), nil
	}
}
