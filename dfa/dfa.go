package dfa

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/lexgen"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexgen.dfa'.
func tracer() tracing.Trace {
	return tracing.Select("lexgen.dfa")
}

// ErrInconsistentDFA is returned (wrapped) whenever an automaton references a
// state number which is not part of its state map. This always indicates a bug in
// the stage which constructed the automaton.
var ErrInconsistentDFA = errors.New("inconsistent DFA: referenced state does not exist")

// SNum is a state number. State numbers are dense and non-negative.
type SNum int

// Symbol is an input symbol. Generated scanners work on bytes, but any
// non-negative int is permitted.
type Symbol int

// Symbols is a helper to convert a string into a sequence of byte symbols.
func Symbols(s string) []Symbol {
	syms := make([]Symbol, len(s))
	for i := 0; i < len(s); i++ {
		syms[i] = Symbol(s[i])
	}
	return syms
}

// --- Accept actions --------------------------------------------------------

// RightContextKind tells which kind of right context is attached to an accept action.
type RightContextKind int8

// Kinds of right context.
const (
	NoRightContext    RightContextKind = iota // action fires unconditionally
	RightContextState                         // remaining input must be matched from State
	RightContextCode                          // predicate Code decides, evaluated by the scanner runtime
)

// RightContext is a trailing-context condition of an accept action.
type RightContext struct {
	Kind  RightContextKind
	State SNum   // for RightContextState
	Code  string // for RightContextCode
}

func (rc RightContext) String() string {
	switch rc.Kind {
	case RightContextState:
		return fmt.Sprintf("/%d", rc.State)
	case RightContextCode:
		return fmt.Sprintf("/{%s}", rc.Code)
	}
	return ""
}

// Accept is an accept action. Apart from the right context, its fields are opaque
// for the automaton operations and are handed through to code generation.
type Accept struct {
	Priority     int            // lower values take precedence
	Token        lexgen.TokType // category of the token recognized
	Action       string         // name of a semantic action, may be empty
	RightContext RightContext
}

func (a Accept) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d", a.Priority, a.Token)
	if a.Action != "" {
		b.WriteString("{" + a.Action + "}")
	}
	b.WriteString(a.RightContext.String())
	return b.String()
}

// --- States and automata ---------------------------------------------------

// State is a state of a DFA. Out is a partial transition function; a missing
// symbol means there is no transition.
type State struct {
	Accepts []Accept
	Out     map[Symbol]SNum
}

// IsAccepting is true if the state carries at least one accept action.
func (s *State) IsAccepting() bool {
	return len(s.Accepts) > 0
}

// DFA is a deterministic finite automaton with one start state per start condition.
// Several start conditions may share a start state.
type DFA struct {
	Starts []SNum
	States map[SNum]*State
}

// New creates an empty automaton with the given start states, one per start condition.
// The start states themselves have to be added with AddState.
func New(starts ...SNum) *DFA {
	return &DFA{
		Starts: append([]SNum(nil), starts...),
		States: make(map[SNum]*State),
	}
}

// AddState adds state n, replacing any state with the same number.
// Accept actions should be given in priority order.
func (d *DFA) AddState(n SNum, accepts ...Accept) *State {
	s := &State{
		Accepts: append([]Accept(nil), accepts...),
		Out:     make(map[Symbol]SNum),
	}
	d.States[n] = s
	return s
}

// AddTransition sets the transition from --c--> to. The source state is created
// if it does not exist.
func (d *DFA) AddTransition(from SNum, c Symbol, to SNum) {
	s, ok := d.States[from]
	if !ok {
		s = d.AddState(from)
	}
	s.Out[c] = to
}

// AddAccept appends an accept action to state n, creating the state if necessary.
func (d *DFA) AddAccept(n SNum, acc Accept) {
	s, ok := d.States[n]
	if !ok {
		s = d.AddState(n)
	}
	s.Accepts = append(s.Accepts, acc)
}

// NumStates returns the number of states.
func (d *DFA) NumStates() int {
	return len(d.States)
}

// State returns state n or an error wrapping ErrInconsistentDFA.
func (d *DFA) State(n SNum) (*State, error) {
	s, ok := d.States[n]
	if !ok {
		return nil, fmt.Errorf("%w: state %d", ErrInconsistentDFA, n)
	}
	return s, nil
}

// StateNumbers returns all state numbers in ascending order.
func (d *DFA) StateNumbers() []SNum {
	nums := make([]SNum, 0, len(d.States))
	for n := range d.States {
		nums = append(nums, n)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	return nums
}

// Alphabet returns all symbols which occur on a transition, in ascending order.
func (d *DFA) Alphabet() []Symbol {
	set := treeset.NewWith(utils.IntComparator)
	for _, s := range d.States {
		for c := range s.Out {
			set.Add(int(c))
		}
	}
	alphabet := make([]Symbol, 0, set.Size())
	it := set.Iterator()
	for it.Next() {
		alphabet = append(alphabet, Symbol(it.Value().(int)))
	}
	return alphabet
}

// Clone creates a deep copy of d.
func (d *DFA) Clone() *DFA {
	c := New(d.Starts...)
	for n, s := range d.States {
		cs := c.AddState(n, s.Accepts...)
		for sym, to := range s.Out {
			cs.Out[sym] = to
		}
	}
	return c
}

// Validate checks that d is closed under its own references: every start state,
// every transition target and every right-context state has to be present in the
// state map. Input symbols must not be negative. Errors wrap ErrInconsistentDFA.
func (d *DFA) Validate() error {
	for i, start := range d.Starts {
		if _, ok := d.States[start]; !ok {
			return fmt.Errorf("%w: start state %d of start condition %d", ErrInconsistentDFA, start, i)
		}
	}
	for _, n := range d.StateNumbers() {
		if n < 0 {
			return fmt.Errorf("%w: negative state number %d", ErrInconsistentDFA, n)
		}
		s := d.States[n]
		if s == nil {
			return fmt.Errorf("%w: state %d is nil", ErrInconsistentDFA, n)
		}
		for c, to := range s.Out {
			if c < 0 {
				return fmt.Errorf("%w: negative input symbol %d on state %d", ErrInconsistentDFA, c, n)
			}
			if _, ok := d.States[to]; !ok {
				return fmt.Errorf("%w: transition %d --%d--> %d", ErrInconsistentDFA, n, c, to)
			}
		}
		for _, acc := range s.Accepts {
			if acc.RightContext.Kind != RightContextState {
				continue
			}
			if _, ok := d.States[acc.RightContext.State]; !ok {
				return fmt.Errorf("%w: right context %d of state %d", ErrInconsistentDFA,
					acc.RightContext.State, n)
			}
		}
	}
	tracer().Debugf("DFA with %d states and %d start conditions is consistent", len(d.States), len(d.Starts))
	return nil
}

func (d *DFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "DFA(starts=%v) {\n", d.Starts)
	for _, n := range d.StateNumbers() {
		s := d.States[n]
		fmt.Fprintf(&b, "  %3d %v", n, s.Accepts)
		for _, c := range sortedSymbols(s.Out) {
			fmt.Fprintf(&b, " %d->%d", c, s.Out[c])
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func sortSymbols(syms []Symbol) {
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
}
