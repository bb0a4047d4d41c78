package dfa

import (
	"github.com/bits-and-blooms/bitset"
)

// Step performs a single transition. It returns false if there is no transition
// for c, or if state s does not exist.
func (d *DFA) Step(s SNum, c Symbol) (SNum, bool) {
	state, ok := d.States[s]
	if !ok {
		return -1, false
	}
	to, ok := state.Out[c]
	return to, ok
}

// Walk follows input starting from state s. It returns the state reached after
// consuming all of input, or false if the automaton got stuck.
func (d *DFA) Walk(s SNum, input []Symbol) (SNum, bool) {
	for _, c := range input {
		var ok bool
		if s, ok = d.Step(s, c); !ok {
			return -1, false
		}
	}
	return s, true
}

// Predicate evaluates a right context of kind RightContextCode. It receives the
// code name of the context, the complete input and the position just behind
// the lexeme.
type Predicate func(code string, input []Symbol, pos int) bool

// Match is the result of a longest-match run.
type Match struct {
	Accept Accept // the accept action which fired
	Length int    // number of symbols consumed
	OK     bool   // false if no accept action fired
}

// Match runs the automaton for start condition startcond on input and returns
// the longest match. Within a state, accept actions are tried in order; the first
// one whose right context holds wins. A nil predicate lets every
// RightContextCode context hold.
//
// Match panics if startcond is out of range.
func (d *DFA) Match(startcond int, input []Symbol, pred Predicate) Match {
	var m Match
	s := d.Starts[startcond]
	for pos := 0; ; pos++ {
		state, ok := d.States[s]
		if !ok {
			break
		}
		for _, acc := range state.Accepts {
			if d.rightContextHolds(acc.RightContext, input, pos, pred) {
				m = Match{Accept: acc, Length: pos, OK: true}
				break
			}
		}
		if pos == len(input) {
			break
		}
		if s, ok = state.Out[input[pos]]; !ok {
			break
		}
	}
	return m
}

func (d *DFA) rightContextHolds(rc RightContext, input []Symbol, pos int, pred Predicate) bool {
	switch rc.Kind {
	case RightContextState:
		return d.acceptsPrefix(rc.State, input[pos:])
	case RightContextCode:
		if pred == nil {
			return true
		}
		return pred(rc.Code, input, pos)
	}
	return true
}

// acceptsPrefix is true if some prefix of input (including the empty one) leads
// from s into an accepting state.
func (d *DFA) acceptsPrefix(s SNum, input []Symbol) bool {
	for i := 0; ; i++ {
		state, ok := d.States[s]
		if !ok {
			return false
		}
		if state.IsAccepting() {
			return true
		}
		if i == len(input) {
			return false
		}
		if s, ok = state.Out[input[i]]; !ok {
			return false
		}
	}
}

// Reachable returns the set of states reachable from any start state, following
// transitions as well as right-context references. State numbers need not be
// dense; references to states not in d are ignored.
func Reachable(d *DFA) *bitset.BitSet {
	var top SNum
	for s := range d.States {
		if s > top {
			top = s
		}
	}
	seen := bitset.New(uint(top) + 1)
	worklist := make([]SNum, 0, len(d.Starts))
	visit := func(s SNum) {
		if s < 0 || seen.Test(uint(s)) {
			return
		}
		if _, ok := d.States[s]; !ok {
			return
		}
		seen.Set(uint(s))
		worklist = append(worklist, s)
	}
	for _, s := range d.Starts {
		visit(s)
	}
	for len(worklist) > 0 {
		s := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		state := d.States[s]
		if state == nil {
			continue
		}
		for _, to := range state.Out {
			visit(to)
		}
		for _, acc := range state.Accepts {
			if acc.RightContext.Kind == RightContextState {
				visit(acc.RightContext.State)
			}
		}
	}
	tracer().Debugf("%d of %d states reachable", seen.Count(), len(d.States))
	return seen
}
