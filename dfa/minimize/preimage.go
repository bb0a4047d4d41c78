package minimize

import "github.com/npillmayer/lexgen/dfa"

// preimageIndex is the inverted transition function: for every symbol c and
// target state t it holds all states s with s --c--> t.
//
// The transition function of a DFA is partial. The index completes it with a
// virtual sink state: every missing transition, and every transition of the sink
// itself, leads to the sink.
//
// Right-context references are inverted as well. The i-th accept action of a state
// referencing state t is treated as a transition to t on the negative context
// symbol contextSymbol(i). Input symbols are never negative.
type preimageIndex struct {
	index    map[dfa.Symbol]map[dfa.SNum][]dfa.SNum
	alphabet []dfa.Symbol // context symbols first, then input symbols
	sink     dfa.SNum
}

func contextSymbol(i int) dfa.Symbol {
	return dfa.Symbol(-1 - i)
}

// newPreimageIndex inverts every transition of d in a single pass. Sources are
// visited in ascending order, so every source list is sorted. sink has to be a
// state number not used by d.
func newPreimageIndex(d *dfa.DFA, sink dfa.SNum) *preimageIndex {
	pi := &preimageIndex{
		index: make(map[dfa.Symbol]map[dfa.SNum][]dfa.SNum),
		sink:  sink,
	}
	states := d.StateNumbers()
	contexts := 0
	for _, s := range states {
		for i, acc := range d.States[s].Accepts {
			if acc.RightContext.Kind == dfa.RightContextState && i >= contexts {
				contexts = i + 1
			}
		}
	}
	for i := contexts - 1; i >= 0; i-- {
		pi.alphabet = append(pi.alphabet, contextSymbol(i))
	}
	pi.alphabet = append(pi.alphabet, d.Alphabet()...)
	for _, c := range pi.alphabet {
		pi.index[c] = make(map[dfa.SNum][]dfa.SNum)
	}
	for _, s := range states {
		state := d.States[s]
		for _, c := range pi.alphabet {
			t := target(state, c, sink)
			pi.index[c][t] = append(pi.index[c][t], s)
		}
	}
	for _, c := range pi.alphabet {
		pi.index[c][sink] = append(pi.index[c][sink], sink)
	}
	tracer().Debugf("preimage index over %d symbols and %d right-context slots",
		len(pi.alphabet)-contexts, contexts)
	return pi
}

// target is the successor of state on c, with the sink standing in for
// missing transitions.
func target(state *dfa.State, c dfa.Symbol, sink dfa.SNum) dfa.SNum {
	if c < 0 {
		i := int(-1 - c)
		if i < len(state.Accepts) && state.Accepts[i].RightContext.Kind == dfa.RightContextState {
			return state.Accepts[i].RightContext.State
		}
		return sink
	}
	if t, ok := state.Out[c]; ok {
		return t
	}
	return sink
}

// preimage appends to buf all states which reach a member of class on symbol c.
// The result is empty if there are none. As the completed automaton is
// deterministic, the source lists of different targets are disjoint and the
// result has no duplicates.
func (pi *preimageIndex) preimage(c dfa.Symbol, class []dfa.SNum, buf []dfa.SNum) []dfa.SNum {
	buf = buf[:0]
	m, ok := pi.index[c]
	if !ok {
		return buf
	}
	for _, t := range class {
		buf = append(buf, m[t]...)
	}
	return buf
}

// Alphabet returns all symbols of the index in ascending order, context
// symbols included.
func (pi *preimageIndex) Alphabet() []dfa.Symbol {
	return pi.alphabet
}
