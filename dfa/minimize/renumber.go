package minimize

import (
	"fmt"

	"github.com/npillmayer/lexgen/dfa"
)

// numbered assigns a new state number to an equivalence class. A class holding
// start states appears once per start condition it covers.
type numbered struct {
	id    dfa.SNum
	class int
}

// renumber builds the minimized automaton from the final partition.
//
// Classes without start states are numbered sequentially from k = len(d.Starts).
// A class containing the start state of start condition i is emitted as state i;
// if it contains start states of several start conditions, it is emitted once for
// every one of them. References to such a class resolve to its first copy.
func renumber(d *dfa.DFA, classes []EquivalenceClass) (*dfa.DFA, error) {
	k := len(d.Starts)
	next := dfa.SNum(k)
	order := make([]numbered, 0, len(classes)+k)
	newOf := make(map[dfa.SNum]dfa.SNum, len(d.States))
	covered := 0
	for ci, cls := range classes {
		var ids []dfa.SNum
		for i, start := range d.Starts {
			if cls.Contains(start) {
				ids = append(ids, dfa.SNum(i))
			}
		}
		if len(ids) == 0 {
			ids = append(ids, next)
			next++
		} else {
			covered += len(ids)
		}
		for _, id := range ids {
			order = append(order, numbered{id: id, class: ci})
		}
		for _, old := range cls {
			newOf[old] = ids[0]
		}
	}
	if covered != k {
		for i, start := range d.Starts {
			if _, ok := newOf[start]; !ok {
				return nil, fmt.Errorf("%w: start state %d of start condition %d", dfa.ErrInconsistentDFA, start, i)
			}
		}
	}
	starts := make([]dfa.SNum, k)
	for i := range starts {
		starts[i] = dfa.SNum(i)
	}
	m := dfa.New(starts...)
	for _, nb := range order {
		cls := classes[nb.class]
		rep, err := d.State(cls[0])
		if err != nil {
			return nil, err
		}
		accepts := make([]dfa.Accept, len(rep.Accepts))
		for i, acc := range rep.Accepts {
			if acc.RightContext.Kind == dfa.RightContextState {
				to, ok := newOf[acc.RightContext.State]
				if !ok {
					return nil, fmt.Errorf("%w: right context %d of state %d",
						dfa.ErrInconsistentDFA, acc.RightContext.State, cls[0])
				}
				acc.RightContext.State = to
			}
			accepts[i] = acc
		}
		state := m.AddState(nb.id, accepts...)
		for _, old := range cls {
			s, err := d.State(old)
			if err != nil {
				return nil, err
			}
			for c, t := range s.Out {
				to, ok := newOf[t]
				if !ok {
					return nil, fmt.Errorf("%w: transition %d --%d--> %d", dfa.ErrInconsistentDFA, old, c, t)
				}
				state.Out[c] = to
			}
		}
	}
	return m, nil
}
