package minimize

import (
	"github.com/npillmayer/lexgen/dfa"
)

// Minimize returns the minimal automaton equivalent to d. d is not modified.
//
// The result has start states 0…k-1 for the k start conditions of d, in order.
// Accept actions keep their order; right-context references are remapped to the
// new state numbers.
//
// An error is returned only if d references a state it does not contain; it
// wraps dfa.ErrInconsistentDFA.
func Minimize(d *dfa.DFA, opts ...Option) (*dfa.DFA, error) {
	o := newOptions(opts...)
	if o.validate {
		if err := d.Validate(); err != nil {
			tracer().Errorf("cannot minimize: %v", err)
			return nil, err
		}
	}
	classes, err := refine(d, o)
	if err != nil {
		tracer().Errorf("cannot minimize: %v", err)
		return nil, err
	}
	m, err := renumber(d, classes)
	if err != nil {
		tracer().Errorf("cannot minimize: %v", err)
		return nil, err
	}
	if o.stats != nil {
		o.stats.MinStates = len(m.States)
	}
	tracer().Infof("minimized DFA from %d to %d states (%s worklist)", len(d.States), len(m.States), o.order)
	return m, nil
}

// MustMinimize is like Minimize, but panics on inconsistent input.
func MustMinimize(d *dfa.DFA, opts ...Option) *dfa.DFA {
	m, err := Minimize(d, opts...)
	if err != nil {
		panic(err)
	}
	return m
}
