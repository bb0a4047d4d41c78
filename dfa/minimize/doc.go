/*
Package minimize reduces a DFA to the smallest automaton accepting the same
language with the same accept actions.

Minimization is done in three steps:

■ A preimage index inverts the transition function, per input symbol. Missing
transitions are taken to lead into a virtual sink state, which never shows up
in the result. Right-context references are inverted like transitions, so two
states may share a class only if their right contexts do.

■ A partition refiner computes the coarsest stable partition of the state set
(Hopcroft's algorithm). States start out grouped by their accept actions; a
class is split whenever the preimage of another class under some symbol cuts
through it. Of two halves of a settled class, the smaller one goes back to the
worklist.

■ A renumberer assigns new state numbers to the classes and rebuilds states,
remapping transition targets and right-context references.

Start conditions are never merged: the minimized automaton has start states
0…k-1, in the order of the original start conditions, even if some of them turn
out to be equivalent. In that case the equivalent state is duplicated.

Usage

	m, err := minimize.Minimize(d)
	if err != nil { … }          // d has been inconsistent

Minimization may be configured with options, either explicitly or from an
application configuration:

	m, err := minimize.Minimize(d, minimize.FromConfig(conf), minimize.WithStats(&stats))

Errors always wrap dfa.ErrInconsistentDFA and signal a bug in the stage which
constructed the input automaton.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package minimize

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexgen.minimize'.
func tracer() tracing.Trace {
	return tracing.Select("lexgen.minimize")
}
