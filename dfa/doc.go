/*
Package dfa defines deterministic finite automata as they are passed between the
stages of a lexer generator.

A DFA has an ordered list of start states, one per lexical start condition, and a
map from state numbers to states. Each state carries a (possibly empty) list of
accept actions, ordered by priority, and a partial transition function over input
symbols. An accept action may reference another state of the same automaton as a
right context: the action fires only if the input following the lexeme can be
matched from that state.

	d := dfa.New(0)                        // one start condition, start state 0
	d.AddState(0)
	d.AddState(1, dfa.Accept{Token: Ident}) // accepting state
	d.AddTransition(0, 'a', 1)
	d.AddTransition(1, 'a', 1)
	m := d.Match(0, dfa.Symbols("aaa"), nil) // m.Length == 3

Automata may be minimized with package dfa/minimize, exported as sparse
transition tables (TransitionTable), as Graphviz graphs (WriteGraphViz) or
dumped as a text table for debugging (Dump).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dfa
