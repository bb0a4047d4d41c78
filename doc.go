/*
Package lexgen is the backend toolbox of a lexical-analyzer generator.

Earlier stages (regular expression parsing, NFA construction, subset construction)
produce a deterministic finite automaton. The packages of this module take it from
there: they reduce the automaton to its minimal form, export it as tables for code
generation and run it as a scanner. Package structure is as follows:

■ dfa: Package dfa defines the automaton data structure shared by all stages,
together with simulation, validation and export helpers.

■ dfa/minimize: Package minimize implements state minimization by partition
refinement, preserving start conditions and right-context references.

■ dfa/sparse: Package sparse implements a sparse integer matrix used for
transition tables.

■ scanner: Package scanner drives a DFA as a longest-match tokenizer.

■ scanner/lexmach: Package lexmach adapts the lexmachine scanner generator to the
scanner interface.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexgen
