/*
Package lexmach provides an adapter to use the lexmachine scanner generator as a
scanner.Tokenizer.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine compiles its own DFA from regular expressions. This makes it a
reference to check automata built by other means against: a DFA tokenizer and a
lexmachine tokenizer for the same token definitions have to produce the same
tokens.

	rules := []lexmach.Rule{
		lexmach.Literal("+", PLUS),
		{Pattern: `[a-z]+`, Token: ID},
		{Pattern: `( |\t)+`, Token: SPACE},
	}

Having that, clients use `NewLMAdapter` to compile the rules into a
scanner.Tokenizer. Token types passed as skip are matched but not delivered.
NewLMAdapter will return an error if compiling the DFA failed.

	LM, err := lexmach.NewLMAdapter(rules, SPACE)
	scan, err := LM.Scanner("input string to tokenize")
	for token := scan.NextToken(); token.TokType() != scanner.EOF; token = scan.NextToken() {
		…
	}

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
