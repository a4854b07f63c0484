/*
Package peg implements Parsing Expression Grammars (PEGs) and a memoizing
recursive descent parser for them, which is able to handle left recursion.

Building a Grammar

Grammars are composed from clauses. Terminal clauses match input directly,
composite clauses combine sub-clauses, and rule references refer to other
rules of the grammar by name:

    b := peg.NewGrammarBuilder("Sums")
    b.Rule("E", peg.First(
        peg.Seq(peg.Ref("E"), peg.Char('+'), peg.Ref("N")),
        peg.Ref("N")))
    b.Rule("N", peg.OneOrMore(peg.CharRange('0', '9')))
    g, err := b.Grammar()

Rule E above is left recursive. Classic recursive descent parsers would
loop forever for such a rule; package peg instead detects the cycle, seeds
the memo table with a failure and grows the match for E until it cannot be
improved any further. The resulting trees for left recursive rules are left
associative, i.e. "1+2+3" is parsed as ((1+2)+3).

The first rule of a grammar is its start rule. Rules may be referenced before
they are defined; all references are resolved when the grammar is built.
Referencing an undefined rule is an error (ErrRuleNotFound).

Parsing

A parser is created for a grammar and may be used for more than one input,
one at a time:

    parser := peg.NewParser(g)
    match := parser.Parse("1+2+3")
    if match.IsMatch() {
        fmt.Printf("matched %d code points\n", match.Len())
    }

Failing to match is not an error: the result is the sentinel NoMatch. A match
need not consume the complete input; clients should check the length of the
match (see package tree for a syntax-error tolerant tree).

Matches record the clause which produced them, their position and length
(both in code points), and their sub-matches. Every match produced at the
top level of a rule records the rule, too.

Ordered choice (First) commits to the first alternative which matches.
Within the growth loop for left recursion, the parser compares candidate
matches with Match.Beats. A match beats another one if it used an earlier
alternative, or, for the same alternative, if its sub-matches are longer,
compared left to right.

Concurrency

Grammars are immutable once built and may be shared between goroutines.
A parser holds the state of one parse (memo table and recursion path) and
must not be used concurrently. Create one parser per goroutine.

Tracing

The parser traces to key 'squirrel.peg'. If configuration flag
'peg-trace-matching' is set, or option TraceMatching(true) is given, every
rule evaluation is traced at level Debug.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package peg

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'squirrel.peg'.
func tracer() tracing.Trace {
	return tracing.Select("squirrel.peg")
}
