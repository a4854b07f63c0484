/*
Package metagrammar compiles textual descriptions of PEGs into grammars.

Grammar descriptions consist of rules of the form

    Name <- expression ;

The first rule is the start rule. Expressions use the following notation,
listed from loosest to tightest binding:

    e1 / e2         ordered choice
    e1 e2           sequence
    label:e         label e for the abstract syntax tree
    &e  !e          positive and negative lookahead
    e*  e+  e?      repetition and option
    ( e )           grouping; () matches the empty string
    Name            reference to a rule
    "abc"  'c'      string and character literals, with Go escape sequences
    [a-z_]  [^0-9]  character classes, optionally inverted
    .               any character
    `[0-9]+`        regular expression (lexmachine syntax)

Comments start with '#' and extend to the end of the line.

The parser for grammar descriptions is itself implemented with package peg:
the meta grammar (see MetaGrammar) uses left recursion for postfix operators.

    g, err := metagrammar.Compile("Sums", `
        E <- add:(E '+' N) / N ;   # left associative
        N <- num:[0-9]+ ;
    `)

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package metagrammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'squirrel.meta'.
func tracer() tracing.Trace {
	return tracing.Select("squirrel.meta")
}
