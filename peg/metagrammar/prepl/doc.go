/*
Command prepl is an interactive command line tool (P.REPL) for experiments
with parsing expression grammars. Grammars are read in the notation of
package metagrammar; without a grammar file, a small grammar for arithmetic
expressions is used.

    prepl parse --grammar sums.peg "1+2+3"
    prepl repl

P.REPL displays abstract syntax trees and, on request, the memo table and
counters of the parser. For the built-in expression grammar it evaluates
the input, too.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'squirrel.prepl'
func tracer() tracing.Trace {
	return tracing.Select("squirrel.prepl")
}
