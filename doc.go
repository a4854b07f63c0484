/*
Package squirrel is a parsing toolbox for Parsing Expression Grammars (PEGs).

Squirrel parses arbitrary PEGs, including grammars containing direct or indirect
left recursion, using memoized recursive descent. Left-recursive rules are
handled by iteratively growing a seed match until it can no longer be
improved. Package structure is as follows:

■ peg: Package peg implements the clause algebra, rules and grammars, and the
memoizing parser with support for left recursion.

■ peg/tree: Package tree derives concrete and abstract syntax trees from
match results and provides tree walking.

■ peg/metagrammar: Package metagrammar compiles textual PEG grammar
descriptions into grammars.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package squirrel
