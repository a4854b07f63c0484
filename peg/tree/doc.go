/*
Package tree derives syntax trees from the matches of package peg.

A match returned by a peg.Parser is already a complete parse tree, but it is
bound to the clauses of the grammar and mostly too detailed for clients.
Package tree offers two views onto a match:

■ CST creates a concrete syntax tree, with one node for every sub-match.
Nodes for top-level rule matches are labeled with the rule's name.

■ AST creates an abstract syntax tree, keeping only nodes for clauses which
carry a label (see peg.Label). Unlabeled matches are unwrapped, i.e. their
labeled descendants are lifted to the nearest labeled ancestor.

Parse is a convenience function to parse an input and build an AST in one
step. It reports unparsable input as a SyntaxError. With option
AllowSyntaxErrors, trailing input which could not be matched is instead
added to the tree as a node labeled "<SyntaxError>".

Trees are walked using a Cursor and a Listener, top-down, with children
visited left-to-right or right-to-left:

    cursor := tree.NewCursor(root)
    value := cursor.TopDown(listener, tree.LtoR, tree.Continue)

Tracing

Package tree traces to key 'squirrel.tree'. Inconsistencies between a tree
and its input are reported as errors. If configuration flag
'panic-on-tree-inconsistency' is set, they will panic instead, which is
helpful for post-mortem debugging.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'squirrel.tree'.
func tracer() tracing.Trace {
	return tracing.Select("squirrel.tree")
}
