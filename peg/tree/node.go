package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/squirrel"
	"github.com/npillmayer/squirrel/peg"
)

// Special node labels.
const (
	RootLabel        = "<root>"        // root of an AST whose top match is unlabeled
	TerminalLabel    = "<Terminal>"    // unlabeled terminal match in a CST
	SyntaxErrorLabel = "<SyntaxError>" // unmatched trailing input
)

// Node is a node of a syntax tree.
type Node struct {
	Label    string        // AST label, rule name or one of the special labels
	Span     squirrel.Span // input positions covered
	Text     string        // input text covered
	Children []*Node
	Value    interface{} // user-defined value, set during tree walks
	match    *peg.Match  // nil for syntax error nodes
	parent   *Node
}

// Match returns the match a node has been derived from. Syntax error nodes
// return nil.
func (n *Node) Match() *peg.Match {
	return n.match
}

// Parent returns the parent node, or nil for the root node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Kind returns the kind of clause which produced the node. Syntax error
// nodes report KindNothing.
func (n *Node) Kind() peg.Kind {
	if n.match == nil {
		return peg.KindNothing
	}
	return n.match.Clause().Kind()
}

// IsSyntaxError is true for nodes covering unmatched input.
func (n *Node) IsSyntaxError() bool {
	return n.Label == SyntaxErrorLabel
}

// IsLeaf is true for nodes without children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Child returns the i-th child node, or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// OnlyChild returns the single child of a node. It is an error to call it for
// a node which has zero or more than one children.
func (n *Node) OnlyChild() (*Node, error) {
	if len(n.Children) != 1 {
		return nil, fmt.Errorf("expected node %s to have one child, has %d", n.Label, len(n.Children))
	}
	return n.Children[0], nil
}

// HasSyntaxErrors checks if the sub-tree starting at n contains syntax error
// nodes.
func (n *Node) HasSyntaxErrors() bool {
	if n.IsSyntaxError() {
		return true
	}
	for _, ch := range n.Children {
		if ch.HasSyntaxErrors() {
			return true
		}
	}
	return false
}

// Size returns the number of nodes in the sub-tree starting at n.
func (n *Node) Size() int {
	size := 1
	for _, ch := range n.Children {
		size += ch.Size()
	}
	return size
}

// String prints a sub-tree as an S-expression. Leaves are printed with
// their text, i.e. (sum num:"1" num:"2").
func (n *Node) String() string {
	var b bytes.Buffer
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *bytes.Buffer) {
	if n.IsLeaf() {
		b.WriteString(n.Label)
		b.WriteByte(':')
		b.WriteString(strconv.Quote(n.Text))
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Label)
	for _, ch := range n.Children {
		b.WriteByte(' ')
		ch.write(b)
	}
	b.WriteByte(')')
}

func (n *Node) add(child *Node) {
	if !n.Span.Contains(child.Span) {
		stuck(fmt.Sprintf("node %s%v does not cover child %s%v", n.Label, n.Span, child.Label, child.Span))
	}
	child.parent = n
	n.Children = append(n.Children, child)
}

func stuck(msg string) bool {
	tracer().Errorf("%s", msg)
	if gconf.GetBool("panic-on-tree-inconsistency") {
		panic(`Syntax tree is inconsistent.

Configuration flag panic-on-tree-inconsistency is set to true. It is aimed at
helping to debug a grammar and do a post-mortem of why a tree got malformed.
However, if this is a production environment and you did not expect this to
panic, please unset panic-on-tree-inconsistency to its default (false).

` + msg)
	}
	return true
}
