package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"fmt"

	"github.com/npillmayer/squirrel"
)

// A Cursor is a movable mark within a syntax tree, intended for navigating
// over nodes and for walking (sub-)trees.
type Cursor struct {
	current   *Node
	startNode *Node
	stack     []position // sibling positions from the start node down to current
}

type position struct {
	index int
	dir   Direction
}

// NewCursor sets up a cursor at node n. Returns nil if n is nil.
func NewCursor(n *Node) *Cursor {
	if n == nil {
		return nil
	}
	return &Cursor{
		current:   n,
		startNode: n,
		stack:     make([]position, 0, 64),
	}
}

// Node returns the node the cursor currently points to.
func (c *Cursor) Node() *Node {
	return c.current
}

// Up moves the cursor up to the parent node of the current node, if any.
// The cursor will not move above the node it has been set up at.
func (c *Cursor) Up() (*Node, bool) {
	if c.current == c.startNode || c.current.parent == nil {
		return c.current, false
	}
	c.current = c.current.parent
	if len(c.stack) == 0 {
		stuck(fmt.Sprintf("cursor at %s has no position on its path", c.current.Label))
	} else {
		c.stack = c.stack[:len(c.stack)-1]
	}
	tracer().Debugf("UP Cursor @ %s", c.current.Label)
	return c.current, true
}

// Down moves the cursor down to the first child of the current node, if any.
// dir lets clients start at either the leftmost child (default) or the
// rightmost child. Any direction other than RtoL counts as LtoR.
func (c *Cursor) Down(dir Direction) (*Node, bool) {
	if c.current.IsLeaf() {
		return c.current, false
	}
	i := 0
	if dir == RtoL {
		i = len(c.current.Children) - 1
	} else {
		dir = LtoR
	}
	c.stack = append(c.stack, position{index: i, dir: dir})
	c.current = c.current.Children[i]
	tracer().Debugf("DOWN Cursor @ %s", c.current.Label)
	return c.current, true
}

// Sibling moves the cursor to the next sibling of the current node, if any,
// in the direction given for Down.
func (c *Cursor) Sibling() (*Node, bool) {
	if len(c.stack) == 0 || c.current.parent == nil {
		return c.current, false
	}
	pos := &c.stack[len(c.stack)-1]
	next := pos.index + int(pos.dir)
	siblings := c.current.parent.Children
	if next < 0 || next >= len(siblings) {
		return c.current, false
	}
	pos.index = next
	c.current = siblings[next]
	tracer().Debugf("SIBLING Cursor @ %s", c.current.Label)
	return c.current, true
}

// TopDown traverses a sub-tree top-down, applying Listener-methods for all
// nodes encountered. It returns a user-defined value, calculated by the
// listener.
//
// Before a node's Exit method is called, all of its children carry the value
// computed for them in their Value field.
func (c *Cursor) TopDown(listener Listener, dir Direction, breakmode Breakmode) interface{} {
	c.startNode = c.current
	c.stack = c.stack[:0]
	tracer().Debugf("TopDown starting at node %s", c.current.Label)
	return c.traverseTopDown(listener, dir, breakmode, 0)
}

func (c *Cursor) traverseTopDown(listener Listener, dir Direction, breakmode Breakmode, level int) interface{} {
	node := c.current
	if node.IsLeaf() {
		return listener.Terminal(node, makeCtxt(node.Span, level))
	}
	ctxt := makeCtxt(node.Span, level)
	doContinue := listener.Enter(node, ctxt)
	if doContinue || breakmode == Continue {
		if _, ok := c.Down(dir); ok {
			for ; ok; _, ok = c.Sibling() {
				c.current.Value = c.traverseTopDown(listener, dir, breakmode, level+1)
			}
			c.Up()
		}
	}
	return listener.Exit(node, ctxt)
}

// Direction lets clients decide wether children nodes should be traversed
// left-to-right (default) or right-to-left.
type Direction int

// Children nodes may be traversed left-to-right (default) or right-to-left.
const (
	LtoR Direction = 1
	RtoL Direction = -1
)

// Breakmode is a client hint wether to stop traversing on break-signals or not.
type Breakmode int

// Setting Continue will always traverse a complete (sub-)tree. Break will skip
// traversing sub-tree as soon as an Enter-function signals a break.
const (
	Continue Breakmode = iota
	Break
)

// --- Listener --------------------------------------------------------------

// Listener is a type for walking a syntax tree.
//
// Enter is called for inner nodes and returns a boolean value indicating if
// the traversal should continue to the children of this node. Exit and
// Terminal may return user-defined values to be propagated upwards of the
// tree. Terminal is called for leaves.
type Listener interface {
	Enter(*Node, Ctxt) bool
	Exit(*Node, Ctxt) interface{}
	Terminal(*Node, Ctxt) interface{}
}

// Ctxt is a context structure for Listeners.
type Ctxt struct {
	Span  squirrel.Span // span of input positions covered by the node
	Level int           // nesting level, relative to the start of the walk
}

func makeCtxt(span squirrel.Span, level int) Ctxt {
	return Ctxt{
		Span:  span,
		Level: level,
	}
}
