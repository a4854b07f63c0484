package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/squirrel/peg/tree"
	"github.com/pterm/pterm"
)

// evaluator computes the value of an AST for the expression grammar.
type evaluator struct {
	err error
}

var _ tree.Listener = &evaluator{}

func (ev *evaluator) Enter(n *tree.Node, ctxt tree.Ctxt) bool {
	return ev.err == nil
}

func (ev *evaluator) Exit(n *tree.Node, ctxt tree.Ctxt) interface{} {
	if ev.err != nil {
		return 0
	}
	switch n.Label {
	case tree.RootLabel:
		if len(n.Children) != 1 {
			ev.err = fmt.Errorf("expected a single expression, have %d", len(n.Children))
			return 0
		}
		return n.Child(0).Value
	case "add", "mul":
		if len(n.Children) != 3 {
			ev.err = fmt.Errorf("malformed operation %q", n.Text)
			return 0
		}
		l, _ := n.Child(0).Value.(int)
		r, _ := n.Child(2).Value.(int)
		op, _ := n.Child(1).Value.(string)
		switch op {
		case "+":
			return l + r
		case "-":
			return l - r
		case "*":
			return l * r
		case "/":
			if r == 0 {
				ev.err = errors.New("division by zero")
				return 0
			}
			return l / r
		}
		ev.err = fmt.Errorf("unknown operator %q", op)
	}
	return 0
}

func (ev *evaluator) Terminal(n *tree.Node, ctxt tree.Ctxt) interface{} {
	switch n.Label {
	case "num":
		v, err := strconv.Atoi(strings.TrimSpace(n.Text))
		if err != nil && ev.err == nil {
			ev.err = err
		}
		return v
	case "op":
		return n.Text
	}
	return nil
}

// evaluate computes the value of an arithmetic expression.
func evaluate(root *tree.Node) (int, error) {
	ev := &evaluator{}
	v := tree.NewCursor(root).TopDown(ev, tree.LtoR, tree.Break)
	if ev.err != nil {
		return 0, ev.err
	}
	n, _ := v.(int)
	return n, nil
}

func printValue(v int) {
	pterm.Info.Println(fmt.Sprintf("= %d", v))
}
