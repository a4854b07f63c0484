package main

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/squirrel/peg"
	"github.com/npillmayer/squirrel/peg/tree"
	"github.com/pterm/pterm"
)

// leveler collects the nodes of a tree into a leveled list, suitable for
// pterm's tree printer.
type leveler struct {
	ll pterm.LeveledList
}

var _ tree.Listener = &leveler{}

func (l *leveler) Enter(n *tree.Node, ctxt tree.Ctxt) bool {
	l.ll = append(l.ll, pterm.LeveledListItem{
		Level: ctxt.Level,
		Text:  fmt.Sprintf("%s %s", n.Label, ctxt.Span),
	})
	return true
}

func (l *leveler) Exit(n *tree.Node, ctxt tree.Ctxt) interface{} {
	return nil
}

func (l *leveler) Terminal(n *tree.Node, ctxt tree.Ctxt) interface{} {
	text := fmt.Sprintf("%s %q", n.Label, n.Text)
	if n.IsSyntaxError() {
		text = pterm.Red(text)
	}
	l.ll = append(l.ll, pterm.LeveledListItem{
		Level: ctxt.Level,
		Text:  text,
	})
	return nil
}

func leveledList(root *tree.Node) pterm.LeveledList {
	l := &leveler{}
	tree.NewCursor(root).TopDown(l, tree.LtoR, tree.Continue)
	tracer().Debugf("|ll| = %d", len(l.ll))
	return l.ll
}

// renderTree displays a tree on the terminal.
func renderTree(root *tree.Node) {
	tracer().Debugf("tree = %s", root)
	ll := leveledList(root)
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
}

func renderStats(stats peg.Stats) {
	data := pterm.TableData{
		{"Counter", "Value"},
		{"rule evaluations", strconv.Itoa(stats.RuleEvaluations)},
		{"memo hits", strconv.Itoa(stats.MemoHits)},
		{"left recursive cycles", strconv.Itoa(stats.CycleHits)},
		{"growth iterations", strconv.Itoa(stats.GrowthIterations)},
		{"maximum depth", strconv.Itoa(stats.MaxDepth)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func renderMemo(p *peg.Parser) {
	data := pterm.TableData{{"Pos", "Rule", "Result", "Text"}}
	for _, e := range p.MemoEntries() {
		result := "no match"
		text := ""
		if e.Match.IsMatch() {
			result = e.Match.Span().String()
			text = strconv.Quote(e.Match.Text(p.Input()))
		}
		data = append(data, []string{strconv.Itoa(e.Pos), e.Rule.Name, result, text})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	furthest := p.Furthest()
	pterm.Info.Println(fmt.Sprintf("furthest position examined: %d (%s)", furthest, p.FurthestPosition()))
}
