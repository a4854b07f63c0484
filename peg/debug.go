package peg

import (
	"bytes"
	"fmt"
	"strings"
)

// DumpMemo traces the memo table of the most recent parse. For debugging
// purposes.
func (p *Parser) DumpMemo() {
	tracer().Debugf("--- Memo table (%d entries) ----------------------", len(p.memo))
	for _, e := range p.MemoEntries() {
		tracer().Debugf("[%4d] %-20s %v", e.Pos, e.Rule.Name, e.Match)
	}
	tracer().Debugf("-------------------------------------------------------")
}

// TreeString prints a match and its sub-matches as an indented tree, one
// match per line. Terminals show the text they matched.
func TreeString(m *Match, input []rune) string {
	var b bytes.Buffer
	writeTree(&b, m, input, 0)
	return b.String()
}

func writeTree(b *bytes.Buffer, m *Match, input []rune, level int) {
	b.WriteString(strings.Repeat("  ", level))
	if !m.IsMatch() {
		b.WriteString("NO_MATCH\n")
		return
	}
	if name := m.RuleName(); name != "" {
		b.WriteString(name)
		b.WriteString(" <- ")
	}
	if label := m.Label(); label != "" {
		b.WriteString(label)
		b.WriteString(": ")
	}
	b.WriteString(m.clause.Kind().String())
	if m.clause.Kind() == KindFirst {
		fmt.Fprintf(b, "#%d", m.choice)
	}
	fmt.Fprintf(b, " %d+%d", m.pos, m.len)
	if len(m.children) == 0 {
		fmt.Fprintf(b, " %q", m.Text(input))
	}
	b.WriteByte('\n')
	for _, child := range m.children {
		writeTree(b, child, input, level+1)
	}
}
