package tree

import (
	"errors"
	"fmt"

	"github.com/npillmayer/squirrel"
	"github.com/npillmayer/squirrel/peg"
)

// ErrNoMatch is returned when trying to build a tree from a failed match.
var ErrNoMatch = errors.New("cannot build a tree from a failed match")

// SyntaxError reports input which could not be parsed.
type SyntaxError struct {
	Position squirrel.Position // best guess of the location of the error
	Matched  int               // number of code points matched by the start rule, -1 for none
}

func (e *SyntaxError) Error() string {
	if e.Matched < 0 {
		return fmt.Sprintf("syntax error at %s: input does not match", e.Position)
	}
	return fmt.Sprintf("syntax error at %s: unexpected input after %d code points", e.Position, e.Matched)
}

// Option configures tree building.
type Option func(b *builder)

// RuleNames lets the AST contain a node for every top-level match of a rule,
// labeled with the rule's name. Explicit labels take precedence.
func RuleNames(b bool) Option {
	return func(bld *builder) {
		bld.ruleNames = b
	}
}

// AllowSyntaxErrors lets Parse accept inputs which are only partially
// matched. Unmatched trailing input is added to the root node as a child
// labeled "<SyntaxError>".
func AllowSyntaxErrors(b bool) Option {
	return func(bld *builder) {
		bld.allowErrors = b
	}
}

type builder struct {
	input       []rune
	ruleNames   bool
	allowErrors bool
}

func newBuilder(input []rune, opts []Option) *builder {
	b := &builder{input: input}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *builder) node(label string, m *peg.Match) *Node {
	return &Node{
		Label: label,
		Span:  m.Span(),
		Text:  m.Text(b.input),
		match: m,
	}
}

// --- AST -------------------------------------------------------------------

// AST creates an abstract syntax tree from a match. The root node
// represents the match itself; it is labeled with the match's label, or
// RootLabel if it has none. Every labeled descendant becomes a node, attached
// to its nearest labeled ancestor.
func AST(m *peg.Match, input []rune, opts ...Option) (*Node, error) {
	if !m.IsMatch() {
		return nil, ErrNoMatch
	}
	b := newBuilder(input, opts)
	label := b.astLabel(m)
	if label == "" {
		label = RootLabel
	}
	root := b.node(label, m)
	b.collectLabeled(root, m)
	tracer().Debugf("AST = %s", root)
	return root, nil
}

func (b *builder) astLabel(m *peg.Match) string {
	if l := m.Label(); l != "" {
		return l
	}
	if b.ruleNames {
		return m.RuleName()
	}
	return ""
}

func (b *builder) collectLabeled(parent *Node, m *peg.Match) {
	for _, child := range m.Children() {
		if label := b.astLabel(child); label != "" {
			n := b.node(label, child)
			parent.add(n)
			b.collectLabeled(n, child)
		} else {
			b.collectLabeled(parent, child)
		}
	}
}

// --- CST -------------------------------------------------------------------

// CST creates a concrete syntax tree from a match, with one node for every
// sub-match. Nodes are labeled with the name of the rule which produced a
// match; other matches use their clause's label, TerminalLabel for terminals,
// or the name of the kind of their clause.
func CST(m *peg.Match, input []rune) (*Node, error) {
	if !m.IsMatch() {
		return nil, ErrNoMatch
	}
	b := newBuilder(input, nil)
	return b.cst(m), nil
}

func (b *builder) cst(m *peg.Match) *Node {
	n := b.node(cstLabel(m), m)
	for _, child := range m.Children() {
		n.add(b.cst(child))
	}
	return n
}

func cstLabel(m *peg.Match) string {
	if name := m.RuleName(); name != "" {
		return name
	}
	if label := m.Label(); label != "" {
		return label
	}
	if m.Clause().Kind().IsTerminal() {
		return TerminalLabel
	}
	return m.Clause().Kind().String()
}

// --- Parsing ---------------------------------------------------------------

// Parse parses input with parser p and creates an AST for the result.
//
// If the start rule does not match, or if it does not match the complete
// input, Parse returns a *SyntaxError. With option AllowSyntaxErrors, an
// incomplete match results in a tree whose root has an additional last child
// labeled SyntaxErrorLabel, covering the unmatched input.
func Parse(p *peg.Parser, input string, opts ...Option) (*Node, error) {
	m := p.Parse(input)
	runes := p.Input()
	if !m.IsMatch() {
		return nil, &SyntaxError{
			Position: p.FurthestPosition(),
			Matched:  -1,
		}
	}
	root, err := AST(m, runes, opts...)
	if err != nil {
		return nil, err
	}
	if m.End() == len(runes) {
		return root, nil
	}
	b := newBuilder(runes, opts)
	if !b.allowErrors {
		at := p.Furthest()
		if at < m.End() {
			at = m.End()
		}
		return nil, &SyntaxError{
			Position: squirrel.PositionOf(runes, at),
			Matched:  m.Len(),
		}
	}
	errSpan := squirrel.Span{m.End(), len(runes)}
	errNode := &Node{
		Label: SyntaxErrorLabel,
		Span:  errSpan,
		Text:  string(runes[m.End():]),
	}
	root.Span = root.Span.Extend(errSpan)
	root.Text = string(runes[root.Span.From():root.Span.To()])
	root.add(errNode)
	tracer().Infof("syntax error at %s, unmatched input %q",
		squirrel.PositionOf(runes, m.End()), errNode.Text)
	return root, nil
}
