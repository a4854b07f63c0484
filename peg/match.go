package peg

import (
	"fmt"

	"github.com/npillmayer/squirrel"
)

// Match is the result of matching a clause at an input position. Matches are
// immutable once created and may be shared between parse trees: the memo
// table hands out the same match to every caller asking for a rule at a
// position.
//
// The sentinel NoMatch represents failure. It is compared by identity.
type Match struct {
	clause   Clause
	rule     *Rule    // rule which produced this match at its top level, or nil
	pos      int      // start position in code points
	len      int      // number of code points consumed
	children []*Match // sub-matches, in input order
	choice   int      // winning alternative for matches of First clauses
}

// NoMatch is the unique failure result.
var NoMatch = &Match{pos: -1, len: -1, choice: -1}

func terminal(c Clause, pos, length int) *Match {
	return &Match{clause: c, pos: pos, len: length}
}

// IsMatch is false for NoMatch and nil, true otherwise.
func (m *Match) IsMatch() bool {
	return m != nil && m != NoMatch
}

// Clause returns the clause which produced this match.
func (m *Match) Clause() Clause {
	return m.clause
}

// Rule returns the rule which produced this match, or nil if the match is
// not the top-level result of a rule.
func (m *Match) Rule() *Rule {
	return m.rule
}

// RuleName returns the name of the producing rule, or "".
func (m *Match) RuleName() string {
	if m.rule == nil {
		return ""
	}
	return m.rule.Name
}

// Label returns the AST label of the producing clause, or "".
func (m *Match) Label() string {
	if m.clause == nil {
		return ""
	}
	return m.clause.Label()
}

// Pos returns the start position of the match.
func (m *Match) Pos() int {
	return m.pos
}

// Len returns the number of code points matched.
func (m *Match) Len() int {
	return m.len
}

// End returns the position just behind the match.
func (m *Match) End() int {
	return m.pos + m.len
}

// Span returns the input span covered by the match. Failures cover the
// null span.
func (m *Match) Span() squirrel.Span {
	if !m.IsMatch() {
		return squirrel.Span{}
	}
	return squirrel.MakeSpan(m.pos, m.len)
}

// Children returns the sub-matches. Clients must not modify the slice.
func (m *Match) Children() []*Match {
	return m.children
}

// Choice returns the index of the winning alternative for matches of
// First clauses, and 0 for any other match.
func (m *Match) Choice() int {
	return m.choice
}

// Text returns the part of input covered by the match.
func (m *Match) Text(input []rune) string {
	if !m.IsMatch() || m.End() > len(input) {
		return ""
	}
	return string(input[m.pos:m.End()])
}

func (m *Match) String() string {
	if m == nil {
		return "<nil>"
	}
	if m == NoMatch {
		return "NO_MATCH"
	}
	name := m.RuleName()
	if name == "" {
		name = m.clause.String()
	}
	return fmt.Sprintf("%s:%d+%d", name, m.pos, m.len)
}

// producedBy marks m as the top-level result of rule r. Matches handed
// through from a referenced rule already carry that rule; they are copied
// rather than modified.
func (m *Match) producedBy(r *Rule) *Match {
	if m.rule != nil && m.rule != r {
		cp := *m
		m = &cp
	}
	m.rule = r
	return m
}

// --- Ranking of matches ----------------------------------------------------

// Beats decides whether m is a strict improvement over other, a previous
// result for the same clause at the same position. It drives the growth
// loop for left recursion:
//
// ■ If other is nil (no previous result), any result beats it, even NoMatch.
//
// ■ Any successful match beats NoMatch. NoMatch never beats anything else.
//
// ■ For ordered choices, a match using an earlier alternative beats one
// using a later alternative.
//
// ■ Otherwise sub-matches are compared pairwise, left to right, and the
// first longer one wins.
//
// ■ If all common sub-matches are of equal length, more sub-matches win.
//
// Equal results do not beat each other. Comparing matches of clauses of
// different kinds is an error and will panic.
func (m *Match) Beats(other *Match) bool {
	if other == nil {
		return true
	}
	if m == NoMatch {
		return false
	}
	if other == NoMatch {
		return true
	}
	if m.clause.Kind() != other.clause.Kind() {
		panic(fmt.Sprintf("cannot compare matches of different clauses: %s vs %s",
			m.clause.Kind(), other.clause.Kind()))
	}
	if m.clause.Kind() == KindFirst && m.choice != other.choice {
		return m.choice < other.choice
	}
	for i := 0; i < len(m.children) && i < len(other.children); i++ {
		if a, b := m.children[i].len, other.children[i].len; a != b {
			return a > b
		}
	}
	return len(m.children) > len(other.children)
}
