package peg

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/squirrel"
)

// memoTable holds the best match found so far for every rule application.
// Entries are only ever replaced by matches which beat them.
type memoTable map[memoKey]*Match

func (mt memoTable) get(k memoKey) (*Match, bool) {
	m, ok := mt[k]
	return m, ok
}

func (mt memoTable) put(k memoKey, m *Match) {
	mt[k] = m
}

// MemoEntry is an entry of the memo table of a parser, i.e. the final result
// of applying a rule at a position. Failures are included, with Match set
// to NoMatch.
type MemoEntry struct {
	Rule  *Rule
	Pos   int
	Match *Match
}

// memoKeyComparator orders memo keys by position, then by rule.
func memoKeyComparator(a, b interface{}) int {
	k1, k2 := a.(memoKey), b.(memoKey)
	if c := utils.IntComparator(k1.pos, k2.pos); c != 0 {
		return c
	}
	return utils.IntComparator(k1.rule, k2.rule)
}

// MemoEntries returns the memo table of the most recent parse, ordered by
// input position and rule index. The table is kept until the next parse
// starts.
func (p *Parser) MemoEntries() []MemoEntry {
	sorted := treemap.NewWith(memoKeyComparator)
	for k, m := range p.memo {
		sorted.Put(k, m)
	}
	entries := make([]MemoEntry, 0, sorted.Size())
	it := sorted.Iterator()
	for it.Next() {
		k := it.Key().(memoKey)
		entries = append(entries, MemoEntry{
			Rule:  p.g.rules[k.rule],
			Pos:   k.pos,
			Match: it.Value().(*Match),
		})
	}
	return entries
}

// Furthest returns the furthest input position the most recent parse has
// examined on the level of rules: the maximum of the end positions of all
// successful rule matches and the start positions of all failed rule
// applications. For inputs which could not be parsed completely, this
// is usually a good estimate of where a syntax error is located.
func (p *Parser) Furthest() int {
	furthest := 0
	for k, m := range p.memo {
		at := k.pos
		if m.IsMatch() {
			at = m.End()
		}
		if at > furthest {
			furthest = at
		}
	}
	return furthest
}

// FurthestPosition returns Furthest as a line/column position.
func (p *Parser) FurthestPosition() squirrel.Position {
	return squirrel.PositionOf(p.input, p.Furthest())
}
