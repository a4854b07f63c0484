package peg

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/gconf"
)

// Parser is a memoizing recursive descent parser for a grammar. It handles
// direct and indirect left recursion by growing seed matches.
//
// A parser keeps the memo table of its most recent parse for inspection
// (see MemoEntries and Furthest). Every call to Parse or ParseRule starts
// from scratch. Parsers must not be used by more than one goroutine at a time.
type Parser struct {
	g         *Grammar
	startName string
	traceOn   bool
	input     []rune
	memo      memoTable
	recPath   recPath
	regexps   *regexpState // created lazily for grammars with regexp clauses
	depth     int
	stats     Stats
}

// Stats collects counters of the most recent parse.
type Stats struct {
	RuleEvaluations  int // evaluations of a rule's clause
	MemoHits         int // rule applications answered from the memo table
	CycleHits        int // rule applications found to be left recursive
	GrowthIterations int // extra evaluations growing left recursive matches
	MaxDepth         int // maximum nesting of rule applications
}

func (s Stats) String() string {
	return fmt.Sprintf("evaluations=%d memo-hits=%d cycles=%d growth=%d depth=%d",
		s.RuleEvaluations, s.MemoHits, s.CycleHits, s.GrowthIterations, s.MaxDepth)
}

// Option configures a parser.
type Option func(p *Parser)

// TraceMatching enables tracing of every rule application, at trace level
// Debug. The default is taken from configuration key 'peg-trace-matching'.
func TraceMatching(b bool) Option {
	return func(p *Parser) {
		p.traceOn = b
	}
}

// StartRule sets the rule which Parse starts with. The default is the first
// rule of the grammar.
func StartRule(name string) Option {
	return func(p *Parser) {
		p.startName = name
	}
}

// NewParser creates a parser for grammar g. Returns nil if g is nil.
func NewParser(g *Grammar, opts ...Option) *Parser {
	if g == nil {
		tracer().Errorf("cannot create parser without a grammar")
		return nil
	}
	p := &Parser{
		g:         g,
		startName: g.StartRule().Name,
		traceOn:   gconf.GetBool("peg-trace-matching"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Grammar returns the grammar of the parser.
func (p *Parser) Grammar() *Grammar {
	return p.g
}

// Stats returns the counters of the most recent parse.
func (p *Parser) Stats() Stats {
	return p.stats
}

// Input returns the input of the most recent parse.
func (p *Parser) Input() []rune {
	return p.input
}

// Parse matches the start rule at the beginning of input. It returns the
// match for the start rule, or NoMatch. The match may cover only a prefix of
// the input; clients have to check the match length if they require the
// complete input to be consumed.
func (p *Parser) Parse(input string) *Match {
	m, err := p.ParseRule(p.startName, input)
	if err != nil {
		tracer().Errorf("%v", err)
		return NoMatch
	}
	return m
}

// ParseRule is like Parse, but starts with the rule named rulename. It
// returns an error if the grammar has no such rule.
func (p *Parser) ParseRule(rulename string, input string) (*Match, error) {
	r, ok := p.g.Rule(rulename)
	if !ok {
		return NoMatch, fmt.Errorf("%w: %s", ErrRuleNotFound, rulename)
	}
	p.reset([]rune(input))
	tracer().Debugf("parsing %d code points with rule %s", len(p.input), r.Name)
	m := p.match(r, 0, -1)
	tracer().Debugf("parse result %v, %s", m, p.stats)
	return m, nil
}

// Parse is a shortcut to create a parser for g and parse input with it. If
// startRule is given, parsing starts with this rule instead of the first one.
func Parse(g *Grammar, input string, startRule ...string) (*Match, error) {
	if g == nil {
		return NoMatch, ErrEmptyGrammar
	}
	p := NewParser(g)
	name := g.StartRule().Name
	if len(startRule) > 0 && startRule[0] != "" {
		name = startRule[0]
	}
	return p.ParseRule(name, input)
}

func (p *Parser) reset(input []rune) {
	p.input = input
	p.memo = make(memoTable)
	p.recPath = make(recPath)
	p.regexps = nil
	p.depth = 0
	p.stats = Stats{}
}

// --- Rule application ------------------------------------------------------

// match applies rule r at position pos. rulePos is the start position of
// the rule application which contains this one.
//
// If the application is already active, we found a left recursive cycle: the
// application is marked as the cycle's head and the current memo entry is
// returned, a failure for the first round. Otherwise the rule's clause is
// evaluated again and again, as long as the memo entry for the application
// improves and the application is a cycle head. Every round may use the
// result of the previous one.
func (p *Parser) match(r *Rule, pos int, rulePos int) *Match {
	key := memoKey{rule: r.index, pos: pos}
	if p.recPath.contains(key) {
		p.stats.CycleHits++
		p.recPath.markHead(key)
		m, found := p.memo.get(key)
		if !found {
			m = NoMatch
			p.memo.put(key, m)
		}
		p.trace("cycle %s @ %d -> %v", r.Name, pos, m)
		return m
	}
	if pos != rulePos {
		if m, found := p.memo.get(key); found {
			p.stats.MemoHits++
			return m
		}
	}
	p.enter(r, pos)
	p.recPath.enter(key)
	for {
		p.stats.RuleEvaluations++
		m := p.matchClause(r.clause, pos, pos)
		if m != NoMatch {
			m = m.producedBy(r)
		}
		old, _ := p.memo.get(key)
		if !m.Beats(old) {
			break
		}
		p.memo.put(key, m)
		if !p.recPath.isHead(key) {
			break
		}
		p.stats.GrowthIterations++
		p.trace("growing %s @ %d: %v", r.Name, pos, m)
	}
	p.recPath.leave(key)
	m, _ := p.memo.get(key)
	p.exit(r, pos, m)
	return m
}

func (p *Parser) enter(r *Rule, pos int) {
	p.depth++
	if p.depth > p.stats.MaxDepth {
		p.stats.MaxDepth = p.depth
	}
	p.trace("enter %s @ %d", r.Name, pos)
}

func (p *Parser) exit(r *Rule, pos int, m *Match) {
	p.trace("exit  %s @ %d -> %v", r.Name, pos, m)
	p.depth--
}

func (p *Parser) trace(format string, args ...interface{}) {
	if p.traceOn {
		indent := strings.Repeat(". ", p.depth)
		tracer().Debugf(indent+format, args...)
	}
}

// --- Clause matching -------------------------------------------------------

// matchClause matches clause c at pos. rulePos is the start position of the
// innermost rule application containing c.
func (p *Parser) matchClause(c Clause, pos int, rulePos int) *Match {
	switch c := c.(type) {
	case *NothingClause:
		return terminal(c, pos, 0)
	case *CharClause:
		if pos < len(p.input) && p.input[pos] == c.r {
			return terminal(c, pos, 1)
		}
		return NoMatch
	case *StrClause:
		if pos+len(c.s) > len(p.input) {
			return NoMatch
		}
		for i, r := range c.s {
			if p.input[pos+i] != r {
				return NoMatch
			}
		}
		return terminal(c, pos, len(c.s))
	case *CharSetClause:
		if pos < len(p.input) && c.Contains(p.input[pos]) {
			return terminal(c, pos, 1)
		}
		return NoMatch
	case *AnyCharClause:
		if pos < len(p.input) {
			return terminal(c, pos, 1)
		}
		return NoMatch
	case *RegexpClause:
		return p.matchRegexp(c, pos)
	case *SeqClause:
		children := make([]*Match, 0, len(c.subs))
		at := pos
		for _, sub := range c.subs {
			m := p.matchClause(sub, at, rulePos)
			if m == NoMatch {
				return NoMatch
			}
			children = append(children, m)
			at = m.End()
		}
		return &Match{clause: c, pos: pos, len: at - pos, children: children}
	case *FirstClause:
		for i, sub := range c.subs {
			if m := p.matchClause(sub, pos, rulePos); m != NoMatch {
				return &Match{clause: c, pos: pos, len: m.len, children: []*Match{m}, choice: i}
			}
		}
		return NoMatch
	case *ZeroOrMoreClause:
		return p.repeat(c, c.sub, 0, pos, rulePos)
	case *OneOrMoreClause:
		return p.repeat(c, c.sub, 1, pos, rulePos)
	case *OptionalClause:
		if m := p.matchClause(c.sub, pos, rulePos); m != NoMatch {
			return &Match{clause: c, pos: pos, len: m.len, children: []*Match{m}}
		}
		return terminal(c, pos, 0)
	case *FollowedByClause:
		if p.matchClause(c.sub, pos, rulePos) != NoMatch {
			return terminal(c, pos, 0)
		}
		return NoMatch
	case *NotFollowedByClause:
		if p.matchClause(c.sub, pos, rulePos) == NoMatch {
			return terminal(c, pos, 0)
		}
		return NoMatch
	case *RuleRefClause:
		m := p.match(c.rule, pos, rulePos)
		if m == NoMatch || c.label == "" {
			return m
		}
		return &Match{clause: c, pos: pos, len: m.len, children: []*Match{m}}
	}
	panic(fmt.Sprintf("unknown clause type %T", c))
}

// repeat matches sub as often as possible, at least min times. A zero-width
// match of sub ends the repetition after being recorded.
func (p *Parser) repeat(c Clause, sub Clause, min int, pos int, rulePos int) *Match {
	var children []*Match
	at := pos
	for {
		m := p.matchClause(sub, at, rulePos)
		if m == NoMatch {
			break
		}
		children = append(children, m)
		at = m.End()
		if m.len == 0 {
			break
		}
	}
	if len(children) < min {
		return NoMatch
	}
	return &Match{clause: c, pos: pos, len: at - pos, children: children}
}
