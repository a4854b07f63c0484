package peg

import (
	"fmt"
	"sort"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// compileRegexp creates a lexer with a single pattern, compiled to a DFA.
func compileRegexp(pattern string) (lexer *lexmachine.Lexer, err error) {
	defer func() {
		// lexmachine panics on some malformed patterns
		if r := recover(); r != nil {
			lexer = nil
			err = fmt.Errorf("cannot compile regular expression `%s`: %v", pattern, r)
		}
	}()
	lexer = lexmachine.NewLexer()
	lexer.Add([]byte(pattern), matchAction)
	if err = lexer.Compile(); err != nil {
		return nil, fmt.Errorf("cannot compile regular expression `%s`: %v", pattern, err)
	}
	return lexer, nil
}

// matchAction returns the raw lexmachine match as the token.
func matchAction(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return m, nil
}

// regexpState holds what the parser needs for regular expressions during
// one parse: the input as UTF-8, byte offsets of code points, and one
// scanner per clause.
type regexpState struct {
	text     []byte
	offsets  []int // byte offset of every code point, plus len(text)
	scanners map[*RegexpClause]*lexmachine.Scanner
}

func newRegexpState(input []rune) *regexpState {
	rs := &regexpState{
		text:     []byte(string(input)),
		offsets:  make([]int, len(input)+1),
		scanners: make(map[*RegexpClause]*lexmachine.Scanner),
	}
	off := 0
	for i, r := range input {
		rs.offsets[i] = off
		off += len(string(r))
	}
	rs.offsets[len(input)] = off
	return rs
}

// runePos converts a byte offset at a code point boundary to a position.
func (rs *regexpState) runePos(byteOffset int) int {
	return sort.SearchInts(rs.offsets, byteOffset)
}

func (rs *regexpState) scanner(c *RegexpClause) *lexmachine.Scanner {
	if s, ok := rs.scanners[c]; ok {
		return s
	}
	s, err := c.lexer.Scanner(rs.text)
	if err != nil {
		tracer().Errorf("cannot create scanner for %s: %v", c, err)
		s = nil
	}
	rs.scanners[c] = s
	return s
}

// matchRegexp matches the longest non-empty prefix of the input at pos.
func (p *Parser) matchRegexp(c *RegexpClause, pos int) *Match {
	if pos >= len(p.input) || c.lexer == nil {
		return NoMatch
	}
	if p.regexps == nil {
		p.regexps = newRegexpState(p.input)
	}
	s := p.regexps.scanner(c)
	if s == nil {
		return NoMatch
	}
	start := p.regexps.offsets[pos]
	s.TC = start
	tok, err, eos := s.Next()
	if err != nil || eos || tok == nil {
		return NoMatch
	}
	m := tok.(*machines.Match)
	if m.TC != start || len(m.Bytes) == 0 {
		return NoMatch
	}
	end := p.regexps.runePos(start + len(m.Bytes))
	return terminal(c, pos, end-pos)
}
