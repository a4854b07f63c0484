package peg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/timtadh/lexmachine"
)

// Clause is a parsing expression. Clauses form a closed set of variants,
// one concrete type per Kind:
//
//    Nothing         ()         matches the empty string
//    Char            'c'        a single code point
//    Str             "abc"      a string of code points
//    CharSet         [a-z]      a code point out of a set (or not out of a set)
//    AnyChar         .          any single code point
//    Regexp          `re`       the longest non-empty match of a regular expression
//    Seq             a b c      all sub-clauses, one after the other
//    First           a / b / c  the first sub-clause which matches
//    ZeroOrMore      a*         greedy repetition
//    OneOrMore       a+         greedy repetition, at least once
//    Optional        a?         a or nothing
//    FollowedBy      &a         positive lookahead, consumes nothing
//    NotFollowedBy   !a         negative lookahead, consumes nothing
//    RuleRef         Name       the result of another rule
//
// Clauses are created with the constructor functions of this package and
// combined into grammars with NewGrammar or a GrammarBuilder. Any clause may
// carry a label (see Label), which marks it as a node of the abstract syntax
// tree.
type Clause interface {
	Kind() Kind     // variant of this clause
	Label() string  // AST label, may be empty
	String() string // PEG notation
	base() *clauseBase
	clone() Clause
	subClauses() []Clause
}

type clauseBase struct {
	label string
	err   error // construction error, reported when building a grammar
}

func (b *clauseBase) Label() string {
	return b.label
}

func (b *clauseBase) base() *clauseBase {
	return b
}

func (b *clauseBase) subClauses() []Clause {
	return nil
}

// SubClauses returns the direct sub-clauses of c. Terminals and rule
// references have none.
func SubClauses(c Clause) []Clause {
	if c == nil {
		return nil
	}
	subs := c.subClauses()
	if len(subs) == 0 {
		return nil
	}
	cp := make([]Clause, len(subs))
	copy(cp, subs)
	return cp
}

var errNilClause = errors.New("sub-clause is nil")

func invalid(err error) Clause {
	return &NothingClause{clauseBase: clauseBase{err: err}}
}

// nonNil replaces nil sub-clauses by an invalid placeholder, which will be
// reported as soon as a grammar is built from it.
func nonNil(c Clause) Clause {
	if c == nil {
		return invalid(errNilClause)
	}
	return c
}

func cloneAll(cs []Clause) []Clause {
	cp := make([]Clause, len(cs))
	for i, c := range cs {
		cp[i] = c.clone()
	}
	return cp
}

// --- Terminals -------------------------------------------------------------

// NothingClause matches the empty string at any position.
type NothingClause struct {
	clauseBase
}

// Nothing creates a clause matching the empty string. It never fails.
func Nothing() Clause {
	return &NothingClause{}
}

func (c *NothingClause) Kind() Kind { return KindNothing }

func (c *NothingClause) String() string {
	return labeled(c, "()")
}

func (c *NothingClause) clone() Clause {
	cp := *c
	return &cp
}

// CharClause matches a single code point.
type CharClause struct {
	clauseBase
	r rune
}

// Char creates a clause matching exactly the code point r.
func Char(r rune) Clause {
	return &CharClause{r: r}
}

func (c *CharClause) Kind() Kind { return KindChar }

// Rune returns the code point to match.
func (c *CharClause) Rune() rune { return c.r }

func (c *CharClause) String() string {
	return labeled(c, strconv.QuoteRune(c.r))
}

func (c *CharClause) clone() Clause {
	cp := *c
	return &cp
}

// StrClause matches a string of code points.
type StrClause struct {
	clauseBase
	s []rune
}

// Str creates a clause matching the string s. s must not be empty.
func Str(s string) Clause {
	c := &StrClause{s: []rune(s)}
	if s == "" {
		c.err = errors.New("string literal is empty")
	}
	return c
}

func (c *StrClause) Kind() Kind { return KindString }

// Text returns the string to match.
func (c *StrClause) Text() string { return string(c.s) }

func (c *StrClause) String() string {
	return labeled(c, strconv.Quote(string(c.s)))
}

func (c *StrClause) clone() Clause {
	cp := *c
	return &cp
}

// RuneRange is an inclusive range of code points.
type RuneRange struct {
	Lo, Hi rune
}

// Contains is true if r is in range rr.
func (rr RuneRange) Contains(r rune) bool {
	return r >= rr.Lo && r <= rr.Hi
}

// CharSetClause matches a single code point out of a set of ranges. If the
// set is inverted, it matches any code point not in the set.
type CharSetClause struct {
	clauseBase
	ranges   []RuneRange
	inverted bool
}

// CharSet creates a clause matching a code point contained in any of the
// ranges given.
func CharSet(ranges ...RuneRange) Clause {
	return newCharSet(ranges, false)
}

// NotCharSet creates a clause matching a code point which is contained in
// none of the ranges given. It does not match at the end of input.
func NotCharSet(ranges ...RuneRange) Clause {
	return newCharSet(ranges, true)
}

// CharRange creates a clause matching a code point between lo and hi,
// inclusive.
func CharRange(lo, hi rune) Clause {
	return newCharSet([]RuneRange{{Lo: lo, Hi: hi}}, false)
}

// AnyOf creates a clause matching any of the code points in chars.
func AnyOf(chars string) Clause {
	var ranges []RuneRange
	for _, r := range chars {
		ranges = append(ranges, RuneRange{Lo: r, Hi: r})
	}
	return newCharSet(ranges, false)
}

func newCharSet(ranges []RuneRange, inverted bool) *CharSetClause {
	c := &CharSetClause{inverted: inverted}
	c.ranges = make([]RuneRange, len(ranges))
	copy(c.ranges, ranges)
	if len(ranges) == 0 {
		c.err = errors.New("character set is empty")
	}
	for _, rr := range ranges {
		if rr.Lo > rr.Hi {
			c.err = fmt.Errorf("character range %s is reversed", rangeString(rr))
			break
		}
	}
	return c
}

func (c *CharSetClause) Kind() Kind { return KindCharSet }

// Ranges returns the code point ranges of the set.
func (c *CharSetClause) Ranges() []RuneRange {
	cp := make([]RuneRange, len(c.ranges))
	copy(cp, c.ranges)
	return cp
}

// Inverted is true for negated sets.
func (c *CharSetClause) Inverted() bool { return c.inverted }

// Contains checks if code point r is matched by the set.
func (c *CharSetClause) Contains(r rune) bool {
	for _, rr := range c.ranges {
		if rr.Contains(r) {
			return !c.inverted
		}
	}
	return c.inverted
}

func (c *CharSetClause) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if c.inverted {
		b.WriteByte('^')
	}
	for _, rr := range c.ranges {
		b.WriteString(rangeString(rr))
	}
	b.WriteByte(']')
	return labeled(c, b.String())
}

func (c *CharSetClause) clone() Clause {
	cp := *c
	cp.ranges = c.Ranges()
	return &cp
}

func rangeString(rr RuneRange) string {
	if rr.Lo == rr.Hi {
		return escapeSetRune(rr.Lo)
	}
	return escapeSetRune(rr.Lo) + "-" + escapeSetRune(rr.Hi)
}

// escapeSetRune escapes a code point for use within [...].
func escapeSetRune(r rune) string {
	switch r {
	case '\\', ']', '[', '-', '^':
		return `\` + string(r)
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	}
	if !unicode.IsPrint(r) {
		if r > 0xffff {
			return fmt.Sprintf(`\U%08x`, r)
		}
		return fmt.Sprintf(`\u%04x`, r)
	}
	return string(r)
}

// AnyCharClause matches any single code point.
type AnyCharClause struct {
	clauseBase
}

// AnyChar creates a clause matching any code point. It fails at the end of
// input only.
func AnyChar() Clause {
	return &AnyCharClause{}
}

func (c *AnyCharClause) Kind() Kind { return KindAnyChar }

func (c *AnyCharClause) String() string {
	return labeled(c, ".")
}

func (c *AnyCharClause) clone() Clause {
	cp := *c
	return &cp
}

// RegexpClause matches the longest non-empty prefix of the remaining input
// which is matched by a regular expression. The expression is compiled to a
// DFA once, when the clause is created.
type RegexpClause struct {
	clauseBase
	pattern string
	lexer   *lexmachine.Lexer // compiled; read-only after construction
}

// Regexp creates a clause for a regular expression. Syntax is the one of
// package lexmachine (character classes, alternation, grouping, ?, *, +).
func Regexp(pattern string) Clause {
	c := &RegexpClause{pattern: pattern}
	if pattern == "" {
		c.err = errors.New("regular expression is empty")
		return c
	}
	c.lexer, c.err = compileRegexp(pattern)
	return c
}

func (c *RegexpClause) Kind() Kind { return KindRegexp }

// Pattern returns the regular expression.
func (c *RegexpClause) Pattern() string { return c.pattern }

func (c *RegexpClause) String() string {
	return labeled(c, "`"+c.pattern+"`")
}

func (c *RegexpClause) clone() Clause {
	cp := *c
	return &cp
}

// --- Composites ------------------------------------------------------------

// SeqClause matches all of its sub-clauses in order.
type SeqClause struct {
	clauseBase
	subs []Clause
}

// Seq creates a clause matching all sub-clauses one after another. At least
// one sub-clause is required.
func Seq(subs ...Clause) Clause {
	c := &SeqClause{subs: make([]Clause, len(subs))}
	for i, sub := range subs {
		c.subs[i] = nonNil(sub)
	}
	if len(subs) == 0 {
		c.err = errors.New("sequence without sub-clauses")
	}
	return c
}

func (c *SeqClause) Kind() Kind { return KindSeq }

func (c *SeqClause) String() string {
	parts := make([]string, len(c.subs))
	for i, sub := range c.subs {
		parts[i] = wrap(sub, precPrefix)
	}
	return labeled(c, strings.Join(parts, " "))
}

func (c *SeqClause) subClauses() []Clause {
	return c.subs
}

func (c *SeqClause) clone() Clause {
	cp := *c
	cp.subs = cloneAll(c.subs)
	return &cp
}

// FirstClause is an ordered choice: it matches the first sub-clause which
// matches, trying them in order.
type FirstClause struct {
	clauseBase
	subs []Clause
}

// First creates an ordered choice. At least one sub-clause is required.
func First(subs ...Clause) Clause {
	c := &FirstClause{subs: make([]Clause, len(subs))}
	for i, sub := range subs {
		c.subs[i] = nonNil(sub)
	}
	if len(subs) == 0 {
		c.err = errors.New("ordered choice without alternatives")
	}
	return c
}

func (c *FirstClause) Kind() Kind { return KindFirst }

func (c *FirstClause) String() string {
	parts := make([]string, len(c.subs))
	for i, sub := range c.subs {
		parts[i] = wrap(sub, precSeq)
	}
	return labeled(c, strings.Join(parts, " / "))
}

func (c *FirstClause) subClauses() []Clause {
	return c.subs
}

func (c *FirstClause) clone() Clause {
	cp := *c
	cp.subs = cloneAll(c.subs)
	return &cp
}

// unary is the common part of clauses with exactly one sub-clause.
type unary struct {
	clauseBase
	sub Clause
}

func (u *unary) subClauses() []Clause {
	return []Clause{u.sub}
}

// Sub returns the sub-clause.
func (u *unary) Sub() Clause {
	return u.sub
}

// ZeroOrMoreClause matches its sub-clause as often as possible, including
// zero times.
type ZeroOrMoreClause struct {
	unary
}

// ZeroOrMore creates a greedy repetition which never fails.
func ZeroOrMore(sub Clause) Clause {
	return &ZeroOrMoreClause{unary{sub: nonNil(sub)}}
}

func (c *ZeroOrMoreClause) Kind() Kind { return KindZeroOrMore }

func (c *ZeroOrMoreClause) String() string {
	return labeled(c, wrap(c.sub, precPrimary)+"*")
}

func (c *ZeroOrMoreClause) clone() Clause {
	cp := *c
	cp.sub = c.sub.clone()
	return &cp
}

// OneOrMoreClause matches its sub-clause as often as possible, at least once.
type OneOrMoreClause struct {
	unary
}

// OneOrMore creates a greedy repetition which requires at least one match
// of sub.
func OneOrMore(sub Clause) Clause {
	return &OneOrMoreClause{unary{sub: nonNil(sub)}}
}

func (c *OneOrMoreClause) Kind() Kind { return KindOneOrMore }

func (c *OneOrMoreClause) String() string {
	return labeled(c, wrap(c.sub, precPrimary)+"+")
}

func (c *OneOrMoreClause) clone() Clause {
	cp := *c
	cp.sub = c.sub.clone()
	return &cp
}

// OptionalClause matches its sub-clause or nothing.
type OptionalClause struct {
	unary
}

// Optional creates a clause which never fails: it matches sub if possible,
// and the empty string otherwise.
func Optional(sub Clause) Clause {
	return &OptionalClause{unary{sub: nonNil(sub)}}
}

func (c *OptionalClause) Kind() Kind { return KindOptional }

func (c *OptionalClause) String() string {
	return labeled(c, wrap(c.sub, precPrimary)+"?")
}

func (c *OptionalClause) clone() Clause {
	cp := *c
	cp.sub = c.sub.clone()
	return &cp
}

// FollowedByClause is a positive lookahead.
type FollowedByClause struct {
	unary
}

// FollowedBy creates a clause which matches the empty string if sub matches
// at the current position, and fails otherwise.
func FollowedBy(sub Clause) Clause {
	return &FollowedByClause{unary{sub: nonNil(sub)}}
}

func (c *FollowedByClause) Kind() Kind { return KindFollowedBy }

func (c *FollowedByClause) String() string {
	return labeled(c, "&"+wrap(c.sub, precSuffix))
}

func (c *FollowedByClause) clone() Clause {
	cp := *c
	cp.sub = c.sub.clone()
	return &cp
}

// NotFollowedByClause is a negative lookahead.
type NotFollowedByClause struct {
	unary
}

// NotFollowedBy creates a clause which matches the empty string if sub does
// not match at the current position, and fails otherwise.
func NotFollowedBy(sub Clause) Clause {
	return &NotFollowedByClause{unary{sub: nonNil(sub)}}
}

func (c *NotFollowedByClause) Kind() Kind { return KindNotFollowedBy }

func (c *NotFollowedByClause) String() string {
	return labeled(c, "!"+wrap(c.sub, precSuffix))
}

func (c *NotFollowedByClause) clone() Clause {
	cp := *c
	cp.sub = c.sub.clone()
	return &cp
}

// --- Rule references -------------------------------------------------------

// RuleRefClause refers to a rule by name. References are resolved when a
// grammar is built.
type RuleRefClause struct {
	clauseBase
	name string
	rule *Rule
}

// Ref creates a reference to the rule named name.
func Ref(name string) Clause {
	c := &RuleRefClause{name: name}
	if name == "" {
		c.err = errors.New("rule reference without a name")
	}
	return c
}

func (c *RuleRefClause) Kind() Kind { return KindRuleRef }

// RuleName returns the name of the referenced rule.
func (c *RuleRefClause) RuleName() string { return c.name }

// Rule returns the referenced rule, or nil for clauses not part of a grammar.
func (c *RuleRefClause) Rule() *Rule { return c.rule }

func (c *RuleRefClause) String() string {
	return labeled(c, c.name)
}

func (c *RuleRefClause) clone() Clause {
	cp := *c
	cp.rule = nil
	return &cp
}

// --- Labels ----------------------------------------------------------------

// Label returns a copy of clause c carrying AST label label. Labeled matches
// become nodes of the abstract syntax tree (see package tree).
func Label(label string, c Clause) Clause {
	if c == nil {
		return invalid(errNilClause)
	}
	cp := c.clone()
	cp.base().label = label
	return cp
}

// --- Printing --------------------------------------------------------------

// Operator precedence for printing, loosest first.
const (
	precFirst = iota
	precSeq
	precPrefix
	precSuffix
	precPrimary
)

func precedence(c Clause) int {
	if c.Label() != "" {
		return precPrefix
	}
	return ownPrecedence(c)
}

// ownPrecedence is the precedence of c disregarding its label.
func ownPrecedence(c Clause) int {
	switch c := c.(type) {
	case *FirstClause:
		if len(c.subs) == 1 {
			return precedence(c.subs[0])
		}
		return precFirst
	case *SeqClause:
		if len(c.subs) == 1 {
			return precedence(c.subs[0])
		}
		return precSeq
	case *FollowedByClause, *NotFollowedByClause:
		return precPrefix
	case *ZeroOrMoreClause, *OneOrMoreClause, *OptionalClause:
		return precSuffix
	}
	return precPrimary
}

// wrap prints c, in parentheses if it binds looser than min.
func wrap(c Clause, min int) string {
	if precedence(c) < min {
		return "(" + c.String() + ")"
	}
	return c.String()
}

// labeled prefixes body with the label of c, if any.
func labeled(c Clause, body string) string {
	label := c.Label()
	if label == "" {
		return body
	}
	if ownPrecedence(c) < precPrefix {
		return label + ":(" + body + ")"
	}
	return label + ":" + body
}
