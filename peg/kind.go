package peg

//go:generate stringer -type=Kind -trimprefix=Kind

// Kind enumerates the variants of clauses.
type Kind int8

// Clause kinds. Terminals come first, followed by composites and lookaheads.
const (
	KindNothing Kind = iota
	KindChar
	KindString
	KindCharSet
	KindAnyChar
	KindRegexp
	KindSeq
	KindFirst
	KindZeroOrMore
	KindOneOrMore
	KindOptional
	KindFollowedBy
	KindNotFollowedBy
	KindRuleRef
)

// IsTerminal is true for clauses matching input directly, without sub-clauses.
func (k Kind) IsTerminal() bool {
	return k <= KindRegexp
}

// IsLookahead is true for clauses which never consume input.
func (k Kind) IsLookahead() bool {
	return k == KindFollowedBy || k == KindNotFollowedBy
}
