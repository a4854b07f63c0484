package squirrel

import "fmt"

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input positions. For every
// match, a parse tree will track which input positions this match covers.
// A span denotes a start position and the position just behind the end.
//
// Positions count code points (runes), not bytes.
type Span [2]int // (x…y)

// MakeSpan creates a span from a start position and a length.
func MakeSpan(pos, length int) Span {
	return Span{pos, pos + length}
}

// From returns the start value of a span.
func (s Span) From() int {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() int {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() int {
	return s[1] - s[0]
}

// IsNull returns true for the zero span (0…0).
func (s Span) IsNull() bool {
	return s == Span{}
}

// Contains is a predicate: does s fully enclose other?
func (s Span) Contains(other Span) bool {
	return s[0] <= other[0] && other[1] <= s[1]
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Positions --------------------------------------------------------

// Position is a human readable location within an input text.
// Line and Column are 1-based, Column counts runes.
type Position struct {
	Offset int // rune offset, 0-based
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d col %d", p.Line, p.Column)
}

// PositionOf converts a rune offset within input into a line/column position.
// Offsets beyond the end of input are clipped to the end.
func PositionOf(input []rune, offset int) Position {
	if offset > len(input) {
		offset = len(input)
	}
	if offset < 0 {
		offset = 0
	}
	line, col := 1, 1
	for _, r := range input[:offset] {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Offset: offset, Line: line, Column: col}
}
