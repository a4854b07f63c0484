package metagrammar

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/squirrel"
	"github.com/npillmayer/squirrel/peg"
	"github.com/npillmayer/squirrel/peg/tree"
)

// Compile reads a grammar description and creates a grammar from it. The
// first rule of the description is the start rule.
//
// Errors are syntax errors of the description (of type *tree.SyntaxError)
// and errors of grammar construction, for example references to rules which
// are not defined (peg.ErrRuleNotFound).
func Compile(name, source string) (*peg.Grammar, error) {
	p := peg.NewParser(MetaGrammar())
	root, err := tree.Parse(p, source)
	if err != nil {
		return nil, fmt.Errorf("grammar %s: %w", name, err)
	}
	c := &compiler{input: p.Input()}
	defs := make([]peg.RuleDef, 0, len(root.Children))
	for _, r := range root.Children {
		def, err := c.rule(r)
		if err != nil {
			return nil, fmt.Errorf("grammar %s: %w", name, err)
		}
		defs = append(defs, def)
	}
	g, err := peg.NewGrammar(name, defs...)
	if err != nil {
		return nil, fmt.Errorf("grammar %s: %w", name, err)
	}
	tracer().Debugf("compiled grammar %s with %d rules", name, g.Size())
	return g, nil
}

// MustCompile is like Compile, but panics if the description cannot be
// compiled.
func MustCompile(name, source string) *peg.Grammar {
	g, err := Compile(name, source)
	if err != nil {
		panic(err.Error())
	}
	return g
}

// --- Conversion from AST to clauses ----------------------------------------

type compiler struct {
	input []rune
}

func (c *compiler) errorf(n *tree.Node, format string, args ...interface{}) error {
	pos := squirrel.PositionOf(c.input, n.Span.From())
	return fmt.Errorf("%s: %s", pos, fmt.Sprintf(format, args...))
}

func (c *compiler) rule(n *tree.Node) (peg.RuleDef, error) {
	if n.Label != "rule" || len(n.Children) != 2 {
		return peg.RuleDef{}, c.errorf(n, "malformed rule %q", n.Text)
	}
	clause, err := c.clause(n.Child(1))
	if err != nil {
		return peg.RuleDef{}, err
	}
	return peg.Define(n.Child(0).Text, clause), nil
}

func (c *compiler) clause(n *tree.Node) (peg.Clause, error) {
	switch n.Label {
	case "first", "seq":
		subs, err := c.clauses(n.Children)
		if err != nil {
			return nil, err
		}
		if n.Label == "first" {
			return peg.First(subs...), nil
		}
		return peg.Seq(subs...), nil
	case "label":
		sub, err := c.clause(n.Child(1))
		if err != nil {
			return nil, err
		}
		return peg.Label(n.Child(0).Text, sub), nil
	case "prefix":
		sub, err := c.clause(n.Child(1))
		if err != nil {
			return nil, err
		}
		if n.Child(0).Text == "&" {
			return peg.FollowedBy(sub), nil
		}
		return peg.NotFollowedBy(sub), nil
	case "suffix":
		sub, err := c.clause(n.Child(0))
		if err != nil {
			return nil, err
		}
		switch n.Child(1).Text {
		case "*":
			return peg.ZeroOrMore(sub), nil
		case "+":
			return peg.OneOrMore(sub), nil
		}
		return peg.Optional(sub), nil
	case "nothing":
		return peg.Nothing(), nil
	case "ref":
		return peg.Ref(n.Text), nil
	case "any":
		return peg.AnyChar(), nil
	case "regexp":
		if n.Text == "" {
			return nil, c.errorf(n, "regular expression is empty")
		}
		return peg.Regexp(n.Text), nil
	case "string":
		s, err := strconv.Unquote(n.Text)
		if err != nil {
			return nil, c.errorf(n, "invalid string literal %s", n.Text)
		}
		return peg.Str(s), nil
	case "char":
		s, err := unquoteChar(n.Text)
		if err != nil {
			return nil, c.errorf(n, "invalid character literal %s", n.Text)
		}
		return peg.Char(s), nil
	case "class":
		return c.charClass(n)
	}
	return nil, c.errorf(n, "unexpected node %s", n.Label)
}

func (c *compiler) clauses(nodes []*tree.Node) ([]peg.Clause, error) {
	subs := make([]peg.Clause, len(nodes))
	for i, n := range nodes {
		sub, err := c.clause(n)
		if err != nil {
			return nil, err
		}
		subs[i] = sub
	}
	return subs, nil
}

func (c *compiler) charClass(n *tree.Node) (peg.Clause, error) {
	inverted := false
	var ranges []peg.RuneRange
	for _, ch := range n.Children {
		switch ch.Label {
		case "invert":
			inverted = true
		case "range":
			lo, err := c.classChar(ch.Child(0))
			if err != nil {
				return nil, err
			}
			hi, err := c.classChar(ch.Child(1))
			if err != nil {
				return nil, err
			}
			ranges = append(ranges, peg.RuneRange{Lo: lo, Hi: hi})
		default:
			r, err := c.classChar(ch)
			if err != nil {
				return nil, err
			}
			ranges = append(ranges, peg.RuneRange{Lo: r, Hi: r})
		}
	}
	if inverted {
		return peg.NotCharSet(ranges...), nil
	}
	return peg.CharSet(ranges...), nil
}

func (c *compiler) classChar(n *tree.Node) (rune, error) {
	r, err := unescapeClassChar(n.Text)
	if err != nil {
		return 0, c.errorf(n, "invalid character %s in character class", n.Text)
	}
	return r, nil
}

func unquoteChar(lit string) (rune, error) {
	s, err := strconv.Unquote(lit)
	if err != nil {
		return 0, err
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s is not a single character", lit)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// unescapeClassChar reads a single character of a character class, which may
// be escaped. Apart from the usual control and hex escapes, a backslash
// quotes the character following it.
func unescapeClassChar(s string) (rune, error) {
	if !strings.HasPrefix(s, `\`) {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
	esc := s[1:]
	switch {
	case esc == "n":
		return '\n', nil
	case esc == "r":
		return '\r', nil
	case esc == "t":
		return '\t', nil
	case len(esc) > 1 && strings.ContainsAny(esc[:1], "uUx"):
		v, err := strconv.ParseUint(esc[1:], 16, 32)
		if err != nil {
			return 0, err
		}
		if !utf8.ValidRune(rune(v)) {
			return 0, fmt.Errorf("%s is not a valid code point", s)
		}
		return rune(v), nil
	}
	r, _ := utf8.DecodeRuneInString(esc)
	return r, nil
}
