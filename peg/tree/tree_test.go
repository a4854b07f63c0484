package tree

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/squirrel/peg"
)

// Sums with labels for the AST:
//
//     E <- add:(E '+' N) / N
//     N <- num:[0-9]+
//
func makeSums(t *testing.T) *peg.Grammar {
	g, err := peg.NewGrammar("Sums",
		peg.Define("E", peg.First(
			peg.Label("add", peg.Seq(peg.Ref("E"), peg.Char('+'), peg.Ref("N"))),
			peg.Ref("N"))),
		peg.Define("N", peg.Label("num", peg.OneOrMore(peg.CharRange('0', '9')))),
	)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func parse(t *testing.T, input string) (*peg.Match, []rune) {
	p := peg.NewParser(makeSums(t))
	m := p.Parse(input)
	if !m.IsMatch() {
		t.Fatalf("expected %q to match", input)
	}
	return m, p.Input()
}

func TestAST(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.tree")
	defer teardown()
	//
	m, input := parse(t, "1+2+3")
	root, err := AST(m, input)
	if err != nil {
		t.Fatal(err)
	}
	expected := `(<root> (add (add num:"1" num:"2") num:"3"))`
	if root.String() != expected {
		t.Errorf("expected AST %s, got %s", expected, root)
	}
	add, err := root.OnlyChild()
	if err != nil {
		t.Fatal(err)
	}
	if add.Text != "1+2+3" || add.Parent() != root || add.Kind() != peg.KindSeq {
		t.Errorf("unexpected AST node %s: text=%q kind=%s", add.Label, add.Text, add.Kind())
	}
	if root.Size() != 6 {
		t.Errorf("expected AST to have 6 nodes, has %d", root.Size())
	}
	if _, err = AST(peg.NoMatch, input); !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected error for AST from NoMatch, got %v", err)
	}
}

func TestASTWithRuleNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.tree")
	defer teardown()
	//
	m, input := parse(t, "1+2")
	root, err := AST(m, input, RuleNames(true))
	if err != nil {
		t.Fatal(err)
	}
	expected := `(E (add (E num:"1") num:"2"))`
	if root.String() != expected {
		t.Errorf("expected AST %s, got %s", expected, root)
	}
}

func TestCST(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.tree")
	defer teardown()
	//
	m, input := parse(t, "12+3")
	root, err := CST(m, input)
	if err != nil {
		t.Fatal(err)
	}
	if root.Label != "E" {
		t.Errorf("expected root of CST to be labeled E, is %s", root.Label)
	}
	var leaves []string
	var collect func(n *Node)
	collect = func(n *Node) {
		if n.IsLeaf() {
			if n.Label != TerminalLabel {
				t.Errorf("expected leaf %q to be labeled as terminal, is %s", n.Text, n.Label)
			}
			leaves = append(leaves, n.Text)
		}
		for _, ch := range n.Children {
			collect(ch)
		}
	}
	collect(root)
	if strings.Join(leaves, "") != "12+3" || len(leaves) != 4 {
		t.Errorf("expected leaves of CST to spell the input, have %v", leaves)
	}
	add := root.Child(0)
	if add == nil || add.Label != "add" || len(add.Children) != 3 {
		t.Errorf("expected labeled sequence below root, got %v", add)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.tree")
	defer teardown()
	//
	p := peg.NewParser(makeSums(t))
	_, err := Parse(p, "1+2+x")
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected syntax error for incomplete match, got %v", err)
	}
	if serr.Position.Column != 5 || serr.Matched != 3 {
		t.Errorf("expected syntax error at column 5 after 3 code points, got %v", serr)
	}
	_, err = Parse(p, "+1")
	if !errors.As(err, &serr) || serr.Matched != -1 {
		t.Errorf("expected syntax error for input not matching, got %v", err)
	}
	root, err := Parse(p, "1+2+x", AllowSyntaxErrors(true))
	if err != nil {
		t.Fatal(err)
	}
	last := root.Child(len(root.Children) - 1)
	if !last.IsSyntaxError() || last.Text != "+x" || last.Span.From() != 3 || last.Span.To() != 5 {
		t.Errorf("expected last child to be a syntax error node covering '+x', is %v", last)
	}
	if !root.HasSyntaxErrors() || root.Text != "1+2+x" {
		t.Errorf("expected root to cover complete input and contain syntax errors")
	}
	root, err = Parse(p, "1+2")
	if err != nil || root.HasSyntaxErrors() {
		t.Errorf("expected valid input to parse without errors, got %v", err)
	}
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.tree")
	defer teardown()
	//
	m1, in1 := parse(t, "1+2+3")
	m2, in2 := parse(t, "1+2+3")
	m3, in3 := parse(t, "1+2+4")
	t1, _ := AST(m1, in1)
	t2, _ := AST(m2, in2)
	t3, _ := AST(m3, in3)
	if Fingerprint(t1) == "" || Fingerprint(t1) != Fingerprint(t2) {
		t.Errorf("expected trees of repeated parses to have equal fingerprints")
	}
	if Fingerprint(t1) == Fingerprint(t3) {
		t.Errorf("expected trees for different inputs to have different fingerprints")
	}
}

// --- Tree walking ----------------------------------------------------------

// sumListener evaluates an AST of sums.
type sumListener struct {
	t      *testing.T
	visits []string
}

func (sl *sumListener) Enter(n *Node, ctxt Ctxt) bool {
	sl.visits = append(sl.visits, n.Label)
	return true
}

func (sl *sumListener) Exit(n *Node, ctxt Ctxt) interface{} {
	sum := 0
	for _, ch := range n.Children {
		sum += ch.Value.(int)
	}
	return sum
}

func (sl *sumListener) Terminal(n *Node, ctxt Ctxt) interface{} {
	sl.visits = append(sl.visits, n.Text)
	v, err := strconv.Atoi(n.Text)
	if err != nil {
		sl.t.Error(err)
	}
	return v
}

var _ Listener = &sumListener{}

func TestTopDown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.tree")
	defer teardown()
	//
	m, input := parse(t, "1+2+3")
	root, _ := AST(m, input)
	listener := &sumListener{t: t}
	value := NewCursor(root).TopDown(listener, LtoR, Continue)
	if v, ok := value.(int); !ok || v != 6 {
		t.Errorf("expected sum to be 6, is %v", value)
	}
	if strings.Join(listener.visits, " ") != "<root> add add 1 2 3" {
		t.Errorf("unexpected order of visits: %v", listener.visits)
	}
	listener = &sumListener{t: t}
	NewCursor(root).TopDown(listener, RtoL, Continue)
	if strings.Join(listener.visits, " ") != "<root> add 3 add 2 1" {
		t.Errorf("unexpected order of visits right-to-left: %v", listener.visits)
	}
}

func TestCursorMoves(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.tree")
	defer teardown()
	//
	m, input := parse(t, "1+2+3")
	root, _ := AST(m, input)
	c := NewCursor(root)
	if _, ok := c.Up(); ok {
		t.Errorf("expected cursor not to move above its start node")
	}
	n, _ := c.Down(LtoR) // add
	n, _ = c.Down(LtoR)  // inner add
	if n.Text != "1+2" {
		t.Errorf("expected cursor at inner sum, is at %q", n.Text)
	}
	if n, ok := c.Sibling(); !ok || n.Text != "3" {
		t.Errorf("expected sibling of inner sum to be '3', is %q", n.Text)
	}
	if _, ok := c.Sibling(); ok {
		t.Errorf("expected no more siblings")
	}
	if n, ok := c.Up(); !ok || n.Text != "1+2+3" {
		t.Errorf("expected cursor to move up to outer sum, is at %q", n.Text)
	}
	if NewCursor(nil) != nil {
		t.Errorf("expected no cursor for nil node")
	}
}

func TestTopDownDefaultDirection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.tree")
	defer teardown()
	//
	m, input := parse(t, "1+2+3")
	root, _ := AST(m, input)
	listener := &sumListener{t: t}
	var dir Direction // zero value walks left to right
	value := NewCursor(root).TopDown(listener, dir, Continue)
	if v, ok := value.(int); !ok || v != 6 {
		t.Errorf("expected sum to be 6, is %v", value)
	}
	if strings.Join(listener.visits, " ") != "<root> add add 1 2 3" {
		t.Errorf("unexpected order of visits: %v", listener.visits)
	}
	c := NewCursor(root)
	c.Down(dir)
	c.Down(dir)
	if n, ok := c.Sibling(); !ok || n.Text != "3" {
		t.Errorf("expected sibling of inner sum to be '3', is %q", n.Text)
	}
	if _, ok := c.Sibling(); ok {
		t.Errorf("expected no more siblings")
	}
}

// skipListener refuses to enter the node covering a given text.
type skipListener struct {
	skip      string
	terminals []string
	exits     []string
}

func (sl *skipListener) Enter(n *Node, ctxt Ctxt) bool {
	return n.Text != sl.skip
}

func (sl *skipListener) Exit(n *Node, ctxt Ctxt) interface{} {
	sl.exits = append(sl.exits, n.Text)
	return nil
}

func (sl *skipListener) Terminal(n *Node, ctxt Ctxt) interface{} {
	sl.terminals = append(sl.terminals, n.Text)
	return nil
}

func TestTopDownBreakmodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.tree")
	defer teardown()
	//
	m, input := parse(t, "1+2+3")
	root, _ := AST(m, input)
	var tests = []struct {
		mode      Breakmode
		skip      string
		terminals string
		exits     string
	}{
		{Break, "1+2", "3", "1+2 1+2+3 1+2+3"},
		{Continue, "1+2", "1 2 3", "1+2 1+2+3 1+2+3"},
		{Break, "1+2+3", "", "1+2+3"},
		{Break, "none", "1 2 3", "1+2 1+2+3 1+2+3"},
	}
	for i, test := range tests {
		listener := &skipListener{skip: test.skip}
		NewCursor(root).TopDown(listener, LtoR, test.mode)
		if s := strings.Join(listener.terminals, " "); s != test.terminals {
			t.Errorf("test #%d: expected terminals %q, got %q", i, test.terminals, s)
		}
		if s := strings.Join(listener.exits, " "); s != test.exits {
			t.Errorf("test #%d: expected exits %q, got %q", i, test.exits, s)
		}
	}
}
