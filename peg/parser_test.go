package peg

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// We use small grammars for sums of numbers:
//
//     E <- E '+' N / N     (left recursive)
//     E <- N '+' E / N     (right recursive)
//     N <- [0-9]+
//
func makeSums(t *testing.T) *Grammar {
	g, err := NewGrammar("Sums",
		Define("E", First(Seq(Ref("E"), Char('+'), Ref("N")), Ref("N"))),
		Define("N", OneOrMore(CharRange('0', '9'))),
	)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func makeRightSums(t *testing.T) *Grammar {
	g, err := NewGrammar("RightSums",
		Define("E", First(Seq(Ref("N"), Char('+'), Ref("E")), Ref("N"))),
		Define("N", OneOrMore(CharRange('0', '9'))),
	)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// Expression grammar with operator precedence, both operators left
// associative:
//
//     Sum     <- Sum '+' Product / Product
//     Product <- Product '*' Num / Num
//     Num     <- [0-9]+
//
func makeExpressions(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Expressions")
	b.Rule("Sum", First(Seq(Ref("Sum"), Char('+'), Ref("Product")), Ref("Product")))
	b.Rule("Product", First(Seq(Ref("Product"), Char('*'), Ref("Num")), Ref("Num")))
	b.Rule("Num", OneOrMore(CharRange('0', '9')))
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// parenthesize prints a sum with explicit parentheses for every binary
// operation.
func parenthesize(m *Match, input []rune) string {
	switch m.Clause().Kind() {
	case KindFirst:
		return parenthesize(m.Children()[0], input)
	case KindSeq:
		c := m.Children()
		return "(" + parenthesize(c[0], input) + "+" + parenthesize(c[2], input) + ")"
	}
	return m.Text(input)
}

func evaluate(t *testing.T, m *Match, input []rune) int {
	if m.RuleName() == "Num" {
		n, err := strconv.Atoi(m.Text(input))
		if err != nil {
			t.Fatal(err)
		}
		return n
	}
	alt := m.Children()[0]
	if m.Choice() == 1 {
		return evaluate(t, alt, input)
	}
	l := evaluate(t, alt.Children()[0], input)
	r := evaluate(t, alt.Children()[2], input)
	if m.RuleName() == "Sum" {
		return l + r
	}
	return l * r
}

func parse(t *testing.T, g *Grammar, input string) (*Parser, *Match) {
	p := NewParser(g)
	m := p.Parse(input)
	return p, m
}

// --- Tests -----------------------------------------------------------------

func TestLeftAssociativity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.peg")
	defer teardown()
	//
	input := "1+2+3"
	p, m := parse(t, makeSums(t), input)
	if !m.IsMatch() || m.Len() != 5 {
		t.Fatalf("expected %q to match completely, got %v", input, m)
	}
	if s := parenthesize(m, p.Input()); s != "((1+2)+3)" {
		t.Errorf("expected left associative tree ((1+2)+3), got %s", s)
	}
	if m.RuleName() != "E" || m.Choice() != 0 {
		t.Errorf("expected top-level match of E using its first alternative, got %v #%d", m, m.Choice())
	}
	stats := p.Stats()
	if stats.GrowthIterations == 0 || stats.CycleHits == 0 {
		t.Errorf("expected left recursion to be detected and grown, stats: %s", stats)
	}
	t.Logf("stats: %s", stats)
}

func TestRightAssociativity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.peg")
	defer teardown()
	//
	input := "1+2+3"
	p, m := parse(t, makeRightSums(t), input)
	if !m.IsMatch() || m.Len() != 5 {
		t.Fatalf("expected %q to match completely, got %v", input, m)
	}
	if s := parenthesize(m, p.Input()); s != "(1+(2+3))" {
		t.Errorf("expected right associative tree (1+(2+3)), got %s", s)
	}
	if p.Stats().CycleHits != 0 {
		t.Errorf("expected no left recursion for right recursive grammar")
	}
}

func TestPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.peg")
	defer teardown()
	//
	g := makeExpressions(t)
	var tests = []struct {
		input string
		value int
	}{
		{"7", 7},
		{"1+2", 3},
		{"1+2*3", 7},
		{"1+2*3+4", 11},
		{"1*2+3*4", 14},
		{"2*3*4", 24},
		{"10+20+30+40", 100},
	}
	for _, test := range tests {
		p, m := parse(t, g, test.input)
		if !m.IsMatch() || m.Len() != len(test.input) {
			t.Errorf("expected %q to match completely, got %v", test.input, m)
			continue
		}
		if v := evaluate(t, m, p.Input()); v != test.value {
			t.Errorf("expected %s = %d, got %d", test.input, test.value, v)
		}
	}
}

func TestIndirectLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.peg")
	defer teardown()
	//
	// A <- B 'a' / 'x'
	// B <- A 'b'
	g, err := NewGrammar("Indirect",
		Define("A", First(Seq(Ref("B"), Char('a')), Char('x'))),
		Define("B", Seq(Ref("A"), Char('b'))),
	)
	if err != nil {
		t.Fatal(err)
	}
	for _, input := range []string{"x", "xba", "xbaba"} {
		_, m := parse(t, g, input)
		if !m.IsMatch() || m.Len() != len(input) {
			t.Errorf("expected %q to match completely, got %v", input, m)
		}
	}
	_, m := parse(t, g, "xbab")
	if m.Len() != 3 {
		t.Errorf("expected 'xbab' to match 3 code points, got %v", m)
	}
}

func TestNullableLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.peg")
	defer teardown()
	//
	g, err := NewGrammar("Nullable",
		Define("E", First(Seq(Ref("E"), Char('a')), Nothing())),
	)
	if err != nil {
		t.Fatal(err)
	}
	for _, input := range []string{"", "a", "aaa", "aab"} {
		_, m := parse(t, g, input)
		expected := len(input)
		if input == "aab" {
			expected = 2
		}
		if !m.IsMatch() || m.Len() != expected {
			t.Errorf("expected %q to match %d code points, got %v", input, expected, m)
		}
	}
}

func TestSelfReferenceOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.peg")
	defer teardown()
	//
	g, err := NewGrammar("Loop", Define("E", Ref("E")))
	if err != nil {
		t.Fatal(err)
	}
	if _, m := parse(t, g, "abc"); m != NoMatch {
		t.Errorf("expected rule referencing only itself to fail, got %v", m)
	}
}

func TestOrderedChoice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.peg")
	defer teardown()
	//
	g, _ := NewGrammar("G", Define("S", First(Seq(Char('a')), Str("ab"))))
	_, m := parse(t, g, "ab")
	if !m.IsMatch() || m.Len() != 1 || m.Choice() != 0 {
		t.Errorf("expected first alternative to match 'a' only, got %v", m)
	}
}

func TestSeqFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.peg")
	defer teardown()
	//
	g, _ := NewGrammar("G", Define("S", First(
		Seq(Char('a'), Char('x')),
		Seq(Char('a'), Char('b')))))
	_, m := parse(t, g, "ab")
	if !m.IsMatch() || m.Len() != 2 || m.Choice() != 1 {
		t.Errorf("expected second alternative to match 'ab', got %v #%d", m, m.Choice())
	}
	_, m = parse(t, g, "ac")
	if m != NoMatch {
		t.Errorf("expected 'ac' not to match, got %v", m)
	}
}

func TestRepetition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.peg")
	defer teardown()
	//
	g, _ := NewGrammar("G",
		Define("Nullable", ZeroOrMore(Optional(Char('x')))),
		Define("Some", OneOrMore(Char('x'))),
	)
	var tests = []struct {
		rule     string
		input    string
		length   int
		children int
	}{
		{"Nullable", "", 0, 1},
		{"Nullable", "abc", 0, 1},
		{"Nullable", "xx", 2, 3},
		{"Some", "xxxy", 3, 3},
		{"Some", "y", -1, 0},
	}
	for _, test := range tests {
		m, err := Parse(g, test.input, test.rule)
		if err != nil {
			t.Fatal(err)
		}
		if test.length < 0 {
			if m != NoMatch {
				t.Errorf("expected %s not to match %q, got %v", test.rule, test.input, m)
			}
			continue
		}
		if m.Len() != test.length || len(m.Children()) != test.children {
			t.Errorf("expected %s on %q to match %d code points with %d repetitions, got %v with %d",
				test.rule, test.input, test.length, test.children, m, len(m.Children()))
		}
	}
}

func TestLookahead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.peg")
	defer teardown()
	//
	g, _ := NewGrammar("G",
		Define("Pos", Seq(FollowedBy(Str("ab")), Str("a"))),
		Define("Neg", Seq(NotFollowedBy(Char('b')), AnyChar())),
	)
	m, _ := Parse(g, "ab")
	if !m.IsMatch() || m.Len() != 1 {
		t.Errorf("expected positive lookahead to consume nothing, got %v", m)
	}
	if m.Children()[0].Len() != 0 {
		t.Errorf("expected lookahead match to be zero-width")
	}
	m, _ = Parse(g, "a", "Neg")
	if !m.IsMatch() || m.Len() != 1 {
		t.Errorf("expected negative lookahead to succeed on 'a', got %v", m)
	}
	m, _ = Parse(g, "b", "Neg")
	if m != NoMatch {
		t.Errorf("expected negative lookahead to fail on 'b', got %v", m)
	}
}

func TestTerminalsAtEndOfInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.peg")
	defer teardown()
	//
	clauses := []Clause{Char('a'), Str("abc"), CharRange('a', 'z'), NotCharSet(RuneRange{'0', '9'}), AnyChar()}
	for _, c := range clauses {
		g, err := NewGrammar("G", Define("S", c))
		if err != nil {
			t.Fatal(err)
		}
		if m, _ := Parse(g, ""); m != NoMatch {
			t.Errorf("expected %s not to match empty input, got %v", c, m)
		}
	}
	g, _ := NewGrammar("G", Define("S", Str("abc")))
	if m, _ := Parse(g, "ab"); m != NoMatch {
		t.Errorf("expected string literal not to match a shorter input, got %v", m)
	}
}

func TestStartRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.peg")
	defer teardown()
	//
	g := makeSums(t)
	m, err := Parse(g, "12+3", "N")
	if err != nil || m.Len() != 2 || m.RuleName() != "N" {
		t.Errorf("expected start rule N to match '12', got %v, %v", m, err)
	}
	p := NewParser(g, StartRule("N"))
	if m = p.Parse("12+3"); m.Len() != 2 {
		t.Errorf("expected start rule option to be honoured, got %v", m)
	}
	if _, err = p.ParseRule("X", "1"); !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("expected unknown start rule to be reported, got %v", err)
	}
	if m = NewParser(g, StartRule("X")).Parse("1"); m != NoMatch {
		t.Errorf("expected parse with unknown start rule to fail, got %v", m)
	}
	if NewParser(nil) != nil {
		t.Errorf("expected no parser without a grammar")
	}
}

func TestLabeledReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.peg")
	defer teardown()
	//
	g, _ := NewGrammar("G",
		Define("S", Seq(Label("left", Ref("N")), Char('+'), Ref("N"))),
		Define("N", OneOrMore(CharRange('0', '9'))),
	)
	m, _ := Parse(g, "12+3")
	if !m.IsMatch() || m.Len() != 4 {
		t.Fatalf("expected '12+3' to match, got %v", m)
	}
	left, right := m.Children()[0], m.Children()[2]
	if left.Label() != "left" || left.Clause().Kind() != KindRuleRef || left.Children()[0].RuleName() != "N" {
		t.Errorf("expected labeled reference to wrap rule match, got %v", left)
	}
	if right.Label() != "" || right.RuleName() != "N" {
		t.Errorf("expected unlabeled reference to hand through rule match, got %v", right)
	}
}

func TestDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.peg")
	defer teardown()
	//
	g := makeExpressions(t)
	input := "1+2*3+4*5*6+7"
	p := NewParser(g)
	first := TreeString(p.Parse(input), p.Input())
	for i := 0; i < 3; i++ {
		if s := TreeString(p.Parse(input), p.Input()); s != first {
			t.Fatalf("expected identical trees for repeated parses, got\n%s\nand\n%s", first, s)
		}
	}
	t.Logf("\n%s", first)
}

func TestConcurrentParsers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.peg")
	defer teardown()
	//
	tracer().SetTraceLevel(tracing.LevelError)
	g := makeExpressions(t)
	inputs := []string{"1+2*3", "4*5+6", "7+8+9*10", "11*12*13"}
	results := make([]string, len(inputs))
	var wg sync.WaitGroup
	for i, input := range inputs {
		wg.Add(1)
		go func(i int, input string) {
			defer wg.Done()
			p := NewParser(g)
			m := p.Parse(input)
			results[i] = TreeString(m, p.Input())
		}(i, input)
	}
	wg.Wait()
	for i, input := range inputs {
		p := NewParser(g)
		if s := TreeString(p.Parse(input), p.Input()); s != results[i] {
			t.Errorf("expected concurrent parse of %q to equal sequential parse", input)
		}
	}
}

func TestTraceMatching(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "squirrel.peg")
	defer teardown()
	//
	tracer().SetTraceLevel(tracing.LevelDebug)
	p := NewParser(makeSums(t), TraceMatching(true))
	if m := p.Parse("1+2"); m.Len() != 3 {
		t.Errorf("expected tracing not to influence result, got %v", m)
	}
	p.DumpMemo()
}
