package peg

// GrammarBuilder collects rule definitions and creates a grammar from them.
//
//    b := peg.NewGrammarBuilder("G")
//    b.Rule("S", peg.Seq(peg.Ref("A"), peg.Char(';')))   // S <- A ';'
//    b.Rule("A", peg.OneOrMore(peg.CharRange('a', 'z'))) // A <- [a-z]+
//    g, err := b.Grammar()
//
// Errors in rule definitions are reported by Grammar.
type GrammarBuilder struct {
	name string
	defs []RuleDef
}

// NewGrammarBuilder returns a builder for a grammar named name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{name: name}
}

// Rule appends a rule definition. The first rule defined will be the start
// rule. Rule returns the builder, so calls may be chained.
func (b *GrammarBuilder) Rule(name string, c Clause) *GrammarBuilder {
	b.defs = append(b.defs, RuleDef{Name: name, Clause: c})
	return b
}

// LHS starts the definition of a rule. The rule is complete as soon as
// its clause is set with RuleStart.Is.
func (b *GrammarBuilder) LHS(name string) RuleStart {
	return RuleStart{b: b, name: name}
}

// RuleStart is a rule definition waiting for its clause.
type RuleStart struct {
	b    *GrammarBuilder
	name string
}

// Is completes a rule definition with clause c.
func (rs RuleStart) Is(c Clause) *GrammarBuilder {
	return rs.b.Rule(rs.name, c)
}

// Grammar creates the grammar from the rules defined so far. See NewGrammar
// for possible errors. The builder may be used further after this call.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	defs := make([]RuleDef, len(b.defs))
	copy(defs, b.defs)
	return NewGrammar(b.name, defs...)
}
