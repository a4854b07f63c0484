package peg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Errors reported by grammar construction. They are wrapped with details,
// use errors.Is to check for them.
var (
	ErrEmptyGrammar  = errors.New("grammar must contain at least one rule")
	ErrDuplicateRule = errors.New("duplicate rule")
	ErrRuleNotFound  = errors.New("rule not found")
	ErrInvalidClause = errors.New("invalid clause")
)

// --- Rules -----------------------------------------------------------------

// Rule is a named clause. Rules are numbered in order of definition; the
// number is the rule's identity within its grammar.
type Rule struct {
	Name   string
	clause Clause
	index  int
}

// Clause returns the top-level clause of the rule.
func (r *Rule) Clause() Clause {
	return r.clause
}

// Index returns the serial number of the rule within its grammar.
func (r *Rule) Index() int {
	return r.index
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s <- %s", r.Name, r.clause)
}

// RuleDef is the definition of a rule as input to NewGrammar.
type RuleDef struct {
	Name   string
	Clause Clause
}

// Define is a shortcut for creating a rule definition.
func Define(name string, c Clause) RuleDef {
	return RuleDef{Name: name, Clause: c}
}

// --- Grammars --------------------------------------------------------------

// Grammar is a set of rules, with references between them resolved. The
// first rule is the start rule. Grammars are immutable and may be used by
// any number of parsers concurrently.
type Grammar struct {
	Name        string
	rules       []*Rule
	rulesByName *linkedhashmap.Map // name -> *Rule, in order of definition
	hasRegexp   bool
}

// NewGrammar creates a grammar from a list of rule definitions. Clauses are
// copied, clients may continue to use their clauses after the call.
//
// Returns an error if the list is empty, if a rule name is used more than
// once, if a clause references an unknown rule or if a clause has not been
// constructed properly (for example, a sequence without sub-clauses).
func NewGrammar(name string, defs ...RuleDef) (*Grammar, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyGrammar
	}
	g := &Grammar{
		Name:        name,
		rulesByName: linkedhashmap.New(),
	}
	for i, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("%w: rule #%d has no name", ErrInvalidClause, i)
		}
		if _, found := g.rulesByName.Get(def.Name); found {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, def.Name)
		}
		if def.Clause == nil {
			return nil, fmt.Errorf("%w: rule %s has no clause", ErrInvalidClause, def.Name)
		}
		r := &Rule{Name: def.Name, clause: def.Clause.clone(), index: i}
		g.rules = append(g.rules, r)
		g.rulesByName.Put(r.Name, r)
	}
	for _, r := range g.rules {
		if err := g.resolve(r, r.clause); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("grammar %s has %d rules", name, len(g.rules))
	return g, nil
}

// resolve checks a rule's clause tree for construction errors and binds
// rule references.
func (g *Grammar) resolve(r *Rule, c Clause) error {
	if err := c.base().err; err != nil {
		return fmt.Errorf("%w in rule %s: %s: %v", ErrInvalidClause, r.Name, c.Kind(), err)
	}
	switch c := c.(type) {
	case *RuleRefClause:
		target, ok := g.Rule(c.name)
		if !ok {
			return fmt.Errorf("%w: %s (referenced by rule %s)", ErrRuleNotFound, c.name, r.Name)
		}
		c.rule = target
	case *RegexpClause:
		g.hasRegexp = true
	}
	for _, sub := range c.subClauses() {
		if err := g.resolve(r, sub); err != nil {
			return err
		}
	}
	return nil
}

// Rule returns the rule named name.
func (g *Grammar) Rule(name string) (*Rule, bool) {
	r, found := g.rulesByName.Get(name)
	if !found {
		return nil, false
	}
	return r.(*Rule), true
}

// Rules returns all rules in order of definition.
func (g *Grammar) Rules() []*Rule {
	rules := make([]*Rule, len(g.rules))
	copy(rules, g.rules)
	return rules
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// StartRule returns the first rule of the grammar.
func (g *Grammar) StartRule() *Rule {
	return g.rules[0]
}

// EachRule calls mapper for every rule in order of definition and collects
// the non-nil results.
func (g *Grammar) EachRule(mapper func(r *Rule) interface{}) []interface{} {
	var res []interface{}
	for _, v := range g.rulesByName.Values() {
		if x := mapper(v.(*Rule)); x != nil {
			res = append(res, x)
		}
	}
	return res
}

// String returns the grammar in PEG notation, one rule per line.
func (g *Grammar) String() string {
	var b strings.Builder
	for _, r := range g.rules {
		b.WriteString(r.String())
		b.WriteString(" ;\n")
	}
	return b.String()
}

// Dump traces the rules of the grammar. For debugging purposes.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.index, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

// Fingerprint returns a structural hash of the grammar. Grammars with the
// same rules print the same and have identical fingerprints, regardless of
// their names.
func (g *Grammar) Fingerprint() string {
	type ruleShape struct {
		Name   string
		Clause string
	}
	shape := struct {
		Rules []ruleShape
	}{}
	for _, r := range g.rules {
		shape.Rules = append(shape.Rules, ruleShape{Name: r.Name, Clause: r.clause.String()})
	}
	h, err := structhash.Hash(shape, 1)
	if err != nil {
		tracer().Errorf("cannot hash grammar %s: %v", g.Name, err)
		return ""
	}
	return h
}
