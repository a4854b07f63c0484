package main

import (
	"fmt"
	"io/ioutil"

	"github.com/npillmayer/squirrel/peg"
	"github.com/npillmayer/squirrel/peg/metagrammar"
	"github.com/npillmayer/squirrel/peg/tree"
)

// We provide a simple expression grammar as a default for experiments.
// Both operators are left associative.
const exprGrammar = `
# Arithmetic expressions
Sum     <- add:(Sum SumOp Product) / Product ;
Product <- mul:(Product ProdOp Factor) / Factor ;
Factor  <- num:Number / '(' WS Sum ')' WS ;
Number  <- ` + "`[0-9]+`" + ` WS ;
SumOp   <- op:[+\-] WS ;
ProdOp  <- op:[*/] WS ;
WS      <- [ \t]* ;
`

// session holds a grammar and a parser for it.
type session struct {
	settings *settings
	g        *peg.Grammar
	parser   *peg.Parser
	builtin  bool
}

func newSession(s *settings) (*session, error) {
	sess := &session{settings: s}
	if err := sess.load(s.grammarFile); err != nil {
		return nil, err
	}
	return sess, nil
}

// load reads a grammar from file filename. An empty filename selects the
// expression grammar.
func (sess *session) load(filename string) error {
	var g *peg.Grammar
	var err error
	if filename == "" {
		g, err = metagrammar.Compile("Expressions", exprGrammar)
	} else {
		var source []byte
		if source, err = ioutil.ReadFile(filename); err != nil {
			return fmt.Errorf("read grammar: %w", err)
		}
		g, err = metagrammar.Compile(filename, string(source))
	}
	if err != nil {
		return err
	}
	var opts []peg.Option
	if sess.settings.startRule != "" {
		if _, ok := g.Rule(sess.settings.startRule); !ok {
			return fmt.Errorf("%w: %s", peg.ErrRuleNotFound, sess.settings.startRule)
		}
		opts = append(opts, peg.StartRule(sess.settings.startRule))
	}
	sess.g = g
	sess.parser = peg.NewParser(g, opts...)
	sess.builtin = filename == ""
	tracer().Infof("Grammar %s has %d rules", g.Name, g.Size())
	g.Dump() // only visible in debug mode
	return nil
}

// parse parses input and displays the result.
func (sess *session) parse(input string) error {
	var root *tree.Node
	var err error
	if sess.settings.cst {
		m := sess.parser.Parse(input)
		if root, err = tree.CST(m, sess.parser.Input()); err != nil {
			err = &tree.SyntaxError{Position: sess.parser.FurthestPosition(), Matched: -1}
		}
	} else {
		root, err = tree.Parse(sess.parser, input, tree.AllowSyntaxErrors(true))
	}
	defer sess.details()
	if err != nil {
		return err
	}
	renderTree(root)
	if rest := sess.parser.Input()[root.Span.To():]; len(rest) > 0 {
		return fmt.Errorf("unmatched input %q", string(rest))
	}
	if root.HasSyntaxErrors() {
		return fmt.Errorf("unmatched input %q", root.Child(len(root.Children)-1).Text)
	}
	if sess.builtin && !sess.settings.cst {
		v, err := evaluate(root)
		if err != nil {
			return err
		}
		printValue(v)
	}
	return nil
}

func (sess *session) details() {
	if sess.settings.showStats {
		renderStats(sess.parser.Stats())
	}
	if sess.settings.showMemo {
		renderMemo(sess.parser)
	}
}
