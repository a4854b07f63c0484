package metagrammar

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sync"

	"github.com/npillmayer/squirrel/peg"
)

// --- Grammar ---------------------------------------------------------------

// Grammar    <- WS Rule*
// Rule       <- rule:(name:Ident WS "<-" WS Expr ';' WS)
// Expr       <- first:(Sequence ('/' WS Sequence)+) / Sequence
// Sequence   <- seq:(Labeled Labeled+) / Labeled
// Labeled    <- label:(name:Ident WS ':' WS Prefix) / Prefix
// Prefix     <- prefix:(op:[&!] WS Prefix) / Suffix
// Suffix     <- suffix:(Suffix op:[*+?] WS) / Primary
// Primary    <- Group / RuleRef / String / Char / Class / Any / Regexp
// Group      <- '(' WS (Expr / nothing:()) ')' WS
// RuleRef    <- ref:Ident WS !"<-" !':'
// String     <- string:('"' (Escape / [^"\\\n])* '"') WS
// Char       <- char:('\'' (Escape / [^'\\\n]) '\'') WS
// Class      <- class:('[' invert:'^'? (range:(ClassChar '-' ClassChar) / ClassChar)+ ']') WS
// ClassChar  <- classChar:(Escape / [^\]\\])
// Escape     <- '\\' ('u' Hex Hex Hex Hex / 'U' Hex Hex Hex Hex Hex Hex Hex Hex / 'x' Hex Hex / .)
// Any        <- any:'.' WS
// Regexp     <- '`' regexp:[^`]* '`' WS
// WS         <- ([ \t\r\n]+ / '#' [^\n]*)*
//
// Postfix operators are parsed by a left recursive rule. All of them share
// one alternative, thus repeated application (as in e*?) is grown by the
// parser as expected.
//
func makeMetaGrammar() (*peg.Grammar, error) {
	ident := peg.Regexp(`[a-zA-Z_][a-zA-Z0-9_]*`)
	hex := peg.CharSet(peg.RuneRange{Lo: '0', Hi: '9'}, peg.RuneRange{Lo: 'a', Hi: 'f'},
		peg.RuneRange{Lo: 'A', Hi: 'F'})
	ws := peg.Ref("WS")
	b := peg.NewGrammarBuilder("PEG")
	b.LHS("Grammar").Is(peg.Seq(ws, peg.ZeroOrMore(peg.Ref("Rule"))))
	b.LHS("Rule").Is(peg.Label("rule", peg.Seq(
		peg.Label("name", ident), ws, peg.Str("<-"), ws, peg.Ref("Expr"), peg.Char(';'), ws)))
	b.LHS("Expr").Is(peg.First(
		peg.Label("first", peg.Seq(peg.Ref("Sequence"),
			peg.OneOrMore(peg.Seq(peg.Char('/'), ws, peg.Ref("Sequence"))))),
		peg.Ref("Sequence")))
	b.LHS("Sequence").Is(peg.First(
		peg.Label("seq", peg.Seq(peg.Ref("Labeled"), peg.OneOrMore(peg.Ref("Labeled")))),
		peg.Ref("Labeled")))
	b.LHS("Labeled").Is(peg.First(
		peg.Label("label", peg.Seq(peg.Label("name", ident), ws, peg.Char(':'), ws, peg.Ref("Prefix"))),
		peg.Ref("Prefix")))
	b.LHS("Prefix").Is(peg.First(
		peg.Label("prefix", peg.Seq(peg.Label("op", peg.AnyOf("&!")), ws, peg.Ref("Prefix"))),
		peg.Ref("Suffix")))
	b.LHS("Suffix").Is(peg.First(
		peg.Label("suffix", peg.Seq(peg.Ref("Suffix"), peg.Label("op", peg.AnyOf("*+?")), ws)),
		peg.Ref("Primary")))
	b.LHS("Primary").Is(peg.First(
		peg.Ref("Group"), peg.Ref("RuleRef"), peg.Ref("String"), peg.Ref("Char"),
		peg.Ref("Class"), peg.Ref("Any"), peg.Ref("Regexp")))
	b.LHS("Group").Is(peg.Seq(peg.Char('('), ws,
		peg.First(peg.Ref("Expr"), peg.Label("nothing", peg.Nothing())),
		peg.Char(')'), ws))
	b.LHS("RuleRef").Is(peg.Seq(peg.Label("ref", ident), ws,
		peg.NotFollowedBy(peg.Str("<-")), peg.NotFollowedBy(peg.Char(':'))))
	b.LHS("String").Is(peg.Seq(peg.Label("string", peg.Seq(
		peg.Char('"'),
		peg.ZeroOrMore(peg.First(peg.Ref("Escape"), peg.NotCharSet(runes('"', '\\', '\n')...))),
		peg.Char('"'))), ws))
	b.LHS("Char").Is(peg.Seq(peg.Label("char", peg.Seq(
		peg.Char('\''),
		peg.First(peg.Ref("Escape"), peg.NotCharSet(runes('\'', '\\', '\n')...)),
		peg.Char('\''))), ws))
	b.LHS("Class").Is(peg.Seq(peg.Label("class", peg.Seq(
		peg.Char('['),
		peg.Optional(peg.Label("invert", peg.Char('^'))),
		peg.OneOrMore(peg.First(
			peg.Label("range", peg.Seq(peg.Ref("ClassChar"), peg.Char('-'), peg.Ref("ClassChar"))),
			peg.Ref("ClassChar"))),
		peg.Char(']'))), ws))
	b.LHS("ClassChar").Is(peg.Label("classChar",
		peg.First(peg.Ref("Escape"), peg.NotCharSet(runes(']', '\\')...))))
	b.LHS("Escape").Is(peg.Seq(peg.Char('\\'), peg.First(
		peg.Seq(append([]peg.Clause{peg.Char('u')}, repeat(hex, 4)...)...),
		peg.Seq(append([]peg.Clause{peg.Char('U')}, repeat(hex, 8)...)...),
		peg.Seq(append([]peg.Clause{peg.Char('x')}, repeat(hex, 2)...)...),
		peg.AnyChar())))
	b.LHS("Any").Is(peg.Seq(peg.Label("any", peg.Char('.')), ws))
	b.LHS("Regexp").Is(peg.Seq(peg.Char('`'),
		peg.Label("regexp", peg.ZeroOrMore(peg.NotCharSet(runes('`')...))),
		peg.Char('`'), ws))
	b.LHS("WS").Is(peg.ZeroOrMore(peg.First(
		peg.OneOrMore(peg.AnyOf(" \t\r\n")),
		peg.Seq(peg.Char('#'), peg.ZeroOrMore(peg.NotCharSet(runes('\n')...))))))
	return b.Grammar()
}

func runes(rs ...rune) []peg.RuneRange {
	ranges := make([]peg.RuneRange, len(rs))
	for i, r := range rs {
		ranges[i] = peg.RuneRange{Lo: r, Hi: r}
	}
	return ranges
}

func repeat(c peg.Clause, n int) []peg.Clause {
	cs := make([]peg.Clause, n)
	for i := range cs {
		cs[i] = c
	}
	return cs
}

var metaGrammar *peg.Grammar

var metaOnce sync.Once // monitors one-time creation of the meta grammar

// MetaGrammar returns the grammar for grammar descriptions. It is created
// once, on first use.
func MetaGrammar() *peg.Grammar {
	metaOnce.Do(func() {
		var err error
		tracer().Infof("Creating meta grammar")
		if metaGrammar, err = makeMetaGrammar(); err != nil {
			panic("Cannot create meta grammar: " + err.Error())
		}
	})
	return metaGrammar
}
