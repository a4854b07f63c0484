package main

import (
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// settings are shared by all sub-commands.
type settings struct {
	traceLevel  string
	grammarFile string
	startRule   string
	cst         bool
	showMemo    bool
	showStats   bool
}

func main() {
	var s settings
	rootCmd := &cobra.Command{
		Use:   "prepl",
		Short: "A sandbox for parsing expression grammars",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initDisplay()
			gtrace.SyntaxTracer = gologadapter.New()
			tracer().SetTraceLevel(tracing.TraceLevelFromString(s.traceLevel))
			tracing.Select("squirrel.peg").SetTraceLevel(tracing.TraceLevelFromString(s.traceLevel))
			tracer().Infof("Trace level is %s", s.traceLevel)
		},
		SilenceUsage: true,
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&s.traceLevel, "trace", "Info", "trace level [Debug|Info|Error]")
	flags.StringVarP(&s.grammarFile, "grammar", "g", "", "grammar file (default: arithmetic expressions)")
	flags.StringVarP(&s.startRule, "start", "s", "", "start rule (default: first rule of grammar)")
	flags.BoolVar(&s.cst, "cst", false, "display concrete syntax trees")
	flags.BoolVar(&s.showMemo, "memo", false, "display the memo table after parsing")
	flags.BoolVar(&s.showStats, "stats", false, "display parser counters after parsing")

	rootCmd.AddCommand(newParseCmd(&s))
	rootCmd.AddCommand(newReplCmd(&s))
	rootCmd.AddCommand(newGrammarCmd(&s))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
