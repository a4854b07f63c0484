package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const replHelp = `Enter input to parse it, or one of the commands
  :grammar        display the rules of the grammar
  :load [file]    load a grammar file (no file: expression grammar)
  :cst on|off     display concrete instead of abstract syntax trees
  :memo on|off    display the memo table after parsing
  :stats on|off   display parser counters after parsing
  :help           display this text
  :quit           leave P.REPL`

func newReplCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse input lines interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(s)
			if err != nil {
				return err
			}
			repl, err := readline.New("prepl> ")
			if err != nil {
				return err
			}
			defer repl.Close()
			pterm.Info.Println("Welcome to P.REPL") // colored welcome message
			tracer().Infof("Quit with <ctrl>D")    // inform user how to stop the CLI
			intp := &Intp{sess: sess, repl: repl}
			intp.REPL()
			return nil
		},
	}
	return cmd
}

// Intp is our interpreter object
type Intp struct {
	sess *session
	repl *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	fmt.Println("Good bye!")
}

// Eval executes a command line or parses an input line.
func (intp *Intp) Eval(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		return false, intp.sess.parse(line)
	}
	args := strings.Fields(line)
	s := intp.sess.settings
	switch args[0] {
	case ":quit", ":q":
		return true, nil
	case ":help", ":h":
		pterm.Println(replHelp)
	case ":grammar", ":g":
		printGrammar(intp.sess)
	case ":load":
		filename := ""
		if len(args) > 1 {
			filename = args[1]
		}
		return false, intp.sess.load(filename)
	case ":cst":
		return false, toggle(&s.cst, args)
	case ":memo":
		return false, toggle(&s.showMemo, args)
	case ":stats":
		return false, toggle(&s.showStats, args)
	default:
		return false, fmt.Errorf("unknown command %s, try :help", args[0])
	}
	return false, nil
}

func toggle(flag *bool, args []string) error {
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		return fmt.Errorf("usage: %s on|off", args[0])
	}
	*flag = args[1] == "on"
	return nil
}

func printGrammar(sess *session) {
	pterm.DefaultSection.Println(fmt.Sprintf("Grammar %s", sess.g.Name))
	pterm.Println(sess.g.String())
}
