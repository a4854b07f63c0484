package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

func newParseCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse input...",
		Short: "Parse input and display the syntax tree",
		Long: `Parse the arguments, joined by blanks, and display the syntax tree.

Input which cannot be parsed completely is reported as a syntax error; the
unmatched rest of the input is shown as a node of the tree.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(s)
			if err != nil {
				return err
			}
			input := strings.TrimSpace(strings.Join(args, " "))
			if input == "" {
				return errors.New("input is empty")
			}
			tracer().Infof("Input argument is %q", input)
			return sess.parse(input)
		},
	}
	return cmd
}

func newGrammarCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Display the rules of the grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(s)
			if err != nil {
				return err
			}
			printGrammar(sess)
			return nil
		},
	}
	return cmd
}
