package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nasedkinpv/numr/internal/session"
)

var evalCmd = &cobra.Command{
	Use:   "eval [expression]",
	Short: "Evaluate a single line and print its result",
	Long: `eval evaluates one line of input, either given as an argument or
read from stdin, and prints the resulting value. It starts from an
empty environment, so it has no previous result and no variables.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	var line string
	if len(args) == 1 {
		line = args[0]
	} else {
		data, err := readAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		line = strings.TrimSpace(data)
	}

	sess := session.New()
	sess.SetRates(loadRates())

	outcome := sess.Eval(line)
	if outcome.Err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", outcome.Err.Kind, outcome.Err.Message)
		os.Exit(1)
	}
	if outcome.Empty {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), outcome.Display)
	return nil
}
