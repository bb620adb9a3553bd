package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nasedkinpv/numr/internal/session"
	"github.com/nasedkinpv/numr/internal/totals"
)

var flagShowTotals bool

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Evaluate a document line by line",
	Long: `run evaluates a whole document, one line at a time, carrying
variables and the previous result forward from line to line, and
prints each line's result. With --totals it also prints the grouped
sums at the end, the same aggregation get_totals exposes over RPC.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVarP(&flagShowTotals, "totals", "t", false,
		"print the document's grouped totals after evaluating it")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	var (
		data string
		err  error
	)
	if len(args) == 1 {
		raw, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return fmt.Errorf("reading %s: %w", args[0], readErr)
		}
		data = string(raw)
	} else {
		data, err = readAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	lines := strings.Split(data, "\n")

	sess := session.New()
	sess.SetRates(loadRates())

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	failed := false
	for _, outcome := range sess.EvalLines(lines) {
		switch {
		case outcome.Err != nil:
			fmt.Fprintf(errOut, "%s: %s\n", outcome.Err.Kind, outcome.Err.Message)
			failed = true
		case outcome.Empty:
			fmt.Fprintln(out)
		default:
			fmt.Fprintln(out, outcome.Display)
		}
	}

	if flagShowTotals {
		groups := sess.GetTotals()
		if len(groups) > 0 {
			fmt.Fprintln(out, "---")
			fmt.Fprint(out, totals.Format(groups))
		}
	}

	if failed {
		os.Exit(1)
	}
	return nil
}
