package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nasedkinpv/numr/internal/rpc"
	"github.com/nasedkinpv/numr/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve line-delimited JSON-RPC 2.0 over stdio",
	Long: `serve reads JSON-RPC 2.0 requests one per line from stdin and
writes one response per line to stdout, dispatching eval, eval_lines,
clear, get_totals, get_variables, and reload_rates to a single
long-lived session. Intended for embedding numr behind an editor
plugin or another process, not for interactive use.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	sess := session.New()
	sess.SetRates(loadRates())

	if err := rpc.Serve(cmd.InOrStdin(), cmd.OutOrStdout(), sess); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
	return nil
}
