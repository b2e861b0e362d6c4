// Command finadvisor runs the tax and loan calculators from the command line
// and serves them over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "finadvisor",
		Short:         "Personal finance calculators: income tax, loan EMI and budgets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newTaxCmd(),
		newLoanCmd(),
		newWorksheetCmd(),
		newBanksCmd(),
		newServeCmd(),
	)
	return root
}
