// Package cli wires the four diagnostic subcommands (list-readers,
// show-pse, get-key, test-transaction), sharing the persistent --reader
// and --ppse flags.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/barnettlynn/emvsign/internal/logging"
)

var (
	readerIndex int
	usePPSE     bool
	verbose     bool
)

// Execute runs the root command and exits non-zero on error, printing a
// one-line diagnostic with its wrapped cause chain to stderr.
func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "emvsign",
		Short:         "Terminal-side EMV chip card diagnostic tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Configure(verbose)
		},
	}
	root.PersistentFlags().IntVar(&readerIndex, "reader", 0, "PC/SC reader index")
	root.PersistentFlags().BoolVar(&usePPSE, "ppse", false, "select 2PAY.SYS.DDF01 (contactless) instead of 1PAY.SYS.DDF01 (contact)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newListReadersCommand())
	root.AddCommand(newShowPSECommand())
	root.AddCommand(newGetKeyCommand())
	root.AddCommand(newTestTransactionCommand())
	return root
}
