package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/barnettlynn/emvsign/pkg/apdu"
	"github.com/barnettlynn/emvsign/pkg/dict"
	"github.com/barnettlynn/emvsign/pkg/discovery"
)

func newShowPSECommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show-pse",
		Short: "Select the PSE/PPSE and list the Application Templates it names",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := connectReader(readerIndex)
			if err != nil {
				return err
			}
			defer disconnect(reader)

			return apdu.WithTransaction(reader, func() error {
				result, err := discovery.Discover(reader, dict.Default, usePPSE)
				if err != nil {
					return fmt.Errorf("discover applications: %w", err)
				}
				printApplications(result, term.IsTerminal(int(os.Stdout.Fd())))
				return nil
			})
		},
	}
}

func printApplications(result *discovery.Result, interactive bool) {
	for _, app := range result.Applications {
		fmt.Printf("AID %X  %s", app.AID, app.Label)
		if app.Priority != nil {
			fmt.Printf("  priority=%d", *app.Priority)
		}
		if app.Country != "" {
			fmt.Printf("  country=%s", app.Country)
		}
		if app.IIN != nil {
			fmt.Printf("  iin=%s", app.IIN.String())
		}
		fmt.Println()
	}
	if len(result.LanguagePreference) > 0 {
		fmt.Printf("language preference: %v\n", result.LanguagePreference)
	}
	if interactive {
		fmt.Println()
	}
}
