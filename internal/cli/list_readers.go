package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barnettlynn/emvsign/pkg/apdu"
)

func newListReadersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-readers",
		Short: "List the PC/SC resource manager's readers",
		RunE: func(cmd *cobra.Command, args []string) error {
			readers, err := apdu.ListReaders()
			if err != nil {
				return fmt.Errorf("list readers: %w", err)
			}
			if len(readers) == 0 {
				fmt.Println("no readers found")
				return nil
			}
			for i, name := range readers {
				fmt.Printf("%d: %s\n", i, name)
			}
			return nil
		},
	}
}
