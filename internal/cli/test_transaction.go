package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barnettlynn/emvsign/pkg/apdu"
	"github.com/barnettlynn/emvsign/pkg/dict"
	"github.com/barnettlynn/emvsign/pkg/discovery"
	"github.com/barnettlynn/emvsign/pkg/gpo"
	"github.com/barnettlynn/emvsign/pkg/tlv"
)

func newTestTransactionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test-transaction",
		Short: "Run GET PROCESSING OPTIONS and an INTERNAL AUTHENTICATE, printing the Signed Dynamic Application Data",
		RunE:  runTestTransaction,
	}
}

func runTestTransaction(cmd *cobra.Command, args []string) error {
	reader, err := connectReader(readerIndex)
	if err != nil {
		return err
	}
	defer disconnect(reader)

	return apdu.WithTransaction(reader, func() error {
		dir, err := discovery.Discover(reader, dict.Default, usePPSE)
		if err != nil {
			return fmt.Errorf("discover applications: %w", err)
		}
		if len(dir.Applications) == 0 {
			return fmt.Errorf("no applications found")
		}
		app := selectApplication(dir.Applications)

		state := gpo.DefaultTerminalState(nil)
		result, err := gpo.Run(reader, dict.Default, app.AID, state)
		if err != nil {
			return fmt.Errorf("process application %X: %w", app.AID, err)
		}

		ddolValue, hasDDOL := result.Fields.Get(0x9F49)
		var ddolPayload []byte
		if hasDDOL && ddolValue.Kind == tlv.KindDOL {
			ddolPayload = tlv.EncodeDOL(ddolValue.DOL, state, 0, false)
		}

		body, sw, err := apdu.Exchange(reader, apdu.InternalAuthenticate(ddolPayload))
		if err != nil {
			return fmt.Errorf("INTERNAL AUTHENTICATE: %w", err)
		}
		if !apdu.SwOK(sw) {
			return fmt.Errorf("INTERNAL AUTHENTICATE: %w", &apdu.StatusError{SW: sw})
		}

		fields, err := tlv.DecodeAll(dict.Default, body)
		if err != nil {
			return fmt.Errorf("decode INTERNAL AUTHENTICATE response: %w", err)
		}
		if len(fields) == 0 {
			return fmt.Errorf("INTERNAL AUTHENTICATE response is empty")
		}

		signed, err := extractSignedDynamicData(fields[0])
		if err != nil {
			return err
		}
		fmt.Printf("AID: %X\nSigned Dynamic Application Data: %X\n", app.AID, signed)
		return nil
	})
}

// extractSignedDynamicData pulls Signed Dynamic Application Data out of
// either INTERNAL AUTHENTICATE response shape: template 0x77 carrying
// child tag 0x9F4B, or a bare binary 0x80.
func extractSignedDynamicData(f tlv.Field) ([]byte, error) {
	switch f.Tag {
	case 0x77:
		signed, err := f.Value.BinaryAt(0x9F4B)
		if err != nil {
			return nil, fmt.Errorf("INTERNAL AUTHENTICATE response: Signed Dynamic Application Data: %w", err)
		}
		return signed, nil
	case 0x80:
		if f.Value.Kind != tlv.KindBinary {
			return nil, fmt.Errorf("INTERNAL AUTHENTICATE response: tag 0x80 is not binary")
		}
		return f.Value.Bin, nil
	default:
		return nil, fmt.Errorf("INTERNAL AUTHENTICATE response: unexpected root tag 0x%02X, want 0x77 or 0x80", f.Tag)
	}
}
