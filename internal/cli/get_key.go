package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barnettlynn/emvsign/pkg/apdu"
	"github.com/barnettlynn/emvsign/pkg/cakeys"
	"github.com/barnettlynn/emvsign/pkg/chain"
	"github.com/barnettlynn/emvsign/pkg/dict"
	"github.com/barnettlynn/emvsign/pkg/discovery"
	"github.com/barnettlynn/emvsign/pkg/gpo"
	"github.com/barnettlynn/emvsign/pkg/tlv"
)

var getKeyContext bool

func newGetKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get-key",
		Short: "Run GET PROCESSING OPTIONS and verify the Issuer and ICC certificate chain",
		RunE:  runGetKey,
	}
	// Named "context", not "verbose": the root command already owns the
	// persistent --verbose/-v flag (debug logging), and a same-named local
	// flag would shadow it during pflag's parent-flag merge, silently
	// breaking "emvsign get-key -v".
	cmd.Flags().BoolVar(&getKeyContext, "context", false, "also print AID/AIP/PAN/expiry context")
	return cmd
}

func runGetKey(cmd *cobra.Command, args []string) error {
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

		pan, err := requireString(result.Fields, 0x5A)
		if err != nil {
			return fmt.Errorf("read PAN: %w", err)
		}

		issuerKey, err := verifyIssuer(result.Fields, app.AID, pan)
		if err != nil {
			return fmt.Errorf("verify issuer certificate: %w", err)
		}
		fmt.Printf("Issuer public key: exponent=%s modulus=%X\n", issuerKey.Key.Exponent, issuerKey.Key.Modulus.Bytes())

		iccKey, err := verifyICC(result.Fields, pan, result.SDABytes, result.AIP, issuerKey.Key)
		if err != nil {
			return fmt.Errorf("verify ICC certificate: %w", err)
		}
		fmt.Printf("ICC public key: exponent=%s modulus=%X\n", iccKey.Key.Exponent, iccKey.Key.Modulus.Bytes())

		if getKeyContext {
			fmt.Printf("AID: %X\nLabel: %s\nAIP: %X\nPAN: %s\nIssuer cert expiry: %s\nICC cert expiry: %s\n",
				app.AID, app.Label, result.AIP, pan,
				issuerKey.Expiry.Format("2006-01-02"), iccKey.Expiry.Format("2006-01-02"))
		}
		return nil
	})
}

func verifyIssuer(fields tlv.FieldMap, aid []byte, pan string) (*chain.Recovered, error) {
	rid, index, err := caKeyIndex(fields, aid)
	if err != nil {
		return nil, err
	}
	ca, err := cakeys.Lookup(rid, index)
	if err != nil {
		return nil, err
	}
	cert, err := requireBinary(fields, 0x90)
	if err != nil {
		return nil, err
	}
	exponent, err := requireBinary(fields, 0x9F32)
	if err != nil {
		return nil, err
	}

	in := chain.Input{
		Parent:    chain.PublicKey{Modulus: ca.Modulus, Exponent: ca.Exponent},
		Cert:      cert,
		Exponent:  exponent,
		Remainder: optionalBinary(fields.Get(0x92)),
		PAN:       pan,
	}
	return chain.Verify(chain.RoleIssuer, in)
}

func verifyICC(fields tlv.FieldMap, pan string, sda, aip []byte, issuerKey chain.PublicKey) (*chain.Recovered, error) {
	cert, err := requireBinary(fields, 0x9F46)
	if err != nil {
		return nil, err
	}
	exponent, err := requireBinary(fields, 0x9F47)
	if err != nil {
		return nil, err
	}
	_, hasTagList := fields.Get(0x9F4A)

	in := chain.Input{
		Parent:     issuerKey,
		Cert:       cert,
		Exponent:   exponent,
		Remainder:  optionalBinary(fields.Get(0x9F48)),
		PAN:        pan,
		Extra:      sda,
		IncludeAIP: hasTagList,
		AIP:        aip,
	}
	return chain.Verify(chain.RoleICC, in)
}

func caKeyIndex(fields tlv.FieldMap, aid []byte) (rid [5]byte, index byte, err error) {
	if len(aid) < 5 {
		return rid, 0, fmt.Errorf("AID %X shorter than a RID", aid)
	}
	copy(rid[:], aid[:5])
	idx, err := requireBinary(fields, 0x8F)
	if err != nil {
		return rid, 0, err
	}
	if len(idx) == 0 {
		return rid, 0, fmt.Errorf("Certification Authority Public Key Index (0x8F) is empty")
	}
	return rid, idx[0], nil
}

func requireBinary(fields tlv.FieldMap, tag tlv.Tag) ([]byte, error) {
	v, ok := fields.Get(tag)
	if !ok {
		return nil, &chain.MissingTagError{Tag: tag}
	}
	if v.Kind != tlv.KindBinary {
		return nil, &tlv.WrongTypeError{Tag: tag, Expected: "Binary"}
	}
	return v.Bin, nil
}

func requireString(fields tlv.FieldMap, tag tlv.Tag) (string, error) {
	v, ok := fields.Get(tag)
	if !ok {
		return "", &chain.MissingTagError{Tag: tag}
	}
	return v.Str, nil
}

func optionalBinary(v tlv.Value, ok bool) []byte {
	if !ok {
		return nil
	}
	return v.Bin
}
