// Package gpo drives GET PROCESSING OPTIONS against a selected application
// and walks its Application File Locator, producing the consolidated card
// data map and Static-Authenticated-Data byte stream the certificate chain
// verifier needs.
package gpo

import (
	"fmt"

	"github.com/barnettlynn/emvsign/pkg/apdu"
	"github.com/barnettlynn/emvsign/pkg/tlv"
)

// literalPDOL is the empty Command Template the driver sends when the
// selected application's FCI carries no PDOL.
var literalPDOL = []byte{0x83, 0x00}

// AFLEntry is one four-byte Application File Locator entry: records
// first..last in the file named by SFI, the leading sdaCount of which also
// feed Static Data Authentication.
type AFLEntry struct {
	SFI      byte
	First    byte
	Last     byte
	SDACount byte
}

// Result is the output of a GPO exchange and AFL walk.
type Result struct {
	AIP      []byte
	AFL      []AFLEntry
	Fields   tlv.FieldMap
	SDABytes []byte
}

// Run selects aid, runs GET PROCESSING OPTIONS against it (encoding its
// PDOL, if any, with state), and reads every record the returned AFL names.
func Run(card apdu.Card, lookup tlv.Lookup, aid []byte, state tlv.FieldMap) (*Result, error) {
	fci, err := selectApplication(card, lookup, aid)
	if err != nil {
		return nil, err
	}

	pdolPayload := literalPDOL
	if dol, err := fci.Path(0xA5, 0x9F38); err == nil && dol.Kind == tlv.KindDOL {
		pdolPayload = tlv.EncodeDOL(dol.DOL, state, 0x83, true)
	}

	body, sw, err := apdu.Exchange(card, apdu.GetProcessingOptions(pdolPayload))
	if err != nil {
		return nil, fmt.Errorf("GET PROCESSING OPTIONS: %w", err)
	}
	if !apdu.SwOK(sw) {
		return nil, fmt.Errorf("GET PROCESSING OPTIONS: %w", &apdu.StatusError{SW: sw})
	}

	fields, err := tlv.DecodeAll(lookup, body)
	if err != nil {
		return nil, fmt.Errorf("decode GPO response: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("GPO response is empty")
	}

	aip, aflBytes, err := extractAIPAndAFL(fields[0])
	if err != nil {
		return nil, err
	}
	afl, err := parseAFL(aflBytes)
	if err != nil {
		return nil, err
	}

	fieldMap, sda, err := readAFL(card, lookup, afl)
	if err != nil {
		return nil, err
	}

	return &Result{AIP: aip, AFL: afl, Fields: fieldMap, SDABytes: sda}, nil
}

func selectApplication(card apdu.Card, lookup tlv.Lookup, aid []byte) (tlv.Value, error) {
	body, sw, err := apdu.Exchange(card, apdu.SelectByName(aid))
	if err != nil {
		return tlv.Value{}, fmt.Errorf("select application: %w", err)
	}
	if !apdu.SwOK(sw) {
		return tlv.Value{}, fmt.Errorf("select application: %w", &apdu.StatusError{SW: sw})
	}
	fields, err := tlv.DecodeAll(lookup, body)
	if err != nil {
		return tlv.Value{}, fmt.Errorf("select application: decode FCI: %w", err)
	}
	if len(fields) == 0 || fields[0].Tag != 0x6F || fields[0].Value.Kind != tlv.KindTemplate {
		return tlv.Value{}, fmt.Errorf("select application: response root tag is not 0x6F (FCI Template)")
	}
	return fields[0].Value, nil
}

// extractAIPAndAFL pulls the Application Interchange Profile and
// Application File Locator out of either GPO response shape: Format 2
// (template 0x77 with child tags 0x82/0x94) or Format 1 (binary 0x80, AIP
// then AFL concatenated).
func extractAIPAndAFL(f tlv.Field) (aip, afl []byte, err error) {
	switch f.Tag {
	case 0x77:
		aip, err = f.Value.BinaryAt(0x82)
		if err != nil {
			return nil, nil, fmt.Errorf("GPO response: AIP: %w", err)
		}
		afl, err = f.Value.BinaryAt(0x94)
		if err != nil {
			return nil, nil, fmt.Errorf("GPO response: AFL: %w", err)
		}
		return aip, afl, nil
	case 0x80:
		if f.Value.Kind != tlv.KindBinary || len(f.Value.Bin) < 2 {
			return nil, nil, fmt.Errorf("GPO response: Format 1 template shorter than the 2-byte AIP")
		}
		return f.Value.Bin[:2], f.Value.Bin[2:], nil
	default:
		return nil, nil, fmt.Errorf("GPO response: unexpected root tag 0x%02X, want 0x77 or 0x80", f.Tag)
	}
}

func parseAFL(raw []byte) ([]AFLEntry, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("AFL length %d is not a multiple of 4", len(raw))
	}
	entries := make([]AFLEntry, 0, len(raw)/4)
	for i := 0; i < len(raw); i += 4 {
		entries = append(entries, AFLEntry{
			SFI:      raw[i] >> 3,
			First:    raw[i+1],
			Last:     raw[i+2],
			SDACount: raw[i+3],
		})
	}
	return entries, nil
}

// readAFL reads every record named by afl, merging each record template's
// inner fields (the outer 0x70 is discarded) and assembling the SDA byte
// stream from the first SDACount records of each entry.
func readAFL(card apdu.Card, lookup tlv.Lookup, afl []AFLEntry) (tlv.FieldMap, []byte, error) {
	fields := make(tlv.FieldMap)
	var sda []byte

	for _, entry := range afl {
		count := byte(0)
		for record := entry.First; record <= entry.Last; record++ {
			body, sw, err := apdu.Exchange(card, apdu.ReadRecord(record, entry.SFI))
			if err != nil {
				return nil, nil, fmt.Errorf("read SFI 0x%02X record %d: %w", entry.SFI, record, err)
			}
			if !apdu.SwOK(sw) {
				return nil, nil, fmt.Errorf("read SFI 0x%02X record %d: %w", entry.SFI, record, &apdu.StatusError{SW: sw})
			}
			recField, raw, value, _, err := tlv.DecodeOneRaw(lookup, body)
			if err != nil {
				return nil, nil, fmt.Errorf("read SFI 0x%02X record %d: decode: %w", entry.SFI, record, err)
			}
			if recField.Tag != 0x70 || recField.Value.Kind != tlv.KindTemplate {
				return nil, nil, fmt.Errorf("read SFI 0x%02X record %d: missing Record Template (0x70)", entry.SFI, record)
			}
			for _, inner := range recField.Value.Fields {
				fields[inner.Tag] = inner.Value
			}

			count++
			if count <= entry.SDACount {
				switch {
				case entry.SFI >= 1 && entry.SFI <= 10:
					// Raw record bytes without the outer 0x70 tag+length.
					sda = append(sda, value...)
				case entry.SFI >= 11 && entry.SFI <= 30:
					// Raw record bytes including the outer 0x70 tag+length.
					sda = append(sda, raw...)
				}
				// SFI outside 1..30 contributes nothing.
			}
		}
	}
	return fields, sda, nil
}
