// Package discovery selects the Payment System Environment (contact) or
// Proximity PSE (contactless) directory and enumerates the Application
// Templates it lists.
package discovery

import (
	"fmt"
	"math/big"

	"github.com/barnettlynn/emvsign/pkg/apdu"
	"github.com/barnettlynn/emvsign/pkg/tlv"
)

// Well-known directory application names.
const (
	PSEName  = "1PAY.SYS.DDF01" // contact
	PPSEName = "2PAY.SYS.DDF01" // contactless
)

// Application is one decoded Application Template (tag 0x61).
type Application struct {
	AID      []byte
	Label    string
	Priority *int   // 0x87, optional
	Country  string // 0x73/0x5F55, optional
	IIN      *big.Int // 0x73/0x42, optional
}

// Result is the outcome of selecting a directory and reading its
// Application Templates.
type Result struct {
	Applications        []Application
	LanguagePreference   []string // PSE only, 0xA5/0x5F2D
}

// Discover selects the PSE (ppse=false) or PPSE (ppse=true) and enumerates
// its Application Templates.
func Discover(card apdu.Card, lookup tlv.Lookup, ppse bool) (*Result, error) {
	name := PSEName
	if ppse {
		name = PPSEName
	}
	fci, err := selectFCI(card, lookup, name)
	if err != nil {
		return nil, err
	}
	if ppse {
		apps, err := applicationsFromFCI(fci)
		if err != nil {
			return nil, fmt.Errorf("enumerate PPSE applications: %w", err)
		}
		return &Result{Applications: apps}, nil
	}
	apps, langs, err := applicationsFromSFI(card, lookup, fci)
	if err != nil {
		return nil, fmt.Errorf("enumerate PSE applications: %w", err)
	}
	return &Result{Applications: apps, LanguagePreference: langs}, nil
}

// selectFCI issues SELECT by name and returns the FCI Template (0x6F) value.
func selectFCI(card apdu.Card, lookup tlv.Lookup, name string) (tlv.Value, error) {
	body, sw, err := apdu.Exchange(card, apdu.SelectByName([]byte(name)))
	if err != nil {
		return tlv.Value{}, fmt.Errorf("select %s: %w", name, err)
	}
	if !apdu.SwOK(sw) {
		return tlv.Value{}, fmt.Errorf("select %s: %w", name, &apdu.StatusError{SW: sw})
	}
	fields, err := tlv.DecodeAll(lookup, body)
	if err != nil {
		return tlv.Value{}, fmt.Errorf("select %s: decode FCI: %w", name, err)
	}
	if len(fields) == 0 || fields[0].Tag != 0x6F {
		return tlv.Value{}, fmt.Errorf("select %s: response root tag is not 0x6F (FCI Template)", name)
	}
	if fields[0].Value.Kind != tlv.KindTemplate {
		return tlv.Value{}, &tlv.WrongTypeError{Tag: 0x6F, Expected: "Template"}
	}
	return fields[0].Value, nil
}

// applicationsFromFCI enumerates Application Templates directly from
// FCI/0xA5/0xBF0C/0x61* (PPSE path).
func applicationsFromFCI(fci tlv.Value) ([]Application, error) {
	a5, err := fci.TemplateAt(0xA5)
	if err != nil {
		return nil, err
	}
	dir, err := a5.TemplateAt(0xBF0C)
	if err != nil {
		return nil, err
	}
	var apps []Application
	for _, child := range dir.Children(0x61) {
		app, err := parseApplicationTemplate(child)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// applicationsFromSFI reads the SFI named in FCI/0xA5/0x88 record by record
// (PSE path).
func applicationsFromSFI(card apdu.Card, lookup tlv.Lookup, fci tlv.Value) ([]Application, []string, error) {
	a5, err := fci.TemplateAt(0xA5)
	if err != nil {
		return nil, nil, err
	}
	sfiBytes, err := a5.BinaryAt(0x88)
	if err != nil {
		return nil, nil, err
	}
	if len(sfiBytes) == 0 {
		return nil, nil, fmt.Errorf("SFI field (0x88) is empty")
	}
	raw := sfiBytes[0]
	if raw&0xE0 != 0 {
		return nil, nil, fmt.Errorf("SFI 0x%02X: top three bits must be zero", raw)
	}
	sfi := raw & 0x1F

	var langs []string
	if pref, err := a5.StringAt(0x5F2D); err == nil {
		langs = splitLanguagePreference(pref)
	}

	var apps []Application
	for record := byte(1); record <= 15; record++ {
		body, sw, err := apdu.Exchange(card, apdu.ReadRecord(record, sfi))
		if err != nil {
			return nil, nil, fmt.Errorf("read SFI 0x%02X record %d: %w", sfi, record, err)
		}
		if sw == 0x6A83 {
			break
		}
		if !apdu.SwOK(sw) {
			return nil, nil, fmt.Errorf("read SFI 0x%02X record %d: %w", sfi, record, &apdu.StatusError{SW: sw})
		}
		fields, err := tlv.DecodeAll(lookup, body)
		if err != nil {
			return nil, nil, fmt.Errorf("read SFI 0x%02X record %d: decode: %w", sfi, record, err)
		}
		if len(fields) == 0 || fields[0].Tag != 0x70 || fields[0].Value.Kind != tlv.KindTemplate {
			return nil, nil, fmt.Errorf("read SFI 0x%02X record %d: missing Record Template (0x70)", sfi, record)
		}
		for _, child := range fields[0].Value.Children(0x61) {
			app, err := parseApplicationTemplate(child)
			if err != nil {
				return nil, nil, err
			}
			apps = append(apps, app)
		}
	}
	return apps, langs, nil
}

func parseApplicationTemplate(app tlv.Value) (Application, error) {
	aid, err := app.BinaryAt(0x4F)
	if err != nil {
		return Application{}, fmt.Errorf("application template: AID: %w", err)
	}
	label, err := app.StringAt(0x50)
	if err != nil {
		return Application{}, fmt.Errorf("application template: label: %w", err)
	}
	a := Application{AID: append([]byte(nil), aid...), Label: label}

	if priority, ok := app.Child(0x87); ok && len(priority.Bin) > 0 {
		p := int(priority.Bin[0])
		a.Priority = &p
	}
	if dd, ok := app.Child(0x73); ok && dd.Kind == tlv.KindTemplate {
		if country, err := dd.StringAt(0x5F55); err == nil {
			a.Country = country
		}
		if iin, err := dd.NumericAt(0x42); err == nil {
			a.IIN = iin
		}
	}
	return a, nil
}

// splitLanguagePreference splits a concatenation of two-letter ISO-639
// codes into successive 2-byte substrings.
func splitLanguagePreference(pref string) []string {
	var out []string
	for i := 0; i+1 < len(pref); i += 2 {
		out = append(out, pref[i:i+2])
	}
	return out
}
