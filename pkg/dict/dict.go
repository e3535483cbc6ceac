// Package dict holds the static EMV Book 3 data-element dictionary: the
// tag -> (display name, semantic type) mapping pkg/tlv consults while
// decoding and displaying card data. The table is built once and never
// mutated, so concurrent reads need no synchronization.
package dict

import "github.com/barnettlynn/emvsign/pkg/tlv"

// Descriptor is one dictionary entry.
type Descriptor struct {
	Tag  tlv.Tag
	Name string
	Kind tlv.Kind
}

// Dictionary is an immutable tag -> Descriptor table. It implements
// tlv.Lookup.
type Dictionary map[tlv.Tag]Descriptor

// Lookup implements tlv.Lookup. Missing entries report ok=false; callers
// (pkg/tlv's decoder) default to KindBinary in that case.
func (d Dictionary) Lookup(tag tlv.Tag) (name string, kind tlv.Kind, ok bool) {
	desc, found := d[tag]
	if !found {
		return "", tlv.KindBinary, false
	}
	return desc.Name, desc.Kind, true
}

// Default is the built-in dictionary of roughly one hundred EMV Book 3 tags
// used throughout this module unless a caller supplies its own.
var Default = build()

func build() Dictionary {
	d := make(Dictionary, len(entries))
	for _, e := range entries {
		d[e.Tag] = e
	}
	return d
}

// entries is the data-element table itself, a data artifact rather than
// design — see pkg/dict/dict_test.go for spot checks rather than
// exhaustive coverage.
var entries = []Descriptor{
	{0x42, "Issuer Identification Number", tlv.KindNumeric},
	{0x4F, "Application Identifier (AID) - card", tlv.KindBinary},
	{0x50, "Application Label", tlv.KindAlphanumericSpecial},
	{0x56, "Track 1 Data", tlv.KindAlphanumericSpecial},
	{0x57, "Track 2 Equivalent Data", tlv.KindBinary},
	{0x5A, "Application Primary Account Number (PAN)", tlv.KindDigitString},
	{0x5F20, "Cardholder Name", tlv.KindAlphanumericSpecial},
	{0x5F24, "Application Expiration Date", tlv.KindNumeric},
	{0x5F25, "Application Effective Date", tlv.KindNumeric},
	{0x5F28, "Issuer Country Code", tlv.KindNumeric},
	{0x5F2A, "Transaction Currency Code", tlv.KindNumeric},
	{0x5F2D, "Language Preference", tlv.KindAlphabetic},
	{0x5F30, "Service Code", tlv.KindNumeric},
	{0x5F34, "Application Primary Account Number (PAN) Sequence Number", tlv.KindNumeric},
	{0x5F36, "Transaction Currency Exponent", tlv.KindNumeric},
	{0x5F50, "Issuer URL", tlv.KindAlphanumericSpecial},
	{0x5F53, "International Bank Account Number (IBAN)", tlv.KindBinary},
	{0x5F55, "Issuer Country Code (alpha2)", tlv.KindAlphabetic},
	{0x5F56, "Issuer Country Code (alpha3)", tlv.KindAlphabetic},
	{0x61, "Application Template", tlv.KindTemplate},
	{0x6F, "File Control Information (FCI) Template", tlv.KindTemplate},
	{0x70, "Record Template", tlv.KindTemplate},
	{0x71, "Issuer Script Template 1", tlv.KindTemplate},
	{0x72, "Issuer Script Template 2", tlv.KindTemplate},
	{0x73, "Directory Discretionary Template", tlv.KindTemplate},
	{0x77, "Response Message Template Format 2", tlv.KindTemplate},
	{0x80, "Response Message Template Format 1", tlv.KindBinary},
	{0x81, "Amount, Authorised (Binary)", tlv.KindBinary},
	{0x82, "Application Interchange Profile", tlv.KindBinary},
	{0x83, "Command Template", tlv.KindBinary},
	{0x84, "Dedicated File (DF) Name", tlv.KindBinary},
	{0x86, "Issuer Script Command", tlv.KindBinary},
	{0x87, "Application Priority Indicator", tlv.KindBinary},
	{0x88, "Short File Identifier (SFI)", tlv.KindBinary},
	{0x89, "Authorisation Code", tlv.KindBinary},
	{0x8A, "Authorisation Response Code", tlv.KindAlphanumeric},
	{0x8C, "Card Risk Management Data Object List 1 (CDOL1)", tlv.KindDOL},
	{0x8D, "Card Risk Management Data Object List 2 (CDOL2)", tlv.KindDOL},
	{0x8E, "Cardholder Verification Method (CVM) List", tlv.KindBinary},
	{0x8F, "Certification Authority Public Key Index - card", tlv.KindBinary},
	{0x90, "Issuer Public Key Certificate", tlv.KindBinary},
	{0x91, "Issuer Authentication Data", tlv.KindBinary},
	{0x92, "Issuer Public Key Remainder", tlv.KindBinary},
	{0x93, "Signed Static Application Data", tlv.KindBinary},
	{0x94, "Application File Locator (AFL)", tlv.KindBinary},
	{0x95, "Terminal Verification Results", tlv.KindBinary},
	{0x97, "Transaction Certificate Data Object List (TDOL)", tlv.KindDOL},
	{0x98, "Transaction Certificate (TC) Hash Value", tlv.KindBinary},
	{0x99, "Transaction Personal Identification Number (PIN) Data", tlv.KindBinary},
	{0x9A, "Transaction Date", tlv.KindNumeric},
	{0x9B, "Transaction Status Information", tlv.KindBinary},
	{0x9C, "Transaction Type", tlv.KindNumeric},
	{0x9D, "Directory Definition File (DDF) Name", tlv.KindBinary},
	{0x9F01, "Acquirer Identifier", tlv.KindNumeric},
	{0x9F02, "Amount, Authorised (Numeric)", tlv.KindNumeric},
	{0x9F03, "Amount, Other (Numeric)", tlv.KindNumeric},
	{0x9F04, "Amount, Other (Binary)", tlv.KindBinary},
	{0x9F05, "Application Discretionary Data", tlv.KindBinary},
	{0x9F06, "Application Identifier (AID) - terminal", tlv.KindBinary},
	{0x9F07, "Application Usage Control", tlv.KindBinary},
	{0x9F08, "Application Version Number - card", tlv.KindBinary},
	{0x9F09, "Application Version Number - terminal", tlv.KindBinary},
	{0x9F0B, "Cardholder Name Extended", tlv.KindAlphanumericSpecial},
	{0x9F0D, "Issuer Action Code - Default", tlv.KindBinary},
	{0x9F0E, "Issuer Action Code - Denial", tlv.KindBinary},
	{0x9F0F, "Issuer Action Code - Online", tlv.KindBinary},
	{0x9F10, "Issuer Application Data", tlv.KindBinary},
	{0x9F11, "Issuer Code Table Index", tlv.KindNumeric},
	{0x9F12, "Application Preferred Name", tlv.KindAlphanumericSpecial},
	{0x9F13, "Last Online Application Transaction Counter (ATC) Register", tlv.KindBinary},
	{0x9F14, "Lower Consecutive Offline Limit", tlv.KindBinary},
	{0x9F17, "Personal Identification Number (PIN) Try Counter", tlv.KindBinary},
	{0x9F18, "Issuer Script Identifier", tlv.KindBinary},
	{0x9F1A, "Terminal Country Code", tlv.KindNumeric},
	{0x9F1B, "Terminal Floor Limit", tlv.KindBinary},
	{0x9F1C, "Terminal Identification", tlv.KindAlphanumericSpecial},
	{0x9F1D, "Terminal Risk Management Data", tlv.KindBinary},
	{0x9F1E, "Interface Device (IFD) Serial Number", tlv.KindAlphanumericSpecial},
	{0x9F1F, "Track 1 Discretionary Data", tlv.KindAlphanumericSpecial},
	{0x9F20, "Track 2 Discretionary Data", tlv.KindAlphanumericSpecial},
	{0x9F21, "Transaction Time", tlv.KindNumeric},
	{0x9F22, "Certification Authority Public Key Index - terminal", tlv.KindBinary},
	{0x9F23, "Upper Consecutive Offline Limit", tlv.KindBinary},
	{0x9F26, "Application Cryptogram", tlv.KindBinary},
	{0x9F27, "Cryptogram Information Data", tlv.KindBinary},
	{0x9F2D, "ICC PIN Encipherment Public Key Certificate", tlv.KindBinary},
	{0x9F2E, "ICC PIN Encipherment Public Key Exponent", tlv.KindBinary},
	{0x9F2F, "ICC PIN Encipherment Public Key Remainder", tlv.KindBinary},
	{0x9F32, "Issuer Public Key Exponent", tlv.KindBinary},
	{0x9F33, "Terminal Capabilities", tlv.KindBinary},
	{0x9F34, "Cardholder Verification Method (CVM) Results", tlv.KindBinary},
	{0x9F35, "Terminal Type", tlv.KindBinary},
	{0x9F36, "Application Transaction Counter (ATC)", tlv.KindBinary},
	{0x9F37, "Unpredictable Number", tlv.KindBinary},
	{0x9F38, "Processing Options Data Object List (PDOL)", tlv.KindDOL},
	{0x9F39, "Point-of-Service (POS) Entry Mode", tlv.KindNumeric},
	{0x9F3A, "Amount, Reference Currency", tlv.KindBinary},
	{0x9F3B, "Application Reference Currency", tlv.KindBinary},
	{0x9F3C, "Transaction Reference Currency Code", tlv.KindNumeric},
	{0x9F3D, "Transaction Reference Currency Exponent", tlv.KindNumeric},
	{0x9F40, "Additional Terminal Capabilities", tlv.KindBinary},
	{0x9F41, "Transaction Sequence Counter", tlv.KindNumeric},
	{0x9F42, "Application Currency Code", tlv.KindNumeric},
	{0x9F43, "Application Reference Currency Exponent", tlv.KindBinary},
	{0x9F44, "Application Currency Exponent", tlv.KindNumeric},
	{0x9F45, "Data Authentication Code", tlv.KindBinary},
	{0x9F46, "ICC Public Key Certificate", tlv.KindBinary},
	{0x9F47, "ICC Public Key Exponent", tlv.KindBinary},
	{0x9F48, "ICC Public Key Remainder", tlv.KindBinary},
	{0x9F49, "Dynamic Data Authentication Data Object List (DDOL)", tlv.KindDOL},
	{0x9F4A, "Static Data Authentication Tag List", tlv.KindBinary},
	{0x9F4B, "Signed Dynamic Application Data", tlv.KindBinary},
	{0x9F4C, "ICC Dynamic Number", tlv.KindBinary},
	{0x9F4D, "Log Entry", tlv.KindBinary},
	{0x9F4E, "Merchant Name and Location", tlv.KindAlphanumericSpecial},
	{0x9F4F, "Log Format", tlv.KindDOL},
	{0x9F52, "Application Default Action (ADA)", tlv.KindBinary},
	{0x9F53, "Consecutive Transaction Limit (International)", tlv.KindBinary},
	{0x9F5C, "Cumulative Total Transaction Amount Limit", tlv.KindBinary},
	{0x9F6E, "Form Factor Indicator / Third Party Data", tlv.KindBinary},
	{0xA5, "File Control Information (FCI) Proprietary Template", tlv.KindTemplate},
	{0xBF0C, "File Control Information (FCI) Issuer Discretionary Data", tlv.KindTemplate},
}
