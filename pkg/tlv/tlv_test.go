package tlv

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
)

type stubDict map[Tag]struct {
	name string
	kind Kind
}

func (d stubDict) Lookup(tag Tag) (string, Kind, bool) {
	e, ok := d[tag]
	if !ok {
		return "", KindBinary, false
	}
	return e.name, e.kind, true
}

func TestReadTagEmptyValue(t *testing.T) {
	// S1: 80 00 -> tag 0x80, length 0, prefix 2 bytes.
	f, rest, err := DecodeOne(NoLookup{}, []byte{0x80, 0x00})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Tag != 0x80 {
		t.Fatalf("tag = %s, want 80", f.Tag)
	}
	if len(f.Value.Bin) != 0 {
		t.Fatalf("expected empty value, got %v", f.Value.Bin)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no remainder, got %d bytes", len(rest))
	}
}

func TestReadTagTwoByte(t *testing.T) {
	// S2: 7F 99 02 12 34 -> tag 0x7F99, length 2, value 12 34.
	f, rest, err := DecodeOne(NoLookup{}, []byte{0x7F, 0x99, 0x02, 0x12, 0x34})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Tag != 0x7F99 {
		t.Fatalf("tag = %s, want 7F99", f.Tag)
	}
	if !bytes.Equal(f.Value.Bin, []byte{0x12, 0x34}) {
		t.Fatalf("value = %X, want 1234", f.Value.Bin)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no remainder, got %d bytes", len(rest))
	}
}

func TestDirectoryDiscretionaryTemplate(t *testing.T) {
	// S3: 73 0B 5F55 02 "US" 42 04 00440393 decodes as template 0x73 with
	// 0x5F55 alphabetic "US" and 0x42 numeric 440393.
	dict := stubDict{
		0x5F55: {"Issuer Country Code (alpha2)", KindAlphabetic},
		0x42:   {"Issuer Identification Number", KindNumeric},
	}
	raw := []byte{0x73, 0x0B, 0x5F, 0x55, 0x02, 'U', 'S', 0x42, 0x04, 0x00, 0x44, 0x03, 0x93}
	dict73 := stubDict{0x73: {"Directory Discretionary Template", KindTemplate}}
	for k, v := range dict {
		dict73[k] = v
	}

	f, rest, err := DecodeOne(dict73, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no remainder, got %d bytes", len(rest))
	}
	if f.Value.Kind != KindTemplate {
		t.Fatalf("kind = %v, want Template", f.Value.Kind)
	}
	country, err := f.Value.StringAt(0x5F55)
	if err != nil {
		t.Fatalf("StringAt: %v", err)
	}
	if country != "US" {
		t.Fatalf("country = %q, want US", country)
	}
	iin, err := f.Value.NumericAt(0x42)
	if err != nil {
		t.Fatalf("NumericAt: %v", err)
	}
	if iin.String() != "440393" {
		t.Fatalf("iin = %s, want 440393", iin.String())
	}
}

func TestAlphanumericSpecialRejectsDEL(t *testing.T) {
	dict := stubDict{0x50: {"Application Label", KindAlphanumericSpecial}}
	_, _, err := DecodeOne(dict, []byte{0x50, 0x01, 0x7F})
	var uce *UnsupportedCharError
	if !errors.As(err, &uce) {
		t.Fatalf("expected UnsupportedCharError, got %v", err)
	}
	if uce.Byte != 0x7F {
		t.Fatalf("byte = %X, want 7F", uce.Byte)
	}
}

func TestNumericBadNibble(t *testing.T) {
	dict := stubDict{0x9F02: {"Amount", KindNumeric}}
	_, _, err := DecodeOne(dict, []byte{0x9F, 0x02, 0x01, 0xAB})
	var bcd *BadBcdError
	if !errors.As(err, &bcd) {
		t.Fatalf("expected BadBcdError, got %v", err)
	}
}

func TestDigitStringPadTerminates(t *testing.T) {
	dict := stubDict{0x5A: {"PAN", KindDigitString}}
	f, _, err := DecodeOne(dict, []byte{0x5A, 0x04, 0x42, 0x42, 0x42, 0x4F})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Value.Str != "4242424" {
		t.Fatalf("pan = %q, want 4242424", f.Value.Str)
	}
}

func TestDigitStringTooLong(t *testing.T) {
	dict := stubDict{0x5A: {"PAN", KindDigitString}}
	raw := make([]byte, 11) // exceeds the 10-byte/20-digit limit
	for i := range raw {
		raw[i] = 0x42
	}
	data := append([]byte{0x5A, byte(len(raw))}, raw...)
	_, _, err := DecodeOne(dict, data)
	var tooLong *DigitStringTooLongError
	if !errors.As(err, &tooLong) {
		t.Fatalf("expected DigitStringTooLongError, got %v", err)
	}
}

func TestPathLookupErrors(t *testing.T) {
	dict := stubDict{0x70: {"Record Template", KindTemplate}}
	tmpl := Template([]Field{{Tag: 0x5A, Value: Binary([]byte{0x01})}})
	if _, err := tmpl.Path(); !isNoPathRequested(err) {
		t.Fatalf("expected NoPathRequestedError, got %v", err)
	}
	if _, err := tmpl.Path(0x99); err == nil {
		t.Fatal("expected NoSuchMemberError")
	}
	leaf, err := tmpl.Path(0x5A)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := leaf.Path(0x01); err == nil {
		t.Fatal("expected WrongTypeError descending into non-template")
	}
	_ = dict
}

func isNoPathRequested(err error) bool {
	var e *NoPathRequestedError
	return errors.As(err, &e)
}

func TestRoundTripMinimalLength(t *testing.T) {
	dict := stubDict{
		0x70: {"Record Template", KindTemplate},
		0x5A: {"PAN", KindBinary},
	}
	original := []byte{0x70, 0x03, 0x5A, 0x01, 0x42}
	f, rest, err := DecodeOne(dict, original)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("remainder: %d", len(rest))
	}
	encoded := Encode(f)
	if !bytes.Equal(encoded, original) {
		t.Fatalf("round trip mismatch: got %X want %X", encoded, original)
	}

	f2, rest2, err := DecodeOne(dict, encoded)
	if err != nil {
		t.Fatalf("redecode: %v", err)
	}
	if len(rest2) != 0 {
		t.Fatalf("redecode remainder: %d", len(rest2))
	}
	if f2.Tag != f.Tag || !bytes.Equal(f2.Value.Fields[0].Value.Bin, f.Value.Fields[0].Value.Bin) {
		t.Fatalf("redecoded field mismatch")
	}
}

func TestEncodeDOLZeroFillsMissingTag(t *testing.T) {
	dol := []DOLEntry{{Tag: 0x9F37, Size: 4}, {Tag: 0x5F2A, Size: 2}}
	state := FieldMap{0x9F37: Binary([]byte{0xAA, 0xBB, 0xCC, 0xDD})}
	out := EncodeDOL(dol, state, 0, false)
	want := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0x00, 0x00}
	if !bytes.Equal(out, want) {
		t.Fatalf("out = %X, want %X", out, want)
	}
	if len(out) != 6 {
		t.Fatalf("len = %d, want sum of sizes 6", len(out))
	}
}

func TestEncodeDOLWrapsWithMinimalTag(t *testing.T) {
	dol := []DOLEntry{{Tag: 0x9F02, Size: 6}}
	state := FieldMap{0x9F02: Numeric(big.NewInt(1000))}
	out := EncodeDOL(dol, state, 0x83, true)
	want := []byte{0x83, 0x06, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00}
	if !bytes.Equal(out, want) {
		t.Fatalf("out = %X, want %X", out, want)
	}
}
