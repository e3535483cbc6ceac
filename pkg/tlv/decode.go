package tlv

import (
	"math/big"
	"strings"
)

// Lookup resolves a tag to its dictionary descriptor. Implementations must
// be safe for concurrent use; pkg/dict's Dictionary satisfies this.
type Lookup interface {
	Lookup(tag Tag) (name string, kind Kind, ok bool)
}

// NoLookup is a Lookup that never finds anything, so every tag decodes as
// KindBinary. Useful for tests and for decoding DOL-described payloads
// where the schema, not the dictionary, supplies the type.
type NoLookup struct{}

func (NoLookup) Lookup(Tag) (string, Kind, bool) { return "", KindBinary, false }

func kindOf(lookup Lookup, tag Tag) Kind {
	if lookup == nil {
		return KindBinary
	}
	_, kind, ok := lookup.Lookup(tag)
	if !ok {
		return KindBinary
	}
	return kind
}

// DecodeOne reads a single tag/length/value from the front of data and
// returns the decoded field plus the unconsumed remainder.
func DecodeOne(lookup Lookup, data []byte) (Field, []byte, error) {
	f, _, _, rest, err := DecodeOneRaw(lookup, data)
	return f, rest, err
}

// DecodeOneRaw behaves like DecodeOne but additionally reports the exact
// wire-byte spans consumed, both aliasing data's backing array: raw is the
// complete tag+length+value encoding, value is just the bytes after the
// tag/length prefix. Callers that must preserve the card's original bytes
// rather than re-encode a decoded Value — e.g. assembling the Static Data
// Authentication byte stream (spec.md §4.5 step 6), which is hashed and so
// cannot tolerate the width drift a round-trip re-encode can introduce —
// use raw/value instead of re-encoding the returned Field.
func DecodeOneRaw(lookup Lookup, data []byte) (field Field, raw []byte, value []byte, rest []byte, err error) {
	tag, tn, err := ReadTag(data)
	if err != nil {
		return Field{}, nil, nil, nil, err
	}
	length, ln, err := readLength(data[tn:])
	if err != nil {
		return Field{}, nil, nil, nil, err
	}
	valueStart := tn + ln
	if len(data)-valueStart < length {
		return Field{}, nil, nil, nil, &MessageTooShortError{Needed: length, Got: len(data) - valueStart}
	}
	value = data[valueStart : valueStart+length]
	raw = data[:valueStart+length]
	rest = data[valueStart+length:]

	kind := kindOf(lookup, tag)
	val, err := decodeValue(lookup, kind, value)
	if err != nil {
		return Field{}, nil, nil, nil, &TemplateInternalError{Outer: tag, Inner: err}
	}
	return Field{Tag: tag, Value: val}, raw, value, rest, nil
}

// DecodeAll decodes a run of consecutive TLVs until data is exhausted,
// returning them in wire order. Used for template contents and for a
// top-level buffer containing a single object (a one-element result).
func DecodeAll(lookup Lookup, data []byte) ([]Field, error) {
	var fields []Field
	for len(data) > 0 {
		f, rest, err := DecodeOne(lookup, data)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
		data = rest
	}
	return fields, nil
}

// Decode decodes exactly one top-level TLV object from data and returns its
// value (discarding the tag — callers that need the tag should use
// DecodeOne or DecodeAll).
func Decode(lookup Lookup, data []byte) (Value, error) {
	f, rest, err := DecodeOne(lookup, data)
	if err != nil {
		return Value{}, err
	}
	if len(rest) != 0 {
		return Value{}, &MessageTooShortError{Needed: 0, Got: len(rest)}
	}
	return f.Value, nil
}

func decodeValue(lookup Lookup, kind Kind, raw []byte) (Value, error) {
	switch kind {
	case KindAlphabetic:
		if err := validateAlphabetic(raw); err != nil {
			return Value{}, err
		}
		return Value{Kind: KindAlphabetic, Str: string(raw)}, nil
	case KindAlphanumeric:
		if err := validateAlphanumeric(raw); err != nil {
			return Value{}, err
		}
		return Value{Kind: KindAlphanumeric, Str: string(raw)}, nil
	case KindAlphanumericSpecial:
		if err := validateAlphanumericSpecial(raw); err != nil {
			return Value{}, err
		}
		return Value{Kind: KindAlphanumericSpecial, Str: string(raw)}, nil
	case KindBinary:
		return Binary(raw), nil
	case KindNumeric:
		n, err := decodeNumericBCD(raw)
		if err != nil {
			return Value{}, err
		}
		return Numeric(n), nil
	case KindDigitString:
		s, err := decodeDigitString(raw)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindDigitString, Str: s}, nil
	case KindTemplate:
		fields, err := DecodeAll(lookup, raw)
		if err != nil {
			return Value{}, err
		}
		return Template(fields), nil
	case KindDOL:
		entries, err := decodeDOL(raw)
		if err != nil {
			return Value{}, err
		}
		return DOLValue(entries), nil
	default:
		return Binary(raw), nil
	}
}

// decodeDOL reads a sequence of tag/length prefixes (no values present).
func decodeDOL(raw []byte) ([]DOLEntry, error) {
	var entries []DOLEntry
	for len(raw) > 0 {
		tag, tn, err := ReadTag(raw)
		if err != nil {
			return nil, err
		}
		raw = raw[tn:]
		length, ln, err := readLength(raw)
		if err != nil {
			return nil, err
		}
		raw = raw[ln:]
		entries = append(entries, DOLEntry{Tag: tag, Size: length})
	}
	return entries, nil
}

func decodeNumericBCD(b []byte) (*big.Int, error) {
	n := new(big.Int)
	ten := big.NewInt(10)
	digit := new(big.Int)
	for _, c := range b {
		hi, lo := c>>4, c&0x0F
		if hi > 9 {
			return nil, &BadBcdError{Nibble: hi}
		}
		n.Mul(n, ten)
		n.Add(n, digit.SetInt64(int64(hi)))
		if lo > 9 {
			return nil, &BadBcdError{Nibble: lo}
		}
		n.Mul(n, ten)
		n.Add(n, digit.SetInt64(int64(lo)))
	}
	return n, nil
}

// maxDigitStringBytes is the §4.1 "length limit 10 bytes (20 digits)" cap on
// decoded digit-string values.
const maxDigitStringBytes = 10

func decodeDigitString(b []byte) (string, error) {
	if len(b) > maxDigitStringBytes {
		return "", &DigitStringTooLongError{Max: maxDigitStringBytes, Got: len(b)}
	}
	var sb strings.Builder
	for _, c := range b {
		hi, lo := c>>4, c&0x0F
		if hi == 0xF {
			return sb.String(), nil
		}
		if hi > 9 {
			return "", &BadBcdError{Nibble: hi}
		}
		sb.WriteByte('0' + hi)

		if lo == 0xF {
			return sb.String(), nil
		}
		if lo > 9 {
			return "", &BadBcdError{Nibble: lo}
		}
		sb.WriteByte('0' + lo)
	}
	return sb.String(), nil
}
