package tlv

import "math/big"

// Encode renders a single field to its minimal-length-form BER-TLV bytes.
func Encode(f Field) []byte {
	body := encodeValue(f.Value)
	out := make([]byte, 0, len(f.Tag.Bytes())+4+len(body))
	out = append(out, f.Tag.Bytes()...)
	out = append(out, encodeLength(len(body))...)
	out = append(out, body...)
	return out
}

// EncodeFields concatenates the minimal-length-form encoding of each field
// in order, e.g. to render a template's contents.
func EncodeFields(fields []Field) []byte {
	var out []byte
	for _, f := range fields {
		out = append(out, Encode(f)...)
	}
	return out
}

func encodeValue(v Value) []byte {
	switch v.Kind {
	case KindAlphabetic, KindAlphanumeric, KindAlphanumericSpecial:
		return []byte(v.Str)
	case KindBinary:
		return append([]byte(nil), v.Bin...)
	case KindNumeric:
		return encodeNumericBCD(v.Num)
	case KindDigitString:
		return encodeDigitString(v.Str)
	case KindTemplate:
		return EncodeFields(v.Fields)
	case KindDOL:
		return encodeDOLSchema(v.DOL)
	default:
		return append([]byte(nil), v.Bin...)
	}
}

// encodeNumericBCD renders n as minimal BCD: an even number of digits,
// left-zero-padded, two digits per byte.
func encodeNumericBCD(n *big.Int) []byte {
	s := n.String()
	if len(s)%2 != 0 {
		s = "0" + s
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(out); i++ {
		hi := s[2*i] - '0'
		lo := s[2*i+1] - '0'
		out[i] = hi<<4 | lo
	}
	return out
}

// encodeDigitString packs a decoded digit sequence back into compressed
// BCD, left-justified with an 0xF pad nibble for odd length.
func encodeDigitString(digits string) []byte {
	n := len(digits)
	out := make([]byte, (n+1)/2)
	for i := 0; i < len(out); i++ {
		var hi, lo byte = 0xF, 0xF
		if 2*i < n {
			hi = digits[2*i] - '0'
		}
		if 2*i+1 < n {
			lo = digits[2*i+1] - '0'
		}
		out[i] = hi<<4 | lo
	}
	return out
}

// encodeDOLSchema re-renders a decoded DOL's (tag, size) entries as
// tag/length prefixes with no value bytes.
func encodeDOLSchema(entries []DOLEntry) []byte {
	var out []byte
	for _, e := range entries {
		out = append(out, e.Tag.Bytes()...)
		out = append(out, encodeLength(e.Size)...)
	}
	return out
}
