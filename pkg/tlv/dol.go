package tlv

import "math/big"

// FieldMap is a flattened tag -> value mapping: the "provider state" used
// to fill Data Object Lists, and the consolidated card-data map the
// processing-options driver builds from AFL records.
type FieldMap map[Tag]Value

// Get implements the provider-state contract DOL encoding reads against.
func (m FieldMap) Get(tag Tag) (Value, bool) {
	v, ok := m[tag]
	return v, ok
}

// Merge copies every entry of other into m, overwriting on tag collision.
func (m FieldMap) Merge(other FieldMap) {
	for k, v := range other {
		m[k] = v
	}
}

// EncodeDOL renders dol against state: each entry
// produces exactly entry.Size bytes (zero-filled if its tag is absent from
// state), concatenated in list order. When doWrap is true the payload is
// prefixed with the minimal BER-TLV tag/length encoding of (wrap,
// total-size).
func EncodeDOL(dol []DOLEntry, state FieldMap, wrap Tag, doWrap bool) []byte {
	var out []byte
	for _, e := range dol {
		out = append(out, encodeDOLEntry(e, state)...)
	}
	if !doWrap {
		return out
	}
	wrapped := make([]byte, 0, 4+len(out))
	wrapped = append(wrapped, wrap.Bytes()...)
	wrapped = append(wrapped, encodeLength(len(out))...)
	wrapped = append(wrapped, out...)
	return wrapped
}

func encodeDOLEntry(e DOLEntry, state FieldMap) []byte {
	v, ok := state.Get(e.Tag)
	if !ok {
		return make([]byte, e.Size)
	}
	return fitToSize(v, e.Size)
}

// fitToSize formats v into exactly size bytes per the rules of §4.1's DOL
// encoding: strings/binary are left-justified and zero-padded/truncated on
// the right; numeric is right-justified BCD zero-padded on the left;
// digit-string is left-justified packed BCD with 0xF pad; templates and
// nested DOLs (which have no scalar representation) emit zeroes.
func fitToSize(v Value, size int) []byte {
	switch v.Kind {
	case KindAlphabetic, KindAlphanumeric, KindAlphanumericSpecial:
		return leftJustify([]byte(v.Str), size, 0x00)
	case KindBinary:
		return leftJustify(v.Bin, size, 0x00)
	case KindNumeric:
		return rightJustifyBCD(v.Num, size)
	case KindDigitString:
		return leftJustifyDigitStringBCD(v.Str, size)
	default:
		return make([]byte, size)
	}
}

func leftJustify(b []byte, size int, pad byte) []byte {
	out := make([]byte, size)
	if pad != 0x00 {
		for i := range out {
			out[i] = pad
		}
	}
	n := len(b)
	if n > size {
		n = size
	}
	copy(out, b[:n])
	return out
}

func rightJustifyBCD(n *big.Int, size int) []byte {
	if n == nil {
		n = new(big.Int)
	}
	full := encodeNumericBCD(n)
	out := make([]byte, size)
	if len(full) >= size {
		copy(out, full[len(full)-size:])
		return out
	}
	copy(out[size-len(full):], full)
	return out
}

func leftJustifyDigitStringBCD(digits string, size int) []byte {
	out := make([]byte, size)
	for i := range out {
		out[i] = 0xFF
	}
	packed := encodeDigitString(digits)
	n := len(packed)
	if n > size {
		n = size
	}
	copy(out, packed[:n])
	return out
}
