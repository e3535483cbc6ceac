// Package apdu frames ISO 7816-4 command APDUs, drives the 0x61/0x6C
// response continuation state machine over a bytewise transmit primitive,
// and wraps the github.com/ebfe/scard PC/SC binding behind a reader driver
// boundary.
package apdu

// Command is a single ISO 7816-4 command APDU: a mandatory 4-byte header,
// optional data, and an optional expected-response length (Ne).
type Command struct {
	CLA, INS, P1, P2 byte
	Data             []byte // 0-65535 bytes
	Ne               int    // expected response length, 0-65536
}

// Bytes renders the command to wire bytes, choosing short or extended Lc/Le
// encoding.
func (c Command) Bytes() ([]byte, error) {
	if len(c.Data) > 65535 {
		return nil, &DataTooLongError{Got: len(c.Data)}
	}
	if c.Ne > 65536 {
		return nil, &NeTooLargeError{Got: c.Ne}
	}

	out := make([]byte, 0, 4+3+len(c.Data)+2)
	out = append(out, c.CLA, c.INS, c.P1, c.P2)

	lcExtended := len(c.Data) > 255
	if len(c.Data) > 0 {
		if lcExtended {
			out = append(out, 0x00, byte(len(c.Data)>>8), byte(len(c.Data)))
		} else {
			out = append(out, byte(len(c.Data)))
		}
		out = append(out, c.Data...)
	}

	if c.Ne > 0 {
		if c.Ne <= 256 {
			out = append(out, byte(c.Ne%256))
		} else {
			if !lcExtended {
				out = append(out, 0x00)
			}
			v := c.Ne % 65536
			out = append(out, byte(v>>8), byte(v))
		}
	}
	return out, nil
}

// leFromSW2 converts a status word's SW2 byte into the Ne a follow-up
// command (GET RESPONSE, or a 0x6C retry) should request: SW2=0x00
// conventionally means 256, matching the short-Le "0x00 means 256" rule.
func leFromSW2(sw2 byte) int {
	if sw2 == 0 {
		return 256
	}
	return int(sw2)
}
