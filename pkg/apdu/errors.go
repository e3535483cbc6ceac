package apdu

import "fmt"

// DataTooLongError reports a command data field wider than the 65535-byte
// extended-length ceiling.
type DataTooLongError struct {
	Got int
}

func (e *DataTooLongError) Error() string {
	return fmt.Sprintf("apdu: data length %d exceeds 65535", e.Got)
}

// NeTooLargeError reports an expected-response length wider than the
// 65536-byte extended-length ceiling.
type NeTooLargeError struct {
	Got int
}

func (e *NeTooLargeError) Error() string {
	return fmt.Sprintf("apdu: Ne %d exceeds 65536", e.Got)
}

// ShortResponseError reports a card response too short to contain a
// trailing two-byte status word.
type ShortResponseError struct {
	Got int
}

func (e *ShortResponseError) Error() string {
	return fmt.Sprintf("apdu: response too short to contain a status word: %d byte(s)", e.Got)
}

// StatusError surfaces a terminating, non-success status word. Orchestration
// wraps this with free-form context.
type StatusError struct {
	SW uint16
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("apdu: status word 0x%04X", e.SW)
}

// SwOK reports whether sw is the ISO 7816 success status (0x9000).
func SwOK(sw uint16) bool { return sw == 0x9000 }
