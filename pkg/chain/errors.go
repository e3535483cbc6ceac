package chain

import (
	"fmt"

	"github.com/barnettlynn/emvsign/pkg/tlv"
)

// CertificateTooLargeError reports a parent modulus longer than this
// verifier supports.
type CertificateTooLargeError struct{ N int }

func (e *CertificateTooLargeError) Error() string {
	return fmt.Sprintf("certificate too large: %d bytes", e.N)
}

// CertificateLengthMismatchError reports a certificate whose length does
// not equal its parent modulus's byte length.
type CertificateLengthMismatchError struct{ ModLen, CertLen int }

func (e *CertificateLengthMismatchError) Error() string {
	return fmt.Sprintf("certificate length %d does not match modulus length %d", e.CertLen, e.ModLen)
}

// InvalidSignatureError reports a recovered certificate whose embedded
// SHA-1 digest does not match the recomputed one.
type InvalidSignatureError struct{}

func (e *InvalidSignatureError) Error() string { return "invalid certificate signature" }

// InvalidDataError reports a recovered certificate that fails a structural
// check (header/trailer/format bytes, algorithm indicators, field layout).
type InvalidDataError struct{ Reason string }

func (e *InvalidDataError) Error() string { return "invalid certificate data: " + e.Reason }

// MissingTagError reports a tag the caller needed to build an Input but
// did not find in the card's field map.
type MissingTagError struct{ Tag tlv.Tag }

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("missing required tag 0x%02X", uint16(e.Tag))
}

// UnmatchedPANError reports a recovered PAN/IIN that does not match the
// card-reported PAN.
type UnmatchedPANError struct{}

func (e *UnmatchedPANError) Error() string { return "recovered PAN/IIN does not match card PAN" }
