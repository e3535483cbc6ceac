// Package chain implements Offline Data Authentication: RSA signature
// recovery and verification of the Issuer and ICC public-key certificates
// against their parent key, per EMV Book 2 Annex B2.
package chain

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"math/big"
	"time"

	"github.com/barnettlynn/emvsign/pkg/tlv"
)

// Role selects which fixed byte layout a certificate follows: an Issuer
// certificate (signed by a CA key, 4-byte IIN) or an ICC certificate
// (signed by the Issuer key, 10-byte packed PAN).
type Role int

const (
	RoleIssuer Role = iota
	RoleICC
)

func (r Role) panLen() int {
	if r == RoleIssuer {
		return 4
	}
	return 10
}

func (r Role) formatByte() byte {
	if r == RoleIssuer {
		return 0x02
	}
	return 0x04
}

// maxCertBytes is the largest certificate this verifier will recover.
const maxCertBytes = 248

// PublicKey is an RSA public key (modulus, exponent) recovered from, or used
// to verify, a certificate.
type PublicKey struct {
	Modulus  *big.Int
	Exponent *big.Int
}

// Input bundles one certificate verification's parameters.
type Input struct {
	Parent PublicKey
	// Cert is the child certificate bytes: tag 0x90 for an Issuer
	// certificate, 0x9F46 for an ICC certificate.
	Cert []byte
	// Exponent is the child's public exponent bytes: tag 0x9F32 / 0x9F47.
	Exponent []byte
	// Remainder is the child's public key remainder, may be empty: tag
	// 0x92 / 0x9F48.
	Remainder []byte
	// PAN is the card-reported PAN digit sequence, tag 0x5A.
	PAN string
	// Extra is appended to the hashed message: empty for Issuer
	// verification, the SDA byte stream for ICC verification.
	Extra []byte
	// IncludeAIP appends AIP to the hashed message when true: set this
	// when verifying an ICC certificate and the Static Data
	// Authentication Tag List (0x9F4A) is present in the card's field
	// map, regardless of its content.
	IncludeAIP bool
	AIP        []byte
}

// Recovered is a successfully verified certificate's extracted payload.
type Recovered struct {
	Role     Role
	PAN      string // IIN (Issuer) or full PAN (ICC), decoded digit sequence
	Expiry   time.Time
	Serial   [3]byte
	Key      PublicKey
}

// Verify recovers and validates a child certificate against its parent key.
func Verify(role Role, in Input) (*Recovered, error) {
	k := (in.Parent.Modulus.BitLen() + 7) / 8
	if k > maxCertBytes {
		return nil, &CertificateTooLargeError{N: k}
	}
	if len(in.Cert) != k {
		return nil, &CertificateLengthMismatchError{ModLen: k, CertLen: len(in.Cert)}
	}

	c := new(big.Int).SetBytes(in.Cert)
	r := new(big.Int).Exp(c, in.Parent.Exponent, in.Parent.Modulus)
	recovered := r.FillBytes(make([]byte, k))

	panLen := role.panLen()
	if k < 11+panLen+21 {
		return nil, &InvalidDataError{Reason: "certificate too short for its role's fixed fields"}
	}

	if recovered[0] != 0x6A {
		return nil, &InvalidDataError{Reason: "header byte is not 0x6A"}
	}
	if recovered[k-1] != 0xBC {
		return nil, &InvalidDataError{Reason: "trailer byte is not 0xBC"}
	}
	if recovered[1] != role.formatByte() {
		return nil, &InvalidDataError{Reason: fmt.Sprintf("certificate format byte 0x%02X does not match role", recovered[1])}
	}
	hashAlgoOffset := 7 + panLen
	pubkeyAlgoOffset := 8 + panLen
	if recovered[hashAlgoOffset] != 0x01 || recovered[pubkeyAlgoOffset] != 0x01 {
		return nil, &InvalidDataError{Reason: "hash/public-key algorithm indicator is not 01 01"}
	}

	hashStart := k - 21
	message := make([]byte, 0, hashStart-1+len(in.Remainder)+len(in.Exponent)+len(in.Extra)+2)
	message = append(message, recovered[1:hashStart]...)
	message = append(message, in.Remainder...)
	message = append(message, in.Exponent...)
	message = append(message, in.Extra...)
	if in.IncludeAIP {
		message = append(message, in.AIP...)
	}
	digest := sha1.Sum(message)
	if !bytes.Equal(digest[:], recovered[hashStart:k-1]) {
		return nil, &InvalidSignatureError{}
	}

	panDigits := decodeBCDDigits(recovered[2 : 2+panLen])
	switch role {
	case RoleIssuer:
		if !hasDigitPrefix(in.PAN, panDigits) {
			return nil, &UnmatchedPANError{}
		}
	case RoleICC:
		if !tlv.DigitsEqual(panDigits, in.PAN) {
			return nil, &UnmatchedPANError{}
		}
	}

	expiry, err := decodeExpiry(recovered[2+panLen : 4+panLen])
	if err != nil {
		return nil, err
	}

	var serial [3]byte
	copy(serial[:], recovered[4+panLen:7+panLen])

	lengthOffset := 9 + panLen
	L := int(recovered[lengthOffset])
	modulusStart := 11 + panLen

	var modBytes []byte
	if L <= k-32-panLen {
		modBytes = recovered[modulusStart : modulusStart+L]
	} else {
		modBytes = append(append([]byte(nil), recovered[modulusStart:hashStart]...), in.Remainder...)
	}
	modulus := new(big.Int).SetBytes(modBytes)

	if len(in.Exponent) > 4 {
		return nil, &InvalidDataError{Reason: "child exponent longer than 4 bytes"}
	}
	exponent := new(big.Int).SetBytes(in.Exponent)

	return &Recovered{
		Role:   role,
		PAN:    panDigits,
		Expiry: expiry,
		Serial: serial,
		Key:    PublicKey{Modulus: modulus, Exponent: exponent},
	}, nil
}

// decodeBCDDigits renders packed BCD bytes as a decimal digit string,
// stopping at the first 0xF pad nibble.
func decodeBCDDigits(b []byte) string {
	out := make([]byte, 0, len(b)*2)
	for _, by := range b {
		hi, lo := by>>4, by&0x0F
		if hi == 0xF {
			break
		}
		out = append(out, '0'+hi)
		if lo == 0xF {
			break
		}
		out = append(out, '0'+lo)
	}
	return string(out)
}

func hasDigitPrefix(pan, prefix string) bool {
	if len(prefix) > len(pan) {
		return false
	}
	return pan[:len(prefix)] == prefix
}

func decodeExpiry(mmyy []byte) (time.Time, error) {
	month := int(mmyy[0]>>4)*10 + int(mmyy[0]&0x0F)
	year := int(mmyy[1]>>4)*10 + int(mmyy[1]&0x0F)
	if month < 1 || month > 12 {
		return time.Time{}, &InvalidDataError{Reason: fmt.Sprintf("expiry month %d out of range", month)}
	}
	firstOfMonth := time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, 1, -1), nil
}
