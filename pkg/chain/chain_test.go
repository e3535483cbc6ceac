package chain

import (
	"crypto/sha1"
	"math/big"
	"testing"
)

// certFixture assembles a recovered-payload byte array for the given role
// (newFixture); sign computes its trailing SHA-1 digest over the real
// algorithm's message and wraps it as a "certificate" under the identity
// RSA key (exponent 1, modulus 2^(8k)-1, which exceeds every payload since
// each starts with 0x6A) so Verify recovers it unchanged without needing a
// real private key to sign test fixtures.
type certFixture struct {
	k        int
	panLen   int
	recovered []byte
}

func newFixture(role Role, k int) *certFixture {
	panLen := role.panLen()
	r := make([]byte, k)
	r[0] = 0x6A
	r[1] = role.formatByte()
	r[k-1] = 0xBC
	r[7+panLen] = 0x01
	r[8+panLen] = 0x01
	return &certFixture{k: k, panLen: panLen, recovered: r}
}

func (f *certFixture) setPAN(packed []byte) {
	copy(f.recovered[2:2+f.panLen], packed)
}

func (f *certFixture) setExpiry(mm, yy byte) {
	f.recovered[2+f.panLen] = mm
	f.recovered[3+f.panLen] = yy
}

func (f *certFixture) setSerial(b0, b1, b2 byte) {
	f.recovered[4+f.panLen] = b0
	f.recovered[5+f.panLen] = b1
	f.recovered[6+f.panLen] = b2
}

func (f *certFixture) setModulusLength(l byte) {
	f.recovered[9+f.panLen] = l
}

func (f *certFixture) modulusStart() int { return 11 + f.panLen }
func (f *certFixture) hashStart() int    { return f.k - 21 }

func (f *certFixture) sign(remainder, exponent, extra []byte, includeAIP bool, aip []byte) Input {
	msg := make([]byte, 0)
	msg = append(msg, f.recovered[1:f.hashStart()]...)
	msg = append(msg, remainder...)
	msg = append(msg, exponent...)
	msg = append(msg, extra...)
	if includeAIP {
		msg = append(msg, aip...)
	}
	digest := sha1.Sum(msg)
	copy(f.recovered[f.hashStart():f.k-1], digest[:])

	identityModulus := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(f.k*8)), big.NewInt(1))
	return Input{
		Parent:     PublicKey{Modulus: identityModulus, Exponent: big.NewInt(1)},
		Cert:       append([]byte(nil), f.recovered...),
		Exponent:   exponent,
		Remainder:  remainder,
		Extra:      extra,
		IncludeAIP: includeAIP,
		AIP:        aip,
	}
}

func TestVerifyIssuerEmbeddedModulus(t *testing.T) {
	f := newFixture(RoleIssuer, 64)
	f.setPAN([]byte{0x41, 0x11, 0x11, 0xFF}) // IIN "411111"
	f.setExpiry(0x12, 0x29)                  // Dec 2029
	f.setSerial(0x00, 0x00, 0x01)
	f.setModulusLength(20) // <= k-32-panLen = 28: embedded branch

	modulus := make([]byte, 20)
	for i := range modulus {
		modulus[i] = byte(i + 1)
	}
	copy(f.recovered[f.modulusStart():f.modulusStart()+20], modulus)

	exponent := []byte{0x01, 0x00, 0x01}
	in := f.sign(nil, exponent, nil, false, nil)
	in.PAN = "4111119999999999"

	rec, err := Verify(RoleIssuer, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.PAN != "411111" {
		t.Fatalf("PAN = %q, want 411111", rec.PAN)
	}
	if rec.Expiry.Year() != 2029 || rec.Expiry.Month().String() != "December" || rec.Expiry.Day() != 31 {
		t.Fatalf("expiry = %v", rec.Expiry)
	}
	if rec.Serial != [3]byte{0x00, 0x00, 0x01} {
		t.Fatalf("serial = %v", rec.Serial)
	}
	wantMod := new(big.Int).SetBytes(modulus)
	if rec.Key.Modulus.Cmp(wantMod) != 0 {
		t.Fatalf("modulus mismatch")
	}
	if rec.Key.Exponent.Cmp(big.NewInt(65537)) != 0 {
		t.Fatalf("exponent = %v, want 65537", rec.Key.Exponent)
	}
}

func TestVerifyIssuerRemainderBearingModulus(t *testing.T) {
	f := newFixture(RoleIssuer, 48)
	f.setPAN([]byte{0x42, 0x22, 0x22, 0xFF})
	f.setExpiry(0x06, 0x30)
	f.setSerial(0x00, 0x00, 0x02)
	// threshold = k-32-panLen = 48-36 = 12; L=30 forces the remainder branch.
	f.setModulusLength(30)

	tailLen := f.hashStart() - f.modulusStart() // bytes embedded inline
	inlineMod := make([]byte, tailLen)
	for i := range inlineMod {
		inlineMod[i] = byte(0x80 + i)
	}
	copy(f.recovered[f.modulusStart():f.hashStart()], inlineMod)
	remainder := []byte{0xAA, 0xBB, 0xCC}

	exponent := []byte{0x03}
	in := f.sign(remainder, exponent, nil, false, nil)
	in.PAN = "422222"

	rec, err := Verify(RoleIssuer, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantMod := new(big.Int).SetBytes(append(append([]byte(nil), inlineMod...), remainder...))
	if rec.Key.Modulus.Cmp(wantMod) != 0 {
		t.Fatalf("modulus mismatch: got %x want %x", rec.Key.Modulus, wantMod)
	}
}

func TestVerifyICCWithSDAAndAIP(t *testing.T) {
	f := newFixture(RoleICC, 64)
	panPacked := []byte{0x41, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0xFF, 0xFF}
	f.setPAN(panPacked)
	f.setExpiry(0x09, 0x28)
	f.setSerial(0x00, 0x00, 0x03)
	f.setModulusLength(18) // threshold = 64-32-10=22, 18<=22 embedded

	modulus := make([]byte, 18)
	for i := range modulus {
		modulus[i] = byte(200 + i)
	}
	copy(f.recovered[f.modulusStart():f.modulusStart()+18], modulus)

	sda := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	aip := []byte{0x19, 0x00}
	exponent := []byte{0x01, 0x00, 0x01}
	in := f.sign(nil, exponent, sda, true, aip)
	in.PAN = "4111111111111111"

	rec, err := Verify(RoleICC, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.PAN != "4111111111111111" {
		t.Fatalf("PAN = %q", rec.PAN)
	}
}

func TestVerifyRejectsLengthMismatch(t *testing.T) {
	f := newFixture(RoleIssuer, 64)
	f.setModulusLength(1)
	in := f.sign(nil, []byte{0x03}, nil, false, nil)
	in.Cert = in.Cert[:len(in.Cert)-1]
	in.PAN = "0"

	if _, err := Verify(RoleIssuer, in); err == nil {
		t.Fatal("expected CertificateLengthMismatchError")
	}
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	f := newFixture(RoleIssuer, 64)
	f.setModulusLength(1)
	in := f.sign(nil, []byte{0x03}, nil, false, nil)
	in.Cert[f.hashStart()] ^= 0xFF // flip a hash byte
	in.PAN = "0"

	_, err := Verify(RoleIssuer, in)
	if _, ok := err.(*InvalidSignatureError); !ok {
		t.Fatalf("got %v (%T), want *InvalidSignatureError", err, err)
	}
}

func TestVerifyRejectsUnmatchedPAN(t *testing.T) {
	f := newFixture(RoleIssuer, 64)
	f.setPAN([]byte{0x41, 0x11, 0x11, 0xFF})
	f.setModulusLength(1)
	in := f.sign(nil, []byte{0x03}, nil, false, nil)
	in.PAN = "999999999999"

	_, err := Verify(RoleIssuer, in)
	if _, ok := err.(*UnmatchedPANError); !ok {
		t.Fatalf("got %v (%T), want *UnmatchedPANError", err, err)
	}
}
