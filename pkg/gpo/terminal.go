package gpo

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/barnettlynn/emvsign/pkg/tlv"
)

// DefaultTerminalState seeds the handful of PDOL tags cards most commonly
// ask for (EMV Book 4 Annex A), so callers don't need to hand-populate a
// full terminal profile just to run GET PROCESSING OPTIONS. It is plumbing,
// not decision logic: every value here is a placeholder a real terminal
// would compute from its own configuration and the transaction in
// progress. overrides wins on any tag collision.
func DefaultTerminalState(overrides tlv.FieldMap) tlv.FieldMap {
	now := time.Now()
	yymmdd := int64(now.Year()%100)*10000 + int64(now.Month())*100 + int64(now.Day())

	state := tlv.FieldMap{
		0x9F02: tlv.Numeric(big.NewInt(0)),   // Amount, Authorised
		0x9F03: tlv.Numeric(big.NewInt(0)),   // Amount, Other
		0x9F1A: tlv.Numeric(big.NewInt(840)), // Terminal Country Code (US)
		0x5F2A: tlv.Numeric(big.NewInt(840)), // Transaction Currency Code (USD)
		0x95:   tlv.Binary(make([]byte, 5)),  // Terminal Verification Results
		0x9A:   tlv.Numeric(big.NewInt(yymmdd)),
		0x9C:   tlv.Numeric(big.NewInt(0)),    // Transaction Type: purchase
		0x9F35: tlv.Binary([]byte{0x22}),      // Terminal Type: attended, offline w/ online capability
		0x9F37: tlv.Binary(unpredictableNumber()),
	}
	state.Merge(overrides)
	return state
}

func unpredictableNumber() []byte {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return b
	}
	return b
}
