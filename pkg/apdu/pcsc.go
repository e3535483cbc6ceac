package apdu

import (
	"fmt"

	"github.com/ebfe/scard"
)

// PCSCReader implements the reader driver boundary (enumerate, connect,
// transmit, disconnect) over github.com/ebfe/scard. Connect uses exclusive
// share mode: only one caller may hold the card at a time.
type PCSCReader struct {
	ctx  *scard.Context
	card *scard.Card
	name string
}

// ListReaders enumerates the PC/SC resource manager's readers in the order
// it reports them.
func ListReaders() ([]string, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, fmt.Errorf("establish context: %w", err)
	}
	defer ctx.Release()
	readers, err := ctx.ListReaders()
	if err != nil {
		return nil, fmt.Errorf("list readers: %w", err)
	}
	return readers, nil
}

// Connect opens an exclusive, protocol-auto-detect connection to the
// reader at readerIndex.
func Connect(readerIndex int) (*PCSCReader, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, fmt.Errorf("establish context: %w", err)
	}
	readers, err := ctx.ListReaders()
	if err != nil {
		ctx.Release()
		return nil, fmt.Errorf("list readers: %w", err)
	}
	if readerIndex < 0 || readerIndex >= len(readers) {
		ctx.Release()
		return nil, fmt.Errorf("reader index %d out of range (0..%d)", readerIndex, len(readers)-1)
	}
	name := readers[readerIndex]
	card, err := ctx.Connect(name, scard.ShareExclusive, scard.ProtocolAny)
	if err != nil {
		ctx.Release()
		return nil, fmt.Errorf("connect %q: %w", name, err)
	}
	return &PCSCReader{ctx: ctx, card: card, name: name}, nil
}

// Name returns the reader's resource-manager name.
func (r *PCSCReader) Name() string { return r.name }

// Transmit implements Card.
func (r *PCSCReader) Transmit(apdu []byte) ([]byte, error) {
	return r.card.Transmit(apdu)
}

// BeginTransaction implements TransactionScope.
func (r *PCSCReader) BeginTransaction() error {
	return r.card.BeginTransaction()
}

// EndTransaction implements TransactionScope.
func (r *PCSCReader) EndTransaction(reset bool) error {
	disposition := scard.LeaveCard
	if reset {
		disposition = scard.ResetCard
	}
	return r.card.EndTransaction(disposition)
}

// Disconnect releases the card handle and the PC/SC context. Every exit
// path (success or failure) must request a disconnect; the reset flag
// selects SCARD_RESET_CARD vs SCARD_LEAVE_CARD disposition.
func (r *PCSCReader) Disconnect(reset bool) error {
	disposition := scard.LeaveCard
	if reset {
		disposition = scard.ResetCard
	}
	err := r.card.Disconnect(disposition)
	if relErr := r.ctx.Release(); relErr != nil && err == nil {
		err = relErr
	}
	return err
}
