package apdu

import "fmt"

// TransactionScope serializes a multi-exchange sequence (e.g. SELECT, then
// several READ RECORDs) against other processes sharing the same reader
// handle via the platform resource manager.
type TransactionScope interface {
	BeginTransaction() error
	EndTransaction(reset bool) error
}

// WithTransaction runs fn inside an acquire -> exchange -> release scope so
// partial command sequences cannot interleave with another caller on the
// same card handle. If ts is nil (test doubles need not support
// transactions) fn runs directly.
func WithTransaction(ts TransactionScope, fn func() error) error {
	if ts == nil {
		return fn()
	}
	if err := ts.BeginTransaction(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	err := fn()
	if endErr := ts.EndTransaction(false); endErr != nil && err == nil {
		err = fmt.Errorf("end transaction: %w", endErr)
	}
	return err
}
