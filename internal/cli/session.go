package cli

import (
	"fmt"
	"log/slog"

	"github.com/barnettlynn/emvsign/pkg/apdu"
	"github.com/barnettlynn/emvsign/pkg/discovery"
)

func connectReader(index int) (*apdu.PCSCReader, error) {
	r, err := apdu.Connect(index)
	if err != nil {
		return nil, fmt.Errorf("connect reader %d: %w", index, err)
	}
	return r, nil
}

// disconnect always requests a card reset: every exit path leaves the
// reader in a known state for the next command.
func disconnect(r *apdu.PCSCReader) {
	if err := r.Disconnect(true); err != nil {
		slog.Default().Warn("disconnect failed", "reader", r.Name(), "error", err)
	}
}

// selectApplication picks the lowest-priority-value Application Template
// (EMV's "priority 1 wins"), falling back to the first template in wire
// order when none carry a priority.
func selectApplication(apps []discovery.Application) discovery.Application {
	best := apps[0]
	for _, a := range apps[1:] {
		if a.Priority == nil {
			continue
		}
		if best.Priority == nil || *a.Priority < *best.Priority {
			best = a
		}
	}
	return best
}
