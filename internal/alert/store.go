// Package alert owns the per-asset AlertState and decides whether a freshly
// computed call surfaces as an alert or is suppressed by the cooldown.
package alert

import (
	"context"

	"github.com/thanesh002/Crypto-Note/internal/model"
)

// StateStore persists one AlertState per asset plus the emitted-alert
// history. Implementations must be safe for concurrent use; the Gate
// serializes read-modify-write per asset on top.
type StateStore interface {
	// Get returns the stored state for a symbol, or found=false on a cold
	// asset.
	Get(ctx context.Context, symbol string) (state *model.AlertState, found bool, err error)
	// Put overwrites the state record for state.Symbol.
	Put(ctx context.Context, state *model.AlertState) error
	// All returns every stored state, in no particular order.
	All(ctx context.Context) ([]model.AlertState, error)
	// RecordAlert appends an emitted alert to the history log.
	RecordAlert(ctx context.Context, state *model.AlertState) error
	Close() error
}
