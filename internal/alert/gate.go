package alert

import (
	"context"
	"sync"
	"time"

	"github.com/thanesh002/Crypto-Note/internal/model"
)

// DefaultCooldown is the minimum time between repeated alerts for an
// unchanged trend direction.
const DefaultCooldown = 5 * time.Minute

// Gate decides whether a freshly computed call surfaces as an alert.
//
// Policy:
//   - HOLD is recorded (it resets the side for reversal detection) but is
//     never itself alerted.
//   - A cold asset's first non-HOLD call always emits.
//   - A side reversal (sell-family to buy-family, or out of HOLD) emits
//     immediately and resets the cooldown clock.
//   - The same side re-emits only after the cooldown has elapsed.
//
// Every Evaluate updates the stored record, emitted or not, so the next
// transition check sees the current call history.
type Gate struct {
	store    StateStore
	cooldown time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGate wraps a StateStore. A non-positive cooldown selects the default.
func NewGate(store StateStore, cooldown time.Duration) *Gate {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Gate{
		store:    store,
		cooldown: cooldown,
		locks:    make(map[string]*sync.Mutex),
	}
}

// symbolLock returns the per-asset mutex, creating it on first sighting.
// Read-modify-write of one asset's state must not interleave across
// concurrent scans.
func (g *Gate) symbolLock(symbol string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.locks[symbol]
	if !ok {
		l = &sync.Mutex{}
		g.locks[symbol] = l
	}
	return l
}

// Evaluate applies the cooldown policy and persists the updated state.
// Store failures are returned to the caller; the state update is never
// dropped silently.
func (g *Gate) Evaluate(ctx context.Context, symbol string, call model.Call, score float64, now time.Time) (bool, *model.AlertState, error) {
	l := g.symbolLock(symbol)
	l.Lock()
	defer l.Unlock()

	prev, found, err := g.store.Get(ctx, symbol)
	if err != nil {
		return false, nil, err
	}

	state := &model.AlertState{
		Symbol:    symbol,
		LastCall:  call,
		LastScore: score,
		UpdatedAt: now,
	}
	if found {
		state.LastAlertAt = prev.LastAlertAt
	}

	emit := false
	if call != model.Hold {
		switch {
		case !found:
			emit = true // first observation establishes the baseline
		case prev.LastCall.Side() != call.Side():
			emit = true // a direction reversal is always newsworthy
		case now.Sub(prev.LastAlertAt) >= g.cooldown:
			emit = true // periodic re-confirmation of a sustained trend
		}
	}
	if emit {
		state.LastAlertAt = now
	}

	if err := g.store.Put(ctx, state); err != nil {
		return false, nil, err
	}
	if emit {
		if err := g.store.RecordAlert(ctx, state); err != nil {
			return true, state, err
		}
	}
	return emit, state, nil
}
