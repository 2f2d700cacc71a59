// Package pumpdump flags abrupt short-horizon price moves by comparing the
// latest realtime price to a sample recorded a fixed interval earlier. The
// signal is independent of candle data and works while the series buffer is
// still cold.
package pumpdump

import (
	"math"
	"sync"
	"time"

	"github.com/thanesh002/Crypto-Note/internal/model"
)

// Defaults matching the original alert thresholds.
const (
	DefaultInterval  = 5 * time.Minute
	DefaultThreshold = 2.0 // percent

	// pruneMargin keeps a little history past the lookback so a baseline
	// sample is always at least the full interval old.
	pruneMargin = 2
)

type sample struct {
	at    time.Time
	price float64
}

// Detector keeps a small ring of timestamped prices per asset.
type Detector struct {
	mu        sync.Mutex
	interval  time.Duration
	threshold float64
	history   map[string][]sample
}

// New creates a Detector. Non-positive arguments select the defaults.
func New(interval time.Duration, thresholdPercent float64) *Detector {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if thresholdPercent <= 0 {
		thresholdPercent = DefaultThreshold
	}
	return &Detector{
		interval:  interval,
		threshold: thresholdPercent,
		history:   make(map[string][]sample),
	}
}

// Observe records a price tick and returns the flag for its asset: the
// percent change against the newest sample at least one interval old.
// Until such a baseline exists the flag is none.
func (d *Detector) Observe(tick model.PriceTick) model.PumpDumpFlag {
	d.mu.Lock()
	defer d.mu.Unlock()

	now, price := tick.At, tick.Price
	hist := d.history[tick.Symbol]

	// Newest sample that is at least interval old.
	var baseline *sample
	for i := len(hist) - 1; i >= 0; i-- {
		if now.Sub(hist[i].at) >= d.interval {
			baseline = &hist[i]
			break
		}
	}

	hist = append(hist, sample{at: now, price: price})
	// Prune everything older than the lookback plus a small margin.
	cutoff := now.Add(-d.interval * pruneMargin)
	for len(hist) > 1 && hist[0].at.Before(cutoff) && !hist[1].at.After(now.Add(-d.interval)) {
		hist = hist[1:]
	}
	d.history[tick.Symbol] = hist

	if baseline == nil || baseline.price <= 0 {
		return model.PumpDumpFlag{Direction: model.DirNone}
	}
	change := (price - baseline.price) / baseline.price * 100.0
	f := model.PumpDumpFlag{Magnitude: math.Abs(change)}
	switch {
	case change >= d.threshold:
		f.Direction = model.DirUp
	case change <= -d.threshold:
		f.Direction = model.DirDown
	default:
		f.Direction = model.DirNone
	}
	return f
}
