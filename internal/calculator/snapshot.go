package calculator

import (
	"github.com/thanesh002/Crypto-Note/internal/model"
	"github.com/thanesh002/Crypto-Note/internal/series"
)

// Indicator periods used by every scan.
const (
	RSIPeriod    = 14
	SMAPeriod    = 10
	EMAShort     = 20
	EMALong      = 50
	VolumeWindow = 20
)

// Compute builds one IndicatorSnapshot from a series buffer. Indicators whose
// minimum lookback is unmet come back unavailable, never zero.
func Compute(b *series.Buffer) model.IndicatorSnapshot {
	var snap model.IndicatorSnapshot

	n := b.Len()
	if n == 0 {
		return snap
	}
	closes, err := b.Closes(n)
	if err != nil {
		return snap
	}

	if v, err := CalculateRSI(closes, RSIPeriod); err == nil {
		snap.RSI14 = model.Some(v)
	}
	if v, err := CalculateSMA(closes, SMAPeriod); err == nil {
		snap.SMA10 = model.Some(v)
	}
	if v, err := CalculateEMA(closes, EMAShort); err == nil {
		snap.EMA20 = model.Some(v)
	}
	if v, err := CalculateEMA(closes, EMALong); err == nil {
		snap.EMA50 = model.Some(v)
	}
	if m, err := CalculateMACD(closes); err == nil {
		snap.MACD = model.Some(m.MACD)
		snap.MACDSignal = model.Some(m.Signal)
		snap.MACDHist = model.Some(m.Hist)
		if m.HasPrev {
			snap.MACDHistPrev = model.Some(m.HistPrev)
		}
		snap.MACDStable = m.Stable
	}
	if vols, err := b.Volumes(VolumeWindow + 1); err == nil {
		if r, err := CalculateVolumeRatio(vols); err == nil {
			snap.VolumeRatio = model.Some(r)
		}
	}
	if w, err := b.Window(2); err == nil {
		snap.PatternsOK = true
		snap.BullishEngulfing = IsBullishEngulfing(w[0], w[1])
		snap.Hammer = IsHammer(w[1])
	}
	return snap
}
