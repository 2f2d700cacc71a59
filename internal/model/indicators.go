package model

// Value is an indicator reading that may be unavailable when the series
// is shorter than the indicator's minimum lookback.
type Value struct {
	V  float64
	OK bool
}

// Some returns an available Value.
func Some(v float64) Value { return Value{V: v, OK: true} }

// IndicatorSnapshot holds all indicator readings for one asset at one scan.
// Recomputed every scan, never persisted.
type IndicatorSnapshot struct {
	RSI14        Value
	SMA10        Value
	EMA20        Value
	EMA50        Value
	MACD         Value
	MACDSignal   Value
	MACDHist     Value
	MACDHistPrev Value
	MACDStable   bool // false while fewer than 26+9 closes are present

	VolumeRatio Value

	PatternsOK       bool // at least two candles present
	BullishEngulfing bool
	Hammer           bool
}

// AvailableCount returns how many scored indicator groups carry a reading.
func (s *IndicatorSnapshot) AvailableCount() int {
	n := 0
	for _, v := range []Value{s.RSI14, s.SMA10, s.EMA20, s.EMA50, s.MACDHist, s.VolumeRatio} {
		if v.OK {
			n++
		}
	}
	if s.PatternsOK {
		n++
	}
	return n
}
