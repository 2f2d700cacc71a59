package model

import "time"

// Call is the categorical output of the rule engine, ordered by bullishness.
type Call string

const (
	StrongSell Call = "STRONG_SELL"
	Sell       Call = "SELL"
	Hold       Call = "HOLD"
	Buy        Call = "BUY"
	StrongBuy  Call = "STRONG_BUY"
)

// Side returns -1 for the sell family, +1 for the buy family, 0 for HOLD.
func (c Call) Side() int {
	switch c {
	case Buy, StrongBuy:
		return 1
	case Sell, StrongSell:
		return -1
	default:
		return 0
	}
}

// Direction of a pump/dump flag.
type Direction string

const (
	DirNone Direction = "none"
	DirUp   Direction = "up"
	DirDown Direction = "down"
)

// PumpDumpFlag reports an abrupt short-horizon price move, independent of
// candle aggregation.
type PumpDumpFlag struct {
	Direction Direction
	Magnitude float64 // absolute percent change
}

// FactorScore is a single indicator's contribution to the total score.
type FactorScore struct {
	Name     string
	Vote     float64 // in [-1, +1]
	Weight   float64
	Weighted float64
}

// Confidence qualifies a scan result.
type Confidence string

const (
	ConfidenceNone Confidence = "none" // no indicator available
	ConfidenceLow  Confidence = "low"  // fewer than three indicators
	ConfidenceFull Confidence = "full"
)

// Signal is the rule engine's output for one asset at one scan.
type Signal struct {
	Call          Call
	Score         float64 // in [-1, +1]
	Confidence    Confidence
	Factors       []FactorScore
	VolumeBoosted bool
}

// AlertState is the persisted per-asset cooldown record.
type AlertState struct {
	Symbol      string    `json:"symbol"`
	LastCall    Call      `json:"last_call"`
	LastScore   float64   `json:"last_score"`
	LastAlertAt time.Time `json:"last_alert_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AssetResult is what one scan exposes for one asset.
type AssetResult struct {
	Symbol    string
	Price     float64
	Snapshot  IndicatorSnapshot
	PumpDump  PumpDumpFlag
	Signal    Signal
	Emit      bool
	ScannedAt time.Time
}
