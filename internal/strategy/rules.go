package strategy

import "github.com/thanesh002/Crypto-Note/internal/model"

// Weights holds the per-indicator weights. Trend indicators carry the most
// weight, momentum sits in the middle, and confirmation signals (patterns,
// volume, pump/dump) can only tip a borderline score.
type Weights struct {
	RSI       float64
	EMACross  float64
	MACD      float64
	SMATrend  float64
	Engulfing float64
	Hammer    float64
	PumpDump  float64
}

// Thresholds map the final score to a Call.
type Thresholds struct {
	StrongBuy  float64
	Buy        float64
	Sell       float64
	StrongSell float64
}

// Config bundles all rule-engine tunables.
type Config struct {
	Weights    Weights
	Thresholds Thresholds
	// VolumeSpikeMultiplier is the volume ratio past which the score
	// magnitude is boosted instead of adding a standalone vote.
	VolumeSpikeMultiplier float64
	VolumeBoost           float64
}

// DefaultConfig returns the stock weights and thresholds.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			RSI:       1.0,
			EMACross:  1.5,
			MACD:      1.5,
			SMATrend:  0.25,
			Engulfing: 0.5,
			Hammer:    0.5,
			PumpDump:  0.75,
		},
		Thresholds: Thresholds{
			StrongBuy:  0.6,
			Buy:        0.25,
			Sell:       -0.25,
			StrongSell: -0.6,
		},
		VolumeSpikeMultiplier: 2.0,
		VolumeBoost:           1.25,
	}
}

// rule is one row of the declarative vote table. vote returns ok=false when
// the backing indicator is unavailable; such rules contribute neither vote
// nor weight.
type rule struct {
	name   string
	weight func(cfg *Config, snap *model.IndicatorSnapshot) float64
	vote   func(snap *model.IndicatorSnapshot, pd model.PumpDumpFlag) (float64, bool)
}

var rules = []rule{
	{
		name:   "rsi14",
		weight: func(cfg *Config, _ *model.IndicatorSnapshot) float64 { return cfg.Weights.RSI },
		vote: func(snap *model.IndicatorSnapshot, _ model.PumpDumpFlag) (float64, bool) {
			if !snap.RSI14.OK {
				return 0, false
			}
			// 0 at RSI 50, +1 at the 30 oversold band, -1 at 70 overbought,
			// linear in between.
			return clamp((50-snap.RSI14.V)/20, -1, 1), true
		},
	},
	{
		name:   "ema_cross",
		weight: func(cfg *Config, _ *model.IndicatorSnapshot) float64 { return cfg.Weights.EMACross },
		vote: func(snap *model.IndicatorSnapshot, _ model.PumpDumpFlag) (float64, bool) {
			if !snap.EMA20.OK || !snap.EMA50.OK {
				return 0, false
			}
			if snap.EMA20.V > snap.EMA50.V {
				return 1, true
			}
			return -1, true
		},
	},
	{
		name: "macd",
		weight: func(cfg *Config, snap *model.IndicatorSnapshot) float64 {
			if !snap.MACDStable {
				return cfg.Weights.MACD / 2 // low-confidence signal line
			}
			return cfg.Weights.MACD
		},
		vote: func(snap *model.IndicatorSnapshot, _ model.PumpDumpFlag) (float64, bool) {
			if !snap.MACDHist.OK {
				return 0, false
			}
			rising := !snap.MACDHistPrev.OK || snap.MACDHist.V > snap.MACDHistPrev.V
			if snap.MACDHist.V > 0 && rising {
				return 1, true
			}
			return -1, true
		},
	},
	{
		name:   "sma_trend",
		weight: func(cfg *Config, _ *model.IndicatorSnapshot) float64 { return cfg.Weights.SMATrend },
		vote: func(snap *model.IndicatorSnapshot, _ model.PumpDumpFlag) (float64, bool) {
			if !snap.SMA10.OK || !snap.EMA20.OK {
				return 0, false
			}
			// Short mean below the fast EMA reads as room to run.
			if snap.SMA10.V < snap.EMA20.V {
				return 1, true
			}
			return 0, true
		},
	},
	{
		name:   "bullish_engulfing",
		weight: func(cfg *Config, _ *model.IndicatorSnapshot) float64 { return cfg.Weights.Engulfing },
		vote: func(snap *model.IndicatorSnapshot, _ model.PumpDumpFlag) (float64, bool) {
			// Confirmation-only: a quiet tape contributes nothing.
			if !snap.PatternsOK || !snap.BullishEngulfing {
				return 0, false
			}
			return 1, true
		},
	},
	{
		name:   "hammer",
		weight: func(cfg *Config, _ *model.IndicatorSnapshot) float64 { return cfg.Weights.Hammer },
		vote: func(snap *model.IndicatorSnapshot, _ model.PumpDumpFlag) (float64, bool) {
			if !snap.PatternsOK || !snap.Hammer {
				return 0, false
			}
			return 1, true
		},
	},
	{
		name:   "pump_dump",
		weight: func(cfg *Config, _ *model.IndicatorSnapshot) float64 { return cfg.Weights.PumpDump },
		vote: func(_ *model.IndicatorSnapshot, pd model.PumpDumpFlag) (float64, bool) {
			switch pd.Direction {
			case model.DirUp:
				return 1, true
			case model.DirDown:
				return -1, true
			}
			return 0, false
		},
	},
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
