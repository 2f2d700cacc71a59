package strategy

import (
	"math"
	"testing"

	"github.com/thanesh002/Crypto-Note/internal/model"
)

func noPD() model.PumpDumpFlag { return model.PumpDumpFlag{Direction: model.DirNone} }

func TestEvaluate_OverboughtButTrending(t *testing.T) {
	// RSI overbought votes -1 (weight 1.0), but both trend indicators vote +1
	// (weight 1.5 each): score (−1 + 1.5 + 1.5) / 4.0 = 0.5 → BUY.
	snap := &model.IndicatorSnapshot{
		RSI14:        model.Some(72),
		EMA20:        model.Some(110),
		EMA50:        model.Some(105),
		MACD:         model.Some(1.2),
		MACDSignal:   model.Some(0.9),
		MACDHist:     model.Some(0.3),
		MACDHistPrev: model.Some(0.1),
		MACDStable:   true,
	}
	sig := Evaluate(snap, noPD(), DefaultConfig())
	if math.Abs(sig.Score-0.5) > 1e-9 {
		t.Errorf("score = %.4f, want 0.5", sig.Score)
	}
	if sig.Call != model.Buy {
		t.Errorf("call = %s, want BUY", sig.Call)
	}
	if sig.Confidence != model.ConfidenceFull {
		t.Errorf("three factors should be full confidence, got %s", sig.Confidence)
	}
}

func TestEvaluate_UnavailableIndicatorsAreExcluded(t *testing.T) {
	// Only RSI present: the single vote carries the whole score instead of
	// being diluted by zeros for missing indicators.
	snap := &model.IndicatorSnapshot{RSI14: model.Some(80)}
	sig := Evaluate(snap, noPD(), DefaultConfig())
	if sig.Score != -1.0 {
		t.Errorf("lone overbought RSI should score -1, got %.4f", sig.Score)
	}
	if sig.Call != model.StrongSell {
		t.Errorf("call = %s, want STRONG_SELL", sig.Call)
	}
	if sig.Confidence != model.ConfidenceLow {
		t.Errorf("single factor must be low confidence, got %s", sig.Confidence)
	}
	if len(sig.Factors) != 1 {
		t.Errorf("expected 1 factor, got %d", len(sig.Factors))
	}
}

func TestEvaluate_NoIndicators(t *testing.T) {
	sig := Evaluate(&model.IndicatorSnapshot{}, noPD(), DefaultConfig())
	if sig.Call != model.Hold || sig.Score != 0 {
		t.Errorf("no data must yield HOLD/0, got %s/%.2f", sig.Call, sig.Score)
	}
	if sig.Confidence != model.ConfidenceNone {
		t.Errorf("confidence = %s, want none", sig.Confidence)
	}
}

func TestEvaluate_RSIVoteCurve(t *testing.T) {
	tests := []struct {
		rsi  float64
		want float64
	}{
		{50, 0},
		{30, 1},    // oversold band
		{70, -1},   // overbought band
		{20, 1},    // clamped
		{90, -1},   // clamped
		{60, -0.5}, // linear in between
		{40, 0.5},
	}
	for _, tt := range tests {
		snap := &model.IndicatorSnapshot{RSI14: model.Some(tt.rsi)}
		sig := Evaluate(snap, noPD(), DefaultConfig())
		if math.Abs(sig.Score-tt.want) > 1e-9 {
			t.Errorf("RSI %.0f: score %.4f, want %.4f", tt.rsi, sig.Score, tt.want)
		}
	}
}

func TestEvaluate_PumpDumpVote(t *testing.T) {
	snap := &model.IndicatorSnapshot{
		EMA20: model.Some(110),
		EMA50: model.Some(105),
	}
	// ema_cross +1 (1.5) and dump -1 (0.75): (1.5 − 0.75) / 2.25 = 1/3.
	sig := Evaluate(snap, model.PumpDumpFlag{Direction: model.DirDown, Magnitude: 4}, DefaultConfig())
	if math.Abs(sig.Score-1.0/3.0) > 1e-9 {
		t.Errorf("score = %.4f, want 0.3333", sig.Score)
	}
	if sig.Call != model.Buy {
		t.Errorf("call = %s, want BUY", sig.Call)
	}

	// A pump on top of a bullish cross pushes into STRONG_BUY.
	sig = Evaluate(snap, model.PumpDumpFlag{Direction: model.DirUp, Magnitude: 4}, DefaultConfig())
	if sig.Score != 1.0 {
		t.Errorf("aligned votes should score 1.0, got %.4f", sig.Score)
	}
	if sig.Call != model.StrongBuy {
		t.Errorf("call = %s, want STRONG_BUY", sig.Call)
	}
}

func TestEvaluate_MACDUnstableHalvesWeight(t *testing.T) {
	stable := &model.IndicatorSnapshot{
		RSI14:      model.Some(50), // vote 0, weight 1.0
		MACDHist:   model.Some(-0.2),
		MACDStable: true,
	}
	sigStable := Evaluate(stable, noPD(), DefaultConfig())
	// (0*1.0 + -1*1.5) / 2.5 = -0.6
	if math.Abs(sigStable.Score-(-0.6)) > 1e-9 {
		t.Errorf("stable MACD score = %.4f, want -0.6", sigStable.Score)
	}

	unstable := &model.IndicatorSnapshot{
		RSI14:      model.Some(50),
		MACDHist:   model.Some(-0.2),
		MACDStable: false,
	}
	sigUnstable := Evaluate(unstable, noPD(), DefaultConfig())
	// (0*1.0 + -1*0.75) / 1.75 ≈ -0.4286: the immature signal line pulls less.
	if math.Abs(sigUnstable.Score) >= math.Abs(sigStable.Score) {
		t.Errorf("unstable MACD must weigh less: %.4f vs %.4f", sigUnstable.Score, sigStable.Score)
	}
}

func TestEvaluate_PatternsConfirmOnly(t *testing.T) {
	// Patterns present but not fired: they contribute no weight, so the
	// remaining bullish cross keeps its full say.
	quiet := &model.IndicatorSnapshot{
		EMA20:      model.Some(110),
		EMA50:      model.Some(105),
		PatternsOK: true,
	}
	sig := Evaluate(quiet, noPD(), DefaultConfig())
	if sig.Score != 1.0 {
		t.Errorf("unfired patterns must not dilute the score, got %.4f", sig.Score)
	}

	fired := &model.IndicatorSnapshot{
		EMA20:            model.Some(100),
		EMA50:            model.Some(105), // bearish cross
		PatternsOK:       true,
		BullishEngulfing: true,
	}
	sig = Evaluate(fired, noPD(), DefaultConfig())
	// (-1.5 + 0.5) / 2.0 = -0.5
	if math.Abs(sig.Score-(-0.5)) > 1e-9 {
		t.Errorf("engulfing should soften the bearish score to -0.5, got %.4f", sig.Score)
	}
}

func TestEvaluate_VolumeSpikeBoostsMagnitude(t *testing.T) {
	snap := &model.IndicatorSnapshot{
		RSI14:       model.Some(72),
		EMA20:       model.Some(110),
		EMA50:       model.Some(105),
		MACDHist:    model.Some(0.3),
		MACDStable:  true,
		VolumeRatio: model.Some(2.5),
	}
	sig := Evaluate(snap, noPD(), DefaultConfig())
	if !sig.VolumeBoosted {
		t.Fatal("volume ratio 2.5 should trigger the boost")
	}
	// Base score 0.5 boosted by 1.25 → 0.625 → STRONG_BUY.
	if math.Abs(sig.Score-0.625) > 1e-9 {
		t.Errorf("boosted score = %.4f, want 0.625", sig.Score)
	}
	if sig.Call != model.StrongBuy {
		t.Errorf("call = %s, want STRONG_BUY", sig.Call)
	}

	snap.VolumeRatio = model.Some(1.2)
	sig = Evaluate(snap, noPD(), DefaultConfig())
	if sig.VolumeBoosted {
		t.Error("ordinary volume must not boost")
	}
	if math.Abs(sig.Score-0.5) > 1e-9 {
		t.Errorf("unboosted score = %.4f, want 0.5", sig.Score)
	}
}

func TestEvaluate_ScoreStaysBounded(t *testing.T) {
	// Everything maximally bullish plus a volume spike: the boost clamps at +1.
	snap := &model.IndicatorSnapshot{
		RSI14:            model.Some(20),
		SMA10:            model.Some(100),
		EMA20:            model.Some(110),
		EMA50:            model.Some(105),
		MACDHist:         model.Some(0.5),
		MACDHistPrev:     model.Some(0.2),
		MACDStable:       true,
		VolumeRatio:      model.Some(5),
		PatternsOK:       true,
		BullishEngulfing: true,
		Hammer:           true,
	}
	sig := Evaluate(snap, model.PumpDumpFlag{Direction: model.DirUp, Magnitude: 5}, DefaultConfig())
	if sig.Score < -1 || sig.Score > 1 {
		t.Errorf("score out of range: %.4f", sig.Score)
	}
	if sig.Call != model.StrongBuy {
		t.Errorf("call = %s, want STRONG_BUY", sig.Call)
	}
}

func TestMapCall_Boundaries(t *testing.T) {
	th := DefaultConfig().Thresholds
	tests := []struct {
		score float64
		want  model.Call
	}{
		{1.0, model.StrongBuy},
		{0.6, model.StrongBuy},
		{0.59, model.Buy},
		{0.25, model.Buy},
		{0.24, model.Hold},
		{0.0, model.Hold},
		{-0.24, model.Hold},
		{-0.25, model.Sell},
		{-0.59, model.Sell},
		{-0.6, model.StrongSell},
		{-1.0, model.StrongSell},
	}
	for _, tt := range tests {
		if got := mapCall(tt.score, th); got != tt.want {
			t.Errorf("score %.2f: got %s, want %s", tt.score, got, tt.want)
		}
	}
}
