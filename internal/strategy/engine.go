// Package strategy combines indicator readings and the pump/dump flag into a
// single weighted score and maps it to a categorical call. Evaluation is a
// fold over a declarative vote table; weights and thresholds come from
// configuration.
package strategy

import "github.com/thanesh002/Crypto-Note/internal/model"

// Evaluate scores one snapshot. The score is a weighted average over the
// available indicators only — missing data never penalizes the result. With
// no indicators at all the call is HOLD at score 0 with confidence none.
// Deterministic and side-effect-free.
func Evaluate(snap *model.IndicatorSnapshot, pd model.PumpDumpFlag, cfg Config) model.Signal {
	var (
		weightedSum float64
		totalWeight float64
		factors     []model.FactorScore
	)

	for _, r := range rules {
		vote, ok := r.vote(snap, pd)
		if !ok {
			continue
		}
		w := r.weight(&cfg, snap)
		if w <= 0 {
			continue
		}
		factors = append(factors, model.FactorScore{
			Name:     r.name,
			Vote:     vote,
			Weight:   w,
			Weighted: vote * w,
		})
		weightedSum += vote * w
		totalWeight += w
	}

	if totalWeight == 0 {
		return model.Signal{Call: model.Hold, Score: 0, Confidence: model.ConfidenceNone}
	}

	score := weightedSum / totalWeight

	sig := model.Signal{Factors: factors}
	if snap.VolumeRatio.OK && cfg.VolumeSpikeMultiplier > 0 &&
		snap.VolumeRatio.V >= cfg.VolumeSpikeMultiplier {
		// A volume spike amplifies the consensus of the other votes rather
		// than voting on its own, so thin-volume noise cannot flip a call.
		score = clamp(score*cfg.VolumeBoost, -1, 1)
		sig.VolumeBoosted = true
	}

	sig.Score = score
	sig.Call = mapCall(score, cfg.Thresholds)
	if len(factors) < 3 {
		sig.Confidence = model.ConfidenceLow
	} else {
		sig.Confidence = model.ConfidenceFull
	}
	return sig
}

func mapCall(score float64, t Thresholds) model.Call {
	switch {
	case score >= t.StrongBuy:
		return model.StrongBuy
	case score >= t.Buy:
		return model.Buy
	case score <= t.StrongSell:
		return model.StrongSell
	case score <= t.Sell:
		return model.Sell
	default:
		return model.Hold
	}
}
