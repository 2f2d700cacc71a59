package calculator

import (
	"fmt"

	"github.com/thanesh002/Crypto-Note/internal/series"
)

// CalculateRSI computes the Wilder-smoothed RSI over the given period.
// Requires at least period+1 closes (period deltas). All-gain windows read
// 100, all-loss windows read 0.
func CalculateRSI(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(prices) < period+1 {
		return 0, fmt.Errorf("%w: RSI(%d) needs %d closes, have %d",
			series.ErrInsufficientData, period, period+1, len(prices))
	}

	// Initial average gain/loss over the first period deltas.
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder smoothing: newAvg = (prevAvg*(period-1) + current) / period.
	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0, nil // flat series, no directional pressure
		}
		return 100.0, nil
	}
	if avgGain == 0 {
		return 0.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
