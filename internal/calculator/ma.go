package calculator

import (
	"fmt"

	"github.com/thanesh002/Crypto-Note/internal/series"
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(prices) < period {
		return 0, fmt.Errorf("%w: SMA(%d) needs %d closes, have %d",
			series.ErrInsufficientData, period, period, len(prices))
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// CalculateEMA computes the exponential moving average with smoothing factor
// alpha = 2/(period+1), seeded with the SMA of the earliest period values and
// then applied close-by-close over the rest of the window.
func CalculateEMA(prices []float64, period int) (float64, error) {
	s, err := emaSeries(prices, period)
	if err != nil {
		return 0, err
	}
	return s[len(s)-1], nil
}

// emaSeries returns the EMA value series aligned to prices; entries before
// index period-1 are meaningless.
func emaSeries(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(prices) < period {
		return nil, fmt.Errorf("%w: EMA(%d) needs %d closes, have %d",
			series.ErrInsufficientData, period, period, len(prices))
	}
	alpha := 2.0 / float64(period+1)
	out := make([]float64, len(prices))

	seed := 0.0
	for i := 0; i < period; i++ {
		seed += prices[i]
	}
	out[period-1] = seed / float64(period)

	for i := period; i < len(prices); i++ {
		out[i] = alpha*prices[i] + (1-alpha)*out[i-1]
	}
	return out, nil
}
