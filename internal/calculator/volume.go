package calculator

import (
	"fmt"

	"github.com/thanesh002/Crypto-Note/internal/series"
)

// CalculateVolumeRatio returns the ratio of the last volume to the mean of
// all preceding volumes in the window. The caller passes the preceding
// window plus the current candle, so a 20-candle baseline needs 21 values.
func CalculateVolumeRatio(volumes []float64) (float64, error) {
	if len(volumes) < 2 {
		return 0, fmt.Errorf("%w: volume ratio needs 2 volumes, have %d",
			series.ErrInsufficientData, len(volumes))
	}
	sum := 0.0
	for _, v := range volumes[:len(volumes)-1] {
		sum += v
	}
	mean := sum / float64(len(volumes)-1)
	if mean <= 0 {
		return 0, fmt.Errorf("%w: zero baseline volume", series.ErrInsufficientData)
	}
	return volumes[len(volumes)-1] / mean, nil
}
