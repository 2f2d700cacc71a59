package calculator

import (
	"fmt"

	"github.com/thanesh002/Crypto-Note/internal/series"
)

// Standard MACD parameters.
const (
	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9

	// macdStableLookback is the close count at which the signal line has a
	// full EMA(9) seed; with fewer closes MACD still computes but is
	// reported low-confidence.
	macdStableLookback = macdSlow + macdSignal
)

// MACDResult holds the MACD(12,26,9) decomposition at the window's end.
type MACDResult struct {
	MACD     float64
	Signal   float64
	Hist     float64
	HistPrev float64
	HasPrev  bool
	// Stable is false while fewer than 26+9 closes back the signal line.
	Stable bool
}

// CalculateMACD computes EMA(12)-EMA(26) and the EMA(9) signal line over the
// window. Requires at least 26 closes.
func CalculateMACD(prices []float64) (MACDResult, error) {
	if len(prices) < macdSlow {
		return MACDResult{}, fmt.Errorf("%w: MACD needs %d closes, have %d",
			series.ErrInsufficientData, macdSlow, len(prices))
	}

	fast, err := emaSeries(prices, macdFast)
	if err != nil {
		return MACDResult{}, err
	}
	slow, err := emaSeries(prices, macdSlow)
	if err != nil {
		return MACDResult{}, err
	}

	// MACD line exists from the first index where the slow EMA is seeded.
	line := make([]float64, 0, len(prices)-macdSlow+1)
	for i := macdSlow - 1; i < len(prices); i++ {
		line = append(line, fast[i]-slow[i])
	}

	res := MACDResult{Stable: len(prices) >= macdStableLookback}

	var sig []float64
	var sigStart int
	if len(line) >= macdSignal {
		sig, _ = emaSeries(line, macdSignal)
		sigStart = macdSignal - 1
	} else {
		// Short window: seed the signal line with the first MACD value and
		// recurse, so a value always exists once the MACD line does.
		sig = make([]float64, len(line))
		alpha := 2.0 / float64(macdSignal+1)
		sig[0] = line[0]
		for i := 1; i < len(line); i++ {
			sig[i] = alpha*line[i] + (1-alpha)*sig[i-1]
		}
		sigStart = 0
	}

	last := len(line) - 1
	res.MACD = line[last]
	res.Signal = sig[last]
	res.Hist = line[last] - sig[last]
	if last-1 >= sigStart {
		res.HistPrev = line[last-1] - sig[last-1]
		res.HasPrev = true
	}
	return res, nil
}
