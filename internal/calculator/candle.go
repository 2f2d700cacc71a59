package calculator

import "github.com/thanesh002/Crypto-Note/internal/model"

// IsBullishEngulfing reports whether cur is a bullish candle whose body fully
// contains the body of the preceding bearish candle.
func IsBullishEngulfing(prev, cur model.Candle) bool {
	if !cur.Bullish() || !prev.Bearish() {
		return false
	}
	prevHigh := prev.Open // bearish: open above close
	prevLow := prev.Close
	return cur.Open <= prevLow && cur.Close >= prevHigh && cur.Body() > prev.Body()
}

// IsHammer reports whether the candle's body sits in the upper third of its
// range with a lower wick longer than twice the body and a small upper wick.
func IsHammer(c model.Candle) bool {
	rng := c.High - c.Low
	if rng <= 0 {
		return false
	}
	bodyLow := c.Open
	bodyHigh := c.Close
	if c.Close < c.Open {
		bodyLow, bodyHigh = c.Close, c.Open
	}
	body := bodyHigh - bodyLow
	lowerWick := bodyLow - c.Low
	upperWick := c.High - bodyHigh

	return bodyLow >= c.High-rng/3 && lowerWick > 2*body && upperWick < body
}
