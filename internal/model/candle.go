package model

import "time"

// Candle represents a single OHLCV observation over a fixed time bucket.
type Candle struct {
	OpenTime time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
}

// Bullish reports whether the candle closed above its open.
func (c Candle) Bullish() bool { return c.Close > c.Open }

// Bearish reports whether the candle closed below its open.
func (c Candle) Bearish() bool { return c.Close < c.Open }

// Body returns the absolute distance between open and close.
func (c Candle) Body() float64 {
	if c.Close > c.Open {
		return c.Close - c.Open
	}
	return c.Open - c.Close
}

// PriceTick is one realtime price sample for an asset.
type PriceTick struct {
	Symbol string
	Price  float64
	At     time.Time
}
