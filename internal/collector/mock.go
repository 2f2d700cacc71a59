package collector

import (
	"time"

	"github.com/thanesh002/Crypto-Note/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	PriceBySymbol   map[string]float64
	CandlesBySymbol map[string][]model.Candle
	PricesErr       error
	CandlesErr      error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchPrices(symbols []string) (map[string]float64, error) {
	if m.PricesErr != nil {
		return nil, m.PricesErr
	}
	out := make(map[string]float64)
	for _, s := range symbols {
		if p, ok := m.PriceBySymbol[s]; ok {
			out[s] = p
		}
	}
	return out, nil
}

func (m *MockFetcher) FetchCandles(symbol string) ([]model.Candle, error) {
	if m.CandlesErr != nil {
		return nil, m.CandlesErr
	}
	return m.CandlesBySymbol[symbol], nil
}

// GenerateCandles builds count hourly candles ending now, with closes
// produced by the step function (index 0 is the oldest candle).
func GenerateCandles(base time.Time, count int, step func(i int) float64) []model.Candle {
	candles := make([]model.Candle, count)
	start := base.Add(-time.Duration(count) * time.Hour)
	for i := 0; i < count; i++ {
		p := step(i)
		candles[i] = model.Candle{
			OpenTime: start.Add(time.Duration(i) * time.Hour),
			Open:     p * 0.999,
			High:     p * 1.004,
			Low:      p * 0.996,
			Close:    p,
			Volume:   1_000_000,
		}
	}
	return candles
}
