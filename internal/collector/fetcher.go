package collector

import "github.com/thanesh002/Crypto-Note/internal/model"

// Fetcher is the market-data boundary. The engine never fetches data itself;
// a Fetcher hands it already-materialized candles and price ticks once per
// scan tick.
type Fetcher interface {
	// FetchPrices returns the latest realtime price per symbol. Symbols the
	// upstream does not know are simply absent from the map.
	FetchPrices(symbols []string) (map[string]float64, error)
	// FetchCandles returns recent hourly candles for one symbol, oldest
	// first. A symbol with no candle source returns an empty slice and no
	// error; candle-based indicators then degrade to unavailable.
	FetchCandles(symbol string) ([]model.Candle, error)
	Name() string
}
