package collector

import (
	"log"

	"github.com/thanesh002/Crypto-Note/internal/model"
)

// MarketFetcher combines the CoinLore realtime-price feed with the CoinGecko
// candle feed. A symbol without a CoinGecko mapping has no candle source;
// the scan degrades to pump/dump-only scoring for it.
type MarketFetcher struct {
	Prices  *CoinLoreClient
	Candles *CoinGeckoClient
	Mapping map[string]string // symbol -> coingecko id
}

// NewMarketFetcher builds the live fetcher pair.
func NewMarketFetcher(prices *CoinLoreClient, candles *CoinGeckoClient, mapping map[string]string) *MarketFetcher {
	return &MarketFetcher{Prices: prices, Candles: candles, Mapping: mapping}
}

func (m *MarketFetcher) Name() string { return "coinlore+coingecko" }

func (m *MarketFetcher) FetchPrices(symbols []string) (map[string]float64, error) {
	return m.Prices.FetchPrices(symbols)
}

func (m *MarketFetcher) FetchCandles(symbol string) ([]model.Candle, error) {
	geckoID, ok := m.Mapping[symbol]
	if !ok {
		log.Printf("[WARN] no coingecko mapping for %s, candle indicators unavailable", symbol)
		return nil, nil
	}
	return m.Candles.FetchCandles(geckoID)
}
