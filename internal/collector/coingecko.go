package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/thanesh002/Crypto-Note/internal/model"
)

const defaultCoinGeckoBase = "https://api.coingecko.com"

// CoinGeckoClient fetches hourly candles via the market_chart endpoint and
// buckets the raw price points into OHLCV candles.
type CoinGeckoClient struct {
	BaseURL string
	Client  *http.Client
	Days    int
}

// NewCoinGeckoClient creates a client with optional proxy support.
func NewCoinGeckoClient(baseURL, proxyURL string) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = defaultCoinGeckoBase
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CoinGeckoClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 20 * time.Second, Transport: transport},
		Days:    7,
	}
}

// marketChart is the relevant part of the market_chart response: arrays of
// [timestamp-ms, value] pairs.
type marketChart struct {
	Prices       [][2]float64 `json:"prices"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}

// FetchCandles returns hourly candles for one CoinGecko id, oldest first.
func (c *CoinGeckoClient) FetchCandles(geckoID string) ([]model.Candle, error) {
	u := fmt.Sprintf("%s/api/v3/coins/%s/market_chart?vs_currency=usd&days=%d&interval=hourly",
		c.BaseURL, url.PathEscape(geckoID), c.Days)

	resp, err := c.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("coingecko read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart marketChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("coingecko decode: %w", err)
	}
	return bucketHourly(chart), nil
}

// bucketHourly folds raw price/volume points into hourly OHLCV candles.
func bucketHourly(chart marketChart) []model.Candle {
	if len(chart.Prices) == 0 {
		return nil
	}

	volumes := make(map[time.Time]float64)
	for _, p := range chart.TotalVolumes {
		bucket := time.UnixMilli(int64(p[0])).UTC().Truncate(time.Hour)
		volumes[bucket] += p[1]
	}

	byBucket := make(map[time.Time]*model.Candle)
	var order []time.Time
	for _, p := range chart.Prices {
		bucket := time.UnixMilli(int64(p[0])).UTC().Truncate(time.Hour)
		price := p[1]
		c, ok := byBucket[bucket]
		if !ok {
			byBucket[bucket] = &model.Candle{
				OpenTime: bucket,
				Open:     price,
				High:     price,
				Low:      price,
				Close:    price,
				Volume:   volumes[bucket],
			}
			order = append(order, bucket)
			continue
		}
		if price > c.High {
			c.High = price
		}
		if price < c.Low {
			c.Low = price
		}
		c.Close = price
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })
	candles := make([]model.Candle, 0, len(order))
	for _, b := range order {
		candles = append(candles, *byBucket[b])
	}
	return candles
}
