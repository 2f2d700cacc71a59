package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultCoinLoreBase = "https://api.coinlore.net"

// coinLorePageSize is the tickers endpoint page size.
const coinLorePageSize = 100

// CoinLoreClient fetches realtime prices from the CoinLore tickers API.
type CoinLoreClient struct {
	BaseURL string
	Client  *http.Client
	// MaxPages bounds how deep into the market-cap ranking we look for
	// watched symbols.
	MaxPages int
}

// NewCoinLoreClient creates a client with optional proxy support.
func NewCoinLoreClient(baseURL, proxyURL string) *CoinLoreClient {
	if baseURL == "" {
		baseURL = defaultCoinLoreBase
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CoinLoreClient{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Client:   &http.Client{Timeout: 20 * time.Second, Transport: transport},
		MaxPages: 3,
	}
}

type coinLoreTicker struct {
	Symbol   string `json:"symbol"`
	PriceUSD string `json:"price_usd"`
}

type coinLorePage struct {
	Data []coinLoreTicker `json:"data"`
}

// FetchPrices pages through the tickers endpoint and returns the price for
// every watched symbol it encounters.
func (c *CoinLoreClient) FetchPrices(symbols []string) (map[string]float64, error) {
	watched := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		watched[strings.ToUpper(s)] = true
	}

	out := make(map[string]float64)
	for page := 0; page < c.MaxPages && len(out) < len(watched); page++ {
		u := fmt.Sprintf("%s/api/tickers/?start=%d&limit=%d", c.BaseURL, page*coinLorePageSize, coinLorePageSize)
		tickers, err := c.fetchPage(u)
		if err != nil {
			if page == 0 {
				return nil, err
			}
			// Later pages only cover long-tail assets; keep what we have.
			break
		}
		if len(tickers) == 0 {
			break
		}
		for _, t := range tickers {
			sym := strings.ToUpper(t.Symbol)
			if !watched[sym] {
				continue
			}
			if _, dup := out[sym]; dup {
				continue // ranking can repeat a symbol; first hit wins
			}
			price, err := strconv.ParseFloat(t.PriceUSD, 64)
			if err != nil || price <= 0 {
				continue
			}
			out[sym] = price
		}
	}
	return out, nil
}

func (c *CoinLoreClient) fetchPage(u string) ([]coinLoreTicker, error) {
	resp, err := c.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("coinlore fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("coinlore read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coinlore: status %d, body: %s", resp.StatusCode, string(body))
	}

	var page coinLorePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("coinlore decode: %w", err)
	}
	return page.Data, nil
}
