// Package watchlist loads the monitored asset list and the symbol-to-
// CoinGecko id mapping from CSV files.
package watchlist

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Coin is one watch-list entry.
type Coin struct {
	Symbol string
	Name   string
}

// Load reads a coin list CSV with a symbol,name header. Blank lines and
// #-comments are skipped; symbols are uppercased and deduplicated.
func Load(path string) ([]Coin, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open coin list: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse coin list: %w", err)
	}

	seen := make(map[string]bool)
	var coins []Coin
	for i, rec := range records {
		if len(rec) == 0 {
			continue
		}
		sym := strings.ToUpper(strings.TrimSpace(rec[0]))
		if sym == "" || (i == 0 && strings.EqualFold(sym, "symbol")) {
			continue
		}
		if seen[sym] {
			continue
		}
		seen[sym] = true
		c := Coin{Symbol: sym}
		if len(rec) > 1 {
			c.Name = strings.TrimSpace(rec[1])
		}
		coins = append(coins, c)
	}
	return coins, nil
}

// LoadMapping reads a symbol,coingecko_id CSV. Assets without a mapping get
// no candle feed and degrade to pump/dump-only scoring.
func LoadMapping(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse mapping: %w", err)
	}

	mapping := make(map[string]string)
	for i, rec := range records {
		if len(rec) < 2 {
			continue
		}
		sym := strings.ToUpper(strings.TrimSpace(rec[0]))
		id := strings.TrimSpace(rec[1])
		if sym == "" || id == "" || (i == 0 && strings.EqualFold(sym, "symbol")) {
			continue
		}
		mapping[sym] = id
	}
	return mapping, nil
}
