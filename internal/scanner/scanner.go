// Package scanner drives one full scan tick: refresh candle buffers, compute
// indicators, score, gate through the cooldown store, and notify.
package scanner

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/thanesh002/Crypto-Note/internal/alert"
	"github.com/thanesh002/Crypto-Note/internal/calculator"
	"github.com/thanesh002/Crypto-Note/internal/collector"
	"github.com/thanesh002/Crypto-Note/internal/metrics"
	"github.com/thanesh002/Crypto-Note/internal/model"
	"github.com/thanesh002/Crypto-Note/internal/notifier"
	"github.com/thanesh002/Crypto-Note/internal/pumpdump"
	"github.com/thanesh002/Crypto-Note/internal/series"
	"github.com/thanesh002/Crypto-Note/internal/strategy"
	"github.com/thanesh002/Crypto-Note/internal/watchlist"
)

// maxParallelAssets bounds the per-asset fan-out within one scan.
const maxParallelAssets = 4

// Scanner owns the per-asset series buffers and runs scan ticks. Assets are
// independent: each is evaluated in its own goroutine, while per-asset state
// writes are serialized by the alert gate.
type Scanner struct {
	fetcher  collector.Fetcher
	detector *pumpdump.Detector
	gate     *alert.Gate
	notify   notifier.Notifier
	metrics  *metrics.Metrics

	coins    []watchlist.Coin
	names    map[string]string
	stratCfg strategy.Config

	maxWindow int

	mu       sync.Mutex
	buffers  map[string]*series.Buffer
	lastScan time.Time

	scanning sync.Mutex // one scan at a time; an overdue tick is skipped
}

// New creates a Scanner. metrics may be nil.
func New(fetcher collector.Fetcher, detector *pumpdump.Detector, gate *alert.Gate,
	notify notifier.Notifier, m *metrics.Metrics, coins []watchlist.Coin,
	stratCfg strategy.Config, maxWindow int) *Scanner {

	names := make(map[string]string, len(coins))
	for _, c := range coins {
		names[c.Symbol] = c.Name
	}
	return &Scanner{
		fetcher:   fetcher,
		detector:  detector,
		gate:      gate,
		notify:    notify,
		metrics:   m,
		coins:     coins,
		names:     names,
		stratCfg:  stratCfg,
		maxWindow: maxWindow,
		buffers:   make(map[string]*series.Buffer),
	}
}

// ScanOnce runs one full scan tick and returns the per-asset results,
// ordered by symbol. Returns nil when a previous scan is still running.
func (s *Scanner) ScanOnce(ctx context.Context) []model.AssetResult {
	if !s.scanning.TryLock() {
		log.Println("[WARN] previous scan still running, skipping tick")
		return nil
	}
	defer s.scanning.Unlock()

	start := time.Now()
	symbols := make([]string, len(s.coins))
	for i, c := range s.coins {
		symbols[i] = c.Symbol
	}

	prices, err := s.fetcher.FetchPrices(symbols)
	if err != nil {
		// Candle-based indicators can still score; pump/dump degrades to none.
		log.Printf("[ERROR] fetch realtime prices: %v", err)
		s.countFetchError("prices")
		prices = nil
	}

	results := make([]model.AssetResult, 0, len(s.coins))
	var resMu sync.Mutex
	sem := make(chan struct{}, maxParallelAssets)
	var wg sync.WaitGroup

	for _, coin := range s.coins {
		select {
		case <-ctx.Done():
			log.Println("[WARN] scan cancelled, dropping remaining assets for this tick")
			wg.Wait()
			return results
		default:
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(coin watchlist.Coin) {
			defer wg.Done()
			defer func() { <-sem }()

			price, hasPrice := prices[coin.Symbol]
			res := s.processAsset(ctx, coin, price, hasPrice, start)

			resMu.Lock()
			results = append(results, res)
			resMu.Unlock()
		}(coin)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Symbol < results[j].Symbol })

	emitted := 0
	for _, r := range results {
		if r.Emit {
			emitted++
		}
	}
	s.mu.Lock()
	s.lastScan = start
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ScansTotal.Inc()
		s.metrics.ScanDuration.Observe(time.Since(start).Seconds())
	}
	log.Printf("[INFO] scan completed: %d assets, %d alerts, %v", len(results), emitted, time.Since(start).Round(time.Millisecond))
	return results
}

func (s *Scanner) processAsset(ctx context.Context, coin watchlist.Coin, price float64, hasPrice bool, now time.Time) model.AssetResult {
	res := model.AssetResult{Symbol: coin.Symbol, Price: price, ScannedAt: now}
	if s.metrics != nil {
		s.metrics.AssetsScanned.Inc()
	}

	buf := s.buffer(coin.Symbol)

	candles, err := s.fetcher.FetchCandles(coin.Symbol)
	if err != nil {
		// Stale but consistent: score from whatever the buffer already holds.
		log.Printf("[WARN] fetch candles %s: %v", coin.Symbol, err)
		s.countFetchError("candles")
	} else if len(candles) > 0 {
		buf.AppendAll(candles)
	}

	res.PumpDump = model.PumpDumpFlag{Direction: model.DirNone}
	if hasPrice {
		res.PumpDump = s.detector.Observe(model.PriceTick{Symbol: coin.Symbol, Price: price, At: now})
	}

	res.Snapshot = calculator.Compute(buf)
	res.Signal = strategy.Evaluate(&res.Snapshot, res.PumpDump, s.stratCfg)

	emit, _, err := s.gate.Evaluate(ctx, coin.Symbol, res.Signal.Call, res.Signal.Score, now)
	if err != nil {
		log.Printf("[ERROR] alert gate %s: %v", coin.Symbol, err)
		if s.metrics != nil {
			s.metrics.StoreErrors.Inc()
		}
		return res
	}
	res.Emit = emit

	if emit {
		if s.metrics != nil {
			s.metrics.AlertsEmitted.WithLabelValues(string(res.Signal.Call)).Inc()
		}
		msg := notifier.FormatAlert(&res, s.names[coin.Symbol])
		if err := s.notify.SendWithRetry(ctx, msg, 3); err != nil {
			log.Printf("[ERROR] send alert %s: %v", coin.Symbol, err)
			if s.metrics != nil {
				s.metrics.NotifyErrors.Inc()
			}
		}
	} else if res.Signal.Call != model.Hold {
		if s.metrics != nil {
			s.metrics.AlertsSuppressed.Inc()
		}
	}
	return res
}

// buffer returns the asset's series buffer, creating it on first sighting.
// Buffers live for the process lifetime.
func (s *Scanner) buffer(symbol string) *series.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buffers[symbol]
	if !ok {
		b = series.NewBuffer(symbol, s.maxWindow)
		s.buffers[symbol] = b
	}
	return b
}

// Status describes the scanner for the /status command and the health
// endpoint.
type Status struct {
	Watched  int       `json:"watched"`
	Buffers  int       `json:"buffers"`
	LastScan time.Time `json:"last_scan"`
}

// Status returns a snapshot of the scanner's state.
func (s *Scanner) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{Watched: len(s.coins), Buffers: len(s.buffers), LastScan: s.lastScan}
}

func (s *Scanner) countFetchError(source string) {
	if s.metrics != nil {
		s.metrics.FetchErrors.WithLabelValues(source).Inc()
	}
}
