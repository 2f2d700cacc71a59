package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/thanesh002/Crypto-Note/internal/alert"
	"github.com/thanesh002/Crypto-Note/internal/collector"
	"github.com/thanesh002/Crypto-Note/internal/metrics"
	"github.com/thanesh002/Crypto-Note/internal/model"
	"github.com/thanesh002/Crypto-Note/internal/notifier"
	"github.com/thanesh002/Crypto-Note/internal/pumpdump"
	"github.com/thanesh002/Crypto-Note/internal/strategy"
	"github.com/thanesh002/Crypto-Note/internal/watchlist"
)

// failingNotifier rejects every send.
type failingNotifier struct{}

func (failingNotifier) Send(string) error { return errors.New("telegram down") }
func (failingNotifier) SendWithRetry(context.Context, string, int) error {
	return errors.New("telegram down")
}

func newTestScanner(fetcher collector.Fetcher, store alert.StateStore, coins []watchlist.Coin) *Scanner {
	gate := alert.NewGate(store, 5*time.Minute)
	detector := pumpdump.New(5*time.Minute, 2.0)
	return New(fetcher, detector, gate, notifier.Noop{}, nil, coins, strategy.DefaultConfig(), 0)
}

func TestScanOnce_RisingMarketEmitsBuy(t *testing.T) {
	base := time.Now().UTC().Truncate(time.Hour)
	fetcher := &collector.MockFetcher{
		PriceBySymbol: map[string]float64{"BTC": 160},
		CandlesBySymbol: map[string][]model.Candle{
			"BTC": collector.GenerateCandles(base, 60, func(i int) float64 { return 100 + float64(i) }),
		},
	}
	store := alert.NewMemoryStore()
	coins := []watchlist.Coin{{Symbol: "BTC", Name: "Bitcoin"}}
	sc := newTestScanner(fetcher, store, coins)

	results := sc.ScanOnce(context.Background())
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	res := results[0]
	if res.Signal.Call != model.Buy {
		t.Errorf("call = %s (score %.4f), want BUY", res.Signal.Call, res.Signal.Score)
	}
	if !res.Emit {
		t.Error("first non-HOLD call must emit")
	}
	if res.Signal.Confidence != model.ConfidenceFull {
		t.Errorf("confidence = %s, want full", res.Signal.Confidence)
	}

	// Same tape again inside the cooldown: recorded but suppressed.
	results = sc.ScanOnce(context.Background())
	if results[0].Emit {
		t.Error("repeat call within the cooldown must be suppressed")
	}
	if hist := store.History(); len(hist) != 1 {
		t.Errorf("expected 1 alert in history, got %d", len(hist))
	}
}

func TestScanOnce_PriceFeedDownStillScoresCandles(t *testing.T) {
	base := time.Now().UTC().Truncate(time.Hour)
	fetcher := &collector.MockFetcher{
		PricesErr: errors.New("coinlore down"),
		CandlesBySymbol: map[string][]model.Candle{
			"BTC": collector.GenerateCandles(base, 60, func(i int) float64 { return 100 + float64(i) }),
		},
	}
	store := alert.NewMemoryStore()
	sc := newTestScanner(fetcher, store, []watchlist.Coin{{Symbol: "BTC", Name: "Bitcoin"}})

	results := sc.ScanOnce(context.Background())
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].PumpDump.Direction != model.DirNone {
		t.Errorf("no price means no pump/dump, got %s", results[0].PumpDump.Direction)
	}
	if results[0].Signal.Call != model.Buy {
		t.Errorf("candle indicators must still score: %s", results[0].Signal.Call)
	}
}

func TestScanOnce_CandleFeedDownKeepsStaleBuffer(t *testing.T) {
	base := time.Now().UTC().Truncate(time.Hour)
	candles := collector.GenerateCandles(base, 60, func(i int) float64 { return 100 + float64(i) })
	fetcher := &collector.MockFetcher{
		PriceBySymbol:   map[string]float64{"BTC": 160},
		CandlesBySymbol: map[string][]model.Candle{"BTC": candles},
	}
	store := alert.NewMemoryStore()
	sc := newTestScanner(fetcher, store, []watchlist.Coin{{Symbol: "BTC", Name: "Bitcoin"}})

	sc.ScanOnce(context.Background())

	// The feed dies: the next scan scores the buffer it already has.
	fetcher.CandlesErr = errors.New("coingecko down")
	results := sc.ScanOnce(context.Background())
	if results[0].Signal.Call != model.Buy {
		t.Errorf("stale buffer must still score BUY, got %s", results[0].Signal.Call)
	}
	if results[0].Snapshot.AvailableCount() == 0 {
		t.Error("stale buffer lost its indicators")
	}
}

func TestScanOnce_ColdAssetHolds(t *testing.T) {
	fetcher := &collector.MockFetcher{
		PriceBySymbol: map[string]float64{"DOGE": 0.1},
	}
	store := alert.NewMemoryStore()
	sc := newTestScanner(fetcher, store, []watchlist.Coin{{Symbol: "DOGE", Name: "Dogecoin"}})

	results := sc.ScanOnce(context.Background())
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Signal.Call != model.Hold {
		t.Errorf("no data at all must be HOLD, got %s", results[0].Signal.Call)
	}
	if results[0].Emit {
		t.Error("HOLD must not emit")
	}
	// The evaluation is still recorded for /top.
	if _, found, _ := store.Get(context.Background(), "DOGE"); !found {
		t.Error("cold-asset evaluation must still be recorded")
	}
}

func TestScanOnce_NotifyFailureIsCounted(t *testing.T) {
	base := time.Now().UTC().Truncate(time.Hour)
	fetcher := &collector.MockFetcher{
		PriceBySymbol: map[string]float64{"BTC": 160},
		CandlesBySymbol: map[string][]model.Candle{
			"BTC": collector.GenerateCandles(base, 60, func(i int) float64 { return 100 + float64(i) }),
		},
	}
	store := alert.NewMemoryStore()
	m, _ := metrics.New()
	sc := New(fetcher, pumpdump.New(0, 0), alert.NewGate(store, 0), failingNotifier{},
		m, []watchlist.Coin{{Symbol: "BTC", Name: "Bitcoin"}}, strategy.DefaultConfig(), 0)

	results := sc.ScanOnce(context.Background())
	if !results[0].Emit {
		t.Fatal("delivery failure must not suppress the emit decision")
	}
	if got := testutil.ToFloat64(m.NotifyErrors); got != 1 {
		t.Errorf("notify errors = %.0f, want 1", got)
	}
	// The alert is still in history even though delivery failed.
	if hist := store.History(); len(hist) != 1 {
		t.Errorf("expected 1 history row, got %d", len(hist))
	}
}

func TestScanOnce_ResultsSortedBySymbol(t *testing.T) {
	fetcher := &collector.MockFetcher{
		PriceBySymbol: map[string]float64{"ETH": 3000, "ADA": 0.5, "BTC": 60000},
	}
	store := alert.NewMemoryStore()
	coins := []watchlist.Coin{
		{Symbol: "ETH"}, {Symbol: "ADA"}, {Symbol: "BTC"},
	}
	sc := newTestScanner(fetcher, store, coins)

	results := sc.ScanOnce(context.Background())
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	want := []string{"ADA", "BTC", "ETH"}
	for i, r := range results {
		if r.Symbol != want[i] {
			t.Errorf("results[%d] = %s, want %s", i, r.Symbol, want[i])
		}
	}

	st := sc.Status()
	if st.Watched != 3 || st.Buffers != 3 {
		t.Errorf("status = %+v", st)
	}
	if st.LastScan.IsZero() {
		t.Error("LastScan not stamped")
	}
}
