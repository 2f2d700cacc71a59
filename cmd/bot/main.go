package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thanesh002/Crypto-Note/internal/alert"
	"github.com/thanesh002/Crypto-Note/internal/api"
	"github.com/thanesh002/Crypto-Note/internal/collector"
	"github.com/thanesh002/Crypto-Note/internal/config"
	"github.com/thanesh002/Crypto-Note/internal/metrics"
	"github.com/thanesh002/Crypto-Note/internal/notifier"
	"github.com/thanesh002/Crypto-Note/internal/pumpdump"
	"github.com/thanesh002/Crypto-Note/internal/scanner"
	"github.com/thanesh002/Crypto-Note/internal/scheduler"
	"github.com/thanesh002/Crypto-Note/internal/watchlist"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] Crypto-Note starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Load watch-list and symbol mapping
	coins, err := watchlist.Load(cfg.Watchlist.Path)
	if err != nil {
		log.Fatalf("[FATAL] load watch-list: %v", err)
	}
	if len(coins) == 0 {
		log.Fatalf("[FATAL] watch-list %s is empty", cfg.Watchlist.Path)
	}
	mapping, err := watchlist.LoadMapping(cfg.Watchlist.MappingPath)
	if err != nil {
		log.Printf("[WARN] load mapping failed, candle indicators disabled: %v", err)
		mapping = map[string]string{}
	}
	log.Printf("[INFO] watching %d assets (%d with candle feeds)", len(coins), len(mapping))

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init fetcher
	coinlore := collector.NewCoinLoreClient(cfg.DataSource.CoinLoreBase, cfg.Proxy)
	coingecko := collector.NewCoinGeckoClient(cfg.DataSource.CoinGeckoBase, cfg.Proxy)
	coingecko.Days = cfg.DataSource.CandleDays
	fetcher := collector.NewMarketFetcher(coinlore, coingecko, mapping)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init alert state store
	var store alert.StateStore
	switch cfg.Database.Backend {
	case "redis":
		store, err = alert.NewRedisStore(ctx, cfg.Database.RedisAddr, cfg.Database.RedisPass, cfg.Database.RedisDB)
		if err != nil {
			log.Fatalf("[FATAL] init redis store: %v", err)
		}
	case "memory":
		store = alert.NewMemoryStore()
	default:
		store, err = alert.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Fatalf("[FATAL] init sqlite store: %v", err)
		}
	}
	defer store.Close()

	gate := alert.NewGate(store, time.Duration(cfg.Alerts.CooldownSeconds)*time.Second)

	// Init pump/dump detector
	detector := pumpdump.New(
		time.Duration(cfg.PumpDump.IntervalSeconds)*time.Second,
		cfg.PumpDump.ThresholdPercent,
	)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init metrics and scanner
	m, registry := metrics.New()
	sc := scanner.New(fetcher, detector, gate, tn, m, coins, cfg.StrategyConfig(), cfg.Series.MaxWindow)

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, sc, store)
	if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
		log.Fatalf("[FATAL] register scan task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// HTTP API (/health, /top, /metrics)
	srv := api.New(cfg.API.ListenAddr, store, sc, registry)
	go srv.Start()
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] http shutdown: %v", err)
		}
	}()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go sched.RunNow()
	}

	log.Println("[INFO] Crypto-Note is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] Crypto-Note stopped")
}
