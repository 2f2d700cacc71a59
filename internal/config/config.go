package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/thanesh002/Crypto-Note/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Watchlist struct {
		Path        string `yaml:"path"`
		MappingPath string `yaml:"mapping_path"`
	} `yaml:"watchlist"`
	DataSource struct {
		CoinLoreBase  string `yaml:"coinlore_base"`
		CoinGeckoBase string `yaml:"coingecko_base"`
		CandleDays    int    `yaml:"candle_days"`
	} `yaml:"data_source"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Strategy StrategyOverrides `yaml:"strategy"`
	Alerts   struct {
		CooldownSeconds int `yaml:"cooldown_seconds"`
	} `yaml:"alerts"`
	PumpDump struct {
		IntervalSeconds  int     `yaml:"interval_seconds"`
		ThresholdPercent float64 `yaml:"threshold_percent"`
	} `yaml:"pump_dump"`
	Series struct {
		MaxWindow int `yaml:"max_window"`
	} `yaml:"series"`
	Database struct {
		Backend    string `yaml:"backend"` // sqlite | redis | memory
		SQLitePath string `yaml:"sqlite_path"`
		RedisAddr  string `yaml:"redis_addr"`
		RedisPass  string `yaml:"redis_pass"`
		RedisDB    int    `yaml:"redis_db"`
	} `yaml:"database"`
	API struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"api"`
	Proxy string `yaml:"proxy"`
}

// StrategyOverrides mirrors strategy.Config with optional fields, so an
// explicit zero (say, disabling a factor weight) is distinguishable from an
// omitted one.
type StrategyOverrides struct {
	Weights struct {
		RSI       *float64 `yaml:"rsi"`
		EMACross  *float64 `yaml:"ema_cross"`
		MACD      *float64 `yaml:"macd"`
		SMATrend  *float64 `yaml:"sma_trend"`
		Engulfing *float64 `yaml:"engulfing"`
		Hammer    *float64 `yaml:"hammer"`
		PumpDump  *float64 `yaml:"pump_dump"`
	} `yaml:"weights"`
	Thresholds struct {
		StrongBuy  *float64 `yaml:"strong_buy"`
		Buy        *float64 `yaml:"buy"`
		Sell       *float64 `yaml:"sell"`
		StrongSell *float64 `yaml:"strong_sell"`
	} `yaml:"thresholds"`
	VolumeSpikeMultiplier *float64 `yaml:"volume_spike_multiplier"`
	VolumeBoost           *float64 `yaml:"volume_boost"`
}

// StrategyConfig resolves the overrides on top of the stock strategy
// defaults.
func (c *Config) StrategyConfig() strategy.Config {
	out := strategy.DefaultConfig()
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	w, o := &out.Weights, c.Strategy.Weights
	set(&w.RSI, o.RSI)
	set(&w.EMACross, o.EMACross)
	set(&w.MACD, o.MACD)
	set(&w.SMATrend, o.SMATrend)
	set(&w.Engulfing, o.Engulfing)
	set(&w.Hammer, o.Hammer)
	set(&w.PumpDump, o.PumpDump)
	t, ot := &out.Thresholds, c.Strategy.Thresholds
	set(&t.StrongBuy, ot.StrongBuy)
	set(&t.Buy, ot.Buy)
	set(&t.Sell, ot.Sell)
	set(&t.StrongSell, ot.StrongSell)
	set(&out.VolumeSpikeMultiplier, c.Strategy.VolumeSpikeMultiplier)
	set(&out.VolumeBoost, c.Strategy.VolumeBoost)
	return out
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("COIN_LIST_PATH"); v != "" {
		cfg.Watchlist.Path = v
	}
	if v := os.Getenv("CG_MAP_PATH"); v != "" {
		cfg.Watchlist.MappingPath = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("ALERT_COOLDOWN_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Alerts.CooldownSeconds = n
		}
	}
	if v := os.Getenv("THRESHOLD_PERCENT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.PumpDump.ThresholdPercent = f
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Database.RedisAddr = v
		if cfg.Database.Backend == "" {
			cfg.Database.Backend = "redis"
		}
	}
	if v := os.Getenv("API_LISTEN_ADDR"); v != "" {
		cfg.API.ListenAddr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Watchlist.Path == "" {
		cfg.Watchlist.Path = "configs/coinlist.csv"
	}
	if cfg.Watchlist.MappingPath == "" {
		cfg.Watchlist.MappingPath = "configs/coingecko_mapping.csv"
	}
	if cfg.DataSource.CandleDays == 0 {
		cfg.DataSource.CandleDays = 7
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "@every 5m"
	}
	if cfg.Alerts.CooldownSeconds == 0 {
		cfg.Alerts.CooldownSeconds = 300
	}
	if cfg.PumpDump.IntervalSeconds == 0 {
		cfg.PumpDump.IntervalSeconds = 300
	}
	if cfg.PumpDump.ThresholdPercent == 0 {
		cfg.PumpDump.ThresholdPercent = 2.0
	}
	if cfg.Series.MaxWindow == 0 {
		cfg.Series.MaxWindow = 1440
	}
	if cfg.Database.Backend == "" {
		cfg.Database.Backend = "sqlite"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/crypto_note.db"
	}
	if cfg.API.ListenAddr == "" {
		cfg.API.ListenAddr = ":8000"
	}
}

// Validate checks that all required fields are set and coherent.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Watchlist.Path == "" {
		return fmt.Errorf("watchlist.path is required")
	}
	switch c.Database.Backend {
	case "sqlite", "memory":
	case "redis":
		if c.Database.RedisAddr == "" {
			return fmt.Errorf("database.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("database.backend must be sqlite, redis or memory, got %q", c.Database.Backend)
	}
	t := c.StrategyConfig().Thresholds
	if !(t.StrongSell <= t.Sell && t.Sell < t.Buy && t.Buy <= t.StrongBuy) {
		return fmt.Errorf("strategy.thresholds must be ordered strong_sell <= sell < buy <= strong_buy")
	}
	return nil
}
