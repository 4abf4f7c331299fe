package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the journal.
type Config struct {
	DBPath           string        `env:"TJ_DB_PATH" envDefault:"trades.db"`
	LogLevel         string        `env:"TJ_LOG_LEVEL" envDefault:"info"`
	BinanceBaseURL   string        `env:"TJ_BINANCE_BASE_URL" envDefault:"https://api.binance.com"`
	TickerInterval   time.Duration `env:"TJ_TICKER_INTERVAL" envDefault:"30s"`
	Symbols          []string      `env:"TJ_SYMBOLS" envSeparator:"," envDefault:"BTCUSDT,ETHUSDT,XRPUSDT,DOGEUSDT,ADAUSDT,SOLUSDT,DOTUSDT,LINKUSDT"`
	TimeLayout       string        `env:"TJ_TIME_LAYOUT" envDefault:"15:04:05"`
	Currency         string        `env:"TJ_CURRENCY" envDefault:"KRW"`
	GeminiAPIKey     string        `env:"GEMINI_API_KEY"`
	GeminiModel      string        `env:"TJ_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	AnalysisCacheTTL time.Duration `env:"TJ_ANALYSIS_CACHE_TTL" envDefault:"10m"`
}

// Load reads an optional .env file and parses the environment.
func Load() (Config, error) {
	// A missing .env file is fine, the environment may be set already.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.Symbols = NormalizeSymbols(cfg.Symbols)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the journal cannot run with.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("TJ_DB_PATH must not be empty")
	}
	if c.TickerInterval <= 0 {
		return fmt.Errorf("TJ_TICKER_INTERVAL must be positive, got %s", c.TickerInterval)
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("TJ_SYMBOLS must list at least one symbol")
	}
	seen := make(map[string]bool, len(c.Symbols))
	for _, s := range c.Symbols {
		if s == "" {
			return fmt.Errorf("TJ_SYMBOLS contains an empty symbol")
		}
		if s != strings.ToUpper(strings.TrimSpace(s)) {
			return fmt.Errorf("TJ_SYMBOLS entry %q must be upper case without spaces", s)
		}
		if seen[s] {
			return fmt.Errorf("TJ_SYMBOLS lists %s twice", s)
		}
		seen[s] = true
	}
	return nil
}

// NormalizeSymbols trims and upper-cases exchange symbols.
func NormalizeSymbols(symbols []string) []string {
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = strings.ToUpper(strings.TrimSpace(s))
	}
	return out
}
