package config

import "time"

// Config holds runtime settings for the bcard CLI.
//
// Fields:
//   - APIBaseURL: root of the business-card REST API (no trailing slash needed).
//   - StoragePath: SQLite file that persists the session token.
//   - OnlineCheckInterval: how often the client probes API reachability.
//   - RequestTimeout: per-request HTTP timeout.
//   - CardCacheTTL: lifetime of the local card replica entries.
//   - PageSize: cards per listing page.
//   - RequestsPerSecond / RequestBurst: client-side request pacing.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL          string        `env:"BCARD_API_URL"`
	StoragePath         string        `env:"BCARD_STORAGE_PATH"`
	OnlineCheckInterval time.Duration `env:"BCARD_ONLINE_CHECK_INTERVAL"`
	RequestTimeout      time.Duration `env:"BCARD_REQUEST_TIMEOUT"`
	CardCacheTTL        time.Duration `env:"BCARD_CARD_CACHE_TTL"`
	PageSize            int           `env:"BCARD_PAGE_SIZE"`
	RequestsPerSecond   float64       `env:"BCARD_REQUESTS_PER_SECOND"`
	RequestBurst        int           `env:"BCARD_REQUEST_BURST"`
	LogLevel            string        `env:"BCARD_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://monkfish-app-z9uza.ondigitalocean.app/bcard2"
	c.StoragePath = "bcard.db"
	c.OnlineCheckInterval = 10 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.CardCacheTTL = 5 * time.Minute
	c.PageSize = 6
	c.RequestsPerSecond = 5
	c.RequestBurst = 10
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment, and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
