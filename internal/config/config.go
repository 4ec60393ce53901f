package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"StockWatch/internal/model"

	"gopkg.in/yaml.v3"
)

// Supported data providers.
const (
	ProviderYahoo = "yahoo"
	ProviderREST  = "rest"
	ProviderMock  = "mock"
)

// Supported cache backends.
const (
	CacheMemory = "memory"
	CacheSQLite = "sqlite"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider    string        `yaml:"provider"`
		BaseURL     string        `yaml:"base_url"`
		APIKey      string        `yaml:"api_key"`
		Period      string        `yaml:"period"`
		Timeout     time.Duration `yaml:"timeout"`
		Concurrency int           `yaml:"concurrency"`
	} `yaml:"data_source"`
	Watchlist struct {
		Seed []string `yaml:"seed"`
	} `yaml:"watchlist"`
	Cache struct {
		Backend       string        `yaml:"backend"`
		TTL           time.Duration `yaml:"ttl"`
		SQLitePath    string        `yaml:"sqlite_path"`
		RedisAddr     string        `yaml:"redis_addr"`
		RedisPassword string        `yaml:"redis_password"`
		RedisDB       int           `yaml:"redis_db"`
	} `yaml:"cache"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		DigestCron  string `yaml:"digest_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
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
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Watchlist.Seed = strings.Split(v, ",")
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = d
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Cache.RedisPassword = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.RedisDB = n
		}
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("CRON_DIGEST"); v != "" {
		cfg.Schedule.DigestCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = ProviderYahoo
	}
	if cfg.DataSource.Period == "" {
		cfg.DataSource.Period = string(model.DefaultPeriod)
	}
	if cfg.DataSource.Timeout == 0 {
		cfg.DataSource.Timeout = 10 * time.Second
	}
	if cfg.DataSource.Concurrency == 0 {
		cfg.DataSource.Concurrency = 4
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = CacheMemory
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = time.Hour
	}
	if cfg.Cache.SQLitePath == "" {
		cfg.Cache.SQLitePath = ":memory:"
	}
	if cfg.Cache.RedisAddr == "" {
		cfg.Cache.RedisAddr = "localhost:6379"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */30 9-16 * * 1-5"
	}
	if cfg.Schedule.DigestCron == "" {
		cfg.Schedule.DigestCron = "0 5 16 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values. Telegram credentials
// are only required by the bot, see ValidateTelegram.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case ProviderYahoo, ProviderMock:
	case ProviderREST:
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for provider %q", ProviderREST)
		}
	default:
		return fmt.Errorf("data_source.provider %q is not one of yahoo, rest, mock", c.DataSource.Provider)
	}
	if !model.Period(c.DataSource.Period).Valid() {
		return fmt.Errorf("data_source.period %q is not supported", c.DataSource.Period)
	}
	if c.DataSource.Timeout < 0 {
		return fmt.Errorf("data_source.timeout must not be negative")
	}
	if c.DataSource.Concurrency < 0 {
		return fmt.Errorf("data_source.concurrency must not be negative")
	}
	switch c.Cache.Backend {
	case CacheMemory, CacheSQLite, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("cache.backend %q is not one of memory, sqlite, redis, none", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	return nil
}

// ValidateTelegram checks the bot credentials.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
