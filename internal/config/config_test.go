package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "DATA_PROVIDER", "DATA_BASE_URL",
	"DATA_API_KEY", "WATCHLIST", "CACHE_BACKEND", "CACHE_TTL", "SQLITE_PATH",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CRON_REFRESH", "CRON_DIGEST",
	"HTTPS_PROXY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataSource.Provider != ProviderYahoo {
		t.Errorf("provider = %q", cfg.DataSource.Provider)
	}
	if cfg.DataSource.Period != "5d" {
		t.Errorf("period = %q", cfg.DataSource.Period)
	}
	if cfg.Cache.Backend != CacheMemory || cfg.Cache.TTL != time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.SQLitePath != ":memory:" {
		t.Errorf("sqlite_path = %q", cfg.Cache.SQLitePath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if err := cfg.ValidateTelegram(); err == nil {
		t.Error("expected missing telegram credentials to fail")
	}
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
data_source:
  provider: rest
  base_url: http://example.test
  period: 1mo
  timeout: 3s
  concurrency: 8
watchlist:
  seed: [AAPL, TSLA]
cache:
  backend: sqlite
  ttl: 15m
telegram:
  bot_token: file-token
  chat_id: "42"
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataSource.Provider != ProviderREST || cfg.DataSource.BaseURL != "http://example.test" {
		t.Errorf("data_source = %+v", cfg.DataSource)
	}
	if cfg.DataSource.Timeout != 3*time.Second || cfg.DataSource.Concurrency != 8 {
		t.Errorf("timeout/concurrency = %v/%d", cfg.DataSource.Timeout, cfg.DataSource.Concurrency)
	}
	if strings.Join(cfg.Watchlist.Seed, ",") != "AAPL,TSLA" {
		t.Errorf("seed = %v", cfg.Watchlist.Seed)
	}
	if cfg.Cache.TTL != 15*time.Minute || cfg.Cache.RedisDB != 3 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Telegram.BotToken != "env-token" || cfg.Telegram.ChatID != "42" {
		t.Errorf("telegram = %+v", cfg.Telegram)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	if _, err := Load(writeConfig(t, "data_source: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"unknown provider", func(c *Config) { c.DataSource.Provider = "bloomberg" }, "data_source.provider"},
		{"rest without url", func(c *Config) { c.DataSource.Provider = ProviderREST }, "base_url"},
		{"bad period", func(c *Config) { c.DataSource.Period = "7d" }, "data_source.period"},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }, "cache.backend"},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }, "cache.ttl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.errSub)
			}
		})
	}
}
