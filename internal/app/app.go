// Package app builds the dashboard service from configuration. Both
// binaries share it.
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"StockWatch/internal/cache"
	"StockWatch/internal/collector"
	"StockWatch/internal/config"
	"StockWatch/internal/dashboard"
	"StockWatch/internal/model"
	"StockWatch/internal/watchlist"

	"github.com/joho/godotenv"
)

const defaultConfigPath = "configs/config.yaml"

// LoadConfig reads .env (if any), then the YAML config named by CONFIG_PATH,
// and validates it.
func LoadConfig() (*config.Config, error) {
	// .env is optional
	_ = godotenv.Load(".env")

	cfgPath := defaultConfigPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// NewFetcher returns the data provider named in the config.
func NewFetcher(cfg *config.Config) collector.Fetcher {
	switch cfg.DataSource.Provider {
	case config.ProviderREST:
		return collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, cfg.DataSource.Timeout)
	case config.ProviderMock:
		return collector.DemoFetcher()
	default:
		return collector.NewYahooFetcher(cfg.Proxy, cfg.DataSource.Timeout)
	}
}

// NewStore opens the configured cache backend. A backend that cannot be
// opened falls back to the in-memory store.
func NewStore(ctx context.Context, cfg *config.Config) cache.Store {
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNoopStore()
	case config.CacheSQLite:
		s, err := cache.NewSQLiteStore(cfg.Cache.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite cache failed, using memory: %v", err)
			return cache.NewMemoryStore()
		}
		return s
	case config.CacheRedis:
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		s, err := cache.NewRedisStore(pingCtx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			log.Printf("[WARN] redis not available, using memory: %v", err)
			return cache.NewMemoryStore()
		}
		log.Printf("[INFO] redis cache connected: %s", cfg.Cache.RedisAddr)
		return s
	default:
		return cache.NewMemoryStore()
	}
}

// NewService wires fetcher, pipeline, validator and cache. The caller owns
// the returned cache and must Close it.
func NewService(ctx context.Context, cfg *config.Config) (*dashboard.Service, *cache.Cache) {
	fetcher := NewFetcher(cfg)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	c := cache.New(NewStore(ctx, cfg), cfg.Cache.TTL)
	svc := dashboard.New(
		watchlist.NewPipeline(fetcher, cfg.DataSource.Timeout, cfg.DataSource.Concurrency),
		watchlist.NewValidator(fetcher, cfg.DataSource.Timeout),
		c,
		model.Period(cfg.DataSource.Period),
	)
	return svc, c
}

// NewSession seeds a session from the config, or the default watchlist.
func NewSession(cfg *config.Config) *watchlist.Session {
	if len(cfg.Watchlist.Seed) > 0 {
		return watchlist.NewSession(cfg.Watchlist.Seed...)
	}
	return watchlist.NewSession(watchlist.DefaultSeed...)
}
