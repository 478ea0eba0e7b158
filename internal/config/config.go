// Package config loads the client settings shared by the gateway and the CLI.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/DjordjeVuckovic/title-hunter/internal/cache"
	"github.com/DjordjeVuckovic/title-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/title-hunter/pkg/config/env"
	"github.com/DjordjeVuckovic/title-hunter/pkg/pagination"
)

type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Browse  BrowseConfig  `yaml:"browse"`
	Log     LogConfig     `yaml:"log"`
}

type CatalogConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type BrowseConfig struct {
	PageSize     int           `yaml:"page_size"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	SuggestTTL   time.Duration `yaml:"suggest_ttl"`
	CacheCleanup time.Duration `yaml:"cache_cleanup"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL: catalog.DefaultBaseURL,
			Timeout: catalog.DefaultTimeout,
		},
		Browse: BrowseConfig{
			PageSize:     pagination.PageDefaultSize,
			CacheTTL:     time.Minute,
			SuggestTTL:   30 * time.Second,
			CacheCleanup: 10 * time.Minute,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path, when given, over the defaults and then
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config YAML: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Catalog.BaseURL = env.String("CATALOG_API_BASE", c.Catalog.BaseURL)
	c.Log.Level = env.String("LOG_LEVEL", c.Log.Level)

	var err error
	if c.Catalog.Timeout, err = env.Duration("CATALOG_TIMEOUT", c.Catalog.Timeout); err != nil {
		return err
	}
	if c.Browse.PageSize, err = env.Int("BROWSE_PAGE_SIZE", c.Browse.PageSize); err != nil {
		return err
	}
	if c.Browse.CacheTTL, err = env.Duration("BROWSE_CACHE_TTL", c.Browse.CacheTTL); err != nil {
		return err
	}
	return nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Catalog.BaseURL) == "" {
		return fmt.Errorf("catalog base url is empty")
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog timeout must be positive, got %s", c.Catalog.Timeout)
	}
	if c.Browse.PageSize < 1 || c.Browse.PageSize > pagination.PageMaxSize {
		return fmt.Errorf("browse page size must be between 1 and %d, got %d", pagination.PageMaxSize, c.Browse.PageSize)
	}
	if c.Browse.CacheTTL <= 0 {
		return fmt.Errorf("browse cache ttl must be positive, got %s", c.Browse.CacheTTL)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// CacheConfig returns the response cache settings.
func (c *Config) CacheConfig() cache.Config {
	cfg := cache.Config{
		TTL:             c.Browse.CacheTTL,
		TTLs:            map[cache.Kind]time.Duration{cache.KindGenres: time.Hour},
		CleanupInterval: c.Browse.CacheCleanup,
	}
	if c.Browse.SuggestTTL > 0 {
		cfg.TTLs[cache.KindSuggest] = c.Browse.SuggestTTL
	}
	return cfg
}

// CatalogOptions returns the catalog client options for these settings.
func (c *Config) CatalogOptions(log *slog.Logger) []catalog.Option {
	return []catalog.Option{
		catalog.WithTimeout(c.Catalog.Timeout),
		catalog.WithUserAgent(c.Catalog.UserAgent),
		catalog.WithLogger(log),
	}
}

// SlogLevel returns the configured slog level.
func (l LogConfig) SlogLevel() slog.Level {
	level, _ := parseLevel(l.Level)
	return level
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", raw, err)
	}
	return level, nil
}
