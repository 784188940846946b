package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
)

// Config is the on-disk configuration, stored as TOML in the hledej
// config directory.
type Config struct {
	Search  SearchConfig  `toml:"search"`
	Backend BackendConfig `toml:"backend"`
	Storage StorageConfig `toml:"storage"`
}

// SearchConfig tunes the search pipeline.
type SearchConfig struct {
	// DebounceMs is the typing debounce in milliseconds.
	DebounceMs int `toml:"debounce_ms"`
	// ProviderTimeoutMs bounds each source branch, in milliseconds.
	ProviderTimeoutMs int `toml:"provider_timeout_ms"`
	// CacheTTLSeconds is how long ranked result sets stay cached.
	CacheTTLSeconds int `toml:"cache_ttl_seconds"`
	// CacheCapacity caps the number of cached result sets.
	CacheCapacity int `toml:"cache_capacity"`
	// Limit is the default result cap per search.
	Limit int `toml:"limit"`
	// Sources lists the enabled source kinds. Empty means all.
	Sources []string `toml:"sources"`
}

// BackendConfig points at the external services.
type BackendConfig struct {
	// URL is the base URL of the rideshare backend API.
	URL string `toml:"url"`
	// GeocodeURL is the base URL of the place autocomplete service.
	// Empty falls back to the built-in city list.
	GeocodeURL string `toml:"geocode_url"`
	// PopularFile is a local TOML file of popular destinations, used
	// instead of the backend feed when set.
	PopularFile string `toml:"popular_file"`
}

// StorageConfig selects where search history lives.
type StorageConfig struct {
	// History is "memory" or "sqlite".
	History string `toml:"history"`
	// DataDir overrides the default ~/.hledej/data directory.
	DataDir string `toml:"data_dir"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Search: SearchConfig{
			DebounceMs:        300,
			ProviderTimeoutMs: 5000,
			CacheTTLSeconds:   60,
			CacheCapacity:     128,
			Limit:             domain.DefaultResultLimit,
		},
		Backend: BackendConfig{
			URL: "http://localhost:5000",
		},
		Storage: StorageConfig{
			History: "sqlite",
		},
	}
}

// Load reads the config file at path, or ~/.hledej/config.toml when path
// is empty. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, err
		}
		path = filepath.Join(home, ".hledej", "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

// Save writes the config to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func (c Config) validate() error {
	if c.Search.DebounceMs < 0 {
		return fmt.Errorf("search.debounce_ms must not be negative")
	}
	if c.Search.ProviderTimeoutMs <= 0 {
		return fmt.Errorf("search.provider_timeout_ms must be positive")
	}
	switch c.Storage.History {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("storage.history must be %q or %q, got %q", "memory", "sqlite", c.Storage.History)
	}
	if _, err := c.SourceSet(); err != nil {
		return err
	}
	return nil
}

// Debounce returns the typing debounce as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMs) * time.Millisecond
}

// ProviderTimeout returns the per-source timeout as a duration.
func (c Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Search.ProviderTimeoutMs) * time.Millisecond
}

// CacheTTL returns the cache entry lifetime as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Search.CacheTTLSeconds) * time.Second
}

// SourceSet resolves the configured source names. An empty list means
// all sources.
func (c Config) SourceSet() (domain.SourceSet, error) {
	if len(c.Search.Sources) == 0 {
		return domain.AllSources, nil
	}

	kinds := make([]domain.SourceKind, 0, len(c.Search.Sources))
	for _, name := range c.Search.Sources {
		kind, err := domain.ParseSourceKind(name)
		if err != nil {
			return 0, fmt.Errorf("search.sources: %w", err)
		}
		kinds = append(kinds, kind)
	}
	return domain.NewSourceSet(kinds...), nil
}
