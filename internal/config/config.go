package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API       APIConfig
	Favorites FavoritesConfig
	Carousel  CarouselConfig
	Storage   StorageConfig
	Log       LogConfig
}

// APIConfig holds the catalog endpoint settings.
type APIConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// FavoritesConfig holds the shortlist size and the key it is stored under.
type FavoritesConfig struct {
	Size int
	Key  string
}

// CarouselConfig holds load window sizing.
type CarouselConfig struct {
	Proximity   int
	InitialSpan int `mapstructure:"initial_span"`
	Evict       bool
}

// StorageConfig selects the favorites persistence backend.
type StorageConfig struct {
	Backend    string // sqlite, file or memory
	Path       string
	Migrations string // empty uses the embedded migrations
}

// LogConfig holds logrus settings.
type LogConfig struct {
	Path  string
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix ARTGALLERY_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("ARTGALLERY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Default returns the configuration used when no file or env overrides exist.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

func setDefaults(v *viper.Viper) {
	home := os.Getenv("HOME")
	v.SetDefault("api.endpoint", "https://art-gallery-api.doyoonsung.workers.dev/")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("favorites.size", 10)
	v.SetDefault("favorites.key", "art-favorites")
	v.SetDefault("carousel.proximity", 4)
	v.SetDefault("carousel.initial_span", 5)
	v.SetDefault("carousel.evict", false)
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.path", filepath.Join(home, ".local", "share", "artgallery", "artgallery.db"))
	v.SetDefault("storage.migrations", "")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "artgallery", "artgallery.log"))
	v.SetDefault("log.level", "info")
}

// Validate rejects settings the rest of the app cannot work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.Endpoint) == "" {
		return fmt.Errorf("config: api.endpoint is empty")
	}
	if c.Favorites.Size < 1 {
		return fmt.Errorf("config: favorites.size must be at least 1, got %d", c.Favorites.Size)
	}
	if c.Favorites.Key == "" {
		return fmt.Errorf("config: favorites.key is empty")
	}
	if c.Carousel.Proximity < 0 || c.Carousel.InitialSpan < 0 {
		return fmt.Errorf("config: carousel sizes must not be negative")
	}
	switch c.Storage.Backend {
	case "sqlite", "file", "memory":
	default:
		return fmt.Errorf("config: unknown storage.backend %q", c.Storage.Backend)
	}
	return nil
}

// Path returns the config file location, honoring ARTGALLERY_CONFIG.
func Path() string {
	if p := os.Getenv("ARTGALLERY_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "artgallery", "config.toml")
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.endpoint", cfg.API.Endpoint)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("favorites.size", cfg.Favorites.Size)
	v.Set("favorites.key", cfg.Favorites.Key)
	v.Set("carousel.proximity", cfg.Carousel.Proximity)
	v.Set("carousel.initial_span", cfg.Carousel.InitialSpan)
	v.Set("carousel.evict", cfg.Carousel.Evict)
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("storage.migrations", cfg.Storage.Migrations)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
