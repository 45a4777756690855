// Package config loads geokit configuration from defaults, an optional YAML
// file, a .env file and GEOKIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/NERVsystems/geokit/pkg/version"
)

// Config holds all application configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Nominatim NominatimConfig `mapstructure:"nominatim"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Cities    CitiesConfig    `mapstructure:"cities"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type NominatimConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Language  string        `mapstructure:"language"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RPS       float64       `mapstructure:"rps"`
	Burst     int           `mapstructure:"burst"`
}

type CacheConfig struct {
	Size       int           `mapstructure:"size"`
	TTL        time.Duration `mapstructure:"ttl"`
	ValkeyAddr string        `mapstructure:"valkey_addr"`
}

type CitiesConfig struct {
	// Path to a GeoJSON FeatureCollection of city boundaries. Empty disables
	// the point_to_city tool.
	Path         string `mapstructure:"path"`
	NameProperty string `mapstructure:"name_property"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration. path names an explicit config file; when empty,
// geokit.yaml is looked up in the working directory and ./configs.
func Load(path string) (*Config, error) {
	// A missing .env is fine; a malformed one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("nominatim.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("nominatim.user_agent", version.UserAgent())
	v.SetDefault("nominatim.language", "en")
	v.SetDefault("nominatim.timeout", 10*time.Second)
	v.SetDefault("nominatim.rps", 1.0)
	v.SetDefault("nominatim.burst", 1)
	v.SetDefault("cache.size", 1000)
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("cache.valkey_addr", "")
	v.SetDefault("cities.path", "")
	v.SetDefault("cities.name_property", "name")
	v.SetDefault("metrics.addr", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("geokit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// GEOKIT_NOMINATIM_BASE_URL → nominatim.base_url
	v.SetEnvPrefix("GEOKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if u, err := url.Parse(c.Nominatim.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("nominatim.base_url must be an absolute URL, got %q", c.Nominatim.BaseURL))
	}
	if strings.TrimSpace(c.Nominatim.UserAgent) == "" {
		errs = append(errs, "nominatim.user_agent is required")
	}
	if c.Nominatim.Timeout <= 0 {
		errs = append(errs, "nominatim.timeout must be positive")
	}
	if c.Nominatim.RPS <= 0 {
		errs = append(errs, "nominatim.rps must be positive")
	}
	if c.Nominatim.Burst < 1 {
		errs = append(errs, "nominatim.burst must be at least 1")
	}
	if c.Cache.Size < 0 {
		errs = append(errs, fmt.Sprintf("cache.size must not be negative, got %d", c.Cache.Size))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, "cache.ttl must not be negative")
	}
	if c.Cities.Path != "" && c.Cities.NameProperty == "" {
		errs = append(errs, "cities.name_property is required when cities.path is set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
