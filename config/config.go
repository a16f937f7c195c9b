package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the enrichment run
type Config struct {
	HTTP          HTTPConfig
	OpenFoodFacts OpenFoodFactsConfig
	USDA          USDAConfig
	Lookup        LookupConfig
}

// HTTPConfig holds settings shared by both API clients
type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// OpenFoodFactsConfig holds OpenFoodFacts API configuration
type OpenFoodFactsConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	PageSize int    `mapstructure:"page_size"`
}

// USDAConfig holds USDA FoodData Central API configuration. An empty
// APIKey disables the USDA fallback entirely.
type USDAConfig struct {
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	PageSize int    `mapstructure:"page_size"`
}

// LookupConfig holds pipeline-level lookup behavior
type LookupConfig struct {
	Delay    time.Duration `mapstructure:"delay"`     // pause after each lookup
	CacheTTL time.Duration `mapstructure:"cache_ttl"` // in-run memo cache TTL
}

// Load loads configuration from environment variables and an optional
// config file
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("CALORIELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The USDA key keeps its historical unprefixed name, with the
	// prefixed form accepted as well.
	if err := v.BindEnv("usda.api_key", "USDA_API_KEY", "CALORIELENS_USDA_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding USDA key env: %w", err)
	}

	setDefaults(v)

	// Config file is optional - env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout", "10s")
	v.SetDefault("http.user_agent", "calorielens/0.1 (https://github.com/calorielens)")

	v.SetDefault("openfoodfacts.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("openfoodfacts.page_size", 5)

	v.SetDefault("usda.base_url", "https://api.nal.usda.gov/fdc")
	v.SetDefault("usda.page_size", 5)

	v.SetDefault("lookup.delay", "500ms")
	v.SetDefault("lookup.cache_ttl", "1h")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.HTTP.Timeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", config.HTTP.Timeout)
	}
	if config.OpenFoodFacts.PageSize < 1 {
		return fmt.Errorf("openfoodfacts page size must be at least 1, got %d", config.OpenFoodFacts.PageSize)
	}
	if config.USDA.PageSize < 1 {
		return fmt.Errorf("usda page size must be at least 1, got %d", config.USDA.PageSize)
	}
	if config.Lookup.Delay < 0 {
		return fmt.Errorf("lookup delay must not be negative, got %s", config.Lookup.Delay)
	}
	return nil
}
