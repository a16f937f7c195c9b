package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("USDA_API_KEY")
		os.Unsetenv("CALORIELENS_USDA_API_KEY")
		os.Unsetenv("CALORIELENS_USDA_BASE_URL")
		os.Unsetenv("CALORIELENS_USDA_PAGE_SIZE")
		os.Unsetenv("CALORIELENS_OPENFOODFACTS_BASE_URL")
		os.Unsetenv("CALORIELENS_OPENFOODFACTS_PAGE_SIZE")
		os.Unsetenv("CALORIELENS_HTTP_TIMEOUT")
		os.Unsetenv("CALORIELENS_HTTP_USER_AGENT")
		os.Unsetenv("CALORIELENS_LOOKUP_DELAY")
		os.Unsetenv("CALORIELENS_LOOKUP_CACHE_TTL")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.HTTP.Timeout != 10*time.Second {
			t.Errorf("HTTP.Timeout = %v, want 10s", cfg.HTTP.Timeout)
		}
		if cfg.OpenFoodFacts.BaseURL != "https://world.openfoodfacts.org" {
			t.Errorf("OpenFoodFacts.BaseURL = %s, want https://world.openfoodfacts.org", cfg.OpenFoodFacts.BaseURL)
		}
		if cfg.OpenFoodFacts.PageSize != 5 {
			t.Errorf("OpenFoodFacts.PageSize = %d, want 5", cfg.OpenFoodFacts.PageSize)
		}
		if cfg.USDA.BaseURL != "https://api.nal.usda.gov/fdc" {
			t.Errorf("USDA.BaseURL = %s, want https://api.nal.usda.gov/fdc", cfg.USDA.BaseURL)
		}
		if cfg.USDA.APIKey != "" {
			t.Errorf("USDA.APIKey = %q, want empty (USDA disabled by default)", cfg.USDA.APIKey)
		}
		if cfg.Lookup.Delay != 500*time.Millisecond {
			t.Errorf("Lookup.Delay = %v, want 500ms", cfg.Lookup.Delay)
		}
		if cfg.Lookup.CacheTTL != time.Hour {
			t.Errorf("Lookup.CacheTTL = %v, want 1h", cfg.Lookup.CacheTTL)
		}
	})

	t.Run("reads USDA key from unprefixed USDA_API_KEY", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("USDA_API_KEY", "legacy-key")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.USDA.APIKey != "legacy-key" {
			t.Errorf("USDA.APIKey = %q, want legacy-key", cfg.USDA.APIKey)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("CALORIELENS_USDA_API_KEY", "custom-api-key")
		os.Setenv("CALORIELENS_USDA_BASE_URL", "https://custom.api.com")
		os.Setenv("CALORIELENS_OPENFOODFACTS_PAGE_SIZE", "1")
		os.Setenv("CALORIELENS_HTTP_TIMEOUT", "9s")
		os.Setenv("CALORIELENS_LOOKUP_DELAY", "250ms")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.USDA.APIKey != "custom-api-key" {
			t.Errorf("USDA.APIKey = %s, want custom-api-key", cfg.USDA.APIKey)
		}
		if cfg.USDA.BaseURL != "https://custom.api.com" {
			t.Errorf("USDA.BaseURL = %s, want https://custom.api.com", cfg.USDA.BaseURL)
		}
		if cfg.OpenFoodFacts.PageSize != 1 {
			t.Errorf("OpenFoodFacts.PageSize = %d, want 1", cfg.OpenFoodFacts.PageSize)
		}
		if cfg.HTTP.Timeout != 9*time.Second {
			t.Errorf("HTTP.Timeout = %v, want 9s", cfg.HTTP.Timeout)
		}
		if cfg.Lookup.Delay != 250*time.Millisecond {
			t.Errorf("Lookup.Delay = %v, want 250ms", cfg.Lookup.Delay)
		}
	})

	t.Run("rejects non-positive page size", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("CALORIELENS_OPENFOODFACTS_PAGE_SIZE", "0")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Fatal("Load() error = nil, want page size validation error")
		}
	})

	t.Run("rejects non-positive timeout", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("CALORIELENS_HTTP_TIMEOUT", "0s")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Fatal("Load() error = nil, want timeout validation error")
		}
	})
}
