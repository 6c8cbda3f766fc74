package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/agrisite/cropsite/internal/runtimeconfig"
	"github.com/agrisite/cropsite/internal/store"
)

func validConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Store.ProjectID = "p1"
	cfg.Store.Dataset = "production"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	// Media assets are served from the same content platform the store
	// client talks to.
	if cfg.Media.BaseURL != "https://cdn.agcontent.io" {
		t.Fatalf("unexpected media base URL %q", cfg.Media.BaseURL)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("accepts a complete configuration", func(t *testing.T) {
		if err := validConfig().Validate(); err != nil {
			t.Fatalf("Validate() returned unexpected error: %v", err)
		}
	})

	t.Run("missing store project halts startup", func(t *testing.T) {
		cfg := validConfig()
		cfg.Store.ProjectID = ""

		if err := cfg.Validate(); !errors.Is(err, store.ErrProjectRequired) {
			t.Fatalf("expected ErrProjectRequired, got %v", err)
		}
	})

	t.Run("missing dataset halts startup", func(t *testing.T) {
		cfg := validConfig()
		cfg.Store.Dataset = ""

		if err := cfg.Validate(); !errors.Is(err, store.ErrDatasetRequired) {
			t.Fatalf("expected ErrDatasetRequired, got %v", err)
		}
	})

	t.Run("default locale is mandatory", func(t *testing.T) {
		cfg := validConfig()
		cfg.DefaultLocale = ""

		if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrDefaultLocaleRequired) {
			t.Fatalf("expected ErrDefaultLocaleRequired, got %v", err)
		}
	})

	t.Run("seeding requires a directory", func(t *testing.T) {
		cfg := validConfig()
		cfg.Seed.Enabled = true

		if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrSeedDirRequired) {
			t.Fatalf("expected ErrSeedDirRequired, got %v", err)
		}
	})

	t.Run("rejects an unknown logging level", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logging.Level = "verbose"

		if err := cfg.Validate(); err == nil {
			t.Fatal("expected validation error for unknown level")
		}
	})

	t.Run("empty optional logging fields pass", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logging = runtimeconfig.LoggingConfig{}

		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate() returned unexpected error: %v", err)
		}
	})
}
