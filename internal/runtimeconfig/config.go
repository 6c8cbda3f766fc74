// Package runtimeconfig aggregates the runtime settings of the site module.
// The binary edge (cmd/server) populates it from the environment; everything
// below consumes the typed struct and never reads the environment directly.
package runtimeconfig

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/agrisite/cropsite/internal/store"
)

// ErrDefaultLocaleRequired indicates the module cannot pick a fallback
// language.
var ErrDefaultLocaleRequired = errors.New("runtimeconfig: default locale is required")

// ErrSeedDirRequired indicates seeding was enabled without a source
// directory.
var ErrSeedDirRequired = errors.New("runtimeconfig: seed directory is required when seeding is enabled")

// Config is the full runtime configuration of the site module. A zero value
// is not usable; start from DefaultConfig.
type Config struct {
	// DefaultLocale terminates every translation fallback chain; the set of
	// available locales is carried by the loaded translation bundle itself.
	DefaultLocale string
	Store         store.Config
	Media         MediaConfig
	Revalidate    RevalidateConfig
	Logging       LoggingConfig
	Seed          SeedConfig
	HTTP          HTTPConfig
}

// MediaConfig binds the asset URL resolver.
type MediaConfig struct {
	// BaseURL is the CDN root serving resolved asset URLs.
	BaseURL string
}

// RevalidateConfig tunes the static generation policy.
type RevalidateConfig struct {
	// MaxAge is the revalidation interval; zero keeps the policy default.
	MaxAge time.Duration
	// Workers bounds pre-render concurrency; zero means one per CPU.
	Workers int
}

// LoggingConfig mirrors the logger provider options.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// SeedConfig controls the markdown seed importer.
type SeedConfig struct {
	Enabled bool
	Dir     string
}

// HTTPConfig binds the public route surface.
type HTTPConfig struct {
	Addr string
}

// DefaultConfig returns a configuration that starts without a store binding;
// callers must fill in the store identity before Validate passes.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		Store: store.Config{
			APIVersion: "2024-01-01",
			UseCDN:     true,
			Timeout:    10 * time.Second,
		},
		Media: MediaConfig{
			BaseURL: "https://cdn.agcontent.io",
		},
		Revalidate: RevalidateConfig{
			MaxAge: 60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
	}
}

// Validate checks structural rules and the store identity. A missing store
// project or dataset is a configuration error that must halt startup; the
// module never falls back to a silently empty catalog.
func (c Config) Validate() error {
	if c.DefaultLocale == "" {
		return ErrDefaultLocaleRequired
	}
	if c.Seed.Enabled && c.Seed.Dir == "" {
		return ErrSeedDirRequired
	}

	if err := c.Store.Validate(); err != nil {
		return err
	}

	return validation.ValidateStruct(&c,
		validation.Field(&c.Media),
		validation.Field(&c.Logging),
		validation.Field(&c.HTTP),
	)
}

// Validate implements validation.Validatable.
func (m MediaConfig) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.BaseURL, validation.Required),
	)
}

// Validate implements validation.Validatable.
func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("trace", "debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.In("json", "console", "pretty")),
	)
}

// Validate implements validation.Validatable.
func (h HTTPConfig) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Addr, validation.Required),
	)
}
