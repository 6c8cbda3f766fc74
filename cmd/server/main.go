// Command server runs the public read surface of the site: the product
// listing and detail routes backed by the remote document store, with an
// optional markdown-seeded local dataset for development.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	cropsite "github.com/agrisite/cropsite"
	"github.com/agrisite/cropsite/internal/catalog"
	"github.com/agrisite/cropsite/internal/i18n"
)

func loadConfig() cropsite.Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("DEFAULT_LOCALE", "en")
	viper.SetDefault("STORE_API_VERSION", "2024-01-01")
	viper.SetDefault("STORE_USE_CDN", true)
	viper.SetDefault("STORE_TIMEOUT_SECONDS", 10)
	viper.SetDefault("MEDIA_BASE_URL", "https://cdn.agcontent.io")
	viper.SetDefault("REVALIDATE_SECONDS", 60)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")
	viper.SetDefault("LOCALES", []string{"en", "de", "fr"})

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := cropsite.DefaultConfig()
	cfg.DefaultLocale = viper.GetString("DEFAULT_LOCALE")
	cfg.Store.ProjectID = viper.GetString("STORE_PROJECT_ID")
	cfg.Store.Dataset = viper.GetString("STORE_DATASET")
	cfg.Store.APIVersion = viper.GetString("STORE_API_VERSION")
	cfg.Store.UseCDN = viper.GetBool("STORE_USE_CDN")
	cfg.Store.Token = viper.GetString("STORE_TOKEN")
	cfg.Store.Timeout = time.Duration(viper.GetInt("STORE_TIMEOUT_SECONDS")) * time.Second
	cfg.Media.BaseURL = viper.GetString("MEDIA_BASE_URL")
	cfg.Revalidate.MaxAge = time.Duration(viper.GetInt("REVALIDATE_SECONDS")) * time.Second
	cfg.Revalidate.Workers = viper.GetInt("PRERENDER_WORKERS")
	cfg.Logging.Level = viper.GetString("LOG_LEVEL")
	cfg.Logging.Format = viper.GetString("LOG_FORMAT")
	cfg.Seed.Enabled = viper.GetBool("SEED_ENABLED")
	cfg.Seed.Dir = viper.GetString("SEED_DIR")
	cfg.HTTP.Addr = viper.GetString("HTTP_ADDR")
	return cfg
}

func buildModule(cfg cropsite.Config) (*cropsite.Module, error) {
	opts := []cropsite.Option{}

	if translationsPath := viper.GetString("TRANSLATIONS_FILE"); translationsPath != "" {
		fixture, err := i18n.NewLoader(translationsPath).Load(context.Background())
		if err != nil {
			return nil, err
		}
		opts = append(opts, cropsite.WithTranslations(fixture.Bundle()))
	}

	if cfg.Seed.Enabled {
		// Seeding implies a local dataset; the remote store stays read-only.
		repo := catalog.NewMemoryRepository()
		opts = append(opts, cropsite.WithRepository(repo))

		module, err := cropsite.New(cfg, opts...)
		if err != nil {
			return nil, err
		}
		result, err := module.Seed(context.Background(), os.DirFS(cfg.Seed.Dir), ".", repo)
		if err != nil {
			return nil, err
		}
		log.Printf("seeded %d products (%d failures)", len(result.Imported), len(result.Failures))
		return module, nil
	}

	return cropsite.New(cfg, opts...)
}

func main() {
	cfg := loadConfig()

	module, err := buildModule(cfg)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	if !cfg.Seed.Enabled && viper.GetString("TRANSLATIONS_FILE") == "" {
		if err := module.LoadTranslations(context.Background(), viper.GetStringSlice("LOCALES")...); err != nil {
			// The bundled tables keep serving; store tables arrive on the
			// next restart.
			log.Printf("translation load skipped: %v", err)
		}
	}

	if _, err := module.Prerender(context.Background()); err != nil {
		// Pre-render is an optimization; failures fall back to on-demand
		// rendering at request time.
		log.Printf("prerender skipped: %v", err)
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      module.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("forced shutdown: %v", err)
		}
		close(done)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
	<-done
}
