// Package cropsite is the top level façade of the site module: a typed
// catalog read layer over a remote document store, localization with an
// explicit fallback chain, deterministic asset URL resolution, a TTL-bound
// static generation policy, and the authoring-surface helpers (language
// badge, draft preview).
package cropsite

import (
	"context"
	"errors"
	"io/fs"
	"net/http"

	"github.com/agrisite/cropsite/internal/catalog"
	"github.com/agrisite/cropsite/internal/httpapi"
	"github.com/agrisite/cropsite/internal/i18n"
	"github.com/agrisite/cropsite/internal/logging"
	"github.com/agrisite/cropsite/internal/logging/gologger"
	"github.com/agrisite/cropsite/internal/media"
	"github.com/agrisite/cropsite/internal/pages"
	"github.com/agrisite/cropsite/internal/runtimeconfig"
	"github.com/agrisite/cropsite/internal/schema"
	"github.com/agrisite/cropsite/internal/seed"
	"github.com/agrisite/cropsite/internal/staticgen"
	"github.com/agrisite/cropsite/internal/store"
	"github.com/agrisite/cropsite/internal/studio"
	"github.com/agrisite/cropsite/pkg/interfaces"
)

// Config aggregates the module's runtime configuration.
type Config = runtimeconfig.Config

// DefaultConfig returns the baseline configuration; the store identity must
// be filled in before New accepts it.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// CatalogService exports the catalog query contract.
type CatalogService = catalog.Service

// PageDocument exports the authored page shape consumed by the preview.
type PageDocument = pages.PageDocument

// Badge exports the studio language badge.
type Badge = studio.Badge

// PreviewSummary exports the studio draft preview shape.
type PreviewSummary = studio.PreviewSummary

// Module is the assembled site runtime.
type Module struct {
	cfg          Config
	provider     interfaces.LoggerProvider
	store        *store.Client
	catalog      catalog.Service
	bundle       *i18n.Bundle
	translations *i18n.Resolver
	images       *media.Resolver
	policy       *staticgen.Policy
	pageCache    *staticgen.PageCache
	prerenderer  *staticgen.Prerenderer
	handler      *httpapi.Handler
	router       http.Handler
}

// Option overrides a default binding during construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	repository   catalog.Repository
	storeClient  *store.Client
	translations *i18n.Bundle
	provider     interfaces.LoggerProvider
}

// WithRepository swaps the remote store repository for another adapter,
// typically the bun/SQLite dataset or the in-memory repository.
func WithRepository(repo catalog.Repository) Option {
	return func(o *moduleOptions) {
		o.repository = repo
	}
}

// WithStoreClient injects a pre-built store read client, used for the
// catalog repository and for LoadTranslations.
func WithStoreClient(client *store.Client) Option {
	return func(o *moduleOptions) {
		o.storeClient = client
	}
}

// WithTranslations installs a pre-loaded translation bundle.
func WithTranslations(bundle *i18n.Bundle) Option {
	return func(o *moduleOptions) {
		o.translations = bundle
	}
}

// WithLoggerProvider swaps the logging backend.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// New validates the configuration and wires the module. A missing store
// identity fails construction unless a repository override is supplied.
func New(cfg Config, opts ...Option) (*Module, error) {
	var options moduleOptions
	for _, opt := range opts {
		opt(&options)
	}

	if options.repository == nil && options.storeClient == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	} else if cfg.DefaultLocale == "" {
		return nil, runtimeconfig.ErrDefaultLocaleRequired
	}

	provider := options.provider
	if provider == nil {
		built, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		provider = built
	}

	repo := options.repository
	client := options.storeClient
	if repo == nil {
		if client == nil {
			built, err := store.NewClient(cfg.Store, store.WithLogger(logging.StoreLogger(provider)))
			if err != nil {
				return nil, err
			}
			client = built
		}
		validator, err := schema.NewValidator()
		if err != nil {
			return nil, err
		}
		repo = catalog.NewStoreRepository(client, validator)
	}

	catalogService := catalog.NewService(repo, catalog.WithLogger(logging.CatalogLogger(provider)))

	bundle := options.translations
	if bundle == nil {
		// Without an explicit bundle the module still has to label every
		// view, so it boots on the built-in translation tables. Callers
		// refresh them from the store with LoadTranslations.
		fixture, err := i18n.DefaultFixture()
		if err != nil {
			return nil, err
		}
		bundle = fixture.BundleWithDefault(cfg.DefaultLocale)
	}
	translations := i18n.NewResolver(bundle, i18n.WithLogger(logging.I18NLogger(provider)))

	images := media.NewResolver(cfg.Media.BaseURL, cfg.Store.ProjectID, cfg.Store.Dataset)

	pageCache := staticgen.NewPageCache(cfg.Revalidate.MaxAge)
	policy := staticgen.NewPolicy(catalogService, staticgen.WithMaxAge(cfg.Revalidate.MaxAge))

	handler := httpapi.NewHandler(catalogService, translations, images,
		httpapi.WithPageCache(pageCache),
		httpapi.WithMaxAge(policy.MaxAge()),
		httpapi.WithLogger(logging.HTTPLogger(provider)),
	)

	prerenderer := staticgen.NewPrerenderer(policy, pageCache, handler.Prerender(),
		staticgen.WithWorkers(cfg.Revalidate.Workers),
		staticgen.WithPrerenderLogger(logging.StaticGenLogger(provider)),
	)

	return &Module{
		cfg:          cfg,
		provider:     provider,
		store:        client,
		catalog:      catalogService,
		bundle:       bundle,
		translations: translations,
		images:       images,
		policy:       policy,
		pageCache:    pageCache,
		prerenderer:  prerenderer,
		handler:      handler,
		router:       httpapi.NewRouter(handler),
	}, nil
}

// Catalog returns the typed catalog query service.
func (m *Module) Catalog() CatalogService {
	return m.catalog
}

// Translations returns the localization resolver.
func (m *Module) Translations() *i18n.Resolver {
	return m.translations
}

// LoadTranslations replaces the bundled string tables with the translation
// set documents the store holds for the given locales. It is a startup-time
// refresh; locales the store has no set for keep their current table.
func (m *Module) LoadTranslations(ctx context.Context, locales ...string) error {
	if m.store == nil {
		return errors.New("cropsite: loading translations requires a store client")
	}

	sets, err := i18n.NewStoreSource(m.store).Load(ctx, locales...)
	if err != nil {
		return err
	}
	for _, set := range sets {
		m.bundle.Add(set)
	}
	return nil
}

// Images returns the asset URL resolver.
func (m *Module) Images() *media.Resolver {
	return m.images
}

// Policy returns the static generation policy.
func (m *Module) Policy() *staticgen.Policy {
	return m.policy
}

// Handler returns the public route surface, ready to serve.
func (m *Module) Handler() http.Handler {
	return m.router
}

// Prerender warms the page cache for every enumerated product slug.
func (m *Module) Prerender(ctx context.Context) (*staticgen.BuildResult, error) {
	return m.prerenderer.Build(ctx)
}

// Seed imports markdown product documents from filesystem into repo. It is
// intended for local datasets; the remote store is never written.
func (m *Module) Seed(ctx context.Context, filesystem fs.FS, dir string, repo catalog.WritableRepository) (*seed.Result, error) {
	importer := seed.NewImporter(repo, seed.WithLogger(logging.SeedLogger(m.provider)))
	return importer.ImportDir(ctx, filesystem, dir)
}

// ClassifyLanguage derives the studio language badge for a document.
func (m *Module) ClassifyLanguage(language string) Badge {
	return studio.ClassifyLanguage(language, m.cfg.DefaultLocale)
}

// Preview renders the studio draft summary for a page document, resolving
// product names through the catalog when reachable.
func (m *Module) Preview(ctx context.Context, doc *PageDocument) PreviewSummary {
	lookup := func(slug string) (string, bool) {
		detail, err := m.catalog.GetProductBySlug(ctx, slug)
		if err != nil {
			return "", false
		}
		return detail.Name, true
	}
	return studio.RenderPreview(doc, lookup)
}
