// Package httpapi is the public read surface of the site: the product
// listing and product detail routes, rendered as localized JSON view
// models. All catalog failures are mapped to exactly two outcomes — a 404
// for a product that does not exist and a 503 for a catalog that cannot
// answer — so callers never mistake an outage for an empty catalog.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/agrisite/cropsite/internal/catalog"
	"github.com/agrisite/cropsite/internal/i18n"
	"github.com/agrisite/cropsite/internal/logging"
	"github.com/agrisite/cropsite/internal/media"
	"github.com/agrisite/cropsite/internal/staticgen"
	"github.com/agrisite/cropsite/pkg/interfaces"
	"github.com/go-chi/chi/v5"
)

// listingLabelKeys are the translation keys resolved for every listing and
// detail response. The resolver guarantees a non-empty value for each.
var listingLabelKeys = []string{
	"products.labels.country",
	"products.labels.crop",
	"products.labels.crop_group",
	"products.labels.approval_number",
	"products.labels.formulation",
	"products.labels.mechanism",
	"products.labels.container",
	"products.sections.variants",
	"products.sections.documents",
	"common.read_more",
}

// listImageTransform is the thumbnail shape used on listing cards.
var listImageTransform = &media.Transform{Width: 640, Height: 480, Fit: media.FitCover, Format: "webp"}

// Handler serves the catalog routes.
type Handler struct {
	catalog      catalog.Service
	translations *i18n.Resolver
	images       *media.Resolver
	cache        *staticgen.PageCache
	maxAge       time.Duration
	logger       interfaces.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithPageCache attaches the TTL-bound page cache consulted before the
// catalog is queried for a detail route.
func WithPageCache(cache *staticgen.PageCache) HandlerOption {
	return func(h *Handler) {
		h.cache = cache
	}
}

// WithMaxAge sets the revalidation interval advertised on responses.
func WithMaxAge(d time.Duration) HandlerOption {
	return func(h *Handler) {
		if d > 0 {
			h.maxAge = d
		}
	}
}

// WithLogger attaches a request-path logger.
func WithLogger(logger interfaces.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler wires the read surface over the catalog, translation and
// image resolvers.
func NewHandler(svc catalog.Service, translations *i18n.Resolver, images *media.Resolver, opts ...HandlerOption) *Handler {
	handler := &Handler{
		catalog:      svc,
		translations: translations,
		images:       images,
		maxAge:       staticgen.DefaultMaxAge,
		logger:       logging.NoOp(),
	}
	for _, opt := range opts {
		opt(handler)
	}
	return handler
}

type productSummaryView struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Tagline  string `json:"tagline,omitempty"`
	Category string `json:"category"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type productListResponse struct {
	Locale   string               `json:"locale"`
	Labels   map[string]string    `json:"labels"`
	Products []productSummaryView `json:"products"`
}

type productDetailResponse struct {
	Locale          string               `json:"locale"`
	Labels          map[string]string    `json:"labels"`
	ID              string               `json:"id"`
	Slug            string               `json:"slug"`
	Name            string               `json:"name"`
	Tagline         string               `json:"tagline,omitempty"`
	Category        string               `json:"category"`
	ImageURL        string               `json:"imageUrl,omitempty"`
	DescriptionHTML string               `json:"descriptionHtml,omitempty"`
	Variants        []catalog.Variant    `json:"variants"`
	Related         []productSummaryView `json:"related"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ListProducts handles GET /products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	locale := h.effectiveLocale(r)

	summaries, err := h.catalog.ListProductSummaries(r.Context())
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	response := productListResponse{
		Locale:   locale,
		Labels:   h.labels(locale),
		Products: h.summaryViews(summaries),
	}
	h.writeCacheable(w, http.StatusOK, response)
}

// GetProduct handles GET /products/{slug}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	locale := h.effectiveLocale(r)
	cacheKey := h.cacheKey(locale, slug)

	if h.cache != nil {
		if entry, ok := h.cache.Get(cacheKey); ok {
			h.writeCacheControl(w)
			w.Header().Set("Content-Type", entry.ContentType)
			w.WriteHeader(http.StatusOK)
			w.Write(entry.Body)
			return
		}
	}

	body, err := h.renderDetail(r.Context(), slug, locale)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	if h.cache != nil {
		h.cache.Replace(cacheKey, staticgen.Entry{
			Body:        body,
			ContentType: "application/json; charset=utf-8",
			RenderedAt:  time.Now(),
		})
	}

	h.writeCacheControl(w)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Prerender returns the renderer the pre-render batch uses to warm the
// cache. Batch entries are rendered under the default locale, matching the
// cache key the on-demand path uses for that locale.
func (h *Handler) Prerender() staticgen.PageRenderer {
	return func(ctx context.Context, slug string) (staticgen.Entry, error) {
		body, err := h.renderDetail(ctx, slug, h.translations.DefaultLocale())
		if err != nil {
			return staticgen.Entry{}, err
		}
		return staticgen.Entry{
			Body:        body,
			ContentType: "application/json; charset=utf-8",
			RenderedAt:  time.Now(),
		}, nil
	}
}

// renderDetail builds the serialized detail response for one slug. Related
// products are supplementary: an outage there degrades the page instead of
// failing it.
func (h *Handler) renderDetail(ctx context.Context, slug, locale string) ([]byte, error) {
	detail, err := h.catalog.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	related, err := h.catalog.GetRelatedProducts(ctx, detail.Category, detail.ID)
	if err != nil {
		h.logger.Warn("httpapi.related.unavailable", "slug", slug, "error", err)
		related = nil
	}

	response := productDetailResponse{
		Locale:          locale,
		Labels:          h.labels(locale),
		ID:              detail.ID.String(),
		Slug:            detail.Slug,
		Name:            detail.Name,
		Tagline:         detail.Tagline,
		Category:        detail.Category,
		ImageURL:        h.imageURL(detail.Image, nil),
		DescriptionHTML: detail.DescriptionHTML,
		Variants:        detail.Variants,
		Related:         h.summaryViews(related),
	}
	return json.Marshal(response)
}

func (h *Handler) effectiveLocale(r *http.Request) string {
	if locale := LocaleFromContext(r.Context()); locale != "" {
		return locale
	}
	return h.translations.DefaultLocale()
}

func (h *Handler) cacheKey(locale, slug string) string {
	if locale == h.translations.DefaultLocale() {
		return staticgen.RouteForSlug(slug)
	}
	return "/" + locale + staticgen.RouteForSlug(slug)
}

func (h *Handler) labels(locale string) map[string]string {
	labels := make(map[string]string, len(listingLabelKeys))
	for _, key := range listingLabelKeys {
		labels[key] = h.translations.Resolve(key, locale)
	}
	return labels
}

func (h *Handler) summaryViews(summaries []catalog.ProductSummary) []productSummaryView {
	views := make([]productSummaryView, 0, len(summaries))
	for _, summary := range summaries {
		views = append(views, productSummaryView{
			ID:       summary.ID.String(),
			Slug:     summary.Slug,
			Name:     summary.Name,
			Tagline:  summary.Tagline,
			Category: summary.Category,
			ImageURL: h.imageURL(summary.Image, listImageTransform),
		})
	}
	return views
}

func (h *Handler) imageURL(ref *media.AssetReference, transform *media.Transform) string {
	url, ok := h.images.URLFor(ref, transform)
	if !ok {
		return ""
	}
	return url
}

func (h *Handler) writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case catalog.IsNotFound(err):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found"})
	case catalog.IsUnavailable(err):
		h.logger.Error("httpapi.catalog.unavailable", "error", err)
		h.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "catalog_unavailable"})
	default:
		h.logger.Error("httpapi.catalog.error", "error", err)
		h.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "catalog_unavailable"})
	}
}

func (h *Handler) writeCacheControl(w http.ResponseWriter) {
	seconds := int(h.maxAge / time.Second)
	w.Header().Set("Cache-Control", fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate=%d", seconds, seconds))
}

func (h *Handler) writeCacheable(w http.ResponseWriter, status int, payload any) {
	h.writeCacheControl(w)
	h.writeJSON(w, status, payload)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("httpapi.response.encode", "error", err)
	}
}
