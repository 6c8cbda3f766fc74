package catalog

import (
	"bytes"
	"context"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"github.com/agrisite/cropsite/internal/logging"
	"github.com/agrisite/cropsite/pkg/interfaces"
)

// Service exposes the typed read queries the public site renders from. All
// operations are independent, side-effect-free reads; concurrent calls for
// different slugs never interfere.
type Service interface {
	// GetProductBySlug fetches a product and fully resolves its variant and
	// detail tree in one logical read. A matching document that fails to
	// resolve is reported as not found, never as a partial shell.
	GetProductBySlug(ctx context.Context, slugValue string) (*ProductDetail, error)
	// ListProductSummaries returns the lightweight projection for listing pages.
	ListProductSummaries(ctx context.Context) ([]ProductSummary, error)
	// GetRelatedProducts returns summaries in the same category, excluding the
	// current product. Order is store-defined; callers must not assume ranking.
	GetRelatedProducts(ctx context.Context, category string, excludeID uuid.UUID) ([]ProductSummary, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo     Repository
	logger   interfaces.Logger
	markdown goldmark.Markdown
}

// NewService constructs the catalog query layer over a repository adapter.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		logger:   logging.NoOp(),
		markdown: goldmark.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) GetProductBySlug(ctx context.Context, slugValue string) (*ProductDetail, error) {
	normalized := normalizeSlug(slugValue)
	if normalized == "" {
		return nil, ErrSlugRequired
	}

	product, err := s.repo.GetBySlug(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if err := resolveProduct(product); err != nil {
		// The document exists but cannot be rendered whole; surfacing a
		// partial product would silently drop authored fields.
		s.logger.Warn("catalog.product.unresolvable", "slug", normalized, "reason", err.Error())
		return nil, &NotFoundError{Resource: "product", Key: normalized}
	}

	return &ProductDetail{
		Product:         *product,
		DescriptionHTML: s.renderDescription(product),
	}, nil
}

func (s *service) ListProductSummaries(ctx context.Context) ([]ProductSummary, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ProductSummary, 0, len(products))
	for _, product := range products {
		summaries = append(summaries, product.Summary())
	}
	return summaries, nil
}

func (s *service) GetRelatedProducts(ctx context.Context, category string, excludeID uuid.UUID) ([]ProductSummary, error) {
	if strings.TrimSpace(category) == "" {
		return nil, ErrCategoryRequired
	}

	var products []*Product
	var err error
	if lister, ok := s.repo.(RelatedLister); ok {
		products, err = lister.ListRelated(ctx, category, excludeID)
	} else {
		products, err = s.repo.ListByCategory(ctx, category)
	}
	if err != nil {
		return nil, err
	}

	summaries := make([]ProductSummary, 0, len(products))
	for _, product := range products {
		if product.ID == excludeID {
			continue
		}
		summaries = append(summaries, product.Summary())
	}
	return summaries, nil
}

// renderDescription converts the authored markdown description to HTML,
// falling back to the raw text when conversion fails.
func (s *service) renderDescription(product *Product) string {
	if strings.TrimSpace(product.Description) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(product.Description), &buf); err != nil {
		s.logger.Warn("catalog.description.render_failed", "slug", product.Slug, "error", err.Error())
		return product.Description
	}
	return buf.String()
}

// resolveProduct checks that the fetched document forms a complete render
// model: a name, a category, and variant details drawn from the closed union
// with valid ingredient units.
func resolveProduct(product *Product) error {
	if product == nil {
		return &NotFoundError{Resource: "product"}
	}
	if strings.TrimSpace(product.Name) == "" {
		return ErrProductNameRequired
	}
	if strings.TrimSpace(product.Category) == "" {
		return ErrCategoryRequired
	}

	for _, variant := range product.Variants {
		for _, detail := range variant.Details {
			switch d := detail.(type) {
			case ActiveIngredientDetail:
				if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Amount) == "" {
					return ErrIngredientFieldRequired
				}
				if !d.Unit.Valid() {
					return ErrIngredientUnitInvalid
				}
			case DocumentDetail:
				if strings.TrimSpace(d.DocumentType) == "" {
					return ErrDocumentTypeRequired
				}
			default:
				return ErrUnknownDetailType
			}
		}
	}
	return nil
}

func normalizeSlug(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		return strings.ToLower(trimmed)
	}
	return normalized
}
