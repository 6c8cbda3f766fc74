package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/agrisite/cropsite/internal/identity"
	"github.com/agrisite/cropsite/internal/media"
)

func seedFolicur(t *testing.T, repo *MemoryRepository) *Product {
	t.Helper()

	product := &Product{
		ID:          identity.ProductUUID("folicur-ec"),
		Slug:        "folicur-ec",
		Name:        "Folicur EC",
		Tagline:     "Broad-spectrum triazole fungicide",
		Description: "A systemic fungicide for **cereals** and oilseed rape.",
		Category:    "fungicide",
		Image:       &media.AssetReference{Ref: "image-a1b2c3d4e5-1200x800-jpg", Alt: "Folicur EC pack"},
		Variants: []Variant{
			{
				Country: "DE",
				Crop:    "wheat",
				Details: []Detail{
					ActiveIngredientDetail{Name: "Tebuconazole", Amount: "250", Unit: UnitGramsPerLitre},
				},
			},
			{
				Country: "FR",
				Crop:    "barley",
				Details: []Detail{
					DocumentDetail{DocumentType: "SDS", File: media.AssetReference{Ref: "file-9f8e7d6c-pdf"}},
				},
			},
		},
	}
	if _, err := repo.Create(context.Background(), product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func TestGetProductBySlugResolvesFullVariantTree(t *testing.T) {
	repo := NewMemoryRepository()
	seedFolicur(t, repo)
	svc := NewService(repo)

	detail, err := svc.GetProductBySlug(context.Background(), "folicur-ec")
	if err != nil {
		t.Fatalf("GetProductBySlug: %v", err)
	}

	if detail.Name != "Folicur EC" {
		t.Fatalf("unexpected name %q", detail.Name)
	}
	if len(detail.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(detail.Variants))
	}

	ingredient, ok := detail.Variants[0].Details[0].(ActiveIngredientDetail)
	if !ok {
		t.Fatalf("expected ActiveIngredientDetail, got %T", detail.Variants[0].Details[0])
	}
	if ingredient.Amount != "250" || ingredient.Unit != UnitGramsPerLitre {
		t.Fatalf("unexpected ingredient %+v", ingredient)
	}

	document, ok := detail.Variants[1].Details[0].(DocumentDetail)
	if !ok {
		t.Fatalf("expected DocumentDetail, got %T", detail.Variants[1].Details[0])
	}
	if document.DocumentType != "SDS" {
		t.Fatalf("unexpected document %+v", document)
	}

	if !strings.Contains(detail.DescriptionHTML, "<strong>cereals</strong>") {
		t.Fatalf("expected rendered markdown, got %q", detail.DescriptionHTML)
	}
}

func TestGetProductBySlugUnknownSlugIsNotFound(t *testing.T) {
	repo := NewMemoryRepository()
	seedFolicur(t, repo)
	svc := NewService(repo)

	_, err := svc.GetProductBySlug(context.Background(), "unknown-slug")
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if IsUnavailable(err) {
		t.Fatal("not-found must never classify as unavailable")
	}
}

func TestGetProductBySlugUnresolvableProductIsNotFound(t *testing.T) {
	repo := NewMemoryRepository()
	broken := &Product{
		ID:       uuid.New(),
		Slug:     "broken-product",
		Name:     "Broken",
		Category: "fungicide",
		Variants: []Variant{
			{
				Country: "DE",
				Details: []Detail{
					ActiveIngredientDetail{Name: "Tebuconazole", Amount: "250", Unit: "mg/L"},
				},
			},
		},
	}
	if _, err := repo.Create(context.Background(), broken); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	svc := NewService(repo)

	_, err := svc.GetProductBySlug(context.Background(), "broken-product")
	if !IsNotFound(err) {
		t.Fatalf("expected unresolvable product to report NotFound, got %v", err)
	}
}

func TestGetProductBySlugNormalizesLookup(t *testing.T) {
	repo := NewMemoryRepository()
	seedFolicur(t, repo)
	svc := NewService(repo)

	if _, err := svc.GetProductBySlug(context.Background(), "  Folicur EC  "); err != nil {
		t.Fatalf("expected normalized lookup to succeed, got %v", err)
	}
}

func TestListProductSummariesOmitsVariantDetail(t *testing.T) {
	repo := NewMemoryRepository()
	seedFolicur(t, repo)
	svc := NewService(repo)

	summaries, err := svc.ListProductSummaries(context.Background())
	if err != nil {
		t.Fatalf("ListProductSummaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].Slug != "folicur-ec" || summaries[0].Category != "fungicide" {
		t.Fatalf("unexpected summary %+v", summaries[0])
	}
}

func TestGetRelatedProductsExcludesSelfAndOtherCategories(t *testing.T) {
	repo := NewMemoryRepository()
	current := seedFolicur(t, repo)

	other := &Product{
		ID:       identity.ProductUUID("prosaro"),
		Slug:     "prosaro",
		Name:     "Prosaro",
		Category: "fungicide",
	}
	herbicide := &Product{
		ID:       identity.ProductUUID("atlantis"),
		Slug:     "atlantis",
		Name:     "Atlantis",
		Category: "herbicide",
	}
	for _, p := range []*Product{other, herbicide} {
		if _, err := repo.Create(context.Background(), p); err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}

	svc := NewService(repo)
	related, err := svc.GetRelatedProducts(context.Background(), "fungicide", current.ID)
	if err != nil {
		t.Fatalf("GetRelatedProducts: %v", err)
	}

	if len(related) != 1 {
		t.Fatalf("expected 1 related product, got %d", len(related))
	}
	for _, summary := range related {
		if summary.ID == current.ID {
			t.Fatal("related products must exclude the current product")
		}
		if summary.Category != "fungicide" {
			t.Fatalf("related product outside category: %+v", summary)
		}
	}
}

// relatedListingRepository records whether the service took the pushed-down
// exclusion path.
type relatedListingRepository struct {
	*MemoryRepository
	relatedCalls int
}

func (r *relatedListingRepository) ListRelated(ctx context.Context, category string, excludeID uuid.UUID) ([]*Product, error) {
	r.relatedCalls++
	products, err := r.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	filtered := make([]*Product, 0, len(products))
	for _, product := range products {
		if product.ID == excludeID {
			continue
		}
		filtered = append(filtered, product)
	}
	return filtered, nil
}

func TestGetRelatedProductsPrefersPushedDownExclusion(t *testing.T) {
	repo := &relatedListingRepository{MemoryRepository: NewMemoryRepository()}
	current := seedFolicur(t, repo.MemoryRepository)

	other := &Product{
		ID:       identity.ProductUUID("prosaro"),
		Slug:     "prosaro",
		Name:     "Prosaro",
		Category: "fungicide",
	}
	if _, err := repo.Create(context.Background(), other); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	svc := NewService(repo)
	related, err := svc.GetRelatedProducts(context.Background(), "fungicide", current.ID)
	if err != nil {
		t.Fatalf("GetRelatedProducts: %v", err)
	}

	if repo.relatedCalls != 1 {
		t.Fatalf("expected the exclusion-capable path, got %d calls", repo.relatedCalls)
	}
	if len(related) != 1 || related[0].Slug != "prosaro" {
		t.Fatalf("unexpected related products %+v", related)
	}
}

func TestEmptyRelatedListIsNotAnError(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	related, err := svc.GetRelatedProducts(context.Background(), "fungicide", uuid.New())
	if err != nil {
		t.Fatalf("expected empty-but-valid result, got %v", err)
	}
	if len(related) != 0 {
		t.Fatalf("expected no products, got %d", len(related))
	}
}

// failingRepository simulates a store outage for every operation.
type failingRepository struct{}

func (failingRepository) GetBySlug(context.Context, string) (*Product, error) {
	return nil, &UnavailableError{Op: "get product", Err: errors.New("dial tcp: connection refused")}
}

func (failingRepository) List(context.Context) ([]*Product, error) {
	return nil, &UnavailableError{Op: "list products", Err: errors.New("dial tcp: connection refused")}
}

func (failingRepository) ListByCategory(context.Context, string) ([]*Product, error) {
	return nil, &UnavailableError{Op: "list products by category", Err: errors.New("dial tcp: connection refused")}
}

func TestStoreOutagePropagatesAsUnavailable(t *testing.T) {
	svc := NewService(failingRepository{})

	_, err := svc.GetProductBySlug(context.Background(), "folicur-ec")
	if !IsUnavailable(err) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
	if IsNotFound(err) {
		t.Fatal("outage must never classify as not-found")
	}

	if _, err := svc.ListProductSummaries(context.Background()); !IsUnavailable(err) {
		t.Fatalf("expected UnavailableError from list, got %v", err)
	}
}
