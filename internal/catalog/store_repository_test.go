package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/agrisite/cropsite/internal/schema"
	"github.com/agrisite/cropsite/internal/store"
)

func newStoreRepository(t *testing.T, handler http.HandlerFunc) *StoreRepository {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := store.NewClient(store.Config{
		ProjectID:  "p01ab",
		Dataset:    "production",
		APIVersion: "2026-01-01",
	}, store.WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("store.NewClient: %v", err)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		t.Fatalf("schema.NewValidator: %v", err)
	}
	return NewStoreRepository(client, validator)
}

const folicurDocument = `{
	"_type": "product",
	"id": "prod-folicur",
	"slug": "folicur-ec",
	"name": "Folicur EC",
	"tagline": "Broad-spectrum triazole fungicide",
	"category": "fungicide",
	"image": {"_ref": "image-a1b2c3d4e5-1200x800-jpg", "alt": "Folicur EC pack"},
	"variants": [
		{
			"country": "DE",
			"crop": "wheat",
			"details": [
				{"_type": "activeIngredientDetail", "name": "Tebuconazole", "amount": "250", "unit": "g/L"}
			]
		},
		{
			"country": "FR",
			"crop": "barley",
			"details": [
				{"_type": "documentDetail", "documentType": "SDS", "file": {"_ref": "file-9f8e7d6c-pdf"}}
			]
		}
	]
}`

func TestStoreRepositoryGetBySlugDecodesDocument(t *testing.T) {
	repo := newStoreRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": [` + folicurDocument + `]}`))
	})

	product, err := repo.GetBySlug(context.Background(), "folicur-ec")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}

	if product.Slug != "folicur-ec" || product.Name != "Folicur EC" {
		t.Fatalf("unexpected product %+v", product)
	}
	if len(product.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(product.Variants))
	}
	if _, ok := product.Variants[0].Details[0].(ActiveIngredientDetail); !ok {
		t.Fatalf("expected ActiveIngredientDetail, got %T", product.Variants[0].Details[0])
	}
	if _, ok := product.Variants[1].Details[0].(DocumentDetail); !ok {
		t.Fatalf("expected DocumentDetail, got %T", product.Variants[1].Details[0])
	}

	again, err := repo.GetBySlug(context.Background(), "folicur-ec")
	if err != nil {
		t.Fatalf("GetBySlug second read: %v", err)
	}
	if again.ID != product.ID {
		t.Fatal("expected stable identity mapping for opaque store ids")
	}
}

func TestStoreRepositoryEmptyResultIsNotFound(t *testing.T) {
	repo := newStoreRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": []}`))
	})

	_, err := repo.GetBySlug(context.Background(), "unknown-slug")
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestStoreRepositoryOutageIsUnavailable(t *testing.T) {
	repo := newStoreRepository(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "store down", http.StatusServiceUnavailable)
	})

	_, err := repo.GetBySlug(context.Background(), "folicur-ec")
	if !IsUnavailable(err) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
	if IsNotFound(err) {
		t.Fatal("outage must not be reported as not-found")
	}
}

func TestStoreRepositorySchemaViolationIsUnavailable(t *testing.T) {
	repo := newStoreRepository(t, func(w http.ResponseWriter, r *http.Request) {
		// Missing required category, ingredient unit outside the enum.
		w.Write([]byte(`{"result": [{
			"_type": "product",
			"slug": "folicur-ec",
			"name": "Folicur EC",
			"variants": [{"country": "DE", "details": [
				{"_type": "activeIngredientDetail", "name": "Tebuconazole", "amount": "250", "unit": "mg/L"}
			]}]
		}]}`))
	})

	_, err := repo.GetBySlug(context.Background(), "folicur-ec")
	if !IsUnavailable(err) {
		t.Fatalf("expected malformed payload to be unavailable, got %v", err)
	}
}

func TestStoreRepositoryListByCategory(t *testing.T) {
	repo := newStoreRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": [` + folicurDocument + `]}`))
	})

	products, err := repo.ListByCategory(context.Background(), "fungicide")
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(products) != 1 || products[0].Category != "fungicide" {
		t.Fatalf("unexpected products %+v", products)
	}
}

func TestStoreRepositoryListRelatedExcludesInQuery(t *testing.T) {
	excludeID := uuid.MustParse("2f7a4c1e-9d3b-4f6a-8c5e-1b2d3e4f5a6b")

	var query string
	repo := newStoreRepository(t, func(w http.ResponseWriter, r *http.Request) {
		unescaped, err := url.QueryUnescape(r.URL.Query().Get("query"))
		if err != nil {
			t.Errorf("unescape query: %v", err)
		}
		query = unescaped
		w.Write([]byte(`{"result": [` + folicurDocument + `]}`))
	})

	products, err := repo.ListRelated(context.Background(), "fungicide", excludeID)
	if err != nil {
		t.Fatalf("ListRelated: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("unexpected products %+v", products)
	}
	if !strings.Contains(query, `category == "fungicide"`) {
		t.Fatalf("expected category filter, got %q", query)
	}
	if !strings.Contains(query, `id != "2f7a4c1e-9d3b-4f6a-8c5e-1b2d3e4f5a6b"`) {
		t.Fatalf("expected identity exclusion in the query, got %q", query)
	}
}
