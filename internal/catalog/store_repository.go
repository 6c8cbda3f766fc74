package catalog

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/agrisite/cropsite/internal/identity"
	"github.com/agrisite/cropsite/internal/media"
	"github.com/agrisite/cropsite/internal/schema"
	"github.com/agrisite/cropsite/internal/store"
)

// StoreRepository reads products from the remote content store. Every
// payload is validated against the declared product schema before decoding;
// a violation is treated as a malformed response, i.e. unavailability,
// because the document exists but cannot be trusted.
type StoreRepository struct {
	client    *store.Client
	validator *schema.Validator
}

// NewStoreRepository wires the read client and the schema validator.
func NewStoreRepository(client *store.Client, validator *schema.Validator) *StoreRepository {
	return &StoreRepository{client: client, validator: validator}
}

// GetBySlug fetches one product document by its public slug.
func (r *StoreRepository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	var raw []json.RawMessage
	query := store.ByType(schema.TypeProduct).WithSlug(slug)
	if err := r.client.Query(ctx, query, &raw); err != nil {
		return nil, &UnavailableError{Op: "get product", Err: err}
	}
	if len(raw) == 0 {
		return nil, &NotFoundError{Resource: "product", Key: slug}
	}

	product, err := r.decodeProduct(raw[0])
	if err != nil {
		return nil, &UnavailableError{Op: "get product", Err: err}
	}
	return product, nil
}

// List fetches every product document, store insertion order.
func (r *StoreRepository) List(ctx context.Context) ([]*Product, error) {
	return r.query(ctx, store.ByType(schema.TypeProduct), "list products")
}

// ListByCategory fetches the product documents in one category.
func (r *StoreRepository) ListByCategory(ctx context.Context, category string) ([]*Product, error) {
	query := store.ByType(schema.TypeProduct).WithCategory(category)
	return r.query(ctx, query, "list products by category")
}

// ListRelated fetches the category siblings of one document, excluding that
// document in the query itself so it never travels over the wire.
func (r *StoreRepository) ListRelated(ctx context.Context, category string, excludeID uuid.UUID) ([]*Product, error) {
	query := store.ByType(schema.TypeProduct).WithCategory(category).Excluding(excludeID.String())
	return r.query(ctx, query, "list related products")
}

func (r *StoreRepository) query(ctx context.Context, query store.Query, op string) ([]*Product, error) {
	var raw []json.RawMessage
	if err := r.client.Query(ctx, query, &raw); err != nil {
		return nil, &UnavailableError{Op: op, Err: err}
	}

	products := make([]*Product, 0, len(raw))
	for _, doc := range raw {
		product, err := r.decodeProduct(doc)
		if err != nil {
			return nil, &UnavailableError{Op: op, Err: err}
		}
		products = append(products, product)
	}
	return products, nil
}

// productDocument is the wire shape: identity arrives as an opaque string.
type productDocument struct {
	ID          string                `json:"id"`
	Slug        string                `json:"slug"`
	Name        string                `json:"name"`
	Tagline     string                `json:"tagline"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Image       *media.AssetReference `json:"image"`
	Variants    []Variant             `json:"variants"`
}

func (r *StoreRepository) decodeProduct(raw json.RawMessage) (*Product, error) {
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	if err := r.validator.Validate(schema.TypeProduct, generic); err != nil {
		return nil, err
	}

	var doc productDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		// Store identities are opaque strings; map them deterministically.
		id = identity.UUID("cropsite:store:" + doc.ID)
	}
	if doc.ID == "" {
		id = identity.ProductUUID(doc.Slug)
	}

	return &Product{
		ID:          id,
		Slug:        doc.Slug,
		Name:        doc.Name,
		Tagline:     doc.Tagline,
		Description: doc.Description,
		Category:    doc.Category,
		Image:       doc.Image,
		Variants:    doc.Variants,
	}, nil
}
