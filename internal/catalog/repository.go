package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository abstracts read access to the product documents. Implementations
// exist for the remote document store, a local bun/SQLite dataset, and an
// in-memory map used by tests and seeding.
//
// Lookups signal absence with *NotFoundError and transport or payload
// failures with *UnavailableError; the two are never conflated.
type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, category string) ([]*Product, error)
}

// RelatedLister is an optional capability: adapters that can exclude a
// document identity in the query itself implement it, and the service
// prefers it over fetching the whole category. The service still re-filters
// locally, since locally derived identities have no store-side form.
type RelatedLister interface {
	ListRelated(ctx context.Context, category string, excludeID uuid.UUID) ([]*Product, error)
}

// WritableRepository extends Repository for adapters that accept seeded
// records (memory and bun). The remote store is read-only by design: authors
// mutate documents through the studio, this module only consumes them.
type WritableRepository interface {
	Repository
	Create(ctx context.Context, record *Product) (*Product, error)
}
