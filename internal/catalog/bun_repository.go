package catalog

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository serves the catalog from a local bun/SQLite dataset. It is
// the offline counterpart of the remote store adapter: same contract, same
// error taxonomy.
type BunRepository struct {
	repo repository.Repository[*ProductRecord]
}

// NewBunRepository constructs the repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs the repository with an optional
// read-through cache wrap.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := newProductRecordRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunRepository{repo: wrapped}
}

func newProductRecordRepository(db *bun.DB) repository.Repository[*ProductRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ProductRecord]{
		NewRecord: func() *ProductRecord { return &ProductRecord{} },
		GetID: func(p *ProductRecord) uuid.UUID {
			return p.ID
		},
		SetID: func(p *ProductRecord, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *ProductRecord) string {
			return p.Slug
		},
	})
}

// Create inserts a seeded product row.
func (r *BunRepository) Create(ctx context.Context, record *Product) (*Product, error) {
	created, err := r.repo.Create(ctx, NewProductRecord(record))
	if err != nil {
		return nil, mapRepositoryError(err, "create product", record.Slug)
	}
	return created.Product(), nil
}

// GetBySlug fetches one product row by its public slug.
func (r *BunRepository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "get product", slug)
	}
	return record.Product(), nil
}

// List returns every product row in insertion order.
func (r *BunRepository) List(ctx context.Context) ([]*Product, error) {
	records, _, err := r.repo.List(ctx)
	if err != nil {
		return nil, mapRepositoryError(err, "list products", "")
	}
	return recordsToProducts(records), nil
}

// ListByCategory returns the product rows in one category, insertion order.
func (r *BunRepository) ListByCategory(ctx context.Context, category string) ([]*Product, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.category = ?", category)
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "list products by category", category)
	}
	return recordsToProducts(records), nil
}

func recordsToProducts(records []*ProductRecord) []*Product {
	out := make([]*Product, 0, len(records))
	for _, record := range records {
		out = append(out, record.Product())
	}
	return out
}

func mapRepositoryError(err error, op, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: "product",
			Key:      key,
		}
	}
	return &UnavailableError{Op: op, Err: err}
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
