package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory implementation for scaffolding and tests.
// Insertion order is preserved so list results mirror the store contract.
type MemoryRepository struct {
	mu        sync.RWMutex
	products  map[uuid.UUID]*Product
	slugIndex map[string]uuid.UUID
	order     []uuid.UUID
}

// NewMemoryRepository creates an empty in-memory product repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		products:  make(map[uuid.UUID]*Product),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied product, replacing a previous record that
// shares its slug.
func (m *MemoryRepository) Create(_ context.Context, record *Product) (*Product, error) {
	if record == nil || strings.TrimSpace(record.Slug) == "" {
		return nil, ErrSlugRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneProduct(record)
	if existing, ok := m.slugIndex[copied.Slug]; ok {
		delete(m.products, existing)
		m.order = removeID(m.order, existing)
	}
	m.products[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	m.order = append(m.order, copied.ID)
	return cloneProduct(copied), nil
}

// GetBySlug retrieves a product by its public slug.
func (m *MemoryRepository) GetBySlug(_ context.Context, slug string) (*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "product", Key: slug}
	}
	return cloneProduct(m.products[id]), nil
}

// List returns all products in insertion order.
func (m *MemoryRepository) List(_ context.Context) ([]*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Product, 0, len(m.order))
	for _, id := range m.order {
		if rec, ok := m.products[id]; ok {
			out = append(out, cloneProduct(rec))
		}
	}
	return out, nil
}

// ListByCategory returns products in the category, insertion order.
func (m *MemoryRepository) ListByCategory(_ context.Context, category string) ([]*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Product, 0)
	for _, id := range m.order {
		rec, ok := m.products[id]
		if ok && rec.Category == category {
			out = append(out, cloneProduct(rec))
		}
	}
	return out, nil
}

func removeID(order []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, candidate := range order {
		if candidate == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

func cloneProduct(src *Product) *Product {
	if src == nil {
		return nil
	}

	copied := *src
	if src.Image != nil {
		image := *src.Image
		copied.Image = &image
	}
	if len(src.Variants) > 0 {
		copied.Variants = make([]Variant, len(src.Variants))
		for i, variant := range src.Variants {
			local := variant
			if len(variant.Details) > 0 {
				local.Details = make([]Detail, len(variant.Details))
				copy(local.Details, variant.Details)
			}
			copied.Variants[i] = local
		}
	}
	return &copied
}
