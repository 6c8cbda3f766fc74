// Package staticgen decides which catalog routes are pre-rendered ahead of
// first request and how long a rendered page may be served before the
// catalog is queried again. The policy is a fixed TTL rather than
// event-driven invalidation: catalog edits are low-frequency, so a page may
// serve stale content for at most one TTL window after an edit.
package staticgen

import (
	"context"
	"time"

	"github.com/agrisite/cropsite/internal/catalog"
)

// DefaultMaxAge is the revalidation interval applied when no explicit TTL
// is configured.
const DefaultMaxAge = 60 * time.Second

// Policy enumerates the slugs eligible for pre-rendering and exposes the
// revalidation interval shared by the page cache and the HTTP surface.
type Policy struct {
	catalog catalog.Service
	maxAge  time.Duration
}

// PolicyOption configures a Policy.
type PolicyOption func(*Policy)

// WithMaxAge overrides the revalidation interval. Non-positive values keep
// the default.
func WithMaxAge(d time.Duration) PolicyOption {
	return func(p *Policy) {
		if d > 0 {
			p.maxAge = d
		}
	}
}

// NewPolicy builds a policy backed by the catalog query layer.
func NewPolicy(svc catalog.Service, opts ...PolicyOption) *Policy {
	policy := &Policy{
		catalog: svc,
		maxAge:  DefaultMaxAge,
	}
	for _, opt := range opts {
		opt(policy)
	}
	return policy
}

// EnumerateSlugs returns every published product slug, in catalog order.
// The result drives the pre-render batch; an unavailable catalog surfaces
// as-is so the caller can decide whether to retry or serve on demand.
func (p *Policy) EnumerateSlugs(ctx context.Context) ([]string, error) {
	summaries, err := p.catalog.ListProductSummaries(ctx)
	if err != nil {
		return nil, err
	}

	slugs := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		if summary.Slug == "" {
			continue
		}
		slugs = append(slugs, summary.Slug)
	}
	return slugs, nil
}

// MaxAge returns the maximum time a rendered page may be served before it
// must be re-derived from a fresh catalog query.
func (p *Policy) MaxAge() time.Duration {
	return p.maxAge
}
