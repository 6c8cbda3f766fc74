package staticgen

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/agrisite/cropsite/internal/logging"
	"github.com/agrisite/cropsite/pkg/interfaces"
)

// PageRenderer produces the cacheable representation of one product route.
type PageRenderer func(ctx context.Context, slug string) (Entry, error)

// SlugFailure records a slug whose render failed during a batch. Failures
// are reported, not fatal: the rest of the batch still completes.
type SlugFailure struct {
	Slug string
	Err  error
}

// BuildResult aggregates the outcome of one pre-render batch.
type BuildResult struct {
	Rendered int
	Failures []SlugFailure
	Duration time.Duration
}

// Prerenderer renders every enumerated slug into the page cache ahead of
// first request, using a bounded worker pool.
type Prerenderer struct {
	policy  *Policy
	cache   *PageCache
	render  PageRenderer
	workers int
	logger  interfaces.Logger
}

// PrerenderOption configures a Prerenderer.
type PrerenderOption func(*Prerenderer)

// WithWorkers bounds the render concurrency. Non-positive values defer to
// runtime.NumCPU at build time.
func WithWorkers(n int) PrerenderOption {
	return func(p *Prerenderer) {
		p.workers = n
	}
}

// WithPrerenderLogger attaches a logger for per-slug failure reporting.
func WithPrerenderLogger(logger interfaces.Logger) PrerenderOption {
	return func(p *Prerenderer) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPrerenderer wires a batch renderer over the policy and cache.
func NewPrerenderer(policy *Policy, cache *PageCache, render PageRenderer, opts ...PrerenderOption) *Prerenderer {
	prerenderer := &Prerenderer{
		policy: policy,
		cache:  cache,
		render: render,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(prerenderer)
	}
	return prerenderer
}

// Build enumerates the eligible slugs and renders each one into the cache.
// Slug renders are independent; a failed slug is recorded in the result and
// does not stop the batch. Enumeration failure aborts the batch, since
// there is nothing to render.
func (p *Prerenderer) Build(ctx context.Context) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	slugs, err := p.policy.EnumerateSlugs(ctx)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{}
	if len(slugs) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	workers := p.effectiveWorkerCount(len(slugs))

	var mu sync.Mutex
	collect := func(slug string, renderErr error) {
		mu.Lock()
		defer mu.Unlock()
		if renderErr != nil {
			result.Failures = append(result.Failures, SlugFailure{Slug: slug, Err: renderErr})
			return
		}
		result.Rendered++
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for slug := range jobs {
				select {
				case <-ctx.Done():
					collect(slug, ctx.Err())
					continue
				default:
				}

				entry, renderErr := p.render(ctx, slug)
				if renderErr != nil {
					p.logger.Warn("prerender.slug.failed", "slug", slug, "error", renderErr)
					collect(slug, renderErr)
					continue
				}
				p.cache.Replace(RouteForSlug(slug), entry)
				collect(slug, nil)
			}
		}()
	}

	for _, slug := range slugs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			result.Duration = time.Since(start)
			return result, ctx.Err()
		case jobs <- slug:
		}
	}
	close(jobs)
	wg.Wait()

	result.Duration = time.Since(start)
	return result, nil
}

func (p *Prerenderer) effectiveWorkerCount(slugCount int) int {
	workers := p.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if slugCount > 0 && workers > slugCount {
		return slugCount
	}
	return workers
}

// RouteForSlug maps a product slug to its cache key. The same mapping is
// used by the HTTP surface when it consults the cache.
func RouteForSlug(slug string) string {
	return "/products/" + slug
}
