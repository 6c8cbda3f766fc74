package i18n

import (
	"strings"

	"github.com/agrisite/cropsite/internal/logging"
	"github.com/agrisite/cropsite/pkg/interfaces"
)

// Resolver maps (key path, locale) pairs to display strings. Missing
// translations are a routine authoring-lag condition, so resolution never
// fails: it walks an explicit fallback chain and bottoms out at the literal
// key path.
type Resolver struct {
	bundle *Bundle
	logger interfaces.Logger
}

// Option customises resolver construction.
type Option func(*Resolver)

// WithLogger attaches a logger used to trace fallback hits.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver constructs a resolver over a loaded bundle.
func NewResolver(bundle *Bundle, opts ...Option) *Resolver {
	r := &Resolver{
		bundle: bundle,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the translation for keyPath in the requested locale,
// falling back along FallbackChain and finally to the key path itself. The
// result is never empty and the call never errors; it is a pure function over
// the loaded bundle.
func (r *Resolver) Resolve(keyPath, locale string) string {
	keyPath = strings.TrimSpace(keyPath)
	if keyPath == "" {
		return keyPath
	}
	if r == nil || r.bundle == nil {
		return keyPath
	}

	for _, candidate := range FallbackChain(locale, r.bundle.DefaultLocale()) {
		set, ok := r.bundle.Set(candidate)
		if !ok {
			continue
		}
		if value, ok := set.Lookup(keyPath); ok {
			return value
		}
	}

	r.logger.Debug("translation.miss", "key", keyPath, "locale", locale)
	return keyPath
}

// Available lists the locales the resolver can serve.
func (r *Resolver) Available() []string {
	if r == nil || r.bundle == nil {
		return nil
	}
	return r.bundle.Available()
}

// DefaultLocale returns the terminal fallback language.
func (r *Resolver) DefaultLocale() string {
	if r == nil || r.bundle == nil {
		return ""
	}
	return r.bundle.DefaultLocale()
}

// FallbackChain produces the ordered list of locale codes to try for a
// request: the requested locale, its regional parent (fr-ca falls back to
// fr), then the default. Duplicates and blanks are dropped while preserving
// order. The literal key path remains the caller's final fallback.
func FallbackChain(locale, defaultLocale string) []string {
	chain := make([]string, 0, 3)
	seen := make(map[string]struct{}, 3)

	push := func(candidate string) {
		candidate = normalizeLocale(candidate)
		if candidate == "" {
			return
		}
		if _, dup := seen[candidate]; dup {
			return
		}
		seen[candidate] = struct{}{}
		chain = append(chain, candidate)
	}

	requested := normalizeLocale(locale)
	push(requested)
	if parent, _, ok := strings.Cut(requested, "-"); ok {
		push(parent)
	}
	push(defaultLocale)

	return chain
}
