package seed

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/agrisite/cropsite/internal/catalog"
	"github.com/agrisite/cropsite/internal/identity"
	"github.com/agrisite/cropsite/internal/logging"
	"github.com/agrisite/cropsite/pkg/interfaces"
)

var (
	// ErrRepositoryRequired marks an importer built without a destination.
	ErrRepositoryRequired = errors.New("seed: writable repository is required")
	// ErrNameMissing marks a seed document without a product name.
	ErrNameMissing = errors.New("seed: frontmatter name is required")
)

// ErrNotPublished marks a seed document whose status keeps it off the
// public dataset.
var ErrNotPublished = errors.New("seed: document is not published")

// Failure records one seed document that could not be imported.
type Failure struct {
	Path string
	Err  error
}

// Result aggregates one import run. Failures are reported per document; a
// bad file never aborts the rest of the batch.
type Result struct {
	Imported []string
	Skipped  []string
	Failures []Failure
}

// Importer converts markdown seed documents into catalog products.
type Importer struct {
	repo   catalog.WritableRepository
	logger interfaces.Logger
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer)

// WithLogger attaches an import logger.
func WithLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewImporter builds an importer writing into repo.
func NewImporter(repo catalog.WritableRepository, opts ...ImporterOption) *Importer {
	importer := &Importer{
		repo:   repo,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(importer)
	}
	return importer
}

// ImportFile imports a single seed document.
func (i *Importer) ImportFile(ctx context.Context, name string, source []byte) (*catalog.Product, error) {
	if i.repo == nil {
		return nil, ErrRepositoryRequired
	}

	meta, body, err := ParseDocument(source)
	if err != nil {
		return nil, err
	}
	if !meta.status().Published() {
		return nil, fmt.Errorf("%w: %s", ErrNotPublished, meta.status())
	}

	product, err := meta.product(strings.TrimSpace(string(body)))
	if err != nil {
		return nil, err
	}

	if product.Slug == "" {
		product.Slug = slugFromName(name, product.Name)
	}
	normalized, err := slug.Normalize(product.Slug)
	if err != nil {
		return nil, fmt.Errorf("seed: normalize slug %q: %w", product.Slug, err)
	}
	product.Slug = normalized
	product.ID = identity.ProductUUID(product.Slug)

	created, err := i.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	i.logger.Debug("seed.product.imported", "slug", created.Slug, "variants", len(created.Variants))
	return created, nil
}

// ImportDir walks filesystem for markdown documents and imports each one.
// Files are processed in lexical order so repeated runs against the same
// tree behave identically.
func (i *Importer) ImportDir(ctx context.Context, filesystem fs.FS, dir string) (*Result, error) {
	if i.repo == nil {
		return nil, ErrRepositoryRequired
	}

	var files []string
	err := fs.WalkDir(filesystem, dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(p, ".md") {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("seed: walk %s: %w", dir, err)
	}
	sort.Strings(files)

	result := &Result{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		source, readErr := fs.ReadFile(filesystem, file)
		if readErr != nil {
			result.Failures = append(result.Failures, Failure{Path: file, Err: readErr})
			continue
		}

		product, importErr := i.ImportFile(ctx, file, source)
		if errors.Is(importErr, ErrNotPublished) {
			i.logger.Debug("seed.document.skipped", "path", file)
			result.Skipped = append(result.Skipped, file)
			continue
		}
		if importErr != nil {
			i.logger.Warn("seed.document.failed", "path", file, "error", importErr)
			result.Failures = append(result.Failures, Failure{Path: file, Err: importErr})
			continue
		}
		result.Imported = append(result.Imported, product.Slug)
	}
	return result, nil
}

// slugFromName derives a slug from the seed filename, falling back to the
// product name when the filename is unhelpful.
func slugFromName(name, productName string) string {
	base := strings.TrimSuffix(path.Base(name), ".md")
	if base != "" && base != "." && base != "index" {
		return base
	}
	return productName
}
