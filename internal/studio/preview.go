package studio

import (
	"strings"

	"github.com/agrisite/cropsite/internal/pages"
)

const (
	// UntitledPlaceholder stands in for a draft that has no title yet.
	UntitledPlaceholder = "Untitled page"
	// EmptyStateMessage distinguishes "no blocks authored yet" from a
	// broken or empty render region.
	EmptyStateMessage = "No content blocks yet"
)

// ProductNameLookup resolves a product slug to its display name. Preview is
// best-effort: a failed lookup simply omits the product name.
type ProductNameLookup func(slug string) (string, bool)

// BlockPreview is the structural summary of one content block.
type BlockPreview struct {
	Key     string
	Label   string
	Excerpt string
}

// PreviewSummary is what the authoring surface shows for an in-progress
// document.
type PreviewSummary struct {
	Title       string
	ProductName string
	Blocks      []BlockPreview
	// EmptyState carries the explicit no-content marker when the document
	// has no blocks; authors must be able to tell "empty" from "broken".
	EmptyState string
}

// RenderPreview summarises a possibly partial page document. It never
// fails: absent fields are omitted, not errors.
func RenderPreview(doc *pages.PageDocument, lookup ProductNameLookup) PreviewSummary {
	summary := PreviewSummary{Title: UntitledPlaceholder}
	if doc == nil {
		summary.EmptyState = EmptyStateMessage
		return summary
	}

	if title := strings.TrimSpace(doc.Title); title != "" {
		summary.Title = title
	}
	if doc.ProductSlug != "" && lookup != nil {
		if name, ok := lookup(doc.ProductSlug); ok {
			summary.ProductName = name
		}
	}

	if len(doc.Blocks) == 0 {
		summary.EmptyState = EmptyStateMessage
		return summary
	}

	summary.Blocks = make([]BlockPreview, 0, len(doc.Blocks))
	for _, block := range doc.Blocks {
		summary.Blocks = append(summary.Blocks, previewBlock(block))
	}
	return summary
}

func previewBlock(block pages.ContentBlock) BlockPreview {
	preview := BlockPreview{
		Key:   block.BlockKey(),
		Label: string(block.BlockType()),
	}

	switch b := block.(type) {
	case pages.HeroBlock:
		preview.Excerpt = firstNonEmpty(b.Heading, b.Tagline)
	case pages.FeaturesBlock:
		preview.Excerpt = b.Heading
		if preview.Excerpt == "" && len(b.Items) > 0 {
			preview.Excerpt = b.Items[0].Title
		}
	}
	return preview
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
