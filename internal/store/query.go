package store

import (
	"fmt"
	"strings"
)

// Query is a parametrized structured read: a document type filter plus
// optional slug/category/exclusion constraints and a projection. Filters
// serialise in a fixed order so identical queries produce identical strings
// (and hit the same CDN cache entry).
type Query struct {
	DocType    string
	Slug       string
	Category   string
	Language   string
	ExcludeID  string
	Projection []string
}

// ByType starts a query for every published document of one type.
func ByType(docType string) Query {
	return Query{DocType: docType}
}

// WithSlug narrows the query to one public slug.
func (q Query) WithSlug(slug string) Query {
	q.Slug = slug
	return q
}

// WithCategory narrows the query to one category.
func (q Query) WithCategory(category string) Query {
	q.Category = category
	return q
}

// WithLanguage narrows the query to one language tag.
func (q Query) WithLanguage(language string) Query {
	q.Language = language
	return q
}

// Excluding drops a document identity from the result set.
func (q Query) Excluding(id string) Query {
	q.ExcludeID = id
	return q
}

// Select limits the returned fields.
func (q Query) Select(fields ...string) Query {
	q.Projection = fields
	return q
}

// String renders the wire form of the query. Results follow store insertion
// order; no ordering clause is emitted.
func (q Query) String() string {
	filters := []string{fmt.Sprintf("_type == %q", q.DocType)}
	if q.Slug != "" {
		filters = append(filters, fmt.Sprintf("slug == %q", q.Slug))
	}
	if q.Category != "" {
		filters = append(filters, fmt.Sprintf("category == %q", q.Category))
	}
	if q.Language != "" {
		filters = append(filters, fmt.Sprintf("language == %q", q.Language))
	}
	if q.ExcludeID != "" {
		filters = append(filters, fmt.Sprintf("id != %q", q.ExcludeID))
	}

	rendered := "*[" + strings.Join(filters, " && ") + "]"
	if len(q.Projection) > 0 {
		rendered += "{" + strings.Join(q.Projection, ", ") + "}"
	}
	return rendered
}
