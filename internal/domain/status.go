package domain

// Status represents lifecycle states for authored documents.
type Status string

const (
	// StatusDraft indicates a document still under preparation in the studio.
	StatusDraft Status = "draft"
	// StatusPublished identifies documents available on the public site.
	StatusPublished Status = "published"
	// StatusArchived marks documents retained for history but no longer served.
	StatusArchived Status = "archived"
)

// Published reports whether the document should be visible on the public site.
func (s Status) Published() bool {
	return s == StatusPublished
}
