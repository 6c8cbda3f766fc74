// Package studio hosts the authoring-surface derivations: the language
// badge shown next to documents and the best-effort structural preview of
// drafts. Both are total functions over their inputs; neither participates
// in the public request path.
package studio

import (
	"fmt"
	"strings"
)

// BadgeColor is the visual tone the editing UI applies to a badge.
type BadgeColor string

const (
	BadgeColorSuccess BadgeColor = "success"
	BadgeColorPrimary BadgeColor = "primary"
)

// Badge is the display classification of a document's language.
type Badge struct {
	Label string
	Title string
	Color BadgeColor
}

// ClassifyLanguage derives the badge for a document's language field. Every
// language code yields exactly one badge; there is no error path.
func ClassifyLanguage(language, defaultLanguage string) Badge {
	normalized := strings.ToLower(strings.TrimSpace(language))
	if normalized == strings.ToLower(strings.TrimSpace(defaultLanguage)) {
		return Badge{
			Label: "Original",
			Title: "Original language version",
			Color: BadgeColorSuccess,
		}
	}

	code := strings.ToUpper(normalized)
	return Badge{
		Label: fmt.Sprintf("Translation (%s)", code),
		Title: fmt.Sprintf("Translated from the original (%s)", code),
		Color: BadgeColorPrimary,
	}
}
