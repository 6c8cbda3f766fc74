package i18n

import (
	"context"
	"errors"
	"fmt"

	"github.com/agrisite/cropsite/internal/schema"
	"github.com/agrisite/cropsite/internal/store"
)

// StoreSource reads translation set documents from the remote content store.
// Each language is one document; only the language tag and the string table
// are projected.
type StoreSource struct {
	client *store.Client
}

// NewStoreSource wires a translation source over a store read client.
func NewStoreSource(client *store.Client) *StoreSource {
	return &StoreSource{client: client}
}

// translationSetDocument is the wire shape of one stored string table.
type translationSetDocument struct {
	Language string         `json:"language"`
	Table    map[string]any `json:"table"`
}

// Load fetches the translation set for each requested locale. A locale the
// store has no set for is skipped, matching the resolver's tolerance for
// authoring lag; a transport failure aborts the whole load.
func (s *StoreSource) Load(ctx context.Context, locales ...string) ([]*TranslationSet, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("i18n: store source requires a client")
	}

	sets := make([]*TranslationSet, 0, len(locales))
	for _, locale := range locales {
		query := store.ByType(schema.TypeTranslationSet).
			WithLanguage(normalizeLocale(locale)).
			Select("language", "table")

		var docs []translationSetDocument
		if err := s.client.Query(ctx, query, &docs); err != nil {
			return nil, fmt.Errorf("i18n: load translation set %q: %w", locale, err)
		}
		for _, doc := range docs {
			sets = append(sets, &TranslationSet{Locale: doc.Language, Table: doc.Table})
		}
	}
	return sets, nil
}
