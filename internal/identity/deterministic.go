package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ProductUUID derives the identity for a product seeded from its public slug.
func ProductUUID(slug string) uuid.UUID {
	return UUID("cropsite:product:" + strings.ToLower(strings.TrimSpace(slug)))
}

// PageUUID derives the identity for an authored page document.
func PageUUID(language, slug string) uuid.UUID {
	return UUID("cropsite:page:" + strings.ToLower(strings.TrimSpace(language)) + ":" + strings.ToLower(strings.TrimSpace(slug)))
}

// BlockKey derives a stable per-block key used for list identity while editing.
// The key survives re-imports as long as the block keeps its position and type.
func BlockKey(pageKey, blockType string, index int) string {
	id := UUID("cropsite:block:" + strings.TrimSpace(pageKey) + ":" + strings.TrimSpace(blockType) + ":" + strconv.Itoa(index))
	return strings.ReplaceAll(id.String(), "-", "")[:12]
}
