// Package pages models language-tagged page documents authored in the
// content studio: an ordered sequence of typed content blocks, optionally
// back-referencing a catalog product.
package pages

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agrisite/cropsite/internal/identity"
	"github.com/agrisite/cropsite/internal/media"
)

// ErrUnknownBlockType marks a payload whose block discriminant is outside
// the closed union.
var ErrUnknownBlockType = errors.New("pages: unknown content block type")

// BlockType discriminates the members of the content block union.
type BlockType string

const (
	BlockTypeHero     BlockType = "hero"
	BlockTypeFeatures BlockType = "features"
)

// ContentBlock is a closed tagged union; consumers switch exhaustively on
// BlockType. Every block carries a stable key used for list identity while
// editing.
type ContentBlock interface {
	BlockType() BlockType
	BlockKey() string
}

// HeroBlock is the leading banner section of a page.
type HeroBlock struct {
	Key     string                `json:"_key"`
	Heading string                `json:"heading,omitempty"`
	Tagline string                `json:"tagline,omitempty"`
	Image   *media.AssetReference `json:"image,omitempty"`
}

// BlockType implements ContentBlock.
func (HeroBlock) BlockType() BlockType { return BlockTypeHero }

// BlockKey implements ContentBlock.
func (b HeroBlock) BlockKey() string { return b.Key }

// MarshalJSON injects the discriminant so stored payloads round-trip.
func (b HeroBlock) MarshalJSON() ([]byte, error) {
	type alias HeroBlock
	return json.Marshal(struct {
		Type BlockType `json:"_type"`
		alias
	}{BlockTypeHero, alias(b)})
}

// FeatureItem is one entry of a features block.
type FeatureItem struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

// FeaturesBlock lists product capabilities or selling points.
type FeaturesBlock struct {
	Key     string        `json:"_key"`
	Heading string        `json:"heading,omitempty"`
	Items   []FeatureItem `json:"items,omitempty"`
}

// BlockType implements ContentBlock.
func (FeaturesBlock) BlockType() BlockType { return BlockTypeFeatures }

// BlockKey implements ContentBlock.
func (b FeaturesBlock) BlockKey() string { return b.Key }

// MarshalJSON injects the discriminant so stored payloads round-trip.
func (b FeaturesBlock) MarshalJSON() ([]byte, error) {
	type alias FeaturesBlock
	return json.Marshal(struct {
		Type BlockType `json:"_type"`
		alias
	}{BlockTypeFeatures, alias(b)})
}

// PageDocument is a language-tagged authored page. ProductSlug optionally
// back-references a catalog product by its public key.
type PageDocument struct {
	Language    string         `json:"language"`
	Title       string         `json:"title,omitempty"`
	ProductSlug string         `json:"product,omitempty"`
	Blocks      []ContentBlock `json:"blocks"`
}

type pageEnvelope struct {
	Language    string            `json:"language"`
	Title       string            `json:"title"`
	ProductSlug string            `json:"product"`
	Blocks      []json.RawMessage `json:"blocks"`
}

// UnmarshalJSON decodes the ordered block union by its discriminant. Blocks
// authored without a key receive a stable derived one, so list identity
// survives re-imports.
func (p *PageDocument) UnmarshalJSON(data []byte) error {
	var env pageEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	pageKey := identity.PageUUID(env.Language, env.ProductSlug).String()
	blocks := make([]ContentBlock, 0, len(env.Blocks))
	for i, raw := range env.Blocks {
		block, err := decodeBlock(raw)
		if err != nil {
			return fmt.Errorf("page block %d: %w", i, err)
		}
		if block.BlockKey() == "" {
			block = keyedBlock(block, pageKey, i)
		}
		blocks = append(blocks, block)
	}

	*p = PageDocument{
		Language:    env.Language,
		Title:       env.Title,
		ProductSlug: env.ProductSlug,
		Blocks:      blocks,
	}
	return nil
}

// keyedBlock fills in the derived key; the union members are value types, so
// the assignment happens per concrete shape.
func keyedBlock(block ContentBlock, pageKey string, index int) ContentBlock {
	key := identity.BlockKey(pageKey, string(block.BlockType()), index)
	switch b := block.(type) {
	case HeroBlock:
		b.Key = key
		return b
	case FeaturesBlock:
		b.Key = key
		return b
	default:
		return block
	}
}

func decodeBlock(raw json.RawMessage) (ContentBlock, error) {
	var tag struct {
		Type BlockType `json:"_type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, err
	}

	switch tag.Type {
	case BlockTypeHero:
		var block HeroBlock
		if err := json.Unmarshal(raw, &block); err != nil {
			return nil, err
		}
		return block, nil
	case BlockTypeFeatures:
		var block FeaturesBlock
		if err := json.Unmarshal(raw, &block); err != nil {
			return nil, err
		}
		return block, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, tag.Type)
	}
}
