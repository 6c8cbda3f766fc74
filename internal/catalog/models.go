package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/agrisite/cropsite/internal/media"
)

// ProductRecord is the bun row shape for the local dataset adapter. The
// variant tree is stored as a JSON column; the record converts losslessly to
// and from the domain Product.
type ProductRecord struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID          uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Slug        string     `bun:"slug,notnull,unique" json:"slug"`
	Name        string     `bun:"name,notnull" json:"name"`
	Tagline     string     `bun:"tagline" json:"tagline,omitempty"`
	Description string     `bun:"description" json:"description,omitempty"`
	Category    string     `bun:"category,notnull" json:"category"`
	ImageRef    string     `bun:"image_ref" json:"image_ref,omitempty"`
	ImageAlt    string     `bun:"image_alt" json:"image_alt,omitempty"`
	Variants    []Variant  `bun:"variants,type:jsonb" json:"variants"`
	DeletedAt   *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Product converts the row into the domain shape.
func (r *ProductRecord) Product() *Product {
	if r == nil {
		return nil
	}

	var image *media.AssetReference
	if r.ImageRef != "" {
		image = &media.AssetReference{Ref: r.ImageRef, Alt: r.ImageAlt}
	}

	return &Product{
		ID:          r.ID,
		Slug:        r.Slug,
		Name:        r.Name,
		Tagline:     r.Tagline,
		Description: r.Description,
		Category:    r.Category,
		Image:       image,
		Variants:    r.Variants,
	}
}

// NewProductRecord converts a domain product into its row shape.
func NewProductRecord(product *Product) *ProductRecord {
	if product == nil {
		return nil
	}

	record := &ProductRecord{
		ID:          product.ID,
		Slug:        product.Slug,
		Name:        product.Name,
		Tagline:     product.Tagline,
		Description: product.Description,
		Category:    product.Category,
		Variants:    product.Variants,
	}
	if product.Image != nil {
		record.ImageRef = product.Image.Ref
		record.ImageAlt = product.Image.Alt
	}
	return record
}
