// Package seed imports markdown-authored product documents into a writable
// catalog repository. It exists for local datasets and test fixtures; the
// remote document store is authored through the studio and never seeded
// from here.
package seed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/agrisite/cropsite/internal/catalog"
	"github.com/agrisite/cropsite/internal/domain"
	"github.com/agrisite/cropsite/internal/media"
)

// productFrontMatter is the YAML header of a seed document. The markdown
// body below the delimiter becomes the product description.
type productFrontMatter struct {
	Name     string               `yaml:"name"`
	Slug     string               `yaml:"slug"`
	Tagline  string               `yaml:"tagline"`
	Category string               `yaml:"category"`
	Status   string               `yaml:"status"`
	Image    string               `yaml:"image"`
	ImageAlt string               `yaml:"image_alt"`
	Variants []variantFrontMatter `yaml:"variants"`
}

// status defaults to published; authors opt documents out explicitly.
func (m productFrontMatter) status() domain.Status {
	if strings.TrimSpace(m.Status) == "" {
		return domain.StatusPublished
	}
	return domain.Status(strings.ToLower(strings.TrimSpace(m.Status)))
}

type variantFrontMatter struct {
	Country           string             `yaml:"country"`
	Crop              string             `yaml:"crop"`
	CropGroup         string             `yaml:"crop_group"`
	ApprovalNumber    string             `yaml:"approval_number"`
	Formulation       string             `yaml:"formulation"`
	MechanismOfAction string             `yaml:"mechanism_of_action"`
	ContainerSize     string             `yaml:"container_size"`
	ContainerUnit     string             `yaml:"container_unit"`
	Ingredients       []ingredientDetail `yaml:"ingredients"`
	Documents         []documentDetail   `yaml:"documents"`
}

type ingredientDetail struct {
	Name   string `yaml:"name"`
	Amount string `yaml:"amount"`
	Unit   string `yaml:"unit"`
}

type documentDetail struct {
	Type string `yaml:"type"`
	File string `yaml:"file"`
}

// ParseDocument splits a seed file into its frontmatter and markdown body.
func ParseDocument(source []byte) (productFrontMatter, []byte, error) {
	var meta productFrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return productFrontMatter{}, nil, fmt.Errorf("seed: parse frontmatter: %w", err)
	}
	return meta, body, nil
}

func (m productFrontMatter) product(description string) (*catalog.Product, error) {
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return nil, ErrNameMissing
	}

	variants := make([]catalog.Variant, 0, len(m.Variants))
	for _, v := range m.Variants {
		variants = append(variants, v.variant())
	}

	product := &catalog.Product{
		Slug:        strings.TrimSpace(m.Slug),
		Name:        name,
		Tagline:     strings.TrimSpace(m.Tagline),
		Description: description,
		Category:    strings.TrimSpace(m.Category),
		Image:       assetRef(m.Image, m.ImageAlt),
		Variants:    variants,
	}
	return product, nil
}

func (v variantFrontMatter) variant() catalog.Variant {
	details := make([]catalog.Detail, 0, len(v.Ingredients)+len(v.Documents))
	for _, ingredient := range v.Ingredients {
		details = append(details, catalog.ActiveIngredientDetail{
			Name:   ingredient.Name,
			Amount: ingredient.Amount,
			Unit:   catalog.IngredientUnit(ingredient.Unit),
		})
	}
	for _, document := range v.Documents {
		detail := catalog.DocumentDetail{DocumentType: document.Type}
		if ref := assetRef(document.File, ""); ref != nil {
			detail.File = *ref
		}
		details = append(details, detail)
	}

	return catalog.Variant{
		Country:           v.Country,
		Crop:              v.Crop,
		CropGroup:         v.CropGroup,
		ApprovalNumber:    v.ApprovalNumber,
		Formulation:       v.Formulation,
		MechanismOfAction: v.MechanismOfAction,
		ContainerSize:     v.ContainerSize,
		ContainerUnit:     v.ContainerUnit,
		Details:           details,
	}
}

func assetRef(ref, alt string) *media.AssetReference {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	return &media.AssetReference{Ref: ref, Alt: strings.TrimSpace(alt)}
}
