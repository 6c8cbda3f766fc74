package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/agrisite/cropsite/internal/media"
)

// IngredientUnit is the closed set of concentration units accepted for
// active ingredient declarations.
type IngredientUnit string

const (
	UnitGramsPerLitre    IngredientUnit = "g/L"
	UnitGramsPerKilogram IngredientUnit = "g/kg"
	UnitPercentWeight    IngredientUnit = "%w/w"
	UnitPercentVolume    IngredientUnit = "%w/v"
)

// Valid reports whether the unit is drawn from the accepted enumeration.
func (u IngredientUnit) Valid() bool {
	switch u {
	case UnitGramsPerLitre, UnitGramsPerKilogram, UnitPercentWeight, UnitPercentVolume:
		return true
	default:
		return false
	}
}

// DetailType discriminates the members of the variant detail union.
type DetailType string

const (
	DetailTypeActiveIngredient DetailType = "activeIngredientDetail"
	DetailTypeDocument         DetailType = "documentDetail"
)

// Detail is a closed tagged union: every member lives in this package and
// consumers switch exhaustively on DetailType. Adding a member means touching
// every switch, which is the point.
type Detail interface {
	DetailType() DetailType
}

// ActiveIngredientDetail declares one active substance within a variant.
// Amount stays a free-form string: authored values include ranges and
// approximations ("250-300"), so no numeric contract is imposed.
type ActiveIngredientDetail struct {
	Name   string         `json:"name"`
	Amount string         `json:"amount"`
	Unit   IngredientUnit `json:"unit"`
}

// DetailType implements Detail.
func (ActiveIngredientDetail) DetailType() DetailType { return DetailTypeActiveIngredient }

// MarshalJSON injects the discriminant so stored payloads round-trip.
func (d ActiveIngredientDetail) MarshalJSON() ([]byte, error) {
	type alias ActiveIngredientDetail
	return json.Marshal(struct {
		Type DetailType `json:"_type"`
		alias
	}{DetailTypeActiveIngredient, alias(d)})
}

// DocumentDetail attaches a regulatory document (SDS, label, approval) to a
// variant via a lazily resolved file reference.
type DocumentDetail struct {
	DocumentType string               `json:"documentType"`
	File         media.AssetReference `json:"file"`
}

// DetailType implements Detail.
func (DocumentDetail) DetailType() DetailType { return DetailTypeDocument }

// MarshalJSON injects the discriminant so stored payloads round-trip.
func (d DocumentDetail) MarshalJSON() ([]byte, error) {
	type alias DocumentDetail
	return json.Marshal(struct {
		Type DetailType `json:"_type"`
		alias
	}{DetailTypeDocument, alias(d)})
}

// ActiveIngredient is the reusable substance object shared across products.
// Name and Amount are excluded from automated translation passes; the schema
// records that policy, the query layer does not enforce it.
type ActiveIngredient struct {
	Name      string         `json:"name"`
	Amount    string         `json:"amount"`
	Unit      IngredientUnit `json:"unit"`
	IUPACName string         `json:"iupacName"`
	CASNumber string         `json:"casNumber"`
}

// Validate checks the all-required contract of the reusable object.
func (a ActiveIngredient) Validate() error {
	switch {
	case strings.TrimSpace(a.Name) == "":
		return fmt.Errorf("%w: name", ErrIngredientFieldRequired)
	case strings.TrimSpace(a.Amount) == "":
		return fmt.Errorf("%w: amount", ErrIngredientFieldRequired)
	case !a.Unit.Valid():
		return fmt.Errorf("%w: %q", ErrIngredientUnitInvalid, a.Unit)
	case strings.TrimSpace(a.IUPACName) == "":
		return fmt.Errorf("%w: iupacName", ErrIngredientFieldRequired)
	case strings.TrimSpace(a.CASNumber) == "":
		return fmt.Errorf("%w: casNumber", ErrIngredientFieldRequired)
	}
	return nil
}

// Variant is one country/crop-specific configuration of a product.
type Variant struct {
	Country           string   `json:"country"`
	Crop              string   `json:"crop"`
	CropGroup         string   `json:"cropGroup,omitempty"`
	ApprovalNumber    string   `json:"approvalNumber,omitempty"`
	Formulation       string   `json:"formulation,omitempty"`
	MechanismOfAction string   `json:"mechanismOfAction,omitempty"`
	ContainerSize     string   `json:"containerSize,omitempty"`
	ContainerUnit     string   `json:"containerUnit,omitempty"`
	Details           []Detail `json:"details"`
}

type variantEnvelope struct {
	Country           string            `json:"country"`
	Crop              string            `json:"crop"`
	CropGroup         string            `json:"cropGroup,omitempty"`
	ApprovalNumber    string            `json:"approvalNumber,omitempty"`
	Formulation       string            `json:"formulation,omitempty"`
	MechanismOfAction string            `json:"mechanismOfAction,omitempty"`
	ContainerSize     string            `json:"containerSize,omitempty"`
	ContainerUnit     string            `json:"containerUnit,omitempty"`
	Details           []json.RawMessage `json:"details"`
}

// UnmarshalJSON decodes the ordered detail union by its discriminant. An
// unknown discriminant is a malformed payload, not a silently dropped item.
func (v *Variant) UnmarshalJSON(data []byte) error {
	var env variantEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	details := make([]Detail, 0, len(env.Details))
	for i, raw := range env.Details {
		detail, err := decodeDetail(raw)
		if err != nil {
			return fmt.Errorf("variant detail %d: %w", i, err)
		}
		details = append(details, detail)
	}

	*v = Variant{
		Country:           env.Country,
		Crop:              env.Crop,
		CropGroup:         env.CropGroup,
		ApprovalNumber:    env.ApprovalNumber,
		Formulation:       env.Formulation,
		MechanismOfAction: env.MechanismOfAction,
		ContainerSize:     env.ContainerSize,
		ContainerUnit:     env.ContainerUnit,
		Details:           details,
	}
	return nil
}

func decodeDetail(raw json.RawMessage) (Detail, error) {
	var tag struct {
		Type DetailType `json:"_type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, err
	}

	switch tag.Type {
	case DetailTypeActiveIngredient:
		var detail ActiveIngredientDetail
		if err := json.Unmarshal(raw, &detail); err != nil {
			return nil, err
		}
		return detail, nil
	case DetailTypeDocument:
		var detail DocumentDetail
		if err := json.Unmarshal(raw, &detail); err != nil {
			return nil, err
		}
		return detail, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDetailType, tag.Type)
	}
}

// Product is the canonical catalog record. The slug, not the internal ID, is
// the durable public key; republishing under a new slug is a new public
// identity.
type Product struct {
	ID          uuid.UUID             `json:"id"`
	Slug        string                `json:"slug"`
	Name        string                `json:"name"`
	Tagline     string                `json:"tagline,omitempty"`
	Description string                `json:"description,omitempty"`
	Category    string                `json:"category"`
	Image       *media.AssetReference `json:"image,omitempty"`
	Variants    []Variant             `json:"variants"`
}

// Summary projects the lightweight listing shape.
func (p *Product) Summary() ProductSummary {
	return ProductSummary{
		ID:       p.ID,
		Slug:     p.Slug,
		Name:     p.Name,
		Tagline:  p.Tagline,
		Category: p.Category,
		Image:    p.Image,
	}
}

// ProductSummary is the projection used on listing pages; it carries no
// variant detail.
type ProductSummary struct {
	ID       uuid.UUID             `json:"id"`
	Slug     string                `json:"slug"`
	Name     string                `json:"name"`
	Tagline  string                `json:"tagline,omitempty"`
	Category string                `json:"category"`
	Image    *media.AssetReference `json:"image,omitempty"`
}

// ProductDetail is the fully resolved render model for a product page. The
// variant/detail tree is complete; a product that cannot resolve to this
// shape is reported as not found rather than returned as a shell.
type ProductDetail struct {
	Product
	// DescriptionHTML is the markdown description rendered for display.
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
}
