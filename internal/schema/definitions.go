// Package schema declares the document and object shapes the catalog is
// allowed to read from the content store, and validates store payloads
// against them before they enter the query layer.
package schema

// Document type names as stored in the content store's _type field.
const (
	TypeProduct        = "product"
	TypeTranslationSet = "translationSet"
	TypePageDocument   = "pageDocument"
)

// ingredientUnits is the closed enumeration accepted for active ingredient
// concentration units.
var ingredientUnits = []any{"g/L", "g/kg", "%w/w", "%w/v"}

func assetReferenceSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"_ref": map[string]any{"type": "string", "minLength": 1},
			"alt":  map[string]any{"type": "string"},
		},
		"required": []any{"_ref"},
	}
}

// activeIngredientDetailSchema describes one member of the variant detail
// union. Amount is intentionally a string: authored values include ranges
// like "250-300". Name and amount carry x-translate: false so automated
// translation passes skip them.
func activeIngredientDetailSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"_type":  map[string]any{"const": "activeIngredientDetail"},
			"name":   map[string]any{"type": "string", "minLength": 1, "x-translate": false},
			"amount": map[string]any{"type": "string", "minLength": 1, "x-translate": false},
			"unit":   map[string]any{"enum": ingredientUnits},
		},
		"required": []any{"_type", "name", "amount", "unit"},
	}
}

func documentDetailSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"_type":        map[string]any{"const": "documentDetail"},
			"documentType": map[string]any{"type": "string", "minLength": 1},
			"file":         assetReferenceSchema(),
		},
		"required": []any{"_type", "documentType", "file"},
	}
}

func variantSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"country":           map[string]any{"type": "string", "minLength": 1},
			"crop":              map[string]any{"type": "string"},
			"cropGroup":         map[string]any{"type": "string"},
			"approvalNumber":    map[string]any{"type": "string"},
			"formulation":       map[string]any{"type": "string"},
			"mechanismOfAction": map[string]any{"type": "string"},
			"containerSize":     map[string]any{"type": "string"},
			"containerUnit":     map[string]any{"type": "string"},
			"details": map[string]any{
				"type": "array",
				"items": map[string]any{
					"oneOf": []any{
						activeIngredientDetailSchema(),
						documentDetailSchema(),
					},
				},
			},
		},
		"required": []any{"country"},
	}
}

// ProductSchema constrains the product documents the query layer may read.
func ProductSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"_type":       map[string]any{"const": TypeProduct},
			"id":          map[string]any{"type": "string", "minLength": 1},
			"slug":        map[string]any{"type": "string", "minLength": 1},
			"name":        map[string]any{"type": "string", "minLength": 1},
			"tagline":     map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"category":    map[string]any{"type": "string", "minLength": 1},
			"image":       assetReferenceSchema(),
			"variants": map[string]any{
				"type":  "array",
				"items": variantSchema(),
			},
		},
		"required": []any{"slug", "name", "category"},
	}
}

// ActiveIngredientSchema constrains the reusable substance object. All
// fields are required; name and amount are excluded from translation.
func ActiveIngredientSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":      map[string]any{"type": "string", "minLength": 1, "x-translate": false},
			"amount":    map[string]any{"type": "string", "minLength": 1, "x-translate": false},
			"unit":      map[string]any{"enum": ingredientUnits},
			"iupacName": map[string]any{"type": "string", "minLength": 1},
			"casNumber": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []any{"name", "amount", "unit", "iupacName", "casNumber"},
	}
}

// TranslationSetSchema constrains the per-language string tables.
func TranslationSetSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"_type":    map[string]any{"const": TypeTranslationSet},
			"language": map[string]any{"type": "string", "minLength": 2},
			"table":    map[string]any{"type": "object"},
		},
		"required": []any{"language", "table"},
	}
}

func contentBlockSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"_type": map[string]any{"type": "string", "minLength": 1},
			"_key":  map[string]any{"type": "string", "minLength": 1},
		},
		"required": []any{"_type", "_key"},
	}
}

// PageDocumentSchema constrains language-tagged page documents and their
// ordered block sequences. Block payloads stay open: the preview renderer is
// best-effort by contract and must not reject partial drafts.
func PageDocumentSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"_type":    map[string]any{"const": TypePageDocument},
			"language": map[string]any{"type": "string", "minLength": 2},
			"title":    map[string]any{"type": "string"},
			"product":  map[string]any{"type": "string"},
			"blocks": map[string]any{
				"type":  "array",
				"items": contentBlockSchema(),
			},
		},
		"required": []any{"language"},
	}
}

// Definitions maps each stored document type to its schema.
func Definitions() map[string]map[string]any {
	return map[string]map[string]any{
		TypeProduct:        ProductSchema(),
		TypeTranslationSet: TranslationSetSchema(),
		TypePageDocument:   PageDocumentSchema(),
	}
}
