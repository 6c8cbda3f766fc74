package media

import (
	"fmt"
	"strconv"
	"strings"
)

// AssetReference is an opaque pointer to a binary resource managed by the
// content store. The Ref value is content-addressed; it only becomes a URL
// when a resolver turns it into one at render time.
type AssetReference struct {
	Ref string `json:"_ref"`
	Alt string `json:"alt,omitempty"`
}

// Empty reports whether the reference lacks an underlying asset pointer.
func (r *AssetReference) Empty() bool {
	return r == nil || strings.TrimSpace(r.Ref) == ""
}

// Fit controls how an image is constrained into the requested box.
type Fit string

const (
	FitMax   Fit = "max"
	FitCover Fit = "cover"
	FitCrop  Fit = "crop"
	FitClip  Fit = "clip"
)

// Transform carries the recognised rendition options. A nil transform yields
// the original asset URL.
type Transform struct {
	Width  int
	Height int
	Fit    Fit
	// Format is an explicit output format, or "auto" to let the CDN negotiate.
	Format string
}

// Resolver builds fetchable URLs for asset references. Resolution is pure:
// the same (reference, transform) pair always yields the same URL, so callers
// may cache results indefinitely.
type Resolver struct {
	baseURL   string
	projectID string
	dataset   string
}

// NewResolver constructs a resolver bound to one store project and dataset.
func NewResolver(baseURL, projectID, dataset string) *Resolver {
	return &Resolver{
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		projectID: strings.TrimSpace(projectID),
		dataset:   strings.TrimSpace(dataset),
	}
}

// URLFor resolves an asset reference into a fetchable URL. The second return
// value is false when the reference is missing or malformed; images are
// routinely optional in authored content, so this is not an error path.
func (r *Resolver) URLFor(ref *AssetReference, t *Transform) (string, bool) {
	if r == nil || ref.Empty() {
		return "", false
	}

	parsed, ok := parseRef(ref.Ref)
	if !ok {
		return "", false
	}

	url := fmt.Sprintf("%s/%s/%s/%s/%s", r.baseURL, parsed.kind+"s", r.projectID, r.dataset, parsed.filename())
	if query := transformQuery(t); query != "" {
		url += "?" + query
	}
	return url, true
}

type parsedRef struct {
	kind string // "image" or "file"
	id   string
	dims string // WxH, images only
	ext  string
}

func (p parsedRef) filename() string {
	if p.kind == "image" {
		return p.id + "-" + p.dims + "." + p.ext
	}
	return p.id + "." + p.ext
}

// parseRef understands content-addressed references of the forms
// image-<id>-<WxH>-<format> and file-<id>-<ext>.
func parseRef(ref string) (parsedRef, bool) {
	parts := strings.Split(strings.TrimSpace(ref), "-")
	switch parts[0] {
	case "image":
		if len(parts) != 4 || parts[1] == "" || !validDims(parts[2]) || parts[3] == "" {
			return parsedRef{}, false
		}
		return parsedRef{kind: "image", id: parts[1], dims: parts[2], ext: parts[3]}, true
	case "file":
		if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
			return parsedRef{}, false
		}
		return parsedRef{kind: "file", id: parts[1], ext: parts[2]}, true
	default:
		return parsedRef{}, false
	}
}

func validDims(dims string) bool {
	w, h, ok := strings.Cut(dims, "x")
	if !ok {
		return false
	}
	if _, err := strconv.Atoi(w); err != nil {
		return false
	}
	_, err := strconv.Atoi(h)
	return err == nil
}

// transformQuery serialises options in a fixed order so resolved URLs stay
// byte-identical for identical transforms.
func transformQuery(t *Transform) string {
	if t == nil {
		return ""
	}

	params := make([]string, 0, 4)
	if t.Width > 0 {
		params = append(params, "w="+strconv.Itoa(t.Width))
	}
	if t.Height > 0 {
		params = append(params, "h="+strconv.Itoa(t.Height))
	}
	if t.Fit != "" {
		params = append(params, "fit="+string(t.Fit))
	}
	switch t.Format {
	case "":
	case "auto":
		params = append(params, "auto=format")
	default:
		params = append(params, "fm="+t.Format)
	}
	return strings.Join(params, "&")
}
