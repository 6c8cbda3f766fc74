package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrSlugRequired            = errors.New("catalog: slug is required")
	ErrCategoryRequired        = errors.New("catalog: category is required")
	ErrProductNameRequired     = errors.New("catalog: product name is required")
	ErrDocumentTypeRequired    = errors.New("catalog: document type is required")
	ErrUnknownDetailType       = errors.New("catalog: unknown variant detail type")
	ErrIngredientFieldRequired = errors.New("catalog: active ingredient field is required")
	ErrIngredientUnitInvalid   = errors.New("catalog: active ingredient unit not in accepted set")
)

// NotFoundError reports a valid query that matched no document. It renders as
// a 404-equivalent and must never be conflated with store unavailability.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err represents a missing document.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// UnavailableError reports that the document store was unreachable, timed
// out, or returned a malformed payload. It is retryable by the caller and
// renders as a transient error, never as a 404.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("catalog unavailable during %s", e.Op)
	}
	return fmt.Sprintf("catalog unavailable during %s: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// IsUnavailable reports whether err represents a transient catalog outage.
func IsUnavailable(err error) bool {
	var unavailable *UnavailableError
	return errors.As(err, &unavailable)
}
