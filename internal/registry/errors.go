package registry

import (
	"fmt"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// VariantNotFoundError is returned when a requested variant id does not exist
// for its section. It is a configuration error and is never recovered by
// substituting another variant.
type VariantNotFoundError struct {
	Section   types.SectionType
	VariantID string
}

func (e *VariantNotFoundError) Error() string {
	return fmt.Sprintf("Variant not found: %s/%s", e.Section, e.VariantID)
}

// CatalogError represents an invalid catalog definition
type CatalogError struct {
	Message string
	Cause   error
}

func (e *CatalogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog error: %s", e.Message)
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}
