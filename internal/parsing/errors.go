package parsing

import (
	"errors"
	"fmt"

	"github.com/jonathan/portfolio-builder/internal/schemas"
)

// InputError rejects resume text before it reaches the model
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ProviderError wraps a failed model call. Op names the extraction step.
type ProviderError struct {
	Op    string
	Cause error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("model call failed during %s: %v", e.Op, e.Cause)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// ExtractionError reports model output that is not a usable resume. Fields
// carries the schema paths the output violated, when any.
type ExtractionError struct {
	Reason string
	Fields []schemas.FieldError
	Cause  error
}

func newExtractionError(reason string, cause error) *ExtractionError {
	e := &ExtractionError{Reason: reason, Cause: cause}
	var schemaErr *schemas.ValidationError
	if errors.As(cause, &schemaErr) {
		e.Fields = schemaErr.Errors
	}
	return e
}

func (e *ExtractionError) Error() string {
	switch {
	case len(e.Fields) > 0:
		return fmt.Sprintf("extraction failed: %s (%d invalid fields)", e.Reason, len(e.Fields))
	case e.Cause != nil:
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Cause)
	default:
		return "extraction failed: " + e.Reason
	}
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// Details renders Fields as "path: message" lines.
func (e *ExtractionError) Details() []string {
	if len(e.Fields) == 0 {
		return nil
	}
	out := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		out[i] = f.Field + ": " + f.Message
	}
	return out
}
