package marketplace

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ValidationError is returned when a request fails struct or schema validation
type ValidationError struct {
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Details, "; "))
}

// NotFoundError is returned when a component does not exist or is not visible
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("marketplace component not found: %s", e.ID)
}

// ForbiddenError is returned when a non-admin attempts an admin action
type ForbiddenError struct {
	Action string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: %s requires admin rights", e.Action)
}

// ConflictError is returned when a component is not in the state an action requires
type ConflictError struct {
	ID     uuid.UUID
	Status string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("marketplace component %s is already %s", e.ID, e.Status)
}
