package resume

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// LoadResume reads, validates and normalizes a resume JSON file
func LoadResume(path string) (*types.ResumeDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return DecodeResume(content)
}

// DecodeResume validates raw JSON against the resume schema, unmarshals it and
// normalizes the result.
func DecodeResume(data []byte) (*types.ResumeDocument, error) {
	if err := schemas.ValidateJSON(schemas.Resume, data); err != nil {
		return nil, &LoadError{
			Message: "resume does not match schema",
			Cause:   err,
		}
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	return Normalize(&doc), nil
}
