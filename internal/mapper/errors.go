package mapper

import (
	"fmt"
	"strings"
)

// UnknownPresetError is returned when an import names a preset the catalog lacks
type UnknownPresetError struct {
	Preset string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown preset: %s", e.Preset)
}

// UnknownColorSchemeError is returned when an import names a color scheme the catalog lacks
type UnknownColorSchemeError struct {
	Scheme string
}

func (e *UnknownColorSchemeError) Error() string {
	return fmt.Sprintf("unknown color scheme: %s", e.Scheme)
}

// LayoutError collects every rule a submitted layout breaks
type LayoutError struct {
	Issues []string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("invalid layout: %s", strings.Join(e.Issues, "; "))
}
