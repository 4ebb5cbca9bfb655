package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// mergeProps overlays resume-derived props on a variant's defaults. A populated
// resume field always wins and an empty one keeps the default.
func mergeProps(defaults, derived types.SectionProps) (types.SectionProps, error) {
	section := derived.Section()
	if defaults != nil && defaults.Section() != section {
		return nil, fmt.Errorf("default props are for %s, not %s", defaults.Section(), section)
	}

	merged := map[string]any{}
	if defaults != nil {
		if err := overlay(merged, defaults); err != nil {
			return nil, err
		}
	}
	if err := overlay(merged, derived); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to encode merged props: %w", err)
	}
	return types.DecodeSectionProps(section, raw)
}

func overlay(dst map[string]any, props types.SectionProps) error {
	raw, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("failed to encode %s props: %w", props.Section(), err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("failed to decode %s props: %w", props.Section(), err)
	}
	for k, v := range fields {
		if _, ok := dst[k]; ok && isEmptyValue(v) {
			continue
		}
		dst[k] = v
	}
	return nil
}

// isEmptyValue reports whether a decoded JSON value carries no data. Empty
// derived values are emitted for shape contracts and must not erase defaults.
func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	}
	return false
}
