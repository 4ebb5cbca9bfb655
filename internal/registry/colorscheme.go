package registry

import "github.com/jonathan/portfolio-builder/internal/types"

// ApplyColorScheme overlays a scheme's palette onto base and returns the result.
// Background, text, primary and secondary colors are always overwritten; accent,
// border and shadow colors only when the scheme defines them. base is not modified.
func ApplyColorScheme(base types.Styles, scheme types.ColorScheme) types.Styles {
	out := base
	out.BackgroundColor = scheme.Styles.BackgroundColor
	out.TextColor = scheme.Styles.TextColor
	out.PrimaryColor = scheme.Styles.PrimaryColor
	out.SecondaryColor = scheme.Styles.SecondaryColor

	if scheme.Styles.AccentColor != "" {
		out.AccentColor = scheme.Styles.AccentColor
	}
	if scheme.Styles.BorderColor != "" {
		out.BorderColor = scheme.Styles.BorderColor
	}
	if scheme.Styles.ShadowColor != "" {
		out.ShadowColor = scheme.Styles.ShadowColor
	}
	return out
}
