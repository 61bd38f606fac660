package errors

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/image/colornames"
)

// hexColorRegex matches a 6-digit hex color specification with leading '#'.
var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateHexColor validates a hex color specification of the form #rrggbb.
func ValidateHexColor(spec string) error {
	if spec == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(spec) {
		return New(ErrCodeInvalidColor, "invalid hex color: %q (expected #rrggbb)", spec)
	}
	return nil
}

// ValidateColorSpec validates a color specification: either a #rrggbb hex
// string or a named SVG 1.1 color such as "white" or "steelblue".
func ValidateColorSpec(spec string) error {
	if spec == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if strings.HasPrefix(spec, "#") {
		return ValidateHexColor(spec)
	}
	if _, ok := colornames.Map[strings.ToLower(spec)]; !ok {
		return New(ErrCodeInvalidColor, "unknown color name: %q", spec)
	}
	return nil
}

// ValidateDisplayText validates text destined for glyph rendering.
// Only the first rune is ever drawn, but the whole string must be sane:
// non-empty and free of control characters.
func ValidateDisplayText(text string) error {
	if text == "" {
		return New(ErrCodeInvalidInput, "display text cannot be empty")
	}
	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "display text contains control characters")
		}
	}
	return nil
}

// ValidateFontPath validates a font file path for safety and plausibility.
// An empty path is allowed and means "use the bundled default face".
func ValidateFontPath(path string) error {
	if path == "" {
		return nil
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidFont, "font path contains null bytes")
	}
	lower := strings.ToLower(path)
	if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
		return New(ErrCodeInvalidFont, "unsupported font file: %q (expected .ttf or .otf)", path)
	}
	return nil
}
