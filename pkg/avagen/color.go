package avagen

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/avagen/avagen/pkg/errors"
)

// Palette is an ordered list of color specifications usable as a sampling
// pool. Built-in palettes carry 20 entries by convention.
type Palette []string

// PaletteFlat is the flat-UI color palette.
var PaletteFlat = Palette{
	"#1abc9c", "#2ecc71", "#3498db", "#9b59b6", "#34495e",
	"#16a085", "#27ae60", "#2980b9", "#8e44ad", "#2c3e50",
	"#f1c40f", "#e67e22", "#e74c3c", "#ecf0f1", "#95a5a6",
	"#f39c12", "#d35400", "#c0392b", "#bdc3c7", "#7f8c8d",
}

// PaletteMaterial is the material-design color palette.
var PaletteMaterial = Palette{
	"#D32F2F", "#C2185B", "#7B1FA2", "#512DA8", "#303F9F",
	"#1976D2", "#0288D1", "#0097A7", "#00796B", "#388E3C",
	"#689F38", "#AFB42B", "#FBC02D", "#FFA000", "#F57C00",
	"#E64A19", "#5D4037", "#616161", "#455A64", "#333333",
}

// PaletteByName returns a built-in palette by name ("flat" or "material").
func PaletteByName(name string) (Palette, error) {
	switch strings.ToLower(name) {
	case "flat":
		return PaletteFlat, nil
	case "material":
		return PaletteMaterial, nil
	default:
		return nil, errors.New(errors.ErrCodeUnknownPalette,
			"unknown palette: %q (must be 'flat' or 'material')", name)
	}
}

// RandomHexColor returns a uniformly random 24-bit color formatted as
// #rrggbb with lowercase hex digits.
func RandomHexColor(rng *rand.Rand) string {
	return fmt.Sprintf("#%06x", rng.IntN(1<<24))
}

// ParseColor converts a color specification into a concrete color.
// Hex strings are parsed with go-colorful; everything else is looked up in
// the SVG 1.1 named color table.
func ParseColor(spec string) (color.Color, error) {
	if strings.HasPrefix(spec, "#") {
		c, err := colorful.Hex(spec)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidColor, err,
				"invalid hex color %q", spec)
		}
		return c, nil
	}
	if c, ok := colornames.Map[strings.ToLower(spec)]; ok {
		return c, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidColor, "unknown color name: %q", spec)
}

// colorPicker samples colors from a palette, falling back to random hex
// colors when the palette is empty.
type colorPicker struct {
	colors Palette
	rng    *rand.Rand
}

// randomColor picks a uniform palette entry, or a random hex color when the
// palette is empty.
func (p colorPicker) randomColor() string {
	if len(p.colors) > 0 {
		return p.colors[p.rng.IntN(len(p.colors))]
	}
	return RandomHexColor(p.rng)
}
