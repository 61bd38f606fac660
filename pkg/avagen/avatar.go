package avagen

import (
	"image"
	"io"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/avagen/avagen/pkg/errors"
)

// SizeMin is the smallest allowed output side length in pixels.
const SizeMin = 1

// Variant identifies one of the avatar generation modes.
type Variant string

// Supported avatar variants.
const (
	Square     Variant = "square"
	Char       Variant = "char"
	CharSquare Variant = "charsquare"
)

// Variants returns all supported variants in stable order.
func Variants() []Variant {
	return []Variant{Square, Char, CharSquare}
}

// ParseVariant converts a string into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(s)) {
	case Square:
		return Square, nil
	case Char:
		return Char, nil
	case CharSquare:
		return CharSquare, nil
	default:
		return "", errors.New(errors.ErrCodeUnknownVariant,
			"unknown avatar variant: %q (must be 'square', 'char' or 'charsquare')", s)
	}
}

// Generator produces a finalized square raster.
type Generator interface {
	Generate() (image.Image, error)
}

// Config carries the union of all generator fields. Per-variant constructors
// validate the fields they use and ignore the rest. Zero values mean "unset"
// and resolve to the documented defaults; pointer fields exist where the
// zero value is itself meaningful.
type Config struct {
	// Size is the output side length in pixels. Required, minimum 1.
	Size int

	// ColorList is the sampling pool for random colors. nil selects the
	// flat palette; an explicitly empty slice forces random hex colors.
	ColorList []string

	// Seed fixes the generator's PRNG for reproducible output.
	// nil seeds from the global random source.
	Seed *uint64

	// Square mosaic fields.

	// SquaresPerAxis is the grid resolution. 0 resolves to a random value
	// in [3,4], drawn once at construction.
	SquaresPerAxis int
	// BlurRadius is the gaussian blur radius, minimum 0. nil resolves to 1.
	BlurRadius *int
	// RotateDegrees rotates the working canvas. nil resolves to a random
	// value in [0,360], drawn once at construction.
	RotateDegrees *int
	// SquareBorderColor outlines each mosaic cell. Required for the square
	// variants.
	SquareBorderColor string

	// Character fields.

	// Text supplies the glyph: its first rune, uppercased, is drawn.
	// Required for the character variants; must be non-empty.
	Text string
	// Font is a TrueType/OpenType file path. Empty selects the bundled
	// default face.
	Font string
	// BackgroundColor fills the canvas behind the glyph. Empty resolves to
	// a random color from ColorList, drawn once at construction.
	BackgroundColor string
	// FontColor draws the glyph. Empty resolves to "white".
	FontColor string
	// FontSize is the face size in points, minimum 1. 0 resolves to
	// floor(0.6×Size).
	FontSize int
}

// New constructs the generator for the requested variant.
// It fails with an UNKNOWN_VARIANT error for anything outside the fixed set.
func New(v Variant, cfg Config) (Generator, error) {
	switch v {
	case Square:
		return NewSquare(cfg)
	case Char:
		return NewChar(cfg)
	case CharSquare:
		return NewCharSquare(cfg)
	default:
		return nil, errors.New(errors.ErrCodeUnknownVariant,
			"unknown avatar variant: %q", v)
	}
}

// Generate constructs a fresh generator for the variant and immediately runs
// it. Nothing is cached or reused across calls.
func Generate(v Variant, cfg Config) (image.Image, error) {
	gen, err := New(v, cfg)
	if err != nil {
		return nil, err
	}
	return gen.Generate()
}

// EncodePNG writes img to w in PNG format.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// Shared field declarations.
var (
	sizeField = Field{
		Name:     "size",
		Required: true,
		Validators: []Validator{
			TypeValidator{Kinds: intKinds},
			MinValueValidator{Min: SizeMin},
		},
	}

	colorListField = Field{
		Name:    "colorList",
		Default: []string(PaletteFlat),
		Validators: []Validator{
			TypeValidator{Kinds: sliceKinds},
		},
	}
)

// resolveSize validates the shared size field.
func resolveSize(size int) (int, error) {
	v, err := sizeField.Resolve(intOrNil(size))
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// resolveColorList validates the sampling pool. The default palette is
// cloned so later mutation of package state or caller slices cannot leak
// into a constructed generator.
func resolveColorList(colors []string) (Palette, error) {
	var raw any
	if colors != nil {
		raw = colors
	}
	v, err := colorListField.Resolve(raw)
	if err != nil {
		return nil, err
	}
	return Palette(slices.Clone(v.([]string))), nil
}

// newRNG builds the per-generator random source. Construction draws from it
// in a fixed order, so a fixed seed yields identical output.
func newRNG(seed *uint64) *rand.Rand {
	s := rand.Uint64()
	if seed != nil {
		s = *seed
	}
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}
