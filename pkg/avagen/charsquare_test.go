package avagen

import (
	"testing"

	"github.com/avagen/avagen/pkg/errors"
)

func TestCharSquareOutputSize(t *testing.T) {
	img, err := Generate(CharSquare, Config{
		Size:              80,
		Text:              "Z",
		SquareBorderColor: "#000000",
		Seed:              seedPtr(9),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 80 {
		t.Errorf("output = %dx%d, want 80x80", b.Dx(), b.Dy())
	}
}

func TestCharSquareOverlaysGlyphOnMosaic(t *testing.T) {
	// With a shared seed the composite's mosaic matches the pure square
	// output; the glyph overlay must make the final rasters differ.
	cfg := Config{
		Size:              100,
		SquaresPerAxis:    4,
		Text:              "A",
		SquareBorderColor: "#000000",
		Seed:              seedPtr(42),
	}

	squareOnly, err := Generate(Square, cfg)
	if err != nil {
		t.Fatalf("Generate(Square) error = %v", err)
	}
	composite, err := Generate(CharSquare, cfg)
	if err != nil {
		t.Fatalf("Generate(CharSquare) error = %v", err)
	}

	if imagesEqual(squareOnly, composite) {
		t.Error("composite output is identical to the pure mosaic; glyph overlay missing")
	}
}

func TestCharSquareDeterministicWithSeed(t *testing.T) {
	cfg := Config{
		Size:              64,
		Text:              "K",
		SquareBorderColor: "#ffffff",
		Seed:              seedPtr(7),
	}

	a, err := Generate(CharSquare, cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := Generate(CharSquare, cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !imagesEqual(a, b) {
		t.Error("fixed seed should produce pixel-identical composite output")
	}
}

func TestCharSquareValidatesBothFieldSets(t *testing.T) {
	// square half: border color is required
	_, err := NewCharSquare(Config{Size: 50, Text: "A"})
	if !errors.Is(err, errors.ErrCodeRequiredField) {
		t.Errorf("missing border: code = %v, want %v", errors.GetCode(err), errors.ErrCodeRequiredField)
	}

	// char half: text is required
	_, err = NewCharSquare(Config{Size: 50, SquareBorderColor: "#000000"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing text: code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}
