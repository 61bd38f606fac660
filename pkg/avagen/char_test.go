package avagen

import (
	"image/color"
	"testing"

	"github.com/avagen/avagen/pkg/errors"
)

func TestCharOutputSize(t *testing.T) {
	for _, size := range []int{10, 50, 100} {
		img, err := Generate(Char, Config{
			Size: size,
			Text: "Ann",
			Seed: seedPtr(1),
		})
		if err != nil {
			t.Fatalf("Generate(size=%d) error = %v", size, err)
		}
		if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
			t.Errorf("size=%d: output = %dx%d", size, b.Dx(), b.Dy())
		}
	}
}

func TestCharEmptyTextFails(t *testing.T) {
	_, err := NewChar(Config{Size: 50})
	if err == nil {
		t.Fatal("NewChar with empty text error = nil, want invalid-input error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestCharOnlyFirstRuneMatters(t *testing.T) {
	// "Ann" and "Antelope" both render the glyph "A"; with identical seeds
	// and backgrounds the outputs must be pixel-identical.
	base := Config{
		Size:            64,
		BackgroundColor: "#1976D2",
		Seed:            seedPtr(42),
	}

	a := base
	a.Text = "Ann"
	b := base
	b.Text = "Antelope"

	imgA, err := Generate(Char, a)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	imgB, err := Generate(Char, b)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !imagesEqual(imgA, imgB) {
		t.Error("texts sharing a first character should render identically")
	}
}

func TestCharUppercasesFirstRune(t *testing.T) {
	base := Config{
		Size:            64,
		BackgroundColor: "#1976D2",
		Seed:            seedPtr(42),
	}

	lower := base
	lower.Text = "ann"
	upper := base
	upper.Text = "Ann"

	imgLower, err := Generate(Char, lower)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	imgUpper, err := Generate(Char, upper)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !imagesEqual(imgLower, imgUpper) {
		t.Error("lowercase and uppercase first characters should render identically")
	}
}

func TestCharGlyphIsDrawn(t *testing.T) {
	// A white glyph on a black background must leave non-background pixels.
	img, err := Generate(Char, Config{
		Size:            64,
		Text:            "W",
		BackgroundColor: "#000000",
		FontColor:       "white",
		Seed:            seedPtr(1),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	found := false
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y && !found; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r != 0 || g != 0 || b != 0 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no glyph pixels found on the background")
	}
}

func TestCharBackgroundFillsCanvas(t *testing.T) {
	// Without a glyph covering it, the corner pixel carries the background.
	img, err := Generate(Char, Config{
		Size:            64,
		Text:            "I",
		BackgroundColor: "#ff0000",
		Seed:            seedPtr(1),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	r, g, b, _ := img.At(0, 0).RGBA()
	want := color.RGBA{R: 0xff, A: 0xff}
	wr, wg, wb, _ := want.RGBA()
	if r != wr || g != wg || b != wb {
		t.Errorf("corner pixel = (%d,%d,%d), want background red", r>>8, g>>8, b>>8)
	}
}

func TestCharRandomBackgroundIsStable(t *testing.T) {
	// An unset background resolves once at construction; the same seed must
	// therefore produce the same background.
	cfg := Config{Size: 32, Text: "B", Seed: seedPtr(77)}

	a, err := Generate(Char, cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := Generate(Char, cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !imagesEqual(a, b) {
		t.Error("fixed seed should fix the random background color")
	}
}

func TestCharFieldValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		code errors.Code
	}{
		{
			name: "bad font color",
			cfg:  Config{Size: 50, Text: "A", FontColor: "notacolor"},
			code: errors.ErrCodeValidation,
		},
		{
			name: "bad background color",
			cfg:  Config{Size: 50, Text: "A", BackgroundColor: "#12"},
			code: errors.ErrCodeValidation,
		},
		{
			name: "bad font extension",
			cfg:  Config{Size: 50, Text: "A", Font: "font.woff"},
			code: errors.ErrCodeInvalidFont,
		},
		{
			name: "font size below minimum at size 1",
			cfg:  Config{Size: 1, Text: "A"},
			code: errors.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChar(tt.cfg)
			if err == nil {
				t.Fatal("NewChar() error = nil, want validation failure")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestCharMissingFontFileFailsAtGenerate(t *testing.T) {
	a, err := NewChar(Config{Size: 50, Text: "A", Font: "does-not-exist.ttf"})
	if err != nil {
		t.Fatalf("NewChar() error = %v (path plausibility is not existence)", err)
	}

	_, err = a.Generate()
	if err == nil {
		t.Fatal("Generate() error = nil, want font load failure")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFont) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFont)
	}
}
