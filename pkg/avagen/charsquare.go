package avagen

import "image"

// CharSquareAvatar composes the square mosaic with the character overlay:
// the mosaic is generated to completion, then the initial is drawn on top of
// it. The character step starts from the mosaic raster, not a fresh
// background canvas.
type CharSquareAvatar struct {
	square *SquareAvatar
	char   *CharAvatar
}

// NewCharSquare validates the union of both field sets and constructs the
// composite generator. Both halves share one PRNG so a fixed seed produces
// the same mosaic as a pure square generator with identical parameters.
func NewCharSquare(cfg Config) (*CharSquareAvatar, error) {
	rng := newRNG(cfg.Seed)

	square, err := newSquare(cfg, rng)
	if err != nil {
		return nil, err
	}
	char, err := newChar(cfg, rng, false)
	if err != nil {
		return nil, err
	}
	return &CharSquareAvatar{square: square, char: char}, nil
}

// Generate runs the square algorithm, then overlays the glyph on its output.
func (a *CharSquareAvatar) Generate() (image.Image, error) {
	img, err := a.square.Generate()
	if err != nil {
		return nil, err
	}
	return a.char.drawChar(img)
}
