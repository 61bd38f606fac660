package avagen

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Blur radius bounds and defaults for the square mosaic.
const (
	BlurRadiusMin     = 0
	BlurRadiusDefault = 1
)

// Square mosaic field declarations.
var (
	squaresPerAxisField = Field{
		Name: "squaresPerAxis",
		Validators: []Validator{
			TypeValidator{Kinds: intKinds},
			MinValueValidator{Min: 1},
		},
	}

	blurRadiusField = Field{
		Name:    "blurRadius",
		Default: BlurRadiusDefault,
		Validators: []Validator{
			TypeValidator{Kinds: intKinds},
			MinValueValidator{Min: BlurRadiusMin},
		},
	}

	rotateField = Field{
		Name: "rotateDegrees",
		Validators: []Validator{
			TypeValidator{Kinds: intKinds},
		},
	}

	squareBorderField = Field{
		Name:     "squareBorderColor",
		Required: true,
		Validators: []Validator{
			TypeValidator{Kinds: stringKinds},
			ColorValidator{},
		},
	}
)

// SquareAvatar draws a rotated, cropped and blurred mosaic of colored
// squares.
type SquareAvatar struct {
	size           int
	squaresPerAxis int
	blurRadius     int
	rotateDegrees  int
	border         color.Color
	picker         colorPicker
	rng            *rand.Rand
	img            image.Image
}

// NewSquare validates cfg and constructs a square mosaic generator.
// Unset SquaresPerAxis and RotateDegrees resolve to random values drawn once
// here, as part of the field contract.
func NewSquare(cfg Config) (*SquareAvatar, error) {
	return newSquare(cfg, newRNG(cfg.Seed))
}

func newSquare(cfg Config, rng *rand.Rand) (*SquareAvatar, error) {
	size, err := resolveSize(cfg.Size)
	if err != nil {
		return nil, err
	}
	colors, err := resolveColorList(cfg.ColorList)
	if err != nil {
		return nil, err
	}

	borderRaw, err := squareBorderField.Resolve(strOrNil(cfg.SquareBorderColor))
	if err != nil {
		return nil, err
	}
	border, err := ParseColor(borderRaw.(string))
	if err != nil {
		return nil, err
	}

	blurRaw, err := blurRadiusField.Resolve(ptrOrNil(cfg.BlurRadius))
	if err != nil {
		return nil, err
	}

	rotate := cfg.RotateDegrees
	if rotate == nil {
		r := rng.IntN(361)
		rotate = &r
	}
	rotateRaw, err := rotateField.Resolve(*rotate)
	if err != nil {
		return nil, err
	}

	axis := cfg.SquaresPerAxis
	if axis == 0 {
		axis = 3 + rng.IntN(2)
	}
	axisRaw, err := squaresPerAxisField.Resolve(axis)
	if err != nil {
		return nil, err
	}

	a := &SquareAvatar{
		size:           size,
		squaresPerAxis: axisRaw.(int),
		blurRadius:     blurRaw.(int),
		rotateDegrees:  rotateRaw.(int),
		border:         border,
		picker:         colorPicker{colors: colors, rng: rng},
		rng:            rng,
	}
	a.img = a.initialCanvas()
	return a, nil
}

// initialCanvas allocates a blank working canvas of side 2×size. The
// oversized canvas leaves room for the post-rotation crop so the rotated
// square's corners never show in the output.
func (a *SquareAvatar) initialCanvas() image.Image {
	return image.NewRGBA(image.Rect(0, 0, a.size*2, a.size*2))
}

// Generate draws the mosaic grid, rotates the working canvas, crops a
// corner-biased size×size window and applies the gaussian blur.
func (a *SquareAvatar) Generate() (image.Image, error) {
	img, err := a.drawGrid(a.img)
	if err != nil {
		return nil, err
	}

	size2x := a.size * 2

	// Rotation keeps the working frame, matching the raster library's
	// default of filling exposed corners with black.
	rotated := imaging.Rotate(img, float64(a.rotateDegrees), color.Black)
	img = imaging.CropCenter(rotated, size2x, size2x)

	x0, y0 := a.cropOrigin()
	img = imaging.Crop(img, image.Rect(x0, y0, x0+a.size, y0+a.size))

	if a.blurRadius > 0 {
		img = imaging.Blur(img, float64(a.blurRadius))
	}
	return img, nil
}

// drawGrid fills the working canvas with outlined squares, each with an
// independently sampled fill color. Repeats between adjacent cells are
// allowed.
func (a *SquareAvatar) drawGrid(canvas image.Image) (image.Image, error) {
	size2x := a.size * 2
	side := size2x / a.squaresPerAxis
	if side < 1 {
		// more squares requested than pixels available
		side = 1
	}
	cells := size2x / side

	dc := gg.NewContextForImage(canvas)
	dc.SetLineWidth(1)

	for i := 0; i < cells; i++ {
		for j := 0; j < cells; j++ {
			fill, err := ParseColor(a.picker.randomColor())
			if err != nil {
				return nil, err
			}
			dc.DrawRectangle(float64(i*side), float64(j*side), float64(side), float64(side))
			dc.SetColor(fill)
			dc.FillPreserve()
			dc.SetColor(a.border)
			dc.Stroke()
		}
	}
	return dc.Image(), nil
}

// cropOrigin picks the crop window offset. Each axis chooses independently
// and uniformly between two candidates: √2·size/2 (the largest inscribed
// offset under rotation) and its mirror. The window itself is always
// size×size, so the rotated square's corners stay outside the crop.
func (a *SquareAvatar) cropOrigin() (int, int) {
	size2x := float64(a.size * 2)
	distanceA := math.Sqrt2 * float64(a.size) / 2
	distanceB := size2x - float64(a.size) - distanceA

	candidates := [2]float64{distanceA, distanceB}
	x0 := candidates[a.rng.IntN(2)]
	y0 := candidates[a.rng.IntN(2)]
	return int(x0), int(y0)
}
