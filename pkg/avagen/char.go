package avagen

import (
	"image"
	"image/color"
	"math/rand/v2"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/avagen/avagen/pkg/errors"
	"github.com/avagen/avagen/pkg/fonts"
)

// Character generator defaults.
const (
	FontColorDefault = "white"
	FontSizeMin      = 1

	// FontSizeRatio scales the default font size relative to the avatar side.
	FontSizeRatio = 0.6
)

// Character field declarations.
var (
	fontColorField = Field{
		Name:    "fontColor",
		Default: FontColorDefault,
		Validators: []Validator{
			TypeValidator{Kinds: stringKinds},
			ColorValidator{},
		},
	}

	backgroundColorField = Field{
		Name: "backgroundColor",
		Validators: []Validator{
			TypeValidator{Kinds: stringKinds},
			ColorValidator{},
		},
	}

	fontSizeField = Field{
		Name: "fontSize",
		Validators: []Validator{
			TypeValidator{Kinds: intKinds},
			MinValueValidator{Min: FontSizeMin},
		},
	}
)

// CharAvatar draws a single uppercased initial centered on a colored
// background.
type CharAvatar struct {
	size       int
	text       string
	fontPath   string
	fontSize   int
	fontColor  color.Color
	background color.Color
	picker     colorPicker
	img        image.Image
}

// NewChar validates cfg and constructs a character generator. An unset
// BackgroundColor resolves to a random color drawn once here and stays
// fixed for the rest of generation; an unset FontSize resolves to
// floor(0.6×size).
func NewChar(cfg Config) (*CharAvatar, error) {
	return newChar(cfg, newRNG(cfg.Seed), true)
}

// newChar is shared with the composite generator, which supplies its own
// canvas and therefore skips background resolution and canvas allocation.
func newChar(cfg Config, rng *rand.Rand, allocCanvas bool) (*CharAvatar, error) {
	size, err := resolveSize(cfg.Size)
	if err != nil {
		return nil, err
	}
	colors, err := resolveColorList(cfg.ColorList)
	if err != nil {
		return nil, err
	}

	if err := errors.ValidateDisplayText(cfg.Text); err != nil {
		return nil, err
	}
	if err := errors.ValidateFontPath(cfg.Font); err != nil {
		return nil, err
	}

	fontSize := cfg.FontSize
	if fontSize == 0 {
		fontSize = int(FontSizeRatio * float64(size))
	}
	fontSizeRaw, err := fontSizeField.Resolve(fontSize)
	if err != nil {
		return nil, err
	}

	fontColorRaw, err := fontColorField.Resolve(strOrNil(cfg.FontColor))
	if err != nil {
		return nil, err
	}
	fontColor, err := ParseColor(fontColorRaw.(string))
	if err != nil {
		return nil, err
	}

	a := &CharAvatar{
		size:      size,
		text:      cfg.Text,
		fontPath:  cfg.Font,
		fontSize:  fontSizeRaw.(int),
		fontColor: fontColor,
		picker:    colorPicker{colors: colors, rng: rng},
	}

	if allocCanvas {
		spec := cfg.BackgroundColor
		if spec == "" {
			spec = a.picker.randomColor()
		}
		bgRaw, err := backgroundColorField.Resolve(spec)
		if err != nil {
			return nil, err
		}
		a.background, err = ParseColor(bgRaw.(string))
		if err != nil {
			return nil, err
		}
		a.img = a.initialCanvas()
	}
	return a, nil
}

// initialCanvas allocates a size×size canvas filled with the resolved
// background color.
func (a *CharAvatar) initialCanvas() image.Image {
	dc := gg.NewContext(a.size, a.size)
	dc.SetColor(a.background)
	dc.Clear()
	return dc.Image()
}

// Generate draws the initial onto the background canvas.
func (a *CharAvatar) Generate() (image.Image, error) {
	return a.drawChar(a.img)
}

// drawChar measures the glyph and draws it centered on canvas, compensating
// the vertical position by half the glyph's rendering offset.
func (a *CharAvatar) drawChar(canvas image.Image) (image.Image, error) {
	face, err := fonts.Face(a.fontPath, float64(a.fontSize))
	if err != nil {
		return nil, err
	}
	defer face.Close()

	char := strings.ToUpper(string([]rune(a.text)[0]))

	bounds, _ := font.BoundString(face, char)
	charWidth := float64((bounds.Max.X - bounds.Min.X).Ceil())
	charHeight := float64((bounds.Max.Y - bounds.Min.Y).Ceil())
	ascent := float64(face.Metrics().Ascent.Ceil())

	// Distance from the top of the em box to the glyph's topmost pixel,
	// the equivalent of a raster font library's vertical rendering offset.
	offsetY := ascent - float64((-bounds.Min.Y).Ceil())

	dc := gg.NewContextForImage(canvas)
	imgWidth := float64(dc.Width())
	imgHeight := float64(dc.Height())

	x := (imgWidth - charWidth) / 2
	y := (imgHeight-charHeight)/2 - offsetY/2

	dc.SetFontFace(face)
	dc.SetColor(a.fontColor)
	// DrawString positions the baseline, not the glyph box top.
	dc.DrawString(char, x, y+ascent)

	return dc.Image(), nil
}
