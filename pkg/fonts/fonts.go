// Package fonts provides the bundled default typeface and font file loading
// for glyph rendering.
//
// The default face is the Go Regular typeface shipped with
// golang.org/x/image, so avatars render without any font files installed.
// Callers may supply their own TrueType/OpenType files instead.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/avagen/avagen/pkg/errors"
)

// Parsed default font (computed once on first access).
var (
	defaultFont *truetype.Font
	defaultErr  error
	defaultOnce sync.Once
)

// Default returns the parsed bundled typeface.
func Default() (*truetype.Font, error) {
	defaultOnce.Do(func() {
		defaultFont, defaultErr = truetype.Parse(goregular.TTF)
	})
	if defaultErr != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, defaultErr,
			"failed to parse bundled font")
	}
	return defaultFont, nil
}

// Load parses the font file at path. An empty path returns the bundled
// default face.
func Load(path string) (*truetype.Font, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err,
			"failed to read font file %s", path)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err,
			"failed to parse font file %s", path)
	}
	return f, nil
}

// Face loads the font at path (or the default) and rasterizes it at the
// given size in points.
func Face(path string, size float64) (font.Face, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		Hinting: font.HintingFull,
	}), nil
}

// Resolve turns a font reference into a file path. A path to an existing
// file passes through; anything else is treated as a font name and looked
// up among the installed system fonts.
func Resolve(ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	if _, err := os.Stat(ref); err == nil {
		return ref, nil
	}
	path, err := findfont.Find(ref)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFont, err,
			"font %q not found", ref)
	}
	return path, nil
}
