// Package avagen generates small square avatar images from geometric and
// typographic primitives.
//
// Three variants are supported:
//   - Square: a blurred mosaic of colored squares, rotated and cropped so
//     the rotation artifacts never reach the image boundary.
//   - Char: a single uppercased initial centered on a colored background.
//   - CharSquare: the square mosaic with the initial drawn on top.
//
// Generators are constructed from a Config via the New factory (or the
// per-variant constructors) and produce exactly one size×size raster per
// Generate call. All field validation happens at construction time and
// fails with structured errors from pkg/errors; Generate either returns a
// finished image.Image or an error, never a partial result.
//
// # Example
//
//	gen, err := avagen.New(avagen.Square, avagen.Config{
//	    Size:              256,
//	    SquareBorderColor: "#000000",
//	})
//	if err != nil {
//	    return err
//	}
//	img, err := gen.Generate()
//
// Generators hold their own canvas and PRNG; two generator instances may be
// used from different goroutines, but a single instance is not safe for
// concurrent use.
package avagen
