package cli

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/avagen/avagen/pkg/avagen"
	"github.com/avagen/avagen/pkg/fonts"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	size        int    // output side length in pixels
	variant     string // square, char or charsquare
	text        string // text whose first character is drawn
	border      string // square border color
	background  string // character background color
	fontColor   string // character glyph color
	fontSize    int    // glyph size in points
	font        string // font file path or installed font name
	palette     string // built-in palette name, or "random"
	colors      string // comma-separated color list, overrides palette
	blur        int    // gaussian blur radius
	rotate      int    // mosaic rotation in degrees
	squares     int    // squares per axis
	seed        uint64 // RNG seed for reproducible output
	out         string // output file path
	count       int    // number of avatars to render
	interactive bool   // pick the variant interactively
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{size: 120, variant: "square", count: 1}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render avatars to PNG files",
		Long: `Render one or more avatars to PNG files.

Examples:
  avagen generate --size 240 --border "#2c3e50"
  avagen generate --variant char --text "Ann" --background "#1976D2"
  avagen generate --variant charsquare --text Ann --border black --seed 42
  avagen generate --count 8 --border black --palette material`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, &opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.size, "size", "s", opts.size, "avatar side length in pixels")
	f.StringVar(&opts.variant, "variant", opts.variant, "avatar variant (square, char, charsquare)")
	f.StringVarP(&opts.text, "text", "t", "", "text whose first character is drawn")
	f.StringVar(&opts.border, "border", "", "square border color (hex or named)")
	f.StringVar(&opts.background, "background", "", "character background color (random if empty)")
	f.StringVar(&opts.fontColor, "font-color", "", "glyph color (default white)")
	f.IntVar(&opts.fontSize, "font-size", 0, "glyph size in points (default 60% of size)")
	f.StringVar(&opts.font, "font", "", "font file or installed font name (bundled default if empty)")
	f.StringVar(&opts.palette, "palette", "", "color palette (flat, material, random)")
	f.StringVar(&opts.colors, "colors", "", "comma-separated square colors, overrides --palette")
	f.IntVar(&opts.blur, "blur", 0, "gaussian blur radius")
	f.IntVar(&opts.rotate, "rotate", 0, "mosaic rotation in degrees")
	f.IntVar(&opts.squares, "squares", 0, "squares per axis (random 3-4 if unset)")
	f.Uint64Var(&opts.seed, "seed", 0, "RNG seed for reproducible output")
	f.StringVarP(&opts.out, "out", "o", "", "output file path")
	f.IntVarP(&opts.count, "count", "n", opts.count, "number of avatars to render")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "pick the variant interactively")

	return cmd
}

// runGenerate renders opts.count avatars and reports the written files.
func (c *CLI) runGenerate(cmd *cobra.Command, opts *generateOpts) error {
	logger := loggerFromContext(cmd.Context())
	applyGenerateConfig(cmd, opts, configFromContext(cmd.Context()))

	if opts.interactive {
		v, err := pickVariant()
		if err != nil {
			return err
		}
		opts.variant = string(v)
	}

	variant, err := avagen.ParseVariant(opts.variant)
	if err != nil {
		return err
	}

	cfg, err := opts.avatarConfig(cmd)
	if err != nil {
		return err
	}

	if opts.count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", opts.count)
	}
	if opts.count > 1 && opts.out != "" {
		printWarning("--out is ignored when rendering multiple avatars")
	}

	prog := newProgress(logger)
	spin := newSpinnerWithContext(cmd.Context(), "Rendering avatar...")
	spin.Start()

	var files []string
	for i := 0; i < opts.count; i++ {
		if opts.count > 1 {
			spin.UpdateMessage("Rendering avatar %d/%d...", i+1, opts.count)
		}

		// A fixed seed still yields distinct files in a batch: each file
		// offsets the seed by its index.
		fileCfg := cfg
		if cfg.Seed != nil {
			s := *cfg.Seed + uint64(i)
			fileCfg.Seed = &s
		}

		img, err := avagen.Generate(variant, fileCfg)
		if err != nil {
			spin.StopWithError(fmt.Sprintf("Rendering failed: %v", err))
			return err
		}

		path := opts.outputPath(variant, i)
		if err := writePNG(path, img); err != nil {
			spin.StopWithError(fmt.Sprintf("Writing %s failed: %v", path, err))
			return err
		}
		files = append(files, path)
	}

	spin.Stop()
	if spin.Cancelled() {
		return cmd.Context().Err()
	}

	if opts.count == 1 {
		printSuccess("Rendered %s avatar (%dpx)", variant, cfg.Size)
	} else {
		printSuccess("Rendered %d %s avatars (%dpx)", opts.count, variant, cfg.Size)
	}
	for _, path := range files {
		printFile(path)
	}
	if cfg.Seed != nil {
		printDetail("seed: %d", *cfg.Seed)
	}
	printNewline()
	printNextStep("Serve avatars over HTTP", "avagen serve")

	prog.done(fmt.Sprintf("Generated %d avatar(s)", len(files)))
	return nil
}

// applyGenerateConfig fills unset flags from the config file.
func applyGenerateConfig(cmd *cobra.Command, opts *generateOpts, cfg *fileConfig) {
	flags := cmd.Flags()
	intDefault(&opts.size, flags.Changed("size"), cfg.Generate.Size)
	if !flags.Changed("variant") && cfg.Generate.Variant != "" {
		opts.variant = cfg.Generate.Variant
	}
	stringDefault(&opts.border, flags.Changed("border"), cfg.Generate.Border)
	stringDefault(&opts.background, flags.Changed("background"), cfg.Generate.Background)
	stringDefault(&opts.fontColor, flags.Changed("font-color"), cfg.Generate.FontColor)
	stringDefault(&opts.font, flags.Changed("font"), cfg.Generate.Font)
	stringDefault(&opts.palette, flags.Changed("palette"), cfg.Generate.Palette)
	stringDefault(&opts.out, flags.Changed("out"), cfg.Generate.Out)
}

// avatarConfig maps the flags onto a generation config. Optional numeric
// flags only count when explicitly set, so zero stays meaningful.
func (o *generateOpts) avatarConfig(cmd *cobra.Command) (avagen.Config, error) {
	flags := cmd.Flags()

	fontPath, err := fonts.Resolve(o.font)
	if err != nil {
		return avagen.Config{}, err
	}

	cfg := avagen.Config{
		Size:              o.size,
		Text:              o.text,
		SquareBorderColor: o.border,
		BackgroundColor:   o.background,
		FontColor:         o.fontColor,
		FontSize:          o.fontSize,
		Font:              fontPath,
		SquaresPerAxis:    o.squares,
	}

	if flags.Changed("blur") {
		cfg.BlurRadius = &o.blur
	}
	if flags.Changed("rotate") {
		cfg.RotateDegrees = &o.rotate
	}
	if flags.Changed("seed") {
		cfg.Seed = &o.seed
	}

	if o.colors != "" {
		cfg.ColorList = strings.Split(o.colors, ",")
	} else if o.palette != "" {
		if o.palette == "random" {
			cfg.ColorList = []string{}
		} else {
			p, err := avagen.PaletteByName(o.palette)
			if err != nil {
				return avagen.Config{}, err
			}
			cfg.ColorList = p
		}
	}
	return cfg, nil
}

// outputPath picks the file name for the i-th avatar in a batch. Batches
// get unique UUID-suffixed names so repeated runs never overwrite.
func (o *generateOpts) outputPath(variant avagen.Variant, i int) string {
	if o.count == 1 && o.out != "" {
		return o.out
	}
	if o.count == 1 {
		return fmt.Sprintf("%s.png", variant)
	}
	return fmt.Sprintf("%s-%s.png", variant, uuid.NewString()[:8])
}

// writePNG writes img to path as PNG.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := avagen.EncodePNG(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
