package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/avagen/avagen/pkg/avagen"
)

// palettesCommand creates the palettes command.
func (c *CLI) palettesCommand() *cobra.Command {
	var showHex bool

	cmd := &cobra.Command{
		Use:   "palettes",
		Short: "Show the built-in color palettes",
		RunE: func(cmd *cobra.Command, args []string) error {
			printPalette("flat", avagen.PaletteFlat, showHex)
			printNewline()
			printPalette("material", avagen.PaletteMaterial, showHex)
			printNewline()
			printNextStep("Use a palette", "avagen generate --palette material --border black")
			return nil
		},
	}

	cmd.Flags().BoolVar(&showHex, "hex", false, "list hex values instead of swatches")
	return cmd
}

// printPalette renders a palette as a row of colored swatches, or as hex
// values when the terminal can't show colors usefully.
func printPalette(name string, palette avagen.Palette, showHex bool) {
	if showHex {
		printKeyValue(name, strings.Join(palette, " "))
		return
	}

	var b strings.Builder
	for _, hex := range palette {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
		b.WriteString(swatch)
	}
	fmt.Println(StyleTitle.Render(name))
	fmt.Println("  " + b.String())
	printDetail("%d colors", len(palette))
}
