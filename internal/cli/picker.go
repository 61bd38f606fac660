package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avagen/avagen/pkg/avagen"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// variantDescriptions explains each variant in the picker.
var variantDescriptions = map[avagen.Variant]string{
	avagen.Square:     "rotated mosaic of colored squares",
	avagen.Char:       "first initial on a solid background",
	avagen.CharSquare: "initial drawn over a square mosaic",
}

// =============================================================================
// VariantListModel - Interactive variant selection
// =============================================================================

// VariantListModel is the bubbletea model for interactive variant selection.
type VariantListModel struct {
	Variants []avagen.Variant
	Cursor   int
	Selected *avagen.Variant
}

// NewVariantListModel creates a new variant list model.
func NewVariantListModel() VariantListModel {
	return VariantListModel{Variants: avagen.Variants()}
}

func (m VariantListModel) Init() tea.Cmd {
	return nil
}

func (m VariantListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Variants)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Variants[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m VariantListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Avatar Variant"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, v := range m.Variants {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-12s %s", cursor, string(v), listDimStyle.Render(variantDescriptions[v]))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// pickVariant runs the interactive variant picker and returns the chosen
// variant, or an error if the user aborted.
func pickVariant() (avagen.Variant, error) {
	model, err := tea.NewProgram(NewVariantListModel()).Run()
	if err != nil {
		return "", err
	}
	final := model.(VariantListModel)
	if final.Selected == nil {
		return "", fmt.Errorf("no variant selected")
	}
	return *final.Selected, nil
}
