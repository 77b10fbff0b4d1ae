package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the color scheme of the chat TUI.
type Palette struct {
	Name string

	Border  lipgloss.Color
	Surface lipgloss.Color

	// User and Model color the bubble labels and borders of each role.
	User  lipgloss.Color
	Model lipgloss.Color
	Error lipgloss.Color

	Text    lipgloss.Color
	TextDim lipgloss.Color
}

// DefaultPalette is used when the configured name is unknown
const DefaultPalette = "tokyonight"

var palettes = []Palette{
	{
		Name:    "tokyonight",
		Border:  lipgloss.Color("#414868"),
		Surface: lipgloss.Color("#24283b"),
		User:    lipgloss.Color("#7aa2f7"),
		Model:   lipgloss.Color("#9ece6a"),
		Error:   lipgloss.Color("#f7768e"),
		Text:    lipgloss.Color("#c0caf5"),
		TextDim: lipgloss.Color("#565f89"),
	},
	{
		Name:    "catppuccin",
		Border:  lipgloss.Color("#45475a"),
		Surface: lipgloss.Color("#313244"),
		User:    lipgloss.Color("#89b4fa"),
		Model:   lipgloss.Color("#a6e3a1"),
		Error:   lipgloss.Color("#f38ba8"),
		Text:    lipgloss.Color("#cdd6f4"),
		TextDim: lipgloss.Color("#6c7086"),
	},
	{
		Name:    "nord",
		Border:  lipgloss.Color("#4c566a"),
		Surface: lipgloss.Color("#3b4252"),
		User:    lipgloss.Color("#88c0d0"),
		Model:   lipgloss.Color("#a3be8c"),
		Error:   lipgloss.Color("#bf616a"),
		Text:    lipgloss.Color("#eceff4"),
		TextDim: lipgloss.Color("#7b88a1"),
	},
	{
		Name:    "dracula",
		Border:  lipgloss.Color("#6272a4"),
		Surface: lipgloss.Color("#44475a"),
		User:    lipgloss.Color("#8be9fd"),
		Model:   lipgloss.Color("#50fa7b"),
		Error:   lipgloss.Color("#ff5555"),
		Text:    lipgloss.Color("#f8f8f2"),
		TextDim: lipgloss.Color("#6272a4"),
	},
}

// PaletteByName returns the palette called name
func PaletteByName(name string) (Palette, bool) {
	for _, p := range palettes {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// PaletteOrDefault returns the palette called name, or DefaultPalette
func PaletteOrDefault(name string) Palette {
	if p, ok := PaletteByName(name); ok {
		return p
	}
	p, _ := PaletteByName(DefaultPalette)
	return p
}

// PaletteNames returns the palette names in display order
func PaletteNames() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}
