package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// maxPickerItems is how many models the overlay shows at once
const maxPickerItems = 8

// modelPicker is the provider/model dropdown pair. Providers cycle in place;
// models are chosen from an overlay list.
type modelPicker struct {
	providers []string
	provider  int

	options   []string
	selected  int
	preferred string
	loading   bool

	open   bool
	cursor int
}

func newModelPicker(providers []string, provider, preferredModel string) *modelPicker {
	p := &modelPicker{providers: providers, preferred: preferredModel}
	for i, name := range providers {
		if name == provider {
			p.provider = i
		}
	}
	return p
}

func (p *modelPicker) Provider() string {
	if len(p.providers) == 0 {
		return ""
	}
	return p.providers[p.provider]
}

func (p *modelPicker) Model() string {
	if p.selected < 0 || p.selected >= len(p.options) {
		return ""
	}
	return p.options[p.selected]
}

// SetOptions replaces the model list. Like an HTML select, the first option
// is selected unless the preferred model is among them.
func (p *modelPicker) SetOptions(names []string) {
	p.options = append([]string(nil), names...)
	p.selected = 0
	for i, name := range p.options {
		if name == p.preferred {
			p.selected = i
		}
	}
	p.cursor = p.selected
}

// nextProvider selects the following provider, wrapping around.
func (p *modelPicker) nextProvider() {
	if len(p.providers) == 0 {
		return
	}
	p.provider = (p.provider + 1) % len(p.providers)
	p.preferred = ""
}

func (p *modelPicker) toggle() {
	p.open = !p.open
	p.cursor = p.selected
}

func (p *modelPicker) moveCursor(delta int) {
	n := len(p.options)
	if n == 0 {
		return
	}
	p.cursor = (p.cursor + delta + n) % n
}

func (p *modelPicker) choose() {
	if p.cursor >= 0 && p.cursor < len(p.options) {
		p.selected = p.cursor
		p.preferred = p.options[p.selected]
	}
	p.open = false
}

func (p *modelPicker) view(s styles, width int) string {
	var b strings.Builder

	b.WriteString(s.title.Render("Select a model"))
	b.WriteString(s.hint.Render(fmt.Sprintf("  (%s)", p.Provider())))
	b.WriteString("\n\n")

	switch {
	case p.loading:
		b.WriteString(s.loading.Render("  Loading models..."))
		b.WriteString("\n")
	case len(p.options) == 0:
		b.WriteString(s.hint.Render("  No models available"))
		b.WriteString("\n")
	default:
		start := 0
		if p.cursor >= maxPickerItems {
			start = p.cursor - maxPickerItems + 1
		}
		end := min(start+maxPickerItems, len(p.options))

		if start > 0 {
			b.WriteString(s.hint.Render("  ↑ more above") + "\n")
		}
		for i := start; i < end; i++ {
			cursor, style := "  ", s.pickerItem
			if i == p.cursor {
				cursor, style = s.pickerCursor.Render("▸ "), s.pickerSelected
			}
			line := cursor + style.Render(p.options[i])
			if i == p.selected {
				line += s.hint.Render("  (current)")
			}
			b.WriteString(line + "\n")
		}
		if end < len(p.options) {
			b.WriteString(s.hint.Render("  ↓ more below") + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(strings.Join([]string{
		s.statusKey.Render("↑↓") + s.statusDesc.Render(" Navigate"),
		s.statusKey.Render("Enter") + s.statusDesc.Render(" Select"),
		s.statusKey.Render("Esc") + s.statusDesc.Render(" Cancel"),
	}, "  │  "))

	return s.pickerBox.Width(max(width, 40)).Render(b.String())
}

// summary is the provider/model label for the header
func (p *modelPicker) summary(s styles) string {
	model := p.Model()
	if model == "" {
		model = "default"
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		s.subtitle.Render(p.Provider()),
		s.hint.Render(" / "),
		s.subtitle.Render(model),
	)
}
