package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/diogo/chatwidget/internal/widget"
)

// Input height bounds, in rows
const (
	minInputRows = 1
	maxInputRows = 6
)

// inputForm adapts a textarea to widget.Form. The textarea is both the text
// field and, via enter, the submit control, so disabling blurs it.
type inputForm struct {
	ta       textarea.Model
	disabled bool
}

func newInputForm(s styles, charLimit int) *inputForm {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = charLimit
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(s.palette.Text)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(s.palette.TextDim)
	ta.BlurredStyle = ta.FocusedStyle
	ta.SetHeight(minInputRows)
	ta.Focus()

	return &inputForm{ta: ta}
}

func (f *inputForm) Value() string { return f.ta.Value() }

func (f *inputForm) Clear() {
	f.ta.Reset()
	f.autogrow()
}

func (f *inputForm) SetDisabled(disabled bool) {
	f.disabled = disabled
	if disabled {
		f.ta.Blur()
		return
	}
	f.ta.Focus()
}

// autogrow resets the height and then fits it to the content, counting
// soft-wrapped rows as well as hard newlines.
func (f *inputForm) autogrow() {
	f.ta.SetHeight(minInputRows)
	f.ta.SetHeight(widget.FitRows(f.visualRows(), minInputRows, maxInputRows))
}

// visualRows is the number of screen rows the content occupies at the
// current width. Every logical line takes at least one row.
func (f *inputForm) visualRows() int {
	width := f.ta.Width()
	rows := 0
	for _, line := range strings.Split(f.ta.Value(), "\n") {
		w := runewidth.StringWidth(line)
		if width <= 0 || w <= width {
			rows++
			continue
		}
		rows += (w + width - 1) / width
	}
	return rows
}
