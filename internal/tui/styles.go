// Package tui is the terminal front end of the chat widget.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/chatwidget/internal/render"
)

// styles are the lipgloss styles derived from one palette
type styles struct {
	palette render.Palette

	header   lipgloss.Style
	title    lipgloss.Style
	subtitle lipgloss.Style
	hint     lipgloss.Style

	messages lipgloss.Style

	userLabel   lipgloss.Style
	userBubble  lipgloss.Style
	modelLabel  lipgloss.Style
	modelBubble lipgloss.Style
	errorBubble lipgloss.Style

	input      lipgloss.Style
	inputLabel lipgloss.Style
	loading    lipgloss.Style

	statusBar  lipgloss.Style
	statusKey  lipgloss.Style
	statusDesc lipgloss.Style

	welcomeIcon  lipgloss.Style
	welcomeTitle lipgloss.Style
	welcomeText  lipgloss.Style

	pickerBox      lipgloss.Style
	pickerItem     lipgloss.Style
	pickerSelected lipgloss.Style
	pickerCursor   lipgloss.Style
}

func newStyles(p render.Palette) styles {
	s := styles{palette: p}

	s.header = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 2)
	s.title = lipgloss.NewStyle().Foreground(p.User).Bold(true)
	s.subtitle = lipgloss.NewStyle().Foreground(p.TextDim)
	s.hint = lipgloss.NewStyle().Foreground(p.TextDim).Italic(true)

	s.messages = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.userLabel = lipgloss.NewStyle().Foreground(p.User).Bold(true).MarginLeft(4)
	s.userBubble = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.User).
		Foreground(p.Text).
		Padding(0, 1).
		MarginLeft(4)
	s.modelLabel = lipgloss.NewStyle().Foreground(p.Model).Bold(true)
	s.modelBubble = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Model).
		Foreground(p.Text).
		Padding(0, 1).
		MarginRight(4)
	s.errorBubble = s.modelBubble.
		BorderForeground(p.Error).
		Foreground(p.Error)

	s.input = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	s.inputLabel = lipgloss.NewStyle().Foreground(p.User).Bold(true)
	s.loading = lipgloss.NewStyle().Foreground(p.Model).Bold(true)

	s.statusBar = lipgloss.NewStyle().Foreground(p.TextDim)
	s.statusKey = lipgloss.NewStyle().Foreground(p.Text).Bold(true)
	s.statusDesc = lipgloss.NewStyle().Foreground(p.TextDim)

	s.welcomeIcon = lipgloss.NewStyle().Foreground(p.Model).Align(lipgloss.Center)
	s.welcomeTitle = lipgloss.NewStyle().Foreground(p.User).Bold(true).Align(lipgloss.Center)
	s.welcomeText = lipgloss.NewStyle().Foreground(p.TextDim).Align(lipgloss.Center)

	s.pickerBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.User).
		Padding(1, 2)
	s.pickerItem = lipgloss.NewStyle().Foreground(p.Text)
	s.pickerSelected = lipgloss.NewStyle().Foreground(p.Model).Bold(true)
	s.pickerCursor = lipgloss.NewStyle().Foreground(p.Model)

	return s
}
