package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/chatwidget/internal/models"
	"github.com/diogo/chatwidget/internal/render"
	"github.com/diogo/chatwidget/internal/widget"
)

// Message types for the TUI
type (
	chatDoneMsg struct {
		outcome widget.Outcome
	}
	modelsLoadedMsg struct {
		list widget.ModelList
	}
	copiedMsg struct {
		err error
	}
)

// Options configures the chat TUI
type Options struct {
	// Providers enables the model picker when non-empty.
	Providers []string
	Provider  string
	Model     string

	Messages  widget.Messages
	Markdown  render.Options
	Palette   render.Palette
	Clipboard bool
	CharLimit int
}

// Model is the bubbletea model of the chat widget
type Model struct {
	ctx    context.Context
	widget *widget.Widget
	form   *inputForm
	pane   *bubblePane
	picker *modelPicker

	viewport viewport.Model
	spinner  spinner.Model
	styles   styles
	markdown render.Options

	clipboard bool
	note      string
	ready     bool
	width     int
	height    int
}

// NewChatModel creates the chat TUI. catalog may be nil, in which case the
// model picker is disabled.
func NewChatModel(ctx context.Context, chat widget.ChatService, catalog widget.ModelCatalog, opts Options) Model {
	if opts.Palette.Name == "" {
		opts.Palette = render.PaletteOrDefault("")
	}
	if opts.Messages == (widget.Messages{}) {
		opts.Messages = widget.MessagesFor("")
	}
	if opts.Markdown == (render.Options{}) {
		opts.Markdown = render.DefaultOptions()
	}

	st := newStyles(opts.Palette)
	form := newInputForm(st, opts.CharLimit)
	pane := newBubblePane()

	wopts := []widget.Option{widget.WithMessages(opts.Messages)}
	var picker *modelPicker
	if catalog != nil && len(opts.Providers) > 0 {
		picker = newModelPicker(opts.Providers, opts.Provider, opts.Model)
		wopts = append(wopts, widget.WithModelPicker(picker, catalog))
	}

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = st.loading

	return Model{
		ctx:       ctx,
		widget:    widget.New(pane, form, chat, wopts...),
		form:      form,
		pane:      pane,
		picker:    picker,
		spinner:   sp,
		styles:    st,
		markdown:  opts.Markdown,
		clipboard: opts.Clipboard && !clipboard.Unsupported,
	}
}

// Init starts the cursor blink and the first model load
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.loadModels())
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.picker != nil && m.picker.open {
		if km, ok := msg.(tea.KeyMsg); ok {
			return m.updatePicker(km)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if m.widget.Loading() {
				return m, nil
			}
			input := strings.TrimSpace(m.form.Value())
			if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
				return m, tea.Quit
			}
			m.note = ""
			pending, ok := m.widget.Begin(m.form.Value())
			if !ok {
				return m, nil
			}
			m.layout()
			return m, tea.Batch(m.send(pending), m.spinner.Tick)

		case "ctrl+p":
			if m.picker != nil {
				m.picker.nextProvider()
				m.refresh()
				return m, m.loadModels()
			}
			return m, nil

		case "ctrl+o":
			if m.picker != nil {
				m.picker.toggle()
			}
			return m, nil

		case "ctrl+y":
			return m, m.copyLastReply()
		}

	case chatDoneMsg:
		m.widget.Finish(msg.outcome)
		m.layout()

	case modelsLoadedMsg:
		if m.widget.FinishLoadModels(msg.list) {
			m.picker.loading = false
		}
		m.refresh()

	case copiedMsg:
		if msg.err != nil {
			m.note = "Copy failed: " + msg.err.Error()
		} else {
			m.note = "Copied last reply"
		}

	case spinner.TickMsg:
		if m.widget.Loading() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
			m.refresh()
		}
	}

	// Only keys reach the textarea, and only while it is enabled
	if km, ok := msg.(tea.KeyMsg); ok && !m.form.disabled {
		before := m.form.visualRows()
		m.form.ta, cmd = m.form.ta.Update(km)
		cmds = append(cmds, cmd)
		if m.form.visualRows() != before {
			m.layout()
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "ctrl+o":
		m.picker.toggle()
	case "up", "k":
		m.picker.moveCursor(-1)
	case "down", "j":
		m.picker.moveCursor(1)
	case "enter":
		m.picker.choose()
	}
	return m, nil
}

// send runs the network half of a submission off the event loop
func (m Model) send(p widget.Pending) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return chatDoneMsg{outcome: p.Send(ctx)}
	}
}

// loadModels starts a model-list refresh for the selected provider
func (m Model) loadModels() tea.Cmd {
	load, ok := m.widget.BeginLoadModels()
	if !ok {
		return nil
	}
	m.picker.loading = true
	ctx := m.ctx
	return func() tea.Msg {
		return modelsLoadedMsg{list: load.Fetch(ctx)}
	}
}

func (m Model) copyLastReply() tea.Cmd {
	if !m.clipboard {
		return nil
	}
	history := m.widget.History()
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == models.RoleModel {
			reply := history[i].Content
			return func() tea.Msg {
				return copiedMsg{err: clipboard.WriteAll(reply)}
			}
		}
	}
	return nil
}

// layout recomputes component sizes after a resize or input growth
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	contentWidth := max(m.width-4, 20)

	m.form.ta.SetWidth(contentWidth - 4)
	m.form.autogrow()

	headerHeight := 3
	inputHeight := m.form.ta.Height() + 3
	statusHeight := 1
	vpHeight := max(m.height-headerHeight-inputHeight-statusHeight-2, 3)

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.viewport.KeyMap = viewportKeys()
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.refresh()
}

// viewportKeys keeps plain letters and arrows for the input field
func viewportKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		Up:       key.NewBinding(key.WithKeys("ctrl+up")),
		Down:     key.NewBinding(key.WithKeys("ctrl+down")),
	}
}

// refresh redraws the bubbles into the viewport
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderBubbles())
	if m.pane.takeFollow() {
		m.viewport.GotoBottom()
	}
}

func (m Model) renderBubbles() string {
	bubbles := m.pane.Bubbles()
	width := max(m.viewport.Width-6, 10)

	var b strings.Builder
	for i, bubble := range bubbles {
		if i > 0 {
			b.WriteString("\n")
		}
		switch {
		case bubble.Role == models.RoleUser:
			b.WriteString(m.styles.userLabel.Render("● You") + "\n")
			b.WriteString(m.styles.userBubble.Width(width).Render(bubble.Text))
		case m.isPlaceholder(i, bubble):
			b.WriteString(m.styles.modelLabel.Render("✦ Model") + "\n")
			b.WriteString(m.styles.modelBubble.Render(m.spinner.View() + " " + bubble.Text))
		case m.isError(bubble):
			b.WriteString(m.styles.modelLabel.Render("✦ Model") + "\n")
			b.WriteString(m.styles.errorBubble.Width(width).Render(bubble.Text))
		default:
			b.WriteString(m.styles.modelLabel.Render("✦ Model") + "\n")
			reply := render.Reply(bubble.Text, m.markdown.WithWidth(width-4))
			b.WriteString(m.styles.modelBubble.Width(width).Render(reply))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) isPlaceholder(i int, b widget.Bubble) bool {
	return m.widget.Loading() && i == m.pane.Len()-1 && b.Text == models.PlaceholderText
}

func (m Model) isError(b widget.Bubble) bool {
	return m.widget.IsError(b.ID)
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return m.styles.loading.Render("  Initializing...")
	}
	if m.picker != nil && m.picker.open {
		return m.picker.view(m.styles, m.width-8)
	}

	contentWidth := m.viewport.Width
	sections := []string{m.renderHeader(contentWidth)}

	body := m.viewport.View()
	if m.pane.Len() == 0 {
		body = m.renderWelcome()
	}
	sections = append(sections, m.styles.messages.Width(contentWidth).Height(m.viewport.Height).Render(body))

	input := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.inputLabel.Render("You"),
		m.form.ta.View(),
	)
	sections = append(sections, m.styles.input.Width(contentWidth).Render(input))
	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(width int) string {
	parts := []string{m.styles.title.Render("✦ Chat")}
	if m.picker != nil {
		parts = append(parts, m.styles.hint.Render("  •  "), m.picker.summary(m.styles))
	}
	return m.styles.header.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Center, parts...))
}

func (m Model) renderWelcome() string {
	width := max(m.viewport.Width-4, 10)
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.welcomeIcon.Width(width).Render("✦"),
		"",
		m.styles.welcomeTitle.Width(width).Render("Welcome"),
		"",
		m.styles.welcomeText.Width(width).Render("Start a conversation by typing a message below"),
	)
	top := max((m.viewport.Height-lipgloss.Height(content))/2, 0)
	return strings.Repeat("\n", top) + content
}

func (m Model) renderStatusBar(width int) string {
	type shortcut struct{ key, desc string }
	shortcuts := []shortcut{{"Enter", "Send"}, {"Alt+Enter", "Newline"}}
	if m.picker != nil {
		shortcuts = append(shortcuts, shortcut{"^P", "Provider"}, shortcut{"^O", "Model"})
	}
	if m.clipboard {
		shortcuts = append(shortcuts, shortcut{"^Y", "Copy"})
	}
	shortcuts = append(shortcuts, shortcut{"Esc", "Quit"})

	items := make([]string, 0, len(shortcuts)+1)
	for _, s := range shortcuts {
		items = append(items, m.styles.statusKey.Render(s.key)+m.styles.statusDesc.Render(" "+s.desc))
	}
	if m.note != "" {
		items = append(items, m.styles.hint.Render(m.note))
	}
	return m.styles.statusBar.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// RunChat starts the chat TUI
func RunChat(ctx context.Context, chat widget.ChatService, catalog widget.ModelCatalog, opts Options) error {
	m := NewChatModel(ctx, chat, catalog, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
