package commands

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/diogo/chatwidget/internal/api"
	"github.com/diogo/chatwidget/internal/config"
	"github.com/diogo/chatwidget/internal/tui"
	"github.com/diogo/chatwidget/internal/widget"
)

// Backend is what the CLI needs from the chat server: answering turns and
// listing models.
type Backend interface {
	widget.ChatService
	widget.ModelCatalog
}

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctx context.Context, chat widget.ChatService, catalog widget.ModelCatalog, opts tui.Options) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewBackend connects to the chat server described by cfg.
	NewBackend func(cfg config.Config) (Backend, error)

	// LoadConfig reads the user configuration.
	LoadConfig func() (config.Config, error)

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Stdin is piped prompt input, or nil when stdin is a terminal.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// IsTTY reports whether Stdout is a terminal.
	IsTTY func() bool
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctx context.Context, chat widget.ChatService, catalog widget.ModelCatalog, opts tui.Options) error {
	return tui.RunChat(ctx, chat, catalog, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewBackend: newAPIBackend,
		LoadConfig: config.LoadConfig,
		TUI:        &DefaultTUI{},
		Stdin:      pipedStdin(),
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		IsTTY:      isStdoutTTY,
	}
}

// withDefaults fills the fields a partially built Dependencies left nil
func (d *Dependencies) withDefaults() *Dependencies {
	if d == nil {
		return NewDependencies()
	}
	out := *d
	if out.NewBackend == nil {
		out.NewBackend = newAPIBackend
	}
	if out.LoadConfig == nil {
		out.LoadConfig = config.LoadConfig
	}
	if out.TUI == nil {
		out.TUI = &DefaultTUI{}
	}
	if out.Stdout == nil {
		out.Stdout = os.Stdout
	}
	if out.Stderr == nil {
		out.Stderr = os.Stderr
	}
	if out.IsTTY == nil {
		out.IsTTY = func() bool { return false }
	}
	return &out
}

func newAPIBackend(cfg config.Config) (Backend, error) {
	return api.NewClient(cfg.ServerURL, api.WithTimeout(cfg.Timeout()))
}

// pipedStdin returns os.Stdin when it is a pipe or file rather than a terminal
func pipedStdin() io.Reader {
	stat, err := os.Stdin.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
		return nil
	}
	return os.Stdin
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
