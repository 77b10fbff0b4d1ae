package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/chatwidget/internal/config"
	"github.com/diogo/chatwidget/internal/render"
	"github.com/diogo/chatwidget/internal/tui"
	"github.com/diogo/chatwidget/internal/widget"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session against the chat server.

The conversation history is kept for the whole session and sent with every
message. Ctrl+P switches provider, Ctrl+O opens the model picker.
Type 'exit', 'quit', or press Ctrl+C to end the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), deps)
		},
	}
}

func runChat(ctx context.Context, deps *Dependencies) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := loadSettings(deps)

	backend, err := deps.NewBackend(cfg)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return deps.TUI.RunChat(ctx, backend, backend, chatOptions(cfg, modelFlag))
}

// chatOptions maps the user configuration onto the TUI options
func chatOptions(cfg config.Config, model string) tui.Options {
	return tui.Options{
		Providers: cfg.Providers,
		Provider:  cfg.DefaultProvider,
		Model:     model,
		Messages:  widget.MessagesFor(cfg.Locale),
		Markdown:  render.FromConfig(cfg.Markdown, render.DefaultOptions().Width),
		Palette:   render.PaletteOrDefault(cfg.TUITheme),
		Clipboard: cfg.CopyToClipboard,
	}
}
