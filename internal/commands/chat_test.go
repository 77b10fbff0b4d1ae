package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/diogo/chatwidget/internal/config"
	"github.com/diogo/chatwidget/internal/render"
)

func TestChatCommand(t *testing.T) {
	cmd := NewChatCmd(nil)
	if cmd.Use != "chat" {
		t.Errorf("Expected use 'chat', got %s", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.RunE == nil {
		t.Error("RunE should not be nil")
	}

	if err := cmd.Args(cmd, []string{"extra"}); err == nil {
		t.Error("chat should reject positional arguments")
	}
}

func TestChatCommand_RunsTUI(t *testing.T) {
	env := newTestEnv(t)

	if err := env.execute("chat", "--provider", "lmstudio", "-m", "qwen"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !env.tui.called {
		t.Fatal("TUI was not started")
	}
	if env.tui.chat != env.backend || env.tui.catalog != env.backend {
		t.Error("TUI should receive the backend as both chat service and catalog")
	}
	if env.tui.opts.Provider != "lmstudio" || env.tui.opts.Model != "qwen" {
		t.Errorf("opts provider/model = %q/%q", env.tui.opts.Provider, env.tui.opts.Model)
	}
}

func TestChatCommand_TUIError(t *testing.T) {
	env := newTestEnv(t)
	env.tui.err = errors.New("no tty")

	err := env.execute("chat")
	if err == nil || !strings.Contains(err.Error(), "no tty") {
		t.Errorf("expected TUI error, got %v", err)
	}
}

func TestChatOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Locale = "en"
	cfg.TUITheme = "nord"
	cfg.CopyToClipboard = true

	opts := chatOptions(cfg, "gpt-x")

	if strings.Join(opts.Providers, ",") != "gemini,lmstudio" {
		t.Errorf("Providers = %v", opts.Providers)
	}
	if opts.Provider != "gemini" || opts.Model != "gpt-x" {
		t.Errorf("Provider/Model = %q/%q", opts.Provider, opts.Model)
	}
	if opts.Messages.ChatErrorPrefix != "Error: " {
		t.Errorf("expected english messages, got %+v", opts.Messages)
	}
	if opts.Palette.Name != "nord" {
		t.Errorf("Palette = %q, want nord", opts.Palette.Name)
	}
	if !opts.Clipboard {
		t.Error("Clipboard should follow copy_to_clipboard")
	}
	if opts.Markdown.Style != cfg.Markdown.Style {
		t.Errorf("Markdown style = %q, want %q", opts.Markdown.Style, cfg.Markdown.Style)
	}

	cfg.TUITheme = "no-such-theme"
	if got := chatOptions(cfg, "").Palette.Name; got != render.DefaultPalette {
		t.Errorf("unknown theme should fall back to %s, got %s", render.DefaultPalette, got)
	}
}
