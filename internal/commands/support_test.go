package commands

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/diogo/chatwidget/internal/config"
	"github.com/diogo/chatwidget/internal/models"
	"github.com/diogo/chatwidget/internal/tui"
	"github.com/diogo/chatwidget/internal/widget"
)

// mockBackend records chat and model requests
type mockBackend struct {
	reply     string
	chatErr   error
	models    []string
	modelsErr error

	requests  []models.ChatRequest
	providers []string
}

func (m *mockBackend) Chat(_ context.Context, req models.ChatRequest) (string, error) {
	m.requests = append(m.requests, req)
	return m.reply, m.chatErr
}

func (m *mockBackend) Models(_ context.Context, provider string) ([]string, error) {
	m.providers = append(m.providers, provider)
	return m.models, m.modelsErr
}

// mockTUI records the arguments RunChat was called with
type mockTUI struct {
	called  bool
	chat    widget.ChatService
	catalog widget.ModelCatalog
	opts    tui.Options
	err     error
}

func (m *mockTUI) RunChat(_ context.Context, chat widget.ChatService, catalog widget.ModelCatalog, opts tui.Options) error {
	m.called = true
	m.chat = chat
	m.catalog = catalog
	m.opts = opts
	return m.err
}

// testEnv is a Dependencies wired to in-memory collaborators
type testEnv struct {
	deps    *Dependencies
	backend *mockBackend
	tui     *mockTUI
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer

	// gotConfig is the configuration the last backend was created with
	gotConfig config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	resetFlags(t)

	env := &testEnv{
		backend: &mockBackend{reply: "Hi there"},
		tui:     &mockTUI{},
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
	}
	env.deps = &Dependencies{
		NewBackend: func(cfg config.Config) (Backend, error) {
			env.gotConfig = cfg
			return env.backend, nil
		},
		LoadConfig: func() (config.Config, error) { return config.DefaultConfig(), nil },
		TUI:        env.tui,
		Stdout:     env.stdout,
		Stderr:     env.stderr,
		IsTTY:      func() bool { return false },
	}
	return env
}

// withStdin pipes input into the environment
func (e *testEnv) withStdin(input string) *testEnv {
	e.deps.Stdin = io.Reader(bytes.NewBufferString(input))
	return e
}

// execute runs the root command with args
func (e *testEnv) execute(args ...string) error {
	cmd := NewRootCmd(e.deps)
	cmd.SetArgs(args)
	cmd.SetOut(e.stdout)
	cmd.SetErr(e.stderr)
	return cmd.Execute()
}

// resetFlags clears the package-level flag variables before and after a test
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		serverFlag = ""
		providerFlag = ""
		modelFlag = ""
		outputFlag = ""
		fileFlag = ""
		verboseFlag = false
	}
	reset()
	t.Cleanup(reset)
}
