package commands

import (
	"strings"
	"testing"

	apierrors "github.com/diogo/chatwidget/internal/errors"
)

func TestModelsCommand(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		models       []string
		wantProvider string
		wantStdout   string
		wantStderr   string
	}{
		{
			name:         "default provider",
			args:         []string{"models"},
			models:       []string{"models/gemini-2.5-flash", "models/gemini-2.5-pro"},
			wantProvider: "gemini",
			wantStdout:   "models/gemini-2.5-flash\nmodels/gemini-2.5-pro\n",
		},
		{
			name:         "explicit provider is lowercased",
			args:         []string{"models", "OpenAI"},
			models:       []string{"gpt-x", "gpt-y"},
			wantProvider: "openai",
			wantStdout:   "gpt-x\ngpt-y\n",
		},
		{
			name:         "provider flag",
			args:         []string{"models", "--provider", "lmstudio"},
			models:       nil,
			wantProvider: "lmstudio",
			wantStderr:   "No models available for lmstudio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.backend.models = tt.models

			if err := env.execute(tt.args...); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if len(env.backend.providers) != 1 || env.backend.providers[0] != tt.wantProvider {
				t.Errorf("providers requested = %v, want [%s]", env.backend.providers, tt.wantProvider)
			}
			if env.stdout.String() != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", env.stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", env.stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestModelsCommand_Error(t *testing.T) {
	env := newTestEnv(t)
	env.backend.modelsErr = apierrors.NewAPIError(400, "/api/models", "Unknown provider: foo")

	err := env.execute("models", "foo")
	if err == nil || !strings.Contains(err.Error(), "Unknown provider: foo") {
		t.Errorf("expected backend error, got %v", err)
	}
}
