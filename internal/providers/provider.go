// Package providers talks to the LLM backends the chat service proxies to.
package providers

import (
	"context"
	"sort"
	"strings"

	"github.com/diogo/chatwidget/internal/config"
	apierrors "github.com/diogo/chatwidget/internal/errors"
	"github.com/diogo/chatwidget/internal/models"
)

// Provider is one LLM backend
type Provider interface {
	Name() string
	// ListModels returns the model identifiers the provider can serve.
	ListModels(ctx context.Context) ([]string, error)
	// Send answers message given the prior conversation. An empty model
	// selects the provider's default.
	Send(ctx context.Context, message string, history []models.Turn, model string) (string, error)
}

// Registry resolves provider names
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates a registry holding ps
func NewRegistry(ps ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	for _, p := range ps {
		r.Register(p)
	}
	return r
}

// NewDefaultRegistry creates the gemini and lmstudio providers from cfg,
// sharing one HTTP client.
func NewDefaultRegistry(cfg config.ServerConfig, doer Doer) *Registry {
	return NewRegistry(
		NewGemini(doer, GeminiConfig{
			APIKey:     cfg.GeminiAPIKey,
			Model:      cfg.GeminiModel,
			APIVersion: cfg.GeminiAPIVersion,
			BaseURL:    cfg.GeminiBaseURL,
		}),
		NewLMStudio(doer, LMStudioConfig{
			BaseURL:     cfg.LMStudioBaseURL,
			Model:       cfg.LMStudioModel,
			APIKey:      cfg.LMStudioAPIKey,
			Temperature: cfg.LMStudioTemperature,
		}),
	)
}

// Register adds p, replacing any provider with the same name
func (r *Registry) Register(p Provider) {
	r.providers[strings.ToLower(p.Name())] = p
}

// Get returns the provider called name (case-insensitive)
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[strings.ToLower(name)]
	if !ok {
		return nil, apierrors.NewUnknownProviderError(name)
	}
	return p, nil
}

// Names returns the registered provider names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
