package providers

import (
	"context"
	"fmt"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/chatwidget/internal/errors"
	"github.com/diogo/chatwidget/internal/models"
)

// autoModel asks LM Studio to use whichever model is loaded first
const autoModel = "auto"

// LMStudioConfig configures the LM Studio provider
type LMStudioConfig struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float64
}

// LMStudio talks to LM Studio's OpenAI-compatible server.
type LMStudio struct {
	doer Doer
	cfg  LMStudioConfig
}

// NewLMStudio creates an LM Studio provider
func NewLMStudio(doer Doer, cfg LMStudioConfig) *LMStudio {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &LMStudio{doer: doer, cfg: cfg}
}

// Name returns "lmstudio"
func (l *LMStudio) Name() string { return models.ProviderLMStudio }

// ListModels returns data[].id from /models
func (l *LMStudio) ListModels(ctx context.Context) ([]string, error) {
	resp, err := doJSON(ctx, l.doer, fhttp.MethodGet, l.cfg.BaseURL+"/models", l.headers(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "lmstudio: list models")
	}
	if !resp.ok() {
		return nil, l.upstreamError("LM Studio models error", resp)
	}

	names := []string{}
	gjson.GetBytes(resp.body, "data.#.id").ForEach(func(_, v gjson.Result) bool {
		if id := v.String(); id != "" {
			names = append(names, id)
		}
		return true
	})
	return names, nil
}

// Send posts a chat completion. An empty or "auto" model resolves to the
// first model LM Studio lists.
func (l *LMStudio) Send(ctx context.Context, message string, history []models.Turn, model string) (string, error) {
	if model == "" {
		model = l.cfg.Model
	}
	if model == "" || model == autoModel {
		available, err := l.ListModels(ctx)
		if err != nil {
			return "", err
		}
		if len(available) == 0 {
			return "", apierrors.NewProviderError(models.ProviderLMStudio, 0, "No LM Studio models are available.")
		}
		model = available[0]
	}

	resp, err := doJSON(ctx, l.doer, fhttp.MethodPost, l.cfg.BaseURL+"/chat/completions", l.headers(), chatCompletionRequest{
		Model:       model,
		Messages:    lmstudioMessages(history, message),
		Temperature: l.cfg.Temperature,
	})
	if err != nil {
		return "", errors.Wrap(err, "lmstudio: chat completion")
	}
	if !resp.ok() {
		return "", l.upstreamError("LM Studio error", resp)
	}
	if !gjson.ValidBytes(resp.body) {
		return "", apierrors.NewParseError("invalid JSON from LM Studio", "/chat/completions")
	}

	return gjson.GetBytes(resp.body, "choices.0.message.content").String(), nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

func lmstudioMessages(history []models.Turn, message string) []chatMessage {
	msgs := make([]chatMessage, 0, len(history)+1)
	for _, turn := range history {
		role := "user"
		if turn.Role == models.RoleModel {
			role = "assistant"
		}
		msgs = append(msgs, chatMessage{Role: role, Content: turn.Content})
	}
	return append(msgs, chatMessage{Role: "user", Content: message})
}

func (l *LMStudio) headers() map[string]string {
	if l.cfg.APIKey == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + l.cfg.APIKey}
}

func (l *LMStudio) upstreamError(prefix string, resp response) error {
	return apierrors.NewProviderError(models.ProviderLMStudio, resp.status,
		fmt.Sprintf("%s: %d %s", prefix, resp.status, string(resp.body)))
}
