package providers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/chatwidget/internal/errors"
	"github.com/diogo/chatwidget/internal/models"
)

// maxModelPages bounds pagination of the Gemini model list
const maxModelPages = 10

// GeminiConfig configures the Gemini REST provider
type GeminiConfig struct {
	APIKey     string
	Model      string
	APIVersion string
	BaseURL    string
}

// Gemini is the Google Generative Language API provider.
type Gemini struct {
	doer Doer
	cfg  GeminiConfig
}

// NewGemini creates a Gemini provider
func NewGemini(doer Doer, cfg GeminiConfig) *Gemini {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Gemini{doer: doer, cfg: cfg}
}

// Name returns "gemini"
func (g *Gemini) Name() string { return models.ProviderGemini }

// DefaultModel returns the model used when a request names none
func (g *Gemini) DefaultModel() string { return g.cfg.Model }

// ListModels lists generative models, skipping embedding, imagen and veo.
func (g *Gemini) ListModels(ctx context.Context) ([]string, error) {
	if g.cfg.APIKey == "" {
		return nil, errMissingGeminiKey
	}

	var names []string
	pageToken := ""
	for page := 0; page < maxModelPages; page++ {
		q := url.Values{}
		q.Set("pageSize", "1000")
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}

		resp, err := doJSON(ctx, g.doer, fhttp.MethodGet, g.endpoint("models")+"?"+q.Encode(), g.headers(), nil)
		if err != nil {
			return nil, errors.Wrap(err, "gemini: list models")
		}
		if !resp.ok() {
			return nil, g.upstreamError(resp)
		}

		parsed := gjson.ParseBytes(resp.body)
		parsed.Get("models.#.name").ForEach(func(_, v gjson.Result) bool {
			if name := v.String(); name != "" && !excludedGeminiModel(name) {
				names = append(names, name)
			}
			return true
		})

		pageToken = parsed.Get("nextPageToken").String()
		if pageToken == "" {
			break
		}
	}
	return names, nil
}

// Send calls generateContent with history followed by message.
func (g *Gemini) Send(ctx context.Context, message string, history []models.Turn, model string) (string, error) {
	if g.cfg.APIKey == "" {
		return "", errMissingGeminiKey
	}
	if model == "" {
		model = g.cfg.Model
	}
	if !strings.HasPrefix(model, "models/") {
		model = "models/" + model
	}

	resp, err := doJSON(ctx, g.doer, fhttp.MethodPost, g.endpoint(model+":generateContent"), g.headers(), geminiRequest{
		Contents: geminiContents(history, message),
	})
	if err != nil {
		return "", errors.Wrap(err, "gemini: generate content")
	}
	if !resp.ok() {
		return "", g.upstreamError(resp)
	}
	if !gjson.ValidBytes(resp.body) {
		return "", apierrors.NewParseError("invalid JSON from Gemini", model)
	}

	var sb strings.Builder
	gjson.GetBytes(resp.body, "candidates.0.content.parts.#.text").ForEach(func(_, v gjson.Result) bool {
		sb.WriteString(v.String())
		return true
	})
	return sb.String(), nil
}

var errMissingGeminiKey = apierrors.NewProviderError(models.ProviderGemini, 0, "GEMINI_API_KEY is not set in the environment.")

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

func geminiContents(history []models.Turn, message string) []geminiContent {
	contents := make([]geminiContent, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, geminiContent{
			Role:  string(turn.Role),
			Parts: []geminiPart{{Text: turn.Content}},
		})
	}
	return append(contents, geminiContent{
		Role:  string(models.RoleUser),
		Parts: []geminiPart{{Text: message}},
	})
}

func excludedGeminiModel(name string) bool {
	for _, skip := range []string{"embedding", "imagen", "veo"} {
		if strings.Contains(name, skip) {
			return true
		}
	}
	return false
}

func (g *Gemini) endpoint(path string) string {
	return fmt.Sprintf("%s/%s/%s", g.cfg.BaseURL, g.cfg.APIVersion, path)
}

func (g *Gemini) headers() map[string]string {
	return map[string]string{"x-goog-api-key": g.cfg.APIKey}
}

func (g *Gemini) upstreamError(resp response) error {
	msg := gjson.GetBytes(resp.body, "error.message").String()
	if msg == "" {
		msg = strings.TrimSpace(string(resp.body))
	}
	return apierrors.NewProviderError(models.ProviderGemini, resp.status,
		fmt.Sprintf("Gemini error: %d %s", resp.status, msg))
}
