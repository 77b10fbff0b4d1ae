// Package models contains the data types shared by the chat widget, its
// HTTP client and the backend service.
package models

// Backend endpoints, relative to the configured server URL
const (
	EndpointChat   = "/api/chat"
	EndpointModels = "/api/models"
	EndpointHealth = "/healthz"
)

// Provider identifiers understood by the backend
const (
	ProviderGemini   = "gemini"
	ProviderLMStudio = "lmstudio"

	// DefaultProvider is sent when the widget has no provider picker.
	DefaultProvider = ProviderGemini
)

// PlaceholderText is the content of the transient loading bubble.
const PlaceholderText = "..."

// UnknownErrorText is shown when a failed response carries no error text.
const UnknownErrorText = "Unknown error"

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Message  string `json:"message"`
	History  []Turn `json:"history"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// ChatResponse is the success body of POST /api/chat
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ModelsResponse is the success body of GET /api/models
type ModelsResponse struct {
	Models []string `json:"models"`
}

// ErrorResponse is the body of every non-200 backend response
type ErrorResponse struct {
	Error string `json:"error"`
}

// KnownProviders returns the providers the backend ships with
func KnownProviders() []string {
	return []string{ProviderGemini, ProviderLMStudio}
}
