package config

import "testing"

func TestLoadServer_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "LLM_PROVIDER", "GEMINI_MODEL", "GEMINI_API_VERSION", "LMSTUDIO_BASE_URL",
		"LMSTUDIO_TEMPERATURE", "MAX_MESSAGE_CHARS", "MAX_HISTORY", "CHAT_RATE_LIMIT",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())

	cfg := LoadServer()

	if cfg.Port != 5000 {
		t.Errorf("Port = %d, want 5000", cfg.Port)
	}
	if cfg.DefaultProvider != "gemini" {
		t.Errorf("DefaultProvider = %q", cfg.DefaultProvider)
	}
	if cfg.GeminiModel != "models/gemini-2.5-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.LMStudioBaseURL != "http://localhost:1234/v1" {
		t.Errorf("LMStudioBaseURL = %q", cfg.LMStudioBaseURL)
	}
	if cfg.LMStudioTemperature != 0.7 {
		t.Errorf("LMStudioTemperature = %v", cfg.LMStudioTemperature)
	}
	if cfg.MaxMessageChars != 4000 || cfg.MaxHistory != 20 {
		t.Errorf("limits = %d/%d", cfg.MaxMessageChars, cfg.MaxHistory)
	}
	if cfg.ChatRateLimit != 0 {
		t.Errorf("ChatRateLimit = %v, want 0", cfg.ChatRateLimit)
	}
}

func TestLoadServer_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8081")
	t.Setenv("LLM_PROVIDER", "LMStudio")
	t.Setenv("LMSTUDIO_BASE_URL", "http://box:1234/v1/")
	t.Setenv("LMSTUDIO_TEMPERATURE", "0.2")
	t.Setenv("MAX_HISTORY", "not-a-number")

	cfg := LoadServer()

	if cfg.Port != 8081 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.DefaultProvider != "lmstudio" {
		t.Errorf("DefaultProvider = %q, want lowercased", cfg.DefaultProvider)
	}
	if cfg.LMStudioBaseURL != "http://box:1234/v1" {
		t.Errorf("LMStudioBaseURL = %q, want trailing slash trimmed", cfg.LMStudioBaseURL)
	}
	if cfg.LMStudioTemperature != 0.2 {
		t.Errorf("LMStudioTemperature = %v", cfg.LMStudioTemperature)
	}
	if cfg.MaxHistory != 20 {
		t.Errorf("MaxHistory = %d, want default on bad value", cfg.MaxHistory)
	}
}
