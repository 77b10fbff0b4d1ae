package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apierrors "github.com/diogo/chatwidget/internal/errors"
	"github.com/diogo/chatwidget/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient() returned error: %v", err)
	}
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{"plain", "http://localhost:5000", "http://localhost:5000", false},
		{"trailing slash trimmed", "http://localhost:5000/", "http://localhost:5000", false},
		{"https", "https://chat.example.com", "https://chat.example.com", false},
		{"missing scheme", "localhost:5000", "", true},
		{"ftp", "ftp://example.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewClient() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && client.BaseURL() != tt.want {
				t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), tt.want)
			}
		})
	}
}

func TestChat_Success(t *testing.T) {
	var got models.ChatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reply":"Hi there"}`))
	})

	reply, err := client.Chat(context.Background(), models.ChatRequest{
		Message:  "Hello",
		History:  []models.Turn{models.UserTurn("Hello")},
		Provider: "gemini",
		Model:    "models/gemini-2.5-flash",
	})
	if err != nil {
		t.Fatalf("Chat() returned error: %v", err)
	}
	if reply != "Hi there" {
		t.Errorf("reply = %q, want %q", reply, "Hi there")
	}
	if got.Message != "Hello" || got.Provider != "gemini" || got.Model != "models/gemini-2.5-flash" {
		t.Errorf("request body = %+v", got)
	}
	if len(got.History) != 1 || got.History[0].Role != models.RoleUser {
		t.Errorf("history = %+v", got.History)
	}
}

func TestChat_NilHistorySentAsEmptyArray(t *testing.T) {
	var raw map[string]json.RawMessage
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		_, _ = w.Write([]byte(`{"reply":"ok"}`))
	})

	if _, err := client.Chat(context.Background(), models.ChatRequest{Message: "x"}); err != nil {
		t.Fatalf("Chat() returned error: %v", err)
	}
	if string(raw["history"]) != "[]" {
		t.Errorf("history = %s, want []", raw["history"])
	}
}

func TestChat_ServerError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"error field", http.StatusBadRequest, `{"error":"Message is required."}`, "Message is required."},
		{"provider failure", http.StatusInternalServerError, `{"error":"LM Studio error: 500 boom"}`, "LM Studio error: 500 boom"},
		{"no error field", http.StatusBadGateway, `{}`, "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Chat(context.Background(), models.ChatRequest{Message: "x"})
			var apiErr *apierrors.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T: %v", err, err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
			if apiErr.Endpoint != "/api/chat" {
				t.Errorf("Endpoint = %q", apiErr.Endpoint)
			}
		})
	}
}

func TestChat_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := client.Chat(context.Background(), models.ChatRequest{Message: "x"})
	if !apierrors.IsParseError(err) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestChat_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewClient(url)
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.Chat(context.Background(), models.ChatRequest{Message: "x"})
	if !apierrors.IsNetworkError(err) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestChat_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	client, err := NewClient(srv.URL, WithTimeout(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.Chat(context.Background(), models.ChatRequest{Message: "x"})
	if !apierrors.IsTimeoutError(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestModels(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"ordered list", `{"models":["gpt-x","gpt-y"]}`, []string{"gpt-x", "gpt-y"}},
		{"null list", `{"models":null}`, []string{}},
		{"missing list", `{}`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var provider string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/models" {
					t.Errorf("path = %s", r.URL.Path)
				}
				provider = r.URL.Query().Get("provider")
				_, _ = w.Write([]byte(tt.body))
			})

			got, err := client.Models(context.Background(), "openai")
			if err != nil {
				t.Fatalf("Models() returned error: %v", err)
			}
			if provider != "openai" {
				t.Errorf("provider query = %q", provider)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") || got == nil {
				t.Errorf("Models() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestModels_Error(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Unknown provider: nope"}`))
	})

	_, err := client.Models(context.Background(), "nope")
	if apierrors.UserMessage(err) != "Unknown provider: nope" {
		t.Errorf("UserMessage = %q", apierrors.UserMessage(err))
	}
	if apierrors.GetEndpoint(err) != "/api/models" {
		t.Errorf("endpoint = %q, want query stripped", apierrors.GetEndpoint(err))
	}
}

func TestHealth(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if err := client.Health(context.Background()); err != nil {
		t.Errorf("Health() returned error: %v", err)
	}
}

type recordingDoer struct {
	req *http.Request
}

func (d *recordingDoer) Do(req *http.Request) (*http.Response, error) {
	d.req = req
	return nil, errors.New("offline")
}

func TestWithHTTPClient(t *testing.T) {
	doer := &recordingDoer{}
	client, err := NewClient("http://backend", WithHTTPClient(doer), WithUserAgent("test-agent"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.Models(context.Background(), "gemini")
	if !apierrors.IsNetworkError(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	if doer.req == nil {
		t.Fatal("custom doer was not used")
	}
	if doer.req.URL.String() != "http://backend/api/models?provider=gemini" {
		t.Errorf("URL = %s", doer.req.URL)
	}
	if doer.req.Header.Get("User-Agent") != "test-agent" {
		t.Errorf("User-Agent = %q", doer.req.Header.Get("User-Agent"))
	}
}
