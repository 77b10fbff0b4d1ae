package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/chatwidget/internal/config"
	apierrors "github.com/diogo/chatwidget/internal/errors"
	"github.com/diogo/chatwidget/internal/models"
)

func TestRegistry(t *testing.T) {
	r := NewDefaultRegistry(config.ServerConfig{GeminiModel: "models/x"}, &stubDoer{handle: respond(200, `{}`)})

	assert.Equal(t, []string{"gemini", "lmstudio"}, r.Names())

	p, err := r.Get("GEMINI")
	require.NoError(t, err)
	assert.Equal(t, models.ProviderGemini, p.Name())

	_, err = r.Get("openai")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierrors.ErrUnknownProvider))
	assert.Equal(t, "Unknown provider: openai", err.Error())
}

func TestNewHTTPClient(t *testing.T) {
	client, err := NewHTTPClient(0)
	require.NoError(t, err)
	require.NotNil(t, client)

	var _ Doer = client
}

func TestDoJSON_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doer := &stubDoer{err: context.Canceled}
	_, err := doJSON(ctx, doer, "GET", "http://x.test/models?key=secret", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.NotContains(t, err.Error(), "secret")
}
