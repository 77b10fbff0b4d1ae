package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/diogo/chatwidget/internal/models"
)

// Models returns the model names the backend offers for provider, in the
// order the backend listed them. A missing or null list is an empty result.
func (c *Client) Models(ctx context.Context, provider string) ([]string, error) {
	endpoint := models.EndpointModels + "?" + url.Values{"provider": {provider}}.Encode()

	result, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	list := result.Get("models").Array()
	names := make([]string, 0, len(list))
	for _, item := range list {
		names = append(names, item.String())
	}
	return names, nil
}

// Health checks that the backend is reachable and answering
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, models.EndpointHealth, nil)
	return err
}
