package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/diogo/chatwidget/internal/models"
)

// Chat posts one chat turn and returns the model's reply.
func (c *Client) Chat(ctx context.Context, req models.ChatRequest) (string, error) {
	if req.History == nil {
		req.History = []models.Turn{}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	result, err := c.do(ctx, http.MethodPost, models.EndpointChat, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	return result.Get("reply").String(), nil
}
