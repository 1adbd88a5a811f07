// internal/integrations/groq.go
package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GroqClient wraps the chat-completion endpoint: a message list in, a
// single text completion out.
type GroqClient struct {
	client  httpDoer
	apiKey  string
	baseURL string
	model   string
}

func NewGroqClient(apiKey string, timeoutSecs int) *GroqClient {
	return &GroqClient{
		client:  newHTTPClient(timeoutSecs),
		apiKey:  apiKey,
		baseURL: "https://api.groq.com/openai/v1/chat/completions",
		model:   "llama-3.3-70b-versatile",
	}
}

func (c *GroqClient) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	if c.apiKey == "" {
		return "Market intelligence assistant is not configured. Set GROQ_API_KEY to enable AI answers.", nil
	}

	reqBody, err := json.Marshal(map[string]interface{}{
		"model":    c.model,
		"messages": messages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("upstream returned %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode upstream response: %w", err)
	}

	if len(payload.Choices) == 0 {
		return "", errors.New("upstream returned no completion choices")
	}

	return payload.Choices[0].Message.Content, nil
}
