// Package coach talks to the external Cortex text-generation service that
// produces practice scenarios, scoring and coaching replies. Only the HTTP
// handlers consume it; the progression engine has no dependency on it.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned when the service base URL or token is
// missing; callers fall back to local heuristics.
var ErrNotConfigured = errors.New("cortex service not configured")

const (
	completePath     = "/api/v2/cortex/inference:complete"
	defaultMaxTokens = 300
	requestTimeout   = 30 * time.Second
)

type Client struct {
	base  string
	token string
	model string
	httpc *http.Client
}

func NewClient(base, token, model string) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		token: token,
		model: model,
		httpc: &http.Client{Timeout: requestTimeout},
	}
}

// Configured reports whether the client has everything it needs to make a
// call.
func (c *Client) Configured() bool {
	return c.base != "" && c.token != "" && c.model != ""
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completeRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type completeResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Output     string `json:"output"`
	Candidates []struct {
		Content string `json:"content"`
	} `json:"candidates"`
}

// Complete sends a single prompt and returns the assistant text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(completeRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: "You are a concise, friendly networking writing assistant."},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   defaultMaxTokens,
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+completePath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return "", errors.New("cortex: 401 unauthorized, invalid or expired token")
	case http.StatusForbidden:
		return "", errors.New("cortex: 403 forbidden, permissions or network policy")
	case http.StatusNotFound:
		return "", errors.New("cortex: 404 not found, endpoint path may differ for this account")
	case http.StatusBadRequest:
		return "", fmt.Errorf("cortex: 400 bad request: %s", string(body))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("cortex: %d %s: %s", resp.StatusCode, resp.Status, string(body))
	}

	var parsed completeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("cortex: decode response: %w", err)
	}

	// The service has shipped several response shapes; accept them all.
	text := ""
	if len(parsed.Choices) > 0 {
		text = parsed.Choices[0].Message.Content
	}
	if text == "" {
		text = parsed.Output
	}
	if text == "" && len(parsed.Candidates) > 0 {
		text = parsed.Candidates[0].Content
	}
	if text == "" {
		return "", fmt.Errorf("cortex: unexpected response: %s", string(body))
	}
	return strings.TrimSpace(text), nil
}
