// Package ollama implements the outbound chat client against the Ollama
// HTTP API (/api/chat) used by the assistant conversations.
package ollama

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

	"workflow/internal/core/ports"
)

const defaultHTTPTimeout = 60 * time.Second

// Config captures the runtime settings required to talk to Ollama.
type Config struct {
	Host   string
	APIKey string
	Model  string
}

// Client calls the Ollama chat endpoint. It implements ports.ChatClient.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs an Ollama client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg.Host = strings.TrimRight(strings.TrimSpace(cfg.Host), "/")
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Model = strings.TrimSpace(cfg.Model)

	if cfg.Host == "" {
		return nil, errors.New("ollama: host is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("ollama: model is required")
	}

	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
	Error   string      `json:"error"`
}

// Chat sends the conversation history and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, messages []ports.ChatMessage) (ports.ChatMessage, error) {
	var empty ports.ChatMessage
	if len(messages) == 0 {
		return empty, errors.New("ollama chat: messages are required")
	}

	payload := chatRequest{
		Model:    c.cfg.Model,
		Messages: make([]chatMessage, 0, len(messages)),
		Stream:   false,
	}
	for _, m := range messages {
		payload.Messages = append(payload.Messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return empty, fmt.Errorf("ollama chat: encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Host+"/api/chat", bytes.NewReader(encoded))
	if err != nil {
		return empty, fmt.Errorf("ollama chat: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, fmt.Errorf("ollama chat: http error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, fmt.Errorf("ollama chat: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return empty, fmt.Errorf("ollama chat: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return empty, fmt.Errorf("ollama chat: decode response: %w", err)
	}
	if decoded.Error != "" {
		return empty, fmt.Errorf("ollama chat: api error: %s", decoded.Error)
	}
	if strings.TrimSpace(decoded.Message.Content) == "" {
		return empty, errors.New("ollama chat: empty response")
	}

	role := decoded.Message.Role
	if role == "" {
		role = "assistant"
	}
	return ports.ChatMessage{Role: role, Content: decoded.Message.Content}, nil
}
