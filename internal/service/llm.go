package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pageza/greenmeal/backend/internal/metrics"
	"go.uber.org/zap"
)

var (
	// ErrLLMRequest is returned when the text model endpoint rejects a call.
	ErrLLMRequest = errors.New("text model request failed")
	// ErrLLMEmptyResponse is returned when the model answers without choices.
	ErrLLMEmptyResponse = errors.New("no response from text model")
)

// TextGenerator produces free text for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Ping checks that the model endpoint answers at all.
	Ping(ctx context.Context) error
}

// LLMConfig configures an OpenAI-compatible chat completions endpoint.
type LLMConfig struct {
	APIKey      string
	APIURL      string
	Model       string
	Temperature float64
	MaxTokens   int
	HTTPClient  *http.Client
}

// LLMService handles interactions with the chat completions API
type LLMService struct {
	cfg     LLMConfig
	client  *http.Client
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg LLMConfig, log *zap.Logger, m *metrics.Metrics) *LLMService {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2048
	}
	return &LLMService{cfg: cfg, client: client, log: log, metrics: m}
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the chat completions API
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	TopP        float64   `json:"top_p"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends prompt as a single user message and returns the reply text.
func (s *LLMService) Generate(ctx context.Context, prompt string) (out string, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveExternal("llm", start, err) }()

	body, err := json.Marshal(Request{
		Model:       s.cfg.Model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: s.cfg.Temperature,
		TopP:        1,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.log.Warn("text model returned an error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(snippet)))
		return "", fmt.Errorf("%w: %s", ErrLLMRequest, http.StatusText(resp.StatusCode))
	}

	var result completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", ErrLLMEmptyResponse
	}
	return result.Choices[0].Message.Content, nil
}

// Ping sends a trivial prompt to confirm the endpoint is reachable.
func (s *LLMService) Ping(ctx context.Context) error {
	_, err := s.Generate(ctx, "Hello")
	return err
}
