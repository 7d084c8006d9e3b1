package provider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/nileplate/backend/config"
)

const deepseekBaseURL = "https://api.deepseek.com/v1"

// DeepSeek adapts the DeepSeek chat-completions API to the TextGenerator
// port.
type DeepSeek struct {
	client *resty.Client
	apiKey string
	model  string
}

// NewDeepSeek builds the DeepSeek adapter from configuration. The base URL
// can be overridden through DEEPSEEK_API_URL for self-hosted gateways.
func NewDeepSeek(cfg config.AIConfig) *DeepSeek {
	baseURL := deepseekBaseURL
	if cfg.DeepSeekAPIURL != "" {
		baseURL = cfg.DeepSeekAPIURL
	}
	return &DeepSeek{
		client: newClient(cfg, baseURL),
		apiKey: cfg.DeepSeekAPIKey,
		model:  cfg.DeepSeekModel,
	}
}

func (d *DeepSeek) Name() string { return "deepseek" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends the prompt as a single user message and returns the first
// choice's content.
func (d *DeepSeek) Generate(ctx context.Context, prompt string) (string, error) {
	body := chatRequest{
		Model:       d.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
	}

	var out chatResponse
	resp, err := d.client.R().
		SetContext(ctx).
		SetAuthToken(d.apiKey).
		SetBody(body).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("deepseek request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("deepseek returned status %d: %s", resp.StatusCode(), resp.String())
	}

	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}
	return out.Choices[0].Message.Content, nil
}
