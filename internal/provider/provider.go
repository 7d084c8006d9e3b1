// Package provider holds the generation port and its backend adapters. The
// rest of the system depends only on TextGenerator; which upstream actually
// serves a completion is a configuration choice.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/nileplate/backend/config"
)

// TextGenerator produces a raw text completion for a prompt. Implementations
// handle transport, auth, retry and timeout; callers own prompt construction
// and response parsing.
type TextGenerator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyCompletion reports an upstream 200 with no usable text in it.
var ErrEmptyCompletion = errors.New("provider returned an empty completion")

// New selects the adapter named by cfg.Provider.
func New(cfg config.AIConfig) (TextGenerator, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGemini(cfg), nil
	case "deepseek":
		return NewDeepSeek(cfg), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

// newClient builds the shared resty client: request timeout, a bounded
// number of attempts with a fixed wait between them, retrying on transport
// errors and 5xx responses.
func newClient(cfg config.AIConfig, baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.MaxAttempts - 1).
		SetRetryWaitTime(cfg.RetryBackoff).
		SetRetryMaxWaitTime(cfg.RetryBackoff).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
}
