// Package insight wraps the external text-generation service used to enrich
// reservoir recommendations. The service is an opaque OpenAI-compatible chat
// endpoint; everything about it is supplied through configuration.
package insight

import (
	"context"
	"errors"
	"net/http"

	"github.com/majilabs/oasis/internal/config"
	"github.com/majilabs/oasis/internal/observability/metrics"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("insight service not configured")

// Client generates free-text insights from a prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type chatClient struct {
	client  openai.Client
	cfg     config.AIConfig
	log     *zap.Logger
	metrics *metrics.InsightMetrics
}

type disabledClient struct{}

func (disabledClient) Generate(ctx context.Context, prompt string) (string, error) {
	return "", ErrDisabled
}

// NewClient builds the chat-completions client. Without an API key a client
// that always fails is returned, so callers exercise their degrade path.
func NewClient(cfg config.Config, log *zap.Logger, m *metrics.InsightMetrics) Client {
	if !cfg.AI.Enabled() {
		log.Warn("insight service disabled: no API key configured")
		return disabledClient{}
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.AI.APIKey),
		option.WithBaseURL(cfg.AI.BaseURL),
		option.WithHTTPClient(&http.Client{Timeout: cfg.AI.Timeout}),
	)
	return &chatClient{
		client:  client,
		cfg:     cfg.AI,
		log:     log.Named("insight.client"),
		metrics: m,
	}
}

func (c *chatClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	chat, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       c.cfg.Model,
		MaxTokens:   openai.Int(c.cfg.MaxTokens),
		Temperature: openai.Float(c.cfg.Temperature),
	})
	if err != nil {
		c.metrics.RecordCall("error")
		c.log.Warn("insight call failed", zap.Error(err))
		return "", err
	}

	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		c.metrics.RecordCall("empty")
		return "", errors.New("insight: empty completion")
	}

	c.metrics.RecordCall("ok")
	return chat.Choices[0].Message.Content, nil
}
