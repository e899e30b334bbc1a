package openai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"

	"memori-server/internal/models"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultModel       = "gpt-4o-mini"
	defaultTemperature = 0.7
	defaultMaxTokens   = 2000
)

// GenerationOptions carries per-request prompt customization. It is supplied
// by the caller on every request and never kept as server state.
type GenerationOptions struct {
	CustomPrompt string
	Patterns     []models.ScenePattern
}

// Client calls an OpenAI-compatible chat completion API to turn a script
// into a scene breakdown.
type Client struct {
	openaiClient *openai.Client
	modelName    string
	logger       *zap.Logger
}

// NewClient creates a new generation client.
// baseURL and model may be empty; the OpenAI defaults are used then.
func NewClient(apiKey, model, baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	config.HTTPClient = &http.Client{
		Timeout: timeout,
	}
	if model == "" {
		model = defaultModel
	}

	return &Client{
		openaiClient: openai.NewClientWithConfig(config),
		modelName:    model,
		logger:       logger.Named("OpenAIClient"),
	}
}

// GenerateSceneBreakdown asks the model for a scene breakdown of the script
// and returns the raw completion text (expected to be a JSON scene array).
func (c *Client) GenerateSceneBreakdown(ctx context.Context, script string, language models.Language, opts GenerationOptions) (string, error) {
	prompt := buildPrompt(script, language, opts)
	log := c.logger.With(zap.String("language", string(language)), zap.Int("scriptLen", len(script)))
	log.Debug("Requesting scene breakdown generation")

	resp, err := c.openaiClient.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.modelName,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			Temperature: defaultTemperature,
			MaxTokens:   defaultMaxTokens,
		},
	)
	if err != nil {
		log.Warn("Chat completion failed", zap.Error(err))
		return "", mapAPIError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Warn("Received empty completion")
		return "", fmt.Errorf("%w: empty response from API", models.ErrGenerationFailed)
	}

	log.Info("Scene breakdown generated", zap.Int("completionTokens", resp.Usage.CompletionTokens))
	return resp.Choices[0].Message.Content, nil
}

// mapAPIError translates transport and API errors into the generation error
// taxonomy: rate-limited, upstream-unavailable or plain failure.
func mapAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", models.ErrGenerationRateLimited, err)
		case apiErr.HTTPStatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %v", models.ErrGenerationUnavailable, err)
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %v", models.ErrGenerationUnavailable, err)
	}

	var netErr net.Error
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", models.ErrGenerationUnavailable, err)
	}

	return fmt.Errorf("%w: %v", models.ErrGenerationFailed, err)
}
