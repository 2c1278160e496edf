package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"journal-service/internal/config"
	"journal-service/internal/domain/entity"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultMaxTokens = 300

	systemPrompt = "You are a supportive journaling companion. Answer in plain text."

	codeInsufficientQuota = "insufficient_quota"
)

// Client is an OpenAI compatible completion client
type Client struct {
	client    *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
}

// NewClient creates a completion client. BaseURL switches to any OpenAI
// compatible endpoint.
func NewClient(cfg *config.AIConfig) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &Client{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     model,
		maxTokens: maxTokens,
		timeout:   cfg.Timeout,
	}
}

// Complete sends prompt as a single user message and returns the reply as is
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: c.maxTokens,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: completion returned no choices", entity.ErrCompletionFailed)
	}

	return resp.Choices[0].Message.Content, nil
}

// classifyError maps provider failures onto the feedback error taxonomy.
// Authorization and quota rejections are reported as entity.ErrQuotaExceeded.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if isQuotaStatus(apiErr.HTTPStatusCode) || apiErr.Type == codeInsufficientQuota || apiCode(apiErr) == codeInsufficientQuota {
			return fmt.Errorf("%w: %s", entity.ErrQuotaExceeded, apiErr.Message)
		}
		return fmt.Errorf("%w: %v", entity.ErrCompletionFailed, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && isQuotaStatus(reqErr.HTTPStatusCode) {
		return fmt.Errorf("%w: status %d", entity.ErrQuotaExceeded, reqErr.HTTPStatusCode)
	}

	return fmt.Errorf("%w: %v", entity.ErrCompletionFailed, err)
}

func isQuotaStatus(status int) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return true
	}
	return false
}

func apiCode(apiErr *openai.APIError) string {
	if code, ok := apiErr.Code.(string); ok {
		return strings.ToLower(code)
	}
	return ""
}
