// Package summarizer classifies and summarizes imported videos with an
// OpenAI-compatible chat model.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/logging"
	"github.com/sashabaranov/go-openai"
)

// ErrEmptyCompletion is returned when the model answers with no text.
var ErrEmptyCompletion = errors.New("empty completion")

const (
	classifyPrompt = "You file articles into categories. Answer with exactly one category id from the list and nothing else."
	summaryPrompt  = "You write short, neutral summaries of videos for a reading app. Use at most three sentences and no markdown."
)

type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  logging.Logger
}

// New returns a Client for model. An empty baseURL means the OpenAI API.
// Each completion is abandoned after timeout; zero means no own deadline.
func New(apiKey, baseURL, model string, timeout time.Duration, logger logging.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
		logger:  logger.With("module", "summarizer"),
	}
}

// Classify asks the model for one of categories. The answer is returned
// normalized but not checked against the list.
func (c *Client) Classify(ctx context.Context, title, description string, categories []string) (string, error) {
	user := fmt.Sprintf("Categories: %s\n\nTitle: %s\nDescription: %s",
		strings.Join(categories, ", "), title, truncate(description, 2000))

	out, err := c.complete(ctx, classifyPrompt, user, 10)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.Trim(out, " \t\n.\"'`")), nil
}

// Summarize condenses a title and description into a few sentences.
func (c *Client) Summarize(ctx context.Context, title, description string) (string, error) {
	user := fmt.Sprintf("Title: %s\nDescription: %s", title, truncate(description, 4000))
	return c.complete(ctx, summaryPrompt, user, 300)
}

func (c *Client) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxCompletionTokens: maxTokens,
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error(ctx, "chat completion failed", "model", c.model, "error", err)
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
