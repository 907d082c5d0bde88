package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"golang-news-globe/internal/news/config"
	"golang-news-globe/pkg/logger"
)

// OpenAIGenerator generates text with an OpenAI-compatible chat completion API.
type OpenAIGenerator struct {
	cfg            config.OpenAI
	client         *openai.Client
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewOpenAIGenerator creates the generator. BaseURL overrides the API endpoint when set.
func NewOpenAIGenerator(cfg config.OpenAI, log *logger.Logger) *OpenAIGenerator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	limit := rate.Inf
	if cfg.MaxRequestPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.MaxRequestPerMinute))
	}
	return &OpenAIGenerator{
		cfg:            cfg,
		client:         openai.NewClientWithConfig(clientCfg),
		logger:         log.Named("openai"),
		requestLimiter: rate.NewLimiter(limit, 1),
	}
}

func (o *OpenAIGenerator) Name() string { return "openai" }

func (o *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := o.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.cfg.Model,
		Temperature: o.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		o.logger.Error("Failed to create chat completion", logger.ErrorField(err), logger.StringField("model", o.cfg.Model))
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from openai")
	}
	return resp.Choices[0].Message.Content, nil
}
