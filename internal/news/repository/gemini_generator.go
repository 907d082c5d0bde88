package repository

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"golang-news-globe/internal/news/config"
	"golang-news-globe/pkg/logger"
	"golang-news-globe/pkg/ratelimit"
)

// GeminiGenerator generates text with the Gemini API, honoring request and token quotas.
type GeminiGenerator struct {
	cfg            config.Gemini
	client         *genai.Client
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
}

// NewGeminiGenerator creates a generator backed by an initialized genai client.
func NewGeminiGenerator(cfg config.Gemini, client *genai.Client, log *logger.Logger) *GeminiGenerator {
	limit := rate.Inf
	if cfg.MaxRequestPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.MaxRequestPerMinute))
	}
	return &GeminiGenerator{
		cfg:            cfg,
		client:         client,
		logger:         log.Named("gemini"),
		tokenLimiter:   ratelimit.NewTokenLimiter(cfg.MaxTokenPerMinute),
		requestLimiter: rate.NewLimiter(limit, 1),
	}
}

// NewGenAIClient creates the genai client for the Gemini API backend.
func NewGenAIClient(ctx context.Context, cfg config.Gemini) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return client, nil
}

func (g *GeminiGenerator) Name() string { return "gemini" }

// Generate counts the prompt tokens, waits for quota and returns the reply text.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	if g.cfg.MaxTokenPerMinute > 0 {
		tokens, err := g.client.Models.CountTokens(ctx, g.cfg.Model, contents, nil)
		if err != nil {
			return "", fmt.Errorf("failed to count tokens: %w", err)
		}
		g.logger.Debug("Gemini token count",
			logger.IntField("total_tokens", int(tokens.TotalTokens)),
			logger.IntField("remaining", g.tokenLimiter.GetRemaining()),
		)
		if err := g.tokenLimiter.Wait(ctx, int(tokens.TotalTokens)); err != nil {
			return "", fmt.Errorf("failed to wait for token limit: %w", err)
		}
		if int(tokens.TotalTokens) > g.cfg.MaxTokenPerMinute/2 {
			g.logger.Warn("Prompt uses more than half of the token budget", logger.IntField("remaining", g.tokenLimiter.GetRemaining()))
		}
	}

	if err := g.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, contents, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.cfg.Temperature),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		g.logger.Error("Failed to generate content", logger.ErrorField(err), logger.StringField("model", g.cfg.Model))
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from gemini")
	}
	return text, nil
}
