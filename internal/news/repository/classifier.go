package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang-news-globe/internal/news/config"
	"golang-news-globe/internal/news/dto"
	"golang-news-globe/pkg/circuitbreaker"
	"golang-news-globe/pkg/logger"
	"golang-news-globe/pkg/utils"
)

type classifierLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// HFClassifier calls a hosted text-classification model (e.g. roberta-base-openai-detector).
type HFClassifier struct {
	cfg     config.Classifier
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
	logger  *logger.Logger
}

// NewHFClassifier creates the classifier client behind a circuit breaker.
func NewHFClassifier(cfg config.Classifier, log *logger.Logger) *HFClassifier {
	return &HFClassifier{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: circuitbreaker.New(circuitbreaker.DefaultConfig("classifier"), log),
		logger:  log.Named("classifier"),
	}
}

// Classify returns the highest scoring label and its confidence.
func (c *HFClassifier) Classify(ctx context.Context, text string) (dto.ClassifierResult, error) {
	if c.cfg.APIKey == "" {
		return dto.ClassifierResult{}, ErrClassifierDisabled
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.call(ctx, utils.Truncate(text, c.cfg.MaxInputLen))
	})
	if err != nil {
		c.logger.Warn("Classifier call failed", logger.ErrorField(err), logger.StringField("breaker", c.breaker.State()))
		return dto.ClassifierResult{}, err
	}
	return out.(dto.ClassifierResult), nil
}

func (c *HFClassifier) call(ctx context.Context, input string) (dto.ClassifierResult, error) {
	payload, err := json.Marshal(map[string]string{"inputs": input})
	if err != nil {
		return dto.ClassifierResult{}, fmt.Errorf("failed to marshal classifier payload: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + c.cfg.Model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return dto.ClassifierResult{}, fmt.Errorf("failed to create classifier request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return dto.ClassifierResult{}, fmt.Errorf("failed to call classifier: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return dto.ClassifierResult{}, fmt.Errorf("failed to read classifier response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return dto.ClassifierResult{}, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, utils.Truncate(string(body), 200))
	}
	return ParseClassifierResponse(body)
}

// ParseClassifierResponse accepts both the nested [[{label,score}]] and flat [{label,score}] shapes.
func ParseClassifierResponse(body []byte) (dto.ClassifierResult, error) {
	var labels []classifierLabel

	var nested [][]classifierLabel
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 {
		labels = nested[0]
	} else if err := json.Unmarshal(body, &labels); err != nil {
		return dto.ClassifierResult{}, fmt.Errorf("failed to decode classifier response: %w", err)
	}
	if len(labels) == 0 {
		return dto.ClassifierResult{}, fmt.Errorf("classifier returned no labels")
	}

	best := labels[0]
	for _, l := range labels[1:] {
		if l.Score > best.Score {
			best = l
		}
	}
	return dto.ClassifierResult{Label: best.Label, Confidence: best.Score}, nil
}
