package repository

import (
	"context"
	"errors"

	"golang-news-globe/internal/news/dto"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// ErrClassifierDisabled is returned when no classifier credentials are configured.
var ErrClassifierDisabled = errors.New("classifier not configured")

// TextGenerator sends a prompt to a generative model and returns the raw text reply.
type TextGenerator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Classifier scores text with a binary real/fake detector.
type Classifier interface {
	Classify(ctx context.Context, text string) (dto.ClassifierResult, error)
}
