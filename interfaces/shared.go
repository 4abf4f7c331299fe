package interfaces

import (
	"context"

	"trading_journal/models"
)

// QuoteSource fetches 24h ticker statistics for a set of symbols.
type QuoteSource interface {
	FetchTickers(ctx context.Context, symbols []string) ([]models.Ticker, error)
}

// Store persists whole JSON documents by key.
type Store interface {
	// Load decodes the document stored at key into v.
	// It reports false when nothing is stored at key.
	Load(ctx context.Context, key string, v any) (bool, error)
	// Save replaces the document stored at key with v.
	Save(ctx context.Context, key string, v any) error
}

// TextGenerator turns a prompt into generated text.
type TextGenerator interface {
	// Generate returns the model output for prompt. When asJSON is set the
	// model is asked to answer with a JSON document.
	Generate(ctx context.Context, prompt string, asJSON bool) (string, error)
}
