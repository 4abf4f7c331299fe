// Package analysis asks a text model for feedback on journal entries.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"trading_journal/interfaces"
	"trading_journal/logger"
	"trading_journal/models"
)

// MinContentLength is the shortest content worth sending for symbol or
// keyword suggestions.
const MinContentLength = 10

// MaxKeywords is how many keywords the model is asked to suggest.
const MaxKeywords = 5

var (
	ErrContentTooShort = fmt.Errorf("journal content must be at least %d characters", MinContentLength)
	ErrIncomplete      = errors.New("analysis response is missing fields")
)

// Analyst runs the journal prompts against a TextGenerator.
type Analyst struct {
	gen   interfaces.TextGenerator
	cache *Cache
}

// NewAnalyst returns an Analyst. cache may be nil.
func NewAnalyst(gen interfaces.TextGenerator, cache *Cache) *Analyst {
	return &Analyst{gen: gen, cache: cache}
}

// ExtractSymbols returns the stock tickers and crypto symbols mentioned in
// the entry, without duplicates, in the order the model listed them.
func (a *Analyst) ExtractSymbols(ctx context.Context, j models.Journal) ([]string, error) {
	if err := checkContent(j); err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(`Extract every stock ticker (e.g. AAPL, 005930.KS) and crypto symbol (e.g. BTC, ETH) from the text below and return them as a single comma-separated string. No other explanation. Text: "%s %s"`, j.Title, j.Content)
	out, err := a.generate(ctx, "symbols", prompt, false)
	if err != nil {
		return nil, fmt.Errorf("failed to extract symbols: %w", err)
	}
	return mergeUnique(nil, splitList(out)), nil
}

// RecommendKeywords merges the model's keyword suggestions into the entry's
// existing keywords, without duplicates.
func (a *Analyst) RecommendKeywords(ctx context.Context, j models.Journal) ([]string, error) {
	if err := checkContent(j); err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(`Suggest exactly %d key keywords for the following trading journal entry as a comma-separated list. No other explanation. Content: "%s %s"`, MaxKeywords, j.Title, j.Content)
	out, err := a.generate(ctx, "keywords", prompt, false)
	if err != nil {
		return nil, fmt.Errorf("failed to recommend keywords: %w", err)
	}
	return mergeUnique(j.Keywords, splitList(out)), nil
}

// Analyze asks for technical and mindset feedback plus a quote.
func (a *Analyst) Analyze(ctx context.Context, j models.Journal) (models.Analysis, error) {
	prompt := fmt.Sprintf(`Analyze the following trading journal entry.
Title: %s
Content: %s

Answer with JSON in exactly this shape. Summarize each field in 2-3 sentences.
{
  "technical": "feedback from a technical analysis point of view",
  "mindset": "advice on trading psychology and mindset",
  "quote": "one investing quote that fits the situation"
}`, j.Title, j.Content)
	out, err := a.generate(ctx, "analysis", prompt, true)
	if err != nil {
		return models.Analysis{}, fmt.Errorf("failed to analyze journal: %w", err)
	}
	return parseAnalysis(out)
}

func (a *Analyst) generate(ctx context.Context, kind, prompt string, asJSON bool) (string, error) {
	if a.gen == nil {
		return "", errors.New("no text generator configured")
	}
	key := kind + "\x00" + prompt
	if a.cache != nil {
		if out, ok := a.cache.Get(key); ok {
			logger.Debugf("Using cached %s response", kind)
			return out, nil
		}
	}
	out, err := a.gen.Generate(ctx, prompt, asJSON)
	if err != nil {
		return "", err
	}
	if a.cache != nil {
		a.cache.Set(key, out)
	}
	return out, nil
}

func checkContent(j models.Journal) error {
	if len([]rune(strings.TrimSpace(j.Content))) < MinContentLength {
		return ErrContentTooShort
	}
	return nil
}

func parseAnalysis(out string) (models.Analysis, error) {
	var res models.Analysis
	if err := json.Unmarshal([]byte(stripFence(out)), &res); err != nil {
		return models.Analysis{}, fmt.Errorf("failed to parse analysis: %w", err)
	}
	if res.Technical == "" || res.Mindset == "" || res.Quote == "" {
		return models.Analysis{}, ErrIncomplete
	}
	return res, nil
}

// stripFence removes a markdown code fence around a JSON answer.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func mergeUnique(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
