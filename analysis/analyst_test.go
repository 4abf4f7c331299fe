package analysis

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"trading_journal/models"
)

type fakeGenerator struct {
	out     string
	err     error
	calls   int
	prompts []string
	asJSON  []bool
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string, asJSON bool) (string, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	g.asJSON = append(g.asJSON, asJSON)
	return g.out, g.err
}

var entry = models.Journal{
	Title:    "BTC breakout",
	Content:  "Bought BTC and ETH on the breakout, sold AAPL too early.",
	Keywords: []string{"breakout"},
}

func TestExtractSymbols(t *testing.T) {
	gen := &fakeGenerator{out: " BTC, ETH,AAPL , BTC,, "}
	a := NewAnalyst(gen, nil)

	got, err := a.ExtractSymbols(context.Background(), entry)
	if err != nil {
		t.Fatalf("ExtractSymbols() error = %v", err)
	}
	if want := []string{"BTC", "ETH", "AAPL"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSymbols() = %v, want %v", got, want)
	}
	if !strings.Contains(gen.prompts[0], entry.Content) {
		t.Errorf("prompt does not contain content: %q", gen.prompts[0])
	}
	if gen.asJSON[0] {
		t.Error("symbols were requested as JSON")
	}
}

func TestShortContent(t *testing.T) {
	gen := &fakeGenerator{out: "BTC"}
	a := NewAnalyst(gen, nil)
	short := models.Journal{Title: "long enough title", Content: "  too short"}

	if _, err := a.ExtractSymbols(context.Background(), short); !errors.Is(err, ErrContentTooShort) {
		t.Errorf("ExtractSymbols() error = %v, want ErrContentTooShort", err)
	}
	if _, err := a.RecommendKeywords(context.Background(), short); !errors.Is(err, ErrContentTooShort) {
		t.Errorf("RecommendKeywords() error = %v, want ErrContentTooShort", err)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times, want 0", gen.calls)
	}
}

func TestRecommendKeywords_Merges(t *testing.T) {
	gen := &fakeGenerator{out: "breakout, FOMO, risk, breakout, exit"}
	a := NewAnalyst(gen, nil)

	got, err := a.RecommendKeywords(context.Background(), entry)
	if err != nil {
		t.Fatalf("RecommendKeywords() error = %v", err)
	}
	if want := []string{"breakout", "FOMO", "risk", "exit"}; !reflect.DeepEqual(got, want) {
		t.Errorf("RecommendKeywords() = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(entry.Keywords, []string{"breakout"}) {
		t.Errorf("input keywords mutated: %v", entry.Keywords)
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    models.Analysis
		wantErr bool
	}{
		{
			name: "plain JSON",
			out:  `{"technical":"t","mindset":"m","quote":"q"}`,
			want: models.Analysis{Technical: "t", Mindset: "m", Quote: "q"},
		},
		{
			name: "fenced JSON",
			out:  "```json\n{\"technical\":\"t\",\"mindset\":\"m\",\"quote\":\"q\"}\n```",
			want: models.Analysis{Technical: "t", Mindset: "m", Quote: "q"},
		},
		{name: "missing field", out: `{"technical":"t","mindset":"m"}`, wantErr: true},
		{name: "not JSON", out: "I cannot help with that", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{out: tt.out}
			got, err := NewAnalyst(gen, nil).Analyze(context.Background(), entry)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Analyze() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Analyze() = %+v, want %+v", got, tt.want)
			}
			if !gen.asJSON[0] {
				t.Error("analysis was not requested as JSON")
			}
		})
	}
}

func TestGeneratorError(t *testing.T) {
	boom := errors.New("quota exceeded")
	a := NewAnalyst(&fakeGenerator{err: boom}, nil)
	if _, err := a.Analyze(context.Background(), entry); !errors.Is(err, boom) {
		t.Errorf("Analyze() error = %v, want %v", err, boom)
	}
}

func TestNoGenerator(t *testing.T) {
	if _, err := NewAnalyst(nil, nil).Analyze(context.Background(), entry); err == nil {
		t.Error("Analyze() without generator succeeded")
	}
}

func TestCachedResponses(t *testing.T) {
	cache, err := NewCache(1<<20, time.Minute)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	defer cache.Close()

	gen := &fakeGenerator{out: "BTC, ETH"}
	a := NewAnalyst(gen, cache)
	for i := 0; i < 3; i++ {
		if _, err := a.ExtractSymbols(context.Background(), entry); err != nil {
			t.Fatalf("ExtractSymbols() error = %v", err)
		}
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls)
	}

	if _, err := a.RecommendKeywords(context.Background(), entry); err != nil {
		t.Fatalf("RecommendKeywords() error = %v", err)
	}
	if gen.calls != 2 {
		t.Errorf("generator calls = %d, want 2 after a different prompt", gen.calls)
	}
}

func TestNewGemini_RequiresKey(t *testing.T) {
	if _, err := NewGemini(context.Background(), "", ""); err == nil {
		t.Error("NewGemini() without key succeeded")
	}
}
