package models

// Analysis is the AI feedback attached to a journal entry.
type Analysis struct {
	Technical string `json:"technical"`
	Mindset   string `json:"mindset"`
	Quote     string `json:"quote"`
}

// Journal is a free-form trading diary entry.
type Journal struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"` // YYYY-MM-DD
	Category      string    `json:"category"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	LinkedSymbols []string  `json:"linkedSymbols,omitempty"`
	Keywords      []string  `json:"keywords,omitempty"`
	Analysis      *Analysis `json:"analysis,omitempty"`
}

// DefaultJournalCategory is used when an entry is created without one.
const DefaultJournalCategory = "review"
