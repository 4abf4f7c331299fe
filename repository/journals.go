package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"trading_journal/interfaces"
	"trading_journal/models"
)

const journalDateLayout = "2006-01-02"

// Journals is the persisted diary.
type Journals struct {
	store interfaces.Store
	now   func() time.Time
	mu    sync.Mutex
}

// NewJournals returns a diary backed by store.
func NewJournals(store interfaces.Store) *Journals {
	return &Journals{store: store, now: time.Now}
}

func journalID(j models.Journal) string { return j.ID }

// List returns every entry, newest date first.
func (r *Journals) List(ctx context.Context) ([]models.Journal, error) {
	journals, err := loadList[models.Journal](ctx, r.store, JournalsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	sort.SliceStable(journals, func(i, j int) bool {
		return journals[i].Date > journals[j].Date
	})
	return journals, nil
}

// Get returns the entry matching id or an id prefix.
func (r *Journals) Get(ctx context.Context, id string) (models.Journal, error) {
	journals, err := loadList[models.Journal](ctx, r.store, JournalsKey)
	if err != nil {
		return models.Journal{}, fmt.Errorf("failed to load journals: %w", err)
	}
	i, err := findIndex(journals, id, journalID)
	if err != nil {
		return models.Journal{}, err
	}
	return journals[i], nil
}

// Add stores a new entry. Date and category default to today and
// models.DefaultJournalCategory.
func (r *Journals) Add(ctx context.Context, j models.Journal) (models.Journal, error) {
	if strings.TrimSpace(j.Title) == "" {
		return models.Journal{}, errors.New("journal title is required")
	}
	if j.Date == "" {
		j.Date = r.now().Format(journalDateLayout)
	} else if _, err := time.Parse(journalDateLayout, j.Date); err != nil {
		return models.Journal{}, fmt.Errorf("invalid journal date %q, want YYYY-MM-DD", j.Date)
	}
	if j.Category == "" {
		j.Category = models.DefaultJournalCategory
	}
	j.ID = uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()

	journals, err := loadList[models.Journal](ctx, r.store, JournalsKey)
	if err != nil {
		return models.Journal{}, fmt.Errorf("failed to load journals: %w", err)
	}
	if err := r.store.Save(ctx, JournalsKey, append(journals, j)); err != nil {
		return models.Journal{}, fmt.Errorf("failed to save journals: %w", err)
	}
	return j, nil
}

// Update applies fn to the entry matching id and stores the result.
func (r *Journals) Update(ctx context.Context, id string, fn func(*models.Journal) error) (models.Journal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	journals, err := loadList[models.Journal](ctx, r.store, JournalsKey)
	if err != nil {
		return models.Journal{}, fmt.Errorf("failed to load journals: %w", err)
	}
	i, err := findIndex(journals, id, journalID)
	if err != nil {
		return models.Journal{}, err
	}

	j := journals[i]
	if err := fn(&j); err != nil {
		return models.Journal{}, err
	}
	j.ID = journals[i].ID
	journals[i] = j

	if err := r.store.Save(ctx, JournalsKey, journals); err != nil {
		return models.Journal{}, fmt.Errorf("failed to save journals: %w", err)
	}
	return j, nil
}

// SetAnalysis attaches an AI analysis to the entry.
func (r *Journals) SetAnalysis(ctx context.Context, id string, a models.Analysis) (models.Journal, error) {
	return r.Update(ctx, id, func(j *models.Journal) error {
		j.Analysis = &a
		return nil
	})
}

// Delete removes the entry matching id.
func (r *Journals) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	journals, err := loadList[models.Journal](ctx, r.store, JournalsKey)
	if err != nil {
		return fmt.Errorf("failed to load journals: %w", err)
	}
	i, err := findIndex(journals, id, journalID)
	if err != nil {
		return err
	}

	journals = append(journals[:i], journals[i+1:]...)
	if err := r.store.Save(ctx, JournalsKey, journals); err != nil {
		return fmt.Errorf("failed to save journals: %w", err)
	}
	return nil
}
