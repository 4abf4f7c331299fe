package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"trading_journal/interfaces"
	"trading_journal/models"
)

// Trades is the persisted trade log.
type Trades struct {
	store interfaces.Store
	now   func() time.Time
	mu    sync.Mutex
}

// NewTrades returns a trade log backed by store.
func NewTrades(store interfaces.Store) *Trades {
	return &Trades{store: store, now: time.Now}
}

func tradeID(t models.Trade) string { return t.ID }

// List returns every trade, most recent first.
func (r *Trades) List(ctx context.Context) ([]models.Trade, error) {
	trades, err := loadList[models.Trade](ctx, r.store, TradesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Date.After(trades[j].Date)
	})
	return trades, nil
}

// Get returns the trade with the given id or id prefix.
func (r *Trades) Get(ctx context.Context, id string) (models.Trade, error) {
	trades, err := loadList[models.Trade](ctx, r.store, TradesKey)
	if err != nil {
		return models.Trade{}, fmt.Errorf("failed to load trades: %w", err)
	}
	i, err := findIndex(trades, id, tradeID)
	if err != nil {
		return models.Trade{}, err
	}
	return trades[i], nil
}

// Add validates and stores new trades, assigning their ids.
// A completed trade gets its P/L recomputed from its exit price.
func (r *Trades) Add(ctx context.Context, newTrades ...models.Trade) ([]models.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trades, err := loadList[models.Trade](ctx, r.store, TradesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load trades: %w", err)
	}

	added := make([]models.Trade, 0, len(newTrades))
	for _, t := range newTrades {
		if t.Date.IsZero() {
			t.Date = r.now()
		}
		if t.EntryType == "" {
			t.EntryType = models.EntryQuantity
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("invalid trade %s: %w", t.Symbol, err)
		}
		if t.IsComplete {
			t.Close(*t.ExitPrice)
		} else {
			t.Reopen()
		}
		t.ID = uuid.NewString()
		added = append(added, t)
	}

	if err := r.store.Save(ctx, TradesKey, append(trades, added...)); err != nil {
		return nil, fmt.Errorf("failed to save trades: %w", err)
	}
	return added, nil
}

// Update applies fn to the trade matching id and stores the result.
func (r *Trades) Update(ctx context.Context, id string, fn func(*models.Trade) error) (models.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trades, err := loadList[models.Trade](ctx, r.store, TradesKey)
	if err != nil {
		return models.Trade{}, fmt.Errorf("failed to load trades: %w", err)
	}
	i, err := findIndex(trades, id, tradeID)
	if err != nil {
		return models.Trade{}, err
	}

	t := trades[i]
	if err := fn(&t); err != nil {
		return models.Trade{}, err
	}
	t.ID = trades[i].ID
	if err := t.Validate(); err != nil {
		return models.Trade{}, fmt.Errorf("invalid trade %s: %w", t.ID, err)
	}
	trades[i] = t

	if err := r.store.Save(ctx, TradesKey, trades); err != nil {
		return models.Trade{}, fmt.Errorf("failed to save trades: %w", err)
	}
	return t, nil
}

// Close completes the trade at exitPrice.
func (r *Trades) Close(ctx context.Context, id string, exitPrice float64) (models.Trade, error) {
	if exitPrice <= 0 {
		return models.Trade{}, fmt.Errorf("exit price must be positive, got %v", exitPrice)
	}
	return r.Update(ctx, id, func(t *models.Trade) error {
		t.Close(exitPrice)
		return nil
	})
}

// Reopen turns a completed trade back into an open one.
func (r *Trades) Reopen(ctx context.Context, id string) (models.Trade, error) {
	return r.Update(ctx, id, func(t *models.Trade) error {
		t.Reopen()
		return nil
	})
}

// Delete removes the trade matching id.
func (r *Trades) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trades, err := loadList[models.Trade](ctx, r.store, TradesKey)
	if err != nil {
		return fmt.Errorf("failed to load trades: %w", err)
	}
	i, err := findIndex(trades, id, tradeID)
	if err != nil {
		return err
	}

	trades = append(trades[:i], trades[i+1:]...)
	if err := r.store.Save(ctx, TradesKey, trades); err != nil {
		return fmt.Errorf("failed to save trades: %w", err)
	}
	return nil
}
