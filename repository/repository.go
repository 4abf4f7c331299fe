// Package repository keeps the journal's collections as whole documents in a
// Store, the way the original local-storage app did: every mutation loads the
// list, changes it and writes it back.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trading_journal/interfaces"
)

// Storage keys.
const (
	TradesKey   = "trades_v2"
	JournalsKey = "journals"
	MessagesKey = "community_messages_v1"
	ProfileKey  = "community_profile_v1"
)

var (
	// ErrNotFound is returned when no entity matches an id.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousID is returned when an id prefix matches several entities.
	ErrAmbiguousID = errors.New("ambiguous id")
)

func loadList[T any](ctx context.Context, store interfaces.Store, key string) ([]T, error) {
	var list []T
	if _, err := store.Load(ctx, key, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// findIndex resolves id, or a unique prefix of it, to a position in list.
func findIndex[T any](list []T, id string, idOf func(T) string) (int, error) {
	if id == "" {
		return -1, fmt.Errorf("empty id: %w", ErrNotFound)
	}
	match := -1
	for i, item := range list {
		itemID := idOf(item)
		if itemID == id {
			return i, nil
		}
		if strings.HasPrefix(itemID, id) {
			if match >= 0 {
				return -1, fmt.Errorf("%s: %w", id, ErrAmbiguousID)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return match, nil
}
