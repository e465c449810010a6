// Package history keeps the user-visible, append-only list of past analysis
// and CV-generation events. The list is ordered most-recent-first and is
// persisted as one document scoped to the active session.
package history

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/career-coach/internal/schemas"
	"github.com/jonathan/career-coach/internal/store"
	"github.com/jonathan/career-coach/internal/types"
)

// Log is the persisted history list. Limit caps retention when positive;
// zero keeps the list unbounded, matching the observed legacy behavior.
type Log struct {
	store *store.Store
	log   *zap.Logger
	limit int
}

// New returns a history log over the given store. limit <= 0 disables the
// retention cap.
func New(s *store.Store, log *zap.Logger, limit int) *Log {
	if log == nil {
		log = zap.NewNop()
	}
	return &Log{store: s, log: log, limit: limit}
}

// List returns the full history, most recent first.
func (l *Log) List(ctx context.Context) []types.HistoryItem {
	return l.store.History(ctx)
}

// Append prepends an item and persists the whole list. The read-modify-write
// runs under the store lock, so concurrent appends never drop each other's
// items. Item validation is fail-open: a malformed item is still recorded,
// with a diagnostic.
func (l *Log) Append(ctx context.Context, item types.HistoryItem) error {
	if err := schemas.ValidateHistoryItem(item); err != nil {
		l.log.Warn("history validation error, recording item anyway", zap.Error(err))
	}

	err := l.store.UpdateHistory(ctx, func(items []types.HistoryItem) []types.HistoryItem {
		items = append([]types.HistoryItem{item}, items...)
		if l.limit > 0 && len(items) > l.limit {
			items = items[:l.limit]
		}
		return items
	})
	if err != nil {
		return fmt.Errorf("failed to append history item: %w", err)
	}
	return nil
}

// Remove deletes the item with the given id and persists the remainder.
// Removing an unknown id leaves the list unchanged.
func (l *Log) Remove(ctx context.Context, id string) error {
	err := l.store.UpdateHistory(ctx, func(items []types.HistoryItem) []types.HistoryItem {
		kept := items[:0]
		for _, item := range items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		return kept
	})
	if err != nil {
		return fmt.Errorf("failed to remove history item %s: %w", id, err)
	}
	return nil
}
