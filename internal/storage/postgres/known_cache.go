package postgres

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"newsletter_digest/internal/domain"
)

type itemRepository interface {
	IsKnown(ctx context.Context, externalID string) (bool, error)
	KnownIDs(ctx context.Context, externalIDs []string) (map[string]bool, error)
	Record(ctx context.Context, item *domain.InboundItem) (int64, bool, error)
	Snapshot(ctx context.Context) (time.Time, error)
	QueryWindow(ctx context.Context, since, until *time.Time) ([]domain.WindowEntry, error)
}

// KnownCache remembers external ids the store has confirmed as committed.
// Items are never deleted, so a positive answer never goes stale.
type KnownCache struct {
	itemRepository
	known *lru.Cache[string, struct{}]
}

func NewKnownCache(items itemRepository, size int) (*KnownCache, error) {
	cache, err := lru.New[string, struct{}](size)
	if err != nil {
		return nil, fmt.Errorf("create known-id cache: %w", err)
	}
	return &KnownCache{itemRepository: items, known: cache}, nil
}

func (c *KnownCache) IsKnown(ctx context.Context, externalID string) (bool, error) {
	if c.known.Contains(externalID) {
		return true, nil
	}
	known, err := c.itemRepository.IsKnown(ctx, externalID)
	if err != nil {
		return false, err
	}
	if known {
		c.known.Add(externalID, struct{}{})
	}
	return known, nil
}

func (c *KnownCache) KnownIDs(ctx context.Context, externalIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(externalIDs))
	misses := make([]string, 0, len(externalIDs))
	for _, id := range externalIDs {
		if c.known.Contains(id) {
			result[id] = true
		} else {
			misses = append(misses, id)
		}
	}
	if len(misses) == 0 {
		return result, nil
	}

	found, err := c.itemRepository.KnownIDs(ctx, misses)
	if err != nil {
		return nil, err
	}
	for id := range found {
		result[id] = true
		c.known.Add(id, struct{}{})
	}
	return result, nil
}
