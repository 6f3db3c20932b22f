// Package pacing holds the context-aware wait shared by every component
// that spaces out calls to rate-limited services.
package pacing

import (
	"context"
	"time"
)

// Sleep waits for d or until ctx is done. A non-positive d returns at once
// with ctx.Err(), so a cancelled run stops at its next pause either way.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
