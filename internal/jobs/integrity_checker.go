package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"canteen/internal/metrics"
	"canteen/internal/searchlog"
)

// IntegrityChecker periodically reads the search log so corruption is
// reported to operators before the next search discards it. It never
// modifies the store.
type IntegrityChecker struct {
	store    searchlog.Store
	interval time.Duration
}

// NewIntegrityChecker creates a new integrity checker.
func NewIntegrityChecker(store searchlog.Store, interval time.Duration) *IntegrityChecker {
	return &IntegrityChecker{store: store, interval: interval}
}

// Start begins the background check loop. It returns when ctx is done.
func (c *IntegrityChecker) Start(ctx context.Context) {
	slog.Info("search log integrity checker started", "interval", c.interval)

	// Run immediately on start
	c.Check(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("search log integrity checker stopped")
			return
		case <-ticker.C:
			c.Check(ctx)
		}
	}
}

// Check loads the search log once and reports what it found. It returns the
// load error, if any, for callers that want it.
func (c *IntegrityChecker) Check(ctx context.Context) error {
	records, err := c.store.LoadAll(ctx)
	if err != nil {
		if errors.Is(err, searchlog.ErrStoreCorrupted) {
			slog.Warn("search log integrity check: store is corrupted and will be reset on the next search", "error", err)
		} else {
			slog.Error("search log integrity check: failed to load store", "error", err)
		}
		return err
	}

	metrics.SetTermCount(len(records))
	slog.Debug("search log integrity check passed", "terms", len(records))
	return nil
}
