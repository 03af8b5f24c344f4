// Package lifecycle implements model lifecycle reconciliation: it tracks
// the engine-reported inventory, overlays the panel's own optimistic
// assumptions about just-requested downloads, and polls the engine until
// the two views converge.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/depot/internal/domain"
)

const defaultPollInterval = 2 * time.Second

// Observer receives a state snapshot after every mutation.
type Observer interface {
	OnChange(Snapshot)
}

// Controller owns all panel-side model state. It is the only write path:
// the record slice is replaced wholesale by refreshes, the overlay is
// mutated only by download requests and their reconciliation, and the
// staged delete target only by the deletion workflow.
type Controller struct {
	client domain.EngineClient
	store  domain.SnapshotStore // may be nil (no persistence)
	logger *slog.Logger

	mu      sync.Mutex
	records []domain.Model
	overlay map[string]struct{}
	staged  *domain.Model
	lastErr error
	loading bool // primary loading indicator; silent refreshes never touch it

	interval time.Duration
	timer    *time.Timer // at most one outstanding poll handle
	polling  bool
	closed   bool

	observers []Observer
}

// NewController creates a lifecycle controller. If the store holds a
// previous inventory snapshot it seeds the record set so the panel has
// something to render before the first refresh completes.
func NewController(client domain.EngineClient, store domain.SnapshotStore, interval time.Duration, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = defaultPollInterval
	}

	c := &Controller{
		client:   client,
		store:    store,
		logger:   logger,
		overlay:  make(map[string]struct{}),
		interval: interval,
	}

	if store != nil {
		if models, ok := store.GetModels(); ok {
			c.records = models
			logger.Debug("seeded inventory from snapshot store", "count", len(models))
		}
	}

	return c
}

// Subscribe registers an observer for state change notifications.
func (c *Controller) Subscribe(obs Observer) {
	c.mu.Lock()
	c.observers = append(c.observers, obs)
	c.mu.Unlock()
}

// Close stops the poll loop. In-flight requests are allowed to complete;
// their results still apply.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.stopTimerLocked()
	c.mu.Unlock()
}

// Snapshot returns an immutable copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Refresh replaces the entire inventory with a fresh fetch. Silent mode
// must not disturb the primary loading indicator used by user-initiated
// fetches. On failure the previous inventory is retained and the error is
// surfaced as visible state, never a crash of the poll loop.
func (c *Controller) Refresh(ctx context.Context, silent bool) error {
	if !silent {
		c.mu.Lock()
		c.loading = true
		c.notify(c.snapshotLocked())
	}

	models, err := c.client.ListModels(ctx)

	c.mu.Lock()
	if !silent {
		c.loading = false
	}
	if err != nil {
		c.logger.Error("inventory refresh failed", "error", err, "silent", silent)
		c.lastErr = err
		c.evaluatePollLocked()
		c.notify(c.snapshotLocked())
		return err
	}

	// Replace-all: stale ids do not survive a refresh.
	c.records = models
	c.reconcileOverlayLocked()
	c.lastErr = nil
	c.evaluatePollLocked()
	snap := c.snapshotLocked()
	c.notify(snap)

	if c.store != nil {
		if err := c.store.SaveModels(models); err != nil {
			c.logger.Error("failed to persist inventory snapshot", "error", err)
		}
	}

	c.logger.Debug("refreshed inventory", "count", len(models), "silent", silent)
	return nil
}

// RequestDownload optimistically marks a model as downloading and asks the
// engine to start the download. A model whose effective downloading state
// is already true is suppressed without a second remote request. On
// rejection the overlay entry is rolled back and the inventory is left
// untouched.
func (c *Controller) RequestDownload(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.effectiveDownloadingLocked(id) {
		c.mu.Unlock()
		c.logger.Debug("download already in flight, suppressed", "modelID", id)
		return nil
	}
	c.overlay[id] = struct{}{}
	c.evaluatePollLocked()
	c.notify(c.snapshotLocked())

	c.logger.Info("requesting model download", "modelID", id)

	if err := c.client.DownloadModel(ctx, id); err != nil {
		c.logger.Error("download request rejected", "error", err, "modelID", id)
		c.mu.Lock()
		delete(c.overlay, id) // rollback
		c.lastErr = fmt.Errorf("starting download: %w", err)
		c.evaluatePollLocked()
		c.notify(c.snapshotLocked())
		return err
	}

	// Out-of-band refresh so engine truth supersedes the overlay as soon
	// as possible, without waiting for the next poll tick.
	if err := c.Refresh(ctx, true); err != nil {
		c.logger.Warn("post-download refresh failed", "error", err, "modelID", id)
	}
	return nil
}

// Register validates and registers a custom model, then performs a
// blocking full refresh. Empty name or path is rejected before any request
// is sent.
func (c *Controller) Register(ctx context.Context, name, path, referenceURL string) error {
	if strings.TrimSpace(name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(path) == "" {
		return &domain.ValidationError{Field: "path", Reason: "must not be empty"}
	}

	model, err := c.client.RegisterModel(ctx, name, path, referenceURL)
	if err != nil {
		c.logger.Error("model registration failed", "error", err, "name", name)
		return fmt.Errorf("registering model: %w", err)
	}

	c.logger.Info("registered custom model", "modelID", model.ID, "name", name)

	if err := c.Refresh(ctx, false); err != nil {
		c.logger.Warn("post-register refresh failed", "error", err)
	}
	return nil
}

// ConfirmDelete stages a model for deletion without side effects.
func (c *Controller) ConfirmDelete(model domain.Model) {
	c.mu.Lock()
	staged := model
	c.staged = &staged
	c.notify(c.snapshotLocked())
}

// CancelDelete clears the staged delete target.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	c.staged = nil
	c.notify(c.snapshotLocked())
}

// CommitDelete deletes the staged model, performs a blocking full refresh,
// then clears the staged target. On failure the target stays staged so the
// confirmation surface remains open with the error shown.
func (c *Controller) CommitDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.staged == nil {
		c.mu.Unlock()
		return domain.ErrNothingStaged
	}
	id := c.staged.ID
	c.mu.Unlock()

	if err := c.client.DeleteModel(ctx, id); err != nil {
		c.logger.Error("model delete failed", "error", err, "modelID", id)
		c.mu.Lock()
		c.lastErr = fmt.Errorf("deleting model: %w", err)
		c.notify(c.snapshotLocked())
		return err
	}

	c.logger.Info("deleted model", "modelID", id)

	if err := c.Refresh(ctx, false); err != nil {
		c.logger.Warn("post-delete refresh failed", "error", err)
	}

	c.mu.Lock()
	c.staged = nil
	c.notify(c.snapshotLocked())
	return nil
}

// ClearError dismisses the visible error state.
func (c *Controller) ClearError() {
	c.mu.Lock()
	c.lastErr = nil
	c.notify(c.snapshotLocked())
}

// reconcileOverlayLocked drops overlay entries made redundant by engine
// truth: ids the engine now reports as downloaded or downloading, and ids
// that no longer exist at all. Entries whose record shows neither flag are
// kept; the engine has accepted the request but not yet started it.
func (c *Controller) reconcileOverlayLocked() {
	if len(c.overlay) == 0 {
		return
	}
	byID := make(map[string]domain.Model, len(c.records))
	for _, m := range c.records {
		byID[m.ID] = m
	}
	for id := range c.overlay {
		record, exists := byID[id]
		if !exists || record.Downloaded || record.Downloading {
			delete(c.overlay, id)
		}
	}
}

// effectiveDownloadingLocked reports the union of the optimistic overlay
// and the engine-reported in-progress flag for one model.
func (c *Controller) effectiveDownloadingLocked(id string) bool {
	if _, ok := c.overlay[id]; ok {
		return true
	}
	for _, m := range c.records {
		if m.ID == id {
			return m.Downloading
		}
	}
	return false
}

// notify snapshots observers under the lock, releases it, then delivers.
// Callers must hold c.mu; it is unlocked on return.
func (c *Controller) notify(snap Snapshot) {
	observers := make([]Observer, len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, obs := range observers {
		obs.OnChange(snap)
	}
}
