package lifecycle

import "github.com/mmcdole/depot/internal/domain"

// Snapshot is an immutable view of panel state, handed to observers after
// every mutation. Engine truth and the optimistic overlay are kept as two
// sources and merged on read, so a stale panel assumption can never
// permanently shadow what the engine reports.
type Snapshot struct {
	Models  []domain.Model // Last successful fetch (or persisted seed)
	Overlay []string       // Ids optimistically marked downloading
	Staged  *domain.Model  // Pending delete target, nil when none
	Loading bool           // Primary loading indicator
	Polling bool           // Reconciliation loop running
	Err     error          // Visible error state, nil when clear
}

// EffectiveDownloading returns the union of the overlay and the
// engine-reported in-progress flag for a model.
func (s Snapshot) EffectiveDownloading(m domain.Model) bool {
	if m.Downloading {
		return true
	}
	for _, id := range s.Overlay {
		if id == m.ID {
			return true
		}
	}
	return false
}

// AnyDownloading reports whether any model's effective downloading state
// is true.
func (s Snapshot) AnyDownloading() bool {
	if len(s.Overlay) > 0 {
		return true
	}
	for _, m := range s.Models {
		if m.Downloading {
			return true
		}
	}
	return false
}

// snapshotLocked copies current state. Callers must hold c.mu.
func (c *Controller) snapshotLocked() Snapshot {
	models := make([]domain.Model, len(c.records))
	copy(models, c.records)

	overlay := make([]string, 0, len(c.overlay))
	for id := range c.overlay {
		overlay = append(overlay, id)
	}

	var staged *domain.Model
	if c.staged != nil {
		s := *c.staged
		staged = &s
	}

	return Snapshot{
		Models:  models,
		Overlay: overlay,
		Staged:  staged,
		Loading: c.loading,
		Polling: c.polling,
		Err:     c.lastErr,
	}
}
