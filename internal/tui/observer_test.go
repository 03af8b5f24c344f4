package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/depot/internal/domain"
	"github.com/mmcdole/depot/internal/lifecycle"
)

func TestChannelObserverDeliversSnapshot(t *testing.T) {
	obs := NewChannelObserver()
	obs.OnChange(lifecycle.Snapshot{Loading: true})

	snap := <-obs.Changes()
	assert.True(t, snap.Loading)
}

func TestChannelObserverKeepsLatest(t *testing.T) {
	obs := NewChannelObserver()

	// Nobody draining: the second publish replaces the first.
	obs.OnChange(lifecycle.Snapshot{Models: []domain.Model{{ID: "stale"}}})
	obs.OnChange(lifecycle.Snapshot{Models: []domain.Model{{ID: "fresh"}}})

	snap := <-obs.Changes()
	require.Len(t, snap.Models, 1)
	assert.Equal(t, "fresh", snap.Models[0].ID)

	select {
	case <-obs.Changes():
		t.Fatal("stale snapshot should have been dropped")
	default:
	}
}
