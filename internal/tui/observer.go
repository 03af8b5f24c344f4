package tui

import (
	"github.com/mmcdole/depot/internal/lifecycle"
)

// ChannelObserver bridges controller snapshots to the TUI event loop.
// Delivery is lossy on purpose: if the UI hasn't drained the previous
// snapshot yet, the stale one is dropped in favor of the newest.
type ChannelObserver struct {
	ch chan lifecycle.Snapshot
}

// NewChannelObserver creates an observer with a single-slot buffer
func NewChannelObserver() *ChannelObserver {
	return &ChannelObserver{
		ch: make(chan lifecycle.Snapshot, 1),
	}
}

// OnChange implements lifecycle.Observer
func (o *ChannelObserver) OnChange(snap lifecycle.Snapshot) {
	// Replace any undelivered snapshot with the latest one.
	select {
	case o.ch <- snap:
	default:
		select {
		case <-o.ch:
		default:
		}
		select {
		case o.ch <- snap:
		default:
		}
	}
}

// Changes returns the snapshot channel for the TUI to wait on
func (o *ChannelObserver) Changes() <-chan lifecycle.Snapshot {
	return o.ch
}
