package lifecycle

import (
	"context"
	"time"
)

// The reconciliation poller re-fetches inventory at a fixed cadence while
// at least one model's effective downloading state is true, and stops the
// instant the condition becomes false. The condition is a pure function of
// current state, re-evaluated after every mutation, so termination follows
// from the last in-flight model's downloaded flag flipping engine-side.
//
// There is deliberately no maximum poll duration and no backoff: a
// download the engine never completes keeps the loop running.

const pollTickTimeout = 30 * time.Second

// Polling reports whether the reconciliation loop is currently running.
func (c *Controller) Polling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.polling
}

// anyDownloadingLocked is the poll condition: true iff some model's
// effective downloading state is true.
func (c *Controller) anyDownloadingLocked() bool {
	if len(c.overlay) > 0 {
		return true
	}
	for _, m := range c.records {
		if m.Downloading {
			return true
		}
	}
	return false
}

// evaluatePollLocked re-evaluates the poll condition. The previously
// scheduled tick is always cancelled before a new one is scheduled, so at
// most one timer handle is ever outstanding.
func (c *Controller) evaluatePollLocked() {
	c.stopTimerLocked()

	if c.closed || !c.anyDownloadingLocked() {
		if c.polling {
			c.logger.Debug("reconciliation poll stopped")
		}
		c.polling = false
		return
	}

	if !c.polling {
		c.logger.Debug("reconciliation poll started", "interval", c.interval)
	}
	c.polling = true
	c.timer = time.AfterFunc(c.interval, c.pollTick)
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// pollTick runs one silent refresh. Refresh re-evaluates the condition on
// completion, which either schedules the next tick or halts the loop. A
// failed tick leaves prior inventory untouched and the loop continues.
func (c *Controller) pollTick() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), pollTickTimeout)
	defer cancel()

	// Error intentionally dropped here: Refresh already recorded it as
	// visible state and rescheduled the loop.
	_ = c.Refresh(ctx, true)
}
