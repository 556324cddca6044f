package controller

import (
	"context"
	"time"
)

// runProgress advances the cosmetic stage sequence until it is exhausted or
// ctx is cancelled. It is not tied to the request's real progress.
func (c *Controller) runProgress(ctx context.Context, attempt string) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for i := 1; i < len(c.stages); i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if !c.advance(attempt, i) {
			return
		}
		c.render()
	}
}

// advance moves attempt to stage i. Stale attempts are ignored.
func (c *Controller) advance(attempt string, i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.snap.Attempt != attempt || c.snap.State != Loading {
		return false
	}
	c.snap.StageIndex = i
	c.snap.Stage = c.stages[i]
	return true
}
