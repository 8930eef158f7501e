package core

import (
	"context"
	"time"
)

// Pacer pauses between simulation ticks. It never holds a lock while waiting.
type Pacer struct {
	step time.Duration
}

// NewPacer constructs a Pacer. Non-positive intervals disable waiting.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{step: interval}
}

// Interval returns the configured pause.
func (p *Pacer) Interval() time.Duration { return p.step }

// Wait sleeps for the interval or until ctx is done, whichever comes first.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.step <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.step)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
