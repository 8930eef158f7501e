package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPacerWaitCancelled(t *testing.T) {
	p := NewPacer(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := p.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestPacerWaitElapses(t *testing.T) {
	p := NewPacer(5 * time.Millisecond)
	assert.NoError(t, p.Wait(context.Background()))
	assert.Equal(t, 5*time.Millisecond, p.Interval())
}

func TestPacerZeroInterval(t *testing.T) {
	assert.NoError(t, NewPacer(0).Wait(context.Background()))
}
