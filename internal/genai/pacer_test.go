package genai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacerSpacesAcquisitions(t *testing.T) {
	interval := 50 * time.Millisecond
	p := NewPacer(interval)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, p.Acquire(ctx))
	first := time.Since(start)
	require.NoError(t, p.Acquire(ctx))
	second := time.Since(start)

	assert.Less(t, first, interval, "first acquisition should not wait")
	assert.GreaterOrEqual(t, second, interval, "second acquisition should wait out the interval")
}

func TestPacerConcurrentCallersDoNotPanic(t *testing.T) {
	p := NewPacer(time.Millisecond)
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_ = p.Acquire(ctx)
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestPacerHonorsContextCancellation(t *testing.T) {
	p := NewPacer(time.Hour)
	ctx := context.Background()

	require.NoError(t, p.Acquire(ctx))

	cancelCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err := p.Acquire(cancelCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPacerZeroIntervalUsesDefault(t *testing.T) {
	p := NewPacer(0)
	assert.Equal(t, DefaultMinInterval, p.interval)
}
