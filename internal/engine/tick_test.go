package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineRunCallsHooks(t *testing.T) {
	eng := NewEngine()
	eng.ReportEvery = 3

	var ticks, reports []uint64
	eng.OnTick = func(tick uint64) { ticks = append(ticks, tick) }
	eng.OnReport = func(tick uint64) { reports = append(reports, tick) }

	require.NoError(t, eng.Run(context.Background(), 7))

	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6, 7}, ticks)
	assert.Equal(t, []uint64{3, 6}, reports)
	assert.Equal(t, uint64(7), eng.Tick)
}

func TestEngineRunZeroTicks(t *testing.T) {
	eng := NewEngine()
	called := false
	eng.OnTick = func(uint64) { called = true }

	require.NoError(t, eng.Run(context.Background(), 0))
	assert.False(t, called)
}

func TestEngineRunNegativeTicks(t *testing.T) {
	err := NewEngine().Run(context.Background(), -1)
	assert.ErrorIs(t, err, ErrNegativeSteps)
}

func TestEngineRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	eng := NewEngine()
	eng.OnTick = func(tick uint64) {
		if tick == 2 {
			cancel()
		}
	}

	err := eng.Run(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(2), eng.Tick)
}
