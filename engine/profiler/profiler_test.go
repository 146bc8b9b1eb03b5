package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiler_FirstTickIsBaseline(t *testing.T) {
	p := NewProfiler(WithLogging(false))
	_, ok := p.Tick(time.Unix(100, 0))
	assert.False(t, ok)
}

func TestProfiler_SamplesEachInterval(t *testing.T) {
	p := NewProfiler(WithLogging(false), WithInterval(time.Second))
	t0 := time.Unix(100, 0)
	p.Tick(t0)

	_, ok := p.Tick(t0.Add(500 * time.Millisecond))
	assert.False(t, ok)

	s, ok := p.Tick(t0.Add(time.Second))
	require.True(t, ok)
	assert.InDelta(t, 2.0, s.FPS, 1e-9)
	assert.Greater(t, s.SysMB, 0.0)
	assert.Equal(t, s, p.Last())

	_, ok = p.Tick(t0.Add(1500 * time.Millisecond))
	assert.False(t, ok, "interval restarts after a sample")
}

func TestProfiler_IntervalDefault(t *testing.T) {
	p := NewProfiler(WithInterval(-1))
	assert.Equal(t, time.Second, p.updateInterval)
	assert.True(t, p.logging)
}
