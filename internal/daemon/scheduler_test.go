package daemon

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsImmediatelyAndRepeats(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)

	var runs atomic.Int32
	id, err := s.SchedulePeriodicBuild(t.Context(), "test", 20*time.Millisecond, true, func(context.Context) error {
		runs.Add(1)
		return nil
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	s.Start()
	t.Cleanup(func() { _ = s.Stop() })

	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestScheduler_NoOverlappingRuns(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)

	var active, maxActive, runs atomic.Int32
	_, err = s.SchedulePeriodicBuild(t.Context(), "slow", 5*time.Millisecond, true, func(context.Context) error {
		n := active.Add(1)
		for {
			m := maxActive.Load()
			if n <= m || maxActive.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		active.Add(-1)
		runs.Add(1)
		return errors.New("build failed")
	})
	require.NoError(t, err)

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop())
	assert.Equal(t, int32(1), maxActive.Load())
}

func TestScheduler_RunStopsWithContext(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
