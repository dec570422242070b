package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsSweepOnStart(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	runs := 0

	s := NewScheduler()
	s.Every(time.Hour, "counting", func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		runs++
		return nil
	})
	s.Start()
	defer s.Stop()

	// The first run happens at startup, not after the first tick.
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return runs == 1
	}, time.Second, 10*time.Millisecond)
}

func TestScheduler_StopWaitsForSweeps(t *testing.T) {
	t.Parallel()
	started := make(chan struct{})
	var mu sync.Mutex
	finished := false

	s := NewScheduler()
	s.Every(time.Hour, "slow", func(ctx context.Context) error {
		close(started)
		time.Sleep(50 * time.Millisecond)
		mu.Lock()
		defer mu.Unlock()
		finished = true
		return nil
	})
	s.Start()

	<-started
	s.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, finished)
}

func TestScheduler_SweepErrorDoesNotStopOthers(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	healthyRuns := 0

	s := NewScheduler()
	s.Every(time.Hour, "failing", func(ctx context.Context) error {
		return errors.New("boom")
	})
	s.Every(time.Hour, "healthy", func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		healthyRuns++
		return nil
	})
	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return healthyRuns == 1
	}, time.Second, 10*time.Millisecond)
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	t.Parallel()
	s := NewScheduler()
	s.Every(time.Hour, "never", func(ctx context.Context) error { return nil })
	s.Stop()
}
