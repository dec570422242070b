package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type sweep struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context) error
}

// Scheduler runs registered sweeps on fixed intervals in background
// goroutines. Register every sweep before calling Start.
type Scheduler struct {
	mu     sync.Mutex
	sweeps []sweep
	cancel context.CancelFunc
	done   sync.WaitGroup
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Every schedules fn to run once at startup and again on each interval tick.
func (s *Scheduler) Every(interval time.Duration, name string, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweeps = append(s.sweeps, sweep{name: name, interval: interval, run: fn})
}

func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	s.cancel = cancel
	sweeps := make([]sweep, len(s.sweeps))
	copy(sweeps, s.sweeps)
	s.mu.Unlock()

	for _, sw := range sweeps {
		s.done.Add(1)
		go s.loop(ctx, sw)
	}
	slog.Info("background sweeps started", "count", len(sweeps))
}

// Stop cancels all sweeps and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.done.Wait()
	slog.Info("background sweeps stopped")
}

func (s *Scheduler) loop(ctx context.Context, sw sweep) {
	defer s.done.Done()

	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	s.fire(ctx, sw)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fire(ctx, sw)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context, sw sweep) {
	started := time.Now()
	if err := sw.run(ctx); err != nil {
		slog.Error("background sweep failed", "sweep", sw.name, "error", err, "took", time.Since(started))
		return
	}
	slog.Debug("background sweep finished", "sweep", sw.name, "took", time.Since(started))
}
