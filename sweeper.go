package ephemera

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SweeperState is the lifecycle state of a cache's background sweeper.
type SweeperState int

const (
	// SweeperIdle means Start has not been called.
	SweeperIdle SweeperState = iota
	// SweeperRunning means the sweep loop is active.
	SweeperRunning
	// SweeperStopped is terminal; the sweeper cannot be restarted.
	SweeperStopped
)

func (s SweeperState) String() string {
	switch s {
	case SweeperIdle:
		return "idle"
	case SweeperRunning:
		return "running"
	case SweeperStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// sweeper runs sweep on a fixed interval in its own goroutine until its
// context is canceled.
type sweeper struct {
	interval time.Duration
	sweep    func() int
	logger   *slog.Logger

	mu     sync.Mutex
	state  SweeperState
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newSweeper(interval time.Duration, sweep func() int, logger *slog.Logger) *sweeper {
	return &sweeper{
		interval: interval,
		sweep:    sweep,
		logger:   logger,
	}
}

func (s *sweeper) start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case SweeperRunning:
		return ErrSweeperRunning
	case SweeperStopped:
		return ErrSweeperStopped
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state = SweeperRunning

	s.wg.Add(1)
	go s.run(ctx)
	return nil
}

func (s *sweeper) run(ctx context.Context) {
	defer s.wg.Done()
	defer s.markStopped()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped", "reason", ctx.Err())
			return
		case <-ticker.C:
			// Both cases may be ready at once; cancellation wins.
			if ctx.Err() != nil {
				continue
			}
			s.sweep()
		}
	}
}

func (s *sweeper) markStopped() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = SweeperStopped
	if s.cancel != nil {
		s.cancel()
	}
}

// stop signals the loop to exit. It does not wait; see wait.
func (s *sweeper) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case SweeperIdle:
		s.state = SweeperStopped
	case SweeperRunning:
		s.cancel()
		s.state = SweeperStopped
	}
}

func (s *sweeper) wait() {
	s.wg.Wait()
}

func (s *sweeper) current() SweeperState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
