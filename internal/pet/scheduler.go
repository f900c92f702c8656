package pet

import (
	"context"
	"log"
	"sync"
	"time"
)

// Scheduler drives the engine's periodic transitions: stat decay and item
// replenishment, each on its own interval.
type Scheduler struct {
	engine         *Engine
	decayEvery     time.Duration
	replenishEvery time.Duration

	mu       sync.Mutex
	stopChan chan struct{}
	done     chan struct{}
}

// NewScheduler creates a scheduler for engine. Non-positive intervals fall
// back to DecayInterval and ReplenishInterval.
func NewScheduler(engine *Engine, decayEvery, replenishEvery time.Duration) *Scheduler {
	if decayEvery <= 0 {
		decayEvery = DecayInterval
	}
	if replenishEvery <= 0 {
		replenishEvery = ReplenishInterval
	}
	return &Scheduler{
		engine:         engine,
		decayEvery:     decayEvery,
		replenishEvery: replenishEvery,
	}
}

// Start launches the timer loop and returns immediately. It runs until
// ctx is cancelled or Stop is called. Starting a running scheduler is a
// no-op; once the loop has ended, Start runs it again.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		select {
		case <-s.done:
		default:
			return
		}
	}

	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(ctx, s.stopChan, s.done)
}

// Stop cancels both timers and waits for the loop to exit. It is safe to
// call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	stopChan, done := s.stopChan, s.done
	s.stopChan, s.done = nil, nil
	s.mu.Unlock()

	if done == nil {
		return
	}
	close(stopChan)
	<-done
}

func (s *Scheduler) run(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	decay := time.NewTicker(s.decayEvery)
	defer decay.Stop()
	replenish := time.NewTicker(s.replenishEvery)
	defer replenish.Stop()

	log.Printf("Scheduler started (decay every %s, replenish every %s)", s.decayEvery, s.replenishEvery)
	for {
		select {
		case <-ctx.Done():
			log.Printf("Scheduler stopped by context")
			return
		case <-stop:
			log.Printf("Scheduler stopped")
			return
		case <-decay.C:
			s.engine.DecayTick()
		case <-replenish.C:
			s.engine.EnsureDefaults()
		}
	}
}
