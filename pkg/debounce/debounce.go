// Package debounce delays an action until a quiet period has elapsed since
// the last triggering event. Scheduling under an existing key cancels the
// pending action for that key, so for any key only the most recently
// scheduled call survives.
package debounce

import (
	"sync"
	"time"
)

type Scheduler struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		timers: make(map[string]*time.Timer),
	}
}

// Schedule runs fn after delay unless another Schedule with the same key
// arrives first. fn runs on its own goroutine (timer callback); callers are
// responsible for their own locking.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	if t, ok := s.timers[key]; ok {
		t.Stop()
	}

	s.timers[key] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, key)
		s.mu.Unlock()

		fn()
	})
}

// Cancel drops the pending action for key, if any. It reports whether a
// pending action was cancelled.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timers[key]
	if !ok {
		return false
	}
	delete(s.timers, key)
	return t.Stop()
}

// Flush fires the pending action for key immediately instead of waiting out
// the quiet period.
func (s *Scheduler) Flush(key string) {
	s.mu.Lock()
	t, ok := s.timers[key]
	if ok {
		delete(s.timers, key)
	}
	s.mu.Unlock()

	if ok && t.Stop() {
		t.Reset(0)
	}
}

// Stop cancels every pending action. The scheduler accepts no further work.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}

// Pending reports whether key has an action waiting.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.timers[key]
	return ok
}
