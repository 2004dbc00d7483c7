// Package dataset drives the force-loading of an order's line records from a
// paged source. Each build runs inside a load session; starting a new session
// for the same order supersedes any loop still in flight, which checks its
// token cooperatively and stops without a result.
package dataset

import (
	"sync"
	"sync/atomic"
)

// Sessions issues monotonically increasing load-session tokens per scope key
// and remembers the target each key last completed at.
type Sessions struct {
	mu        sync.Mutex
	counters  map[string]*atomic.Uint64
	completed map[string]int
}

// NewSessions constructs an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{
		counters:  make(map[string]*atomic.Uint64),
		completed: make(map[string]int),
	}
}

// Begin starts a new session for key. Any loop still holding an older token
// for the same key observes itself superseded on its next check.
func (s *Sessions) Begin(key string) Token {
	s.mu.Lock()
	counter, ok := s.counters[key]
	if !ok {
		counter = &atomic.Uint64{}
		s.counters[key] = counter
	}
	delete(s.completed, key)
	s.mu.Unlock()
	return Token{id: counter.Add(1), counter: counter}
}

// MarkComplete records that key finished loading up to target records.
func (s *Sessions) MarkComplete(key string, target int) {
	s.mu.Lock()
	s.completed[key] = target
	s.mu.Unlock()
}

// Completed reports whether key already finished a load with the same target.
func (s *Sessions) Completed(key string, target int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	done, ok := s.completed[key]
	return ok && done == target
}

// Token identifies one load session. The zero Token is never superseded,
// which keeps standalone loops and tests simple.
type Token struct {
	id      uint64
	counter *atomic.Uint64
}

// Superseded reports whether a newer session has started for the same key.
func (t Token) Superseded() bool {
	return t.counter != nil && t.counter.Load() != t.id
}
