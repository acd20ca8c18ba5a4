package events

import (
	"context"
	"sync"
)

// MemorySink collects events for tests and the development run mode.
type MemorySink struct {
	mu     sync.RWMutex
	events []Transfer
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Emit(_ context.Context, event Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of everything emitted so far, in order.
func (s *MemorySink) Events() []Transfer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Transfer{}, s.events...)
}
