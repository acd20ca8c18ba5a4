package journal

import (
	"context"
	"sync"
)

// Memory is the in-process journal for tests and development runs.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry

	// failNext makes the next Append fail; lets tests exercise the
	// fail-closed commit path.
	failNext error
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(_ context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *Memory) List(_ context.Context) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Entry{}, m.entries...), nil
}

// FailNextAppend arms a one-shot append failure.
func (m *Memory) FailNextAppend(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}
