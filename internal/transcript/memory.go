package transcript

import (
	"context"
	"sync"
)

// Memory is an in-memory transcript store.
type Memory struct {
	mu       sync.RWMutex
	order    []string
	sessions map[string][]Event
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[string][]Event)}
}

// Append records an event.
func (m *Memory) Append(_ context.Context, e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[e.Session]; !ok {
		m.order = append(m.order, e.Session)
	}
	m.sessions[e.Session] = append(m.sessions[e.Session], e)
	return nil
}

// Events returns the events of a session.
func (m *Memory) Events(_ context.Context, session string, limit int) ([]Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	events := m.sessions[session]
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	out := make([]Event, len(events))
	copy(out, events)
	return out, nil
}

// Sessions lists sessions in the order they were first seen.
func (m *Memory) Sessions(_ context.Context) ([]SessionInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	infos := make([]SessionInfo, 0, len(m.order))
	for _, id := range m.order {
		events := m.sessions[id]
		infos = append(infos, SessionInfo{
			Session: id,
			Events:  int64(len(events)),
			First:   events[0].Time,
			Last:    events[len(events)-1].Time,
		})
	}
	return infos, nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}
