package inbox

import (
	"context"
	"sync"
)

// MemorySink keeps inquiries in process memory.
type MemorySink struct {
	mu    sync.RWMutex
	items []*Inquiry
	byID  map[string]*Inquiry
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{byID: make(map[string]*Inquiry)}
}

// Deliver implements Sink.
func (m *MemorySink) Deliver(ctx context.Context, inq *Inquiry) error {
	if err := validate(inq); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cp := *inq
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byID[cp.ID]; exists {
		return nil
	}
	m.items = append(m.items, &cp)
	m.byID[cp.ID] = &cp
	return nil
}

// List implements Lister.
func (m *MemorySink) List(ctx context.Context) ([]*Inquiry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Inquiry, 0, len(m.items))
	for _, inq := range m.items {
		cp := *inq
		out = append(out, &cp)
	}
	return out, nil
}

// Get returns a copy of the inquiry with the given id.
func (m *MemorySink) Get(id string) (*Inquiry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	inq, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *inq
	return &cp, nil
}

// Len returns the number of stored inquiries.
func (m *MemorySink) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
