package snapshot

import (
	"context"
	"sync"
)

type memorySlots struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns process-local slots, used in tests and when the
// service runs without a durable backend.
func NewMemory() Slots {
	return &memorySlots{data: make(map[string][]byte)}
}

func (s *memorySlots) For(ownerKey string) Slot {
	return &memorySlot{slots: s, key: ownerKey}
}

type memorySlot struct {
	slots *memorySlots
	key   string
}

func (s *memorySlot) Read(_ context.Context) ([]byte, bool, error) {
	s.slots.mu.RLock()
	defer s.slots.mu.RUnlock()
	data, ok := s.slots.data[s.key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (s *memorySlot) Write(_ context.Context, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	s.slots.mu.Lock()
	s.slots.data[s.key] = stored
	s.slots.mu.Unlock()
	return nil
}

func (s *memorySlot) Erase(_ context.Context) error {
	s.slots.mu.Lock()
	delete(s.slots.data, s.key)
	s.slots.mu.Unlock()
	return nil
}
