package session

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	items    map[string]int
	lastSeen time.Time
}

// MemoryStore keeps anonymous baskets in process memory and evicts them
// after a period of inactivity. Baskets do not survive a restart, which
// matches the lifetime of the session cookie they are keyed by.
type MemoryStore struct {
	mu     sync.Mutex
	data   map[string]*entry
	ttl    time.Duration
	now    func() time.Time
	closed chan struct{}
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		data:   make(map[string]*entry),
		ttl:    ttl,
		now:    time.Now,
		closed: make(chan struct{}),
	}
	go s.janitor()
	return s
}

// janitor removes expired baskets to prevent memory leaks
func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.closed:
			return
		case <-ticker.C:
			now := s.now()
			s.mu.Lock()
			for token, e := range s.data {
				if now.Sub(e.lastSeen) > s.ttl {
					delete(s.data, token)
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *MemoryStore) Close() {
	close(s.closed)
}

func (s *MemoryStore) Basket(_ context.Context, token string) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[token]
	if !ok {
		return map[string]int{}, nil
	}
	e.lastSeen = s.now()
	items := make(map[string]int, len(e.items))
	for id, count := range e.items {
		items[id] = count
	}
	return items, nil
}

func (s *MemoryStore) SetBasket(_ context.Context, token string, items map[string]int) error {
	copied := make(map[string]int, len(items))
	for id, count := range items {
		copied[id] = count
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[token] = &entry{items: copied, lastSeen: s.now()}
	return nil
}

func (s *MemoryStore) ClearBasket(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, token)
	return nil
}
