package quotastore

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

var _ Store = (*MemoryStore)(nil)

type counter struct {
	used      atomic.Int64
	expiresAt atomic.Int64
}

// MemoryStore mantém os contadores em memória com incremento via compare-and-swap,
// nenhum leitor enxerga um consumo acima do limite.
type MemoryStore struct {
	counters *xsync.MapOf[string, *counter]
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		counters: xsync.NewMapOf[string, *counter](),
		now:      now,
	}
}

func (s *MemoryStore) Used(_ context.Context, key string) (int, error) {
	c, ok := s.counters.Load(key)
	if !ok || s.expired(c) {
		return 0, nil
	}
	return int(c.used.Load()), nil
}

func (s *MemoryStore) Consume(_ context.Context, key string, delta, limit int, ttl time.Duration) (int, bool, error) {
	c := s.counterFor(key, ttl)

	for {
		current := c.used.Load()
		next := current + int64(delta)
		if next > int64(limit) {
			return int(current), false, nil
		}
		if c.used.CompareAndSwap(current, next) {
			return int(next), true, nil
		}
	}
}

func (s *MemoryStore) Release(_ context.Context, key string, delta int) (int, error) {
	c, ok := s.counters.Load(key)
	if !ok {
		return 0, nil
	}

	for {
		current := c.used.Load()
		next := current - int64(delta)
		if next < 0 {
			next = 0
		}
		if c.used.CompareAndSwap(current, next) {
			return int(next), nil
		}
	}
}

func (s *MemoryStore) counterFor(key string, ttl time.Duration) *counter {
	c, loaded := s.counters.LoadOrCompute(key, func() *counter {
		fresh := &counter{}
		fresh.expiresAt.Store(s.now().Add(ttl).UnixNano())
		return fresh
	})
	if !loaded {
		// Uma chave nova por plataforma por dia: bom momento para descartar as vencidas
		s.sweep()
	}
	return c
}

func (s *MemoryStore) sweep() {
	s.counters.Range(func(key string, c *counter) bool {
		if s.expired(c) {
			s.counters.Delete(key)
		}
		return true
	})
}

func (s *MemoryStore) expired(c *counter) bool {
	return s.now().UnixNano() >= c.expiresAt.Load()
}
