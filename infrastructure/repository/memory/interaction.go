package memory

import (
	"sync"
	"time"

	"github.com/vfg2006/engagement-automation-api/infrastructure/repository"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
)

var _ repository.InteractionRepository = (*InteractionStore)(nil)

type InteractionStore struct {
	mu        sync.RWMutex
	byAccount map[string][]domain.InteractionRecord
}

func NewInteractionStore() *InteractionStore {
	return &InteractionStore{
		byAccount: make(map[string][]domain.InteractionRecord),
	}
}

func (s *InteractionStore) Append(record *domain.InteractionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byAccount[record.AccountID] = append(s.byAccount[record.AccountID], *record)
	return nil
}

func (s *InteractionStore) CountSince(accountID string, platform domain.Platform, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, record := range s.byAccount[accountID] {
		if record.Platform == platform && !record.Timestamp.Before(since) {
			count++
		}
	}
	return count, nil
}
