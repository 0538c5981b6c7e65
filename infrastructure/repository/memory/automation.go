// Package memory contém implementações em memória dos repositórios, usadas em testes e em
// implantações de processo único onde a automação não precisa sobreviver a reinícios.
package memory

import (
	"sort"
	"sync"

	"github.com/vfg2006/engagement-automation-api/infrastructure/repository"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
)

var _ repository.AutomationRepository = (*AutomationStore)(nil)

type AutomationStore struct {
	mu          sync.RWMutex
	automations map[string]*domain.Automation
}

func NewAutomationStore() *AutomationStore {
	return &AutomationStore{
		automations: make(map[string]*domain.Automation),
	}
}

func (s *AutomationStore) Save(automation *domain.Automation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.automations[automation.ID] = automation.Clone()
	return nil
}

func (s *AutomationStore) GetByID(id string) (*domain.Automation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	automation, ok := s.automations[id]
	if !ok {
		return nil, nil
	}
	return automation.Clone(), nil
}

func (s *AutomationStore) List(ownerUserID string) ([]*domain.Automation, error) {
	return s.filter(func(a *domain.Automation) bool {
		return ownerUserID == "" || a.MotherAccount.UserID == ownerUserID
	}), nil
}

func (s *AutomationStore) ListByStatus(statuses []domain.AutomationStatus) ([]*domain.Automation, error) {
	return s.filter(func(a *domain.Automation) bool {
		for _, status := range statuses {
			if a.Status == status {
				return true
			}
		}
		return false
	}), nil
}

func (s *AutomationStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.automations, id)
	return nil
}

func (s *AutomationStore) filter(keep func(a *domain.Automation) bool) []*domain.Automation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Automation, 0)
	for _, automation := range s.automations {
		if keep(automation) {
			out = append(out, automation.Clone())
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}
