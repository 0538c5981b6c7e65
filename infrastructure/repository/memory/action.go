package memory

import (
	"sort"
	"sync"

	"github.com/vfg2006/engagement-automation-api/infrastructure/repository"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
)

var _ repository.ActionRepository = (*ActionStore)(nil)

type ActionStore struct {
	mu      sync.Mutex
	actions map[string]*domain.Action
}

func NewActionStore() *ActionStore {
	return &ActionStore{
		actions: make(map[string]*domain.Action),
	}
}

func (s *ActionStore) SaveActions(actions []*domain.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, action := range actions {
		s.actions[action.ID] = action.Clone()
	}
	return nil
}

func (s *ActionStore) DeleteAction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.actions, id)
	return nil
}

func (s *ActionStore) DeleteByAutomation(automationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, action := range s.actions {
		if action.AutomationID == automationID {
			delete(s.actions, id)
		}
	}
	return nil
}

func (s *ActionStore) ListPending() ([]*domain.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Action, 0, len(s.actions))
	for _, action := range s.actions {
		out = append(out, action.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DueAt.Before(out[j].DueAt)
	})
	return out, nil
}
