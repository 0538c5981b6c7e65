package scheduler

import (
	"container/heap"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/engagement-automation-api/infrastructure/repository"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
)

// ActionQueue é a fila global de ações ordenada por vencimento, compartilhada por todas as automações.
//
// Toda ação enfileirada também é gravada no diário (ActionRepository) e só sai dele quando é
// executada, descartada ou removida junto com a automação. Ações de automações pausadas ficam
// estacionadas fora do heap até a retomada; a marca de pausa vive sob o mesmo lock que o
// estacionamento para que uma retomada concorrente nunca deixe ação presa.
type ActionQueue struct {
	mu       sync.Mutex
	items    actionHeap
	parked   map[string][]*domain.Action
	paused   map[string]bool
	inFlight map[string]*domain.Action
	seq      uint64
	journal  repository.ActionRepository
}

func NewActionQueue(journal repository.ActionRepository) *ActionQueue {
	return &ActionQueue{
		parked:   make(map[string][]*domain.Action),
		paused:   make(map[string]bool),
		inFlight: make(map[string]*domain.Action),
		journal:  journal,
	}
}

// Restore carrega as ações pendentes do diário, usado na inicialização do processo
func (q *ActionQueue) Restore() (int, error) {
	actions, err := q.journal.ListPending()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	for _, action := range actions {
		q.pushLocked(action)
	}

	return len(actions), nil
}

// Push grava as ações no diário e as coloca na fila. Se o diário falhar nenhuma ação é enfileirada.
func (q *ActionQueue) Push(actions ...*domain.Action) error {
	if len(actions) == 0 {
		return nil
	}

	if err := q.journal.SaveActions(actions); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	for _, action := range actions {
		q.pushLocked(action.Clone())
	}

	return nil
}

// PopDue remove da fila as ações vencidas até now, marcando-as como em execução.
// limit <= 0 retira todas as vencidas.
func (q *ActionQueue) PopDue(now time.Time, limit int) []*domain.Action {
	q.mu.Lock()
	defer q.mu.Unlock()

	due := make([]*domain.Action, 0)
	for q.items.Len() > 0 {
		if limit > 0 && len(due) >= limit {
			break
		}
		next := q.items[0]
		if next.action.DueAt.After(now) {
			break
		}
		heap.Pop(&q.items)
		q.inFlight[next.action.ID] = next.action
		due = append(due, next.action.Clone())
	}

	return due
}

// Requeue devolve à fila uma ação em execução com novo vencimento. Ações cuja automação
// foi removida durante a execução são ignoradas.
func (q *ActionQueue) Requeue(action *domain.Action) {
	q.mu.Lock()
	if _, ok := q.inFlight[action.ID]; !ok {
		q.mu.Unlock()
		return
	}
	delete(q.inFlight, action.ID)
	q.pushLocked(action.Clone())
	q.mu.Unlock()

	if err := q.journal.SaveActions([]*domain.Action{action}); err != nil {
		logrus.WithFields(logrus.Fields{
			"action_id":     action.ID,
			"automation_id": action.AutomationID,
			"error":         err.Error(),
		}).Warn("Erro ao atualizar ação no diário, mantendo apenas em memória")
	}
}

// Ack encerra o ciclo de vida de uma ação (executada ou descartada)
func (q *ActionQueue) Ack(action *domain.Action) {
	q.mu.Lock()
	delete(q.inFlight, action.ID)
	q.mu.Unlock()

	q.forget(action)
}

// MarkPaused faz Park estacionar as ações da automação até o próximo Unpark
func (q *ActionQueue) MarkPaused(automationID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.paused[automationID] = true
}

// Park estaciona uma ação em execução de automação pausada. Se a automação foi retomada
// depois de o chamador ler o status, a ação volta direto para a fila e Park devolve false.
func (q *ActionQueue) Park(action *domain.Action) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.inFlight[action.ID]; !ok {
		return false
	}
	delete(q.inFlight, action.ID)

	if !q.paused[action.AutomationID] {
		q.pushLocked(action.Clone())
		return false
	}
	q.parked[action.AutomationID] = append(q.parked[action.AutomationID], action.Clone())
	return true
}

// Unpark retira a marca de pausa e devolve à fila as ações estacionadas da automação;
// as que venceram durante a pausa passam a vencer em now.
func (q *ActionQueue) Unpark(automationID string, now time.Time) int {
	q.mu.Lock()
	delete(q.paused, automationID)
	parked := q.parked[automationID]
	delete(q.parked, automationID)
	for _, action := range parked {
		if action.DueAt.Before(now) {
			action.DueAt = now
		}
		q.pushLocked(action)
	}
	q.mu.Unlock()

	if len(parked) > 0 {
		if err := q.journal.SaveActions(parked); err != nil {
			logrus.WithFields(logrus.Fields{
				"automation_id": automationID,
				"error":         err.Error(),
			}).Warn("Erro ao atualizar ações retomadas no diário")
		}
	}

	return len(parked)
}

// RemoveAutomation descarta todas as ações ainda não executadas de uma automação
func (q *ActionQueue) RemoveAutomation(automationID string) (int, error) {
	q.mu.Lock()
	removed := len(q.parked[automationID])
	delete(q.parked, automationID)
	delete(q.paused, automationID)

	kept := q.items[:0]
	for _, item := range q.items {
		if item.action.AutomationID == automationID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = nil
	}
	q.items = kept
	heap.Init(&q.items)

	for id, action := range q.inFlight {
		if action.AutomationID == automationID {
			delete(q.inFlight, id)
		}
	}
	q.mu.Unlock()

	if err := q.journal.DeleteByAutomation(automationID); err != nil {
		return removed, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	return removed, nil
}

// Contains informa se a ação ainda não terminou (na fila, estacionada ou em execução)
func (q *ActionQueue) Contains(actionID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.inFlight[actionID]; ok {
		return true
	}
	for _, item := range q.items {
		if item.action.ID == actionID {
			return true
		}
	}
	for _, actions := range q.parked {
		for _, action := range actions {
			if action.ID == actionID {
				return true
			}
		}
	}
	return false
}

// LastDue devolve o maior vencimento entre as ações pendentes da automação
func (q *ActionQueue) LastDue(automationID string) (time.Time, bool) {
	var last time.Time
	found := false

	q.Each(automationID, func(action *domain.Action) {
		if !found || action.DueAt.After(last) {
			last = action.DueAt
			found = true
		}
	})

	return last, found
}

// Pending conta as ações ainda não terminadas da automação
func (q *ActionQueue) Pending(automationID string) int {
	count := 0
	q.Each(automationID, func(*domain.Action) { count++ })
	return count
}

// Each percorre cópias das ações pendentes da automação
func (q *ActionQueue) Each(automationID string, fn func(action *domain.Action)) {
	q.mu.Lock()
	snapshot := make([]*domain.Action, 0)
	for _, item := range q.items {
		if item.action.AutomationID == automationID {
			snapshot = append(snapshot, item.action.Clone())
		}
	}
	for _, action := range q.parked[automationID] {
		snapshot = append(snapshot, action.Clone())
	}
	for _, action := range q.inFlight {
		if action.AutomationID == automationID {
			snapshot = append(snapshot, action.Clone())
		}
	}
	q.mu.Unlock()

	for _, action := range snapshot {
		fn(action)
	}
}

// Len conta as ações na fila, sem as estacionadas e as em execução
func (q *ActionQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

func (q *ActionQueue) pushLocked(action *domain.Action) {
	q.seq++
	heap.Push(&q.items, &queuedAction{action: action, seq: q.seq})
}

func (q *ActionQueue) forget(action *domain.Action) {
	if err := q.journal.DeleteAction(action.ID); err != nil {
		logrus.WithFields(logrus.Fields{
			"action_id":     action.ID,
			"automation_id": action.AutomationID,
			"error":         err.Error(),
		}).Warn("Erro ao remover ação do diário")
	}
}

type queuedAction struct {
	action *domain.Action
	seq    uint64
}

// actionHeap implementa heap.Interface ordenando por vencimento e, no empate, por ordem de chegada
type actionHeap []*queuedAction

func (h actionHeap) Len() int { return len(h) }

func (h actionHeap) Less(i, j int) bool {
	if h[i].action.DueAt.Equal(h[j].action.DueAt) {
		return h[i].seq < h[j].seq
	}
	return h[i].action.DueAt.Before(h[j].action.DueAt)
}

func (h actionHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *actionHeap) Push(x any) {
	*h = append(*h, x.(*queuedAction))
}

func (h *actionHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
