package metrics

import (
	"sync"
	"time"

	"github.com/vfg2006/engagement-automation-api/internal/domain"
	"github.com/vfg2006/engagement-automation-api/pkg/utils"
)

const defaultMaxErrors = 100

// MetricsRecorder acumula o resultado das ações de cada automação
type MetricsRecorder interface {
	Register(automationID string, initial domain.AutomationMetrics)
	RecordSuccess(automationID string, at time.Time)
	RecordError(automationID string, entry domain.ErrorEntry)
	RecordTransient(automationID string)
	Snapshot(automationID string) (domain.AutomationMetrics, bool)
	Forget(automationID string)
}

// Recorder guarda as métricas em memória. Ações concluídas (sucesso ou falha definitiva)
// contam em ActionsPerformed; retentativas transitórias só incrementam TransientRetries.
type Recorder struct {
	mu        sync.Mutex
	maxErrors int
	metrics   map[string]*domain.AutomationMetrics
}

func NewRecorder(maxErrors int) *Recorder {
	if maxErrors <= 0 {
		maxErrors = defaultMaxErrors
	}
	return &Recorder{
		maxErrors: maxErrors,
		metrics:   make(map[string]*domain.AutomationMetrics),
	}
}

// Register inicia (ou restaura) as métricas de uma automação
func (r *Recorder) Register(automationID string, initial domain.AutomationMetrics) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := initial.Clone()
	r.trim(&m)
	r.metrics[automationID] = &m
}

func (r *Recorder) RecordSuccess(automationID string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.metrics[automationID]
	if !ok {
		return
	}

	m.ActionsPerformed++
	m.LastActionAt = &at
	r.refreshSuccessRate(m)
}

// RecordError registra uma falha definitiva (permanente ou cota esgotada)
func (r *Recorder) RecordError(automationID string, entry domain.ErrorEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.metrics[automationID]
	if !ok {
		return
	}

	m.ActionsPerformed++
	m.FailedActions++
	m.Errors = append(m.Errors, entry)
	r.trim(m)
	r.refreshSuccessRate(m)
}

func (r *Recorder) RecordTransient(automationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.metrics[automationID]
	if !ok {
		return
	}

	m.TransientRetries++
}

func (r *Recorder) Snapshot(automationID string) (domain.AutomationMetrics, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.metrics[automationID]
	if !ok {
		return domain.AutomationMetrics{}, false
	}
	return m.Clone(), true
}

func (r *Recorder) Forget(automationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.metrics, automationID)
}

func (r *Recorder) trim(m *domain.AutomationMetrics) {
	if overflow := len(m.Errors) - r.maxErrors; overflow > 0 {
		m.Errors = append([]domain.ErrorEntry(nil), m.Errors[overflow:]...)
	}
}

// A taxa usa o contador total de falhas, que continua correto depois que o log é podado
func (r *Recorder) refreshSuccessRate(m *domain.AutomationMetrics) {
	m.SuccessRate = utils.Ratio(m.ActionsPerformed-m.FailedActions, m.ActionsPerformed)
}
