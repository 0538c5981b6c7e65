// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/engagement-automation-api/infrastructure/database/postgres"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
)

const (
	automationsTable = "automations a"
)

//go:generate mockgen -source=automation.go -destination=mocks/automation_mock.go -package=mocks

// AutomationRepository é o armazenamento das automações registradas.
// GetByID devolve (nil, nil) quando a automação não existe.
type AutomationRepository interface {
	Save(automation *domain.Automation) error
	GetByID(id string) (*domain.Automation, error)
	List(ownerUserID string) ([]*domain.Automation, error)
	ListByStatus(statuses []domain.AutomationStatus) ([]*domain.Automation, error)
	Delete(id string) error
}

type automationRepository struct {
	conn *postgres.Connection
}

func NewAutomationRepository(conn *postgres.Connection) AutomationRepository {
	return &automationRepository{
		conn: conn,
	}
}

var automationColumns = []string{
	"a.id",
	"a.mother",
	"a.children",
	"a.strategy",
	"a.status",
	"a.metrics",
	"a.started_at",
	"a.paused_at",
	"a.resumed_at",
	"a.updated_at",
}

func (r *automationRepository) Save(automation *domain.Automation) error {
	mother, err := json.Marshal(automation.MotherAccount)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar conta mãe")
	}
	children, err := json.Marshal(automation.ChildAccounts)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar contas filhas")
	}
	strategy, err := json.Marshal(automation.Strategy)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar estratégia")
	}
	metrics, err := json.Marshal(automation.Metrics)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar métricas")
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("automations").
		Columns(
			"id",
			"owner_user_id",
			"platform",
			"mother",
			"children",
			"strategy",
			"status",
			"metrics",
			"started_at",
			"paused_at",
			"resumed_at",
			"updated_at",
		).
		Values(
			automation.ID,
			automation.MotherAccount.UserID,
			string(automation.MotherAccount.Platform),
			mother,
			children,
			strategy,
			string(automation.Status),
			metrics,
			automation.StartedAt,
			automation.PausedAt,
			automation.ResumedAt,
			automation.UpdatedAt,
		).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				children = EXCLUDED.children,
				strategy = EXCLUDED.strategy,
				status = EXCLUDED.status,
				metrics = EXCLUDED.metrics,
				paused_at = EXCLUDED.paused_at,
				resumed_at = EXCLUDED.resumed_at,
				updated_at = EXCLUDED.updated_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return errors.Wrapf(pqErr, "erro de banco ao salvar automação (code: %s)", pqErr.Code)
		}
		return errors.Wrap(err, "erro ao salvar automação")
	}

	return nil
}

func (r *automationRepository) GetByID(id string) (*domain.Automation, error) {
	query, args, err := squirrel.
		Select(automationColumns...).
		From(automationsTable).
		Where(squirrel.Eq{"a.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	automation, err := scanAutomation(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao buscar automação")
	}

	return automation, nil
}

func (r *automationRepository) List(ownerUserID string) ([]*domain.Automation, error) {
	builder := squirrel.
		Select(automationColumns...).
		From(automationsTable).
		OrderBy("a.started_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if ownerUserID != "" {
		builder = builder.Where(squirrel.Eq{"a.owner_user_id": ownerUserID})
	}

	return r.query(builder)
}

func (r *automationRepository) ListByStatus(statuses []domain.AutomationStatus) ([]*domain.Automation, error) {
	values := make([]string, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, string(status))
	}

	builder := squirrel.
		Select(automationColumns...).
		From(automationsTable).
		Where(squirrel.Eq{"a.status": values}).
		OrderBy("a.started_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.query(builder)
}

func (r *automationRepository) Delete(id string) error {
	query, args, err := squirrel.
		Delete("automations").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return errors.Wrap(err, "erro ao remover automação")
	}

	return nil
}

func (r *automationRepository) query(builder squirrel.SelectBuilder) ([]*domain.Automation, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	automations := make([]*domain.Automation, 0)
	for rows.Next() {
		automation, err := scanAutomation(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear automação")
		}
		automations = append(automations, automation)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return automations, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAutomation(row rowScanner) (*domain.Automation, error) {
	var (
		automation                 domain.Automation
		mother, children, strategy []byte
		metrics                    []byte
		status                     string
		pausedAt, resumedAt        sql.NullTime
		startedAt, updatedAt       time.Time
	)

	if err := row.Scan(
		&automation.ID,
		&mother,
		&children,
		&strategy,
		&status,
		&metrics,
		&startedAt,
		&pausedAt,
		&resumedAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(mother, &automation.MotherAccount); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(children, &automation.ChildAccounts); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(strategy, &automation.Strategy); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(metrics, &automation.Metrics); err != nil {
		return nil, err
	}

	automation.Status = domain.AutomationStatus(status)
	automation.StartedAt = startedAt
	automation.UpdatedAt = updatedAt
	if pausedAt.Valid {
		automation.PausedAt = &pausedAt.Time
	}
	if resumedAt.Valid {
		automation.ResumedAt = &resumedAt.Time
	}

	return &automation, nil
}
