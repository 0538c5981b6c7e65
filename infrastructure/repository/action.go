package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/engagement-automation-api/infrastructure/database/postgres"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
)

const (
	actionsTable = "actions ac"
)

//go:generate mockgen -source=action.go -destination=mocks/action_mock.go -package=mocks

// ActionRepository é o diário da fila de ações: o que está aqui ainda não foi executado
// nem descartado e é restaurado na inicialização do processo.
type ActionRepository interface {
	SaveActions(actions []*domain.Action) error
	DeleteAction(id string) error
	DeleteByAutomation(automationID string) error
	ListPending() ([]*domain.Action, error)
}

type actionRepository struct {
	conn *postgres.Connection
}

func NewActionRepository(conn *postgres.Connection) ActionRepository {
	return &actionRepository{
		conn: conn,
	}
}

func (r *actionRepository) SaveActions(actions []*domain.Action) error {
	if len(actions) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("actions").
		Columns("id", "automation_id", "due_at", "payload").
		PlaceholderFormat(squirrel.Dollar)

	for _, action := range actions {
		payload, err := json.Marshal(action)
		if err != nil {
			return errors.Wrapf(err, "erro ao serializar ação %s", action.ID)
		}
		query = query.Values(action.ID, action.AutomationID, action.DueAt, payload)
	}

	// Reenfileiramentos reaproveitam o mesmo ID e apenas atualizam o vencimento
	query = query.Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				due_at = EXCLUDED.due_at,
				payload = EXCLUDED.payload
		`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	return r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		if _, err := tx.Exec(sqlQuery, args...); err != nil {
			return errors.Wrap(err, "erro ao salvar ações")
		}
		return nil
	})
}

func (r *actionRepository) DeleteAction(id string) error {
	return r.delete(squirrel.Eq{"id": id})
}

func (r *actionRepository) DeleteByAutomation(automationID string) error {
	return r.delete(squirrel.Eq{"automation_id": automationID})
}

func (r *actionRepository) delete(where squirrel.Eq) error {
	query, args, err := squirrel.
		Delete("actions").
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return errors.Wrap(err, "erro ao remover ações")
	}

	return nil
}

func (r *actionRepository) ListPending() ([]*domain.Action, error) {
	query, args, err := squirrel.
		Select("ac.payload").
		From(actionsTable).
		OrderBy("ac.due_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	actions := make([]*domain.Action, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear ação")
		}

		action := &domain.Action{}
		if err := json.Unmarshal(payload, action); err != nil {
			return nil, errors.Wrap(err, "erro ao desserializar ação")
		}
		actions = append(actions, action)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return actions, nil
}
