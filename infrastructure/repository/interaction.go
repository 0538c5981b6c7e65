package repository

import (
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/engagement-automation-api/infrastructure/database/postgres"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
)

const (
	interactionsTable = "interactions i"
)

//go:generate mockgen -source=interaction.go -destination=mocks/interaction_mock.go -package=mocks

// InteractionRepository é o log append-only de interações executadas por conta
type InteractionRepository interface {
	Append(record *domain.InteractionRecord) error
	CountSince(accountID string, platform domain.Platform, since time.Time) (int, error)
}

type interactionRepository struct {
	conn *postgres.Connection
}

func NewInteractionRepository(conn *postgres.Connection) InteractionRepository {
	return &interactionRepository{
		conn: conn,
	}
}

func (r *interactionRepository) Append(record *domain.InteractionRecord) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("interactions").
		Columns("account_id", "platform", "content_id", "type", "created_at").
		Values(record.AccountID, string(record.Platform), record.ContentID, string(record.Type), record.Timestamp).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return errors.Wrap(err, "erro ao registrar interação")
	}

	return nil
}

func (r *interactionRepository) CountSince(accountID string, platform domain.Platform, since time.Time) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(interactionsTable).
		Where(squirrel.Eq{"i.account_id": accountID, "i.platform": string(platform)}).
		Where(squirrel.GtOrEq{"i.created_at": since}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query")
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "erro ao contar interações")
	}

	return count, nil
}
