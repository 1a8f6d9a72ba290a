package attempt

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/domain"
	"github.com/m04kA/SMC-AppointmentScheduler/pkg/psqlbuilder"
)

const tableName = "booking_attempts"

var columns = []string{
	"id",
	"session_id",
	"provider_id",
	"date_time",
	"status",
	"reason",
	"created_at",
}

// Repository журнал попыток создания записи
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет попытку записи. CreatedAt задает вызывающая сторона.
func (r *Repository) Create(ctx context.Context, attempt *domain.BookingAttempt) error {
	query, args, err := buildInsert(attempt)
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListBySession получает попытки записи сессии в порядке создания
func (r *Repository) ListBySession(ctx context.Context, sessionID string) ([]*domain.BookingAttempt, error) {
	query, args, err := buildListBySession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySession - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySession - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAttempts(rows)
}

func buildInsert(attempt *domain.BookingAttempt) (string, []interface{}, error) {
	return psqlbuilder.Insert(tableName).
		Columns(
			"session_id",
			"provider_id",
			"date_time",
			"status",
			"reason",
			"created_at",
		).
		Values(
			attempt.SessionID,
			attempt.ProviderID,
			attempt.DateTime,
			string(attempt.Status),
			attempt.Reason,
			attempt.CreatedAt,
		).
		ToSql()
}

func buildListBySession(sessionID string) (string, []interface{}, error) {
	return psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
}

func scanAttempts(rows *sql.Rows) ([]*domain.BookingAttempt, error) {
	result := make([]*domain.BookingAttempt, 0)

	for rows.Next() {
		var (
			a      domain.BookingAttempt
			status string
			reason sql.NullString
		)

		if err := rows.Scan(
			&a.ID,
			&a.SessionID,
			&a.ProviderID,
			&a.DateTime,
			&status,
			&reason,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
		}

		a.Status = domain.OutcomeStatus(status)
		if reason.Valid {
			a.Reason = &reason.String
		}

		result = append(result, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
	}

	return result, nil
}
