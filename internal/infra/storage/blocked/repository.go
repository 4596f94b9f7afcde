package blocked

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SalonBookingService/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

// Repository stores blocked periods (holidays, breaks, closures).
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a blocked period. Nil times mean the whole day.
func (r *Repository) Create(ctx context.Context, period *domain.BlockedPeriod) (*domain.BlockedPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_periods").
		Columns("salon_id", "blocked_date", "start_time", "end_time", "reason").
		Values(
			period.SalonID,
			period.Date.Format(domain.DateFormat),
			period.StartTime,
			period.EndTime,
			period.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&period.ID, &period.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return period, nil
}

// ListByDate returns the blocks of a single date.
func (r *Repository) ListByDate(ctx context.Context, salonID uuid.UUID, date time.Time) ([]*domain.BlockedPeriod, error) {
	return r.ListByRange(ctx, salonID, &date, &date)
}

// ListByRange returns blocks with from <= date <= to. Nil bounds are open.
func (r *Repository) ListByRange(ctx context.Context, salonID uuid.UUID, from, to *time.Time) ([]*domain.BlockedPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"salon_id",
		"blocked_date",
		"start_time",
		"end_time",
		"reason",
		"created_at",
	).
		From("blocked_periods").
		Where(squirrel.Eq{"salon_id": salonID})

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"blocked_date": from.Format(domain.DateFormat)})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"blocked_date": to.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.
		OrderBy("blocked_date ASC", "start_time ASC NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanPeriods(rows)
}

// Delete removes a blocked period of the salon.
func (r *Repository) Delete(ctx context.Context, salonID, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_periods").
		Where(squirrel.Eq{"salon_id": salonID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockedPeriodNotFound
	}

	return nil
}

func scanPeriods(rows *sql.Rows) ([]*domain.BlockedPeriod, error) {
	periods := make([]*domain.BlockedPeriod, 0)

	for rows.Next() {
		var period domain.BlockedPeriod
		err := rows.Scan(
			&period.ID,
			&period.SalonID,
			&period.Date,
			&period.StartTime,
			&period.EndTime,
			&period.Reason,
			&period.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanPeriods - scan row: %w", ErrScanRow, err)
		}
		periods = append(periods, &period)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPeriods - rows error: %w", ErrScanRow, err)
	}
	return periods, nil
}
