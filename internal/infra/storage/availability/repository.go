package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SalonBookingService/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

var availabilityColumns = []string{
	"id",
	"salon_id",
	"day_of_week",
	"start_time",
	"end_time",
	"is_available",
	"created_at",
	"updated_at",
}

// Repository stores the weekly opening hours of a salon.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListBySalon returns all configured days ordered Sunday first.
func (r *Repository) ListBySalon(ctx context.Context, salonID uuid.UUID) ([]*domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(availabilityColumns...).
		From("weekly_availability").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.WeeklyAvailability, 0, 7)
	for rows.Next() {
		day, err := scanAvailability(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySalon - scan row: %w", ErrScanRow, err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - rows error: %w", ErrScanRow, err)
	}

	return days, nil
}

// GetByDay returns the row for dayOfWeek (0 = Sunday) or ErrAvailabilityNotFound.
func (r *Repository) GetByDay(ctx context.Context, salonID uuid.UUID, dayOfWeek int) (*domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(availabilityColumns...).
		From("weekly_availability").
		Where(squirrel.Eq{"salon_id": salonID, "day_of_week": dayOfWeek}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - build select query: %v", ErrBuildQuery, err)
	}

	day, err := scanAvailability(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - scan availability: %w", ErrScanRow, err)
	}

	return day, nil
}

// Upsert writes the row for day.DayOfWeek, replacing the existing one.
func (r *Repository) Upsert(ctx context.Context, day *domain.WeeklyAvailability) (*domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_availability").
		Columns("salon_id", "day_of_week", "start_time", "end_time", "is_available").
		Values(day.SalonID, day.DayOfWeek, day.StartTime, day.EndTime, day.IsAvailable).
		Suffix(`ON CONFLICT (salon_id, day_of_week) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			is_available = EXCLUDED.is_available,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &day.CreatedAt, &day.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return day, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAvailability(row rowScanner) (*domain.WeeklyAvailability, error) {
	var day domain.WeeklyAvailability
	err := row.Scan(
		&day.ID,
		&day.SalonID,
		&day.DayOfWeek,
		&day.StartTime,
		&day.EndTime,
		&day.IsAvailable,
		&day.CreatedAt,
		&day.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &day, nil
}
