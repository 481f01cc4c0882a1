package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ScreeningRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error)
	FindAll(ctx context.Context) ([]*entity.Screening, error)
	FindUpcomingByMovieID(ctx context.Context, movieID uuid.UUID, cutoff time.Time) ([]*entity.Screening, error)

	// CheckHallAvailability reports whether no screening in the hall overlaps
	// [startTime, endTime). Read-only; the insert/update variants below
	// repeat the check inside their transaction.
	CheckHallAvailability(ctx context.Context, hallID uuid.UUID, startTime, endTime time.Time, excludeID *uuid.UUID) (bool, error)

	// CreateIfAvailable inserts the screening only if its time window is
	// free, holding a lock on the hall row so a concurrent create cannot
	// pass the same check. Returns ErrSlotOverlap on conflict.
	CreateIfAvailable(ctx context.Context, screening *entity.Screening) error

	// UpdateIfAvailable re-checks availability excluding the screening's own
	// id under the same hall lock. Returns ErrSlotOverlap on conflict.
	UpdateIfAvailable(ctx context.Context, screening *entity.Screening) error

	Delete(ctx context.Context, id uuid.UUID) error
	HasReservations(ctx context.Context, id uuid.UUID) (bool, error)

	// FinishEnded marks ACTIVE screenings whose end time has passed as
	// FINISHED. Idempotent bulk update; returns the number of rows changed.
	FinishEnded(ctx context.Context, now time.Time) (int64, error)
}

type screeningRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScreeningRepository(db database.PgxIface, log *zap.Logger) ScreeningRepository {
	return &screeningRepository{
		db:  db,
		log: log.With(zap.String("repository", "screening")),
	}
}

func (r *screeningRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	query := `
		SELECT id, movie_id, hall_id, start_time, end_time, status, created_at, updated_at
		FROM screenings
		WHERE id = $1
	`

	var screening entity.Screening
	err := r.db.QueryRow(ctx, query, id).Scan(
		&screening.ID,
		&screening.MovieID,
		&screening.HallID,
		&screening.StartTime,
		&screening.EndTime,
		&screening.Status,
		&screening.CreatedAt,
		&screening.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find screening by ID",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return nil, fmt.Errorf("find screening by ID %s: %w", id.String(), err)
	}

	return &screening, nil
}

func (r *screeningRepository) FindAll(ctx context.Context) ([]*entity.Screening, error) {
	query := `
		SELECT id, movie_id, hall_id, start_time, end_time, status, created_at, updated_at
		FROM screenings
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find screenings", zap.Error(err))
		return nil, fmt.Errorf("find screenings: %w", err)
	}
	defer rows.Close()

	var screenings []*entity.Screening
	for rows.Next() {
		var screening entity.Screening
		err := rows.Scan(
			&screening.ID,
			&screening.MovieID,
			&screening.HallID,
			&screening.StartTime,
			&screening.EndTime,
			&screening.Status,
			&screening.CreatedAt,
			&screening.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan screening row", zap.Error(err))
			return nil, fmt.Errorf("scan screening row: %w", err)
		}
		screenings = append(screenings, &screening)
	}

	return screenings, nil
}

func (r *screeningRepository) FindUpcomingByMovieID(ctx context.Context, movieID uuid.UUID, cutoff time.Time) ([]*entity.Screening, error) {
	query := `
		SELECT id, movie_id, hall_id, start_time, end_time, status, created_at, updated_at
		FROM screenings
		WHERE movie_id = $1 AND status = 'ACTIVE' AND start_time >= $2
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, movieID, cutoff)
	if err != nil {
		r.log.Error("Failed to find upcoming screenings",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find upcoming screenings for movie %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	var screenings []*entity.Screening
	for rows.Next() {
		var screening entity.Screening
		err := rows.Scan(
			&screening.ID,
			&screening.MovieID,
			&screening.HallID,
			&screening.StartTime,
			&screening.EndTime,
			&screening.Status,
			&screening.CreatedAt,
			&screening.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan screening row", zap.Error(err))
			return nil, fmt.Errorf("scan screening row: %w", err)
		}
		screenings = append(screenings, &screening)
	}

	return screenings, nil
}

// conflictCountQuery counts screenings in the hall whose [start_time, end_time)
// interval intersects the candidate window. A screening ending exactly at the
// candidate start (or starting exactly at its end) does not conflict.
const conflictCountQuery = `
	SELECT COUNT(*)
	FROM screenings
	WHERE hall_id = $1
	  AND ($4::uuid IS NULL OR id <> $4)
	  AND NOT (end_time <= $2 OR start_time >= $3)
`

func (r *screeningRepository) CheckHallAvailability(ctx context.Context, hallID uuid.UUID, startTime, endTime time.Time, excludeID *uuid.UUID) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx, conflictCountQuery, hallID, startTime, endTime, excludeID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to check hall availability",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
			zap.Time("start_time", startTime),
			zap.Time("end_time", endTime),
		)
		return false, fmt.Errorf("check hall %s availability: %w", hallID.String(), err)
	}

	return count == 0, nil
}

func (r *screeningRepository) CreateIfAvailable(ctx context.Context, screening *entity.Screening) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create screening tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize competing check-then-insert on the same hall.
	if _, err := tx.Exec(ctx, `SELECT id FROM halls WHERE id = $1 FOR UPDATE`, screening.HallID); err != nil {
		return fmt.Errorf("lock hall %s: %w", screening.HallID.String(), err)
	}

	var count int
	err = tx.QueryRow(ctx, conflictCountQuery,
		screening.HallID, screening.StartTime, screening.EndTime, nil,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("count conflicting screenings: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("hall %s from %s: %w",
			screening.HallID.String(), screening.StartTime.Format(time.RFC3339), ErrSlotOverlap)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO screenings (id, movie_id, hall_id, start_time, end_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		screening.ID,
		screening.MovieID,
		screening.HallID,
		screening.StartTime,
		screening.EndTime,
		screening.Status,
		screening.CreatedAt,
		screening.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create screening",
			zap.Error(err),
			zap.String("movie_id", screening.MovieID.String()),
			zap.String("hall_id", screening.HallID.String()),
		)
		return fmt.Errorf("create screening for movie %s hall %s: %w",
			screening.MovieID.String(), screening.HallID.String(), err)
	}

	return tx.Commit(ctx)
}

func (r *screeningRepository) UpdateIfAvailable(ctx context.Context, screening *entity.Screening) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update screening tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT id FROM halls WHERE id = $1 FOR UPDATE`, screening.HallID); err != nil {
		return fmt.Errorf("lock hall %s: %w", screening.HallID.String(), err)
	}

	var count int
	err = tx.QueryRow(ctx, conflictCountQuery,
		screening.HallID, screening.StartTime, screening.EndTime, screening.ID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("count conflicting screenings: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("hall %s from %s: %w",
			screening.HallID.String(), screening.StartTime.Format(time.RFC3339), ErrSlotOverlap)
	}

	result, err := tx.Exec(ctx, `
		UPDATE screenings
		SET movie_id = $2, hall_id = $3, start_time = $4, end_time = $5, status = $6, updated_at = $7
		WHERE id = $1
	`,
		screening.ID,
		screening.MovieID,
		screening.HallID,
		screening.StartTime,
		screening.EndTime,
		screening.Status,
		screening.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update screening",
			zap.Error(err),
			zap.String("screening_id", screening.ID.String()),
		)
		return fmt.Errorf("update screening %s: %w", screening.ID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening %s: %w", screening.ID.String(), ErrNotFound)
	}

	return tx.Commit(ctx)
}

func (r *screeningRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM screenings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete screening",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return fmt.Errorf("delete screening %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Screening deleted", zap.String("screening_id", id.String()))
	return nil
}

func (r *screeningRepository) HasReservations(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE screening_id = $1 AND status <> 'CANCELLED'
	`

	var count int
	err := r.db.QueryRow(ctx, query, id).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count screening reservations",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return false, fmt.Errorf("count reservations for screening %s: %w", id.String(), err)
	}

	return count > 0, nil
}

func (r *screeningRepository) FinishEnded(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE screenings
		SET status = 'FINISHED', updated_at = NOW()
		WHERE status = 'ACTIVE' AND end_time < $1
	`

	result, err := r.db.Exec(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to finish ended screenings", zap.Error(err))
		return 0, fmt.Errorf("finish ended screenings: %w", err)
	}

	return result.RowsAffected(), nil
}
