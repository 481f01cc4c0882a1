package repository

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error)
	UpdateSeatType(ctx context.Context, seatID, seatTypeID uuid.UUID) error
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	// Build batch insert
	query := `INSERT INTO seats (id, hall_id, seat_type_id, seat_row, seat_column, created_at) VALUES `
	args := []interface{}{}

	for i, seat := range seats {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			i*6+1, i*6+2, i*6+3, i*6+4, i*6+5, i*6+6)

		args = append(args,
			seat.ID,
			seat.HallID,
			seat.SeatTypeID,
			seat.Row,
			seat.Column,
			seat.CreatedAt,
		)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create batch seats",
			zap.Error(err),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("create batch seats: %w", err)
	}

	return nil
}

func (r *seatRepository) FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, hall_id, seat_type_id, seat_row, seat_column, created_at
		FROM seats
		WHERE hall_id = $1
		ORDER BY seat_row, seat_column
	`

	rows, err := r.db.Query(ctx, query, hallID)
	if err != nil {
		r.log.Error("Failed to find seats by hall ID",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
		)
		return nil, fmt.Errorf("find seats by hall ID %s: %w", hallID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.HallID,
			&seat.SeatTypeID,
			&seat.Row,
			&seat.Column,
			&seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, nil
}

func (r *seatRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	if len(ids) == 0 {
		return []*entity.Seat{}, nil
	}

	query := `
		SELECT id, hall_id, seat_type_id, seat_row, seat_column, created_at
		FROM seats
		WHERE id = ANY($1)
		ORDER BY seat_row, seat_column
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find seats by IDs",
			zap.Error(err),
			zap.Int("seat_count", len(ids)),
		)
		return nil, fmt.Errorf("find seats by IDs: %w", err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.HallID,
			&seat.SeatTypeID,
			&seat.Row,
			&seat.Column,
			&seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, nil
}

func (r *seatRepository) UpdateSeatType(ctx context.Context, seatID, seatTypeID uuid.UUID) error {
	query := `UPDATE seats SET seat_type_id = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, seatID, seatTypeID)
	if err != nil {
		r.log.Error("Failed to update seat type",
			zap.Error(err),
			zap.String("seat_id", seatID.String()),
		)
		return fmt.Errorf("update seat %s type: %w", seatID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("seat %s: %w", seatID.String(), ErrNotFound)
	}

	return nil
}
