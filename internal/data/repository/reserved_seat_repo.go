package repository

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservedSeatRepository interface {
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.ReservedSeat, error)

	// FindReservedSeatIDsByScreening returns the seat ids held by any
	// non-cancelled reservation for the screening.
	FindReservedSeatIDsByScreening(ctx context.Context, screeningID uuid.UUID) ([]uuid.UUID, error)
}

type reservedSeatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservedSeatRepository(db database.PgxIface, log *zap.Logger) ReservedSeatRepository {
	return &reservedSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "reserved_seat")),
	}
}

func (r *reservedSeatRepository) FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.ReservedSeat, error) {
	query := `
		SELECT id, reservation_id, seat_id, created_at
		FROM reserved_seats
		WHERE reservation_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to find reserved seats by reservation ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find reserved seats by reservation ID %s: %w", reservationID.String(), err)
	}
	defer rows.Close()

	var reservedSeats []*entity.ReservedSeat
	for rows.Next() {
		var rs entity.ReservedSeat
		err := rows.Scan(
			&rs.ID,
			&rs.ReservationID,
			&rs.SeatID,
			&rs.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan reserved seat row", zap.Error(err))
			return nil, fmt.Errorf("scan reserved seat row: %w", err)
		}
		reservedSeats = append(reservedSeats, &rs)
	}

	return reservedSeats, nil
}

func (r *reservedSeatRepository) FindReservedSeatIDsByScreening(ctx context.Context, screeningID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT DISTINCT rs.seat_id
		FROM reserved_seats rs
		INNER JOIN reservations res ON rs.reservation_id = res.id
		WHERE res.screening_id = $1 AND res.status <> 'CANCELLED'
	`

	rows, err := r.db.Query(ctx, query, screeningID)
	if err != nil {
		r.log.Error("Failed to find reserved seats by screening",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()),
		)
		return nil, fmt.Errorf("find reserved seats by screening %s: %w", screeningID.String(), err)
	}
	defer rows.Close()

	var seatIDs []uuid.UUID
	for rows.Next() {
		var seatID uuid.UUID
		err := rows.Scan(&seatID)
		if err != nil {
			r.log.Error("Failed to scan seat ID row", zap.Error(err))
			return nil, fmt.Errorf("scan seat ID row: %w", err)
		}
		seatIDs = append(seatIDs, seatID)
	}

	return seatIDs, nil
}
