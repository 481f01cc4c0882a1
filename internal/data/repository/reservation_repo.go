package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context) ([]*entity.Reservation, error)

	// FindPending returns the reservation only if it exists, belongs to the
	// user and is still PENDING.
	FindPending(ctx context.Context, id, userID uuid.UUID) (*entity.Reservation, error)

	// CreateWithSeats inserts the reservation and its reserved seats as one
	// transaction. The screening row is locked for the duration so two
	// concurrent holds on overlapping seat sets cannot both pass the
	// occupancy re-check; the loser gets ErrSeatConflict.
	CreateWithSeats(ctx context.Context, reservation *entity.Reservation, seatIDs []uuid.UUID) error

	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus, paymentStatus entity.PaymentStatus) error

	// CancelExpired cancels all PENDING reservations whose hold has lapsed.
	// Idempotent bulk update; returns the number of rows changed.
	CancelExpired(ctx context.Context, now time.Time) (int64, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, user_id, screening_id, total_price, payment_method, status, payment_status, expires_at, created_at, updated_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.ScreeningID,
		&res.TotalPrice,
		&res.PaymentMethod,
		&res.Status,
		&res.PaymentStatus,
		&res.ExpiresAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return res, nil
}

func (r *reservationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reservations by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, nil
}

func (r *reservationRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count reservations by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *reservationRepository) FindAll(ctx context.Context) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find reservations", zap.Error(err))
		return nil, fmt.Errorf("find reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, nil
}

func (r *reservationRepository) FindPending(ctx context.Context, id, userID uuid.UUID) (*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE id = $1 AND user_id = $2 AND status = 'PENDING'
	`

	res, err := scanReservation(r.db.QueryRow(ctx, query, id, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pending reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find pending reservation %s: %w", id.String(), err)
	}

	return res, nil
}

func (r *reservationRepository) CreateWithSeats(ctx context.Context, reservation *entity.Reservation, seatIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create reservation tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize competing holds on the same screening, then re-check
	// occupancy immediately before insert.
	if _, err := tx.Exec(ctx,
		`SELECT id FROM screenings WHERE id = $1 FOR UPDATE`, reservation.ScreeningID,
	); err != nil {
		return fmt.Errorf("lock screening %s: %w", reservation.ScreeningID.String(), err)
	}

	var taken int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM reserved_seats rs
		INNER JOIN reservations res ON rs.reservation_id = res.id
		WHERE res.screening_id = $1
		  AND res.status IN ('PENDING', 'CONFIRMED')
		  AND rs.seat_id = ANY($2)
	`, reservation.ScreeningID, seatIDs).Scan(&taken)
	if err != nil {
		return fmt.Errorf("check seat occupancy: %w", err)
	}
	if taken > 0 {
		return fmt.Errorf("screening %s: %w", reservation.ScreeningID.String(), ErrSeatConflict)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO reservations (`+reservationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		reservation.ID,
		reservation.UserID,
		reservation.ScreeningID,
		reservation.TotalPrice,
		reservation.PaymentMethod,
		reservation.Status,
		reservation.PaymentStatus,
		reservation.ExpiresAt,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("user_id", reservation.UserID.String()),
			zap.String("screening_id", reservation.ScreeningID.String()),
		)
		return fmt.Errorf("create reservation: %w", err)
	}

	for _, seatID := range seatIDs {
		_, err = tx.Exec(ctx, `
			INSERT INTO reserved_seats (id, reservation_id, seat_id, created_at)
			VALUES ($1, $2, $3, $4)
		`, uuid.New(), reservation.ID, seatID, reservation.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("seat %s: %w", seatID.String(), ErrSeatConflict)
			}
			return fmt.Errorf("create reserved seat %s: %w", seatID.String(), err)
		}
	}

	return tx.Commit(ctx)
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus, paymentStatus entity.PaymentStatus) error {
	query := `
		UPDATE reservations
		SET status = $2, payment_status = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, status, paymentStatus)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update reservation %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *reservationRepository) CancelExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE reservations
		SET status = 'CANCELLED', updated_at = NOW()
		WHERE status = 'PENDING' AND expires_at < $1
	`

	result, err := r.db.Exec(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to cancel expired reservations", zap.Error(err))
		return 0, fmt.Errorf("cancel expired reservations: %w", err)
	}

	return result.RowsAffected(), nil
}
