package repository

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SeatTypeRepository interface {
	Create(ctx context.Context, seatType *entity.SeatType) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SeatType, error)
	FindByName(ctx context.Context, name string) (*entity.SeatType, error)
	FindAll(ctx context.Context) ([]*entity.SeatType, error)
}

type seatTypeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatTypeRepository(db database.PgxIface, log *zap.Logger) SeatTypeRepository {
	return &seatTypeRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat_type")),
	}
}

func (r *seatTypeRepository) Create(ctx context.Context, seatType *entity.SeatType) error {
	query := `
		INSERT INTO seat_types (id, name, price, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		seatType.ID,
		seatType.Name,
		seatType.Price,
		seatType.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create seat type",
			zap.Error(err),
			zap.String("name", seatType.Name),
		)
		return fmt.Errorf("create seat type %s: %w", seatType.Name, err)
	}

	return nil
}

func (r *seatTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SeatType, error) {
	query := `SELECT id, name, price, created_at FROM seat_types WHERE id = $1`

	var seatType entity.SeatType
	err := r.db.QueryRow(ctx, query, id).Scan(
		&seatType.ID,
		&seatType.Name,
		&seatType.Price,
		&seatType.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat type by ID",
			zap.Error(err),
			zap.String("seat_type_id", id.String()),
		)
		return nil, fmt.Errorf("find seat type by ID %s: %w", id.String(), err)
	}

	return &seatType, nil
}

func (r *seatTypeRepository) FindByName(ctx context.Context, name string) (*entity.SeatType, error) {
	query := `SELECT id, name, price, created_at FROM seat_types WHERE name = $1`

	var seatType entity.SeatType
	err := r.db.QueryRow(ctx, query, name).Scan(
		&seatType.ID,
		&seatType.Name,
		&seatType.Price,
		&seatType.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat type by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find seat type by name %s: %w", name, err)
	}

	return &seatType, nil
}

func (r *seatTypeRepository) FindAll(ctx context.Context) ([]*entity.SeatType, error) {
	query := `SELECT id, name, price, created_at FROM seat_types ORDER BY price`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find seat types", zap.Error(err))
		return nil, fmt.Errorf("find seat types: %w", err)
	}
	defer rows.Close()

	var seatTypes []*entity.SeatType
	for rows.Next() {
		var seatType entity.SeatType
		err := rows.Scan(
			&seatType.ID,
			&seatType.Name,
			&seatType.Price,
			&seatType.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan seat type row", zap.Error(err))
			return nil, fmt.Errorf("scan seat type row: %w", err)
		}
		seatTypes = append(seatTypes, &seatType)
	}

	return seatTypes, nil
}
