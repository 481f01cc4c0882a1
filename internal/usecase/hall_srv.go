package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default pricing tiers created on first use.
const (
	seatTypeStandard = "STANDARD"
	seatTypeVIP      = "VIP"

	standardPrice = 10.00
	vipPrice      = 15.00
)

type HallService interface {
	// CreateHall creates the hall and generates its full rows x columns
	// seat grid, all STANDARD tier.
	CreateHall(ctx context.Context, req *request.CreateHallRequest) (*response.HallResponse, error)

	GetHallByID(ctx context.Context, hallID string) (*response.HallDetailResponse, error)
	ListHalls(ctx context.Context) ([]response.HallResponse, error)
	ListSeatTypes(ctx context.Context) ([]response.SeatTypeResponse, error)

	// UpdateSeatType moves a single seat to a different pricing tier.
	UpdateSeatType(ctx context.Context, req *request.UpdateSeatTypeRequest) error
}

type hallService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewHallService(repo *repository.Repository, log *zap.Logger) HallService {
	return &hallService{
		repo: repo,
		log:  log.With(zap.String("service", "hall")),
	}
}

func (s *hallService) CreateHall(ctx context.Context, req *request.CreateHallRequest) (*response.HallResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create hall validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), repository.ErrValidation)
	}

	standard, err := s.ensureSeatType(ctx, seatTypeStandard, standardPrice)
	if err != nil {
		return nil, fmt.Errorf("create hall: %w", err)
	}
	if _, err := s.ensureSeatType(ctx, seatTypeVIP, vipPrice); err != nil {
		return nil, fmt.Errorf("create hall: %w", err)
	}

	now := time.Now()
	hall := &entity.Hall{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:    req.Name,
		Rows:    req.Rows,
		Columns: req.Columns,
	}

	if err := s.repo.Hall.Create(ctx, hall); err != nil {
		return nil, fmt.Errorf("create hall: %w", err)
	}

	seats := make([]*entity.Seat, 0, req.Rows*req.Columns)
	for row := 1; row <= req.Rows; row++ {
		for col := 1; col <= req.Columns; col++ {
			seats = append(seats, &entity.Seat{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				HallID:     hall.ID,
				SeatTypeID: standard.ID,
				Row:        row,
				Column:     col,
			})
		}
	}

	if err := s.repo.Seat.CreateBatch(ctx, seats); err != nil {
		return nil, fmt.Errorf("create hall seats: %w", err)
	}

	s.log.Info("Hall created",
		zap.String("hall_id", hall.ID.String()),
		zap.String("name", hall.Name),
		zap.Int("rows", hall.Rows),
		zap.Int("columns", hall.Columns),
		zap.Int("seat_count", len(seats)),
	)

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) GetHallByID(ctx context.Context, hallID string) (*response.HallDetailResponse, error) {
	id, err := uuid.Parse(hallID)
	if err != nil {
		return nil, fmt.Errorf("invalid hall ID format %s: %w", hallID, repository.ErrValidation)
	}

	hall, err := s.repo.Hall.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get hall: %w", err)
	}
	if hall == nil {
		return nil, fmt.Errorf("hall %s: %w", hallID, repository.ErrNotFound)
	}

	seats, err := s.repo.Seat.FindByHallID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get hall seats: %w", err)
	}

	seatTypes, err := s.repo.SeatType.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get hall: %w", err)
	}
	typesByID := make(map[uuid.UUID]*entity.SeatType, len(seatTypes))
	for _, seatType := range seatTypes {
		typesByID[seatType.ID] = seatType
	}

	seatResponses := make([]response.SeatResponse, len(seats))
	for i, seat := range seats {
		seatResponses[i] = response.SeatResponse{
			ID:     seat.ID.String(),
			Row:    seat.Row,
			Column: seat.Column,
		}
		if seatType := typesByID[seat.SeatTypeID]; seatType != nil {
			seatResponses[i].Type = seatType.Name
			seatResponses[i].Price = seatType.Price
		}
	}

	return &response.HallDetailResponse{
		HallResponse: response.HallToResponse(hall),
		Seats:        seatResponses,
	}, nil
}

func (s *hallService) ListHalls(ctx context.Context) ([]response.HallResponse, error) {
	halls, err := s.repo.Hall.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list halls", zap.Error(err))
		return nil, fmt.Errorf("list halls: %w", err)
	}

	responses := make([]response.HallResponse, len(halls))
	for i, hall := range halls {
		responses[i] = response.HallToResponse(hall)
	}
	return responses, nil
}

func (s *hallService) ListSeatTypes(ctx context.Context) ([]response.SeatTypeResponse, error) {
	seatTypes, err := s.repo.SeatType.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list seat types", zap.Error(err))
		return nil, fmt.Errorf("list seat types: %w", err)
	}

	responses := make([]response.SeatTypeResponse, len(seatTypes))
	for i, seatType := range seatTypes {
		responses[i] = response.SeatTypeToResponse(seatType)
	}
	return responses, nil
}

func (s *hallService) UpdateSeatType(ctx context.Context, req *request.UpdateSeatTypeRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update seat type validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), repository.ErrValidation)
	}

	seatID, err := uuid.Parse(req.SeatID)
	if err != nil {
		return fmt.Errorf("invalid seat ID format %s: %w", req.SeatID, repository.ErrValidation)
	}

	seatTypeID, err := uuid.Parse(req.SeatTypeID)
	if err != nil {
		return fmt.Errorf("invalid seat type ID format %s: %w", req.SeatTypeID, repository.ErrValidation)
	}

	seatType, err := s.repo.SeatType.FindByID(ctx, seatTypeID)
	if err != nil {
		return fmt.Errorf("update seat type: %w", err)
	}
	if seatType == nil {
		return fmt.Errorf("seat type %s: %w", req.SeatTypeID, repository.ErrNotFound)
	}

	if err := s.repo.Seat.UpdateSeatType(ctx, seatID, seatTypeID); err != nil {
		return fmt.Errorf("update seat type: %w", err)
	}

	s.log.Info("Seat type updated",
		zap.String("seat_id", req.SeatID),
		zap.String("seat_type", seatType.Name),
	)
	return nil
}

func (s *hallService) ensureSeatType(ctx context.Context, name string, price float64) (*entity.SeatType, error) {
	seatType, err := s.repo.SeatType.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if seatType != nil {
		return seatType, nil
	}

	seatType = &entity.SeatType{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:  name,
		Price: price,
	}
	if err := s.repo.SeatType.Create(ctx, seatType); err != nil {
		return nil, err
	}

	return seatType, nil
}
