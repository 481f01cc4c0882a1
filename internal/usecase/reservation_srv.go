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

type ReservationService interface {
	// GetSeatGrid projects the hall layout for a screening with per-seat
	// reservation flags.
	GetSeatGrid(ctx context.Context, screeningID string) (*response.SeatGridResponse, error)

	// CreateReservation places an atomic hold on the requested seats.
	CreateReservation(ctx context.Context, userID string, req *request.CreateReservationRequest) (*response.ReservationResponse, error)

	// ConfirmPayment settles a reservation. CASH requires an admin actor and
	// may target any reservation; CARD must be the actor's own pending one.
	ConfirmPayment(ctx context.Context, actorID string, actorRole entity.UserRole, req *request.ConfirmPaymentRequest) (*response.ReservationResponse, error)

	GetUserReservations(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)

	// Admin reads
	GetReservationByID(ctx context.Context, reservationID string) (*response.ReservationResponse, error)
	GetAllReservations(ctx context.Context) ([]response.ReservationResponse, error)
}

type reservationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReservationService(repo *repository.Repository, log *zap.Logger) ReservationService {
	return &reservationService{
		repo: repo,
		log:  log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) GetSeatGrid(ctx context.Context, screeningID string) (*response.SeatGridResponse, error) {
	id, err := uuid.Parse(screeningID)
	if err != nil {
		return nil, fmt.Errorf("invalid screening ID format %s: %w", screeningID, repository.ErrValidation)
	}

	screening, err := s.repo.Screening.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get seat grid: %w", err)
	}
	if screening == nil {
		return nil, fmt.Errorf("screening %s: %w", screeningID, repository.ErrNotFound)
	}

	hall, err := s.repo.Hall.FindByID(ctx, screening.HallID)
	if err != nil {
		return nil, fmt.Errorf("get seat grid: %w", err)
	}
	if hall == nil {
		return nil, fmt.Errorf("hall for screening %s: %w", screeningID, repository.ErrNotFound)
	}

	seats, err := s.repo.Seat.FindByHallID(ctx, hall.ID)
	if err != nil {
		return nil, fmt.Errorf("get seat grid: %w", err)
	}

	prices, err := s.seatTypesByID(ctx)
	if err != nil {
		return nil, fmt.Errorf("get seat grid: %w", err)
	}

	reservedIDs, err := s.repo.ReservedSeat.FindReservedSeatIDsByScreening(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get seat grid: %w", err)
	}
	reserved := make(map[uuid.UUID]bool, len(reservedIDs))
	for _, seatID := range reservedIDs {
		reserved[seatID] = true
	}

	// Grid cells are zero-based; stored seat positions are 1-based. Layout
	// gaps stay nil.
	grid := make([][]*response.SeatCell, hall.Rows)
	for row := range grid {
		grid[row] = make([]*response.SeatCell, hall.Columns)
	}

	for _, seat := range seats {
		if seat.Row < 1 || seat.Row > hall.Rows || seat.Column < 1 || seat.Column > hall.Columns {
			continue
		}

		seatType := prices[seat.SeatTypeID]
		cell := &response.SeatCell{
			SeatID:     seat.ID.String(),
			Row:        seat.Row - 1,
			Column:     seat.Column - 1,
			IsReserved: reserved[seat.ID],
		}
		if seatType != nil {
			cell.Type = seatType.Name
			cell.Price = seatType.Price
		}
		grid[seat.Row-1][seat.Column-1] = cell
	}

	return &response.SeatGridResponse{
		ScreeningID: screeningID,
		Grid:        grid,
	}, nil
}

func (s *reservationService) CreateReservation(ctx context.Context, userID string, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), repository.ErrValidation)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, repository.ErrValidation)
	}

	screeningID, err := uuid.Parse(req.ScreeningID)
	if err != nil {
		return nil, fmt.Errorf("invalid screening ID format %s: %w", req.ScreeningID, repository.ErrValidation)
	}

	seatIDs := make([]uuid.UUID, len(req.SeatIDs))
	seen := make(map[uuid.UUID]bool, len(req.SeatIDs))
	for i, seatIDStr := range req.SeatIDs {
		seatID, err := uuid.Parse(seatIDStr)
		if err != nil {
			return nil, fmt.Errorf("invalid seat ID format %s: %w", seatIDStr, repository.ErrValidation)
		}
		if seen[seatID] {
			return nil, fmt.Errorf("duplicate seat ID %s: %w", seatIDStr, repository.ErrValidation)
		}
		seen[seatID] = true
		seatIDs[i] = seatID
	}

	screening, err := s.repo.Screening.FindByID(ctx, screeningID)
	if err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	if screening == nil {
		return nil, fmt.Errorf("screening %s: %w", req.ScreeningID, repository.ErrNotFound)
	}
	if screening.Status != entity.ScreeningStatusActive {
		return nil, fmt.Errorf("screening %s is %s: %w", req.ScreeningID, screening.Status, repository.ErrValidation)
	}

	now := time.Now()
	expiresAt, err := CalculateExpirationTime(screening.StartTime, now)
	if err != nil {
		return nil, err
	}

	seats, err := s.repo.Seat.FindByIDs(ctx, seatIDs)
	if err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	if len(seats) != len(seatIDs) {
		return nil, fmt.Errorf("one or more seats: %w", repository.ErrNotFound)
	}

	prices, err := s.seatTypesByID(ctx)
	if err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	var totalPrice float64
	for _, seat := range seats {
		if seat.HallID != screening.HallID {
			return nil, fmt.Errorf("seat %s not in screening hall: %w", seat.ID.String(), repository.ErrValidation)
		}
		seatType := prices[seat.SeatTypeID]
		if seatType == nil {
			return nil, fmt.Errorf("seat type for seat %s: %w", seat.ID.String(), repository.ErrNotFound)
		}
		totalPrice += seatType.Price
	}

	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:        userUUID,
		ScreeningID:   screeningID,
		TotalPrice:    totalPrice,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		Status:        entity.ReservationStatusPending,
		PaymentStatus: entity.PaymentStatusUnpaid,
		ExpiresAt:     expiresAt,
	}

	if err := s.repo.Reservation.CreateWithSeats(ctx, reservation, seatIDs); err != nil {
		s.log.Warn("Failed to create reservation",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("screening_id", req.ScreeningID),
			zap.Int("seat_count", len(seatIDs)),
		)
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("user_id", userID),
		zap.String("screening_id", req.ScreeningID),
		zap.Int("seat_count", len(seatIDs)),
		zap.Float64("total_price", totalPrice),
		zap.Time("expires_at", expiresAt),
	)

	resp := response.ReservationToResponse(reservation, req.SeatIDs)
	return &resp, nil
}

func (s *reservationService) ConfirmPayment(ctx context.Context, actorID string, actorRole entity.UserRole, req *request.ConfirmPaymentRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Confirm payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), repository.ErrValidation)
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", actorID, repository.ErrValidation)
	}

	reservationID, err := uuid.Parse(req.ReservationID)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation ID format %s: %w", req.ReservationID, repository.ErrValidation)
	}

	var reservation *entity.Reservation
	switch entity.PaymentMethod(req.PaymentMethod) {
	case entity.PaymentMethodCash:
		// Cash is collected at the counter; staff attest it was paid.
		if actorRole != entity.RoleAdmin {
			return nil, fmt.Errorf("only admins can confirm cash payments: %w", repository.ErrForbidden)
		}
		reservation, err = s.repo.Reservation.FindByID(ctx, reservationID)
	case entity.PaymentMethodCard:
		reservation, err = s.repo.Reservation.FindPending(ctx, reservationID, actorUUID)
	default:
		return nil, fmt.Errorf("invalid payment method %s: %w", req.PaymentMethod, repository.ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation %s: %w", req.ReservationID, repository.ErrNotFound)
	}

	if reservation.PaymentStatus == entity.PaymentStatusPaid {
		return nil, fmt.Errorf("reservation %s: %w", req.ReservationID, repository.ErrAlreadyPaid)
	}

	if err := s.repo.Reservation.UpdateStatus(ctx,
		reservation.ID, entity.ReservationStatusConfirmed, entity.PaymentStatusPaid,
	); err != nil {
		s.log.Error("Failed to confirm payment",
			zap.Error(err),
			zap.String("reservation_id", req.ReservationID),
		)
		return nil, fmt.Errorf("confirm payment: %w", err)
	}

	reservation.Status = entity.ReservationStatusConfirmed
	reservation.PaymentStatus = entity.PaymentStatusPaid

	s.log.Info("Payment confirmed",
		zap.String("reservation_id", req.ReservationID),
		zap.String("payment_method", req.PaymentMethod),
		zap.String("actor_id", actorID),
	)

	seatIDs, err := s.seatIDStrings(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}

	resp := response.ReservationToResponse(reservation, seatIDs)
	return &resp, nil
}

func (s *reservationService) GetUserReservations(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, repository.ErrValidation)
	}

	reservations, err := s.repo.Reservation.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user reservations",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user reservations: %w", err)
	}

	total, err := s.repo.Reservation.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("count user reservations: %w", err)
	}

	responses := make([]response.ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		seatIDs, err := s.seatIDStrings(ctx, reservation.ID)
		if err != nil {
			return nil, err
		}
		responses[i] = response.ReservationToResponse(reservation, seatIDs)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *reservationService) GetReservationByID(ctx context.Context, reservationID string) (*response.ReservationResponse, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation ID format %s: %w", reservationID, repository.ErrValidation)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, repository.ErrNotFound)
	}

	seatIDs, err := s.seatIDStrings(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}

	resp := response.ReservationToResponse(reservation, seatIDs)
	return &resp, nil
}

func (s *reservationService) GetAllReservations(ctx context.Context) ([]response.ReservationResponse, error) {
	reservations, err := s.repo.Reservation.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get reservations", zap.Error(err))
		return nil, fmt.Errorf("get reservations: %w", err)
	}

	responses := make([]response.ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		seatIDs, err := s.seatIDStrings(ctx, reservation.ID)
		if err != nil {
			return nil, err
		}
		responses[i] = response.ReservationToResponse(reservation, seatIDs)
	}

	return responses, nil
}

func (s *reservationService) seatTypesByID(ctx context.Context) (map[uuid.UUID]*entity.SeatType, error) {
	seatTypes, err := s.repo.SeatType.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load seat types: %w", err)
	}

	byID := make(map[uuid.UUID]*entity.SeatType, len(seatTypes))
	for _, seatType := range seatTypes {
		byID[seatType.ID] = seatType
	}
	return byID, nil
}

func (s *reservationService) seatIDStrings(ctx context.Context, reservationID uuid.UUID) ([]string, error) {
	reservedSeats, err := s.repo.ReservedSeat.FindByReservationID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("load reserved seats: %w", err)
	}

	seatIDs := make([]string, len(reservedSeats))
	for i, rs := range reservedSeats {
		seatIDs[i] = rs.SeatID.String()
	}
	return seatIDs, nil
}
