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

type ScreeningService interface {
	// CreateScreening schedules a screening; the end time is derived from
	// the movie duration and the slot must not overlap another screening in
	// the hall.
	CreateScreening(ctx context.Context, req *request.CreateScreeningRequest) (*response.ScreeningResponse, error)

	// UpdateScreening re-derives the end time when the movie or start time
	// change and re-checks availability excluding the screening itself.
	UpdateScreening(ctx context.Context, screeningID string, req *request.UpdateScreeningRequest) (*response.ScreeningResponse, error)

	// DeleteScreening refuses while non-cancelled reservations exist.
	DeleteScreening(ctx context.Context, screeningID string) error

	CheckHallAvailability(ctx context.Context, hallID string, startTime, endTime time.Time, excludeID string) (bool, error)
	ListScreenings(ctx context.Context) ([]response.ScreeningResponse, error)
	ListUpcomingForMovie(ctx context.Context, movieID string) ([]response.ScreeningResponse, error)
}

type screeningService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewScreeningService(repo *repository.Repository, log *zap.Logger) ScreeningService {
	return &screeningService{
		repo: repo,
		log:  log.With(zap.String("service", "screening")),
	}
}

func (s *screeningService) CreateScreening(ctx context.Context, req *request.CreateScreeningRequest) (*response.ScreeningResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create screening validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), repository.ErrValidation)
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", req.MovieID, repository.ErrValidation)
	}

	hallID, err := uuid.Parse(req.HallID)
	if err != nil {
		return nil, fmt.Errorf("invalid hall ID format %s: %w", req.HallID, repository.ErrValidation)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("create screening: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", req.MovieID, repository.ErrNotFound)
	}

	hall, err := s.repo.Hall.FindByID(ctx, hallID)
	if err != nil {
		return nil, fmt.Errorf("create screening: %w", err)
	}
	if hall == nil {
		return nil, fmt.Errorf("hall %s: %w", req.HallID, repository.ErrNotFound)
	}

	now := time.Now()
	screening := &entity.Screening{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:   movieID,
		HallID:    hallID,
		StartTime: req.StartTime,
		EndTime:   req.StartTime.Add(time.Duration(movie.DurationInMinutes) * time.Minute),
		Status:    entity.ScreeningStatusActive,
	}

	if err := s.repo.Screening.CreateIfAvailable(ctx, screening); err != nil {
		s.log.Warn("Failed to create screening",
			zap.Error(err),
			zap.String("movie_id", req.MovieID),
			zap.String("hall_id", req.HallID),
		)
		return nil, fmt.Errorf("create screening: %w", err)
	}

	s.log.Info("Screening created",
		zap.String("screening_id", screening.ID.String()),
		zap.String("movie_id", req.MovieID),
		zap.String("hall_id", req.HallID),
		zap.Time("start_time", screening.StartTime),
		zap.Time("end_time", screening.EndTime),
	)

	resp := response.ScreeningToResponse(screening)
	return &resp, nil
}

func (s *screeningService) UpdateScreening(ctx context.Context, screeningID string, req *request.UpdateScreeningRequest) (*response.ScreeningResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update screening validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), repository.ErrValidation)
	}

	id, err := uuid.Parse(screeningID)
	if err != nil {
		return nil, fmt.Errorf("invalid screening ID format %s: %w", screeningID, repository.ErrValidation)
	}

	screening, err := s.repo.Screening.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update screening: %w", err)
	}
	if screening == nil {
		return nil, fmt.Errorf("screening %s: %w", screeningID, repository.ErrNotFound)
	}

	if req.MovieID != nil {
		movieID, err := uuid.Parse(*req.MovieID)
		if err != nil {
			return nil, fmt.Errorf("invalid movie ID format %s: %w", *req.MovieID, repository.ErrValidation)
		}
		screening.MovieID = movieID
	}
	if req.HallID != nil {
		hallID, err := uuid.Parse(*req.HallID)
		if err != nil {
			return nil, fmt.Errorf("invalid hall ID format %s: %w", *req.HallID, repository.ErrValidation)
		}
		hall, err := s.repo.Hall.FindByID(ctx, hallID)
		if err != nil {
			return nil, fmt.Errorf("update screening: %w", err)
		}
		if hall == nil {
			return nil, fmt.Errorf("hall %s: %w", *req.HallID, repository.ErrNotFound)
		}
		screening.HallID = hallID
	}
	if req.StartTime != nil {
		screening.StartTime = *req.StartTime
	}
	if req.Status != nil {
		screening.Status = entity.ScreeningStatus(*req.Status)
	}

	// A movie or start change shifts the end time with it.
	if req.MovieID != nil || req.StartTime != nil {
		movie, err := s.repo.Movie.FindByID(ctx, screening.MovieID)
		if err != nil {
			return nil, fmt.Errorf("update screening: %w", err)
		}
		if movie == nil {
			return nil, fmt.Errorf("movie %s: %w", screening.MovieID.String(), repository.ErrNotFound)
		}
		screening.EndTime = screening.StartTime.Add(time.Duration(movie.DurationInMinutes) * time.Minute)
	}

	screening.UpdatedAt = time.Now()

	if err := s.repo.Screening.UpdateIfAvailable(ctx, screening); err != nil {
		s.log.Warn("Failed to update screening",
			zap.Error(err),
			zap.String("screening_id", screeningID),
		)
		return nil, fmt.Errorf("update screening: %w", err)
	}

	s.log.Info("Screening updated", zap.String("screening_id", screeningID))

	resp := response.ScreeningToResponse(screening)
	return &resp, nil
}

func (s *screeningService) DeleteScreening(ctx context.Context, screeningID string) error {
	id, err := uuid.Parse(screeningID)
	if err != nil {
		return fmt.Errorf("invalid screening ID format %s: %w", screeningID, repository.ErrValidation)
	}

	screening, err := s.repo.Screening.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete screening: %w", err)
	}
	if screening == nil {
		return fmt.Errorf("screening %s: %w", screeningID, repository.ErrNotFound)
	}

	hasReservations, err := s.repo.Screening.HasReservations(ctx, id)
	if err != nil {
		return fmt.Errorf("delete screening: %w", err)
	}
	if hasReservations {
		return fmt.Errorf("screening %s: %w", screeningID, repository.ErrHasReservations)
	}

	if err := s.repo.Screening.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete screening",
			zap.Error(err),
			zap.String("screening_id", screeningID),
		)
		return fmt.Errorf("delete screening: %w", err)
	}

	return nil
}

func (s *screeningService) CheckHallAvailability(ctx context.Context, hallID string, startTime, endTime time.Time, excludeID string) (bool, error) {
	id, err := uuid.Parse(hallID)
	if err != nil {
		return false, fmt.Errorf("invalid hall ID format %s: %w", hallID, repository.ErrValidation)
	}

	if !endTime.After(startTime) {
		return false, fmt.Errorf("end time must be after start time: %w", repository.ErrValidation)
	}

	var exclude *uuid.UUID
	if excludeID != "" {
		excludeUUID, err := uuid.Parse(excludeID)
		if err != nil {
			return false, fmt.Errorf("invalid exclude ID format %s: %w", excludeID, repository.ErrValidation)
		}
		exclude = &excludeUUID
	}

	return s.repo.Screening.CheckHallAvailability(ctx, id, startTime, endTime, exclude)
}

func (s *screeningService) ListScreenings(ctx context.Context) ([]response.ScreeningResponse, error) {
	screenings, err := s.repo.Screening.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list screenings", zap.Error(err))
		return nil, fmt.Errorf("list screenings: %w", err)
	}

	responses := make([]response.ScreeningResponse, len(screenings))
	for i, screening := range screenings {
		responses[i] = response.ScreeningToResponse(screening)
	}
	return responses, nil
}

func (s *screeningService) ListUpcomingForMovie(ctx context.Context, movieID string) ([]response.ScreeningResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, repository.ErrValidation)
	}

	// Hide screenings already inside the admission window.
	cutoff := time.Now().Add(admissionWindow)
	screenings, err := s.repo.Screening.FindUpcomingByMovieID(ctx, id, cutoff)
	if err != nil {
		s.log.Error("Failed to list upcoming screenings",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("list upcoming screenings: %w", err)
	}

	responses := make([]response.ScreeningResponse, len(screenings))
	for i, screening := range screenings {
		responses[i] = response.ScreeningToResponse(screening)
	}
	return responses, nil
}
