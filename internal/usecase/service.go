package usecase

import (
	"time"

	"cinema-reservation/internal/data/repository"

	"go.uber.org/zap"
)

// Service bundles every use case behind one dependency for the HTTP layer.
type Service struct {
	Auth        AuthService
	Movie       MovieService
	Hall        HallService
	Screening   ScreeningService
	Reservation ReservationService
}

func NewService(repo *repository.Repository, sessionTTL time.Duration, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo, sessionTTL, log),
		Movie:       NewMovieService(repo, log),
		Hall:        NewHallService(repo, log),
		Screening:   NewScreeningService(repo, log),
		Reservation: NewReservationService(repo, log),
	}
}
