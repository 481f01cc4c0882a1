package adaptor

import (
	"cinema-reservation/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	Movie       *MovieHandler
	Hall        *HallHandler
	Screening   *ScreeningHandler
	Reservation *ReservationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		Movie:       NewMovieHandler(service.Movie, log),
		Hall:        NewHallHandler(service.Hall, service.Screening, log),
		Screening:   NewScreeningHandler(service.Screening, log),
		Reservation: NewReservationHandler(service.Reservation, log),
	}
}
