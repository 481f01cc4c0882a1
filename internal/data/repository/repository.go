package repository

import (
	"cinema-reservation/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Movie        MovieRepository
	Hall         HallRepository
	SeatType     SeatTypeRepository
	Seat         SeatRepository
	Screening    ScreeningRepository
	Reservation  ReservationRepository
	ReservedSeat ReservedSeatRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Movie:        NewMovieRepository(db, log),
		Hall:         NewHallRepository(db, log),
		SeatType:     NewSeatTypeRepository(db, log),
		Seat:         NewSeatRepository(db, log),
		Screening:    NewScreeningRepository(db, log),
		Reservation:  NewReservationRepository(db, log),
		ReservedSeat: NewReservedSeatRepository(db, log),
	}
}
