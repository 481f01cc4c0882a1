package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Authenticated customer routes
	r.Route("/api/reservations", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/", reservationHandler.Create)
		r.Post("/confirm", reservationHandler.ConfirmPayment)
		r.Get("/", reservationHandler.ListMine)
	})

	// Admin routes
	r.Route("/api/admin/reservations", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Get("/", reservationHandler.ListAll)
		r.Get("/{id}", reservationHandler.GetByID)
	})
}
