package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireScreening(
	r chi.Router,
	screeningHandler *adaptor.ScreeningHandler,
	reservationHandler *adaptor.ReservationHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes
	r.Get("/api/screenings", screeningHandler.List)
	r.Get("/api/screenings/{id}/seats", reservationHandler.GetSeatGrid)

	// Admin routes
	r.Route("/api/admin/screenings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/", screeningHandler.Create)
		r.Put("/{id}", screeningHandler.Update)
		r.Delete("/{id}", screeningHandler.Delete)
	})
}
