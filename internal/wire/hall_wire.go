package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireHall(
	r chi.Router,
	hallHandler *adaptor.HallHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes
	r.Get("/api/halls", hallHandler.List)
	r.Get("/api/halls/{id}", hallHandler.GetByID)
	r.Get("/api/seat-types", hallHandler.ListSeatTypes)

	// Admin routes
	r.Route("/api/admin/halls", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/", hallHandler.Create)
		r.Get("/{id}/availability", hallHandler.CheckAvailability)
	})

	r.With(
		middleware.AuthSession(repo.Session, repo.User, log),
		middleware.Admin(log),
	).Patch("/api/admin/seats/type", hallHandler.UpdateSeatType)
}
