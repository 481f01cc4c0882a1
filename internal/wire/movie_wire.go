package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	screeningHandler *adaptor.ScreeningHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes
	r.Get("/api/movies", movieHandler.List)
	r.Get("/api/movies/{id}", movieHandler.GetByID)
	r.Get("/api/movies/{id}/screenings", screeningHandler.ListForMovie)

	// Admin routes
	r.Route("/api/admin/movies", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/", movieHandler.Create)
		r.Put("/{id}", movieHandler.Update)
		r.Delete("/{id}", movieHandler.Delete)
	})
}
