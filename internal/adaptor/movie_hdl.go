package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/movies (admin)
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMovieRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, "create movie", err)
		return
	}

	utils.ResponseCreated(w, "Movie created successfully", response)
}

// Update handles PUT /api/movies/{id} (admin)
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	var req request.UpdateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.UpdateMovie(r.Context(), movieID, &req)
	if err != nil {
		writeServiceError(w, h.log, "update movie", err)
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", response)
}

// Delete handles DELETE /api/movies/{id} (admin)
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	if err := h.service.DeleteMovie(r.Context(), movieID); err != nil {
		writeServiceError(w, h.log, "delete movie", err)
		return
	}

	utils.ResponseSuccess(w, "Movie deleted successfully", nil)
}

// GetByID handles GET /api/movies/{id}
func (h *MovieHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	response, err := h.service.GetMovieByID(r.Context(), movieID)
	if err != nil {
		writeServiceError(w, h.log, "get movie", err)
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved successfully", response)
}

// List handles GET /api/movies
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.ListActiveMovies(r.Context())
	if err != nil {
		writeServiceError(w, h.log, "list movies", err)
		return
	}

	utils.ResponseSuccess(w, "Movies retrieved successfully", response)
}
