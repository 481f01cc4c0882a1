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

type ScreeningHandler struct {
	service usecase.ScreeningService
	log     *zap.Logger
}

func NewScreeningHandler(service usecase.ScreeningService, log *zap.Logger) *ScreeningHandler {
	return &ScreeningHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/screenings (admin)
func (h *ScreeningHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateScreeningRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.CreateScreening(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, "create screening", err)
		return
	}

	utils.ResponseCreated(w, "Screening created successfully", response)
}

// Update handles PUT /api/screenings/{id} (admin)
func (h *ScreeningHandler) Update(w http.ResponseWriter, r *http.Request) {
	screeningID := chi.URLParam(r, "id")

	var req request.UpdateScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.UpdateScreening(r.Context(), screeningID, &req)
	if err != nil {
		writeServiceError(w, h.log, "update screening", err)
		return
	}

	utils.ResponseSuccess(w, "Screening updated successfully", response)
}

// Delete handles DELETE /api/screenings/{id} (admin)
func (h *ScreeningHandler) Delete(w http.ResponseWriter, r *http.Request) {
	screeningID := chi.URLParam(r, "id")

	if err := h.service.DeleteScreening(r.Context(), screeningID); err != nil {
		writeServiceError(w, h.log, "delete screening", err)
		return
	}

	utils.ResponseSuccess(w, "Screening deleted successfully", nil)
}

// List handles GET /api/screenings
func (h *ScreeningHandler) List(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.ListScreenings(r.Context())
	if err != nil {
		writeServiceError(w, h.log, "list screenings", err)
		return
	}

	utils.ResponseSuccess(w, "Screenings retrieved successfully", response)
}

// ListForMovie handles GET /api/movies/{id}/screenings
func (h *ScreeningHandler) ListForMovie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	response, err := h.service.ListUpcomingForMovie(r.Context(), movieID)
	if err != nil {
		writeServiceError(w, h.log, "list screenings for movie", err)
		return
	}

	utils.ResponseSuccess(w, "Screenings retrieved successfully", response)
}
