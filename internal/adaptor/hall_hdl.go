package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type HallHandler struct {
	service   usecase.HallService
	screening usecase.ScreeningService
	log       *zap.Logger
}

func NewHallHandler(service usecase.HallService, screening usecase.ScreeningService, log *zap.Logger) *HallHandler {
	return &HallHandler{
		service:   service,
		screening: screening,
		log:       log,
	}
}

// Create handles POST /api/halls (admin)
func (h *HallHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateHallRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.CreateHall(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, "create hall", err)
		return
	}

	utils.ResponseCreated(w, "Hall created successfully", response)
}

// GetByID handles GET /api/halls/{id}
func (h *HallHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	hallID := chi.URLParam(r, "id")

	response, err := h.service.GetHallByID(r.Context(), hallID)
	if err != nil {
		writeServiceError(w, h.log, "get hall", err)
		return
	}

	utils.ResponseSuccess(w, "Hall retrieved successfully", response)
}

// List handles GET /api/halls
func (h *HallHandler) List(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.ListHalls(r.Context())
	if err != nil {
		writeServiceError(w, h.log, "list halls", err)
		return
	}

	utils.ResponseSuccess(w, "Halls retrieved successfully", response)
}

// ListSeatTypes handles GET /api/seat-types
func (h *HallHandler) ListSeatTypes(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.ListSeatTypes(r.Context())
	if err != nil {
		writeServiceError(w, h.log, "list seat types", err)
		return
	}

	utils.ResponseSuccess(w, "Seat types retrieved successfully", response)
}

// UpdateSeatType handles PATCH /api/seats/type (admin)
func (h *HallHandler) UpdateSeatType(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateSeatTypeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.UpdateSeatType(r.Context(), &req); err != nil {
		writeServiceError(w, h.log, "update seat type", err)
		return
	}

	utils.ResponseSuccess(w, "Seat type updated successfully", nil)
}

// CheckAvailability handles GET /api/halls/{id}/availability
// Query params: start_time, end_time (RFC3339), exclude_id (optional).
func (h *HallHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	hallID := chi.URLParam(r, "id")

	startTime, err := time.Parse(time.RFC3339, r.URL.Query().Get("start_time"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid start_time, expected RFC3339", nil)
		return
	}

	endTime, err := time.Parse(time.RFC3339, r.URL.Query().Get("end_time"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid end_time, expected RFC3339", nil)
		return
	}

	excludeID := r.URL.Query().Get("exclude_id")

	available, err := h.screening.CheckHallAvailability(r.Context(), hallID, startTime, endTime, excludeID)
	if err != nil {
		writeServiceError(w, h.log, "check hall availability", err)
		return
	}

	utils.ResponseSuccess(w, "Availability checked", map[string]bool{"available": available})
}
