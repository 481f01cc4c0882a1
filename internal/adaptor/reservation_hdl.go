package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

// GetSeatGrid handles GET /api/screenings/{id}/seats
func (h *ReservationHandler) GetSeatGrid(w http.ResponseWriter, r *http.Request) {
	screeningID := chi.URLParam(r, "id")

	response, err := h.service.GetSeatGrid(r.Context(), screeningID)
	if err != nil {
		writeServiceError(w, h.log, "get seat grid", err)
		return
	}

	utils.ResponseSuccess(w, "Seat grid retrieved successfully", response)
}

// Create handles POST /api/reservations
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.CreateReservation(r.Context(), userID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, "create reservation", err)
		return
	}

	utils.ResponseCreated(w, "Reservation created successfully", response)
}

// ConfirmPayment handles POST /api/reservations/confirm
func (h *ReservationHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	var req request.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.ConfirmPayment(r.Context(), userID.String(), entity.UserRole(role), &req)
	if err != nil {
		writeServiceError(w, h.log, "confirm payment", err)
		return
	}

	utils.ResponseSuccess(w, "Payment confirmed successfully", response)
}

// ListMine handles GET /api/reservations
// Query params: page, per_page.
func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}

	response, err := h.service.GetUserReservations(r.Context(), userID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, "list reservations", err)
		return
	}

	utils.ResponseSuccess(w, "Reservations retrieved successfully", response)
}

// GetByID handles GET /api/reservations/{id} (admin)
func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	reservationID := chi.URLParam(r, "id")

	response, err := h.service.GetReservationByID(r.Context(), reservationID)
	if err != nil {
		writeServiceError(w, h.log, "get reservation", err)
		return
	}

	utils.ResponseSuccess(w, "Reservation retrieved successfully", response)
}

// ListAll handles GET /api/admin/reservations (admin)
func (h *ReservationHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.GetAllReservations(r.Context())
	if err != nil {
		writeServiceError(w, h.log, "list all reservations", err)
		return
	}

	utils.ResponseSuccess(w, "Reservations retrieved successfully", response)
}
