package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, "register", err)
		return
	}

	utils.ResponseCreated(w, "Registration successful", response)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Login(r.Context(), &req)
	if err != nil {
		// Bad credentials are a 401 here, not the usual 403.
		if errors.Is(err, repository.ErrForbidden) {
			h.log.Warn("Login failed", zap.Error(err))
			utils.ResponseUnauthorized(w, "Invalid credentials")
			return
		}
		writeServiceError(w, h.log, "login", err)
		return
	}

	utils.ResponseSuccess(w, "Login successful", response)
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		// Fall back to the raw header when called without AuthSession.
		authHeader := r.Header.Get("Authorization")
		token = strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			utils.ResponseBadRequest(w, "No token provided", nil)
			return
		}
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		writeServiceError(w, h.log, "logout", err)
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}
