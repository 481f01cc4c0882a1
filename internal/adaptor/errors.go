package adaptor

import (
	"errors"
	"net/http"

	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps service errors onto HTTP responses. Unrecognized
// errors are logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, operation string, err error) {
	switch {
	case errors.Is(err, repository.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, repository.ErrTooCloseToStart),
		errors.Is(err, repository.ErrAlreadyPaid):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, repository.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, repository.ErrForbidden):
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, repository.ErrSeatConflict),
		errors.Is(err, repository.ErrSlotOverlap),
		errors.Is(err, repository.ErrHasReservations):
		log.Warn(operation+" conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
