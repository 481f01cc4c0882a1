package request

import "time"

type CreateScreeningRequest struct {
	MovieID   string    `json:"movie_id" validate:"required,uuid"`
	HallID    string    `json:"hall_id" validate:"required,uuid"`
	StartTime time.Time `json:"start_time" validate:"required"`
}

type UpdateScreeningRequest struct {
	MovieID   *string    `json:"movie_id" validate:"omitempty,uuid"`
	HallID    *string    `json:"hall_id" validate:"omitempty,uuid"`
	StartTime *time.Time `json:"start_time"`
	Status    *string    `json:"status" validate:"omitempty,oneof=ACTIVE CANCELLED"`
}
