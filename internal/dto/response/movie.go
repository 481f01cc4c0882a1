package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type MovieResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       *string   `json:"description,omitempty"`
	DurationInMinutes int       `json:"duration_in_minutes"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:                movie.ID.String(),
		Title:             movie.Title,
		Description:       movie.Description,
		DurationInMinutes: movie.DurationInMinutes,
		IsActive:          movie.IsActive,
		CreatedAt:         movie.CreatedAt,
	}
}
