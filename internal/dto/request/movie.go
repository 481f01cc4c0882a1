package request

type CreateMovieRequest struct {
	Title             string  `json:"title" validate:"required,max=200"`
	Description       *string `json:"description" validate:"omitempty,max=2000"`
	DurationInMinutes int     `json:"duration_in_minutes" validate:"required,min=1,max=600"`
}

type UpdateMovieRequest struct {
	Title             *string `json:"title" validate:"omitempty,max=200"`
	Description       *string `json:"description" validate:"omitempty,max=2000"`
	DurationInMinutes *int    `json:"duration_in_minutes" validate:"omitempty,min=1,max=600"`
	IsActive          *bool   `json:"is_active"`
}
