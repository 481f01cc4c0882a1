package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type ScreeningResponse struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movie_id"`
	HallID    string    `json:"hall_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

func ScreeningToResponse(screening *entity.Screening) ScreeningResponse {
	return ScreeningResponse{
		ID:        screening.ID.String(),
		MovieID:   screening.MovieID.String(),
		HallID:    screening.HallID.String(),
		StartTime: screening.StartTime,
		EndTime:   screening.EndTime,
		Status:    string(screening.Status),
	}
}

// SeatCell is one grid position in the seat map for a screening. A nil cell
// marks a gap in the hall layout. Row and Column are zero-based; the stored
// seat positions are 1-based.
type SeatCell struct {
	SeatID     string  `json:"seat_id"`
	Row        int     `json:"row"`
	Column     int     `json:"column"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
	IsReserved bool    `json:"is_reserved"`
}

type SeatGridResponse struct {
	ScreeningID string        `json:"screening_id"`
	Grid        [][]*SeatCell `json:"grid"`
}
