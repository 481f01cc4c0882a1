package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type ReservationResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	ScreeningID   string    `json:"screening_id"`
	SeatIDs       []string  `json:"seat_ids"`
	TotalPrice    float64   `json:"total_price"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	ExpiresAt     time.Time `json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
}

func ReservationToResponse(res *entity.Reservation, seatIDs []string) ReservationResponse {
	return ReservationResponse{
		ID:            res.ID.String(),
		UserID:        res.UserID.String(),
		ScreeningID:   res.ScreeningID.String(),
		SeatIDs:       seatIDs,
		TotalPrice:    res.TotalPrice,
		PaymentMethod: string(res.PaymentMethod),
		Status:        string(res.Status),
		PaymentStatus: string(res.PaymentStatus),
		ExpiresAt:     res.ExpiresAt,
		CreatedAt:     res.CreatedAt,
	}
}
