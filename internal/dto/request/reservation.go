package request

type CreateReservationRequest struct {
	ScreeningID   string   `json:"screening_id" validate:"required,uuid"`
	SeatIDs       []string `json:"seat_ids" validate:"required,min=1,dive,uuid"`
	PaymentMethod string   `json:"payment_method" validate:"required,oneof=CASH CARD"`
}

type ConfirmPaymentRequest struct {
	ReservationID string `json:"reservation_id" validate:"required,uuid"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=CASH CARD"`
}
