package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "UNPAID"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "CASH"
	PaymentMethodCard PaymentMethod = "CARD"
)

// Reservation holds seats for a screening until ExpiresAt. PENDING and
// CONFIRMED reservations count as live; CANCELLED is terminal and releases
// the seats.
type Reservation struct {
	Base
	UserID        uuid.UUID         `db:"user_id"`
	ScreeningID   uuid.UUID         `db:"screening_id"`
	TotalPrice    float64           `db:"total_price"`
	PaymentMethod PaymentMethod     `db:"payment_method"`
	Status        ReservationStatus `db:"status"`
	PaymentStatus PaymentStatus     `db:"payment_status"`
	ExpiresAt     time.Time         `db:"expires_at"`
}

// IsLive reports whether the reservation still claims its seats.
func (r *Reservation) IsLive() bool {
	return r.Status != ReservationStatusCancelled
}
