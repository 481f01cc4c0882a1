package entity

import "github.com/google/uuid"

// ReservedSeat is created atomically with its reservation and never
// mutated afterwards.
type ReservedSeat struct {
	BaseSimple
	ReservationID uuid.UUID `db:"reservation_id"`
	SeatID        uuid.UUID `db:"seat_id"`
}
