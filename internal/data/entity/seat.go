package entity

import "github.com/google/uuid"

// Seat positions are 1-based; unique per (hall, row, column).
type Seat struct {
	BaseSimple
	HallID     uuid.UUID `db:"hall_id"`
	SeatTypeID uuid.UUID `db:"seat_type_id"`
	Row        int       `db:"seat_row"`
	Column     int       `db:"seat_column"`
}
