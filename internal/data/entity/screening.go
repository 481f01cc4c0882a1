package entity

import (
	"time"

	"github.com/google/uuid"
)

type ScreeningStatus string

const (
	ScreeningStatusActive    ScreeningStatus = "ACTIVE"
	ScreeningStatusCancelled ScreeningStatus = "CANCELLED"
	ScreeningStatusFinished  ScreeningStatus = "FINISHED"
)

// Screening occupies the half-open interval [StartTime, EndTime) in its hall.
type Screening struct {
	Base
	MovieID   uuid.UUID       `db:"movie_id"`
	HallID    uuid.UUID       `db:"hall_id"`
	StartTime time.Time       `db:"start_time"`
	EndTime   time.Time       `db:"end_time"`
	Status    ScreeningStatus `db:"status"`
}
