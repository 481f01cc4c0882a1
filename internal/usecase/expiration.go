package usecase

import (
	"fmt"
	"time"

	"cinema-reservation/internal/data/repository"
)

const (
	// admissionWindow bars new reservations once the screening is about to
	// start.
	admissionWindow = 30 * time.Minute

	// holdDuration is both the gap before start at which pending holds
	// lapse and the minimum time every accepted hold is kept.
	holdDuration = 15 * time.Minute
)

// CalculateExpirationTime returns when a hold created now for a screening
// starting at screeningStart lapses. Reservations inside the admission
// window are rejected with ErrTooCloseToStart; otherwise the hold runs until
// 15 minutes before start, never less than 15 minutes from now.
func CalculateExpirationTime(screeningStart, now time.Time) (time.Time, error) {
	timeUntilScreening := screeningStart.Sub(now)

	if timeUntilScreening < admissionWindow {
		return time.Time{}, fmt.Errorf("screening starts in %s: %w",
			timeUntilScreening.Round(time.Second), repository.ErrTooCloseToStart)
	}

	expiration := screeningStart.Add(-holdDuration)
	if !expiration.After(now) {
		return now.Add(holdDuration), nil
	}

	return expiration, nil
}
