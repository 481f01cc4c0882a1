// Package repository provides per-entity persistence access over Postgres.
// The sentinel errors below are shared across repositories and services so
// handlers can map failure modes to HTTP status codes with errors.Is instead
// of matching message strings.
package repository

import "errors"

// ErrNotFound is returned when a referenced movie, hall, screening,
// reservation or user does not exist. Handlers translate it to 404.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned on role or ownership mismatch, e.g. a customer
// confirming a cash payment. Handlers translate it to 403.
var ErrForbidden = errors.New("forbidden")

// ErrSeatConflict is returned when a reservation targets a seat already held
// by another live reservation for the same screening. The caller should
// retry with a different seat selection.
var ErrSeatConflict = errors.New("seat already reserved")

// ErrSlotOverlap is returned when a screening's time window overlaps another
// screening in the same hall.
var ErrSlotOverlap = errors.New("time slot overlaps with existing screenings")

// ErrAlreadyPaid is returned when confirming payment on a reservation whose
// payment status is already PAID. State is left untouched.
var ErrAlreadyPaid = errors.New("reservation already paid")

// ErrHasReservations blocks deleting a screening that still has
// non-cancelled reservations.
var ErrHasReservations = errors.New("screening has existing reservations")

// ErrTooCloseToStart rejects reservations made less than 30 minutes before
// the screening starts.
var ErrTooCloseToStart = errors.New("cannot make a reservation less than 30 minutes before the screening")

// ErrValidation covers malformed input that survived DTO validation, such as
// duplicated seat ids or a seat from another hall.
var ErrValidation = errors.New("validation failed")
