package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"

	"github.com/google/uuid"
)

// memStore backs the fake repositories with a single mutex so writes
// serialize the same way the database transactions do.
type memStore struct {
	mu sync.Mutex

	users         map[uuid.UUID]*entity.User
	sessions      map[uuid.UUID]*entity.Session
	movies        map[uuid.UUID]*entity.Movie
	halls         map[uuid.UUID]*entity.Hall
	seatTypes     map[uuid.UUID]*entity.SeatType
	seats         map[uuid.UUID]*entity.Seat
	screenings    map[uuid.UUID]*entity.Screening
	reservations  map[uuid.UUID]*entity.Reservation
	reservedSeats []*entity.ReservedSeat
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[uuid.UUID]*entity.User),
		sessions:     make(map[uuid.UUID]*entity.Session),
		movies:       make(map[uuid.UUID]*entity.Movie),
		halls:        make(map[uuid.UUID]*entity.Hall),
		seatTypes:    make(map[uuid.UUID]*entity.SeatType),
		seats:        make(map[uuid.UUID]*entity.Seat),
		screenings:   make(map[uuid.UUID]*entity.Screening),
		reservations: make(map[uuid.UUID]*entity.Reservation),
	}
}

func (m *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:         &memUserRepo{m},
		Session:      &memSessionRepo{m},
		Movie:        &memMovieRepo{m},
		Hall:         &memHallRepo{m},
		SeatType:     &memSeatTypeRepo{m},
		Seat:         &memSeatRepo{m},
		Screening:    &memScreeningRepo{m},
		Reservation:  &memReservationRepo{m},
		ReservedSeat: &memReservedSeatRepo{m},
	}
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[user.ID] = user
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.users[id], nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

type memSessionRepo struct{ s *memStore }

func (r *memSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sessions[session.Token] = session
	return nil
}

func (r *memSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session := r.s.sessions[tokenUUID]
	if session == nil || session.RevokedAt != nil || !session.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (r *memSessionRepo) Revoke(_ context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return fmt.Errorf("invalid session token: %w", err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if session := r.s.sessions[tokenUUID]; session != nil && session.RevokedAt == nil {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

type memMovieRepo struct{ s *memStore }

func (r *memMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movies[movie.ID] = movie
	return nil
}

func (r *memMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.movies[id], nil
}

func (r *memMovieRepo) FindActive(_ context.Context) ([]*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var movies []*entity.Movie
	for _, movie := range r.s.movies {
		if movie.IsActive {
			movies = append(movies, movie)
		}
	}
	return movies, nil
}

func (r *memMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movies[movie.ID] = movie
	return nil
}

func (r *memMovieRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.movies, id)
	return nil
}

type memHallRepo struct{ s *memStore }

func (r *memHallRepo) Create(_ context.Context, hall *entity.Hall) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.halls[hall.ID] = hall
	return nil
}

func (r *memHallRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Hall, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.halls[id], nil
}

func (r *memHallRepo) FindAll(_ context.Context) ([]*entity.Hall, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var halls []*entity.Hall
	for _, hall := range r.s.halls {
		halls = append(halls, hall)
	}
	return halls, nil
}

type memSeatTypeRepo struct{ s *memStore }

func (r *memSeatTypeRepo) Create(_ context.Context, seatType *entity.SeatType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seatTypes[seatType.ID] = seatType
	return nil
}

func (r *memSeatTypeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.SeatType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.seatTypes[id], nil
}

func (r *memSeatTypeRepo) FindByName(_ context.Context, name string) (*entity.SeatType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, seatType := range r.s.seatTypes {
		if seatType.Name == name {
			return seatType, nil
		}
	}
	return nil, nil
}

func (r *memSeatTypeRepo) FindAll(_ context.Context) ([]*entity.SeatType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var seatTypes []*entity.SeatType
	for _, seatType := range r.s.seatTypes {
		seatTypes = append(seatTypes, seatType)
	}
	return seatTypes, nil
}

type memSeatRepo struct{ s *memStore }

func (r *memSeatRepo) CreateBatch(_ context.Context, seats []*entity.Seat) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, seat := range seats {
		r.s.seats[seat.ID] = seat
	}
	return nil
}

func (r *memSeatRepo) FindByHallID(_ context.Context, hallID uuid.UUID) ([]*entity.Seat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var seats []*entity.Seat
	for _, seat := range r.s.seats {
		if seat.HallID == hallID {
			seats = append(seats, seat)
		}
	}
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].Row != seats[j].Row {
			return seats[i].Row < seats[j].Row
		}
		return seats[i].Column < seats[j].Column
	})
	return seats, nil
}

func (r *memSeatRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var seats []*entity.Seat
	for _, id := range ids {
		if seat := r.s.seats[id]; seat != nil {
			seats = append(seats, seat)
		}
	}
	return seats, nil
}

func (r *memSeatRepo) UpdateSeatType(_ context.Context, seatID, seatTypeID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seat := r.s.seats[seatID]
	if seat == nil {
		return fmt.Errorf("update seat type: %w", repository.ErrNotFound)
	}
	seat.SeatTypeID = seatTypeID
	return nil
}

type memScreeningRepo struct{ s *memStore }

func (r *memScreeningRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Screening, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.screenings[id], nil
}

func (r *memScreeningRepo) FindAll(_ context.Context) ([]*entity.Screening, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var screenings []*entity.Screening
	for _, screening := range r.s.screenings {
		screenings = append(screenings, screening)
	}
	return screenings, nil
}

func (r *memScreeningRepo) FindUpcomingByMovieID(_ context.Context, movieID uuid.UUID, cutoff time.Time) ([]*entity.Screening, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var screenings []*entity.Screening
	for _, screening := range r.s.screenings {
		if screening.MovieID == movieID &&
			screening.Status == entity.ScreeningStatusActive &&
			!screening.StartTime.Before(cutoff) {
			screenings = append(screenings, screening)
		}
	}
	sort.Slice(screenings, func(i, j int) bool {
		return screenings[i].StartTime.Before(screenings[j].StartTime)
	})
	return screenings, nil
}

func (r *memScreeningRepo) hasOverlapLocked(hallID uuid.UUID, startTime, endTime time.Time, excludeID *uuid.UUID) bool {
	for _, other := range r.s.screenings {
		if other.HallID != hallID {
			continue
		}
		if excludeID != nil && other.ID == *excludeID {
			continue
		}
		// Half-open intervals: touching edges do not overlap.
		if other.EndTime.After(startTime) && other.StartTime.Before(endTime) {
			return true
		}
	}
	return false
}

func (r *memScreeningRepo) CheckHallAvailability(_ context.Context, hallID uuid.UUID, startTime, endTime time.Time, excludeID *uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return !r.hasOverlapLocked(hallID, startTime, endTime, excludeID), nil
}

func (r *memScreeningRepo) CreateIfAvailable(_ context.Context, screening *entity.Screening) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.hasOverlapLocked(screening.HallID, screening.StartTime, screening.EndTime, nil) {
		return fmt.Errorf("create screening: %w", repository.ErrSlotOverlap)
	}
	r.s.screenings[screening.ID] = screening
	return nil
}

func (r *memScreeningRepo) UpdateIfAvailable(_ context.Context, screening *entity.Screening) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.hasOverlapLocked(screening.HallID, screening.StartTime, screening.EndTime, &screening.ID) {
		return fmt.Errorf("update screening: %w", repository.ErrSlotOverlap)
	}
	r.s.screenings[screening.ID] = screening
	return nil
}

func (r *memScreeningRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.screenings, id)
	return nil
}

func (r *memScreeningRepo) HasReservations(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, reservation := range r.s.reservations {
		if reservation.ScreeningID == id && reservation.Status != entity.ReservationStatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (r *memScreeningRepo) FinishEnded(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, screening := range r.s.screenings {
		if screening.Status == entity.ScreeningStatusActive && screening.EndTime.Before(now) {
			screening.Status = entity.ScreeningStatusFinished
			count++
		}
	}
	return count, nil
}

type memReservationRepo struct{ s *memStore }

func (r *memReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.reservations[id], nil
}

func (r *memReservationRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var reservations []*entity.Reservation
	for _, reservation := range r.s.reservations {
		if reservation.UserID == userID {
			reservations = append(reservations, reservation)
		}
	}
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].CreatedAt.After(reservations[j].CreatedAt)
	})
	if offset >= len(reservations) {
		return nil, nil
	}
	reservations = reservations[offset:]
	if limit < len(reservations) {
		reservations = reservations[:limit]
	}
	return reservations, nil
}

func (r *memReservationRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, reservation := range r.s.reservations {
		if reservation.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memReservationRepo) FindAll(_ context.Context) ([]*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var reservations []*entity.Reservation
	for _, reservation := range r.s.reservations {
		reservations = append(reservations, reservation)
	}
	return reservations, nil
}

func (r *memReservationRepo) FindPending(_ context.Context, id, userID uuid.UUID) (*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reservation := r.s.reservations[id]
	if reservation == nil || reservation.UserID != userID || reservation.Status != entity.ReservationStatusPending {
		return nil, nil
	}
	return reservation, nil
}

func (r *memReservationRepo) CreateWithSeats(_ context.Context, reservation *entity.Reservation, seatIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	requested := make(map[uuid.UUID]bool, len(seatIDs))
	for _, seatID := range seatIDs {
		requested[seatID] = true
	}

	for _, rs := range r.s.reservedSeats {
		holder := r.s.reservations[rs.ReservationID]
		if holder == nil || holder.ScreeningID != reservation.ScreeningID {
			continue
		}
		if !holder.IsLive() {
			continue
		}
		if requested[rs.SeatID] {
			return fmt.Errorf("seat %s: %w", rs.SeatID.String(), repository.ErrSeatConflict)
		}
	}

	r.s.reservations[reservation.ID] = reservation
	for _, seatID := range seatIDs {
		r.s.reservedSeats = append(r.s.reservedSeats, &entity.ReservedSeat{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: reservation.CreatedAt,
			},
			ReservationID: reservation.ID,
			SeatID:        seatID,
		})
	}
	return nil
}

func (r *memReservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.ReservationStatus, paymentStatus entity.PaymentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reservation := r.s.reservations[id]
	if reservation == nil {
		return fmt.Errorf("reservation %s: %w", id.String(), repository.ErrNotFound)
	}
	reservation.Status = status
	reservation.PaymentStatus = paymentStatus
	return nil
}

func (r *memReservationRepo) CancelExpired(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, reservation := range r.s.reservations {
		if reservation.Status == entity.ReservationStatusPending && reservation.ExpiresAt.Before(now) {
			reservation.Status = entity.ReservationStatusCancelled
			count++
		}
	}
	return count, nil
}

type memReservedSeatRepo struct{ s *memStore }

func (r *memReservedSeatRepo) FindByReservationID(_ context.Context, reservationID uuid.UUID) ([]*entity.ReservedSeat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var reservedSeats []*entity.ReservedSeat
	for _, rs := range r.s.reservedSeats {
		if rs.ReservationID == reservationID {
			reservedSeats = append(reservedSeats, rs)
		}
	}
	return reservedSeats, nil
}

func (r *memReservedSeatRepo) FindReservedSeatIDsByScreening(_ context.Context, screeningID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var seatIDs []uuid.UUID
	for _, rs := range r.s.reservedSeats {
		holder := r.s.reservations[rs.ReservationID]
		if holder == nil || holder.ScreeningID != screeningID {
			continue
		}
		if holder.Status == entity.ReservationStatusCancelled {
			continue
		}
		if !seen[rs.SeatID] {
			seen[rs.SeatID] = true
			seatIDs = append(seatIDs, rs.SeatID)
		}
	}
	return seatIDs, nil
}
