package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reservationFixture struct {
	store       *memStore
	repo        *repository.Repository
	service     ReservationService
	hall        *entity.Hall
	screening   *entity.Screening
	seats       []*entity.Seat
	standardTyp *entity.SeatType
}

// newReservationFixture seeds a 2x2 hall of STANDARD seats and an active
// screening two hours out.
func newReservationFixture(t *testing.T) *reservationFixture {
	t.Helper()

	store := newMemStore()
	repo := store.repository()
	ctx := context.Background()

	standard := &entity.SeatType{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       "STANDARD",
		Price:      10.00,
	}
	require.NoError(t, repo.SeatType.Create(ctx, standard))

	hall := &entity.Hall{
		Base:    entity.Base{ID: uuid.New()},
		Name:    "Hall 1",
		Rows:    2,
		Columns: 2,
	}
	require.NoError(t, repo.Hall.Create(ctx, hall))

	var seats []*entity.Seat
	for row := 1; row <= 2; row++ {
		for col := 1; col <= 2; col++ {
			seats = append(seats, &entity.Seat{
				BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
				HallID:     hall.ID,
				SeatTypeID: standard.ID,
				Row:        row,
				Column:     col,
			})
		}
	}
	require.NoError(t, repo.Seat.CreateBatch(ctx, seats))

	start := time.Now().Add(2 * time.Hour)
	screening := &entity.Screening{
		Base:      entity.Base{ID: uuid.New()},
		MovieID:   uuid.New(),
		HallID:    hall.ID,
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Status:    entity.ScreeningStatusActive,
	}
	require.NoError(t, repo.Screening.CreateIfAvailable(ctx, screening))

	return &reservationFixture{
		store:       store,
		repo:        repo,
		service:     NewReservationService(repo, zap.NewNop()),
		hall:        hall,
		screening:   screening,
		seats:       seats,
		standardTyp: standard,
	}
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("holds seats and prices them by tier", func(t *testing.T) {
		f := newReservationFixture(t)
		userID := uuid.New().String()

		resp, err := f.service.CreateReservation(ctx, userID, &request.CreateReservationRequest{
			ScreeningID:   f.screening.ID.String(),
			SeatIDs:       []string{f.seats[0].ID.String(), f.seats[1].ID.String()},
			PaymentMethod: "CARD",
		})

		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "UNPAID", resp.PaymentStatus)
		assert.Equal(t, 20.00, resp.TotalPrice)
		assert.Len(t, resp.SeatIDs, 2)
		assert.WithinDuration(t, f.screening.StartTime.Add(-15*time.Minute), resp.ExpiresAt, time.Second)
	})

	t.Run("rejects a seat already held by a live reservation", func(t *testing.T) {
		f := newReservationFixture(t)
		seat := f.seats[0].ID.String()

		_, err := f.service.CreateReservation(ctx, uuid.New().String(), &request.CreateReservationRequest{
			ScreeningID:   f.screening.ID.String(),
			SeatIDs:       []string{seat},
			PaymentMethod: "CARD",
		})
		require.NoError(t, err)

		_, err = f.service.CreateReservation(ctx, uuid.New().String(), &request.CreateReservationRequest{
			ScreeningID:   f.screening.ID.String(),
			SeatIDs:       []string{seat},
			PaymentMethod: "CASH",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrSeatConflict))
	})

	t.Run("exactly one of many concurrent holds on the same seat wins", func(t *testing.T) {
		f := newReservationFixture(t)
		seat := f.seats[0].ID.String()

		const attempts = 10
		var wg sync.WaitGroup
		errs := make([]error, attempts)

		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = f.service.CreateReservation(ctx, uuid.New().String(), &request.CreateReservationRequest{
					ScreeningID:   f.screening.ID.String(),
					SeatIDs:       []string{seat},
					PaymentMethod: "CARD",
				})
			}(i)
		}
		wg.Wait()

		var wins, conflicts int
		for _, err := range errs {
			switch {
			case err == nil:
				wins++
			case errors.Is(err, repository.ErrSeatConflict):
				conflicts++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, wins)
		assert.Equal(t, attempts-1, conflicts)
	})

	t.Run("rejects reservations inside the admission window", func(t *testing.T) {
		f := newReservationFixture(t)
		f.screening.StartTime = time.Now().Add(20 * time.Minute)
		f.screening.EndTime = f.screening.StartTime.Add(2 * time.Hour)

		_, err := f.service.CreateReservation(ctx, uuid.New().String(), &request.CreateReservationRequest{
			ScreeningID:   f.screening.ID.String(),
			SeatIDs:       []string{f.seats[0].ID.String()},
			PaymentMethod: "CARD",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrTooCloseToStart))
	})

	t.Run("rejects duplicate seat ids", func(t *testing.T) {
		f := newReservationFixture(t)
		seat := f.seats[0].ID.String()

		_, err := f.service.CreateReservation(ctx, uuid.New().String(), &request.CreateReservationRequest{
			ScreeningID:   f.screening.ID.String(),
			SeatIDs:       []string{seat, seat},
			PaymentMethod: "CARD",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrValidation))
	})

	t.Run("rejects seats from another hall", func(t *testing.T) {
		f := newReservationFixture(t)

		otherHall := &entity.Hall{Base: entity.Base{ID: uuid.New()}, Name: "Hall 2", Rows: 1, Columns: 1}
		require.NoError(t, f.repo.Hall.Create(ctx, otherHall))
		foreignSeat := &entity.Seat{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			HallID:     otherHall.ID,
			SeatTypeID: f.standardTyp.ID,
			Row:        1,
			Column:     1,
		}
		require.NoError(t, f.repo.Seat.CreateBatch(ctx, []*entity.Seat{foreignSeat}))

		_, err := f.service.CreateReservation(ctx, uuid.New().String(), &request.CreateReservationRequest{
			ScreeningID:   f.screening.ID.String(),
			SeatIDs:       []string{foreignSeat.ID.String()},
			PaymentMethod: "CARD",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrValidation))
	})

	t.Run("rejects unknown seats", func(t *testing.T) {
		f := newReservationFixture(t)

		_, err := f.service.CreateReservation(ctx, uuid.New().String(), &request.CreateReservationRequest{
			ScreeningID:   f.screening.ID.String(),
			SeatIDs:       []string{uuid.New().String()},
			PaymentMethod: "CARD",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("releases seats of a cancelled hold", func(t *testing.T) {
		f := newReservationFixture(t)
		seat := f.seats[0].ID.String()

		first, err := f.service.CreateReservation(ctx, uuid.New().String(), &request.CreateReservationRequest{
			ScreeningID:   f.screening.ID.String(),
			SeatIDs:       []string{seat},
			PaymentMethod: "CARD",
		})
		require.NoError(t, err)

		firstID := uuid.MustParse(first.ID)
		require.NoError(t, f.repo.Reservation.UpdateStatus(ctx,
			firstID, entity.ReservationStatusCancelled, entity.PaymentStatusUnpaid))

		_, err = f.service.CreateReservation(ctx, uuid.New().String(), &request.CreateReservationRequest{
			ScreeningID:   f.screening.ID.String(),
			SeatIDs:       []string{seat},
			PaymentMethod: "CARD",
		})
		assert.NoError(t, err)
	})
}

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, f *reservationFixture, userID string, method string) string {
		t.Helper()
		resp, err := f.service.CreateReservation(ctx, userID, &request.CreateReservationRequest{
			ScreeningID:   f.screening.ID.String(),
			SeatIDs:       []string{f.seats[0].ID.String()},
			PaymentMethod: method,
		})
		require.NoError(t, err)
		return resp.ID
	}

	t.Run("card holder confirms own pending reservation", func(t *testing.T) {
		f := newReservationFixture(t)
		userID := uuid.New().String()
		resID := create(t, f, userID, "CARD")

		resp, err := f.service.ConfirmPayment(ctx, userID, entity.RoleCustomer, &request.ConfirmPaymentRequest{
			ReservationID: resID,
			PaymentMethod: "CARD",
		})

		require.NoError(t, err)
		assert.Equal(t, "CONFIRMED", resp.Status)
		assert.Equal(t, "PAID", resp.PaymentStatus)
	})

	t.Run("card confirm of another user's reservation is not found", func(t *testing.T) {
		f := newReservationFixture(t)
		resID := create(t, f, uuid.New().String(), "CARD")

		_, err := f.service.ConfirmPayment(ctx, uuid.New().String(), entity.RoleCustomer, &request.ConfirmPaymentRequest{
			ReservationID: resID,
			PaymentMethod: "CARD",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("cash confirm requires an admin", func(t *testing.T) {
		f := newReservationFixture(t)
		userID := uuid.New().String()
		resID := create(t, f, userID, "CASH")

		_, err := f.service.ConfirmPayment(ctx, userID, entity.RoleCustomer, &request.ConfirmPaymentRequest{
			ReservationID: resID,
			PaymentMethod: "CASH",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrForbidden))
	})

	t.Run("admin confirms a cash reservation for any user", func(t *testing.T) {
		f := newReservationFixture(t)
		resID := create(t, f, uuid.New().String(), "CASH")

		resp, err := f.service.ConfirmPayment(ctx, uuid.New().String(), entity.RoleAdmin, &request.ConfirmPaymentRequest{
			ReservationID: resID,
			PaymentMethod: "CASH",
		})

		require.NoError(t, err)
		assert.Equal(t, "CONFIRMED", resp.Status)
	})

	t.Run("paying twice fails and leaves the reservation untouched", func(t *testing.T) {
		f := newReservationFixture(t)
		resID := create(t, f, uuid.New().String(), "CASH")
		adminID := uuid.New().String()

		_, err := f.service.ConfirmPayment(ctx, adminID, entity.RoleAdmin, &request.ConfirmPaymentRequest{
			ReservationID: resID,
			PaymentMethod: "CASH",
		})
		require.NoError(t, err)

		_, err = f.service.ConfirmPayment(ctx, adminID, entity.RoleAdmin, &request.ConfirmPaymentRequest{
			ReservationID: resID,
			PaymentMethod: "CASH",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrAlreadyPaid))

		stored, err := f.repo.Reservation.FindByID(ctx, uuid.MustParse(resID))
		require.NoError(t, err)
		assert.Equal(t, entity.ReservationStatusConfirmed, stored.Status)
		assert.Equal(t, entity.PaymentStatusPaid, stored.PaymentStatus)
	})
}

func TestGetSeatGrid(t *testing.T) {
	ctx := context.Background()

	t.Run("projects the hall with zero-based coordinates", func(t *testing.T) {
		f := newReservationFixture(t)

		_, err := f.service.CreateReservation(ctx, uuid.New().String(), &request.CreateReservationRequest{
			ScreeningID:   f.screening.ID.String(),
			SeatIDs:       []string{f.seats[0].ID.String()},
			PaymentMethod: "CARD",
		})
		require.NoError(t, err)

		grid, err := f.service.GetSeatGrid(ctx, f.screening.ID.String())

		require.NoError(t, err)
		require.Len(t, grid.Grid, 2)
		require.Len(t, grid.Grid[0], 2)

		// seats[0] is stored row 1, column 1 and lands at grid[0][0].
		reserved := grid.Grid[0][0]
		require.NotNil(t, reserved)
		assert.True(t, reserved.IsReserved)
		assert.Equal(t, 0, reserved.Row)
		assert.Equal(t, 0, reserved.Column)
		assert.Equal(t, "STANDARD", reserved.Type)
		assert.Equal(t, 10.00, reserved.Price)

		free := grid.Grid[1][1]
		require.NotNil(t, free)
		assert.False(t, free.IsReserved)
	})

	t.Run("unknown screening is not found", func(t *testing.T) {
		f := newReservationFixture(t)

		_, err := f.service.GetSeatGrid(ctx, uuid.New().String())

		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})
}

func TestGetUserReservations(t *testing.T) {
	ctx := context.Background()

	t.Run("pages a user's reservations", func(t *testing.T) {
		f := newReservationFixture(t)
		userID := uuid.New().String()

		for i := 0; i < 3; i++ {
			_, err := f.service.CreateReservation(ctx, userID, &request.CreateReservationRequest{
				ScreeningID:   f.screening.ID.String(),
				SeatIDs:       []string{f.seats[i].ID.String()},
				PaymentMethod: "CARD",
			})
			require.NoError(t, err)
		}

		page, err := f.service.GetUserReservations(ctx, userID, &request.PaginatedRequest{Page: 1, PerPage: 2})

		require.NoError(t, err)
		assert.Len(t, page.Data, 2)
		assert.Equal(t, int64(3), page.Pagination.Total)
		assert.Equal(t, 2, page.Pagination.TotalPages)
	})
}
