package worker

import (
	"context"
	"sync"
	"time"

	"cinema-reservation/internal/data/repository"

	"go.uber.org/zap"
)

// Reconciler periodically sweeps stale state: pending reservations whose
// hold has lapsed are cancelled and active screenings past their end time
// are finished. Both sweeps are idempotent, so a missed or repeated run is
// harmless.
type Reconciler struct {
	repo     *repository.Repository
	interval time.Duration
	log      *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func NewReconciler(repo *repository.Repository, interval time.Duration, log *zap.Logger) *Reconciler {
	return &Reconciler{
		repo:     repo,
		interval: interval,
		log:      log.With(zap.String("worker", "reconciler")),
	}
}

// Start launches the background loop. Calling Start on a running reconciler
// is a no-op. The first sweep runs immediately.
func (r *Reconciler) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		r.log.Warn("Reconciler already running")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	r.running = true

	r.log.Info("Reconciler started", zap.Duration("interval", r.interval))

	go r.loop(ctx)
}

// Stop halts the loop and waits for an in-flight sweep to finish. Safe to
// call when the reconciler is not running.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	cancel := r.cancel
	done := r.done
	r.running = false
	r.mu.Unlock()

	cancel()
	<-done

	r.log.Info("Reconciler stopped")
}

func (r *Reconciler) loop(ctx context.Context) {
	defer close(r.done)

	// Single timer keeps sweeps from overlapping: the next one is only
	// scheduled after the current one returns.
	r.Sweep(ctx)

	timer := time.NewTimer(r.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			r.Sweep(ctx)
			timer.Reset(r.interval)
		}
	}
}

// Sweep runs both reconciliation passes once. Each pass logs its own
// failure and does not block the other.
func (r *Reconciler) Sweep(ctx context.Context) {
	now := time.Now()

	cancelled, err := r.repo.Reservation.CancelExpired(ctx, now)
	if err != nil {
		r.log.Error("Failed to cancel expired reservations", zap.Error(err))
	} else if cancelled > 0 {
		r.log.Info("Cancelled expired reservations", zap.Int64("count", cancelled))
	}

	finished, err := r.repo.Screening.FinishEnded(ctx, now)
	if err != nil {
		r.log.Error("Failed to finish ended screenings", zap.Error(err))
	} else if finished > 0 {
		r.log.Info("Finished ended screenings", zap.Int64("count", finished))
	}
}
