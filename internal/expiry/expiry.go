package expiry

import (
	"context"
	"log"
	"time"

	"dormitory-backend/config"
	"dormitory-backend/internal/notification"
	"dormitory-backend/internal/store"
)

// Service periodically ends contracts whose end date has passed and
// pushes a room-freed notification for each one.
type Service struct {
	cfg        *config.Config
	store      store.Store
	workerPool *notification.WorkerPool
}

// NewService creates a new expiry sweeper backed by the given store
// and notification pool.
func NewService(cfg *config.Config, s store.Store, workerPool *notification.WorkerPool) *Service {
	return &Service{
		cfg:        cfg,
		store:      s,
		workerPool: workerPool,
	}
}

// Run starts the sweep loop. It returns when the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Expiry.Enabled {
		log.Println("Contract expiry sweeper is disabled. Not starting.")
		return
	}
	log.Println("Starting contract expiry sweeper...")

	s.SweepOnce(ctx)

	timer := time.NewTimer(s.cfg.Expiry.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Contract expiry sweeper shutting down.")
			return
		case <-timer.C:
			s.SweepOnce(ctx)
			timer.Reset(s.cfg.Expiry.Interval)
		}
	}
}

// SweepOnce runs a single sweep over the active contracts.
func (s *Service) SweepOnce(ctx context.Context) {
	now := time.Now().UTC()

	endedIDs, err := s.store.ExpireContracts(ctx, now)
	if err != nil {
		log.Printf("Error expiring contracts: %v", err)
		return
	}
	if len(endedIDs) == 0 {
		return
	}

	log.Printf("Expiry sweep ended %d contracts", len(endedIDs))
	for _, contractID := range endedIDs {
		s.workerPool.Dispatch(contractID)
	}
}
