package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/gymtab/internal/gym/store"
)

// DefaultQRRetention keeps expired tokens around long enough to report
// them as expired rather than unknown.
const DefaultQRRetention = 24 * time.Hour

// HousekeepingService periodically purges stale QR tokens and marks members
// whose paid period has passed as defeated.
type HousekeepingService struct {
	Store     store.Store
	Tokens    store.QRTokens
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration
	Metrics   *Metrics
	Clock

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to one hour.
func NewHousekeepingService(s store.Store, tokens store.QRTokens, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if tokens == nil {
		tokens = s.QRTokens()
	}
	return &HousekeepingService{
		Store:     s,
		Tokens:    tokens,
		Logger:    logger,
		Interval:  interval,
		Retention: DefaultQRRetention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// CleanupResult counts what one pass changed.
type CleanupResult struct {
	TokensPurged  int64
	MembersLapsed int64
}

// Cleanup runs one pass. Each step is independent; a failure in one does
// not stop the other.
func (s *HousekeepingService) Cleanup(ctx context.Context) CleanupResult {
	var res CleanupResult
	now := s.now()

	purged, err := s.Tokens.DeleteExpired(ctx, now.Add(-s.Retention))
	if err != nil {
		s.Logger.Error("failed to purge expired qr tokens", "error", err)
	} else {
		res.TokensPurged = purged
	}

	lapsed, err := s.Store.Members().MarkLapsed(ctx, s.today(), now)
	if err != nil {
		s.Logger.Error("failed to mark lapsed members", "error", err)
	} else {
		res.MembersLapsed = lapsed
		s.Metrics.markedLapsed(lapsed)
	}

	s.Logger.Info("housekeeping cleanup completed",
		"tokens_purged", res.TokensPurged,
		"members_lapsed", res.MembersLapsed,
	)
	return res
}
