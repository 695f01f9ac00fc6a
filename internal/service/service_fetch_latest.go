package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-link-sync/internal/config"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/metrics"
	"github.com/MKhiriev/go-link-sync/internal/store"
	"github.com/MKhiriev/go-link-sync/internal/syncmsg"
	"github.com/MKhiriev/go-link-sync/models"
	"golang.org/x/time/rate"
)

type fetchLatestService struct {
	snapshots store.SnapshotReader
	outbox    store.OutboxRepository

	// limiters is nil when throttling is disabled.
	limiters map[models.FetchType]*rate.Limiter
	mu       sync.Mutex
	now      func() time.Time

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewFetchLatestService returns a [FetchLatestService] that allows at most
// one request per fetch type every cfg.MinInterval.
func NewFetchLatestService(snapshots store.SnapshotReader, outbox store.OutboxRepository, cfg config.Fetch, metrics *metrics.Metrics, logger *logger.Logger) FetchLatestService {
	s := &fetchLatestService{
		snapshots: snapshots,
		outbox:    outbox,
		now:       time.Now,
		metrics:   metrics,
		logger:    logger,
	}

	if cfg.MinInterval > 0 {
		s.limiters = make(map[models.FetchType]*rate.Limiter, len(models.FetchTypes()))
		for _, fetchType := range models.FetchTypes() {
			s.limiters[fetchType] = rate.NewLimiter(rate.Every(cfg.MinInterval), 1)
		}
	}

	return s
}

func (s *fetchLatestService) RequestFetch(ctx context.Context, fetchType models.FetchType) (models.OutboxEntry, error) {
	log := logger.FromContext(ctx)

	if !fetchType.IsKnown() {
		log.Error().Str("func", "fetchLatestService.RequestFetch").Int32("fetch_type", int32(fetchType)).Msg("refusing to request an unknown fetch type")
		return models.OutboxEntry{}, syncmsg.ErrUnknownFetchType
	}

	// the throttle slot is taken only after the entry is queued
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter := s.limiters[fetchType]
	now := s.now()
	if limiter != nil && limiter.TokensAt(now) < 1 {
		log.Debug().Str("func", "fetchLatestService.RequestFetch").Str("fetch_type", fetchType.String()).Msg("fetch request throttled")
		return models.OutboxEntry{}, fmt.Errorf("%w: %s", ErrFetchThrottled, fetchType)
	}

	message, err := s.buildMessage(ctx, fetchType)
	if err != nil {
		log.Err(err).Str("func", "fetchLatestService.RequestFetch").Str("fetch_type", fetchType.String()).Msg("error building fetch-latest message")
		return models.OutboxEntry{}, err
	}

	content, err := message.MarshalContent()
	if err != nil {
		return models.OutboxEntry{}, fmt.Errorf("error encoding fetch-latest message: %w", err)
	}

	entry, err := s.outbox.Enqueue(ctx, models.OutboxEntry{
		ThreadID:  message.Destination().ThreadID,
		FetchType: message.FetchType(),
		Timestamp: message.Timestamp(),
		Content:   content,
	})
	if err != nil {
		log.Err(err).Str("func", "fetchLatestService.RequestFetch").Str("fetch_type", fetchType.String()).Msg("error queueing fetch-latest message")
		return models.OutboxEntry{}, fmt.Errorf("error queueing fetch-latest message: %w", err)
	}

	if limiter != nil {
		limiter.AllowN(now, 1)
	}
	s.metrics.FetchRequestSent(fetchType)

	log.Info().
		Str("func", "fetchLatestService.RequestFetch").
		Str("fetch_type", fetchType.String()).
		Str("outbox_id", entry.ID).
		Uint64("timestamp", entry.Timestamp).
		Msg("fetch-latest request queued")

	return entry, nil
}

func (s *fetchLatestService) RequestAll(ctx context.Context) ([]models.OutboxEntry, error) {
	var (
		entries []models.OutboxEntry
		errs    []error
	)

	for _, fetchType := range models.FetchTypes() {
		entry, err := s.RequestFetch(ctx, fetchType)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", fetchType, err))
			continue
		}
		entries = append(entries, entry)
	}

	return entries, errors.Join(errs...)
}

// buildMessage resolves the destination inside one read snapshot and builds
// the message from it.
func (s *fetchLatestService) buildMessage(ctx context.Context, fetchType models.FetchType) (syncmsg.FetchLatestMessage, error) {
	var message syncmsg.FetchLatestMessage

	err := s.snapshots.Read(ctx, func(tx store.Snapshot) error {
		account, err := tx.LocalAccount(ctx)
		if errors.Is(err, store.ErrAccountNotRegistered) {
			return ErrAccountNotRegistered
		}
		if err != nil {
			return fmt.Errorf("error reading local account: %w", err)
		}
		if !account.IsRegistered() {
			return fmt.Errorf("%w: state is %s", ErrAccountNotRegistered, account.State)
		}

		thread, err := tx.LocalThread(ctx)
		if err != nil {
			return fmt.Errorf("error resolving note-to-self thread: %w", err)
		}

		message = syncmsg.NewFetchLatestMessage(thread, fetchType, tx)
		return nil
	})
	if err != nil {
		return syncmsg.FetchLatestMessage{}, err
	}

	return message, nil
}
