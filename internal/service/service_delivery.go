package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-link-sync/internal/adapter"
	"github.com/MKhiriev/go-link-sync/internal/config"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/metrics"
	"github.com/MKhiriev/go-link-sync/internal/store"
	"github.com/MKhiriev/go-link-sync/models"
)

type deliveryService struct {
	outbox store.OutboxRepository
	relay  adapter.RelayAdapter

	principal   models.Principal
	batchSize   int
	maxAttempts int

	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewDeliveryService(outbox store.OutboxRepository, relay adapter.RelayAdapter, principal models.Principal, cfg config.Workers, metrics *metrics.Metrics, logger *logger.Logger) DeliveryService {
	return &deliveryService{
		outbox:      outbox,
		relay:       relay,
		principal:   principal,
		batchSize:   cfg.DeliveryBatchSize,
		maxAttempts: cfg.MaxDeliveryAttempts,
		metrics:     metrics,
		logger:      logger,
	}
}

// DeliverPending sends entries in outbox order and stops at the first
// failure, so a later entry never overtakes an earlier one. An entry that
// exhausted its attempts is no longer returned by the outbox and stops
// blocking the queue.
func (s *deliveryService) DeliverPending(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	entries, err := s.outbox.Pending(ctx, s.batchSize, s.maxAttempts)
	if err != nil {
		return 0, fmt.Errorf("error reading pending outbox entries: %w", err)
	}

	delivered := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return delivered, err
		}

		result, sendErr := s.send(ctx, entry)
		s.metrics.OutboxDelivery(result)

		if sendErr != nil {
			log.Err(sendErr).
				Str("func", "deliveryService.DeliverPending").
				Str("outbox_id", entry.ID).
				Int("attempts", entry.Attempts+1).
				Msg("outbox entry delivery failed")

			if err := s.outbox.MarkFailed(ctx, entry.ID, sendErr.Error()); err != nil {
				return delivered, fmt.Errorf("error marking outbox entry %s as failed: %w", entry.ID, err)
			}
			return delivered, fmt.Errorf("error delivering outbox entry %s: %w", entry.ID, sendErr)
		}

		if err := s.outbox.MarkSent(ctx, entry.ID); err != nil {
			return delivered, fmt.Errorf("error marking outbox entry %s as sent: %w", entry.ID, err)
		}
		delivered++

		log.Debug().
			Str("func", "deliveryService.DeliverPending").
			Str("outbox_id", entry.ID).
			Str("fetch_type", entry.FetchType.String()).
			Str("result", result).
			Msg("outbox entry delivered")
	}

	return delivered, nil
}

func (s *deliveryService) send(ctx context.Context, entry models.OutboxEntry) (string, error) {
	_, err := s.relay.Send(ctx, models.Envelope{
		ID:           entry.ID,
		AccountACI:   s.principal.ACI,
		SourceDevice: s.principal.DeviceID,
		Timestamp:    entry.Timestamp,
		Content:      entry.Content,
	})

	switch {
	case err == nil:
		return metrics.DeliverySent, nil
	case errors.Is(err, adapter.ErrConflict):
		// the relay already holds an envelope with this id
		return metrics.DeliveryDuplicate, nil
	default:
		return metrics.DeliveryFailed, err
	}
}
