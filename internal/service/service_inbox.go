package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-link-sync/internal/adapter"
	"github.com/MKhiriev/go-link-sync/internal/config"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/metrics"
	"github.com/MKhiriev/go-link-sync/internal/syncmsg"
	"github.com/MKhiriev/go-link-sync/models"
)

type inboxService struct {
	relay      adapter.RelayAdapter
	dispatcher Dispatcher
	pullLimit  int

	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewInboxService(relay adapter.RelayAdapter, dispatcher Dispatcher, cfg config.Workers, metrics *metrics.Metrics, logger *logger.Logger) InboxService {
	return &inboxService{
		relay:      relay,
		dispatcher: dispatcher,
		pullLimit:  cfg.PullLimit,
		metrics:    metrics,
		logger:     logger,
	}
}

// PullAndDispatch acknowledges every envelope up to the last one handled.
// When the dispatcher fails the failing envelope stays unacknowledged and is
// pulled again on the next call.
func (s *inboxService) PullAndDispatch(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	envelopes, err := s.relay.Pull(ctx, s.pullLimit)
	if err != nil {
		return 0, fmt.Errorf("error pulling envelopes: %w", err)
	}

	var (
		lastSeq     int64
		processed   int
		dispatchErr error
	)
	for _, envelope := range envelopes {
		if err := s.handle(ctx, envelope); err != nil {
			dispatchErr = fmt.Errorf("error dispatching envelope %d: %w", envelope.Seq, err)
			break
		}
		lastSeq = envelope.Seq
		processed++
	}

	if processed > 0 {
		if err := s.relay.Ack(ctx, lastSeq); err != nil {
			log.Err(err).Str("func", "inboxService.PullAndDispatch").Int64("seq", lastSeq).Msg("error acknowledging envelopes")
			return processed, fmt.Errorf("error acknowledging envelopes up to %d: %w", lastSeq, err)
		}
	}

	return processed, dispatchErr
}

func (s *inboxService) handle(ctx context.Context, envelope models.Envelope) error {
	log := logger.FromContext(ctx).With().
		Str("func", "inboxService.handle").
		Int64("seq", envelope.Seq).
		Uint32("source_device", envelope.SourceDevice).
		Logger()

	decoded, err := syncmsg.UnmarshalContent(envelope.Content)
	if err != nil {
		s.metrics.MalformedContent()
		log.Warn().Err(err).Msg("dropping envelope with malformed content")
		return nil
	}

	if decoded.FetchLatest == nil {
		log.Debug().Msg("envelope carries no fetch-latest command")
		return nil
	}

	fetchType := decoded.FetchLatest.Type
	s.metrics.FetchRequestReceived(fetchType)

	if !fetchType.IsKnown() {
		log.Info().Msg("unknown fetch type received, nothing actionable")
		return nil
	}

	return s.dispatcher.Dispatch(ctx, fetchType, envelope)
}
