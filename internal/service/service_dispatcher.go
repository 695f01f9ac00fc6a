package service

import (
	"context"

	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/models"
)

type loggingDispatcher struct {
	logger *logger.Logger
}

// NewLoggingDispatcher returns a [Dispatcher] that only records the incoming
// command. It is the default until the profile, storage and subscription
// jobs are plugged in.
func NewLoggingDispatcher(logger *logger.Logger) Dispatcher {
	return &loggingDispatcher{logger: logger}
}

func (d *loggingDispatcher) Dispatch(ctx context.Context, fetchType models.FetchType, envelope models.Envelope) error {
	logger.FromContext(ctx).Info().
		Str("func", "loggingDispatcher.Dispatch").
		Str("fetch_type", fetchType.String()).
		Int64("seq", envelope.Seq).
		Uint32("source_device", envelope.SourceDevice).
		Uint64("timestamp", envelope.Timestamp).
		Msg("fetch-latest command received")

	return nil
}
