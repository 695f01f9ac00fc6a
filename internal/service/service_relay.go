package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/store"
	"github.com/MKhiriev/go-link-sync/internal/validators"
	"github.com/MKhiriev/go-link-sync/models"
)

const (
	defaultPullLimit = 100
	maxPullLimit     = 500
)

type relayService struct {
	repository store.RelayRepository
	validator  validators.Validator
	now        func() time.Time

	logger *logger.Logger
}

func NewRelayService(repository store.RelayRepository, validator validators.Validator, logger *logger.Logger) RelayService {
	return &relayService{
		repository: repository,
		validator:  validator,
		now:        time.Now,
		logger:     logger,
	}
}

// Accept stores an envelope sent by principal. The account and source
// device are taken from the principal; an envelope that names another
// account or device is rejected.
func (s *relayService) Accept(ctx context.Context, principal models.Principal, envelope models.Envelope) (models.SubmitResponse, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, envelope); err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
		log.Error().Err(err).Str("func", "relayService.Accept").Str("envelope_id", envelope.ID).Msg("invalid envelope")
		return models.SubmitResponse{}, err
	}

	if envelope.AccountACI == "" {
		envelope.AccountACI = principal.ACI
	}
	if envelope.SourceDevice == 0 {
		envelope.SourceDevice = principal.DeviceID
	}
	if envelope.AccountACI != principal.ACI || envelope.SourceDevice != principal.DeviceID {
		log.Error().
			Str("func", "relayService.Accept").
			Str("principal", principal.Subject()).
			Str("account_aci", envelope.AccountACI).
			Uint32("source_device", envelope.SourceDevice).
			Msg("envelope sender does not match principal")
		return models.SubmitResponse{}, ErrEnvelopeAccountMismatch
	}

	receivedAt := s.now().UTC()
	envelope.ReceivedAt = &receivedAt
	envelope.Seq = 0

	saved, err := s.repository.SaveEnvelope(ctx, envelope)
	if err != nil {
		return models.SubmitResponse{}, fmt.Errorf("error saving envelope: %w", err)
	}

	if err := s.repository.TouchDevice(ctx, principal.ACI, principal.DeviceID); err != nil {
		log.Warn().Err(err).Str("func", "relayService.Accept").Str("principal", principal.Subject()).Msg("error updating device last seen")
	}

	log.Debug().Str("func", "relayService.Accept").Str("envelope_id", saved.ID).Int64("seq", saved.Seq).Msg("envelope accepted")

	return models.SubmitResponse{ID: saved.ID, Seq: saved.Seq}, nil
}

// Pull returns envelopes principal has not acknowledged yet. limit is
// clamped to (0, 500]; a non-positive limit means 100.
func (s *relayService) Pull(ctx context.Context, principal models.Principal, limit int) ([]models.Envelope, error) {
	switch {
	case limit <= 0:
		limit = defaultPullLimit
	case limit > maxPullLimit:
		limit = maxPullLimit
	}

	if err := s.repository.TouchDevice(ctx, principal.ACI, principal.DeviceID); err != nil {
		return nil, fmt.Errorf("error registering device: %w", err)
	}

	envelopes, err := s.repository.PendingEnvelopes(ctx, principal.ACI, principal.DeviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("error reading pending envelopes: %w", err)
	}

	return envelopes, nil
}

func (s *relayService) Ack(ctx context.Context, principal models.Principal, seq int64) error {
	if err := s.validator.Validate(ctx, models.AckRequest{Seq: seq}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAckSequence, err)
	}

	if err := s.repository.Acknowledge(ctx, principal.ACI, principal.DeviceID, seq); err != nil {
		return fmt.Errorf("error acknowledging envelopes: %w", err)
	}

	return nil
}
