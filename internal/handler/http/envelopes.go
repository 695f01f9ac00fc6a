package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-link-sync/internal/app"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/utils"
	"github.com/MKhiriev/go-link-sync/models"
)

// maxEnvelopeBodySize bounds a submitted envelope, content included.
const maxEnvelopeBodySize = 64 << 10

func (h *Handler) submitEnvelope(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	principal, found := utils.GetPrincipalFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.submitEnvelope").Msg("no principal was given")
		utils.WriteError(w, ErrNoPrincipal.Error(), http.StatusUnauthorized)
		return
	}

	var envelope models.Envelope
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEnvelopeBodySize)).Decode(&envelope); err != nil {
		log.Err(err).Str("func", "*Handler.submitEnvelope").Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	resp, err := h.relay.RelayService.Accept(ctx, principal, envelope)
	if err != nil {
		log.Err(err).Str("func", "*Handler.submitEnvelope").Str("envelope_id", envelope.ID).Msg("envelope rejected")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}
	h.metrics.EnvelopeAccepted("http")

	utils.WriteJSON(w, resp, http.StatusCreated)
}

func (h *Handler) pullEnvelopes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	principal, found := utils.GetPrincipalFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.pullEnvelopes").Msg("no principal was given")
		utils.WriteError(w, ErrNoPrincipal.Error(), http.StatusUnauthorized)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Err(err).Str("func", "*Handler.pullEnvelopes").Str("limit", raw).Msg("invalid limit")
			utils.WriteError(w, ErrInvalidLimit.Error(), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	envelopes, err := h.relay.RelayService.Pull(ctx, principal, limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.pullEnvelopes").Msg("error pulling envelopes")
		utils.WriteError(w, app.MsgPullFailed, statusFromError(err))
		return
	}
	if envelopes == nil {
		envelopes = []models.Envelope{}
	}

	utils.WriteJSON(w, models.PullResponse{Envelopes: envelopes, Length: len(envelopes)}, http.StatusOK)
}

func (h *Handler) ackEnvelopes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	principal, found := utils.GetPrincipalFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.ackEnvelopes").Msg("no principal was given")
		utils.WriteError(w, ErrNoPrincipal.Error(), http.StatusUnauthorized)
		return
	}

	var ack models.AckRequest
	if err := json.NewDecoder(r.Body).Decode(&ack); err != nil {
		log.Err(err).Str("func", "*Handler.ackEnvelopes").Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.relay.RelayService.Ack(ctx, principal, ack.Seq); err != nil {
		log.Err(err).Str("func", "*Handler.ackEnvelopes").Int64("seq", ack.Seq).Msg("error acknowledging envelopes")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
