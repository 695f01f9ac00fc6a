package http

import (
	"net/http"

	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/utils"
	"github.com/MKhiriev/go-link-sync/models"
	"github.com/go-chi/chi/v5"
)

// FetchLatestResponse lists the outbox entries queued by a trigger.
type FetchLatestResponse struct {
	Queued []models.OutboxEntry `json:"queued"`
	Errors []string             `json:"errors,omitempty"`
}

// requestFetch handles POST /api/fetch-latest/{type}, where type is a fetch
// type name such as "storage_manifest" or "storage-manifest".
func (h *Handler) requestFetch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	name := chi.URLParam(r, "type")
	fetchType, err := models.ParseFetchType(name)
	if err != nil {
		log.Err(err).Str("func", "*Handler.requestFetch").Str("type", name).Msg("unknown fetch type requested")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	entry, err := h.device.FetchLatestService.RequestFetch(ctx, fetchType)
	if err != nil {
		log.Err(err).Str("func", "*Handler.requestFetch").Str("type", fetchType.String()).Msg("fetch request failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, FetchLatestResponse{Queued: []models.OutboxEntry{entry}}, http.StatusAccepted)
}

// requestAllFetches handles POST /api/fetch-latest/. Partial success is
// reported with 207 and the per-type errors.
func (h *Handler) requestAllFetches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	entries, err := h.device.FetchLatestService.RequestAll(ctx)
	resp := FetchLatestResponse{Queued: entries}
	if resp.Queued == nil {
		resp.Queued = []models.OutboxEntry{}
	}

	switch {
	case err == nil:
		utils.WriteJSON(w, resp, http.StatusAccepted)
	case len(entries) == 0:
		log.Err(err).Str("func", "*Handler.requestAllFetches").Msg("no fetch request was queued")
		utils.WriteError(w, err.Error(), statusFromError(err))
	default:
		log.Warn().Err(err).Str("func", "*Handler.requestAllFetches").Int("queued", len(entries)).Msg("some fetch requests failed")
		resp.Errors = []string{err.Error()}
		utils.WriteJSON(w, resp, http.StatusMultiStatus)
	}
}
