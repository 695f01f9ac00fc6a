package http

import (
	"net/http"

	"github.com/MKhiriev/go-link-sync/internal/utils"
)

// VersionResponse is returned by GET /api/version/.
type VersionResponse struct {
	Version     string `json:"version"`
	BuildDate   string `json:"build_date,omitempty"`
	BuildCommit string `json:"build_commit,omitempty"`
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	appInfo := h.relay.AppInfoService
	buildInfo := appInfo.GetBuildInfo(ctx)

	utils.WriteJSON(w, VersionResponse{
		Version:     appInfo.GetAppVersion(ctx),
		BuildDate:   buildInfo.BuildDate(),
		BuildCommit: buildInfo.BuildCommit(),
	}, http.StatusOK)
}
