package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-link-sync/internal/service"
	"github.com/MKhiriev/go-link-sync/internal/store"
	"github.com/MKhiriev/go-link-sync/internal/syncmsg"
	"github.com/MKhiriev/go-link-sync/models"
)

// errorStatuses is checked in order and the first match wins, so a joined
// error resolves to the same status every time. Server side failures come
// first, then account state, then throttling and bad input.
var errorStatuses = []struct {
	err    error
	status int
}{
	{store.ErrStorageUnavailable, http.StatusServiceUnavailable},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},

	{service.ErrAccountNotRegistered, http.StatusConflict},
	{store.ErrAccountNotRegistered, http.StatusConflict},
	{store.ErrThreadNotFound, http.StatusConflict},
	{store.ErrEnvelopeExists, http.StatusConflict},

	{service.ErrFetchThrottled, http.StatusTooManyRequests},

	{service.ErrTokenIsExpired, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{ErrNoPrincipal, http.StatusUnauthorized},
	{service.ErrEnvelopeAccountMismatch, http.StatusForbidden},

	{service.ErrInvalidEnvelope, http.StatusBadRequest},
	{service.ErrInvalidAckSequence, http.StatusBadRequest},
	{service.ErrVersionIsNotSpecified, http.StatusBadRequest},
	{syncmsg.ErrUnknownFetchType, http.StatusBadRequest},
	{ErrInvalidLimit, http.StatusBadRequest},
	{models.ErrUnknownFetchTypeName, http.StatusNotFound},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
