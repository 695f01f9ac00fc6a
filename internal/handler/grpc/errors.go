package grpc

import (
	"errors"

	"github.com/MKhiriev/go-link-sync/internal/app"
	"github.com/MKhiriev/go-link-sync/internal/service"
	"github.com/MKhiriev/go-link-sync/internal/store"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// errorCodes is checked in order; the first match wins.
var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{store.ErrStorageUnavailable, codes.Unavailable},
	{store.ErrEnvelopeExists, codes.AlreadyExists},
	{service.ErrEnvelopeAccountMismatch, codes.PermissionDenied},
	{service.ErrInvalidEnvelope, codes.InvalidArgument},
}

func statusFromError(err error) error {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return status.Error(e.code, err.Error())
		}
	}
	return status.Error(codes.Internal, app.MsgInternalServerError)
}
