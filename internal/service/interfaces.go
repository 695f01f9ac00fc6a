// Package service holds the business logic of the device daemon and the
// relay. Handlers and workers depend on the interfaces declared here.
package service

import (
	"context"

	"github.com/MKhiriev/go-link-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// FetchLatestService builds fetch-latest requests and queues them for
// delivery to the other devices of the account.
type FetchLatestService interface {
	// RequestFetch queues a single request. Unknown types are rejected
	// before the store is touched.
	RequestFetch(ctx context.Context, fetchType models.FetchType) (models.OutboxEntry, error)
	// RequestAll queues one request per transmittable fetch type.
	RequestAll(ctx context.Context) ([]models.OutboxEntry, error)
}

// DeliveryService flushes the outbox to the relay.
type DeliveryService interface {
	// DeliverPending sends one batch and returns how many entries the relay
	// accepted.
	DeliverPending(ctx context.Context) (int, error)
}

// InboxService consumes envelopes the relay holds for this device.
type InboxService interface {
	// PullAndDispatch pulls one batch, dispatches every fetch-latest command
	// and acknowledges the batch. It returns the number of envelopes
	// processed.
	PullAndDispatch(ctx context.Context) (int, error)
}

// Dispatcher reacts to an incoming fetch-latest command, for instance by
// refetching the profile or the storage manifest.
type Dispatcher interface {
	Dispatch(ctx context.Context, fetchType models.FetchType, envelope models.Envelope) error
}

// RelayService stores and serves envelopes on the relay.
type RelayService interface {
	Accept(ctx context.Context, principal models.Principal, envelope models.Envelope) (models.SubmitResponse, error)
	Pull(ctx context.Context, principal models.Principal, limit int) ([]models.Envelope, error)
	Ack(ctx context.Context, principal models.Principal, seq int64) error
}

// AuthService issues and verifies device tokens.
type AuthService interface {
	IssueToken(ctx context.Context, principal models.Principal) (models.Token, error)
	ParseToken(ctx context.Context, token string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
