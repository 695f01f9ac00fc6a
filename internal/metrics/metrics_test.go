package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-link-sync/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.FetchRequestSent(models.FetchTypeStorageManifest)
	m.FetchRequestSent(models.FetchTypeStorageManifest)
	m.FetchRequestReceived(models.FetchTypeUnknown)
	m.MalformedContent()
	m.OutboxDelivery(DeliverySent)
	m.OutboxDelivery(DeliveryFailed)
	m.EnvelopeAccepted("grpc")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.fetchRequestsSent.WithLabelValues("storage_manifest")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.fetchRequestsSent.WithLabelValues("local_profile")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchRequestsReceived.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.malformedContent))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outboxDeliveries.WithLabelValues(DeliverySent)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outboxDeliveries.WithLabelValues(DeliveryFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.envelopesAccepted.WithLabelValues("grpc")))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	first, second := New(), New()

	first.MalformedContent()

	assert.Equal(t, 1.0, testutil.ToFloat64(first.malformedContent))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.malformedContent))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.FetchRequestSent(models.FetchTypeLocalProfile)
	m.HTTPRequest(http.MethodPost, "/api/fetch-latest/{type}", http.StatusAccepted, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `linksync_fetch_requests_sent_total{type="local_profile"} 1`)
	assert.Contains(t, string(body), `linksync_http_requests_total{method="POST",route="/api/fetch-latest/{type}",status="202"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
