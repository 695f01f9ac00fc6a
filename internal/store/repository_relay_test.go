package store

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envelopeRowColumns = []string{"seq", "id", "account_aci", "source_device", "timestamp", "content", "received_at"}

func newTestRelayRepository(t *testing.T) (RelayRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock := newTestDB(t)
	return NewRelayRepository(newDBFromSQL(sqlDB, NewPostgresErrorClassifier()), logger.Nop()), mock
}

func testEnvelope() models.Envelope {
	return models.Envelope{
		ID:           "0190f4c2-5b1e-7c7e-8a3f-6f1d2c3b4a59",
		AccountACI:   "aci-1",
		SourceDevice: 2,
		Timestamp:    1700000000000,
		Content:      []byte{0x12, 0x04, 0x62, 0x02, 0x08, 0x02},
	}
}

func TestRelayRepository_SaveEnvelope(t *testing.T) {
	storedAt := fixedNow.Add(time.Second)

	tests := []struct {
		name    string
		mockErr error
		wantErr error
	}{
		{name: "success"},
		{name: "duplicate id", mockErr: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, wantErr: ErrEnvelopeExists},
		{name: "serialization failure", mockErr: &pgconn.PgError{Code: pgerrcode.SerializationFailure}, wantErr: ErrStorageUnavailable},
		{name: "data exception", mockErr: &pgconn.PgError{Code: pgerrcode.DataException}, wantErr: ErrExecutingStatement},
		{name: "unclassified", mockErr: errors.New("boom"), wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRelayRepository(t)
			envelope := testEnvelope()

			expectation := mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO envelopes")).
				WithArgs(envelope.ID, envelope.AccountACI, envelope.SourceDevice, int64(envelope.Timestamp), envelope.Content, fixedNow)
			if tt.mockErr != nil {
				expectation.WillReturnError(tt.mockErr)
			} else {
				expectation.WillReturnRows(sqlmock.NewRows([]string{"seq", "received_at"}).AddRow(int64(17), storedAt))
			}

			saved, err := repo.SaveEnvelope(testContext(), envelope)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(17), saved.Seq)
				require.NotNil(t, saved.ReceivedAt)
				assert.Equal(t, storedAt, *saved.ReceivedAt)
				assert.Equal(t, envelope.Content, saved.Content)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRelayRepository_PendingEnvelopes(t *testing.T) {
	repo, mock := newTestRelayRepository(t)
	first, second := testEnvelope(), testEnvelope()
	second.ID = "0190f4c2-5b1e-7c7e-8a3f-6f1d2c3b4a60"
	second.SourceDevice = 3

	mock.ExpectQuery(`SELECT e\.seq, .* FROM envelopes e WHERE e\.account_aci = \$1 AND e\.source_device <> \$2 AND e\.seq > COALESCE`).
		WithArgs("aci-1", uint32(1), "aci-1", uint32(1)).
		WillReturnRows(sqlmock.NewRows(envelopeRowColumns).
			AddRow(int64(4), first.ID, first.AccountACI, int64(first.SourceDevice), int64(first.Timestamp), first.Content, fixedNow).
			AddRow(int64(9), second.ID, second.AccountACI, int64(second.SourceDevice), int64(second.Timestamp), second.Content, fixedNow))

	envelopes, err := repo.PendingEnvelopes(testContext(), "aci-1", 1, 50)

	require.NoError(t, err)
	require.Len(t, envelopes, 2)
	assert.Equal(t, int64(4), envelopes[0].Seq)
	assert.Equal(t, first.ID, envelopes[0].ID)
	assert.Equal(t, uint64(1700000000000), envelopes[0].Timestamp)
	assert.Equal(t, int64(9), envelopes[1].Seq)
	assert.Equal(t, uint32(3), envelopes[1].SourceDevice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelayRepository_PendingEnvelopes_Errors(t *testing.T) {
	t.Run("query", func(t *testing.T) {
		repo, mock := newTestRelayRepository(t)
		mock.ExpectQuery("SELECT").WillReturnError(&pgconn.PgError{Code: pgerrcode.ConnectionFailure})

		_, err := repo.PendingEnvelopes(testContext(), "aci-1", 1, 10)
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})

	t.Run("scan", func(t *testing.T) {
		repo, mock := newTestRelayRepository(t)
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow("not-a-number"))

		_, err := repo.PendingEnvelopes(testContext(), "aci-1", 1, 10)
		assert.ErrorIs(t, err, ErrScanningRow)
	})

	t.Run("rows", func(t *testing.T) {
		repo, mock := newTestRelayRepository(t)
		envelope := testEnvelope()
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(envelopeRowColumns).
			AddRow(int64(1), envelope.ID, envelope.AccountACI, int64(2), int64(1), envelope.Content, fixedNow).
			RowError(0, errors.New("connection reset")))

		_, err := repo.PendingEnvelopes(testContext(), "aci-1", 1, 10)
		assert.ErrorIs(t, err, ErrScanningRows)
	})
}

func TestRelayRepository_Acknowledge(t *testing.T) {
	repo, mock := newTestRelayRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("GREATEST(devices.cursor, excluded.cursor)")).
		WithArgs("aci-1", uint32(2), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Acknowledge(testContext(), "aci-1", 2, 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelayRepository_Acknowledge_Error(t *testing.T) {
	repo, mock := newTestRelayRepository(t)
	mock.ExpectExec("INSERT INTO devices").WillReturnError(&pgconn.PgError{Code: pgerrcode.DeadlockDetected})

	assert.ErrorIs(t, repo.Acknowledge(testContext(), "aci-1", 2, 42), ErrStorageUnavailable)
}

func TestRelayRepository_TouchDevice(t *testing.T) {
	repo, mock := newTestRelayRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(touchDevice)).
		WithArgs("aci-1", uint32(2)).
		WillReturnResult(driver.RowsAffected(1))
	mock.ExpectExec(regexp.QuoteMeta(touchDevice)).
		WillReturnError(errors.New("boom"))

	require.NoError(t, repo.TouchDevice(testContext(), "aci-1", 2))
	assert.ErrorIs(t, repo.TouchDevice(testContext(), "aci-1", 2), ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}
