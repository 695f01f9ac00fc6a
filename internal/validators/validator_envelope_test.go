// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-link-sync/models"
	"github.com/stretchr/testify/assert"
)

func validEnvelope() models.Envelope {
	return models.Envelope{
		ID:        "0192f3a4-5b6c-7d8e-9f00-112233445566",
		Timestamp: 1700000000000,
		Content:   []byte{0x12, 0x00},
	}
}

func TestValidate_Dispatch(t *testing.T) {
	v := NewEnvelopeValidator()
	ctx := context.Background()
	envelope := validEnvelope()

	assert.NoError(t, v.Validate(ctx, envelope))
	assert.NoError(t, v.Validate(ctx, &envelope))
	assert.NoError(t, v.Validate(ctx, models.AckRequest{Seq: 1}))
	assert.NoError(t, v.Validate(ctx, &models.AckRequest{Seq: 1}))

	assert.ErrorIs(t, v.Validate(ctx, "envelope"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, (*models.Envelope)(nil)), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, (*models.AckRequest)(nil)), ErrUnsupportedType)
}

func TestValidateEnvelope(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*models.Envelope)
		fields []string
		want   error
	}{
		{name: "valid", modify: func(*models.Envelope) {}},
		{name: "empty id", modify: func(e *models.Envelope) { e.ID = "" }, want: ErrInvalidEnvelopeID},
		{name: "non uuid id", modify: func(e *models.Envelope) { e.ID = "env-1" }, want: ErrInvalidEnvelopeID},
		{name: "zero timestamp", modify: func(e *models.Envelope) { e.Timestamp = 0 }, want: ErrEmptyTimestamp},
		{name: "empty content", modify: func(e *models.Envelope) { e.Content = nil }, want: ErrEmptyContent},
		{
			name:   "scoped to content skips id",
			modify: func(e *models.Envelope) { e.ID = "" },
			fields: []string{FieldContent},
		},
		{
			name:   "unknown field",
			modify: func(*models.Envelope) {},
			fields: []string{"hash"},
			want:   ErrUnknownField,
		},
	}

	v := NewEnvelopeValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope := validEnvelope()
			tt.modify(&envelope)

			err := v.Validate(context.Background(), envelope, tt.fields...)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateAckRequest(t *testing.T) {
	v := NewEnvelopeValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.AckRequest{Seq: 42}))
	assert.ErrorIs(t, v.Validate(ctx, models.AckRequest{Seq: 0}), ErrInvalidSequence)
	assert.ErrorIs(t, v.Validate(ctx, models.AckRequest{Seq: -5}), ErrInvalidSequence)
	assert.ErrorIs(t, v.Validate(ctx, models.AckRequest{Seq: 1}, FieldID), ErrUnknownField)
}
