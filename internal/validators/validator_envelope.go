package validators

import (
	"context"

	"github.com/MKhiriev/go-link-sync/internal/utils"
	"github.com/MKhiriev/go-link-sync/models"
)

// EnvelopeValidator implements the Validator interface for the relay
// inputs: models.Envelope and models.AckRequest.
//
// It supports both value and pointer forms of every model type and allows
// optional field-level scoping via variadic field name arguments.
type EnvelopeValidator struct {
}

func NewEnvelopeValidator() Validator {
	return &EnvelopeValidator{}
}

// Validate dispatches validation to the type-specific method. Returns
// ErrUnsupportedType for any other type.
func (v *EnvelopeValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Envelope:
		return v.validateEnvelope(ctx, value, fields...)
	case *models.Envelope:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateEnvelope(ctx, *value, fields...)
	case models.AckRequest:
		return v.validateAckRequest(ctx, value, fields...)
	case *models.AckRequest:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateAckRequest(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *EnvelopeValidator) validateEnvelope(ctx context.Context, envelope models.Envelope, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldTimestamp, FieldContent}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if !utils.IsUUID(envelope.ID) {
				return ErrInvalidEnvelopeID
			}
		case FieldTimestamp:
			if envelope.Timestamp == 0 {
				return ErrEmptyTimestamp
			}
		case FieldContent:
			if len(envelope.Content) == 0 {
				return ErrEmptyContent
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *EnvelopeValidator) validateAckRequest(ctx context.Context, request models.AckRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSeq}
	}

	for _, f := range fields {
		switch f {
		case FieldSeq:
			if request.Seq <= 0 {
				return ErrInvalidSequence
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
