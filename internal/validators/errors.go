package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEnvelopeID = errors.New("envelope id must be a UUID")
	ErrEmptyTimestamp    = errors.New("timestamp is required")
	ErrEmptyContent      = errors.New("content is required")
	ErrInvalidSequence   = errors.New("sequence number must be positive")
)
