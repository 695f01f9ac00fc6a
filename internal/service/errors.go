package service

import "errors"

var (
	ErrAccountNotRegistered = errors.New("local account is not registered")
	ErrFetchThrottled       = errors.New("fetch request throttled")

	ErrInvalidEnvelope         = errors.New("invalid envelope")
	ErrEnvelopeAccountMismatch = errors.New("envelope account does not match the authenticated device")
	ErrInvalidAckSequence      = errors.New("invalid ack sequence")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
