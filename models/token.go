package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidPrincipal is returned when a token subject cannot be parsed into
// a [Principal].
var ErrInvalidPrincipal = errors.New("invalid device principal")

// Principal identifies an authenticated device of an account.
type Principal struct {
	ACI      string
	DeviceID uint32
}

// Subject renders the principal as a JWT subject: "<aci>.<device_id>".
func (p Principal) Subject() string {
	return p.ACI + "." + strconv.FormatUint(uint64(p.DeviceID), 10)
}

// ParsePrincipal is the inverse of [Principal.Subject].
func ParsePrincipal(subject string) (Principal, error) {
	idx := strings.LastIndex(subject, ".")
	if idx <= 0 || idx == len(subject)-1 {
		return Principal{}, ErrInvalidPrincipal
	}

	deviceID, err := strconv.ParseUint(subject[idx+1:], 10, 32)
	if err != nil || deviceID == 0 {
		return Principal{}, ErrInvalidPrincipal
	}

	return Principal{ACI: subject[:idx], DeviceID: uint32(deviceID)}, nil
}

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// Principal is the device extracted from the "sub" claim.
	Principal Principal `json:"-"`
}

// GetPrincipal parses the token's "sub" claim into a [Principal].
func (t *Token) GetPrincipal() (Principal, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return Principal{}, fmt.Errorf("error extracting subject from token: %w", err)
	}

	return ParsePrincipal(subject)
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
