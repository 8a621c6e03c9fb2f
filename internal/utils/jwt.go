package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned by [ParseTokenExpiry] for tokens that are not
// well-formed JWTs. Gateways may hand out opaque tokens; callers treat
// those as having no known expiry.
var ErrNotJWT = errors.New("token is not a JWT")

// ParseTokenExpiry reads the "exp" claim of tokenString without verifying
// its signature. The client never holds the gateway's signing key; the
// result is only used to avoid reusing a session that is known to be
// expired.
//
// Returns the zero time and nil when the token is a JWT without an "exp"
// claim.
func ParseTokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrNotJWT, err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("error reading exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, nil
	}

	return exp.Time, nil
}

// ParseTokenSubject reads the "sub" claim of tokenString without verifying
// its signature.
func ParseTokenSubject(tokenString string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotJWT, err)
	}

	return token.Claims.GetSubject()
}
