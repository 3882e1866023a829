package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// The dispatch API occasionally issues a login JWT alongside the session
// identifier pair. The pair is the credential used on authenticated requests;
// the JWT is only inspected locally for its expiry so the client can be told
// when a re-login is due. The signature is the dispatch backend's to verify,
// not ours.

// TokenExpiry extracts the exp claim from a login JWT without verifying the
// signature. Returns an error when the token is malformed or carries no exp.
func TokenExpiry(tokenString string) (time.Time, error) {
	parser := jwt.Parser{SkipClaimsValidation: true}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, err
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, errors.New("token has no exp claim")
	}
	return time.Unix(int64(exp), 0), nil
}

// TokenExpired reports whether the login JWT has already expired.
// A malformed token is treated as expired.
func TokenExpired(tokenString string) bool {
	exp, err := TokenExpiry(tokenString)
	if err != nil {
		return true
	}
	return time.Now().After(exp)
}
