// Package token answers whether a stored bearer token is still usable
// without talking to the backend. Tokens are opaque except for their
// expiry claim; signatures are the server's business.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Inspector decodes a token's expiry claim and compares it to the current
// time. The zero value is not usable; construct with NewInspector.
type Inspector struct {
	now func() time.Time
}

// NewInspector creates an Inspector using the wall clock.
func NewInspector() *Inspector {
	return &Inspector{now: time.Now}
}

// NewInspectorAt creates an Inspector with an injectable clock for testing.
func NewInspectorAt(now func() time.Time) *Inspector {
	return &Inspector{now: now}
}

// Valid reports whether the token decodes and its expiry claim lies in the
// future. Any malformed input (empty string, wrong segment count, bad base64,
// missing or non-numeric exp claim) yields false; this method never panics
// and never returns an error.
func (i *Inspector) Valid(tokenString string) bool {
	if tokenString == "" {
		return false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Time.After(i.now())
}
