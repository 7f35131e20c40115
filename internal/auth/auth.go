// Package auth validates the gateway's optional static bearer credential.
package auth

import (
	"crypto/subtle"
	"strings"
)

// Reason explains an access decision. It is safe to log: token values never
// appear here.
type Reason string

const (
	ReasonOK         Reason = "ok"
	ReasonMissingKey Reason = "missing_key"
	ReasonBadKey     Reason = "bad_key"
)

// Decision is produced fresh per invocation and never cached.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Validate checks an Authorization header against the configured key.
// With no key configured, auth is disabled and every caller passes.
// Otherwise the header must be exactly "Bearer <token>"; the token
// comparison is constant-time.
func Validate(authorizationHeader, expectedKey string) Decision {
	if expectedKey == "" {
		return Decision{Allowed: true, Reason: ReasonOK}
	}
	if authorizationHeader == "" {
		return Decision{Allowed: false, Reason: ReasonMissingKey}
	}
	token, ok := strings.CutPrefix(authorizationHeader, "Bearer ")
	if !ok || token == "" {
		return Decision{Allowed: false, Reason: ReasonMissingKey}
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(expectedKey)) != 1 {
		return Decision{Allowed: false, Reason: ReasonBadKey}
	}
	return Decision{Allowed: true, Reason: ReasonOK}
}
