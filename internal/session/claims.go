// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

/*
tokenExpiry decodes the exp claim from the second segment of a JWT without
verifying its signature.

Description: Signature verification is the server's job; the client only needs
the expiry timestamp to decide whether a refresh must happen before the token
is presented again.

Parameters:
  - token: Raw compact JWT string

Returns:
  - time.Time: The decoded expiry, zero when the token carries no exp claim
  - bool: ok=false when the token cannot be decoded at all
*/
func tokenExpiry(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		// No exp claim. The token never expires from the client's view.
		return time.Time{}, true
	}
	return expiry.Time, true
}

// tokenExpired reports whether the token must be refreshed before use.
// Undecodable tokens count as expired ("needs refresh", never a fatal error).
func tokenExpired(token string, now time.Time) bool {
	expiry, ok := tokenExpiry(token)
	if !ok {
		return true
	}
	if expiry.IsZero() {
		return false
	}
	return !expiry.After(now)
}
