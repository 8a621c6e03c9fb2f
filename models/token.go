// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is the authentication state cached by the client between runs.
//
// Token is the bearer token returned by the gateway on login. ExpiresAt is
// read from the token's "exp" claim when the token is a JWT; it stays zero
// for opaque tokens, which are then assumed to be valid until the gateway
// rejects them.
type Session struct {
	Login     string    `json:"login"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the session carries an expiry that is already in
// the past relative to now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// LoginResult is the payload returned by the gateway's login method.
type LoginResult struct {
	Token string `json:"token"`
	User  string `json:"user,omitempty"`
}
