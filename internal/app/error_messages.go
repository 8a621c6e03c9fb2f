// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains message strings shared between the gateway contract
// and the client: the texts the gateway puts in error payloads and the
// texts the client shows for locally detected failures.
package app

const (
	// MsgPasswordsDoNotMatch is reported locally by registration when the
	// password confirmation differs.
	MsgPasswordsDoNotMatch = "Passwords do not match."

	// MsgInvalidLoginPassword is sent when the login/password pair does not
	// match any account.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgLoginAlreadyExists is sent when registering a login that is taken.
	MsgLoginAlreadyExists = "login already exists"

	// MsgTokenIsExpired is sent when the bearer token has expired.
	MsgTokenIsExpired = "token is expired"

	// MsgTokenIsExpiredOrInvalid is sent when the bearer token has expired or
	// fails verification.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNotAuthenticated is sent for private namespaces called without a
	// session.
	MsgNotAuthenticated = "not authenticated"
)
