// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store holds the client's token cache: a small key-value store that
// keeps the authentication session between runs.
//
// Three backends implement [TokenStore]: an in-process map, a JSON file, and
// an SQL table on SQLite or PostgreSQL whose schema is managed by goose
// migrations. [NewTokenStore] picks one from the configured DSN.
package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// TokenStore is a string key-value cache for session data.
type TokenStore interface {
	// Get returns the value stored under key, or [ErrKeyNotFound].
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Clear removes every key.
	Clear(ctx context.Context) error
	// Close releases the backend's resources.
	Close() error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
