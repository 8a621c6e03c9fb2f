// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service exposes the client's remote APIs on top of an [rpc.Caller]:
// synchronized collections, the plain document store and authentication.
package service

import (
	"context"

	"github.com/MKhiriev/go-cloud-sync/internal/collection"
	"github.com/MKhiriev/go-cloud-sync/internal/rpc"
	"github.com/MKhiriev/go-cloud-sync/models"
)

// SyncService opens synchronized collections in the configured database.
type SyncService interface {
	// Synchronize mirrors the named collection. Options given here are
	// applied after the configured defaults.
	Synchronize(ctx context.Context, name string, opts ...collection.Option) (*collection.Collection, error)
}

// DBService is the plain document store API. Every method forwards to
// db.<method>(dbid, collection, ...) and hands the raw result to cb.
type DBService interface {
	// Insert stores obj, a single document or a slice of documents.
	Insert(ctx context.Context, coll string, obj any, cb rpc.Callback)
	// Update applies obj to the documents matching criteria, an id or a
	// query object.
	Update(ctx context.Context, coll string, criteria, obj any, cb rpc.Callback)
	// Remove deletes the document with the given id. A nil id drops the
	// whole collection.
	Remove(ctx context.Context, coll string, id any, cb rpc.Callback)
	// Find queries by id or criteria. Nil criteria returns the whole
	// collection.
	Find(ctx context.Context, coll string, criteria any, cb rpc.Callback)
	// Upsert updates the document matching criteria with obj, or inserts obj.
	Upsert(ctx context.Context, coll string, criteria, obj any, cb rpc.Callback)
	// Private returns the same API on the authenticated user's namespace.
	Private() DBService
}

// AuthService manages accounts and the cached session.
type AuthService interface {
	// Register creates an account. A password mismatch is reported through
	// cb without a remote call.
	Register(ctx context.Context, login, password, password2 string, cb rpc.Callback)
	// Login authenticates and caches the returned token.
	Login(ctx context.Context, login, password string, cb rpc.Callback)
	// Logout ends the session and clears the cache.
	Logout(ctx context.Context, cb rpc.Callback)
	// CheckAvailable reports whether login is free to register.
	CheckAvailable(ctx context.Context, login string, cb func(available bool, err error))
	// RestoreSession re-installs a cached, unexpired session.
	RestoreSession(ctx context.Context) (models.Session, error)
}

// TokenHolder receives the bearer token used by the transport.
type TokenHolder interface {
	SetToken(token string)
}
