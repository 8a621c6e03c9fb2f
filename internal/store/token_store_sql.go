// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-cloud-sync/internal/logger"
)

const (
	tokenCacheTable  = "token_cache"
	tokenCacheName   = "name"
	tokenCacheValue  = "value"
	tokenCacheUpsert = "ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP"
)

// sqlStore keeps values in the token_cache table created by the goose
// migrations.
type sqlStore struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLStore returns a [TokenStore] backed by db. The schema must already
// be migrated (see [DB.Migrate]).
func NewSQLStore(db *DB, log *logger.Logger) TokenStore {
	log.Debug().Str("dialect", string(db.dialect)).Msg("creating sql token store")
	return &sqlStore{db: db, logger: log}
}

func (s *sqlStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	query, args, err := s.db.builder.
		Select(tokenCacheValue).
		From(tokenCacheTable).
		Where(sq.Eq{tokenCacheName: key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.db.withRetry(ctx, func() error {
		return s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", ErrKeyNotFound
	case err != nil:
		s.logger.Err(err).Str("func", "*sqlStore.Get").Str("pg_code", postgresError(err)).Msg("error reading token cache")
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, nil
}

func (s *sqlStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	query, args, err := s.db.builder.
		Insert(tokenCacheTable).
		Columns(tokenCacheName, tokenCacheValue).
		Values(key, value).
		Suffix(tokenCacheUpsert).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return s.exec(ctx, "*sqlStore.Set", query, args)
}

func (s *sqlStore) Clear(ctx context.Context) error {
	query, args, err := s.db.builder.Delete(tokenCacheTable).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return s.exec(ctx, "*sqlStore.Clear", query, args)
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

func (s *sqlStore) exec(ctx context.Context, fn, query string, args []any) error {
	err := s.db.withRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		s.logger.Err(err).Str("func", fn).Str("pg_code", postgresError(err)).Msg("error writing token cache")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
