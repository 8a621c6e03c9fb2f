package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-cloud-sync/internal/config"
	"github.com/MKhiriev/go-cloud-sync/internal/crypto"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
)

// NewTokenStore opens the token cache selected by cfg.DSN:
//   - "" or "memory": an in-process map;
//   - a path ending in ".json": a JSON file;
//   - a "postgres://" or "postgresql://" URL: PostgreSQL;
//   - anything else: an SQLite database file.
//
// SQL backends are migrated before the store is returned. A non-empty
// cfg.Secret seals every cached value with a key derived from it.
func NewTokenStore(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (TokenStore, error) {
	tokens, err := openTokenStore(ctx, strings.TrimSpace(cfg.DSN), log)
	if err != nil || cfg.Secret == "" {
		return tokens, err
	}

	sealer, err := crypto.NewSealer(cfg.Secret, crypto.SaltFor(cfg.DSN))
	if err != nil {
		tokens.Close()
		return nil, fmt.Errorf("token cache sealer: %w", err)
	}
	return NewSealedStore(tokens, sealer, log), nil
}

func openTokenStore(ctx context.Context, dsn string, log *logger.Logger) (TokenStore, error) {
	switch {
	case dsn == "" || strings.EqualFold(dsn, config.DefaultDSN):
		log.Debug().Msg("using in-memory token cache")
		return NewMemoryStore(), nil

	case strings.HasSuffix(strings.ToLower(dsn), ".json"):
		log.Debug().Str("path", dsn).Msg("using file token cache")
		return NewFileStore(dsn)
	}

	var (
		db  *DB
		err error
	)
	if isPostgresDSN(dsn) {
		db, err = NewConnectPostgres(ctx, dsn, log)
	} else {
		db, err = NewConnectSQLite(ctx, dsn, log)
	}
	if err != nil {
		return nil, fmt.Errorf("token cache connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewSQLStore(db, log), nil
}

func isPostgresDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}
