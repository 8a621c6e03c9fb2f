package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cloud-sync/internal/crypto"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
)

// sealedStore encrypts values on their way into inner. Keys stay in plain
// text.
type sealedStore struct {
	inner  TokenStore
	sealer crypto.Sealer
	logger *logger.Logger
}

// NewSealedStore wraps inner so that every value is sealed before it is
// stored. A stored value that cannot be opened, such as one written without
// a secret or under another one, reads as [ErrKeyNotFound].
func NewSealedStore(inner TokenStore, sealer crypto.Sealer, log *logger.Logger) TokenStore {
	return &sealedStore{inner: inner, sealer: sealer, logger: log}
}

func (s *sealedStore) Get(ctx context.Context, key string) (string, error) {
	sealed, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}

	plain, err := s.sealer.Open(sealed)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cached value cannot be opened")
		return "", fmt.Errorf("%w: %w", ErrKeyNotFound, err)
	}
	return string(plain), nil
}

func (s *sealedStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	sealed, err := s.sealer.Seal([]byte(value))
	if err != nil {
		return fmt.Errorf("seal value: %w", err)
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *sealedStore) Clear(ctx context.Context) error {
	return s.inner.Clear(ctx)
}

func (s *sealedStore) Close() error {
	return s.inner.Close()
}
