// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

// fileStore keeps values in a JSON object on disk. The whole file is
// rewritten on every change with owner-only permissions.
type fileStore struct {
	path string

	mu     sync.RWMutex
	items  map[string]string
	closed bool
}

type filePersistedState struct {
	Items map[string]string `json:"items"`
}

// NewFileStore opens the JSON token cache at path. A missing file is not an
// error: it is created on the first Set.
func NewFileStore(path string) (TokenStore, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	s := &fileStore{
		path:  path,
		items: make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read token cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var st filePersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode token cache file: %w", err)
	}
	if st.Items != nil {
		s.items = st.Items
	}
	return nil
}

// persist must be called with s.mu held for writing.
func (s *fileStore) persist() error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token cache dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(filePersistedState{Items: s.items}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token cache: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write token cache file: %w", err)
	}
	return nil
}

func (s *fileStore) Get(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", ErrStoreClosed
	}
	value, ok := s.items[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (s *fileStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	prev := maps.Clone(s.items)
	s.items[key] = value
	if err := s.persist(); err != nil {
		s.items = prev
		return err
	}
	return nil
}

func (s *fileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	prev := s.items
	s.items = make(map[string]string)
	if err := s.persist(); err != nil {
		s.items = prev
		return err
	}
	return nil
}

func (s *fileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
