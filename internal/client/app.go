package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/store"
	"github.com/MKhiriev/go-cloud-sync/internal/workers"
)

// ErrNoCollection is returned when no collection to watch is configured.
var ErrNoCollection = errors.New("no collection configured")

type App struct {
	ui         UI
	workers    workers.Worker
	tokens     store.TokenStore
	collection string

	logger *logger.Logger
}

// NewApp assembles the client runtime. bg runs for the whole lifetime of
// Run; tokens is closed on exit.
func NewApp(ui UI, bg workers.Worker, tokens store.TokenStore, collection string, log *logger.Logger) (*App, error) {
	if ui == nil {
		return nil, errors.New("client: nil ui")
	}
	if collection == "" {
		return nil, ErrNoCollection
	}
	if log == nil {
		log = logger.Nop()
	}

	return &App{
		ui:         ui,
		workers:    bg,
		tokens:     tokens,
		collection: collection,
		logger:     log,
	}, nil
}

// Run starts the background workers, authenticates and shows the configured
// collection. It returns once the viewer is closed or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	if a.workers != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.workers.Run(ctx)
		}()
	}

	defer func() {
		cancel()
		wg.Wait()
		if a.tokens != nil {
			if err := a.tokens.Close(); err != nil {
				a.logger.Warn().Err(err).Msg("close token store")
			}
		}
		a.logger.Info().Msg("client stopped")
	}()

	login, err := a.ui.LoginFlow(ctx)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	a.logger.Info().Str("login", login).Str("collection", a.collection).Msg("authenticated")

	if err = a.ui.Watch(ctx, a.collection); err != nil {
		return fmt.Errorf("watch %q: %w", a.collection, err)
	}
	return nil
}
