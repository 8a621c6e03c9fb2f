package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cloud-sync/internal/collection"
	"github.com/MKhiriev/go-cloud-sync/internal/config"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/rpc"
)

type syncService struct {
	caller   rpc.Caller
	dbid     string
	defaults []collection.Option
	logger   *logger.Logger
}

// NewSyncService returns a [SyncService] whose collections live in dbid and
// start from the settings in syncCfg.
func NewSyncService(caller rpc.Caller, dbid string, syncCfg config.ClientSync, log *logger.Logger) SyncService {
	defaults := []collection.Option{
		collection.WithLogger(log),
		collection.WithPrivate(syncCfg.Private),
	}
	if syncCfg.IDField != "" {
		defaults = append(defaults, collection.WithIDField(syncCfg.IDField))
	}
	if syncCfg.Mode != "" {
		defaults = append(defaults, collection.WithMode(syncCfg.Mode))
	}

	return &syncService{caller: caller, dbid: dbid, defaults: defaults, logger: log}
}

func (s *syncService) Synchronize(ctx context.Context, name string, opts ...collection.Option) (*collection.Collection, error) {
	all := make([]collection.Option, 0, len(s.defaults)+len(opts))
	all = append(all, s.defaults...)
	all = append(all, opts...)

	c, err := collection.Synchronize(ctx, s.caller, s.dbid, name, all...)
	if err != nil {
		s.logger.Err(err).Str("func", "*syncService.Synchronize").Str("collection", name).Msg("error opening collection")
		return nil, fmt.Errorf("synchronize %q: %w", name, err)
	}

	s.logger.Debug().Str("collection", name).Str("service", c.Service()).Msg("collection synchronized")
	return c, nil
}
