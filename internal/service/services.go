package service

import (
	"github.com/MKhiriev/go-cloud-sync/internal/config"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/rpc"
	"github.com/MKhiriev/go-cloud-sync/internal/store"
)

// Services groups the client's remote APIs.
type Services struct {
	Sync SyncService
	DB   DBService
	Auth AuthService
}

// NewServices wires every service to caller. holder receives the session
// token (usually the HTTP transport) and tokens caches it between runs.
func NewServices(cfg *config.ClientConfig, caller rpc.Caller, holder TokenHolder, tokens store.TokenStore, log *logger.Logger) *Services {
	log.Debug().Str("dbid", cfg.App.DBID).Msg("creating services")

	return &Services{
		Sync: NewSyncService(caller, cfg.App.DBID, cfg.Sync, log),
		DB:   NewDBService(caller, cfg.App.DBID),
		Auth: NewAuthService(caller, holder, tokens, log),
	}
}
