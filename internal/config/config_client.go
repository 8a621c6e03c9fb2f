// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
	"time"
)

// Defaults applied by [GetClientConfig] to unset fields.
const (
	DefaultRequestTimeout = 15 * time.Second
	DefaultCodec          = "json"
	DefaultKeepAlive      = 20
	DefaultIDField        = "id"
	DefaultDSN            = "memory"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// DBID identifies the application's database on the gateway.
	DBID string
	// LogLevel is the zerolog level name.
	LogLevel string
}

// ClientGateway holds the settings used by the RPC transport.
type ClientGateway struct {
	// Address is the gateway base URL or host:port.
	Address string
	// RequestTimeout is the timeout of a single gateway call.
	RequestTimeout time.Duration
}

// ClientStream holds the settings used by the change-stream subscriber.
type ClientStream struct {
	// BrokerURL is the MQTT broker URL; empty disables the live stream.
	BrokerURL string
	// ClientID is the MQTT client identifier.
	ClientID string
	// Codec is the payload encoding name.
	Codec string
	// KeepAlive is the MQTT keep-alive interval in seconds.
	KeepAlive uint16
}

// ClientStorage holds the token cache backend settings.
type ClientStorage struct {
	// DSN selects the token cache backend.
	DSN string
	// Secret seals cached tokens; empty stores them in plain text.
	Secret string
}

// ClientSync holds the defaults applied to synchronized collections.
type ClientSync struct {
	Collection string
	Private    bool
	IDField    string
	Mode       string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Gateway ClientGateway
	Stream  ClientStream
	Storage ClientStorage
	Sync    ClientSync
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps the fields
// relevant to the client runtime, applies defaults, and validates the
// resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps cfg onto the client view and fills defaults for
// unset fields. It does not validate the result.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			DBID:     cfg.App.DBID,
			LogLevel: cfg.App.LogLevel,
		},
		Gateway: ClientGateway{
			Address:        cfg.Gateway.Address,
			RequestTimeout: cfg.Gateway.RequestTimeout,
		},
		Stream: ClientStream{
			BrokerURL: cfg.Stream.BrokerURL,
			ClientID:  cfg.Stream.ClientID,
			Codec:     strings.ToLower(strings.TrimSpace(cfg.Stream.Codec)),
			KeepAlive: cfg.Stream.KeepAlive,
		},
		Storage: ClientStorage{DSN: cfg.Storage.DSN, Secret: cfg.Storage.Secret},
		Sync: ClientSync{
			Collection: cfg.Sync.Collection,
			Private:    cfg.Sync.Private,
			IDField:    cfg.Sync.IDField,
			Mode:       cfg.Sync.Mode,
		},
	}

	if clientCfg.Gateway.RequestTimeout <= 0 {
		clientCfg.Gateway.RequestTimeout = DefaultRequestTimeout
	}
	if clientCfg.Stream.Codec == "" {
		clientCfg.Stream.Codec = DefaultCodec
	}
	if clientCfg.Stream.KeepAlive == 0 {
		clientCfg.Stream.KeepAlive = DefaultKeepAlive
	}
	if clientCfg.Sync.IDField == "" {
		clientCfg.Sync.IDField = DefaultIDField
	}
	if clientCfg.Storage.DSN == "" {
		clientCfg.Storage.DSN = DefaultDSN
	}

	return clientCfg
}
