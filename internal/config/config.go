// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-cloud-sync client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the database identifier
	// and the log level.
	App App `envPrefix:"APP_"`

	// Gateway holds the address and timeout of the RPC gateway.
	Gateway Gateway `envPrefix:"GATEWAY_"`

	// Stream holds the MQTT broker settings of the live change stream.
	Stream Stream `envPrefix:"STREAM_"`

	// Storage holds the token cache backend settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync holds the defaults used when synchronizing a collection.
	Sync Sync `envPrefix:"SYNC_"`

	// ConfigFilePath is the optional path to a JSON or YAML configuration
	// file. When non-empty, the file is parsed and merged on top of the
	// values already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	ConfigFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// DBID identifies the application's database on the gateway. It is the
	// first argument of every db and sync call.
	// Env: APP_DBID
	DBID string `env:"DBID"`

	// LogLevel is the zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Gateway holds the settings of the outbound RPC transport.
type Gateway struct {
	// Address is the gateway base URL or host:port (e.g.
	// "https://gw.example.com" or "localhost:8080").
	// Env: GATEWAY_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout bounds a single gateway call (e.g. "15s").
	// Env: GATEWAY_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Stream holds the settings of the MQTT change stream.
type Stream struct {
	// BrokerURL is the MQTT broker URL (e.g. "mqtt://localhost:1883").
	// When empty, collections receive only their initial snapshot.
	// Env: STREAM_BROKER_URL
	BrokerURL string `env:"BROKER_URL"`

	// ClientID is the MQTT client identifier. A random one is generated
	// when empty.
	// Env: STREAM_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`

	// Codec names the payload encoding of change events: "json" or
	// "msgpack".
	// Env: STREAM_CODEC
	Codec string `env:"CODEC"`

	// KeepAlive is the MQTT keep-alive interval in seconds.
	// Env: STREAM_KEEP_ALIVE
	KeepAlive uint16 `env:"KEEP_ALIVE"`
}

// Storage holds the token cache backend settings.
type Storage struct {
	// DSN selects the backend: empty or "memory" for an in-process map, a
	// path ending in ".json" for a JSON file, a "postgres://" URL for
	// PostgreSQL, anything else is treated as an SQLite database path.
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`
	// Secret, when set, encrypts cached tokens at rest.
	// Env: STORAGE_SECRET
	Secret string `env:"SECRET"`
}

// Sync holds the defaults applied to synchronized collections.
type Sync struct {
	// Collection is the collection the terminal client watches.
	// Env: SYNC_COLLECTION
	Collection string `env:"COLLECTION"`

	// Private selects the per-user "sync-private" namespace.
	// Env: SYNC_PRIVATE
	Private bool `env:"PRIVATE"`

	// IDField is the record key holding the store-assigned identifier.
	// Env: SYNC_ID_FIELD
	IDField string `env:"ID_FIELD"`

	// Mode is the persistence mode requested from the sync service.
	// Env: SYNC_MODE
	Mode string `env:"MODE"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON/YAML file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withFile().
		build()
}
