// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_DBID":      "db-123",
		"APP_LOG_LEVEL": "info",

		"GATEWAY_ADDRESS":         "https://gw.example.com",
		"GATEWAY_REQUEST_TIMEOUT": "30s",

		"STREAM_BROKER_URL": "mqtt://localhost:1883",
		"STREAM_CLIENT_ID":  "client-1",
		"STREAM_CODEC":      "msgpack",
		"STREAM_KEEP_ALIVE": "45",

		"STORAGE_DSN":    "/tmp/tokens.db",
		"STORAGE_SECRET": "s3cret",

		"SYNC_COLLECTION": "people",
		"SYNC_PRIVATE":    "true",
		"SYNC_ID_FIELD":   "_id",
		"SYNC_MODE":       "mongo",
	})

	// Act
	cfg, err := parseEnv()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/path/to/config.json", cfg.ConfigFilePath)
	assert.Equal(t, "db-123", cfg.App.DBID)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "https://gw.example.com", cfg.Gateway.Address)
	assert.Equal(t, 30*time.Second, cfg.Gateway.RequestTimeout)
	assert.Equal(t, "mqtt://localhost:1883", cfg.Stream.BrokerURL)
	assert.Equal(t, "client-1", cfg.Stream.ClientID)
	assert.Equal(t, "msgpack", cfg.Stream.Codec)
	assert.Equal(t, uint16(45), cfg.Stream.KeepAlive)
	assert.Equal(t, "/tmp/tokens.db", cfg.Storage.DSN)
	assert.Equal(t, "s3cret", cfg.Storage.Secret)
	assert.Equal(t, "people", cfg.Sync.Collection)
	assert.True(t, cfg.Sync.Private)
	assert.Equal(t, "_id", cfg.Sync.IDField)
	assert.Equal(t, "mongo", cfg.Sync.Mode)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"GATEWAY_REQUEST_TIMEOUT": "soon"})

	_, err := parseEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
