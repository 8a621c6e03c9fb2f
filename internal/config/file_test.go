package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseFile_JSON(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{
		"app": {"dbid": "db-json", "log_level": "debug"},
		"gateway": {"address": "localhost:8080", "request_timeout": "20s"},
		"stream": {"broker_url": "mqtt://broker:1883", "codec": "json", "keep_alive": 10},
		"storage": {"dsn": "tokens.db"},
		"sync": {"collection": "people", "private": true, "id_field": "_id"}
	}`)

	cfg, err := parseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "db-json", cfg.App.DBID)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "localhost:8080", cfg.Gateway.Address)
	assert.Equal(t, 20*time.Second, cfg.Gateway.RequestTimeout)
	assert.Equal(t, "mqtt://broker:1883", cfg.Stream.BrokerURL)
	assert.Equal(t, uint16(10), cfg.Stream.KeepAlive)
	assert.Equal(t, "tokens.db", cfg.Storage.DSN)
	assert.Equal(t, "people", cfg.Sync.Collection)
	assert.True(t, cfg.Sync.Private)
	assert.Equal(t, "_id", cfg.Sync.IDField)
	assert.Empty(t, cfg.ConfigFilePath)
}

func TestParseFile_YAML(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", `
app:
  dbid: db-yaml
gateway:
  address: https://gw.example.com
  request_timeout: 1m
stream:
  codec: msgpack
sync:
  collection: tasks
`)

	cfg, err := parseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "db-yaml", cfg.App.DBID)
	assert.Equal(t, "https://gw.example.com", cfg.Gateway.Address)
	assert.Equal(t, time.Minute, cfg.Gateway.RequestTimeout)
	assert.Equal(t, "msgpack", cfg.Stream.Codec)
	assert.Equal(t, "tasks", cfg.Sync.Collection)
}

func TestParseFile_NumericDuration(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{"gateway": {"request_timeout": 1000000000}}`)

	cfg, err := parseFile(path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Gateway.RequestTimeout)
}

func TestParseFile_Errors(t *testing.T) {
	_, err := parseFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = parseFile(writeTempConfig(t, "bad.json", `{`))
	assert.Error(t, err)

	_, err = parseFile(writeTempConfig(t, "bad.yaml", "gateway:\n  request_timeout: soon\n"))
	assert.Error(t, err)
}
