// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validStructured() *StructuredConfig {
	return &StructuredConfig{
		App:     App{DBID: "db"},
		Gateway: Gateway{Address: "localhost:8080"},
	}
}

func TestNewClientConfig_Defaults(t *testing.T) {
	cfg := NewClientConfig(validStructured())

	assert.Equal(t, DefaultRequestTimeout, cfg.Gateway.RequestTimeout)
	assert.Equal(t, DefaultCodec, cfg.Stream.Codec)
	assert.Equal(t, uint16(DefaultKeepAlive), cfg.Stream.KeepAlive)
	assert.Equal(t, DefaultIDField, cfg.Sync.IDField)
	assert.Equal(t, DefaultDSN, cfg.Storage.DSN)
	assert.NoError(t, cfg.validate())
}

func TestNewClientConfig_KeepsExplicitValues(t *testing.T) {
	s := validStructured()
	s.Gateway.RequestTimeout = 3 * time.Second
	s.Stream.Codec = " MsgPack "
	s.Sync.IDField = "_id"

	cfg := NewClientConfig(s)
	assert.Equal(t, 3*time.Second, cfg.Gateway.RequestTimeout)
	assert.Equal(t, "msgpack", cfg.Stream.Codec)
	assert.Equal(t, "_id", cfg.Sync.IDField)
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ClientConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(c *ClientConfig) {}},
		{name: "missing dbid", mutate: func(c *ClientConfig) { c.App.DBID = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "missing gateway", mutate: func(c *ClientConfig) { c.Gateway.Address = "" }, wantErr: ErrInvalidGatewayConfigs},
		{name: "zero timeout", mutate: func(c *ClientConfig) { c.Gateway.RequestTimeout = 0 }, wantErr: ErrInvalidGatewayConfigs},
		{name: "unknown codec", mutate: func(c *ClientConfig) { c.Stream.Codec = "xml" }, wantErr: ErrInvalidStreamConfigs},
		{name: "broker without scheme", mutate: func(c *ClientConfig) { c.Stream.BrokerURL = "localhost:1883" }, wantErr: ErrInvalidStreamConfigs},
		{name: "broker ok", mutate: func(c *ClientConfig) { c.Stream.BrokerURL = "mqtt://localhost:1883" }},
		{name: "empty dsn", mutate: func(c *ClientConfig) { c.Storage.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewClientConfig(validStructured())
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
