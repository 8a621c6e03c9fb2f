// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

// validate checks that the final merged [StructuredConfig] is usable.
// Durations must not be negative; everything else is checked on the client
// view, where defaults are known.
func (cfg *StructuredConfig) validate() error {
	if cfg.Gateway.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidGatewayConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.App.DBID == "" {
		return fmt.Errorf("%w: empty dbid", ErrInvalidAppConfigs)
	}

	if cfg.Gateway.Address == "" || cfg.Gateway.RequestTimeout <= 0 {
		return ErrInvalidGatewayConfigs
	}

	if cfg.Stream.Codec != "json" && cfg.Stream.Codec != "msgpack" {
		return fmt.Errorf("%w: unknown codec %q", ErrInvalidStreamConfigs, cfg.Stream.Codec)
	}
	if cfg.Stream.BrokerURL != "" {
		u, err := url.Parse(cfg.Stream.BrokerURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: broker url must include scheme and host", ErrInvalidStreamConfigs)
		}
	}

	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
