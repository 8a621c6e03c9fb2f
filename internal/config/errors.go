package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidGatewayConfigs indicates invalid gateway settings
	// (for example, missing address or non-positive request timeout).
	ErrInvalidGatewayConfigs = errors.New("invalid gateway configuration")
	// ErrInvalidStreamConfigs indicates invalid change-stream settings
	// (for example, unknown codec or malformed broker URL).
	ErrInvalidStreamConfigs = errors.New("invalid stream configuration")
	// ErrInvalidStorageConfigs indicates invalid token cache settings.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing dbid).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
)
