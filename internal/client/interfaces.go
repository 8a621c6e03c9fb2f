// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the interactive front end driven by [App].
type UI interface {
	// LoginFlow blocks until the user is authenticated and returns the login.
	LoginFlow(ctx context.Context) (string, error)
	// Watch shows the named synchronized collection until the user quits.
	Watch(ctx context.Context, name string) error
}
