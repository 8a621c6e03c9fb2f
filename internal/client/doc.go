// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It runs the transport workers (event loop and change-stream subscriber)
// in the background, drives the terminal UI through login and the
// collection viewer, and shuts everything down in order on exit.
package client
