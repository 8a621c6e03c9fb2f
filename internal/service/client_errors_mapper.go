// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-cloud-sync/internal/app"
	"github.com/MKhiriev/go-cloud-sync/internal/rpc"
)

// mapAuthError translates a transport or gateway error from an auth call
// into a service error. The original error stays in the chain.
func mapAuthError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractMessage(err)

	var mapped error
	switch {
	case strings.EqualFold(msg, app.MsgInvalidLoginPassword):
		mapped = ErrWrongPassword
	case strings.EqualFold(msg, app.MsgLoginAlreadyExists):
		mapped = ErrLoginAlreadyExists
	case strings.EqualFold(msg, app.MsgTokenIsExpired):
		mapped = ErrTokenIsExpired
	case strings.EqualFold(msg, app.MsgTokenIsExpiredOrInvalid):
		mapped = ErrTokenIsExpiredOrInvalid
	case strings.EqualFold(msg, app.MsgNotAuthenticated):
		mapped = ErrNotAuthenticated
	case errors.Is(err, rpc.ErrUnauthorized):
		mapped = ErrWrongPassword
	case errors.Is(err, rpc.ErrConflict):
		mapped = ErrLoginAlreadyExists
	default:
		return err
	}

	return fmt.Errorf("%w: %w", mapped, err)
}

// extractMessage returns the gateway's message: the RemoteError payload
// message, or the body part of an HTTP status error ("conflict: <body>").
func extractMessage(err error) string {
	var remote *rpc.RemoteError
	if errors.As(err, &remote) {
		return strings.TrimSpace(remote.Message())
	}

	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return strings.TrimSpace(msg[idx+2:])
	}
	return msg
}
