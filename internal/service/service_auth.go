// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/rpc"
	"github.com/MKhiriev/go-cloud-sync/internal/store"
	"github.com/MKhiriev/go-cloud-sync/internal/utils"
	"github.com/MKhiriev/go-cloud-sync/models"
)

const (
	ServiceAuth  = "auth"
	ServiceLogin = "_stackio"

	// sessionKey is the token store key holding the JSON-encoded session.
	sessionKey = "session"
)

type authService struct {
	caller rpc.Caller
	holder TokenHolder
	tokens store.TokenStore
	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService returns an [AuthService]. Tokens obtained by Login are
// cached in tokens and installed on holder.
func NewAuthService(caller rpc.Caller, holder TokenHolder, tokens store.TokenStore, log *logger.Logger) AuthService {
	return &authService{
		caller: caller,
		holder: holder,
		tokens: tokens,
		now:    time.Now,
		logger: log,
	}
}

func (a *authService) Register(ctx context.Context, login, password, password2 string, cb rpc.Callback) {
	if password != password2 {
		reply(cb, rpc.Result{}, ErrPasswordsDoNotMatch)
		return
	}

	a.caller.Call(ctx, ServiceAuth, "register", func(res rpc.Result, err error) {
		reply(cb, res, mapAuthError(err))
	}, login, password)
}

func (a *authService) Login(ctx context.Context, login, password string, cb rpc.Callback) {
	if strings.TrimSpace(login) == "" || password == "" {
		reply(cb, rpc.Result{}, ErrEmptyCredentials)
		return
	}

	a.caller.Call(ctx, ServiceLogin, "login", func(res rpc.Result, err error) {
		if err != nil {
			reply(cb, res, mapAuthError(err))
			return
		}

		token, err := decodeToken(res)
		if err != nil {
			reply(cb, res, err)
			return
		}

		session := a.newSession(login, token)
		a.holder.SetToken(session.Token)
		if err = a.saveSession(ctx, session); err != nil {
			a.logger.Warn().Err(err).Str("func", "*authService.Login").Msg("session is not cached, it will not survive a restart")
		}

		reply(cb, res, nil)
	}, login, password)
}

func (a *authService) Logout(ctx context.Context, cb rpc.Callback) {
	a.caller.Call(ctx, ServiceAuth, "logout", func(res rpc.Result, err error) {
		// local state is dropped even when the gateway call fails
		a.holder.SetToken("")
		if clearErr := a.tokens.Clear(context.WithoutCancel(ctx)); clearErr != nil {
			a.logger.Err(clearErr).Str("func", "*authService.Logout").Msg("error clearing token cache")
		}

		reply(cb, res, mapAuthError(err))
	})
}

func (a *authService) CheckAvailable(ctx context.Context, login string, cb func(available bool, err error)) {
	a.caller.Call(ctx, ServiceAuth, "hasUser", func(res rpc.Result, err error) {
		if cb == nil {
			return
		}
		if err != nil {
			cb(false, mapAuthError(err))
			return
		}

		var hasUser bool
		if err = res.Decode(&hasUser); err != nil {
			cb(false, err)
			return
		}
		cb(!hasUser, nil)
	}, login)
}

func (a *authService) RestoreSession(ctx context.Context) (models.Session, error) {
	raw, err := a.tokens.Get(ctx, sessionKey)
	if errors.Is(err, store.ErrKeyNotFound) {
		return models.Session{}, ErrNoSession
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("read cached session: %w", err)
	}

	var session models.Session
	if err = json.Unmarshal([]byte(raw), &session); err != nil || session.Token == "" {
		a.logger.Warn().Err(err).Str("func", "*authService.RestoreSession").Msg("discarding unreadable cached session")
		_ = a.tokens.Clear(ctx)
		return models.Session{}, ErrNoSession
	}

	if session.Expired(a.now()) {
		if err = a.tokens.Clear(ctx); err != nil {
			a.logger.Err(err).Str("func", "*authService.RestoreSession").Msg("error clearing expired session")
		}
		return models.Session{}, ErrTokenIsExpired
	}

	a.holder.SetToken(session.Token)
	a.logger.Debug().Str("login", session.Login).Msg("session restored")
	return session, nil
}

func (a *authService) newSession(login, token string) models.Session {
	session := models.Session{Login: login, Token: token}

	exp, err := utils.ParseTokenExpiry(token)
	switch {
	case errors.Is(err, utils.ErrNotJWT):
		// opaque token, expiry unknown
	case err != nil:
		a.logger.Warn().Err(err).Msg("error reading token expiry")
	default:
		session.ExpiresAt = exp
	}

	return session
}

func (a *authService) saveSession(ctx context.Context, session models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return a.tokens.Set(context.WithoutCancel(ctx), sessionKey, string(raw))
}

// decodeToken accepts either {"token": "..."} or a bare string result.
func decodeToken(res rpc.Result) (string, error) {
	var out models.LoginResult
	if err := res.Decode(&out); err != nil {
		var token string
		if strErr := res.Decode(&token); strErr != nil {
			return "", fmt.Errorf("decode login result: %w", err)
		}
		out.Token = token
	}

	if strings.TrimSpace(out.Token) == "" {
		return "", ErrEmptyToken
	}
	return out.Token, nil
}

func reply(cb rpc.Callback, res rpc.Result, err error) {
	if cb != nil {
		cb(res, err)
	}
}
