package service

import "errors"

var (
	ErrPasswordsDoNotMatch = errors.New("passwords do not match")
	ErrWrongPassword       = errors.New("wrong password")
	ErrLoginAlreadyExists  = errors.New("login already exists")
	ErrNotAuthenticated    = errors.New("not authenticated")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrNoSession is returned by RestoreSession when nothing is cached.
	ErrNoSession = errors.New("no cached session")
	// ErrEmptyToken is returned when the gateway accepts a login but sends
	// no token.
	ErrEmptyToken = errors.New("gateway returned an empty token")
	// ErrEmptyCredentials is returned for an empty login or password.
	ErrEmptyCredentials = errors.New("login and password are required")
)
