// Package common defines shared constants and sentinel errors used across
// client and server layers of TaskKeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Error kinds. Services wrap one of these around a detail error so the
	// transport layer can pick a status code with errors.Is.
	ErrorUnauthorized    = errors.New("unauthorized")
	ErrorUnauthenticated = errors.New("unauthenticated")
	ErrorConflict        = errors.New("conflict")
	ErrorNotFound        = errors.New("not found")
	ErrorStorage         = errors.New("storage error")
	ErrorBadRequest      = errors.New("bad request")
	ErrorInternal        = errors.New("internal error")

	// Token errors.
	ErrInvalidSignature    = errors.New("invalid token signature")
	ErrMalformedToken      = errors.New("malformed token")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenRevoked        = errors.New("token revoked")
	ErrMissingSubject      = errors.New("user id not found in token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrMissingToken        = errors.New("missing token")

	// Credential and registration errors.
	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrEmptyPassword      = errors.New("password must not be empty")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrAlreadyExists      = errors.New("already exists")
	ErrValidation         = errors.New("validation error")
)
