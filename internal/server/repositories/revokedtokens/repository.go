// Package revokedtokens declares the revocation set: token strings that were
// signed out before their natural expiry.
package revokedtokens

import (
	"context"
	"time"
)

// Repository defines operations on the revocation set.
type Repository interface {
	// Create adds token to the set. expiresAt is the token's own expiration
	// and is used only for pruning. Adding a token twice returns
	// common.ErrAlreadyExists.
	Create(ctx context.Context, token string, expiresAt time.Time) error

	// Exists reports whether token has been revoked.
	Exists(ctx context.Context, token string) (bool, error)

	// DeleteExpired removes rows whose expiresAt is before now and returns
	// how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
