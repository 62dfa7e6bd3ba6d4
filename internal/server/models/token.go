package models

import "time"

// IssuedToken is the audit row written for every successful login.
type IssuedToken struct {
	ID          string
	UserID      string
	AccessToken string
	CreatedAt   time.Time
}

// RevokedToken marks a token string as signed out. ExpiresAt is the token's
// own expiration and only drives pruning.
type RevokedToken struct {
	Token     string
	ExpiresAt time.Time
	RevokedAt time.Time
}
