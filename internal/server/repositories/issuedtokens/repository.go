// Package issuedtokens stores the audit trail of access tokens handed out at
// login. Rows are never read back for validation.
package issuedtokens

import "context"

type Repository interface {
	// Create records that accessToken was issued to userID.
	Create(ctx context.Context, userID string, accessToken string) error

	// CountByUser returns how many tokens were issued to userID.
	CountByUser(ctx context.Context, userID string) (int64, error)
}
