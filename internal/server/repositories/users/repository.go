// Package users declares the credential store for registered accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository persists users. Lookups return common.ErrorNotFound when no row
// matches; Create returns common.ErrAlreadyExists when the name or email is
// taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByName(ctx context.Context, name string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
