// Package services contains server-side business logic: registration
// (UserService), the session authority (SessionService) and task management
// (TaskService). Errors are tagged with a kind from package common.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation"
)

// emailPattern only admits addresses in a .com domain.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+\.com$`)

// Registration is the input of UserService.Register.
type Registration struct {
	Name     string
	Password string
	Email    string
}

// Validate checks the name and password. The email is checked separately
// because a bad address is reported as a conflict.
func (r Registration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Password, validation.Required, validation.By(fitsBcrypt)),
	)
}

func fitsBcrypt(value interface{}) error {
	s, _ := value.(string)
	if len(s) > auth.MaxPasswordLength {
		return fmt.Errorf("must be at most %d bytes", auth.MaxPasswordLength)
	}
	return nil
}

func validateEmail(email string) error {
	return validation.Validate(email, validation.Required, validation.Match(emailPattern))
}

// UserService registers accounts.
type UserService struct {
	repomanager repomanager.RepositoryManager
	bcryptCost  int
	logger      logging.Logger
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		repomanager: m,
		bcryptCost:  cfg.BcryptCost,
		logger:      logger.With("module", "users"),
	}
}

// Register creates a user after checking that the email is well formed and
// that neither the email nor the name is taken. Both checks and the insert
// run in one transaction; the unique indexes catch anything that races past
// the checks.
func (s *UserService) Register(ctx context.Context, r Registration) (*models.User, error) {
	if err := r.Validate(); err != nil {
		return nil, kindError(common.ErrorBadRequest, kindError(common.ErrValidation, err))
	}
	if err := validateEmail(r.Email); err != nil {
		return nil, kindError(common.ErrorConflict, common.ErrInvalidEmail)
	}

	hash, err := auth.HashPassword(r.Password, s.bcryptCost)
	if err != nil {
		return nil, kindError(common.ErrorInternal, err)
	}

	var user *models.User
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if err := taken(repo.GetUserByEmail(ctx, r.Email)); err != nil {
			return err
		}
		if err := taken(repo.GetUserByName(ctx, r.Name)); err != nil {
			return err
		}

		created, err := repo.Create(ctx, &models.User{Name: r.Name, PasswordHash: hash, Email: r.Email})
		if err != nil {
			if errors.Is(err, common.ErrAlreadyExists) {
				return kindError(common.ErrorConflict, common.ErrAlreadyExists)
			}
			return storageError(err)
		}
		user = created
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			s.logger.Info(ctx, "registration rejected", "reason", "already exists")
		} else {
			s.logger.Error(ctx, "registration failed", "error", err)
		}
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// taken turns the result of a uniqueness lookup into a conflict, a storage
// error or nil when the value is free.
func taken(_ *models.User, err error) error {
	switch {
	case err == nil:
		return kindError(common.ErrorConflict, common.ErrAlreadyExists)
	case errors.Is(err, common.ErrorNotFound):
		return nil
	default:
		return storageError(err)
	}
}
