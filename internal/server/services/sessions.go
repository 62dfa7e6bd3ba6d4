package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

// dummyPassword is hashed once so that logins for unknown users spend the
// same bcrypt work as logins with a wrong password.
const dummyPassword = "taskkeeper-timing-equaliser"

// TokenPair bundles the access and refresh tokens issued at login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SessionService issues, refreshes, revokes and resolves tokens.
//
// A session moves Anonymous -> Authenticated on Login, stays Authenticated
// across Refresh (new access token, same refresh token) and ends on SignOut,
// which puts the presented token in the revocation set.
type SessionService struct {
	repomanager        repomanager.RepositoryManager
	codec              *auth.Codec
	logger             logging.Logger
	metrics            *metrics.Auth
	accessTTL          time.Duration
	refreshTTL         time.Duration
	refreshedAccessTTL time.Duration
	dummyHash          string
	now                func() time.Time
}

// NewSessionService builds a SessionService. am may be nil.
func NewSessionService(m repomanager.RepositoryManager, codec *auth.Codec, cfg *config.Config, logger logging.Logger, am *metrics.Auth) (*SessionService, error) {
	dummy, err := auth.HashPassword(dummyPassword, cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &SessionService{
		repomanager:        m,
		codec:              codec,
		logger:             logger.With("module", "sessions"),
		metrics:            am,
		accessTTL:          cfg.AccessTokenValidityDuration,
		refreshTTL:         cfg.RefreshTokenValidityDuration,
		refreshedAccessTTL: cfg.RefreshedAccessTokenValidityDuration,
		dummyHash:          dummy,
		now:                time.Now,
	}, nil
}

// Login verifies name and password and issues a token pair. An unknown
// name and a wrong password fail identically. The issuance record is an
// audit trail: failing to write it is logged and does not fail the login.
func (s *SessionService) Login(ctx context.Context, name, password string) (*TokenPair, error) {
	user, err := s.repomanager.Users(s.repomanager.Conn()).GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = auth.ComparePassword(password, s.dummyHash)
			s.metrics.Login(metrics.ResultFailure)
			return nil, kindError(common.ErrorUnauthenticated, common.ErrInvalidCredentials)
		}
		s.metrics.Login(metrics.ResultError)
		s.logger.Error(ctx, "login lookup failed", "error", err)
		return nil, storageError(err)
	}

	if err := auth.ComparePassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			s.metrics.Login(metrics.ResultFailure)
			return nil, kindError(common.ErrorUnauthenticated, common.ErrInvalidCredentials)
		}
		s.metrics.Login(metrics.ResultError)
		s.logger.Error(ctx, "stored password hash unusable", "user_id", user.ID, "error", err)
		return nil, kindError(common.ErrorInternal, err)
	}

	now := s.now()
	access, err := s.codec.Encode(auth.NewClaims(user.ID, user.Name, false, now, s.accessTTL))
	if err != nil {
		s.metrics.Login(metrics.ResultError)
		return nil, kindError(common.ErrorInternal, err)
	}
	refresh, err := s.codec.Encode(auth.NewClaims(user.ID, user.Name, true, now, s.refreshTTL))
	if err != nil {
		s.metrics.Login(metrics.ResultError)
		return nil, kindError(common.ErrorInternal, err)
	}

	s.metrics.Login(metrics.ResultSuccess)
	s.logger.Info(ctx, "user logged in", "user_id", user.ID, "logins", s.recordIssuance(ctx, user.ID, access))
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// recordIssuance writes the audit row for access and returns how many
// tokens the user has been issued so far, or -1 when the trail is unavailable.
func (s *SessionService) recordIssuance(ctx context.Context, userID, access string) int64 {
	issued := s.repomanager.IssuedTokens(s.repomanager.Conn())
	if err := issued.Create(ctx, userID, access); err != nil {
		s.logger.Warn(ctx, "issuance record not stored", "user_id", userID, "error", err)
		return -1
	}
	n, err := issued.CountByUser(ctx, userID)
	if err != nil {
		s.logger.Warn(ctx, "issuance records not counted", "user_id", userID, "error", err)
		return -1
	}
	return n
}

// Refresh mints a new access token for the subject of refreshToken. The
// refresh token must pass the same checks as Resolve and carry the refresh
// flag. It is not rotated.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.resolveClaims(ctx, refreshToken)
	if err != nil {
		s.metrics.Refresh(resultOf(err))
		return "", err
	}
	if !claims.Refresh {
		s.metrics.Refresh(metrics.ResultFailure)
		return "", kindError(common.ErrorBadRequest, common.ErrInvalidRefreshToken)
	}

	access, err := s.codec.Encode(auth.NewClaims(claims.UserID, claims.UserName, false, s.now(), s.refreshedAccessTTL))
	if err != nil {
		s.metrics.Refresh(metrics.ResultError)
		return "", kindError(common.ErrorInternal, err)
	}

	s.metrics.Refresh(metrics.ResultSuccess)
	s.logger.Debug(ctx, "access token refreshed", "user_id", claims.UserID)
	return access, nil
}

// SignOut adds token to the revocation set. Revocation is irreversible; a
// second sign-out with the same token fails with ErrTokenRevoked.
func (s *SessionService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		s.metrics.SignOut(metrics.ResultFailure)
		return kindError(common.ErrorUnauthorized, common.ErrMissingToken)
	}

	repo := s.repomanager.RevokedTokens(s.repomanager.Conn())

	revoked, err := repo.Exists(ctx, token)
	if err != nil {
		s.metrics.SignOut(metrics.ResultError)
		s.logger.Error(ctx, "revocation lookup failed", "error", err)
		return storageError(err)
	}
	if revoked {
		s.metrics.SignOut(metrics.ResultFailure)
		return kindError(common.ErrorUnauthenticated, common.ErrTokenRevoked)
	}

	if err := repo.Create(ctx, token, s.expiryOf(token)); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			s.metrics.SignOut(metrics.ResultFailure)
			return kindError(common.ErrorUnauthenticated, common.ErrTokenRevoked)
		}
		s.metrics.SignOut(metrics.ResultError)
		s.logger.Error(ctx, "revocation not stored", "error", err)
		return storageError(err)
	}

	s.metrics.SignOut(metrics.ResultSuccess)
	s.logger.Info(ctx, "token revoked")
	return nil
}

// Resolve returns the user id a token was issued to, or a tagged error from
// the first failing stage: revocation, decoding, expiry, subject.
func (s *SessionService) Resolve(ctx context.Context, token string) (string, error) {
	claims, err := s.resolveClaims(ctx, token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// PruneRevoked deletes revocation rows whose token has expired on its own.
func (s *SessionService) PruneRevoked(ctx context.Context) (int64, error) {
	n, err := s.repomanager.RevokedTokens(s.repomanager.Conn()).DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, storageError(err)
	}
	s.metrics.RevokedPruned(n)
	s.logger.Info(ctx, "expired revoked tokens pruned", "count", n)
	return n, nil
}

func (s *SessionService) resolveClaims(ctx context.Context, token string) (*auth.Claims, error) {
	if token == "" {
		return nil, kindError(common.ErrorUnauthorized, common.ErrMissingToken)
	}

	revoked, err := s.repomanager.RevokedTokens(s.repomanager.Conn()).Exists(ctx, token)
	if err != nil {
		return nil, storageError(err)
	}
	if revoked {
		return nil, kindError(common.ErrorUnauthenticated, common.ErrTokenRevoked)
	}

	claims, err := s.codec.Decode(token)
	if err != nil {
		return nil, kindError(common.ErrorUnauthenticated, err)
	}

	expiresAt, err := claims.ExpiresAt()
	if err != nil {
		return nil, kindError(common.ErrorUnauthenticated, err)
	}
	if !s.now().Before(expiresAt) {
		return nil, kindError(common.ErrorUnauthenticated, common.ErrTokenExpired)
	}

	if claims.UserID == "" {
		return nil, kindError(common.ErrorUnauthenticated, common.ErrMissingSubject)
	}

	return claims, nil
}

// expiryOf returns the token's own expiration, or now for tokens that
// cannot be decoded so they become prunable immediately.
func (s *SessionService) expiryOf(token string) time.Time {
	if claims, err := s.codec.Decode(token); err == nil {
		if t, err := claims.ExpiresAt(); err == nil {
			return t
		}
	}
	return s.now()
}

func resultOf(err error) string {
	if errors.Is(err, common.ErrorStorage) {
		return metrics.ResultError
	}
	return metrics.ResultFailure
}
