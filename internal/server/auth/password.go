package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordLength is the number of password bytes bcrypt takes into account.
const MaxPasswordLength = 72

// HashPassword returns the bcrypt hash of plain at the given cost.
func HashPassword(plain string, cost int) (string, error) {
	if plain == "" {
		return "", common.ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword reports whether plain matches hash. A mismatch is
// common.ErrInvalidCredentials; a corrupt hash is returned as is. Candidates
// longer than MaxPasswordLength never match, even when their first
// MaxPasswordLength bytes do.
func ComparePassword(plain, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		if len(plain) > MaxPasswordLength {
			return common.ErrInvalidCredentials
		}
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return common.ErrInvalidCredentials
	}
	return fmt.Errorf("compare password: %w", err)
}
