package auth

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_Compare(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.NoError(t, ComparePassword("s3cret", hash))
	assert.ErrorIs(t, ComparePassword("wrong", hash), common.ErrInvalidCredentials)
	assert.ErrorIs(t, ComparePassword("", hash), common.ErrInvalidCredentials)
}

func TestHashPassword_SaltsEachHash(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_Empty(t *testing.T) {
	t.Parallel()

	_, err := HashPassword("", bcrypt.MinCost)
	assert.ErrorIs(t, err, common.ErrEmptyPassword)
}

func TestComparePassword_CorruptHash(t *testing.T) {
	t.Parallel()

	err := ComparePassword("pw", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestComparePassword_LongerThanLimit(t *testing.T) {
	t.Parallel()

	pw := strings.Repeat("x", MaxPasswordLength)
	hash, err := HashPassword(pw, bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(pw, hash))
	assert.ErrorIs(t, ComparePassword(pw+"tail", hash), common.ErrInvalidCredentials)
}
