// Package auth holds the server's credential primitives: the JWT codec used
// for access and refresh tokens and the bcrypt password helpers.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload carried by every token the server issues.
//
// Expiration is an RFC 3339 UTC timestamp. It lives in a custom claim rather
// than "exp" because expiry is checked by the session layer, not the codec.
type Claims struct {
	UserID     string `json:"id"`
	UserName   string `json:"name"`
	Refresh    bool   `json:"ref_token"`
	Expiration string `json:"expiration"`
	jwt.RegisteredClaims
}

// NewClaims builds claims for userID that expire ttl after now. Each call
// gets a fresh token id, so two tokens minted in the same second differ.
func NewClaims(userID, userName string, refresh bool, now time.Time, ttl time.Duration) *Claims {
	return &Claims{
		UserID:     userID,
		UserName:   userName,
		Refresh:    refresh,
		Expiration: now.Add(ttl).UTC().Format(time.RFC3339),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
}

// ExpiresAt parses the expiration claim.
func (c *Claims) ExpiresAt() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, c.Expiration)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expiration: %v", common.ErrMalformedToken, err)
	}
	return t, nil
}

// Codec signs and verifies tokens with a single HMAC secret and algorithm.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
}

// NewCodec returns a Codec for one of HS256, HS384 or HS512.
func NewCodec(secret []byte, algorithm string) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty signing secret")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &Codec{secret: secret, method: method}, nil
}

// Algorithm returns the configured algorithm name.
func (c *Codec) Algorithm() string {
	return c.method.Alg()
}

// Encode signs claims and returns the compact JWT.
func (c *Codec) Encode(claims *Claims) (string, error) {
	token, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Decode verifies the signature of tokenString and returns its claims.
// It returns common.ErrInvalidSignature when the signature or algorithm does
// not match and common.ErrMalformedToken when the token or its expiration
// cannot be parsed. Expiry itself is not checked.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrTokenUnverifiable) {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidSignature, err)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}

	if _, err := claims.ExpiresAt(); err != nil {
		return nil, err
	}

	return claims, nil
}
