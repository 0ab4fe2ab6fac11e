// Package auth implements the token codec: issuing and verifying the signed,
// time-bounded JWTs used as access and refresh tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/common"
)

// Claims includes the registered claims plus the subject's user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Codec signs and verifies token pairs. The secrets and lifetimes are fixed
// at construction; a Codec is immutable and safe for concurrent use.
type Codec struct {
	accessSecret    []byte
	refreshSecret   []byte
	accessValidity  time.Duration
	refreshValidity time.Duration
}

func NewCodec(accessSecret, refreshSecret []byte, accessValidity, refreshValidity time.Duration) *Codec {
	return &Codec{
		accessSecret:    accessSecret,
		refreshSecret:   refreshSecret,
		accessValidity:  accessValidity,
		refreshValidity: refreshValidity,
	}
}

// RefreshValidity returns the refresh token lifetime, which is also the
// session expiry window.
func (c *Codec) RefreshValidity() time.Duration {
	return c.refreshValidity
}

// IssuePair mints a fresh access/refresh pair for userID. Each token carries
// a unique jti, so two pairs issued for the same subject in the same second
// still differ.
func (c *Codec) IssuePair(userID string) (*TokenPair, error) {
	access, err := generateToken(userID, c.accessSecret, c.accessValidity)
	if err != nil {
		return nil, err
	}
	refresh, err := generateToken(userID, c.refreshSecret, c.refreshValidity)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess checks the signature and expiry of an access token and returns
// the subject's user id.
func (c *Codec) VerifyAccess(tokenString string) (string, error) {
	return verifyToken(tokenString, c.accessSecret)
}

// VerifyRefresh checks the signature and expiry of a refresh token and
// returns the subject's user id. Expired tokens yield common.ErrTokenExpired,
// everything else common.ErrInvalidToken; the split is for diagnostics only.
func (c *Codec) VerifyRefresh(tokenString string) (string, error) {
	return verifyToken(tokenString, c.refreshSecret)
}

func generateToken(userID string, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		UserID: userID,
	})

	return token.SignedString(secretKey)
}

func verifyToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
