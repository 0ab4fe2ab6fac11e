// Package services contains the server-side business logic. This file
// implements AuthService: registration, credential login, logout, and the
// single-use refresh-rotation protocol over the session store.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/common"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/logging"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/auth"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/models"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/repositories/sessions"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/repositories/users"
)

// AuthService orchestrates the token codec and the session store. It never
// retries storage failures; they propagate to the boundary as internal
// errors.
type AuthService struct {
	codec    *auth.Codec
	sessions sessions.Store
	users    users.Repository
	logger   logging.Logger
}

func NewAuthService(codec *auth.Codec, store sessions.Store, userRepo users.Repository, logger logging.Logger) *AuthService {
	return &AuthService{
		codec:    codec,
		sessions: store,
		users:    userRepo,
		logger:   logger.With("module", "auth_service"),
	}
}

// Register creates a user with a bcrypt-hashed password. A duplicate email
// yields common.ErrorAlreadyExists.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user, err := s.users.Create(ctx, &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and, on success, issues a token pair and
// creates a session expiring one full refresh window from now. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("searching user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.codec.IssuePair(user.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	expiresAt := time.Now().Add(s.codec.RefreshValidity())
	if err := s.sessions.Create(ctx, user.ID, pair.RefreshToken, expiresAt); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return pair, nil
}

// Logout deletes the session holding refreshToken. Absence of a matching
// session is not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.sessions.DeleteByToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Refresh exchanges a live refresh token for a fresh pair, rotating the
// session in place so the old token can never be exchanged again.
//
// The session lookup runs before signature verification: a structurally
// valid but already-rotated token is rejected without spending a crypto
// check, and both failure modes surface as the same ErrorSessionInvalid so
// callers cannot distinguish them.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	if refreshToken == "" {
		return nil, common.ErrorUnauthorized
	}

	session, err := s.sessions.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorSessionInvalid
		}
		return nil, fmt.Errorf("searching session: %w", err)
	}

	if _, err := s.codec.VerifyRefresh(refreshToken); err != nil {
		// exact reason stays in the logs; the caller only learns that the
		// session is invalid
		s.logger.Warn(ctx, "refresh token rejected", "reason", err.Error())
		return nil, common.ErrorSessionInvalid
	}

	pair, err := s.codec.IssuePair(session.UserID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	expiresAt := time.Now().Add(s.codec.RefreshValidity())
	if err := s.sessions.Rotate(ctx, refreshToken, pair.RefreshToken, expiresAt); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// a concurrent refresh or logout won the race
			return nil, common.ErrorSessionInvalid
		}
		return nil, fmt.Errorf("rotating session: %w", err)
	}

	return pair, nil
}
