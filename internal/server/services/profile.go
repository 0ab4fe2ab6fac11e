package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/common"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/repositories/profiles"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/repositories/users"
)

// CurrentUser bundles account fields with the dietary profile for the
// current-user endpoint.
type CurrentUser struct {
	Email              string
	Username           string
	DailyRateKcal      int
	NotAllowedProducts []string
}

// ProfileService reads the already-authenticated user's account and profile
// data.
type ProfileService struct {
	users    users.Repository
	profiles profiles.Repository
}

func NewProfileService(userRepo users.Repository, profileRepo profiles.Repository) *ProfileService {
	return &ProfileService{users: userRepo, profiles: profileRepo}
}

// CurrentUser returns the profile for userID. A user without a stored daily
// rate gets zero kcal and an empty product list.
func (s *ProfileService) CurrentUser(ctx context.Context, userID string) (*CurrentUser, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("searching user: %w", err)
	}

	out := &CurrentUser{
		Email:              user.Email,
		Username:           user.Username,
		NotAllowedProducts: []string{},
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return out, nil
		}
		return nil, fmt.Errorf("searching profile: %w", err)
	}

	out.DailyRateKcal = profile.DailyRateKcal
	if profile.NotAllowedProducts != nil {
		out.NotAllowedProducts = profile.NotAllowedProducts
	}

	return out, nil
}
