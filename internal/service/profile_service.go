package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	app_errors "questforge/internal/errors"
	"questforge/internal/model"
	"questforge/internal/repository"
)

const maxDisplayNameLength = 50

// ProfileService owns profile lifecycle: creation on first session and the
// once-per-session streak evaluation. Progression state itself is mutated
// only by ProgressionService and StreakService.
type ProfileService struct {
	repo   repository.Repository
	streak *StreakService
}

func NewProfileService(repo repository.Repository, streak *StreakService) *ProfileService {
	return &ProfileService{repo: repo, streak: streak}
}

// StartSession returns the user's profile, creating it on first contact,
// and runs the streak evaluation exactly once. A fresh profile has no
// last-active date, so its evaluation is a no-op until the first XP award.
func (s *ProfileService) StartSession(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: could not load profile: %v", app_errors.ErrPersistence, err)
		}

		now := time.Now().UTC()
		profile = &model.Profile{
			ID:           uuid.NewString(),
			UserID:       userID,
			CurrentLevel: 1,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.repo.CreateProfile(ctx, profile); err != nil {
			return nil, fmt.Errorf("%w: could not create profile: %v", app_errors.ErrPersistence, err)
		}
		slog.Info("Created new profile", "user_id", userID)
		return profile, nil
	}

	return s.streak.Evaluate(ctx, profile)
}

// Get returns the user's profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, app_errors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: could not load profile: %v", app_errors.ErrPersistence, err)
	}
	return profile, nil
}

// SetDisplayName stores the onboarding display name.
func (s *ProfileService) SetDisplayName(ctx context.Context, userID, displayName string) (*model.Profile, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, fmt.Errorf("%w: display name must not be empty", app_errors.ErrValidation)
	}
	if len(displayName) > maxDisplayNameLength {
		return nil, fmt.Errorf("%w: display name must be at most %d characters", app_errors.ErrValidation, maxDisplayNameLength)
	}

	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateDisplayName(ctx, userID, displayName); err != nil {
		return nil, fmt.Errorf("%w: could not update display name: %v", app_errors.ErrPersistence, err)
	}
	return s.Get(ctx, userID)
}
