package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	app_errors "questforge/internal/errors"
	"questforge/internal/model"
	"questforge/internal/repository"
)

// StreakService re-evaluates the daily continuity counter once per session
// start, comparing today against the profile's last-active date at calendar
// day granularity in the configured timezone.
type StreakService struct {
	repo repository.Repository
	loc  *time.Location
	now  func() time.Time
}

func NewStreakService(repo repository.Repository, loc *time.Location) *StreakService {
	return &StreakService{repo: repo, loc: loc, now: time.Now}
}

// Evaluate applies the streak state machine and persists any transition:
//
//	same day        -> unchanged, no write
//	yesterday       -> streak + 1
//	gap of 2+ days  -> streak reset to 0
//	future date     -> anomaly, logged, no write
//	no date on file -> no-op; the streak is established by the first XP award
func (s *StreakService) Evaluate(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	if profile.LastActiveDate == nil {
		return profile, nil
	}

	today := startOfDay(s.now().In(s.loc))
	lastActive := startOfDay(profile.LastActiveDate.In(s.loc))
	diffDays := daysBetween(lastActive, today)

	var newStreak int
	switch {
	case diffDays == 0:
		return profile, nil
	case diffDays < 0:
		slog.Warn("Profile last-active date is in the future, skipping streak evaluation.",
			"user_id", profile.UserID, "last_active", lastActive, "today", today)
		return profile, nil
	case diffDays == 1:
		newStreak = profile.CurrentStreak + 1
	default:
		newStreak = 0
	}

	if err := s.repo.UpdateProfileStreak(ctx, profile.UserID, newStreak, today); err != nil {
		return nil, fmt.Errorf("%w: could not persist streak: %v", app_errors.ErrPersistence, err)
	}

	updated := *profile
	updated.CurrentStreak = newStreak
	updated.LastActiveDate = &today
	return &updated, nil
}

// startOfDay truncates a time to midnight of its calendar day, keeping the
// location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b. Rounding absorbs the odd
// hour a DST transition adds or removes between two midnights.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Round(24*time.Hour) / (24 * time.Hour))
}
