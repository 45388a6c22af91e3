package service

import (
	"context"
	"fmt"
	"time"

	app_errors "questforge/internal/errors"
	"questforge/internal/model"
	"questforge/internal/repository"
)

// ProgressionService translates quest completions into XP and level changes
// on the profile. It trusts its caller (the quest ledger's one-way
// completion guard) to invoke AwardXP exactly once per real award.
type ProgressionService struct {
	repo repository.Repository
	loc  *time.Location
	now  func() time.Time
}

func NewProgressionService(repo repository.Repository, loc *time.Location) *ProgressionService {
	return &ProgressionService{repo: repo, loc: loc, now: time.Now}
}

// LevelForXP maps a total XP count to a level: level n covers the range
// [100*(n-1), 100*n). Pure and deterministic.
func LevelForXP(totalXP int) int {
	return totalXP/100 + 1
}

// AwardXP adds a positive XP amount to the profile, recomputes the level and
// persists both together with today's activity date in one update. The
// returned profile reflects the new values; a store failure is surfaced as
// ErrPersistence, never swallowed.
func (s *ProgressionService) AwardXP(ctx context.Context, profile *model.Profile, amount int) (*model.Profile, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: xp amount must be positive, got %d", app_errors.ErrValidation, amount)
	}

	newTotalXP := profile.TotalXP + amount
	newLevel := LevelForXP(newTotalXP)
	today := startOfDay(s.now().In(s.loc))

	if err := s.repo.UpdateProfileProgress(ctx, profile.UserID, newTotalXP, newLevel, today); err != nil {
		return nil, fmt.Errorf("%w: could not persist xp award: %v", app_errors.ErrPersistence, err)
	}

	updated := *profile
	updated.TotalXP = newTotalXP
	updated.CurrentLevel = newLevel
	updated.LastActiveDate = &today
	return &updated, nil
}
