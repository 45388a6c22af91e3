package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "questforge/internal/errors"
	"questforge/internal/model"
	"questforge/internal/repository/mocks"
)

func TestStreakService_Evaluate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*StreakService, *mocks.MockRepository) {
		repo := mocks.NewMockRepository(t)
		svc := NewStreakService(repo, time.UTC)
		svc.now = func() time.Time { return now }
		return svc, repo
	}

	dateAt := func(daysAgo int, hour int) *time.Time {
		d := today.AddDate(0, 0, -daysAgo).Add(time.Duration(hour) * time.Hour)
		return &d
	}

	t.Run("No last-active date - no transition", func(t *testing.T) {
		svc, _ := setup(t)
		profile := &model.Profile{UserID: "u1", CurrentStreak: 0}

		updated, err := svc.Evaluate(ctx, profile)
		require.NoError(t, err)
		assert.Equal(t, 0, updated.CurrentStreak)
		assert.Nil(t, updated.LastActiveDate)
	})

	t.Run("Already active today - unchanged, no write", func(t *testing.T) {
		svc, _ := setup(t)
		profile := &model.Profile{UserID: "u1", CurrentStreak: 5, LastActiveDate: dateAt(0, 7)}

		updated, err := svc.Evaluate(ctx, profile)
		require.NoError(t, err)
		assert.Equal(t, 5, updated.CurrentStreak)
	})

	t.Run("Active yesterday - streak increments", func(t *testing.T) {
		svc, repo := setup(t)
		profile := &model.Profile{UserID: "u1", CurrentStreak: 5, LastActiveDate: dateAt(1, 0)}

		repo.On("UpdateProfileStreak", ctx, "u1", 6, today).Return(nil).Once()

		updated, err := svc.Evaluate(ctx, profile)
		require.NoError(t, err)
		assert.Equal(t, 6, updated.CurrentStreak)
		require.NotNil(t, updated.LastActiveDate)
		assert.Equal(t, today, *updated.LastActiveDate)
	})

	t.Run("Gap of three days - streak resets to zero", func(t *testing.T) {
		svc, repo := setup(t)
		profile := &model.Profile{UserID: "u1", CurrentStreak: 9, LastActiveDate: dateAt(3, 0)}

		repo.On("UpdateProfileStreak", ctx, "u1", 0, today).Return(nil).Once()

		updated, err := svc.Evaluate(ctx, profile)
		require.NoError(t, err)
		assert.Equal(t, 0, updated.CurrentStreak)
	})

	t.Run("Last-active in the future - defensive no-op", func(t *testing.T) {
		svc, _ := setup(t)
		future := today.AddDate(0, 0, 2)
		profile := &model.Profile{UserID: "u1", CurrentStreak: 3, LastActiveDate: &future}

		updated, err := svc.Evaluate(ctx, profile)
		require.NoError(t, err)
		assert.Equal(t, 3, updated.CurrentStreak)
	})

	t.Run("Failure - store error is surfaced", func(t *testing.T) {
		svc, repo := setup(t)
		profile := &model.Profile{UserID: "u1", CurrentStreak: 1, LastActiveDate: dateAt(1, 0)}

		repo.On("UpdateProfileStreak", ctx, "u1", 2, today).Return(errors.New("db down")).Once()

		_, err := svc.Evaluate(ctx, profile)
		assert.ErrorIs(t, err, app_errors.ErrPersistence)
	})
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, daysBetween(base, base))
	assert.Equal(t, 1, daysBetween(base.AddDate(0, 0, -1).Add(24*time.Hour), base.Add(24*time.Hour)))
	assert.Equal(t, 3, daysBetween(base.AddDate(0, 0, -3), base))
	assert.Equal(t, -2, daysBetween(base.AddDate(0, 0, 2), base))
}
