package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	app_errors "questforge/internal/errors"
	"questforge/internal/model"
	"questforge/internal/repository"
)

// DefaultQuestXP is the reward applied when a quest is created without one.
const DefaultQuestXP = 25

// QuestService manages the quest lifecycle: created active, completed at
// most once, deletable from either state. The "already completed" guard
// lives here and nowhere else; XP awarding is deliberately left to the
// caller so the progression engine stays ignorant of quest identities.
type QuestService struct {
	repo        repository.Repository
	progression *ProgressionService
}

func NewQuestService(repo repository.Repository, progression *ProgressionService) *QuestService {
	return &QuestService{repo: repo, progression: progression}
}

// Create validates and stores a new active quest.
func (s *QuestService) Create(ctx context.Context, userID, title string, description *string, xpReward int) (*model.Quest, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: quest title must not be empty", app_errors.ErrValidation)
	}
	if xpReward <= 0 {
		xpReward = DefaultQuestXP
	}

	quest := &model.Quest{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		XPReward:    xpReward,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.CreateQuest(ctx, quest); err != nil {
		return nil, fmt.Errorf("%w: could not create quest: %v", app_errors.ErrPersistence, err)
	}
	return quest, nil
}

// List returns the user's quests, newest first.
func (s *QuestService) List(ctx context.Context, userID string) ([]model.Quest, error) {
	quests, err := s.repo.GetQuests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: could not list quests: %v", app_errors.ErrPersistence, err)
	}
	return quests, nil
}

// Complete performs the one-way completion transition. It returns the XP
// reward when the transition actually happened, and nil when the quest is
// missing or already completed, making repeated completion an idempotent
// no-op. The caller must award XP only for a non-nil return.
func (s *QuestService) Complete(ctx context.Context, questID string) (*int, error) {
	quest, err := s.repo.GetQuest(ctx, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: could not load quest: %v", app_errors.ErrPersistence, err)
	}
	if quest.IsCompleted {
		return nil, nil
	}

	if err := s.repo.MarkQuestCompleted(ctx, questID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("%w: could not complete quest: %v", app_errors.ErrPersistence, err)
	}

	reward := quest.XPReward
	return &reward, nil
}

// CompleteAndAward runs the full completion flow: the ledger transition
// first, then the XP award against the user's profile for a confirmed
// transition. A repeated completion leaves the profile untouched.
func (s *QuestService) CompleteAndAward(ctx context.Context, userID, questID string) (*model.QuestCompletionResult, error) {
	reward, err := s.Complete(ctx, questID)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, app_errors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: could not load profile: %v", app_errors.ErrPersistence, err)
	}

	if reward == nil {
		return &model.QuestCompletionResult{Profile: profile}, nil
	}

	updated, err := s.progression.AwardXP(ctx, profile, *reward)
	if err != nil {
		return nil, err
	}
	return &model.QuestCompletionResult{
		QuestCompleted: true,
		XPAwarded:      *reward,
		Profile:        updated,
	}, nil
}

// Delete removes a quest in any state. A missing id is a silent no-op; real
// store failures surface.
func (s *QuestService) Delete(ctx context.Context, questID string) error {
	if err := s.repo.DeleteQuest(ctx, questID); err != nil {
		return fmt.Errorf("%w: could not delete quest: %v", app_errors.ErrPersistence, err)
	}
	return nil
}
