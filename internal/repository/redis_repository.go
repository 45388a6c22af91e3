package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"questforge/internal/model"
)

// redisRepository is an alternative Repository backend. Entities are stored
// as JSON values; per-user sorted sets and lists provide the ordering the
// sqlite backend gets from indexes. Read-modify-write updates are safe here
// because a single client session is the only writer of a user's data.
type redisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) Repository {
	return &redisRepository{rdb: rdb}
}

// Key Generation Helpers
func (r *redisRepository) profileKey(userID string) string  { return fmt.Sprintf("user:%s:profile", userID) }
func (r *redisRepository) questKey(questID string) string   { return fmt.Sprintf("quest:%s", questID) }
func (r *redisRepository) questsKey(userID string) string   { return fmt.Sprintf("user:%s:quests", userID) }
func (r *redisRepository) messagesKey(userID string) string { return fmt.Sprintf("user:%s:messages", userID) }

// --- Profile Operations ---

func (r *redisRepository) CreateProfile(ctx context.Context, profile *model.Profile) error {
	return r.setJSON(ctx, r.profileKey(profile.UserID), profile)
}

func (r *redisRepository) GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	val, err := r.rdb.Get(ctx, r.profileKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var profile model.Profile
	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		return nil, fmt.Errorf("could not unmarshal profile: %w", err)
	}
	return &profile, nil
}

func (r *redisRepository) UpdateProfileProgress(ctx context.Context, userID string, totalXP, level int, lastActive time.Time) error {
	return r.mutateProfile(ctx, userID, func(p *model.Profile) {
		p.TotalXP = totalXP
		p.CurrentLevel = level
		p.LastActiveDate = &lastActive
	})
}

func (r *redisRepository) UpdateProfileStreak(ctx context.Context, userID string, streak int, lastActive time.Time) error {
	return r.mutateProfile(ctx, userID, func(p *model.Profile) {
		p.CurrentStreak = streak
		p.LastActiveDate = &lastActive
	})
}

func (r *redisRepository) UpdateDisplayName(ctx context.Context, userID, displayName string) error {
	return r.mutateProfile(ctx, userID, func(p *model.Profile) {
		p.DisplayName = &displayName
	})
}

func (r *redisRepository) mutateProfile(ctx context.Context, userID string, mutate func(*model.Profile)) error {
	profile, err := r.GetProfileByUserID(ctx, userID)
	if err != nil {
		return err
	}
	mutate(profile)
	profile.UpdatedAt = time.Now().UTC()
	return r.setJSON(ctx, r.profileKey(userID), profile)
}

// --- Quest Operations ---

func (r *redisRepository) CreateQuest(ctx context.Context, quest *model.Quest) error {
	val, err := json.Marshal(quest)
	if err != nil {
		return fmt.Errorf("could not marshal quest: %w", err)
	}
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, r.questKey(quest.ID), val, 0)
	pipe.ZAdd(ctx, r.questsKey(quest.UserID), redis.Z{
		Score:  float64(-quest.CreatedAt.UnixNano()),
		Member: quest.ID,
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) GetQuest(ctx context.Context, questID string) (*model.Quest, error) {
	val, err := r.rdb.Get(ctx, r.questKey(questID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var quest model.Quest
	if err := json.Unmarshal([]byte(val), &quest); err != nil {
		return nil, fmt.Errorf("could not unmarshal quest: %w", err)
	}
	return &quest, nil
}

func (r *redisRepository) GetQuests(ctx context.Context, userID string) ([]model.Quest, error) {
	// Scores are negated creation times, so ascending range is newest first.
	ids, err := r.rdb.ZRange(ctx, r.questsKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	var quests []model.Quest
	for _, id := range ids {
		quest, err := r.GetQuest(ctx, id)
		if err != nil {
			if err == ErrNotFound {
				continue
			}
			return nil, err
		}
		quests = append(quests, *quest)
	}
	return quests, nil
}

func (r *redisRepository) MarkQuestCompleted(ctx context.Context, questID string, completedAt time.Time) error {
	quest, err := r.GetQuest(ctx, questID)
	if err != nil {
		return err
	}
	quest.IsCompleted = true
	quest.CompletedAt = &completedAt
	return r.setJSON(ctx, r.questKey(questID), quest)
}

func (r *redisRepository) DeleteQuest(ctx context.Context, questID string) error {
	quest, err := r.GetQuest(ctx, questID)
	if err != nil {
		if err == ErrNotFound {
			return nil
		}
		return err
	}
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, r.questKey(questID))
	pipe.ZRem(ctx, r.questsKey(quest.UserID), questID)
	_, err = pipe.Exec(ctx)
	return err
}

// --- Chat Message Operations ---

func (r *redisRepository) AddChatMessage(ctx context.Context, message *model.ChatMessage) error {
	val, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("could not marshal message: %w", err)
	}
	return r.rdb.RPush(ctx, r.messagesKey(message.UserID), val).Err()
}

func (r *redisRepository) GetChatMessages(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	vals, err := r.rdb.LRange(ctx, r.messagesKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	var messages []model.ChatMessage
	for _, val := range vals {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(val), &msg); err != nil {
			return nil, fmt.Errorf("could not unmarshal message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (r *redisRepository) setJSON(ctx context.Context, key string, v any) error {
	val, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("could not marshal value for %s: %w", key, err)
	}
	return r.rdb.Set(ctx, key, val, 0).Err()
}
