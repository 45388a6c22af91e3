package repository

import (
	"context"
	"time"

	"questforge/internal/model"
)

// Repository defines the interface for data storage operations.
// This interface makes it easy to switch database implementations.
type Repository interface {
	CreateProfile(ctx context.Context, profile *model.Profile) error
	GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error)
	UpdateProfileProgress(ctx context.Context, userID string, totalXP, level int, lastActive time.Time) error
	UpdateProfileStreak(ctx context.Context, userID string, streak int, lastActive time.Time) error
	UpdateDisplayName(ctx context.Context, userID, displayName string) error

	CreateQuest(ctx context.Context, quest *model.Quest) error
	GetQuest(ctx context.Context, questID string) (*model.Quest, error)
	GetQuests(ctx context.Context, userID string) ([]model.Quest, error)
	MarkQuestCompleted(ctx context.Context, questID string, completedAt time.Time) error
	DeleteQuest(ctx context.Context, questID string) error

	AddChatMessage(ctx context.Context, message *model.ChatMessage) error
	GetChatMessages(ctx context.Context, userID string) ([]model.ChatMessage, error)
}
