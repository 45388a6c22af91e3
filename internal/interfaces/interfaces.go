package interfaces

import (
	"context"

	"questforge/internal/model"
)

// This file defines the interfaces for our core services.
// Depending on these interfaces, instead of concrete implementations, allows for
// decoupling (e.g., API layer from Service layer) and easier testing via mocking.

// ProfileService defines the contract for profile and session logic.
type ProfileService interface {
	StartSession(ctx context.Context, userID string) (*model.Profile, error)
	Get(ctx context.Context, userID string) (*model.Profile, error)
	SetDisplayName(ctx context.Context, userID, displayName string) (*model.Profile, error)
}

// QuestService defines the contract for the quest lifecycle.
type QuestService interface {
	Create(ctx context.Context, userID, title string, description *string, xpReward int) (*model.Quest, error)
	List(ctx context.Context, userID string) ([]model.Quest, error)
	CompleteAndAward(ctx context.Context, userID, questID string) (*model.QuestCompletionResult, error)
	Delete(ctx context.Context, questID string) error
}

// ChatService defines the contract for transcript access and streaming
// exchanges.
type ChatService interface {
	ListMessages(ctx context.Context, userID string) ([]model.ChatMessage, error)
	StreamMessage(ctx context.Context, userID, content string, out chan<- model.StreamResponse)
}
