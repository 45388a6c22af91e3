package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	app_errors "questforge/internal/errors"
	"questforge/internal/model"
	"questforge/internal/repository"
)

// optimisticIDPrefix namespaces placeholder ids so they can never be
// mistaken for persisted message ids.
const optimisticIDPrefix = "temp-"

// Transcript maintains the ordered message log for one exchange: the
// durable store is the source of truth, the in-memory slice is a cache kept
// consistent by the transcript's own writes. Optimistic placeholders exist
// only in memory until they are finalized into exactly one persisted
// assistant message.
type Transcript struct {
	repo     repository.Repository
	userID   string
	messages []model.ChatMessage
}

// NewTranscript wraps the already-loaded persisted messages, ascending by
// creation time.
func NewTranscript(repo repository.Repository, userID string, messages []model.ChatMessage) *Transcript {
	return &Transcript{
		repo:     repo,
		userID:   userID,
		messages: append([]model.ChatMessage(nil), messages...),
	}
}

// Messages returns a snapshot of the transcript.
func (t *Transcript) Messages() []model.ChatMessage {
	return append([]model.ChatMessage(nil), t.messages...)
}

// Append durably stores a message and appends it to the transcript. On a
// store failure the in-memory log is left untouched so the caller can retry
// or surface the failure.
func (t *Transcript) Append(ctx context.Context, role, content string) (*model.ChatMessage, error) {
	msg := model.ChatMessage{
		ID:        uuid.NewString(),
		UserID:    t.userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := t.repo.AddChatMessage(ctx, &msg); err != nil {
		return nil, fmt.Errorf("%w: could not persist message: %v", app_errors.ErrPersistence, err)
	}
	t.messages = append(t.messages, msg)
	return &msg, nil
}

// AppendOptimistic appends an in-memory-only placeholder for immediate
// feedback before the real content is known.
func (t *Transcript) AppendOptimistic(role, content string) *model.ChatMessage {
	msg := model.ChatMessage{
		ID:        optimisticIDPrefix + uuid.NewString(),
		UserID:    t.userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		Pending:   true,
	}
	t.messages = append(t.messages, msg)
	return &msg
}

// UpdateTrailing replaces the content of the last entry only if it is still
// a pending assistant placeholder. Anything else means the exchange was
// overtaken (a new message arrived, or the placeholder was finalized) and
// the update is dropped.
func (t *Transcript) UpdateTrailing(content string) {
	last := len(t.messages) - 1
	if last < 0 {
		return
	}
	if t.messages[last].Role != model.RoleAssistant || !t.messages[last].Pending {
		return
	}
	t.messages[last].Content = content
}

// Finalize persists the accumulated assistant content as the single durable
// record for the exchange, replacing the trailing placeholder if it is
// still there.
func (t *Transcript) Finalize(ctx context.Context, content string) (*model.ChatMessage, error) {
	msg := model.ChatMessage{
		ID:        uuid.NewString(),
		UserID:    t.userID,
		Role:      model.RoleAssistant,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := t.repo.AddChatMessage(ctx, &msg); err != nil {
		return nil, fmt.Errorf("%w: could not persist assistant message: %v", app_errors.ErrPersistence, err)
	}

	last := len(t.messages) - 1
	if last >= 0 && t.messages[last].Role == model.RoleAssistant && t.messages[last].Pending {
		t.messages[last] = msg
	} else {
		t.messages = append(t.messages, msg)
	}
	return &msg, nil
}
