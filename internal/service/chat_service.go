package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	app_errors "questforge/internal/errors"
	"questforge/internal/llm"
	"questforge/internal/model"
	"questforge/internal/repository"
)

// historyLimit caps the conversation history sent to the gateway to the
// most recent entries.
const historyLimit = 20

// User-facing fallback messages substituted into the transcript's trailing
// placeholder when the stream fails.
const (
	msgRateLimited    = "Rate limit reached. Please wait a moment and try again."
	msgQuotaExhausted = "AI credits exhausted. Please add more credits."
	msgGenericFailure = "Sorry, I encountered an error. Please try again."
)

// ChatService orchestrates one chat exchange: persist the user message,
// show an optimistic placeholder, stream the assistant reply through the
// decoder, and finalize exactly one durable assistant message.
type ChatService struct {
	repo repository.Repository
	llm  llm.Provider
}

func NewChatService(repo repository.Repository, provider llm.Provider) *ChatService {
	return &ChatService{repo: repo, llm: provider}
}

// ListMessages returns the full transcript, ascending by creation time.
func (s *ChatService) ListMessages(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	messages, err := s.repo.GetChatMessages(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: could not load messages: %v", app_errors.ErrPersistence, err)
	}
	return messages, nil
}

// StreamMessage processes a new user message and streams the assistant's
// reply on out, which is closed when the exchange ends. On a transport
// failure the placeholder content is replaced with a human-readable message
// and no assistant message is persisted.
func (s *ChatService) StreamMessage(ctx context.Context, userID, content string, out chan<- model.StreamResponse) {
	defer close(out)

	content = strings.TrimSpace(content)
	if content == "" {
		s.emit(ctx, out, model.StreamResponse{Error: "Message must not be empty."})
		return
	}

	history, err := s.repo.GetChatMessages(ctx, userID)
	if err != nil {
		slog.Error("Could not load chat history", "user_id", userID, "error", err)
		s.emit(ctx, out, model.StreamResponse{Error: "Could not load conversation history."})
		return
	}
	transcript := NewTranscript(s.repo, userID, history)

	if _, err := transcript.Append(ctx, model.RoleUser, content); err != nil {
		slog.Error("Could not save user message", "user_id", userID, "error", err)
		s.emit(ctx, out, model.StreamResponse{Error: "Could not save your message."})
		return
	}
	transcript.AppendOptimistic(model.RoleAssistant, "")

	req, err := s.buildRequest(ctx, userID, content, history)
	if err != nil {
		slog.Error("Could not build gateway request", "user_id", userID, "error", err)
		s.emit(ctx, out, model.StreamResponse{Error: msgGenericFailure})
		return
	}

	events := make(chan llm.StreamEvent)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.llm.ChatStream(ctx, req, events)
	}()

	var assistant strings.Builder
	for event := range events {
		if event.Content == "" {
			continue
		}
		assistant.WriteString(event.Content)
		transcript.UpdateTrailing(assistant.String())
		s.emit(ctx, out, model.StreamResponse{Content: event.Content})
	}

	if err := <-errCh; err != nil {
		userMsg := streamErrorMessage(err)
		transcript.UpdateTrailing(userMsg)
		slog.Warn("AI stream failed", "user_id", userID, "error", err)
		s.emit(ctx, out, model.StreamResponse{Error: userMsg})
		return
	}

	if _, err := transcript.Finalize(ctx, assistant.String()); err != nil {
		slog.Error("CRITICAL: Failed to save assistant message", "user_id", userID, "error", err)
		s.emit(ctx, out, model.StreamResponse{Error: "Could not save the assistant reply."})
		return
	}

	s.emit(ctx, out, model.StreamResponse{Done: true})
}

// buildRequest assembles the gateway request body: the new message, the
// user's progress context and the capped history.
func (s *ChatService) buildRequest(ctx context.Context, userID, message string, history []model.ChatMessage) (*llm.ChatRequest, error) {
	chatCtx := llm.ChatContext{
		UserName:     "Founder",
		Level:        1,
		ActiveQuests: []string{},
	}

	profile, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if profile != nil {
		if profile.DisplayName != nil && *profile.DisplayName != "" {
			chatCtx.UserName = *profile.DisplayName
		}
		chatCtx.Level = profile.CurrentLevel
		chatCtx.TotalXP = profile.TotalXP
		chatCtx.Streak = profile.CurrentStreak
	}

	quests, err := s.repo.GetQuests(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, quest := range quests {
		if quest.IsCompleted {
			chatCtx.CompletedQuestsCount++
		} else {
			chatCtx.ActiveQuests = append(chatCtx.ActiveQuests, quest.Title)
		}
	}

	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	entries := make([]llm.HistoryEntry, 0, len(history))
	for _, msg := range history {
		entries = append(entries, llm.HistoryEntry{Role: msg.Role, Content: msg.Content})
	}

	return &llm.ChatRequest{
		Message: message,
		Context: chatCtx,
		History: entries,
	}, nil
}

// emit sends a chunk unless the client is already gone.
func (s *ChatService) emit(ctx context.Context, out chan<- model.StreamResponse, resp model.StreamResponse) {
	select {
	case out <- resp:
	case <-ctx.Done():
	}
}

func streamErrorMessage(err error) string {
	switch {
	case errors.Is(err, app_errors.ErrRateLimited):
		return msgRateLimited
	case errors.Is(err, app_errors.ErrQuotaExhausted):
		return msgQuotaExhausted
	default:
		return msgGenericFailure
	}
}
