package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "questforge/internal/errors"
	"questforge/internal/model"
	"questforge/internal/repository/mocks"
	"questforge/internal/service"
)

func TestTranscript_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		transcript := service.NewTranscript(repo, "u1", nil)

		repo.On("AddChatMessage", ctx, mock.AnythingOfType("*model.ChatMessage")).Return(nil).Once()

		msg, err := transcript.Append(ctx, model.RoleUser, "hello")
		require.NoError(t, err)
		assert.Equal(t, model.RoleUser, msg.Role)
		assert.False(t, msg.Pending)
		assert.Len(t, transcript.Messages(), 1)
	})

	t.Run("Failure - transcript unchanged on store error", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		transcript := service.NewTranscript(repo, "u1", nil)

		repo.On("AddChatMessage", ctx, mock.Anything).Return(errors.New("db down")).Once()

		_, err := transcript.Append(ctx, model.RoleUser, "hello")
		assert.ErrorIs(t, err, app_errors.ErrPersistence)
		assert.Empty(t, transcript.Messages())
	})
}

func TestTranscript_AppendOptimistic(t *testing.T) {
	repo := mocks.NewMockRepository(t)
	transcript := service.NewTranscript(repo, "u1", nil)

	msg := transcript.AppendOptimistic(model.RoleAssistant, "")

	assert.True(t, msg.Pending)
	assert.True(t, strings.HasPrefix(msg.ID, "temp-"), "placeholder ids live in their own namespace")
	assert.Len(t, transcript.Messages(), 1)
}

func TestTranscript_UpdateTrailing(t *testing.T) {
	t.Run("Updates a pending assistant placeholder", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		transcript := service.NewTranscript(repo, "u1", nil)
		transcript.AppendOptimistic(model.RoleAssistant, "")

		transcript.UpdateTrailing("partial rep")
		transcript.UpdateTrailing("partial reply")

		messages := transcript.Messages()
		assert.Equal(t, "partial reply", messages[len(messages)-1].Content)
	})

	t.Run("No-op when the trailing message is not a placeholder", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		persisted := []model.ChatMessage{{ID: "m1", Role: model.RoleUser, Content: "hi"}}
		transcript := service.NewTranscript(repo, "u1", persisted)

		transcript.UpdateTrailing("should be dropped")

		messages := transcript.Messages()
		assert.Equal(t, "hi", messages[0].Content)
	})

	t.Run("No-op on an empty transcript", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		transcript := service.NewTranscript(repo, "u1", nil)

		transcript.UpdateTrailing("nothing to update")
		assert.Empty(t, transcript.Messages())
	})
}

func TestTranscript_Finalize(t *testing.T) {
	ctx := context.Background()

	t.Run("Replaces the placeholder with one persisted message", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		transcript := service.NewTranscript(repo, "u1", nil)
		transcript.AppendOptimistic(model.RoleAssistant, "")
		transcript.UpdateTrailing("partial")

		var persisted *model.ChatMessage
		repo.On("AddChatMessage", ctx, mock.AnythingOfType("*model.ChatMessage")).
			Run(func(args mock.Arguments) { persisted = args.Get(1).(*model.ChatMessage) }).
			Return(nil).Once()

		msg, err := transcript.Finalize(ctx, "final reply")
		require.NoError(t, err)
		assert.Equal(t, "final reply", msg.Content)
		assert.Equal(t, model.RoleAssistant, persisted.Role)
		assert.False(t, strings.HasPrefix(persisted.ID, "temp-"))

		// Exactly one transcript entry for the exchange, no duplicate.
		messages := transcript.Messages()
		require.Len(t, messages, 1)
		assert.False(t, messages[0].Pending)
		assert.Equal(t, "final reply", messages[0].Content)

		// A later stray update cannot touch the finalized entry.
		transcript.UpdateTrailing("stale")
		assert.Equal(t, "final reply", transcript.Messages()[0].Content)
	})

	t.Run("Failure - store error surfaces and placeholder stays", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		transcript := service.NewTranscript(repo, "u1", nil)
		transcript.AppendOptimistic(model.RoleAssistant, "partial")

		repo.On("AddChatMessage", ctx, mock.Anything).Return(errors.New("db down")).Once()

		_, err := transcript.Finalize(ctx, "final")
		assert.ErrorIs(t, err, app_errors.ErrPersistence)
		assert.True(t, transcript.Messages()[0].Pending)
	})
}
