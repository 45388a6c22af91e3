package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	app_errors "questforge/internal/errors"
	"questforge/internal/interfaces"
	"questforge/internal/model"
)

// ChatHandler handles HTTP requests for the chat transcript and the
// streaming message exchange.
type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// SendMessageRequest is the DTO for a new chat message.
type SendMessageRequest struct {
	Message string `json:"message" validate:"required,min=1" example:"What should I focus on today?"`
}

// HandleGetMessages godoc
// @Summary      Get the transcript
// @Description  Returns all chat messages, ascending by creation time.
// @Tags         Chat
// @Produce      json
// @Success      200  {array}   model.ChatMessage
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/chat/messages [get]
func (h *ChatHandler) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.ListMessages(r.Context(), defaultUserID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, messages)
}

// HandleStreamMessage godoc
// @Summary      Send a message and stream the reply
// @Description  Persists the user message and streams the assistant's reply as Server-Sent Events.
// @Tags         Chat
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body  SendMessageRequest  true  "Message"
// @Success      200  {object}  model.StreamResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/chat/messages [post]
func (h *ChatHandler) HandleStreamMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, app_errors.ErrValidation)
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	streamChan := make(chan model.StreamResponse)
	go h.service.StreamMessage(r.Context(), defaultUserID, req.Message, streamChan)

	for chunk := range streamChan {
		if r.Context().Err() != nil {
			slog.Debug("Client disconnected during stream.")
			break
		}
		if err := writeStreamEvent(w, chunk); err != nil {
			slog.Warn("Failed to write stream event, client might have disconnected", "error", err)
			break
		}
	}
}
