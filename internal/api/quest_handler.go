package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "questforge/internal/errors"
	"questforge/internal/interfaces"
)

// QuestHandler handles HTTP requests for the quest lifecycle.
type QuestHandler struct {
	service interfaces.QuestService
}

func NewQuestHandler(svc interfaces.QuestService) *QuestHandler {
	return &QuestHandler{service: svc}
}

// CreateQuestRequest is the DTO for quest creation. A zero XPReward falls
// back to the server-side default.
type CreateQuestRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200" example:"Ship the landing page"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	XPReward    int     `json:"xp_reward,omitempty" validate:"omitempty,gt=0" example:"25"`
}

// HandleListQuests godoc
// @Summary      List quests
// @Description  Returns the user's quests, newest first.
// @Tags         Quests
// @Produce      json
// @Success      200  {array}   model.Quest
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/quests [get]
func (h *QuestHandler) HandleListQuests(w http.ResponseWriter, r *http.Request) {
	quests, err := h.service.List(r.Context(), defaultUserID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, quests)
}

// HandleCreateQuest godoc
// @Summary      Create a quest
// @Tags         Quests
// @Accept       json
// @Produce      json
// @Param        request  body  CreateQuestRequest  true  "New quest"
// @Success      201  {object}  model.Quest
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/quests [post]
func (h *QuestHandler) HandleCreateQuest(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, app_errors.ErrValidation)
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	quest, err := h.service.Create(r.Context(), defaultUserID, req.Title, req.Description, req.XPReward)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, quest)
}

// HandleCompleteQuest godoc
// @Summary      Complete a quest
// @Description  Marks the quest completed and awards its XP. Repeating the call is a no-op with xp_awarded 0.
// @Tags         Quests
// @Produce      json
// @Param        questID  path  string  true  "Quest ID"
// @Success      200  {object}  model.QuestCompletionResult
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/quests/{questID}/complete [post]
func (h *QuestHandler) HandleCompleteQuest(w http.ResponseWriter, r *http.Request) {
	questID := chi.URLParam(r, "questID")
	result, err := h.service.CompleteAndAward(r.Context(), defaultUserID, questID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// HandleDeleteQuest godoc
// @Summary      Delete a quest
// @Description  Removes a quest in any state. Unknown ids succeed silently.
// @Tags         Quests
// @Produce      json
// @Param        questID  path  string  true  "Quest ID"
// @Success      200  {object}  StatusResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/quests/{questID} [delete]
func (h *QuestHandler) HandleDeleteQuest(w http.ResponseWriter, r *http.Request) {
	questID := chi.URLParam(r, "questID")
	if err := h.service.Delete(r.Context(), questID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
