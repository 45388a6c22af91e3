// The `_test` suffix creates a "black box" test package: the tests exercise
// only the handlers' exported surface, the way the router does.
package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"questforge/internal/api"
	app_errors "questforge/internal/errors"
	"questforge/internal/interfaces/mocks"
	"questforge/internal/model"
)

// addChiURLParams simulates how the chi router injects URL parameters
// (e.g. `{questID}`) into the request's context. Handlers read them via
// chi.URLParam, which would otherwise return an empty string.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func TestQuestHandler_HandleListQuests(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := mocks.NewMockQuestService(t)
		handler := api.NewQuestHandler(mockSvc)

		expected := []model.Quest{{ID: "q1", Title: "Ship it", XPReward: 25}}
		mockSvc.On("List", mock.Anything, mock.AnythingOfType("string")).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/quests", nil)
		rr := httptest.NewRecorder()
		handler.HandleListQuests(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned []model.Quest
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.Equal(t, expected, returned)
	})

	t.Run("Failure - service error", func(t *testing.T) {
		mockSvc := mocks.NewMockQuestService(t)
		handler := api.NewQuestHandler(mockSvc)

		mockSvc.On("List", mock.Anything, mock.Anything).Return(nil, app_errors.ErrPersistence).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/quests", nil)
		rr := httptest.NewRecorder()
		handler.HandleListQuests(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestQuestHandler_HandleCreateQuest(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := mocks.NewMockQuestService(t)
		handler := api.NewQuestHandler(mockSvc)

		created := &model.Quest{ID: "q1", Title: "Write tests", XPReward: 40}
		mockSvc.On("Create", mock.Anything, mock.AnythingOfType("string"), "Write tests", (*string)(nil), 40).
			Return(created, nil).Once()

		reqBody := `{"title": "Write tests", "xp_reward": 40}`
		req := httptest.NewRequest(http.MethodPost, "/v1/quests", strings.NewReader(reqBody))
		rr := httptest.NewRecorder()
		handler.HandleCreateQuest(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Failure - Validation Error (missing title)", func(t *testing.T) {
		mockSvc := mocks.NewMockQuestService(t)
		handler := api.NewQuestHandler(mockSvc)

		reqBody := `{"xp_reward": 40}`
		req := httptest.NewRequest(http.MethodPost, "/v1/quests", strings.NewReader(reqBody))
		rr := httptest.NewRecorder()
		handler.HandleCreateQuest(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Field 'Title' failed on the 'required' tag")
	})

	t.Run("Failure - Invalid JSON", func(t *testing.T) {
		mockSvc := mocks.NewMockQuestService(t)
		handler := api.NewQuestHandler(mockSvc)

		req := httptest.NewRequest(http.MethodPost, "/v1/quests", strings.NewReader(`{invalid`))
		rr := httptest.NewRecorder()
		handler.HandleCreateQuest(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestQuestHandler_HandleCompleteQuest(t *testing.T) {
	questID := "test-quest-id"

	t.Run("Success", func(t *testing.T) {
		mockSvc := mocks.NewMockQuestService(t)
		handler := api.NewQuestHandler(mockSvc)

		result := &model.QuestCompletionResult{
			QuestCompleted: true,
			XPAwarded:      25,
			Profile:        &model.Profile{TotalXP: 250, CurrentLevel: 3},
		}
		mockSvc.On("CompleteAndAward", mock.Anything, mock.AnythingOfType("string"), questID).
			Return(result, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/quests/"+questID+"/complete", nil)
		req = addChiURLParams(req, map[string]string{"questID": questID})
		rr := httptest.NewRecorder()
		handler.HandleCompleteQuest(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned model.QuestCompletionResult
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.True(t, returned.QuestCompleted)
		assert.Equal(t, 25, returned.XPAwarded)
	})

	t.Run("Failure - profile lookup fails", func(t *testing.T) {
		mockSvc := mocks.NewMockQuestService(t)
		handler := api.NewQuestHandler(mockSvc)

		mockSvc.On("CompleteAndAward", mock.Anything, mock.Anything, questID).
			Return(nil, app_errors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/quests/"+questID+"/complete", nil)
		req = addChiURLParams(req, map[string]string{"questID": questID})
		rr := httptest.NewRecorder()
		handler.HandleCompleteQuest(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestQuestHandler_HandleDeleteQuest(t *testing.T) {
	questID := "test-quest-id"

	t.Run("Success", func(t *testing.T) {
		mockSvc := mocks.NewMockQuestService(t)
		handler := api.NewQuestHandler(mockSvc)

		mockSvc.On("Delete", mock.Anything, questID).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/v1/quests/"+questID, nil)
		req = addChiURLParams(req, map[string]string{"questID": questID})
		rr := httptest.NewRecorder()
		handler.HandleDeleteQuest(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"status":"ok"`)
	})

	t.Run("Failure - store error", func(t *testing.T) {
		mockSvc := mocks.NewMockQuestService(t)
		handler := api.NewQuestHandler(mockSvc)

		mockSvc.On("Delete", mock.Anything, questID).Return(app_errors.ErrPersistence).Once()

		req := httptest.NewRequest(http.MethodDelete, "/v1/quests/"+questID, nil)
		req = addChiURLParams(req, map[string]string{"questID": questID})
		rr := httptest.NewRecorder()
		handler.HandleDeleteQuest(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
