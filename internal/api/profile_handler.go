package api

import (
	"encoding/json"
	"net/http"

	app_errors "questforge/internal/errors"
	"questforge/internal/interfaces"
)

// defaultUserID identifies the single authenticated user of this deployment.
// Authentication is an external collaborator; the subsystem operates on one
// user's state.
const defaultUserID = "default-user"

// ProfileHandler handles HTTP requests for the user profile and session
// lifecycle.
type ProfileHandler struct {
	service interfaces.ProfileService
}

func NewProfileHandler(svc interfaces.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// UpdateDisplayNameRequest is the DTO for the onboarding display-name endpoint.
type UpdateDisplayNameRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=50" example:"Ada"`
}

// HandleStartSession godoc
// @Summary      Start a session
// @Description  Returns the user's profile, creating it on first contact, and re-evaluates the daily streak once.
// @Tags         Profile
// @Produce      json
// @Success      200  {object}  model.Profile
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/session [post]
func (h *ProfileHandler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.StartSession(r.Context(), defaultUserID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, profile)
}

// HandleGetProfile godoc
// @Summary      Get the profile
// @Tags         Profile
// @Produce      json
// @Success      200  {object}  model.Profile
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/profile [get]
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Get(r.Context(), defaultUserID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, profile)
}

// HandleUpdateDisplayName godoc
// @Summary      Set the display name
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        request  body  UpdateDisplayNameRequest  true  "Display name"
// @Success      200  {object}  model.Profile
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/profile/name [put]
func (h *ProfileHandler) HandleUpdateDisplayName(w http.ResponseWriter, r *http.Request) {
	var req UpdateDisplayNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, app_errors.ErrValidation)
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	profile, err := h.service.SetDisplayName(r.Context(), defaultUserID, req.DisplayName)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, profile)
}
