package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticket-marketplace/models"
	"ticket-marketplace/services"
)

type ProfileHandler struct {
	app     *pocketbase.PocketBase
	profile *services.ProfileService
}

func NewProfileHandler(app *pocketbase.PocketBase, profile *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		app:     app,
		profile: profile,
	}
}

func (h *ProfileHandler) Get(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	profile, err := h.profile.Get(e.Request.Context())
	if err != nil {
		return apiError(err)
	}

	// The hash never leaves the server.
	profile.AccessCodeHash = ""

	return e.JSON(http.StatusOK, map[string]any{
		"profile": profile,
		"balance": profile.Balance.Round(2),
	})
}

func (h *ProfileHandler) Update(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req struct {
		DisplayName string `json:"display_name"`
		Email       string `json:"email"`
		AccessCode  string `json:"access_code"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	ctx := e.Request.Context()
	profile, err := h.profile.Update(ctx, services.ProfileUpdate{
		UserID:      e.Auth.Id,
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	if err != nil {
		return apiError(err)
	}

	if req.AccessCode != "" {
		if err := h.profile.SetAccessCode(ctx, req.AccessCode); err != nil {
			return apiError(err)
		}
	}

	profile.AccessCodeHash = ""
	return e.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetSettings(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	settings, err := h.profile.GetSettings(e.Request.Context())
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, settings)
}

func (h *ProfileHandler) UpdateSettings(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req models.Settings
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.profile.UpdateSettings(e.Request.Context(), req); err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, req)
}
