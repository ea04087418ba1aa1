package http

import (
	"net/http"

	"github.com/aussiebroadwan/gymtab/internal/gym/service"
	"github.com/aussiebroadwan/gymtab/pkg/gymsdk"
	"github.com/aussiebroadwan/gymtab/pkg/httpx"
)

type SettingsHandler struct {
	SettingsService *service.SettingsService
}

// HandleGet handles GET /v1/settings
//
//	@Summary		Get Settings
//	@Tags			Settings
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	gymsdk.SettingsResponse	"settings"
//	@Failure		401	{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/settings [get].
func (h *SettingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s, err := h.SettingsService.GetSettings(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to load settings")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, settingsResponse(s))
}

// HandleUpdate handles PUT /v1/settings
//
//	@Summary		Update Settings
//	@Description	Partial update of the gym name and notification toggles. The next sweep reads the new values.
//	@Tags			Settings
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		gymsdk.SettingsRequest	true	"Fields to change"
//	@Success		200		{object}	gymsdk.SettingsResponse	"settings"
//	@Failure		400		{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/settings [put].
func (h *SettingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req gymsdk.SettingsRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalidRequest(w, err.Error())
		return
	}

	s, err := h.SettingsService.UpdateSettings(r.Context(), service.SettingsUpdate{
		GymName:              req.GymName,
		NotifPaymentReminder: req.NotifPaymentReminder,
		NotifDebtAlert:       req.NotifDebtAlert,
	})
	if err != nil {
		writeServiceError(w, r, err, "Failed to update settings")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, settingsResponse(s))
}
